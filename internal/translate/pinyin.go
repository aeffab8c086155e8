package translate

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// PinyinProvider converts Chinese fragments to pinyin via a single batched
// request, using '$' to delimit fragments and split the response — the
// default translator (§4.6: "Batched delimiter is ... '$' for the default
// pinyin provider").
type PinyinProvider struct {
	Endpoint string
	client   *http.Client
}

// NewPinyinProvider returns a provider pointed at the organization's own
// pinyin conversion service, used by default when no other provider is
// configured. Endpoint is exported so a deployment can point it elsewhere
// without touching code.
func NewPinyinProvider() *PinyinProvider {
	return &PinyinProvider{
		Endpoint: "https://translate.sinocarta.io/pinyin/convert",
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

func (p *PinyinProvider) TranslateBatch(ctx context.Context, fragments []string) ([]string, error) {
	if len(fragments) == 0 {
		return nil, nil
	}
	batched := strings.Join(fragments, "$")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.Endpoint, nil)
	if err != nil {
		return nil, err
	}
	q := url.Values{}
	q.Set("text", batched)
	q.Set("sep", "$")
	req.URL.RawQuery = q.Encode()

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("pinyin provider returned status %d", resp.StatusCode)
	}

	var body strings.Builder
	buf := make([]byte, 4096)
	for {
		n, readErr := resp.Body.Read(buf)
		if n > 0 {
			body.Write(buf[:n])
		}
		if readErr != nil {
			break
		}
	}

	parts := strings.Split(body.String(), "$")
	if len(parts) != len(fragments) {
		return nil, fmt.Errorf("pinyin provider returned %d tokens for %d fragments", len(parts), len(fragments))
	}

	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = sanitizeToken(p)
	}
	return out, nil
}
