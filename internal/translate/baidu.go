package translate

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// BaiduProvider batches every fragment into one request, delimited by '\n'
// (§4.6: "Batched delimiter is '\n' for one provider").
type BaiduProvider struct {
	Endpoint string
	AppID    string
	Secret   string
	client   *http.Client
}

// NewBaiduProvider returns a provider pointed at the Baidu translate
// endpoint. AppID and Secret are left empty; nothing in this module assigns
// them, and TranslateBatch sends only AppID (Secret is never sent).
func NewBaiduProvider() *BaiduProvider {
	return &BaiduProvider{
		Endpoint: "https://fanyi-api.baidu.com/api/trans/vip/translate",
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

func (p *BaiduProvider) TranslateBatch(ctx context.Context, fragments []string) ([]string, error) {
	if len(fragments) == 0 {
		return nil, nil
	}
	batched := strings.Join(fragments, "\n")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.Endpoint, nil)
	if err != nil {
		return nil, err
	}
	q := url.Values{}
	q.Set("q", batched)
	q.Set("from", "zh")
	q.Set("to", "en")
	q.Set("appid", p.AppID)
	req.URL.RawQuery = q.Encode()

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("baidu provider returned status %d", resp.StatusCode)
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

	parts := strings.Split(body.String(), "\n")
	if len(parts) != len(fragments) {
		return nil, fmt.Errorf("baidu provider returned %d tokens for %d fragments", len(parts), len(fragments))
	}

	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = sanitizeToken(p)
	}
	return out, nil
}
