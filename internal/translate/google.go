package translate

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/sync/errgroup"
)

// googleConcurrency bounds how many in-flight translation requests one batch
// may issue at once.
const googleConcurrency = 4

// GoogleProvider issues one HTTP call per fragment, concurrently, bounded by
// an errgroup — §4.6's "concurrent single-call invocation ... for another
// provider".
type GoogleProvider struct {
	Endpoint string
	client   *http.Client
}

// NewGoogleProvider returns a provider pointed at the public translate
// endpoint.
func NewGoogleProvider() *GoogleProvider {
	return &GoogleProvider{
		Endpoint: "https://translate.googleapis.com/translate_a/single",
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

func (p *GoogleProvider) TranslateBatch(ctx context.Context, fragments []string) ([]string, error) {
	if len(fragments) == 0 {
		return nil, nil
	}

	out := make([]string, len(fragments))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(googleConcurrency)

	for i, frag := range fragments {
		i, frag := i, frag
		g.Go(func() error {
			tok, err := p.translateOne(gctx, frag)
			if err != nil {
				return err
			}
			out[i] = tok
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (p *GoogleProvider) translateOne(ctx context.Context, fragment string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.Endpoint, nil)
	if err != nil {
		return "", err
	}
	q := url.Values{}
	q.Set("client", "gtx")
	q.Set("sl", "zh-CN")
	q.Set("tl", "en")
	q.Set("dt", "t")
	q.Set("q", fragment)
	req.URL.RawQuery = q.Encode()

	resp, err := p.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("google provider returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return sanitizeToken(extractFirstTranslation(string(body))), nil
}

// extractFirstTranslation pulls the first translated segment out of the
// endpoint's nested-array response without pulling in a JSON schema just
// for this one shape: the payload looks like [[["token","原文",...]],...].
func extractFirstTranslation(body string) string {
	start := -1
	for i, r := range body {
		if r == '"' {
			start = i + 1
			break
		}
	}
	if start == -1 || start >= len(body) {
		return ""
	}
	end := start
	for end < len(body) && body[end] != '"' {
		end++
	}
	return body[start:end]
}
