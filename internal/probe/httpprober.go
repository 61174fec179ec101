package probe

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hamed0406/endpointprobe/internal/domain"
)

type HTTPProber struct {
	Client       *http.Client
	PreviewLimit int
}

func NewHTTPProber(timeout time.Duration) *HTTPProber {
	if timeout <= 0 {
		timeout = domain.DefaultTimeout
	}
	return &HTTPProber{
		Client:       &http.Client{Timeout: timeout},
		PreviewLimit: domain.DefaultBodyPreviewLimit,
	}
}

func (p *HTTPProber) Probe(ctx context.Context, target string) domain.ProbeResult {
	start := time.Now()
	res := domain.ProbeResult{Target: target, CheckedAt: start.UTC()}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		res.Outcome = domain.OutcomeError
		res.Err = err.Error()
		return res
	}

	resp, err := p.Client.Do(req)
	res.LatencyMS = time.Since(start).Seconds() * 1000 // ms
	if err != nil {
		res.Outcome = ClassifyError(err)
		if res.Outcome == domain.OutcomeError {
			res.Err = err.Error()
		}
		return res
	}
	defer resp.Body.Close()

	res.Outcome = domain.OutcomeSuccess
	res.StatusCode = resp.StatusCode
	res.Headers = flattenHeaders(resp.Header)
	res.BodyPreview = readPreview(resp.Body, p.PreviewLimit)
	return res
}

// flattenHeaders folds multi-valued headers into one comma-joined string
// per key, the way most client libraries present them.
func flattenHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for k, vs := range h {
		out[k] = strings.Join(vs, ", ")
	}
	return out
}

// readPreview returns up to limit characters of decoded body text.
// Truncation is rune-wise so a multi-byte character is never split.
//
// A read error mid-body (e.g. the client timeout firing while the body
// streams) keeps whatever arrived: the response headers were already
// received, so the probe stays a success with a shorter preview.
func readPreview(r io.Reader, limit int) string {
	if limit <= 0 {
		limit = domain.DefaultBodyPreviewLimit
	}
	// 4 bytes per rune upper bound keeps the read small.
	b, _ := io.ReadAll(io.LimitReader(r, int64(limit)*4))
	if len(b) == 0 {
		return ""
	}
	runes := []rune(string(b))
	if len(runes) > limit {
		runes = runes[:limit]
	}
	return string(runes)
}
