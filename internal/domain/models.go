package domain

import "time"

// Target is a single URL the runner checks. Targets are fixed at
// construction time and probed in the order given.
type Target struct {
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

// DefaultTimeout bounds each individual request; it is not cumulative
// across a run.
const DefaultTimeout = 5 * time.Second

// DefaultBodyPreviewLimit is the number of characters of decoded body
// text kept in a ProbeResult.
const DefaultBodyPreviewLimit = 200

// DefaultTargets is the built-in probe sequence used when no targets are
// configured: a pair of local dev servers and their health paths.
func DefaultTargets() []Target {
	urls := []string{
		"http://localhost:3000",
		"http://localhost:3000/ping",
		"http://localhost:3000/api/health",
		"http://localhost:3001",
		"http://localhost:3001/ping",
	}
	out := make([]Target, 0, len(urls))
	now := time.Now().UTC()
	for _, u := range urls {
		out = append(out, Target{URL: u, CreatedAt: now})
	}
	return out
}
