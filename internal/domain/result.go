package domain

import "time"

// Outcome classifies a single probe. Every probe yields exactly one of
// these; transport errors never escape as Go errors.
type Outcome string

const (
	OutcomeSuccess           Outcome = "success"
	OutcomeConnectionRefused Outcome = "connection_refused"
	OutcomeTimeout           Outcome = "timeout"
	OutcomeError             Outcome = "error"
)

// ProbeResult is the outcome of one GET against one Target.
//
// StatusCode, Headers and BodyPreview are set only for OutcomeSuccess
// (a response was received, whatever its status code). Err carries the
// underlying error text for OutcomeError.
type ProbeResult struct {
	Target      string            `json:"target"`
	Outcome     Outcome           `json:"outcome"`
	StatusCode  int               `json:"status_code,omitempty"`
	Headers     map[string]string `json:"headers,omitempty"`
	BodyPreview string            `json:"body_preview,omitempty"`
	LatencyMS   float64           `json:"latency_ms"`
	Err         string            `json:"error,omitempty"`
	CheckedAt   time.Time         `json:"checked_at"`
}

// Up reports whether the probe got any HTTP response back.
func (r ProbeResult) Up() bool { return r.Outcome == OutcomeSuccess }
