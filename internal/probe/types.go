package probe

import (
	"context"

	"github.com/hamed0406/endpointprobe/internal/domain"
)

// Prober performs a single GET cycle against a target URL and reports
// the classified outcome. Implementations never return an error; every
// failure mode is folded into the result.
type Prober interface {
	Probe(ctx context.Context, target string) domain.ProbeResult
}
