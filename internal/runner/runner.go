package runner

import (
	"context"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/hamed0406/endpointprobe/internal/domain"
	"github.com/hamed0406/endpointprobe/internal/probe"
)

// Sink receives each result as soon as its probe finishes.
type Sink interface {
	Emit(res domain.ProbeResult) error
}

// Runner walks an ordered target list and probes each one in turn.
// Probing is strictly sequential and blocking; the per-request timeout
// is the only temporal bound.
type Runner struct {
	Logger      *zap.Logger
	Prober      probe.Prober
	Sink        Sink
	Timeout     time.Duration
	DiagnoseDNS bool
}

func New(logger *zap.Logger, p probe.Prober, sink Sink, timeout time.Duration) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = domain.DefaultTimeout
	}
	return &Runner{
		Logger:  logger,
		Prober:  p,
		Sink:    sink,
		Timeout: timeout,
	}
}

// Run produces exactly one result per target, emitted in input order.
// A failing target never aborts the run. Sink errors are collected and
// returned after every target has been probed.
func (r *Runner) Run(ctx context.Context, targets []domain.Target) ([]domain.ProbeResult, error) {
	results := make([]domain.ProbeResult, 0, len(targets))
	var emitErr error

	for _, t := range targets {
		cctx, cancel := context.WithTimeout(ctx, r.Timeout)
		res := r.Prober.Probe(cctx, t.URL)
		cancel()

		if !res.Up() && r.DiagnoseDNS {
			d := probe.DiagnoseDNS(probe.HostOf(t.URL))
			r.Logger.Info("dns_diagnosis",
				zap.String("host", d.Host),
				zap.String("class", d.Class),
				zap.Strings("nameservers", d.Nameservers),
				zap.String("cname", d.CNAME),
				zap.String("resolver_error", d.ResolverErr),
			)
		}

		r.Logger.Info("probe_done",
			zap.String("target", res.Target),
			zap.String("outcome", string(res.Outcome)),
			zap.Int("status", res.StatusCode),
			zap.Float64("latency_ms", res.LatencyMS),
		)

		if r.Sink != nil {
			if err := r.Sink.Emit(res); err != nil {
				emitErr = multierr.Append(emitErr, err)
			}
		}
		results = append(results, res)
	}
	return results, emitErr
}
