package notify

import (
	"context"
	"fmt"

	"go.uber.org/multierr"

	"github.com/hamed0406/endpointprobe/internal/domain"
)

// RunSummary condenses one probe pass for notification: how many
// targets failed and one line per failure.
type RunSummary struct {
	Failed int
	Total  int
	Lines  []string
}

func (s RunSummary) Headline() string {
	return fmt.Sprintf("%d/%d probe targets failed", s.Failed, s.Total)
}

// Summarize builds a RunSummary from a finished run. The second return
// is false when every target succeeded and there is nothing to send.
func Summarize(results []domain.ProbeResult) (RunSummary, bool) {
	sum := RunSummary{Total: len(results)}
	for _, r := range results {
		if r.Up() {
			continue
		}
		sum.Failed++
		line := fmt.Sprintf("%s: %s", r.Target, r.Outcome)
		if r.Err != "" {
			line += " (" + r.Err + ")"
		}
		sum.Lines = append(sum.Lines, line)
	}
	return sum, sum.Failed > 0
}

type Notifier interface {
	Send(ctx context.Context, sum RunSummary) error
}

// Multi fans a summary out to every configured notifier. All sends are
// attempted; errors are combined instead of short-circuiting.
type Multi []Notifier

func (m Multi) Send(ctx context.Context, sum RunSummary) error {
	var errs error
	for _, n := range m {
		if n == nil {
			continue
		}
		errs = multierr.Append(errs, n.Send(ctx, sum))
	}
	return errs
}
