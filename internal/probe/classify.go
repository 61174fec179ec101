package probe

import (
	"context"
	"errors"
	"net"
	"syscall"

	"github.com/hamed0406/endpointprobe/internal/domain"
)

// ClassifyError maps a transport error from the HTTP client onto the
// probe outcome taxonomy.
//
// Timeouts are checked first: a dial that exceeds the deadline counts as
// OutcomeTimeout, not OutcomeConnectionRefused. Refused and unreachable
// peers both map to OutcomeConnectionRefused. Everything else is
// OutcomeError.
func ClassifyError(err error) domain.Outcome {
	if err == nil {
		return domain.OutcomeSuccess
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.OutcomeTimeout
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return domain.OutcomeTimeout
	}
	if errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.EHOSTUNREACH) ||
		errors.Is(err, syscall.ENETUNREACH) {
		return domain.OutcomeConnectionRefused
	}
	return domain.OutcomeError
}
