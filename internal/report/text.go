package report

import (
	"fmt"
	"io"

	"github.com/hamed0406/endpointprobe/internal/domain"
)

// TextSink writes one human-readable entry per result, in emit order,
// with a blank line between entries.
type TextSink struct {
	W            io.Writer
	PreviewLimit int
}

func NewTextSink(w io.Writer) *TextSink {
	return &TextSink{W: w, PreviewLimit: domain.DefaultBodyPreviewLimit}
}

func (s *TextSink) Emit(res domain.ProbeResult) error {
	limit := s.PreviewLimit
	if limit <= 0 {
		limit = domain.DefaultBodyPreviewLimit
	}

	var err error
	p := func(format string, args ...any) {
		if err == nil {
			_, err = fmt.Fprintf(s.W, format, args...)
		}
	}

	p("Testing %s...\n", res.Target)
	switch res.Outcome {
	case domain.OutcomeSuccess:
		p("  Status: %d\n", res.StatusCode)
		p("  Headers: %v\n", res.Headers)
		if res.BodyPreview != "" {
			p("  Content (first %d chars): %s\n", limit, res.BodyPreview)
		}
	case domain.OutcomeConnectionRefused:
		p("  ❌ Connection refused\n")
	case domain.OutcomeTimeout:
		p("  ⏰ Timeout\n")
	default:
		p("  ❌ Error: %s\n", res.Err)
	}
	p("\n")
	return err
}
