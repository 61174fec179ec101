package runner

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/endpointprobe/internal/domain"
)

// fake prober returning scripted outcomes per URL
type fakeProber struct {
	outcomes map[string]domain.Outcome
}

func (f *fakeProber) Probe(ctx context.Context, target string) domain.ProbeResult {
	o, ok := f.outcomes[target]
	if !ok {
		o = domain.OutcomeSuccess
	}
	return domain.ProbeResult{Target: target, Outcome: o, CheckedAt: time.Now().UTC()}
}

type recordingSink struct {
	emitted []domain.ProbeResult
	fail    bool
}

func (s *recordingSink) Emit(res domain.ProbeResult) error {
	s.emitted = append(s.emitted, res)
	if s.fail {
		return errors.New("sink write failed")
	}
	return nil
}

func targets(urls ...string) []domain.Target {
	out := make([]domain.Target, 0, len(urls))
	for _, u := range urls {
		out = append(out, domain.Target{URL: u})
	}
	return out
}

func TestRunner_OneResultPerTargetInOrder(t *testing.T) {
	urls := []string{"http://a", "http://b", "http://c"}
	sink := &recordingSink{}
	r := New(zap.NewNop(), &fakeProber{}, sink, time.Second)

	results, err := r.Run(context.Background(), targets(urls...))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != len(urls) || len(sink.emitted) != len(urls) {
		t.Fatalf("want %d results, got %d returned / %d emitted", len(urls), len(results), len(sink.emitted))
	}
	for i, u := range urls {
		if results[i].Target != u {
			t.Fatalf("result %d out of order: want %s got %s", i, u, results[i].Target)
		}
		if sink.emitted[i].Target != u {
			t.Fatalf("emit %d out of order: want %s got %s", i, u, sink.emitted[i].Target)
		}
	}
}

func TestRunner_FailuresDoNotAbortRun(t *testing.T) {
	f := &fakeProber{outcomes: map[string]domain.Outcome{
		"http://down":   domain.OutcomeConnectionRefused,
		"http://slow":   domain.OutcomeTimeout,
		"http://broken": domain.OutcomeError,
	}}
	sink := &recordingSink{}
	r := New(zap.NewNop(), f, sink, time.Second)

	results, err := r.Run(context.Background(), targets("http://down", "http://slow", "http://broken", "http://up"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 4 {
		t.Fatalf("want 4 results despite failures, got %d", len(results))
	}
	if results[3].Outcome != domain.OutcomeSuccess {
		t.Fatalf("last target should still have been probed: %+v", results[3])
	}
}

func TestRunner_SinkErrorsCollectedNotFatal(t *testing.T) {
	sink := &recordingSink{fail: true}
	r := New(zap.NewNop(), &fakeProber{}, sink, time.Second)

	results, err := r.Run(context.Background(), targets("http://a", "http://b"))
	if err == nil {
		t.Fatalf("want combined sink error")
	}
	if len(results) != 2 {
		t.Fatalf("sink errors must not stop the run, got %d results", len(results))
	}
}

func TestRunner_NilSinkIsFine(t *testing.T) {
	r := New(zap.NewNop(), &fakeProber{}, nil, time.Second)
	results, err := r.Run(context.Background(), targets("http://a"))
	if err != nil || len(results) != 1 {
		t.Fatalf("want 1 result and no error, got %d, %v", len(results), err)
	}
}
