package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

func quietSpinner(ctx context.Context, message string) (*Spinner, *bytes.Buffer) {
	var buf bytes.Buffer
	s := newSpinnerWithContext(ctx, message)
	s.out = &buf
	return s, &buf
}

func TestSpinnerDrawsMessage(t *testing.T) {
	s, buf := quietSpinner(context.Background(), "Coloring petersen.col...")
	s.Start()
	time.Sleep(200 * time.Millisecond)
	s.Stop()

	if !strings.Contains(buf.String(), "Coloring petersen.col...") {
		t.Errorf("output %q missing message", buf.String())
	}
	if s.Cancelled() {
		t.Error("Stop should not count as cancellation")
	}
}

func TestSpinnerSetMessage(t *testing.T) {
	s, buf := quietSpinner(context.Background(), "Benchmarking...")
	s.Start()
	time.Sleep(120 * time.Millisecond)
	s.SetMessage("Benchmarking... 3/12 runs")
	time.Sleep(200 * time.Millisecond)
	s.Stop()

	if !strings.Contains(buf.String(), "3/12 runs") {
		t.Errorf("output %q missing updated message", buf.String())
	}
}

func TestSpinnerWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s, _ := quietSpinner(ctx, "Testing with context...")
	s.Start()

	cancel()
	time.Sleep(100 * time.Millisecond)

	if !s.Cancelled() {
		t.Error("Spinner should be cancelled after context cancellation")
	}
	s.Stop()
}

func TestSpinnerWithTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	s, _ := quietSpinner(ctx, "Testing with timeout...")
	s.Start()
	time.Sleep(100 * time.Millisecond)

	if !s.Cancelled() {
		t.Error("Spinner should be cancelled after context timeout")
	}
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s, _ := quietSpinner(context.Background(), "Testing idempotent stop...")
	s.Start()

	s.Stop()
	s.Stop()
	s.Stop()
}

func TestSpinnerStopWithoutStart(t *testing.T) {
	s, _ := quietSpinner(context.Background(), "never started")

	finished := make(chan struct{})
	go func() {
		s.Stop()
		close(finished)
	}()
	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("Stop blocked on a spinner that was never started")
	}
}

func TestSpinnerStopWithMessages(t *testing.T) {
	s, _ := quietSpinner(context.Background(), "Testing success...")
	s.Start()
	time.Sleep(50 * time.Millisecond)
	s.StopWithSuccess("Done!")

	s, _ = quietSpinner(context.Background(), "Testing error...")
	s.Start()
	time.Sleep(50 * time.Millisecond)
	s.StopWithError("Failed!")
}
