package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSpinnerDraws(t *testing.T) {
	var buf syncBuffer
	s := newSpinner(context.Background(), "Laying out...")
	s.w = &buf
	s.start()
	time.Sleep(200 * time.Millisecond)
	s.stop()

	if !strings.Contains(buf.String(), "Laying out...") {
		t.Errorf("spinner output = %q", buf.String())
	}
	if s.interrupted() {
		t.Error("stopped spinner reports interruption")
	}
}

func TestSpinnerParentCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := newSpinner(ctx, "Testing...")
	s.w = &syncBuffer{}
	s.start()
	cancel()
	s.stop()

	if !s.interrupted() {
		t.Error("spinner should report interruption after parent cancel")
	}
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s := newSpinner(context.Background(), "Testing...")
	s.w = &syncBuffer{}
	s.start()
	s.stop()
	s.stop()
}

func TestSpinnerStopWithoutStart(t *testing.T) {
	s := newSpinner(context.Background(), "Testing...")
	s.stop()
}

func TestSpinnerFail(t *testing.T) {
	var buf bytes.Buffer
	captureOutput(t, &buf)

	s := newSpinner(context.Background(), "Testing...")
	s.w = &syncBuffer{}
	s.start()
	s.fail("Layout failed")

	if !strings.Contains(buf.String(), "Layout failed") {
		t.Errorf("fail() output = %q", buf.String())
	}
}

// captureOutput redirects status output to w for the duration of t.
func captureOutput(t *testing.T, w io.Writer) {
	t.Helper()
	prev := out
	out = w
	t.Cleanup(func() { out = prev })
}
