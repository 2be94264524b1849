package smt

import (
	"context"
	"strings"
	"testing"
	"time"
)

// TestProcessEchoTransport exercises the line transport against "cat"
// rather than a real solver: it verifies that commands are flushed and
// responses are read back one line at a time, without depending on z3
// being installed in the test environment.
func TestProcessEchoTransport(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	p, err := Start(ctx, "cat")
	if err != nil {
		t.Skipf("cat not available: %v", err)
	}
	defer p.Close()

	if err := p.Send("(check-sat)"); err != nil {
		t.Fatalf("send: %v", err)
	}
	line, err := p.readLine()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(line, "check-sat") {
		t.Fatalf("expected echoed command, got %q", line)
	}
}
