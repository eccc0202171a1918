package conformance

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/danmuck/sansio/internal/testutil/testlog"
	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog/log"
)

var epoch = time.Unix(1700000000, 0)

func TestVectorsHoldDirectAndThroughAdapters(t *testing.T) {
	testlog.Start(t)
	scripts, err := LoadDir("testdata")
	if err != nil {
		t.Fatalf("load vectors: %v", err)
	}
	if len(scripts) != 5 {
		t.Fatalf("expected 5 vectors, got %d", len(scripts))
	}
	for _, s := range scripts {
		factory, ok := Fixture(s.Fixture)
		if !ok {
			t.Fatalf("%s: unknown fixture %q", s.Name, s.Fixture)
		}
		rep, err := CheckAdapters(factory, s, epoch, log.Logger)
		if err != nil {
			t.Fatalf("%s: %v", s.Name, err)
		}
		if err := Verify(s, rep.Direct); err != nil {
			t.Fatalf("%s: %v", s.Name, err)
		}
	}
}

func TestLoadScriptNamesFromFile(t *testing.T) {
	testlog.Start(t)
	path := filepath.Join(t.TempDir(), "anon.toml")
	body := "[[step]]\nop = \"poll_read\"\nempty = true\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write vector: %v", err)
	}
	s, err := LoadScript(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if s.Name != "anon" {
		t.Fatalf("unexpected name: %q", s.Name)
	}
}

func TestLoadScriptRejectsBadVectors(t *testing.T) {
	testlog.Start(t)
	cases := map[string]string{
		"unknown_op.toml":  "[[step]]\nop = \"poll_everything\"\n",
		"bad_offset.toml":  "[[step]]\nop = \"handle_timeout\"\nat = \"soon\"\n",
		"failing_poll.toml": "[[step]]\nop = \"poll_read\"\nfails = true\n",
		"unknown_key.toml": "[[step]]\nop = \"close\"\nretry = 3\n",
		"no_steps.toml":    "name = \"empty\"\n",
	}
	dir := t.TempDir()
	for name, body := range cases {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
		if _, err := LoadScript(path); err == nil {
			t.Fatalf("%s: expected load error", name)
		}
	}
	_, err := LoadScript(filepath.Join(dir, "unknown_op.toml"))
	if !errors.Is(err, ErrUnknownOp) {
		t.Fatalf("expected ErrUnknownOp, got %v", err)
	}
}

func TestVerifyReportsEveryMismatch(t *testing.T) {
	testlog.Start(t)
	s := Script{Name: "wrong", Steps: []Step{
		{Op: OpHandleRead, Arg: "xy"},
		{Op: OpPollRead, Want: "xy"},
		{Op: OpPollRead, Empty: true},
		{Op: OpHandleRead, Arg: "ok", Fails: true},
	}}
	trace := Run(NewSplitter(), s, epoch, log.Logger)
	err := Verify(s, trace)
	var merr *multierror.Error
	if !errors.As(err, &merr) {
		t.Fatalf("expected multierror, got %v", err)
	}
	if len(merr.Errors) != 3 {
		t.Fatalf("expected 3 mismatches, got %d: %v", len(merr.Errors), err)
	}
}

func TestCompareDetectsDivergence(t *testing.T) {
	testlog.Start(t)
	a := Trace{{Step: 0, Op: OpPollRead, Value: "a", OK: true}}
	b := Trace{{Step: 0, Op: OpPollRead}, {Step: 1, Op: OpClose}}
	err := Compare(a, b)
	if err == nil {
		t.Fatalf("expected divergence")
	}
	if !strings.Contains(err.Error(), "trace length") {
		t.Fatalf("length mismatch not reported: %v", err)
	}
	if err := Compare(a, a); err != nil {
		t.Fatalf("identical traces diverged: %v", err)
	}
}

func TestCountdownCancelClearsDeadline(t *testing.T) {
	testlog.Start(t)
	c := NewCountdown(epoch, 5*time.Second)
	if err := c.HandleWrite("ping"); err != nil {
		t.Fatalf("write: %v", err)
	}
	if at, ok := c.PollTimeout(); !ok || !at.Equal(epoch.Add(5*time.Second)) {
		t.Fatalf("unexpected deadline: %v %v", at, ok)
	}
	if err := c.HandleEvent("cancel"); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if _, ok := c.PollTimeout(); ok {
		t.Fatalf("deadline should be cleared")
	}
	if evt, ok := c.PollEvent(); !ok || evt != "cancelled" {
		t.Fatalf("unexpected event: %q %v", evt, ok)
	}
	if err := c.HandleEvent("reboot"); !errors.Is(err, ErrUnknownEvent) {
		t.Fatalf("expected ErrUnknownEvent, got %v", err)
	}
}

func TestCountdownRescheduleMovesDeadlineLater(t *testing.T) {
	testlog.Start(t)
	c := NewCountdown(epoch, 5*time.Second)
	_ = c.HandleWrite("one")
	if err := c.HandleTimeout(epoch.Add(2 * time.Second)); err != nil {
		t.Fatalf("timeout: %v", err)
	}
	_ = c.HandleWrite("two")
	at, ok := c.PollTimeout()
	if !ok || !at.Equal(epoch.Add(7*time.Second)) {
		t.Fatalf("expected rescheduled deadline at +7s, got %v %v", at.Sub(epoch), ok)
	}
	// a stale clock value must not pull the observed time backwards
	_ = c.HandleTimeout(epoch)
	_ = c.HandleWrite("three")
	if at, _ := c.PollTimeout(); !at.Equal(epoch.Add(7 * time.Second)) {
		t.Fatalf("unexpected deadline after stale tick: %v", at.Sub(epoch))
	}
}

func TestFixtureLookup(t *testing.T) {
	testlog.Start(t)
	if _, ok := Fixture(" Splitter "); !ok {
		t.Fatalf("expected case-insensitive lookup")
	}
	if _, ok := Fixture("quic"); ok {
		t.Fatalf("unexpected fixture")
	}
	names := FixtureNames()
	if len(names) != 2 || names[0] != "countdown" || names[1] != "splitter" {
		t.Fatalf("unexpected names: %v", names)
	}
}
