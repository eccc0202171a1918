package conformance

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/danmuck/sansio"
)

// Proto is the instantiation every fixture and script uses.
type Proto = sansio.Protocol[string, string, string, string, string, string]

// Snapshotter exposes internal state so runs can be compared after the fact.
type Snapshotter interface {
	Snapshot() string
}

var (
	ErrEmptyMessage = errors.New("conformance: empty message")
	ErrUnknownEvent = errors.New("conformance: unknown event")
	ErrClosed       = errors.New("conformance: protocol closed")
)

// Splitter overrides only the required operations. A read is split into its
// first rune and the remainder; a write is queued unchanged.
type Splitter struct {
	sansio.Base[string, string]
	reads  sansio.Queue[string]
	writes sansio.Queue[string]
	seen   int
}

var _ Proto = (*Splitter)(nil)

func NewSplitter() *Splitter {
	return &Splitter{}
}

func (s *Splitter) HandleRead(msg string) error {
	if msg == "" {
		return ErrEmptyMessage
	}
	s.seen++
	_, n := utf8.DecodeRuneInString(msg)
	s.reads.Push(msg[:n])
	if rest := msg[n:]; rest != "" {
		s.reads.Push(rest)
	}
	return nil
}

func (s *Splitter) PollRead() (string, bool) { return s.reads.Pop() }

func (s *Splitter) HandleWrite(msg string) error {
	if msg == "" {
		return ErrEmptyMessage
	}
	s.seen++
	s.writes.Push(msg)
	return nil
}

func (s *Splitter) PollWrite() (string, bool) { return s.writes.Pop() }

func (s *Splitter) Snapshot() string {
	return fmt.Sprintf("splitter seen=%d reads=%d writes=%d", s.seen, s.reads.Len(), s.writes.Len())
}

// Countdown overrides every operation. Each write re-arms a deadline one
// interval after the latest instant it has observed; when the deadline
// fires it queues a "timeout" event. The "cancel" event clears the
// deadline and queues "cancelled". Close is terminal: later Handle* calls
// fail with ErrClosed and repeated Close calls succeed.
type Countdown struct {
	interval time.Duration
	now      time.Time
	deadline sansio.Deadline
	reads    sansio.Queue[string]
	writes   sansio.Queue[string]
	events   sansio.Queue[string]
	fired    int
	closes   int
}

var _ Proto = (*Countdown)(nil)

func NewCountdown(start time.Time, interval time.Duration) *Countdown {
	return &Countdown{interval: interval, now: start}
}

func (c *Countdown) closed() bool { return c.closes > 0 }

func (c *Countdown) HandleRead(msg string) error {
	if c.closed() {
		return ErrClosed
	}
	if msg == "" {
		return ErrEmptyMessage
	}
	c.reads.Push(msg)
	return nil
}

func (c *Countdown) PollRead() (string, bool) { return c.reads.Pop() }

func (c *Countdown) HandleWrite(msg string) error {
	if c.closed() {
		return ErrClosed
	}
	if msg == "" {
		return ErrEmptyMessage
	}
	c.writes.Push(msg)
	c.deadline.Reset(c.now.Add(c.interval))
	return nil
}

func (c *Countdown) PollWrite() (string, bool) { return c.writes.Pop() }

func (c *Countdown) HandleEvent(evt string) error {
	if c.closed() {
		return ErrClosed
	}
	switch evt {
	case "cancel":
		c.deadline.Clear()
		c.events.Push("cancelled")
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownEvent, evt)
	}
}

func (c *Countdown) PollEvent() (string, bool) { return c.events.Pop() }

func (c *Countdown) HandleTimeout(now time.Time) error {
	if c.closed() {
		return ErrClosed
	}
	if now.After(c.now) {
		c.now = now
	}
	if c.deadline.Expire(now) {
		c.fired++
		c.events.Push("timeout")
	}
	return nil
}

func (c *Countdown) PollTimeout() (time.Time, bool) { return c.deadline.Next() }

func (c *Countdown) Close() error {
	c.closes++
	c.deadline.Clear()
	return nil
}

func (c *Countdown) Snapshot() string {
	next := "none"
	if at, ok := c.deadline.Next(); ok {
		next = at.Sub(c.now).String()
	}
	return fmt.Sprintf("countdown next=%s fired=%d closes=%d reads=%d writes=%d events=%d",
		next, c.fired, c.closes, c.reads.Len(), c.writes.Len(), c.events.Len())
}

// Factory builds a fresh fixture anchored at epoch.
type Factory func(epoch time.Time) Proto

var fixtures = map[string]Factory{
	"splitter": func(time.Time) Proto { return NewSplitter() },
	"countdown": func(epoch time.Time) Proto {
		return NewCountdown(epoch, 5*time.Second)
	},
}

// Fixture looks up a reference fixture by name.
func Fixture(name string) (Factory, bool) {
	f, ok := fixtures[strings.ToLower(strings.TrimSpace(name))]
	return f, ok
}

func FixtureNames() []string {
	out := make([]string, 0, len(fixtures))
	for name := range fixtures {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
