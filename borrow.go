package sansio

import "time"

// Borrowed is the transient-borrow adapter. It forwards every operation to a
// value it does not own, for as long as the borrow is held. The caller keeps
// ownership and sees every state change the adapter makes.
//
// After Release the adapter is inert: Handle* and Close return ErrReleased
// and every Poll* reports empty. The underlying value is untouched.
type Borrowed[Rin, Win, Ein, Rout, Wout, Eout any] struct {
	p Protocol[Rin, Win, Ein, Rout, Wout, Eout]
}

var _ Protocol[int, int, int, int, int, int] = (*Borrowed[int, int, int, int, int, int])(nil)

// Borrow wraps p for the duration of a borrow.
func Borrow[Rin, Win, Ein, Rout, Wout, Eout any](p Protocol[Rin, Win, Ein, Rout, Wout, Eout]) *Borrowed[Rin, Win, Ein, Rout, Wout, Eout] {
	return &Borrowed[Rin, Win, Ein, Rout, Wout, Eout]{p: p}
}

// Release ends the borrow. Safe to call more than once.
func (b *Borrowed[Rin, Win, Ein, Rout, Wout, Eout]) Release() {
	b.p = nil
}

// Held reports whether the borrow is still live.
func (b *Borrowed[Rin, Win, Ein, Rout, Wout, Eout]) Held() bool {
	return b.p != nil
}

func (b *Borrowed[Rin, Win, Ein, Rout, Wout, Eout]) HandleRead(msg Rin) error {
	if b.p == nil {
		return ErrReleased
	}
	return b.p.HandleRead(msg)
}

func (b *Borrowed[Rin, Win, Ein, Rout, Wout, Eout]) PollRead() (Rout, bool) {
	if b.p == nil {
		var zero Rout
		return zero, false
	}
	return b.p.PollRead()
}

func (b *Borrowed[Rin, Win, Ein, Rout, Wout, Eout]) HandleWrite(msg Win) error {
	if b.p == nil {
		return ErrReleased
	}
	return b.p.HandleWrite(msg)
}

func (b *Borrowed[Rin, Win, Ein, Rout, Wout, Eout]) PollWrite() (Wout, bool) {
	if b.p == nil {
		var zero Wout
		return zero, false
	}
	return b.p.PollWrite()
}

func (b *Borrowed[Rin, Win, Ein, Rout, Wout, Eout]) HandleEvent(evt Ein) error {
	if b.p == nil {
		return ErrReleased
	}
	return b.p.HandleEvent(evt)
}

func (b *Borrowed[Rin, Win, Ein, Rout, Wout, Eout]) PollEvent() (Eout, bool) {
	if b.p == nil {
		var zero Eout
		return zero, false
	}
	return b.p.PollEvent()
}

func (b *Borrowed[Rin, Win, Ein, Rout, Wout, Eout]) HandleTimeout(now time.Time) error {
	if b.p == nil {
		return ErrReleased
	}
	return b.p.HandleTimeout(now)
}

func (b *Borrowed[Rin, Win, Ein, Rout, Wout, Eout]) PollTimeout() (time.Time, bool) {
	if b.p == nil {
		return time.Time{}, false
	}
	return b.p.PollTimeout()
}

func (b *Borrowed[Rin, Win, Ein, Rout, Wout, Eout]) Close() error {
	if b.p == nil {
		return ErrReleased
	}
	return b.p.Close()
}
