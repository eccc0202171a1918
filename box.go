package sansio

import "time"

// Boxed is the owned-indirection adapter. It takes ownership of an
// implementor and exposes it behind one uniform type, so protocols with
// different concrete types but the same type parameters can share a slice,
// map or field. Every call is forwarded unchanged.
//
// A Boxed built from a nil protocol reports ErrNilProtocol from Handle* and
// Close and is always empty on Poll*.
type Boxed[Rin, Win, Ein, Rout, Wout, Eout any] struct {
	inner Protocol[Rin, Win, Ein, Rout, Wout, Eout]
}

var _ Protocol[int, int, int, int, int, int] = (*Boxed[int, int, int, int, int, int])(nil)

// Box takes ownership of p. The caller must not use p directly afterwards.
func Box[Rin, Win, Ein, Rout, Wout, Eout any](p Protocol[Rin, Win, Ein, Rout, Wout, Eout]) *Boxed[Rin, Win, Ein, Rout, Wout, Eout] {
	return &Boxed[Rin, Win, Ein, Rout, Wout, Eout]{inner: p}
}

// Unwrap gives the owned value back.
func (b *Boxed[Rin, Win, Ein, Rout, Wout, Eout]) Unwrap() Protocol[Rin, Win, Ein, Rout, Wout, Eout] {
	return b.inner
}

func (b *Boxed[Rin, Win, Ein, Rout, Wout, Eout]) HandleRead(msg Rin) error {
	if b.inner == nil {
		return ErrNilProtocol
	}
	return b.inner.HandleRead(msg)
}

func (b *Boxed[Rin, Win, Ein, Rout, Wout, Eout]) PollRead() (Rout, bool) {
	if b.inner == nil {
		var zero Rout
		return zero, false
	}
	return b.inner.PollRead()
}

func (b *Boxed[Rin, Win, Ein, Rout, Wout, Eout]) HandleWrite(msg Win) error {
	if b.inner == nil {
		return ErrNilProtocol
	}
	return b.inner.HandleWrite(msg)
}

func (b *Boxed[Rin, Win, Ein, Rout, Wout, Eout]) PollWrite() (Wout, bool) {
	if b.inner == nil {
		var zero Wout
		return zero, false
	}
	return b.inner.PollWrite()
}

func (b *Boxed[Rin, Win, Ein, Rout, Wout, Eout]) HandleEvent(evt Ein) error {
	if b.inner == nil {
		return ErrNilProtocol
	}
	return b.inner.HandleEvent(evt)
}

func (b *Boxed[Rin, Win, Ein, Rout, Wout, Eout]) PollEvent() (Eout, bool) {
	if b.inner == nil {
		var zero Eout
		return zero, false
	}
	return b.inner.PollEvent()
}

func (b *Boxed[Rin, Win, Ein, Rout, Wout, Eout]) HandleTimeout(now time.Time) error {
	if b.inner == nil {
		return ErrNilProtocol
	}
	return b.inner.HandleTimeout(now)
}

func (b *Boxed[Rin, Win, Ein, Rout, Wout, Eout]) PollTimeout() (time.Time, bool) {
	if b.inner == nil {
		return time.Time{}, false
	}
	return b.inner.PollTimeout()
}

func (b *Boxed[Rin, Win, Ein, Rout, Wout, Eout]) Close() error {
	if b.inner == nil {
		return ErrNilProtocol
	}
	return b.inner.Close()
}
