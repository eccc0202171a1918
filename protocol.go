package sansio

import "time"

// Protocol is the contract every sans-io protocol implementor satisfies.
//
// Rin, Win and Ein are the read, write and event inputs. Rout, Wout and Eout
// are the values queued for the driver on the matching channel. Errors are
// implementor-defined; only the Handle* methods and Close are fallible and
// every Poll* reports absence through its boolean, never an error.
type Protocol[Rin, Win, Ein, Rout, Wout, Eout any] interface {
	// HandleRead feeds one inbound message. It may queue zero or more Rout.
	HandleRead(msg Rin) error
	// PollRead dequeues the oldest pending read output.
	PollRead() (Rout, bool)

	// HandleWrite feeds one outbound message. It may queue zero or more Wout.
	HandleWrite(msg Win) error
	// PollWrite dequeues the oldest pending write output.
	PollWrite() (Wout, bool)

	// HandleEvent feeds one out-of-band control signal.
	HandleEvent(evt Ein) error
	// PollEvent dequeues the oldest pending event output.
	PollEvent() (Eout, bool)

	// HandleTimeout advances time-driven state to now.
	HandleTimeout(now time.Time) error
	// PollTimeout reports the next instant the driver should call
	// HandleTimeout, or false when no timer is pending.
	PollTimeout() (time.Time, bool)

	// Close marks the instance terminal. Repeated calls must not panic.
	Close() error
}

// Base supplies the optional operations with their default behavior:
// events and timeouts are accepted and ignored, nothing is ever polled out,
// and Close succeeds. Embed it in implementors that need none of them.
type Base[Ein, Eout any] struct{}

func (Base[Ein, Eout]) HandleEvent(Ein) error { return nil }

func (Base[Ein, Eout]) PollEvent() (Eout, bool) {
	var zero Eout
	return zero, false
}

func (Base[Ein, Eout]) HandleTimeout(time.Time) error { return nil }

func (Base[Ein, Eout]) PollTimeout() (time.Time, bool) { return time.Time{}, false }

func (Base[Ein, Eout]) Close() error { return nil }
