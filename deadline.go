package sansio

import "time"

// Deadline is the single pending timeout a protocol exposes through
// PollTimeout. It is absent until scheduled and absent again once fired or
// cleared. The zero value is absent.
//
// Logically distinct timers are coalesced with Schedule, which keeps the
// earliest instant; only that one is ever reported. Reset moves the
// deadline later as well as earlier.
type Deadline struct {
	at  time.Time
	set bool
}

// Schedule arms the deadline at t unless an earlier one is already pending.
func (d *Deadline) Schedule(t time.Time) {
	if d.set && !t.Before(d.at) {
		return
	}
	d.at = t
	d.set = true
}

// Reset arms the deadline at t, replacing any pending one.
func (d *Deadline) Reset(t time.Time) {
	d.at = t
	d.set = true
}

func (d *Deadline) Clear() {
	d.at = time.Time{}
	d.set = false
}

// Next is the PollTimeout view of the deadline.
func (d *Deadline) Next() (time.Time, bool) {
	return d.at, d.set
}

// Due reports whether now is at or after a pending deadline.
func (d *Deadline) Due(now time.Time) bool {
	return d.set && !now.Before(d.at)
}

// Expire fires the deadline if it is due at now and clears it. A now before
// the pending instant leaves the deadline armed and returns false.
func (d *Deadline) Expire(now time.Time) bool {
	if !d.Due(now) {
		return false
	}
	d.Clear()
	return true
}
