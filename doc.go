// Package sansio defines the sans-io protocol contract.
//
// A protocol is pure synchronous state: a driver that owns the real socket
// and clock feeds it values through the Handle* methods and drains what it
// produced through the matching Poll* methods. Nothing in this package
// blocks, starts goroutines, or reads the wall clock.
//
// Ownership boundary:
// - the Protocol contract and its no-op defaults (Base)
// - the two delegation adapters (Borrowed, Boxed)
// - implementor toolkit (Queue, Deadline) and drain helpers
//
// Driver discipline per tick:
//
//	if err := p.HandleRead(msg); err != nil { ... }
//	for out, ok := p.PollRead(); ok; out, ok = p.PollRead() { ... }
//	next, ok := p.PollTimeout() // re-query after every Handle* call
//
// Read, write and event are independent channels. Handling input on one
// never produces output on another. PollTimeout exposes only the single
// earliest pending deadline; see Deadline for the scheduling policy.
//
// An instance must not be used from more than one goroutine at a time.
// Serialize access externally, typically one instance per connection.
package sansio
