package sansio

// DrainRead polls the read channel to exhaustion and returns the outputs in
// the order they were queued. It returns nil when nothing was pending.
func DrainRead[Rin, Win, Ein, Rout, Wout, Eout any](p Protocol[Rin, Win, Ein, Rout, Wout, Eout]) []Rout {
	return drain(p.PollRead)
}

// DrainWrite polls the write channel to exhaustion.
func DrainWrite[Rin, Win, Ein, Rout, Wout, Eout any](p Protocol[Rin, Win, Ein, Rout, Wout, Eout]) []Wout {
	return drain(p.PollWrite)
}

// DrainEvent polls the event channel to exhaustion.
func DrainEvent[Rin, Win, Ein, Rout, Wout, Eout any](p Protocol[Rin, Win, Ein, Rout, Wout, Eout]) []Eout {
	return drain(p.PollEvent)
}

func drain[T any](poll func() (T, bool)) []T {
	var out []T
	for v, ok := poll(); ok; v, ok = poll() {
		out = append(out, v)
	}
	return out
}
