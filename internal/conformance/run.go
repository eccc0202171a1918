package conformance

import (
	"fmt"
	"time"

	"github.com/danmuck/sansio"
	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"
)

// Result is what one step observed.
type Result struct {
	Step  int
	Op    Op
	Value string
	OK    bool
	Err   string
}

func (r Result) String() string {
	switch {
	case r.Err != "":
		return fmt.Sprintf("#%d %s err=%q", r.Step, r.Op, r.Err)
	case r.Op.isPoll() && !r.OK:
		return fmt.Sprintf("#%d %s empty", r.Step, r.Op)
	case r.Op.isPoll():
		return fmt.Sprintf("#%d %s %q", r.Step, r.Op, r.Value)
	default:
		return fmt.Sprintf("#%d %s ok", r.Step, r.Op)
	}
}

type Trace []Result

// Run drives p through every step of s. Instants are epoch plus the step
// offset, and poll_timeout results are recorded relative to epoch.
func Run(p Proto, s Script, epoch time.Time, logger zerolog.Logger) Trace {
	trace := make(Trace, 0, len(s.Steps))
	for i, st := range s.Steps {
		r := Result{Step: i, Op: st.Op}
		var err error
		switch st.Op {
		case OpHandleRead:
			err = p.HandleRead(st.Arg)
		case OpHandleWrite:
			err = p.HandleWrite(st.Arg)
		case OpHandleEvent:
			err = p.HandleEvent(st.Arg)
		case OpHandleTimeout:
			err = p.HandleTimeout(epoch.Add(time.Duration(st.At)))
		case OpClose:
			err = p.Close()
		case OpPollRead:
			r.Value, r.OK = p.PollRead()
		case OpPollWrite:
			r.Value, r.OK = p.PollWrite()
		case OpPollEvent:
			r.Value, r.OK = p.PollEvent()
		case OpPollTimeout:
			var at time.Time
			at, r.OK = p.PollTimeout()
			if r.OK {
				r.Value = at.Sub(epoch).String()
			}
		default:
			err = fmt.Errorf("%w: %q", ErrUnknownOp, st.Op)
		}
		if err != nil {
			r.Err = err.Error()
		}
		logger.Debug().
			Str("script", s.Name).
			Int("step", i).
			Str("op", string(st.Op)).
			Str("value", r.Value).
			Bool("ok", r.OK).
			Str("err", r.Err).
			Msg("conformance step")
		trace = append(trace, r)
	}
	return trace
}

// Verify checks a trace against the expectations written into s.
func Verify(s Script, trace Trace) error {
	var errs *multierror.Error
	if len(trace) != len(s.Steps) {
		return fmt.Errorf("%s: trace has %d results for %d steps", s.Name, len(trace), len(s.Steps))
	}
	for i, st := range s.Steps {
		r := trace[i]
		if !st.Op.isPoll() {
			switch {
			case st.Fails && r.Err == "":
				errs = multierror.Append(errs, fmt.Errorf("%s: %s: expected failure", s.Name, r))
			case !st.Fails && r.Err != "":
				errs = multierror.Append(errs, fmt.Errorf("%s: %s: unexpected failure", s.Name, r))
			}
			continue
		}
		if st.Empty {
			if r.OK {
				errs = multierror.Append(errs, fmt.Errorf("%s: %s: expected empty", s.Name, r))
			}
			continue
		}
		if st.Want == "" {
			continue
		}
		if !r.OK {
			errs = multierror.Append(errs, fmt.Errorf("%s: %s: want %q", s.Name, r, st.Want))
			continue
		}
		if !sameValue(st.Op, st.Want, r.Value) {
			errs = multierror.Append(errs, fmt.Errorf("%s: %s: want %q", s.Name, r, st.Want))
		}
	}
	return errs.ErrorOrNil()
}

func sameValue(op Op, want, got string) bool {
	if op != OpPollTimeout {
		return want == got
	}
	w, err := time.ParseDuration(want)
	if err != nil {
		return false
	}
	g, err := time.ParseDuration(got)
	if err != nil {
		return false
	}
	return w == g
}

// Compare reports every position where two traces diverge.
func Compare(want, got Trace) error {
	var errs *multierror.Error
	n := min(len(want), len(got))
	for i := 0; i < n; i++ {
		if want[i] != got[i] {
			errs = multierror.Append(errs, fmt.Errorf("step %d: want %s, got %s", i, want[i], got[i]))
		}
	}
	if len(want) != len(got) {
		errs = multierror.Append(errs, fmt.Errorf("trace length: want %d, got %d", len(want), len(got)))
	}
	return errs.ErrorOrNil()
}

// Report is the outcome of running one script three ways.
type Report struct {
	Script   string
	Direct   Trace
	Borrowed Trace
	Boxed    Trace
}

// CheckAdapters runs s on three fresh fixtures: directly, through
// sansio.Borrow and through sansio.Box. It fails when either adapter's trace
// differs from the direct one or when the wrapped values end in a different
// state. The script's own expectations are left to Verify.
func CheckAdapters(newProto Factory, s Script, epoch time.Time, logger zerolog.Logger) (Report, error) {
	rep := Report{Script: s.Name}
	var errs *multierror.Error

	direct := newProto(epoch)
	rep.Direct = Run(direct, s, epoch, logger.With().Str("via", "direct").Logger())

	lent := newProto(epoch)
	borrow := sansio.Borrow(lent)
	rep.Borrowed = Run(borrow, s, epoch, logger.With().Str("via", "borrow").Logger())
	borrow.Release()
	if err := Compare(rep.Direct, rep.Borrowed); err != nil {
		errs = multierror.Append(errs, fmt.Errorf("%s: borrow: %w", s.Name, err))
	}

	box := sansio.Box(newProto(epoch))
	rep.Boxed = Run(box, s, epoch, logger.With().Str("via", "box").Logger())
	if err := Compare(rep.Direct, rep.Boxed); err != nil {
		errs = multierror.Append(errs, fmt.Errorf("%s: box: %w", s.Name, err))
	}

	if want, ok := snapshot(direct); ok {
		if got, _ := snapshot(lent); got != want {
			errs = multierror.Append(errs, fmt.Errorf("%s: borrow: final state %q, want %q", s.Name, got, want))
		}
		if got, _ := snapshot(box.Unwrap()); got != want {
			errs = multierror.Append(errs, fmt.Errorf("%s: box: final state %q, want %q", s.Name, got, want))
		}
	}
	return rep, errs.ErrorOrNil()
}

func snapshot(p Proto) (string, bool) {
	s, ok := p.(Snapshotter)
	if !ok {
		return "", false
	}
	return s.Snapshot(), true
}
