package conformance

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

type Op string

const (
	OpHandleRead    Op = "handle_read"
	OpPollRead      Op = "poll_read"
	OpHandleWrite   Op = "handle_write"
	OpPollWrite     Op = "poll_write"
	OpHandleEvent   Op = "handle_event"
	OpPollEvent     Op = "poll_event"
	OpHandleTimeout Op = "handle_timeout"
	OpPollTimeout   Op = "poll_timeout"
	OpClose         Op = "close"
)

var ErrUnknownOp = errors.New("conformance: unknown op")

func (op Op) valid() bool {
	switch op {
	case OpHandleRead, OpPollRead, OpHandleWrite, OpPollWrite, OpHandleEvent,
		OpPollEvent, OpHandleTimeout, OpPollTimeout, OpClose:
		return true
	}
	return false
}

func (op Op) isPoll() bool {
	return op == OpPollRead || op == OpPollWrite || op == OpPollEvent || op == OpPollTimeout
}

// Offset is a virtual instant expressed as a duration after the run epoch.
type Offset time.Duration

func (o *Offset) UnmarshalText(text []byte) error {
	d, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return errors.Wrapf(err, "parse offset %q", string(text))
	}
	*o = Offset(d)
	return nil
}

func (o Offset) String() string { return time.Duration(o).String() }

// Step is one operation plus what the script expects from it.
//
// Handle* steps and close take Arg (handle_timeout takes At) and expect
// success unless Fails is set. Poll steps expect Want, or nothing at all
// when Empty is set; poll_timeout's Want is an offset such as "5s".
type Step struct {
	Op    Op     `toml:"op"`
	Arg   string `toml:"arg"`
	At    Offset `toml:"at"`
	Want  string `toml:"want"`
	Empty bool   `toml:"empty"`
	Fails bool   `toml:"fails"`
}

// Script is an ordered operation sequence, usually decoded from a vector file.
type Script struct {
	Name    string `toml:"name"`
	Fixture string `toml:"fixture"`
	Steps   []Step `toml:"step"`
}

func (s Script) Validate() error {
	if len(s.Steps) == 0 {
		return errors.Errorf("script %q has no steps", s.Name)
	}
	for i, st := range s.Steps {
		if !st.Op.valid() {
			return errors.Wrapf(ErrUnknownOp, "script %q step %d: %q", s.Name, i, st.Op)
		}
		if st.Op.isPoll() && st.Fails {
			return errors.Errorf("script %q step %d: %s cannot fail", s.Name, i, st.Op)
		}
		if st.Empty && st.Want != "" {
			return errors.Errorf("script %q step %d: empty and want are exclusive", s.Name, i)
		}
	}
	return nil
}

// LoadScript decodes and validates one TOML vector. The script name
// defaults to the file name without extension.
func LoadScript(path string) (Script, error) {
	var s Script
	meta, err := toml.DecodeFile(path, &s)
	if err != nil {
		return Script{}, errors.Wrapf(err, "load vector %s", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Script{}, errors.Errorf("load vector %s: unknown key %s", path, undecoded[0])
	}
	if strings.TrimSpace(s.Name) == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if err := s.Validate(); err != nil {
		return Script{}, errors.Wrapf(err, "load vector %s", path)
	}
	return s, nil
}

// LoadDir loads every *.toml vector in dir, ordered by file name.
func LoadDir(dir string) ([]Script, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "read vector dir %s", dir)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".toml" {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	out := make([]Script, 0, len(names))
	for _, name := range names {
		s, err := LoadScript(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
