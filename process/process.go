// Package process implements the process-identification helpers spec.md
// §1 treats as external collaborators: turning a PID, a process name, or
// (on Windows) a window title into the PID a memscan.Session attaches to.
// None of this is part of the scanning core; it exists only so the
// Session factory spec.md §6 describes can be keyed by any one of the
// three.
package process

import (
	"errors"
	"fmt"
)

// ErrAmbiguousTarget is returned when more than one of pid/name/title is
// supplied to Resolve, or none at all.
var ErrAmbiguousTarget = errors.New("process: exactly one of pid, name, or window title must be set")

// ErrUnsupported is returned by window-title lookup on platforms that
// don't have the concept (everything but Windows).
var ErrUnsupported = errors.New("process: window title lookup is not supported on this platform")

// ErrNotFound is returned when a name or title lookup matches no process.
var ErrNotFound = errors.New("process: no matching process found")

// Target names the process a caller wants to resolve to a PID. Exactly
// one field must be set.
type Target struct {
	PID         uint32
	ProcessName string
	WindowTitle string
}

// Resolve turns a Target into a concrete PID. If ProcessName matches more
// than one running process, the lowest PID is returned — callers that
// need all matches should use ByName directly.
func Resolve(t Target) (uint32, error) {
	set := 0
	if t.PID != 0 {
		set++
	}
	if t.ProcessName != "" {
		set++
	}
	if t.WindowTitle != "" {
		set++
	}
	if set != 1 {
		return 0, ErrAmbiguousTarget
	}

	switch {
	case t.PID != 0:
		return t.PID, nil

	case t.ProcessName != "":
		pids, err := ByName(t.ProcessName)
		if err != nil {
			return 0, err
		}
		if len(pids) == 0 {
			return 0, fmt.Errorf("%w: %s", ErrNotFound, t.ProcessName)
		}
		best := pids[0]
		for _, p := range pids[1:] {
			if p < best {
				best = p
			}
		}
		return best, nil

	default:
		return ByWindowTitle(t.WindowTitle)
	}
}
