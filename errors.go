package memscan

import "errors"

// Sentinel errors returned by the package. Callers compare against these
// with errors.Is; wrapped instances still carry the original message via
// %w.
var (
	// ErrProcessNotFound is returned by the Linux backend when no process
	// has the supplied PID. The Windows backend reports any OpenProcess
	// failure as ErrPermissionDenied, and name and window-title lookups in
	// package process report no match with process.ErrNotFound.
	ErrProcessNotFound = errors.New("memscan: process not found")

	// ErrPermissionDenied is returned when the OS refuses to open the
	// target with the requested rights, or when an operation requires a
	// permission bit the Session was not opened with.
	ErrPermissionDenied = errors.New("memscan: permission denied")

	// ErrClosedSession is returned by any operation on a Session after
	// Close has been called.
	ErrClosedSession = errors.New("memscan: session is closed")

	// ErrInvalidType is returned for an unknown LogicalType value.
	ErrInvalidType = errors.New("memscan: invalid type")

	// ErrInvalidValue is returned when a value cannot be represented in
	// the requested byte length (e.g. a string longer than the buffer, or
	// a Bytes value of the wrong length).
	ErrInvalidValue = errors.New("memscan: invalid value")

	// ErrInvalidRange is returned by Between/NotBetween predicates whose
	// lo sorts after hi.
	ErrInvalidRange = errors.New("memscan: invalid range, lo > hi")

	// ErrReadFailed is returned for a non-recoverable read at the
	// cross-process boundary (the single-value Read path; scan-time short
	// or failed reads are not errors, see scanIterator.advance).
	ErrReadFailed = errors.New("memscan: read failed")

	// ErrWriteFailed is returned for a short or failed write.
	ErrWriteFailed = errors.New("memscan: write failed")
)
