package memscan

import "fmt"

// LogicalType is the closed set of value shapes the codec and scanner
// understand. The zero value is not a valid type; always use one of the
// named constants.
type LogicalType int

const (
	// Bool is one byte: 0 is false, any non-zero byte is true.
	Bool LogicalType = iota + 1
	// Int is a signed two's-complement integer of length 1, 2, 4, or 8
	// bytes, encoded in host byte order.
	Int
	// Float is always IEEE-754 binary64 (8 bytes), regardless of the
	// length the caller asked for. Smaller requested lengths lose no
	// precision because the on-wire width never shrinks.
	Float
	// Text is a fixed-width buffer of the target's native narrow
	// encoding, NUL-padded; decoding stops at the first NUL byte.
	Text
	// Bytes is a raw fixed-width buffer with no decoding.
	Bytes
)

func (t LogicalType) String() string {
	switch t {
	case Bool:
		return "Bool"
	case Int:
		return "Int"
	case Float:
		return "Float"
	case Text:
		return "Text"
	case Bytes:
		return "Bytes"
	default:
		return fmt.Sprintf("LogicalType(%d)", int(t))
	}
}

func (t LogicalType) valid() bool {
	return t >= Bool && t <= Bytes
}

// Predicate is the closed set of scan comparisons.
type Predicate int

const (
	Equal Predicate = iota + 1
	NotEqual
	Greater
	Less
	GreaterOrEqual
	LessOrEqual
	Between
	NotBetween
)

func (p Predicate) String() string {
	switch p {
	case Equal:
		return "Equal"
	case NotEqual:
		return "NotEqual"
	case Greater:
		return "Greater"
	case Less:
		return "Less"
	case GreaterOrEqual:
		return "GreaterOrEqual"
	case LessOrEqual:
		return "LessOrEqual"
	case Between:
		return "Between"
	case NotBetween:
		return "NotBetween"
	default:
		return fmt.Sprintf("Predicate(%d)", int(p))
	}
}

// isEquality reports whether the predicate is served by the KMP substring
// search rather than the byte-stride predicate scanner.
func (p Predicate) isEquality() bool {
	return p == Equal || p == NotEqual
}

// RegionBacking distinguishes private (process-owned) memory from
// shared/mapped memory. Windows derives it from MEMORY_BASIC_INFORMATION's
// Type field; Linux derives it from the 's'/'p' bit in /proc/<pid>/maps
// permissions.
type RegionBacking int

const (
	BackingUnknown RegionBacking = iota
	BackingPrivate
	BackingShared
)

func (b RegionBacking) String() string {
	switch b {
	case BackingPrivate:
		return "private"
	case BackingShared:
		return "shared"
	default:
		return "unknown"
	}
}

// RegionDescriptor describes one contiguous span of the target's virtual
// address space, uniform in protection and backing.
//
// Invariants (checked by filterRegions in region.go before a scan): Size > 0;
// BaseAddress+Size does not overflow uint64; regions produced by one
// enumeration do not overlap and are yielded in ascending BaseAddress
// order.
type RegionDescriptor struct {
	BaseAddress uint64
	Size        uint64
	Readable    bool
	Writable    bool
	Executable  bool
	Shared      bool
	Backing     RegionBacking
}

func (r RegionDescriptor) End() uint64 {
	return r.BaseAddress + r.Size
}

// Permission is the caller-facing permission-set enumeration, mapped
// internally to platform rights by each backend's openBackend.
type Permission int

const (
	// ReadOnly grants read() and search(); write() fails with
	// ErrPermissionDenied.
	ReadOnly Permission = iota + 1
	// WriteOnly grants write() only; read() and search() fail.
	WriteOnly
	// ReadWrite grants read(), write(), and search().
	ReadWrite
	// All grants the same rights as ReadWrite in every backend. The
	// Windows backend requests PROCESS_QUERY_INFORMATION for every
	// permission set; Linux has no separate open step.
	All
)

func (p Permission) canRead() bool  { return p == ReadOnly || p == ReadWrite || p == All }
func (p Permission) canWrite() bool { return p == WriteOnly || p == ReadWrite || p == All }

// ProgressInfo reports the fraction of the target's scannable footprint
// that has been consumed so far.
type ProgressInfo struct {
	MemoryTotal uint64
	Progress    float64 // in [0.0, 1.0], monotonically non-decreasing within a scan
}

// ScanMatch is one result emitted by a scan: the address at which the
// predicate held, and — when progress reporting was requested — the
// progress snapshot at the moment the match was found.
type ScanMatch struct {
	Address  uint64
	Progress ProgressInfo // zero value when progress reporting was not requested
}

// ScanValueMatch pairs an address with the value found there; returned by
// Session.SearchByAddresses ("next scan" re-verification).
type ScanValueMatch struct {
	Address uint64
	Value   any
}
