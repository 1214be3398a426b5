package memscan

import (
	"encoding/binary"
	"fmt"
	"math"
	"strings"
)

// Encode produces a byte buffer of exactly length bytes that a byte-for-byte
// equality check will match against the target's in-memory representation.
//
// For Int, value is truncated to length bytes in host byte order (the
// scanner assumes the target and the inspector process share endianness;
// cross-endian scanning is not supported). For Float,
// length is ignored and 8 bytes of binary64 are always emitted, to
// preserve precision regardless of what the caller asked for. For Bool,
// one byte: 0 or 1. For Text, the string is encoded as bytes and
// right-padded with NUL to length; longer strings fail. For Bytes, the
// supplied buffer must already be length bytes.
func Encode(t LogicalType, length int, value any) ([]byte, error) {
	if !t.valid() {
		return nil, fmt.Errorf("%w: %v", ErrInvalidType, t)
	}
	if t != Float && length <= 0 {
		return nil, fmt.Errorf("%w: length must be positive", ErrInvalidValue)
	}

	switch t {
	case Bool:
		b, ok := value.(bool)
		if !ok {
			return nil, fmt.Errorf("%w: Bool requires a bool value, got %T", ErrInvalidValue, value)
		}
		out := make([]byte, length)
		if b {
			out[0] = 1
		}
		return out, nil

	case Int:
		if length != 1 && length != 2 && length != 4 && length != 8 {
			return nil, fmt.Errorf("%w: Int length must be 1, 2, 4, or 8, got %d", ErrInvalidValue, length)
		}
		v, err := toInt64(value)
		if err != nil {
			return nil, err
		}
		return encodeInt(v, length), nil

	case Float:
		v, err := toFloat64(value)
		if err != nil {
			return nil, err
		}
		out := make([]byte, 8)
		binary.NativeEndian.PutUint64(out, math.Float64bits(v))
		return out, nil

	case Text:
		s, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("%w: Text requires a string value, got %T", ErrInvalidValue, value)
		}
		raw := []byte(s)
		if len(raw) > length {
			return nil, fmt.Errorf("%w: text %q is %d bytes, longer than length %d", ErrInvalidValue, s, len(raw), length)
		}
		out := make([]byte, length)
		copy(out, raw)
		return out, nil

	case Bytes:
		raw, ok := value.([]byte)
		if !ok {
			return nil, fmt.Errorf("%w: Bytes requires a []byte value, got %T", ErrInvalidValue, value)
		}
		if len(raw) != length {
			return nil, fmt.Errorf("%w: bytes value is %d bytes, want exactly %d", ErrInvalidValue, len(raw), length)
		}
		out := make([]byte, length)
		copy(out, raw)
		return out, nil

	default:
		return nil, fmt.Errorf("%w: %v", ErrInvalidType, t)
	}
}

// Decode is the inverse of Encode: it reconstructs a typed value from raw
// bytes copied out of the target. For Text it returns the prefix up to the
// first NUL byte.
func Decode(t LogicalType, raw []byte) (any, error) {
	if !t.valid() {
		return nil, fmt.Errorf("%w: %v", ErrInvalidType, t)
	}

	switch t {
	case Bool:
		if len(raw) < 1 {
			return nil, fmt.Errorf("%w: Bool needs at least 1 byte", ErrInvalidValue)
		}
		return raw[0] != 0, nil

	case Int:
		n, err := decodeInt(raw)
		if err != nil {
			return nil, err
		}
		return n, nil

	case Float:
		if len(raw) < 8 {
			return nil, fmt.Errorf("%w: Float needs 8 bytes, got %d", ErrInvalidValue, len(raw))
		}
		bits := binary.NativeEndian.Uint64(raw[:8])
		return math.Float64frombits(bits), nil

	case Text:
		if i := indexNUL(raw); i >= 0 {
			return string(raw[:i]), nil
		}
		return string(raw), nil

	case Bytes:
		out := make([]byte, len(raw))
		copy(out, raw)
		return out, nil

	default:
		return nil, fmt.Errorf("%w: %v", ErrInvalidType, t)
	}
}

// NumericKey returns a comparable key for predicates other than equality.
// For Bool and Int it widens to int64 — sufficient without loss, since the
// widest supported integer width (8 bytes) already is int64. For Float it
// is the decoded float64. For Text and Bytes it is the raw slice, compared
// lexicographically. See CompareKeys for the ordering, including the NaN
// rule spec.md §4.1 calls out.
func NumericKey(t LogicalType, raw []byte) (any, error) {
	switch t {
	case Bool:
		if len(raw) < 1 {
			return nil, fmt.Errorf("%w: Bool needs at least 1 byte", ErrInvalidValue)
		}
		if raw[0] != 0 {
			return int64(1), nil
		}
		return int64(0), nil

	case Int:
		return decodeInt(raw)

	case Float:
		v, err := Decode(Float, raw)
		if err != nil {
			return nil, err
		}
		return v.(float64), nil

	case Text, Bytes:
		out := make([]byte, len(raw))
		copy(out, raw)
		return out, nil

	default:
		return nil, fmt.Errorf("%w: %v", ErrInvalidType, t)
	}
}

// CompareKeys orders two NumericKey results of the same LogicalType,
// returning a negative number, zero, or a positive number as a < b, a == b,
// or a > b. Floats use IEEE ordering except that NaN sorts after every
// other value and compares equal to itself, matching the documented
// predicate-testing behavior for Float scans.
func CompareKeys(t LogicalType, a, b any) (int, error) {
	switch t {
	case Bool, Int:
		x, ok1 := a.(int64)
		y, ok2 := b.(int64)
		if !ok1 || !ok2 {
			return 0, fmt.Errorf("%w: expected int64 keys for %v", ErrInvalidValue, t)
		}
		switch {
		case x < y:
			return -1, nil
		case x > y:
			return 1, nil
		default:
			return 0, nil
		}

	case Float:
		x, ok1 := a.(float64)
		y, ok2 := b.(float64)
		if !ok1 || !ok2 {
			return 0, fmt.Errorf("%w: expected float64 keys for Float", ErrInvalidValue)
		}
		return compareFloat(x, y), nil

	case Text, Bytes:
		x, ok1 := a.([]byte)
		y, ok2 := b.([]byte)
		if !ok1 || !ok2 {
			return 0, fmt.Errorf("%w: expected []byte keys for %v", ErrInvalidValue, t)
		}
		return strings.Compare(string(x), string(y)), nil

	default:
		return 0, fmt.Errorf("%w: %v", ErrInvalidType, t)
	}
}

func compareFloat(x, y float64) int {
	xNaN, yNaN := math.IsNaN(x), math.IsNaN(y)
	switch {
	case xNaN && yNaN:
		return 0
	case xNaN:
		return 1
	case yNaN:
		return -1
	case x < y:
		return -1
	case x > y:
		return 1
	default:
		return 0
	}
}

func encodeInt(v int64, length int) []byte {
	out := make([]byte, length)
	switch length {
	case 1:
		out[0] = byte(v)
	case 2:
		binary.NativeEndian.PutUint16(out, uint16(v))
	case 4:
		binary.NativeEndian.PutUint32(out, uint32(v))
	case 8:
		binary.NativeEndian.PutUint64(out, uint64(v))
	}
	return out
}

// decodeInt reads a signed, sign-extended int64 out of a 1/2/4/8-byte
// native-order buffer. Buffers of any other length are rejected with
// ErrInvalidValue.
func decodeInt(raw []byte) (int64, error) {
	switch len(raw) {
	case 1:
		return int64(int8(raw[0])), nil
	case 2:
		return int64(int16(binary.NativeEndian.Uint16(raw))), nil
	case 4:
		return int64(int32(binary.NativeEndian.Uint32(raw))), nil
	case 8:
		return int64(binary.NativeEndian.Uint64(raw)), nil
	default:
		return 0, fmt.Errorf("%w: Int length must be 1, 2, 4, or 8, got %d", ErrInvalidValue, len(raw))
	}
}

func toInt64(value any) (int64, error) {
	switch v := value.(type) {
	case int:
		return int64(v), nil
	case int8:
		return int64(v), nil
	case int16:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	case uint:
		return int64(v), nil
	case uint8:
		return int64(v), nil
	case uint16:
		return int64(v), nil
	case uint32:
		return int64(v), nil
	case uint64:
		return int64(v), nil
	default:
		return 0, fmt.Errorf("%w: Int requires an integer value, got %T", ErrInvalidValue, value)
	}
}

func toFloat64(value any) (float64, error) {
	switch v := value.(type) {
	case float32:
		return float64(v), nil
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	default:
		return 0, fmt.Errorf("%w: Float requires a numeric value, got %T", ErrInvalidValue, value)
	}
}

func indexNUL(raw []byte) int {
	for i, b := range raw {
		if b == 0 {
			return i
		}
	}
	return -1
}
