package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/zhuweiyou/memscan"
)

func parseLogicalType(s string) (memscan.LogicalType, error) {
	switch strings.ToLower(s) {
	case "bool":
		return memscan.Bool, nil
	case "int":
		return memscan.Int, nil
	case "float":
		return memscan.Float, nil
	case "text":
		return memscan.Text, nil
	case "bytes":
		return memscan.Bytes, nil
	default:
		return 0, fmt.Errorf("unknown type %q (want bool, int, float, text, or bytes)", s)
	}
}

func parsePredicate(s string) (memscan.Predicate, error) {
	switch strings.ToLower(s) {
	case "eq", "equal":
		return memscan.Equal, nil
	case "ne", "notequal":
		return memscan.NotEqual, nil
	case "gt", "greater":
		return memscan.Greater, nil
	case "lt", "less":
		return memscan.Less, nil
	case "ge", "greaterorequal":
		return memscan.GreaterOrEqual, nil
	case "le", "lessorequal":
		return memscan.LessOrEqual, nil
	case "between":
		return memscan.Between, nil
	case "notbetween":
		return memscan.NotBetween, nil
	default:
		return 0, fmt.Errorf("unknown predicate %q", s)
	}
}

// parseValue converts a flag string into the Go value Encode expects for
// t. For Bytes the flag string's raw bytes are used as-is (no hex
// decoding).
func parseValue(t memscan.LogicalType, raw string) (any, error) {
	switch t {
	case memscan.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid bool value %q: %w", raw, err)
		}
		return b, nil

	case memscan.Int:
		n, err := strconv.ParseInt(raw, 0, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid int value %q: %w", raw, err)
		}
		return n, nil

	case memscan.Float:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid float value %q: %w", raw, err)
		}
		return f, nil

	case memscan.Text:
		return raw, nil

	case memscan.Bytes:
		return []byte(raw), nil

	default:
		return nil, fmt.Errorf("unsupported type %v", t)
	}
}

func parseAddress(s string) (uint64, error) {
	addr, err := strconv.ParseUint(strings.TrimPrefix(strings.ToLower(s), "0x"), 16, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid address %q: %w", s, err)
	}
	return addr, nil
}

func permissionFromString(s string) (memscan.Permission, error) {
	switch strings.ToLower(s) {
	case "read_only", "readonly":
		return memscan.ReadOnly, nil
	case "write_only", "writeonly":
		return memscan.WriteOnly, nil
	case "read_write", "readwrite":
		return memscan.ReadWrite, nil
	case "all":
		return memscan.All, nil
	default:
		return 0, fmt.Errorf("unknown permission %q", s)
	}
}
