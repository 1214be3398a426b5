package memscan

import "fmt"

// scanInequality implements the predicate scanner (spec.md §4.5): for any
// predicate other than Equal/NotEqual, it steps by one byte across
// haystack, decodes a numeric key of width bytes at each offset, and
// tests the predicate against lo (and hi, for Between/NotBetween).
//
// The stride is deliberately one byte, not width: most alignments are not
// real values, but this mirrors how Cheat-Engine-style tools behave and
// lets a later "next scan" narrow the set. See spec.md §4.5 and §9 (open
// question: this implementation fixes the stride at 1 rather than the
// alternative of striding by width).
func scanInequality(haystack []byte, t LogicalType, width int, pred Predicate, lo, hi any) ([]int, error) {
	if width <= 0 || width > len(haystack) {
		return nil, nil
	}

	var matches []int
	last := len(haystack) - width
	for offset := 0; offset <= last; offset++ {
		key, err := NumericKey(t, haystack[offset:offset+width])
		if err != nil {
			return nil, err
		}

		ok, err := testPredicate(t, pred, key, lo, hi)
		if err != nil {
			return nil, err
		}
		if ok {
			matches = append(matches, offset)
		}
	}
	return matches, nil
}

func testPredicate(t LogicalType, pred Predicate, key, lo, hi any) (bool, error) {
	switch pred {
	case Greater:
		c, err := CompareKeys(t, key, lo)
		return c > 0, err
	case Less:
		c, err := CompareKeys(t, key, lo)
		return c < 0, err
	case GreaterOrEqual:
		c, err := CompareKeys(t, key, lo)
		return c >= 0, err
	case LessOrEqual:
		c, err := CompareKeys(t, key, lo)
		return c <= 0, err
	case Between:
		cLo, err := CompareKeys(t, key, lo)
		if err != nil {
			return false, err
		}
		cHi, err := CompareKeys(t, key, hi)
		if err != nil {
			return false, err
		}
		return cLo >= 0 && cHi <= 0, nil
	case NotBetween:
		cLo, err := CompareKeys(t, key, lo)
		if err != nil {
			return false, err
		}
		cHi, err := CompareKeys(t, key, hi)
		if err != nil {
			return false, err
		}
		return cLo < 0 || cHi > 0, nil
	default:
		return false, fmt.Errorf("%w: predicate scanner does not handle %v", ErrInvalidValue, pred)
	}
}

// validateRange checks lo <= hi for range predicates, per spec.md §7
// (ErrInvalidRange).
func validateRange(t LogicalType, lo, hi any) error {
	c, err := CompareKeys(t, lo, hi)
	if err != nil {
		return err
	}
	if c > 0 {
		return ErrInvalidRange
	}
	return nil
}
