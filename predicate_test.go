package memscan

import "testing"

func TestScanInequalityGreaterStridesByOne(t *testing.T) {
	// Two adjacent int32 values: 10 at offset 0, 20 at offset 4. Because
	// the scanner strides by 1 byte rather than by width, it also tests
	// every misaligned 4-byte window in between.
	haystack := encodeInt(10, 4)
	haystack = append(haystack, encodeInt(20, 4)...)

	matches, err := scanInequality(haystack, Int, 4, Greater, int64(15), nil)
	if err != nil {
		t.Fatalf("scanInequality: %v", err)
	}
	if len(matches) != 4 {
		t.Fatalf("got %d matches, want 4 (byte offsets 1..4; offset 0 holds 10)", len(matches))
	}
	if matches[len(matches)-1] != 4 {
		t.Fatalf("last match at %d, want 4 (the aligned 20)", matches[len(matches)-1])
	}
}

func TestScanInequalityBetween(t *testing.T) {
	haystack := encodeInt(5, 4)
	matches, err := scanInequality(haystack, Int, 4, Between, int64(0), int64(10))
	if err != nil {
		t.Fatalf("scanInequality: %v", err)
	}
	if len(matches) != 1 || matches[0] != 0 {
		t.Fatalf("got %v, want [0]", matches)
	}
}

func TestScanInequalityWidthLargerThanHaystack(t *testing.T) {
	matches, err := scanInequality([]byte{1, 2}, Int, 4, Greater, int64(0), nil)
	if err != nil {
		t.Fatalf("scanInequality: %v", err)
	}
	if matches != nil {
		t.Fatalf("got %v, want nil", matches)
	}
}

func TestValidateRangeRejectsInverted(t *testing.T) {
	err := validateRange(Int, int64(10), int64(5))
	if err != ErrInvalidRange {
		t.Fatalf("got %v, want ErrInvalidRange", err)
	}
}

func TestValidateRangeAcceptsEqualBounds(t *testing.T) {
	if err := validateRange(Int, int64(5), int64(5)); err != nil {
		t.Fatalf("validateRange: %v", err)
	}
}
