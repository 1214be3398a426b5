package memscan

import (
	"bytes"
	"math"
	"testing"
)

func TestEncodeDecodeBool(t *testing.T) {
	raw, err := Encode(Bool, 1, true)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	v, err := Decode(Bool, raw)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if v != true {
		t.Fatalf("got %v, want true", v)
	}
}

func TestEncodeDecodeInt(t *testing.T) {
	cases := []struct {
		length int
		value  int64
	}{
		{1, -12},
		{2, -1000},
		{4, 123456},
		{8, -9223372036854775808},
	}
	for _, c := range cases {
		raw, err := Encode(Int, c.length, c.value)
		if err != nil {
			t.Fatalf("Encode(%d): %v", c.length, err)
		}
		if len(raw) != c.length {
			t.Fatalf("Encode(%d) produced %d bytes", c.length, len(raw))
		}
		v, err := Decode(Int, raw)
		if err != nil {
			t.Fatalf("Decode(%d): %v", c.length, err)
		}
		if v != c.value {
			t.Fatalf("Int length %d: got %v, want %v", c.length, v, c.value)
		}
	}
}

func TestEncodeIntBadLength(t *testing.T) {
	if _, err := Encode(Int, 3, int64(1)); err == nil {
		t.Fatal("expected error for Int length 3")
	}
}

func TestEncodeFloatAlwaysEightBytes(t *testing.T) {
	raw, err := Encode(Float, 4, 3.5)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(raw) != 8 {
		t.Fatalf("Float encoded to %d bytes, want 8 regardless of requested length", len(raw))
	}
	v, err := Decode(Float, raw)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if v != 3.5 {
		t.Fatalf("got %v, want 3.5", v)
	}
}

func TestEncodeTextPadsAndTruncatesOnDecode(t *testing.T) {
	raw, err := Encode(Text, 8, "hi")
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !bytes.Equal(raw, []byte{'h', 'i', 0, 0, 0, 0, 0, 0}) {
		t.Fatalf("got % x", raw)
	}
	v, err := Decode(Text, raw)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if v != "hi" {
		t.Fatalf("got %q, want %q", v, "hi")
	}
}

func TestEncodeTextTooLong(t *testing.T) {
	if _, err := Encode(Text, 2, "hello"); err == nil {
		t.Fatal("expected error for overlong text")
	}
}

func TestEncodeBytesWrongLength(t *testing.T) {
	if _, err := Encode(Bytes, 4, []byte{1, 2}); err == nil {
		t.Fatal("expected error for mismatched bytes length")
	}
}

func TestCompareKeysFloatNaN(t *testing.T) {
	nan := math.NaN()
	if c, _ := CompareKeys(Float, nan, nan); c != 0 {
		t.Fatalf("NaN vs NaN: got %d, want 0", c)
	}
	if c, _ := CompareKeys(Float, nan, 1.0); c <= 0 {
		t.Fatalf("NaN vs 1.0: got %d, want > 0", c)
	}
	if c, _ := CompareKeys(Float, 1.0, nan); c >= 0 {
		t.Fatalf("1.0 vs NaN: got %d, want < 0", c)
	}
}

func TestCompareKeysInt(t *testing.T) {
	if c, _ := CompareKeys(Int, int64(1), int64(2)); c >= 0 {
		t.Fatalf("1 vs 2: got %d, want < 0", c)
	}
	if c, _ := CompareKeys(Int, int64(5), int64(5)); c != 0 {
		t.Fatalf("5 vs 5: got %d, want 0", c)
	}
}

func TestCompareKeysTextLexicographic(t *testing.T) {
	a, _ := NumericKey(Text, []byte("apple\x00\x00"))
	b, _ := NumericKey(Text, []byte("banana"))
	c, err := CompareKeys(Text, a, b)
	if err != nil {
		t.Fatalf("CompareKeys: %v", err)
	}
	if c >= 0 {
		t.Fatalf("got %d, want apple < banana", c)
	}
}

func TestNumericKeyBool(t *testing.T) {
	k, err := NumericKey(Bool, []byte{1})
	if err != nil {
		t.Fatalf("NumericKey: %v", err)
	}
	if k != int64(1) {
		t.Fatalf("got %v, want int64(1)", k)
	}
}
