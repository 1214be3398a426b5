package memscan

import "testing"

func intsEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestKMPSearchBasic(t *testing.T) {
	haystack := []byte("abababab")
	needle := []byte("abab")
	got := kmpSearch(haystack, needle, kmpFailureFunction(needle))
	want := []int{0, 2, 4}
	if !intsEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestKMPSearchNoMatch(t *testing.T) {
	got := kmpSearch([]byte("xxxxx"), []byte("abc"), kmpFailureFunction([]byte("abc")))
	if got != nil {
		t.Fatalf("got %v, want nil", got)
	}
}

func TestKMPSearchNeedleLongerThanHaystack(t *testing.T) {
	got := kmpSearch([]byte("ab"), []byte("abc"), kmpFailureFunction([]byte("abc")))
	if got != nil {
		t.Fatalf("got %v, want nil", got)
	}
}

func TestKMPSearchOverlappingMatches(t *testing.T) {
	haystack := []byte("aaaa")
	needle := []byte("aa")
	got := kmpSearch(haystack, needle, kmpFailureFunction(needle))
	want := []int{0, 1, 2}
	if !intsEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestKMPSearchNotEqualComplementsMatches(t *testing.T) {
	haystack := []byte("aaba")
	needle := []byte("a")
	failure := kmpFailureFunction(needle)
	matches := kmpSearch(haystack, needle, failure)
	gaps := kmpSearchNotEqual(haystack, needle, failure)

	seen := make(map[int]bool)
	for _, m := range matches {
		seen[m] = true
	}
	for _, g := range gaps {
		if seen[g] {
			t.Fatalf("offset %d reported as both match and gap", g)
		}
	}
	if len(matches)+len(gaps) != len(haystack)-len(needle)+1 {
		t.Fatalf("matches+gaps = %d, want %d", len(matches)+len(gaps), len(haystack)-len(needle)+1)
	}
}

func TestKMPFailureFunctionKnownCase(t *testing.T) {
	failure := kmpFailureFunction([]byte("ababaca"))
	want := []int{0, 0, 1, 2, 3, 0, 1}
	if !intsEqual(failure, want) {
		t.Fatalf("got %v, want %v", failure, want)
	}
}
