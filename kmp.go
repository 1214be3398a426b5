package memscan

// kmpFailureFunction builds the KMP partial-match table for needle: for
// each prefix needle[:i+1], the length of its longest proper prefix that
// is also a suffix.
func kmpFailureFunction(needle []byte) []int {
	failure := make([]int, len(needle))
	k := 0
	for i := 1; i < len(needle); i++ {
		for k > 0 && needle[i] != needle[k] {
			k = failure[k-1]
		}
		if needle[i] == needle[k] {
			k++
		}
		failure[i] = k
	}
	return failure
}

// kmpSearch finds every offset in haystack at which needle occurs, in
// O(len(haystack)+len(needle)) using a precomputed failure function. It
// returns offsets in ascending order.
func kmpSearch(haystack, needle []byte, failure []int) []int {
	if len(needle) == 0 || len(needle) > len(haystack) {
		return nil
	}

	var matches []int
	k := 0
	for i := 0; i < len(haystack); i++ {
		for k > 0 && haystack[i] != needle[k] {
			k = failure[k-1]
		}
		if haystack[i] == needle[k] {
			k++
		}
		if k == len(needle) {
			matches = append(matches, i-k+1)
			k = failure[k-1]
		}
	}
	return matches
}

// kmpSearchNotEqual returns every starting offset in
// [0, len(haystack)-len(needle)] that is NOT a match for needle: it
// consumes the match stream and emits the gaps between consecutive
// matches, per spec.md §4.4.
func kmpSearchNotEqual(haystack, needle []byte, failure []int) []int {
	if len(needle) == 0 || len(needle) > len(haystack) {
		return nil
	}

	lastValid := len(haystack) - len(needle)
	matches := kmpSearch(haystack, needle, failure)

	var gaps []int
	last := 0
	for _, m := range matches {
		for i := last; i < m; i++ {
			gaps = append(gaps, i)
		}
		last = m + 1
	}
	for i := last; i <= lastValid; i++ {
		gaps = append(gaps, i)
	}
	return gaps
}
