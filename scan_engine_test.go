package memscan

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectMatches(t *testing.T, it *scanIterator) []uint64 {
	t.Helper()
	var addrs []uint64
	for {
		m, ok := it.Next()
		if !ok {
			break
		}
		addrs = append(addrs, m.Address)
	}
	require.NoError(t, it.Err())
	return addrs
}

func TestScanIteratorEqualFindsAllOccurrences(t *testing.T) {
	data := append([]byte{0, 0}, append(encodeInt(42, 4), append([]byte{0, 0, 0}, encodeInt(42, 4)...)...)...)
	b := newFakeBackend(0x1000, data)

	req := scanRequest{logicalType: Int, length: 4, predicate: Equal, needle: encodeInt(42, 4), chunkCap: defaultChunkCap}
	it, err := newScanIterator(context.Background(), b, req)
	require.NoError(t, err)

	addrs := collectMatches(t, it)
	assert.Equal(t, []uint64{0x1002, 0x1009}, addrs)
}

func TestScanIteratorChunkBoundaryDoesNotDropOrDuplicate(t *testing.T) {
	needle := []byte("needle123")
	data := make([]byte, 0)
	for i := 0; i < 40; i++ {
		data = append(data, 'x')
	}
	data = append(data, needle...)
	for i := 0; i < 40; i++ {
		data = append(data, 'x')
	}
	b := newFakeBackend(0x2000, data)

	// Force a tiny chunk cap so the needle straddles a chunk boundary.
	req := scanRequest{logicalType: Bytes, length: len(needle), predicate: Equal, needle: needle, chunkCap: 30}
	it, err := newScanIterator(context.Background(), b, req)
	require.NoError(t, err)

	addrs := collectMatches(t, it)
	require.Len(t, addrs, 1)
	assert.Equal(t, uint64(0x2000+40), addrs[0])
}

func TestScanIteratorBetweenPredicate(t *testing.T) {
	data := append(encodeInt(5, 4), encodeInt(50, 4)...)
	b := newFakeBackend(0x3000, data)

	req := scanRequest{logicalType: Int, length: 4, predicate: Between, lo: int64(0), hi: int64(10), chunkCap: defaultChunkCap}
	it, err := newScanIterator(context.Background(), b, req)
	require.NoError(t, err)

	addrs := collectMatches(t, it)
	assert.Contains(t, addrs, uint64(0x3000))
	assert.NotContains(t, addrs, uint64(0x3004))
}

func TestScanIteratorWritableOnlyFiltersRegions(t *testing.T) {
	b := newFakeBackend(0x4000, encodeInt(1, 4))
	b.writ = false

	req := scanRequest{logicalType: Int, length: 4, predicate: Equal, needle: encodeInt(1, 4), writableOnly: true, chunkCap: defaultChunkCap}
	it, err := newScanIterator(context.Background(), b, req)
	require.NoError(t, err)

	addrs := collectMatches(t, it)
	assert.Empty(t, addrs)
}

func TestScanIteratorProgressMonotonic(t *testing.T) {
	data := make([]byte, 0)
	for i := 0; i < 5; i++ {
		data = append(data, encodeInt(7, 4)...)
	}
	b := newFakeBackend(0x5000, data)

	req := scanRequest{logicalType: Int, length: 4, predicate: Equal, needle: encodeInt(7, 4), progress: true, chunkCap: defaultChunkCap}
	it, err := newScanIterator(context.Background(), b, req)
	require.NoError(t, err)

	last := -1.0
	for {
		m, ok := it.Next()
		if !ok {
			break
		}
		assert.GreaterOrEqual(t, m.Progress.Progress, last)
		last = m.Progress.Progress
	}
	require.NoError(t, it.Err())
	assert.LessOrEqual(t, last, 1.0)
	assert.Greater(t, last, 0.0)
}

func TestScanIteratorCloseEarlyStopsIteration(t *testing.T) {
	data := make([]byte, 0)
	for i := 0; i < 5; i++ {
		data = append(data, encodeInt(9, 4)...)
	}
	b := newFakeBackend(0x6000, data)

	req := scanRequest{logicalType: Int, length: 4, predicate: Equal, needle: encodeInt(9, 4), chunkCap: defaultChunkCap}
	it, err := newScanIterator(context.Background(), b, req)
	require.NoError(t, err)

	_, ok := it.Next()
	require.True(t, ok)

	it.closeEarly()
	_, ok = it.Next()
	assert.False(t, ok)
	assert.NoError(t, it.Err())
}

func TestScanIteratorContextCancellation(t *testing.T) {
	data := make([]byte, 0)
	for i := 0; i < 5; i++ {
		data = append(data, encodeInt(3, 4)...)
	}
	b := newFakeBackend(0x7000, data)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	req := scanRequest{logicalType: Int, length: 4, predicate: Equal, needle: encodeInt(3, 4), chunkCap: defaultChunkCap}
	it, err := newScanIterator(ctx, b, req)
	require.NoError(t, err)

	_, ok := it.Next()
	assert.False(t, ok)
	assert.Error(t, it.Err())
}
