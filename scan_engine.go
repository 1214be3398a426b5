package memscan

import "context"

// defaultChunkCap bounds per-region buffer allocation (spec.md §4.3, §9):
// regions larger than this are processed in overlapping chunks so a single
// multi-gigabyte region never allocates more than this much memory at
// once.
const defaultChunkCap = 64 * 1024 * 1024

// scanRequest bundles everything the Scan Engine needs to run one first
// scan: the predicate, its operands already encoded/keyed, and the
// options from spec.md §6 (search_value / search_between).
type scanRequest struct {
	logicalType  LogicalType
	length       int
	predicate    Predicate
	needle       []byte // Equal/NotEqual: the encoded byte pattern
	lo, hi       any    // inequality predicates: numeric/lex keys
	progress     bool
	writableOnly bool
	chunkCap     int
}

// scanIterator is the pull-driven iterator design note §9 calls for: it
// owns the per-region buffer and a small state record, and produces
// results lazily as the caller calls Next. No goroutines, no buffering of
// the full result set — abandoning the iterator (or letting it be
// garbage collected) is itself sufficient cancellation, bounding peak
// memory to one chunk.
type scanIterator struct {
	ctx context.Context
	b   backend
	req scanRequest

	failure []int // KMP failure function, built once, shared across regions

	regions            []RegionDescriptor
	totalBytesReadable uint64
	bytesCompleted     uint64 // bytes from fully-finished regions

	regionIdx  int    // index of the region currently being chunked
	chunkStart uint64 // region-relative offset where the NEXT chunk read begins

	pending       []int  // offsets (chunk-relative) still to emit from the current chunk
	pendingBase   uint64 // absolute address of the current chunk's start
	pendingOrigin uint64 // bytesCompleted + region-relative start of the current chunk

	err    error
	closed bool
}

func newScanIterator(ctx context.Context, b backend, req scanRequest) (*scanIterator, error) {
	if req.chunkCap <= 0 {
		req.chunkCap = defaultChunkCap
	}

	all, err := b.regions()
	if err != nil {
		return nil, err
	}
	regions, err := filterRegions(all, req.writableOnly)
	if err != nil {
		return nil, err
	}

	var total uint64
	for _, r := range regions {
		total += r.Size
	}

	it := &scanIterator{
		ctx:                ctx,
		b:                  b,
		req:                req,
		regions:            regions,
		totalBytesReadable: total,
	}
	if req.predicate.isEquality() {
		it.failure = kmpFailureFunction(req.needle)
	}
	return it, nil
}

// Next advances the iterator and returns the next match, or ok=false when
// the scan is exhausted or an error occurred (check Err).
func (it *scanIterator) Next() (ScanMatch, bool) {
	for {
		if it.err != nil || it.closed {
			return ScanMatch{}, false
		}

		if len(it.pending) > 0 {
			offset := it.pending[0]
			it.pending = it.pending[1:]

			match := ScanMatch{Address: it.pendingBase + uint64(offset)}
			if it.req.progress {
				match.Progress = it.progressAt(it.pendingOrigin + uint64(offset))
			}
			return match, true
		}

		if !it.advance() {
			return ScanMatch{}, false
		}
	}
}

// Err returns the error that stopped the scan, if any.
func (it *scanIterator) Err() error { return it.err }

// advance loads the next non-empty chunk's match offsets into it.pending,
// walking regions and chunks per spec.md §4.6 Phase 2. It returns false
// once every region is exhausted or an error occurred.
func (it *scanIterator) advance() bool {
	for it.regionIdx < len(it.regions) {
		select {
		case <-it.ctx.Done():
			it.err = it.ctx.Err()
			return false
		default:
		}

		region := it.regions[it.regionIdx]

		if it.chunkStart >= region.Size {
			it.finishRegion(region)
			continue
		}

		chunkLen := region.Size - it.chunkStart
		if chunkLen > uint64(it.req.chunkCap) {
			chunkLen = uint64(it.req.chunkCap)
		}
		chunkRegionStart := it.chunkStart
		chunkBase := region.BaseAddress + chunkRegionStart

		buf, err := it.b.read(chunkBase, int(chunkLen))
		if err != nil {
			// A chunk from which nothing could be read is not a scan error:
			// the rest of its region is skipped and the scan moves on.
			it.finishRegion(region)
			continue
		}

		offsets, err := it.matchesIn(buf)
		if err != nil {
			it.err = err
			return false
		}

		// Advance chunkStart by chunkCap minus a (length-1)-byte overlap,
		// so matches spanning a chunk boundary are still seen (spec.md
		// §4.6 step 5).
		overlap := uint64(0)
		if it.req.length > 1 {
			overlap = uint64(it.req.length - 1)
		}
		step := uint64(it.req.chunkCap)
		if step > overlap {
			step -= overlap
		} else {
			step = 1
		}
		if step > chunkLen {
			step = chunkLen
			if step == 0 {
				step = 1
			}
		}
		it.chunkStart = chunkRegionStart + step

		if len(offsets) == 0 {
			if it.chunkStart >= region.Size {
				it.finishRegion(region)
			}
			continue
		}

		it.pending = offsets
		it.pendingBase = chunkBase
		it.pendingOrigin = it.bytesCompleted + chunkRegionStart
		return true
	}
	return false
}

// finishRegion rolls a fully-consumed region's size into bytesCompleted
// and moves on to the next one (spec.md §4.6 step 6).
func (it *scanIterator) finishRegion(region RegionDescriptor) {
	it.bytesCompleted += region.Size
	it.regionIdx++
	it.chunkStart = 0
}

func (it *scanIterator) matchesIn(buf []byte) ([]int, error) {
	switch it.req.predicate {
	case Equal:
		return kmpSearch(buf, it.req.needle, it.failure), nil
	case NotEqual:
		return kmpSearchNotEqual(buf, it.req.needle, it.failure), nil
	default:
		return scanInequality(buf, it.req.logicalType, it.req.length, it.req.predicate, it.req.lo, it.req.hi)
	}
}

func (it *scanIterator) progressAt(bytesDone uint64) ProgressInfo {
	if it.totalBytesReadable == 0 {
		return ProgressInfo{MemoryTotal: 0, Progress: 1.0}
	}
	if bytesDone > it.totalBytesReadable {
		bytesDone = it.totalBytesReadable
	}
	return ProgressInfo{
		MemoryTotal: it.totalBytesReadable,
		Progress:    float64(bytesDone) / float64(it.totalBytesReadable),
	}
}

// closeEarly marks the iterator closed; Next becomes a no-op afterward.
// Used by ScanIterator.Close to abandon a scan early.
func (it *scanIterator) closeEarly() {
	it.closed = true
}
