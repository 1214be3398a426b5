package memscan

import "fmt"

// backend is the small capability interface the Scan Engine and Session
// depend on; everything platform-specific lives behind it, selected once
// at Session construction (spec.md §9, "Platform polymorphism"). The rest
// of the package never branches on GOOS.
type backend interface {
	// regions returns every virtual memory region of the target, ascending
	// by base address, already vectorized (spec.md §4.6 Phase 1 consumes
	// the enumerator into an in-memory slice up front).
	regions() ([]RegionDescriptor, error)

	// read copies length bytes starting at address into a freshly
	// allocated buffer. A short read (permission loss, unmapped page,
	// target exit) returns the valid prefix and no error; only a total
	// failure to read anything returns an error.
	read(address uint64, length int) ([]byte, error)

	// write copies data to address. A short or failed write returns
	// ErrWriteFailed.
	write(address uint64, data []byte) error

	// close releases the OS handle. Idempotent.
	close() error
}

// filterRegions keeps only regions matching the requested access, and
// validates the invariants spec.md §8 makes testable: non-zero size, no
// address overflow, ascending non-overlapping order.
func filterRegions(all []RegionDescriptor, writableOnly bool) ([]RegionDescriptor, error) {
	out := make([]RegionDescriptor, 0, len(all))
	var prevEnd uint64
	havePrev := false

	for _, r := range all {
		if r.Size == 0 {
			continue
		}
		if r.BaseAddress+r.Size < r.BaseAddress {
			return nil, fmt.Errorf("memscan: region at 0x%x overflows address space", r.BaseAddress)
		}
		if havePrev && r.BaseAddress < prevEnd {
			return nil, fmt.Errorf("memscan: region at 0x%x overlaps previous region ending at 0x%x", r.BaseAddress, prevEnd)
		}
		prevEnd = r.End()
		havePrev = true

		if !r.Readable {
			continue
		}
		if writableOnly && !r.Writable {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}
