package memscan

import "fmt"

// fakeBackend is an in-memory backend double standing in for a real OS
// process during tests: a single contiguous byte buffer mapped at base,
// with no permission model of its own (Session enforces that layer).
type fakeBackend struct {
	base    uint64
	data    []byte
	writ    bool
	closed  bool
	readErr error
}

func newFakeBackend(base uint64, data []byte) *fakeBackend {
	return &fakeBackend{base: base, data: data, writ: true}
}

func (f *fakeBackend) regions() ([]RegionDescriptor, error) {
	return []RegionDescriptor{{
		BaseAddress: f.base,
		Size:        uint64(len(f.data)),
		Readable:    true,
		Writable:    f.writ,
	}}, nil
}

func (f *fakeBackend) read(address uint64, length int) ([]byte, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	if address < f.base || address+uint64(length) > f.base+uint64(len(f.data)) {
		return nil, fmt.Errorf("%w: out of range read", ErrReadFailed)
	}
	start := address - f.base
	out := make([]byte, length)
	copy(out, f.data[start:start+uint64(length)])
	return out, nil
}

func (f *fakeBackend) write(address uint64, data []byte) error {
	if address < f.base || address+uint64(len(data)) > f.base+uint64(len(f.data)) {
		return fmt.Errorf("%w: out of range write", ErrWriteFailed)
	}
	start := address - f.base
	copy(f.data[start:start+uint64(len(data))], data)
	return nil
}

func (f *fakeBackend) close() error {
	f.closed = true
	return nil
}
