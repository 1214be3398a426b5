package memscan

import (
	"context"
	"fmt"
	"sync"
)

// Session represents an opened target process: it carries the pid and
// platform handle, the permission set it was opened with, and the
// open/closed state machine from spec.md §3 and §4.7.
type Session struct {
	mu         sync.Mutex
	pid        uint32
	permission Permission
	backend    backend
	closed     bool
}

// Open creates a Session for pid with the given permission set. This is
// the factory spec.md §6 describes, specialized to the PID case; the
// process package's Resolve helper maps a process name or window title to
// a PID for callers that don't already have one.
func Open(pid uint32, permission Permission) (*Session, error) {
	b, err := openBackend(pid, permission)
	if err != nil {
		return nil, err
	}
	return &Session{pid: pid, permission: permission, backend: b}, nil
}

// PID returns the process ID this session is attached to.
func (s *Session) PID() uint32 { return s.pid }

// Close releases the OS handle. Idempotent, per spec.md §4.7.
func (s *Session) Close() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return true
	}
	s.closed = true
	_ = s.backend.close()
	return true
}

func (s *Session) checkOpen() error {
	if s.closed {
		return ErrClosedSession
	}
	return nil
}

// Read returns the typed value currently stored at address.
func (s *Session) Read(address uint64, t LogicalType, length int) (any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	if !s.permission.canRead() {
		return nil, fmt.Errorf("%w: session opened without read permission", ErrPermissionDenied)
	}
	if !t.valid() {
		return nil, fmt.Errorf("%w: %v", ErrInvalidType, t)
	}

	width := effectiveWidth(t, length)
	raw, err := s.backend.read(address, width)
	if err != nil {
		return nil, err
	}
	if len(raw) < width {
		return nil, fmt.Errorf("%w: short read at 0x%x: got %d of %d bytes", ErrReadFailed, address, len(raw), width)
	}
	return Decode(t, raw)
}

// Write encodes value and copies it to address.
func (s *Session) Write(address uint64, t LogicalType, length int, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpen(); err != nil {
		return err
	}
	if !s.permission.canWrite() {
		return fmt.Errorf("%w: session opened without write permission", ErrPermissionDenied)
	}

	raw, err := Encode(t, length, value)
	if err != nil {
		return err
	}
	return s.backend.write(address, raw)
}

// SearchValue runs a first scan for an exact target value under the given
// predicate (spec.md §6 search_value). For Equal/NotEqual the value is
// matched byte-exact via KMP; for the ordering predicates it is compared
// via NumericKey/CompareKeys.
func (s *Session) SearchValue(ctx context.Context, t LogicalType, length int, value any, predicate Predicate, progress, writableOnly bool) (*ScanIterator, error) {
	if predicate == Between || predicate == NotBetween {
		return nil, fmt.Errorf("%w: use SearchBetween for %v", ErrInvalidValue, predicate)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	if !s.permission.canRead() {
		return nil, fmt.Errorf("%w: session opened without read permission", ErrPermissionDenied)
	}

	width := effectiveWidth(t, length)
	encoded, err := Encode(t, length, value)
	if err != nil {
		return nil, err
	}

	req := scanRequest{
		logicalType:  t,
		length:       width,
		predicate:    predicate,
		progress:     progress,
		writableOnly: writableOnly,
		chunkCap:     defaultChunkCap,
	}

	if predicate.isEquality() {
		req.needle = encoded
	} else {
		key, err := NumericKey(t, encoded)
		if err != nil {
			return nil, err
		}
		req.lo = key
	}

	it, err := newScanIterator(ctx, s.backend, req)
	if err != nil {
		return nil, err
	}
	return &ScanIterator{inner: it, session: s}, nil
}

// SearchBetween runs a first scan for Between/NotBetween (spec.md §6
// search_between). lo and hi are inclusive.
func (s *Session) SearchBetween(ctx context.Context, t LogicalType, length int, lo, hi any, notBetween, progress, writableOnly bool) (*ScanIterator, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	if !s.permission.canRead() {
		return nil, fmt.Errorf("%w: session opened without read permission", ErrPermissionDenied)
	}

	width := effectiveWidth(t, length)
	loEncoded, err := Encode(t, length, lo)
	if err != nil {
		return nil, err
	}
	hiEncoded, err := Encode(t, length, hi)
	if err != nil {
		return nil, err
	}
	loKey, err := NumericKey(t, loEncoded)
	if err != nil {
		return nil, err
	}
	hiKey, err := NumericKey(t, hiEncoded)
	if err != nil {
		return nil, err
	}
	if err := validateRange(t, loKey, hiKey); err != nil {
		return nil, err
	}

	predicate := Between
	if notBetween {
		predicate = NotBetween
	}

	req := scanRequest{
		logicalType:  t,
		length:       width,
		predicate:    predicate,
		lo:           loKey,
		hi:           hiKey,
		progress:     progress,
		writableOnly: writableOnly,
		chunkCap:     defaultChunkCap,
	}

	it, err := newScanIterator(ctx, s.backend, req)
	if err != nil {
		return nil, err
	}
	return &ScanIterator{inner: it, session: s}, nil
}

// SearchByAddresses re-reads a candidate set of addresses and returns each
// one paired with its current decoded value — the re-verification step of
// the "next scan" workflow spec.md's Glossary describes.
func (s *Session) SearchByAddresses(t LogicalType, length int, addresses []uint64) ([]ScanValueMatch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	if !s.permission.canRead() {
		return nil, fmt.Errorf("%w: session opened without read permission", ErrPermissionDenied)
	}
	if !t.valid() {
		return nil, fmt.Errorf("%w: %v", ErrInvalidType, t)
	}

	width := effectiveWidth(t, length)
	out := make([]ScanValueMatch, 0, len(addresses))
	for _, addr := range addresses {
		raw, err := s.backend.read(addr, width)
		if err != nil || len(raw) < width {
			continue // stale candidate: target may have unmapped the page since the first scan
		}
		value, err := Decode(t, raw)
		if err != nil {
			continue
		}
		out = append(out, ScanValueMatch{Address: addr, Value: value})
	}
	return out, nil
}

// effectiveWidth is the byte width actually compared in memory: Float is
// always 8 bytes regardless of the caller's requested length (spec.md
// §3/§4.1); every other type uses length as given.
func effectiveWidth(t LogicalType, length int) int {
	if t == Float {
		return 8
	}
	return length
}

// ScanIterator is the caller-facing handle on a running scan: a thin
// wrapper over scanIterator. Session.Close does not stop an outstanding
// scan; call ScanIterator.Close, or cancel the context the scan was
// started with, to stop it.
type ScanIterator struct {
	inner   *scanIterator
	session *Session
}

// Next returns the next match, or ok=false when the scan is done (check
// Err to distinguish exhaustion from failure).
func (it *ScanIterator) Next() (ScanMatch, bool) {
	return it.inner.Next()
}

// Err returns the error that stopped the scan, if any.
func (it *ScanIterator) Err() error {
	return it.inner.Err()
}

// Close abandons the scan early. Safe to call multiple times.
func (it *ScanIterator) Close() {
	it.inner.closeEarly()
}
