package process

import "testing"

func TestResolveByPIDIsPassthrough(t *testing.T) {
	pid, err := Resolve(Target{PID: 4242})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if pid != 4242 {
		t.Fatalf("got %d, want 4242", pid)
	}
}

func TestResolveRejectsEmptyTarget(t *testing.T) {
	if _, err := Resolve(Target{}); err != ErrAmbiguousTarget {
		t.Fatalf("got %v, want ErrAmbiguousTarget", err)
	}
}

func TestResolveRejectsMultipleFields(t *testing.T) {
	_, err := Resolve(Target{PID: 1, ProcessName: "foo"})
	if err != ErrAmbiguousTarget {
		t.Fatalf("got %v, want ErrAmbiguousTarget", err)
	}
}
