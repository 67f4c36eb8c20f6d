package minify

import "testing"

func assertUnique(t *testing.T, r *distanceRing) {
	t.Helper()
	seen := map[uint32]bool{}
	for _, d := range r.d {
		if d == 0 {
			continue
		}
		if seen[d] {
			t.Fatalf("ring has duplicate non-zero entry %d: %v", d, r.d)
		}
		seen[d] = true
	}
}

func TestDistanceRing_MRUOrder(t *testing.T) {
	var r distanceRing
	r.use(10)
	r.use(20)
	r.use(30)
	want := [ringSize]uint32{30, 20, 10, 0}
	if r.d != want {
		t.Fatalf("ring = %v, want %v", r.d, want)
	}
}

func TestDistanceRing_ReuseCollapsesSlot(t *testing.T) {
	var r distanceRing
	r.use(10)
	r.use(20)
	r.use(30)
	r.use(40)
	r.use(20) // already present: should move to front, not duplicate

	assertUnique(t, &r)
	if r.d[0] != 20 {
		t.Fatalf("front slot = %d, want 20", r.d[0])
	}
	want := [ringSize]uint32{20, 40, 30, 10}
	if r.d != want {
		t.Fatalf("ring = %v, want %v", r.d, want)
	}
}

func TestDistanceRing_EvictsOldest(t *testing.T) {
	var r distanceRing
	for _, d := range []uint32{1, 2, 3, 4, 5} {
		r.use(d)
		assertUnique(t, &r)
	}
	want := [ringSize]uint32{5, 4, 3, 2}
	if r.d != want {
		t.Fatalf("ring = %v, want %v", r.d, want)
	}
}

func TestDistanceRing_IndexOf(t *testing.T) {
	var r distanceRing
	r.use(7)
	r.use(9)
	if idx := r.indexOf(9); idx != 0 {
		t.Fatalf("indexOf(9) = %d, want 0", idx)
	}
	if idx := r.indexOf(7); idx != 1 {
		t.Fatalf("indexOf(7) = %d, want 1", idx)
	}
	if idx := r.indexOf(42); idx != -1 {
		t.Fatalf("indexOf(42) = %d, want -1", idx)
	}
}
