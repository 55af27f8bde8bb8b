package sparse

import "testing"

func TestSet_InsertContains(t *testing.T) {
	s := New(64)

	if !s.Insert(5) {
		t.Error("first insert should report true")
	}
	if s.Insert(5) {
		t.Error("duplicate insert should report false")
	}
	s.Insert(0)
	s.Insert(63)

	for _, v := range []uint32{0, 5, 63} {
		if !s.Contains(v) {
			t.Errorf("expected %d in set", v)
		}
	}
	if s.Contains(1) || s.Contains(64) || s.Contains(1000) {
		t.Error("unexpected membership")
	}
	if s.Len() != 3 {
		t.Errorf("Len = %d, want 3", s.Len())
	}
}

func TestSet_InsertionOrder(t *testing.T) {
	s := New(16)
	order := []uint32{9, 2, 7, 0}
	for _, v := range order {
		s.Insert(v)
	}
	got := s.Values()
	for i, v := range order {
		if got[i] != v {
			t.Fatalf("Values[%d] = %d, want %d", i, got[i], v)
		}
	}
}

func TestSet_Clear(t *testing.T) {
	s := New(8)
	s.Insert(3)
	s.Insert(4)
	s.Clear()

	if !s.IsEmpty() {
		t.Error("set should be empty after Clear")
	}
	if s.Contains(3) {
		t.Error("stale membership after Clear")
	}
	s.Insert(3)
	if !s.Contains(3) || s.Len() != 1 {
		t.Error("set should be reusable after Clear")
	}
}
