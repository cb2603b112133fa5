package paging

import "testing"

func TestRecencyList_Oldest_FollowsTouchOrder(t *testing.T) {
	// GIVEN a, b, c touched in order
	l := newRecencyList(3)
	a, b, c := key("a", 0), key("b", 0), key("c", 0)
	l.touch(a, 1)
	l.touch(b, 2)
	l.touch(c, 3)

	// WHEN a is touched again
	l.touch(a, 4)

	// THEN b is the oldest
	got, ok := l.oldest()
	if !ok || got != b {
		t.Fatalf("oldest = %v (%v), want %v", got, ok, b)
	}
	if stamp, _ := l.stamp(a); stamp != 4 {
		t.Errorf("stamp(a) = %d, want 4", stamp)
	}
}

func TestRecencyList_TouchTail_UpdatesStampOnly(t *testing.T) {
	l := newRecencyList(2)
	a, b := key("a", 0), key("b", 0)
	l.touch(a, 1)
	l.touch(b, 2)

	l.touch(b, 3)

	if got, _ := l.oldest(); got != a {
		t.Errorf("oldest = %v, want %v", got, a)
	}
	if stamp, _ := l.stamp(b); stamp != 3 {
		t.Errorf("stamp(b) = %d, want 3", stamp)
	}
}

func TestRecencyList_Remove_RelinksNeighbours(t *testing.T) {
	l := newRecencyList(3)
	a, b, c := key("a", 0), key("b", 0), key("c", 0)
	l.touch(a, 1)
	l.touch(b, 2)
	l.touch(c, 3)

	if !l.remove(a) {
		t.Fatal("remove(a) = false, want true")
	}
	if l.remove(a) {
		t.Error("second remove(a) = true, want false")
	}
	if !l.remove(c) {
		t.Fatal("remove(c) = false, want true")
	}

	// only b remains, as both head and tail
	if l.len() != 1 || l.head != l.tail || l.head.key != b {
		t.Fatalf("expected single entry b, got len=%d head=%v tail=%v", l.len(), l.head, l.tail)
	}
	l.remove(b)
	if _, ok := l.oldest(); ok {
		t.Error("oldest on empty list reported an entry")
	}
}
