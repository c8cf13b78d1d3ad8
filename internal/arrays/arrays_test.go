package arrays

import "testing"

func TestSearch(t *testing.T) {
	keys := []int32{2, 4, 6, 8}

	tests := []struct {
		key       int32
		wantIdx   int
		wantFound bool
	}{
		{2, 0, true},
		{8, 3, true},
		{1, 0, false},
		{5, 2, false},
		{9, 4, false},
	}

	for _, tc := range tests {
		idx, found := Search(keys, tc.key)
		if idx != tc.wantIdx || found != tc.wantFound {
			t.Errorf("Search(%v, %d) = (%d, %v), want (%d, %v)", keys, tc.key, idx, found, tc.wantIdx, tc.wantFound)
		}
	}
}

func TestInsertDeleteRoundtrip(t *testing.T) {
	var keys []int32
	var vals []string

	insert := func(k int32, v string) {
		i, found := Search(keys, k)
		if found {
			vals[i] = v
			return
		}
		keys = InsertAt(keys, i, k)
		vals = InsertAt(vals, i, v)
	}

	insert(5, "e")
	insert(1, "a")
	insert(3, "c")
	insert(2, "b")
	insert(4, "d")

	want := []int32{1, 2, 3, 4, 5}
	for i, k := range want {
		if keys[i] != k {
			t.Fatalf("keys = %v, want %v", keys, want)
		}
		idx, found := Search(keys, k)
		if !found || idx != i {
			t.Fatalf("Search(%d) = (%d, %v)", k, idx, found)
		}
	}

	i, _ := Search(keys, 3)
	keys = DeleteAt(keys, i)
	vals = DeleteAt(vals, i)

	if len(keys) != 4 {
		t.Fatalf("len(keys) = %d, want 4", len(keys))
	}
	if _, found := Search(keys, 3); found {
		t.Fatalf("key 3 still present after delete")
	}
	if vals[i] != "d" {
		t.Fatalf("vals[%d] = %q after delete, want %q", i, vals[i], "d")
	}
}
