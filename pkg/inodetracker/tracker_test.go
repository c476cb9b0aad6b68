package inodetracker

import "testing"

func TestAddAndContains(t *testing.T) {
	tr := New()
	if tr.Contains(1, 2) {
		t.Fatal("empty tracker reports containment")
	}
	if !tr.Add(1, 2) {
		t.Fatal("first add should report inserted")
	}
	if !tr.Contains(1, 2) {
		t.Fatal("tracker should contain the pair after add")
	}
}

func TestAddDuplicateReportsDuplicate(t *testing.T) {
	tr := New()
	tr.Add(1, 2)
	if tr.Add(1, 2) {
		t.Fatal("second add of the same pair should report duplicate")
	}
	if tr.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", tr.Len())
	}
}

func TestSameDeviceDifferentInode(t *testing.T) {
	tr := New()
	tr.Add(1, 2)
	if tr.Contains(1, 3) {
		t.Fatal("different inode on same device should not be contained")
	}
}

func TestReset(t *testing.T) {
	tr := New()
	tr.Add(1, 2)
	tr.Reset()
	if tr.Contains(1, 2) {
		t.Fatal("reset tracker should not contain previously-added pairs")
	}
	if tr.Len() != 0 {
		t.Fatalf("expected 0 entries after reset, got %d", tr.Len())
	}
}

func TestIndependentPassesUseFreshTrackers(t *testing.T) {
	structurePass := New()
	contentPass := New()

	structurePass.Add(1, 2)

	if contentPass.Contains(1, 2) {
		t.Fatal("trackers for separate passes must not share state")
	}
}
