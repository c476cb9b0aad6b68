// Package inodetracker implements the set of (device, inode) pairs used to
// detect symbolic link cycles during a single traversal pass.
package inodetracker

// key identifies a filesystem entry by its device and inode numbers.
type key struct {
	device uint64
	inode  uint64
}

// entry is one link in the tracker's chain. A simple singly-linked list is
// sufficient: the set is bounded by the number of symbolic links in the
// tree, which is small relative to the size of the tree itself, so linear
// membership checks are acceptable.
type entry struct {
	key  key
	next *entry
}

// Tracker is a set of (device, inode) pairs visited during a traversal pass.
// One fresh Tracker is created per pass; the structure pass and the content
// pass each get their own instance so that a symbolic link followed in one
// pass doesn't suppress it in the other. The zero value is ready to use.
type Tracker struct {
	head  *entry
	count int
}

// New creates an empty tracker.
func New() *Tracker {
	return &Tracker{}
}

// Contains reports whether the (device, inode) pair has already been
// recorded in this pass.
func (t *Tracker) Contains(device, inode uint64) bool {
	if t == nil {
		return false
	}
	k := key{device, inode}
	for e := t.head; e != nil; e = e.next {
		if e.key == k {
			return true
		}
	}
	return false
}

// Add records a (device, inode) pair, prepending it to the chain. It reports
// whether the pair was newly inserted (true) or was already present
// (false, duplicate) without mutating the tracker in the duplicate case.
func (t *Tracker) Add(device, inode uint64) (inserted bool) {
	if t.Contains(device, inode) {
		return false
	}
	t.head = &entry{key: key{device, inode}, next: t.head}
	t.count++
	return true
}

// Reset drops all recorded entries, returning the tracker to its initial
// empty state so it can be reused for a new pass.
func (t *Tracker) Reset() {
	t.head = nil
	t.count = 0
}

// Len returns the number of distinct (device, inode) pairs currently
// tracked.
func (t *Tracker) Len() int {
	if t == nil {
		return 0
	}
	return t.count
}
