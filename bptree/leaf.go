package bptree

import (
	"fmt"

	"bptreeindex/pagestore"
)

// leafNode is the codec for a single leaf page: a sorted run of
// (key, RecordLocator) entries plus a sibling page id for the
// in-order scan chain. It owns exactly one page-sized buffer.
type leafNode struct {
	buf []byte
}

func newLeafNode() *leafNode {
	return &leafNode{buf: make([]byte, pagestore.PageSize)}
}

func (n *leafNode) read(pid int64, store pagestore.Store) error {
	if err := store.Read(pid, n.buf); err != nil {
		return fmt.Errorf("bptree: read leaf %d: %w", pid, err)
	}
	return nil
}

func (n *leafNode) write(pid int64, store pagestore.Store) error {
	if err := store.Write(pid, n.buf); err != nil {
		return fmt.Errorf("bptree: write leaf %d: %w", pid, err)
	}
	return nil
}

func (n *leafNode) keyCount() int32 {
	return getInt32(n.buf, 0)
}

func (n *leafNode) setKeyCount(count int32) {
	putInt32(n.buf, 0, count)
}

func (n *leafNode) entryOffset(eid int) int {
	return headerFieldSize + eid*leafStride
}

// locate returns the smallest entry index i in [0, n] with key_i >=
// searchKey. found is false (and i == n) if every key in the node is
// smaller than searchKey.
func (n *leafNode) locate(searchKey int32) (eid int, found bool) {
	count := int(n.keyCount())
	lo, hi := 0, count
	for lo < hi {
		mid := (lo + hi) / 2
		if getInt32(n.buf, n.entryOffset(mid)) < searchKey {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo, lo < count
}

// readEntry returns the (key, locator) pair at eid.
func (n *leafNode) readEntry(eid int) (int32, RecordLocator, error) {
	if eid < 0 || eid >= int(n.keyCount()) {
		return 0, RecordLocator{}, ErrInvalidCursor
	}
	off := n.entryOffset(eid)
	return getInt32(n.buf, off), getLocator(n.buf, off+keySize), nil
}

// insert places (key, loc) at its sorted position, shifting the
// suffix right by one entry. Fails with errNodeFull at capacity.
func (n *leafNode) insert(key int32, loc RecordLocator) error {
	count := int(n.keyCount())
	if count >= maxKeyNum {
		return errNodeFull
	}
	eid, _ := n.locate(key)
	n.shiftRight(eid, count)
	n.writeEntry(eid, key, loc)
	n.setKeyCount(int32(count + 1))
	return nil
}

func (n *leafNode) writeEntry(eid int, key int32, loc RecordLocator) {
	off := n.entryOffset(eid)
	putInt32(n.buf, off, key)
	putLocator(n.buf, off+keySize, loc)
}

// shiftRight moves entries [from, count) one slot to the right,
// making room for a new entry at index from.
func (n *leafNode) shiftRight(from, count int) {
	src := n.entryOffset(from)
	dst := n.entryOffset(from + 1)
	n2 := count - from
	copy(n.buf[dst:dst+n2*leafStride], n.buf[src:src+n2*leafStride])
}

// insertAndSplit splits a full leaf half-and-half with sibling (which
// must be empty), then inserts (key, loc) into whichever half it
// belongs in. Returns the first key of sibling, the new separator for
// the parent.
func (n *leafNode) insertAndSplit(key int32, loc RecordLocator, sibling *leafNode) (int32, error) {
	if int(n.keyCount()) != maxKeyNum {
		return 0, fmt.Errorf("bptree: insertAndSplit called on non-full leaf")
	}

	half := maxKeyNum / 2
	upper := maxKeyNum - half

	// The pre-split insertion slot decides which half the new entry
	// lands in; it must be computed before n's count is truncated.
	eid, _ := n.locate(key)

	srcOff := n.entryOffset(half)
	dstOff := sibling.entryOffset(0)
	copy(sibling.buf[dstOff:dstOff+upper*leafStride], n.buf[srcOff:srcOff+upper*leafStride])

	sibling.setNextPtr(n.getNextPtr())

	n.setKeyCount(int32(half))
	sibling.setKeyCount(int32(upper))

	if eid <= half {
		n.shiftRight(eid, half)
		n.writeEntry(eid, key, loc)
		n.setKeyCount(int32(half + 1))
	} else {
		rebased := eid - half
		sibling.shiftRight(rebased, upper)
		sibling.writeEntry(rebased, key, loc)
		sibling.setKeyCount(int32(upper + 1))
	}

	firstKey, _, err := sibling.readEntry(0)
	if err != nil {
		return 0, err
	}
	return firstKey, nil
}

func (n *leafNode) getNextPtr() int64 {
	return getInt64(n.buf, siblingOffset)
}

func (n *leafNode) setNextPtr(pid int64) {
	putInt64(n.buf, siblingOffset, pid)
}
