package bptree

import (
	"fmt"

	"bptreeindex/pagestore"
)

// interiorNode is the codec for a single interior page: a leading
// child pointer p0, then n (separator key, child pointer) pairs. The
// i-th separator splits children p_i and p_{i+1}: keys in p_i's
// subtree are < key_i, keys in p_{i+1}'s subtree are >= key_i.
type interiorNode struct {
	buf []byte
}

func newInteriorNode() *interiorNode {
	return &interiorNode{buf: make([]byte, pagestore.PageSize)}
}

func (n *interiorNode) read(pid int64, store pagestore.Store) error {
	if err := store.Read(pid, n.buf); err != nil {
		return fmt.Errorf("bptree: read interior %d: %w", pid, err)
	}
	return nil
}

func (n *interiorNode) write(pid int64, store pagestore.Store) error {
	if err := store.Write(pid, n.buf); err != nil {
		return fmt.Errorf("bptree: write interior %d: %w", pid, err)
	}
	return nil
}

func (n *interiorNode) keyCount() int32 {
	return getInt32(n.buf, 0)
}

func (n *interiorNode) setKeyCount(count int32) {
	putInt32(n.buf, 0, count)
}

func (n *interiorNode) p0() int64 {
	return getInt64(n.buf, headerFieldSize)
}

func (n *interiorNode) setP0(pid int64) {
	putInt64(n.buf, headerFieldSize, pid)
}

func (n *interiorNode) pairOffset(j int) int {
	return headerFieldSize + pageIDSize + j*interiorPair
}

func (n *interiorNode) keyAt(j int) int32 {
	return getInt32(n.buf, n.pairOffset(j))
}

// childAt returns p_{j+1}, the child that follows separator key_j.
func (n *interiorNode) childAt(j int) int64 {
	return getInt64(n.buf, n.pairOffset(j)+keySize)
}

func (n *interiorNode) writePair(j int, key int32, child int64) {
	off := n.pairOffset(j)
	putInt32(n.buf, off, key)
	putInt64(n.buf, off+keySize, child)
}

// locateChild returns the smallest eid in [0, n] such that key_eid >
// searchKey (strict upper bound, so equal search keys route right),
// and the child pointer that follows from it. eid also doubles as the
// slot a new key equal to searchKey would be inserted at.
func (n *interiorNode) locateChild(searchKey int32) (childPid int64, eid int) {
	count := int(n.keyCount())
	lo, hi := 0, count
	for lo < hi {
		mid := (lo + hi) / 2
		if n.keyAt(mid) > searchKey {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	eid = lo
	if eid == 0 {
		childPid = n.p0()
	} else {
		childPid = n.childAt(eid - 1)
	}
	return childPid, eid
}

func (n *interiorNode) shiftRight(from, count int) {
	src := n.pairOffset(from)
	dst := n.pairOffset(from + 1)
	sz := (count - from) * interiorPair
	copy(n.buf[dst:dst+sz], n.buf[src:src+sz])
}

// insert places (key, rightChildPid) at its sorted position. Fails
// with errNodeFull at capacity.
func (n *interiorNode) insert(key int32, rightChildPid int64) error {
	count := int(n.keyCount())
	if count >= maxKeyNum {
		return errNodeFull
	}
	_, eid := n.locateChild(key)
	n.shiftRight(eid, count)
	n.writePair(eid, key, rightChildPid)
	n.setKeyCount(int32(count + 1))
	return nil
}

// insertAndSplit splits a full interior node half-and-half with
// sibling (which must be empty), inserts (key, rightChildPid) into
// whichever half it belongs in, and returns the key promoted to the
// parent. The promoted key is not stored in either child.
func (n *interiorNode) insertAndSplit(key int32, rightChildPid int64, sibling *interiorNode) (int32, error) {
	if int(n.keyCount()) != maxKeyNum {
		return 0, fmt.Errorf("bptree: insertAndSplit called on non-full interior node")
	}

	half := maxKeyNum / 2
	upper := maxKeyNum - half - 1

	// Pre-split insertion slot, computed before n's count is
	// truncated.
	_, eid := n.locateChild(key)

	midKey := n.keyAt(half)
	midChild := n.childAt(half)

	sibling.setP0(midChild)
	if upper > 0 {
		srcOff := n.pairOffset(half + 1)
		dstOff := sibling.pairOffset(0)
		copy(sibling.buf[dstOff:dstOff+upper*interiorPair], n.buf[srcOff:srcOff+upper*interiorPair])
	}
	sibling.setKeyCount(int32(upper))
	n.setKeyCount(int32(half))

	switch {
	case eid <= half:
		n.shiftRight(eid, half)
		n.writePair(eid, key, rightChildPid)
		n.setKeyCount(int32(half + 1))
	default:
		rebased := eid - half - 1
		sibling.shiftRight(rebased, upper)
		sibling.writePair(rebased, key, rightChildPid)
		sibling.setKeyCount(int32(upper + 1))
	}

	return midKey, nil
}

// initializeRoot writes a brand-new root: p0 = leftPid, one entry
// (key, rightPid).
func (n *interiorNode) initializeRoot(leftPid int64, key int32, rightPid int64) {
	n.setP0(leftPid)
	n.writePair(0, key, rightPid)
	n.setKeyCount(1)
}
