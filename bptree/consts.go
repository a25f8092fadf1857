// Package bptree implements the core of a disk-backed B+tree secondary
// index: fixed-size leaf and interior node codecs, the split-driven
// recursive insertion protocol, root/height metadata, and a
// leaf-linked forward cursor. It consumes pagestore.Store and knows
// nothing about SQL, heap tables, or query plans.
package bptree

import (
	"encoding/binary"

	"bptreeindex/pagestore"
)

const (
	// headerFieldSize is the width of the leading key-count field that
	// begins every node page.
	headerFieldSize = 4 // int32

	keySize      = 4  // int32
	pageIDSize   = 8  // int64
	locatorSize  = recordLocatorSize
	leafStride   = keySize + locatorSize
	interiorPair = keySize + pageIDSize

	// siblingOffset is a fixed trailing offset for a leaf's next-page
	// pointer, rather than the offset-that-moves-with-n described in
	// spec §4.1 — the behaviorally equivalent alternative spec §9
	// calls out as preferred.
	siblingOffset = pagestore.PageSize - pageIDSize
)

// maxKeyNum is the per-page maximum key count, shared by leaf and
// interior nodes. It's derived from the tighter (leaf) layout so a
// full leaf page never runs into the trailing sibling pointer.
var maxKeyNum = (siblingOffset - headerFieldSize) / leafStride

func init() {
	leafBytes := headerFieldSize + maxKeyNum*leafStride + pageIDSize
	if leafBytes > pagestore.PageSize {
		panic("bptree: maxKeyNum leaf layout exceeds page size")
	}
	interiorBytes := headerFieldSize + pageIDSize + maxKeyNum*interiorPair
	if interiorBytes > pagestore.PageSize {
		panic("bptree: maxKeyNum interior layout exceeds page size")
	}
}

// headerPid is the reserved page id holding the tree's root pid and
// height.
const headerPid int64 = 0

// rootPidInitial is the page id the very first leaf is allocated at.
const rootPidInitial int64 = 1

func getInt32(buf []byte, off int) int32 {
	return int32(binary.LittleEndian.Uint32(buf[off:]))
}

func putInt32(buf []byte, off int, v int32) {
	binary.LittleEndian.PutUint32(buf[off:], uint32(v))
}

func getInt64(buf []byte, off int) int64 {
	return int64(binary.LittleEndian.Uint64(buf[off:]))
}

func putInt64(buf []byte, off int, v int64) {
	binary.LittleEndian.PutUint64(buf[off:], uint64(v))
}
