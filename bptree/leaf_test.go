package bptree

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLeafInsertAndLocate(t *testing.T) {
	n := newLeafNode()
	require.NoError(t, n.insert(20, RecordLocator{PageID: 2, SlotID: 0}))
	require.NoError(t, n.insert(10, RecordLocator{PageID: 1, SlotID: 0}))
	require.NoError(t, n.insert(15, RecordLocator{PageID: 3, SlotID: 0}))

	require.Equal(t, int32(3), n.keyCount())

	eid, found := n.locate(15)
	require.True(t, found)
	require.Equal(t, 1, eid)

	key, loc, err := n.readEntry(eid)
	require.NoError(t, err)
	require.Equal(t, int32(15), key)
	require.Equal(t, RecordLocator{PageID: 3, SlotID: 0}, loc)
}

func TestLeafLocateLowerBound(t *testing.T) {
	n := newLeafNode()
	require.NoError(t, n.insert(10, RecordLocator{}))
	require.NoError(t, n.insert(20, RecordLocator{}))
	require.NoError(t, n.insert(30, RecordLocator{}))

	eid, found := n.locate(20)
	require.True(t, found)
	require.Equal(t, 1, eid)

	eid, found = n.locate(25)
	require.True(t, found)
	require.Equal(t, 2, eid)

	eid, found = n.locate(31)
	require.False(t, found)
	require.Equal(t, 3, eid)

	eid, found = n.locate(0)
	require.True(t, found)
	require.Equal(t, 0, eid)
}

func TestLeafInsertDuplicateKeysKeepBothContiguous(t *testing.T) {
	n := newLeafNode()
	require.NoError(t, n.insert(5, RecordLocator{PageID: 1}))
	require.NoError(t, n.insert(5, RecordLocator{PageID: 2}))
	require.Equal(t, int32(2), n.keyCount())

	eid, found := n.locate(5)
	require.True(t, found)
	key0, loc0, err := n.readEntry(eid)
	require.NoError(t, err)
	key1, loc1, err := n.readEntry(eid + 1)
	require.NoError(t, err)
	require.Equal(t, int32(5), key0)
	require.Equal(t, int32(5), key1)
	require.ElementsMatch(t, []int64{1, 2}, []int64{loc0.PageID, loc1.PageID})
}

func TestLeafInsertFailsWhenFull(t *testing.T) {
	n := newLeafNode()
	for i := 0; i < maxKeyNum; i++ {
		require.NoError(t, n.insert(int32(i), RecordLocator{PageID: int64(i)}))
	}
	err := n.insert(int32(maxKeyNum), RecordLocator{})
	require.ErrorIs(t, err, errNodeFull)
}

func TestLeafInsertAndSplitDistributesEntries(t *testing.T) {
	n := newLeafNode()
	for i := 0; i < maxKeyNum; i++ {
		require.NoError(t, n.insert(int32(i*2), RecordLocator{PageID: int64(i)}))
	}
	n.setNextPtr(42)

	sibling := newLeafNode()
	firstKey, err := n.insertAndSplit(int32(2*maxKeyNum), RecordLocator{PageID: 999}, sibling)
	require.NoError(t, err)

	require.Equal(t, int64(maxKeyNum/2), int64(n.keyCount()))
	require.Equal(t, sibling.getNextPtr(), int64(42))

	total := int(n.keyCount() + sibling.keyCount())
	require.Equal(t, maxKeyNum+1, total)

	// All of n's keys must be < firstKey, and all of sibling's >= firstKey.
	for i := 0; i < int(n.keyCount()); i++ {
		k, _, err := n.readEntry(i)
		require.NoError(t, err)
		require.Less(t, k, firstKey)
	}
	for i := 0; i < int(sibling.keyCount()); i++ {
		k, _, err := sibling.readEntry(i)
		require.NoError(t, err)
		require.GreaterOrEqual(t, k, firstKey)
	}
}

func TestLeafInsertAndSplitNewEntryRoutesToSiblingWhenLarge(t *testing.T) {
	n := newLeafNode()
	for i := 0; i < maxKeyNum; i++ {
		require.NoError(t, n.insert(int32(i), RecordLocator{PageID: int64(i)}))
	}

	sibling := newLeafNode()
	// The largest possible key must land in the sibling half, proving
	// insertAndSplit doesn't clamp the insertion search to the
	// pre-split node's surviving half.
	_, err := n.insertAndSplit(int32(maxKeyNum+1000), RecordLocator{PageID: 777}, sibling)
	require.NoError(t, err)

	lastIdx := int(sibling.keyCount()) - 1
	key, loc, err := sibling.readEntry(lastIdx)
	require.NoError(t, err)
	require.Equal(t, int32(maxKeyNum+1000), key)
	require.Equal(t, int64(777), loc.PageID)
}
