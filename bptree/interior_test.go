package bptree

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInteriorLocateChildRoutesEqualKeysRight(t *testing.T) {
	n := newInteriorNode()
	n.setP0(100)
	require.NoError(t, n.insert(10, 101))
	require.NoError(t, n.insert(20, 102))

	pid, eid := n.locateChild(5)
	require.Equal(t, int64(100), pid)
	require.Equal(t, 0, eid)

	// Equal to a separator must route to the right child (strict
	// upper bound), not the left one.
	pid, eid = n.locateChild(10)
	require.Equal(t, int64(101), pid)
	require.Equal(t, 1, eid)

	pid, eid = n.locateChild(15)
	require.Equal(t, int64(101), pid)
	require.Equal(t, 1, eid)

	pid, eid = n.locateChild(20)
	require.Equal(t, int64(102), pid)
	require.Equal(t, 2, eid)

	pid, eid = n.locateChild(1000)
	require.Equal(t, int64(102), pid)
	require.Equal(t, 2, eid)
}

func TestInteriorInsertFailsWhenFull(t *testing.T) {
	n := newInteriorNode()
	n.setP0(0)
	for i := 0; i < maxKeyNum; i++ {
		require.NoError(t, n.insert(int32(i), int64(i+1)))
	}
	err := n.insert(int32(maxKeyNum), int64(maxKeyNum+1))
	require.ErrorIs(t, err, errNodeFull)
}

func TestInteriorInsertAndSplitPromotesMidKeyOnce(t *testing.T) {
	n := newInteriorNode()
	n.setP0(0)
	for i := 0; i < maxKeyNum; i++ {
		require.NoError(t, n.insert(int32(i), int64(i+1)))
	}

	sibling := newInteriorNode()
	midKey, err := n.insertAndSplit(int32(maxKeyNum+1000), int64(99999), sibling)
	require.NoError(t, err)

	// midKey must not appear in either half; every key < midKey must
	// stay in n, every key > midKey must land in sibling.
	for i := 0; i < int(n.keyCount()); i++ {
		require.Less(t, n.keyAt(i), midKey)
	}
	for i := 0; i < int(sibling.keyCount()); i++ {
		require.Greater(t, sibling.keyAt(i), midKey)
	}

	total := int(n.keyCount()) + 1 + int(sibling.keyCount())
	require.Equal(t, maxKeyNum+1, total)
}

func TestInteriorInitializeRoot(t *testing.T) {
	n := newInteriorNode()
	n.initializeRoot(7, 50, 8)

	require.Equal(t, int32(1), n.keyCount())
	pid, _ := n.locateChild(10)
	require.Equal(t, int64(7), pid)
	pid, _ = n.locateChild(50)
	require.Equal(t, int64(8), pid)
}
