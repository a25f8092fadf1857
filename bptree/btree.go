package bptree

import (
	"errors"
	"fmt"

	"bptreeindex/pagestore"
)

// BTree owns the root page id and tree height, persists them in the
// header page, and drives the recursive split-propagating insertion
// protocol plus leaf-linked forward scans.
type BTree struct {
	store  pagestore.Store
	root   int64
	height int32
}

// Open opens indexFileName as a B+tree index. ModeRead requires the
// file to exist already; ModeReadWrite creates it if absent.
func Open(indexFileName string, mode pagestore.Mode) (*BTree, error) {
	if mode != pagestore.ModeRead && mode != pagestore.ModeReadWrite {
		return nil, ErrInvalidFileMode
	}
	store, err := pagestore.Open(indexFileName, mode)
	if err != nil {
		return nil, fmt.Errorf("bptree: open %s: %w", indexFileName, err)
	}
	t, err := OpenWithStore(store, mode)
	if err != nil {
		store.Close()
		return nil, err
	}
	return t, nil
}

// OpenWithStore builds a BTree over an already-open Store, e.g. one
// wrapped in a pagestore.CachedStore. Store ownership (including
// Close) passes to the returned BTree.
func OpenWithStore(store pagestore.Store, mode pagestore.Mode) (*BTree, error) {
	if mode != pagestore.ModeRead && mode != pagestore.ModeReadWrite {
		return nil, ErrInvalidFileMode
	}

	t := &BTree{store: store}

	if mode == pagestore.ModeRead {
		h, err := readHeader(store)
		if err != nil {
			return nil, err
		}
		t.root, t.height = h.rootPid, h.height
		return t, nil
	}

	if store.EndPid() == 0 {
		t.root = rootPidInitial
		t.height = 0
		if err := writeHeader(store, header{rootPid: t.root, height: t.height}); err != nil {
			return nil, err
		}
		return t, nil
	}

	h, err := readHeader(store)
	if err != nil {
		return nil, err
	}
	t.root, t.height = h.rootPid, h.height
	return t, nil
}

// Close releases the underlying store.
func (t *BTree) Close() error {
	return t.store.Close()
}

// splitUp is the internal "node full" recursion signal: the caller at
// the next level up must insert (key, newChildPid) into its own node.
type splitUp struct {
	key         int32
	newChildPid int64
}

// Insert adds (key, loc) to the index, splitting and propagating up
// the tree as needed.
func (t *BTree) Insert(key int32, loc RecordLocator) error {
	if t.store.EndPid() == 1 {
		// Store holds only the header page: bootstrap the first leaf.
		leaf := newLeafNode()
		if err := leaf.insert(key, loc); err != nil {
			return err
		}
		leaf.setNextPtr(0)
		if err := leaf.write(rootPidInitial, t.store); err != nil {
			return err
		}
		t.root = rootPidInitial
		t.height = 1
		return writeHeader(t.store, header{rootPid: t.root, height: t.height})
	}

	split, err := t.insertRecursive(key, loc, t.root, int(t.height))
	if err != nil {
		return err
	}
	if split == nil {
		return nil
	}

	// The root itself overflowed: grow a new interior root.
	newRootPid := t.store.EndPid()
	newRoot := newInteriorNode()
	newRoot.initializeRoot(t.root, split.key, split.newChildPid)
	if err := newRoot.write(newRootPid, t.store); err != nil {
		return err
	}
	t.root = newRootPid
	t.height++
	return writeHeader(t.store, header{rootPid: t.root, height: t.height})
}

// insertRecursive descends to page pid, which sits at the given level
// counted up from the leaves (level == 1 means pid is itself a leaf,
// level == 2 means its children are leaves), inserts (key, loc),
// and splits on overflow. A non-nil splitUp means the caller must
// splice (key, newChildPid) into its own node.
func (t *BTree) insertRecursive(key int32, loc RecordLocator, pid int64, level int) (*splitUp, error) {
	if level < 1 {
		return nil, ErrInvalidPageID
	}

	if level == 1 {
		leaf := newLeafNode()
		if err := leaf.read(pid, t.store); err != nil {
			return nil, err
		}

		if err := leaf.insert(key, loc); err == nil {
			return nil, leaf.write(pid, t.store)
		} else if !errors.Is(err, errNodeFull) {
			return nil, err
		}

		siblingPid := t.store.EndPid()
		sibling := newLeafNode()
		siblingFirstKey, err := leaf.insertAndSplit(key, loc, sibling)
		if err != nil {
			return nil, err
		}
		leaf.setNextPtr(siblingPid)
		if err := sibling.write(siblingPid, t.store); err != nil {
			return nil, err
		}
		if err := leaf.write(pid, t.store); err != nil {
			return nil, err
		}
		return &splitUp{key: siblingFirstKey, newChildPid: siblingPid}, nil
	}

	node := newInteriorNode()
	if err := node.read(pid, t.store); err != nil {
		return nil, err
	}
	childPid, _ := node.locateChild(key)

	childSplit, err := t.insertRecursive(key, loc, childPid, level-1)
	if err != nil {
		return nil, err
	}
	if childSplit == nil {
		return nil, nil
	}

	if err := node.insert(childSplit.key, childSplit.newChildPid); err == nil {
		return nil, node.write(pid, t.store)
	} else if !errors.Is(err, errNodeFull) {
		return nil, err
	}

	siblingPid := t.store.EndPid()
	sibling := newInteriorNode()
	midKey, err := node.insertAndSplit(childSplit.key, childSplit.newChildPid, sibling)
	if err != nil {
		return nil, err
	}
	if err := sibling.write(siblingPid, t.store); err != nil {
		return nil, err
	}
	if err := node.write(pid, t.store); err != nil {
		return nil, err
	}
	return &splitUp{key: midKey, newChildPid: siblingPid}, nil
}

// Locate descends from the root to the leaf that should hold key,
// returning a cursor at the smallest entry >= key. On an empty tree,
// or when key is past every stored key, the returned cursor reads as
// end-of-tree on the first ReadForward rather than erroring here.
func (t *BTree) Locate(key int32) (Cursor, error) {
	if t.height == 0 {
		return Cursor{}, nil
	}

	pid := t.root
	for level := int(t.height); level > 1; level-- {
		node := newInteriorNode()
		if err := node.read(pid, t.store); err != nil {
			return Cursor{}, err
		}
		pid, _ = node.locateChild(key)
	}

	leaf := newLeafNode()
	if err := leaf.read(pid, t.store); err != nil {
		return Cursor{}, err
	}
	eid, _ := leaf.locate(key)
	return Cursor{LeafPid: pid, Index: eid}, nil
}

// ReadForward reads the entry the cursor points to and advances it
// in place, crossing into the sibling leaf when the current leaf is
// exhausted. It returns ErrEndOfTree once there is nothing left.
func (t *BTree) ReadForward(cursor *Cursor) (int32, RecordLocator, error) {
	if cursor.LeafPid == 0 {
		return 0, RecordLocator{}, ErrEndOfTree
	}

	leaf := newLeafNode()
	if err := leaf.read(cursor.LeafPid, t.store); err != nil {
		return 0, RecordLocator{}, err
	}

	if cursor.Index >= int(leaf.keyCount()) {
		next := leaf.getNextPtr()
		if next == 0 {
			cursor.LeafPid = 0
			return 0, RecordLocator{}, ErrEndOfTree
		}
		cursor.LeafPid = next
		cursor.Index = 0
		if err := leaf.read(next, t.store); err != nil {
			return 0, RecordLocator{}, err
		}
		if leaf.keyCount() == 0 {
			cursor.LeafPid = 0
			return 0, RecordLocator{}, ErrEndOfTree
		}
	}

	key, loc, err := leaf.readEntry(cursor.Index)
	if err != nil {
		return 0, RecordLocator{}, err
	}

	if cursor.Index+1 < int(leaf.keyCount()) {
		cursor.Index++
	} else {
		cursor.LeafPid = leaf.getNextPtr()
		cursor.Index = 0
	}
	return key, loc, nil
}

// Height reports the current tree height (0 = empty, 1 = root is a
// leaf, >=2 = root is interior).
func (t *BTree) Height() int32 {
	return t.height
}

// RootPid reports the current root page id.
func (t *BTree) RootPid() int64 {
	return t.root
}
