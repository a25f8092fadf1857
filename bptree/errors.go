package bptree

import "errors"

// Sentinel errors for the index's externally visible failure kinds
// (spec §7). "node full" is an internal recursion signal and never
// escapes a public method.
var (
	// ErrInvalidFileMode is returned by Open for a mode other than
	// ModeRead or ModeReadWrite.
	ErrInvalidFileMode = errors.New("bptree: invalid file mode")
	// ErrInvalidPageID is returned by Insert when the recorded tree
	// height leaves no level to descend into (height 0 with pages
	// beyond the header). Page contents are not validated: a descent
	// reads each page as the node kind its level implies.
	ErrInvalidPageID = errors.New("bptree: invalid page id")
	// ErrEndOfTree is returned by ReadForward once the cursor has
	// walked past the last leaf.
	ErrEndOfTree = errors.New("bptree: end of tree")
	// ErrInvalidCursor is returned when an entry index beyond a node's
	// key count is requested.
	ErrInvalidCursor = errors.New("bptree: invalid cursor")

	// errNodeFull is the internal split signal; it never surfaces from
	// a public method.
	errNodeFull = errors.New("bptree: node full")
)
