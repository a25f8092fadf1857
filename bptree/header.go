package bptree

import (
	"fmt"

	"bptreeindex/pagestore"
)

// header is page 0: root page id at offset 0, tree height at offset
// pageIDSize. It is rewritten whenever root or height changes.
type header struct {
	rootPid int64
	height  int32
}

func readHeader(store pagestore.Store) (header, error) {
	buf := make([]byte, pagestore.PageSize)
	if err := store.Read(headerPid, buf); err != nil {
		return header{}, fmt.Errorf("bptree: read header: %w", err)
	}
	return header{
		rootPid: getInt64(buf, 0),
		height:  getInt32(buf, pageIDSize),
	}, nil
}

func writeHeader(store pagestore.Store, h header) error {
	buf := make([]byte, pagestore.PageSize)
	putInt64(buf, 0, h.rootPid)
	putInt32(buf, pageIDSize, h.height)
	if err := store.Write(headerPid, buf); err != nil {
		return fmt.Errorf("bptree: write header: %w", err)
	}
	return nil
}
