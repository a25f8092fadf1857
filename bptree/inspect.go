package bptree

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"bptreeindex/pagestore"
)

// InspectIndexFile opens indexFileName read-only and prints a
// human-readable BFS dump of its structure to stdout.
func InspectIndexFile(indexFileName string) error {
	return InspectIndexFileTo(os.Stdout, indexFileName)
}

// InspectIndexFileTo writes the dump to w: the header page (root id,
// height, page count), then every node level by level, interior nodes
// in yellow and leaves in green.
func InspectIndexFileTo(w io.Writer, indexFileName string) error {
	store, err := pagestore.Open(indexFileName, pagestore.ModeRead)
	if err != nil {
		return err
	}
	defer store.Close()

	h, err := readHeader(store)
	if err != nil {
		return err
	}

	headerStyle := color.New(color.FgCyan, color.Bold)
	leafStyle := color.New(color.FgGreen)
	interiorStyle := color.New(color.FgYellow)

	headerStyle.Fprintf(w, "Index: %s\n", indexFileName)
	fmt.Fprintf(w, "  root=%d height=%d pages=%d\n", h.rootPid, h.height, store.EndPid())

	if h.height == 0 {
		fmt.Fprintln(w, "  (empty tree)")
		return nil
	}

	type queued struct {
		pid   int64
		level int32
	}
	queue := []queued{{h.rootPid, h.height}}

	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]

		if item.level == 1 {
			leaf := newLeafNode()
			if err := leaf.read(item.pid, store); err != nil {
				return err
			}
			leafStyle.Fprintf(w, "  [page %d] LEAF keys=%d next=%d\n", item.pid, leaf.keyCount(), leaf.getNextPtr())
			for i := 0; i < int(leaf.keyCount()); i++ {
				key, loc, err := leaf.readEntry(i)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "      %d -> (page=%d slot=%d)\n", key, loc.PageID, loc.SlotID)
			}
			continue
		}

		node := newInteriorNode()
		if err := node.read(item.pid, store); err != nil {
			return err
		}
		interiorStyle.Fprintf(w, "  [page %d] INTERIOR keys=%d p0=%d\n", item.pid, node.keyCount(), node.p0())
		queue = append(queue, queued{node.p0(), item.level - 1})
		for i := 0; i < int(node.keyCount()); i++ {
			child := node.childAt(i)
			fmt.Fprintf(w, "      key=%d -> child=%d\n", node.keyAt(i), child)
			queue = append(queue, queued{child, item.level - 1})
		}
	}

	return nil
}
