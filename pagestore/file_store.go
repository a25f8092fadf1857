package pagestore

import (
	"fmt"
	"os"
	"sync"
)

// FileStore is a disk-backed Store: one OS file holding a flat array of
// PageSize-byte pages.
type FileStore struct {
	file   *os.File
	mode   Mode
	endPid int64
	mu     sync.RWMutex
}

// Open opens name as a page store. ModeRead requires the file to
// already exist; ModeReadWrite creates it if absent.
func Open(name string, mode Mode) (*FileStore, error) {
	var flags int
	switch mode {
	case ModeRead:
		flags = os.O_RDONLY
	case ModeReadWrite:
		flags = os.O_RDWR | os.O_CREATE
	default:
		return nil, ErrInvalidMode
	}

	file, err := os.OpenFile(name, flags, 0644)
	if err != nil {
		return nil, fmt.Errorf("pagestore: open %s: %w", name, err)
	}

	stat, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("pagestore: stat %s: %w", name, err)
	}

	return &FileStore{
		file:   file,
		mode:   mode,
		endPid: stat.Size() / PageSize,
	}, nil
}

// Read implements Store.
func (s *FileStore) Read(pid int64, buf []byte) error {
	if len(buf) != PageSize {
		return fmt.Errorf("pagestore: read buffer must be %d bytes, got %d", PageSize, len(buf))
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.file == nil {
		return fmt.Errorf("pagestore: store is closed")
	}

	n, err := s.file.ReadAt(buf, pid*PageSize)
	if err != nil && n == 0 {
		return fmt.Errorf("pagestore: read page %d: %w", pid, err)
	}
	for i := n; i < PageSize; i++ {
		buf[i] = 0
	}
	return nil
}

// Write implements Store.
func (s *FileStore) Write(pid int64, buf []byte) error {
	if len(buf) != PageSize {
		return fmt.Errorf("pagestore: write buffer must be %d bytes, got %d", PageSize, len(buf))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file == nil {
		return fmt.Errorf("pagestore: store is closed")
	}
	if s.mode != ModeReadWrite {
		return fmt.Errorf("pagestore: store is read-only")
	}

	if _, err := s.file.WriteAt(buf, pid*PageSize); err != nil {
		return fmt.Errorf("pagestore: write page %d: %w", pid, err)
	}
	if pid >= s.endPid {
		s.endPid = pid + 1
	}
	return nil
}

// EndPid implements Store.
func (s *FileStore) EndPid() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.endPid
}

// Close implements Store.
func (s *FileStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file == nil {
		return nil
	}
	err := s.file.Sync()
	closeErr := s.file.Close()
	s.file = nil
	if err != nil {
		return fmt.Errorf("pagestore: sync before close: %w", err)
	}
	if closeErr != nil {
		return fmt.Errorf("pagestore: close: %w", closeErr)
	}
	return nil
}
