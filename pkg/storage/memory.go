package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/dmitrymomot/uploadkit"
	"github.com/dmitrymomot/uploadkit/pkg/bytesize"
)

type memoryObject struct {
	content  []byte
	metadata uploadkit.Metadata
	modTime  time.Time
}

// Memory is an in-memory backend for tests and ephemeral environments.
// Safe for concurrent use.
type Memory struct {
	mu      sync.RWMutex
	objects map[string]*memoryObject
	maxSize int64 // Maximum total storage size (0 = unlimited)
	size    int64
}

// MemoryOption configures Memory storage.
type MemoryOption func(*Memory)

// WithMaxTotalSize caps the total stored bytes; uploads beyond the cap fail
// with ErrStorageFull. Zero means unlimited.
func WithMaxTotalSize(n int64) MemoryOption {
	return func(s *Memory) {
		s.maxSize = n
	}
}

// NewMemory creates an empty in-memory backend.
func NewMemory(opts ...MemoryOption) *Memory {
	s := &Memory{objects: make(map[string]*memoryObject)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Upload reads the content into memory and stores it under the id,
// replacing any previous content.
func (s *Memory) Upload(ctx context.Context, r io.Reader, id string, md uploadkit.Metadata) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	if id == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidID)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToReadFile, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	newSize := s.size + int64(len(data))
	if existing, ok := s.objects[id]; ok {
		newSize -= int64(len(existing.content))
	}
	if s.maxSize > 0 && newSize > s.maxSize {
		return fmt.Errorf("%w: %s over %s limit", ErrStorageFull,
			bytesize.Format(uint64(newSize-s.maxSize)), bytesize.Format(uint64(s.maxSize)))
	}

	s.objects[id] = &memoryObject{
		content:  data,
		metadata: md,
		modTime:  time.Now(),
	}
	s.size = newSize
	return nil
}

// Open returns a seekable reader over the stored content.
func (s *Memory) Open(ctx context.Context, id string) (io.ReadCloser, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	s.mu.RLock()
	obj, ok := s.objects[id]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return &memoryReader{Reader: bytes.NewReader(obj.content)}, nil
}

// Exists reports whether content is stored under the id.
func (s *Memory) Exists(ctx context.Context, id string) (bool, error) {
	select {
	case <-ctx.Done():
		return false, ctx.Err()
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.objects[id]
	return ok, nil
}

// Delete removes the stored content. Deleting a missing id returns
// ErrNotFound.
func (s *Memory) Delete(ctx context.Context, id string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	obj, ok := s.objects[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	s.size -= int64(len(obj.content))
	delete(s.objects, id)
	return nil
}

// URL returns a memory pseudo-URL, useful in logs and tests.
func (s *Memory) URL(id string) string {
	return "memory://" + id
}

// Len returns the number of stored objects.
func (s *Memory) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}

// Reset drops all stored objects.
func (s *Memory) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects = make(map[string]*memoryObject)
	s.size = 0
}

// memoryReader wraps bytes.Reader with a no-op Close so the stored content
// stays seekable through the io.ReadCloser interface.
type memoryReader struct {
	*bytes.Reader
}

func (r *memoryReader) Close() error { return nil }
