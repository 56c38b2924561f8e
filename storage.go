package uploadkit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"
)

// Storage is the narrow contract a backend must implement. Implementations
// for the local filesystem, memory, S3 and Redis live in pkg/storage.
// Implementations must be safe for concurrent use.
type Storage interface {
	// Upload stores the content read from r under the given id.
	// The metadata is advisory; backends may use it (e.g. content type).
	Upload(ctx context.Context, r io.Reader, id string, md Metadata) error
	// Open returns a reader over the stored content.
	Open(ctx context.Context, id string) (io.ReadCloser, error)
	// Exists reports whether content is stored under the id.
	Exists(ctx context.Context, id string) (bool, error)
	// Delete removes the stored content.
	Delete(ctx context.Context, id string) error
	// URL returns the public URL for the id, or "" when the backend has none.
	URL(id string) string
}

// Registry maps storage names to backends. A registry instance is owned by
// the application; there is no package-level default. Safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	storages map[string]Storage
}

func NewRegistry() *Registry {
	return &Registry{storages: make(map[string]Storage)}
}

// Register adds a backend under the given name, replacing any previous one.
// Registering with an empty name or a nil backend panics: both indicate a
// wiring bug that must surface at startup.
func (r *Registry) Register(name string, s Storage) {
	if name == "" {
		panic("uploadkit: Register called with empty storage name")
	}
	if s == nil {
		panic("uploadkit: Register called with nil storage")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.storages[name] = s
}

// Get returns the backend registered under the name.
func (r *Registry) Get(name string) (Storage, error) {
	if name == "" {
		return nil, ErrStorageNameEmpty
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.storages[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrStorageNotRegistered, name)
	}
	return s, nil
}

// Names returns the registered storage names in unspecified order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.storages))
	for name := range r.storages {
		names = append(names, name)
	}
	return names
}

// File reconstructs an UploadedFile from its JSON data record, resolving the
// backend by the recorded storage name.
func (r *Registry) File(data []byte) (*UploadedFile, error) {
	var f UploadedFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidData, err)
	}
	if f.ID == "" || f.StorageName == "" {
		return nil, fmt.Errorf("%w: missing id or storage", ErrInvalidData)
	}
	backend, err := r.Get(f.StorageName)
	if err != nil {
		return nil, err
	}
	f.backend = backend
	return &f, nil
}
