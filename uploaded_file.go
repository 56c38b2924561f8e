package uploadkit

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// UploadedFile is a handle over a file stored in a backend. It carries the
// storage key, the storage name and the extracted metadata, and lazily opens
// the underlying content for reading.
//
// The JSON form is the compact record meant for persistence:
//
//	{"id":"...","storage":"...","metadata":{"size":..., ...}}
//
// A handle deserialized from JSON must be resolved against a Registry (see
// Registry.File) before IO or backend operations can be used.
//
// An UploadedFile is not safe for concurrent use.
type UploadedFile struct {
	ID          string   `json:"id"`
	StorageName string   `json:"storage"`
	Metadata    Metadata `json:"metadata"`

	backend Storage
	reader  io.ReadCloser
}

// NewUploadedFile builds a handle bound to the given backend. Most callers
// obtain handles from Uploader.Upload or Registry.File instead.
func NewUploadedFile(id, storageName string, md Metadata, backend Storage) *UploadedFile {
	return &UploadedFile{ID: id, StorageName: storageName, Metadata: md, backend: backend}
}

// Equal reports whether both handles point at the same stored content:
// same storage name and same id. Metadata is not compared.
func (f *UploadedFile) Equal(other *UploadedFile) bool {
	if f == nil || other == nil {
		return f == other
	}
	return f.StorageName == other.StorageName && f.ID == other.ID
}

// Size returns the stored content size in bytes.
func (f *UploadedFile) Size() int64 { return f.Metadata.Size }

// MIMEType returns the recorded MIME type and false when none was captured.
func (f *UploadedFile) MIMEType() (string, bool) {
	if f.Metadata.MIMEType == "" {
		return "", false
	}
	return f.Metadata.MIMEType, true
}

// Extension returns the lowercased extension without the leading dot, derived
// from the original filename and falling back to the storage key. Returns
// false when neither carries an extension.
func (f *UploadedFile) Extension() (string, bool) {
	if ext, ok := f.Metadata.Extension(); ok {
		return ext, true
	}
	ext := strings.TrimPrefix(filepath.Ext(f.ID), ".")
	if ext == "" {
		return "", false
	}
	return strings.ToLower(ext), true
}

// Width returns the extracted image width and false when dimension
// extraction has not run for this file.
func (f *UploadedFile) Width() (int, bool) {
	if f.Metadata.Width == nil {
		return 0, false
	}
	return *f.Metadata.Width, true
}

// Height returns the extracted image height and false when dimension
// extraction has not run for this file.
func (f *UploadedFile) Height() (int, bool) {
	if f.Metadata.Height == nil {
		return 0, false
	}
	return *f.Metadata.Height, true
}

// Open opens the stored content for reading. An already open handle is
// closed and reopened from the start.
func (f *UploadedFile) Open(ctx context.Context) error {
	if f.backend == nil {
		return ErrStorageNotRegistered
	}
	if f.reader != nil {
		_ = f.reader.Close()
		f.reader = nil
	}
	rc, err := f.backend.Open(ctx, f.ID)
	if err != nil {
		return err
	}
	f.reader = rc
	return nil
}

// Read reads from the opened content. Open must be called first.
func (f *UploadedFile) Read(p []byte) (int, error) {
	if f.reader == nil {
		return 0, ErrFileNotOpen
	}
	return f.reader.Read(p)
}

// Rewind repositions the handle at the start of the content. Seekable
// backends seek in place; others are reopened.
func (f *UploadedFile) Rewind(ctx context.Context) error {
	if f.reader == nil {
		return ErrFileNotOpen
	}
	if seeker, ok := f.reader.(io.Seeker); ok {
		if _, err := seeker.Seek(0, io.SeekStart); err != nil {
			return fmt.Errorf("%w: %v", ErrFailedToRewind, err)
		}
		return nil
	}
	return f.Open(ctx)
}

// Close releases the open reader. Closing a never-opened handle is a no-op.
func (f *UploadedFile) Close() error {
	if f.reader == nil {
		return nil
	}
	err := f.reader.Close()
	f.reader = nil
	return err
}

// URL returns the public URL for the stored content, or "" when the backend
// has none or the handle is unresolved.
func (f *UploadedFile) URL() string {
	if f.backend == nil {
		return ""
	}
	return f.backend.URL(f.ID)
}

// Exists reports whether the stored content is still present in the backend.
func (f *UploadedFile) Exists(ctx context.Context) (bool, error) {
	if f.backend == nil {
		return false, ErrStorageNotRegistered
	}
	return f.backend.Exists(ctx, f.ID)
}

// Delete removes the stored content from the backend and closes the handle.
func (f *UploadedFile) Delete(ctx context.Context) error {
	if f.backend == nil {
		return ErrStorageNotRegistered
	}
	_ = f.Close()
	return f.backend.Delete(ctx, f.ID)
}

// Download copies the stored content into a temporary file and returns it
// positioned at the start. The caller owns the file and should remove it
// when done.
func (f *UploadedFile) Download(ctx context.Context) (*os.File, error) {
	if f.backend == nil {
		return nil, ErrStorageNotRegistered
	}
	rc, err := f.backend.Open(ctx, f.ID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()

	pattern := "uploadkit-*"
	if ext, ok := f.Extension(); ok {
		pattern += "." + ext
	}
	tmp, err := os.CreateTemp("", pattern)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(tmp, rc); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return nil, err
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return nil, err
	}
	return tmp, nil
}
