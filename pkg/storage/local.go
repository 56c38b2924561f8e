package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmitrymomot/uploadkit"
)

// Local stores content on the local filesystem. All operations are confined
// to baseDir to prevent path traversal. Safe for concurrent use with proper
// file locking by the OS.
type Local struct {
	baseDir       string // Absolute path - all content stored within this directory
	baseURL       string // URL prefix for serving files (e.g. "/files/")
	uploadTimeout time.Duration
}

// LocalOption configures Local storage.
type LocalOption func(*Local)

// WithLocalUploadTimeout sets the timeout for upload operations.
// If not set, relies on the context deadline from the caller.
func WithLocalUploadTimeout(timeout time.Duration) LocalOption {
	return func(s *Local) {
		s.uploadTimeout = timeout
	}
}

// NewLocal creates a local filesystem backend rooted at baseDir, creating
// the directory if needed. baseURL is the public prefix returned by URL.
func NewLocal(baseDir, baseURL string, opts ...LocalOption) (*Local, error) {
	if baseDir == "" {
		return nil, ErrInvalidConfig
	}

	// Must resolve to absolute path - prevents relative path confusion
	absBaseDir, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to resolve base directory: %v", ErrFailedToGetAbsolutePath, err)
	}

	if err := os.MkdirAll(absBaseDir, 0755); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToCreateDirectory, err)
	}

	if baseURL != "" && !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	s := &Local{
		baseDir: absBaseDir,
		baseURL: baseURL,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Upload writes the content to disk under the id. Partial files are removed
// on error or cancellation.
func (s *Local) Upload(ctx context.Context, r io.Reader, id string, _ uploadkit.Metadata) error {
	if s.uploadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.uploadTimeout)
		defer cancel()
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	absPath, err := s.resolve(id)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToCreateDirectory, err)
	}

	// Create with restrictive permissions (644 = rw-r--r--)
	dst, err := os.OpenFile(absPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToCreateFile, err)
	}
	defer func() { _ = dst.Close() }()

	// Manual buffered copy with context checking - allows cancellation during large uploads
	buf := make([]byte, 32*1024) // 32KB balances memory usage and syscall overhead
	for {
		select {
		case <-ctx.Done():
			_ = dst.Close()
			_ = os.Remove(absPath) // Clean up partial file
			return ctx.Err()
		default:
		}

		n, readErr := r.Read(buf)
		if n > 0 {
			if _, writeErr := dst.Write(buf[:n]); writeErr != nil {
				_ = dst.Close()
				_ = os.Remove(absPath)
				return fmt.Errorf("%w: %v", ErrFailedToWriteFile, writeErr)
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			_ = dst.Close()
			_ = os.Remove(absPath)
			return fmt.Errorf("%w: %v", ErrFailedToReadFile, readErr)
		}
	}

	return nil
}

// Open returns a reader over the stored content. The returned *os.File is
// seekable, so rewinding the uploaded file seeks in place.
func (s *Local) Open(ctx context.Context, id string) (io.ReadCloser, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	absPath, err := s.resolve(id)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("%w: %v", ErrFailedToOpenFile, err)
	}
	return f, nil
}

// Exists reports whether a regular file is stored under the id.
func (s *Local) Exists(ctx context.Context, id string) (bool, error) {
	select {
	case <-ctx.Done():
		return false, ctx.Err()
	default:
	}

	absPath, err := s.resolve(id)
	if err != nil {
		return false, err
	}

	info, err := os.Stat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("%w: %v", ErrFailedToStatPath, err)
	}
	return !info.IsDir(), nil
}

// Delete removes the stored content. Deleting a missing id returns
// ErrNotFound.
func (s *Local) Delete(ctx context.Context, id string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	absPath, err := s.resolve(id)
	if err != nil {
		return err
	}

	if err := os.Remove(absPath); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return fmt.Errorf("%w: %v", ErrFailedToDeleteFile, err)
	}
	return nil
}

// URL returns the public URL for the id.
func (s *Local) URL(id string) string {
	id = filepath.ToSlash(filepath.Clean(id))
	return s.baseURL + strings.TrimPrefix(id, "/")
}

// resolve validates the id and maps it to an absolute path within baseDir.
// Critical security function: the prefix check guarantees resolved paths
// never escape the base directory.
func (s *Local) resolve(id string) (string, error) {
	if id == "" || strings.Contains(id, "\x00") {
		return "", fmt.Errorf("%w: %q", ErrInvalidID, id)
	}

	absPath, err := filepath.Abs(filepath.Join(s.baseDir, filepath.Clean(id)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFailedToGetAbsolutePath, err)
	}

	if !strings.HasPrefix(absPath, s.baseDir+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %q", ErrInvalidID, id)
	}

	return absPath, nil
}
