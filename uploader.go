package uploadkit

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"strings"

	"github.com/google/uuid"
)

// IDGenerator produces a storage key for a new upload from its metadata.
type IDGenerator func(md Metadata) string

// defaultIDGenerator returns a random uuid, keeping the lowercased extension
// of the original filename so that keys remain recognizable in the backend.
func defaultIDGenerator(md Metadata) string {
	id := uuid.NewString()
	if ext, ok := md.Extension(); ok {
		id += "." + ext
	}
	return id
}

// Uploader runs the upload pipeline: resolve the backend from the registry,
// build metadata, generate a storage key, store the content and return the
// UploadedFile handle. Safe for concurrent use.
type Uploader struct {
	registry *Registry
	log      *slog.Logger
	newID    IDGenerator
}

// UploaderOption configures an Uploader.
type UploaderOption func(*Uploader)

// WithLogger sets the logger used by the upload pipeline.
// Nil loggers are ignored.
func WithLogger(log *slog.Logger) UploaderOption {
	return func(u *Uploader) {
		if log != nil {
			u.log = log
		}
	}
}

// WithIDGenerator replaces the default uuid-based storage key generator.
// Nil generators are ignored.
func WithIDGenerator(fn IDGenerator) UploaderOption {
	return func(u *Uploader) {
		if fn != nil {
			u.newID = fn
		}
	}
}

// NewUploader creates an uploader over the given registry.
func NewUploader(registry *Registry, opts ...UploaderOption) *Uploader {
	if registry == nil {
		panic("uploadkit: NewUploader called with nil registry")
	}
	u := &Uploader{
		registry: registry,
		log:      slog.Default(),
		newID:    defaultIDGenerator,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// UploadOption supplies metadata and overrides for a single upload.
type UploadOption func(*uploadOptions)

type uploadOptions struct {
	md       Metadata
	location string
	sizeSet  bool
}

// WithFilename records the original filename. The name is sanitized before
// being stored in metadata.
func WithFilename(name string) UploadOption {
	return func(o *uploadOptions) { o.md.Filename = SanitizeFilename(name) }
}

// WithMIMEType records the MIME type as supplied by the caller. The pipeline
// performs no content sniffing.
func WithMIMEType(mimeType string) UploadOption {
	return func(o *uploadOptions) { o.md.MIMEType = mimeType }
}

// WithSize records the content size up front, skipping byte counting.
func WithSize(size int64) UploadOption {
	return func(o *uploadOptions) {
		o.md.Size = size
		o.sizeSet = true
	}
}

// WithDimensions records image dimensions extracted by the caller.
func WithDimensions(width, height int) UploadOption {
	return func(o *uploadOptions) {
		o.md.Width = &width
		o.md.Height = &height
	}
}

// WithLocation pins the storage key instead of generating one. Existing
// content under the same key is overwritten by most backends.
func WithLocation(id string) UploadOption {
	return func(o *uploadOptions) { o.location = id }
}

// Upload stores the content read from r into the named backend and returns
// the handle. Metadata not supplied via options is left absent; size is
// counted during the copy unless WithSize was given.
func (u *Uploader) Upload(ctx context.Context, r io.Reader, storageName string, opts ...UploadOption) (*UploadedFile, error) {
	if r == nil {
		return nil, ErrNilReader
	}
	backend, err := u.registry.Get(storageName)
	if err != nil {
		return nil, err
	}

	var o uploadOptions
	for _, opt := range opts {
		opt(&o)
	}

	id := o.location
	if id == "" {
		id = u.newID(o.md)
	}

	var counter *countingReader
	if !o.sizeSet {
		counter = &countingReader{r: r}
		r = counter
	}

	if err := backend.Upload(ctx, r, id, o.md); err != nil {
		return nil, fmt.Errorf("upload to %q failed: %w", storageName, err)
	}
	if counter != nil {
		o.md.Size = counter.n
	}

	u.log.DebugContext(ctx, "file uploaded",
		slog.String("storage", storageName),
		slog.String("id", id),
		slog.Int64("size", o.md.Size),
	)

	return NewUploadedFile(id, storageName, o.md, backend), nil
}

// UploadFromMultipart stores a multipart form file. Filename, size and MIME
// type are taken from the part header; the MIME type is metadata only and is
// never derived from file content.
func (u *Uploader) UploadFromMultipart(ctx context.Context, fh *multipart.FileHeader, storageName string, opts ...UploadOption) (*UploadedFile, error) {
	if fh == nil {
		return nil, ErrNilFileHeader
	}
	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToOpenFile, err)
	}
	defer func() { _ = src.Close() }()

	headerOpts := []UploadOption{
		WithFilename(fh.Filename),
		WithSize(fh.Size),
	}
	if ct := strings.TrimSpace(fh.Header.Get("Content-Type")); ct != "" {
		headerOpts = append(headerOpts, WithMIMEType(ct))
	}

	return u.Upload(ctx, src, storageName, append(headerOpts, opts...)...)
}

// Delete removes stored content by storage name and key. A convenience for
// callers holding only the persisted record fields.
func (u *Uploader) Delete(ctx context.Context, storageName, id string) error {
	backend, err := u.registry.Get(storageName)
	if err != nil {
		return err
	}
	if err := backend.Delete(ctx, id); err != nil {
		return err
	}
	u.log.DebugContext(ctx, "file deleted",
		slog.String("storage", storageName),
		slog.String("id", id),
	)
	return nil
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
