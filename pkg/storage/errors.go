package storage

import "errors"

var (
	// Key validation errors
	ErrInvalidID = errors.New("invalid storage id") // Prevents path traversal attacks

	// Lookup errors
	ErrNotFound       = errors.New("stored content not found")
	ErrBucketNotFound = errors.New("bucket not found")

	// I/O operation errors - wrapped with context for debugging
	ErrFailedToOpenFile        = errors.New("failed to open file")
	ErrFailedToReadFile        = errors.New("failed to read file")
	ErrFailedToWriteFile       = errors.New("failed to write file")
	ErrFailedToCreateFile      = errors.New("failed to create file")
	ErrFailedToDeleteFile      = errors.New("failed to delete file")
	ErrFailedToCreateDirectory = errors.New("failed to create directory")
	ErrFailedToStatPath        = errors.New("failed to stat path")
	ErrFailedToGetAbsolutePath = errors.New("failed to get absolute path")

	// Capacity errors
	ErrStorageFull = errors.New("storage size limit exceeded")

	// S3-specific errors for proper error classification
	ErrAccessDenied       = errors.New("access denied")
	ErrRequestTimeout     = errors.New("request timed out")
	ErrServiceUnavailable = errors.New("service temporarily unavailable") // Used for throttling and retries
	ErrInvalidObjectState = errors.New("invalid object state")

	// Context and cancellation errors
	ErrOperationTimeout  = errors.New("operation timed out")
	ErrOperationCanceled = errors.New("operation canceled")

	// Configuration errors
	ErrInvalidConfig      = errors.New("invalid configuration")
	ErrFailedToLoadConfig = errors.New("failed to load AWS config")
	ErrRedisNotReady      = errors.New("redis is not ready")
	ErrInvalidRedisURL    = errors.New("failed to parse redis connection url")
)
