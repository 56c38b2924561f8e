package uploadkit

import "errors"

var (
	// Registry errors
	ErrStorageNotRegistered = errors.New("storage is not registered")
	ErrStorageNameEmpty     = errors.New("storage name is empty")

	// Upload pipeline errors
	ErrNilReader        = errors.New("reader is nil")
	ErrNilFileHeader    = errors.New("file header is nil")
	ErrFailedToOpenFile = errors.New("failed to open file")

	// UploadedFile errors
	ErrFileNotOpen    = errors.New("uploaded file is not open")
	ErrInvalidData    = errors.New("invalid uploaded file data")
	ErrFailedToRewind = errors.New("failed to rewind uploaded file")
)
