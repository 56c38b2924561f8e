package uploadkit

import (
	"path/filepath"
	"strings"
)

// Metadata describes an uploaded file. It is extracted once during upload and
// treated as immutable afterwards. Width and Height are populated only when a
// dimension-extraction step has run; nil means "not extracted", which is
// distinct from a zero value.
type Metadata struct {
	Filename string `json:"filename,omitempty"`
	Size     int64  `json:"size"`
	MIMEType string `json:"mime_type,omitempty"`
	Width    *int   `json:"width,omitempty"`
	Height   *int   `json:"height,omitempty"`
}

// Extension returns the lowercased filename extension without the leading
// dot, and false when the filename carries no extension.
func (m Metadata) Extension() (string, bool) {
	ext := strings.TrimPrefix(filepath.Ext(m.Filename), ".")
	if ext == "" {
		return "", false
	}
	return strings.ToLower(ext), true
}

// SanitizeFilename removes any path components and dangerous characters from a
// filename to prevent path traversal and null-byte tricks. Returns "unnamed"
// for empty or special directory references.
func SanitizeFilename(filename string) string {
	filename = strings.ReplaceAll(filename, "\\", "/")
	filename = filepath.Base(filename)
	filename = strings.ReplaceAll(filename, "\x00", "")

	if filename == "." || filename == ".." || filename == "" || filename == "/" {
		filename = "unnamed"
	}

	return filename
}
