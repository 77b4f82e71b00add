package filestorage

import (
	"mime/multipart"
)

// FileInfo represents information about a stored file
type FileInfo struct {
	Path     string // storage-relative path, e.g. profile_pictures/<uuid>.png
	URL      string // public URL of the file
	Filename string // original filename
	FileSize int64  // size in bytes
	MimeType string // sniffed MIME type
}

// FileStorage defines the interface for file storage operations
type FileStorage interface {
	// SaveFileWithPath stores the upload under the given subdirectory
	SaveFileWithPath(fileHeader *multipart.FileHeader, subPath string) (*FileInfo, error)

	// DeleteFile removes a file by its storage-relative path
	DeleteFile(filePath string) error

	// GetFullPath returns the filesystem path of a storage-relative path
	GetFullPath(filePath string) string
}
