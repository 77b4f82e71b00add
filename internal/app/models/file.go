package models

import "time"

// File is a managed upload. New files are temporary until something references them.
type File struct {
	ID        int64      `json:"id" db:"id"`
	OwnerID   *int64     `json:"ownerId,omitempty" db:"uid"`
	FileName  string     `json:"fileName" db:"filename"`
	URI       string     `json:"uri" db:"uri"` // storage-relative path, e.g. profile_pictures/<uuid>.png
	FileURL   string     `json:"fileUrl" db:"url"`
	MimeType  string     `json:"mimeType" db:"mime"`
	FileSize  int64      `json:"fileSize" db:"size"`
	Status    FileStatus `json:"status" db:"status"`
	CreatedAt time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time  `json:"updatedAt" db:"updated_at"`
}

// IsPermanent reports whether the file is exempt from temporary-file cleanup.
func (f *File) IsPermanent() bool {
	return f.Status == FileStatusPermanent
}

// SetPermanent flags the file as permanent. The change is persisted by the file repository.
func (f *File) SetPermanent() {
	f.Status = FileStatusPermanent
}
