package validation

import (
	"path/filepath"
	"strings"

	"github.com/yigit/studentportal/internal/pkg/apperrors"
)

// FileValidation checks an upload's name and size against upload rules
type FileValidation struct {
	Filename   string
	Size       int64
	Extensions []string
	MaxSize    int64
}

// NewFileValidation creates a new file validation
func NewFileValidation(filename string, size int64) *FileValidation {
	return &FileValidation{
		Filename: filename,
		Size:     size,
	}
}

// WithExtensions sets the allowed extensions, without dots
func (v *FileValidation) WithExtensions(extensions ...string) *FileValidation {
	v.Extensions = extensions
	return v
}

// WithMaxSize sets the maximum size in bytes; zero means unlimited
func (v *FileValidation) WithMaxSize(max int64) *FileValidation {
	v.MaxSize = max
	return v
}

// Validate returns ErrFileExtensionInvalid or ErrFileTooLarge, or nil
func (v *FileValidation) Validate() error {
	if len(v.Extensions) > 0 {
		ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(v.Filename), "."))
		allowed := false
		for _, candidate := range v.Extensions {
			if ext != "" && ext == strings.ToLower(candidate) {
				allowed = true
				break
			}
		}
		if !allowed {
			return apperrors.NewCustomError(apperrors.ErrFileExtensionInvalid,
				"Only files with the following extensions are allowed: "+strings.Join(v.Extensions, " "))
		}
	}

	if v.MaxSize > 0 && v.Size > v.MaxSize {
		return apperrors.NewCustomError(apperrors.ErrFileTooLarge,
			"The file exceeds the maximum upload size of "+FormatSize(v.MaxSize))
	}

	return nil
}

// FormatSize renders a byte count the way upload limits are displayed, e.g. "2.44 MB"
func FormatSize(size int64) string {
	const unit = 1024
	if size < unit {
		return formatFloat(float64(size)) + " bytes"
	}
	value := float64(size) / unit
	for _, suffix := range []string{"KB", "MB", "GB"} {
		if value < unit {
			return formatFloat(value) + " " + suffix
		}
		value /= unit
	}
	return formatFloat(value) + " TB"
}
