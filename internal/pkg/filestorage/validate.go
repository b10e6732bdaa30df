package filestorage

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"sort"
	"strings"

	"github.com/demir/classhub/internal/pkg/apperrors"
)

// MaxUploadSize is the upload size ceiling in bytes (10 MiB)
const MaxUploadSize int64 = 10 * 1024 * 1024

// allowedExtensions is the upload allow-list for lesson attachments and
// submission files. Checked case-insensitively.
var allowedExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".ppt":  true,
	".pptx": true,
	".txt":  true,
	".zip":  true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// AllowedExtensions returns the allow-list in stable order, for error messages
func AllowedExtensions() []string {
	exts := make([]string, 0, len(allowedExtensions))
	for ext := range allowedExtensions {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// IsAllowedExtension reports whether a filename carries an allow-listed extension
func IsAllowedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return allowedExtensions[ext]
}

// ValidateUpload checks an uploaded file against the extension allow-list and
// the size ceiling before anything touches the disk.
func ValidateUpload(fileHeader *multipart.FileHeader) error {
	if fileHeader == nil {
		return apperrors.NewCustomError(apperrors.ErrBadRequest, "no file provided")
	}

	if !IsAllowedExtension(fileHeader.Filename) {
		return apperrors.NewCustomError(
			apperrors.ErrInvalidFileType,
			fmt.Sprintf("file type is not allowed, accepted types: %s", strings.Join(AllowedExtensions(), ", ")),
		)
	}

	if fileHeader.Size > MaxUploadSize {
		return apperrors.NewCustomError(
			apperrors.ErrFileTooLarge,
			fmt.Sprintf("file exceeds the maximum allowed size of %d MB", MaxUploadSize/(1024*1024)),
		)
	}

	return nil
}
