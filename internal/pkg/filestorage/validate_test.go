package filestorage

import (
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/demir/classhub/internal/pkg/apperrors"
)

func TestValidateUploadExtensions(t *testing.T) {
	accepted := []string{
		"report.pdf", "notes.doc", "notes.docx", "slides.ppt", "slides.pptx",
		"readme.txt", "bundle.zip", "photo.jpg", "photo.jpeg", "diagram.png",
	}
	for _, name := range accepted {
		t.Run(name, func(t *testing.T) {
			fh := &multipart.FileHeader{Filename: name, Size: 1024}
			assert.NoError(t, ValidateUpload(fh))
		})
	}

	rejected := []string{
		"malware.exe", "script.sh", "video.mp4", "archive.rar", "page.html",
		"noextension", "trailingdot.", "double.tar.gz",
	}
	for _, name := range rejected {
		t.Run(name, func(t *testing.T) {
			fh := &multipart.FileHeader{Filename: name, Size: 1024}
			err := ValidateUpload(fh)
			assert.ErrorIs(t, err, apperrors.ErrInvalidFileType)
		})
	}
}

func TestValidateUploadExtensionCaseInsensitive(t *testing.T) {
	for _, name := range []string{"REPORT.PDF", "Photo.JpG", "slides.PPTX"} {
		fh := &multipart.FileHeader{Filename: name, Size: 1024}
		assert.NoError(t, ValidateUpload(fh), name)
	}
}

func TestValidateUploadSizeCeiling(t *testing.T) {
	tests := []struct {
		name    string
		size    int64
		wantErr error
	}{
		{name: "well under limit", size: 1024},
		{name: "exactly at limit", size: MaxUploadSize},
		{name: "one byte over", size: MaxUploadSize + 1, wantErr: apperrors.ErrFileTooLarge},
		{name: "far over", size: 50 * 1024 * 1024, wantErr: apperrors.ErrFileTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fh := &multipart.FileHeader{Filename: "homework.pdf", Size: tt.size}
			err := ValidateUpload(fh)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidateUploadNilHeader(t *testing.T) {
	err := ValidateUpload(nil)
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestGetFullPathRejectsTraversal(t *testing.T) {
	ls := &LocalStorage{basePath: "/srv/uploads", baseURL: "http://localhost:8080/uploads"}

	assert.Equal(t, "/srv/uploads/lessons/a1.pdf", ls.GetFullPath("http://localhost:8080/uploads/lessons/a1.pdf"))
	assert.Equal(t, "/srv/uploads/a1.pdf", ls.GetFullPath("uploads/a1.pdf"))
	assert.Equal(t, "", ls.GetFullPath("uploads/../../etc/passwd"))
	assert.Equal(t, "", ls.GetFullPath(""))
}
