package services

import (
	"context"
	"errors"
	"mime/multipart"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/demir/classhub/internal/app/models"
)

type fakeRecordDeleter struct {
	deleted []int64
	failID  int64
}

func (f *fakeRecordDeleter) Delete(ctx context.Context, id int64) error {
	if f.failID != 0 && id == f.failID {
		return errors.New("record delete failed")
	}
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeStorage struct {
	removed []string
}

func (f *fakeStorage) SaveFile(fileHeader *multipart.FileHeader) (string, error) {
	return "", errors.New("not implemented")
}

func (f *fakeStorage) SaveFileWithPath(fileHeader *multipart.FileHeader, path string) (string, error) {
	return "", errors.New("not implemented")
}

func (f *fakeStorage) DeleteFile(filePath string) error {
	f.removed = append(f.removed, filePath)
	return nil
}

func (f *fakeStorage) GetFullPath(fileURL string) string {
	return fileURL
}

func TestRemoveStoredFiles(t *testing.T) {
	records := &fakeRecordDeleter{}
	storage := &fakeStorage{}

	files := []*models.File{
		{ID: 1, FilePath: "uploads/lessons/a.pdf"},
		{ID: 2, FilePath: "uploads/submissions/b.pdf"},
	}

	removeStoredFiles(context.Background(), files, records, storage, zerolog.Nop())

	assert.Equal(t, []int64{1, 2}, records.deleted)
	assert.Equal(t, []string{"uploads/lessons/a.pdf", "uploads/submissions/b.pdf"}, storage.removed)
}

func TestRemoveStoredFilesKeepsArtifactWhenRecordDeleteFails(t *testing.T) {
	records := &fakeRecordDeleter{failID: 1}
	storage := &fakeStorage{}

	files := []*models.File{
		{ID: 1, FilePath: "uploads/lessons/a.pdf"},
		{ID: 2, FilePath: "uploads/lessons/b.pdf"},
	}

	removeStoredFiles(context.Background(), files, records, storage, zerolog.Nop())

	// The file whose record could not be removed stays on disk
	assert.Equal(t, []int64{2}, records.deleted)
	assert.Equal(t, []string{"uploads/lessons/b.pdf"}, storage.removed)
}

func TestRemoveStoredFilesSkipsNilEntries(t *testing.T) {
	records := &fakeRecordDeleter{}
	storage := &fakeStorage{}

	removeStoredFiles(context.Background(), []*models.File{nil, {ID: 7, FilePath: "uploads/c.pdf"}}, records, storage, zerolog.Nop())

	assert.Equal(t, []int64{7}, records.deleted)
	assert.Equal(t, []string{"uploads/c.pdf"}, storage.removed)
}
