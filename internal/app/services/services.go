package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/demir/classhub/internal/app/models"
	"github.com/demir/classhub/internal/pkg/filestorage"
	"github.com/demir/classhub/internal/pkg/helpers"
)

// errUserContextMissing signals a route wired without the auth middleware.
var errUserContextMissing = errors.New("user identity not found in context")

// currentUserID extracts the authenticated user's ID planted on the request
// context by the auth middleware.
func currentUserID(ctx context.Context) (int64, error) {
	userID, ok := ctx.Value("userID").(int64)
	if !ok {
		return 0, errUserContextMissing
	}
	return userID, nil
}

// currentUserRole extracts the authenticated user's role from the request
// context.
func currentUserRole(ctx context.Context) (models.RoleType, error) {
	role, ok := ctx.Value("roleType").(string)
	if !ok {
		return "", errUserContextMissing
	}
	return models.RoleType(role), nil
}

// isTeacher reports whether the request context belongs to a teacher.
func isTeacher(ctx context.Context) bool {
	role, err := currentUserRole(ctx)
	return err == nil && role == models.RoleTeacher
}

// fileRecordDeleter is the slice of the file repository needed to drop
// metadata rows during cleanup.
type fileRecordDeleter interface {
	Delete(ctx context.Context, id int64) error
}

// removeStoredFiles deletes file records and their stored artifacts after the
// owning rows are gone. Best effort: failures are logged, never returned, and
// a record that cannot be deleted keeps its disk file so the database and the
// storage directory stay in step.
func removeStoredFiles(ctx context.Context, files []*models.File, records fileRecordDeleter, storage filestorage.FileStorage, logger zerolog.Logger) {
	for _, file := range files {
		if file == nil {
			continue
		}
		if err := records.Delete(ctx, file.ID); err != nil {
			logger.Warn().Err(err).Int64("fileId", file.ID).Msg("Could not delete file record")
			continue
		}
		if err := storage.DeleteFile(file.FilePath); err != nil {
			logger.Warn().Err(err).Str("path", file.FilePath).Msg("Could not delete file from storage")
		}
	}
}

// paginate slices a full result set down to the requested page.
func paginate[T any](items []T, page, size int) []T {
	offset, limit := helpers.CalculateOffsetLimit(page, size)
	if offset >= uint64(len(items)) {
		return []T{}
	}
	end := int(offset) + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
