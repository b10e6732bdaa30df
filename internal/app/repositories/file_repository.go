package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/demir/classhub/internal/app/models"
	"github.com/demir/classhub/internal/pkg/apperrors"
)

// FileRepository handles database operations for uploaded file metadata.
type FileRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewFileRepository creates a new FileRepository instance.
func NewFileRepository(db *pgxpool.Pool) *FileRepository {
	return &FileRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var fileColumns = []string{
	"id", "file_name", "file_path", "file_size", "mime_type",
	"resource_type", "resource_id", "uploaded_by", "created_at",
}

func scanFile(row pgx.Row) (*models.File, error) {
	file := &models.File{}
	err := row.Scan(
		&file.ID,
		&file.FileName,
		&file.FilePath,
		&file.FileSize,
		&file.MimeType,
		&file.ResourceType,
		&file.ResourceID,
		&file.UploadedBy,
		&file.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return file, nil
}

// Create inserts a new file record and returns its assigned ID.
func (r *FileRepository) Create(ctx context.Context, file *models.File) (int64, error) {
	query := r.sb.Insert("files").
		Columns("file_name", "file_path", "file_size", "mime_type", "resource_type", "resource_id", "uploaded_by").
		Values(file.FileName, file.FilePath, file.FileSize, file.MimeType, file.ResourceType, file.ResourceID, file.UploadedBy).
		Suffix("RETURNING id")

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error executing query: %w", err)
	}

	return id, nil
}

// GetByID retrieves a file record by ID.
func (r *FileRepository) GetByID(ctx context.Context, id int64) (*models.File, error) {
	query := r.sb.Select(fileColumns...).
		From("files").
		Where(squirrel.Eq{"id": id})

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	file, err := scanFile(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrFileNotFound
		}
		return nil, fmt.Errorf("error scanning row: %w", err)
	}

	return file, nil
}

// GetByResource lists the files attached to a resource, oldest first.
func (r *FileRepository) GetByResource(ctx context.Context, resourceType models.FileResourceType, resourceID int64) ([]*models.File, error) {
	query := r.sb.Select(fileColumns...).
		From("files").
		Where(squirrel.Eq{"resource_type": resourceType, "resource_id": resourceID}).
		OrderBy("created_at ASC")

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	files := make([]*models.File, 0)
	for rows.Next() {
		file, err := scanFile(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		files = append(files, file)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return files, nil
}

// GetByClass lists every file attached to a class's lessons or to submissions
// on its assignments. Used to clean up storage before the class row and its
// cascade take the owning resources away.
func (r *FileRepository) GetByClass(ctx context.Context, classID int64) ([]*models.File, error) {
	query := r.sb.Select(fileColumns...).
		From("files").
		Where(squirrel.Or{
			squirrel.Expr(
				"resource_type = ? AND resource_id IN (SELECT id FROM lessons WHERE class_id = ?)",
				models.FileResourceLesson, classID,
			),
			squirrel.Expr(
				"resource_type = ? AND resource_id IN (SELECT s.id FROM submissions s JOIN assignments a ON a.id = s.assignment_id WHERE a.class_id = ?)",
				models.FileResourceSubmission, classID,
			),
		})

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	files := make([]*models.File, 0)
	for rows.Next() {
		file, err := scanFile(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		files = append(files, file)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return files, nil
}

// SetResource points a file record at its owning resource. Submission files
// are inserted before the submission row exists and get linked afterwards.
func (r *FileRepository) SetResource(ctx context.Context, id int64, resourceType models.FileResourceType, resourceID int64) error {
	query := r.sb.Update("files").
		Set("resource_type", resourceType).
		Set("resource_id", resourceID).
		Where(squirrel.Eq{"id": id})

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrFileNotFound
	}

	return nil
}

// Delete removes a file record.
func (r *FileRepository) Delete(ctx context.Context, id int64) error {
	query := r.sb.Delete("files").
		Where(squirrel.Eq{"id": id})

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrFileNotFound
	}

	return nil
}
