package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/demir/classhub/internal/app/models"
	"github.com/demir/classhub/internal/pkg/apperrors"
	"github.com/demir/classhub/internal/pkg/dberrors"
)

// SubmissionRepository handles database operations for assignment submissions.
type SubmissionRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewSubmissionRepository creates a new SubmissionRepository instance.
func NewSubmissionRepository(db *pgxpool.Pool) *SubmissionRepository {
	return &SubmissionRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *SubmissionRepository) selectSubmissions() squirrel.SelectBuilder {
	return r.sb.Select(
		"s.id", "s.assignment_id", "s.student_id", "s.file_id", "s.comment",
		"s.status", "s.points", "s.feedback", "s.submitted_at", "s.graded_at",
		"u.id", "u.first_name", "u.last_name", "u.email",
		"f.id", "f.file_name", "f.file_path", "f.file_size", "f.mime_type",
	).
		From("submissions s").
		Join("users u ON u.id = s.student_id").
		Join("files f ON f.id = s.file_id")
}

func scanSubmission(row pgx.Row) (*models.Submission, error) {
	submission := &models.Submission{Student: &models.User{}, File: &models.File{}}
	err := row.Scan(
		&submission.ID,
		&submission.AssignmentID,
		&submission.StudentID,
		&submission.FileID,
		&submission.Comment,
		&submission.Status,
		&submission.Points,
		&submission.Feedback,
		&submission.SubmittedAt,
		&submission.GradedAt,
		&submission.Student.ID,
		&submission.Student.FirstName,
		&submission.Student.LastName,
		&submission.Student.Email,
		&submission.File.ID,
		&submission.File.FileName,
		&submission.File.FilePath,
		&submission.File.FileSize,
		&submission.File.MimeType,
	)
	if err != nil {
		return nil, err
	}
	return submission, nil
}

// Create inserts a new submission and returns its assigned ID.
func (r *SubmissionRepository) Create(ctx context.Context, submission *models.Submission) (int64, error) {
	query := r.sb.Insert("submissions").
		Columns("assignment_id", "student_id", "file_id", "comment", "status", "submitted_at").
		Values(submission.AssignmentID, submission.StudentID, submission.FileID,
			submission.Comment, submission.Status, submission.SubmittedAt).
		Suffix("RETURNING id")

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "submissions_assignment_student_key") {
			return 0, apperrors.ErrAlreadySubmitted
		}
		return 0, fmt.Errorf("error executing query: %w", err)
	}

	return id, nil
}

// GetByID retrieves a submission with its student and file.
func (r *SubmissionRepository) GetByID(ctx context.Context, id int64) (*models.Submission, error) {
	query := r.selectSubmissions().Where(squirrel.Eq{"s.id": id})

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	submission, err := scanSubmission(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("error scanning row: %w", err)
	}

	return submission, nil
}

// GetByAssignmentAndStudent retrieves the student's submission for an
// assignment, if any.
func (r *SubmissionRepository) GetByAssignmentAndStudent(ctx context.Context, assignmentID, studentID int64) (*models.Submission, error) {
	query := r.selectSubmissions().
		Where(squirrel.Eq{"s.assignment_id": assignmentID, "s.student_id": studentID})

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	submission, err := scanSubmission(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("error scanning row: %w", err)
	}

	return submission, nil
}

// GetByAssignment lists every submission to an assignment, ungraded ones
// first and newest within each group, so open grading work leads.
func (r *SubmissionRepository) GetByAssignment(ctx context.Context, assignmentID int64) ([]*models.Submission, error) {
	query := r.selectSubmissions().
		Where(squirrel.Eq{"s.assignment_id": assignmentID}).
		OrderBy("s.status = 'GRADED' ASC", "s.submitted_at DESC")

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	submissions := make([]*models.Submission, 0)
	for rows.Next() {
		submission, err := scanSubmission(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		submissions = append(submissions, submission)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return submissions, nil
}

// Replace swaps the file, comment and status of an existing submission and
// clears any previous grade. Used for resubmissions.
func (r *SubmissionRepository) Replace(ctx context.Context, submission *models.Submission) error {
	query := r.sb.Update("submissions").
		Set("file_id", submission.FileID).
		Set("comment", submission.Comment).
		Set("status", submission.Status).
		Set("points", nil).
		Set("feedback", "").
		Set("submitted_at", submission.SubmittedAt).
		Set("graded_at", nil).
		Where(squirrel.Eq{"id": submission.ID})

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrSubmissionNotFound
	}

	return nil
}

// Grade records points and feedback on a submission and marks it graded.
func (r *SubmissionRepository) Grade(ctx context.Context, id int64, points int32, feedback string) error {
	query := r.sb.Update("submissions").
		Set("points", points).
		Set("feedback", feedback).
		Set("status", models.SubmissionGraded).
		Set("graded_at", time.Now()).
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
		return apperrors.ErrSubmissionNotFound
	}

	return nil
}

// GetRecentGradedByStudent lists the student's most recently graded
// submissions with their assignment and class, newest grade first.
func (r *SubmissionRepository) GetRecentGradedByStudent(ctx context.Context, studentID int64, limit uint64) ([]*models.Submission, error) {
	query := r.sb.Select(
		"s.id", "s.assignment_id", "s.points", "s.feedback", "s.graded_at",
		"a.title", "a.max_points", "c.id", "c.name",
	).
		From("submissions s").
		Join("assignments a ON a.id = s.assignment_id").
		Join("classes c ON c.id = a.class_id").
		Where(squirrel.Eq{"s.student_id": studentID}).
		Where("s.points IS NOT NULL").
		OrderBy("s.graded_at DESC").
		Limit(limit)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	submissions := make([]*models.Submission, 0)
	for rows.Next() {
		submission := &models.Submission{Assignment: &models.Assignment{Class: &models.Class{}}}
		err := rows.Scan(
			&submission.ID,
			&submission.AssignmentID,
			&submission.Points,
			&submission.Feedback,
			&submission.GradedAt,
			&submission.Assignment.Title,
			&submission.Assignment.MaxPoints,
			&submission.Assignment.Class.ID,
			&submission.Assignment.Class.Name,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		submission.StudentID = studentID
		submission.Assignment.ID = submission.AssignmentID
		submissions = append(submissions, submission)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return submissions, nil
}
