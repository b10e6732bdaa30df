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

// EnrollmentRepository handles database operations for class enrollments.
type EnrollmentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewEnrollmentRepository creates a new EnrollmentRepository instance.
func NewEnrollmentRepository(db *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new enrollment and returns its assigned ID.
func (r *EnrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) (int64, error) {
	query := r.sb.Insert("enrollments").
		Columns("student_id", "class_id", "is_active").
		Values(enrollment.StudentID, enrollment.ClassID, enrollment.IsActive).
		Suffix("RETURNING id")

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "enrollments_student_class_key") {
			return 0, apperrors.ErrAlreadyEnrolled
		}
		return 0, fmt.Errorf("error executing query: %w", err)
	}

	return id, nil
}

// GetByStudentAndClass retrieves the enrollment row for a student in a
// class regardless of whether it is active.
func (r *EnrollmentRepository) GetByStudentAndClass(ctx context.Context, studentID, classID int64) (*models.Enrollment, error) {
	query := r.sb.Select("id", "student_id", "class_id", "is_active", "enrolled_at").
		From("enrollments").
		Where(squirrel.Eq{"student_id": studentID, "class_id": classID})

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	enrollment := &models.Enrollment{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&enrollment.ID,
		&enrollment.StudentID,
		&enrollment.ClassID,
		&enrollment.IsActive,
		&enrollment.EnrolledAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error scanning row: %w", err)
	}

	return enrollment, nil
}

// IsActivelyEnrolled reports whether the student currently belongs to the class.
func (r *EnrollmentRepository) IsActivelyEnrolled(ctx context.Context, studentID, classID int64) (bool, error) {
	query := r.sb.Select("1").
		From("enrollments").
		Where(squirrel.Eq{"student_id": studentID, "class_id": classID, "is_active": true}).
		Limit(1)

	sql, args, err := query.ToSql()
	if err != nil {
		return false, fmt.Errorf("error building SQL: %w", err)
	}

	var exists int
	err = r.db.QueryRow(ctx, sql, args...).Scan(&exists)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("error executing query: %w", err)
	}

	return true, nil
}

// CountActiveByStudent counts the active classes a student belongs to.
func (r *EnrollmentRepository) CountActiveByStudent(ctx context.Context, studentID int64) (int64, error) {
	query := r.sb.Select("COUNT(*)").
		From("enrollments en").
		Join("classes c ON c.id = en.class_id").
		Where(squirrel.Eq{"en.student_id": studentID, "en.is_active": true, "c.is_active": true})

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error executing query: %w", err)
	}

	return count, nil
}

// Reactivate flips an inactive enrollment back to active and refreshes its
// enrollment time, so a student who left and rejoins keeps one row.
func (r *EnrollmentRepository) Reactivate(ctx context.Context, id int64) error {
	query := r.sb.Update("enrollments").
		Set("is_active", true).
		Set("enrolled_at", time.Now()).
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
		return apperrors.ErrResourceNotFound
	}

	return nil
}

// Deactivate marks the student's enrollment in a class inactive.
func (r *EnrollmentRepository) Deactivate(ctx context.Context, studentID, classID int64) error {
	query := r.sb.Update("enrollments").
		Set("is_active", false).
		Where(squirrel.Eq{"student_id": studentID, "class_id": classID, "is_active": true})

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrNotEnrolled
	}

	return nil
}

// GetRoster lists the active enrollments of a class with each student's
// profile, ordered by student name.
func (r *EnrollmentRepository) GetRoster(ctx context.Context, classID int64) ([]*models.Enrollment, error) {
	query := r.sb.Select(
		"en.id", "en.student_id", "en.class_id", "en.is_active", "en.enrolled_at",
		"u.id", "u.first_name", "u.last_name", "u.email",
	).
		From("enrollments en").
		Join("users u ON u.id = en.student_id").
		Where(squirrel.Eq{"en.class_id": classID, "en.is_active": true}).
		OrderBy("u.last_name ASC", "u.first_name ASC")

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	enrollments := make([]*models.Enrollment, 0)
	for rows.Next() {
		enrollment := &models.Enrollment{Student: &models.User{}}
		err := rows.Scan(
			&enrollment.ID,
			&enrollment.StudentID,
			&enrollment.ClassID,
			&enrollment.IsActive,
			&enrollment.EnrolledAt,
			&enrollment.Student.ID,
			&enrollment.Student.FirstName,
			&enrollment.Student.LastName,
			&enrollment.Student.Email,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		enrollments = append(enrollments, enrollment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return enrollments, nil
}
