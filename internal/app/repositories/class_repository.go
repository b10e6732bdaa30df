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

// ClassRepository handles database operations for classes.
type ClassRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewClassRepository creates a new ClassRepository instance.
func NewClassRepository(db *pgxpool.Pool) *ClassRepository {
	return &ClassRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const (
	studentCountColumn = "(SELECT COUNT(*) FROM enrollments e WHERE e.class_id = c.id AND e.is_active) AS student_count"
	lessonCountColumn  = "(SELECT COUNT(*) FROM lessons l WHERE l.class_id = c.id) AS lesson_count"
	assignCountColumn  = "(SELECT COUNT(*) FROM assignments a WHERE a.class_id = c.id) AS assignment_count"
)

func (r *ClassRepository) selectClasses() squirrel.SelectBuilder {
	return r.sb.Select(
		"c.id", "c.teacher_id", "c.name", "c.subject", "c.description", "c.code",
		"c.is_active", "c.created_at", "c.updated_at",
		"u.id", "u.first_name", "u.last_name", "u.email",
		studentCountColumn, lessonCountColumn, assignCountColumn,
	).
		From("classes c").
		Join("users u ON u.id = c.teacher_id")
}

func scanClass(row pgx.Row) (*models.Class, error) {
	class := &models.Class{Teacher: &models.User{}}
	err := row.Scan(
		&class.ID,
		&class.TeacherID,
		&class.Name,
		&class.Subject,
		&class.Description,
		&class.Code,
		&class.IsActive,
		&class.CreatedAt,
		&class.UpdatedAt,
		&class.Teacher.ID,
		&class.Teacher.FirstName,
		&class.Teacher.LastName,
		&class.Teacher.Email,
		&class.StudentCount,
		&class.LessonCount,
		&class.AssignmentCount,
	)
	if err != nil {
		return nil, err
	}
	return class, nil
}

func (r *ClassRepository) queryClasses(ctx context.Context, query squirrel.SelectBuilder) ([]*models.Class, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	classes := make([]*models.Class, 0)
	for rows.Next() {
		class, err := scanClass(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		classes = append(classes, class)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return classes, nil
}

// Create inserts a new class and returns its assigned ID.
func (r *ClassRepository) Create(ctx context.Context, class *models.Class) (int64, error) {
	query := r.sb.Insert("classes").
		Columns("teacher_id", "name", "subject", "description", "code", "is_active").
		Values(class.TeacherID, class.Name, class.Subject, class.Description, class.Code, class.IsActive).
		Suffix("RETURNING id")

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "classes_code_key") {
			return 0, apperrors.ErrConflict
		}
		return 0, fmt.Errorf("error executing query: %w", err)
	}

	return id, nil
}

// GetByID retrieves a class with its teacher and aggregate counts.
func (r *ClassRepository) GetByID(ctx context.Context, id int64) (*models.Class, error) {
	query := r.selectClasses().Where(squirrel.Eq{"c.id": id})

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	class, err := scanClass(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrClassNotFound
		}
		return nil, fmt.Errorf("error scanning row: %w", err)
	}

	return class, nil
}

// GetByCode retrieves a class by its join code.
func (r *ClassRepository) GetByCode(ctx context.Context, code string) (*models.Class, error) {
	query := r.selectClasses().Where(squirrel.Eq{"c.code": code})

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	class, err := scanClass(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrClassNotFound
		}
		return nil, fmt.Errorf("error scanning row: %w", err)
	}

	return class, nil
}

// CodeExists reports whether a join code is already taken. Used by the
// code generator to retry on collisions.
func (r *ClassRepository) CodeExists(ctx context.Context, code string) (bool, error) {
	query := r.sb.Select("1").
		From("classes").
		Where(squirrel.Eq{"code": code}).
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

// GetByTeacher lists every class owned by a teacher, newest first.
func (r *ClassRepository) GetByTeacher(ctx context.Context, teacherID int64) ([]*models.Class, error) {
	query := r.selectClasses().
		Where(squirrel.Eq{"c.teacher_id": teacherID}).
		OrderBy("c.created_at DESC")

	return r.queryClasses(ctx, query)
}

// GetByStudent lists every active class the student is actively enrolled in,
// newest enrollment first.
func (r *ClassRepository) GetByStudent(ctx context.Context, studentID int64) ([]*models.Class, error) {
	query := r.selectClasses().
		Join("enrollments en ON en.class_id = c.id").
		Where(squirrel.Eq{"en.student_id": studentID, "en.is_active": true, "c.is_active": true}).
		OrderBy("en.enrolled_at DESC")

	return r.queryClasses(ctx, query)
}

// Update persists changes to a class's name and description.
func (r *ClassRepository) Update(ctx context.Context, class *models.Class) error {
	query := r.sb.Update("classes").
		Set("name", class.Name).
		Set("subject", class.Subject).
		Set("description", class.Description).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": class.ID})

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrClassNotFound
	}

	return nil
}

// SetActive archives (false) or restores (true) a class.
func (r *ClassRepository) SetActive(ctx context.Context, id int64, active bool) error {
	query := r.sb.Update("classes").
		Set("is_active", active).
		Set("updated_at", time.Now()).
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
		return apperrors.ErrClassNotFound
	}

	return nil
}

// Delete removes a class and, through cascading foreign keys, all of its
// lessons, assignments, enrollments and announcements.
func (r *ClassRepository) Delete(ctx context.Context, id int64) error {
	query := r.sb.Delete("classes").
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
		return apperrors.ErrClassNotFound
	}

	return nil
}

// CountActiveByTeacher returns how many active classes a teacher owns.
func (r *ClassRepository) CountActiveByTeacher(ctx context.Context, teacherID int64) (int64, error) {
	query := r.sb.Select("COUNT(*)").
		From("classes").
		Where(squirrel.Eq{"teacher_id": teacherID, "is_active": true})

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

// CountStudentsByTeacher counts distinct students actively enrolled across
// all of a teacher's classes.
func (r *ClassRepository) CountStudentsByTeacher(ctx context.Context, teacherID int64) (int64, error) {
	query := r.sb.Select("COUNT(DISTINCT en.student_id)").
		From("enrollments en").
		Join("classes c ON c.id = en.class_id").
		Where(squirrel.Eq{"c.teacher_id": teacherID, "en.is_active": true})

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
