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
)

// AssignmentRepository handles database operations for assignments.
type AssignmentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewAssignmentRepository creates a new AssignmentRepository instance.
func NewAssignmentRepository(db *pgxpool.Pool) *AssignmentRepository {
	return &AssignmentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const submissionCountColumn = "(SELECT COUNT(*) FROM submissions s WHERE s.assignment_id = a.id) AS submission_count"

func (r *AssignmentRepository) selectAssignments() squirrel.SelectBuilder {
	return r.sb.Select(
		"a.id", "a.class_id", "a.title", "a.description", "a.due_date",
		"a.max_points", "a.allow_late_submission", "a.is_published",
		"a.created_at", "a.updated_at",
		submissionCountColumn,
	).From("assignments a")
}

func scanAssignment(row pgx.Row) (*models.Assignment, error) {
	assignment := &models.Assignment{}
	err := row.Scan(
		&assignment.ID,
		&assignment.ClassID,
		&assignment.Title,
		&assignment.Description,
		&assignment.DueDate,
		&assignment.MaxPoints,
		&assignment.AllowLateSubmission,
		&assignment.IsPublished,
		&assignment.CreatedAt,
		&assignment.UpdatedAt,
		&assignment.SubmissionCount,
	)
	if err != nil {
		return nil, err
	}
	return assignment, nil
}

// Create inserts a new assignment and returns its assigned ID.
func (r *AssignmentRepository) Create(ctx context.Context, assignment *models.Assignment) (int64, error) {
	query := r.sb.Insert("assignments").
		Columns("class_id", "title", "description", "due_date", "max_points", "allow_late_submission", "is_published").
		Values(assignment.ClassID, assignment.Title, assignment.Description, assignment.DueDate,
			assignment.MaxPoints, assignment.AllowLateSubmission, assignment.IsPublished).
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

// GetByID retrieves an assignment with its submission count.
func (r *AssignmentRepository) GetByID(ctx context.Context, id int64) (*models.Assignment, error) {
	query := r.selectAssignments().Where(squirrel.Eq{"a.id": id})

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	assignment, err := scanAssignment(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("error scanning row: %w", err)
	}

	return assignment, nil
}

// GetByClass lists the assignments of a class ordered by due date, soonest
// first. When publishedOnly is set, drafts are filtered out.
func (r *AssignmentRepository) GetByClass(ctx context.Context, classID int64, publishedOnly bool) ([]*models.Assignment, error) {
	query := r.selectAssignments().
		Where(squirrel.Eq{"a.class_id": classID}).
		OrderBy("a.due_date ASC")

	if publishedOnly {
		query = query.Where(squirrel.Eq{"a.is_published": true})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	assignments := make([]*models.Assignment, 0)
	for rows.Next() {
		assignment, err := scanAssignment(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		assignments = append(assignments, assignment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return assignments, nil
}

// Update persists changes to an assignment.
func (r *AssignmentRepository) Update(ctx context.Context, assignment *models.Assignment) error {
	query := r.sb.Update("assignments").
		Set("title", assignment.Title).
		Set("description", assignment.Description).
		Set("due_date", assignment.DueDate).
		Set("max_points", assignment.MaxPoints).
		Set("allow_late_submission", assignment.AllowLateSubmission).
		Set("is_published", assignment.IsPublished).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": assignment.ID})

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrAssignmentNotFound
	}

	return nil
}

// Delete removes an assignment and cascades to its submissions.
func (r *AssignmentRepository) Delete(ctx context.Context, id int64) error {
	query := r.sb.Delete("assignments").
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
		return apperrors.ErrAssignmentNotFound
	}

	return nil
}

// MaxAwardedPoints returns the highest score already given on an
// assignment, or zero when nothing has been graded. Guards against
// lowering max_points below an existing grade.
func (r *AssignmentRepository) MaxAwardedPoints(ctx context.Context, assignmentID int64) (int32, error) {
	query := r.sb.Select("COALESCE(MAX(points), 0)").
		From("submissions").
		Where(squirrel.Eq{"assignment_id": assignmentID}).
		Where("points IS NOT NULL")

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var max int32
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&max); err != nil {
		return 0, fmt.Errorf("error executing query: %w", err)
	}

	return max, nil
}

// GetUpcomingByStudent lists assignments due inside the given window in the
// student's active classes that they have not submitted to yet, soonest
// first. Each assignment carries its class for display.
func (r *AssignmentRepository) GetUpcomingByStudent(ctx context.Context, studentID int64, from, until time.Time, limit uint64) ([]*models.Assignment, error) {
	query := r.sb.Select(
		"a.id", "a.class_id", "a.title", "a.description", "a.due_date",
		"a.max_points", "a.allow_late_submission", "a.created_at", "a.updated_at",
		"c.name",
	).
		From("assignments a").
		Join("classes c ON c.id = a.class_id").
		Join("enrollments en ON en.class_id = c.id").
		Where(squirrel.Eq{"en.student_id": studentID, "en.is_active": true, "c.is_active": true, "a.is_published": true}).
		Where(squirrel.Gt{"a.due_date": from}).
		Where(squirrel.LtOrEq{"a.due_date": until}).
		Where(squirrel.Expr("NOT EXISTS (SELECT 1 FROM submissions s WHERE s.assignment_id = a.id AND s.student_id = ?)", studentID)).
		OrderBy("a.due_date ASC").
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

	assignments := make([]*models.Assignment, 0)
	for rows.Next() {
		assignment := &models.Assignment{Class: &models.Class{}}
		err := rows.Scan(
			&assignment.ID,
			&assignment.ClassID,
			&assignment.Title,
			&assignment.Description,
			&assignment.DueDate,
			&assignment.MaxPoints,
			&assignment.AllowLateSubmission,
			&assignment.CreatedAt,
			&assignment.UpdatedAt,
			&assignment.Class.Name,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		assignment.Class.ID = assignment.ClassID
		assignments = append(assignments, assignment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return assignments, nil
}

// CountPendingGradingByTeacher counts ungraded submissions across all of a
// teacher's classes for the dashboard.
func (r *AssignmentRepository) CountPendingGradingByTeacher(ctx context.Context, teacherID int64) (int64, error) {
	query := r.sb.Select("COUNT(*)").
		From("submissions s").
		Join("assignments a ON a.id = s.assignment_id").
		Join("classes c ON c.id = a.class_id").
		Where(squirrel.Eq{"c.teacher_id": teacherID}).
		Where("s.points IS NULL")

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

// PendingGradingByClass returns ungraded submission counts keyed by class
// for all of a teacher's classes.
func (r *AssignmentRepository) PendingGradingByClass(ctx context.Context, teacherID int64) (map[int64]int64, error) {
	query := r.sb.Select("c.id", "COUNT(*)").
		From("submissions s").
		Join("assignments a ON a.id = s.assignment_id").
		Join("classes c ON c.id = a.class_id").
		Where(squirrel.Eq{"c.teacher_id": teacherID}).
		Where("s.points IS NULL").
		GroupBy("c.id")

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	counts := make(map[int64]int64)
	for rows.Next() {
		var classID, count int64
		if err := rows.Scan(&classID, &count); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		counts[classID] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return counts, nil
}
