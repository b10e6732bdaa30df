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

// LessonRepository handles database operations for lessons.
type LessonRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewLessonRepository creates a new LessonRepository instance.
func NewLessonRepository(db *pgxpool.Pool) *LessonRepository {
	return &LessonRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var lessonColumns = []string{
	"id", "class_id", "title", "content", "order_num",
	"is_published", "created_at", "updated_at",
}

func scanLesson(row pgx.Row) (*models.Lesson, error) {
	lesson := &models.Lesson{}
	err := row.Scan(
		&lesson.ID,
		&lesson.ClassID,
		&lesson.Title,
		&lesson.Content,
		&lesson.OrderNum,
		&lesson.IsPublished,
		&lesson.CreatedAt,
		&lesson.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return lesson, nil
}

// Create inserts a new lesson and returns its assigned ID.
func (r *LessonRepository) Create(ctx context.Context, lesson *models.Lesson) (int64, error) {
	query := r.sb.Insert("lessons").
		Columns("class_id", "title", "content", "order_num", "is_published").
		Values(lesson.ClassID, lesson.Title, lesson.Content, lesson.OrderNum, lesson.IsPublished).
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

// GetByID retrieves a lesson by ID.
func (r *LessonRepository) GetByID(ctx context.Context, id int64) (*models.Lesson, error) {
	query := r.sb.Select(lessonColumns...).
		From("lessons").
		Where(squirrel.Eq{"id": id})

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	lesson, err := scanLesson(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrLessonNotFound
		}
		return nil, fmt.Errorf("error scanning row: %w", err)
	}

	return lesson, nil
}

// GetByClass lists the lessons of a class in presentation order. When
// publishedOnly is set, drafts are filtered out.
func (r *LessonRepository) GetByClass(ctx context.Context, classID int64, publishedOnly bool) ([]*models.Lesson, error) {
	query := r.sb.Select(lessonColumns...).
		From("lessons").
		Where(squirrel.Eq{"class_id": classID}).
		OrderBy("order_num ASC", "created_at DESC")

	if publishedOnly {
		query = query.Where(squirrel.Eq{"is_published": true})
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

	lessons := make([]*models.Lesson, 0)
	for rows.Next() {
		lesson, err := scanLesson(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		lessons = append(lessons, lesson)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return lessons, nil
}

// MaxOrderNum returns the highest order number currently used in a class,
// or zero when the class has no lessons yet.
func (r *LessonRepository) MaxOrderNum(ctx context.Context, classID int64) (int, error) {
	query := r.sb.Select("COALESCE(MAX(order_num), 0)").
		From("lessons").
		Where(squirrel.Eq{"class_id": classID})

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var max int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&max); err != nil {
		return 0, fmt.Errorf("error executing query: %w", err)
	}

	return max, nil
}

// Update persists changes to a lesson.
func (r *LessonRepository) Update(ctx context.Context, lesson *models.Lesson) error {
	query := r.sb.Update("lessons").
		Set("title", lesson.Title).
		Set("content", lesson.Content).
		Set("order_num", lesson.OrderNum).
		Set("is_published", lesson.IsPublished).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": lesson.ID})

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrLessonNotFound
	}

	return nil
}

// Delete removes a lesson and cascades to its questions. File records are
// not linked by foreign key and stay the caller's responsibility.
func (r *LessonRepository) Delete(ctx context.Context, id int64) error {
	query := r.sb.Delete("lessons").
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
		return apperrors.ErrLessonNotFound
	}

	return nil
}
