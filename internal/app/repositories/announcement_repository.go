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

// AnnouncementRepository handles database operations for class announcements.
type AnnouncementRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewAnnouncementRepository creates a new AnnouncementRepository instance.
func NewAnnouncementRepository(db *pgxpool.Pool) *AnnouncementRepository {
	return &AnnouncementRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *AnnouncementRepository) selectAnnouncements() squirrel.SelectBuilder {
	return r.sb.Select(
		"an.id", "an.class_id", "an.teacher_id", "an.title", "an.content",
		"an.is_pinned", "an.created_at", "an.updated_at",
		"u.first_name", "u.last_name",
	).
		From("announcements an").
		Join("users u ON u.id = an.teacher_id")
}

func scanAnnouncement(row pgx.Row) (*models.Announcement, error) {
	announcement := &models.Announcement{Teacher: &models.User{}}
	err := row.Scan(
		&announcement.ID,
		&announcement.ClassID,
		&announcement.TeacherID,
		&announcement.Title,
		&announcement.Content,
		&announcement.IsPinned,
		&announcement.CreatedAt,
		&announcement.UpdatedAt,
		&announcement.Teacher.FirstName,
		&announcement.Teacher.LastName,
	)
	if err != nil {
		return nil, err
	}
	announcement.Teacher.ID = announcement.TeacherID
	return announcement, nil
}

func (r *AnnouncementRepository) queryAnnouncements(ctx context.Context, query squirrel.SelectBuilder) ([]*models.Announcement, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	announcements := make([]*models.Announcement, 0)
	for rows.Next() {
		announcement, err := scanAnnouncement(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		announcements = append(announcements, announcement)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return announcements, nil
}

// Create inserts a new announcement and returns its assigned ID.
func (r *AnnouncementRepository) Create(ctx context.Context, announcement *models.Announcement) (int64, error) {
	query := r.sb.Insert("announcements").
		Columns("class_id", "teacher_id", "title", "content", "is_pinned").
		Values(announcement.ClassID, announcement.TeacherID, announcement.Title,
			announcement.Content, announcement.IsPinned).
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

// GetByID retrieves an announcement with its author.
func (r *AnnouncementRepository) GetByID(ctx context.Context, id int64) (*models.Announcement, error) {
	query := r.selectAnnouncements().Where(squirrel.Eq{"an.id": id})

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	announcement, err := scanAnnouncement(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAnnouncementNotFound
		}
		return nil, fmt.Errorf("error scanning row: %w", err)
	}

	return announcement, nil
}

// GetByClass lists a class's announcements, pinned ones first and newest
// first within each group.
func (r *AnnouncementRepository) GetByClass(ctx context.Context, classID int64) ([]*models.Announcement, error) {
	query := r.selectAnnouncements().
		Where(squirrel.Eq{"an.class_id": classID}).
		OrderBy("an.is_pinned DESC", "an.created_at DESC")

	return r.queryAnnouncements(ctx, query)
}

// GetRecentByStudent lists the latest announcements across the student's
// active classes for the dashboard, newest first.
func (r *AnnouncementRepository) GetRecentByStudent(ctx context.Context, studentID int64, limit uint64) ([]*models.Announcement, error) {
	query := r.selectAnnouncements().
		Join("classes c ON c.id = an.class_id").
		Join("enrollments en ON en.class_id = c.id").
		Where(squirrel.Eq{"en.student_id": studentID, "en.is_active": true, "c.is_active": true}).
		OrderBy("an.created_at DESC").
		Limit(limit)

	return r.queryAnnouncements(ctx, query)
}

// Update persists changes to an announcement's title, content and pin flag.
func (r *AnnouncementRepository) Update(ctx context.Context, announcement *models.Announcement) error {
	query := r.sb.Update("announcements").
		Set("title", announcement.Title).
		Set("content", announcement.Content).
		Set("is_pinned", announcement.IsPinned).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": announcement.ID})

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrAnnouncementNotFound
	}

	return nil
}

// Delete removes an announcement.
func (r *AnnouncementRepository) Delete(ctx context.Context, id int64) error {
	query := r.sb.Delete("announcements").
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
		return apperrors.ErrAnnouncementNotFound
	}

	return nil
}
