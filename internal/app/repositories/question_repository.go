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

// QuestionRepository handles database operations for lesson questions and
// their answers.
type QuestionRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewQuestionRepository creates a new QuestionRepository instance.
func NewQuestionRepository(db *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *QuestionRepository) selectQuestions() squirrel.SelectBuilder {
	return r.sb.Select(
		"q.id", "q.lesson_id", "q.student_id", "q.content", "q.created_at",
		"u.id", "u.first_name", "u.last_name", "u.email",
		"an.id", "an.teacher_id", "an.content", "an.created_at",
		"t.first_name", "t.last_name",
	).
		From("questions q").
		Join("users u ON u.id = q.student_id").
		LeftJoin("answers an ON an.question_id = q.id").
		LeftJoin("users t ON t.id = an.teacher_id")
}

func scanQuestion(row pgx.Row) (*models.Question, error) {
	question := &models.Question{Student: &models.User{}}
	var (
		answerID        *int64
		answerTeacherID *int64
		answerContent   *string
		answerCreatedAt *time.Time
		teacherFirst    *string
		teacherLast     *string
	)

	err := row.Scan(
		&question.ID,
		&question.LessonID,
		&question.StudentID,
		&question.Content,
		&question.CreatedAt,
		&question.Student.ID,
		&question.Student.FirstName,
		&question.Student.LastName,
		&question.Student.Email,
		&answerID,
		&answerTeacherID,
		&answerContent,
		&answerCreatedAt,
		&teacherFirst,
		&teacherLast,
	)
	if err != nil {
		return nil, err
	}

	if answerID != nil {
		question.Answer = &models.Answer{
			ID:         *answerID,
			QuestionID: question.ID,
			TeacherID:  *answerTeacherID,
			Content:    *answerContent,
			CreatedAt:  *answerCreatedAt,
			Teacher: &models.User{
				ID:        *answerTeacherID,
				FirstName: *teacherFirst,
				LastName:  *teacherLast,
			},
		}
	}

	return question, nil
}

// CreateQuestion inserts a new question and returns its assigned ID.
func (r *QuestionRepository) CreateQuestion(ctx context.Context, question *models.Question) (int64, error) {
	query := r.sb.Insert("questions").
		Columns("lesson_id", "student_id", "content").
		Values(question.LessonID, question.StudentID, question.Content).
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

// GetQuestionByID retrieves a question with its student and answer, if one
// exists.
func (r *QuestionRepository) GetQuestionByID(ctx context.Context, id int64) (*models.Question, error) {
	query := r.selectQuestions().Where(squirrel.Eq{"q.id": id})

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	question, err := scanQuestion(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrQuestionNotFound
		}
		return nil, fmt.Errorf("error scanning row: %w", err)
	}

	return question, nil
}

// GetByLesson lists the questions asked on a lesson, newest first, each
// with its answer when one exists.
func (r *QuestionRepository) GetByLesson(ctx context.Context, lessonID int64) ([]*models.Question, error) {
	query := r.selectQuestions().
		Where(squirrel.Eq{"q.lesson_id": lessonID}).
		OrderBy("q.created_at DESC")

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	questions := make([]*models.Question, 0)
	for rows.Next() {
		question, err := scanQuestion(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		questions = append(questions, question)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return questions, nil
}

// CreateAnswer inserts the teacher's answer to a question. Each question
// takes exactly one answer.
func (r *QuestionRepository) CreateAnswer(ctx context.Context, answer *models.Answer) (int64, error) {
	query := r.sb.Insert("answers").
		Columns("question_id", "teacher_id", "content").
		Values(answer.QuestionID, answer.TeacherID, answer.Content).
		Suffix("RETURNING id")

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "answers_question_id_key") {
			return 0, apperrors.ErrQuestionAlreadyAnswered
		}
		return 0, fmt.Errorf("error executing query: %w", err)
	}

	return id, nil
}

// CountUnansweredByTeacher counts questions without answers across all
// lessons in the teacher's classes.
func (r *QuestionRepository) CountUnansweredByTeacher(ctx context.Context, teacherID int64) (int64, error) {
	query := r.sb.Select("COUNT(*)").
		From("questions q").
		Join("lessons l ON l.id = q.lesson_id").
		Join("classes c ON c.id = l.class_id").
		LeftJoin("answers an ON an.question_id = q.id").
		Where(squirrel.Eq{"c.teacher_id": teacherID}).
		Where("an.id IS NULL")

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
