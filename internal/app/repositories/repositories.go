package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all repository instances for dependency injection.
type Repositories struct {
	User         *UserRepository
	Token        *TokenRepository
	Class        *ClassRepository
	Enrollment   *EnrollmentRepository
	Lesson       *LessonRepository
	File         *FileRepository
	Assignment   *AssignmentRepository
	Submission   *SubmissionRepository
	Question     *QuestionRepository
	Announcement *AnnouncementRepository
}

// NewRepositories creates a new Repositories instance with all repositories
// sharing the given connection pool.
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		Token:        NewTokenRepository(db),
		Class:        NewClassRepository(db),
		Enrollment:   NewEnrollmentRepository(db),
		Lesson:       NewLessonRepository(db),
		File:         NewFileRepository(db),
		Assignment:   NewAssignmentRepository(db),
		Submission:   NewSubmissionRepository(db),
		Question:     NewQuestionRepository(db),
		Announcement: NewAnnouncementRepository(db),
	}
}
