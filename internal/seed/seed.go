// Package seed creates demo accounts and a demo class so a fresh install
// is explorable without manual setup.
package seed

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/demir/classhub/internal/app/models"
	appRepos "github.com/demir/classhub/internal/app/repositories"
	pkgAuth "github.com/demir/classhub/internal/pkg/auth"
)

const (
	demoTeacherEmail = "teacher@classhub.dev"
	demoStudentEmail = "student@classhub.dev"

	// demoClassCode is fixed so the demo student flow is scriptable
	demoClassCode = "DEMO42"
)

// CreateDefaultData seeds a demo teacher, a demo student and a demo class
// with some content. Every step is idempotent, so running it on every
// startup is safe.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)
	classRepo := appRepos.NewClassRepository(dbPool)
	enrollmentRepo := appRepos.NewEnrollmentRepository(dbPool)
	lessonRepo := appRepos.NewLessonRepository(dbPool)
	assignmentRepo := appRepos.NewAssignmentRepository(dbPool)
	announcementRepo := appRepos.NewAnnouncementRepository(dbPool)

	lgr.Info().Msg("Checking/Creating demo data...")
	var finalErr error

	teacherID, err := ensureUser(ctx, userRepo, &appModels.User{
		Email:     demoTeacherEmail,
		FirstName: "Demo",
		LastName:  "Teacher",
		RoleType:  appModels.RoleTeacher,
	}, "Teacher123!", lgr)
	if err != nil {
		finalErr = errors.Join(finalErr, err)
	}

	studentID, err := ensureUser(ctx, userRepo, &appModels.User{
		Email:     demoStudentEmail,
		FirstName: "Demo",
		LastName:  "Student",
		RoleType:  appModels.RoleStudent,
	}, "Student123!", lgr)
	if err != nil {
		finalErr = errors.Join(finalErr, err)
	}

	if teacherID == 0 || studentID == 0 {
		lgr.Info().Msg("Demo data check finished (users unavailable, skipping class)")
		return finalErr
	}

	// The demo class keys the rest of the content: when the code already
	// exists everything below it was seeded on an earlier run.
	exists, err := classRepo.CodeExists(ctx, demoClassCode)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking demo class code")
		return errors.Join(finalErr, err)
	}
	if exists {
		lgr.Info().Msg("Demo class already exists, skipping creation")
		return finalErr
	}

	classID, err := classRepo.Create(ctx, &appModels.Class{
		TeacherID:   teacherID,
		Name:        "Algebra I",
		Subject:     "Mathematics",
		Description: "Demo class for exploring ClassHub. Join with code " + demoClassCode + ".",
		Code:        demoClassCode,
		IsActive:    true,
	})
	if err != nil {
		lgr.Error().Err(err).Msg("Error creating demo class")
		return errors.Join(finalErr, err)
	}

	if _, err := enrollmentRepo.Create(ctx, &appModels.Enrollment{
		StudentID: studentID,
		ClassID:   classID,
		IsActive:  true,
	}); err != nil {
		lgr.Error().Err(err).Msg("Error enrolling demo student")
		finalErr = errors.Join(finalErr, err)
	}

	if _, err := lessonRepo.Create(ctx, &appModels.Lesson{
		ClassID:     classID,
		Title:       "Linear equations",
		Content:     "An equation of the form ax + b = c has exactly one solution when a is nonzero. This lesson walks through isolating x step by step.",
		OrderNum:    1,
		IsPublished: true,
	}); err != nil {
		lgr.Error().Err(err).Msg("Error creating demo lesson")
		finalErr = errors.Join(finalErr, err)
	}

	if _, err := assignmentRepo.Create(ctx, &appModels.Assignment{
		ClassID:             classID,
		Title:               "Problem set 1",
		Description:         "Solve the ten linear equations from the lesson and upload your worked solutions.",
		DueDate:             time.Now().AddDate(0, 0, 7),
		MaxPoints:           100,
		AllowLateSubmission: true,
		IsPublished:         true,
	}); err != nil {
		lgr.Error().Err(err).Msg("Error creating demo assignment")
		finalErr = errors.Join(finalErr, err)
	}

	if _, err := announcementRepo.Create(ctx, &appModels.Announcement{
		ClassID:   classID,
		TeacherID: teacherID,
		Title:     "Welcome to Algebra I",
		Content:   "Lessons and assignments for the first week are up. Check the problem set due next week.",
		IsPinned:  true,
	}); err != nil {
		lgr.Error().Err(err).Msg("Error creating demo announcement")
		finalErr = errors.Join(finalErr, err)
	}

	lgr.Info().Int64("classId", classID).Str("code", demoClassCode).Msg("Demo data created")
	return finalErr
}

// ensureUser creates the account unless its email is already registered.
// Returns the user's ID either way, or 0 when neither lookup nor create worked.
func ensureUser(ctx context.Context, userRepo *appRepos.UserRepository, user *appModels.User, password string, lgr zerolog.Logger) (int64, error) {
	existing, err := userRepo.GetByEmail(ctx, user.Email)
	if err == nil {
		return existing.ID, nil
	}

	hashed, err := pkgAuth.HashPassword(password)
	if err != nil {
		lgr.Error().Err(err).Str("email", user.Email).Msg("Error hashing demo password")
		return 0, err
	}

	user.Password = hashed
	user.IsActive = true
	id, err := userRepo.Create(ctx, user)
	if err != nil {
		lgr.Error().Err(err).Str("email", user.Email).Msg("Error creating demo user")
		return 0, err
	}

	lgr.Info().Int64("userId", id).Str("email", user.Email).Msg("Demo user created")
	return id, nil
}
