package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/demir/classhub/internal/app/models"
	"github.com/demir/classhub/internal/pkg/apperrors"
)

type fakeClasses map[int64]*models.Class

func (f fakeClasses) GetByID(_ context.Context, id int64) (*models.Class, error) {
	if c, ok := f[id]; ok {
		return c, nil
	}
	return nil, apperrors.ErrClassNotFound
}

type fakeLessons map[int64]*models.Lesson

func (f fakeLessons) GetByID(_ context.Context, id int64) (*models.Lesson, error) {
	if l, ok := f[id]; ok {
		return l, nil
	}
	return nil, apperrors.ErrLessonNotFound
}

type fakeAssignments map[int64]*models.Assignment

func (f fakeAssignments) GetByID(_ context.Context, id int64) (*models.Assignment, error) {
	if a, ok := f[id]; ok {
		return a, nil
	}
	return nil, apperrors.ErrAssignmentNotFound
}

type fakeAnnouncements map[int64]*models.Announcement

func (f fakeAnnouncements) GetByID(_ context.Context, id int64) (*models.Announcement, error) {
	if a, ok := f[id]; ok {
		return a, nil
	}
	return nil, apperrors.ErrAnnouncementNotFound
}

type fakeSubmissions map[int64]*models.Submission

func (f fakeSubmissions) GetByID(_ context.Context, id int64) (*models.Submission, error) {
	if s, ok := f[id]; ok {
		return s, nil
	}
	return nil, apperrors.ErrSubmissionNotFound
}

type fakeQuestions map[int64]*models.Question

func (f fakeQuestions) GetQuestionByID(_ context.Context, id int64) (*models.Question, error) {
	if q, ok := f[id]; ok {
		return q, nil
	}
	return nil, apperrors.ErrQuestionNotFound
}

type enrollmentKey struct {
	studentID int64
	classID   int64
}

type fakeEnrollments map[enrollmentKey]bool

func (f fakeEnrollments) IsActivelyEnrolled(_ context.Context, studentID, classID int64) (bool, error) {
	return f[enrollmentKey{studentID, classID}], nil
}

type authzFixture struct {
	classes       fakeClasses
	lessons       fakeLessons
	assignments   fakeAssignments
	announcements fakeAnnouncements
	submissions   fakeSubmissions
	questions     fakeQuestions
	enrollments   fakeEnrollments
}

func newAuthzFixture() *authzFixture {
	return &authzFixture{
		classes:       fakeClasses{},
		lessons:       fakeLessons{},
		assignments:   fakeAssignments{},
		announcements: fakeAnnouncements{},
		submissions:   fakeSubmissions{},
		questions:     fakeQuestions{},
		enrollments:   fakeEnrollments{},
	}
}

func (f *authzFixture) service() *AuthorizationService {
	return NewAuthorizationService(
		f.classes, f.lessons, f.assignments, f.announcements,
		f.submissions, f.questions, f.enrollments,
	)
}

const (
	ownerID    int64 = 10
	otherID    int64 = 11
	studentID  int64 = 20
	strangerID int64 = 21
)

func TestValidateClassOwnership(t *testing.T) {
	f := newAuthzFixture()
	f.classes[1] = &models.Class{ID: 1, TeacherID: ownerID}
	svc := f.service()

	assert.NoError(t, svc.ValidateClassOwnership(context.Background(), 1, ownerID))

	err := svc.ValidateClassOwnership(context.Background(), 1, otherID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	err = svc.ValidateClassOwnership(context.Background(), 99, ownerID)
	assert.ErrorIs(t, err, apperrors.ErrClassNotFound)
}

func TestValidateLessonOwnership(t *testing.T) {
	f := newAuthzFixture()
	f.classes[1] = &models.Class{ID: 1, TeacherID: ownerID}
	f.lessons[5] = &models.Lesson{ID: 5, ClassID: 1}
	svc := f.service()

	assert.NoError(t, svc.ValidateLessonOwnership(context.Background(), 5, ownerID))
	assert.ErrorIs(t, svc.ValidateLessonOwnership(context.Background(), 5, otherID), apperrors.ErrPermissionDenied)
	assert.ErrorIs(t, svc.ValidateLessonOwnership(context.Background(), 99, ownerID), apperrors.ErrLessonNotFound)
}

func TestValidateAssignmentOwnership(t *testing.T) {
	f := newAuthzFixture()
	f.classes[1] = &models.Class{ID: 1, TeacherID: ownerID}
	f.assignments[7] = &models.Assignment{ID: 7, ClassID: 1}
	svc := f.service()

	assert.NoError(t, svc.ValidateAssignmentOwnership(context.Background(), 7, ownerID))
	assert.ErrorIs(t, svc.ValidateAssignmentOwnership(context.Background(), 7, otherID), apperrors.ErrPermissionDenied)
	assert.ErrorIs(t, svc.ValidateAssignmentOwnership(context.Background(), 99, ownerID), apperrors.ErrAssignmentNotFound)
}

func TestValidateAnnouncementOwnership(t *testing.T) {
	f := newAuthzFixture()
	f.classes[1] = &models.Class{ID: 1, TeacherID: ownerID}
	f.announcements[3] = &models.Announcement{ID: 3, ClassID: 1, TeacherID: ownerID}
	svc := f.service()

	assert.NoError(t, svc.ValidateAnnouncementOwnership(context.Background(), 3, ownerID))
	assert.ErrorIs(t, svc.ValidateAnnouncementOwnership(context.Background(), 3, otherID), apperrors.ErrPermissionDenied)
	assert.ErrorIs(t, svc.ValidateAnnouncementOwnership(context.Background(), 99, ownerID), apperrors.ErrAnnouncementNotFound)
}

func TestValidateSubmissionGrader(t *testing.T) {
	f := newAuthzFixture()
	f.classes[1] = &models.Class{ID: 1, TeacherID: ownerID}
	f.assignments[7] = &models.Assignment{ID: 7, ClassID: 1}
	f.submissions[42] = &models.Submission{ID: 42, AssignmentID: 7, StudentID: studentID}
	svc := f.service()

	assert.NoError(t, svc.ValidateSubmissionGrader(context.Background(), 42, ownerID))
	assert.ErrorIs(t, svc.ValidateSubmissionGrader(context.Background(), 42, otherID), apperrors.ErrPermissionDenied)
	assert.ErrorIs(t, svc.ValidateSubmissionGrader(context.Background(), 99, ownerID), apperrors.ErrSubmissionNotFound)
}

func TestValidateQuestionAnswerer(t *testing.T) {
	f := newAuthzFixture()
	f.classes[1] = &models.Class{ID: 1, TeacherID: ownerID}
	f.lessons[5] = &models.Lesson{ID: 5, ClassID: 1}
	f.questions[8] = &models.Question{ID: 8, LessonID: 5, StudentID: studentID}
	svc := f.service()

	assert.NoError(t, svc.ValidateQuestionAnswerer(context.Background(), 8, ownerID))
	assert.ErrorIs(t, svc.ValidateQuestionAnswerer(context.Background(), 8, otherID), apperrors.ErrPermissionDenied)
	assert.ErrorIs(t, svc.ValidateQuestionAnswerer(context.Background(), 99, ownerID), apperrors.ErrQuestionNotFound)
}

func TestValidateActiveEnrollment(t *testing.T) {
	f := newAuthzFixture()
	f.enrollments[enrollmentKey{studentID, 1}] = true
	svc := f.service()

	assert.NoError(t, svc.ValidateActiveEnrollment(context.Background(), 1, studentID))
	assert.ErrorIs(t, svc.ValidateActiveEnrollment(context.Background(), 1, strangerID), apperrors.ErrNotEnrolled)
}

func TestCanViewClass(t *testing.T) {
	f := newAuthzFixture()
	f.classes[1] = &models.Class{ID: 1, TeacherID: ownerID}
	f.enrollments[enrollmentKey{studentID, 1}] = true
	svc := f.service()

	canView, err := svc.CanViewClass(context.Background(), 1, ownerID)
	require.NoError(t, err)
	assert.True(t, canView, "owning teacher should have access")

	canView, err = svc.CanViewClass(context.Background(), 1, studentID)
	require.NoError(t, err)
	assert.True(t, canView, "enrolled student should have access")

	canView, err = svc.CanViewClass(context.Background(), 1, strangerID)
	require.NoError(t, err)
	assert.False(t, canView, "unenrolled user should not have access")

	assert.ErrorIs(t, svc.ValidateClassAccess(context.Background(), 1, strangerID), apperrors.ErrPermissionDenied)
	assert.NoError(t, svc.ValidateClassAccess(context.Background(), 1, studentID))
}
