package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClassifySubmission(t *testing.T) {
	due := time.Date(2024, 5, 1, 23, 59, 0, 0, time.UTC)

	tests := []struct {
		name        string
		submittedAt time.Time
		want        SubmissionStatus
	}{
		{name: "well before due date", submittedAt: due.Add(-48 * time.Hour), want: SubmissionOnTime},
		{name: "one second before", submittedAt: due.Add(-time.Second), want: SubmissionOnTime},
		{name: "exactly at due date", submittedAt: due, want: SubmissionOnTime},
		{name: "one second after", submittedAt: due.Add(time.Second), want: SubmissionLate},
		{name: "days after", submittedAt: due.Add(72 * time.Hour), want: SubmissionLate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifySubmission(tt.submittedAt, due))
		})
	}
}

func TestValidGradePoints(t *testing.T) {
	tests := []struct {
		name      string
		points    int32
		maxPoints int32
		want      bool
	}{
		{name: "zero is valid", points: 0, maxPoints: 100, want: true},
		{name: "max is valid", points: 100, maxPoints: 100, want: true},
		{name: "mid range", points: 73, maxPoints: 100, want: true},
		{name: "over max rejected", points: 101, maxPoints: 100, want: false},
		{name: "negative rejected", points: -1, maxPoints: 100, want: false},
		{name: "zero-point assignment accepts only zero", points: 0, maxPoints: 0, want: true},
		{name: "zero-point assignment rejects one", points: 1, maxPoints: 0, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidGradePoints(tt.points, tt.maxPoints))
		})
	}
}

func TestSubmissionIsGraded(t *testing.T) {
	points := int32(80)
	graded := &Submission{Status: SubmissionGraded, Points: &points}
	assert.True(t, graded.IsGraded())

	ungraded := &Submission{Status: SubmissionOnTime}
	assert.False(t, ungraded.IsGraded())

	// GRADED status without points is not a grade
	inconsistent := &Submission{Status: SubmissionGraded}
	assert.False(t, inconsistent.IsGraded())
}

func TestAcceptsResubmission(t *testing.T) {
	open := &Assignment{AllowLateSubmission: true}
	assert.True(t, open.AcceptsResubmission())

	locked := &Assignment{AllowLateSubmission: false}
	assert.False(t, locked.AcceptsResubmission())
}

func TestResubmitClearsGradeState(t *testing.T) {
	due := time.Date(2024, 5, 1, 23, 59, 0, 0, time.UTC)
	points := int32(80)
	gradedAt := due.Add(-time.Hour)

	submission := &Submission{
		FileID:      1,
		Comment:     "first try",
		Status:      SubmissionGraded,
		Points:      &points,
		Feedback:    "good work",
		SubmittedAt: due.Add(-24 * time.Hour),
		GradedAt:    &gradedAt,
	}

	resubmittedAt := due.Add(-time.Minute)
	submission.Resubmit(2, "second try", resubmittedAt, due)

	assert.Equal(t, int64(2), submission.FileID)
	assert.Equal(t, "second try", submission.Comment)
	assert.Equal(t, resubmittedAt, submission.SubmittedAt)
	assert.Equal(t, SubmissionOnTime, submission.Status)
	assert.Nil(t, submission.Points)
	assert.Empty(t, submission.Feedback)
	assert.Nil(t, submission.GradedAt)
	assert.False(t, submission.IsGraded())
}

func TestResubmitAfterDueDateIsLate(t *testing.T) {
	due := time.Date(2024, 5, 1, 23, 59, 0, 0, time.UTC)
	submission := &Submission{Status: SubmissionOnTime, SubmittedAt: due.Add(-time.Hour)}

	submission.Resubmit(3, "", due.Add(time.Hour), due)

	assert.Equal(t, SubmissionLate, submission.Status)
}

func TestRoleTypeIsValid(t *testing.T) {
	assert.True(t, RoleTeacher.IsValid())
	assert.True(t, RoleStudent.IsValid())
	assert.False(t, RoleType("ADMIN").IsValid())
	assert.False(t, RoleType("").IsValid())
}
