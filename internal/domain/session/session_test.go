package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/kayrademirkan/mebtg/internal/domain/curriculum"
	"github.com/kayrademirkan/mebtg/internal/domain/shared"
)

func TestNew(t *testing.T) {
	now := time.Date(2024, 9, 16, 10, 0, 0, 0, time.UTC)
	sess := New(42, now)

	assert.Equal(t, int64(42), sess.UserID)
	assert.Equal(t, StateAwaitingGrade, sess.State)
	assert.Empty(t, sess.Grade)
	assert.Empty(t, sess.Subject)
	assert.Equal(t, now, sess.StartedAt)
	assert.False(t, sess.Complete())
}

func TestSelectGrade(t *testing.T) {
	now := time.Now()
	sess := New(1, now)

	err := sess.SelectGrade(curriculum.Grade9, now)
	assert.NoError(t, err)
	assert.Equal(t, StateAwaitingSubject, sess.State)
	assert.Equal(t, curriculum.Grade9, sess.Grade)
}

func TestSelectGrade_Invalid(t *testing.T) {
	now := time.Now()
	sess := New(1, now)

	err := sess.SelectGrade(curriculum.Grade("13"), now)
	assert.Error(t, err)
	assert.Equal(t, StateAwaitingGrade, sess.State)
}

func TestSelectGrade_ResetsSubject(t *testing.T) {
	now := time.Now()
	sess := New(1, now)
	assert.NoError(t, sess.SelectGrade(curriculum.Grade9, now))
	assert.NoError(t, sess.SelectSubject(curriculum.SubjectPhysics, now))
	assert.True(t, sess.Complete())

	// A new grade re-opens the subject step.
	assert.NoError(t, sess.SelectGrade(curriculum.Grade11, now))
	assert.Equal(t, StateAwaitingSubject, sess.State)
	assert.Equal(t, curriculum.Grade11, sess.Grade)
	assert.Empty(t, sess.Subject)
}

func TestSelectSubject(t *testing.T) {
	now := time.Now()
	sess := New(1, now)
	assert.NoError(t, sess.SelectGrade(curriculum.Grade10, now))

	err := sess.SelectSubject(curriculum.SubjectChemistry, now)
	assert.NoError(t, err)
	assert.Equal(t, StateCompleted, sess.State)
	assert.True(t, sess.Complete())
}

func TestSelectSubject_WithoutGrade(t *testing.T) {
	now := time.Now()
	sess := New(1, now)

	err := sess.SelectSubject(curriculum.SubjectBiology, now)
	assert.ErrorIs(t, err, shared.ErrGradeNotSelected)
	assert.Equal(t, StateAwaitingGrade, sess.State)
	assert.Empty(t, sess.Subject)
}

func TestComplete_NilSession(t *testing.T) {
	var sess *Session
	assert.False(t, sess.Complete())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "awaiting_grade", StateAwaitingGrade.String())
	assert.Equal(t, "awaiting_subject", StateAwaitingSubject.String())
	assert.Equal(t, "completed", StateCompleted.String())
}
