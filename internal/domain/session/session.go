// Package session, kullanıcı başına sınıf→branş seçim ilerlemesini tutar.
// Her kullanıcının tek bir oturumu vardır; oturum /start ile sıfırlanır ve
// seçimler tamamlanınca /hafta sorguları için kullanılabilir kalır.
package session

import (
	"time"

	"github.com/kayrademirkan/mebtg/internal/domain/curriculum"
	"github.com/kayrademirkan/mebtg/internal/domain/shared"
)

// State is the user's position in the selection sequence.
type State int

const (
	// StateAwaitingGrade: session created, waiting for a grade choice.
	StateAwaitingGrade State = iota
	// StateAwaitingSubject: grade stored, waiting for a subject choice.
	StateAwaitingSubject
	// StateCompleted: both selections stored; the session stays usable for
	// repeated specific-week queries.
	StateCompleted
)

// String returns the state name for logging.
func (s State) String() string {
	switch s {
	case StateAwaitingGrade:
		return "awaiting_grade"
	case StateAwaitingSubject:
		return "awaiting_subject"
	case StateCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Session is one user's progress record. UserID is the opaque identifier
// assigned by the transport (the Telegram user ID).
type Session struct {
	UserID    int64              `json:"user_id"`
	State     State              `json:"state"`
	Grade     curriculum.Grade   `json:"grade,omitempty"`
	Subject   curriculum.Subject `json:"subject,omitempty"`
	StartedAt time.Time          `json:"started_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// New creates a fresh session in the initial state.
func New(userID int64, now time.Time) *Session {
	return &Session{
		UserID:    userID,
		State:     StateAwaitingGrade,
		StartedAt: now,
		UpdatedAt: now,
	}
}

// SelectGrade stores the grade and advances to subject selection. Selecting a
// grade after completion re-opens the subject step with the new grade.
func (s *Session) SelectGrade(grade curriculum.Grade, now time.Time) error {
	if !grade.IsValid() {
		return shared.ErrUnknownGrade
	}
	s.Grade = grade
	s.Subject = ""
	s.State = StateAwaitingSubject
	s.UpdatedAt = now
	return nil
}

// SelectSubject stores the subject and completes the sequence. It requires a
// previously stored grade; without one the caller must instruct a restart.
func (s *Session) SelectSubject(subject curriculum.Subject, now time.Time) error {
	if !subject.IsValid() {
		return shared.ErrUnknownSubject
	}
	if s.Grade == "" {
		return shared.ErrGradeNotSelected
	}
	s.Subject = subject
	s.State = StateCompleted
	s.UpdatedAt = now
	return nil
}

// Complete reports whether both selections are stored.
func (s *Session) Complete() bool {
	return s != nil && s.Grade != "" && s.Subject != ""
}
