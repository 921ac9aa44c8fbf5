// Package dialog implements the per-user conversation state machine: it
// advances a user's session on each inbound text event and produces
// transport-neutral outcomes. The machine performs no I/O of its own; week
// resolution is pure and lookups run against the in-memory table.
package dialog

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/kayrademirkan/mebtg/internal/domain/curriculum"
	"github.com/kayrademirkan/mebtg/internal/domain/session"
	"github.com/kayrademirkan/mebtg/internal/domain/shared"
	"github.com/kayrademirkan/mebtg/pkg/timeutil"
)

// RestartPhrase is the fixed reply-keyboard literal that recreates a session
// from any state.
const RestartPhrase = "🔄 Yeniden Başlat"

// Lookuper resolves objectives against the current curriculum table.
// *curriculum.Holder satisfies this.
type Lookuper interface {
	Lookup(subject curriculum.Subject, grade curriculum.Grade, week int) curriculum.LookupResult
}

// Machine drives the grade → subject selection sequence for every user.
// Per-user serialization is delegated to the session store; the machine
// itself is stateless and safe for concurrent use across users.
type Machine struct {
	sessions session.Store
	lookup   Lookuper
	now      func() time.Time
}

// Option configures the machine.
type Option func(*Machine)

// WithClock overrides the machine's clock. Tests use this to pin the
// resolved week.
func WithClock(now func() time.Time) Option {
	return func(m *Machine) {
		if now != nil {
			m.now = now
		}
	}
}

// NewMachine creates a state machine over the given store and lookup table.
func NewMachine(sessions session.Store, lookup Lookuper, opts ...Option) *Machine {
	m := &Machine{
		sessions: sessions,
		lookup:   lookup,
		now:      timeutil.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Start creates or replaces the user's session, discarding any prior
// selections.
func (m *Machine) Start(ctx context.Context, userID int64) (Outcome, error) {
	err := m.sessions.Update(ctx, userID, func(_ *session.Session) (*session.Session, error) {
		return session.New(userID, m.now()), nil
	})
	if err != nil {
		return Outcome{}, shared.WrapError("dialog", "Start", shared.ErrExternalService, "reset session", err)
	}
	return Outcome{Kind: OutcomeAskGrade}, nil
}

// HandleText dispatches a free-text event against the user's current state.
// Input is matched exactly against the fixed vocabularies; anything else
// leaves the session untouched and yields corrective guidance.
func (m *Machine) HandleText(ctx context.Context, userID int64, text string) (Outcome, error) {
	text = strings.TrimSpace(text)

	if text == RestartPhrase {
		return m.Start(ctx, userID)
	}

	var outcome Outcome
	err := m.sessions.Update(ctx, userID, func(current *session.Session) (*session.Session, error) {
		// Text with no session behaves as the initial state: a valid grade
		// starts the sequence implicitly, anything else is handled below.
		if current == nil {
			current = session.New(userID, m.now())
		}
		outcome = m.advance(current, text)
		return current, nil
	})
	if err != nil {
		return Outcome{}, shared.WrapError("dialog", "HandleText", shared.ErrExternalService, "update session", err)
	}
	return outcome, nil
}

// advance applies one text event to the session and returns the outcome.
// Runs inside the store's per-user critical section.
func (m *Machine) advance(sess *session.Session, text string) Outcome {
	now := m.now()

	switch sess.State {
	case session.StateAwaitingGrade:
		if grade, ok := curriculum.ParseGrade(text); ok {
			_ = sess.SelectGrade(grade, now)
			return Outcome{Kind: OutcomeAskSubject, Grade: grade}
		}
		// A subject before any grade is a sequence violation, not a typo.
		if _, ok := curriculum.ParseSubject(text); ok {
			return Outcome{Kind: OutcomeGradeRequired}
		}
		return Outcome{Kind: OutcomeGradeRejected}

	case session.StateAwaitingSubject:
		if subject, ok := curriculum.ParseSubject(text); ok {
			if err := sess.SelectSubject(subject, now); err != nil {
				// Session lost its grade (e.g. deserialized from an older
				// record); instruct the user to restart.
				return Outcome{Kind: OutcomeGradeRequired}
			}
			return m.answerCurrentWeek(sess)
		}
		// A grade while a subject is expected re-selects the grade rather
		// than dead-ending the user.
		if grade, ok := curriculum.ParseGrade(text); ok {
			_ = sess.SelectGrade(grade, now)
			return Outcome{Kind: OutcomeAskSubject, Grade: grade}
		}
		return Outcome{Kind: OutcomeSubjectRejected}

	case session.StateCompleted:
		// Completed sessions stay open for re-selection: a grade re-opens the
		// subject step, a subject re-answers with the stored grade.
		if grade, ok := curriculum.ParseGrade(text); ok {
			_ = sess.SelectGrade(grade, now)
			return Outcome{Kind: OutcomeAskSubject, Grade: grade}
		}
		if subject, ok := curriculum.ParseSubject(text); ok {
			if err := sess.SelectSubject(subject, now); err != nil {
				return Outcome{Kind: OutcomeGradeRequired}
			}
			return m.answerCurrentWeek(sess)
		}
		return Outcome{Kind: OutcomeUnrecognized}

	default:
		return Outcome{Kind: OutcomeUnrecognized}
	}
}

// answerCurrentWeek resolves today's academic week and looks up the objective
// for the completed selection.
func (m *Machine) answerCurrentWeek(sess *session.Session) Outcome {
	week := curriculum.ResolveAcademicWeek(m.now())
	result := m.lookup.Lookup(sess.Subject, sess.Grade, week.Number)
	return Outcome{
		Kind:      OutcomeAnswer,
		Grade:     sess.Grade,
		Subject:   sess.Subject,
		Week:      week.Number,
		WeekRange: week.RangeLabel,
		Lookup:    result,
	}
}

// SpecificWeek answers an explicit "week N" query for the stored selections,
// bypassing the week resolver. Missing, non-numeric and out-of-range
// arguments share one uniform rejection; the session is never mutated.
func (m *Machine) SpecificWeek(ctx context.Context, userID int64, arg string) (Outcome, error) {
	sess, err := m.sessions.Get(ctx, userID)
	if err != nil {
		if shared.IsNotFound(err) {
			return Outcome{Kind: OutcomeSelectionRequired}, nil
		}
		return Outcome{}, shared.WrapError("dialog", "SpecificWeek", shared.ErrExternalService, "load session", err)
	}
	if !sess.Complete() {
		return Outcome{Kind: OutcomeSelectionRequired}, nil
	}

	week, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || !curriculum.ValidWeek(week) {
		return Outcome{Kind: OutcomeArgumentInvalid}, nil
	}

	result := m.lookup.Lookup(sess.Subject, sess.Grade, week)
	return Outcome{
		Kind:    OutcomeWeekAnswer,
		Grade:   sess.Grade,
		Subject: sess.Subject,
		Week:    week,
		Lookup:  result,
	}, nil
}
