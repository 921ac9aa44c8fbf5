package dialog

import (
	"github.com/kayrademirkan/mebtg/internal/domain/curriculum"
)

// OutcomeKind classifies what the state machine decided for one inbound event.
type OutcomeKind int

const (
	// OutcomeAskGrade: session (re)created, the user should pick a grade.
	OutcomeAskGrade OutcomeKind = iota

	// OutcomeAskSubject: grade stored, the user should pick a subject.
	OutcomeAskSubject

	// OutcomeGradeRejected: input did not match the grade vocabulary; the
	// session was not mutated.
	OutcomeGradeRejected

	// OutcomeSubjectRejected: input did not match the subject vocabulary; the
	// session was not mutated.
	OutcomeSubjectRejected

	// OutcomeGradeRequired: a subject arrived before any grade was stored; the
	// user must restart with /start.
	OutcomeGradeRequired

	// OutcomeSelectionRequired: a specific-week query arrived before both
	// selections were stored.
	OutcomeSelectionRequired

	// OutcomeAnswer: both selections made; the current week was resolved and
	// looked up.
	OutcomeAnswer

	// OutcomeWeekAnswer: an explicit week was looked up for the stored
	// selections; session state unchanged.
	OutcomeWeekAnswer

	// OutcomeArgumentInvalid: the specific-week argument was missing,
	// non-numeric or out of the 1-40 range; session state unchanged.
	OutcomeArgumentInvalid

	// OutcomeUnrecognized: free text matched nothing acceptable in the current
	// state; the user gets corrective guidance.
	OutcomeUnrecognized
)

// String returns the outcome kind name for logging.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeAskGrade:
		return "ask_grade"
	case OutcomeAskSubject:
		return "ask_subject"
	case OutcomeGradeRejected:
		return "grade_rejected"
	case OutcomeSubjectRejected:
		return "subject_rejected"
	case OutcomeGradeRequired:
		return "grade_required"
	case OutcomeSelectionRequired:
		return "selection_required"
	case OutcomeAnswer:
		return "answer"
	case OutcomeWeekAnswer:
		return "week_answer"
	case OutcomeArgumentInvalid:
		return "argument_invalid"
	case OutcomeUnrecognized:
		return "unrecognized"
	default:
		return "unknown"
	}
}

// Outcome is the transport-neutral result of one inbound event. The machine
// never composes user-facing wording; the presenter renders outcomes into
// replies.
type Outcome struct {
	Kind    OutcomeKind
	Grade   curriculum.Grade
	Subject curriculum.Subject

	// Week carries the resolved or requested week for answer outcomes.
	Week int

	// WeekRange is the display range label, set only for current-week answers.
	WeekRange string

	// Lookup holds the tagged table result for answer outcomes.
	Lookup curriculum.LookupResult
}
