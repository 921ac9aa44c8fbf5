package curriculum

import (
	"context"
	"strconv"
)

// ══════════════════════════════════════════════════════════════════════════════
// KAZANIM TABLOSU
// Branş → sınıf → hafta → kazanım metni. Tablo açılışta bir kez kurulur ve
// değişmez; yenileme tam yeniden kurulum ile yapılır (bkz. Holder).
// ══════════════════════════════════════════════════════════════════════════════

// LookupStatus classifies the result of a table lookup.
type LookupStatus int

const (
	// StatusFound means the objective text was present.
	StatusFound LookupStatus = iota
	// StatusSubjectGradeMissing means the subject/grade combination has no data.
	StatusSubjectGradeMissing
	// StatusWeekMissing means the subject/grade exists but not that week.
	StatusWeekMissing
)

// LookupResult is the tagged outcome of a lookup. Misses are normal negative
// results, not errors; the presentation layer decides the final wording.
type LookupResult struct {
	Status    LookupStatus
	Subject   Subject
	Grade     Grade
	Week      int
	Objective string
}

// Found reports whether the lookup produced objective text.
func (r LookupResult) Found() bool {
	return r.Status == StatusFound
}

// Table is the immutable curriculum objective table. Week keys are the
// stringified week numbers, matching the external data format.
type Table struct {
	objectives map[Subject]map[Grade]map[string]string
}

// NewTable builds a table from raw string-keyed data as produced by the
// external sources. Keys outside the fixed vocabularies are carried as-is;
// they are simply unreachable through lookups.
func NewTable(raw map[string]map[string]map[string]string) *Table {
	objectives := make(map[Subject]map[Grade]map[string]string, len(raw))
	for subject, grades := range raw {
		bySubject := make(map[Grade]map[string]string, len(grades))
		for grade, weeks := range grades {
			byGrade := make(map[string]string, len(weeks))
			for week, text := range weeks {
				byGrade[week] = text
			}
			bySubject[Grade(grade)] = byGrade
		}
		objectives[Subject(subject)] = bySubject
	}
	return &Table{objectives: objectives}
}

// EmptyTable returns a table with no entries. Used for degraded mode when the
// source failed to load; every lookup then reports a miss.
func EmptyTable() *Table {
	return &Table{objectives: map[Subject]map[Grade]map[string]string{}}
}

// Lookup resolves the objective for (subject, grade, week). It never fails:
// missing keys at any level yield a tagged miss.
func (t *Table) Lookup(subject Subject, grade Grade, week int) LookupResult {
	result := LookupResult{
		Subject: subject,
		Grade:   grade,
		Week:    week,
	}

	if t == nil || t.objectives == nil {
		result.Status = StatusSubjectGradeMissing
		return result
	}

	grades, ok := t.objectives[subject]
	if !ok {
		result.Status = StatusSubjectGradeMissing
		return result
	}

	weeks, ok := grades[grade]
	if !ok {
		result.Status = StatusSubjectGradeMissing
		return result
	}

	text, ok := weeks[strconv.Itoa(week)]
	if !ok {
		result.Status = StatusWeekMissing
		return result
	}

	result.Status = StatusFound
	result.Objective = text
	return result
}

// Size returns the total number of objective entries, for startup logging.
func (t *Table) Size() int {
	if t == nil {
		return 0
	}
	total := 0
	for _, grades := range t.objectives {
		for _, weeks := range grades {
			total += len(weeks)
		}
	}
	return total
}

// ══════════════════════════════════════════════════════════════════════════════
// SOURCE CONTRACT
// ══════════════════════════════════════════════════════════════════════════════

// Source loads the curriculum table from external data. Implementations live
// in infrastructure (JSON file, PostgreSQL). Failures are classified with
// shared.ErrDataUnavailable or shared.ErrDataMalformed; the caller degrades
// to EmptyTable and keeps the process running.
type Source interface {
	// Load reads the full table. The table is treated as immutable afterwards.
	Load(ctx context.Context) (*Table, error)
}
