// Package curriculum, MEB kazanım alanının çekirdek iş mantığını içerir:
// sınıf/branş sözlükleri, eğitim yılı hafta hesabı ve kazanım tablosu.
// Dış bağımlılık yoktur.
package curriculum

// ══════════════════════════════════════════════════════════════════════════════
// VALUE OBJECTS
// ══════════════════════════════════════════════════════════════════════════════

// Grade, lise sınıf seviyesini temsil eder ("9".."12").
type Grade string

// Sabit sınıf kümesi.
const (
	Grade9  Grade = "9"
	Grade10 Grade = "10"
	Grade11 Grade = "11"
	Grade12 Grade = "12"
)

// String returns the grade as its display label.
func (g Grade) String() string {
	return string(g)
}

// IsValid reports whether the grade is one of the fixed set.
func (g Grade) IsValid() bool {
	switch g {
	case Grade9, Grade10, Grade11, Grade12:
		return true
	}
	return false
}

// Subject, ders branşını temsil eder.
type Subject string

// Sabit branş kümesi.
const (
	SubjectBiology   Subject = "Biyoloji"
	SubjectChemistry Subject = "Kimya"
	SubjectPhysics   Subject = "Fizik"
	SubjectMath      Subject = "Matematik"
)

// String returns the subject as its display label.
func (s Subject) String() string {
	return string(s)
}

// IsValid reports whether the subject is one of the fixed set.
func (s Subject) IsValid() bool {
	switch s {
	case SubjectBiology, SubjectChemistry, SubjectPhysics, SubjectMath:
		return true
	}
	return false
}

// Grades returns the fixed grade set in keyboard order.
func Grades() []Grade {
	return []Grade{Grade9, Grade10, Grade11, Grade12}
}

// Subjects returns the fixed subject set in keyboard order.
func Subjects() []Subject {
	return []Subject{SubjectBiology, SubjectChemistry, SubjectPhysics, SubjectMath}
}

// ParseGrade matches free text against the grade set. Matching is exact and
// case-sensitive; there is deliberately no fuzzy matching.
func ParseGrade(text string) (Grade, bool) {
	g := Grade(text)
	return g, g.IsValid()
}

// ParseSubject matches free text against the subject set. Matching is exact
// and case-sensitive.
func ParseSubject(text string) (Subject, bool) {
	s := Subject(text)
	return s, s.IsValid()
}
