// Package presenter formats dialog outcomes for Telegram display.
// Presenters handle the conversion from transport-neutral outcomes to
// user-facing Turkish messages and reply keyboards.
package presenter

import (
	"github.com/kayrademirkan/mebtg/internal/application/dialog"
	"github.com/kayrademirkan/mebtg/internal/domain/curriculum"
)

// ══════════════════════════════════════════════════════════════════════════════
// REPLY KEYBOARDS
// Seçim akışı reply keyboard ile yürür: önce sınıf, sonra branş, cevaptan
// sonra yeniden başlatma. Satır düzeni sabittir.
// ══════════════════════════════════════════════════════════════════════════════

// KeyboardBuilder builds the fixed reply keyboards of the selection flow.
type KeyboardBuilder struct{}

// NewKeyboardBuilder creates a new KeyboardBuilder.
func NewKeyboardBuilder() *KeyboardBuilder {
	return &KeyboardBuilder{}
}

// GradeKeyboard returns the grade selection keyboard: [9 10] / [11 12].
func (b *KeyboardBuilder) GradeKeyboard() [][]string {
	grades := curriculum.Grades()
	rows := make([][]string, 0, (len(grades)+1)/2)
	for i := 0; i < len(grades); i += 2 {
		row := []string{string(grades[i])}
		if i+1 < len(grades) {
			row = append(row, string(grades[i+1]))
		}
		rows = append(rows, row)
	}
	return rows
}

// SubjectKeyboard returns the subject selection keyboard:
// [Biyoloji Kimya] / [Fizik Matematik].
func (b *KeyboardBuilder) SubjectKeyboard() [][]string {
	subjects := curriculum.Subjects()
	rows := make([][]string, 0, (len(subjects)+1)/2)
	for i := 0; i < len(subjects); i += 2 {
		row := []string{string(subjects[i])}
		if i+1 < len(subjects) {
			row = append(row, string(subjects[i+1]))
		}
		rows = append(rows, row)
	}
	return rows
}

// RestartKeyboard returns the single-button restart keyboard.
func (b *KeyboardBuilder) RestartKeyboard() [][]string {
	return [][]string{{dialog.RestartPhrase}}
}
