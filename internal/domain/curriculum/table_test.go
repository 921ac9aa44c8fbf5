package curriculum

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testTable() *Table {
	return NewTable(map[string]map[string]map[string]string{
		"Biyoloji": {
			"9": {
				"1": "Canlıların ortak özelliklerini açıklar.",
				"2": "Canlıların yapısında bulunan temel bileşikleri açıklar.",
			},
		},
		"Fizik": {
			"11": {
				"3": "Newton'ın hareket yasalarını uygular.",
			},
		},
	})
}

func TestTableLookup_Found(t *testing.T) {
	table := testTable()

	result := table.Lookup(SubjectBiology, Grade9, 1)
	assert.True(t, result.Found())
	assert.Equal(t, StatusFound, result.Status)
	assert.Equal(t, "Canlıların ortak özelliklerini açıklar.", result.Objective)
	assert.Equal(t, SubjectBiology, result.Subject)
	assert.Equal(t, Grade9, result.Grade)
	assert.Equal(t, 1, result.Week)
}

func TestTableLookup_WeekMissing(t *testing.T) {
	table := testTable()

	result := table.Lookup(SubjectBiology, Grade9, 5)
	assert.False(t, result.Found())
	assert.Equal(t, StatusWeekMissing, result.Status)
	assert.Empty(t, result.Objective)
}

func TestTableLookup_SubjectGradeMissing(t *testing.T) {
	table := testTable()

	result := table.Lookup(SubjectBiology, Grade10, 1)
	assert.Equal(t, StatusSubjectGradeMissing, result.Status)

	result = table.Lookup(SubjectMath, Grade9, 1)
	assert.Equal(t, StatusSubjectGradeMissing, result.Status)
}

func TestEmptyTable_EveryLookupMisses(t *testing.T) {
	table := EmptyTable()
	assert.Equal(t, 0, table.Size())

	result := table.Lookup(SubjectChemistry, Grade12, 7)
	assert.False(t, result.Found())
	assert.Equal(t, StatusSubjectGradeMissing, result.Status)
}

func TestTableSize(t *testing.T) {
	assert.Equal(t, 3, testTable().Size())
}

func TestHolder_SwapReplacesTable(t *testing.T) {
	holder := NewHolder(EmptyTable())
	result := holder.Lookup(SubjectBiology, Grade9, 1)
	assert.False(t, result.Found())

	holder.Swap(testTable())
	result = holder.Lookup(SubjectBiology, Grade9, 1)
	assert.True(t, result.Found())
}

func TestHolder_IgnoresNil(t *testing.T) {
	holder := NewHolder(testTable())
	holder.Swap(nil)
	assert.Equal(t, 3, holder.Current().Size())
}

func TestHolder_NilInitialTable(t *testing.T) {
	holder := NewHolder(nil)
	assert.NotNil(t, holder.Current())
	assert.Equal(t, 0, holder.Current().Size())
}
