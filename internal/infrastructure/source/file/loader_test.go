package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kayrademirkan/mebtg/internal/domain/curriculum"
	"github.com/kayrademirkan/mebtg/internal/domain/shared"
)

func writeObjectives(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "kazanimlar.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeObjectives(t, `{
		"Biyoloji": {
			"9": {
				"1": "Canlıların ortak özelliklerini açıklar."
			}
		},
		"Kimya": {
			"10": {
				"2": "Mol kavramını ve kimyasal hesaplamaları açıklar."
			}
		}
	}`)

	table, err := NewSource(path).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, table.Size())

	result := table.Lookup(curriculum.SubjectBiology, curriculum.Grade9, 1)
	assert.True(t, result.Found())
	assert.Equal(t, "Canlıların ortak özelliklerini açıklar.", result.Objective)
}

func TestLoad_MissingFile(t *testing.T) {
	src := NewSource(filepath.Join(t.TempDir(), "yok.json"))

	_, err := src.Load(context.Background())
	assert.ErrorIs(t, err, shared.ErrDataUnavailable)
}

func TestLoad_MalformedJSON(t *testing.T) {
	path := writeObjectives(t, `{"Biyoloji": {`)

	_, err := NewSource(path).Load(context.Background())
	assert.ErrorIs(t, err, shared.ErrDataMalformed)
}

func TestLoad_EmptyObject(t *testing.T) {
	path := writeObjectives(t, `{}`)

	table, err := NewSource(path).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, table.Size())
}

func TestNewSource_DefaultPath(t *testing.T) {
	assert.Equal(t, DefaultPath, NewSource("").Path())
}
