package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildQuestionFiltersDefault(t *testing.T) {
	where, args := buildQuestionFilters(nil, "", "")

	assert.Equal(t, "q.published = TRUE", where)
	assert.Empty(t, args)
}

func TestBuildQuestionFiltersCategory(t *testing.T) {
	categoryID := 3
	where, args := buildQuestionFilters(&categoryID, "", "")

	assert.Contains(t, where, "q.category_id = $1")
	require.Len(t, args, 1)
	assert.Equal(t, 3, args[0])
}

func TestBuildQuestionFiltersDifficulty(t *testing.T) {
	where, args := buildQuestionFilters(nil, "Advanced", "")

	assert.Contains(t, where, "q.difficulty = $1")
	require.Len(t, args, 1)
	assert.Equal(t, "Advanced", args[0])
}

// Geçersiz zorluk değeri filtre üretmemeli
func TestBuildQuestionFiltersInvalidDifficulty(t *testing.T) {
	where, args := buildQuestionFilters(nil, "advanced", "")

	assert.NotContains(t, where, "difficulty")
	assert.Empty(t, args)
}

func TestBuildQuestionFiltersSearch(t *testing.T) {
	where, args := buildQuestionFilters(nil, "", "goroutine")

	assert.Contains(t, where, "q.title LIKE $1")
	assert.Contains(t, where, "q.content LIKE $1")
	assert.Contains(t, where, "CAST(q.question_number AS TEXT) LIKE $1")
	require.Len(t, args, 1)
	assert.Equal(t, "%goroutine%", args[0])
}

func TestBuildQuestionFiltersCombined(t *testing.T) {
	categoryID := 2
	where, args := buildQuestionFilters(&categoryID, "Beginner", "42")

	assert.Contains(t, where, "q.category_id = $1")
	assert.Contains(t, where, "q.difficulty = $2")
	assert.Contains(t, where, "LIKE $3")
	assert.Equal(t, []interface{}{2, "Beginner", "%42%"}, args)
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, totalPages(0))
	assert.Equal(t, 1, totalPages(1))
	assert.Equal(t, 1, totalPages(15))
	assert.Equal(t, 2, totalPages(16))
	assert.Equal(t, 2, totalPages(30))
	assert.Equal(t, 3, totalPages(31))
}

func TestParsePage(t *testing.T) {
	assert.Equal(t, 1, parsePage(""))
	assert.Equal(t, 1, parsePage("abc"))
	assert.Equal(t, 1, parsePage("0"))
	assert.Equal(t, 1, parsePage("-2"))
	assert.Equal(t, 7, parsePage("7"))
}

func TestCompletionPercentage(t *testing.T) {
	assert.Equal(t, 0.0, CompletionPercentage(0, 0))
	assert.Equal(t, 0.0, CompletionPercentage(0, 10))
	assert.Equal(t, 33.3, CompletionPercentage(1, 3))
	assert.Equal(t, 66.7, CompletionPercentage(2, 3))
	assert.Equal(t, 100.0, CompletionPercentage(10, 10))
}
