package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"interviewapp/db"
	"interviewapp/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Entegrasyon testleri TEST_DATABASE_URL gerektirir, yoksa atlanır
func setupImportDB(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	if db.GetPool() == nil {
		require.NoError(t, db.ConnectURL(dsn))
	}
	require.NoError(t, db.Migrate())

	// Soru tablosunu temizle
	_, err := db.GetPool().Exec(context.Background(), "DELETE FROM questions")
	require.NoError(t, err)
}

func writeTestFile(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "questions.md")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestImportFileMissing(t *testing.T) {
	result := ImportFile(context.Background(), "/nonexistent/file.md", 1)

	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Message)
	assert.Equal(t, 0, result.Imported)
}

func TestImportSingleQuestion(t *testing.T) {
	setupImportDB(t)
	ctx := context.Background()

	path := writeTestFile(t, "## Q5: Title\nBody text")
	result := ImportFile(ctx, path, 3)

	assert.True(t, result.Success)
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 0, result.Skipped)

	var number, categoryID int
	var title, difficulty string
	err := db.GetPool().QueryRow(ctx,
		"SELECT question_number, title, difficulty, category_id FROM questions").
		Scan(&number, &title, &difficulty, &categoryID)
	require.NoError(t, err)
	assert.Equal(t, 5, number)
	assert.Equal(t, "Title", title)
	assert.Equal(t, models.DifficultyIntermediate, difficulty)
	assert.Equal(t, 3, categoryID)
}

func TestImportRangeExpansion(t *testing.T) {
	setupImportDB(t)
	ctx := context.Background()

	path := writeTestFile(t, "## Q10-Q12: Combined Title\nShared body")
	result := ImportFile(ctx, path, 1)

	assert.True(t, result.Success)
	assert.Equal(t, 3, result.Imported)

	rows, err := db.GetPool().Query(ctx,
		"SELECT question_number, content FROM questions ORDER BY question_number")
	require.NoError(t, err)
	defer rows.Close()

	var numbers []int
	for rows.Next() {
		var n int
		var content string
		require.NoError(t, rows.Scan(&n, &content))
		assert.Equal(t, "Shared body", content)
		numbers = append(numbers, n)
	}
	assert.Equal(t, []int{10, 11, 12}, numbers)
}

// Aynı dosya ikinci kez aktarılırsa tüm kayıtlar atlanmalı
func TestReimportSkipsDuplicates(t *testing.T) {
	setupImportDB(t)
	ctx := context.Background()

	path := writeTestFile(t, "## Q1: First\nBody A\n\n## Q2: Second\nBody B")

	first := ImportFile(ctx, path, 1)
	assert.True(t, first.Success)
	assert.Equal(t, 2, first.Imported)

	second := ImportFile(ctx, path, 1)
	assert.True(t, second.Success)
	assert.Equal(t, 0, second.Imported)
	assert.Equal(t, 2, second.Skipped)

	var count int
	require.NoError(t, db.GetPool().QueryRow(ctx, "SELECT COUNT(*) FROM questions").Scan(&count))
	assert.Equal(t, 2, count)
}

// Numara farklı kategoride de olsa tekrar sayılır
func TestImportCrossCategoryDuplicate(t *testing.T) {
	setupImportDB(t)
	ctx := context.Background()

	path := writeTestFile(t, "## Q8: Question eight\nBody")

	first := ImportFile(ctx, path, 1)
	assert.Equal(t, 1, first.Imported)

	second := ImportFile(ctx, path, 2)
	assert.Equal(t, 0, second.Imported)
	assert.Equal(t, 1, second.Skipped)
}
