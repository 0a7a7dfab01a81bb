package services

import (
	"strings"
	"testing"

	"interviewapp/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSingleQuestion(t *testing.T) {
	questions, errored := ParseQuestions("## Q5: Title\nBody text")

	assert.Equal(t, 0, errored)
	require.Len(t, questions, 1)
	assert.Equal(t, 5, questions[0].Number)
	assert.Equal(t, "Title", questions[0].Title)
	assert.Equal(t, "Title\nBody text", questions[0].Content)
	assert.Equal(t, models.DifficultyIntermediate, questions[0].Difficulty)
}

func TestParseBoldHeading(t *testing.T) {
	questions, errored := ParseQuestions("### **Q7:** Pointers in Go\nExplain pointers.")

	assert.Equal(t, 0, errored)
	require.Len(t, questions, 1)
	assert.Equal(t, 7, questions[0].Number)
	assert.Equal(t, "Pointers in Go", questions[0].Title)
}

func TestParseRangeExpansion(t *testing.T) {
	questions, errored := ParseQuestions("## Q10-Q12: Combined Title\nShared body")

	assert.Equal(t, 0, errored)
	require.Len(t, questions, 3)
	for i, q := range questions {
		assert.Equal(t, 10+i, q.Number)
		assert.Equal(t, "Shared body", q.Content)
	}
	assert.Equal(t, "Combined Title (Part 1)", questions[0].Title)
	assert.Equal(t, "Combined Title (Part 2)", questions[1].Title)
	assert.Equal(t, "Combined Title (Part 3)", questions[2].Title)
}

func TestParseMultipleQuestions(t *testing.T) {
	content := "## Q1: First\nFirst body\n\n## Q2: Second\nSecond body\n"
	questions, errored := ParseQuestions(content)

	assert.Equal(t, 0, errored)
	require.Len(t, questions, 2)
	assert.Equal(t, 1, questions[0].Number)
	assert.NotContains(t, questions[0].Content, "Second body")
	assert.Equal(t, 2, questions[1].Number)
	assert.Equal(t, "Second\nSecond body", questions[1].Content)
}

func TestParseMixedSingleAndRange(t *testing.T) {
	content := "## Q1: Single one\nBody A\n\n## Q2-Q3: Pair\nBody B\n\n## Q4: Last\nBody C\n"
	questions, errored := ParseQuestions(content)

	assert.Equal(t, 0, errored)
	require.Len(t, questions, 4)
	assert.Equal(t, []int{1, 2, 3, 4}, []int{
		questions[0].Number, questions[1].Number, questions[2].Number, questions[3].Number,
	})
	assert.Equal(t, "Body B", questions[1].Content)
	assert.Equal(t, "Body B", questions[2].Content)
}

func TestParseInvalidRangeCountsAsError(t *testing.T) {
	questions, errored := ParseQuestions("## Q9-Q5: Backwards\nBody")

	assert.Equal(t, 1, errored)
	assert.Empty(t, questions)
}

func TestParseIgnoresPlainHeadings(t *testing.T) {
	content := "# Introduction\n\nSome intro text.\n\n## Questions about Go\n\nNot a question record.\n"
	questions, errored := ParseQuestions(content)

	assert.Equal(t, 0, errored)
	assert.Empty(t, questions)
}

func TestTitleTruncation(t *testing.T) {
	longLine := strings.Repeat("a", 600)
	questions, errored := ParseQuestions("## Q1: " + longLine + "\nBody")

	assert.Equal(t, 0, errored)
	require.Len(t, questions, 1)
	assert.Len(t, []rune(questions[0].Title), 500)
	assert.True(t, strings.HasSuffix(questions[0].Title, "..."))
}

func TestClassifyDifficultyAdvanced(t *testing.T) {
	assert.Equal(t, models.DifficultyAdvanced,
		ClassifyDifficulty("Describe the ARCHITECTURE of a distributed system"))
}

func TestClassifyDifficultyAdvancedBeatsBeginner(t *testing.T) {
	// "architecture" ve "basic" birlikteyse ileri seviye kazanır
	assert.Equal(t, models.DifficultyAdvanced,
		ClassifyDifficulty("A basic look at microservice architecture"))
}

func TestClassifyDifficultyBeginner(t *testing.T) {
	assert.Equal(t, models.DifficultyBeginner,
		ClassifyDifficulty("What is a slice in Go?"))
}

func TestClassifyDifficultyDefault(t *testing.T) {
	assert.Equal(t, models.DifficultyIntermediate,
		ClassifyDifficulty("Explain how garbage collection works"))
}
