package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShape(t *testing.T) {
	t.Run("every registered type has a shape", func(t *testing.T) {
		for _, qt := range QuestionTypes() {
			shape, err := Shape(qt)
			require.NoError(t, err)
			assert.Equal(t, qt, shape.Type)
			assert.NotEmpty(t, shape.Label)
		}
	})

	t.Run("unknown type", func(t *testing.T) {
		_, err := Shape("essay")
		assert.ErrorIs(t, err, ErrUnknownQuestionType)
	})
}

func TestDefaultQuestion(t *testing.T) {
	tests := []struct {
		qt    QuestionType
		check func(t *testing.T, q Question)
	}{
		{MultipleChoice, func(t *testing.T, q Question) {
			assert.Len(t, q.Options, 1)
		}},
		{Checkbox, func(t *testing.T, q Question) {
			assert.Len(t, q.Options, 1)
		}},
		{Rating, func(t *testing.T, q Question) {
			assert.Equal(t, 5, q.MaxStars)
		}},
		{FileUpload, func(t *testing.T, q Question) {
			assert.Equal(t, 10, q.MaxSizeMB)
		}},
		{Matrix, func(t *testing.T, q Question) {
			assert.Equal(t, MatrixSingle, q.MatrixType)
			assert.Len(t, q.Rows, 1)
			assert.Len(t, q.Columns, 1)
		}},
		{Cloze, func(t *testing.T, q Question) {
			assert.Empty(t, q.Passage)
			assert.NotNil(t, q.Blanks)
		}},
	}

	for _, tt := range tests {
		t.Run(string(tt.qt), func(t *testing.T) {
			q, err := DefaultQuestion(tt.qt)
			require.NoError(t, err)
			assert.Equal(t, tt.qt, q.Type)
			assert.Equal(t, float64(1), q.Points)
			tt.check(t, q)
		})
	}

	t.Run("unknown type", func(t *testing.T) {
		_, err := DefaultQuestion("essay")
		assert.ErrorIs(t, err, ErrUnknownQuestionType)
	})

	t.Run("legacy tags resolve to canonical defaults", func(t *testing.T) {
		q, err := DefaultQuestion("fill-blank")
		require.NoError(t, err)
		assert.Equal(t, Cloze, q.Type)
	})
}

func TestNormalizeQuestionType(t *testing.T) {
	tests := []struct {
		tag  string
		want QuestionType
		ok   bool
	}{
		{"multiple-choice", MultipleChoice, true},
		{"multiple_choice", MultipleChoice, true},
		{"check-box", Checkbox, true},
		{"fileupload", FileUpload, true},
		{"file_upload", FileUpload, true},
		{"fill-blank", Cloze, true},
		{"fill_blank", Cloze, true},
		{"comprehension", Comprehension, true},
		{"essay", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			got, ok := NormalizeQuestionType(tt.tag)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestQuestionUnmarshalNormalizesLegacyTags(t *testing.T) {
	var q Question
	err := json.Unmarshal([]byte(`{"type":"fill_blank","question":"The ___ dog","passage":"The ___ dog"}`), &q)
	require.NoError(t, err)
	assert.Equal(t, Cloze, q.Type)

	// Re-encoding only ever writes the canonical tag.
	out, err := json.Marshal(q)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"type":"cloze"`)
	assert.NotContains(t, string(out), "fill_blank")
}

func TestQuestionUnmarshalRejectsUnknownType(t *testing.T) {
	var q Question
	err := json.Unmarshal([]byte(`{"type":"essay","question":"Discuss"}`), &q)
	assert.ErrorIs(t, err, ErrUnknownQuestionType)
}

func TestRankingItemUnmarshal(t *testing.T) {
	var items []RankingItem
	err := json.Unmarshal([]byte(`["first",{"text":"second"}]`), &items)
	require.NoError(t, err)
	assert.Equal(t, []RankingItem{{Text: "first"}, {Text: "second"}}, items)
}

func TestQuestionClone(t *testing.T) {
	min := 2
	img := "/uploads/q.png"
	q := Question{
		Type:      Categorize,
		Prompt:    "Sort these",
		Image:     &img,
		Required:  true,
		MinLength: &min,
		Options: []Option{
			{Text: "Apple", Category: "fruit"},
		},
		Categories: []string{"fruit", "animals"},
		ComprehensionQuestions: []ComprehensionQuestion{
			{Question: "Why?", Options: []string{"a", "b"}, CorrectAnswer: "a"},
		},
	}

	clone := q.Clone()
	assert.Equal(t, q, clone)

	// Mutating the clone must not reach back into the original.
	clone.Options[0].Text = "Pear"
	clone.Categories[0] = "colors"
	*clone.Image = "/uploads/other.png"
	*clone.MinLength = 9
	clone.ComprehensionQuestions[0].Options[0] = "z"

	assert.Equal(t, "Apple", q.Options[0].Text)
	assert.Equal(t, "fruit", q.Categories[0])
	assert.Equal(t, "/uploads/q.png", *q.Image)
	assert.Equal(t, 2, *q.MinLength)
	assert.Equal(t, "a", q.ComprehensionQuestions[0].Options[0])
}
