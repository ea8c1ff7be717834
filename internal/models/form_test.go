package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func TestQuestionAt(t *testing.T) {
	form := &Form{
		Title: "Quiz",
		Questions: []Question{
			{Type: Text, Prompt: "first"},
			{Type: Text, Prompt: "second"},
		},
	}

	assert.Equal(t, "first", form.QuestionAt(0).Prompt)
	assert.Equal(t, "second", form.QuestionAt(1).Prompt)
	assert.Nil(t, form.QuestionAt(-1))
	assert.Nil(t, form.QuestionAt(2))
}

func TestDefaultFormSettings(t *testing.T) {
	settings := DefaultFormSettings()
	assert.True(t, settings.ShowProgressBar)
	assert.Equal(t, "default", settings.Theme)
	assert.False(t, settings.AllowMultipleAttempts)
	assert.Nil(t, settings.TimeLimitMinutes)
}

func TestAnswerFor(t *testing.T) {
	resp := &Response{
		FormID: 1,
		Answers: []Answer{
			{QuestionID: 2, Value: datatypes.JSON(`"late"`)},
			{QuestionID: 0, Value: datatypes.JSON(`"early"`)},
		},
	}

	assert.Equal(t, datatypes.JSON(`"early"`), resp.AnswerFor(0).Value)
	assert.Equal(t, datatypes.JSON(`"late"`), resp.AnswerFor(2).Value)
	assert.Nil(t, resp.AnswerFor(1))
}
