package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/formpilot/form-service/internal/events"
	"github.com/formpilot/form-service/internal/models"
	"github.com/formpilot/form-service/internal/validator"
)

func publishedForm() *models.Form {
	form := builderForm(1,
		models.Question{Type: models.Text, Prompt: "Name?", Required: true},
		models.Question{Type: models.Cloze, Prompt: "Fill", Required: true, Passage: "The ___ dog"},
		models.Question{Type: models.Rating, Prompt: "Rate us"},
	)
	form.IsPublished = true
	return form
}

func TestResponseServiceSubmit(t *testing.T) {
	ctx := context.Background()

	t.Run("accepts a complete submission", func(t *testing.T) {
		h := newTestHarness()
		h.repo.forms.On("GetByID", ctx, uint(1)).Return(publishedForm(), nil)
		h.repo.responses.On("Create", ctx, mock.AnythingOfType("*models.Response")).Return(nil)

		before := time.Now().UTC()
		response, err := h.responses.Submit(ctx, &SubmitResponseRequest{
			FormID: 1,
			Answers: []models.Answer{
				{QuestionID: 0, Value: datatypes.JSON(`"Ada"`)},
				{QuestionID: 1, Value: datatypes.JSON(`{"blank-0":"lazy"}`)},
			},
			UserInfo: models.UserInfo{Name: "Ada"},
		})
		require.NoError(t, err)
		assert.Equal(t, uint(1), response.FormID)
		assert.False(t, response.SubmittedAt.Before(before))

		// The answer carries its question's resolved type.
		require.Len(t, response.Answers, 2)
		assert.Equal(t, models.Text, response.Answers[0].QuestionType)
		assert.Equal(t, models.Cloze, response.Answers[1].QuestionType)

		require.Len(t, h.publisher.Events, 1)
		assert.Equal(t, events.EventResponseSubmitted, h.publisher.Events[0].Type)
	})

	t.Run("rejects unpublished form", func(t *testing.T) {
		h := newTestHarness()
		draft := publishedForm()
		draft.IsPublished = false
		h.repo.forms.On("GetByID", ctx, uint(1)).Return(draft, nil)

		_, err := h.responses.Submit(ctx, &SubmitResponseRequest{FormID: 1})
		assert.ErrorIs(t, err, ErrFormNotPublished)
		h.repo.responses.AssertNotCalled(t, "Create")
		assert.Empty(t, h.publisher.Events)
	})

	t.Run("rejects unknown form", func(t *testing.T) {
		h := newTestHarness()
		h.repo.forms.On("GetByID", ctx, uint(7)).Return(nil, gorm.ErrRecordNotFound)

		_, err := h.responses.Submit(ctx, &SubmitResponseRequest{FormID: 7})
		assert.ErrorIs(t, err, ErrFormNotFound)
	})

	t.Run("collects every missing required answer", func(t *testing.T) {
		h := newTestHarness()
		h.repo.forms.On("GetByID", ctx, uint(1)).Return(publishedForm(), nil)

		_, err := h.responses.Submit(ctx, &SubmitResponseRequest{FormID: 1})
		require.Error(t, err)
		var verrs validator.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		require.Len(t, verrs, 2)
		assert.Equal(t, "answers[0]", verrs[0].Field)
		assert.Equal(t, "answers[1]", verrs[1].Field)
		h.repo.responses.AssertNotCalled(t, "Create")
	})

	t.Run("drops out-of-range answers silently", func(t *testing.T) {
		h := newTestHarness()
		h.repo.forms.On("GetByID", ctx, uint(1)).Return(publishedForm(), nil)
		h.repo.responses.On("Create", ctx, mock.AnythingOfType("*models.Response")).Return(nil)

		response, err := h.responses.Submit(ctx, &SubmitResponseRequest{
			FormID: 1,
			Answers: []models.Answer{
				{QuestionID: 0, Value: datatypes.JSON(`"Ada"`)},
				{QuestionID: 1, Value: datatypes.JSON(`{"blank-0":"lazy"}`)},
				{QuestionID: 42, Value: datatypes.JSON(`"phantom"`)},
			},
		})
		require.NoError(t, err)
		require.Len(t, response.Answers, 2)
		for _, a := range response.Answers {
			assert.NotEqual(t, 42, a.QuestionID)
		}
	})
}

func TestResponseServiceGetByForm(t *testing.T) {
	ctx := context.Background()

	t.Run("returns responses for an existing form", func(t *testing.T) {
		h := newTestHarness()
		h.repo.forms.On("GetByID", ctx, uint(1)).Return(publishedForm(), nil)
		h.repo.responses.On("GetByForm", ctx, uint(1)).Return([]*models.Response{
			{ID: 1, FormID: 1},
			{ID: 2, FormID: 1},
		}, nil)

		responses, err := h.responses.GetByForm(ctx, 1)
		require.NoError(t, err)
		assert.Len(t, responses, 2)
	})

	t.Run("unknown form", func(t *testing.T) {
		h := newTestHarness()
		h.repo.forms.On("GetByID", ctx, uint(9)).Return(nil, gorm.ErrRecordNotFound)

		_, err := h.responses.GetByForm(ctx, 9)
		assert.ErrorIs(t, err, ErrFormNotFound)
		h.repo.responses.AssertNotCalled(t, "GetByForm")
	})
}

func TestUserInfoDisplay(t *testing.T) {
	tests := []struct {
		name string
		info models.UserInfo
		want string
	}{
		{"name wins", models.UserInfo{Name: "Ada", Email: "ada@example.com"}, "Ada"},
		{"email fallback", models.UserInfo{Email: "ada@example.com"}, "ada@example.com"},
		{"anonymous", models.UserInfo{IP: "10.0.0.1"}, "Anonymous"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.info.Display())
		})
	}
}
