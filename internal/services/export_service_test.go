package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/datatypes"

	"github.com/formpilot/form-service/internal/models"
)

func exportFixture() (*models.Form, []*models.Response) {
	form := builderForm(1,
		models.Question{Type: models.Text, Prompt: "Name?"},
		models.Question{Type: models.Checkbox, Prompt: "Hobbies"},
		models.Question{Type: models.Cloze, Prompt: "Fill", Passage: "The ___ dog"},
	)
	form.IsPublished = true

	responses := []*models.Response{
		{
			ID:     11,
			FormID: 1,
			Answers: []models.Answer{
				{QuestionID: 0, QuestionType: models.Text, Value: datatypes.JSON(`"Ada, the first"`)},
				{QuestionID: 1, QuestionType: models.Checkbox, Value: datatypes.JSON(`["reading","hiking"]`)},
				{QuestionID: 2, QuestionType: models.Cloze, Value: datatypes.JSON(`{"blank-0":"lazy"}`)},
			},
			UserInfo:    models.UserInfo{Name: "Ada"},
			SubmittedAt: time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
		},
		{
			ID:          12,
			FormID:      1,
			Answers:     []models.Answer{{QuestionID: 0, QuestionType: models.Text, Value: datatypes.JSON(`"line\nbreak"`)}},
			SubmittedAt: time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC),
		},
	}
	return form, responses
}

func TestExportResponsesCSV(t *testing.T) {
	ctx := context.Background()
	h := newTestHarness()
	form, responses := exportFixture()
	h.repo.forms.On("GetByID", ctx, uint(1)).Return(form, nil)
	h.repo.responses.On("GetByForm", ctx, uint(1)).Return(responses, nil)

	data, filename, err := h.exports.ExportResponses(ctx, 1, FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "Customer Survey_responses.csv", filename)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{
		"Response ID", "Submitted At", "User Info",
		"Q1: Name?", "Q2: Hobbies", "Q3: Fill",
	}, records[0])

	assert.Equal(t, []string{
		"11", "2026-03-14 09:30:00", "Ada",
		"Ada, the first", "reading, hiking", "blank-0: lazy",
	}, records[1])

	// The second response skipped two questions; their cells are empty, and
	// the embedded newline survives the quoting round trip.
	assert.Equal(t, []string{
		"12", "2026-03-14 10:00:00", "Anonymous",
		"line\nbreak", "", "",
	}, records[2])
}

func TestExportResponsesExcel(t *testing.T) {
	ctx := context.Background()
	h := newTestHarness()
	form, responses := exportFixture()
	h.repo.forms.On("GetByID", ctx, uint(1)).Return(form, nil)
	h.repo.responses.On("GetByForm", ctx, uint(1)).Return(responses, nil)

	data, filename, err := h.exports.ExportResponses(ctx, 1, FormatExcel)
	require.NoError(t, err)
	assert.Equal(t, "Customer Survey_responses.xlsx", filename)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Responses")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Q1: Name?", rows[0][3])
	assert.Equal(t, "Ada, the first", rows[1][3])
}

func TestExportResponsesUnknownFormat(t *testing.T) {
	ctx := context.Background()
	h := newTestHarness()
	form, responses := exportFixture()
	h.repo.forms.On("GetByID", ctx, uint(1)).Return(form, nil)
	h.repo.responses.On("GetByForm", ctx, uint(1)).Return(responses, nil)

	_, _, err := h.exports.ExportResponses(ctx, 1, "pdf")
	assert.ErrorIs(t, err, ErrUnsupportedExportFormat)
}

func TestExportResponsesEmptyForm(t *testing.T) {
	ctx := context.Background()
	h := newTestHarness()
	form := builderForm(2)
	form.IsPublished = true
	h.repo.forms.On("GetByID", ctx, uint(2)).Return(form, nil)
	h.repo.responses.On("GetByForm", ctx, uint(2)).Return([]*models.Response{}, nil)

	data, _, err := h.exports.ExportResponses(ctx, 2, FormatCSV)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, []string{"Response ID", "Submitted At", "User Info"}, records[0])
}
