package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/formpilot/form-service/internal/models"
	"github.com/xuri/excelize/v2"
)

// ExportFormat selects the output encoding for a responses export.
type ExportFormat string

const (
	FormatCSV   ExportFormat = "csv"
	FormatExcel ExportFormat = "xlsx"
)

type ExportService interface {
	ExportResponses(ctx context.Context, formID uint, format ExportFormat) ([]byte, string, error)
}

type exportService struct {
	forms     FormService
	responses ResponseService
	logger    *slog.Logger
}

func NewExportService(forms FormService, responses ResponseService, logger *slog.Logger) ExportService {
	return &exportService{
		forms:     forms,
		responses: responses,
		logger:    logger,
	}
}

// ExportResponses renders every response of a form, one row per response
// in submission order. It returns the encoded bytes and a suggested file
// name.
func (s *exportService) ExportResponses(ctx context.Context, formID uint, format ExportFormat) ([]byte, string, error) {
	form, err := s.forms.GetByID(ctx, formID)
	if err != nil {
		return nil, "", err
	}

	responses, err := s.responses.GetByForm(ctx, formID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load responses: %w", err)
	}

	header := exportHeader(form)
	rows := make([][]string, 0, len(responses))
	for _, resp := range responses {
		rows = append(rows, exportRow(form, resp))
	}

	s.logger.Info("Exporting responses",
		"form_id", formID,
		"format", format,
		"rows", len(rows))

	switch format {
	case FormatCSV:
		data, err := writeCSV(header, rows)
		return data, form.Title + "_responses.csv", err
	case FormatExcel:
		data, err := writeExcel(header, rows)
		return data, form.Title + "_responses.xlsx", err
	default:
		return nil, "", ErrUnsupportedExportFormat
	}
}

func exportHeader(form *models.Form) []string {
	header := []string{"Response ID", "Submitted At", "User Info"}
	for i, q := range form.Questions {
		header = append(header, fmt.Sprintf("Q%d: %s", i+1, q.Prompt))
	}
	return header
}

func exportRow(form *models.Form, resp *models.Response) []string {
	row := []string{
		fmt.Sprintf("%d", resp.ID),
		resp.SubmittedAt.Format("2006-01-02 15:04:05"),
		resp.UserInfo.Display(),
	}
	for i := range form.Questions {
		answer := resp.AnswerFor(i)
		if answer == nil {
			row = append(row, "")
			continue
		}
		row = append(row, models.CSVCell(json.RawMessage(answer.Value), answer.QuestionType))
	}
	return row
}

// writeCSV quotes per RFC 4180 via encoding/csv, so cells containing the
// delimiter or newlines survive a round trip through a standard reader.
func writeCSV(header []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeExcel(header []string, rows [][]string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Responses"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	writeRow := func(rowNum int, values []string) error {
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, rowNum)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
		}
		return nil
	}

	if err := writeRow(1, header); err != nil {
		return nil, fmt.Errorf("failed to write Excel header: %w", err)
	}
	for i, row := range rows {
		if err := writeRow(i+2, row); err != nil {
			return nil, fmt.Errorf("failed to write Excel row: %w", err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode Excel file: %w", err)
	}
	return buf.Bytes(), nil
}
