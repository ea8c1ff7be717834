package validator

import (
	"fmt"
	"time"

	"github.com/formpilot/form-service/internal/models"
)

// QuestionValidator checks authored questions against the shape contract
// for their type. Hard failures block the save; warnings (cloze blank
// count mismatch) are reported but do not block permissive authoring.
type QuestionValidator struct{}

func NewQuestionValidator() *QuestionValidator {
	return &QuestionValidator{}
}

// ValidateQuestion validates the common fields and then the type-specific
// shape.
func (v *QuestionValidator) ValidateQuestion(q *models.Question) error {
	if _, ok := models.NormalizeQuestionType(string(q.Type)); !ok {
		return fmt.Errorf("%w: %q", models.ErrUnknownQuestionType, q.Type)
	}

	if q.Prompt == "" {
		return fmt.Errorf("question prompt is required")
	}

	if q.Points < 0 {
		return fmt.Errorf("question points cannot be negative")
	}

	switch q.Type {
	case models.MultipleChoice:
		return v.validateMultipleChoice(q)
	case models.Checkbox:
		return v.validateChoiceOptions(q)
	case models.Text:
		return v.validateText(q)
	case models.Rating:
		return v.validateRating(q)
	case models.Date:
		return v.validateDate(q)
	case models.FileUpload:
		return v.validateFileUpload(q)
	case models.Ranking:
		return v.validateRanking(q)
	case models.Matrix:
		return v.validateMatrix(q)
	case models.Categorize:
		return v.validateCategorize(q)
	case models.Cloze:
		return v.validateCloze(q)
	case models.Comprehension:
		return v.validateComprehension(q)
	default:
		return fmt.Errorf("%w: %q", models.ErrUnknownQuestionType, q.Type)
	}
}

// ValidateBatch validates every question of a form, collecting failures
// per question index so the author sees all of them in one pass.
func (v *QuestionValidator) ValidateBatch(questions []models.Question) ValidationErrors {
	var errs ValidationErrors
	for i := range questions {
		if err := v.ValidateQuestion(&questions[i]); err != nil {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("questions[%d]", i),
				Message: err.Error(),
				Value:   string(questions[i].Type),
			})
		}
	}
	return errs
}

// ShapeWarnings reports non-blocking shape problems. Cloze blank lists
// whose length differs from the passage marker count are tolerated on
// save but surfaced to the author.
func (v *QuestionValidator) ShapeWarnings(questions []models.Question) []string {
	var warnings []string
	for i := range questions {
		q := &questions[i]
		if q.Type != models.Cloze {
			continue
		}
		markers := models.CountBlanks(q.Passage)
		if len(q.Blanks) != markers {
			warnings = append(warnings, fmt.Sprintf(
				"questions[%d]: passage declares %d blank markers but %d blanks are defined",
				i, markers, len(q.Blanks)))
		}
		if markers == 0 && q.Required {
			warnings = append(warnings, fmt.Sprintf(
				"questions[%d]: required cloze question has no blank markers and can never be answered", i))
		}
	}
	return warnings
}

func (v *QuestionValidator) validateMultipleChoice(q *models.Question) error {
	if err := v.validateChoiceOptions(q); err != nil {
		return err
	}
	// The builder UI keeps isCorrect mutually exclusive on write; a stored
	// form is trusted here, but more than one flag is still malformed input.
	correct := 0
	for _, opt := range q.Options {
		if opt.IsCorrect {
			correct++
		}
	}
	if correct > 1 {
		return fmt.Errorf("multiple-choice question can mark at most one option correct")
	}
	return nil
}

func (v *QuestionValidator) validateChoiceOptions(q *models.Question) error {
	if len(q.Options) == 0 {
		return fmt.Errorf("must have at least 1 option")
	}
	return nil
}

func (v *QuestionValidator) validateText(q *models.Question) error {
	if q.MinLength != nil && *q.MinLength < 0 {
		return fmt.Errorf("minimum length cannot be negative")
	}
	if q.MaxLength != nil && *q.MaxLength < 0 {
		return fmt.Errorf("maximum length cannot be negative")
	}
	if q.MinLength != nil && q.MaxLength != nil && *q.MinLength > *q.MaxLength {
		return fmt.Errorf("minimum length cannot be greater than maximum")
	}
	return nil
}

func (v *QuestionValidator) validateRating(q *models.Question) error {
	if q.MaxStars < 3 || q.MaxStars > 10 {
		return fmt.Errorf("maxStars must be between 3 and 10")
	}
	return nil
}

func (v *QuestionValidator) validateDate(q *models.Question) error {
	var minDate, maxDate time.Time
	var err error

	if q.MinDate != nil {
		if minDate, err = time.Parse("2006-01-02", *q.MinDate); err != nil {
			return fmt.Errorf("minDate must be an ISO date: %w", err)
		}
	}
	if q.MaxDate != nil {
		if maxDate, err = time.Parse("2006-01-02", *q.MaxDate); err != nil {
			return fmt.Errorf("maxDate must be an ISO date: %w", err)
		}
	}
	if q.MinDate != nil && q.MaxDate != nil && minDate.After(maxDate) {
		return fmt.Errorf("minDate cannot be after maxDate")
	}
	return nil
}

func (v *QuestionValidator) validateFileUpload(q *models.Question) error {
	if q.MaxSizeMB < 1 {
		return fmt.Errorf("maxSizeMB must be at least 1")
	}
	return nil
}

func (v *QuestionValidator) validateRanking(q *models.Question) error {
	if len(q.Items) < 2 {
		return fmt.Errorf("must have at least 2 items to rank")
	}
	return nil
}

func (v *QuestionValidator) validateMatrix(q *models.Question) error {
	if len(q.Rows) == 0 {
		return fmt.Errorf("must have at least 1 row")
	}
	if len(q.Columns) == 0 {
		return fmt.Errorf("must have at least 1 column")
	}
	switch q.MatrixType {
	case models.MatrixSingle, models.MatrixMultiple:
		return nil
	default:
		return fmt.Errorf("matrixType must be single or multiple")
	}
}

func (v *QuestionValidator) validateCategorize(q *models.Question) error {
	if len(q.Categories) == 0 {
		return fmt.Errorf("must have at least 1 category")
	}

	seen := make(map[string]bool, len(q.Categories))
	for _, cat := range q.Categories {
		if cat == "" {
			return fmt.Errorf("category name cannot be empty")
		}
		if seen[cat] {
			return fmt.Errorf("duplicate category: %s", cat)
		}
		seen[cat] = true
	}

	for _, opt := range q.Options {
		if opt.Category != "" && !seen[opt.Category] {
			return fmt.Errorf("option %q references undeclared category %q", opt.Text, opt.Category)
		}
	}
	return nil
}

func (v *QuestionValidator) validateCloze(q *models.Question) error {
	if q.Passage == "" {
		return fmt.Errorf("passage is required")
	}
	// Blank count mismatches are a warning, not a failure; see ShapeWarnings.
	return nil
}

func (v *QuestionValidator) validateComprehension(q *models.Question) error {
	if q.Passage == "" {
		return fmt.Errorf("passage is required")
	}
	if len(q.ComprehensionQuestions) == 0 {
		return fmt.Errorf("must have at least 1 sub-question")
	}

	for i, cq := range q.ComprehensionQuestions {
		if cq.Question == "" {
			return fmt.Errorf("sub-question %d text cannot be empty", i+1)
		}
		if len(cq.Options) < 2 {
			return fmt.Errorf("sub-question %d must have at least 2 options", i+1)
		}
		if cq.CorrectAnswer != "" {
			found := false
			for _, opt := range cq.Options {
				if opt == cq.CorrectAnswer {
					found = true
					break
				}
			}
			if !found {
				return fmt.Errorf("sub-question %d correct answer %q does not match any option", i+1, cq.CorrectAnswer)
			}
		}
	}
	return nil
}
