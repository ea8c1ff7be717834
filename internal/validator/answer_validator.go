package validator

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/formpilot/form-service/internal/models"
)

// AnswerResult reports whether an answer satisfies its question's
// required rule. Reason is set only when incomplete.
type AnswerResult struct {
	Complete bool   `json:"complete"`
	Reason   string `json:"reason,omitempty"`
}

// AnswerValidator decides answer completeness at submit time.
//
// Policy: non-required questions always pass. For required questions every
// type is checked for presence, and cloze additionally for full slot
// coverage, so a required scalar question can no longer slip through
// unanswered.
type AnswerValidator struct{}

func NewAnswerValidator() *AnswerValidator {
	return &AnswerValidator{}
}

func complete() AnswerResult {
	return AnswerResult{Complete: true}
}

func incomplete(reason string) AnswerResult {
	return AnswerResult{Complete: false, Reason: reason}
}

// ValidateAnswer checks one answer value against one question.
func (v *AnswerValidator) ValidateAnswer(q *models.Question, raw json.RawMessage) AnswerResult {
	if !q.Required {
		return complete()
	}

	switch q.Type {
	case models.Categorize:
		return v.requireNonEmptyMapping(raw, "categorize at least one item")
	case models.Comprehension:
		return v.requireNonEmptyMapping(raw, "answer at least one question")
	case models.Cloze:
		return v.validateClozeCoverage(q, raw)
	default:
		return v.requirePresence(raw)
	}
}

// ValidateSubmission runs the validator over every question of the form,
// collecting failures per question index. Submission is all-or-nothing:
// any entry here rejects the whole response.
func (v *AnswerValidator) ValidateSubmission(form *models.Form, answers []models.Answer) ValidationErrors {
	byIndex := make(map[int]json.RawMessage, len(answers))
	for _, a := range answers {
		// Out-of-range indexes are treated as absent, not as an error.
		if form.QuestionAt(a.QuestionID) == nil {
			continue
		}
		byIndex[a.QuestionID] = json.RawMessage(a.Value)
	}

	var errs ValidationErrors
	for i := range form.Questions {
		result := v.ValidateAnswer(&form.Questions[i], byIndex[i])
		if !result.Complete {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("answers[%d]", i),
				Message: result.Reason,
				Value:   string(form.Questions[i].Type),
				Rule:    "required",
			})
		}
	}
	return errs
}

func (v *AnswerValidator) requireNonEmptyMapping(raw json.RawMessage, reason string) AnswerResult {
	m, ok := models.DecodeAnswerMap(raw)
	if !ok || len(m) == 0 {
		return incomplete(reason)
	}
	return complete()
}

// validateClozeCoverage requires every declared slot to be filled. A
// required cloze question with no markers can never be satisfied and is
// reported as such rather than silently passed.
func (v *AnswerValidator) validateClozeCoverage(q *models.Question, raw json.RawMessage) AnswerResult {
	slots := models.CountBlanks(q.Passage)
	if slots == 0 {
		return incomplete("passage has no blanks to fill")
	}

	m, ok := models.DecodeAnswerMap(raw)
	if !ok {
		return incomplete("fill in all blanks")
	}

	for i := 0; i < slots; i++ {
		if m[models.BlankKey(i)] == "" {
			return incomplete(fmt.Sprintf("blank %d of %d is not filled", i+1, slots))
		}
	}
	return complete()
}

func (v *AnswerValidator) requirePresence(raw json.RawMessage) AnswerResult {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return incomplete("an answer is required")
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil || s == "" {
			return incomplete("an answer is required")
		}
	case '[':
		var elems []json.RawMessage
		if err := json.Unmarshal(trimmed, &elems); err != nil || len(elems) == 0 {
			return incomplete("an answer is required")
		}
	case '{':
		m, ok := models.DecodeAnswerMap(trimmed)
		if !ok || len(m) == 0 {
			return incomplete("an answer is required")
		}
	}
	return complete()
}
