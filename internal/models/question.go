package models

import (
	"encoding/json"
	"fmt"
)

type QuestionType string

const (
	MultipleChoice QuestionType = "multiple-choice"
	Checkbox       QuestionType = "checkbox"
	Text           QuestionType = "text"
	Rating         QuestionType = "rating"
	Date           QuestionType = "date"
	FileUpload     QuestionType = "file-upload"
	Ranking        QuestionType = "ranking"
	Matrix         QuestionType = "matrix"
	Categorize     QuestionType = "categorize"
	Cloze          QuestionType = "cloze"
	Comprehension  QuestionType = "comprehension"
)

// legacyTypeTags maps tag spellings from older exports onto the canonical
// set. Only canonical tags are ever persisted.
var legacyTypeTags = map[string]QuestionType{
	"multiple_choice": MultipleChoice,
	"check-box":       Checkbox,
	"fileupload":      FileUpload,
	"file_upload":     FileUpload,
	"fill-blank":      Cloze,
	"fill_blank":      Cloze,
}

// NormalizeQuestionType resolves legacy tag spellings to their canonical
// form. The boolean reports whether the tag is known at all.
func NormalizeQuestionType(tag string) (QuestionType, bool) {
	qt := QuestionType(tag)
	if _, ok := questionShapes[qt]; ok {
		return qt, true
	}
	if canonical, ok := legacyTypeTags[tag]; ok {
		return canonical, true
	}
	return "", false
}

// MatrixType selects single or multiple selection per matrix row.
type MatrixType string

const (
	MatrixSingle   MatrixType = "single"
	MatrixMultiple MatrixType = "multiple"
)

// Option is one selectable entry. Choice questions use Text/IsCorrect,
// categorize questions use Text/Category.
type Option struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect,omitempty"`
	Category  string `json:"category,omitempty"`
}

// Blank is one authored cloze gap: the display text and the expected answer.
type Blank struct {
	Text   string `json:"text"`
	Answer string `json:"answer"`
}

// ComprehensionQuestion is one sub-question attached to a reading passage.
type ComprehensionQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
}

// RankingItem accepts both the bare-string and the {text} object encodings
// found in stored forms.
type RankingItem struct {
	Text string `json:"text"`
}

func (r *RankingItem) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &r.Text)
	}
	type plain RankingItem
	return json.Unmarshal(data, (*plain)(r))
}

// Question is one authored prompt. All type variants share this container;
// which optional fields are meaningful is defined by Shape for the type.
type Question struct {
	Type     QuestionType `json:"type"`
	Prompt   string       `json:"question"`
	Image    *string      `json:"image,omitempty"`
	Required bool         `json:"required"`
	Points   float64      `json:"points,omitempty"`

	// choice-like / categorize
	Options []Option `json:"options,omitempty"`

	// text
	Placeholder string `json:"placeholder,omitempty"`
	MinLength   *int   `json:"minLength,omitempty"`
	MaxLength   *int   `json:"maxLength,omitempty"`

	// rating
	MaxStars int `json:"maxStars,omitempty"`

	// date, ISO date strings
	MinDate *string `json:"minDate,omitempty"`
	MaxDate *string `json:"maxDate,omitempty"`

	// file-upload
	Accept    []string `json:"accept,omitempty"`
	MaxSizeMB int      `json:"maxSizeMB,omitempty"`

	// ranking
	Items []RankingItem `json:"items,omitempty"`

	// matrix
	Rows       []string   `json:"rows,omitempty"`
	Columns    []string   `json:"columns,omitempty"`
	MatrixType MatrixType `json:"matrixType,omitempty"`

	// categorize
	Categories []string `json:"categories,omitempty"`

	// cloze / comprehension
	Passage                string                  `json:"passage,omitempty"`
	Blanks                 []Blank                 `json:"blanks,omitempty"`
	ComprehensionQuestions []ComprehensionQuestion `json:"comprehensionQuestions,omitempty"`
}

// UnmarshalJSON normalizes legacy type tags on read so stored forms never
// carry them forward.
func (q *Question) UnmarshalJSON(data []byte) error {
	type plain Question
	if err := json.Unmarshal(data, (*plain)(q)); err != nil {
		return err
	}
	if q.Type == "" {
		return nil
	}
	canonical, ok := NormalizeQuestionType(string(q.Type))
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownQuestionType, q.Type)
	}
	q.Type = canonical
	return nil
}

// Clone returns a deep copy of the question.
func (q Question) Clone() Question {
	out := q
	if q.Image != nil {
		img := *q.Image
		out.Image = &img
	}
	out.MinLength = cloneIntPtr(q.MinLength)
	out.MaxLength = cloneIntPtr(q.MaxLength)
	out.MinDate = cloneStringPtr(q.MinDate)
	out.MaxDate = cloneStringPtr(q.MaxDate)
	out.Options = append([]Option(nil), q.Options...)
	out.Accept = append([]string(nil), q.Accept...)
	out.Items = append([]RankingItem(nil), q.Items...)
	out.Rows = append([]string(nil), q.Rows...)
	out.Columns = append([]string(nil), q.Columns...)
	out.Categories = append([]string(nil), q.Categories...)
	out.Blanks = append([]Blank(nil), q.Blanks...)
	out.ComprehensionQuestions = make([]ComprehensionQuestion, len(q.ComprehensionQuestions))
	for i, cq := range q.ComprehensionQuestions {
		out.ComprehensionQuestions[i] = cq
		out.ComprehensionQuestions[i].Options = append([]string(nil), cq.Options...)
	}
	return out
}

func cloneIntPtr(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneStringPtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
