package models

import "errors"

// ErrUnknownQuestionType is returned for type tags outside the registered
// set, canonical or legacy.
var ErrUnknownQuestionType = errors.New("unknown question type")

// QuestionShape declares, for one question type, which optional Question
// fields are authorable. The common fields (prompt, image, required, points)
// apply to every type and are not repeated here.
type QuestionShape struct {
	Type   QuestionType
	Label  string
	Fields []string
}

var questionShapes = map[QuestionType]QuestionShape{
	MultipleChoice: {
		Type:   MultipleChoice,
		Label:  "Multiple Choice",
		Fields: []string{"options"},
	},
	Checkbox: {
		Type:   Checkbox,
		Label:  "Checkbox",
		Fields: []string{"options"},
	},
	Text: {
		Type:   Text,
		Label:  "Text Input",
		Fields: []string{"placeholder", "minLength", "maxLength"},
	},
	Rating: {
		Type:   Rating,
		Label:  "Rating",
		Fields: []string{"maxStars"},
	},
	Date: {
		Type:   Date,
		Label:  "Date Picker",
		Fields: []string{"minDate", "maxDate"},
	},
	FileUpload: {
		Type:   FileUpload,
		Label:  "File Upload",
		Fields: []string{"accept", "maxSizeMB"},
	},
	Ranking: {
		Type:   Ranking,
		Label:  "Ranking",
		Fields: []string{"items"},
	},
	Matrix: {
		Type:   Matrix,
		Label:  "Matrix",
		Fields: []string{"rows", "columns", "matrixType"},
	},
	Categorize: {
		Type:   Categorize,
		Label:  "Categorize",
		Fields: []string{"categories", "options"},
	},
	Cloze: {
		Type:   Cloze,
		Label:  "Cloze",
		Fields: []string{"passage", "blanks"},
	},
	Comprehension: {
		Type:   Comprehension,
		Label:  "Comprehension",
		Fields: []string{"passage", "comprehensionQuestions"},
	},
}

// Shape returns the field contract for a type tag.
func Shape(qt QuestionType) (QuestionShape, error) {
	shape, ok := questionShapes[qt]
	if !ok {
		return QuestionShape{}, ErrUnknownQuestionType
	}
	return shape, nil
}

// QuestionTypes lists every registered canonical type tag.
func QuestionTypes() []QuestionType {
	return []QuestionType{
		MultipleChoice, Checkbox, Text, Rating, Date, FileUpload,
		Ranking, Matrix, Categorize, Cloze, Comprehension,
	}
}

// DefaultQuestion produces a minimally valid instance for a type, the
// starting point the authoring UI mutates from.
func DefaultQuestion(qt QuestionType) (Question, error) {
	canonical, ok := NormalizeQuestionType(string(qt))
	if !ok {
		return Question{}, ErrUnknownQuestionType
	}

	q := Question{Type: canonical, Points: 1}

	switch canonical {
	case MultipleChoice, Checkbox:
		q.Options = []Option{{Text: "", IsCorrect: false}}
	case Text:
		q.Placeholder = ""
	case Rating:
		q.MaxStars = 5
	case FileUpload:
		q.MaxSizeMB = 10
	case Ranking:
		q.Items = []RankingItem{{Text: ""}}
	case Matrix:
		q.Rows = []string{""}
		q.Columns = []string{""}
		q.MatrixType = MatrixSingle
	case Categorize:
		q.Categories = []string{}
		q.Options = []Option{}
	case Cloze:
		q.Passage = ""
		q.Blanks = []Blank{}
	case Comprehension:
		q.Passage = ""
		q.ComprehensionQuestions = []ComprehensionQuestion{}
	}

	return q, nil
}
