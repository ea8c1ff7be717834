package models

import (
	"time"

	"gorm.io/datatypes"
)

// Answer is one respondent answer, keyed by the question's position index
// in the referenced form. Value is free-form jsonb; its shape depends on
// QuestionType (mapping for categorize/cloze/comprehension, scalar or list
// otherwise).
type Answer struct {
	QuestionID   int            `json:"questionId"`
	QuestionType QuestionType   `json:"questionType"`
	Value        datatypes.JSON `json:"answer"`
}

// UserInfo is optional respondent identity captured at submit time.
type UserInfo struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	IP    string `json:"ip,omitempty"`
}

// Display returns the identity string used in exports.
func (u UserInfo) Display() string {
	if u.Name != "" {
		return u.Name
	}
	if u.Email != "" {
		return u.Email
	}
	return "Anonymous"
}

// Response is one respondent's full set of answers. Created exactly once
// per submission and never mutated afterwards.
type Response struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	FormID      uint      `json:"formId" gorm:"not null;index"`
	Answers     []Answer  `json:"answers" gorm:"serializer:json;type:jsonb"`
	UserInfo    UserInfo  `json:"userInfo" gorm:"serializer:json;type:jsonb"`
	SubmittedAt time.Time `json:"submittedAt" gorm:"index"`
}

func (Response) TableName() string {
	return "responses"
}

// AnswerFor returns the answer for a question position, nil when missing.
func (r *Response) AnswerFor(questionIndex int) *Answer {
	for i := range r.Answers {
		if r.Answers[i].QuestionID == questionIndex {
			return &r.Answers[i]
		}
	}
	return nil
}
