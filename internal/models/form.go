package models

import (
	"time"
)

// FormSettings holds fill-time behavior switches. RequireAuthentication is
// stored for the client but not enforced by this service.
type FormSettings struct {
	AllowMultipleAttempts bool   `json:"allowMultipleAttempts"`
	TimeLimitMinutes      *int   `json:"timeLimit"`
	RequireAuthentication bool   `json:"requireAuthentication"`
	ShowProgressBar       bool   `json:"showProgressBar"`
	RandomizeQuestions    bool   `json:"randomizeQuestions"`
	Theme                 string `json:"theme"`
}

// DefaultFormSettings returns the settings a new draft starts with.
func DefaultFormSettings() FormSettings {
	return FormSettings{
		ShowProgressBar: true,
		Theme:           "default",
	}
}

// Form is the ordered collection of questions plus form-level settings.
// Questions have no identity of their own; the form exclusively owns them
// and they are stored inline as jsonb.
type Form struct {
	ID          uint         `json:"id" gorm:"primaryKey"`
	Title       string       `json:"title" gorm:"not null;size:200" validate:"required,min=1,max=200"`
	Description *string      `json:"description" gorm:"type:text" validate:"omitempty,max=1000"`
	HeaderImage *string      `json:"headerImage" gorm:"size:500"`
	Questions   []Question   `json:"questions" gorm:"serializer:json;type:jsonb"`
	IsPublished bool         `json:"isPublished" gorm:"default:false;index"`
	Settings    FormSettings `json:"settings" gorm:"serializer:json;type:jsonb"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Form) TableName() string {
	return "forms"
}

// QuestionAt returns the question at a position index, nil when out of
// range. Answers referencing an out-of-range index are treated as absent.
func (f *Form) QuestionAt(index int) *Question {
	if index < 0 || index >= len(f.Questions) {
		return nil
	}
	return &f.Questions[index]
}
