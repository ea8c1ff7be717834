package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType distinguishes the form lifecycle events this service emits.
type EventType string

const (
	EventFormPublished     EventType = "form.published"
	EventResponseSubmitted EventType = "response.submitted"
)

// FormEvent is the envelope for all published events.
type FormEvent struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Source    string      `json:"source"`
	Data      interface{} `json:"data"`
}

// NewFormEvent builds an envelope with a fresh id and timestamp.
func NewFormEvent(eventType EventType, data interface{}) *FormEvent {
	return &FormEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Source:    "form-service",
		Data:      data,
	}
}

// FormPublishedEvent is emitted once when a draft goes live.
type FormPublishedEvent struct {
	FormID        uint   `json:"form_id"`
	Title         string `json:"title"`
	QuestionCount int    `json:"question_count"`
}

// ResponseSubmittedEvent is emitted for every accepted submission.
type ResponseSubmittedEvent struct {
	FormID     uint   `json:"form_id"`
	ResponseID uint   `json:"response_id"`
	Respondent string `json:"respondent"`
}
