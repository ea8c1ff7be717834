package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/formpilot/form-service/internal/events"
	"github.com/formpilot/form-service/internal/models"
	"github.com/formpilot/form-service/internal/repositories"
	"github.com/formpilot/form-service/internal/validator"
)

// SubmitResponseRequest is the fill-time payload.
type SubmitResponseRequest struct {
	FormID   uint            `json:"formId" validate:"required"`
	Answers  []models.Answer `json:"answers"`
	UserInfo models.UserInfo `json:"userInfo"`
}

type ResponseService interface {
	Submit(ctx context.Context, req *SubmitResponseRequest) (*models.Response, error)
	GetByForm(ctx context.Context, formID uint) ([]*models.Response, error)
	CountByForm(ctx context.Context, formID uint) (int64, error)
}

type responseService struct {
	repo      repositories.Repository
	forms     FormService
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewResponseService(
	repo repositories.Repository,
	forms FormService,
	publisher events.EventPublisher,
	logger *slog.Logger,
	v *validator.Validator,
) ResponseService {
	return &responseService{
		repo:      repo,
		forms:     forms,
		publisher: publisher,
		logger:    logger,
		validator: v,
	}
}

// Submit validates the full answer set against the form and appends one
// immutable response. Validation is all-or-nothing: failures for every
// question are collected and returned together so the respondent can fix
// them in one pass.
func (s *responseService) Submit(ctx context.Context, req *SubmitResponseRequest) (*models.Response, error) {
	s.logger.Info("Submitting response", "form_id", req.FormID, "answers", len(req.Answers))

	form, err := s.forms.GetByID(ctx, req.FormID)
	if err != nil {
		return nil, err
	}

	if !form.IsPublished {
		return nil, ErrFormNotPublished
	}

	if errs := s.validator.Answer().ValidateSubmission(form, req.Answers); len(errs) > 0 {
		return nil, errs
	}

	response := &models.Response{
		FormID:      form.ID,
		Answers:     keepInRange(form, req.Answers),
		UserInfo:    req.UserInfo,
		SubmittedAt: time.Now().UTC(),
	}

	if err := s.repo.Response().Create(ctx, response); err != nil {
		return nil, fmt.Errorf("failed to save response: %w", err)
	}

	event := events.NewFormEvent(events.EventResponseSubmitted, events.ResponseSubmittedEvent{
		FormID:     form.ID,
		ResponseID: response.ID,
		Respondent: response.UserInfo.Display(),
	})
	if err := s.publisher.PublishFormEvent(ctx, event); err != nil {
		s.logger.Error("Failed to publish response event", "response_id", response.ID, "error", err)
	}

	s.logger.Info("Response submitted", "form_id", form.ID, "response_id", response.ID)
	return response, nil
}

func (s *responseService) GetByForm(ctx context.Context, formID uint) ([]*models.Response, error) {
	if _, err := s.forms.GetByID(ctx, formID); err != nil {
		return nil, err
	}
	return s.repo.Response().GetByForm(ctx, formID)
}

func (s *responseService) CountByForm(ctx context.Context, formID uint) (int64, error) {
	return s.repo.Response().CountByForm(ctx, formID)
}

// keepInRange drops answers whose question index does not exist in the
// form; they are absent by definition, not an error.
func keepInRange(form *models.Form, answers []models.Answer) []models.Answer {
	kept := make([]models.Answer, 0, len(answers))
	for _, a := range answers {
		q := form.QuestionAt(a.QuestionID)
		if q == nil {
			continue
		}
		a.QuestionType = q.Type
		kept = append(kept, a)
	}
	return kept
}
