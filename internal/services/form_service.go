package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/formpilot/form-service/internal/cache"
	"github.com/formpilot/form-service/internal/events"
	"github.com/formpilot/form-service/internal/models"
	"github.com/formpilot/form-service/internal/repositories"
	"github.com/formpilot/form-service/internal/validator"
)

// SaveFormRequest is the authoring payload for create and full replace.
type SaveFormRequest struct {
	Title       string               `json:"title" validate:"required,min=1,max=200"`
	Description *string              `json:"description" validate:"omitempty,max=1000"`
	HeaderImage *string              `json:"headerImage"`
	Questions   []models.Question    `json:"questions"`
	Settings    *models.FormSettings `json:"settings"`
}

// MoveQuestionRequest reorders one question inside a form.
type MoveQuestionRequest struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// FormResult pairs a form with non-blocking shape warnings so permissive
// authoring still surfaces malformed cloze definitions.
type FormResult struct {
	Form     *models.Form `json:"form"`
	Warnings []string     `json:"warnings,omitempty"`
}

type FormService interface {
	Create(ctx context.Context, req *SaveFormRequest) (*FormResult, error)
	GetByID(ctx context.Context, id uint) (*models.Form, error)
	List(ctx context.Context, filters repositories.FormFilters) ([]*models.Form, int64, error)
	Update(ctx context.Context, id uint, req *SaveFormRequest) (*FormResult, error)
	Delete(ctx context.Context, id uint) error

	AddQuestion(ctx context.Context, formID uint, questionType string) (*models.Form, error)
	UpdateQuestion(ctx context.Context, formID uint, index int, question models.Question) (*FormResult, error)
	DeleteQuestion(ctx context.Context, formID uint, index int) (*models.Form, error)
	MoveQuestion(ctx context.Context, formID uint, from, to int) (*models.Form, error)
	DuplicateQuestion(ctx context.Context, formID uint, index int) (*models.Form, error)

	Publish(ctx context.Context, formID uint) (*models.Form, error)

	SetHeaderImage(ctx context.Context, formID uint, path string) (*models.Form, error)
	SetQuestionImage(ctx context.Context, formID uint, index int, path string) (*models.Form, error)
}

type formService struct {
	repo      repositories.Repository
	cache     cache.CacheService
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewFormService(
	repo repositories.Repository,
	cacheService cache.CacheService,
	publisher events.EventPublisher,
	logger *slog.Logger,
	v *validator.Validator,
) FormService {
	return &formService{
		repo:      repo,
		cache:     cacheService,
		publisher: publisher,
		logger:    logger,
		validator: v,
	}
}

const formCacheTTL = 5 * time.Minute

func formCacheKey(id uint) string {
	return fmt.Sprintf("form:%d", id)
}

func (s *formService) Create(ctx context.Context, req *SaveFormRequest) (*FormResult, error) {
	s.logger.Info("Creating form", "title", req.Title)

	form := &models.Form{
		Title:       req.Title,
		Description: req.Description,
		HeaderImage: req.HeaderImage,
		Questions:   req.Questions,
		Settings:    models.DefaultFormSettings(),
	}
	if req.Settings != nil {
		form.Settings = *req.Settings
	}
	if form.Questions == nil {
		form.Questions = []models.Question{}
	}

	if err := s.validateForm(form); err != nil {
		return nil, err
	}

	if err := s.repo.Form().Create(ctx, form); err != nil {
		return nil, fmt.Errorf("failed to create form: %w", err)
	}

	s.logger.Info("Form created", "form_id", form.ID, "questions", len(form.Questions))

	return &FormResult{
		Form:     form,
		Warnings: s.validator.Question().ShapeWarnings(form.Questions),
	}, nil
}

func (s *formService) GetByID(ctx context.Context, id uint) (*models.Form, error) {
	// Published forms are read-heavy at fill time; try the cache first.
	var cached models.Form
	if err := s.cache.Get(ctx, formCacheKey(id), &cached); err == nil && cached.ID == id {
		return &cached, nil
	}

	form, err := s.repo.Form().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrFormNotFound
		}
		return nil, fmt.Errorf("failed to get form: %w", err)
	}

	if form.IsPublished {
		if err := s.cache.Set(ctx, formCacheKey(id), form, formCacheTTL); err != nil {
			s.logger.Warn("Failed to cache form", "form_id", id, "error", err)
		}
	}

	return form, nil
}

func (s *formService) List(ctx context.Context, filters repositories.FormFilters) ([]*models.Form, int64, error) {
	return s.repo.Form().List(ctx, filters)
}

func (s *formService) Update(ctx context.Context, id uint, req *SaveFormRequest) (*FormResult, error) {
	s.logger.Info("Updating form", "form_id", id)

	form, err := s.loadForm(ctx, id)
	if err != nil {
		return nil, err
	}

	form.Title = req.Title
	form.Description = req.Description
	form.HeaderImage = req.HeaderImage
	if req.Questions != nil {
		form.Questions = req.Questions
	}
	if req.Settings != nil {
		form.Settings = *req.Settings
	}

	if err := s.validateForm(form); err != nil {
		return nil, err
	}

	if err := s.saveForm(ctx, form); err != nil {
		return nil, err
	}

	return &FormResult{
		Form:     form,
		Warnings: s.validator.Question().ShapeWarnings(form.Questions),
	}, nil
}

func (s *formService) Delete(ctx context.Context, id uint) error {
	s.logger.Info("Deleting form", "form_id", id)

	if err := s.repo.Form().Delete(ctx, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrFormNotFound
		}
		return fmt.Errorf("failed to delete form: %w", err)
	}

	s.invalidate(ctx, id)
	return nil
}

// ===== QUESTION OPERATIONS =====

func (s *formService) AddQuestion(ctx context.Context, formID uint, questionType string) (*models.Form, error) {
	form, err := s.loadForm(ctx, formID)
	if err != nil {
		return nil, err
	}

	question, err := models.DefaultQuestion(models.QuestionType(questionType))
	if err != nil {
		return nil, err
	}

	form.Questions = append(form.Questions, question)
	if err := s.saveForm(ctx, form); err != nil {
		return nil, err
	}

	s.logger.Info("Question added", "form_id", formID, "type", question.Type, "index", len(form.Questions)-1)
	return form, nil
}

func (s *formService) UpdateQuestion(ctx context.Context, formID uint, index int, question models.Question) (*FormResult, error) {
	form, err := s.loadForm(ctx, formID)
	if err != nil {
		return nil, err
	}
	if form.QuestionAt(index) == nil {
		return nil, ErrQuestionIndexOutOfRange
	}

	if err := s.validator.Question().ValidateQuestion(&question); err != nil {
		return nil, err
	}

	form.Questions[index] = question
	if err := s.saveForm(ctx, form); err != nil {
		return nil, err
	}

	return &FormResult{
		Form:     form,
		Warnings: s.validator.Question().ShapeWarnings(form.Questions),
	}, nil
}

func (s *formService) DeleteQuestion(ctx context.Context, formID uint, index int) (*models.Form, error) {
	form, err := s.loadForm(ctx, formID)
	if err != nil {
		return nil, err
	}
	if form.QuestionAt(index) == nil {
		return nil, ErrQuestionIndexOutOfRange
	}

	form.Questions = append(form.Questions[:index], form.Questions[index+1:]...)
	if err := s.saveForm(ctx, form); err != nil {
		return nil, err
	}
	return form, nil
}

func (s *formService) MoveQuestion(ctx context.Context, formID uint, from, to int) (*models.Form, error) {
	form, err := s.loadForm(ctx, formID)
	if err != nil {
		return nil, err
	}
	if form.QuestionAt(from) == nil || form.QuestionAt(to) == nil {
		return nil, ErrQuestionIndexOutOfRange
	}

	moved := form.Questions[from]
	rest := append(form.Questions[:from], form.Questions[from+1:]...)
	form.Questions = append(rest[:to], append([]models.Question{moved}, rest[to:]...)...)

	if err := s.saveForm(ctx, form); err != nil {
		return nil, err
	}
	return form, nil
}

// DuplicateQuestion clones the question at index and appends the clone,
// marking its prompt with a " (Copy)" suffix. Every other field is equal
// to the original.
func (s *formService) DuplicateQuestion(ctx context.Context, formID uint, index int) (*models.Form, error) {
	form, err := s.loadForm(ctx, formID)
	if err != nil {
		return nil, err
	}
	original := form.QuestionAt(index)
	if original == nil {
		return nil, ErrQuestionIndexOutOfRange
	}

	clone := original.Clone()
	clone.Prompt = original.Prompt + " (Copy)"
	form.Questions = append(form.Questions, clone)

	if err := s.saveForm(ctx, form); err != nil {
		return nil, err
	}
	return form, nil
}

// Publish flips isPublished one way. Publishing an already published form
// fails with ErrFormAlreadyPublished; the flag is never observed to revert.
func (s *formService) Publish(ctx context.Context, formID uint) (*models.Form, error) {
	form, err := s.loadForm(ctx, formID)
	if err != nil {
		return nil, err
	}
	if form.IsPublished {
		return nil, ErrFormAlreadyPublished
	}

	form.IsPublished = true
	if err := s.saveForm(ctx, form); err != nil {
		return nil, err
	}

	event := events.NewFormEvent(events.EventFormPublished, events.FormPublishedEvent{
		FormID:        form.ID,
		Title:         form.Title,
		QuestionCount: len(form.Questions),
	})
	if err := s.publisher.PublishFormEvent(ctx, event); err != nil {
		s.logger.Error("Failed to publish form event", "form_id", form.ID, "error", err)
	}

	s.logger.Info("Form published", "form_id", form.ID)
	return form, nil
}

func (s *formService) SetHeaderImage(ctx context.Context, formID uint, path string) (*models.Form, error) {
	form, err := s.loadForm(ctx, formID)
	if err != nil {
		return nil, err
	}

	form.HeaderImage = &path
	if err := s.saveForm(ctx, form); err != nil {
		return nil, err
	}
	return form, nil
}

func (s *formService) SetQuestionImage(ctx context.Context, formID uint, index int, path string) (*models.Form, error) {
	form, err := s.loadForm(ctx, formID)
	if err != nil {
		return nil, err
	}
	question := form.QuestionAt(index)
	if question == nil {
		return nil, ErrQuestionIndexOutOfRange
	}

	question.Image = &path
	if err := s.saveForm(ctx, form); err != nil {
		return nil, err
	}
	return form, nil
}

// ===== HELPERS =====

func (s *formService) loadForm(ctx context.Context, id uint) (*models.Form, error) {
	form, err := s.repo.Form().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrFormNotFound
		}
		return nil, fmt.Errorf("failed to get form: %w", err)
	}
	return form, nil
}

func (s *formService) saveForm(ctx context.Context, form *models.Form) error {
	if err := s.repo.Form().Update(ctx, form); err != nil {
		return fmt.Errorf("failed to save form: %w", err)
	}
	s.invalidate(ctx, form.ID)
	return nil
}

func (s *formService) invalidate(ctx context.Context, id uint) {
	if err := s.cache.Delete(ctx, formCacheKey(id)); err != nil {
		s.logger.Warn("Failed to invalidate form cache", "form_id", id, "error", err)
	}
}

func (s *formService) validateForm(form *models.Form) error {
	if err := s.validator.ValidateStruct(form); err != nil {
		if ve := validator.ToValidationErrors(err); len(ve) > 0 {
			return ve
		}
		return err
	}
	if errs := s.validator.Question().ValidateBatch(form.Questions); len(errs) > 0 {
		return errs
	}
	return nil
}
