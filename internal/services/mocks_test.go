package services

import (
	"context"
	"io"
	"log/slog"

	"github.com/stretchr/testify/mock"

	"github.com/formpilot/form-service/internal/cache"
	"github.com/formpilot/form-service/internal/events"
	"github.com/formpilot/form-service/internal/models"
	"github.com/formpilot/form-service/internal/repositories"
	"github.com/formpilot/form-service/internal/validator"
)

// MockFormRepository is a mock implementation of repositories.FormRepository
type MockFormRepository struct {
	mock.Mock
}

func (m *MockFormRepository) Create(ctx context.Context, form *models.Form) error {
	args := m.Called(ctx, form)
	return args.Error(0)
}

func (m *MockFormRepository) GetByID(ctx context.Context, id uint) (*models.Form, error) {
	args := m.Called(ctx, id)
	if form, ok := args.Get(0).(*models.Form); ok {
		return form, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockFormRepository) Update(ctx context.Context, form *models.Form) error {
	args := m.Called(ctx, form)
	return args.Error(0)
}

func (m *MockFormRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockFormRepository) List(ctx context.Context, filters repositories.FormFilters) ([]*models.Form, int64, error) {
	args := m.Called(ctx, filters)
	return args.Get(0).([]*models.Form), args.Get(1).(int64), args.Error(2)
}

// MockResponseRepository is a mock implementation of repositories.ResponseRepository
type MockResponseRepository struct {
	mock.Mock
}

func (m *MockResponseRepository) Create(ctx context.Context, response *models.Response) error {
	args := m.Called(ctx, response)
	return args.Error(0)
}

func (m *MockResponseRepository) GetByID(ctx context.Context, id uint) (*models.Response, error) {
	args := m.Called(ctx, id)
	if resp, ok := args.Get(0).(*models.Response); ok {
		return resp, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockResponseRepository) GetByForm(ctx context.Context, formID uint) ([]*models.Response, error) {
	args := m.Called(ctx, formID)
	if responses, ok := args.Get(0).([]*models.Response); ok {
		return responses, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockResponseRepository) CountByForm(ctx context.Context, formID uint) (int64, error) {
	args := m.Called(ctx, formID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockResponseRepository) DeleteByForm(ctx context.Context, formID uint) error {
	args := m.Called(ctx, formID)
	return args.Error(0)
}

// mockRepository bundles the two repository mocks behind the Repository
// interface the services consume.
type mockRepository struct {
	forms     *MockFormRepository
	responses *MockResponseRepository
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		forms:     &MockFormRepository{},
		responses: &MockResponseRepository{},
	}
}

func (r *mockRepository) Form() repositories.FormRepository         { return r.forms }
func (r *mockRepository) Response() repositories.ResponseRepository { return r.responses }
func (r *mockRepository) Ping(ctx context.Context) error            { return nil }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testHarness wires a form service, response service and export service
// against mock repositories, a noop cache and a recording event publisher.
type testHarness struct {
	repo      *mockRepository
	publisher *events.MockEventPublisher
	forms     FormService
	responses ResponseService
	exports   ExportService
}

func newTestHarness() *testHarness {
	repo := newMockRepository()
	logger := testLogger()
	publisher := events.NewMockEventPublisher(logger)
	v := validator.New()

	forms := NewFormService(repo, cache.NewNoopCache(), publisher, logger, v)
	responses := NewResponseService(repo, forms, publisher, logger, v)
	exports := NewExportService(forms, responses, logger)

	return &testHarness{
		repo:      repo,
		publisher: publisher,
		forms:     forms,
		responses: responses,
		exports:   exports,
	}
}
