package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/formpilot/form-service/internal/models"
	"gorm.io/gorm"
)

type FormFilters struct {
	IsPublished *bool      `json:"is_published"`
	DateFrom    *time.Time `json:"date_from"`
	DateTo      *time.Time `json:"date_to"`
	Limit       int        `json:"limit"`
	Offset      int        `json:"offset"`
	SortBy      string     `json:"sort_by"`    // "created_at", "title", "updated_at"
	SortOrder   string     `json:"sort_order"` // "asc", "desc"
}

type FormRepository interface {
	Create(ctx context.Context, form *models.Form) error
	GetByID(ctx context.Context, id uint) (*models.Form, error)
	Update(ctx context.Context, form *models.Form) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filters FormFilters) ([]*models.Form, int64, error)
}

type ResponseRepository interface {
	Create(ctx context.Context, response *models.Response) error
	GetByID(ctx context.Context, id uint) (*models.Response, error)
	GetByForm(ctx context.Context, formID uint) ([]*models.Response, error)
	CountByForm(ctx context.Context, formID uint) (int64, error)
	DeleteByForm(ctx context.Context, formID uint) error
}

type Repository interface {
	Form() FormRepository
	Response() ResponseRepository
	Ping(ctx context.Context) error
}

// IsNotFoundError reports whether a repository error means the record does
// not exist.
func IsNotFoundError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
