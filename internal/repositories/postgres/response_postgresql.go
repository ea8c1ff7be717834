package postgres

import (
	"context"

	"github.com/formpilot/form-service/internal/models"
	"github.com/formpilot/form-service/internal/repositories"
	"gorm.io/gorm"
)

type ResponsePostgreSQL struct {
	db *gorm.DB
}

func NewResponsePostgreSQL(db *gorm.DB) repositories.ResponseRepository {
	return &ResponsePostgreSQL{db: db}
}

func (r *ResponsePostgreSQL) Create(ctx context.Context, response *models.Response) error {
	// Responses are append-only; there is no update path.
	return r.db.WithContext(ctx).Create(response).Error
}

func (r *ResponsePostgreSQL) GetByID(ctx context.Context, id uint) (*models.Response, error) {
	var response models.Response
	if err := r.db.WithContext(ctx).First(&response, id).Error; err != nil {
		return nil, err
	}
	return &response, nil
}

// GetByForm returns responses in submission order, which export relies on.
func (r *ResponsePostgreSQL) GetByForm(ctx context.Context, formID uint) ([]*models.Response, error) {
	var responses []*models.Response
	err := r.db.WithContext(ctx).
		Where("form_id = ?", formID).
		Order("submitted_at ASC").
		Find(&responses).Error
	if err != nil {
		return nil, err
	}
	return responses, nil
}

func (r *ResponsePostgreSQL) CountByForm(ctx context.Context, formID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Response{}).
		Where("form_id = ?", formID).
		Count(&count).Error
	return count, err
}

func (r *ResponsePostgreSQL) DeleteByForm(ctx context.Context, formID uint) error {
	return r.db.WithContext(ctx).Where("form_id = ?", formID).Delete(&models.Response{}).Error
}
