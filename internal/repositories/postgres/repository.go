package postgres

import (
	"context"

	"github.com/formpilot/form-service/internal/repositories"
	"gorm.io/gorm"
)

type postgresRepository struct {
	db       *gorm.DB
	form     repositories.FormRepository
	response repositories.ResponseRepository
}

func NewRepository(db *gorm.DB) repositories.Repository {
	return &postgresRepository{
		db:       db,
		form:     NewFormPostgreSQL(db),
		response: NewResponsePostgreSQL(db),
	}
}

func (r *postgresRepository) Form() repositories.FormRepository {
	return r.form
}

func (r *postgresRepository) Response() repositories.ResponseRepository {
	return r.response
}

func (r *postgresRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
