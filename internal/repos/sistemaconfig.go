package repos

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/klasea/astillero-backend/internal/logger"
	"github.com/klasea/astillero-backend/internal/types"
)

type SistemaConfigRepo interface {
	Get(ctx context.Context, tx *gorm.DB, clave string) (*types.SistemaConfig, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.SistemaConfig, error)
	Upsert(ctx context.Context, tx *gorm.DB, config *types.SistemaConfig) error
}

type sistemaConfigRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSistemaConfigRepo(db *gorm.DB, baseLog *logger.Logger) SistemaConfigRepo {
	return &sistemaConfigRepo{db: db, log: baseLog.With("repo", "SistemaConfigRepo")}
}

func (sr *sistemaConfigRepo) Get(ctx context.Context, tx *gorm.DB, clave string) (*types.SistemaConfig, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	var config types.SistemaConfig
	err := transaction.WithContext(ctx).
		Where("clave = ?", clave).
		First(&config).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &config, nil
}

func (sr *sistemaConfigRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.SistemaConfig, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	var results []*types.SistemaConfig
	if err := transaction.WithContext(ctx).
		Order("clave asc").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (sr *sistemaConfigRepo) Upsert(ctx context.Context, tx *gorm.DB, config *types.SistemaConfig) error {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "clave"}},
			DoUpdates: clause.AssignmentColumns([]string{"valor", "tipo", "descripcion", "updated_at"}),
		}).
		Create(config).Error
}
