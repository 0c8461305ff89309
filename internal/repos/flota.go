package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/klasea/astillero-backend/internal/logger"
	"github.com/klasea/astillero-backend/internal/types"
)

type FlotaRepo interface {
	Create(ctx context.Context, tx *gorm.DB, embarcacion *types.FlotaEmbarcacion) error
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.FlotaEmbarcacion, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.FlotaEmbarcacion, error)
	Update(ctx context.Context, tx *gorm.DB, embarcacion *types.FlotaEmbarcacion) error
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type flotaRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFlotaRepo(db *gorm.DB, baseLog *logger.Logger) FlotaRepo {
	return &flotaRepo{db: db, log: baseLog.With("repo", "FlotaRepo")}
}

func (fr *flotaRepo) Create(ctx context.Context, tx *gorm.DB, embarcacion *types.FlotaEmbarcacion) error {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}
	return transaction.WithContext(ctx).Create(embarcacion).Error
}

func (fr *flotaRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.FlotaEmbarcacion, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}
	var embarcacion types.FlotaEmbarcacion
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&embarcacion).Error; err != nil {
		return nil, err
	}
	return &embarcacion, nil
}

func (fr *flotaRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.FlotaEmbarcacion, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}
	var results []*types.FlotaEmbarcacion
	if err := transaction.WithContext(ctx).
		Order("nombre asc").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (fr *flotaRepo) Update(ctx context.Context, tx *gorm.DB, embarcacion *types.FlotaEmbarcacion) error {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}
	return transaction.WithContext(ctx).
		Model(&types.FlotaEmbarcacion{}).
		Where("id = ?", embarcacion.ID).
		Updates(map[string]interface{}{
			"nombre":            embarcacion.Nombre,
			"propietario":       embarcacion.Propietario,
			"ubicacion_general": embarcacion.UbicacionGeneral,
			"ubicacion_detalle": embarcacion.UbicacionDetalle,
			"latitud":           embarcacion.Latitud,
			"longitud":          embarcacion.Longitud,
		}).Error
}

func (fr *flotaRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.FlotaEmbarcacion{}).Error
}
