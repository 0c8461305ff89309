package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/klasea/astillero-backend/internal/logger"
	"github.com/klasea/astillero-backend/internal/types"
)

type MovimientoRepo interface {
	Create(ctx context.Context, tx *gorm.DB, movimientos []*types.Movimiento) ([]*types.Movimiento, error)
	ListRecent(ctx context.Context, tx *gorm.DB, limit int) ([]*types.Movimiento, error)
	ListByMaterial(ctx context.Context, tx *gorm.DB, materialID uuid.UUID, limit int) ([]*types.Movimiento, error)
	ListBetween(ctx context.Context, tx *gorm.DB, desde, hasta time.Time) ([]*types.Movimiento, error)
}

type movimientoRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMovimientoRepo(db *gorm.DB, baseLog *logger.Logger) MovimientoRepo {
	return &movimientoRepo{db: db, log: baseLog.With("repo", "MovimientoRepo")}
}

func (mr *movimientoRepo) Create(ctx context.Context, tx *gorm.DB, movimientos []*types.Movimiento) ([]*types.Movimiento, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	if len(movimientos) == 0 {
		return []*types.Movimiento{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&movimientos).Error; err != nil {
		return nil, err
	}
	return movimientos, nil
}

func (mr *movimientoRepo) ListRecent(ctx context.Context, tx *gorm.DB, limit int) ([]*types.Movimiento, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	if limit <= 0 {
		limit = 500
	}
	var results []*types.Movimiento
	if err := transaction.WithContext(ctx).
		Preload("Material").
		Order("fecha desc").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (mr *movimientoRepo) ListByMaterial(ctx context.Context, tx *gorm.DB, materialID uuid.UUID, limit int) ([]*types.Movimiento, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	if limit <= 0 {
		limit = 500
	}
	var results []*types.Movimiento
	if err := transaction.WithContext(ctx).
		Where("material_id = ?", materialID).
		Order("fecha desc").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (mr *movimientoRepo) ListBetween(ctx context.Context, tx *gorm.DB, desde, hasta time.Time) ([]*types.Movimiento, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	var results []*types.Movimiento
	if err := transaction.WithContext(ctx).
		Preload("Material").
		Where("fecha >= ? AND fecha < ?", desde, hasta).
		Order("fecha desc").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
