package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/klasea/astillero-backend/internal/logger"
	"github.com/klasea/astillero-backend/internal/types"
)

type AlertaRepo interface {
	Create(ctx context.Context, tx *gorm.DB, alertas []*types.Alerta) ([]*types.Alerta, error)
	List(ctx context.Context, tx *gorm.DB, resuelta *bool) ([]*types.Alerta, error)
	Resolve(ctx context.Context, tx *gorm.DB, id uuid.UUID, resolvedBy uuid.UUID, resolvedAt time.Time) error
	// ExistsOpen dedups evaluator output: one open alert per (obra, tipo).
	ExistsOpen(ctx context.Context, tx *gorm.DB, obraID *uuid.UUID, tipo string) (bool, error)
	CountOpen(ctx context.Context, tx *gorm.DB) (int64, error)
}

type alertaRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAlertaRepo(db *gorm.DB, baseLog *logger.Logger) AlertaRepo {
	return &alertaRepo{db: db, log: baseLog.With("repo", "AlertaRepo")}
}

func (ar *alertaRepo) Create(ctx context.Context, tx *gorm.DB, alertas []*types.Alerta) ([]*types.Alerta, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	if len(alertas) == 0 {
		return []*types.Alerta{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&alertas).Error; err != nil {
		return nil, err
	}
	return alertas, nil
}

func (ar *alertaRepo) List(ctx context.Context, tx *gorm.DB, resuelta *bool) ([]*types.Alerta, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	q := transaction.WithContext(ctx).Preload("Obra")
	if resuelta != nil {
		q = q.Where("resuelta = ?", *resuelta)
	}
	var results []*types.Alerta
	if err := q.Order("created_at desc").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ar *alertaRepo) Resolve(ctx context.Context, tx *gorm.DB, id uuid.UUID, resolvedBy uuid.UUID, resolvedAt time.Time) error {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Alerta{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"resuelta":    true,
			"resolved_by": resolvedBy,
			"resolved_at": resolvedAt,
		}).Error
}

func (ar *alertaRepo) ExistsOpen(ctx context.Context, tx *gorm.DB, obraID *uuid.UUID, tipo string) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	q := transaction.WithContext(ctx).
		Model(&types.Alerta{}).
		Where("resuelta = ? AND tipo = ?", false, tipo)
	if obraID != nil {
		q = q.Where("obra_id = ?", *obraID)
	} else {
		q = q.Where("obra_id IS NULL")
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (ar *alertaRepo) CountOpen(ctx context.Context, tx *gorm.DB) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Alerta{}).
		Where("resuelta = ?", false).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
