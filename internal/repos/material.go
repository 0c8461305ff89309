package repos

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/klasea/astillero-backend/internal/logger"
	"github.com/klasea/astillero-backend/internal/types"
)

type MaterialRepo interface {
	Create(ctx context.Context, tx *gorm.DB, materiales []*types.Material) ([]*types.Material, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Material, error)
	List(ctx context.Context, tx *gorm.DB, soloActivos bool) ([]*types.Material, error)
	Update(ctx context.Context, tx *gorm.DB, material *types.Material) error
	SetActivo(ctx context.Context, tx *gorm.DB, id uuid.UUID, activo bool) error
	// AdjustStock applies a signed delta to the denormalized counter and
	// fails when the result would go negative.
	AdjustStock(ctx context.Context, tx *gorm.DB, id uuid.UUID, delta float64) error
	ListBelowMinimo(ctx context.Context, tx *gorm.DB) ([]*types.Material, error)
}

type materialRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMaterialRepo(db *gorm.DB, baseLog *logger.Logger) MaterialRepo {
	return &materialRepo{db: db, log: baseLog.With("repo", "MaterialRepo")}
}

func (mr *materialRepo) Create(ctx context.Context, tx *gorm.DB, materiales []*types.Material) ([]*types.Material, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	if len(materiales) == 0 {
		return []*types.Material{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&materiales).Error; err != nil {
		return nil, err
	}
	return materiales, nil
}

func (mr *materialRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Material, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	var results []*types.Material
	if len(ids) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (mr *materialRepo) List(ctx context.Context, tx *gorm.DB, soloActivos bool) ([]*types.Material, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	q := transaction.WithContext(ctx).Model(&types.Material{})
	if soloActivos {
		q = q.Where("activo = ?", true)
	}
	var results []*types.Material
	if err := q.Order("categoria asc, nombre asc").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (mr *materialRepo) Update(ctx context.Context, tx *gorm.DB, material *types.Material) error {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Material{}).
		Where("id = ?", material.ID).
		Updates(map[string]interface{}{
			"nombre":       material.Nombre,
			"categoria":    material.Categoria,
			"unidad":       material.Unidad,
			"stock_minimo": material.StockMinimo,
		}).Error
}

func (mr *materialRepo) SetActivo(ctx context.Context, tx *gorm.DB, id uuid.UUID, activo bool) error {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Material{}).
		Where("id = ?", id).
		Update("activo", activo).Error
}

func (mr *materialRepo) AdjustStock(ctx context.Context, tx *gorm.DB, id uuid.UUID, delta float64) error {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	res := transaction.WithContext(ctx).
		Model(&types.Material{}).
		Where("id = ? AND stock_actual + ? >= 0", id, delta).
		Update("stock_actual", gorm.Expr("stock_actual + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("stock insuficiente o material inexistente")
	}
	return nil
}

func (mr *materialRepo) ListBelowMinimo(ctx context.Context, tx *gorm.DB) ([]*types.Material, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	var results []*types.Material
	if err := transaction.WithContext(ctx).
		Where("activo = ? AND stock_actual <= stock_minimo", true).
		Order("stock_actual asc").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
