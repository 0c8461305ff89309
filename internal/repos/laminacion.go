package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/klasea/astillero-backend/internal/logger"
	"github.com/klasea/astillero-backend/internal/types"
)

type LaminacionMaterialRepo interface {
	Create(ctx context.Context, tx *gorm.DB, materiales []*types.LaminacionMaterial) ([]*types.LaminacionMaterial, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.LaminacionMaterial, error)
	List(ctx context.Context, tx *gorm.DB, soloActivos bool) ([]*types.LaminacionMaterial, error)
	Update(ctx context.Context, tx *gorm.DB, material *types.LaminacionMaterial) error
	SetActivo(ctx context.Context, tx *gorm.DB, id uuid.UUID, activo bool) error
}

type laminacionMaterialRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLaminacionMaterialRepo(db *gorm.DB, baseLog *logger.Logger) LaminacionMaterialRepo {
	return &laminacionMaterialRepo{db: db, log: baseLog.With("repo", "LaminacionMaterialRepo")}
}

func (lr *laminacionMaterialRepo) Create(ctx context.Context, tx *gorm.DB, materiales []*types.LaminacionMaterial) ([]*types.LaminacionMaterial, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	if len(materiales) == 0 {
		return []*types.LaminacionMaterial{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&materiales).Error; err != nil {
		return nil, err
	}
	return materiales, nil
}

func (lr *laminacionMaterialRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.LaminacionMaterial, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	var results []*types.LaminacionMaterial
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

func (lr *laminacionMaterialRepo) List(ctx context.Context, tx *gorm.DB, soloActivos bool) ([]*types.LaminacionMaterial, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	q := transaction.WithContext(ctx).Model(&types.LaminacionMaterial{})
	if soloActivos {
		q = q.Where("activo = ?", true)
	}
	var results []*types.LaminacionMaterial
	if err := q.Order("categoria asc, nombre asc").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (lr *laminacionMaterialRepo) Update(ctx context.Context, tx *gorm.DB, material *types.LaminacionMaterial) error {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	return transaction.WithContext(ctx).
		Model(&types.LaminacionMaterial{}).
		Where("id = ?", material.ID).
		Updates(map[string]interface{}{
			"nombre":       material.Nombre,
			"categoria":    material.Categoria,
			"unidad":       material.Unidad,
			"stock_minimo": material.StockMinimo,
		}).Error
}

func (lr *laminacionMaterialRepo) SetActivo(ctx context.Context, tx *gorm.DB, id uuid.UUID, activo bool) error {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	return transaction.WithContext(ctx).
		Model(&types.LaminacionMaterial{}).
		Where("id = ?", id).
		Update("activo", activo).Error
}

type LaminacionMovimientoRepo interface {
	Create(ctx context.Context, tx *gorm.DB, movimientos []*types.LaminacionMovimiento) ([]*types.LaminacionMovimiento, error)
	// ListRecent returns the newest rows first; the stock fold runs over
	// this bounded window.
	ListRecent(ctx context.Context, tx *gorm.DB, limit int) ([]*types.LaminacionMovimiento, error)
	ListByMaterial(ctx context.Context, tx *gorm.DB, materialID uuid.UUID, limit int) ([]*types.LaminacionMovimiento, error)
}

type laminacionMovimientoRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLaminacionMovimientoRepo(db *gorm.DB, baseLog *logger.Logger) LaminacionMovimientoRepo {
	return &laminacionMovimientoRepo{db: db, log: baseLog.With("repo", "LaminacionMovimientoRepo")}
}

func (lr *laminacionMovimientoRepo) Create(ctx context.Context, tx *gorm.DB, movimientos []*types.LaminacionMovimiento) ([]*types.LaminacionMovimiento, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	if len(movimientos) == 0 {
		return []*types.LaminacionMovimiento{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&movimientos).Error; err != nil {
		return nil, err
	}
	return movimientos, nil
}

func (lr *laminacionMovimientoRepo) ListRecent(ctx context.Context, tx *gorm.DB, limit int) ([]*types.LaminacionMovimiento, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	if limit <= 0 {
		limit = 500
	}
	var results []*types.LaminacionMovimiento
	if err := transaction.WithContext(ctx).
		Preload("Material").
		Order("fecha desc").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (lr *laminacionMovimientoRepo) ListByMaterial(ctx context.Context, tx *gorm.DB, materialID uuid.UUID, limit int) ([]*types.LaminacionMovimiento, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	if limit <= 0 {
		limit = 500
	}
	var results []*types.LaminacionMovimiento
	if err := transaction.WithContext(ctx).
		Where("material_id = ?", materialID).
		Order("fecha desc").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
