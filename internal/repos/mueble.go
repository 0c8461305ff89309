package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/klasea/astillero-backend/internal/logger"
	"github.com/klasea/astillero-backend/internal/types"
)

type MuebleRepo interface {
	CreateLinea(ctx context.Context, tx *gorm.DB, linea *types.MuebleLinea) error
	ListLineas(ctx context.Context, tx *gorm.DB) ([]*types.MuebleLinea, error)
	DeleteLinea(ctx context.Context, tx *gorm.DB, id uuid.UUID) error

	CreateItems(ctx context.Context, tx *gorm.DB, items []*types.MuebleItem) error
	GetItemByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.MuebleItem, error)
	ListItems(ctx context.Context, tx *gorm.DB, lineaID uuid.UUID) ([]*types.MuebleItem, error)
	UpdateItem(ctx context.Context, tx *gorm.DB, item *types.MuebleItem) error
	DeleteItem(ctx context.Context, tx *gorm.DB, id uuid.UUID) error

	CreateImagen(ctx context.Context, tx *gorm.DB, imagen *types.MuebleImagen) error
	GetImagenByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.MuebleImagen, error)
	DeleteImagen(ctx context.Context, tx *gorm.DB, id uuid.UUID) error

	CreateUnidad(ctx context.Context, tx *gorm.DB, unidad *types.MuebleUnidad) error
	GetUnidadByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.MuebleUnidad, error)
	ListUnidades(ctx context.Context, tx *gorm.DB, lineaID *uuid.UUID) ([]*types.MuebleUnidad, error)
	DeleteUnidad(ctx context.Context, tx *gorm.DB, id uuid.UUID) error

	CreateUnidadItems(ctx context.Context, tx *gorm.DB, items []*types.MuebleUnidadItem) error
	GetUnidadItemByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.MuebleUnidadItem, error)
	UpdateUnidadItem(ctx context.Context, tx *gorm.DB, item *types.MuebleUnidadItem) error
	DeleteUnidadItem(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type muebleRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMuebleRepo(db *gorm.DB, baseLog *logger.Logger) MuebleRepo {
	return &muebleRepo{db: db, log: baseLog.With("repo", "MuebleRepo")}
}

func (mr *muebleRepo) CreateLinea(ctx context.Context, tx *gorm.DB, linea *types.MuebleLinea) error {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	return transaction.WithContext(ctx).Create(linea).Error
}

func (mr *muebleRepo) ListLineas(ctx context.Context, tx *gorm.DB) ([]*types.MuebleLinea, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	var results []*types.MuebleLinea
	if err := transaction.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("orden asc") }).
		Preload("Items.Imagenes").
		Order("nombre asc").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (mr *muebleRepo) DeleteLinea(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.MuebleLinea{}).Error
}

func (mr *muebleRepo) CreateItems(ctx context.Context, tx *gorm.DB, items []*types.MuebleItem) error {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	if len(items) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).Create(&items).Error
}

func (mr *muebleRepo) GetItemByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.MuebleItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	var item types.MuebleItem
	if err := transaction.WithContext(ctx).
		Preload("Imagenes").
		Where("id = ?", id).
		First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (mr *muebleRepo) ListItems(ctx context.Context, tx *gorm.DB, lineaID uuid.UUID) ([]*types.MuebleItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	var results []*types.MuebleItem
	if err := transaction.WithContext(ctx).
		Preload("Imagenes").
		Where("linea_id = ?", lineaID).
		Order("orden asc").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (mr *muebleRepo) UpdateItem(ctx context.Context, tx *gorm.DB, item *types.MuebleItem) error {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	return transaction.WithContext(ctx).
		Model(&types.MuebleItem{}).
		Where("id = ?", item.ID).
		Updates(map[string]interface{}{
			"orden":       item.Orden,
			"nombre":      item.Nombre,
			"descripcion": item.Descripcion,
		}).Error
}

func (mr *muebleRepo) DeleteItem(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	if err := transaction.WithContext(ctx).
		Where("item_id = ?", id).
		Delete(&types.MuebleImagen{}).Error; err != nil {
		return err
	}
	return transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.MuebleItem{}).Error
}

func (mr *muebleRepo) CreateImagen(ctx context.Context, tx *gorm.DB, imagen *types.MuebleImagen) error {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	return transaction.WithContext(ctx).Create(imagen).Error
}

func (mr *muebleRepo) GetImagenByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.MuebleImagen, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	var imagen types.MuebleImagen
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&imagen).Error; err != nil {
		return nil, err
	}
	return &imagen, nil
}

func (mr *muebleRepo) DeleteImagen(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.MuebleImagen{}).Error
}

func (mr *muebleRepo) CreateUnidad(ctx context.Context, tx *gorm.DB, unidad *types.MuebleUnidad) error {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	return transaction.WithContext(ctx).Create(unidad).Error
}

func (mr *muebleRepo) GetUnidadByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.MuebleUnidad, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	var unidad types.MuebleUnidad
	if err := transaction.WithContext(ctx).
		Preload("Linea").
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("nombre asc") }).
		Where("id = ?", id).
		First(&unidad).Error; err != nil {
		return nil, err
	}
	return &unidad, nil
}

func (mr *muebleRepo) ListUnidades(ctx context.Context, tx *gorm.DB, lineaID *uuid.UUID) ([]*types.MuebleUnidad, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	q := transaction.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("nombre asc") })
	if lineaID != nil {
		q = q.Where("linea_id = ?", *lineaID)
	}
	var results []*types.MuebleUnidad
	if err := q.Order("nombre asc").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (mr *muebleRepo) DeleteUnidad(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	if err := transaction.WithContext(ctx).
		Where("unidad_id = ?", id).
		Delete(&types.MuebleUnidadItem{}).Error; err != nil {
		return err
	}
	return transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.MuebleUnidad{}).Error
}

func (mr *muebleRepo) CreateUnidadItems(ctx context.Context, tx *gorm.DB, items []*types.MuebleUnidadItem) error {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	if len(items) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).Create(&items).Error
}

func (mr *muebleRepo) GetUnidadItemByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.MuebleUnidadItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	var item types.MuebleUnidadItem
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (mr *muebleRepo) UpdateUnidadItem(ctx context.Context, tx *gorm.DB, item *types.MuebleUnidadItem) error {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	return transaction.WithContext(ctx).
		Model(&types.MuebleUnidadItem{}).
		Where("id = ?", item.ID).
		Updates(map[string]interface{}{
			"estado": item.Estado,
			"notas":  item.Notas,
		}).Error
}

func (mr *muebleRepo) DeleteUnidadItem(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.MuebleUnidadItem{}).Error
}
