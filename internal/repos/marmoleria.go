package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/klasea/astillero-backend/internal/logger"
	"github.com/klasea/astillero-backend/internal/types"
)

type MarmoleriaRepo interface {
	CreateLinea(ctx context.Context, tx *gorm.DB, linea *types.MarmoleriaLinea) error
	ListLineas(ctx context.Context, tx *gorm.DB) ([]*types.MarmoleriaLinea, error)
	DeleteLinea(ctx context.Context, tx *gorm.DB, id uuid.UUID) error

	CreatePiezas(ctx context.Context, tx *gorm.DB, piezas []*types.MarmoleriaPieza) error
	ListPiezas(ctx context.Context, tx *gorm.DB, lineaID uuid.UUID) ([]*types.MarmoleriaPieza, error)
	DeletePieza(ctx context.Context, tx *gorm.DB, id uuid.UUID) error

	CreateUnidad(ctx context.Context, tx *gorm.DB, unidad *types.MarmoleriaUnidad) error
	GetUnidadByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.MarmoleriaUnidad, error)
	ListUnidades(ctx context.Context, tx *gorm.DB, lineaID *uuid.UUID) ([]*types.MarmoleriaUnidad, error)
	DeleteUnidad(ctx context.Context, tx *gorm.DB, id uuid.UUID) error

	CreateUnidadPiezas(ctx context.Context, tx *gorm.DB, piezas []*types.MarmoleriaUnidadPieza) error
	GetUnidadPiezaByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.MarmoleriaUnidadPieza, error)
	UpdateUnidadPieza(ctx context.Context, tx *gorm.DB, pieza *types.MarmoleriaUnidadPieza) error
	DeleteUnidadPieza(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	ListAllUnidadPiezas(ctx context.Context, tx *gorm.DB) ([]*types.MarmoleriaUnidadPieza, error)
}

type marmoleriaRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMarmoleriaRepo(db *gorm.DB, baseLog *logger.Logger) MarmoleriaRepo {
	return &marmoleriaRepo{db: db, log: baseLog.With("repo", "MarmoleriaRepo")}
}

func (mr *marmoleriaRepo) CreateLinea(ctx context.Context, tx *gorm.DB, linea *types.MarmoleriaLinea) error {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	return transaction.WithContext(ctx).Create(linea).Error
}

func (mr *marmoleriaRepo) ListLineas(ctx context.Context, tx *gorm.DB) ([]*types.MarmoleriaLinea, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	var results []*types.MarmoleriaLinea
	if err := transaction.WithContext(ctx).
		Preload("Piezas", func(db *gorm.DB) *gorm.DB { return db.Order("orden asc") }).
		Order("nombre asc").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (mr *marmoleriaRepo) DeleteLinea(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	if err := transaction.WithContext(ctx).
		Where("linea_id = ?", id).
		Delete(&types.MarmoleriaPieza{}).Error; err != nil {
		return err
	}
	return transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.MarmoleriaLinea{}).Error
}

func (mr *marmoleriaRepo) CreatePiezas(ctx context.Context, tx *gorm.DB, piezas []*types.MarmoleriaPieza) error {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	if len(piezas) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).Create(&piezas).Error
}

func (mr *marmoleriaRepo) ListPiezas(ctx context.Context, tx *gorm.DB, lineaID uuid.UUID) ([]*types.MarmoleriaPieza, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	var results []*types.MarmoleriaPieza
	if err := transaction.WithContext(ctx).
		Where("linea_id = ?", lineaID).
		Order("orden asc").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (mr *marmoleriaRepo) DeletePieza(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.MarmoleriaPieza{}).Error
}

func (mr *marmoleriaRepo) CreateUnidad(ctx context.Context, tx *gorm.DB, unidad *types.MarmoleriaUnidad) error {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	return transaction.WithContext(ctx).Create(unidad).Error
}

func (mr *marmoleriaRepo) GetUnidadByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.MarmoleriaUnidad, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	var unidad types.MarmoleriaUnidad
	if err := transaction.WithContext(ctx).
		Preload("Linea").
		Preload("Piezas", func(db *gorm.DB) *gorm.DB { return db.Order("prioridad desc, nombre asc") }).
		Where("id = ?", id).
		First(&unidad).Error; err != nil {
		return nil, err
	}
	return &unidad, nil
}

func (mr *marmoleriaRepo) ListUnidades(ctx context.Context, tx *gorm.DB, lineaID *uuid.UUID) ([]*types.MarmoleriaUnidad, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	q := transaction.WithContext(ctx).
		Preload("Piezas", func(db *gorm.DB) *gorm.DB { return db.Order("prioridad desc, nombre asc") })
	if lineaID != nil {
		q = q.Where("linea_id = ?", *lineaID)
	}
	var results []*types.MarmoleriaUnidad
	if err := q.Order("nombre asc").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (mr *marmoleriaRepo) DeleteUnidad(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	if err := transaction.WithContext(ctx).
		Where("unidad_id = ?", id).
		Delete(&types.MarmoleriaUnidadPieza{}).Error; err != nil {
		return err
	}
	return transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.MarmoleriaUnidad{}).Error
}

func (mr *marmoleriaRepo) CreateUnidadPiezas(ctx context.Context, tx *gorm.DB, piezas []*types.MarmoleriaUnidadPieza) error {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	if len(piezas) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).Create(&piezas).Error
}

func (mr *marmoleriaRepo) GetUnidadPiezaByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.MarmoleriaUnidadPieza, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	var pieza types.MarmoleriaUnidadPieza
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&pieza).Error; err != nil {
		return nil, err
	}
	return &pieza, nil
}

func (mr *marmoleriaRepo) UpdateUnidadPieza(ctx context.Context, tx *gorm.DB, pieza *types.MarmoleriaUnidadPieza) error {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	return transaction.WithContext(ctx).
		Model(&types.MarmoleriaUnidadPieza{}).
		Where("id = ?", pieza.ID).
		Updates(map[string]interface{}{
			"estado":          pieza.Estado,
			"prioridad":       pieza.Prioridad,
			"fecha_enviado":   pieza.FechaEnviado,
			"fecha_devuelto":  pieza.FechaDevuelto,
			"notas":           pieza.Notas,
			"foto_url":        pieza.FotoURL,
			"foto_bucket_key": pieza.FotoBucketKey,
		}).Error
}

func (mr *marmoleriaRepo) DeleteUnidadPieza(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.MarmoleriaUnidadPieza{}).Error
}

func (mr *marmoleriaRepo) ListAllUnidadPiezas(ctx context.Context, tx *gorm.DB) ([]*types.MarmoleriaUnidadPieza, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	var results []*types.MarmoleriaUnidadPieza
	if err := transaction.WithContext(ctx).
		Order("unidad_id, prioridad desc").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
