package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/klasea/astillero-backend/internal/logger"
	"github.com/klasea/astillero-backend/internal/types"
)

type LineaRepo interface {
	Create(ctx context.Context, tx *gorm.DB, lineas []*types.LineaProduccion) ([]*types.LineaProduccion, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.LineaProduccion, error)
	List(ctx context.Context, tx *gorm.DB, soloActivas bool) ([]*types.LineaProduccion, error)
	UpdateNombre(ctx context.Context, tx *gorm.DB, id uuid.UUID, nombre string) error
	SetActivo(ctx context.Context, tx *gorm.DB, id uuid.UUID, activo bool) error

	CreateProcesos(ctx context.Context, tx *gorm.DB, procesos []*types.LineaProceso) ([]*types.LineaProceso, error)
	GetProcesoByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.LineaProceso, error)
	ListProcesos(ctx context.Context, tx *gorm.DB, lineaID uuid.UUID, soloActivos bool) ([]*types.LineaProceso, error)
	UpdateProceso(ctx context.Context, tx *gorm.DB, proceso *types.LineaProceso) error
	SetProcesoActivo(ctx context.Context, tx *gorm.DB, id uuid.UUID, activo bool) error
}

type lineaRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLineaRepo(db *gorm.DB, baseLog *logger.Logger) LineaRepo {
	return &lineaRepo{db: db, log: baseLog.With("repo", "LineaRepo")}
}

func (lr *lineaRepo) Create(ctx context.Context, tx *gorm.DB, lineas []*types.LineaProduccion) ([]*types.LineaProduccion, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	if len(lineas) == 0 {
		return []*types.LineaProduccion{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&lineas).Error; err != nil {
		return nil, err
	}
	return lineas, nil
}

func (lr *lineaRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.LineaProduccion, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	var results []*types.LineaProduccion
	if len(ids) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Preload("Procesos", func(db *gorm.DB) *gorm.DB { return db.Order("orden asc") }).
		Where("id IN ?", ids).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (lr *lineaRepo) List(ctx context.Context, tx *gorm.DB, soloActivas bool) ([]*types.LineaProduccion, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	q := transaction.WithContext(ctx).
		Preload("Procesos", func(db *gorm.DB) *gorm.DB { return db.Order("orden asc") })
	if soloActivas {
		q = q.Where("activo = ?", true)
	}
	var results []*types.LineaProduccion
	if err := q.Order("nombre asc").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (lr *lineaRepo) UpdateNombre(ctx context.Context, tx *gorm.DB, id uuid.UUID, nombre string) error {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	return transaction.WithContext(ctx).
		Model(&types.LineaProduccion{}).
		Where("id = ?", id).
		Update("nombre", nombre).Error
}

func (lr *lineaRepo) SetActivo(ctx context.Context, tx *gorm.DB, id uuid.UUID, activo bool) error {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	return transaction.WithContext(ctx).
		Model(&types.LineaProduccion{}).
		Where("id = ?", id).
		Update("activo", activo).Error
}

func (lr *lineaRepo) CreateProcesos(ctx context.Context, tx *gorm.DB, procesos []*types.LineaProceso) ([]*types.LineaProceso, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	if len(procesos) == 0 {
		return []*types.LineaProceso{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&procesos).Error; err != nil {
		return nil, err
	}
	return procesos, nil
}

func (lr *lineaRepo) GetProcesoByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.LineaProceso, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	var proceso types.LineaProceso
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&proceso).Error; err != nil {
		return nil, err
	}
	return &proceso, nil
}

func (lr *lineaRepo) ListProcesos(ctx context.Context, tx *gorm.DB, lineaID uuid.UUID, soloActivos bool) ([]*types.LineaProceso, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	q := transaction.WithContext(ctx).Where("linea_id = ?", lineaID)
	if soloActivos {
		q = q.Where("activo = ?", true)
	}
	var results []*types.LineaProceso
	if err := q.Order("orden asc").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (lr *lineaRepo) UpdateProceso(ctx context.Context, tx *gorm.DB, proceso *types.LineaProceso) error {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	return transaction.WithContext(ctx).
		Model(&types.LineaProceso{}).
		Where("id = ?", proceso.ID).
		Updates(map[string]interface{}{
			"orden":           proceso.Orden,
			"nombre":          proceso.Nombre,
			"dias_estimados":  proceso.DiasEstimados,
			"color":           proceso.Color,
			"genera_aviso":    proceso.GeneraAviso,
			"aviso_tipo":      proceso.AvisoTipo,
			"aviso_mensaje":   proceso.AvisoMensaje,
			"aviso_severidad": proceso.AvisoSeveridad,
		}).Error
}

func (lr *lineaRepo) SetProcesoActivo(ctx context.Context, tx *gorm.DB, id uuid.UUID, activo bool) error {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	return transaction.WithContext(ctx).
		Model(&types.LineaProceso{}).
		Where("id = ?", id).
		Update("activo", activo).Error
}
