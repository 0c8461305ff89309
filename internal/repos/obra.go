package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/klasea/astillero-backend/internal/logger"
	"github.com/klasea/astillero-backend/internal/types"
)

type ObraRepo interface {
	Create(ctx context.Context, tx *gorm.DB, obras []*types.Obra) ([]*types.Obra, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Obra, error)
	GetByCodigo(ctx context.Context, tx *gorm.DB, codigo string) (*types.Obra, error)
	List(ctx context.Context, tx *gorm.DB, estado *types.ObraEstado) ([]*types.Obra, error)
	Update(ctx context.Context, tx *gorm.DB, obra *types.Obra) error
	SetEstado(ctx context.Context, tx *gorm.DB, id uuid.UUID, estado types.ObraEstado, fechaFinReal *time.Time) error
}

type obraRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewObraRepo(db *gorm.DB, baseLog *logger.Logger) ObraRepo {
	return &obraRepo{db: db, log: baseLog.With("repo", "ObraRepo")}
}

func (or *obraRepo) Create(ctx context.Context, tx *gorm.DB, obras []*types.Obra) ([]*types.Obra, error) {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}
	if len(obras) == 0 {
		return []*types.Obra{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&obras).Error; err != nil {
		return nil, err
	}
	return obras, nil
}

func (or *obraRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Obra, error) {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}
	var results []*types.Obra
	if len(ids) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Preload("Linea").
		Where("id IN ?", ids).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (or *obraRepo) GetByCodigo(ctx context.Context, tx *gorm.DB, codigo string) (*types.Obra, error) {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}
	var obra types.Obra
	if err := transaction.WithContext(ctx).
		Preload("Linea").
		Where("codigo = ?", codigo).
		First(&obra).Error; err != nil {
		return nil, err
	}
	return &obra, nil
}

func (or *obraRepo) List(ctx context.Context, tx *gorm.DB, estado *types.ObraEstado) ([]*types.Obra, error) {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}
	q := transaction.WithContext(ctx).Preload("Linea").Where("activo = ?", true)
	if estado != nil {
		q = q.Where("estado = ?", *estado)
	}
	var results []*types.Obra
	if err := q.Order("codigo asc").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (or *obraRepo) Update(ctx context.Context, tx *gorm.DB, obra *types.Obra) error {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Obra{}).
		Where("id = ?", obra.ID).
		Updates(map[string]interface{}{
			"descripcion":        obra.Descripcion,
			"linea_id":           obra.LineaID,
			"fecha_inicio":       obra.FechaInicio,
			"fecha_fin_estimada": obra.FechaFinEstimada,
			"notas":              obra.Notas,
		}).Error
}

func (or *obraRepo) SetEstado(ctx context.Context, tx *gorm.DB, id uuid.UUID, estado types.ObraEstado, fechaFinReal *time.Time) error {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}
	updates := map[string]interface{}{"estado": estado}
	if fechaFinReal != nil {
		updates["fecha_fin_real"] = *fechaFinReal
	}
	return transaction.WithContext(ctx).
		Model(&types.Obra{}).
		Where("id = ?", id).
		Updates(updates).Error
}
