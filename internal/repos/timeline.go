package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/klasea/astillero-backend/internal/logger"
	"github.com/klasea/astillero-backend/internal/types"
)

type TimelineRepo interface {
	Create(ctx context.Context, tx *gorm.DB, entries []*types.ObraTimeline) ([]*types.ObraTimeline, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.ObraTimeline, error)
	ListByObra(ctx context.Context, tx *gorm.DB, obraID uuid.UUID) ([]*types.ObraTimeline, error)
	ListByObras(ctx context.Context, tx *gorm.DB, obraIDs []uuid.UUID) ([]*types.ObraTimeline, error)
	// ListFinished returns rows with both dates set, for the historical
	// per-stage duration average.
	ListFinished(ctx context.Context, tx *gorm.DB) ([]*types.ObraTimeline, error)
	UpdateEstado(ctx context.Context, tx *gorm.DB, id uuid.UUID, estado types.TimelineEstado, fechaInicio, fechaFin *time.Time, advancedBy uuid.UUID) error
	LatestAdvanceByObra(ctx context.Context, tx *gorm.DB, obraID uuid.UUID) (*time.Time, error)
}

type timelineRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTimelineRepo(db *gorm.DB, baseLog *logger.Logger) TimelineRepo {
	return &timelineRepo{db: db, log: baseLog.With("repo", "TimelineRepo")}
}

func (tr *timelineRepo) Create(ctx context.Context, tx *gorm.DB, entries []*types.ObraTimeline) ([]*types.ObraTimeline, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	if len(entries) == 0 {
		return []*types.ObraTimeline{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (tr *timelineRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.ObraTimeline, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	var entry types.ObraTimeline
	if err := transaction.WithContext(ctx).
		Preload("Proceso").
		Where("id = ?", id).
		First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (tr *timelineRepo) ListByObra(ctx context.Context, tx *gorm.DB, obraID uuid.UUID) ([]*types.ObraTimeline, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	var results []*types.ObraTimeline
	if err := transaction.WithContext(ctx).
		Preload("Proceso").
		Where("obra_id = ?", obraID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (tr *timelineRepo) ListByObras(ctx context.Context, tx *gorm.DB, obraIDs []uuid.UUID) ([]*types.ObraTimeline, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	var results []*types.ObraTimeline
	if len(obraIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Preload("Proceso").
		Where("obra_id IN ?", obraIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (tr *timelineRepo) ListFinished(ctx context.Context, tx *gorm.DB) ([]*types.ObraTimeline, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	var results []*types.ObraTimeline
	if err := transaction.WithContext(ctx).
		Where("fecha_inicio IS NOT NULL AND fecha_fin IS NOT NULL").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (tr *timelineRepo) UpdateEstado(ctx context.Context, tx *gorm.DB, id uuid.UUID, estado types.TimelineEstado, fechaInicio, fechaFin *time.Time, advancedBy uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	updates := map[string]interface{}{
		"estado":      estado,
		"advanced_by": advancedBy,
	}
	if fechaInicio != nil {
		updates["fecha_inicio"] = *fechaInicio
	}
	if fechaFin != nil {
		updates["fecha_fin"] = *fechaFin
	}
	return transaction.WithContext(ctx).
		Model(&types.ObraTimeline{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (tr *timelineRepo) LatestAdvanceByObra(ctx context.Context, tx *gorm.DB, obraID uuid.UUID) (*time.Time, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	var entry types.ObraTimeline
	err := transaction.WithContext(ctx).
		Where("obra_id = ? AND (fecha_inicio IS NOT NULL OR fecha_fin IS NOT NULL)", obraID).
		Order("updated_at desc").
		First(&entry).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	if entry.FechaFin != nil {
		return entry.FechaFin, nil
	}
	return entry.FechaInicio, nil
}
