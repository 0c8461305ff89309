package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/klasea/astillero-backend/internal/logger"
	"github.com/klasea/astillero-backend/internal/types"
)

type ProcedimientoRepo interface {
	Create(ctx context.Context, tx *gorm.DB, procedimiento *types.Procedimiento) error
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Procedimiento, error)
	List(ctx context.Context, tx *gorm.DB, soloActivos bool) ([]*types.Procedimiento, error)
	Update(ctx context.Context, tx *gorm.DB, procedimiento *types.Procedimiento) error
	SetActivo(ctx context.Context, tx *gorm.DB, id uuid.UUID, activo bool) error
	UpdatePDF(ctx context.Context, tx *gorm.DB, id uuid.UUID, bucketKey, url string) error
}

type procedimientoRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProcedimientoRepo(db *gorm.DB, baseLog *logger.Logger) ProcedimientoRepo {
	return &procedimientoRepo{db: db, log: baseLog.With("repo", "ProcedimientoRepo")}
}

func (pr *procedimientoRepo) Create(ctx context.Context, tx *gorm.DB, procedimiento *types.Procedimiento) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	return transaction.WithContext(ctx).Create(procedimiento).Error
}

func (pr *procedimientoRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Procedimiento, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var procedimiento types.Procedimiento
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&procedimiento).Error; err != nil {
		return nil, err
	}
	return &procedimiento, nil
}

func (pr *procedimientoRepo) List(ctx context.Context, tx *gorm.DB, soloActivos bool) ([]*types.Procedimiento, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	q := transaction.WithContext(ctx).Model(&types.Procedimiento{})
	if soloActivos {
		q = q.Where("activo = ?", true)
	}
	var results []*types.Procedimiento
	if err := q.Order("titulo asc").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *procedimientoRepo) Update(ctx context.Context, tx *gorm.DB, procedimiento *types.Procedimiento) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Procedimiento{}).
		Where("id = ?", procedimiento.ID).
		Updates(map[string]interface{}{
			"titulo":         procedimiento.Titulo,
			"descripcion":    procedimiento.Descripcion,
			"contenido":      procedimiento.Contenido,
			"pasos":          procedimiento.Pasos,
			"roles_visibles": procedimiento.RolesVisibles,
		}).Error
}

func (pr *procedimientoRepo) SetActivo(ctx context.Context, tx *gorm.DB, id uuid.UUID, activo bool) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Procedimiento{}).
		Where("id = ?", id).
		Update("activo", activo).Error
}

func (pr *procedimientoRepo) UpdatePDF(ctx context.Context, tx *gorm.DB, id uuid.UUID, bucketKey, url string) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Procedimiento{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"pdf_bucket_key": bucketKey, "pdf_url": url}).Error
}
