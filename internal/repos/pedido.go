package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/klasea/astillero-backend/internal/logger"
	"github.com/klasea/astillero-backend/internal/types"
)

type PedidoRepo interface {
	Create(ctx context.Context, tx *gorm.DB, pedidos []*types.Pedido) ([]*types.Pedido, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Pedido, error)
	List(ctx context.Context, tx *gorm.DB, estado *types.PedidoEstado) ([]*types.Pedido, error)
	UpdateHeader(ctx context.Context, tx *gorm.DB, pedido *types.Pedido) error
	UpdateEstado(ctx context.Context, tx *gorm.DB, id uuid.UUID, estado types.PedidoEstado, receivedBy *uuid.UUID, receivedAt *time.Time) error
	CountByEstado(ctx context.Context, tx *gorm.DB, estado types.PedidoEstado) (int64, error)
	AddItems(ctx context.Context, tx *gorm.DB, items []*types.PedidoItem) ([]*types.PedidoItem, error)
	DeleteItem(ctx context.Context, tx *gorm.DB, itemID uuid.UUID) error
	FullDelete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type pedidoRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPedidoRepo(db *gorm.DB, baseLog *logger.Logger) PedidoRepo {
	return &pedidoRepo{db: db, log: baseLog.With("repo", "PedidoRepo")}
}

func (pr *pedidoRepo) Create(ctx context.Context, tx *gorm.DB, pedidos []*types.Pedido) ([]*types.Pedido, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	if len(pedidos) == 0 {
		return []*types.Pedido{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&pedidos).Error; err != nil {
		return nil, err
	}
	return pedidos, nil
}

func (pr *pedidoRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Pedido, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var results []*types.Pedido
	if len(ids) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Preload("Items").
		Where("id IN ?", ids).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *pedidoRepo) List(ctx context.Context, tx *gorm.DB, estado *types.PedidoEstado) ([]*types.Pedido, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	q := transaction.WithContext(ctx).Preload("Items")
	if estado != nil {
		q = q.Where("estado = ?", *estado)
	}
	var results []*types.Pedido
	if err := q.Order("created_at desc").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *pedidoRepo) UpdateHeader(ctx context.Context, tx *gorm.DB, pedido *types.Pedido) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Pedido{}).
		Where("id = ?", pedido.ID).
		Updates(map[string]interface{}{
			"numero":    pedido.Numero,
			"proveedor": pedido.Proveedor,
			"nota":      pedido.Nota,
		}).Error
}

func (pr *pedidoRepo) UpdateEstado(ctx context.Context, tx *gorm.DB, id uuid.UUID, estado types.PedidoEstado, receivedBy *uuid.UUID, receivedAt *time.Time) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	updates := map[string]interface{}{"estado": estado}
	if receivedBy != nil {
		updates["received_by"] = *receivedBy
	}
	if receivedAt != nil {
		updates["received_at"] = *receivedAt
	}
	return transaction.WithContext(ctx).
		Model(&types.Pedido{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (pr *pedidoRepo) CountByEstado(ctx context.Context, tx *gorm.DB, estado types.PedidoEstado) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Pedido{}).
		Where("estado = ?", estado).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (pr *pedidoRepo) AddItems(ctx context.Context, tx *gorm.DB, items []*types.PedidoItem) ([]*types.PedidoItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	if len(items) == 0 {
		return []*types.PedidoItem{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (pr *pedidoRepo) DeleteItem(ctx context.Context, tx *gorm.DB, itemID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", itemID).
		Delete(&types.PedidoItem{}).Error
}

func (pr *pedidoRepo) FullDelete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	if err := transaction.WithContext(ctx).
		Where("pedido_id = ?", id).
		Delete(&types.PedidoItem{}).Error; err != nil {
		return err
	}
	return transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.Pedido{}).Error
}
