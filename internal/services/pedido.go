package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/klasea/astillero-backend/internal/logger"
	"github.com/klasea/astillero-backend/internal/repos"
	"github.com/klasea/astillero-backend/internal/requestdata"
	"github.com/klasea/astillero-backend/internal/sse"
	"github.com/klasea/astillero-backend/internal/types"
	"github.com/klasea/astillero-backend/internal/utils"
)

type PedidoItemInput struct {
	MaterialID  *uuid.UUID `json:"material_id,omitempty"`
	Descripcion string     `json:"descripcion"`
	Cantidad    float64    `json:"cantidad"`
	Unidad      string     `json:"unidad"`
}

type CreatePedidoInput struct {
	Numero    string            `json:"numero"`
	Proveedor string            `json:"proveedor"`
	Nota      string            `json:"nota"`
	Items     []PedidoItemInput `json:"items"`
}

type PedidoService interface {
	CreatePedido(ctx context.Context, input CreatePedidoInput) (*types.Pedido, error)
	GetByID(ctx context.Context, id uuid.UUID) (*types.Pedido, error)
	ListPedidos(ctx context.Context, estado *types.PedidoEstado) ([]*types.Pedido, error)
	CountByEstado(ctx context.Context, estado types.PedidoEstado) (int64, error)
	AdvanceEstado(ctx context.Context, id uuid.UUID, next types.PedidoEstado) (*types.Pedido, error)
	UpdateHeader(ctx context.Context, id uuid.UUID, numero, proveedor, nota string) (*types.Pedido, error)
	AddItem(ctx context.Context, pedidoID uuid.UUID, item PedidoItemInput) (*types.PedidoItem, error)
	DeleteItem(ctx context.Context, pedidoID, itemID uuid.UUID) error
	DeletePedido(ctx context.Context, id uuid.UUID) error
}

type pedidoService struct {
	db         *gorm.DB
	log        *logger.Logger
	pedidoRepo repos.PedidoRepo
	hub        *sse.Hub
}

func NewPedidoService(db *gorm.DB, log *logger.Logger, pedidoRepo repos.PedidoRepo, hub *sse.Hub) PedidoService {
	return &pedidoService{
		db:         db,
		log:        log.With("service", "PedidoService"),
		pedidoRepo: pedidoRepo,
		hub:        hub,
	}
}

func (ps *pedidoService) CreatePedido(ctx context.Context, input CreatePedidoInput) (*types.Pedido, error) {
	numero := utils.ParseInputString(input.Numero)
	proveedor := utils.ParseInputString(input.Proveedor)
	if numero == "" || proveedor == "" {
		return nil, fmt.Errorf("numero y proveedor son obligatorios")
	}
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, fmt.Errorf("no request data found in context")
	}

	pedido := &types.Pedido{
		ID:          uuid.New(),
		Numero:      numero,
		Proveedor:   proveedor,
		Estado:      types.PedidoPedido,
		Nota:        utils.ParseInputString(input.Nota),
		CreatedByID: rd.UserID,
	}

	err := ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, cErr := ps.pedidoRepo.Create(ctx, tx, []*types.Pedido{pedido}); cErr != nil {
			return fmt.Errorf("failed to create pedido: %w", cErr)
		}
		items := make([]*types.PedidoItem, 0, len(input.Items))
		for _, it := range input.Items {
			descripcion := utils.ParseInputString(it.Descripcion)
			if descripcion == "" {
				return fmt.Errorf("cada item necesita una descripcion")
			}
			if it.Cantidad <= 0 {
				return fmt.Errorf("la cantidad del item debe ser mayor a cero")
			}
			items = append(items, &types.PedidoItem{
				ID:          uuid.New(),
				PedidoID:    pedido.ID,
				MaterialID:  it.MaterialID,
				Descripcion: descripcion,
				Cantidad:    it.Cantidad,
				Unidad:      utils.ParseInputString(it.Unidad),
			})
		}
		if len(items) > 0 {
			if _, aErr := ps.pedidoRepo.AddItems(ctx, tx, items); aErr != nil {
				return fmt.Errorf("failed to add pedido items: %w", aErr)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	ps.hub.Broadcast(sse.Message{Channel: "pedidos", Event: sse.EventPedidosChanged})
	return ps.GetByID(ctx, pedido.ID)
}

func (ps *pedidoService) GetByID(ctx context.Context, id uuid.UUID) (*types.Pedido, error) {
	pedidos, err := ps.pedidoRepo.GetByIDs(ctx, nil, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	if len(pedidos) == 0 {
		return nil, fmt.Errorf("pedido no encontrado")
	}
	return pedidos[0], nil
}

func (ps *pedidoService) ListPedidos(ctx context.Context, estado *types.PedidoEstado) ([]*types.Pedido, error) {
	return ps.pedidoRepo.List(ctx, nil, estado)
}

func (ps *pedidoService) CountByEstado(ctx context.Context, estado types.PedidoEstado) (int64, error) {
	return ps.pedidoRepo.CountByEstado(ctx, nil, estado)
}

// AdvanceEstado moves a pedido forward along pedido -> transito -> recibido.
// Backward transitions are rejected. Reaching recibido stamps who received
// it and when.
func (ps *pedidoService) AdvanceEstado(ctx context.Context, id uuid.UUID, next types.PedidoEstado) (*types.Pedido, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, fmt.Errorf("no request data found in context")
	}
	pedido, err := ps.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !pedido.Estado.CanAdvanceTo(next) {
		return nil, fmt.Errorf("transicion de estado invalida: %s -> %s", pedido.Estado, next)
	}

	var receivedBy *uuid.UUID
	var receivedAt *time.Time
	if next == types.PedidoRecibido {
		now := time.Now()
		receivedBy = &rd.UserID
		receivedAt = &now
	}
	if err := ps.pedidoRepo.UpdateEstado(ctx, nil, id, next, receivedBy, receivedAt); err != nil {
		return nil, err
	}

	ps.hub.Broadcast(sse.Message{Channel: "pedidos", Event: sse.EventPedidosChanged})
	ps.log.Info("Pedido advanced", "pedido", id, "estado", next)
	return ps.GetByID(ctx, id)
}

func (ps *pedidoService) UpdateHeader(ctx context.Context, id uuid.UUID, numero, proveedor, nota string) (*types.Pedido, error) {
	pedido, err := ps.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if pedido.Estado == types.PedidoRecibido {
		return nil, fmt.Errorf("un pedido recibido no puede modificarse")
	}
	if n := utils.ParseInputString(numero); n != "" {
		pedido.Numero = n
	}
	if p := utils.ParseInputString(proveedor); p != "" {
		pedido.Proveedor = p
	}
	pedido.Nota = utils.ParseInputString(nota)
	if err := ps.pedidoRepo.UpdateHeader(ctx, nil, pedido); err != nil {
		return nil, err
	}
	ps.hub.Broadcast(sse.Message{Channel: "pedidos", Event: sse.EventPedidosChanged})
	return pedido, nil
}

func (ps *pedidoService) AddItem(ctx context.Context, pedidoID uuid.UUID, item PedidoItemInput) (*types.PedidoItem, error) {
	pedido, err := ps.GetByID(ctx, pedidoID)
	if err != nil {
		return nil, err
	}
	if pedido.Estado == types.PedidoRecibido {
		return nil, fmt.Errorf("un pedido recibido no puede modificarse")
	}
	descripcion := utils.ParseInputString(item.Descripcion)
	if descripcion == "" {
		return nil, fmt.Errorf("la descripcion del item es obligatoria")
	}
	if item.Cantidad <= 0 {
		return nil, fmt.Errorf("la cantidad del item debe ser mayor a cero")
	}
	newItem := &types.PedidoItem{
		ID:          uuid.New(),
		PedidoID:    pedidoID,
		MaterialID:  item.MaterialID,
		Descripcion: descripcion,
		Cantidad:    item.Cantidad,
		Unidad:      utils.ParseInputString(item.Unidad),
	}
	if _, err := ps.pedidoRepo.AddItems(ctx, nil, []*types.PedidoItem{newItem}); err != nil {
		return nil, err
	}
	ps.hub.Broadcast(sse.Message{Channel: "pedidos", Event: sse.EventPedidosChanged})
	return newItem, nil
}

func (ps *pedidoService) DeleteItem(ctx context.Context, pedidoID, itemID uuid.UUID) error {
	pedido, err := ps.GetByID(ctx, pedidoID)
	if err != nil {
		return err
	}
	if pedido.Estado == types.PedidoRecibido {
		return fmt.Errorf("un pedido recibido no puede modificarse")
	}
	if err := ps.pedidoRepo.DeleteItem(ctx, nil, itemID); err != nil {
		return err
	}
	ps.hub.Broadcast(sse.Message{Channel: "pedidos", Event: sse.EventPedidosChanged})
	return nil
}

func (ps *pedidoService) DeletePedido(ctx context.Context, id uuid.UUID) error {
	pedido, err := ps.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if pedido.Estado == types.PedidoRecibido {
		return fmt.Errorf("un pedido recibido no puede eliminarse")
	}
	if err := ps.pedidoRepo.FullDelete(ctx, nil, id); err != nil {
		return err
	}
	ps.hub.Broadcast(sse.Message{Channel: "pedidos", Event: sse.EventPedidosChanged})
	return nil
}
