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

type CreateMaterialInput struct {
	Nombre      string  `json:"nombre"`
	Categoria   string  `json:"categoria"`
	Unidad      string  `json:"unidad"`
	StockActual float64 `json:"stock_actual"`
	StockMinimo float64 `json:"stock_minimo"`
}

type UpdateMaterialInput struct {
	Nombre      string  `json:"nombre"`
	Categoria   string  `json:"categoria"`
	Unidad      string  `json:"unidad"`
	StockMinimo float64 `json:"stock_minimo"`
}

type RegisterMovimientoInput struct {
	MaterialID   uuid.UUID            `json:"material_id"`
	Tipo         types.MovimientoTipo `json:"tipo"`
	Cantidad     float64              `json:"cantidad"`
	Proveedor    string               `json:"proveedor"`
	Destinatario string               `json:"destinatario"`
	ObraCodigo   string               `json:"obra_codigo"`
	Notas        string               `json:"notas"`
}

// MaterialConEstado decorates a material row with its derived threshold
// classification for list views.
type MaterialConEstado struct {
	*types.Material
	Estado types.StockStatus `json:"estado"`
}

type MaterialService interface {
	CreateMaterial(ctx context.Context, input CreateMaterialInput) (*types.Material, error)
	UpdateMaterial(ctx context.Context, id uuid.UUID, input UpdateMaterialInput) (*types.Material, error)
	SetActivo(ctx context.Context, id uuid.UUID, activo bool) error
	ListMateriales(ctx context.Context, soloActivos bool) ([]*MaterialConEstado, error)
	RegisterMovimiento(ctx context.Context, input RegisterMovimientoInput) (*types.Movimiento, error)
	ListMovimientos(ctx context.Context, limit int) ([]*types.Movimiento, error)
	ListMovimientosByMaterial(ctx context.Context, materialID uuid.UUID, limit int) ([]*types.Movimiento, error)
	ListBelowMinimo(ctx context.Context) ([]*MaterialConEstado, error)
}

type materialService struct {
	db             *gorm.DB
	log            *logger.Logger
	materialRepo   repos.MaterialRepo
	movimientoRepo repos.MovimientoRepo
	hub            *sse.Hub
}

func NewMaterialService(db *gorm.DB, log *logger.Logger, materialRepo repos.MaterialRepo, movimientoRepo repos.MovimientoRepo, hub *sse.Hub) MaterialService {
	return &materialService{
		db:             db,
		log:            log.With("service", "MaterialService"),
		materialRepo:   materialRepo,
		movimientoRepo: movimientoRepo,
		hub:            hub,
	}
}

func (ms *materialService) CreateMaterial(ctx context.Context, input CreateMaterialInput) (*types.Material, error) {
	nombre := utils.ParseInputString(input.Nombre)
	if nombre == "" {
		return nil, fmt.Errorf("el nombre del material es obligatorio")
	}
	if input.StockActual < 0 || input.StockMinimo < 0 {
		return nil, fmt.Errorf("el stock no puede ser negativo")
	}
	material := &types.Material{
		ID:          uuid.New(),
		Nombre:      nombre,
		Categoria:   utils.ParseInputString(input.Categoria),
		Unidad:      utils.ParseInputString(input.Unidad),
		StockActual: input.StockActual,
		StockMinimo: input.StockMinimo,
		Activo:      true,
	}
	if _, err := ms.materialRepo.Create(ctx, nil, []*types.Material{material}); err != nil {
		return nil, fmt.Errorf("failed to create material: %w", err)
	}
	ms.hub.Broadcast(sse.Message{Channel: "materiales", Event: sse.EventMaterialesChanged})
	return material, nil
}

func (ms *materialService) UpdateMaterial(ctx context.Context, id uuid.UUID, input UpdateMaterialInput) (*types.Material, error) {
	materiales, err := ms.materialRepo.GetByIDs(ctx, nil, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	if len(materiales) == 0 {
		return nil, fmt.Errorf("material no encontrado")
	}
	material := materiales[0]
	if nombre := utils.ParseInputString(input.Nombre); nombre != "" {
		material.Nombre = nombre
	}
	material.Categoria = utils.ParseInputString(input.Categoria)
	material.Unidad = utils.ParseInputString(input.Unidad)
	if input.StockMinimo < 0 {
		return nil, fmt.Errorf("el stock minimo no puede ser negativo")
	}
	material.StockMinimo = input.StockMinimo
	if err := ms.materialRepo.Update(ctx, nil, material); err != nil {
		return nil, err
	}
	ms.hub.Broadcast(sse.Message{Channel: "materiales", Event: sse.EventMaterialesChanged})
	return material, nil
}

func (ms *materialService) SetActivo(ctx context.Context, id uuid.UUID, activo bool) error {
	if err := ms.materialRepo.SetActivo(ctx, nil, id, activo); err != nil {
		return err
	}
	ms.hub.Broadcast(sse.Message{Channel: "materiales", Event: sse.EventMaterialesChanged})
	return nil
}

func (ms *materialService) ListMateriales(ctx context.Context, soloActivos bool) ([]*MaterialConEstado, error) {
	materiales, err := ms.materialRepo.List(ctx, nil, soloActivos)
	if err != nil {
		return nil, err
	}
	return decorateEstados(materiales), nil
}

func (ms *materialService) ListBelowMinimo(ctx context.Context) ([]*MaterialConEstado, error) {
	materiales, err := ms.materialRepo.ListBelowMinimo(ctx, nil)
	if err != nil {
		return nil, err
	}
	return decorateEstados(materiales), nil
}

func decorateEstados(materiales []*types.Material) []*MaterialConEstado {
	out := make([]*MaterialConEstado, 0, len(materiales))
	for _, m := range materiales {
		out = append(out, &MaterialConEstado{
			Material: m,
			Estado:   types.ClassifyStock(m.StockActual, m.StockMinimo),
		})
	}
	return out
}

// RegisterMovimiento appends a ledger row and adjusts the denormalized stock
// counter in one transaction. An egreso that would drive stock negative
// aborts the whole operation; no partial state is left behind.
func (ms *materialService) RegisterMovimiento(ctx context.Context, input RegisterMovimientoInput) (*types.Movimiento, error) {
	if !input.Tipo.Valid() {
		return nil, fmt.Errorf("tipo de movimiento invalido: %q", input.Tipo)
	}
	if input.Cantidad <= 0 {
		return nil, fmt.Errorf("la cantidad debe ser mayor a cero")
	}
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, fmt.Errorf("no request data found in context")
	}

	movimiento := &types.Movimiento{
		ID:           uuid.New(),
		MaterialID:   input.MaterialID,
		Tipo:         input.Tipo,
		Cantidad:     input.Cantidad,
		Proveedor:    utils.ParseInputString(input.Proveedor),
		Destinatario: utils.ParseInputString(input.Destinatario),
		ObraCodigo:   utils.ParseInputString(input.ObraCodigo),
		Notas:        utils.ParseInputString(input.Notas),
		CreatedByID:  rd.UserID,
		Fecha:        time.Now(),
	}

	err := ms.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ms.materialRepo.AdjustStock(ctx, tx, input.MaterialID, input.Tipo.Delta(input.Cantidad)); err != nil {
			return err
		}
		if _, err := ms.movimientoRepo.Create(ctx, tx, []*types.Movimiento{movimiento}); err != nil {
			return fmt.Errorf("failed to create movimiento: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	ms.hub.Broadcast(sse.Message{Channel: "materiales", Event: sse.EventMaterialesChanged})
	ms.hub.Broadcast(sse.Message{Channel: "movimientos", Event: sse.EventMovimientosChanged})
	ms.log.Info("Movimiento registered", "material", input.MaterialID, "tipo", input.Tipo, "cantidad", input.Cantidad)
	return movimiento, nil
}

func (ms *materialService) ListMovimientos(ctx context.Context, limit int) ([]*types.Movimiento, error) {
	return ms.movimientoRepo.ListRecent(ctx, nil, limit)
}

func (ms *materialService) ListMovimientosByMaterial(ctx context.Context, materialID uuid.UUID, limit int) ([]*types.Movimiento, error) {
	return ms.movimientoRepo.ListByMaterial(ctx, nil, materialID, limit)
}
