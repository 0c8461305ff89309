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

// The lamination ledger window. Stock is derived from the newest rows only;
// older movements fall out of the fold.
const laminacionFoldWindow = 500

type CreateLaminacionMaterialInput struct {
	Nombre      string  `json:"nombre"`
	Categoria   string  `json:"categoria"`
	Unidad      string  `json:"unidad"`
	StockMinimo float64 `json:"stock_minimo"`
}

type RegisterLaminacionMovimientoInput struct {
	MaterialID   uuid.UUID            `json:"material_id"`
	Tipo         types.MovimientoTipo `json:"tipo"`
	Cantidad     float64              `json:"cantidad"`
	Proveedor    string               `json:"proveedor"`
	Destinatario string               `json:"destinatario"`
	ObraCodigo   string               `json:"obra_codigo"`
	Notas        string               `json:"notas"`
}

// LaminacionStock is a material with its fold-derived stock. Nothing here is
// persisted; the numbers are recomputed from the movement window on demand.
type LaminacionStock struct {
	Material *types.LaminacionMaterial `json:"material"`
	Stock    float64                   `json:"stock"`
	Estado   types.StockStatus         `json:"estado"`
}

type LaminacionService interface {
	CreateMaterial(ctx context.Context, input CreateLaminacionMaterialInput) (*types.LaminacionMaterial, error)
	UpdateMaterial(ctx context.Context, id uuid.UUID, input CreateLaminacionMaterialInput) (*types.LaminacionMaterial, error)
	SetMaterialActivo(ctx context.Context, id uuid.UUID, activo bool) error
	ListStock(ctx context.Context, soloActivos bool) ([]*LaminacionStock, error)
	RegisterMovimiento(ctx context.Context, input RegisterLaminacionMovimientoInput) (*types.LaminacionMovimiento, error)
	ListMovimientos(ctx context.Context, limit int) ([]*types.LaminacionMovimiento, error)
}

type laminacionService struct {
	db             *gorm.DB
	log            *logger.Logger
	materialRepo   repos.LaminacionMaterialRepo
	movimientoRepo repos.LaminacionMovimientoRepo
	hub            *sse.Hub
}

func NewLaminacionService(
	db *gorm.DB,
	log *logger.Logger,
	materialRepo repos.LaminacionMaterialRepo,
	movimientoRepo repos.LaminacionMovimientoRepo,
	hub *sse.Hub,
) LaminacionService {
	return &laminacionService{
		db:             db,
		log:            log.With("service", "LaminacionService"),
		materialRepo:   materialRepo,
		movimientoRepo: movimientoRepo,
		hub:            hub,
	}
}

func (ls *laminacionService) CreateMaterial(ctx context.Context, input CreateLaminacionMaterialInput) (*types.LaminacionMaterial, error) {
	nombre := utils.ParseInputString(input.Nombre)
	if nombre == "" {
		return nil, fmt.Errorf("el nombre del material es obligatorio")
	}
	if input.StockMinimo < 0 {
		return nil, fmt.Errorf("el stock minimo no puede ser negativo")
	}
	material := &types.LaminacionMaterial{
		ID:          uuid.New(),
		Nombre:      nombre,
		Categoria:   utils.ParseInputString(input.Categoria),
		Unidad:      utils.ParseInputString(input.Unidad),
		StockMinimo: input.StockMinimo,
		Activo:      true,
	}
	if _, err := ls.materialRepo.Create(ctx, nil, []*types.LaminacionMaterial{material}); err != nil {
		return nil, fmt.Errorf("failed to create laminacion material: %w", err)
	}
	ls.hub.Broadcast(sse.Message{Channel: "laminacion", Event: sse.EventLaminacionChanged})
	return material, nil
}

func (ls *laminacionService) UpdateMaterial(ctx context.Context, id uuid.UUID, input CreateLaminacionMaterialInput) (*types.LaminacionMaterial, error) {
	materiales, err := ls.materialRepo.GetByIDs(ctx, nil, []uuid.UUID{id})
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
	if err := ls.materialRepo.Update(ctx, nil, material); err != nil {
		return nil, err
	}
	ls.hub.Broadcast(sse.Message{Channel: "laminacion", Event: sse.EventLaminacionChanged})
	return material, nil
}

func (ls *laminacionService) SetMaterialActivo(ctx context.Context, id uuid.UUID, activo bool) error {
	if err := ls.materialRepo.SetActivo(ctx, nil, id, activo); err != nil {
		return err
	}
	ls.hub.Broadcast(sse.Message{Channel: "laminacion", Event: sse.EventLaminacionChanged})
	return nil
}

// FoldLaminacionStock sums signed deltas per material. The result does not
// depend on movement order.
func FoldLaminacionStock(movimientos []*types.LaminacionMovimiento) map[uuid.UUID]float64 {
	stock := make(map[uuid.UUID]float64, len(movimientos))
	for _, m := range movimientos {
		stock[m.MaterialID] += m.Tipo.Delta(m.Cantidad)
	}
	return stock
}

func (ls *laminacionService) ListStock(ctx context.Context, soloActivos bool) ([]*LaminacionStock, error) {
	materiales, err := ls.materialRepo.List(ctx, nil, soloActivos)
	if err != nil {
		return nil, err
	}
	movimientos, err := ls.movimientoRepo.ListRecent(ctx, nil, laminacionFoldWindow)
	if err != nil {
		return nil, err
	}

	stock := FoldLaminacionStock(movimientos)
	out := make([]*LaminacionStock, 0, len(materiales))
	for _, m := range materiales {
		s := stock[m.ID]
		out = append(out, &LaminacionStock{
			Material: m,
			Stock:    s,
			Estado:   types.ClassifyStock(s, m.StockMinimo),
		})
	}
	return out, nil
}

func (ls *laminacionService) RegisterMovimiento(ctx context.Context, input RegisterLaminacionMovimientoInput) (*types.LaminacionMovimiento, error) {
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

	materiales, err := ls.materialRepo.GetByIDs(ctx, nil, []uuid.UUID{input.MaterialID})
	if err != nil {
		return nil, err
	}
	if len(materiales) == 0 {
		return nil, fmt.Errorf("material no encontrado")
	}

	movimiento := &types.LaminacionMovimiento{
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
	if _, err := ls.movimientoRepo.Create(ctx, nil, []*types.LaminacionMovimiento{movimiento}); err != nil {
		return nil, fmt.Errorf("failed to create laminacion movimiento: %w", err)
	}

	ls.hub.Broadcast(sse.Message{Channel: "laminacion", Event: sse.EventLaminacionChanged})
	return movimiento, nil
}

func (ls *laminacionService) ListMovimientos(ctx context.Context, limit int) ([]*types.LaminacionMovimiento, error) {
	return ls.movimientoRepo.ListRecent(ctx, nil, limit)
}
