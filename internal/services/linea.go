package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/klasea/astillero-backend/internal/logger"
	"github.com/klasea/astillero-backend/internal/repos"
	"github.com/klasea/astillero-backend/internal/sse"
	"github.com/klasea/astillero-backend/internal/types"
	"github.com/klasea/astillero-backend/internal/utils"
)

type ProcesoInput struct {
	Orden          int                   `json:"orden"`
	Nombre         string                `json:"nombre"`
	DiasEstimados  float64               `json:"dias_estimados"`
	Color          string                `json:"color"`
	GeneraAviso    bool                  `json:"genera_aviso"`
	AvisoTipo      string                `json:"aviso_tipo"`
	AvisoMensaje   string                `json:"aviso_mensaje"`
	AvisoSeveridad types.AlertaSeveridad `json:"aviso_severidad"`
}

type CreateLineaInput struct {
	Nombre   string         `json:"nombre"`
	Procesos []ProcesoInput `json:"procesos"`
}

type LineaService interface {
	CreateLinea(ctx context.Context, input CreateLineaInput) (*types.LineaProduccion, error)
	GetByID(ctx context.Context, id uuid.UUID) (*types.LineaProduccion, error)
	ListLineas(ctx context.Context, soloActivas bool) ([]*types.LineaProduccion, error)
	RenameLinea(ctx context.Context, id uuid.UUID, nombre string) error
	SetLineaActivo(ctx context.Context, id uuid.UUID, activo bool) error
	AddProceso(ctx context.Context, lineaID uuid.UUID, input ProcesoInput) (*types.LineaProceso, error)
	UpdateProceso(ctx context.Context, procesoID uuid.UUID, input ProcesoInput) (*types.LineaProceso, error)
	SetProcesoActivo(ctx context.Context, procesoID uuid.UUID, activo bool) error
}

type lineaService struct {
	db        *gorm.DB
	log       *logger.Logger
	lineaRepo repos.LineaRepo
	hub       *sse.Hub
}

func NewLineaService(db *gorm.DB, log *logger.Logger, lineaRepo repos.LineaRepo, hub *sse.Hub) LineaService {
	return &lineaService{
		db:        db,
		log:       log.With("service", "LineaService"),
		lineaRepo: lineaRepo,
		hub:       hub,
	}
}

func buildProceso(lineaID uuid.UUID, input ProcesoInput) (*types.LineaProceso, error) {
	nombre := utils.ParseInputString(input.Nombre)
	if nombre == "" {
		return nil, fmt.Errorf("el nombre del proceso es obligatorio")
	}
	if input.DiasEstimados < 0 {
		return nil, fmt.Errorf("dias estimados no puede ser negativo")
	}
	severidad := input.AvisoSeveridad
	if severidad == "" {
		severidad = types.SeveridadInfo
	}
	if !severidad.Valid() {
		return nil, fmt.Errorf("severidad de aviso invalida: %q", severidad)
	}
	return &types.LineaProceso{
		ID:             uuid.New(),
		LineaID:        lineaID,
		Orden:          input.Orden,
		Nombre:         nombre,
		DiasEstimados:  input.DiasEstimados,
		Color:          utils.ParseInputString(input.Color),
		GeneraAviso:    input.GeneraAviso,
		AvisoTipo:      utils.ParseInputString(input.AvisoTipo),
		AvisoMensaje:   utils.ParseInputString(input.AvisoMensaje),
		AvisoSeveridad: severidad,
		Activo:         true,
	}, nil
}

func (ls *lineaService) CreateLinea(ctx context.Context, input CreateLineaInput) (*types.LineaProduccion, error) {
	nombre := utils.ParseInputString(input.Nombre)
	if nombre == "" {
		return nil, fmt.Errorf("el nombre de la linea es obligatorio")
	}

	linea := &types.LineaProduccion{
		ID:     uuid.New(),
		Nombre: nombre,
		Activo: true,
	}

	err := ls.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, cErr := ls.lineaRepo.Create(ctx, tx, []*types.LineaProduccion{linea}); cErr != nil {
			return fmt.Errorf("failed to create linea: %w", cErr)
		}
		procesos := make([]*types.LineaProceso, 0, len(input.Procesos))
		for _, p := range input.Procesos {
			proceso, bErr := buildProceso(linea.ID, p)
			if bErr != nil {
				return bErr
			}
			procesos = append(procesos, proceso)
		}
		if len(procesos) > 0 {
			if _, pErr := ls.lineaRepo.CreateProcesos(ctx, tx, procesos); pErr != nil {
				return fmt.Errorf("failed to create procesos: %w", pErr)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	ls.hub.Broadcast(sse.Message{Channel: "lineas", Event: sse.EventLineasChanged})
	return ls.GetByID(ctx, linea.ID)
}

func (ls *lineaService) GetByID(ctx context.Context, id uuid.UUID) (*types.LineaProduccion, error) {
	lineas, err := ls.lineaRepo.GetByIDs(ctx, nil, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	if len(lineas) == 0 {
		return nil, fmt.Errorf("linea no encontrada")
	}
	return lineas[0], nil
}

func (ls *lineaService) ListLineas(ctx context.Context, soloActivas bool) ([]*types.LineaProduccion, error) {
	return ls.lineaRepo.List(ctx, nil, soloActivas)
}

func (ls *lineaService) RenameLinea(ctx context.Context, id uuid.UUID, nombre string) error {
	nombre = utils.ParseInputString(nombre)
	if nombre == "" {
		return fmt.Errorf("el nombre de la linea es obligatorio")
	}
	if err := ls.lineaRepo.UpdateNombre(ctx, nil, id, nombre); err != nil {
		return err
	}
	ls.hub.Broadcast(sse.Message{Channel: "lineas", Event: sse.EventLineasChanged})
	return nil
}

func (ls *lineaService) SetLineaActivo(ctx context.Context, id uuid.UUID, activo bool) error {
	if err := ls.lineaRepo.SetActivo(ctx, nil, id, activo); err != nil {
		return err
	}
	ls.hub.Broadcast(sse.Message{Channel: "lineas", Event: sse.EventLineasChanged})
	return nil
}

func (ls *lineaService) AddProceso(ctx context.Context, lineaID uuid.UUID, input ProcesoInput) (*types.LineaProceso, error) {
	if _, err := ls.GetByID(ctx, lineaID); err != nil {
		return nil, err
	}
	proceso, err := buildProceso(lineaID, input)
	if err != nil {
		return nil, err
	}
	if _, err := ls.lineaRepo.CreateProcesos(ctx, nil, []*types.LineaProceso{proceso}); err != nil {
		return nil, err
	}
	ls.hub.Broadcast(sse.Message{Channel: "lineas", Event: sse.EventLineasChanged})
	return proceso, nil
}

// UpdateProceso edits the template only. Timeline rows already copied onto
// obras keep the estimates they were created with.
func (ls *lineaService) UpdateProceso(ctx context.Context, procesoID uuid.UUID, input ProcesoInput) (*types.LineaProceso, error) {
	proceso, err := ls.lineaRepo.GetProcesoByID(ctx, nil, procesoID)
	if err != nil {
		return nil, err
	}
	if proceso == nil {
		return nil, fmt.Errorf("proceso no encontrado")
	}
	if nombre := utils.ParseInputString(input.Nombre); nombre != "" {
		proceso.Nombre = nombre
	}
	if input.DiasEstimados < 0 {
		return nil, fmt.Errorf("dias estimados no puede ser negativo")
	}
	proceso.Orden = input.Orden
	proceso.DiasEstimados = input.DiasEstimados
	proceso.Color = utils.ParseInputString(input.Color)
	proceso.GeneraAviso = input.GeneraAviso
	proceso.AvisoTipo = utils.ParseInputString(input.AvisoTipo)
	proceso.AvisoMensaje = utils.ParseInputString(input.AvisoMensaje)
	if input.AvisoSeveridad != "" {
		if !input.AvisoSeveridad.Valid() {
			return nil, fmt.Errorf("severidad de aviso invalida: %q", input.AvisoSeveridad)
		}
		proceso.AvisoSeveridad = input.AvisoSeveridad
	}
	if err := ls.lineaRepo.UpdateProceso(ctx, nil, proceso); err != nil {
		return nil, err
	}
	ls.hub.Broadcast(sse.Message{Channel: "lineas", Event: sse.EventLineasChanged})
	return proceso, nil
}

func (ls *lineaService) SetProcesoActivo(ctx context.Context, procesoID uuid.UUID, activo bool) error {
	if err := ls.lineaRepo.SetProcesoActivo(ctx, nil, procesoID, activo); err != nil {
		return err
	}
	ls.hub.Broadcast(sse.Message{Channel: "lineas", Event: sse.EventLineasChanged})
	return nil
}
