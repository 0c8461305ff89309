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

type FlotaInput struct {
	Nombre           string  `json:"nombre"`
	Propietario      string  `json:"propietario"`
	UbicacionGeneral string  `json:"ubicacion_general"`
	UbicacionDetalle string  `json:"ubicacion_detalle"`
	Latitud          float64 `json:"latitud"`
	Longitud         float64 `json:"longitud"`
}

type FlotaService interface {
	Create(ctx context.Context, input FlotaInput) (*types.FlotaEmbarcacion, error)
	List(ctx context.Context) ([]*types.FlotaEmbarcacion, error)
	Update(ctx context.Context, id uuid.UUID, input FlotaInput) (*types.FlotaEmbarcacion, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type flotaService struct {
	db        *gorm.DB
	log       *logger.Logger
	flotaRepo repos.FlotaRepo
	hub       *sse.Hub
}

func NewFlotaService(db *gorm.DB, log *logger.Logger, flotaRepo repos.FlotaRepo, hub *sse.Hub) FlotaService {
	return &flotaService{
		db:        db,
		log:       log.With("service", "FlotaService"),
		flotaRepo: flotaRepo,
		hub:       hub,
	}
}

func validateCoords(lat, lon float64) error {
	if lat < -90 || lat > 90 {
		return fmt.Errorf("latitud fuera de rango: %f", lat)
	}
	if lon < -180 || lon > 180 {
		return fmt.Errorf("longitud fuera de rango: %f", lon)
	}
	return nil
}

func (fs *flotaService) Create(ctx context.Context, input FlotaInput) (*types.FlotaEmbarcacion, error) {
	nombre := utils.ParseInputString(input.Nombre)
	if nombre == "" {
		return nil, fmt.Errorf("el nombre de la embarcacion es obligatorio")
	}
	if err := validateCoords(input.Latitud, input.Longitud); err != nil {
		return nil, err
	}
	embarcacion := &types.FlotaEmbarcacion{
		ID:               uuid.New(),
		Nombre:           nombre,
		Propietario:      utils.ParseInputString(input.Propietario),
		UbicacionGeneral: utils.ParseInputString(input.UbicacionGeneral),
		UbicacionDetalle: utils.ParseInputString(input.UbicacionDetalle),
		Latitud:          input.Latitud,
		Longitud:         input.Longitud,
	}
	if err := fs.flotaRepo.Create(ctx, nil, embarcacion); err != nil {
		return nil, fmt.Errorf("failed to create embarcacion: %w", err)
	}
	fs.hub.Broadcast(sse.Message{Channel: "flota", Event: sse.EventFlotaChanged})
	return embarcacion, nil
}

func (fs *flotaService) List(ctx context.Context) ([]*types.FlotaEmbarcacion, error) {
	return fs.flotaRepo.List(ctx, nil)
}

func (fs *flotaService) Update(ctx context.Context, id uuid.UUID, input FlotaInput) (*types.FlotaEmbarcacion, error) {
	embarcacion, err := fs.flotaRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	if embarcacion == nil {
		return nil, fmt.Errorf("embarcacion no encontrada")
	}
	if err := validateCoords(input.Latitud, input.Longitud); err != nil {
		return nil, err
	}
	if nombre := utils.ParseInputString(input.Nombre); nombre != "" {
		embarcacion.Nombre = nombre
	}
	embarcacion.Propietario = utils.ParseInputString(input.Propietario)
	embarcacion.UbicacionGeneral = utils.ParseInputString(input.UbicacionGeneral)
	embarcacion.UbicacionDetalle = utils.ParseInputString(input.UbicacionDetalle)
	embarcacion.Latitud = input.Latitud
	embarcacion.Longitud = input.Longitud
	if err := fs.flotaRepo.Update(ctx, nil, embarcacion); err != nil {
		return nil, err
	}
	fs.hub.Broadcast(sse.Message{Channel: "flota", Event: sse.EventFlotaChanged})
	return embarcacion, nil
}

func (fs *flotaService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := fs.flotaRepo.Delete(ctx, nil, id); err != nil {
		return err
	}
	fs.hub.Broadcast(sse.Message{Channel: "flota", Event: sse.EventFlotaChanged})
	return nil
}
