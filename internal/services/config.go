package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/klasea/astillero-backend/internal/logger"
	"github.com/klasea/astillero-backend/internal/repos"
	"github.com/klasea/astillero-backend/internal/sse"
	"github.com/klasea/astillero-backend/internal/types"
)

// ConfigService reads and writes sistema_config rows. Unknown or malformed
// values fall back to documented defaults, never to an error.
type ConfigService interface {
	List(ctx context.Context) ([]*types.SistemaConfig, error)
	Set(ctx context.Context, clave, valor, tipo, descripcion string) error
	AlertaTolerancia(ctx context.Context) float64
	AlertasActivas(ctx context.Context) bool
	DemoraDiasSinAvance(ctx context.Context) int
}

type configService struct {
	db         *gorm.DB
	log        *logger.Logger
	configRepo repos.SistemaConfigRepo
	hub        *sse.Hub
}

func NewConfigService(db *gorm.DB, log *logger.Logger, configRepo repos.SistemaConfigRepo, hub *sse.Hub) ConfigService {
	return &configService{
		db:         db,
		log:        log.With("service", "ConfigService"),
		configRepo: configRepo,
		hub:        hub,
	}
}

func (cs *configService) List(ctx context.Context) ([]*types.SistemaConfig, error) {
	return cs.configRepo.List(ctx, nil)
}

func (cs *configService) Set(ctx context.Context, clave, valor, tipo, descripcion string) error {
	clave = strings.TrimSpace(clave)
	if clave == "" {
		return fmt.Errorf("clave es obligatoria")
	}
	switch tipo {
	case "number":
		if _, err := strconv.ParseFloat(strings.TrimSpace(valor), 64); err != nil {
			return fmt.Errorf("valor %q no es numerico", valor)
		}
	case "boolean":
		if _, err := strconv.ParseBool(strings.TrimSpace(valor)); err != nil {
			return fmt.Errorf("valor %q no es booleano", valor)
		}
	case "string", "":
	default:
		return fmt.Errorf("tipo %q no soportado", tipo)
	}
	err := cs.configRepo.Upsert(ctx, nil, &types.SistemaConfig{
		Clave:       clave,
		Valor:       strings.TrimSpace(valor),
		Tipo:        tipo,
		Descripcion: descripcion,
	})
	if err != nil {
		return err
	}
	cs.hub.Broadcast(sse.Message{Channel: "config", Event: sse.EventConfigChanged})
	return nil
}

// AlertaTolerancia is the elapsed/estimated ratio above which an in-progress
// stage counts as delayed. Default 1.2.
func (cs *configService) AlertaTolerancia(ctx context.Context) float64 {
	row, err := cs.configRepo.Get(ctx, nil, types.ConfigAlertaTolerancia)
	if err != nil || row == nil {
		return 1.2
	}
	v, pErr := strconv.ParseFloat(strings.TrimSpace(row.Valor), 64)
	if pErr != nil || v <= 0 {
		cs.log.Warn("Invalid alerta_tolerancia value, using default", "valor", row.Valor)
		return 1.2
	}
	return v
}

func (cs *configService) AlertasActivas(ctx context.Context) bool {
	row, err := cs.configRepo.Get(ctx, nil, types.ConfigAlertasActivas)
	if err != nil || row == nil {
		return true
	}
	v, pErr := strconv.ParseBool(strings.TrimSpace(row.Valor))
	if pErr != nil {
		cs.log.Warn("Invalid alertas_activas value, using default", "valor", row.Valor)
		return true
	}
	return v
}

func (cs *configService) DemoraDiasSinAvance(ctx context.Context) int {
	row, err := cs.configRepo.Get(ctx, nil, types.ConfigDemoraDiasSinAvance)
	if err != nil || row == nil {
		return 7
	}
	v, pErr := strconv.Atoi(strings.TrimSpace(row.Valor))
	if pErr != nil || v <= 0 {
		cs.log.Warn("Invalid demora_dias_sin_avance value, using default", "valor", row.Valor)
		return 7
	}
	return v
}
