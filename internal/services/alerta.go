package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/klasea/astillero-backend/internal/logger"
	"github.com/klasea/astillero-backend/internal/repos"
	"github.com/klasea/astillero-backend/internal/requestdata"
	"github.com/klasea/astillero-backend/internal/sse"
	"github.com/klasea/astillero-backend/internal/types"
)

// Evaluator alert types. One open alert per (obra, tipo) at a time.
const (
	AlertaTipoEtapaDemorada = "etapa_demorada"
	AlertaTipoObraSinAvance = "obra_sin_avance"
	AlertaTipoStockCritico  = "stock_critico"
)

type AlertaService interface {
	List(ctx context.Context, resuelta *bool) ([]*types.Alerta, error)
	Resolve(ctx context.Context, id uuid.UUID) error
	CountOpen(ctx context.Context) (int64, error)
	// EvaluateOnce runs one pass of the delay/stall/stock checks.
	EvaluateOnce(ctx context.Context) error
	// RunEvaluator blocks, re-evaluating on the given interval until ctx
	// is cancelled.
	RunEvaluator(ctx context.Context, interval time.Duration)
}

type alertaService struct {
	db            *gorm.DB
	log           *logger.Logger
	alertaRepo    repos.AlertaRepo
	obraRepo      repos.ObraRepo
	timelineRepo  repos.TimelineRepo
	materialRepo  repos.MaterialRepo
	configService ConfigService
	hub           *sse.Hub
}

func NewAlertaService(
	db *gorm.DB,
	log *logger.Logger,
	alertaRepo repos.AlertaRepo,
	obraRepo repos.ObraRepo,
	timelineRepo repos.TimelineRepo,
	materialRepo repos.MaterialRepo,
	configService ConfigService,
	hub *sse.Hub,
) AlertaService {
	return &alertaService{
		db:            db,
		log:           log.With("service", "AlertaService"),
		alertaRepo:    alertaRepo,
		obraRepo:      obraRepo,
		timelineRepo:  timelineRepo,
		materialRepo:  materialRepo,
		configService: configService,
		hub:           hub,
	}
}

func (as *alertaService) List(ctx context.Context, resuelta *bool) ([]*types.Alerta, error) {
	return as.alertaRepo.List(ctx, nil, resuelta)
}

func (as *alertaService) Resolve(ctx context.Context, id uuid.UUID) error {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return fmt.Errorf("no request data found in context")
	}
	if err := as.alertaRepo.Resolve(ctx, nil, id, rd.UserID, time.Now()); err != nil {
		return err
	}
	as.hub.Broadcast(sse.Message{Channel: "alertas", Event: sse.EventAlertasChanged})
	return nil
}

func (as *alertaService) CountOpen(ctx context.Context) (int64, error) {
	return as.alertaRepo.CountOpen(ctx, nil)
}

func (as *alertaService) RunEvaluator(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	as.log.Info("Alert evaluator started", "interval", interval.String())
	for {
		select {
		case <-ctx.Done():
			as.log.Info("Alert evaluator stopped")
			return
		case <-ticker.C:
			if err := as.EvaluateOnce(ctx); err != nil {
				as.log.Warn("Alert evaluation pass failed", "error", err)
			}
		}
	}
}

func (as *alertaService) EvaluateOnce(ctx context.Context) error {
	if !as.configService.AlertasActivas(ctx) {
		return nil
	}

	activa := types.ObraActiva
	var obras []*types.Obra
	var belowMin []*types.Material
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		obras, err = as.obraRepo.List(gctx, nil, &activa)
		return err
	})
	g.Go(func() error {
		var err error
		belowMin, err = as.materialRepo.ListBelowMinimo(gctx, nil)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	tolerancia := as.configService.AlertaTolerancia(ctx)
	diasSinAvance := as.configService.DemoraDiasSinAvance(ctx)
	now := time.Now()
	raised := 0

	for _, obra := range obras {
		timeline, tErr := as.timelineRepo.ListByObra(ctx, nil, obra.ID)
		if tErr != nil {
			as.log.Warn("Failed to load timeline for obra", "obra", obra.Codigo, "error", tErr)
			continue
		}
		for _, entry := range timeline {
			if entry.Proceso == nil {
				continue
			}
			visual := ClassifyStage(entry.Estado, entry.FechaInicio, entry.Proceso.DiasEstimados, tolerancia, now)
			if visual != StageDemorado {
				continue
			}
			mensaje := fmt.Sprintf("La etapa %q de la obra %s está demorada", entry.Proceso.Nombre, obra.Codigo)
			n, rErr := as.raise(ctx, &obra.ID, AlertaTipoEtapaDemorada, types.SeveridadAdvertencia, mensaje)
			if rErr != nil {
				return rErr
			}
			raised += n
		}

		latest, lErr := as.timelineRepo.LatestAdvanceByObra(ctx, nil, obra.ID)
		if lErr != nil {
			as.log.Warn("Failed to load latest advance for obra", "obra", obra.Codigo, "error", lErr)
			continue
		}
		stalledSince := obra.CreatedAt
		if latest != nil {
			stalledSince = *latest
		}
		if now.Sub(stalledSince) > time.Duration(diasSinAvance)*24*time.Hour {
			mensaje := fmt.Sprintf("La obra %s no registra avances hace más de %d días", obra.Codigo, diasSinAvance)
			n, rErr := as.raise(ctx, &obra.ID, AlertaTipoObraSinAvance, types.SeveridadAdvertencia, mensaje)
			if rErr != nil {
				return rErr
			}
			raised += n
		}
	}

	for _, m := range belowMin {
		if types.ClassifyStock(m.StockActual, m.StockMinimo) != types.StockCritico {
			continue
		}
		mensaje := fmt.Sprintf("Stock crítico: %s (%.2f %s)", m.Nombre, m.StockActual, m.Unidad)
		n, rErr := as.raise(ctx, nil, AlertaTipoStockCritico, types.SeveridadCritica, mensaje)
		if rErr != nil {
			return rErr
		}
		raised += n
	}

	if raised > 0 {
		as.hub.Broadcast(sse.Message{Channel: "alertas", Event: sse.EventAlertasChanged})
		as.log.Info("Alert evaluation pass raised alerts", "count", raised)
	}
	return nil
}

func (as *alertaService) raise(ctx context.Context, obraID *uuid.UUID, tipo string, severidad types.AlertaSeveridad, mensaje string) (int, error) {
	open, err := as.alertaRepo.ExistsOpen(ctx, nil, obraID, tipo)
	if err != nil {
		return 0, err
	}
	if open {
		return 0, nil
	}
	_, err = as.alertaRepo.Create(ctx, nil, []*types.Alerta{{
		ID:        uuid.New(),
		Tipo:      tipo,
		Severidad: severidad,
		Mensaje:   mensaje,
		ObraID:    obraID,
	}})
	if err != nil {
		return 0, err
	}
	return 1, nil
}
