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
	"github.com/klasea/astillero-backend/internal/utils"
)

type CreateObraInput struct {
	Codigo           string     `json:"codigo"`
	Descripcion      string     `json:"descripcion"`
	LineaID          *uuid.UUID `json:"linea_id,omitempty"`
	FechaInicio      *time.Time `json:"fecha_inicio,omitempty"`
	FechaFinEstimada *time.Time `json:"fecha_fin_estimada,omitempty"`
	Notas            string     `json:"notas"`
}

// TimelineEntryView is one Gantt bar with its derived visual state.
type TimelineEntryView struct {
	Entry         *types.ObraTimeline `json:"entry"`
	Visual        StageVisual         `json:"visual"`
	PromedioDias  float64             `json:"promedio_dias"`
	TienePromedio bool                `json:"tiene_promedio"`
}

// ObraGantt is the full derived view of one obra: its timeline bars,
// percent complete, and the estimated versus elapsed totals.
type ObraGantt struct {
	Obra              *types.Obra          `json:"obra"`
	Timeline          []*TimelineEntryView `json:"timeline"`
	PorcentajeAvance  int                  `json:"porcentaje_avance"`
	DiasEstimados     float64              `json:"dias_estimados"`
	DiasTranscurridos float64              `json:"dias_transcurridos"`
}

type ObraService interface {
	CreateObra(ctx context.Context, input CreateObraInput) (*types.Obra, error)
	GetByID(ctx context.Context, id uuid.UUID) (*types.Obra, error)
	ListObras(ctx context.Context, estado *types.ObraEstado) ([]*types.Obra, error)
	UpdateObra(ctx context.Context, id uuid.UUID, input CreateObraInput) (*types.Obra, error)
	SetEstado(ctx context.Context, id uuid.UUID, estado types.ObraEstado) error
	AssignLinea(ctx context.Context, obraID, lineaID uuid.UUID) error
	AdvanceStage(ctx context.Context, timelineID uuid.UUID, next types.TimelineEstado) (*types.ObraTimeline, error)
	GetGantt(ctx context.Context, obraID uuid.UUID) (*ObraGantt, error)
	ListGantt(ctx context.Context) ([]*ObraGantt, error)
}

type obraService struct {
	db            *gorm.DB
	log           *logger.Logger
	obraRepo      repos.ObraRepo
	timelineRepo  repos.TimelineRepo
	lineaRepo     repos.LineaRepo
	alertaRepo    repos.AlertaRepo
	configService ConfigService
	hub           *sse.Hub
}

func NewObraService(
	db *gorm.DB,
	log *logger.Logger,
	obraRepo repos.ObraRepo,
	timelineRepo repos.TimelineRepo,
	lineaRepo repos.LineaRepo,
	alertaRepo repos.AlertaRepo,
	configService ConfigService,
	hub *sse.Hub,
) ObraService {
	return &obraService{
		db:            db,
		log:           log.With("service", "ObraService"),
		obraRepo:      obraRepo,
		timelineRepo:  timelineRepo,
		lineaRepo:     lineaRepo,
		alertaRepo:    alertaRepo,
		configService: configService,
		hub:           hub,
	}
}

func (os *obraService) CreateObra(ctx context.Context, input CreateObraInput) (*types.Obra, error) {
	codigo := utils.ParseInputString(input.Codigo)
	if codigo == "" {
		return nil, fmt.Errorf("el codigo de la obra es obligatorio")
	}
	existing, gErr := os.obraRepo.GetByCodigo(ctx, nil, codigo)
	if gErr != nil {
		return nil, gErr
	}
	if existing != nil {
		return nil, fmt.Errorf("la obra %q ya existe", codigo)
	}

	obra := &types.Obra{
		ID:               uuid.New(),
		Codigo:           codigo,
		Descripcion:      utils.ParseInputString(input.Descripcion),
		Estado:           types.ObraActiva,
		LineaID:          input.LineaID,
		FechaInicio:      input.FechaInicio,
		FechaFinEstimada: input.FechaFinEstimada,
		Notas:            utils.ParseInputString(input.Notas),
		Activo:           true,
	}

	err := os.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, cErr := os.obraRepo.Create(ctx, tx, []*types.Obra{obra}); cErr != nil {
			return fmt.Errorf("failed to create obra: %w", cErr)
		}
		if input.LineaID != nil {
			if sErr := os.syncTimeline(ctx, tx, obra.ID, *input.LineaID); sErr != nil {
				return sErr
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	os.hub.Broadcast(sse.Message{Channel: "obras", Event: sse.EventObrasChanged})
	return obra, nil
}

// syncTimeline copies the line's active stages onto the obra, skipping
// stages already present so re-assignment never duplicates or resets rows.
func (os *obraService) syncTimeline(ctx context.Context, tx *gorm.DB, obraID, lineaID uuid.UUID) error {
	procesos, pErr := os.lineaRepo.ListProcesos(ctx, tx, lineaID, true)
	if pErr != nil {
		return fmt.Errorf("failed to list procesos: %w", pErr)
	}
	existing, eErr := os.timelineRepo.ListByObra(ctx, tx, obraID)
	if eErr != nil {
		return fmt.Errorf("failed to list timeline: %w", eErr)
	}
	have := make(map[uuid.UUID]bool, len(existing))
	for _, e := range existing {
		have[e.ProcesoID] = true
	}
	entries := make([]*types.ObraTimeline, 0, len(procesos))
	for _, p := range procesos {
		if have[p.ID] {
			continue
		}
		entries = append(entries, &types.ObraTimeline{
			ID:        uuid.New(),
			ObraID:    obraID,
			ProcesoID: p.ID,
			Estado:    types.TimelinePendiente,
		})
	}
	if len(entries) == 0 {
		return nil
	}
	if _, cErr := os.timelineRepo.Create(ctx, tx, entries); cErr != nil {
		return fmt.Errorf("failed to create timeline entries: %w", cErr)
	}
	return nil
}

func (os *obraService) GetByID(ctx context.Context, id uuid.UUID) (*types.Obra, error) {
	obras, err := os.obraRepo.GetByIDs(ctx, nil, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	if len(obras) == 0 {
		return nil, fmt.Errorf("obra no encontrada")
	}
	return obras[0], nil
}

func (os *obraService) ListObras(ctx context.Context, estado *types.ObraEstado) ([]*types.Obra, error) {
	return os.obraRepo.List(ctx, nil, estado)
}

func (os *obraService) UpdateObra(ctx context.Context, id uuid.UUID, input CreateObraInput) (*types.Obra, error) {
	obra, err := os.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if codigo := utils.ParseInputString(input.Codigo); codigo != "" && codigo != obra.Codigo {
		existing, gErr := os.obraRepo.GetByCodigo(ctx, nil, codigo)
		if gErr != nil {
			return nil, gErr
		}
		if existing != nil {
			return nil, fmt.Errorf("la obra %q ya existe", codigo)
		}
		obra.Codigo = codigo
	}
	obra.Descripcion = utils.ParseInputString(input.Descripcion)
	obra.Notas = utils.ParseInputString(input.Notas)
	if input.FechaInicio != nil {
		obra.FechaInicio = input.FechaInicio
	}
	if input.FechaFinEstimada != nil {
		obra.FechaFinEstimada = input.FechaFinEstimada
	}
	if err := os.obraRepo.Update(ctx, nil, obra); err != nil {
		return nil, err
	}
	os.hub.Broadcast(sse.Message{Channel: "obras", Event: sse.EventObrasChanged})
	return obra, nil
}

func (os *obraService) SetEstado(ctx context.Context, id uuid.UUID, estado types.ObraEstado) error {
	if !estado.Valid() {
		return fmt.Errorf("estado de obra invalido: %q", estado)
	}
	var fechaFinReal *time.Time
	if estado == types.ObraTerminada {
		now := time.Now()
		fechaFinReal = &now
	}
	if err := os.obraRepo.SetEstado(ctx, nil, id, estado, fechaFinReal); err != nil {
		return err
	}
	os.hub.Broadcast(sse.Message{Channel: "obras", Event: sse.EventObrasChanged})
	return nil
}

func (os *obraService) AssignLinea(ctx context.Context, obraID, lineaID uuid.UUID) error {
	obra, err := os.GetByID(ctx, obraID)
	if err != nil {
		return err
	}
	err = os.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		obra.LineaID = &lineaID
		if uErr := os.obraRepo.Update(ctx, tx, obra); uErr != nil {
			return uErr
		}
		return os.syncTimeline(ctx, tx, obraID, lineaID)
	})
	if err != nil {
		return err
	}
	os.hub.Broadcast(sse.Message{Channel: "obras", Event: sse.EventObrasChanged})
	os.hub.Broadcast(sse.Message{Channel: "timeline", Event: sse.EventTimelineChanged})
	return nil
}

// AdvanceStage moves one timeline row a single step forward. Starting a
// stage stamps fecha_inicio; completing it stamps fecha_fin. When the
// template stage carries genera_aviso, starting it raises an Alerta.
func (os *obraService) AdvanceStage(ctx context.Context, timelineID uuid.UUID, next types.TimelineEstado) (*types.ObraTimeline, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, fmt.Errorf("no request data found in context")
	}
	entry, err := os.timelineRepo.GetByID(ctx, nil, timelineID)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, fmt.Errorf("etapa no encontrada")
	}
	if !entry.Estado.CanAdvanceTo(next) {
		return nil, fmt.Errorf("transicion de etapa invalida: %s -> %s", entry.Estado, next)
	}

	now := time.Now()
	fechaInicio := entry.FechaInicio
	fechaFin := entry.FechaFin
	switch next {
	case types.TimelineEnCurso:
		fechaInicio = &now
	case types.TimelineCompletado:
		fechaFin = &now
	}

	var avisoRaised bool
	err = os.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if uErr := os.timelineRepo.UpdateEstado(ctx, tx, timelineID, next, fechaInicio, fechaFin, rd.UserID); uErr != nil {
			return uErr
		}
		if next == types.TimelineEnCurso && entry.Proceso != nil && entry.Proceso.GeneraAviso {
			raised, aErr := os.raiseStageAviso(ctx, tx, entry)
			if aErr != nil {
				return aErr
			}
			avisoRaised = raised
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	os.hub.Broadcast(sse.Message{Channel: "timeline", Event: sse.EventTimelineChanged})
	os.hub.Broadcast(sse.Message{Channel: "obras", Event: sse.EventObrasChanged})
	if avisoRaised {
		os.hub.Broadcast(sse.Message{Channel: "alertas", Event: sse.EventAlertasChanged})
	}
	return os.timelineRepo.GetByID(ctx, nil, timelineID)
}

// raiseStageAviso records the configured stage alert inside the caller's
// transaction. It only writes; the alertas broadcast happens after the
// transaction commits, so subscribers never see an event for a row that
// may roll back.
func (os *obraService) raiseStageAviso(ctx context.Context, tx *gorm.DB, entry *types.ObraTimeline) (bool, error) {
	proceso := entry.Proceso
	tipo := proceso.AvisoTipo
	if tipo == "" {
		tipo = "etapa_iniciada"
	}
	mensaje := proceso.AvisoMensaje
	if mensaje == "" {
		mensaje = fmt.Sprintf("Se inició la etapa %q", proceso.Nombre)
	}
	severidad := proceso.AvisoSeveridad
	if !severidad.Valid() {
		severidad = types.SeveridadInfo
	}
	open, exErr := os.alertaRepo.ExistsOpen(ctx, tx, &entry.ObraID, tipo)
	if exErr != nil {
		return false, exErr
	}
	if open {
		return false, nil
	}
	_, cErr := os.alertaRepo.Create(ctx, tx, []*types.Alerta{{
		ID:        uuid.New(),
		Tipo:      tipo,
		Severidad: severidad,
		Mensaje:   mensaje,
		ObraID:    &entry.ObraID,
	}})
	if cErr != nil {
		return false, cErr
	}
	return true, nil
}

func (os *obraService) GetGantt(ctx context.Context, obraID uuid.UUID) (*ObraGantt, error) {
	obra, err := os.GetByID(ctx, obraID)
	if err != nil {
		return nil, err
	}

	var timeline []*types.ObraTimeline
	var finished []*types.ObraTimeline
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var tErr error
		timeline, tErr = os.timelineRepo.ListByObra(gctx, nil, obraID)
		return tErr
	})
	g.Go(func() error {
		var fErr error
		finished, fErr = os.timelineRepo.ListFinished(gctx, nil)
		return fErr
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	tolerancia := os.configService.AlertaTolerancia(ctx)
	return buildGantt(obra, timeline, finished, tolerancia, time.Now()), nil
}

func (os *obraService) ListGantt(ctx context.Context) ([]*ObraGantt, error) {
	activa := types.ObraActiva
	obras, err := os.obraRepo.List(ctx, nil, &activa)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(obras))
	for _, o := range obras {
		ids = append(ids, o.ID)
	}

	var rows []*types.ObraTimeline
	var finished []*types.ObraTimeline
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var tErr error
		rows, tErr = os.timelineRepo.ListByObras(gctx, nil, ids)
		return tErr
	})
	g.Go(func() error {
		var fErr error
		finished, fErr = os.timelineRepo.ListFinished(gctx, nil)
		return fErr
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byObra := make(map[uuid.UUID][]*types.ObraTimeline, len(obras))
	for _, r := range rows {
		byObra[r.ObraID] = append(byObra[r.ObraID], r)
	}

	tolerancia := os.configService.AlertaTolerancia(ctx)
	now := time.Now()
	out := make([]*ObraGantt, 0, len(obras))
	for _, o := range obras {
		out = append(out, buildGantt(o, byObra[o.ID], finished, tolerancia, now))
	}
	return out, nil
}

func buildGantt(obra *types.Obra, timeline, finished []*types.ObraTimeline, tolerancia float64, now time.Time) *ObraGantt {
	promedios := HistoricalStageAverages(finished)

	completados := 0
	var diasEstimados float64
	views := make([]*TimelineEntryView, 0, len(timeline))
	for _, entry := range timeline {
		if entry.Estado == types.TimelineCompletado {
			completados++
		}
		var estimado float64
		if entry.Proceso != nil {
			estimado = entry.Proceso.DiasEstimados
			if entry.Proceso.Activo {
				diasEstimados += estimado
			}
		}
		promedio, tiene := promedios[entry.ProcesoID]
		views = append(views, &TimelineEntryView{
			Entry:         entry,
			Visual:        ClassifyStage(entry.Estado, entry.FechaInicio, estimado, tolerancia, now),
			PromedioDias:  promedio,
			TienePromedio: tiene,
		})
	}

	var transcurridos float64
	if obra.FechaInicio != nil {
		transcurridos = now.Sub(*obra.FechaInicio).Hours() / 24
		if transcurridos < 0 {
			transcurridos = 0
		}
	}

	return &ObraGantt{
		Obra:              obra,
		Timeline:          views,
		PorcentajeAvance:  PercentComplete(completados, len(timeline)),
		DiasEstimados:     diasEstimados,
		DiasTranscurridos: transcurridos,
	}
}
