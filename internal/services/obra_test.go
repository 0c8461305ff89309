package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/klasea/astillero-backend/internal/logger"
	"github.com/klasea/astillero-backend/internal/sse"
	"github.com/klasea/astillero-backend/internal/types"
)

type memoryAlertaRepo struct {
	created    []*types.Alerta
	openByTipo map[string]bool
}

func newMemoryAlertaRepo() *memoryAlertaRepo {
	return &memoryAlertaRepo{openByTipo: make(map[string]bool)}
}

func (r *memoryAlertaRepo) Create(ctx context.Context, tx *gorm.DB, alertas []*types.Alerta) ([]*types.Alerta, error) {
	r.created = append(r.created, alertas...)
	for _, a := range alertas {
		r.openByTipo[a.Tipo] = true
	}
	return alertas, nil
}

func (r *memoryAlertaRepo) List(ctx context.Context, tx *gorm.DB, resuelta *bool) ([]*types.Alerta, error) {
	return r.created, nil
}

func (r *memoryAlertaRepo) Resolve(ctx context.Context, tx *gorm.DB, id uuid.UUID, resolvedBy uuid.UUID, resolvedAt time.Time) error {
	return nil
}

func (r *memoryAlertaRepo) ExistsOpen(ctx context.Context, tx *gorm.DB, obraID *uuid.UUID, tipo string) (bool, error) {
	return r.openByTipo[tipo], nil
}

func (r *memoryAlertaRepo) CountOpen(ctx context.Context, tx *gorm.DB) (int64, error) {
	return int64(len(r.created)), nil
}

func stageAvisoFixture(t *testing.T) (*obraService, *memoryAlertaRepo, *sse.Client) {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	hub := sse.NewHub(log)
	client := hub.NewClient(uuid.New())
	hub.AddChannel(client, "alertas")
	repo := newMemoryAlertaRepo()
	svc := &obraService{
		log:        log.With("service", "ObraService"),
		alertaRepo: repo,
		hub:        hub,
	}
	return svc, repo, client
}

func TestRaiseStageAviso_CreatesAlertWithDefaultsWithoutBroadcasting(t *testing.T) {
	svc, repo, client := stageAvisoFixture(t)
	entry := &types.ObraTimeline{
		ObraID:  uuid.New(),
		Proceso: &types.LineaProceso{Nombre: "Laminado de casco", GeneraAviso: true},
	}

	raised, err := svc.raiseStageAviso(context.Background(), nil, entry)
	if err != nil {
		t.Fatalf("raiseStageAviso: %v", err)
	}
	if !raised {
		t.Fatalf("expected an alert to be raised")
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected 1 alert, got %d", len(repo.created))
	}
	alerta := repo.created[0]
	if alerta.Tipo != "etapa_iniciada" {
		t.Fatalf("tipo = %q, want default etapa_iniciada", alerta.Tipo)
	}
	if alerta.Severidad != types.SeveridadInfo {
		t.Fatalf("severidad = %q, want info", alerta.Severidad)
	}
	if alerta.ObraID == nil || *alerta.ObraID != entry.ObraID {
		t.Fatalf("alert not linked to obra: %v", alerta.ObraID)
	}

	// The write happens inside the caller's transaction. The alertas
	// broadcast must wait until the transaction commits, so nothing may
	// reach subscribers from within this call.
	select {
	case msg := <-client.Outbound:
		t.Fatalf("broadcast fired before commit: %v", msg)
	default:
	}
}

func TestRaiseStageAviso_DedupesOpenAlertPerObraTipo(t *testing.T) {
	svc, repo, _ := stageAvisoFixture(t)
	repo.openByTipo["material_bajo"] = true
	entry := &types.ObraTimeline{
		ObraID: uuid.New(),
		Proceso: &types.LineaProceso{
			Nombre:      "Pintura",
			GeneraAviso: true,
			AvisoTipo:   "material_bajo",
		},
	}

	raised, err := svc.raiseStageAviso(context.Background(), nil, entry)
	if err != nil {
		t.Fatalf("raiseStageAviso: %v", err)
	}
	if raised {
		t.Fatalf("expected dedupe against the open alert")
	}
	if len(repo.created) != 0 {
		t.Fatalf("duplicate alert created: %v", repo.created)
	}
}
