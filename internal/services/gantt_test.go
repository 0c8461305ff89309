package services

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/klasea/astillero-backend/internal/types"
)

func TestPercentComplete_RoundsToNearest(t *testing.T) {
	if got := PercentComplete(1, 3); got != 33 {
		t.Fatalf("1/3: expected 33 got %d", got)
	}
	if got := PercentComplete(2, 3); got != 67 {
		t.Fatalf("2/3: expected 67 got %d", got)
	}
	if got := PercentComplete(3, 3); got != 100 {
		t.Fatalf("3/3: expected 100 got %d", got)
	}
}

func TestPercentComplete_EmptyTimelineIsZero(t *testing.T) {
	if got := PercentComplete(0, 0); got != 0 {
		t.Fatalf("expected 0 got %d", got)
	}
	if got := PercentComplete(5, -1); got != 0 {
		t.Fatalf("negative total: expected 0 got %d", got)
	}
}

func TestClassifyStage_TerminalStatesIgnoreDates(t *testing.T) {
	now := time.Now()
	old := now.AddDate(0, 0, -100)
	if got := ClassifyStage(types.TimelineCompletado, &old, 1, 1.2, now); got != StageCompletado {
		t.Fatalf("expected completado got %q", got)
	}
	if got := ClassifyStage(types.TimelinePendiente, nil, 10, 1.2, now); got != StagePendiente {
		t.Fatalf("expected pendiente got %q", got)
	}
}

func TestClassifyStage_DemoradoOnlyPastTolerance(t *testing.T) {
	now := time.Now()

	// Estimate 10 days at tolerance 1.2: the threshold sits at 12 days.
	inside := now.AddDate(0, 0, -11)
	if got := ClassifyStage(types.TimelineEnCurso, &inside, 10, 1.2, now); got != StageEnCurso {
		t.Fatalf("11 days elapsed: expected en_curso got %q", got)
	}
	past := now.AddDate(0, 0, -13)
	if got := ClassifyStage(types.TimelineEnCurso, &past, 10, 1.2, now); got != StageDemorado {
		t.Fatalf("13 days elapsed: expected demorado got %q", got)
	}
}

func TestClassifyStage_NoEstimateNeverLate(t *testing.T) {
	now := time.Now()
	old := now.AddDate(0, 0, -365)
	if got := ClassifyStage(types.TimelineEnCurso, &old, 0, 1.2, now); got != StageEnCurso {
		t.Fatalf("zero estimate: expected en_curso got %q", got)
	}
	if got := ClassifyStage(types.TimelineEnCurso, nil, 10, 1.2, now); got != StageEnCurso {
		t.Fatalf("missing start: expected en_curso got %q", got)
	}
}

func TestHistoricalStageAverages_AveragesPerProceso(t *testing.T) {
	procesoA := uuid.New()
	procesoB := uuid.New()
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	days := func(n int) *time.Time {
		d := base.AddDate(0, 0, n)
		return &d
	}
	rows := []*types.ObraTimeline{
		{ProcesoID: procesoA, FechaInicio: days(0), FechaFin: days(4)},
		{ProcesoID: procesoA, FechaInicio: days(0), FechaFin: days(6)},
		{ProcesoID: procesoB, FechaInicio: days(0), FechaFin: days(10)},
		{ProcesoID: procesoB, FechaInicio: nil, FechaFin: days(3)},
		{ProcesoID: procesoB, FechaInicio: days(5), FechaFin: nil},
	}

	avgs := HistoricalStageAverages(rows)
	if got := avgs[procesoA]; got != 5 {
		t.Fatalf("proceso A: expected 5 got %v", got)
	}
	if got := avgs[procesoB]; got != 10 {
		t.Fatalf("proceso B: expected 10 got %v", got)
	}
}

func TestHistoricalStageAverages_SkipsNegativeSpans(t *testing.T) {
	proceso := uuid.New()
	fin := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	inicio := fin.AddDate(0, 0, 5)
	rows := []*types.ObraTimeline{
		{ProcesoID: proceso, FechaInicio: &inicio, FechaFin: &fin},
	}
	if avgs := HistoricalStageAverages(rows); len(avgs) != 0 {
		t.Fatalf("expected no averages, got %v", avgs)
	}
}
