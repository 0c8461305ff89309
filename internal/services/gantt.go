package services

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/klasea/astillero-backend/internal/types"
)

// StageVisual is the derived display state of one Gantt bar.
type StageVisual string

const (
	StagePendiente  StageVisual = "pendiente"
	StageEnCurso    StageVisual = "en_curso"
	StageDemorado   StageVisual = "demorado"
	StageCompletado StageVisual = "completado"
)

// PercentComplete is round(100*k/N) with N = 0 mapping to 0.
func PercentComplete(completados, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(completados) / float64(total)))
}

// ClassifyStage colors one timeline row. An in-progress stage turns
// demorado when elapsed days exceed tolerancia times the estimate. A stage
// with no estimate can never be late.
func ClassifyStage(estado types.TimelineEstado, fechaInicio *time.Time, diasEstimados, tolerancia float64, now time.Time) StageVisual {
	switch estado {
	case types.TimelineCompletado:
		return StageCompletado
	case types.TimelinePendiente:
		return StagePendiente
	}
	if fechaInicio == nil || diasEstimados <= 0 {
		return StageEnCurso
	}
	elapsed := now.Sub(*fechaInicio).Hours() / 24
	if elapsed > tolerancia*diasEstimados {
		return StageDemorado
	}
	return StageEnCurso
}

// HistoricalStageAverages averages (fecha_fin - fecha_inicio) in days per
// proceso over finished timeline rows. Rows missing either date are skipped.
func HistoricalStageAverages(rows []*types.ObraTimeline) map[uuid.UUID]float64 {
	sums := make(map[uuid.UUID]float64)
	counts := make(map[uuid.UUID]int)
	for _, r := range rows {
		if r.FechaInicio == nil || r.FechaFin == nil {
			continue
		}
		days := r.FechaFin.Sub(*r.FechaInicio).Hours() / 24
		if days < 0 {
			continue
		}
		sums[r.ProcesoID] += days
		counts[r.ProcesoID]++
	}
	out := make(map[uuid.UUID]float64, len(sums))
	for id, sum := range sums {
		out[id] = sum / float64(counts[id])
	}
	return out
}
