package handlers

import (
	"testing"
	"time"
)

func TestResolveExportRange_DateOnlyHastaIncludesWholeDay(t *testing.T) {
	now := time.Date(2026, time.September, 15, 10, 0, 0, 0, time.UTC)
	hasta, err := parseDateParam("2026-08-31")
	if err != nil {
		t.Fatalf("parseDateParam: %v", err)
	}

	_, gotHasta := resolveExportRange(time.Time{}, hasta, now)

	want := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)
	if !gotHasta.Equal(want) {
		t.Fatalf("hasta bound = %v, want %v", gotHasta, want)
	}
	lastDay := time.Date(2026, time.August, 31, 18, 30, 0, 0, time.UTC)
	if !lastDay.Before(gotHasta) {
		t.Fatalf("movement on %v excluded by bound %v", lastDay, gotHasta)
	}
}

func TestResolveExportRange_Defaults(t *testing.T) {
	now := time.Date(2026, time.August, 31, 12, 0, 0, 0, time.UTC)

	desde, hasta := resolveExportRange(time.Time{}, time.Time{}, now)

	if !hasta.Equal(now) {
		t.Fatalf("hasta = %v, want now %v", hasta, now)
	}
	if !desde.Equal(now.AddDate(0, -1, 0)) {
		t.Fatalf("desde = %v, want a month before hasta", desde)
	}
}

func TestResolveExportRange_ExplicitDesdeKept(t *testing.T) {
	now := time.Date(2026, time.August, 31, 12, 0, 0, 0, time.UTC)
	desde := time.Date(2026, time.July, 1, 0, 0, 0, 0, time.UTC)
	hasta := time.Date(2026, time.July, 31, 0, 0, 0, 0, time.UTC)

	gotDesde, gotHasta := resolveExportRange(desde, hasta, now)

	if !gotDesde.Equal(desde) {
		t.Fatalf("desde changed: got %v, want %v", gotDesde, desde)
	}
	if !gotHasta.Equal(hasta.AddDate(0, 0, 1)) {
		t.Fatalf("hasta = %v, want %v", gotHasta, hasta.AddDate(0, 0, 1))
	}
}
