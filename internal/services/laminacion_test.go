package services

import (
	"testing"

	"github.com/google/uuid"

	"github.com/klasea/astillero-backend/internal/types"
)

func TestFoldLaminacionStock_SumsSignedDeltas(t *testing.T) {
	resina := uuid.New()
	fibra := uuid.New()
	movimientos := []*types.LaminacionMovimiento{
		{MaterialID: resina, Tipo: types.MovimientoIngreso, Cantidad: 20},
		{MaterialID: resina, Tipo: types.MovimientoEgreso, Cantidad: 7.5},
		{MaterialID: fibra, Tipo: types.MovimientoIngreso, Cantidad: 3},
		{MaterialID: resina, Tipo: types.MovimientoEgreso, Cantidad: 2.5},
	}

	stock := FoldLaminacionStock(movimientos)
	if got := stock[resina]; got != 10 {
		t.Fatalf("resina: expected 10 got %v", got)
	}
	if got := stock[fibra]; got != 3 {
		t.Fatalf("fibra: expected 3 got %v", got)
	}
}

func TestFoldLaminacionStock_OrderDoesNotMatter(t *testing.T) {
	material := uuid.New()
	forward := []*types.LaminacionMovimiento{
		{MaterialID: material, Tipo: types.MovimientoIngreso, Cantidad: 5},
		{MaterialID: material, Tipo: types.MovimientoEgreso, Cantidad: 8},
		{MaterialID: material, Tipo: types.MovimientoIngreso, Cantidad: 4},
	}
	reversed := []*types.LaminacionMovimiento{forward[2], forward[1], forward[0]}

	if a, b := FoldLaminacionStock(forward)[material], FoldLaminacionStock(reversed)[material]; a != b {
		t.Fatalf("fold depends on order: %v vs %v", a, b)
	}
}

func TestFoldLaminacionStock_EgresoCanGoNegative(t *testing.T) {
	material := uuid.New()
	movimientos := []*types.LaminacionMovimiento{
		{MaterialID: material, Tipo: types.MovimientoEgreso, Cantidad: 4},
	}
	if got := FoldLaminacionStock(movimientos)[material]; got != -4 {
		t.Fatalf("expected -4 got %v", got)
	}
}

func TestFoldLaminacionStock_EmptyLedger(t *testing.T) {
	if stock := FoldLaminacionStock(nil); len(stock) != 0 {
		t.Fatalf("expected empty map, got %v", stock)
	}
}
