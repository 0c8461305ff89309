package types

import "testing"

func TestClassifyStock_ZeroOrNegativeIsCritico(t *testing.T) {
	if got := ClassifyStock(0, 5); got != StockCritico {
		t.Fatalf("stock 0: expected CRITICO got %q", got)
	}
	if got := ClassifyStock(-3, 5); got != StockCritico {
		t.Fatalf("stock -3: expected CRITICO got %q", got)
	}
}

func TestClassifyStock_AtOrBelowMinimoIsAtencion(t *testing.T) {
	if got := ClassifyStock(5, 5); got != StockAtencion {
		t.Fatalf("stock at minimo: expected ATENCION got %q", got)
	}
	if got := ClassifyStock(1, 5); got != StockAtencion {
		t.Fatalf("stock below minimo: expected ATENCION got %q", got)
	}
}

func TestClassifyStock_AboveMinimoIsOK(t *testing.T) {
	if got := ClassifyStock(5.01, 5); got != StockOK {
		t.Fatalf("expected OK got %q", got)
	}
}

func TestClassifyStock_ZeroMinimoStillFlagsEmptyStock(t *testing.T) {
	if got := ClassifyStock(0, 0); got != StockCritico {
		t.Fatalf("expected CRITICO got %q", got)
	}
	if got := ClassifyStock(1, 0); got != StockOK {
		t.Fatalf("expected OK got %q", got)
	}
}

func TestMovimientoTipoDelta_SignsByTipo(t *testing.T) {
	if got := MovimientoIngreso.Delta(4.5); got != 4.5 {
		t.Fatalf("ingreso: expected 4.5 got %v", got)
	}
	if got := MovimientoEgreso.Delta(4.5); got != -4.5 {
		t.Fatalf("egreso: expected -4.5 got %v", got)
	}
}

func TestPedidoEstadoCanAdvanceTo_OnlyMovesForward(t *testing.T) {
	if !PedidoPedido.CanAdvanceTo(PedidoTransito) {
		t.Fatalf("pedido -> transito should be allowed")
	}
	if !PedidoPedido.CanAdvanceTo(PedidoRecibido) {
		t.Fatalf("pedido -> recibido should be allowed")
	}
	if !PedidoTransito.CanAdvanceTo(PedidoRecibido) {
		t.Fatalf("transito -> recibido should be allowed")
	}
	if PedidoTransito.CanAdvanceTo(PedidoPedido) {
		t.Fatalf("transito -> pedido should be rejected")
	}
	if PedidoRecibido.CanAdvanceTo(PedidoTransito) {
		t.Fatalf("recibido -> transito should be rejected")
	}
	if PedidoPedido.CanAdvanceTo(PedidoEstado("otro")) {
		t.Fatalf("unknown estado should be rejected")
	}
}

func TestTimelineEstadoCanAdvanceTo_SingleStepOnly(t *testing.T) {
	if !TimelinePendiente.CanAdvanceTo(TimelineEnCurso) {
		t.Fatalf("pendiente -> en_curso should be allowed")
	}
	if !TimelineEnCurso.CanAdvanceTo(TimelineCompletado) {
		t.Fatalf("en_curso -> completado should be allowed")
	}
	if TimelinePendiente.CanAdvanceTo(TimelineCompletado) {
		t.Fatalf("pendiente -> completado skips a step, should be rejected")
	}
	if TimelineCompletado.CanAdvanceTo(TimelineEnCurso) {
		t.Fatalf("completado -> en_curso should be rejected")
	}
	if TimelineEnCurso.CanAdvanceTo(TimelineEnCurso) {
		t.Fatalf("no-op advance should be rejected")
	}
}
