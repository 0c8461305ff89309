package types

// MovimientoTipo signs a stock movement: ingreso adds, egreso subtracts.
type MovimientoTipo string

const (
	MovimientoIngreso MovimientoTipo = "ingreso"
	MovimientoEgreso  MovimientoTipo = "egreso"
)

func (t MovimientoTipo) Valid() bool {
	return t == MovimientoIngreso || t == MovimientoEgreso
}

// Delta maps a movement of the given quantity onto the signed ledger.
func (t MovimientoTipo) Delta(cantidad float64) float64 {
	if t == MovimientoEgreso {
		return -cantidad
	}
	return cantidad
}

// StockStatus classifies a derived stock level against its minimum.
type StockStatus string

const (
	StockCritico  StockStatus = "CRITICO"
	StockAtencion StockStatus = "ATENCION"
	StockOK       StockStatus = "OK"
)

// ClassifyStock is exhaustive over the real line: zero or negative stock is
// critical, anything at or below the minimum needs attention, the rest is OK.
func ClassifyStock(stock, minimo float64) StockStatus {
	switch {
	case stock <= 0:
		return StockCritico
	case stock <= minimo:
		return StockAtencion
	default:
		return StockOK
	}
}

type PedidoEstado string

const (
	PedidoPedido   PedidoEstado = "pedido"
	PedidoTransito PedidoEstado = "transito"
	PedidoRecibido PedidoEstado = "recibido"
)

func (e PedidoEstado) Valid() bool {
	switch e {
	case PedidoPedido, PedidoTransito, PedidoRecibido:
		return true
	}
	return false
}

// rank orders the pedido lifecycle; estado only moves forward.
func (e PedidoEstado) rank() int {
	switch e {
	case PedidoPedido:
		return 0
	case PedidoTransito:
		return 1
	case PedidoRecibido:
		return 2
	}
	return -1
}

func (e PedidoEstado) CanAdvanceTo(next PedidoEstado) bool {
	return next.Valid() && next.rank() > e.rank()
}

type ObraEstado string

const (
	ObraActiva    ObraEstado = "activa"
	ObraPausada   ObraEstado = "pausada"
	ObraTerminada ObraEstado = "terminada"
	ObraCancelada ObraEstado = "cancelada"
)

func (e ObraEstado) Valid() bool {
	switch e {
	case ObraActiva, ObraPausada, ObraTerminada, ObraCancelada:
		return true
	}
	return false
}

// TimelineEstado is the per-stage progress state. Transitions are
// monotonic: pendiente -> en_curso -> completado.
type TimelineEstado string

const (
	TimelinePendiente  TimelineEstado = "pendiente"
	TimelineEnCurso    TimelineEstado = "en_curso"
	TimelineCompletado TimelineEstado = "completado"
)

func (e TimelineEstado) Valid() bool {
	switch e {
	case TimelinePendiente, TimelineEnCurso, TimelineCompletado:
		return true
	}
	return false
}

func (e TimelineEstado) rank() int {
	switch e {
	case TimelinePendiente:
		return 0
	case TimelineEnCurso:
		return 1
	case TimelineCompletado:
		return 2
	}
	return -1
}

// CanAdvanceTo only admits the single forward step.
func (e TimelineEstado) CanAdvanceTo(next TimelineEstado) bool {
	return next.Valid() && next.rank() == e.rank()+1
}

type AlertaSeveridad string

const (
	SeveridadCritica     AlertaSeveridad = "critica"
	SeveridadAdvertencia AlertaSeveridad = "advertencia"
	SeveridadInfo        AlertaSeveridad = "info"
)

func (s AlertaSeveridad) Valid() bool {
	switch s {
	case SeveridadCritica, SeveridadAdvertencia, SeveridadInfo:
		return true
	}
	return false
}

// MarmoleriaEstado is the per-piece checklist state on the marble side.
type MarmoleriaEstado string

const (
	MarmolPendiente MarmoleriaEstado = "Pendiente"
	MarmolEnviado   MarmoleriaEstado = "Enviado"
	MarmolRecibido  MarmoleriaEstado = "Recibido"
	MarmolNoLleva   MarmoleriaEstado = "No lleva"
	MarmolRehacer   MarmoleriaEstado = "Rehacer"
)

func (e MarmoleriaEstado) Valid() bool {
	switch e {
	case MarmolPendiente, MarmolEnviado, MarmolRecibido, MarmolNoLleva, MarmolRehacer:
		return true
	}
	return false
}

// MuebleEstado is the per-item checklist state on the furniture side.
// It is kept separate from MarmoleriaEstado on purpose: the two shops
// track different lifecycles even though the shapes look similar.
type MuebleEstado string

const (
	MuebleNoEnviado MuebleEstado = "No enviado"
	MuebleParcial   MuebleEstado = "Parcial"
	MuebleCompleto  MuebleEstado = "Completo"
	MuebleRehacer   MuebleEstado = "Rehacer"
)

func (e MuebleEstado) Valid() bool {
	switch e {
	case MuebleNoEnviado, MuebleParcial, MuebleCompleto, MuebleRehacer:
		return true
	}
	return false
}
