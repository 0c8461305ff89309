package types

import (
	"time"

	"github.com/google/uuid"
)

// LaminacionMaterial has no denormalized stock counter: the lamination
// screen derives stock by folding the movement ledger on every load.
// It stays a separate table from the pañol materials on purpose.
type LaminacionMaterial struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Nombre      string    `gorm:"not null;column:nombre;index" json:"nombre"`
	Categoria   string    `gorm:"column:categoria;index" json:"categoria"`
	Unidad      string    `gorm:"column:unidad" json:"unidad"`
	StockMinimo float64   `gorm:"not null;default:0;column:stock_minimo" json:"stock_minimo"`
	Activo      bool      `gorm:"not null;default:true;column:activo" json:"activo"`
	CreatedAt   time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (LaminacionMaterial) TableName() string { return "laminacion_materiales" }

type LaminacionMovimiento struct {
	ID           uuid.UUID           `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	MaterialID   uuid.UUID           `gorm:"type:uuid;not null;index" json:"material_id"`
	Material     *LaminacionMaterial `gorm:"constraint:OnDelete:CASCADE;foreignKey:MaterialID;references:ID" json:"material,omitempty"`
	Tipo         MovimientoTipo      `gorm:"not null;column:tipo" json:"tipo"`
	Cantidad     float64             `gorm:"not null;column:cantidad" json:"cantidad"`
	Proveedor    string              `gorm:"column:proveedor" json:"proveedor"`
	Destinatario string              `gorm:"column:destinatario" json:"destinatario"`
	ObraCodigo   string              `gorm:"column:obra_codigo;index" json:"obra_codigo"`
	Notas        string              `gorm:"column:notas" json:"notas"`
	CreatedByID  uuid.UUID           `gorm:"type:uuid;column:created_by" json:"created_by"`
	Fecha        time.Time           `gorm:"not null;default:now();column:fecha;index" json:"fecha"`
	CreatedAt    time.Time           `gorm:"not null;default:now()" json:"created_at"`
}

func (LaminacionMovimiento) TableName() string { return "laminacion_movimientos" }
