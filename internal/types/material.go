package types

import (
	"time"

	"github.com/google/uuid"
)

// Material is a pañol (tool-crib) stock item. StockActual is a
// denormalized counter kept in sync inside the movement transaction.
type Material struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Nombre      string    `gorm:"not null;column:nombre;index" json:"nombre"`
	Categoria   string    `gorm:"column:categoria;index" json:"categoria"`
	Unidad      string    `gorm:"column:unidad" json:"unidad"`
	StockActual float64   `gorm:"not null;default:0;column:stock_actual" json:"stock_actual"`
	StockMinimo float64   `gorm:"not null;default:0;column:stock_minimo" json:"stock_minimo"`
	Activo      bool      `gorm:"not null;default:true;column:activo" json:"activo"`
	CreatedAt   time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Material) TableName() string { return "materiales" }

// Movimiento is one row of the append-only pañol ledger.
type Movimiento struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	MaterialID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"material_id"`
	Material     *Material      `gorm:"constraint:OnDelete:CASCADE;foreignKey:MaterialID;references:ID" json:"material,omitempty"`
	Tipo         MovimientoTipo `gorm:"not null;column:tipo" json:"tipo"`
	Cantidad     float64        `gorm:"not null;column:cantidad" json:"cantidad"`
	Proveedor    string         `gorm:"column:proveedor" json:"proveedor"`
	Destinatario string         `gorm:"column:destinatario" json:"destinatario"`
	ObraCodigo   string         `gorm:"column:obra_codigo;index" json:"obra_codigo"`
	Notas        string         `gorm:"column:notas" json:"notas"`
	CreatedByID  uuid.UUID      `gorm:"type:uuid;column:created_by" json:"created_by"`
	CreatedBy    *User          `gorm:"foreignKey:CreatedByID;references:ID" json:"created_by_user,omitempty"`
	Fecha        time.Time      `gorm:"not null;default:now();column:fecha;index" json:"fecha"`
	CreatedAt    time.Time      `gorm:"not null;default:now()" json:"created_at"`
}

func (Movimiento) TableName() string { return "movimientos" }
