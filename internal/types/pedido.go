package types

import (
	"time"

	"github.com/google/uuid"
)

// Pedido is a purchase order placed with an external provider.
type Pedido struct {
	ID           uuid.UUID    `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Numero       string       `gorm:"not null;column:numero;index" json:"numero"`
	Proveedor    string       `gorm:"not null;column:proveedor" json:"proveedor"`
	Estado       PedidoEstado `gorm:"not null;default:'pedido';column:estado;index" json:"estado"`
	Nota         string       `gorm:"column:nota" json:"nota"`
	CreatedByID  uuid.UUID    `gorm:"type:uuid;column:created_by" json:"created_by"`
	ReceivedByID *uuid.UUID   `gorm:"type:uuid;column:received_by" json:"received_by,omitempty"`
	ReceivedAt   *time.Time   `gorm:"column:received_at" json:"received_at,omitempty"`
	Items        []PedidoItem `gorm:"foreignKey:PedidoID;references:ID" json:"items,omitempty"`
	CreatedAt    time.Time    `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt    time.Time    `gorm:"not null;default:now()" json:"updated_at"`
}

func (Pedido) TableName() string { return "pedidos" }

// PedidoItem is a line item; MaterialID is optional because orders may
// reference materials the crib does not track yet.
type PedidoItem struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	PedidoID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"pedido_id"`
	MaterialID  *uuid.UUID `gorm:"type:uuid;column:material_id" json:"material_id,omitempty"`
	Descripcion string     `gorm:"not null;column:descripcion" json:"descripcion"`
	Cantidad    float64    `gorm:"not null;column:cantidad" json:"cantidad"`
	Unidad      string     `gorm:"column:unidad" json:"unidad"`
	CreatedAt   time.Time  `gorm:"not null;default:now()" json:"created_at"`
}

func (PedidoItem) TableName() string { return "pedido_items" }
