package types

import (
	"time"

	"github.com/google/uuid"
)

// MarmoleriaLinea groups a piece template; every unit built on the line
// gets a copy of the template as its checklist.
type MarmoleriaLinea struct {
	ID        uuid.UUID         `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Nombre    string            `gorm:"uniqueIndex;not null;column:nombre" json:"nombre"`
	Piezas    []MarmoleriaPieza `gorm:"foreignKey:LineaID;references:ID" json:"piezas,omitempty"`
	CreatedAt time.Time         `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time         `gorm:"not null;default:now()" json:"updated_at"`
}

func (MarmoleriaLinea) TableName() string { return "marmoleria_lineas" }

// MarmoleriaPieza is one template piece of a line.
type MarmoleriaPieza struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	LineaID   uuid.UUID `gorm:"type:uuid;not null;index" json:"linea_id"`
	Orden     int       `gorm:"not null;default:0;column:orden" json:"orden"`
	Nombre    string    `gorm:"not null;column:nombre" json:"nombre"`
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (MarmoleriaPieza) TableName() string { return "marmoleria_piezas" }

// MarmoleriaUnidad is one vessel on a marble line.
type MarmoleriaUnidad struct {
	ID        uuid.UUID               `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	LineaID   uuid.UUID               `gorm:"type:uuid;not null;index" json:"linea_id"`
	Linea     *MarmoleriaLinea        `gorm:"foreignKey:LineaID;references:ID" json:"linea,omitempty"`
	ObraID    *uuid.UUID              `gorm:"type:uuid;column:obra_id;index" json:"obra_id,omitempty"`
	Nombre    string                  `gorm:"not null;column:nombre" json:"nombre"`
	Piezas    []MarmoleriaUnidadPieza `gorm:"foreignKey:UnidadID;references:ID" json:"piezas,omitempty"`
	CreatedAt time.Time               `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time               `gorm:"not null;default:now()" json:"updated_at"`
}

func (MarmoleriaUnidad) TableName() string { return "marmoleria_unidades" }

// MarmoleriaUnidadPieza is the per-unit checklist row copied from the
// line template when the unit is created.
type MarmoleriaUnidadPieza struct {
	ID            uuid.UUID        `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UnidadID      uuid.UUID        `gorm:"type:uuid;not null;index" json:"unidad_id"`
	PiezaID       *uuid.UUID       `gorm:"type:uuid;column:pieza_id" json:"pieza_id,omitempty"`
	Nombre        string           `gorm:"not null;column:nombre" json:"nombre"`
	Estado        MarmoleriaEstado `gorm:"not null;default:'Pendiente';column:estado;index" json:"estado"`
	Prioridad     int              `gorm:"not null;default:0;column:prioridad" json:"prioridad"`
	FechaEnviado  *time.Time       `gorm:"column:fecha_enviado" json:"fecha_enviado,omitempty"`
	FechaDevuelto *time.Time       `gorm:"column:fecha_devuelto" json:"fecha_devuelto,omitempty"`
	Notas         string           `gorm:"column:notas" json:"notas"`
	FotoURL       string           `gorm:"column:foto_url" json:"foto_url"`
	FotoBucketKey string           `gorm:"column:foto_bucket_key" json:"foto_bucket_key"`
	CreatedAt     time.Time        `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt     time.Time        `gorm:"not null;default:now()" json:"updated_at"`
}

func (MarmoleriaUnidadPieza) TableName() string { return "marmoleria_unidad_piezas" }
