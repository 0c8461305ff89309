package types

import (
	"time"

	"github.com/google/uuid"
)

type MuebleLinea struct {
	ID        uuid.UUID    `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Nombre    string       `gorm:"uniqueIndex;not null;column:nombre" json:"nombre"`
	Items     []MuebleItem `gorm:"foreignKey:LineaID;references:ID" json:"items,omitempty"`
	CreatedAt time.Time    `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time    `gorm:"not null;default:now()" json:"updated_at"`
}

func (MuebleLinea) TableName() string { return "mueble_lineas" }

// MuebleItem is a catalog entry of a furniture line; the gallery rows
// reference object-storage uploads.
type MuebleItem struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	LineaID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"linea_id"`
	Orden       int            `gorm:"not null;default:0;column:orden" json:"orden"`
	Nombre      string         `gorm:"not null;column:nombre" json:"nombre"`
	Descripcion string         `gorm:"column:descripcion" json:"descripcion"`
	Imagenes    []MuebleImagen `gorm:"foreignKey:ItemID;references:ID" json:"imagenes,omitempty"`
	CreatedAt   time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (MuebleItem) TableName() string { return "mueble_items" }

type MuebleImagen struct {
	ID         uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ItemID     uuid.UUID `gorm:"type:uuid;not null;index" json:"item_id"`
	BucketKey  string    `gorm:"not null;column:bucket_key" json:"bucket_key"`
	URL        string    `gorm:"not null;column:url" json:"url"`
	Nombre     string    `gorm:"column:nombre" json:"nombre"`
	MimeType   string    `gorm:"column:mime_type" json:"mime_type"`
	SizeBytes  int64     `gorm:"column:size_bytes" json:"size_bytes"`
	UploadedBy uuid.UUID `gorm:"type:uuid;column:uploaded_by" json:"uploaded_by"`
	CreatedAt  time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (MuebleImagen) TableName() string { return "mueble_imagenes" }

type MuebleUnidad struct {
	ID        uuid.UUID          `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	LineaID   uuid.UUID          `gorm:"type:uuid;not null;index" json:"linea_id"`
	Linea     *MuebleLinea       `gorm:"foreignKey:LineaID;references:ID" json:"linea,omitempty"`
	ObraID    *uuid.UUID         `gorm:"type:uuid;column:obra_id;index" json:"obra_id,omitempty"`
	Nombre    string             `gorm:"not null;column:nombre" json:"nombre"`
	Items     []MuebleUnidadItem `gorm:"foreignKey:UnidadID;references:ID" json:"items,omitempty"`
	CreatedAt time.Time          `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time          `gorm:"not null;default:now()" json:"updated_at"`
}

func (MuebleUnidad) TableName() string { return "mueble_unidades" }

// MuebleUnidadItem is the per-unit checklist row copied from the line
// catalog when the unit is created.
type MuebleUnidadItem struct {
	ID        uuid.UUID    `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UnidadID  uuid.UUID    `gorm:"type:uuid;not null;index" json:"unidad_id"`
	ItemID    *uuid.UUID   `gorm:"type:uuid;column:item_id" json:"item_id,omitempty"`
	Nombre    string       `gorm:"not null;column:nombre" json:"nombre"`
	Estado    MuebleEstado `gorm:"not null;default:'No enviado';column:estado;index" json:"estado"`
	Notas     string       `gorm:"column:notas" json:"notas"`
	CreatedAt time.Time    `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time    `gorm:"not null;default:now()" json:"updated_at"`
}

func (MuebleUnidadItem) TableName() string { return "mueble_unidad_items" }
