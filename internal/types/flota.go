package types

import (
	"time"

	"github.com/google/uuid"
)

// FlotaEmbarcacion is a delivered vessel tracked by post-sale: owner and
// last known position for the fleet map.
type FlotaEmbarcacion struct {
	ID               uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Nombre           string    `gorm:"not null;column:nombre" json:"nombre"`
	Propietario      string    `gorm:"column:propietario" json:"propietario"`
	UbicacionGeneral string    `gorm:"column:ubicacion_general" json:"ubicacion_general"`
	UbicacionDetalle string    `gorm:"column:ubicacion_detalle" json:"ubicacion_detalle"`
	Latitud          float64   `gorm:"column:latitud" json:"latitud"`
	Longitud         float64   `gorm:"column:longitud" json:"longitud"`
	CreatedAt        time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt        time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (FlotaEmbarcacion) TableName() string { return "flota_embarcaciones" }
