package types

import (
	"time"

	"github.com/google/uuid"
)

// LineaProduccion is a named, ordered template of stages applied to the
// vessels built on that line.
type LineaProduccion struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Nombre    string         `gorm:"uniqueIndex;not null;column:nombre" json:"nombre"`
	Procesos  []LineaProceso `gorm:"foreignKey:LineaID;references:ID" json:"procesos,omitempty"`
	Activo    bool           `gorm:"not null;default:true;column:activo" json:"activo"`
	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (LineaProduccion) TableName() string { return "lineas_produccion" }

// LineaProceso is one stage of a line template. When GeneraAviso is set,
// starting the stage on any obra raises an Alerta with the configured
// tipo and mensaje.
type LineaProceso struct {
	ID             uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	LineaID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"linea_id"`
	Orden          int             `gorm:"not null;column:orden" json:"orden"`
	Nombre         string          `gorm:"not null;column:nombre" json:"nombre"`
	DiasEstimados  float64         `gorm:"not null;default:0;column:dias_estimados" json:"dias_estimados"`
	Color          string          `gorm:"column:color" json:"color"`
	GeneraAviso    bool            `gorm:"not null;default:false;column:genera_aviso" json:"genera_aviso"`
	AvisoTipo      string          `gorm:"column:aviso_tipo" json:"aviso_tipo"`
	AvisoMensaje   string          `gorm:"column:aviso_mensaje" json:"aviso_mensaje"`
	AvisoSeveridad AlertaSeveridad `gorm:"column:aviso_severidad;default:'info'" json:"aviso_severidad"`
	Activo         bool            `gorm:"not null;default:true;column:activo" json:"activo"`
	CreatedAt      time.Time       `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"not null;default:now()" json:"updated_at"`
}

func (LineaProceso) TableName() string { return "linea_procesos" }
