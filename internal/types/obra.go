package types

import (
	"time"

	"github.com/google/uuid"
)

// Obra is one vessel/hull under construction, the central production
// aggregate. Timeline rows, lamination requirements and per-unit
// checklists all hang off its id or codigo.
type Obra struct {
	ID               uuid.UUID        `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Codigo           string           `gorm:"uniqueIndex;not null;column:codigo" json:"codigo"`
	Descripcion      string           `gorm:"column:descripcion" json:"descripcion"`
	Estado           ObraEstado       `gorm:"not null;default:'activa';column:estado;index" json:"estado"`
	LineaID          *uuid.UUID       `gorm:"type:uuid;column:linea_id;index" json:"linea_id,omitempty"`
	Linea            *LineaProduccion `gorm:"foreignKey:LineaID;references:ID" json:"linea,omitempty"`
	FechaInicio      *time.Time       `gorm:"column:fecha_inicio" json:"fecha_inicio,omitempty"`
	FechaFinEstimada *time.Time       `gorm:"column:fecha_fin_estimada" json:"fecha_fin_estimada,omitempty"`
	FechaFinReal     *time.Time       `gorm:"column:fecha_fin_real" json:"fecha_fin_real,omitempty"`
	Notas            string           `gorm:"column:notas" json:"notas"`
	Activo           bool             `gorm:"not null;default:true;column:activo" json:"activo"`
	CreatedAt        time.Time        `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt        time.Time        `gorm:"not null;default:now()" json:"updated_at"`
}

func (Obra) TableName() string { return "obras" }

// ObraTimeline is the per-(obra, proceso) progress record that drives
// the Gantt bars. One row per stage, copied from the line template.
type ObraTimeline struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ObraID       uuid.UUID      `gorm:"type:uuid;not null;index:idx_obra_proceso,unique" json:"obra_id"`
	Obra         *Obra          `gorm:"constraint:OnDelete:CASCADE;foreignKey:ObraID;references:ID" json:"-"`
	ProcesoID    uuid.UUID      `gorm:"type:uuid;not null;index:idx_obra_proceso,unique" json:"proceso_id"`
	Proceso      *LineaProceso  `gorm:"foreignKey:ProcesoID;references:ID" json:"proceso,omitempty"`
	Estado       TimelineEstado `gorm:"not null;default:'pendiente';column:estado;index" json:"estado"`
	FechaInicio  *time.Time     `gorm:"column:fecha_inicio" json:"fecha_inicio,omitempty"`
	FechaFin     *time.Time     `gorm:"column:fecha_fin" json:"fecha_fin,omitempty"`
	AdvancedByID *uuid.UUID     `gorm:"type:uuid;column:advanced_by" json:"advanced_by,omitempty"`
	CreatedAt    time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (ObraTimeline) TableName() string { return "obra_timeline" }
