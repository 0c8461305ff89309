package types

import (
	"time"

	"github.com/google/uuid"
)

// Alerta is a system-or-user-raised notice: a stage configured to raise
// one was started, or the periodic evaluator flagged a delayed/stalled
// obra or a purchase action.
type Alerta struct {
	ID           uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Tipo         string          `gorm:"not null;column:tipo;index" json:"tipo"`
	Severidad    AlertaSeveridad `gorm:"not null;default:'info';column:severidad" json:"severidad"`
	Mensaje      string          `gorm:"not null;column:mensaje" json:"mensaje"`
	ObraID       *uuid.UUID      `gorm:"type:uuid;column:obra_id;index" json:"obra_id,omitempty"`
	Obra         *Obra           `gorm:"foreignKey:ObraID;references:ID" json:"obra,omitempty"`
	Resuelta     bool            `gorm:"not null;default:false;column:resuelta;index" json:"resuelta"`
	ResolvedByID *uuid.UUID      `gorm:"type:uuid;column:resolved_by" json:"resolved_by,omitempty"`
	ResolvedAt   *time.Time      `gorm:"column:resolved_at" json:"resolved_at,omitempty"`
	CreatedAt    time.Time       `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"not null;default:now()" json:"updated_at"`
}

func (Alerta) TableName() string { return "alertas" }
