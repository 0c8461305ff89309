package types

import (
	"time"
)

// SistemaConfig is a flat clave -> valor(+tipo) store for feature
// toggles and tuning thresholds. Tipo tells consumers how to parse
// Valor: "string", "number" or "bool".
type SistemaConfig struct {
	Clave       string    `gorm:"primaryKey;column:clave" json:"clave"`
	Valor       string    `gorm:"not null;column:valor" json:"valor"`
	Tipo        string    `gorm:"not null;default:'string';column:tipo" json:"tipo"`
	Descripcion string    `gorm:"column:descripcion" json:"descripcion"`
	UpdatedAt   time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (SistemaConfig) TableName() string { return "sistema_config" }

// Config keys the services read. Defaults apply when the row is absent.
const (
	ConfigAlertaTolerancia    = "alerta_tolerancia"      // ratio over estimate before "demorado", default 1.2
	ConfigAlertasActivas      = "alertas_activas"        // master switch for the evaluator, default true
	ConfigDemoraDiasSinAvance = "demora_dias_sin_avance" // days without stage movement before "stalled", default 7
)
