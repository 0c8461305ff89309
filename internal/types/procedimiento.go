package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ProcedimientoPaso is the element shape stored in the pasos jsonb
// column.
type ProcedimientoPaso struct {
	Orden int    `json:"orden"`
	Texto string `json:"texto"`
}

// Procedimiento is an operating procedure/document. RolesVisibles is a
// jsonb array of role names; an empty array means visible to everyone.
// Archiving flips Activo instead of deleting the row.
type Procedimiento struct {
	ID            uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Titulo        string         `gorm:"not null;column:titulo" json:"titulo"`
	Descripcion   string         `gorm:"column:descripcion" json:"descripcion"`
	Contenido     string         `gorm:"column:contenido;type:text" json:"contenido"`
	Pasos         datatypes.JSON `gorm:"column:pasos;type:jsonb" json:"pasos"`
	RolesVisibles datatypes.JSON `gorm:"column:roles_visibles;type:jsonb" json:"roles_visibles"`
	PDFBucketKey  string         `gorm:"column:pdf_bucket_key" json:"pdf_bucket_key"`
	PDFURL        string         `gorm:"column:pdf_url" json:"pdf_url"`
	Activo        bool           `gorm:"not null;default:true;column:activo;index" json:"activo"`
	CreatedByID   uuid.UUID      `gorm:"type:uuid;column:created_by" json:"created_by"`
	CreatedAt     time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (Procedimiento) TableName() string { return "procedimientos" }
