package services

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"
	"gorm.io/gorm"

	"github.com/klasea/astillero-backend/internal/logger"
	"github.com/klasea/astillero-backend/internal/repos"
	"github.com/klasea/astillero-backend/internal/sse"
	"github.com/klasea/astillero-backend/internal/types"
	"github.com/klasea/astillero-backend/internal/utils"
)

type UpdateUnidadPiezaInput struct {
	Estado        types.MarmoleriaEstado `json:"estado"`
	Prioridad     int                    `json:"prioridad"`
	Notas         string                 `json:"notas"`
	FechaEnviado  *time.Time             `json:"fecha_enviado,omitempty"`
	FechaDevuelto *time.Time             `json:"fecha_devuelto,omitempty"`
}

type MarmoleriaService interface {
	CreateLinea(ctx context.Context, nombre string, piezas []string) (*types.MarmoleriaLinea, error)
	ListLineas(ctx context.Context) ([]*types.MarmoleriaLinea, error)
	DeleteLinea(ctx context.Context, id uuid.UUID) error
	AddPieza(ctx context.Context, lineaID uuid.UUID, nombre string, orden int) (*types.MarmoleriaPieza, error)
	DeletePieza(ctx context.Context, id uuid.UUID) error

	CreateUnidad(ctx context.Context, lineaID uuid.UUID, nombre string, obraID *uuid.UUID) (*types.MarmoleriaUnidad, error)
	GetUnidad(ctx context.Context, id uuid.UUID) (*types.MarmoleriaUnidad, error)
	ListUnidades(ctx context.Context, lineaID *uuid.UUID) ([]*types.MarmoleriaUnidad, error)
	DeleteUnidad(ctx context.Context, id uuid.UUID) error

	UpdateUnidadPieza(ctx context.Context, piezaID uuid.UUID, input UpdateUnidadPiezaInput) (*types.MarmoleriaUnidadPieza, error)
	AttachFoto(ctx context.Context, piezaID uuid.UUID, raw []byte, mimeType string) (*types.MarmoleriaUnidadPieza, error)

	// StatusReportPDF renders the global marble status across all units.
	StatusReportPDF(ctx context.Context) ([]byte, string, error)
}

type marmoleriaService struct {
	db            *gorm.DB
	log           *logger.Logger
	repo          repos.MarmoleriaRepo
	bucketService BucketService
	hub           *sse.Hub
}

func NewMarmoleriaService(db *gorm.DB, log *logger.Logger, repo repos.MarmoleriaRepo, bucketService BucketService, hub *sse.Hub) MarmoleriaService {
	return &marmoleriaService{
		db:            db,
		log:           log.With("service", "MarmoleriaService"),
		repo:          repo,
		bucketService: bucketService,
		hub:           hub,
	}
}

func (ms *marmoleriaService) CreateLinea(ctx context.Context, nombre string, piezas []string) (*types.MarmoleriaLinea, error) {
	nombre = utils.ParseInputString(nombre)
	if nombre == "" {
		return nil, fmt.Errorf("el nombre de la linea es obligatorio")
	}
	linea := &types.MarmoleriaLinea{ID: uuid.New(), Nombre: nombre}
	err := ms.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if cErr := ms.repo.CreateLinea(ctx, tx, linea); cErr != nil {
			return fmt.Errorf("failed to create marmoleria linea: %w", cErr)
		}
		template := make([]*types.MarmoleriaPieza, 0, len(piezas))
		for i, p := range piezas {
			nombrePieza := utils.ParseInputString(p)
			if nombrePieza == "" {
				continue
			}
			template = append(template, &types.MarmoleriaPieza{
				ID:      uuid.New(),
				LineaID: linea.ID,
				Orden:   i,
				Nombre:  nombrePieza,
			})
		}
		if len(template) > 0 {
			if pErr := ms.repo.CreatePiezas(ctx, tx, template); pErr != nil {
				return fmt.Errorf("failed to create piezas: %w", pErr)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	ms.hub.Broadcast(sse.Message{Channel: "marmoleria", Event: sse.EventMarmoleriaChanged})
	return linea, nil
}

func (ms *marmoleriaService) ListLineas(ctx context.Context) ([]*types.MarmoleriaLinea, error) {
	return ms.repo.ListLineas(ctx, nil)
}

func (ms *marmoleriaService) DeleteLinea(ctx context.Context, id uuid.UUID) error {
	if err := ms.repo.DeleteLinea(ctx, nil, id); err != nil {
		return err
	}
	ms.hub.Broadcast(sse.Message{Channel: "marmoleria", Event: sse.EventMarmoleriaChanged})
	return nil
}

func (ms *marmoleriaService) AddPieza(ctx context.Context, lineaID uuid.UUID, nombre string, orden int) (*types.MarmoleriaPieza, error) {
	nombre = utils.ParseInputString(nombre)
	if nombre == "" {
		return nil, fmt.Errorf("el nombre de la pieza es obligatorio")
	}
	pieza := &types.MarmoleriaPieza{
		ID:      uuid.New(),
		LineaID: lineaID,
		Orden:   orden,
		Nombre:  nombre,
	}
	if err := ms.repo.CreatePiezas(ctx, nil, []*types.MarmoleriaPieza{pieza}); err != nil {
		return nil, err
	}
	ms.hub.Broadcast(sse.Message{Channel: "marmoleria", Event: sse.EventMarmoleriaChanged})
	return pieza, nil
}

func (ms *marmoleriaService) DeletePieza(ctx context.Context, id uuid.UUID) error {
	if err := ms.repo.DeletePieza(ctx, nil, id); err != nil {
		return err
	}
	ms.hub.Broadcast(sse.Message{Channel: "marmoleria", Event: sse.EventMarmoleriaChanged})
	return nil
}

// CreateUnidad copies the line's piece template onto the new unit so each
// hull starts with a full Pendiente checklist.
func (ms *marmoleriaService) CreateUnidad(ctx context.Context, lineaID uuid.UUID, nombre string, obraID *uuid.UUID) (*types.MarmoleriaUnidad, error) {
	nombre = utils.ParseInputString(nombre)
	if nombre == "" {
		return nil, fmt.Errorf("el nombre de la unidad es obligatorio")
	}
	unidad := &types.MarmoleriaUnidad{
		ID:      uuid.New(),
		LineaID: lineaID,
		ObraID:  obraID,
		Nombre:  nombre,
	}
	err := ms.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		template, tErr := ms.repo.ListPiezas(ctx, tx, lineaID)
		if tErr != nil {
			return fmt.Errorf("failed to list template piezas: %w", tErr)
		}
		if cErr := ms.repo.CreateUnidad(ctx, tx, unidad); cErr != nil {
			return fmt.Errorf("failed to create unidad: %w", cErr)
		}
		rows := make([]*types.MarmoleriaUnidadPieza, 0, len(template))
		for _, p := range template {
			piezaID := p.ID
			rows = append(rows, &types.MarmoleriaUnidadPieza{
				ID:       uuid.New(),
				UnidadID: unidad.ID,
				PiezaID:  &piezaID,
				Nombre:   p.Nombre,
				Estado:   types.MarmolPendiente,
			})
		}
		if len(rows) > 0 {
			if rErr := ms.repo.CreateUnidadPiezas(ctx, tx, rows); rErr != nil {
				return fmt.Errorf("failed to copy template onto unidad: %w", rErr)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	ms.hub.Broadcast(sse.Message{Channel: "marmoleria", Event: sse.EventMarmoleriaChanged})
	return ms.GetUnidad(ctx, unidad.ID)
}

func (ms *marmoleriaService) GetUnidad(ctx context.Context, id uuid.UUID) (*types.MarmoleriaUnidad, error) {
	unidad, err := ms.repo.GetUnidadByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	if unidad == nil {
		return nil, fmt.Errorf("unidad no encontrada")
	}
	return unidad, nil
}

func (ms *marmoleriaService) ListUnidades(ctx context.Context, lineaID *uuid.UUID) ([]*types.MarmoleriaUnidad, error) {
	return ms.repo.ListUnidades(ctx, nil, lineaID)
}

func (ms *marmoleriaService) DeleteUnidad(ctx context.Context, id uuid.UUID) error {
	if err := ms.repo.DeleteUnidad(ctx, nil, id); err != nil {
		return err
	}
	ms.hub.Broadcast(sse.Message{Channel: "marmoleria", Event: sse.EventMarmoleriaChanged})
	return nil
}

func (ms *marmoleriaService) UpdateUnidadPieza(ctx context.Context, piezaID uuid.UUID, input UpdateUnidadPiezaInput) (*types.MarmoleriaUnidadPieza, error) {
	pieza, err := ms.repo.GetUnidadPiezaByID(ctx, nil, piezaID)
	if err != nil {
		return nil, err
	}
	if pieza == nil {
		return nil, fmt.Errorf("pieza no encontrada")
	}
	if input.Estado != "" {
		if !input.Estado.Valid() {
			return nil, fmt.Errorf("estado de pieza invalido: %q", input.Estado)
		}
		pieza.Estado = input.Estado
		now := time.Now()
		switch input.Estado {
		case types.MarmolEnviado:
			if pieza.FechaEnviado == nil {
				pieza.FechaEnviado = &now
			}
		case types.MarmolRecibido:
			if pieza.FechaDevuelto == nil {
				pieza.FechaDevuelto = &now
			}
		}
	}
	if input.FechaEnviado != nil {
		pieza.FechaEnviado = input.FechaEnviado
	}
	if input.FechaDevuelto != nil {
		pieza.FechaDevuelto = input.FechaDevuelto
	}
	pieza.Prioridad = input.Prioridad
	pieza.Notas = utils.ParseInputString(input.Notas)
	if err := ms.repo.UpdateUnidadPieza(ctx, nil, pieza); err != nil {
		return nil, err
	}
	ms.hub.Broadcast(sse.Message{Channel: "marmoleria", Event: sse.EventMarmoleriaChanged})
	return pieza, nil
}

func (ms *marmoleriaService) AttachFoto(ctx context.Context, piezaID uuid.UUID, raw []byte, mimeType string) (*types.MarmoleriaUnidadPieza, error) {
	if ms.bucketService == nil {
		return nil, fmt.Errorf("almacenamiento de archivos no configurado")
	}
	pieza, err := ms.repo.GetUnidadPiezaByID(ctx, nil, piezaID)
	if err != nil {
		return nil, err
	}
	if pieza == nil {
		return nil, fmt.Errorf("pieza no encontrada")
	}
	oldKey := pieza.FotoBucketKey
	newKey := fmt.Sprintf("marmoleria/%s/%d", piezaID.String(), time.Now().UnixNano())
	if err := ms.bucketService.UploadFile(ctx, newKey, mimeType, bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("failed to upload foto: %w", err)
	}
	pieza.FotoBucketKey = newKey
	pieza.FotoURL = ms.bucketService.GetPublicURL(newKey)
	if err := ms.repo.UpdateUnidadPieza(ctx, nil, pieza); err != nil {
		return nil, err
	}
	if oldKey != "" {
		if dErr := ms.bucketService.DeleteFile(ctx, oldKey); dErr != nil {
			ms.log.Warn("Failed to delete old foto (ignored)", "key", oldKey, "error", dErr)
		}
	}
	ms.hub.Broadcast(sse.Message{Channel: "marmoleria", Event: sse.EventMarmoleriaChanged})
	return pieza, nil
}

func (ms *marmoleriaService) StatusReportPDF(ctx context.Context) ([]byte, string, error) {
	unidades, err := ms.repo.ListUnidades(ctx, nil, nil)
	if err != nil {
		return nil, "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Estado global de marmolería", true)
	translator := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, translator("Klase A - Estado de marmolería"))
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 9)
	pdf.Cell(0, 6, translator(fmt.Sprintf("Generado el %s", time.Now().Format("02/01/2006 15:04"))))
	pdf.Ln(10)

	sort.Slice(unidades, func(i, j int) bool { return unidades[i].Nombre < unidades[j].Nombre })

	for _, unidad := range unidades {
		pdf.SetFont("Helvetica", "B", 12)
		titulo := unidad.Nombre
		if unidad.Linea != nil {
			titulo = fmt.Sprintf("%s (%s)", unidad.Nombre, unidad.Linea.Nombre)
		}
		pdf.Cell(0, 8, translator(titulo))
		pdf.Ln(8)

		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(230, 230, 230)
		pdf.CellFormat(70, 6, translator("Pieza"), "1", 0, "L", true, 0, "")
		pdf.CellFormat(30, 6, translator("Estado"), "1", 0, "L", true, 0, "")
		pdf.CellFormat(25, 6, translator("Enviado"), "1", 0, "L", true, 0, "")
		pdf.CellFormat(25, 6, translator("Devuelto"), "1", 0, "L", true, 0, "")
		pdf.CellFormat(40, 6, translator("Notas"), "1", 1, "L", true, 0, "")

		pdf.SetFont("Helvetica", "", 9)
		for _, pieza := range unidad.Piezas {
			enviado := ""
			if pieza.FechaEnviado != nil {
				enviado = pieza.FechaEnviado.Format("02/01/2006")
			}
			devuelto := ""
			if pieza.FechaDevuelto != nil {
				devuelto = pieza.FechaDevuelto.Format("02/01/2006")
			}
			pdf.CellFormat(70, 6, translator(pieza.Nombre), "1", 0, "L", false, 0, "")
			pdf.CellFormat(30, 6, translator(string(pieza.Estado)), "1", 0, "L", false, 0, "")
			pdf.CellFormat(25, 6, enviado, "1", 0, "L", false, 0, "")
			pdf.CellFormat(25, 6, devuelto, "1", 0, "L", false, 0, "")
			pdf.CellFormat(40, 6, translator(pieza.Notas), "1", 1, "L", false, 0, "")
		}
		pdf.Ln(6)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", fmt.Errorf("failed to render PDF: %w", err)
	}
	filename := fmt.Sprintf("marmoleria_%s.pdf", time.Now().Format("20060102"))
	return buf.Bytes(), filename, nil
}
