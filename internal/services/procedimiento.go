package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/klasea/astillero-backend/internal/logger"
	"github.com/klasea/astillero-backend/internal/repos"
	"github.com/klasea/astillero-backend/internal/requestdata"
	"github.com/klasea/astillero-backend/internal/sse"
	"github.com/klasea/astillero-backend/internal/types"
	"github.com/klasea/astillero-backend/internal/utils"
)

type ProcedimientoInput struct {
	Titulo        string                    `json:"titulo"`
	Descripcion   string                    `json:"descripcion"`
	Contenido     string                    `json:"contenido"`
	Pasos         []types.ProcedimientoPaso `json:"pasos"`
	RolesVisibles []types.Role              `json:"roles_visibles"`
}

type ProcedimientoService interface {
	Create(ctx context.Context, input ProcedimientoInput) (*types.Procedimiento, error)
	GetByID(ctx context.Context, id uuid.UUID) (*types.Procedimiento, error)
	// ListVisible filters by the caller's role; admins and oficina see
	// everything.
	ListVisible(ctx context.Context) ([]*types.Procedimiento, error)
	ListAll(ctx context.Context, soloActivos bool) ([]*types.Procedimiento, error)
	Update(ctx context.Context, id uuid.UUID, input ProcedimientoInput) (*types.Procedimiento, error)
	Archive(ctx context.Context, id uuid.UUID) error
	AttachPDF(ctx context.Context, id uuid.UUID, raw []byte) (*types.Procedimiento, error)
}

type procedimientoService struct {
	db            *gorm.DB
	log           *logger.Logger
	repo          repos.ProcedimientoRepo
	bucketService BucketService
	hub           *sse.Hub
}

func NewProcedimientoService(db *gorm.DB, log *logger.Logger, repo repos.ProcedimientoRepo, bucketService BucketService, hub *sse.Hub) ProcedimientoService {
	return &procedimientoService{
		db:            db,
		log:           log.With("service", "ProcedimientoService"),
		repo:          repo,
		bucketService: bucketService,
		hub:           hub,
	}
}

func marshalPasos(pasos []types.ProcedimientoPaso) (datatypes.JSON, error) {
	if pasos == nil {
		pasos = []types.ProcedimientoPaso{}
	}
	raw, err := json.Marshal(pasos)
	if err != nil {
		return nil, fmt.Errorf("marshal pasos: %w", err)
	}
	return datatypes.JSON(raw), nil
}

func marshalRoles(roles []types.Role) (datatypes.JSON, error) {
	if roles == nil {
		roles = []types.Role{}
	}
	for _, r := range roles {
		if !r.Valid() {
			return nil, fmt.Errorf("rol invalido en roles_visibles: %q", r)
		}
	}
	raw, err := json.Marshal(roles)
	if err != nil {
		return nil, fmt.Errorf("marshal roles: %w", err)
	}
	return datatypes.JSON(raw), nil
}

// VisibleToRole decodes roles_visibles and applies the visibility rule: an
// empty list means everyone.
func VisibleToRole(p *types.Procedimiento, role types.Role) bool {
	if len(p.RolesVisibles) == 0 {
		return true
	}
	var roles []types.Role
	if err := json.Unmarshal(p.RolesVisibles, &roles); err != nil {
		return true
	}
	if len(roles) == 0 {
		return true
	}
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

func (ps *procedimientoService) Create(ctx context.Context, input ProcedimientoInput) (*types.Procedimiento, error) {
	titulo := utils.ParseInputString(input.Titulo)
	if titulo == "" {
		return nil, fmt.Errorf("el titulo es obligatorio")
	}
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, fmt.Errorf("no request data found in context")
	}
	pasos, err := marshalPasos(input.Pasos)
	if err != nil {
		return nil, err
	}
	roles, err := marshalRoles(input.RolesVisibles)
	if err != nil {
		return nil, err
	}
	procedimiento := &types.Procedimiento{
		ID:            uuid.New(),
		Titulo:        titulo,
		Descripcion:   utils.ParseInputString(input.Descripcion),
		Contenido:     input.Contenido,
		Pasos:         pasos,
		RolesVisibles: roles,
		Activo:        true,
		CreatedByID:   rd.UserID,
	}
	if err := ps.repo.Create(ctx, nil, procedimiento); err != nil {
		return nil, fmt.Errorf("failed to create procedimiento: %w", err)
	}
	ps.hub.Broadcast(sse.Message{Channel: "procedimientos", Event: sse.EventProcedimientosChanged})
	return procedimiento, nil
}

func (ps *procedimientoService) GetByID(ctx context.Context, id uuid.UUID) (*types.Procedimiento, error) {
	procedimiento, err := ps.repo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	if procedimiento == nil {
		return nil, fmt.Errorf("procedimiento no encontrado")
	}
	return procedimiento, nil
}

func (ps *procedimientoService) ListVisible(ctx context.Context) ([]*types.Procedimiento, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, fmt.Errorf("no request data found in context")
	}
	all, err := ps.repo.List(ctx, nil, true)
	if err != nil {
		return nil, err
	}
	if rd.IsAdmin || rd.Role == types.RoleOficina {
		return all, nil
	}
	out := make([]*types.Procedimiento, 0, len(all))
	for _, p := range all {
		if VisibleToRole(p, rd.Role) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (ps *procedimientoService) ListAll(ctx context.Context, soloActivos bool) ([]*types.Procedimiento, error) {
	return ps.repo.List(ctx, nil, soloActivos)
}

func (ps *procedimientoService) Update(ctx context.Context, id uuid.UUID, input ProcedimientoInput) (*types.Procedimiento, error) {
	procedimiento, err := ps.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if titulo := utils.ParseInputString(input.Titulo); titulo != "" {
		procedimiento.Titulo = titulo
	}
	procedimiento.Descripcion = utils.ParseInputString(input.Descripcion)
	procedimiento.Contenido = input.Contenido
	if input.Pasos != nil {
		pasos, mErr := marshalPasos(input.Pasos)
		if mErr != nil {
			return nil, mErr
		}
		procedimiento.Pasos = pasos
	}
	if input.RolesVisibles != nil {
		roles, mErr := marshalRoles(input.RolesVisibles)
		if mErr != nil {
			return nil, mErr
		}
		procedimiento.RolesVisibles = roles
	}
	if err := ps.repo.Update(ctx, nil, procedimiento); err != nil {
		return nil, err
	}
	ps.hub.Broadcast(sse.Message{Channel: "procedimientos", Event: sse.EventProcedimientosChanged})
	return procedimiento, nil
}

func (ps *procedimientoService) Archive(ctx context.Context, id uuid.UUID) error {
	if err := ps.repo.SetActivo(ctx, nil, id, false); err != nil {
		return err
	}
	ps.hub.Broadcast(sse.Message{Channel: "procedimientos", Event: sse.EventProcedimientosChanged})
	return nil
}

func (ps *procedimientoService) AttachPDF(ctx context.Context, id uuid.UUID, raw []byte) (*types.Procedimiento, error) {
	if ps.bucketService == nil {
		return nil, fmt.Errorf("almacenamiento de archivos no configurado")
	}
	procedimiento, err := ps.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	oldKey := procedimiento.PDFBucketKey
	newKey := fmt.Sprintf("procedimientos/%s/%d.pdf", id.String(), time.Now().UnixNano())
	if err := ps.bucketService.UploadFile(ctx, newKey, "application/pdf", bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("failed to upload PDF: %w", err)
	}
	url := ps.bucketService.GetPublicURL(newKey)
	if err := ps.repo.UpdatePDF(ctx, nil, id, newKey, url); err != nil {
		return nil, err
	}
	procedimiento.PDFBucketKey = newKey
	procedimiento.PDFURL = url
	if oldKey != "" {
		if dErr := ps.bucketService.DeleteFile(ctx, oldKey); dErr != nil {
			ps.log.Warn("Failed to delete old PDF (ignored)", "key", oldKey, "error", dErr)
		}
	}
	ps.hub.Broadcast(sse.Message{Channel: "procedimientos", Event: sse.EventProcedimientosChanged})
	return procedimiento, nil
}
