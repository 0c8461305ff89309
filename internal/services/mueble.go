package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/klasea/astillero-backend/internal/logger"
	"github.com/klasea/astillero-backend/internal/repos"
	"github.com/klasea/astillero-backend/internal/requestdata"
	"github.com/klasea/astillero-backend/internal/sse"
	"github.com/klasea/astillero-backend/internal/types"
	"github.com/klasea/astillero-backend/internal/utils"
)

type MuebleItemInput struct {
	Orden       int    `json:"orden"`
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion"`
}

type MuebleService interface {
	CreateLinea(ctx context.Context, nombre string, items []MuebleItemInput) (*types.MuebleLinea, error)
	ListLineas(ctx context.Context) ([]*types.MuebleLinea, error)
	DeleteLinea(ctx context.Context, id uuid.UUID) error

	AddItem(ctx context.Context, lineaID uuid.UUID, input MuebleItemInput) (*types.MuebleItem, error)
	UpdateItem(ctx context.Context, itemID uuid.UUID, input MuebleItemInput) (*types.MuebleItem, error)
	DeleteItem(ctx context.Context, itemID uuid.UUID) error

	UploadImagen(ctx context.Context, itemID uuid.UUID, nombre, mimeType string, raw []byte) (*types.MuebleImagen, error)
	DeleteImagen(ctx context.Context, imagenID uuid.UUID) error

	CreateUnidad(ctx context.Context, lineaID uuid.UUID, nombre string, obraID *uuid.UUID) (*types.MuebleUnidad, error)
	GetUnidad(ctx context.Context, id uuid.UUID) (*types.MuebleUnidad, error)
	ListUnidades(ctx context.Context, lineaID *uuid.UUID) ([]*types.MuebleUnidad, error)
	DeleteUnidad(ctx context.Context, id uuid.UUID) error

	UpdateUnidadItem(ctx context.Context, unidadItemID uuid.UUID, estado types.MuebleEstado, notas string) (*types.MuebleUnidadItem, error)
}

type muebleService struct {
	db            *gorm.DB
	log           *logger.Logger
	repo          repos.MuebleRepo
	bucketService BucketService
	hub           *sse.Hub
}

func NewMuebleService(db *gorm.DB, log *logger.Logger, repo repos.MuebleRepo, bucketService BucketService, hub *sse.Hub) MuebleService {
	return &muebleService{
		db:            db,
		log:           log.With("service", "MuebleService"),
		repo:          repo,
		bucketService: bucketService,
		hub:           hub,
	}
}

func (ms *muebleService) broadcast() {
	ms.hub.Broadcast(sse.Message{Channel: "muebles", Event: sse.EventMueblesChanged})
}

func (ms *muebleService) CreateLinea(ctx context.Context, nombre string, items []MuebleItemInput) (*types.MuebleLinea, error) {
	nombre = utils.ParseInputString(nombre)
	if nombre == "" {
		return nil, fmt.Errorf("el nombre de la linea es obligatorio")
	}
	linea := &types.MuebleLinea{ID: uuid.New(), Nombre: nombre}
	err := ms.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if cErr := ms.repo.CreateLinea(ctx, tx, linea); cErr != nil {
			return fmt.Errorf("failed to create mueble linea: %w", cErr)
		}
		catalog := make([]*types.MuebleItem, 0, len(items))
		for i, it := range items {
			itemNombre := utils.ParseInputString(it.Nombre)
			if itemNombre == "" {
				continue
			}
			orden := it.Orden
			if orden == 0 {
				orden = i
			}
			catalog = append(catalog, &types.MuebleItem{
				ID:          uuid.New(),
				LineaID:     linea.ID,
				Orden:       orden,
				Nombre:      itemNombre,
				Descripcion: utils.ParseInputString(it.Descripcion),
			})
		}
		if len(catalog) > 0 {
			if iErr := ms.repo.CreateItems(ctx, tx, catalog); iErr != nil {
				return fmt.Errorf("failed to create mueble items: %w", iErr)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	ms.broadcast()
	return linea, nil
}

func (ms *muebleService) ListLineas(ctx context.Context) ([]*types.MuebleLinea, error) {
	return ms.repo.ListLineas(ctx, nil)
}

func (ms *muebleService) DeleteLinea(ctx context.Context, id uuid.UUID) error {
	if err := ms.repo.DeleteLinea(ctx, nil, id); err != nil {
		return err
	}
	ms.broadcast()
	return nil
}

func (ms *muebleService) AddItem(ctx context.Context, lineaID uuid.UUID, input MuebleItemInput) (*types.MuebleItem, error) {
	nombre := utils.ParseInputString(input.Nombre)
	if nombre == "" {
		return nil, fmt.Errorf("el nombre del item es obligatorio")
	}
	item := &types.MuebleItem{
		ID:          uuid.New(),
		LineaID:     lineaID,
		Orden:       input.Orden,
		Nombre:      nombre,
		Descripcion: utils.ParseInputString(input.Descripcion),
	}
	if err := ms.repo.CreateItems(ctx, nil, []*types.MuebleItem{item}); err != nil {
		return nil, err
	}
	ms.broadcast()
	return item, nil
}

func (ms *muebleService) UpdateItem(ctx context.Context, itemID uuid.UUID, input MuebleItemInput) (*types.MuebleItem, error) {
	item, err := ms.repo.GetItemByID(ctx, nil, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("item no encontrado")
	}
	if nombre := utils.ParseInputString(input.Nombre); nombre != "" {
		item.Nombre = nombre
	}
	item.Orden = input.Orden
	item.Descripcion = utils.ParseInputString(input.Descripcion)
	if err := ms.repo.UpdateItem(ctx, nil, item); err != nil {
		return nil, err
	}
	ms.broadcast()
	return item, nil
}

func (ms *muebleService) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	if err := ms.repo.DeleteItem(ctx, nil, itemID); err != nil {
		return err
	}
	ms.broadcast()
	return nil
}

func (ms *muebleService) UploadImagen(ctx context.Context, itemID uuid.UUID, nombre, mimeType string, raw []byte) (*types.MuebleImagen, error) {
	if ms.bucketService == nil {
		return nil, fmt.Errorf("almacenamiento de archivos no configurado")
	}
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, fmt.Errorf("no request data found in context")
	}
	item, err := ms.repo.GetItemByID(ctx, nil, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("item no encontrado")
	}

	key := fmt.Sprintf("muebles/%s/%d", itemID.String(), time.Now().UnixNano())
	if err := ms.bucketService.UploadFile(ctx, key, mimeType, bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("failed to upload imagen: %w", err)
	}

	imagen := &types.MuebleImagen{
		ID:         uuid.New(),
		ItemID:     itemID,
		BucketKey:  key,
		URL:        ms.bucketService.GetPublicURL(key),
		Nombre:     utils.ParseInputString(nombre),
		MimeType:   mimeType,
		SizeBytes:  int64(len(raw)),
		UploadedBy: rd.UserID,
	}
	if err := ms.repo.CreateImagen(ctx, nil, imagen); err != nil {
		// The row failed; drop the orphaned object.
		if dErr := ms.bucketService.DeleteFile(ctx, key); dErr != nil {
			ms.log.Warn("Failed to clean up orphaned upload", "key", key, "error", dErr)
		}
		return nil, err
	}
	ms.broadcast()
	return imagen, nil
}

func (ms *muebleService) DeleteImagen(ctx context.Context, imagenID uuid.UUID) error {
	imagen, err := ms.repo.GetImagenByID(ctx, nil, imagenID)
	if err != nil {
		return err
	}
	if imagen == nil {
		return fmt.Errorf("imagen no encontrada")
	}
	if err := ms.repo.DeleteImagen(ctx, nil, imagenID); err != nil {
		return err
	}
	if ms.bucketService != nil {
		if dErr := ms.bucketService.DeleteFile(ctx, imagen.BucketKey); dErr != nil {
			ms.log.Warn("Failed to delete imagen object (ignored)", "key", imagen.BucketKey, "error", dErr)
		}
	}
	ms.broadcast()
	return nil
}

// CreateUnidad copies the line catalog onto the new unit as a checklist of
// No enviado rows.
func (ms *muebleService) CreateUnidad(ctx context.Context, lineaID uuid.UUID, nombre string, obraID *uuid.UUID) (*types.MuebleUnidad, error) {
	nombre = utils.ParseInputString(nombre)
	if nombre == "" {
		return nil, fmt.Errorf("el nombre de la unidad es obligatorio")
	}
	unidad := &types.MuebleUnidad{
		ID:      uuid.New(),
		LineaID: lineaID,
		ObraID:  obraID,
		Nombre:  nombre,
	}
	err := ms.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		catalog, cErr := ms.repo.ListItems(ctx, tx, lineaID)
		if cErr != nil {
			return fmt.Errorf("failed to list catalog items: %w", cErr)
		}
		if uErr := ms.repo.CreateUnidad(ctx, tx, unidad); uErr != nil {
			return fmt.Errorf("failed to create unidad: %w", uErr)
		}
		rows := make([]*types.MuebleUnidadItem, 0, len(catalog))
		for _, it := range catalog {
			itemID := it.ID
			rows = append(rows, &types.MuebleUnidadItem{
				ID:       uuid.New(),
				UnidadID: unidad.ID,
				ItemID:   &itemID,
				Nombre:   it.Nombre,
				Estado:   types.MuebleNoEnviado,
			})
		}
		if len(rows) > 0 {
			if rErr := ms.repo.CreateUnidadItems(ctx, tx, rows); rErr != nil {
				return fmt.Errorf("failed to copy catalog onto unidad: %w", rErr)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	ms.broadcast()
	return ms.GetUnidad(ctx, unidad.ID)
}

func (ms *muebleService) GetUnidad(ctx context.Context, id uuid.UUID) (*types.MuebleUnidad, error) {
	unidad, err := ms.repo.GetUnidadByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	if unidad == nil {
		return nil, fmt.Errorf("unidad no encontrada")
	}
	return unidad, nil
}

func (ms *muebleService) ListUnidades(ctx context.Context, lineaID *uuid.UUID) ([]*types.MuebleUnidad, error) {
	return ms.repo.ListUnidades(ctx, nil, lineaID)
}

func (ms *muebleService) DeleteUnidad(ctx context.Context, id uuid.UUID) error {
	if err := ms.repo.DeleteUnidad(ctx, nil, id); err != nil {
		return err
	}
	ms.broadcast()
	return nil
}

func (ms *muebleService) UpdateUnidadItem(ctx context.Context, unidadItemID uuid.UUID, estado types.MuebleEstado, notas string) (*types.MuebleUnidadItem, error) {
	item, err := ms.repo.GetUnidadItemByID(ctx, nil, unidadItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("item no encontrado")
	}
	if estado != "" {
		if !estado.Valid() {
			return nil, fmt.Errorf("estado de mueble invalido: %q", estado)
		}
		item.Estado = estado
	}
	item.Notas = utils.ParseInputString(notas)
	if err := ms.repo.UpdateUnidadItem(ctx, nil, item); err != nil {
		return nil, err
	}
	ms.broadcast()
	return item, nil
}
