package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/klasea/astillero-backend/internal/logger"
	"github.com/klasea/astillero-backend/internal/repos"
	"github.com/klasea/astillero-backend/internal/types"
)

// utf8BOM prefixes every export so Excel opens the file as UTF-8 and accents
// in material names survive.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

type ExportService interface {
	MovimientosCSV(ctx context.Context, desde, hasta time.Time) ([]byte, string, error)
	StockCSV(ctx context.Context) ([]byte, string, error)
}

type exportService struct {
	db             *gorm.DB
	log            *logger.Logger
	materialRepo   repos.MaterialRepo
	movimientoRepo repos.MovimientoRepo
}

func NewExportService(db *gorm.DB, log *logger.Logger, materialRepo repos.MaterialRepo, movimientoRepo repos.MovimientoRepo) ExportService {
	return &exportService{
		db:             db,
		log:            log.With("service", "ExportService"),
		materialRepo:   materialRepo,
		movimientoRepo: movimientoRepo,
	}
}

func writeCSV(headers []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(utf8BOM)
	w := csv.NewWriter(&buf)
	if err := w.Write(headers); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func formatCantidad(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// MovimientosCSV exports the movement ledger for a date range. Column order
// matches the on-screen table.
func (es *exportService) MovimientosCSV(ctx context.Context, desde, hasta time.Time) ([]byte, string, error) {
	movimientos, err := es.movimientoRepo.ListBetween(ctx, nil, desde, hasta)
	if err != nil {
		return nil, "", fmt.Errorf("failed to list movimientos: %w", err)
	}

	headers := []string{"Fecha", "Material", "Tipo", "Cantidad", "Unidad", "Proveedor", "Destinatario", "Obra", "Notas"}
	rows := make([][]string, 0, len(movimientos))
	for _, m := range movimientos {
		materialNombre := ""
		unidad := ""
		if m.Material != nil {
			materialNombre = m.Material.Nombre
			unidad = m.Material.Unidad
		}
		rows = append(rows, []string{
			m.Fecha.Format("2006-01-02 15:04"),
			materialNombre,
			string(m.Tipo),
			formatCantidad(m.Cantidad),
			unidad,
			m.Proveedor,
			m.Destinatario,
			m.ObraCodigo,
			m.Notas,
		})
	}

	data, err := writeCSV(headers, rows)
	if err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("movimientos_%s_%s.csv", desde.Format("20060102"), hasta.Format("20060102"))
	return data, filename, nil
}

// StockCSV exports the current stock snapshot with threshold classification.
func (es *exportService) StockCSV(ctx context.Context) ([]byte, string, error) {
	materiales, err := es.materialRepo.List(ctx, nil, true)
	if err != nil {
		return nil, "", fmt.Errorf("failed to list materiales: %w", err)
	}

	headers := []string{"Material", "Categoria", "Stock", "Minimo", "Unidad", "Estado"}
	rows := make([][]string, 0, len(materiales))
	for _, m := range materiales {
		rows = append(rows, []string{
			m.Nombre,
			m.Categoria,
			formatCantidad(m.StockActual),
			formatCantidad(m.StockMinimo),
			m.Unidad,
			string(types.ClassifyStock(m.StockActual, m.StockMinimo)),
		})
	}

	data, err := writeCSV(headers, rows)
	if err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("stock_%s.csv", time.Now().Format("20060102"))
	return data, filename, nil
}
