package services

import (
	"bytes"
	"encoding/csv"
	"testing"
)

func TestWriteCSV_StartsWithUTF8BOM(t *testing.T) {
	data, err := writeCSV([]string{"Material"}, [][]string{{"Resina"}})
	if err != nil {
		t.Fatalf("writeCSV: %v", err)
	}
	if !bytes.HasPrefix(data, utf8BOM) {
		t.Fatalf("export missing BOM prefix: %v", data[:3])
	}
}

func TestWriteCSV_RoundTripsAccentsAndSpecialChars(t *testing.T) {
	headers := []string{"Material", "Notas"}
	rows := [][]string{
		{"Pañol de proa", "entrega, urgente"},
		{"Masilla \"gris\"", "línea 2\nsigue"},
	}
	data, err := writeCSV(headers, rows)
	if err != nil {
		t.Fatalf("writeCSV: %v", err)
	}

	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)))
	records, err := r.ReadAll()
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records got %d", len(records))
	}
	if records[1][0] != "Pañol de proa" || records[1][1] != "entrega, urgente" {
		t.Fatalf("row 1 mangled: %v", records[1])
	}
	if records[2][0] != "Masilla \"gris\"" || records[2][1] != "línea 2\nsigue" {
		t.Fatalf("row 2 mangled: %v", records[2])
	}
}

func TestFormatCantidad_NoTrailingZeros(t *testing.T) {
	if got := formatCantidad(2.5); got != "2.5" {
		t.Fatalf("expected 2.5 got %q", got)
	}
	if got := formatCantidad(10); got != "10" {
		t.Fatalf("expected 10 got %q", got)
	}
}
