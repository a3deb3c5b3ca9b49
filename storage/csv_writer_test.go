package storage

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sensortower-scraper/models"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	return rows
}

func TestCSVWriterRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "report.csv")
	table := models.NewReportTable()
	table.Put(models.AppRecord{ID: 1, Name: "App A", Categories: []string{"Books"}, MonthlyRevenue: 500, ShowsAds: models.Some(true)})
	table.Put(models.AppRecord{ID: 2, Name: "Quote \"B\", Ltd", Categories: []string{"Games", "Other"}})
	table.Put(models.AppRecord{ID: 1, Name: "App A v2", Categories: []string{"Weather"}})

	w, err := NewCSVWriter(path)
	if err != nil {
		t.Fatalf("NewCSVWriter: %v", err)
	}
	if err := w.Write(table); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	rows := readCSV(t, path)
	if len(rows) != 1+table.Len() {
		t.Fatalf("rows: got %d, want %d", len(rows), 1+table.Len())
	}
	if strings.Join(rows[0], ",") != strings.Join(models.CSVHeader(), ",") {
		t.Errorf("header: got %v", rows[0])
	}
	if rows[1][0] != "1" || rows[1][1] != "App A v2" || rows[1][2] != `["Weather"]` {
		t.Errorf("row 1: got %v", rows[1])
	}
	if rows[2][1] != "Quote \"B\", Ltd" {
		t.Errorf("row 2 name: got %q", rows[2][1])
	}
}

func TestCSVWriterOverwritesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.csv")
	if err := os.WriteFile(path, []byte("stale\nstale\nstale\n"), 0644); err != nil {
		t.Fatal(err)
	}

	w, err := NewCSVWriter(path)
	if err != nil {
		t.Fatalf("NewCSVWriter: %v", err)
	}
	table := models.NewReportTable()
	table.Put(models.AppRecord{ID: 3, Name: "C"})
	if err := w.Write(table); err != nil {
		t.Fatalf("Write: %v", err)
	}
	w.Close()

	rows := readCSV(t, path)
	if len(rows) != 2 {
		t.Errorf("rows: got %d, want 2", len(rows))
	}
}

func TestCSVWriterEmptyTableWritesHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.csv")
	w, err := NewCSVWriter(path)
	if err != nil {
		t.Fatalf("NewCSVWriter: %v", err)
	}
	if err := w.Write(models.NewReportTable()); err != nil {
		t.Fatalf("Write: %v", err)
	}
	w.Close()

	rows := readCSV(t, path)
	if len(rows) != 1 || rows[0][0] != "id" {
		t.Errorf("expected header only, got %v", rows)
	}
}
