package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"sensortower-scraper/models"
)

// CSVWriter writes the app report to a CSV file.
// It is safe for concurrent use.
type CSVWriter struct {
	mu     sync.Mutex
	path   string
	file   *os.File
	writer *csv.Writer
}

// NewCSVWriter creates (or truncates) the CSV file at the given path.
// Intermediate directories are created automatically.
func NewCSVWriter(path string) (*CSVWriter, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("csv: create output dir: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}

	return &CSVWriter{path: path, file: f, writer: csv.NewWriter(f)}, nil
}

// Write emits the header row followed by one row per record, in table order.
func (c *CSVWriter) Write(table *models.ReportTable) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.writer.Write(models.CSVHeader()); err != nil {
		return fmt.Errorf("csv: write header: %w", err)
	}

	if table != nil {
		for _, rec := range table.Records() {
			if err := c.writer.Write(rec.CSVRow()); err != nil {
				return fmt.Errorf("csv: write row for app %d: %w", rec.ID, err)
			}
		}
	}

	c.writer.Flush()
	if err := c.writer.Error(); err != nil {
		return fmt.Errorf("csv: flush: %w", err)
	}
	return nil
}

// Path returns the file being written.
func (c *CSVWriter) Path() string {
	return c.path
}

// Close flushes and closes the underlying file.
func (c *CSVWriter) Close() error {
	c.writer.Flush()
	return c.file.Close()
}
