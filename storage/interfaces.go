package storage

import "sensortower-scraper/models"

// ReportWriter is the interface any report output must satisfy.
type ReportWriter interface {
	Write(table *models.ReportTable) error
	Close() error
}

var _ ReportWriter = (*CSVWriter)(nil)
