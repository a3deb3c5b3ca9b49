package services

import (
	"fmt"

	"sensortower-scraper/categories"
	"sensortower-scraper/models"
	"sensortower-scraper/utils"
)

// Flatten concatenates every rank position of a payload into one list. The
// free/paid/grossing distinction is dropped; order is preserved.
func Flatten(payload models.RankingPayload) []models.RawAppEntry {
	n := 0
	for _, position := range payload {
		n += len(position)
	}
	out := make([]models.RawAppEntry, 0, n)
	for _, position := range payload {
		out = append(out, position...)
	}
	return out
}

// Extractor turns raw ranking entries into AppRecords.
type Extractor struct {
	labels categories.Table
	logger *utils.Logger
}

// NewExtractor creates an Extractor naming category ids through labels.
// labels should be the full taxonomy, not the subset being scraped.
func NewExtractor(labels categories.Table, logger *utils.Logger) *Extractor {
	return &Extractor{labels: labels, logger: logger}
}

// Extract normalises one entry. Every required key must be present.
func (e *Extractor) Extract(entry models.RawAppEntry) (models.AppRecord, error) {
	if err := entry.Validate(); err != nil {
		if entry.ID != nil {
			return models.AppRecord{}, fmt.Errorf("extract app %d: %w", *entry.ID, err)
		}
		return models.AppRecord{}, fmt.Errorf("extract: %w", err)
	}

	// rank breaks ties between bucketed revenue estimates
	revenue := *entry.Revenue.Revenue - float64(*entry.Rank)

	return models.AppRecord{
		ID:                    *entry.ID,
		Name:                  entry.Name.Value,
		Categories:            e.labels.Names(*entry.Categories),
		URL:                   entry.URL.Value,
		Rating:                entry.Rating,
		RatingsTotal:          entry.GlobalRatingCount,
		RatingsCurrentVersion: entry.RatingCountCurVersion,
		MonthlyDownloads:      entry.Downloads.Downloads.Format(models.Humanized.String),
		MonthlyRevenue:        revenue,
		BuysAds:               entry.BuysAds,
		ShowsAds:              entry.ShowsAds,
	}, nil
}

// ExtractAll flattens payload and keys the records by app id. A later entry
// with the same id replaces an earlier one.
func (e *Extractor) ExtractAll(payload models.RankingPayload) (*models.ReportTable, error) {
	entries := Flatten(payload)
	table := models.NewReportTable()
	for i, entry := range entries {
		rec, err := e.Extract(entry)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		table.Put(rec)
	}

	e.logger.Debug("[extractor] %d entries -> %d apps", len(entries), table.Len())
	return table, nil
}
