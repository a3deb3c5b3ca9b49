package models

import (
	"encoding/json"
	"reflect"
	"strconv"
)

// AppRecord is the normalised per-app row written to the report. Field order
// and csv tags define the report header.
type AppRecord struct {
	ID                    int64             `csv:"id"`
	Name                  string            `csv:"name"`
	Categories            []string          `csv:"categories"`
	URL                   string            `csv:"url"`
	Rating                Optional[float64] `csv:"rating"`
	RatingsTotal          Optional[int64]   `csv:"ratings_total"`
	RatingsCurrentVersion Optional[int64]   `csv:"ratings_current_version"`
	MonthlyDownloads      string            `csv:"monthly_downloads"`
	MonthlyRevenue        float64           `csv:"monthly_revenue"`
	BuysAds               Optional[bool]    `csv:"buys_ads"`
	ShowsAds              Optional[bool]    `csv:"shows_ads"`
}

var csvHeader = func() []string {
	t := reflect.TypeOf(AppRecord{})
	header := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		header = append(header, t.Field(i).Tag.Get("csv"))
	}
	return header
}()

// CSVHeader returns the report column names.
func CSVHeader() []string {
	return append([]string(nil), csvHeader...)
}

// CSVRow renders the record in CSVHeader order. Categories are encoded as a
// JSON array of names; null values render as empty cells.
func (r AppRecord) CSVRow() []string {
	cats := r.Categories
	if cats == nil {
		cats = []string{}
	}
	encoded, _ := json.Marshal(cats)

	return []string{
		strconv.FormatInt(r.ID, 10),
		r.Name,
		string(encoded),
		r.URL,
		r.Rating.Format(formatFloat),
		r.RatingsTotal.Format(formatInt),
		r.RatingsCurrentVersion.Format(formatInt),
		r.MonthlyDownloads,
		formatFloat(r.MonthlyRevenue),
		r.BuysAds.Format(strconv.FormatBool),
		r.ShowsAds.Format(strconv.FormatBool),
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func formatInt(n int64) string {
	return strconv.FormatInt(n, 10)
}

// ReportTable maps app id to its record and remembers first-insertion order.
// Put on an existing id replaces the record in place.
type ReportTable struct {
	order   []int64
	records map[int64]AppRecord
}

// NewReportTable creates an empty table.
func NewReportTable() *ReportTable {
	return &ReportTable{records: make(map[int64]AppRecord)}
}

// Put stores rec under its id, overwriting any earlier record.
func (t *ReportTable) Put(rec AppRecord) {
	if _, exists := t.records[rec.ID]; !exists {
		t.order = append(t.order, rec.ID)
	}
	t.records[rec.ID] = rec
}

// Merge applies every record of other, in other's order.
func (t *ReportTable) Merge(other *ReportTable) {
	if other == nil {
		return
	}
	for _, id := range other.order {
		t.Put(other.records[id])
	}
}

// Get returns the record for id.
func (t *ReportTable) Get(id int64) (AppRecord, bool) {
	rec, ok := t.records[id]
	return rec, ok
}

func (t *ReportTable) Len() int {
	return len(t.order)
}

// Records returns all records in table order.
func (t *ReportTable) Records() []AppRecord {
	out := make([]AppRecord, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.records[id])
	}
	return out
}

// InsightReport holds the computed summary over the final report table.
type InsightReport struct {
	TotalApps      int
	BuysAdsCount   int
	ShowsAdsCount  int
	AverageRating  float64
	TotalRevenue   float64
	TopByRevenue   []AppRecord
	AppsByCategory map[string]int
	MostRatedApp   *AppRecord
}
