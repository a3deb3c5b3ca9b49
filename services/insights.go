package services

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"

	"sensortower-scraper/models"
	"sensortower-scraper/utils"
)

const topRevenueCount = 5

// InsightService summarises a finished report for the console.
type InsightService struct {
	logger *utils.Logger
}

// NewInsightService creates an InsightService.
func NewInsightService(logger *utils.Logger) *InsightService {
	return &InsightService{logger: logger}
}

// Generate computes summary statistics over table. Null ratings and ad
// flags are left out of their respective figures.
func (s *InsightService) Generate(table *models.ReportTable) *models.InsightReport {
	report := &models.InsightReport{
		AppsByCategory: make(map[string]int),
	}
	if table == nil || table.Len() == 0 {
		return report
	}

	records := table.Records()
	report.TotalApps = len(records)

	var ratingSum float64
	var rated int
	for i := range records {
		r := records[i]
		if r.Rating.Valid {
			ratingSum += r.Rating.Value
			rated++
		}
		report.TotalRevenue += r.MonthlyRevenue
		if r.BuysAds.Valid && r.BuysAds.Value {
			report.BuysAdsCount++
		}
		if r.ShowsAds.Valid && r.ShowsAds.Value {
			report.ShowsAdsCount++
		}
		for _, c := range r.Categories {
			report.AppsByCategory[c]++
		}
		if r.RatingsTotal.Valid &&
			(report.MostRatedApp == nil || r.RatingsTotal.Value > report.MostRatedApp.RatingsTotal.Value) {
			report.MostRatedApp = &records[i]
		}
	}
	if rated > 0 {
		report.AverageRating = round2(ratingSum / float64(rated))
	}

	byRevenue := append([]models.AppRecord(nil), records...)
	sort.SliceStable(byRevenue, func(i, j int) bool {
		return byRevenue[i].MonthlyRevenue > byRevenue[j].MonthlyRevenue
	})
	if len(byRevenue) > topRevenueCount {
		byRevenue = byRevenue[:topRevenueCount]
	}
	report.TopByRevenue = byRevenue

	s.logger.Debug("[insights] summarised %d apps across %d categories",
		report.TotalApps, len(report.AppsByCategory))
	return report
}

// Print writes a human-readable rendering of r to w.
func (s *InsightService) Print(w io.Writer, r *models.InsightReport) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Fprintf(w, "\n%s\n", sep)
	fmt.Fprintf(w, "  SENSOR TOWER RANKING SUMMARY\n")
	fmt.Fprintf(w, "%s\n\n", sep)

	fmt.Fprintf(w, "  Overview\n")
	fmt.Fprintf(w, "  %s\n", thin)
	fmt.Fprintf(w, "  Distinct apps      : %s\n", humanize.Comma(int64(r.TotalApps)))
	fmt.Fprintf(w, "  Average rating     : %.2f\n", r.AverageRating)
	fmt.Fprintf(w, "  Apps buying ads    : %d\n", r.BuysAdsCount)
	fmt.Fprintf(w, "  Apps showing ads   : %d\n", r.ShowsAdsCount)
	fmt.Fprintf(w, "  Monthly revenue sum: $%s\n", humanize.Comma(int64(math.Round(r.TotalRevenue))))
	fmt.Fprintln(w)

	if r.MostRatedApp != nil {
		fmt.Fprintf(w, "  Most Rated App\n")
		fmt.Fprintf(w, "  %s\n", thin)
		fmt.Fprintf(w, "  %s\n", truncate(r.MostRatedApp.Name, 50))
		fmt.Fprintf(w, "  Ratings : %s\n", humanize.Comma(r.MostRatedApp.RatingsTotal.Value))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "  Top %d by Monthly Revenue\n", topRevenueCount)
	fmt.Fprintf(w, "  %s\n", thin)
	if len(r.TopByRevenue) == 0 {
		fmt.Fprintf(w, "  No apps found\n")
	}
	for i, a := range r.TopByRevenue {
		fmt.Fprintf(w, "  %d. %-38s $%s\n", i+1, truncate(a.Name, 38),
			humanize.Comma(int64(math.Round(a.MonthlyRevenue))))
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "  Apps by Category\n")
	fmt.Fprintf(w, "  %s\n", thin)
	type catCount struct {
		name  string
		count int
	}
	var cats []catCount
	for name, n := range r.AppsByCategory {
		cats = append(cats, catCount{name, n})
	}
	sort.Slice(cats, func(i, j int) bool {
		if cats[i].count != cats[j].count {
			return cats[i].count > cats[j].count
		}
		return cats[i].name < cats[j].name
	})
	for _, c := range cats {
		fmt.Fprintf(w, "  %-24s %d\n", truncate(c.name, 22), c.count)
	}

	fmt.Fprintf(w, "\n%s\n\n", sep)
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
