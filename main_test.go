package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"sensortower-scraper/categories"
	"sensortower-scraper/config"
	"sensortower-scraper/utils"
)

const booksPayload = `[[{
	"id": 1, "rank": 0, "categories": [6018], "rating": 4.5,
	"global_rating_count": 100, "rating_count_for_current_version": 10,
	"humanized_worldwide_last_month_downloads": {"downloads": "1K"},
	"humanized_worldwide_last_month_revenue": {"revenue": 500},
	"buys_ads": false, "shows_ads": true, "name": "App A", "url": "http://a"
}], [], []]`

func testConfig(baseURL, out string) *config.Config {
	return &config.Config{
		BaseURL:        baseURL,
		SnapshotDate:   "2019-09-08",
		Country:        "US",
		Device:         "IPHONE",
		Limit:          50,
		Categories:     categories.Default(),
		HTTPTimeout:    5 * time.Second,
		MaxConcurrency: 1,
		MaxAttempts:    1,
		CSVOutputPath:  out,
		PrintInsights:  true,
		LogLevel:       "info",
	}
}

func newServer(t *testing.T, handler func(category string) (int, string)) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		status, body := handler(r.URL.Query().Get("category"))
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestRunWritesReport(t *testing.T) {
	server := newServer(t, func(category string) (int, string) {
		if category == "6018" {
			return http.StatusOK, booksPayload
		}
		return http.StatusOK, `[]`
	})
	out := filepath.Join(t.TempDir(), "sensor_tower_stats.csv")

	var stdout bytes.Buffer
	if err := run(context.Background(), testConfig(server.URL, out), utils.NewNopLogger(), &stdout); err != nil {
		t.Fatalf("run: %v", err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("open report: %v", err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows: got %d, want 2", len(rows))
	}
	want := []string{"1", "App A", `["Books"]`, "http://a", "4.5", "100", "10", "1K", "500", "false", "true"}
	if strings.Join(rows[1], "|") != strings.Join(want, "|") {
		t.Errorf("row:\n got %v\nwant %v", rows[1], want)
	}
	if !strings.HasPrefix(stdout.String(), "Scraping Books...\nScraping Business...\n") {
		t.Errorf("progress output: got %q", stdout.String())
	}
	if !strings.Contains(stdout.String(), "SENSOR TOWER RANKING SUMMARY") {
		t.Error("expected insights summary on stdout")
	}
}

func TestRunTransportErrorWritesNothing(t *testing.T) {
	server := newServer(t, func(category string) (int, string) {
		if category == "6011" {
			return http.StatusBadGateway, ``
		}
		return http.StatusOK, booksPayload
	})
	out := filepath.Join(t.TempDir(), "sensor_tower_stats.csv")

	err := run(context.Background(), testConfig(server.URL, out), utils.NewNopLogger(), &bytes.Buffer{})
	if err == nil {
		t.Fatal("expected run to fail")
	}
	if _, statErr := os.Stat(out); !errors.Is(statErr, os.ErrNotExist) {
		t.Errorf("report file should not exist, stat err: %v", statErr)
	}
}

func TestRunNoAppsIsFatal(t *testing.T) {
	server := newServer(t, func(string) (int, string) { return http.StatusOK, `[[], [], []]` })
	out := filepath.Join(t.TempDir(), "sensor_tower_stats.csv")

	err := run(context.Background(), testConfig(server.URL, out), utils.NewNopLogger(), &bytes.Buffer{})
	if !errors.Is(err, ErrNoApps) {
		t.Fatalf("expected ErrNoApps, got %v", err)
	}
	if _, statErr := os.Stat(out); !errors.Is(statErr, os.ErrNotExist) {
		t.Errorf("report file should not exist, stat err: %v", statErr)
	}
}
