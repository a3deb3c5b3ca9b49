package sensortower

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"sensortower-scraper/categories"
	"sensortower-scraper/models"
	"sensortower-scraper/services"
	"sensortower-scraper/utils"
)

// Fetcher returns the raw ranking payload for one category.
type Fetcher interface {
	FetchCategory(ctx context.Context, categoryID int) (models.RankingPayload, error)
}

// Options tune how categories are scraped.
type Options struct {
	MaxConcurrency int
	MaxAttempts    int
	RetryDelay     time.Duration

	// Labels names category ids in the report. Defaults to the full
	// taxonomy so apps keep their real names when only a subset is scraped.
	Labels categories.Table

	// Progress receives one "Scraping <name>..." line per category.
	Progress io.Writer
}

// Scraper drives the per-category fetch, flatten and extract pipeline.
type Scraper struct {
	fetcher   Fetcher
	table     categories.Table
	extractor *services.Extractor
	logger    *utils.Logger
	retry     *utils.RetryConfig
	workers   int

	progressMu sync.Mutex
	progress   io.Writer
}

// New creates a Scraper that fetches the categories of table, in order.
func New(fetcher Fetcher, table categories.Table, logger *utils.Logger, opts Options) *Scraper {
	if opts.Labels.Len() == 0 {
		opts.Labels = categories.Default()
	}
	if opts.Progress == nil {
		opts.Progress = io.Discard
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = 2 * time.Second
	}
	return &Scraper{
		fetcher:   fetcher,
		table:     table,
		extractor: services.NewExtractor(opts.Labels, logger),
		logger:    logger,
		retry: &utils.RetryConfig{
			MaxAttempts: opts.MaxAttempts,
			BaseDelay:   opts.RetryDelay,
			Logger:      logger,
		},
		workers:  opts.MaxConcurrency,
		progress: opts.Progress,
	}
}

// ScrapeCategory fetches one category and returns its apps keyed by id.
func (s *Scraper) ScrapeCategory(ctx context.Context, categoryID int) (*models.ReportTable, error) {
	var payload models.RankingPayload
	err := s.retry.Do(ctx, fmt.Sprintf("fetch category %d", categoryID), func(ctx context.Context) error {
		var err error
		payload, err = s.fetcher.FetchCategory(ctx, categoryID)
		return err
	})
	if err != nil {
		return nil, err
	}

	apps, err := s.extractor.ExtractAll(payload)
	if err != nil {
		return nil, fmt.Errorf("category %d: %w", categoryID, err)
	}
	return apps, nil
}

// ScrapeAll scrapes every category of the table and merges the results in
// table order, so a later category overwrites an app seen earlier. Any
// failure aborts the run and no partial table is returned.
func (s *Scraper) ScrapeAll(ctx context.Context) (*models.ReportTable, error) {
	entries := s.table.Entries()
	results := make([]*models.ReportTable, len(entries))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var firstErr utils.ErrorOnce
	pool := utils.NewWorkerPool(s.workers)

	for i, cat := range entries {
		if firstErr.Err() != nil || ctx.Err() != nil {
			break
		}
		i, cat := i, cat
		pool.Submit(func() {
			if ctx.Err() != nil {
				return
			}
			s.announce(cat.Name)

			log := s.logger.With("category", cat.Name)
			apps, err := s.ScrapeCategory(ctx, cat.ID)
			if err != nil {
				if firstErr.Set(fmt.Errorf("scrape %s: %w", cat.Name, err)) {
					cancel()
				}
				return
			}
			log.Debug("[sensortower] %d apps", apps.Len())
			results[i] = apps
		})
	}
	pool.Wait()

	if err := firstErr.Err(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	all := models.NewReportTable()
	for _, apps := range results {
		all.Merge(apps)
	}
	s.logger.Info("[sensortower] Scraped %d categories, %d distinct apps", len(entries), all.Len())
	return all, nil
}

func (s *Scraper) announce(name string) {
	s.progressMu.Lock()
	defer s.progressMu.Unlock()
	fmt.Fprintf(s.progress, "Scraping %s...\n", name)
}
