package firmenverzeichnis

import (
	"context"
	"fmt"
	"os/exec"
	"sync"
	"time"

	"github.com/chromedp/chromedp"

	"firmenverzeichnis-scraper/config"
	"firmenverzeichnis-scraper/models"
	"firmenverzeichnis-scraper/utils"
)

// Scraper harvests the company directory: the listing page first, then each
// company's "Daten und Kontakte" page through the worker pool.
type Scraper struct {
	cfg        *config.Config
	logger     *utils.Logger
	pool       *utils.WorkerPool
	visitedURL *utils.URLSet
	retry      *utils.RetryConfig

	mu        sync.Mutex
	companies []*models.RawCompany
}

// New creates a ready-to-use directory Scraper.
func New(cfg *config.Config, logger *utils.Logger) *Scraper {
	return &Scraper{
		cfg:        cfg,
		logger:     logger,
		pool:       utils.NewWorkerPool(cfg.MaxConcurrency, cfg.RateLimitMs),
		visitedURL: utils.NewURLSet(),
		retry: &utils.RetryConfig{
			MaxAttempts: cfg.MaxRetries,
			BaseDelay:   2 * time.Second,
			Logger:      logger,
		},
		companies: make([]*models.RawCompany, 0),
	}
}

// Scrape fetches the directory page, then every company page, and returns
// the raw records. Companies whose contact page fails or carries no contact
// section are logged and skipped.
func (s *Scraper) Scrape() ([]*models.RawCompany, error) {
	s.logger.Info("[firmenverzeichnis] Starting scrape — directory: %s", s.cfg.DirectoryURL)

	chromeBin := findChromeBinary(s.cfg.ChromeBin)
	s.logger.Info("[firmenverzeichnis] Using browser binary: %s", chromeBin)

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-setuid-sandbox", true),
		chromedp.UserAgent("Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 "+
			"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"),
	)
	if chromeBin != "" {
		opts = append(opts, chromedp.ExecPath(chromeBin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)
	defer cancelAlloc()

	// Suppress chromedp log noise
	silentCtx, cancelSilent := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))
	defer cancelSilent()
	allocCtx = silentCtx

	var dirHTML string
	err := s.retry.Do("fetch-directory", func() error {
		var err error
		dirHTML, err = s.fetchHTML(allocCtx, s.cfg.DirectoryURL)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("fetch directory page: %w", err)
	}

	entries, err := ParseDirectory(dirHTML, s.cfg.EntryHolderClass, s.cfg.CityClass)
	if err != nil {
		return nil, err
	}
	s.logger.Info("[firmenverzeichnis] Directory page lists %d companies", len(entries))

	for _, entry := range entries {
		if !s.visitedURL.Add(entry.URL) {
			s.logger.Debug("[firmenverzeichnis] Duplicate company link skipped: %s", entry.URL)
			continue
		}

		entry := entry
		s.pool.Submit(func() {
			s.scrapeCompany(allocCtx, entry)
		})
	}
	s.pool.Wait()

	s.logger.Info("[firmenverzeichnis] Scrape complete — total raw records: %d", len(s.companies))
	return s.companies, nil
}

// scrapeCompany fetches one company page and appends its raw record.
func (s *Scraper) scrapeCompany(allocCtx context.Context, entry *DirectoryEntry) {
	var pageHTML string
	err := s.retry.Do("fetch-company "+entry.Name, func() error {
		var err error
		pageHTML, err = s.fetchHTML(allocCtx, entry.URL)
		return err
	})
	if err != nil {
		s.logger.Error("[firmenverzeichnis] Failed to fetch %s: %v", entry.URL, err)
		return
	}

	info, err := ParseContactInfo(pageHTML, s.cfg.ContactClass)
	if err != nil {
		s.logger.Error("[firmenverzeichnis] Failed to parse %s: %v", entry.URL, err)
		return
	}
	if len(info) == 0 {
		s.logger.Warn("[firmenverzeichnis] No contact info found for %s", entry.Name)
		return
	}

	info[models.FieldName] = entry.Name
	info[models.FieldCity] = entry.City
	company := models.NewRawCompany(info)

	s.mu.Lock()
	s.companies = append(s.companies, company)
	s.mu.Unlock()

	s.logger.Debug("[firmenverzeichnis] Scraped %s (%d fields)", entry.Name, company.PresentCount())
}

// fetchHTML navigates to a URL in a fresh tab and returns the rendered HTML.
func (s *Scraper) fetchHTML(allocCtx context.Context, url string) (string, error) {
	ctx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	ctx, cancelTimeout := context.WithTimeout(ctx, 60*time.Second)
	defer cancelTimeout()

	var html string
	err := chromedp.Run(ctx,
		chromedp.Navigate(url),
		chromedp.Sleep(2*time.Second),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", fmt.Errorf("chromedp navigate %s: %w", url, err)
	}
	return html, nil
}

// findChromeBinary locates a usable browser binary, preferring the
// configured one.
func findChromeBinary(configured string) string {
	if configured != "" {
		return configured
	}
	candidates := []string{
		"google-chrome", "google-chrome-stable", "chromium", "chromium-browser",
	}
	for _, name := range candidates {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}
	return ""
}
