package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"firmenverzeichnis-scraper/models"
)

// CSVWriter writes company records to a CSV file.
// It is safe for concurrent use.
type CSVWriter struct {
	mu     sync.Mutex
	file   *os.File
	writer *csv.Writer
}

// newCSVWriter creates (or truncates) the CSV file at the given path and
// writes the header row. Intermediate directories are created automatically.
func newCSVWriter(path string, header []string) (*CSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("csv: write header: %w", err)
	}
	w.Flush()

	return &CSVWriter{file: f, writer: w}, nil
}

// NewRawCSVWriter creates a writer for unprocessed scraped records.
func NewRawCSVWriter(path string) (*CSVWriter, error) {
	header := append(append([]string{}, models.RawColumns...), "scraped_at")
	return newCSVWriter(path, header)
}

// NewCleanCSVWriter creates a writer for normalized records in the canonical
// column order.
func NewCleanCSVWriter(path string) (*CSVWriter, error) {
	return newCSVWriter(path, models.CleanColumns)
}

// WriteRaw appends the raw records. Absent fields become empty cells.
func (c *CSVWriter) WriteRaw(companies []*models.RawCompany) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, r := range companies {
		row := append(r.Values(), r.ScrapedAt.Format(time.RFC3339))
		if err := c.writer.Write(row); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	c.writer.Flush()
	return c.writer.Error()
}

// Write appends the clean records in canonical column order. Numbers are
// plain decimal text, absent values empty cells.
func (c *CSVWriter) Write(companies []*models.Company) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, co := range companies {
		if err := c.writer.Write(CompanyRow(co)); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	c.writer.Flush()
	return c.writer.Error()
}

// WriteStats writes the summary-statistics rows.
func (c *CSVWriter) WriteStats(r *models.StatsReport) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	rows := [][]string{
		statsRow("count", float64(r.YearFounded.Count), float64(r.Employees.Count), float64(r.NetAssetsEUR.Count)),
		statsRow("mean", r.YearFounded.Mean, r.Employees.Mean, r.NetAssetsEUR.Mean),
		statsRow("std", r.YearFounded.Std, r.Employees.Std, r.NetAssetsEUR.Std),
		statsRow("min", r.YearFounded.Min, r.Employees.Min, r.NetAssetsEUR.Min),
		statsRow("median", r.YearFounded.Median, r.Employees.Median, r.NetAssetsEUR.Median),
		statsRow("max", r.YearFounded.Max, r.Employees.Max, r.NetAssetsEUR.Max),
		{
			"null values count",
			strconv.Itoa(r.NullCounts[models.FieldYearFounded]),
			strconv.Itoa(r.NullCounts[models.FieldEmployees]),
			strconv.Itoa(r.NullCounts[models.FieldNetAssets]),
		},
	}

	for _, row := range rows {
		if err := c.writer.Write(row); err != nil {
			return fmt.Errorf("csv: write stats row: %w", err)
		}
	}
	c.writer.Flush()
	return c.writer.Error()
}

// NewStatsCSVWriter creates a writer for the summary-statistics file.
func NewStatsCSVWriter(path string) (*CSVWriter, error) {
	return newCSVWriter(path, []string{"statistic", "year_founded", "employees", "net_assets_eur"})
}

// Close flushes and closes the underlying file.
func (c *CSVWriter) Close() error {
	c.writer.Flush()
	return c.file.Close()
}

// CompanyRow serializes a Company into the canonical column order.
func CompanyRow(c *models.Company) []string {
	return []string{
		c.Name,
		c.City,
		c.Address,
		c.Website,
		c.Email,
		c.Phone,
		c.Fax,
		intCell(c.Employees),
		intCell(c.YearFounded),
		int64Cell(c.NetAssets),
		c.NetAssetsCurrency,
		c.NetAssetsYear,
	}
}

func statsRow(name string, vals ...float64) []string {
	row := []string{name}
	for _, v := range vals {
		row = append(row, strconv.FormatFloat(v, 'f', -1, 64))
	}
	return row
}

func intCell(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func int64Cell(v *int64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(*v, 10)
}
