package storage

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"firmenverzeichnis-scraper/models"
)

// ReadCompanies loads a clean-dataset CSV back into Companies. The file must
// carry the canonical header; empty cells deserialize as absent values.
func ReadCompanies(path string) ([]*models.Company, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csv: open %q: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("csv: read header: %w", err)
	}
	if len(header) != len(models.CleanColumns) {
		return nil, fmt.Errorf("csv: expected %d columns, got %d", len(models.CleanColumns), len(header))
	}

	var companies []*models.Company
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv: read row: %w", err)
		}

		c := &models.Company{
			Name:              row[0],
			City:              row[1],
			Address:           row[2],
			Website:           row[3],
			Email:             row[4],
			Phone:             row[5],
			Fax:               row[6],
			NetAssetsCurrency: row[10],
			NetAssetsYear:     row[11],
		}
		if c.Employees, err = parseIntCell(row[7]); err != nil {
			return nil, fmt.Errorf("csv: employees %q: %w", row[7], err)
		}
		if c.YearFounded, err = parseIntCell(row[8]); err != nil {
			return nil, fmt.Errorf("csv: year_founded %q: %w", row[8], err)
		}
		if c.NetAssets, err = parseInt64Cell(row[9]); err != nil {
			return nil, fmt.Errorf("csv: net_assets %q: %w", row[9], err)
		}

		companies = append(companies, c)
	}
	return companies, nil
}

func parseIntCell(s string) (*int, error) {
	if s == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func parseInt64Cell(s string) (*int64, error) {
	if s == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, err
	}
	return &n, nil
}
