package storage

import "firmenverzeichnis-scraper/models"

// CompanyWriter is the interface any clean-data backend must satisfy.
type CompanyWriter interface {
	Write(companies []*models.Company) error
	Close() error
}

// RawCompanyWriter is the interface for persisting unprocessed scraped data.
type RawCompanyWriter interface {
	WriteRaw(companies []*models.RawCompany) error
	Close() error
}
