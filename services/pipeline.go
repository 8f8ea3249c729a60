package services

import (
	"strings"
	"time"

	"firmenverzeichnis-scraper/config"
	"firmenverzeichnis-scraper/models"
	"firmenverzeichnis-scraper/utils"
)

// minPresentFields is the minimum number of scraped fields a record needs to
// survive cleaning. Below that the contact-section extraction evidently
// failed and the row carries no usable signal.
const minPresentFields = 4

// Cleaner transforms RawCompanies into clean, typed Companies.
type Cleaner struct {
	cfg       *config.Config
	netAssets *NetAssetsParser
	logger    *utils.Logger
}

// NewCleaner creates a Cleaner using the config's normalization tables.
func NewCleaner(cfg *config.Config, logger *utils.Logger) *Cleaner {
	return &Cleaner{
		cfg:       cfg,
		netAssets: NewNetAssetsParser(cfg.Multipliers, cfg.CurrencyAliases, cfg.DefaultCurrency, logger),
		logger:    logger,
	}
}

// Clean processes a raw batch and returns the cleaned records plus any
// per-record field errors. A failed record never aborts the batch; callers
// decide what to do with the errors. An empty batch is valid and yields an
// empty result.
func (c *Cleaner) Clean(raw []*models.RawCompany) ([]*models.Company, []error) {
	seen := make(map[string]struct{})
	result := make([]*models.Company, 0, len(raw))
	var errs []error

	dropped := 0
	for _, r := range raw {
		// Exact duplicates carry no new information.
		key := strings.Join(r.Values(), "\x1f")
		if _, dup := seen[key]; dup {
			c.logger.Debug("[cleaner] Duplicate record skipped: %s", r.Name.Value)
			continue
		}
		seen[key] = struct{}{}

		// Address cleanup happens before the underpopulation check so the
		// check sees the fields as they will be stored.
		address := r.Address
		if address.Present {
			address = models.Some(NormalizeAddress(address.Value, r.Name.Value))
		}

		if r.PresentCount() < minPresentFields {
			c.logger.Debug("[cleaner] Underpopulated record dropped (%d fields): %s",
				r.PresentCount(), r.Name.Value)
			dropped++
			continue
		}

		company := &models.Company{
			Name:      r.Name.Value,
			City:      r.City.Value,
			Address:   address.Value,
			Email:     r.Email.Value,
			Phone:     NormalizePhone(r.Phone.Value, c.cfg.NationalPhonePrefix),
			Fax:       NormalizePhone(r.Fax.Value, c.cfg.NationalPhonePrefix),
			Website:   NormalizeWebsite(r.Website.Or(websiteNASentinel)),
			CreatedAt: time.Now(),
		}

		// year_founded is optional per record, but a present value that does
		// not parse points at upstream corruption and is surfaced.
		if r.YearFounded.Present {
			year, err := ExtractYear(r.YearFounded.Value)
			if err != nil {
				if ferr, ok := err.(*MalformedFieldError); ok {
					ferr.Company = r.Name.Value
				}
				errs = append(errs, err)
			} else {
				company.YearFounded = &year
			}
		}

		if r.Employees.Present {
			company.Employees = ExtractEmployeeCount(r.Employees.Value)
		}

		if r.NetAssets.Present {
			res := c.netAssets.Parse(r.NetAssets.Value)
			company.NetAssets = res.Amount
			company.NetAssetsCurrency = res.Currency
			company.NetAssetsYear = res.Year
		}

		result = append(result, company)
	}

	c.logger.Info("[cleaner] Cleaned %d → %d companies (dropped %d underpopulated, %d duplicates, %d field errors)",
		len(raw), len(result), dropped, len(raw)-len(result)-dropped, len(errs))
	return result, errs
}
