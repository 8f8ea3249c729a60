package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"firmenverzeichnis-scraper/models"
)

// PostgresWriter persists cleaned companies to PostgreSQL.
type PostgresWriter struct {
	db *sql.DB
}

// NewPostgresWriter opens a connection to PostgreSQL, runs schema migrations,
// and returns a ready-to-use PostgresWriter.
func NewPostgresWriter(dsn string) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	for i := 0; i < 10; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: ping failed after retries: %w", err)
	}

	pw := &PostgresWriter{db: db}
	if err := pw.migrate(); err != nil {
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return pw, nil
}

func (pw *PostgresWriter) migrate() error {
	_, err := pw.db.Exec(`
		CREATE TABLE IF NOT EXISTS companies (
			id                  SERIAL PRIMARY KEY,
			name                TEXT        NOT NULL,
			city                TEXT        NOT NULL DEFAULT '',
			address             TEXT        NOT NULL DEFAULT '',
			website             TEXT        NOT NULL DEFAULT '',
			email               TEXT        NOT NULL DEFAULT '',
			phone               VARCHAR(32) NOT NULL DEFAULT '',
			fax                 VARCHAR(32) NOT NULL DEFAULT '',
			employees           INTEGER,
			year_founded        INTEGER,
			net_assets          BIGINT,
			net_assets_currency VARCHAR(8)  NOT NULL DEFAULT '',
			net_assets_year     VARCHAR(16) NOT NULL DEFAULT '',
			created_at          TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (name, city)
		);

		CREATE INDEX IF NOT EXISTS idx_companies_city         ON companies(city);
		CREATE INDEX IF NOT EXISTS idx_companies_year_founded ON companies(year_founded);
		CREATE INDEX IF NOT EXISTS idx_companies_net_assets   ON companies(net_assets);
	`)
	return err
}

// Clear deletes all existing companies from the table.
func (pw *PostgresWriter) Clear() error {
	_, err := pw.db.Exec("DELETE FROM companies")
	if err != nil {
		return fmt.Errorf("postgres: clear: %w", err)
	}
	return nil
}

// Write batch-inserts ALL cleaned companies, clearing old data first.
func (pw *PostgresWriter) Write(companies []*models.Company) error {
	if len(companies) == 0 {
		return nil
	}

	if err := pw.Clear(); err != nil {
		return err
	}

	const batchSize = 50
	for i := 0; i < len(companies); i += batchSize {
		end := i + batchSize
		if end > len(companies) {
			end = len(companies)
		}
		if err := pw.insertBatch(companies[i:end]); err != nil {
			return err
		}
	}
	return nil
}

func (pw *PostgresWriter) insertBatch(batch []*models.Company) error {
	const cols = 12
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*cols)

	for idx, c := range batch {
		base := idx * cols
		placeholders := make([]string, cols)
		for j := 0; j < cols; j++ {
			placeholders[j] = fmt.Sprintf("$%d", base+j+1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(placeholders, ",")+")")
		valueArgs = append(valueArgs,
			c.Name, c.City, c.Address, c.Website, c.Email, c.Phone, c.Fax,
			nullInt(c.Employees), nullInt(c.YearFounded), nullInt64(c.NetAssets),
			c.NetAssetsCurrency, c.NetAssetsYear)
	}

	query := fmt.Sprintf(`
		INSERT INTO companies (name, city, address, website, email, phone, fax,
			employees, year_founded, net_assets, net_assets_currency, net_assets_year)
		VALUES %s
		ON CONFLICT (name, city) DO NOTHING
	`, strings.Join(valueStrings, ","))

	_, err := pw.db.Exec(query, valueArgs...)
	return err
}

func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}

// FetchAll retrieves all stored companies — used by the stats service.
func (pw *PostgresWriter) FetchAll() ([]*models.Company, error) {
	rows, err := pw.db.Query(`
		SELECT id, name, city, address, website, email, phone, fax,
			employees, year_founded, net_assets, net_assets_currency, net_assets_year, created_at
		FROM companies
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("postgres: fetch all: %w", err)
	}
	defer rows.Close()

	var companies []*models.Company
	for rows.Next() {
		c := &models.Company{}
		var employees, yearFounded sql.NullInt64
		var netAssets sql.NullInt64
		if err := rows.Scan(
			&c.ID, &c.Name, &c.City, &c.Address, &c.Website, &c.Email, &c.Phone, &c.Fax,
			&employees, &yearFounded, &netAssets, &c.NetAssetsCurrency, &c.NetAssetsYear, &c.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("postgres: scan row: %w", err)
		}
		if employees.Valid {
			v := int(employees.Int64)
			c.Employees = &v
		}
		if yearFounded.Valid {
			v := int(yearFounded.Int64)
			c.YearFounded = &v
		}
		if netAssets.Valid {
			v := netAssets.Int64
			c.NetAssets = &v
		}
		companies = append(companies, c)
	}
	return companies, rows.Err()
}

func nullInt(v *int) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func nullInt64(v *int64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}
