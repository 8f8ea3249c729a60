package storage

import (
	"path/filepath"
	"strconv"
	"testing"

	"firmenverzeichnis-scraper/config"
	"firmenverzeichnis-scraper/models"
	"firmenverzeichnis-scraper/services"
	"firmenverzeichnis-scraper/utils"
)

func intPtr(v int) *int       { return &v }
func int64Ptr(v int64) *int64 { return &v }

func sampleCompany() *models.Company {
	return &models.Company{
		Name:              "ACME GmbH",
		City:              "Berlin",
		Address:           "Musterstraße 5 10115 Berlin",
		Website:           "www.acme.de",
		Email:             "info@acme.de",
		Phone:             "+49301234567",
		Fax:               "+49301234568",
		Employees:         intPtr(1200),
		YearFounded:       intPtr(1998),
		NetAssets:         int64Ptr(3500000),
		NetAssetsCurrency: "€",
	}
}

func TestCleanCSVRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clean.csv")

	original := sampleCompany()
	sparse := &models.Company{Name: "Sparse AG", City: "Hamburg", Website: "www.sparse.de", Email: "mail@sparse.de"}

	w, err := NewCleanCSVWriter(path)
	if err != nil {
		t.Fatalf("NewCleanCSVWriter: %v", err)
	}
	if err := w.Write([]*models.Company{original, sparse}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	got, err := ReadCompanies(path)
	if err != nil {
		t.Fatalf("ReadCompanies: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 companies, got %d", len(got))
	}

	assertEqualCompany(t, original, got[0])
	if got[1].Employees != nil || got[1].YearFounded != nil || got[1].NetAssets != nil {
		t.Errorf("empty cells must deserialize as absent values: %+v", got[1])
	}
}

// Serializing, deserializing and re-running the pipeline on the result must
// reproduce the record.
func TestRoundTripThroughPipeline(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clean.csv")

	original := sampleCompany()
	w, err := NewCleanCSVWriter(path)
	if err != nil {
		t.Fatalf("NewCleanCSVWriter: %v", err)
	}
	if err := w.Write([]*models.Company{original}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	w.Close()

	loaded, err := ReadCompanies(path)
	if err != nil {
		t.Fatalf("ReadCompanies: %v", err)
	}

	cfg := &config.Config{
		NationalPhonePrefix: "+49",
		DefaultCurrency:     "€",
		Multipliers:         config.DefaultMultipliers(),
		CurrencyAliases:     config.DefaultCurrencyAliases(),
		ExchangeRatesEUR:    config.DefaultExchangeRatesEUR(),
	}
	cleaner := services.NewCleaner(cfg, utils.NewLogger())

	raw := models.NewRawCompany(map[string]string{
		models.FieldName:        loaded[0].Name,
		models.FieldCity:        loaded[0].City,
		models.FieldAddress:     loaded[0].Address,
		models.FieldWebsite:     loaded[0].Website,
		models.FieldEmail:       loaded[0].Email,
		models.FieldPhone:       loaded[0].Phone,
		models.FieldFax:         loaded[0].Fax,
		models.FieldEmployees:   strconv.Itoa(*loaded[0].Employees),
		models.FieldYearFounded: strconv.Itoa(*loaded[0].YearFounded),
		models.FieldNetAssets:   strconv.FormatInt(*loaded[0].NetAssets, 10),
	})

	cleaned, errs := cleaner.Clean([]*models.RawCompany{raw})
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(cleaned) != 1 {
		t.Fatalf("expected 1 company, got %d", len(cleaned))
	}
	assertEqualCompany(t, original, cleaned[0])
}

func TestRawCSVWritesAbsentAsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "raw.csv")

	w, err := NewRawCSVWriter(path)
	if err != nil {
		t.Fatalf("NewRawCSVWriter: %v", err)
	}
	raw := models.NewRawCompany(map[string]string{
		models.FieldName: "ACME GmbH",
		models.FieldCity: "Berlin",
	})
	if err := w.WriteRaw([]*models.RawCompany{raw}); err != nil {
		t.Fatalf("WriteRaw: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func assertEqualCompany(t *testing.T, want, got *models.Company) {
	t.Helper()
	if want.Name != got.Name || want.City != got.City || want.Address != got.Address ||
		want.Website != got.Website || want.Email != got.Email ||
		want.Phone != got.Phone || want.Fax != got.Fax {
		t.Errorf("text fields differ:\nwant %+v\ngot  %+v", want, got)
	}
	if !equalInt(want.Employees, got.Employees) || !equalInt(want.YearFounded, got.YearFounded) {
		t.Errorf("numeric fields differ:\nwant %+v\ngot  %+v", want, got)
	}
	if !equalInt64(want.NetAssets, got.NetAssets) ||
		want.NetAssetsCurrency != got.NetAssetsCurrency || want.NetAssetsYear != got.NetAssetsYear {
		t.Errorf("net-assets fields differ:\nwant %+v\ngot  %+v", want, got)
	}
}

func equalInt(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func equalInt64(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
