package services

import (
	"testing"

	"firmenverzeichnis-scraper/models"
	"firmenverzeichnis-scraper/utils"
)

func intPtr(v int) *int       { return &v }
func int64Ptr(v int64) *int64 { return &v }

func sampleCompanies() []*models.Company {
	return []*models.Company{
		{Name: "Alt AG", City: "Berlin", Website: "www.alt.de", YearFounded: intPtr(1890), Employees: intPtr(100), NetAssets: int64Ptr(1000000), NetAssetsCurrency: "€"},
		{Name: "Neu GmbH", City: "Berlin", Website: "www.neu.de/karriere", YearFounded: intPtr(2015), Employees: intPtr(50)},
		{Name: "Helvetia AG", City: "Zürich", Website: "www.helvetia.ch", YearFounded: intPtr(1950), NetAssets: int64Ptr(2000000), NetAssetsCurrency: "CHF", NetAssetsYear: "2021"},
		{Name: "Mittel KG", City: "Hamburg", YearFounded: intPtr(1970), Employees: intPtr(200)},
	}
}

func TestStatsCounts(t *testing.T) {
	svc := NewStatsService(testConfig(), utils.NewLogger())
	r := svc.Generate(sampleCompanies())

	if r.TotalCompanies != 4 {
		t.Errorf("TotalCompanies: got %d, want 4", r.TotalCompanies)
	}
	if r.YearFounded.Count != 4 {
		t.Errorf("YearFounded.Count: got %d, want 4", r.YearFounded.Count)
	}
	if r.Employees.Count != 3 {
		t.Errorf("Employees.Count: got %d, want 3", r.Employees.Count)
	}
	if r.NetAssetsEUR.Count != 2 {
		t.Errorf("NetAssetsEUR.Count: got %d, want 2", r.NetAssetsEUR.Count)
	}
}

func TestStatsNullCounts(t *testing.T) {
	svc := NewStatsService(testConfig(), utils.NewLogger())
	r := svc.Generate(sampleCompanies())

	if r.NullCounts[models.FieldEmployees] != 1 {
		t.Errorf("employees nulls: got %d, want 1", r.NullCounts[models.FieldEmployees])
	}
	if r.NullCounts[models.FieldNetAssets] != 2 {
		t.Errorf("net_assets nulls: got %d, want 2", r.NullCounts[models.FieldNetAssets])
	}
	if r.NullCounts["net_assets_year"] != 3 {
		t.Errorf("net_assets_year nulls: got %d, want 3", r.NullCounts["net_assets_year"])
	}
}

func TestStatsEURConversion(t *testing.T) {
	svc := NewStatsService(testConfig(), utils.NewLogger())
	r := svc.Generate(sampleCompanies())

	// 2,000,000 CHF at 1.05 beats 1,000,000 EUR.
	if r.LargestByAssets == nil {
		t.Fatal("LargestByAssets should not be nil")
	}
	if r.LargestByAssets.Name != "Helvetia AG" {
		t.Errorf("LargestByAssets: got %q, want Helvetia AG", r.LargestByAssets.Name)
	}
	if r.NetAssetsEUR.Max != 2100000 {
		t.Errorf("NetAssetsEUR.Max: got %.0f, want 2100000", r.NetAssetsEUR.Max)
	}
}

func TestStatsOldestOrdering(t *testing.T) {
	svc := NewStatsService(testConfig(), utils.NewLogger())
	r := svc.Generate(sampleCompanies())

	if len(r.Oldest) != 4 {
		t.Fatalf("Oldest: got %d entries, want 4", len(r.Oldest))
	}
	if r.Oldest[0].Name != "Alt AG" {
		t.Errorf("Oldest[0]: got %q, want Alt AG", r.Oldest[0].Name)
	}
}

func TestStatsCityAndDomainGrouping(t *testing.T) {
	svc := NewStatsService(testConfig(), utils.NewLogger())
	r := svc.Generate(sampleCompanies())

	if r.CompaniesByCity["Berlin"] != 2 {
		t.Errorf("Berlin count: got %d, want 2", r.CompaniesByCity["Berlin"])
	}
	if r.DomainCounts["de"] != 2 {
		t.Errorf("de domain count: got %d, want 2", r.DomainCounts["de"])
	}
	if r.DomainCounts["ch"] != 1 {
		t.Errorf("ch domain count: got %d, want 1", r.DomainCounts["ch"])
	}
}

func TestExtractDomain(t *testing.T) {
	tests := []struct {
		website string
		want    string
	}{
		{"www.example.de", "de"},
		{"www.example.de/about", "de"},
		{"www.example.co/path/deep", "co"},
		{"", ""},
		{"localhost", ""},
	}
	for _, tt := range tests {
		if got := ExtractDomain(tt.website); got != tt.want {
			t.Errorf("ExtractDomain(%q) = %q; want %q", tt.website, got, tt.want)
		}
	}
}

func TestStatsEmptyInput(t *testing.T) {
	svc := NewStatsService(testConfig(), utils.NewLogger())
	r := svc.Generate(nil)
	if r.TotalCompanies != 0 {
		t.Errorf("expected 0 companies for empty input")
	}
}
