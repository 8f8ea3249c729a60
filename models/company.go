package models

import "time"

// Field is a scraped value that knows whether it was present on the page.
// A missing <dd> and an empty <dd> are different things: the underpopulation
// filter counts the former, the normalizers tolerate the latter.
type Field struct {
	Value   string
	Present bool
}

// Some returns a present Field holding v.
func Some(v string) Field {
	return Field{Value: v, Present: true}
}

// None is the absent Field.
var None = Field{}

// Or returns the field value, or fallback when the field is absent.
func (f Field) Or(fallback string) string {
	if !f.Present {
		return fallback
	}
	return f.Value
}

// Raw field keys as they appear in the scraped record and the raw CSV.
const (
	FieldName        = "name"
	FieldCity        = "city"
	FieldAddress     = "address"
	FieldWebsite     = "website"
	FieldEmail       = "email"
	FieldPhone       = "phone"
	FieldFax         = "fax"
	FieldEmployees   = "employees"
	FieldYearFounded = "year_founded"
	FieldNetAssets   = "net_assets"
)

// RawColumns is the column order of the raw CSV.
var RawColumns = []string{
	FieldName, FieldCity, FieldAddress, FieldWebsite, FieldEmail,
	FieldPhone, FieldFax, FieldEmployees, FieldYearFounded, FieldNetAssets,
}

// CleanColumns is the canonical column order of the normalized dataset.
var CleanColumns = []string{
	FieldName, FieldCity, FieldAddress, FieldWebsite, FieldEmail,
	FieldPhone, FieldFax, FieldEmployees, FieldYearFounded, FieldNetAssets,
	"net_assets_currency", "net_assets_year",
}

// RawCompany holds unprocessed scraped data for one directory entry.
// It is written to CSV before any cleaning or transformation and never
// mutated after the scraper produces it.
type RawCompany struct {
	Name        Field
	City        Field
	Address     Field
	Website     Field
	Email       Field
	Phone       Field
	Fax         Field
	Employees   Field
	YearFounded Field
	NetAssets   Field

	ScrapedAt time.Time
}

// NewRawCompany builds a RawCompany from a field-name → text mapping, the
// shape the scraper's icon table produces. Keys not in the mapping stay absent.
func NewRawCompany(fields map[string]string) *RawCompany {
	r := &RawCompany{ScrapedAt: time.Now()}
	for key, val := range fields {
		switch key {
		case FieldName:
			r.Name = Some(val)
		case FieldCity:
			r.City = Some(val)
		case FieldAddress:
			r.Address = Some(val)
		case FieldWebsite:
			r.Website = Some(val)
		case FieldEmail:
			r.Email = Some(val)
		case FieldPhone:
			r.Phone = Some(val)
		case FieldFax:
			r.Fax = Some(val)
		case FieldEmployees:
			r.Employees = Some(val)
		case FieldYearFounded:
			r.YearFounded = Some(val)
		case FieldNetAssets:
			r.NetAssets = Some(val)
		}
	}
	return r
}

// fields returns the record's fields in RawColumns order.
func (r *RawCompany) fields() []Field {
	return []Field{
		r.Name, r.City, r.Address, r.Website, r.Email,
		r.Phone, r.Fax, r.Employees, r.YearFounded, r.NetAssets,
	}
}

// PresentCount reports how many of the ten fields were scraped.
func (r *RawCompany) PresentCount() int {
	n := 0
	for _, f := range r.fields() {
		if f.Present {
			n++
		}
	}
	return n
}

// Values returns the raw field texts in RawColumns order, empty for absent
// fields. Used for CSV rows and for exact-duplicate detection.
func (r *RawCompany) Values() []string {
	fs := r.fields()
	vals := make([]string, len(fs))
	for i, f := range fs {
		vals[i] = f.Value
	}
	return vals
}

// Company is the cleaned, typed record ready for storage.
// NetAssetsCurrency and NetAssetsYear are derived by the net-assets parser
// and are only ever populated together with a parse of NetAssets.
type Company struct {
	ID          int64
	Name        string
	City        string
	Address     string
	Website     string
	Email       string
	Phone       string
	Fax         string
	Employees   *int
	YearFounded *int
	NetAssets   *int64

	NetAssetsCurrency string
	NetAssetsYear     string

	CreatedAt time.Time
}

// ColumnSummary holds describe-style statistics for one numeric column.
type ColumnSummary struct {
	Count  int
	Mean   float64
	Std    float64
	Min    float64
	Median float64
	Max    float64
}

// StatsReport holds the computed summary statistics over the clean dataset.
type StatsReport struct {
	TotalCompanies  int
	YearFounded     ColumnSummary
	Employees       ColumnSummary
	NetAssetsEUR    ColumnSummary
	NullCounts      map[string]int
	CompaniesByCity map[string]int
	DomainCounts    map[string]int
	LargestByAssets *Company
	Oldest          []*Company
}
