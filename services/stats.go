package services

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"firmenverzeichnis-scraper/config"
	"firmenverzeichnis-scraper/models"
	"firmenverzeichnis-scraper/utils"
)

// StatsService computes summary statistics over the cleaned dataset.
type StatsService struct {
	cfg    *config.Config
	logger *utils.Logger
}

func NewStatsService(cfg *config.Config, logger *utils.Logger) *StatsService {
	return &StatsService{cfg: cfg, logger: logger}
}

// Generate computes the report. Net assets are converted to EUR first so
// CHF and USD amounts are comparable with the rest.
func (s *StatsService) Generate(companies []*models.Company) *models.StatsReport {
	report := &models.StatsReport{
		NullCounts:      make(map[string]int),
		CompaniesByCity: make(map[string]int),
		DomainCounts:    make(map[string]int),
	}

	if len(companies) == 0 {
		return report
	}

	report.TotalCompanies = len(companies)

	var years, employees, assetsEUR []float64
	var withYear []*models.Company

	for _, c := range companies {
		if c.YearFounded != nil {
			years = append(years, float64(*c.YearFounded))
			withYear = append(withYear, c)
		} else {
			report.NullCounts[models.FieldYearFounded]++
		}

		if c.Employees != nil {
			employees = append(employees, float64(*c.Employees))
		} else {
			report.NullCounts[models.FieldEmployees]++
		}

		if c.NetAssets != nil {
			rate, ok := s.cfg.ExchangeRatesEUR[c.NetAssetsCurrency]
			if !ok {
				rate = 1.0
			}
			eur := float64(*c.NetAssets) * rate
			assetsEUR = append(assetsEUR, eur)
			if report.LargestByAssets == nil || eur > largestEUR(report.LargestByAssets, s.cfg.ExchangeRatesEUR) {
				report.LargestByAssets = c
			}
		} else {
			report.NullCounts[models.FieldNetAssets]++
		}

		if c.NetAssetsYear == "" {
			report.NullCounts["net_assets_year"]++
		}

		if c.City != "" {
			report.CompaniesByCity[c.City]++
		}
		if domain := ExtractDomain(c.Website); domain != "" {
			report.DomainCounts[domain]++
		}
	}

	report.YearFounded = summarize(years)
	report.Employees = summarize(employees)
	report.NetAssetsEUR = summarize(assetsEUR)

	// Five oldest companies by founding year.
	sort.Slice(withYear, func(i, j int) bool {
		return *withYear[i].YearFounded < *withYear[j].YearFounded
	})
	if len(withYear) > 5 {
		withYear = withYear[:5]
	}
	report.Oldest = withYear

	return report
}

func largestEUR(c *models.Company, rates map[string]float64) float64 {
	if c.NetAssets == nil {
		return 0
	}
	rate, ok := rates[c.NetAssetsCurrency]
	if !ok {
		rate = 1.0
	}
	return float64(*c.NetAssets) * rate
}

// ExtractDomain returns the top-level domain of a normalized website
// ("www.example.de/about" → "de").
func ExtractDomain(website string) string {
	if website == "" {
		return ""
	}
	parts := strings.Split(website, ".")
	if len(parts) < 2 {
		return ""
	}
	last := parts[len(parts)-1]
	return strings.SplitN(last, "/", 2)[0]
}

// summarize computes describe-style statistics over the values.
func summarize(values []float64) models.ColumnSummary {
	if len(values) == 0 {
		return models.ColumnSummary{}
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	var sum float64
	for _, v := range sorted {
		sum += v
	}
	mean := sum / float64(len(sorted))

	var variance float64
	for _, v := range sorted {
		variance += (v - mean) * (v - mean)
	}
	std := 0.0
	if len(sorted) > 1 {
		// Sample standard deviation.
		std = math.Sqrt(variance / float64(len(sorted)-1))
	}

	mid := len(sorted) / 2
	median := sorted[mid]
	if len(sorted)%2 == 0 {
		median = (sorted[mid-1] + sorted[mid]) / 2
	}

	return models.ColumnSummary{
		Count:  len(sorted),
		Mean:   mean,
		Std:    std,
		Min:    sorted[0],
		Median: median,
		Max:    sorted[len(sorted)-1],
	}
}

// Print renders the report to the terminal.
func (s *StatsService) Print(r *models.StatsReport) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  📊 COMPANY DIRECTORY SUMMARY\033[0m\n")
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	fmt.Printf("\033[1;33m  Overview\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Companies in dataset : \033[1m%d\033[0m\n", r.TotalCompanies)
	fmt.Println()

	fmt.Printf("\033[1;33m  Column Statistics\033[0m\n")
	fmt.Printf("  %s\n", thin)
	printSummary("year_founded", r.YearFounded, r.NullCounts[models.FieldYearFounded])
	printSummary("employees", r.Employees, r.NullCounts[models.FieldEmployees])
	printSummary("net_assets (EUR)", r.NetAssetsEUR, r.NullCounts[models.FieldNetAssets])
	fmt.Println()

	if r.LargestByAssets != nil {
		fmt.Printf("\033[1;33m  Largest Company by Net Assets\033[0m\n")
		fmt.Printf("  %s\n", thin)
		fmt.Printf("  %s\n", truncate(r.LargestByAssets.Name, 50))
		fmt.Printf("  City       : %s\n", r.LargestByAssets.City)
		fmt.Printf("  Net assets : \033[1;32m%d %s\033[0m\n",
			*r.LargestByAssets.NetAssets, r.LargestByAssets.NetAssetsCurrency)
		fmt.Println()
	}

	fmt.Printf("\033[1;33m  Five Oldest Companies\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if len(r.Oldest) == 0 {
		fmt.Printf("  No founding years available\n")
	} else {
		for i, c := range r.Oldest {
			fmt.Printf("  \033[1m%d.\033[0m %-40s \033[1;32m%d\033[0m\n",
				i+1, truncate(c.Name, 38), *c.YearFounded)
		}
	}
	fmt.Println()

	fmt.Printf("\033[1;33m  Website Domains (more than %d companies)\033[0m\n", s.cfg.MinDomainCount)
	fmt.Printf("  %s\n", thin)
	printBars(filterCounts(r.DomainCounts, s.cfg.MinDomainCount))
	fmt.Println()

	fmt.Printf("\033[1;33m  Companies by City\033[0m\n")
	fmt.Printf("  %s\n", thin)
	printBars(r.CompaniesByCity)

	fmt.Printf("\n\033[1;35m%s\033[0m\n\n", sep)
}

func printSummary(name string, cs models.ColumnSummary, nulls int) {
	if cs.Count == 0 {
		fmt.Printf("  %-18s no data (%d null)\n", name, nulls)
		return
	}
	fmt.Printf("  %-18s count %d | mean %.2f | std %.2f | min %.0f | median %.0f | max %.0f | null %d\n",
		name, cs.Count, cs.Mean, cs.Std, cs.Min, cs.Median, cs.Max, nulls)
}

func filterCounts(counts map[string]int, min int) map[string]int {
	filtered := make(map[string]int)
	for k, v := range counts {
		if v > min {
			filtered[k] = v
		}
	}
	return filtered
}

func printBars(counts map[string]int) {
	if len(counts) == 0 {
		fmt.Printf("  No data\n")
		return
	}
	type keyCount struct {
		key   string
		count int
	}
	var entries []keyCount
	for k, v := range counts {
		if k != "" {
			entries = append(entries, keyCount{k, v})
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].count > entries[j].count
	})
	for _, e := range entries {
		bar := strings.Repeat("█", e.count)
		fmt.Printf("  %-30s %s (%d)\n", truncate(e.key, 28), bar, e.count)
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
