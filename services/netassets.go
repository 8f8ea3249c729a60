package services

import (
	"regexp"
	"strconv"
	"strings"

	"firmenverzeichnis-scraper/utils"
)

var (
	// reportingYearRegexp matches a reporting year, or a slash pair for
	// companies reporting across fiscal years ("2020/2021").
	reportingYearRegexp = regexp.MustCompile(`\b(20[1-2][0-9]|20[1-9][0-9]/20[1-9][0-9])\b`)
	// amountRegexp captures digit groups with "." or "," separators, plus an
	// optional magnitude word.
	amountRegexp = regexp.MustCompile(`(\d+(?:[.,]\d{3})*(?:,\d+)?)\s*(Mrd|Millionen|Million|Mio|Mill|Billion|M|million)?`)
	// currencyRegexp captures one free-text currency mention.
	currencyRegexp = regexp.MustCompile(`(Euro|€|Eur|CHF|U\.S\. Dollars|\$|Dollars|dollars)`)
)

// customerCountMarker flags statements that report a customer count instead
// of an asset value ("über 1000 Kunden"). Those must never yield an amount.
const customerCountMarker = "kunden"

// NetAssetsResult is the canonical outcome of parsing one net-assets
// statement. An unparseable statement leaves all fields empty; a statement
// flagged as a customer count keeps currency and year but no amount.
type NetAssetsResult struct {
	Amount   *int64
	Currency string
	Year     string
}

// netAssetsStatement is the raw extraction before resolution.
type netAssetsStatement struct {
	year      string
	number    string
	magnitude string
	currency  string
}

// NetAssetsParser converts free-text net-assets statements into normalized
// (amount, currency, year) triples using overridable lookup tables.
type NetAssetsParser struct {
	multipliers     map[string]float64
	currencies      map[string]string
	defaultCurrency string
	logger          *utils.Logger
}

// NewNetAssetsParser creates a parser with the given magnitude and currency
// tables and the fallback currency code.
func NewNetAssetsParser(multipliers map[string]float64, currencies map[string]string, defaultCurrency string, logger *utils.Logger) *NetAssetsParser {
	return &NetAssetsParser{
		multipliers:     multipliers,
		currencies:      currencies,
		defaultCurrency: defaultCurrency,
		logger:          logger,
	}
}

// extract pulls the year, numeric token, magnitude word and currency token
// out of the statement. The year span is removed first so its digits cannot
// be mistaken for the amount.
func (p *NetAssetsParser) extract(text string) netAssetsStatement {
	var st netAssetsStatement

	if m := reportingYearRegexp.FindString(text); m != "" {
		st.year = m
	}
	stripped := reportingYearRegexp.ReplaceAllString(text, "")

	if m := amountRegexp.FindStringSubmatch(stripped); m != nil {
		st.number = m[1]
		st.magnitude = m[2]
		if c := currencyRegexp.FindString(stripped); c != "" {
			st.currency = c
		}
	}
	return st
}

// Parse converts one statement. It never returns an error: "not parseable"
// is the zero NetAssetsResult.
func (p *NetAssetsParser) Parse(text string) NetAssetsResult {
	st := p.extract(text)
	if st.number == "" {
		return NetAssetsResult{}
	}

	// "." is a thousands separator, "," the decimal separator.
	cleaned := strings.ReplaceAll(st.number, ".", "")
	cleaned = strings.ReplaceAll(cleaned, ",", ".")
	value, err := strconv.ParseFloat(strings.TrimSpace(cleaned), 64)
	if err != nil {
		return NetAssetsResult{}
	}

	if st.magnitude != "" {
		mult, ok := p.multipliers[st.magnitude]
		if !ok {
			p.logger.Warn("[netassets] Unknown magnitude word %q in %q — multiplier 1 assumed", st.magnitude, text)
			mult = 1
		}
		value *= mult
	}

	if value == 0 {
		return NetAssetsResult{}
	}

	currency := p.defaultCurrency
	if st.currency != "" {
		if code, ok := p.currencies[st.currency]; ok {
			currency = code
		}
	}

	result := NetAssetsResult{Currency: currency, Year: st.year}
	// Statements counting customers keep their currency and year but never
	// report an amount.
	if !strings.Contains(strings.ToLower(text), customerCountMarker) {
		amount := int64(value)
		result.Amount = &amount
	}
	return result
}
