package services

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	// yearRegexp captures the first run of four digits
	yearRegexp = regexp.MustCompile(`\d{4}`)
	// employeesRegexp captures a digit run with an optional "." thousands separator
	employeesRegexp = regexp.MustCompile(`\d+(?:\.\d+)?`)
)

// websiteNASentinel is how a missing website survives a CSV round trip.
const websiteNASentinel = "<na>"

// MalformedFieldError reports a field whose text was present but could not
// be parsed. It is returned per record; the batch continues.
type MalformedFieldError struct {
	Company string
	Field   string
	Value   string
}

func (e *MalformedFieldError) Error() string {
	return fmt.Sprintf("company %q: field %q: cannot parse %q", e.Company, e.Field, e.Value)
}

// NormalizeAddress removes the company name from the address, if present,
// and trims surrounding spaces and comma separators. Reapplying it to its
// own output changes nothing.
func NormalizeAddress(address, name string) string {
	result := address
	if name != "" {
		result = strings.ReplaceAll(result, name, "")
	}
	return strings.Trim(result, ", ")
}

// NormalizePhone keeps only digits and a leading "+". A non-empty number
// without an international prefix gets nationalPrefix prepended; a local
// leading zero is collapsed into the prefix so "030..." becomes "+4930...".
// Empty input yields empty output.
func NormalizePhone(raw, nationalPrefix string) string {
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '+' {
			b.WriteRune(r)
		}
	}
	clean := b.String()

	if clean != "" && !strings.HasPrefix(clean, "+") {
		clean = nationalPrefix + clean
		clean = strings.Replace(clean, nationalPrefix+"0", nationalPrefix, 1)
	}
	return clean
}

// ExtractYear returns the first four-digit run in the text. The surrounding
// context makes this a required field, so no run is an error.
func ExtractYear(raw string) (int, error) {
	match := yearRegexp.FindString(raw)
	if match == "" {
		return 0, &MalformedFieldError{Field: "year_founded", Value: raw}
	}
	year, err := strconv.Atoi(match)
	if err != nil {
		return 0, &MalformedFieldError{Field: "year_founded", Value: raw}
	}
	return year, nil
}

// ExtractEmployeeCount returns the first number in the text, with a German
// thousands separator removed ("1.200" → 1200). No digits is not an error,
// the field is simply absent.
func ExtractEmployeeCount(raw string) *int {
	match := employeesRegexp.FindString(raw)
	if match == "" {
		return nil
	}
	n, err := strconv.Atoi(strings.ReplaceAll(match, ".", ""))
	if err != nil {
		return nil
	}
	return &n
}

// NormalizeWebsite lower-cases the URL, strips the scheme and ensures a
// "www." prefix. The output is either empty or starts with "www.".
func NormalizeWebsite(raw string) string {
	website := strings.ToLower(raw)
	if website == websiteNASentinel {
		return ""
	}

	if strings.HasPrefix(website, "http://") {
		website = website[len("http://"):]
	} else if strings.HasPrefix(website, "https://") {
		website = website[len("https://"):]
	}

	if website != "" && !strings.HasPrefix(website, "www.") {
		website = "www." + website
	}
	return website
}
