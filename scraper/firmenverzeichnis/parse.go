package firmenverzeichnis

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"firmenverzeichnis-scraper/models"
)

// iconFieldNames maps an icon's CSS class in the "Daten und Kontakte" section
// to its field name.
var iconFieldNames = map[string]string{
	"fa-globe":    models.FieldWebsite,
	"fa-envelope": models.FieldEmail,
	"fa-phone":    models.FieldPhone,
	"fa-fax":      models.FieldFax,
	"fa-group":    models.FieldEmployees,
	"fa-flag":     models.FieldYearFounded,
	"fa-money":    models.FieldNetAssets,
	"fa-map-pin":  models.FieldAddress,
}

// DirectoryEntry is one company row on the directory page: the name, the
// link to its detail page and the city shown next to it.
type DirectoryEntry struct {
	Name string
	URL  string
	City string
}

// ParseDirectory extracts the company entries from the directory page HTML.
func ParseDirectory(html, entryClass, cityClass string) ([]*DirectoryEntry, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("firmenverzeichnis: parse directory page: %w", err)
	}

	var entries []*DirectoryEntry
	doc.Find("div." + entryClass).Each(func(_ int, div *goquery.Selection) {
		link := div.Find("a").First()
		href, ok := link.Attr("href")
		if !ok || href == "" {
			return
		}

		entries = append(entries, &DirectoryEntry{
			Name: link.Text(),
			URL:  href,
			City: div.Find("div." + cityClass).First().Text(),
		})
	})
	return entries, nil
}

// ParseContactInfo extracts the field-name → text mapping from a company
// page's "Daten und Kontakte" section. A page without that section (or
// without a <dl> in it) yields an empty map.
func ParseContactInfo(html, contactClass string) (map[string]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("firmenverzeichnis: parse company page: %w", err)
	}

	section := doc.Find("div." + contactClass).First()
	if section.Length() == 0 {
		return map[string]string{}, nil
	}

	dl := section.Find("dl").First()
	if dl.Length() == 0 {
		return map[string]string{}, nil
	}

	// dt elements carry the icon that says what kind of value the paired
	// dd element holds.
	dts := dl.Find("dt")
	dds := dl.Find("dd")

	info := make(map[string]string)
	dts.Each(func(i int, dt *goquery.Selection) {
		if i >= dds.Length() {
			return
		}
		field, ok := iconFieldNames[iconClass(dt)]
		if !ok {
			return
		}

		dd := dds.Eq(i)
		if field == models.FieldAddress {
			// Address parts are separated by <br> elements.
			info[field] = strings.Join(textParts(dd), " ")
		} else {
			info[field] = dd.Text()
		}
	})
	return info, nil
}

// iconClass returns the second CSS class of the <i> inside a <dt>, the one
// naming the icon ("fa fa-phone" → "fa-phone").
func iconClass(dt *goquery.Selection) string {
	classes, ok := dt.Find("i").First().Attr("class")
	if !ok {
		return ""
	}
	parts := strings.Fields(classes)
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}

// textParts collects the trimmed, non-empty text fragments of a selection.
func textParts(sel *goquery.Selection) []string {
	var parts []string
	sel.Contents().Each(func(_ int, node *goquery.Selection) {
		if t := strings.TrimSpace(node.Text()); t != "" {
			parts = append(parts, t)
		}
	})
	return parts
}
