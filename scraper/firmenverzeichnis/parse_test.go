package firmenverzeichnis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"firmenverzeichnis-scraper/models"
)

const directoryHTML = `
<html><body>
  <div class="infoservice-entry-holder">
    <a href="https://industrie.de/firmen/acme">ACME GmbH</a>
    <div class="meta-small">Berlin</div>
  </div>
  <div class="infoservice-entry-holder">
    <a href="https://industrie.de/firmen/helvetia">Helvetia AG</a>
    <div class="meta-small">Zürich</div>
  </div>
  <div class="infoservice-entry-holder">
    <span>No link here</span>
  </div>
</body></html>`

const companyHTML = `
<html><body>
  <div class="textwidget">
    <dl>
      <dt><i class="fa fa-globe"></i></dt><dd>https://acme.de</dd>
      <dt><i class="fa fa-envelope"></i></dt><dd>info@acme.de</dd>
      <dt><i class="fa fa-phone"></i></dt><dd>030 / 1234567</dd>
      <dt><i class="fa fa-group"></i></dt><dd>1.200 Mitarbeiter</dd>
      <dt><i class="fa fa-flag"></i></dt><dd>gegründet 1998</dd>
      <dt><i class="fa fa-money"></i></dt><dd>3,5 Mio Euro</dd>
      <dt><i class="fa fa-map-pin"></i></dt><dd>
        Musterstraße 5<br>
        10115 Berlin
      </dd>
      <dt><i class="fa fa-unknown"></i></dt><dd>ignored</dd>
    </dl>
  </div>
</body></html>`

func TestParseDirectory(t *testing.T) {
	entries, err := ParseDirectory(directoryHTML, "infoservice-entry-holder", "meta-small")
	require.NoError(t, err)
	require.Len(t, entries, 2, "entry without a link is skipped")

	assert.Equal(t, "ACME GmbH", entries[0].Name)
	assert.Equal(t, "https://industrie.de/firmen/acme", entries[0].URL)
	assert.Equal(t, "Berlin", entries[0].City)
	assert.Equal(t, "Zürich", entries[1].City)
}

func TestParseContactInfo(t *testing.T) {
	info, err := ParseContactInfo(companyHTML, "textwidget")
	require.NoError(t, err)

	assert.Equal(t, "https://acme.de", info[models.FieldWebsite])
	assert.Equal(t, "info@acme.de", info[models.FieldEmail])
	assert.Equal(t, "030 / 1234567", info[models.FieldPhone])
	assert.Equal(t, "1.200 Mitarbeiter", info[models.FieldEmployees])
	assert.Equal(t, "gegründet 1998", info[models.FieldYearFounded])
	assert.Equal(t, "3,5 Mio Euro", info[models.FieldNetAssets])

	// <br>-separated address parts are joined with single spaces.
	assert.Equal(t, "Musterstraße 5 10115 Berlin", info[models.FieldAddress])

	// Unknown icons are skipped.
	assert.Len(t, info, 7)
}

func TestParseContactInfoMissingSection(t *testing.T) {
	info, err := ParseContactInfo("<html><body><p>nothing</p></body></html>", "textwidget")
	require.NoError(t, err)
	assert.Empty(t, info)

	info, err = ParseContactInfo(`<html><body><div class="textwidget"><p>no dl</p></div></body></html>`, "textwidget")
	require.NoError(t, err)
	assert.Empty(t, info)
}
