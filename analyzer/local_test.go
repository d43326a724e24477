package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeLocalMicrodataTier(t *testing.T) {
	html := `<html><body>
		<div itemscope itemtype="https://schema.org/Restaurant">
			<span itemprop="name">Trattoria Roma</span>
			<span itemprop="address">Via Verdi 12, 20121 Milano</span>
			<span itemprop="telephone">+39 02 1234567</span>
		</div>
	</body></html>`

	m := AnalyzeLocal(html, "Milano")
	assert.Equal(t, "Trattoria Roma", m.NAPDetails.Name)
	assert.Equal(t, "Via Verdi 12, 20121 Milano", m.NAPDetails.Address)
	assert.Equal(t, "+39 02 1234567", m.NAPDetails.Phone)
	assert.True(t, m.NAPConsistency)
	assert.True(t, m.MentionsLocation)
}

func TestAnalyzeLocalStructuredDataTier(t *testing.T) {
	html := `<html><body>
		<script type="application/ld+json">{
			"@context": "https://schema.org",
			"@type": "LocalBusiness",
			"name": "Pizzeria Napoli",
			"telephone": "+39 081 5551234",
			"address": {"streetAddress": "Via Toledo 45", "addressLocality": "Napoli", "postalCode": "80134"}
		}</script>
	</body></html>`

	m := AnalyzeLocal(html, "Napoli")
	assert.Equal(t, "Pizzeria Napoli", m.NAPDetails.Name)
	assert.Equal(t, "Via Toledo 45, Napoli 80134", m.NAPDetails.Address)
	assert.Equal(t, "+39 081 5551234", m.NAPDetails.Phone)
	assert.True(t, m.NAPConsistency)
	assert.True(t, m.HasLocalSchema)
}

func TestAnalyzeLocalTextTierPrefersContactSections(t *testing.T) {
	html := `<html><body>
		<p>Benvenuti nel nostro ristorante di Bergamo.</p>
		<footer>Contatti - Tel: 035 1234567 - Via Borgo Palazzo n. 100</footer>
	</body></html>`

	m := AnalyzeLocal(html, "Bergamo")
	assert.NotEmpty(t, m.NAPDetails.Phone)
	assert.NotEmpty(t, m.NAPDetails.Address)
	assert.False(t, m.NAPConsistency, "no business name found")
	assert.True(t, m.MentionsLocation)
}

func TestAnalyzeLocalInvalidValuesDiscarded(t *testing.T) {
	html := `<html><body>
		<span itemprop="name">Bar Centrale</span>
		<span itemprop="address">overseas</span>
		<span itemprop="telephone">12</span>
	</body></html>`

	m := AnalyzeLocal(html, "Torino")
	require.Equal(t, "Bar Centrale", m.NAPDetails.Name)
	assert.Empty(t, m.NAPDetails.Phone, "invalid phone must be dropped, not kept")
	assert.Empty(t, m.NAPDetails.Address, "invalid address must be dropped, not kept")
	assert.False(t, m.NAPConsistency)
}

func TestAnalyzeLocalPagesAndBusinessProfile(t *testing.T) {
	html := `<html><body>
		<a href="/ristorante-firenze">La nostra sede di Firenze</a>
		<a href="https://www.google.com/maps/place/xyz">Trovaci su Maps</a>
	</body></html>`

	m := AnalyzeLocal(html, "Firenze")
	assert.True(t, m.HasLocalPages)
	assert.Contains(t, m.GoogleBusinessProfileURL, "google.com/maps")
}

func TestAnalyzeLocalEmptyLocation(t *testing.T) {
	m := AnalyzeLocal("<html><body><p>testo</p></body></html>", "")
	assert.False(t, m.HasLocalPages)
	assert.False(t, m.NAPConsistency)
}

func TestSchemaAddress(t *testing.T) {
	assert.Equal(t, "Via Roma 1", schemaAddress("Via Roma 1"))
	assert.Equal(t, "Via Roma 1, Milano 20121", schemaAddress(map[string]any{
		"streetAddress":   "Via Roma 1",
		"addressLocality": "Milano",
		"postalCode":      "20121",
	}))
	assert.Empty(t, schemaAddress(map[string]any{"addressLocality": "Milano"}))
	assert.Empty(t, schemaAddress(nil))
	assert.Empty(t, schemaAddress(42))
}
