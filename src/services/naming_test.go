package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidTableNameAcceptsTheThreePrefixes(t *testing.T) {
	assert.True(t, ValidTableName("inscription_caracterizacion"))
	assert.True(t, ValidTableName("provider_proveedores"))
	assert.True(t, ValidTableName("pi_formulacion"))
}

func TestValidTableNameRejectsOtherPrefixesAndBadCharacters(t *testing.T) {
	for _, name := range []string{
		"users",
		"inscriptions",
		"pi-formulacion",
		"inscription_datos; DROP TABLE users",
		"provider_\"x\"",
		"",
		"provider_ tabla",
	} {
		assert.False(t, ValidTableName(name), name)
	}
}

func TestQuoteIdentEscapesEmbeddedQuotes(t *testing.T) {
	assert.Equal(t, `"pi_formulacion"`, quoteIdent("pi_formulacion"))
	assert.Equal(t, `"Estado"`, quoteIdent("Estado"))
	assert.Equal(t, `"a""b"`, quoteIdent(`a"b`))
}

func TestCompatibleDomains(t *testing.T) {
	// Same-domain relations resolve
	assert.True(t, compatibleDomains("provider_proveedores", "provider_tipo"))
	assert.True(t, compatibleDomains("inscription_caracterizacion", "inscription_localidad"))

	// pi_ reaches into every domain
	assert.True(t, compatibleDomains("pi_formulacion", "pi_propuesta_mejora"))
	assert.True(t, compatibleDomains("pi_formulacion", "inscription_caracterizacion"))
	assert.True(t, compatibleDomains("pi_formulacion", "provider_proveedores"))

	// Cross-domain leakage is blocked
	assert.False(t, compatibleDomains("provider_proveedores", "inscription_caracterizacion"))
	assert.False(t, compatibleDomains("inscription_caracterizacion", "provider_proveedores"))
	assert.False(t, compatibleDomains("inscription_caracterizacion", "pi_formulacion"))

	// Tables outside the contract never resolve
	assert.False(t, compatibleDomains("users", "provider_proveedores"))
	assert.False(t, compatibleDomains("provider_proveedores", "users"))
}
