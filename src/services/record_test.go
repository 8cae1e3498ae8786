package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testColumns() []ColumnInfo {
	return []ColumnInfo{
		{Name: "id", NativeType: "integer"},
		{Name: "Nombre", NativeType: "character varying"},
		{Name: "edad", NativeType: "integer"},
		{Name: "activo", NativeType: "boolean"},
	}
}

func TestFilterFieldsMatchesCaseInsensitively(t *testing.T) {
	names, values := filterFields(testColumns(), map[string]interface{}{
		"nombre": "Ana",
		"EDAD":   30,
	})
	assert.Equal(t, []string{"Nombre", "edad"}, names)
	assert.Equal(t, []interface{}{"Ana", 30}, values)
}

func TestFilterFieldsDropsUnknownNilAndID(t *testing.T) {
	names, values := filterFields(testColumns(), map[string]interface{}{
		"id":        99,
		"Nombre":    nil,
		"telefono":  "555",
		"activo":    true,
		"__proto__": "x",
	})
	assert.Equal(t, []string{"activo"}, names)
	assert.Equal(t, []interface{}{true}, values)
}

func TestFilterFieldsEmptyInput(t *testing.T) {
	names, values := filterFields(testColumns(), map[string]interface{}{})
	assert.Empty(t, names)
	assert.Empty(t, values)
}

func TestNaturalKeyColumns(t *testing.T) {
	// pi_formulacion rows are keyed per characterization AND provider
	assert.Equal(t, []string{"caracterizacion_id", "rel_id_prov"}, naturalKeyColumns("pi_formulacion"))

	// Every other plan table has one row per characterization
	assert.Equal(t, []string{"caracterizacion_id"}, naturalKeyColumns("pi_propuesta_mejora"))
	assert.Equal(t, []string{"caracterizacion_id"}, naturalKeyColumns("pi_activos"))
}
