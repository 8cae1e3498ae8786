package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayColumnPicksFirstNonIDColumn(t *testing.T) {
	columns := []ColumnInfo{
		{Name: "id"},
		{Name: "Nombre localidad"},
		{Name: "codigo"},
	}
	assert.Equal(t, "Nombre localidad", displayColumn(columns))
}

func TestDisplayColumnSkipsIDRegardlessOfCase(t *testing.T) {
	columns := []ColumnInfo{
		{Name: "ID"},
		{Name: "descripcion"},
	}
	assert.Equal(t, "descripcion", displayColumn(columns))
}

func TestDisplayColumnFallsBackToID(t *testing.T) {
	assert.Equal(t, "id", displayColumn([]ColumnInfo{{Name: "id"}}))
	assert.Equal(t, "id", displayColumn(nil))
}
