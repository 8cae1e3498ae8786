package services

import (
	"testing"

	"github.com/ImpulsoLocal2024/impulso-local-back/src/dtos"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColumnDefinitionRendersPlainTypes(t *testing.T) {
	def, err := columnDefinition(dtos.FieldDefinitionDTO{Name: "nombre", Type: TypeVarchar})
	require.NoError(t, err)
	assert.Equal(t, `"nombre" varchar(255)`, def)

	def, err = columnDefinition(dtos.FieldDefinitionDTO{Name: "edad", Type: TypeInteger, Required: true})
	require.NoError(t, err)
	assert.Equal(t, `"edad" integer NOT NULL`, def)
}

func TestColumnDefinitionRendersForeignKeys(t *testing.T) {
	def, err := columnDefinition(dtos.FieldDefinitionDTO{
		Name:         "localidad_id",
		Type:         TypeForeignKey,
		RelatedTable: "inscription_localidad",
	})
	require.NoError(t, err)
	assert.Equal(t,
		`"localidad_id" integer REFERENCES "inscription_localidad" (id) ON UPDATE CASCADE ON DELETE SET NULL`,
		def)
}

func TestColumnDefinitionValidation(t *testing.T) {
	_, err := columnDefinition(dtos.FieldDefinitionDTO{Name: "   ", Type: TypeText})
	assert.ErrorIs(t, err, ErrMissingField)

	_, err = columnDefinition(dtos.FieldDefinitionDTO{Name: "nota;drop", Type: TypeText})
	assert.ErrorIs(t, err, ErrInvalidName)

	_, err = columnDefinition(dtos.FieldDefinitionDTO{Name: "nota", Type: "JSONB"})
	assert.ErrorIs(t, err, ErrInvalidFieldType)

	// FOREIGN_KEY without a related table
	_, err = columnDefinition(dtos.FieldDefinitionDTO{Name: "localidad_id", Type: TypeForeignKey})
	assert.ErrorIs(t, err, ErrMissingField)

	// Related table outside the naming contract
	_, err = columnDefinition(dtos.FieldDefinitionDTO{
		Name: "user_id", Type: TypeForeignKey, RelatedTable: "users",
	})
	assert.ErrorIs(t, err, ErrInvalidName)
}

func TestMatchColumn(t *testing.T) {
	columns := []ColumnInfo{{Name: "Nombre"}, {Name: "edad"}}

	actual, ok := matchColumn(columns, "nombre")
	assert.True(t, ok)
	assert.Equal(t, "Nombre", actual)

	actual, ok = matchColumn(columns, "EDAD")
	assert.True(t, ok)
	assert.Equal(t, "edad", actual)

	_, ok = matchColumn(columns, "telefono")
	assert.False(t, ok)
}
