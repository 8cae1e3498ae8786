package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNativeTypeMapsTheClosedEnumeration(t *testing.T) {
	cases := map[string]string{
		TypeVarchar:    "varchar(255)",
		TypeText:       "text",
		TypeInteger:    "integer",
		TypeDecimal:    "numeric(12,2)",
		TypeBoolean:    "boolean",
		TypeDate:       "date",
		TypeForeignKey: "integer",
	}
	for logical, expected := range cases {
		native, err := NativeType(logical)
		require.NoError(t, err, logical)
		assert.Equal(t, expected, native)
	}
}

func TestNativeTypeRejectsUnknownAndLowercaseInput(t *testing.T) {
	for _, logical := range []string{"varchar(255)", "text", "JSONB", "", "VARCHAR"} {
		_, err := NativeType(logical)
		assert.ErrorIs(t, err, ErrInvalidFieldType, logical)
	}
}

func TestLogicalTypeNormalizesCatalogOutput(t *testing.T) {
	cases := map[string]string{
		"character varying": TypeVarchar,
		"varchar":           TypeVarchar,
		"text":              TypeText,
		"integer":           TypeInteger,
		"int4":              TypeInteger,
		"bigint":            TypeInteger,
		"numeric":           TypeDecimal,
		"boolean":           TypeBoolean,
		"date":              TypeDate,
	}
	for native, expected := range cases {
		assert.Equal(t, expected, LogicalType(native), native)
	}
}

func TestLogicalTypeDegradesToUppercasePassthrough(t *testing.T) {
	assert.Equal(t, "JSONB", LogicalType("jsonb"))
	assert.Equal(t, "TIMESTAMP WITH TIME ZONE", LogicalType("timestamp with time zone"))
}

func TestLogicalTypeRoundTripsThroughNativeType(t *testing.T) {
	for _, logical := range []string{TypeVarchar, TypeText, TypeInteger, TypeDecimal, TypeBoolean, TypeDate} {
		native, err := NativeType(logical)
		require.NoError(t, err)
		assert.Equal(t, logical, LogicalType(native), logical)
	}
}
