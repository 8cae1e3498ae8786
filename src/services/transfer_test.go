package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCoerceCSVValueTextStaysTrimmedString(t *testing.T) {
	varchar := ColumnInfo{Name: "nombre", NativeType: "character varying"}
	text := ColumnInfo{Name: "nota", NativeType: "text"}

	assert.Equal(t, "Ana", coerceCSVValue("  Ana  ", varchar))
	// Empty text cells import as "" rather than null
	assert.Equal(t, "", coerceCSVValue("", varchar))
	assert.Equal(t, "", coerceCSVValue("   ", text))
}

func TestCoerceCSVValueEmptyNonTextIsNull(t *testing.T) {
	integer := ColumnInfo{Name: "edad", NativeType: "integer"}
	assert.Nil(t, coerceCSVValue("", integer))
	assert.Nil(t, coerceCSVValue("NULL", integer))
	assert.Nil(t, coerceCSVValue("null", integer))
}

func TestCoerceCSVValueNumericAndBoolean(t *testing.T) {
	integer := ColumnInfo{Name: "edad", NativeType: "integer"}
	decimal := ColumnInfo{Name: "monto", NativeType: "numeric"}
	boolean := ColumnInfo{Name: "activo", NativeType: "boolean"}

	assert.Equal(t, int64(42), coerceCSVValue("42", integer))
	assert.Equal(t, 12.5, coerceCSVValue("12.5", decimal))
	assert.Equal(t, true, coerceCSVValue("si", boolean))
	assert.Equal(t, true, coerceCSVValue("1", boolean))
	assert.Equal(t, false, coerceCSVValue("no", boolean))

	// Unparseable values fall back to the raw string and let the DB decide
	assert.Equal(t, "abc", coerceCSVValue("abc", integer))
}

func TestCoerceCSVValueDates(t *testing.T) {
	date := ColumnInfo{Name: "fecha", NativeType: "date"}

	parsed, ok := coerceCSVValue("2024-03-15", date).(time.Time)
	assert.True(t, ok)
	assert.Equal(t, "2024-03-15", parsed.Format("2006-01-02"))

	parsed, ok = coerceCSVValue("15/03/2024", date).(time.Time)
	assert.True(t, ok)
	assert.Equal(t, "2024-03-15", parsed.Format("2006-01-02"))
}

func TestFormatCSVValue(t *testing.T) {
	assert.Equal(t, "", formatCSVValue(nil))
	assert.Equal(t, "hola", formatCSVValue([]byte("hola")))
	assert.Equal(t, "true", formatCSVValue(true))
	assert.Equal(t, "42", formatCSVValue(int64(42)))

	moment := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	assert.Equal(t, "2024-03-15 10:30:00", formatCSVValue(moment))
}

func TestColumnInfoIsSerial(t *testing.T) {
	serial := ColumnInfo{Name: "id", Default: "nextval('inscription_x_id_seq'::regclass)"}
	plain := ColumnInfo{Name: "edad", Default: ""}
	assert.True(t, serial.IsSerial())
	assert.False(t, plain.IsSerial())
}
