package services

import (
	"fmt"
	"strings"
)

// Logical field types accepted by create/alter operations. The enumeration is
// closed and case-sensitive on input.
const (
	TypeVarchar    = "VARCHAR(255)"
	TypeText       = "TEXT"
	TypeInteger    = "INTEGER"
	TypeDecimal    = "DECIMAL"
	TypeBoolean    = "BOOLEAN"
	TypeDate       = "DATE"
	TypeForeignKey = "FOREIGN_KEY"
)

var logicalToNative = map[string]string{
	TypeVarchar: "varchar(255)",
	TypeText:    "text",
	TypeInteger: "integer",
	TypeDecimal: "numeric(12,2)",
	TypeBoolean: "boolean",
	TypeDate:    "date",
	// Foreign keys always map to the integer native type, referencing the
	// related table's id column.
	TypeForeignKey: "integer",
}

// NativeType maps a logical type name to the native column type used in DDL.
func NativeType(logical string) (string, error) {
	native, ok := logicalToNative[logical]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrInvalidFieldType, logical)
	}
	return native, nil
}

// LogicalType normalizes a catalog-reported native type back to the logical
// set. Unknown native types degrade to an uppercased passthrough: this path is
// display-only and never fails.
func LogicalType(native string) string {
	switch strings.ToLower(strings.TrimSpace(native)) {
	case "character varying", "varchar", "varchar(255)":
		return TypeVarchar
	case "text":
		return TypeText
	case "integer", "int", "int4", "serial", "bigint", "int8", "smallint", "int2":
		return TypeInteger
	case "numeric", "decimal", "numeric(12,2)", "double precision", "real":
		return TypeDecimal
	case "boolean", "bool":
		return TypeBoolean
	case "date":
		return TypeDate
	}
	return strings.ToUpper(native)
}
