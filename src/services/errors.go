package services

import "errors"

// Sentinel errors for the dynamic-schema engine. Controllers translate these to
// HTTP statuses; services wrap them with context via fmt.Errorf("...: %w", ...).
var (
	// ErrInvalidName is returned when a table name does not match one of the
	// allowed prefixes (inscription_, provider_, pi_) or an identifier contains
	// characters outside the allowed set.
	ErrInvalidName = errors.New("nombre de tabla o columna inválido")

	// ErrInvalidFieldType is returned when a logical field type is not part of
	// the closed enumeration.
	ErrInvalidFieldType = errors.New("tipo de campo inválido")

	// ErrMissingField is returned when a required field or name is blank.
	ErrMissingField = errors.New("campo requerido faltante")

	// ErrNotFound is returned when a table, record or file does not exist.
	ErrNotFound = errors.New("no encontrado")

	// ErrNotEmpty is returned when a table with data is asked to be dropped.
	ErrNotEmpty = errors.New("la tabla contiene registros")

	// ErrColumnHasData is returned when a column with at least one non-null
	// value is asked to be removed.
	ErrColumnHasData = errors.New("la columna contiene datos")

	// ErrColumnHasForeignKey is returned when a column participating in a
	// foreign-key constraint is asked to be removed.
	ErrColumnHasForeignKey = errors.New("la columna participa en una clave foránea")

	// ErrRelatedRecordNotFound is returned when a foreign-key value does not
	// resolve to an existing row in the related table.
	ErrRelatedRecordNotFound = errors.New("registro relacionado no encontrado")

	// ErrNoValidFields is returned when an update has nothing valid to apply
	// after filtering against the live columns.
	ErrNoValidFields = errors.New("ningún campo válido para actualizar")

	// ErrUnsupportedOperation is returned for attempted in-place field edits.
	ErrUnsupportedOperation = errors.New("operación no soportada")
)
