package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/ImpulsoLocal2024/impulso-local-back/src/dtos"
	"github.com/ImpulsoLocal2024/impulso-local-back/src/models"
	"gorm.io/gorm"
)

// SchemaService creates, alters and drops dynamic tables, and maintains the
// table registry and per-table field preferences.
type SchemaService struct {
	db      *gorm.DB
	catalog *CatalogService
}

func NewSchemaService(db *gorm.DB, catalog *CatalogService) *SchemaService {
	return &SchemaService{db: db, catalog: catalog}
}

// columnDefinition validates one declared field and renders its DDL fragment.
// Foreign keys reference the related table's id with update-cascade and
// delete-set-null semantics.
func columnDefinition(field dtos.FieldDefinitionDTO) (string, error) {
	name := strings.TrimSpace(field.Name)
	if name == "" {
		return "", fmt.Errorf("%w: nombre de campo vacío", ErrMissingField)
	}
	if !ValidIdentifier(name) {
		return "", fmt.Errorf("%w: columna %s", ErrInvalidName, name)
	}

	if field.Type == TypeForeignKey {
		related := strings.TrimSpace(field.RelatedTable)
		if related == "" {
			return "", fmt.Errorf("%w: campo %s requiere tabla relacionada", ErrMissingField, name)
		}
		if !ValidTableName(related) {
			return "", fmt.Errorf("%w: tabla relacionada %s", ErrInvalidName, related)
		}
		return fmt.Sprintf("%s integer REFERENCES %s (id) ON UPDATE CASCADE ON DELETE SET NULL",
			quoteIdent(name), quoteIdent(related)), nil
	}

	native, err := NativeType(field.Type)
	if err != nil {
		return "", fmt.Errorf("campo %s: %w", name, err)
	}
	def := fmt.Sprintf("%s %s", quoteIdent(name), native)
	if field.Required {
		def += " NOT NULL"
	}
	return def, nil
}

// CreateTable creates a dynamic table with an auto-increment id primary key
// plus the requested columns, then inserts its registry row. All validation
// happens before any DDL executes.
func (s *SchemaService) CreateTable(name string, isPrimary bool, fields []dtos.FieldDefinitionDTO) error {
	if !ValidTableName(name) {
		return fmt.Errorf("%w: %s", ErrInvalidName, name)
	}
	if len(fields) == 0 {
		return fmt.Errorf("%w: la tabla requiere al menos un campo", ErrMissingField)
	}

	columnDefs := []string{"id SERIAL PRIMARY KEY"}
	for _, field := range fields {
		def, err := columnDefinition(field)
		if err != nil {
			return err
		}
		columnDefs = append(columnDefs, def)
	}

	createSQL := fmt.Sprintf("CREATE TABLE %s (\n  %s\n)",
		quoteIdent(name), strings.Join(columnDefs, ",\n  "))
	if err := s.db.Exec(createSQL).Error; err != nil {
		return fmt.Errorf("creando tabla %s: %w", name, err)
	}

	entry := models.TableRegistryModel{Name: name, IsPrimary: isPrimary}
	if err := s.db.Create(&entry).Error; err != nil {
		return fmt.Errorf("registrando tabla %s: %w", name, err)
	}
	return nil
}

// DeleteTable drops an empty dynamic table. Tables with rows are refused. The
// registry row and any file attachments referencing the table are left behind:
// cleaning them up is the caller's responsibility.
func (s *SchemaService) DeleteTable(name string) error {
	if !ValidTableName(name) {
		return fmt.Errorf("%w: %s", ErrInvalidName, name)
	}
	if _, err := s.catalog.DescribeColumns(name); err != nil {
		return err
	}

	var count int64
	countSQL := fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteIdent(name))
	if err := s.db.Raw(countSQL).Scan(&count).Error; err != nil {
		return fmt.Errorf("contando registros de %s: %w", name, err)
	}
	if count > 0 {
		return fmt.Errorf("%w: %s tiene %d registros", ErrNotEmpty, name, count)
	}

	dropSQL := fmt.Sprintf("DROP TABLE %s", quoteIdent(name))
	if err := s.db.Exec(dropSQL).Error; err != nil {
		return fmt.Errorf("eliminando tabla %s: %w", name, err)
	}
	return nil
}

// EditTable adds and removes columns. In-place edits are unsupported. Column
// adds run as independent ALTERs: a failure partway leaves the earlier columns
// committed. Column removal is refused when the column holds any non-null value
// or participates in a foreign-key constraint.
func (s *SchemaService) EditTable(name string, changes dtos.EditTableDTO) error {
	if !ValidTableName(name) {
		return fmt.Errorf("%w: %s", ErrInvalidName, name)
	}
	if len(changes.FieldsToEdit) > 0 {
		return fmt.Errorf("%w: la edición de campos existentes no está soportada", ErrUnsupportedOperation)
	}

	columns, err := s.catalog.DescribeColumns(name)
	if err != nil {
		return err
	}

	for _, field := range changes.FieldsToAdd {
		def, err := columnDefinition(field)
		if err != nil {
			return err
		}
		alterSQL := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s", quoteIdent(name), def)
		if err := s.db.Exec(alterSQL).Error; err != nil {
			return fmt.Errorf("agregando columna %s a %s: %w", field.Name, name, err)
		}
	}

	for _, columnName := range changes.FieldsToDelete {
		actual, ok := matchColumn(columns, columnName)
		if !ok {
			return fmt.Errorf("%w: columna %s", ErrNotFound, columnName)
		}

		var withData int64
		dataSQL := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s IS NOT NULL",
			quoteIdent(name), quoteIdent(actual))
		if err := s.db.Raw(dataSQL).Scan(&withData).Error; err != nil {
			return fmt.Errorf("verificando datos de %s.%s: %w", name, actual, err)
		}
		if withData > 0 {
			return fmt.Errorf("%w: %s.%s", ErrColumnHasData, name, actual)
		}

		hasFK, err := s.catalog.ColumnHasForeignKey(name, actual)
		if err != nil {
			return err
		}
		if hasFK {
			return fmt.Errorf("%w: %s.%s", ErrColumnHasForeignKey, name, actual)
		}

		dropSQL := fmt.Sprintf("ALTER TABLE %s DROP COLUMN %s", quoteIdent(name), quoteIdent(actual))
		if err := s.db.Exec(dropSQL).Error; err != nil {
			return fmt.Errorf("eliminando columna %s.%s: %w", name, actual, err)
		}
	}

	return nil
}

// DescribeTable reports the live shape of a table with logical types and
// foreign-key targets, for the table-editor frontend.
func (s *SchemaService) DescribeTable(name string) ([]dtos.ColumnDescriptionDTO, error) {
	if !ValidTableName(name) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidName, name)
	}
	columns, err := s.catalog.DescribeColumns(name)
	if err != nil {
		return nil, err
	}
	fks, err := s.catalog.DescribeForeignKeys(name)
	if err != nil {
		return nil, err
	}

	relatedByColumn := make(map[string]string, len(fks))
	for _, fk := range fks {
		relatedByColumn[strings.ToLower(fk.Column)] = fk.RelatedTable
	}

	described := make([]dtos.ColumnDescriptionDTO, 0, len(columns))
	for _, col := range columns {
		desc := dtos.ColumnDescriptionDTO{
			Name:     col.Name,
			Type:     LogicalType(col.NativeType),
			Nullable: col.Nullable,
		}
		if related, ok := relatedByColumn[strings.ToLower(col.Name)]; ok {
			desc.Type = TypeForeignKey
			desc.RelatedTable = related
		}
		described = append(described, desc)
	}
	return described, nil
}

// ListTables returns the registry contents. Registry rows whose table has since
// been dropped are returned as-is.
func (s *SchemaService) ListTables() ([]models.TableRegistryModel, error) {
	var entries []models.TableRegistryModel
	if err := s.db.Order("table_name").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// UpdatePrimaryStatus flips the is_primary flag of a registry entry.
func (s *SchemaService) UpdatePrimaryStatus(name string, isPrimary bool) error {
	result := s.db.Model(&models.TableRegistryModel{}).
		Where("table_name = ?", name).
		Update("is_primary", isPrimary)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: tabla %s no registrada", ErrNotFound, name)
	}
	return nil
}

// SaveFieldPreference upserts the visible-column list for a table.
func (s *SchemaService) SaveFieldPreference(name string, visibleColumns []string) error {
	if !ValidTableName(name) {
		return fmt.Errorf("%w: %s", ErrInvalidName, name)
	}
	encoded, err := json.Marshal(visibleColumns)
	if err != nil {
		return err
	}

	var existing models.FieldPreferenceModel
	err = s.db.Where("table_name = ?", name).First(&existing).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		pref := models.FieldPreferenceModel{TableRef: name, VisibleColumns: string(encoded)}
		return s.db.Create(&pref).Error
	case err != nil:
		return err
	default:
		return s.db.Model(&existing).Update("visible_columns", string(encoded)).Error
	}
}

// GetFieldPreference returns the stored visible-column list, or nil when the
// table has no preference saved yet.
func (s *SchemaService) GetFieldPreference(name string) ([]string, error) {
	if !ValidTableName(name) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidName, name)
	}
	var pref models.FieldPreferenceModel
	err := s.db.Where("table_name = ?", name).First(&pref).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var columns []string
	if err := json.Unmarshal([]byte(pref.VisibleColumns), &columns); err != nil {
		return nil, fmt.Errorf("preferencia corrupta para %s: %w", name, err)
	}
	return columns, nil
}

// matchColumn resolves a caller-supplied column name against the live columns,
// case-insensitively, returning the catalog's spelling.
func matchColumn(columns []ColumnInfo, name string) (string, bool) {
	for _, col := range columns {
		if strings.EqualFold(col.Name, name) {
			return col.Name, true
		}
	}
	return "", false
}
