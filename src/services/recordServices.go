package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ImpulsoLocal2024/impulso-local-back/src/dtos"
	"gorm.io/gorm"
)

// RecordService is the generic accessor over dynamic tables: every operation
// materializes the table's shape from the catalog first and acts against that,
// so any table matching the naming contract is usable without compiled models.
type RecordService struct {
	db        *gorm.DB
	catalog   *CatalogService
	relations *RelationService
}

func NewRecordService(db *gorm.DB, catalog *CatalogService, relations *RelationService) *RecordService {
	return &RecordService{db: db, catalog: catalog, relations: relations}
}

// filterFields keeps only the entries of data matching a live column,
// case-insensitively, dropping nils and the id column. Column order follows the
// catalog so generated statements are deterministic.
func filterFields(columns []ColumnInfo, data map[string]interface{}) ([]string, []interface{}) {
	lowered := make(map[string]interface{}, len(data))
	for key, value := range data {
		if value == nil {
			continue
		}
		lowered[strings.ToLower(key)] = value
	}

	var names []string
	var values []interface{}
	for _, col := range columns {
		key := strings.ToLower(col.Name)
		if key == "id" {
			continue
		}
		if value, ok := lowered[key]; ok {
			names = append(names, col.Name)
			values = append(values, value)
		}
	}
	return names, values
}

// ListRecords returns all rows of a table matching the given equality filters.
// Filter keys are matched case-insensitively against live columns; unknown keys
// are ignored on purpose. pi_* tables are joined to the characterization table,
// and an Estado filter applies to the joined characterization's state, which
// gates plan-item visibility.
func (s *RecordService) ListRecords(table string, filters map[string]string) ([]map[string]interface{}, error) {
	if !ValidTableName(table) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidName, table)
	}
	columns, err := s.catalog.DescribeColumns(table)
	if err != nil {
		return nil, err
	}

	isPlan := strings.HasPrefix(table, PrefixPlan)
	query := fmt.Sprintf("SELECT t.* FROM %s t", quoteIdent(table))
	if isPlan {
		query += fmt.Sprintf(" INNER JOIN %s c ON c.id = t.caracterizacion_id", quoteIdent(CaracterizacionTable))
	}

	keys := make([]string, 0, len(filters))
	for key := range filters {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var clauses []string
	var args []interface{}
	for _, key := range keys {
		if isPlan && key == "Estado" {
			clauses = append(clauses, fmt.Sprintf("c.%s = ?", quoteIdent("Estado")))
			args = append(args, filters[key])
			continue
		}
		if actual, ok := matchColumn(columns, key); ok {
			clauses = append(clauses, fmt.Sprintf("t.%s = ?", quoteIdent(actual)))
			args = append(args, filters[key])
		}
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY t.id"

	rows, err := s.db.Raw(query, args...).Rows()
	if err != nil {
		return nil, fmt.Errorf("listando registros de %s: %w", table, err)
	}
	defer rows.Close()
	return scanRows(rows)
}

// GetRecordByID fetches one row and attaches the full candidate list of every
// same-domain relation, so the caller can render selection controls without a
// second round trip.
func (s *RecordService) GetRecordByID(table string, id int) (*dtos.RecordResponseDTO, error) {
	if !ValidTableName(table) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidName, table)
	}
	record, err := s.fetchByID(table, id)
	if err != nil {
		return nil, err
	}
	related, err := s.relations.RelatedOptions(table)
	if err != nil {
		return nil, err
	}
	return &dtos.RecordResponseDTO{Record: record, RelatedData: related}, nil
}

// CreateRecord inserts a row after verifying that every supplied foreign-key
// value resolves to an existing related row.
func (s *RecordService) CreateRecord(table string, data map[string]interface{}) (map[string]interface{}, error) {
	if !ValidTableName(table) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidName, table)
	}
	columns, err := s.catalog.DescribeColumns(table)
	if err != nil {
		return nil, err
	}

	names, values := filterFields(columns, data)
	if len(names) == 0 {
		return nil, fmt.Errorf("%w en %s", ErrNoValidFields, table)
	}

	if err := s.verifyForeignKeys(table, names, values); err != nil {
		return nil, err
	}

	quoted := make([]string, len(names))
	placeholders := make([]string, len(names))
	for i, name := range names {
		quoted[i] = quoteIdent(name)
		placeholders[i] = "?"
	}
	insertSQL := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING id",
		quoteIdent(table), strings.Join(quoted, ", "), strings.Join(placeholders, ", "))

	var newID int
	if err := s.db.Raw(insertSQL, values...).Scan(&newID).Error; err != nil {
		return nil, fmt.Errorf("insertando en %s: %w", table, err)
	}
	return s.fetchByID(table, newID)
}

// UpdateRecord applies a partial update to a provider_* or inscription_* row.
// Absent and null fields are left untouched; this is not a null-clearing write.
func (s *RecordService) UpdateRecord(table string, id int, data map[string]interface{}) (map[string]interface{}, error) {
	domain := tableDomain(table)
	if domain != PrefixProvider && domain != PrefixInscription {
		return nil, fmt.Errorf("%w: %s", ErrInvalidName, table)
	}
	return s.updateByID(table, id, data)
}

// UpdatePlanRecord is the pi_* variant of UpdateRecord.
func (s *RecordService) UpdatePlanRecord(table string, id int, data map[string]interface{}) (map[string]interface{}, error) {
	if tableDomain(table) != PrefixPlan {
		return nil, fmt.Errorf("%w: %s", ErrInvalidName, table)
	}
	return s.updateByID(table, id, data)
}

func (s *RecordService) updateByID(table string, id int, data map[string]interface{}) (map[string]interface{}, error) {
	if !ValidTableName(table) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidName, table)
	}
	columns, err := s.catalog.DescribeColumns(table)
	if err != nil {
		return nil, err
	}

	var count int64
	countSQL := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE id = ?", quoteIdent(table))
	if err := s.db.Raw(countSQL, id).Scan(&count).Error; err != nil {
		return nil, fmt.Errorf("verificando registro %d de %s: %w", id, table, err)
	}
	if count == 0 {
		return nil, fmt.Errorf("%w: registro %d en %s", ErrNotFound, id, table)
	}

	names, values := filterFields(columns, data)
	if len(names) == 0 {
		return nil, fmt.Errorf("%w en %s", ErrNoValidFields, table)
	}

	setClauses := make([]string, len(names))
	for i, name := range names {
		setClauses[i] = fmt.Sprintf("%s = ?", quoteIdent(name))
	}
	updateSQL := fmt.Sprintf("UPDATE %s SET %s WHERE id = ?",
		quoteIdent(table), strings.Join(setClauses, ", "))
	args := append(values, id)
	if err := s.db.Exec(updateSQL, args...).Error; err != nil {
		return nil, fmt.Errorf("actualizando registro %d de %s: %w", id, table, err)
	}
	return s.fetchByID(table, id)
}

// naturalKeyColumns returns the columns that identify a pi_* row for upsert:
// pi_formulacion rows are keyed by characterization plus provider, every other
// plan table by characterization alone.
func naturalKeyColumns(table string) []string {
	if table == "pi_formulacion" {
		return []string{"caracterizacion_id", "rel_id_prov"}
	}
	return []string{"caracterizacion_id"}
}

// CreateOrUpdateByNaturalKey gives pi_* tables idempotent save semantics: when
// a row matching the natural key exists it is updated, otherwise one is
// inserted. The check and the write run inside one transaction.
func (s *RecordService) CreateOrUpdateByNaturalKey(table string, data map[string]interface{}) (map[string]interface{}, error) {
	if tableDomain(table) != PrefixPlan {
		return nil, fmt.Errorf("%w: %s", ErrInvalidName, table)
	}
	columns, err := s.catalog.DescribeColumns(table)
	if err != nil {
		return nil, err
	}

	keyColumns := naturalKeyColumns(table)
	lowered := make(map[string]interface{}, len(data))
	for key, value := range data {
		lowered[strings.ToLower(key)] = value
	}
	keyValues := make([]interface{}, len(keyColumns))
	for i, keyCol := range keyColumns {
		value, ok := lowered[keyCol]
		if !ok || value == nil {
			return nil, fmt.Errorf("%w: %s", ErrMissingField, keyCol)
		}
		keyValues[i] = value
	}

	var recordID int
	err = s.db.Transaction(func(tx *gorm.DB) error {
		keyClauses := make([]string, len(keyColumns))
		for i, keyCol := range keyColumns {
			keyClauses[i] = fmt.Sprintf("%s = ?", quoteIdent(keyCol))
		}
		selectSQL := fmt.Sprintf("SELECT id FROM %s WHERE %s LIMIT 1",
			quoteIdent(table), strings.Join(keyClauses, " AND "))

		var ids []int
		if err := tx.Raw(selectSQL, keyValues...).Scan(&ids).Error; err != nil {
			return fmt.Errorf("buscando clave natural en %s: %w", table, err)
		}

		names, values := filterFields(columns, data)
		if len(names) == 0 {
			return fmt.Errorf("%w en %s", ErrNoValidFields, table)
		}

		if len(ids) > 0 {
			recordID = ids[0]
			setClauses := make([]string, len(names))
			for i, name := range names {
				setClauses[i] = fmt.Sprintf("%s = ?", quoteIdent(name))
			}
			updateSQL := fmt.Sprintf("UPDATE %s SET %s WHERE id = ?",
				quoteIdent(table), strings.Join(setClauses, ", "))
			args := append(values, recordID)
			return tx.Exec(updateSQL, args...).Error
		}

		quoted := make([]string, len(names))
		placeholders := make([]string, len(names))
		for i, name := range names {
			quoted[i] = quoteIdent(name)
			placeholders[i] = "?"
		}
		insertSQL := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING id",
			quoteIdent(table), strings.Join(quoted, ", "), strings.Join(placeholders, ", "))
		return tx.Raw(insertSQL, values...).Scan(&recordID).Error
	})
	if err != nil {
		return nil, err
	}
	return s.fetchByID(table, recordID)
}

// BulkUpdate applies the same field map to every row whose id is listed. Beyond
// column-name filtering there is no per-row validation.
func (s *RecordService) BulkUpdate(table string, ids []int, updates map[string]interface{}) (int64, error) {
	if !ValidTableName(table) {
		return 0, fmt.Errorf("%w: %s", ErrInvalidName, table)
	}
	if len(ids) == 0 {
		return 0, nil
	}
	columns, err := s.catalog.DescribeColumns(table)
	if err != nil {
		return 0, err
	}

	names, values := filterFields(columns, updates)
	if len(names) == 0 {
		return 0, fmt.Errorf("%w en %s", ErrNoValidFields, table)
	}

	setClauses := make([]string, len(names))
	for i, name := range names {
		setClauses[i] = fmt.Sprintf("%s = ?", quoteIdent(name))
	}
	updateSQL := fmt.Sprintf("UPDATE %s SET %s WHERE id IN ?",
		quoteIdent(table), strings.Join(setClauses, ", "))
	args := append(values, ids)
	result := s.db.Exec(updateSQL, args...)
	if result.Error != nil {
		return 0, fmt.Errorf("actualización masiva en %s: %w", table, result.Error)
	}
	return result.RowsAffected, nil
}

// DeleteRecord hard-deletes a pi_* row. There is no soft delete and no cascade
// to file attachments.
func (s *RecordService) DeleteRecord(table string, id int) error {
	if !ValidTableName(table) {
		return fmt.Errorf("%w: %s", ErrInvalidName, table)
	}
	if tableDomain(table) != PrefixPlan {
		return fmt.Errorf("%w: eliminación de registros solo para tablas pi_", ErrUnsupportedOperation)
	}
	deleteSQL := fmt.Sprintf("DELETE FROM %s WHERE id = ?", quoteIdent(table))
	result := s.db.Exec(deleteSQL, id)
	if result.Error != nil {
		return fmt.Errorf("eliminando registro %d de %s: %w", id, table, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: registro %d en %s", ErrNotFound, id, table)
	}
	return nil
}

// verifyForeignKeys checks that every supplied FK value resolves in its related
// table before any insert executes.
func (s *RecordService) verifyForeignKeys(table string, names []string, values []interface{}) error {
	fks, err := s.catalog.DescribeForeignKeys(table)
	if err != nil {
		return err
	}
	if len(fks) == 0 {
		return nil
	}
	fkByColumn := make(map[string]ForeignKeyInfo, len(fks))
	for _, fk := range fks {
		fkByColumn[strings.ToLower(fk.Column)] = fk
	}

	for i, name := range names {
		fk, ok := fkByColumn[strings.ToLower(name)]
		if !ok {
			continue
		}
		var count int64
		checkSQL := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s = ?",
			quoteIdent(fk.RelatedTable), quoteIdent(fk.RelatedColumn))
		if err := s.db.Raw(checkSQL, values[i]).Scan(&count).Error; err != nil {
			return fmt.Errorf("verificando referencia %s.%s: %w", table, name, err)
		}
		if count == 0 {
			return fmt.Errorf("%w: %s=%v en %s", ErrRelatedRecordNotFound, name, values[i], fk.RelatedTable)
		}
	}
	return nil
}

func (s *RecordService) fetchByID(table string, id int) (map[string]interface{}, error) {
	query := fmt.Sprintf("SELECT * FROM %s WHERE id = ?", quoteIdent(table))
	rows, err := s.db.Raw(query, id).Rows()
	if err != nil {
		return nil, fmt.Errorf("consultando registro %d de %s: %w", id, table, err)
	}
	defer rows.Close()

	records, err := scanRows(rows)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: registro %d en %s", ErrNotFound, id, table)
	}
	return records[0], nil
}
