package services

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// ColumnInfo is one live column as reported by the catalog.
type ColumnInfo struct {
	Name       string `gorm:"column:column_name"`
	NativeType string `gorm:"column:data_type"`
	Nullable   bool   `gorm:"-"`
	Default    string `gorm:"column:column_default"`

	RawNullable string `gorm:"column:is_nullable" json:"-"`
}

// IsSerial reports whether the column is backed by an auto-increment sequence.
func (c ColumnInfo) IsSerial() bool {
	return strings.HasPrefix(c.Default, "nextval(")
}

// ForeignKeyInfo is one outgoing foreign-key constraint of a table.
type ForeignKeyInfo struct {
	Column        string `gorm:"column:column_name"`
	RelatedTable  string `gorm:"column:foreign_table_name"`
	RelatedColumn string `gorm:"column:foreign_column_name"`
}

// CatalogService reads live database metadata. Queries hit information_schema
// on every call: there is no cache, so a concurrent schema mutation is visible
// on the next request.
type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

// DescribeColumns returns the columns of a table in declaration order. A table
// with zero columns is reported as not found, which distinguishes "table does
// not exist" from "empty schema".
func (s *CatalogService) DescribeColumns(table string) ([]ColumnInfo, error) {
	var columns []ColumnInfo
	err := s.db.Raw(`
		SELECT column_name, data_type, is_nullable, COALESCE(column_default, '') AS column_default
		FROM information_schema.columns
		WHERE table_schema = 'public' AND lower(table_name) = lower(?)
		ORDER BY ordinal_position
	`, table).Scan(&columns).Error
	if err != nil {
		return nil, fmt.Errorf("consultando columnas de %s: %w", table, err)
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("%w: tabla %s", ErrNotFound, table)
	}
	for i := range columns {
		columns[i].Nullable = strings.EqualFold(columns[i].RawNullable, "YES")
	}
	return columns, nil
}

// DescribeForeignKeys returns the outgoing foreign-key constraints of a table.
func (s *CatalogService) DescribeForeignKeys(table string) ([]ForeignKeyInfo, error) {
	var fks []ForeignKeyInfo
	err := s.db.Raw(`
		SELECT
			kcu.column_name,
			ccu.table_name AS foreign_table_name,
			ccu.column_name AS foreign_column_name
		FROM information_schema.table_constraints tc
		JOIN information_schema.key_column_usage kcu
			ON tc.constraint_name = kcu.constraint_name
		JOIN information_schema.constraint_column_usage ccu
			ON ccu.constraint_name = tc.constraint_name
		WHERE tc.constraint_type = 'FOREIGN KEY'
			AND tc.table_schema = 'public'
			AND lower(tc.table_name) = lower(?)
	`, table).Scan(&fks).Error
	if err != nil {
		return nil, fmt.Errorf("consultando claves foráneas de %s: %w", table, err)
	}
	return fks, nil
}

// ColumnHasForeignKey reports whether a column participates in any foreign-key
// constraint, on either the referencing or the referenced side.
func (s *CatalogService) ColumnHasForeignKey(table, column string) (bool, error) {
	var count int64
	err := s.db.Raw(`
		SELECT
			(SELECT COUNT(*)
				FROM information_schema.table_constraints tc
				JOIN information_schema.key_column_usage kcu
					ON tc.constraint_name = kcu.constraint_name
				WHERE tc.constraint_type = 'FOREIGN KEY'
					AND lower(kcu.table_name) = lower(?)
					AND lower(kcu.column_name) = lower(?))
			+
			(SELECT COUNT(*)
				FROM information_schema.table_constraints tc
				JOIN information_schema.constraint_column_usage ccu
					ON tc.constraint_name = ccu.constraint_name
				WHERE tc.constraint_type = 'FOREIGN KEY'
					AND lower(ccu.table_name) = lower(?)
					AND lower(ccu.column_name) = lower(?))
	`, table, column, table, column).Scan(&count).Error
	if err != nil {
		return false, fmt.Errorf("consultando restricciones de %s.%s: %w", table, column, err)
	}
	return count > 0, nil
}

// TableExists reports whether a base table is present in the public schema.
func (s *CatalogService) TableExists(table string) (bool, error) {
	var exists bool
	err := s.db.Raw(`
		SELECT EXISTS (
			SELECT FROM information_schema.tables
			WHERE table_schema = 'public'
				AND table_type = 'BASE TABLE'
				AND lower(table_name) = lower(?)
		)
	`, table).Scan(&exists).Error
	if err != nil {
		return false, fmt.Errorf("consultando existencia de %s: %w", table, err)
	}
	return exists, nil
}
