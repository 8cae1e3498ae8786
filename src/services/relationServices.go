package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ImpulsoLocal2024/impulso-local-back/src/dtos"
	"gorm.io/gorm"
)

// RelationService resolves a table's foreign keys into human-readable label
// sets for UI selection controls.
type RelationService struct {
	db      *gorm.DB
	catalog *CatalogService
}

func NewRelationService(db *gorm.DB, catalog *CatalogService) *RelationService {
	return &RelationService{db: db, catalog: catalog}
}

// RelatedOptions returns, per foreign-key column of table, every row of the
// related table as {id, displayValue}. Relations crossing the domain boundary
// are skipped: provider_* and inscription_* tables only resolve within their
// own domain, pi_* tables resolve into any of the three. Related tables are
// expected to be small lookup sets, so the lists are unbounded.
func (s *RelationService) RelatedOptions(table string) (map[string][]dtos.RelatedOptionDTO, error) {
	fks, err := s.catalog.DescribeForeignKeys(table)
	if err != nil {
		return nil, err
	}

	related := make(map[string][]dtos.RelatedOptionDTO)
	for _, fk := range fks {
		if !compatibleDomains(table, fk.RelatedTable) {
			continue
		}

		columns, err := s.catalog.DescribeColumns(fk.RelatedTable)
		if errors.Is(err, ErrNotFound) {
			// Related table dropped since the FK was created.
			continue
		}
		if err != nil {
			return nil, err
		}

		display := displayColumn(columns)
		query := fmt.Sprintf("SELECT %s AS id, %s AS display FROM %s ORDER BY %s",
			quoteIdent("id"), quoteIdent(display), quoteIdent(fk.RelatedTable), quoteIdent("id"))
		rows, err := s.db.Raw(query).Rows()
		if err != nil {
			return nil, fmt.Errorf("resolviendo relación %s.%s: %w", table, fk.Column, err)
		}

		options := make([]dtos.RelatedOptionDTO, 0)
		for rows.Next() {
			var id, value interface{}
			if err := rows.Scan(&id, &value); err != nil {
				rows.Close()
				return nil, err
			}
			options = append(options, dtos.RelatedOptionDTO{
				ID:           normalizeValue(id),
				DisplayValue: normalizeValue(value),
			})
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return nil, err
		}
		rows.Close()

		related[fk.Column] = options
	}
	return related, nil
}

// displayColumn picks the label column for a related table: the first column
// that is not id, in catalog declaration order, falling back to id when the
// table has nothing else.
func displayColumn(columns []ColumnInfo) string {
	for _, col := range columns {
		if !strings.EqualFold(col.Name, "id") {
			return col.Name
		}
	}
	return "id"
}
