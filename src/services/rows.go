package services

import (
	"database/sql"
)

// scanRows reads every remaining row into maps keyed by column name. Dynamic
// tables have no compiled struct to scan into, so values come back as whatever
// the driver reports.
func scanRows(rows *sql.Rows) ([]map[string]interface{}, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	results := make([]map[string]interface{}, 0)
	values := make([]interface{}, len(columns))
	valuePtrs := make([]interface{}, len(columns))
	for i := range values {
		valuePtrs[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, err
		}
		record := make(map[string]interface{}, len(columns))
		for i, name := range columns {
			record[name] = normalizeValue(values[i])
		}
		results = append(results, record)
	}
	return results, rows.Err()
}

// normalizeValue converts driver byte slices to strings so rows serialize as
// text instead of base64.
func normalizeValue(value interface{}) interface{} {
	if b, ok := value.([]byte); ok {
		return string(b)
	}
	return value
}
