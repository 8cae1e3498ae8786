package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	excelize "github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// TransferService moves tabular data in and out of dynamic tables, mapping CSV
// rows against the live columns discovered at call time.
type TransferService struct {
	db      *gorm.DB
	catalog *CatalogService
}

func NewTransferService(db *gorm.DB, catalog *CatalogService) *TransferService {
	return &TransferService{db: db, catalog: catalog}
}

// ExportCSV writes the full table contents as CSV, header first, columns in
// catalog order.
func (s *TransferService) ExportCSV(table string, w io.Writer) error {
	columns, err := s.exportColumns(table)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	header := make([]string, len(columns))
	quoted := make([]string, len(columns))
	for i, col := range columns {
		header[i] = col.Name
		quoted[i] = quoteIdent(col.Name)
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY id",
		strings.Join(quoted, ", "), quoteIdent(table))
	rows, err := s.db.Raw(query).Rows()
	if err != nil {
		return fmt.Errorf("exportando %s: %w", table, err)
	}
	defer rows.Close()

	values := make([]interface{}, len(columns))
	valuePtrs := make([]interface{}, len(columns))
	for i := range values {
		valuePtrs[i] = &values[i]
	}
	for rows.Next() {
		if err := rows.Scan(valuePtrs...); err != nil {
			return err
		}
		record := make([]string, len(columns))
		for i, value := range values {
			record[i] = formatCSVValue(value)
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}
	writer.Flush()
	return writer.Error()
}

// ExportTemplate writes a CSV with the table's header and one example row of
// ejemplo_<column> placeholders, for the frontend to hand out as an import
// template.
func (s *TransferService) ExportTemplate(table string, w io.Writer) error {
	columns, err := s.exportColumns(table)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	header := make([]string, len(columns))
	example := make([]string, len(columns))
	for i, col := range columns {
		header[i] = col.Name
		example[i] = "ejemplo_" + col.Name
	}
	if err := writer.Write(header); err != nil {
		return err
	}
	if err := writer.Write(example); err != nil {
		return err
	}
	writer.Flush()
	return writer.Error()
}

// ExportExcel writes the table contents as an xlsx workbook with one sheet.
func (s *TransferService) ExportExcel(table string, w io.Writer) error {
	columns, err := s.exportColumns(table)
	if err != nil {
		return err
	}

	file := excelize.NewFile()
	defer file.Close()
	sheet := file.GetSheetName(0)

	header := make([]interface{}, len(columns))
	quoted := make([]string, len(columns))
	for i, col := range columns {
		header[i] = col.Name
		quoted[i] = quoteIdent(col.Name)
	}
	if err := file.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY id",
		strings.Join(quoted, ", "), quoteIdent(table))
	rows, err := s.db.Raw(query).Rows()
	if err != nil {
		return fmt.Errorf("exportando %s: %w", table, err)
	}
	defer rows.Close()

	values := make([]interface{}, len(columns))
	valuePtrs := make([]interface{}, len(columns))
	for i := range values {
		valuePtrs[i] = &values[i]
	}
	rowIndex := 2
	for rows.Next() {
		if err := rows.Scan(valuePtrs...); err != nil {
			return err
		}
		record := make([]interface{}, len(columns))
		for i, value := range values {
			record[i] = normalizeValue(value)
		}
		cell, err := excelize.CoordinatesToCellName(1, rowIndex)
		if err != nil {
			return err
		}
		if err := file.SetSheetRow(sheet, cell, &record); err != nil {
			return err
		}
		rowIndex++
	}
	if err := rows.Err(); err != nil {
		return err
	}
	return file.Write(w)
}

// ImportCSV stream-parses the uploaded file and inserts every row as one bulk
// operation. The temporary file is removed whether the import succeeds or not.
// Keys not matching a live column are dropped; text fields are trimmed (empty
// string, not null); the id column is skipped when it is auto-incrementing.
func (s *TransferService) ImportCSV(table string, path string) (int, error) {
	defer os.Remove(path)

	if !ValidTableName(table) {
		return 0, fmt.Errorf("%w: %s", ErrInvalidName, table)
	}
	columns, err := s.catalog.DescribeColumns(table)
	if err != nil {
		return 0, err
	}
	columnsByName := make(map[string]ColumnInfo, len(columns))
	for _, col := range columns {
		columnsByName[strings.ToLower(col.Name)] = col
	}

	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("abriendo archivo CSV: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("leyendo encabezado CSV: %w", err)
	}

	// Map header positions onto live columns; unknown headers and the serial id
	// are dropped.
	type boundColumn struct {
		index int
		col   ColumnInfo
	}
	var bound []boundColumn
	for i, name := range header {
		col, ok := columnsByName[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			continue
		}
		if strings.EqualFold(col.Name, "id") && col.IsSerial() {
			continue
		}
		bound = append(bound, boundColumn{index: i, col: col})
	}
	if len(bound) == 0 {
		return 0, fmt.Errorf("%w: el CSV no tiene columnas de %s", ErrNoValidFields, table)
	}

	var allValues []interface{}
	rowCount := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("leyendo fila %d del CSV: %w", rowCount+1, err)
		}
		if len(record) != len(header) {
			return 0, fmt.Errorf("fila %d: se esperaban %d columnas, llegaron %d",
				rowCount+1, len(header), len(record))
		}
		for _, b := range bound {
			allValues = append(allValues, coerceCSVValue(record[b.index], b.col))
		}
		rowCount++
	}
	if rowCount == 0 {
		return 0, nil
	}

	quoted := make([]string, len(bound))
	placeholders := make([]string, len(bound))
	for i, b := range bound {
		quoted[i] = quoteIdent(b.col.Name)
		placeholders[i] = "?"
	}
	rowPlaceholder := "(" + strings.Join(placeholders, ", ") + ")"
	rowPlaceholders := make([]string, rowCount)
	for i := range rowPlaceholders {
		rowPlaceholders[i] = rowPlaceholder
	}
	insertSQL := fmt.Sprintf("INSERT INTO %s (%s) VALUES %s",
		quoteIdent(table), strings.Join(quoted, ", "), strings.Join(rowPlaceholders, ", "))
	if err := s.db.Exec(insertSQL, allValues...).Error; err != nil {
		return 0, fmt.Errorf("insertando %d filas en %s: %w", rowCount, table, err)
	}
	return rowCount, nil
}

func (s *TransferService) exportColumns(table string) ([]ColumnInfo, error) {
	if !ValidTableName(table) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidName, table)
	}
	return s.catalog.DescribeColumns(table)
}

// coerceCSVValue converts one CSV cell to a bindable value based on the
// column's logical type. Text stays a trimmed string so empty cells import as
// "" instead of null; for every other type an empty cell is null.
func coerceCSVValue(value string, col ColumnInfo) interface{} {
	trimmed := strings.TrimSpace(value)
	logical := LogicalType(col.NativeType)

	if logical == TypeVarchar || logical == TypeText {
		return trimmed
	}
	if trimmed == "" || strings.EqualFold(trimmed, "null") {
		return nil
	}

	switch logical {
	case TypeInteger:
		if n, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
			return n
		}
	case TypeDecimal:
		if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return f
		}
	case TypeBoolean:
		switch strings.ToLower(trimmed) {
		case "true", "t", "si", "sí", "yes", "y", "1":
			return true
		case "false", "f", "no", "n", "0":
			return false
		}
	case TypeDate:
		if t, err := time.Parse("2006-01-02", trimmed); err == nil {
			return t
		}
		if t, err := time.Parse("02/01/2006", trimmed); err == nil {
			return t
		}
	}
	return trimmed
}

// formatCSVValue renders a scanned value for CSV output.
func formatCSVValue(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case []byte:
		return string(v)
	case time.Time:
		return v.Format("2006-01-02 15:04:05")
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
