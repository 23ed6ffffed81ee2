package tabular

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Table is a delimited file loaded into memory: a header of column
// names and the data rows beneath it. Cells are kept as raw strings;
// coercion happens when a caller asks for a typed value.
type Table struct {
	name    string
	columns []string
	index   map[string]int
	rows    [][]string
	lines   []int
}

// ReadFile reads a comma-delimited file with a mandatory header row.
func ReadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read table: %w", err)
	}
	defer f.Close()

	return Read(filepath.Base(path), f)
}

// Read parses delimited data from r. The name is used in error
// messages, typically the base file name.
func Read(name string, r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%s: missing header row", name)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: read header: %w", name, err)
	}
	// A UTF-8 BOM would otherwise corrupt the first column name.
	header[0] = strings.TrimPrefix(header[0], "\ufeff")

	t := &Table{
		name:    name,
		columns: header,
		index:   make(map[string]int, len(header)),
	}
	for i, col := range header {
		t.index[col] = i
	}

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: read rows: %w", name, err)
		}
		// Quoted cells may span lines, so the physical line of each
		// row comes from the parser.
		line, _ := reader.FieldPos(0)
		t.rows = append(t.rows, row)
		t.lines = append(t.lines, line)
	}

	return t, nil
}

// Name returns the table's name as used in error messages.
func (t *Table) Name() string { return t.name }

// Columns returns the header in file order.
func (t *Table) Columns() []string { return t.columns }

// Len returns the number of data rows.
func (t *Table) Len() int { return len(t.rows) }

// HasColumn reports whether the header contains the named column.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Require checks that every named column exists, so decoding can fail
// before any database interaction rather than midway through a run.
func (t *Table) Require(columns ...string) error {
	var missing []string
	for _, col := range columns {
		if !t.HasColumn(col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%s: missing required columns: %s", t.name, strings.Join(missing, ", "))
	}
	return nil
}

// Row returns the i-th data row.
func (t *Table) Row(i int) Row {
	return Row{table: t, cells: t.rows[i], line: t.lines[i]}
}

// Row is a single data row with access to cells by column name.
type Row struct {
	table *Table
	cells []string
	line  int
}

// Line returns the 1-based physical line number where this row starts
// in the source file. Rows after a quoted cell with embedded newlines
// keep accurate numbers.
func (r Row) Line() int { return r.line }

// String returns the raw cell under the named column, or "" when the
// column is absent or the cell empty.
func (r Row) String(column string) string {
	i, ok := r.table.index[column]
	if !ok || i >= len(r.cells) {
		return ""
	}
	return r.cells[i]
}

// IsMissing reports whether the cell under the named column is absent
// or empty.
func (r Row) IsMissing(column string) bool {
	return strings.TrimSpace(r.String(column)) == ""
}

// Float parses the cell under the named column. A missing cell yields
// nil; a malformed one yields an error naming the file, line and
// column.
func (r Row) Float(column string) (*float64, error) {
	v, err := ParseFloat(r.String(column))
	if err != nil {
		return nil, fmt.Errorf("%s: line %d: column %q: %w", r.table.name, r.line, column, err)
	}
	return v, nil
}

// Bool coerces the cell under the named column with ParseBool.
func (r Row) Bool(column string) bool {
	return ParseBool(r.String(column))
}
