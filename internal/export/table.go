package export

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Table is an ordered set of columns sharing one row format and one
// delimiter, entitled to a fixed fraction of the per-file byte budget.
type Table struct {
	id           string
	columns      []Column
	delimiter    string
	percentSize  decimal.Decimal
	rowSizeBytes uint64
}

// NewTable derives the per-row byte cost as the sum of declared column
// sizes. The id field every generated row prepends is not counted; row-count
// arithmetic depends on this exact figure.
func NewTable(id string, columns []Column, delimiter string, percentSize decimal.Decimal) Table {
	var rowSize uint64
	for _, c := range columns {
		rowSize += c.size
	}
	return Table{
		id:           id,
		columns:      columns,
		delimiter:    delimiter,
		percentSize:  percentSize,
		rowSizeBytes: rowSize,
	}
}

func (t Table) ID() string { return t.id }

func (t Table) Columns() []Column { return t.columns }

func (t Table) Delimiter() string { return t.delimiter }

func (t Table) PercentSize() decimal.Decimal { return t.percentSize }

func (t Table) RowSizeBytes() uint64 { return t.rowSizeBytes }

// GenerateRowFields produces one record as a field slice: the table id
// followed by one generated value per column, in column order. The first
// failing generator aborts the row; remaining columns are not invoked.
func (t Table) GenerateRowFields() ([]string, error) {
	fields := make([]string, 0, len(t.columns)+1)
	fields = append(fields, t.id)
	for _, c := range t.columns {
		v, err := c.generator.Value()
		if err != nil {
			return nil, err
		}
		fields = append(fields, v)
	}
	return fields, nil
}

// GenerateRow produces one record as delimited text terminated by a newline.
func (t Table) GenerateRow() (string, error) {
	fields, err := t.GenerateRowFields()
	if err != nil {
		return "", err
	}
	return strings.Join(fields, t.delimiter) + "\n", nil
}

// rowCount sizes the table's slice of the per-file budget. Division is
// unguarded when the table declares no column width.
func (t Table) rowCount(fileSizeBytes uint64) (uint64, error) {
	tableSizeBytes, err := toUint64(decimal.NewFromUint64(fileSizeBytes).Mul(t.percentSize))
	if err != nil {
		return 0, err
	}
	return tableSizeBytes / t.rowSizeBytes, nil
}

// Generate produces the table's full text for one file: rowCount independent
// rows generated in parallel and concatenated in index order. Any failing
// row fails the whole table with no partial output.
func (t Table) Generate(fileSizeBytes uint64) (string, error) {
	rowCount, err := t.rowCount(fileSizeBytes)
	if err != nil {
		return "", err
	}

	rows := make([]string, rowCount)
	err = forEachIndex(rowCount, func(i uint64) error {
		row, err := t.GenerateRow()
		if err != nil {
			return err
		}
		rows[i] = row
		return nil
	})
	if err != nil {
		return "", err
	}

	return strings.Join(rows, ""), nil
}

// GenerateRows is the structured sibling of Generate: same sizing and
// parallel fan-out, collecting field slices in index order instead of
// flattened text.
func (t Table) GenerateRows(fileSizeBytes uint64) ([][]string, error) {
	rowCount, err := t.rowCount(fileSizeBytes)
	if err != nil {
		return nil, err
	}

	rows := make([][]string, rowCount)
	err = forEachIndex(rowCount, func(i uint64) error {
		fields, err := t.GenerateRowFields()
		if err != nil {
			return err
		}
		rows[i] = fields
		return nil
	})
	if err != nil {
		return nil, err
	}

	return rows, nil
}
