package export

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrReduceFailed reports an export file with no tables; feasibility cannot
// be reduced over an empty table list.
var ErrReduceFailed = errors.New("reduce failed: export file has no tables")

// SumPercentSizeError reports table percentages that do not sum to exactly 1.
type SumPercentSizeError struct {
	Sum decimal.Decimal
}

func (e *SumPercentSizeError) Error() string {
	return fmt.Sprintf("sum of table percentage sizes must be equal 1, it was %s", e.Sum)
}

// DuplicateColumnError reports a repeated column name within one table.
type DuplicateColumnError struct {
	Table  string
	Column string
}

func (e *DuplicateColumnError) Error() string {
	return fmt.Sprintf("table %s has a duplicate column %s", e.Table, e.Column)
}

// DuplicateTableError reports a repeated table id across the export.
type DuplicateTableError struct {
	Table string
}

func (e *DuplicateTableError) Error() string {
	return fmt.Sprintf("export file contains duplicate table %s", e.Table)
}

// TooManyFilesError reports a file count too large for the data size, or a
// per-file allotment too small to fit one row of some table.
type TooManyFilesError struct {
	Files uint64
}

func (e *TooManyFilesError) Error() string {
	return fmt.Sprintf("too many files to generate: %d", e.Files)
}

// ConversionError reports a sized decimal that does not fit in a uint64.
type ConversionError struct {
	Value decimal.Decimal
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("failed to convert %s to uint64", e.Value)
}
