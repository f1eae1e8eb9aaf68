package export

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func twoTableExport(t *testing.T) *ExportFile {
	t.Helper()

	c := NewColumn("column", 3, "CHAR[3]", constGen("ABC"))

	t1 := NewTable("A", []Column{c}, "|", decimal.RequireFromString("0.5"))
	t2 := NewTable("B", []Column{c, c}, "|", decimal.RequireFromString("0.5"))

	ef, err := NewExportFile([]Table{t1, t2}, 2048, 1)
	if err != nil {
		t.Fatal(err)
	}
	return ef
}

func TestNewExportFileTooManyFiles(t *testing.T) {
	c := NewColumn("column", 3, "CHAR[3]", constGen("ABC"))
	tbl := NewTable("A", []Column{c}, "|", decimal.RequireFromString("1.0"))

	_, err := NewExportFile([]Table{tbl}, 100, 100)
	var tooMany *TooManyFilesError
	if !errors.As(err, &tooMany) {
		t.Fatalf("expected TooManyFilesError, got %v", err)
	}
	if tooMany.Files != 100 {
		t.Fatalf("unexpected file count in error: %d", tooMany.Files)
	}
}

func TestNewExportFileEmptyTables(t *testing.T) {
	_, err := NewExportFile(nil, 1024, 1)
	if !errors.Is(err, ErrReduceFailed) {
		t.Fatalf("expected ErrReduceFailed, got %v", err)
	}
}

func TestNewExportFileRowDoesNotFit(t *testing.T) {
	// per-file allotment: floor(1000/10) * 0.5 = 50 < row size 60
	c := NewColumn("column", 60, "CHAR[60]", constGen("x"))
	t1 := NewTable("A", []Column{c}, "|", decimal.RequireFromString("0.5"))
	t2 := NewTable("B", []Column{NewColumn("column", 1, "CHAR[1]", constGen("y"))}, "|", decimal.RequireFromString("0.5"))

	_, err := NewExportFile([]Table{t1, t2}, 1000, 10)
	var tooMany *TooManyFilesError
	if !errors.As(err, &tooMany) {
		t.Fatalf("expected TooManyFilesError, got %v", err)
	}
}

func TestNewExportFilePercentSumIncorrect(t *testing.T) {
	c := NewColumn("column", 3, "CHAR[3]", constGen("ABC"))
	t1 := NewTable("A", []Column{c}, "|", decimal.RequireFromString("0.5"))
	t2 := NewTable("B", []Column{c}, "|", decimal.RequireFromString("0.25"))

	_, err := NewExportFile([]Table{t1, t2}, 1024, 1)
	var sumErr *SumPercentSizeError
	if !errors.As(err, &sumErr) {
		t.Fatalf("expected SumPercentSizeError, got %v", err)
	}
	if !sumErr.Sum.Equal(decimal.RequireFromString("0.75")) {
		t.Fatalf("unexpected sum in error: %s", sumErr.Sum)
	}
}

func TestNewExportFileDuplicateTablesAllowed(t *testing.T) {
	// Duplicate ids only fail at schema build, never at construction.
	c := NewColumn("column", 3, "CHAR[3]", constGen("ABC"))
	t1 := NewTable("A", []Column{c}, "|", decimal.RequireFromString("0.5"))
	t2 := NewTable("A", []Column{c}, "|", decimal.RequireFromString("0.5"))

	ef, err := NewExportFile([]Table{t1, t2}, 1024, 1)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ef.GenerateExport(); err != nil {
		t.Fatalf("expected generation to succeed with duplicate ids, got %v", err)
	}
}

func TestFileSizeBytesFloor(t *testing.T) {
	c := NewColumn("column", 3, "CHAR[3]", constGen("ABC"))
	tbl := NewTable("A", []Column{c}, "|", decimal.RequireFromString("1.0"))

	ef, err := NewExportFile([]Table{tbl}, 1001, 4)
	if err != nil {
		t.Fatal(err)
	}
	if ef.FileSizeBytes() != 250 {
		t.Fatalf("expected file size 250, got %d", ef.FileSizeBytes())
	}
}

func TestGenerateExportRowCounts(t *testing.T) {
	ef := twoTableExport(t)

	text, err := ef.GenerateExport()
	if err != nil {
		t.Fatal(err)
	}

	// Table A: floor(2048*0.5)/3 = 341 rows, table B: floor(2048*0.5)/6 = 170.
	var aRows, bRows int
	for _, line := range strings.Split(strings.TrimSuffix(text, "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "A|"):
			aRows++
		case strings.HasPrefix(line, "B|"):
			bRows++
		default:
			t.Fatalf("unexpected line: %q", line)
		}
	}
	if aRows != 341 || bRows != 170 {
		t.Fatalf("expected 341/170 rows, got %d/%d", aRows, bRows)
	}

	// Declaration order: all of A before all of B.
	if idx := strings.Index(text, "B|"); idx < strings.LastIndex(text, "A|") {
		t.Fatal("expected table A rows to precede table B rows")
	}
}

func TestGenerateExportIdempotentForConstGenerator(t *testing.T) {
	ef := twoTableExport(t)

	first, err := ef.GenerateExport()
	if err != nil {
		t.Fatal(err)
	}
	second, err := ef.GenerateExport()
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Fatal("expected byte-identical exports")
	}
}

func TestGenerateExportFailFast(t *testing.T) {
	genErr := errors.New("no value")
	bad := NewColumn("column", 3, "CHAR[3]", failGen(genErr))
	good := NewColumn("column", 3, "CHAR[3]", constGen("ABC"))

	t1 := NewTable("A", []Column{good}, "|", decimal.RequireFromString("0.5"))
	t2 := NewTable("B", []Column{bad}, "|", decimal.RequireFromString("0.5"))

	ef, err := NewExportFile([]Table{t1, t2}, 2048, 1)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ef.GenerateExport(); !errors.Is(err, genErr) {
		t.Fatalf("expected generator error, got %v", err)
	}
}

func TestGenerateRawTables(t *testing.T) {
	ef := twoTableExport(t)

	raw := ef.GenerateRawTables()
	if len(raw) != 2 {
		t.Fatalf("expected 2 tables, got %d", len(raw))
	}

	a, ok := raw["A"]
	if !ok || a.Err != nil {
		t.Fatalf("missing or failed table A: %#v", a)
	}
	if len(a.Rows) != 341 {
		t.Fatalf("expected 341 rows for A, got %d", len(a.Rows))
	}
	if len(a.Rows[0]) != 2 || a.Rows[0][0] != "A" {
		t.Fatalf("unexpected first row: %#v", a.Rows[0])
	}

	b := raw["B"]
	if b.Err != nil || len(b.Rows) != 170 {
		t.Fatalf("unexpected table B: err=%v rows=%d", b.Err, len(b.Rows))
	}
}

func TestGenerateRawTablesKeepsFailures(t *testing.T) {
	genErr := errors.New("broken")
	t1 := NewTable("A", []Column{NewColumn("column", 3, "CHAR[3]", constGen("ABC"))}, "|", decimal.RequireFromString("0.5"))
	t2 := NewTable("B", []Column{NewColumn("column", 3, "CHAR[3]", failGen(genErr))}, "|", decimal.RequireFromString("0.5"))

	ef, err := NewExportFile([]Table{t1, t2}, 2048, 1)
	if err != nil {
		t.Fatal(err)
	}

	raw := ef.GenerateRawTables()
	if raw["A"].Err != nil {
		t.Fatalf("expected table A to succeed, got %v", raw["A"].Err)
	}
	if !errors.Is(raw["B"].Err, genErr) {
		t.Fatalf("expected table B failure, got %v", raw["B"].Err)
	}
}

func TestRawTablesToString(t *testing.T) {
	raw := map[string]RawTable{
		"A": {Rows: [][]string{{"A", "x"}, {"A", "y"}}},
		"B": {Err: errors.New("skipped")},
	}

	s := RawTablesToString(raw, ",")
	if s != "A,xA,y" {
		t.Fatalf("unexpected flattened text: %q", s)
	}
}

func TestGenerateExportToFile(t *testing.T) {
	ef := twoTableExport(t)

	path := filepath.Join(t.TempDir(), "export.txt")
	if err := ef.GenerateExportToFile(path); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Count(string(data), "\n") != 511 {
		t.Fatalf("expected 511 rows, got %d", strings.Count(string(data), "\n"))
	}
}

func TestGenerateAllFiles(t *testing.T) {
	c := NewColumn("column", 5, "CHAR[5]", constGen("ABCDE"))
	tbl := NewTable("T", []Column{c}, "|", decimal.RequireFromString("1.0"))

	ef, err := NewExportFile([]Table{tbl}, 1000, 4)
	if err != nil {
		t.Fatal(err)
	}

	dir := filepath.Join(t.TempDir(), "out")
	if err := ef.GenerateAllFiles(dir); err != nil {
		t.Fatal(err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 4 {
		t.Fatalf("expected 4 files, got %d", len(entries))
	}

	for i := 0; i < 4; i++ {
		path := filepath.Join(dir, "file_250_4_"+string(rune('0'+i))+".txt")
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		// floor(250 * 1.0) / 5 = 50 rows per file
		if strings.Count(string(data), "\n") != 50 {
			t.Fatalf("file %d: expected 50 rows, got %d", i, strings.Count(string(data), "\n"))
		}
	}
}
