package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

var one = decimal.NewFromInt(1)

// ExportFile owns the tables of one export plus the total byte budget and
// output file count. All validation that is not schema-related happens at
// construction; the value is read-only afterwards.
type ExportFile struct {
	tables        []Table
	dataSizeBytes uint64
	numberOfFiles uint64
	fileSizeBytes uint64
}

// NewExportFile validates the configuration and derives the per-file byte
// budget. Duplicate table ids and duplicate column names are deliberately
// not checked here; they surface at schema build time.
func NewExportFile(tables []Table, dataSizeBytes, numberOfFiles uint64) (*ExportFile, error) {
	if numberOfFiles >= dataSizeBytes {
		return nil, &TooManyFilesError{Files: numberOfFiles}
	}

	fileSizeBytes := dataSizeBytes / numberOfFiles

	if len(tables) == 0 {
		return nil, ErrReduceFailed
	}

	fileSize := decimal.NewFromUint64(fileSizeBytes)
	for _, t := range tables {
		if fileSize.Mul(t.percentSize).Cmp(decimal.NewFromUint64(t.rowSizeBytes)) < 0 {
			return nil, &TooManyFilesError{Files: numberOfFiles}
		}
	}

	sum := decimal.Zero
	for _, t := range tables {
		sum = sum.Add(t.percentSize)
	}
	if !sum.Equal(one) {
		return nil, &SumPercentSizeError{Sum: sum}
	}

	return &ExportFile{
		tables:        tables,
		dataSizeBytes: dataSizeBytes,
		numberOfFiles: numberOfFiles,
		fileSizeBytes: fileSizeBytes,
	}, nil
}

func (e *ExportFile) Tables() []Table { return e.tables }

func (e *ExportFile) DataSizeBytes() uint64 { return e.dataSizeBytes }

func (e *ExportFile) NumberOfFiles() uint64 { return e.numberOfFiles }

func (e *ExportFile) FileSizeBytes() uint64 { return e.fileSizeBytes }

// GenerateExport produces the text of one output file: every table generated
// in parallel against the per-file budget, concatenated in declaration
// order. The first failing table fails the export.
func (e *ExportFile) GenerateExport() (string, error) {
	parts := make([]string, len(e.tables))

	var g errgroup.Group
	for i, t := range e.tables {
		i, t := i, t
		g.Go(func() error {
			text, err := t.Generate(e.fileSizeBytes)
			if err != nil {
				return err
			}
			parts[i] = text
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}

	return strings.Join(parts, ""), nil
}

// RawTable wraps one table's structured generation outcome.
type RawTable struct {
	Rows [][]string
	Err  error
}

// GenerateRawTables generates every table's structured rows in parallel and
// keys the result-wrapped outcome by table id. A failing table does not
// prevent the others from being reported.
func (e *ExportFile) GenerateRawTables() map[string]RawTable {
	results := make([]RawTable, len(e.tables))

	var wg sync.WaitGroup
	for i, t := range e.tables {
		i, t := i, t
		wg.Add(1)
		go func() {
			defer wg.Done()
			rows, err := t.GenerateRows(e.fileSizeBytes)
			results[i] = RawTable{Rows: rows, Err: err}
		}()
	}
	wg.Wait()

	out := make(map[string]RawTable, len(e.tables))
	for i, t := range e.tables {
		out[t.id] = results[i]
	}
	return out
}

// RawTablesToString flattens a GenerateRawTables result back into a single
// text blob: each row's fields joined by delimiter, rows concatenated with
// no separator. Tables that failed to generate are skipped. Table order
// follows map iteration and is unspecified.
func RawTablesToString(tables map[string]RawTable, delimiter string) string {
	var b strings.Builder
	for _, rt := range tables {
		if rt.Err != nil {
			continue
		}
		for _, fields := range rt.Rows {
			b.WriteString(strings.Join(fields, delimiter))
		}
	}
	return b.String()
}

// GenerateExportToFile generates one export and writes it to path in a
// single create plus full write. No partial-file recovery on failure.
func (e *ExportFile) GenerateExportToFile(path string) error {
	exported, err := e.GenerateExport()
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(exported), 0o644)
}

// GenerateAllFiles writes numberOfFiles outputs under folderPath, creating
// it first. Each file is an independently regenerated export; generators are
// re-invoked per file. The first generation or write failure aborts the
// operation, leaving sibling files as written.
func (e *ExportFile) GenerateAllFiles(folderPath string) error {
	if err := os.MkdirAll(folderPath, 0o755); err != nil {
		return err
	}

	return forEachIndex(e.numberOfFiles, func(i uint64) error {
		name := fmt.Sprintf("file_%d_%d_%d.txt", e.fileSizeBytes, e.numberOfFiles, i)
		return e.GenerateExportToFile(filepath.Join(folderPath, name))
	})
}
