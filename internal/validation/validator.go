package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"exportgen/internal/domain"
	"exportgen/internal/registry"
)

type Validator struct {
	genRegistry *registry.GeneratorRegistry
}

func NewValidator(genRegistry *registry.GeneratorRegistry) *Validator {
	return &Validator{genRegistry: genRegistry}
}

// identifier validation: allow simple SQL identifiers only, since table and
// column names end up in downstream DDL.
var (
	identRe       = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	reservedWords = map[string]struct{}{
		"add": {}, "all": {}, "alter": {}, "and": {}, "any": {}, "as": {},
		"asc": {}, "between": {}, "by": {}, "case": {}, "check": {},
		"column": {}, "constraint": {}, "create": {}, "delete": {},
		"desc": {}, "distinct": {}, "drop": {}, "else": {}, "end": {},
		"exists": {}, "false": {}, "for": {}, "foreign": {}, "from": {},
		"group": {}, "having": {}, "in": {}, "index": {}, "inner": {},
		"insert": {}, "into": {}, "is": {}, "join": {}, "key": {},
		"left": {}, "like": {}, "limit": {}, "not": {}, "null": {},
		"offset": {}, "on": {}, "or": {}, "order": {}, "outer": {},
		"primary": {}, "references": {}, "right": {}, "select": {},
		"set": {}, "table": {}, "true": {}, "union": {}, "update": {},
		"values": {}, "where": {},
	}
)

func IsValidIdentifier(s string) bool {
	if !identRe.MatchString(s) {
		return false
	}
	_, reserved := reservedWords[strings.ToLower(s)]
	return !reserved
}

// ValidateBlueprint is a pre-flight lint of a blueprint document. It catches
// problems before any generator is built; the export engine re-checks the
// sizing invariants at construction on its own terms.
func (v *Validator) ValidateBlueprint(bp *domain.Blueprint) error {
	if bp == nil {
		return errors.New("blueprint is nil")
	}
	if bp.Name == "" {
		return errors.New("blueprint name is required")
	}
	if bp.DataSizeBytes == 0 {
		return errors.New("data_size_bytes must be positive")
	}
	if bp.NumberOfFiles == 0 {
		return errors.New("number_of_files must be positive")
	}
	if bp.NumberOfFiles >= bp.DataSizeBytes {
		return fmt.Errorf("number_of_files (%d) must be less than data_size_bytes (%d)", bp.NumberOfFiles, bp.DataSizeBytes)
	}
	if len(bp.Tables) == 0 {
		return errors.New("blueprint has no tables")
	}

	seenTables := make(map[string]struct{}, len(bp.Tables))
	sum := decimal.Zero

	for _, table := range bp.Tables {
		if err := v.validateTable(&table); err != nil {
			return err
		}

		if _, ok := seenTables[table.ID]; ok {
			return fmt.Errorf("duplicate table id: %s", table.ID)
		}
		seenTables[table.ID] = struct{}{}

		percent, err := decimal.NewFromString(table.PercentSize)
		if err != nil {
			return fmt.Errorf("table %s: invalid percent_size %q: %w", table.ID, table.PercentSize, err)
		}
		sum = sum.Add(percent)
	}

	if !sum.Equal(decimal.NewFromInt(1)) {
		return fmt.Errorf("table percent sizes must sum to 1, got %s", sum)
	}

	return nil
}

func (v *Validator) validateTable(table *domain.TableSpec) error {
	if !IsValidIdentifier(table.ID) {
		return fmt.Errorf("invalid table id: %q", table.ID)
	}
	if table.Delimiter == "" {
		return fmt.Errorf("table %s: delimiter is required", table.ID)
	}
	if len(table.Columns) == 0 {
		return fmt.Errorf("table %s has no columns", table.ID)
	}

	percent, err := decimal.NewFromString(table.PercentSize)
	if err != nil {
		return fmt.Errorf("table %s: invalid percent_size %q: %w", table.ID, table.PercentSize, err)
	}
	if percent.Sign() <= 0 || percent.Cmp(decimal.NewFromInt(1)) > 0 {
		return fmt.Errorf("table %s: percent_size must be in (0, 1], got %s", table.ID, percent)
	}

	seenColumns := make(map[string]struct{}, len(table.Columns))
	for _, col := range table.Columns {
		if !IsValidIdentifier(col.Name) {
			return fmt.Errorf("table %s: invalid column name: %q", table.ID, col.Name)
		}
		if _, ok := seenColumns[col.Name]; ok {
			return fmt.Errorf("table %s: duplicate column: %s", table.ID, col.Name)
		}
		seenColumns[col.Name] = struct{}{}

		if col.Size == 0 {
			return fmt.Errorf("table %s, column %s: size must be positive", table.ID, col.Name)
		}

		factory, err := v.genRegistry.Get(col.Generator.Type)
		if err != nil {
			return fmt.Errorf("table %s, column %s: %w", table.ID, col.Name, err)
		}
		if err := factory.Validate(col.Generator); err != nil {
			return fmt.Errorf("table %s, column %s: %w", table.ID, col.Name, err)
		}
	}

	return nil
}
