package generators

import (
	"exportgen/internal/domain"
	"exportgen/internal/export"
)

// Factory builds a column value generator from a blueprint generator spec.
// Built generators must be safe for concurrent use; the export engine calls
// them from parallel tasks.
type Factory interface {
	New(spec domain.GeneratorSpec) (export.ValueGenerator, error)
	Validate(spec domain.GeneratorSpec) error
}
