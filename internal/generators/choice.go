package generators

import (
	"math/rand"

	"exportgen/internal/domain"
	"exportgen/internal/export"
)

// ChoiceFactory builds generators that pick uniformly from a fixed 'values'
// list.
type ChoiceFactory struct{}

func (f *ChoiceFactory) New(spec domain.GeneratorSpec) (export.ValueGenerator, error) {
	values, err := stringSliceParam(spec.Params, "values")
	if err != nil {
		return nil, err
	}
	return export.ValueFunc(func() (string, error) {
		return values[rand.Intn(len(values))], nil
	}), nil
}

func (f *ChoiceFactory) Validate(spec domain.GeneratorSpec) error {
	_, err := stringSliceParam(spec.Params, "values")
	return err
}
