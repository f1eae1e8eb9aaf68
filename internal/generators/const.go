package generators

import (
	"exportgen/internal/domain"
	"exportgen/internal/export"
)

type ConstFactory struct{}

func (f *ConstFactory) New(spec domain.GeneratorSpec) (export.ValueGenerator, error) {
	value, err := stringParam(spec.Params, "value")
	if err != nil {
		return nil, err
	}
	return export.ValueFunc(func() (string, error) {
		return value, nil
	}), nil
}

func (f *ConstFactory) Validate(spec domain.GeneratorSpec) error {
	_, err := stringParam(spec.Params, "value")
	return err
}
