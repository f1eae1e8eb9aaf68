package generators

import (
	"github.com/google/uuid"

	"exportgen/internal/domain"
	"exportgen/internal/export"
)

type UUID4Factory struct{}

func (f *UUID4Factory) New(spec domain.GeneratorSpec) (export.ValueGenerator, error) {
	return export.ValueFunc(func() (string, error) {
		u, err := uuid.NewRandom()
		if err != nil {
			return "", err
		}
		return u.String(), nil
	}), nil
}

func (f *UUID4Factory) Validate(spec domain.GeneratorSpec) error {
	return nil
}
