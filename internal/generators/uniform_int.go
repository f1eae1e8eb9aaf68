package generators

import (
	"fmt"
	"math/rand"
	"strconv"

	"exportgen/internal/domain"
	"exportgen/internal/export"
)

type UniformIntFactory struct{}

func (f *UniformIntFactory) New(spec domain.GeneratorSpec) (export.ValueGenerator, error) {
	min, max, err := boundsParams(spec)
	if err != nil {
		return nil, err
	}
	return export.ValueFunc(func() (string, error) {
		return strconv.FormatInt(min+rand.Int63n(max-min), 10), nil
	}), nil
}

func (f *UniformIntFactory) Validate(spec domain.GeneratorSpec) error {
	_, _, err := boundsParams(spec)
	return err
}

func boundsParams(spec domain.GeneratorSpec) (int64, int64, error) {
	min, err := int64Param(spec.Params, "min")
	if err != nil {
		return 0, 0, err
	}
	max, err := int64Param(spec.Params, "max")
	if err != nil {
		return 0, 0, err
	}
	if max <= min {
		return 0, 0, fmt.Errorf("max (%d) must be greater than min (%d)", max, min)
	}
	return min, max, nil
}
