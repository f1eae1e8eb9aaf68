package generators

import (
	"errors"
	"math/rand"

	"exportgen/internal/domain"
	"exportgen/internal/export"
)

// The package-level math/rand source is used throughout: it is safe for
// concurrent use, which per-generator rand.Rand instances are not.

const alnumChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

const digitChars = "0123456789"

// AlnumFactory builds fixed-width random alphanumeric values; the 'width'
// param should match the column's declared size.
type AlnumFactory struct{}

func (f *AlnumFactory) New(spec domain.GeneratorSpec) (export.ValueGenerator, error) {
	width, err := widthParam(spec)
	if err != nil {
		return nil, err
	}
	return randomString(alnumChars, width), nil
}

func (f *AlnumFactory) Validate(spec domain.GeneratorSpec) error {
	_, err := widthParam(spec)
	return err
}

// DigitsFactory builds fixed-width random digit strings.
type DigitsFactory struct{}

func (f *DigitsFactory) New(spec domain.GeneratorSpec) (export.ValueGenerator, error) {
	width, err := widthParam(spec)
	if err != nil {
		return nil, err
	}
	return randomString(digitChars, width), nil
}

func (f *DigitsFactory) Validate(spec domain.GeneratorSpec) error {
	_, err := widthParam(spec)
	return err
}

func widthParam(spec domain.GeneratorSpec) (int, error) {
	width, err := int64Param(spec.Params, "width")
	if err != nil {
		return 0, err
	}
	if width <= 0 {
		return 0, errors.New("'width' must be positive")
	}
	return int(width), nil
}

func randomString(charset string, width int) export.ValueGenerator {
	return export.ValueFunc(func() (string, error) {
		b := make([]byte, width)
		for i := range b {
			b[i] = charset[rand.Intn(len(charset))]
		}
		return string(b), nil
	})
}
