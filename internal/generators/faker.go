package generators

import (
	"math/rand"
	"sync"

	"github.com/go-faker/faker/v4"

	"exportgen/internal/domain"
	"exportgen/internal/export"
)

// faker shares one unsynchronized random source; calls are serialized.
var fakerMu sync.Mutex

type FakerNameFactory struct{}

func (f *FakerNameFactory) New(spec domain.GeneratorSpec) (export.ValueGenerator, error) {
	return export.ValueFunc(func() (string, error) {
		fakerMu.Lock()
		defer fakerMu.Unlock()
		return faker.Name(), nil
	}), nil
}

func (f *FakerNameFactory) Validate(spec domain.GeneratorSpec) error {
	return nil
}

type FakerWordFactory struct{}

func (f *FakerWordFactory) New(spec domain.GeneratorSpec) (export.ValueGenerator, error) {
	return export.ValueFunc(func() (string, error) {
		fakerMu.Lock()
		defer fakerMu.Unlock()
		return faker.Word(), nil
	}), nil
}

func (f *FakerWordFactory) Validate(spec domain.GeneratorSpec) error {
	return nil
}

type FakerCityFactory struct{}

func (f *FakerCityFactory) New(spec domain.GeneratorSpec) (export.ValueGenerator, error) {
	cities := []string{
		"New York", "Los Angeles", "Chicago", "Houston", "Phoenix",
		"Philadelphia", "San Antonio", "San Diego", "Dallas", "San Jose",
		"Austin", "Jacksonville", "Fort Worth", "Columbus", "Charlotte",
		"San Francisco", "Indianapolis", "Seattle", "Denver", "Washington",
		"Boston", "Nashville", "Detroit", "Portland", "Las Vegas",
		"London", "Paris", "Tokyo", "Berlin", "Madrid",
		"Rome", "Amsterdam", "Vienna", "Prague", "Barcelona",
		"Munich", "Milan", "Stockholm", "Copenhagen", "Oslo",
	}
	return export.ValueFunc(func() (string, error) {
		return cities[rand.Intn(len(cities))], nil
	}), nil
}

func (f *FakerCityFactory) Validate(spec domain.GeneratorSpec) error {
	return nil
}
