package registry

import (
	"fmt"
	"sort"
	"sync"

	"exportgen/internal/generators"
)

type GeneratorRegistry struct {
	mu        sync.RWMutex
	factories map[string]generators.Factory
}

func NewGeneratorRegistry() *GeneratorRegistry {
	return &GeneratorRegistry{
		factories: make(map[string]generators.Factory),
	}
}

func (r *GeneratorRegistry) Register(name string, factory generators.Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = factory
}

func (r *GeneratorRegistry) Get(name string) (generators.Factory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	factory, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("generator not found: %s", name)
	}
	return factory, nil
}

func (r *GeneratorRegistry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func DefaultGeneratorRegistry() *GeneratorRegistry {
	r := NewGeneratorRegistry()
	r.Register("const", &generators.ConstFactory{})
	r.Register("uuid4", &generators.UUID4Factory{})
	r.Register("alnum", &generators.AlnumFactory{})
	r.Register("digits", &generators.DigitsFactory{})
	r.Register("choice", &generators.ChoiceFactory{})
	r.Register("uniform_int", &generators.UniformIntFactory{})
	r.Register("faker_name", &generators.FakerNameFactory{})
	r.Register("faker_city", &generators.FakerCityFactory{})
	r.Register("faker_word", &generators.FakerWordFactory{})
	return r
}
