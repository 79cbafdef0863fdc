package model

import (
	"sort"

	"github.com/yanun0323/errors"

	"main/pkg/exception"
)

// Registry maps instrument symbols to their fitted models. It is built once
// before the server accepts connections and never mutated afterwards, so all
// connection handlers read it concurrently without locking.
type Registry struct {
	models map[string]Model
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{models: make(map[string]Model)}
}

// Add registers a model for an instrument symbol. Symbols are case-sensitive
// and must be unique.
func (r *Registry) Add(instrument string, m Model) error {
	if instrument == "" {
		return errors.New("instrument symbol is empty")
	}
	if m == nil {
		return exception.ErrNilModel
	}
	if _, ok := r.models[instrument]; ok {
		return errors.Errorf("instrument already registered: %s", instrument)
	}
	r.models[instrument] = m
	return nil
}

// Lookup returns the model for an instrument symbol, exact match only.
func (r *Registry) Lookup(instrument string) (Model, bool) {
	m, ok := r.models[instrument]
	return m, ok
}

// Len returns the number of registered instruments.
func (r *Registry) Len() int {
	return len(r.models)
}

// Instruments returns the registered symbols in sorted order.
func (r *Registry) Instruments() []string {
	out := make([]string, 0, len(r.models))
	for instrument := range r.models {
		out = append(out, instrument)
	}
	sort.Strings(out)
	return out
}
