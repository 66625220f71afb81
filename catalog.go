package tame

import (
	"fmt"
	"sync"
)

var (
	catalogMu sync.RWMutex
	catalog   = map[string][]interface{}{}
)

// RegisterModels makes models loadable under location, usually from the init
// function of the package declaring them:
//
//	func init() {
//		tame.RegisterModels("blog.models", &Author{}, &Post{})
//	}
func RegisterModels(location string, models ...interface{}) {
	catalogMu.Lock()
	defer catalogMu.Unlock()
	catalog[location] = append(catalog[location], models...)
}

// RegisterModels makes models loadable under location for this instance only
func (t *Tame) RegisterModels(location string, models ...interface{}) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.catalog[location] = append(t.catalog[location], models...)
}

// lookupModels returns models of location, the instance catalog wins over the global one
func (t *Tame) lookupModels(location string) ([]interface{}, error) {
	t.mu.RLock()
	models, ok := t.catalog[location]
	t.mu.RUnlock()
	if ok {
		return models, nil
	}

	catalogMu.RLock()
	defer catalogMu.RUnlock()
	if models, ok := catalog[location]; ok {
		return models, nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownLocation, location)
}
