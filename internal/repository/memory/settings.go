// Package memory provides an in-process settings repository. Values are
// lost on restart; it is the default backend for local runs.
package memory

import (
	"context"
	"sync"
)

// SettingsRepo implements settings.Repository with a guarded map.
type SettingsRepo struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewSettingsRepo creates an empty in-memory settings repository.
func NewSettingsRepo() *SettingsRepo {
	return &SettingsRepo{values: make(map[string]string)}
}

func (r *SettingsRepo) Get(_ context.Context, key string) (string, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.values[key]
	return v, ok, nil
}

func (r *SettingsRepo) Set(_ context.Context, key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values[key] = value
	return nil
}
