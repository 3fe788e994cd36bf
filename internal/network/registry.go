// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package network

import (
	"fmt"
	"os"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

// File is the on-disk layout of the networks file.
type File struct {
	// Replace drops the built-in networks instead of merging into them.
	Replace  bool     `yaml:"replace"`
	Networks []Params `yaml:"networks"`
}

// Registry holds the known networks. It is safe for concurrent use; the
// file watcher swaps its contents from another goroutine.
type Registry struct {
	mu       sync.RWMutex
	networks map[string]Params
	onChange []func()
}

// NewRegistry creates a registry holding the given networks.
func NewRegistry(networks []Params) (*Registry, error) {
	r := &Registry{}
	if err := r.Replace(networks); err != nil {
		return nil, err
	}
	return r, nil
}

// NewDefaultRegistry creates a registry holding the built-in networks.
func NewDefaultRegistry() *Registry {
	r, err := NewRegistry(Defaults())
	if err != nil {
		panic(fmt.Sprintf("invalid built-in networks: %v", err))
	}
	return r
}

// Replace validates networks and swaps them in, then notifies listeners.
func (r *Registry) Replace(networks []Params) error {
	m := make(map[string]Params, len(networks))
	for _, p := range networks {
		if err := p.Validate(); err != nil {
			return err
		}
		if _, dup := m[p.Key]; dup {
			return fmt.Errorf("duplicate network key %q", p.Key)
		}
		m[p.Key] = p
	}

	r.mu.Lock()
	r.networks = m
	listeners := append([]func(){}, r.onChange...)
	r.mu.Unlock()

	for _, fn := range listeners {
		fn()
	}
	return nil
}

// OnChange registers fn to run after every successful Replace.
func (r *Registry) OnChange(fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onChange = append(r.onChange, fn)
}

// Get returns the network with the given key. The returned value is a copy.
func (r *Registry) Get(key string) (*Params, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.networks[key]
	if !ok {
		return nil, false
	}
	return &p, true
}

// List returns all networks ordered by Order, then Title.
func (r *Registry) List() []Params {
	r.mu.RLock()
	list := make([]Params, 0, len(r.networks))
	for _, p := range r.networks {
		list = append(list, p)
	}
	r.mu.RUnlock()

	sort.Slice(list, func(i, j int) bool {
		if list[i].Order != list[j].Order {
			return list[i].Order < list[j].Order
		}
		return list[i].Title < list[j].Title
	})
	return list
}

// LoadFile reads a networks file and returns the resulting network list:
// the built-in networks overlaid by the file's entries (by key), or only the
// file's entries when it sets replace. A missing file yields the defaults.
func LoadFile(path string) ([]Params, error) {
	if path == "" {
		return Defaults(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Defaults(), nil
		}
		return nil, fmt.Errorf("failed to read networks file: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse networks file: %w", err)
	}

	if f.Replace {
		return f.Networks, nil
	}

	merged := Defaults()
	index := make(map[string]int, len(merged))
	for i, p := range merged {
		index[p.Key] = i
	}
	for _, p := range f.Networks {
		if i, ok := index[p.Key]; ok {
			merged[i] = p
			continue
		}
		index[p.Key] = len(merged)
		merged = append(merged, p)
	}
	return merged, nil
}

// Reload re-reads the networks file into the registry.
func (r *Registry) Reload(path string) error {
	networks, err := LoadFile(path)
	if err != nil {
		return err
	}
	return r.Replace(networks)
}
