package view

import (
	"fmt"
	"sync"
)

// TabSpec pairs a tab with the panel it shows
type TabSpec struct {
	Name  string
	Title string
	Panel string
}

// Tabs keeps exactly one tab/panel pair active
type Tabs struct {
	mu sync.RWMutex

	specs  []TabSpec
	active int
}

// NewTabs builds the tab set from an explicit mapping. The first tab starts active.
func NewTabs(specs []TabSpec) (*Tabs, error) {
	if len(specs) == 0 {
		return nil, fmt.Errorf("at least one tab is required")
	}
	seen := make(map[string]bool, len(specs))
	for _, spec := range specs {
		if spec.Name == "" || spec.Panel == "" {
			return nil, fmt.Errorf("tab %q: name and panel are required", spec.Name)
		}
		if seen[spec.Name] {
			return nil, fmt.Errorf("duplicate tab %q", spec.Name)
		}
		seen[spec.Name] = true
	}
	return &Tabs{specs: append([]TabSpec(nil), specs...)}, nil
}

// Activate makes the named tab the active one
func (t *Tabs) Activate(name string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i, spec := range t.specs {
		if spec.Name == name {
			t.active = i
			return nil
		}
	}
	return fmt.Errorf("unknown tab %q", name)
}

// Next activates the following tab, wrapping around
func (t *Tabs) Next() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.active = (t.active + 1) % len(t.specs)
}

// Prev activates the previous tab, wrapping around
func (t *Tabs) Prev() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.active = (t.active - 1 + len(t.specs)) % len(t.specs)
}

// Active returns the active tab name
func (t *Tabs) Active() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.specs[t.active].Name
}

// Panel returns the panel shown by the active tab
func (t *Tabs) Panel() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.specs[t.active].Panel
}

// Specs returns the tabs in display order
func (t *Tabs) Specs() []TabSpec {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return append([]TabSpec(nil), t.specs...)
}
