package view

import (
	"slices"
	"sync"
)

// DefaultOption is the first dropdown entry; it leaves the choice to the server
const DefaultOption = "Auto"

// Dropdown is an outgoing phone selector: a default entry followed by options.
// Index 0 is the default entry.
type Dropdown struct {
	mu sync.RWMutex

	options  []string
	selected int
}

// NewDropdown creates a dropdown holding only the default entry
func NewDropdown() *Dropdown {
	return &Dropdown{}
}

// Populate replaces the options. An empty list leaves the dropdown untouched.
// The current selection survives when it is still offered, otherwise the
// default entry is selected.
func (d *Dropdown) Populate(phones []string) {
	if len(phones) == 0 {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	current := d.valueLocked()
	d.options = slices.Clone(phones)
	d.selected = 0
	if current == "" {
		return
	}
	if i := slices.Index(d.options, current); i >= 0 {
		d.selected = i + 1
	}
}

// Options returns the phone entries without the default entry
func (d *Dropdown) Options() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return slices.Clone(d.options)
}

// Select chooses a phone by value. It returns false when the value is not offered.
// An empty value selects the default entry.
func (d *Dropdown) Select(value string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if value == "" {
		d.selected = 0
		return true
	}
	i := slices.Index(d.options, value)
	if i < 0 {
		return false
	}
	d.selected = i + 1
	return true
}

// Next moves the selection down, wrapping to the default entry
func (d *Dropdown) Next() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.selected = (d.selected + 1) % (len(d.options) + 1)
}

// Prev moves the selection up, wrapping to the last option
func (d *Dropdown) Prev() {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := len(d.options) + 1
	d.selected = (d.selected - 1 + n) % n
}

// Value returns the selected phone, or "" for the default entry
func (d *Dropdown) Value() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.valueLocked()
}

// Label returns what the dropdown shows for the current selection
func (d *Dropdown) Label() string {
	if v := d.Value(); v != "" {
		return v
	}
	return DefaultOption
}

func (d *Dropdown) valueLocked() string {
	if d.selected == 0 || d.selected > len(d.options) {
		return ""
	}
	return d.options[d.selected-1]
}
