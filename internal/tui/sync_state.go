package tui

import (
	"sync"

	"github.com/zvonbot/zvonocli/internal/executor"
)

// RequestState tracks which controls have a request in flight
type RequestState struct {
	mu      sync.RWMutex
	pending map[executor.Control]bool
}

// NewRequestState creates an empty request state
func NewRequestState() *RequestState {
	return &RequestState{pending: make(map[executor.Control]bool)}
}

// Start marks the control as busy. It returns false when it already is.
func (r *RequestState) Start(c executor.Control) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.pending[c] {
		return false
	}
	r.pending[c] = true
	return true
}

// Finish marks the control as idle
func (r *RequestState) Finish(c executor.Control) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.pending, c)
}

// Pending returns whether the control has a request in flight
func (r *RequestState) Pending(c executor.Control) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.pending[c]
}

// Active returns whether any request is in flight
func (r *RequestState) Active() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.pending) > 0
}
