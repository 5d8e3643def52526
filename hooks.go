package restock

import (
	"sync"

	"github.com/agentstation/restock/pkg/inventory"
)

// Hook function types for run events
type (
	// WarningHook is called for every degradation recorded during a run
	WarningHook func(warning error)

	// OversellHook is called for every updated ledger line with negative stock
	OversellHook func(line inventory.Line)
)

// hooks manages event callbacks for reconciliation runs
type hooks struct {
	mu         sync.RWMutex
	onWarning  []WarningHook
	onOversell []OversellHook
}

// newHooks creates a new hooks instance
func newHooks() *hooks {
	return &hooks{}
}

// OnWarning registers a callback for run warnings
func (h *hooks) OnWarning(fn WarningHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onWarning = append(h.onWarning, fn)
}

// OnOversell registers a callback for oversold lines
func (h *hooks) OnOversell(fn OversellHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onOversell = append(h.onOversell, fn)
}

func (h *hooks) triggerWarning(warning error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, hook := range h.onWarning {
		hook(warning)
	}
}

func (h *hooks) triggerOversell(line inventory.Line) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, hook := range h.onOversell {
		hook(line)
	}
}
