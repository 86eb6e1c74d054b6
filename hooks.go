package humansort

import (
	"sync"

	"github.com/agentstation/humansort/pkg/ranking"
)

// Hook function types for state events
type (
	// ItemAddedHook is called when an item joins the state.
	ItemAddedHook func(item ranking.Item)

	// ItemRemovedHook is called when an item leaves the state.
	ItemRemovedHook func(item ranking.Item)

	// ItemRenamedHook is called when an item's value changes.
	ItemRenamedHook func(from, to string)

	// JudgedHook is called after a judgment is applied and saved.
	JudgedHook func(judgment Judgment)

	// StateSavedHook is called with a copy of every state the client saves.
	StateSavedHook func(state *ranking.State)
)

// Judgment describes an applied judgment.
type Judgment struct {
	Winner string         `json:"winner" yaml:"winner"`
	Losers []string       `json:"losers" yaml:"losers"`
	Items  []ranking.Item `json:"items" yaml:"items"`
}

// Hooks registers callbacks for state changes.
type Hooks interface {
	OnItemAdded(ItemAddedHook)
	OnItemRemoved(ItemRemovedHook)
	OnItemRenamed(ItemRenamedHook)
	OnJudged(JudgedHook)
	OnStateSaved(StateSavedHook)
}

// hooks manages event callbacks for state changes
type hooks struct {
	mu            sync.RWMutex
	onItemAdded   []ItemAddedHook
	onItemRemoved []ItemRemovedHook
	onItemRenamed []ItemRenamedHook
	onJudged      []JudgedHook
	onStateSaved  []StateSavedHook
}

func newHooks() *hooks {
	return &hooks{}
}

// OnItemAdded registers a callback for when items are added
func (h *hooks) OnItemAdded(fn ItemAddedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onItemAdded = append(h.onItemAdded, fn)
}

// OnItemRemoved registers a callback for when items are removed
func (h *hooks) OnItemRemoved(fn ItemRemovedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onItemRemoved = append(h.onItemRemoved, fn)
}

// OnItemRenamed registers a callback for when items are renamed
func (h *hooks) OnItemRenamed(fn ItemRenamedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onItemRenamed = append(h.onItemRenamed, fn)
}

// OnJudged registers a callback for applied judgments
func (h *hooks) OnJudged(fn JudgedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onJudged = append(h.onJudged, fn)
}

// OnStateSaved registers a callback for saved states
func (h *hooks) OnStateSaved(fn StateSavedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onStateSaved = append(h.onStateSaved, fn)
}

// triggerMembership compares two states by value and fires the added and
// removed hooks.
func (h *hooks) triggerMembership(before, after *ranking.State) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if len(h.onItemAdded) == 0 && len(h.onItemRemoved) == 0 {
		return
	}

	for _, item := range after.Items() {
		if !before.Contains(item.Value) {
			for _, hook := range h.onItemAdded {
				hook(item)
			}
		}
	}
	for _, item := range before.Items() {
		if !after.Contains(item.Value) {
			for _, hook := range h.onItemRemoved {
				hook(item)
			}
		}
	}
}

func (h *hooks) triggerRenamed(from, to string) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, hook := range h.onItemRenamed {
		hook(from, to)
	}
}

func (h *hooks) triggerJudged(j Judgment) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, hook := range h.onJudged {
		hook(j)
	}
}

func (h *hooks) triggerSaved(state *ranking.State) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, hook := range h.onStateSaved {
		hook(state.Clone())
	}
}
