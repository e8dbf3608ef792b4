// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package workflow

import (
	"sort"
	"sync"

	"github.com/pdiddy/blog-engine/pkg/types"
)

// Registry is the authoritative in-memory store of content items, keyed
// by identifier, plus a session → identifier index. Both maps are guarded
// by one RWMutex scoped strictly to map access; no lock is ever held
// across network I/O. Updates are last-writer-wins: the registry replaces
// whole item values and provides no compare-and-swap.
type Registry struct {
	mu       sync.RWMutex
	items    map[string]types.ContentItem
	sessions map[string]string // session ID -> item ID
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		items:    make(map[string]types.ContentItem),
		sessions: make(map[string]string),
	}
}

// Put stores the item under its identifier, replacing any prior value.
func (r *Registry) Put(item types.ContentItem) {
	r.mu.Lock()
	r.items[item.ID] = item.Clone()
	r.mu.Unlock()
}

// Get returns the current item value for id.
func (r *Registry) Get(id string) (types.ContentItem, bool) {
	r.mu.RLock()
	item, ok := r.items[id]
	r.mu.RUnlock()
	return item.Clone(), ok
}

// Delete removes the item and any session bindings pointing to it. It
// reports whether an item was removed.
func (r *Registry) Delete(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return false
	}
	delete(r.items, id)
	for session, itemID := range r.sessions {
		if itemID == id {
			delete(r.sessions, session)
		}
	}
	return true
}

// List returns a snapshot of all items ordered by creation time.
func (r *Registry) List() []types.ContentItem {
	r.mu.RLock()
	out := make([]types.ContentItem, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item.Clone())
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// ListByState returns a snapshot of items currently in the given state.
func (r *Registry) ListByState(state types.WorkflowState) []types.ContentItem {
	all := r.List()
	out := all[:0]
	for _, item := range all {
		if item.State == state {
			out = append(out, item)
		}
	}
	return out
}

// Bind associates a session with an item identifier, replacing any prior
// binding for that session.
func (r *Registry) Bind(sessionID, itemID string) {
	if sessionID == "" {
		return
	}
	r.mu.Lock()
	r.sessions[sessionID] = itemID
	r.mu.Unlock()
}

// Resolve returns the item identifier bound to a session.
func (r *Registry) Resolve(sessionID string) (string, bool) {
	r.mu.RLock()
	id, ok := r.sessions[sessionID]
	r.mu.RUnlock()
	return id, ok
}

// Len returns the number of stored items.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}
