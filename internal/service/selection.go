package service

import (
	"sort"
	"sync"

	"github.com/cleantube/cleantube-go/internal/model"
)

// SelectionSet is the operator's current deletion intent: a set of
// comment ids. Operations are pure and return new sets; the manager
// below owns mutation and locking. Membership is deliberately not
// restricted to the suspicious set — the operator may select any
// displayed comment.
type SelectionSet map[string]struct{}

func NewSelectionSet(ids ...string) SelectionSet {
	s := make(SelectionSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Add returns the union of s and ids. Adding a present id is a no-op,
// so Add is idempotent.
func (s SelectionSet) Add(ids []string) SelectionSet {
	out := s.clone(len(s) + len(ids))
	for _, id := range ids {
		if id != "" {
			out[id] = struct{}{}
		}
	}
	return out
}

// Remove returns the set difference. Removing an absent id is a no-op.
func (s SelectionSet) Remove(ids []string) SelectionSet {
	out := s.clone(len(s))
	for _, id := range ids {
		delete(out, id)
	}
	return out
}

func (s SelectionSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

func (s SelectionSet) Len() int { return len(s) }

// IDs returns the members in sorted order for stable responses.
func (s SelectionSet) IDs() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (s SelectionSet) Equal(other SelectionSet) bool {
	if len(s) != len(other) {
		return false
	}
	for id := range s {
		if _, ok := other[id]; !ok {
			return false
		}
	}
	return true
}

func (s SelectionSet) clone(capacity int) SelectionSet {
	out := make(SelectionSet, capacity)
	for id := range s {
		out[id] = struct{}{}
	}
	return out
}

// SelectionManager tracks per-video selection sets. All transitions
// happen under one mutex so a group toggle is a single atomic step:
// readers never observe a half-applied toggle.
type SelectionManager struct {
	mu      sync.Mutex
	byVideo map[string]SelectionSet
}

func NewSelectionManager() *SelectionManager {
	return &SelectionManager{byVideo: make(map[string]SelectionSet)}
}

// Get returns a copy of the current selection for a video.
func (m *SelectionManager) Get(videoID string) SelectionSet {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current(videoID).clone(len(m.current(videoID)))
}

// Add unions ids into the video's selection.
func (m *SelectionManager) Add(videoID string, ids []string) SelectionSet {
	m.mu.Lock()
	defer m.mu.Unlock()
	next := m.current(videoID).Add(ids)
	m.byVideo[videoID] = next
	return next.clone(len(next))
}

// Remove subtracts ids from the video's selection.
func (m *SelectionManager) Remove(videoID string, ids []string) SelectionSet {
	m.mu.Lock()
	defer m.mu.Unlock()
	next := m.current(videoID).Remove(ids)
	m.byVideo[videoID] = next
	return next.clone(len(next))
}

// ToggleGroup selects the whole group when it is not fully selected,
// and deselects it when it is. The decision and the transition happen
// under the same lock acquisition. Returns true when the group ended
// up selected.
func (m *SelectionManager) ToggleGroup(videoID string, group *model.DuplicateGroup) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	cur := m.current(videoID)
	if IsGroupFullySelected(group, cur) {
		m.byVideo[videoID] = cur.Remove(group.CommentIDs)
		return false
	}
	m.byVideo[videoID] = cur.Add(group.CommentIDs)
	return true
}

// SelectAll replaces the selection wholesale with the given universe.
func (m *SelectionManager) SelectAll(videoID string, universe []string) SelectionSet {
	m.mu.Lock()
	defer m.mu.Unlock()
	next := NewSelectionSet(universe...)
	m.byVideo[videoID] = next
	return next.clone(len(next))
}

// Clear resets the video's selection. Called on successful deletion and
// on session teardown.
func (m *SelectionManager) Clear(videoID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.byVideo, videoID)
}

func (m *SelectionManager) current(videoID string) SelectionSet {
	if s, ok := m.byVideo[videoID]; ok {
		return s
	}
	return SelectionSet{}
}
