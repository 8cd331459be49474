package service

import (
	"reflect"
	"testing"

	"github.com/cleantube/cleantube-go/internal/model"
)

func TestSelectionSet_AddIsIdempotent(t *testing.T) {
	s := NewSelectionSet()
	once := s.Add([]string{"c1", "c2"})
	twice := once.Add([]string{"c1", "c2"})

	if !once.Equal(twice) {
		t.Errorf("adding the same ids twice changed the set: %v vs %v", once.IDs(), twice.IDs())
	}
	if twice.Len() != 2 {
		t.Errorf("set size = %d, want 2", twice.Len())
	}
}

func TestSelectionSet_RemoveAbsentIsNoOp(t *testing.T) {
	s := NewSelectionSet("c1")
	out := s.Remove([]string{"c2", "c3"})
	if !out.Equal(s) {
		t.Errorf("removing absent ids changed the set: %v", out.IDs())
	}
}

func TestSelectionSet_OperationsDoNotMutateReceiver(t *testing.T) {
	s := NewSelectionSet("c1")
	_ = s.Add([]string{"c2"})
	_ = s.Remove([]string{"c1"})

	if s.Len() != 1 || !s.Has("c1") {
		t.Errorf("receiver mutated: %v", s.IDs())
	}
}

func TestSelectionSet_SkipsEmptyID(t *testing.T) {
	s := NewSelectionSet().Add([]string{"", "c1"})
	if s.Has("") {
		t.Error("empty id should never enter the selection")
	}
	if s.Len() != 1 {
		t.Errorf("set size = %d, want 1", s.Len())
	}
}

func TestSelectionSet_IDsSorted(t *testing.T) {
	s := NewSelectionSet("c3", "c1", "c2")
	want := []string{"c1", "c2", "c3"}
	if got := s.IDs(); !reflect.DeepEqual(got, want) {
		t.Errorf("IDs() = %v, want %v", got, want)
	}
}

func TestSelectionManager_PerVideoIsolation(t *testing.T) {
	m := NewSelectionManager()
	m.Add("videoA", []string{"c1"})
	m.Add("videoB", []string{"c2"})

	if m.Get("videoA").Has("c2") {
		t.Error("videoA selection leaked into videoB")
	}
	if m.Get("videoB").Has("c1") {
		t.Error("videoB selection leaked into videoA")
	}
}

func TestSelectionManager_GetReturnsCopy(t *testing.T) {
	m := NewSelectionManager()
	m.Add("v1", []string{"c1"})

	got := m.Get("v1")
	got["c2"] = struct{}{}

	if m.Get("v1").Has("c2") {
		t.Error("mutating the returned set changed the manager's state")
	}
}

func TestSelectionManager_SelectAllReplacesWholesale(t *testing.T) {
	m := NewSelectionManager()
	m.Add("v1", []string{"stale1", "stale2"})

	got := m.SelectAll("v1", []string{"c1", "c2"})
	want := []string{"c1", "c2"}
	if !reflect.DeepEqual(got.IDs(), want) {
		t.Errorf("SelectAll = %v, want %v (previous members must not survive)", got.IDs(), want)
	}
}

func TestSelectionManager_Clear(t *testing.T) {
	m := NewSelectionManager()
	m.Add("v1", []string{"c1", "c2"})
	m.Clear("v1")

	if got := m.Get("v1"); got.Len() != 0 {
		t.Errorf("selection after Clear = %v, want empty", got.IDs())
	}
}

// The operator may select any displayed comment, not just the
// suspicious set. The manager accepts ids it has never seen.
func TestSelectionManager_PermissiveMembership(t *testing.T) {
	m := NewSelectionManager()
	got := m.Add("v1", []string{"not-in-any-analysis"})
	if !got.Has("not-in-any-analysis") {
		t.Error("selection rejected an unknown comment id")
	}
}

func TestSelectionManager_ToggleGroupRoundTrip(t *testing.T) {
	m := NewSelectionManager()
	group := &model.DuplicateGroup{
		ID:         "g1",
		Kind:       model.GroupExact,
		CommentIDs: []string{"c1", "c2", "c3"},
	}

	if on := m.ToggleGroup("v1", group); !on {
		t.Fatal("first toggle should select the group")
	}
	if got := m.Get("v1"); got.Len() != 3 {
		t.Fatalf("after select toggle, size = %d, want 3", got.Len())
	}

	if on := m.ToggleGroup("v1", group); on {
		t.Fatal("second toggle should deselect the group")
	}
	if got := m.Get("v1"); got.Len() != 0 {
		t.Errorf("after deselect toggle, size = %d, want 0", got.Len())
	}
}

func TestSelectionManager_ToggleGroupFromPartial(t *testing.T) {
	// A partially selected group toggles to fully selected, never to empty
	m := NewSelectionManager()
	group := &model.DuplicateGroup{
		ID:         "g1",
		Kind:       model.GroupSimilar,
		CommentIDs: []string{"c1", "c2", "c3"},
	}
	m.Add("v1", []string{"c2"})

	if on := m.ToggleGroup("v1", group); !on {
		t.Fatal("toggle from partial should select the whole group")
	}
	got := m.Get("v1")
	for _, id := range group.CommentIDs {
		if !got.Has(id) {
			t.Errorf("member %s missing after toggle from partial", id)
		}
	}
}

func TestSelectionManager_ToggleGroupKeepsOutsideMembers(t *testing.T) {
	m := NewSelectionManager()
	group := &model.DuplicateGroup{
		ID:         "g1",
		Kind:       model.GroupExact,
		CommentIDs: []string{"c1", "c2"},
	}
	m.Add("v1", []string{"c1", "c2", "outside"})

	m.ToggleGroup("v1", group) // fully selected, so this deselects
	got := m.Get("v1")
	if !got.Has("outside") {
		t.Error("deselecting a group removed a comment outside the group")
	}
	if got.Has("c1") || got.Has("c2") {
		t.Errorf("group members survived deselection: %v", got.IDs())
	}
}
