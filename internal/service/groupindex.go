package service

import "github.com/cleantube/cleantube-go/internal/model"

// GroupRefs holds the at-most-one exact and at-most-one similar group a
// comment belongs to.
type GroupRefs struct {
	Exact   *model.DuplicateGroup
	Similar *model.DuplicateGroup
}

// GroupIndex gives O(1) membership lookups over the duplicate groups of
// one analysis snapshot. Grouping itself is external; the index is
// built once per snapshot and never mutated.
type GroupIndex struct {
	exact   map[string]*model.DuplicateGroup
	similar map[string]*model.DuplicateGroup
	byID    map[string]*model.DuplicateGroup
	ordered []*model.DuplicateGroup
}

func NewGroupIndex(analysis *model.AnalysisResult) *GroupIndex {
	ix := &GroupIndex{
		exact:   make(map[string]*model.DuplicateGroup),
		similar: make(map[string]*model.DuplicateGroup),
		byID:    make(map[string]*model.DuplicateGroup),
	}
	for i := range analysis.ExactDuplicates {
		g := &analysis.ExactDuplicates[i]
		ix.index(g, ix.exact)
	}
	for i := range analysis.SimilarGroups {
		g := &analysis.SimilarGroups[i]
		ix.index(g, ix.similar)
	}
	return ix
}

func (ix *GroupIndex) index(g *model.DuplicateGroup, byMember map[string]*model.DuplicateGroup) {
	ix.byID[g.ID] = g
	ix.ordered = append(ix.ordered, g)
	for _, id := range g.CommentIDs {
		byMember[id] = g
	}
}

// GroupsContaining returns the groups a comment id belongs to.
func (ix *GroupIndex) GroupsContaining(commentID string) GroupRefs {
	return GroupRefs{
		Exact:   ix.exact[commentID],
		Similar: ix.similar[commentID],
	}
}

// Group looks up a group by its stable id.
func (ix *GroupIndex) Group(groupID string) (*model.DuplicateGroup, bool) {
	g, ok := ix.byID[groupID]
	return g, ok
}

// Groups returns all groups in analyzer order, exact before similar.
func (ix *GroupIndex) Groups() []*model.DuplicateGroup {
	return ix.ordered
}

// IsGroupFullySelected reports whether every member of the group is in
// the selection. An empty group is never "fully selected" — the
// tri-state contract requires exactly one state, and empty groups count
// as unselected.
func IsGroupFullySelected(g *model.DuplicateGroup, sel SelectionSet) bool {
	if g == nil || len(g.CommentIDs) == 0 {
		return false
	}
	for _, id := range g.CommentIDs {
		if !sel.Has(id) {
			return false
		}
	}
	return true
}

// IsGroupPartiallySelected reports whether some but not all members are
// selected. Drives the indeterminate checkbox state: a checkbox must
// never show checked for a partial set nor indeterminate for a full or
// empty one.
func IsGroupPartiallySelected(g *model.DuplicateGroup, sel SelectionSet) bool {
	if g == nil || len(g.CommentIDs) == 0 {
		return false
	}
	selected := 0
	for _, id := range g.CommentIDs {
		if sel.Has(id) {
			selected++
		}
	}
	return selected > 0 && selected < len(g.CommentIDs)
}

// GroupMemberships maps each selected comment id to the groups holding
// it. Ids outside every group are omitted.
func GroupMemberships(ix *GroupIndex, sel SelectionSet) map[string]model.GroupMembership {
	out := make(map[string]model.GroupMembership)
	for id := range sel {
		refs := ix.GroupsContaining(id)
		if refs.Exact == nil && refs.Similar == nil {
			continue
		}
		var m model.GroupMembership
		if refs.Exact != nil {
			m.ExactGroupID = refs.Exact.ID
		}
		if refs.Similar != nil {
			m.SimilarGroupID = refs.Similar.ID
		}
		out[id] = m
	}
	return out
}

// GroupSelectionState materializes the tri-state for one group.
func GroupSelectionState(g *model.DuplicateGroup, sel SelectionSet) model.GroupSelectionState {
	selected := 0
	for _, id := range g.CommentIDs {
		if sel.Has(id) {
			selected++
		}
	}
	return model.GroupSelectionState{
		GroupID:            g.ID,
		Kind:               g.Kind,
		RepresentativeText: g.RepresentativeText,
		MemberCount:        g.MemberCount,
		AuthorCount:        g.AuthorCount(),
		SelectedCount:      selected,
		FullySelected:      IsGroupFullySelected(g, sel),
		PartiallySelected:  IsGroupPartiallySelected(g, sel),
	}
}
