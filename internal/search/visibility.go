// Package search implements discovery: finding public users to swap
// with, minus the ones locked behind an unfinished swap.
package search

// AcceptedPair describes one ACCEPTED swap between the viewer and
// another user, with each side's rating progress for that swap.
type AcceptedPair struct {
	SwapID      string
	OtherID     string
	ViewerRated bool
	OtherRated  bool
}

// Resolved reports whether both sides have rated each other.
func (p AcceptedPair) Resolved() bool {
	return p.ViewerRated && p.OtherRated
}

// ExcludedCounterparts derives the set of user IDs hidden from the
// viewer's search results: counterparts of accepted swaps that are not
// yet mutually rated.
func ExcludedCounterparts(pairs []AcceptedPair) []string {
	seen := map[string]struct{}{}
	excluded := []string{}
	for _, p := range pairs {
		if p.Resolved() {
			continue
		}
		if _, ok := seen[p.OtherID]; ok {
			continue
		}
		seen[p.OtherID] = struct{}{}
		excluded = append(excluded, p.OtherID)
	}
	return excluded
}

// Candidate is the minimal view of a user needed to decide visibility.
type Candidate struct {
	ID       string
	IsPublic bool
}

// IsVisibleTo decides whether a candidate shows up in the viewer's
// search results, given the viewer's accepted swap pairs. Pure: no
// storage needed to evaluate or test it.
func IsVisibleTo(viewerID string, candidate Candidate, pairs []AcceptedPair) bool {
	if !candidate.IsPublic {
		return false
	}
	if candidate.ID == viewerID {
		return false
	}
	for _, p := range pairs {
		if p.OtherID == candidate.ID && !p.Resolved() {
			return false
		}
	}
	return true
}

// RequestRelation is the latest PENDING or ACCEPTED request between the
// viewer and a profile they are looking at.
type RequestRelation struct {
	Status      string
	ViewerRated bool
	OtherRated  bool
}

// RelationFlags derives the profile-view flags from the latest open
// request between a pair. A mutually rated ACCEPTED swap reports no
// existing request, which is what permits a new one.
func RelationFlags(rel *RequestRelation) (hasExisting bool, status *string, mutualComplete bool) {
	if rel == nil {
		return false, nil, false
	}
	switch rel.Status {
	case "PENDING":
		s := rel.Status
		return true, &s, false
	case "ACCEPTED":
		if rel.ViewerRated && rel.OtherRated {
			return false, nil, true
		}
		s := rel.Status
		return true, &s, false
	}
	return false, nil, false
}
