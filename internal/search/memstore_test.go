package search

import (
	"context"
	"sort"
	"strings"
)

// memStore is the in-memory Store used by handler tests.
type memStore struct {
	users     map[string]*PublicUser
	private   map[string]bool
	pairs     map[string][]AcceptedPair   // viewerID -> pairs
	relations map[string]*RequestRelation // viewer|other -> relation
	trending  []TrendingSkill
	top       []TopRatedUser
}

func newMemStore() *memStore {
	return &memStore{
		users:     map[string]*PublicUser{},
		private:   map[string]bool{},
		pairs:     map[string][]AcceptedPair{},
		relations: map[string]*RequestRelation{},
	}
}

func (m *memStore) addUser(id, name string, isPublic bool, skills ...SkillSummary) {
	if skills == nil {
		skills = []SkillSummary{}
	}
	m.users[id] = &PublicUser{ID: id, Name: name, Skills: skills}
	m.private[id] = !isPublic
}

func (m *memStore) AcceptedPairs(_ context.Context, viewerID string) ([]AcceptedPair, error) {
	return m.pairs[viewerID], nil
}

func (m *memStore) SearchUsers(_ context.Context, skill string, excluded []string, limit, offset int) ([]PublicUser, int, error) {
	skip := map[string]struct{}{}
	for _, id := range excluded {
		skip[id] = struct{}{}
	}

	matched := []PublicUser{}
	for id, u := range m.users {
		if m.private[id] {
			continue
		}
		if _, ok := skip[id]; ok {
			continue
		}
		if skill != "" {
			found := false
			for _, sk := range u.Skills {
				if strings.Contains(strings.ToLower(sk.Name), strings.ToLower(skill)) {
					found = true
					break
				}
			}
			if !found {
				continue
			}
		}
		matched = append(matched, *u)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	total := len(matched)
	if offset >= len(matched) {
		return []PublicUser{}, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (m *memStore) PublicUser(_ context.Context, userID string) (*PublicUser, error) {
	u, ok := m.users[userID]
	if !ok || m.private[userID] {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (m *memStore) LatestOpenRequest(_ context.Context, viewerID, otherID string) (*RequestRelation, error) {
	if rel, ok := m.relations[viewerID+"|"+otherID]; ok {
		cp := *rel
		return &cp, nil
	}
	return nil, nil
}

func (m *memStore) SkillsByType(_ context.Context) (map[string][]string, error) {
	byType := map[string][]string{}
	seen := map[string]struct{}{}
	for id, u := range m.users {
		if m.private[id] {
			continue
		}
		for _, sk := range u.Skills {
			key := sk.Type + "|" + sk.Name
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			byType[sk.Type] = append(byType[sk.Type], sk.Name)
		}
	}
	return byType, nil
}

func (m *memStore) TrendingSkills(_ context.Context, limit int) ([]TrendingSkill, error) {
	if limit > len(m.trending) {
		limit = len(m.trending)
	}
	return m.trending[:limit], nil
}

func (m *memStore) TopRated(_ context.Context, limit int) ([]TopRatedUser, error) {
	if limit > len(m.top) {
		limit = len(m.top)
	}
	return m.top[:limit], nil
}
