package rating

import (
	"context"
	"sync"
	"time"

	"github.com/skillswap/api/internal/apperr"
	"github.com/skillswap/api/internal/swap"
)

// memStore is the in-memory Store used by handler tests.
type memStore struct {
	mu      sync.Mutex
	swaps   map[string]*swap.Request
	users   map[string]string // id -> name
	ratings map[string]*Rating
}

func newMemStore() *memStore {
	return &memStore{
		swaps:   map[string]*swap.Request{},
		users:   map[string]string{},
		ratings: map[string]*Rating{},
	}
}

func (m *memStore) addUser(id, name string) {
	m.users[id] = name
}

func (m *memStore) addSwap(id, sender, receiver string, status swap.Status) {
	m.swaps[id] = &swap.Request{ID: id, SenderID: sender, ReceiverID: receiver, Status: status}
}

func (m *memStore) Swap(_ context.Context, swapID string) (*swap.Request, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.swaps[swapID]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (m *memStore) UserExists(_ context.Context, userID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.users[userID]
	return ok, nil
}

func (m *memStore) Create(_ context.Context, r *Rating) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.ratings {
		if existing.SwapRequestID == r.SwapRequestID && existing.RaterID == r.RaterID {
			return apperr.Conflict("you have already rated this swap")
		}
	}
	now := time.Now()
	r.CreatedAt = now
	r.UpdatedAt = now
	cp := *r
	m.ratings[r.ID] = &cp
	return nil
}

func (m *memStore) GetByID(_ context.Context, id string) (*Rating, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.ratings[id]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (m *memStore) Update(_ context.Context, r *Rating) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.ratings[r.ID]; ok {
		existing.Rating = r.Rating
		existing.Feedback = r.Feedback
		existing.IsPublic = r.IsPublic
		existing.UpdatedAt = time.Now()
	}
	return nil
}

func (m *memStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.ratings, id)
	return nil
}

func (m *memStore) ForSwap(_ context.Context, swapID string) ([]Rating, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []Rating{}
	for _, r := range m.ratings {
		if r.SwapRequestID == swapID {
			cp := *r
			cp.Rater = &Person{ID: r.RaterID, Name: m.users[r.RaterID]}
			out = append(out, cp)
		}
	}
	return out, nil
}

func (m *memStore) PublicReceived(_ context.Context, userID string, limit, offset int) ([]Rating, int, error) {
	all, _ := m.AllPublicReceived(nil, userID)
	total := len(all)
	if offset >= len(all) {
		return []Rating{}, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *memStore) AllPublicReceived(_ context.Context, userID string) ([]Rating, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []Rating{}
	for _, r := range m.ratings {
		if r.RatedUserID == userID && r.IsPublic {
			out = append(out, *r)
		}
	}
	return out, nil
}
