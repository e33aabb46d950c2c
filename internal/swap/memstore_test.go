package swap

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/skillswap/api/internal/apperr"
)

// memStore is the in-memory Store used by handler tests.
type memStore struct {
	mu       sync.Mutex
	users    map[string]*ReceiverInfo
	requests map[string]*Request
}

func newMemStore() *memStore {
	return &memStore{
		users:    map[string]*ReceiverInfo{},
		requests: map[string]*Request{},
	}
}

func (m *memStore) addUser(id, name string, isPublic bool) {
	m.users[id] = &ReceiverInfo{ID: id, Name: name, IsPublic: isPublic}
}

func (m *memStore) Receiver(_ context.Context, userID string) (*ReceiverInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.users[userID], nil
}

func (m *memStore) PendingBetween(_ context.Context, a, b string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pendingBetweenLocked(a, b), nil
}

func (m *memStore) pendingBetweenLocked(a, b string) bool {
	for _, r := range m.requests {
		if r.Status != StatusPending {
			continue
		}
		if (r.SenderID == a && r.ReceiverID == b) || (r.SenderID == b && r.ReceiverID == a) {
			return true
		}
	}
	return false
}

func (m *memStore) Create(_ context.Context, r *Request) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.pendingBetweenLocked(r.SenderID, r.ReceiverID) {
		return apperr.Conflict("there is already a pending swap request between you and this user")
	}
	now := time.Now()
	r.CreatedAt = now
	r.UpdatedAt = now
	m.attach(r)
	cp := *r
	m.requests[r.ID] = &cp
	return nil
}

func (m *memStore) attach(r *Request) {
	if u, ok := m.users[r.SenderID]; ok {
		r.Sender = &Participant{ID: u.ID, Name: u.Name, Skills: []SkillSummary{}}
	}
	if u, ok := m.users[r.ReceiverID]; ok {
		r.Receiver = &Participant{ID: u.ID, Name: u.Name, Skills: []SkillSummary{}}
	}
}

func (m *memStore) GetByID(_ context.Context, id string) (*Request, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.requests[id]
	if !ok {
		return nil, nil
	}
	cp := *r
	m.attach(&cp)
	return &cp, nil
}

func (m *memStore) List(_ context.Context, userID string, f ListFilter) ([]Request, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	matched := []Request{}
	for _, r := range m.requests {
		switch f.Type {
		case "sent":
			if r.SenderID != userID {
				continue
			}
		case "received":
			if r.ReceiverID != userID {
				continue
			}
		default:
			if r.SenderID != userID && r.ReceiverID != userID {
				continue
			}
		}
		if f.Status != "" && r.Status != f.Status {
			continue
		}
		cp := *r
		m.attach(&cp)
		matched = append(matched, cp)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)
	if f.Limit > 0 {
		if f.Offset >= len(matched) {
			matched = []Request{}
		} else {
			end := f.Offset + f.Limit
			if end > len(matched) {
				end = len(matched)
			}
			matched = matched[f.Offset:end]
		}
	}
	return matched, total, nil
}

func (m *memStore) SetStatus(_ context.Context, id string, from, to Status) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.requests[id]
	if !ok || r.Status != from {
		return false, nil
	}
	r.Status = to
	r.UpdatedAt = time.Now()
	return true, nil
}

func (m *memStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.requests, id)
	return nil
}

func (m *memStore) StatusCounts(_ context.Context, userID string) (map[Status]int, map[Status]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sent := emptyCounts()
	received := emptyCounts()
	for _, r := range m.requests {
		if r.SenderID == userID {
			sent[r.Status]++
		}
		if r.ReceiverID == userID {
			received[r.Status]++
		}
	}
	return sent, received, nil
}
