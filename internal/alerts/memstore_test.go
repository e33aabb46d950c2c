package alerts

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

// memNotifStore is the in-memory NotificationStore used by handler tests.
type memNotifStore struct {
	mu    sync.Mutex
	seq   int
	items map[string]*Notification
}

func newMemNotifStore() *memNotifStore {
	return &memNotifStore{items: map[string]*Notification{}}
}

func (m *memNotifStore) Insert(_ context.Context, n *Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	n.ID = fmt.Sprintf("n%d", m.seq)
	n.CreatedAt = time.Now().Add(time.Duration(m.seq) * time.Millisecond)
	cp := *n
	m.items[n.ID] = &cp
	return nil
}

func (m *memNotifStore) ByUser(_ context.Context, userID string) ([]Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []Notification{}
	for _, n := range m.items {
		if n.UserID == userID {
			out = append(out, *n)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (m *memNotifStore) MarkRead(_ context.Context, id, userID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.items[id]
	if !ok || n.UserID != userID || n.ReadAt != nil {
		return false, nil
	}
	now := time.Now()
	n.ReadAt = &now
	return true, nil
}

func (m *memNotifStore) MarkAllRead(_ context.Context, userID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var updated int64
	for _, n := range m.items {
		if n.UserID == userID && n.ReadAt == nil {
			now := time.Now()
			n.ReadAt = &now
			updated++
		}
	}
	return updated, nil
}
