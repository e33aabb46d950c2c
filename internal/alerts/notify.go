package alerts

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/skillswap/api/internal/db"
)

type Notification struct {
	ID        string     `json:"id"`
	UserID    string     `json:"-"`
	Type      string     `json:"type"`
	Title     string     `json:"title"`
	Body      string     `json:"body"`
	Reference *string    `json:"reference"`
	CreatedAt time.Time  `json:"created_at"`
	ReadAt    *time.Time `json:"read_at"`
}

// NotificationStore is the persistence port for in-app notifications.
type NotificationStore interface {
	Insert(ctx context.Context, n *Notification) error
	ByUser(ctx context.Context, userID string) ([]Notification, error)
	MarkRead(ctx context.Context, id, userID string) (bool, error)
	MarkAllRead(ctx context.Context, userID string) (int64, error)
}

type PostgresNotificationStore struct {
	pool *pgxpool.Pool
}

func NewPostgresNotificationStore(pool *pgxpool.Pool) *PostgresNotificationStore {
	return &PostgresNotificationStore{pool: pool}
}

func (s *PostgresNotificationStore) Insert(ctx context.Context, n *Notification) error {
	return s.pool.QueryRow(ctx, `
        INSERT INTO notifications (user_id, type, title, body, reference)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at
    `, n.UserID, n.Type, n.Title, n.Body, n.Reference).Scan(&n.ID, &n.CreatedAt)
}

func (s *PostgresNotificationStore) ByUser(ctx context.Context, userID string) ([]Notification, error) {
	rows, err := s.pool.Query(ctx, `
        SELECT id, type, title, body, reference, created_at, read_at
        FROM notifications
        WHERE user_id = $1
        ORDER BY created_at DESC
    `, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []Notification{}
	for rows.Next() {
		n := Notification{UserID: userID}
		if err := rows.Scan(&n.ID, &n.Type, &n.Title, &n.Body, &n.Reference,
			&n.CreatedAt, &n.ReadAt); err != nil {
			return nil, err
		}
		items = append(items, n)
	}
	return items, rows.Err()
}

func (s *PostgresNotificationStore) MarkRead(ctx context.Context, id, userID string) (bool, error) {
	tag, err := s.pool.Exec(ctx,
		`UPDATE notifications SET read_at = NOW() WHERE id = $1 AND user_id = $2 AND read_at IS NULL`,
		id, userID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *PostgresNotificationStore) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	tag, err := s.pool.Exec(ctx,
		`UPDATE notifications SET read_at = NOW() WHERE user_id = $1 AND read_at IS NULL`, userID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// CreateNotification inserts an in-app notification from the task worker.
// Drops the item silently when no pool is connected.
func CreateNotification(userID, ntype, title, body string, reference *string) error {
	if db.Conn == nil {
		return nil
	}
	s := NewPostgresNotificationStore(db.Conn)
	n := Notification{UserID: userID, Type: ntype, Title: title, Body: body, Reference: reference}
	return s.Insert(context.Background(), &n)
}
