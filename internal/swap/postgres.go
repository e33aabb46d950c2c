package swap

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/skillswap/api/internal/apperr"
)

// PostgresStore implements Store on a pgx connection pool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Receiver(ctx context.Context, userID string) (*ReceiverInfo, error) {
	var info ReceiverInfo
	err := s.pool.QueryRow(ctx,
		`SELECT id, name, is_public FROM users WHERE id = $1`, userID).
		Scan(&info.ID, &info.Name, &info.IsPublic)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &info, nil
}

func (s *PostgresStore) PendingBetween(ctx context.Context, a, b string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx, `
        SELECT EXISTS (
            SELECT 1 FROM swap_requests
            WHERE status = 'PENDING'
              AND ((sender_id = $1 AND receiver_id = $2)
                OR (sender_id = $2 AND receiver_id = $1))
        )`, a, b).Scan(&exists)
	return exists, err
}

func (s *PostgresStore) Create(ctx context.Context, r *Request) error {
	err := s.pool.QueryRow(ctx, `
        INSERT INTO swap_requests (id, sender_id, receiver_id, status, message)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING created_at, updated_at
    `, r.ID, r.SenderID, r.ReceiverID, r.Status, r.Message).
		Scan(&r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperr.Conflict("there is already a pending swap request between you and this user")
		}
		return err
	}
	return s.attachParticipants(ctx, []*Request{r})
}

func (s *PostgresStore) GetByID(ctx context.Context, id string) (*Request, error) {
	r := &Request{}
	err := s.pool.QueryRow(ctx, `
        SELECT id, sender_id, receiver_id, status, message, created_at, updated_at
        FROM swap_requests WHERE id = $1
    `, id).Scan(&r.ID, &r.SenderID, &r.ReceiverID, &r.Status, &r.Message,
		&r.CreatedAt, &r.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := s.attachParticipants(ctx, []*Request{r}); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *PostgresStore) List(ctx context.Context, userID string, f ListFilter) ([]Request, int, error) {
	where := `(sender_id = $1 OR receiver_id = $1)`
	switch f.Type {
	case "sent":
		where = `sender_id = $1`
	case "received":
		where = `receiver_id = $1`
	}

	args := []any{userID}
	if f.Status != "" {
		args = append(args, f.Status)
		where += ` AND status = $2`
	}

	var total int
	if err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM swap_requests WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
        SELECT id, sender_id, receiver_id, status, message, created_at, updated_at
        FROM swap_requests WHERE ` + where + `
        ORDER BY created_at DESC`
	if f.Limit > 0 {
		args = append(args, f.Limit, f.Offset)
		query += ` LIMIT $` + strconv.Itoa(len(args)-1) + ` OFFSET $` + strconv.Itoa(len(args))
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	requests := []Request{}
	for rows.Next() {
		var r Request
		if err := rows.Scan(&r.ID, &r.SenderID, &r.ReceiverID, &r.Status,
			&r.Message, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, 0, err
		}
		requests = append(requests, r)
	}
	rows.Close()

	ptrs := make([]*Request, len(requests))
	for i := range requests {
		ptrs[i] = &requests[i]
	}
	if err := s.attachParticipants(ctx, ptrs); err != nil {
		return nil, 0, err
	}
	return requests, total, nil
}

func (s *PostgresStore) SetStatus(ctx context.Context, id string, from, to Status) (bool, error) {
	tag, err := s.pool.Exec(ctx, `
        UPDATE swap_requests SET status = $1, updated_at = NOW()
        WHERE id = $2 AND status = $3
    `, to, id, from)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM swap_requests WHERE id = $1`, id)
	return err
}

func (s *PostgresStore) StatusCounts(ctx context.Context, userID string) (map[Status]int, map[Status]int, error) {
	sent := emptyCounts()
	received := emptyCounts()

	rows, err := s.pool.Query(ctx, `
        SELECT status, COUNT(*) FILTER (WHERE sender_id = $1),
               COUNT(*) FILTER (WHERE receiver_id = $1)
        FROM swap_requests
        WHERE sender_id = $1 OR receiver_id = $1
        GROUP BY status
    `, userID)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var status Status
		var sentCount, receivedCount int
		if err := rows.Scan(&status, &sentCount, &receivedCount); err != nil {
			return nil, nil, err
		}
		sent[status] = sentCount
		received[status] = receivedCount
	}
	return sent, received, nil
}

func emptyCounts() map[Status]int {
	return map[Status]int{
		StatusPending:   0,
		StatusAccepted:  0,
		StatusRejected:  0,
		StatusCancelled: 0,
	}
}

// attachParticipants loads the trimmed sender/receiver views (with their
// skills) for a batch of requests in two queries.
func (s *PostgresStore) attachParticipants(ctx context.Context, requests []*Request) error {
	if len(requests) == 0 {
		return nil
	}

	idSet := map[string]struct{}{}
	for _, r := range requests {
		idSet[r.SenderID] = struct{}{}
		idSet[r.ReceiverID] = struct{}{}
	}
	ids := make([]string, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	rows, err := s.pool.Query(ctx, `
        SELECT id, name, profile_photo, location, availability
        FROM users WHERE id = ANY($1)
    `, ids)
	if err != nil {
		return err
	}
	participants := map[string]*Participant{}
	for rows.Next() {
		p := &Participant{Skills: []SkillSummary{}}
		if err := rows.Scan(&p.ID, &p.Name, &p.ProfilePhoto, &p.Location, &p.Availability); err != nil {
			rows.Close()
			return err
		}
		participants[p.ID] = p
	}
	rows.Close()

	srows, err := s.pool.Query(ctx, `
        SELECT id, user_id, name, type FROM skills WHERE user_id = ANY($1)
    `, ids)
	if err != nil {
		return err
	}
	for srows.Next() {
		var sk SkillSummary
		var ownerID string
		if err := srows.Scan(&sk.ID, &ownerID, &sk.Name, &sk.Type); err != nil {
			srows.Close()
			return err
		}
		if p, ok := participants[ownerID]; ok {
			p.Skills = append(p.Skills, sk)
		}
	}
	srows.Close()

	for _, r := range requests {
		r.Sender = participants[r.SenderID]
		r.Receiver = participants[r.ReceiverID]
	}
	return nil
}
