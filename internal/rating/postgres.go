package rating

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/skillswap/api/internal/apperr"
	"github.com/skillswap/api/internal/swap"
)

// PostgresStore implements Store on a pgx connection pool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Swap(ctx context.Context, swapID string) (*swap.Request, error) {
	r := &swap.Request{}
	err := s.pool.QueryRow(ctx, `
        SELECT id, sender_id, receiver_id, status, message, created_at, updated_at
        FROM swap_requests WHERE id = $1
    `, swapID).Scan(&r.ID, &r.SenderID, &r.ReceiverID, &r.Status, &r.Message,
		&r.CreatedAt, &r.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (s *PostgresStore) UserExists(ctx context.Context, userID string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, userID).Scan(&exists)
	return exists, err
}

func (s *PostgresStore) Create(ctx context.Context, r *Rating) error {
	err := s.pool.QueryRow(ctx, `
        INSERT INTO ratings (id, swap_request_id, rater_id, rated_user_id, rating, feedback, is_public)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING created_at, updated_at
    `, r.ID, r.SwapRequestID, r.RaterID, r.RatedUserID, r.Rating, r.Feedback, r.IsPublic).
		Scan(&r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperr.Conflict("you have already rated this swap")
		}
		return err
	}
	return nil
}

func (s *PostgresStore) GetByID(ctx context.Context, id string) (*Rating, error) {
	r := &Rating{}
	err := s.pool.QueryRow(ctx, `
        SELECT id, swap_request_id, rater_id, rated_user_id, rating, feedback, is_public, created_at, updated_at
        FROM ratings WHERE id = $1
    `, id).Scan(&r.ID, &r.SwapRequestID, &r.RaterID, &r.RatedUserID, &r.Rating,
		&r.Feedback, &r.IsPublic, &r.CreatedAt, &r.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (s *PostgresStore) Update(ctx context.Context, r *Rating) error {
	_, err := s.pool.Exec(ctx, `
        UPDATE ratings
        SET rating = $1, feedback = $2, is_public = $3, updated_at = NOW()
        WHERE id = $4
    `, r.Rating, r.Feedback, r.IsPublic, r.ID)
	return err
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM ratings WHERE id = $1`, id)
	return err
}

func (s *PostgresStore) ForSwap(ctx context.Context, swapID string) ([]Rating, error) {
	rows, err := s.pool.Query(ctx, `
        SELECT r.id, r.swap_request_id, r.rater_id, r.rated_user_id, r.rating,
               r.feedback, r.is_public, r.created_at, r.updated_at,
               u.name, u.profile_photo
        FROM ratings r
        JOIN users u ON u.id = r.rater_id
        WHERE r.swap_request_id = $1
        ORDER BY r.created_at
    `, swapID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanWithRater(rows)
}

func (s *PostgresStore) PublicReceived(ctx context.Context, userID string, limit, offset int) ([]Rating, int, error) {
	var total int
	err := s.pool.QueryRow(ctx, `
        SELECT COUNT(*) FROM ratings WHERE rated_user_id = $1 AND is_public = TRUE
    `, userID).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	rows, err := s.pool.Query(ctx, `
        SELECT r.id, r.swap_request_id, r.rater_id, r.rated_user_id, r.rating,
               r.feedback, r.is_public, r.created_at, r.updated_at,
               u.name, u.profile_photo
        FROM ratings r
        JOIN users u ON u.id = r.rater_id
        WHERE r.rated_user_id = $1 AND r.is_public = TRUE
        ORDER BY r.created_at DESC
        LIMIT $2 OFFSET $3
    `, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	ratings, err := scanWithRater(rows)
	return ratings, total, err
}

func (s *PostgresStore) AllPublicReceived(ctx context.Context, userID string) ([]Rating, error) {
	rows, err := s.pool.Query(ctx, `
        SELECT id, swap_request_id, rater_id, rated_user_id, rating, feedback, is_public, created_at, updated_at
        FROM ratings WHERE rated_user_id = $1 AND is_public = TRUE
    `, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ratings := []Rating{}
	for rows.Next() {
		var r Rating
		if err := rows.Scan(&r.ID, &r.SwapRequestID, &r.RaterID, &r.RatedUserID,
			&r.Rating, &r.Feedback, &r.IsPublic, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, err
		}
		ratings = append(ratings, r)
	}
	return ratings, nil
}

func scanWithRater(rows pgx.Rows) ([]Rating, error) {
	ratings := []Rating{}
	for rows.Next() {
		var r Rating
		rater := &Person{}
		if err := rows.Scan(&r.ID, &r.SwapRequestID, &r.RaterID, &r.RatedUserID,
			&r.Rating, &r.Feedback, &r.IsPublic, &r.CreatedAt, &r.UpdatedAt,
			&rater.Name, &rater.ProfilePhoto); err != nil {
			return nil, err
		}
		rater.ID = r.RaterID
		r.Rater = rater
		ratings = append(ratings, r)
	}
	return ratings, nil
}
