package search

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore implements Store on a pgx connection pool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) AcceptedPairs(ctx context.Context, viewerID string) ([]AcceptedPair, error) {
	rows, err := s.pool.Query(ctx, `
        SELECT sr.id,
               CASE WHEN sr.sender_id = $1 THEN sr.receiver_id ELSE sr.sender_id END AS other_id,
               EXISTS (SELECT 1 FROM ratings r
                       WHERE r.swap_request_id = sr.id AND r.rater_id = $1) AS viewer_rated,
               EXISTS (SELECT 1 FROM ratings r
                       WHERE r.swap_request_id = sr.id AND r.rater_id <> $1) AS other_rated
        FROM swap_requests sr
        WHERE sr.status = 'ACCEPTED'
          AND (sr.sender_id = $1 OR sr.receiver_id = $1)
    `, viewerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	pairs := []AcceptedPair{}
	for rows.Next() {
		var p AcceptedPair
		if err := rows.Scan(&p.SwapID, &p.OtherID, &p.ViewerRated, &p.OtherRated); err != nil {
			return nil, err
		}
		pairs = append(pairs, p)
	}
	return pairs, nil
}

func (s *PostgresStore) SearchUsers(ctx context.Context, skill string, excluded []string, limit, offset int) ([]PublicUser, int, error) {
	if excluded == nil {
		excluded = []string{}
	}
	where := `
        u.is_public = TRUE
        AND u.id <> ALL($1::uuid[])
        AND ($2 = '' OR EXISTS (
            SELECT 1 FROM skills sk
            WHERE sk.user_id = u.id AND sk.name ILIKE '%' || $2 || '%'
        ))`

	var total int
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM users u WHERE `+where, excluded, skill).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	rows, err := s.pool.Query(ctx, `
        SELECT u.id, u.name, u.location, u.profile_photo, u.availability, u.created_at
        FROM users u WHERE `+where+`
        ORDER BY u.created_at DESC
        LIMIT $3 OFFSET $4
    `, excluded, skill, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	users := []PublicUser{}
	ids := []string{}
	for rows.Next() {
		var u PublicUser
		if err := rows.Scan(&u.ID, &u.Name, &u.Location, &u.ProfilePhoto,
			&u.Availability, &u.CreatedAt); err != nil {
			return nil, 0, err
		}
		u.Skills = []SkillSummary{}
		users = append(users, u)
		ids = append(ids, u.ID)
	}
	rows.Close()

	if err := s.attachSkills(ctx, users, ids); err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (s *PostgresStore) attachSkills(ctx context.Context, users []PublicUser, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	rows, err := s.pool.Query(ctx, `
        SELECT id, user_id, name, type FROM skills WHERE user_id = ANY($1)
    `, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	byUser := map[string][]SkillSummary{}
	for rows.Next() {
		var sk SkillSummary
		var ownerID string
		if err := rows.Scan(&sk.ID, &ownerID, &sk.Name, &sk.Type); err != nil {
			return err
		}
		byUser[ownerID] = append(byUser[ownerID], sk)
	}
	for i := range users {
		if skills, ok := byUser[users[i].ID]; ok {
			users[i].Skills = skills
		}
	}
	return nil
}

func (s *PostgresStore) PublicUser(ctx context.Context, userID string) (*PublicUser, error) {
	u := &PublicUser{Skills: []SkillSummary{}}
	err := s.pool.QueryRow(ctx, `
        SELECT id, name, location, profile_photo, availability, created_at
        FROM users WHERE id = $1 AND is_public = TRUE
    `, userID).Scan(&u.ID, &u.Name, &u.Location, &u.ProfilePhoto,
		&u.Availability, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, type FROM skills WHERE user_id = $1`, u.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var sk SkillSummary
		if err := rows.Scan(&sk.ID, &sk.Name, &sk.Type); err != nil {
			return nil, err
		}
		u.Skills = append(u.Skills, sk)
	}
	return u, nil
}

func (s *PostgresStore) LatestOpenRequest(ctx context.Context, viewerID, otherID string) (*RequestRelation, error) {
	rel := &RequestRelation{}
	err := s.pool.QueryRow(ctx, `
        SELECT sr.status,
               EXISTS (SELECT 1 FROM ratings r
                       WHERE r.swap_request_id = sr.id AND r.rater_id = $1 AND r.rated_user_id = $2),
               EXISTS (SELECT 1 FROM ratings r
                       WHERE r.swap_request_id = sr.id AND r.rater_id = $2 AND r.rated_user_id = $1)
        FROM swap_requests sr
        WHERE sr.status IN ('PENDING', 'ACCEPTED')
          AND ((sr.sender_id = $1 AND sr.receiver_id = $2)
            OR (sr.sender_id = $2 AND sr.receiver_id = $1))
        ORDER BY sr.created_at DESC
        LIMIT 1
    `, viewerID, otherID).Scan(&rel.Status, &rel.ViewerRated, &rel.OtherRated)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rel, nil
}

func (s *PostgresStore) SkillsByType(ctx context.Context) (map[string][]string, error) {
	rows, err := s.pool.Query(ctx, `
        SELECT DISTINCT sk.name, sk.type
        FROM skills sk
        JOIN users u ON u.id = sk.user_id
        WHERE u.is_public = TRUE
        ORDER BY sk.name
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byType := map[string][]string{}
	for rows.Next() {
		var name, skillType string
		if err := rows.Scan(&name, &skillType); err != nil {
			return nil, err
		}
		byType[skillType] = append(byType[skillType], name)
	}
	return byType, nil
}

func (s *PostgresStore) TrendingSkills(ctx context.Context, limit int) ([]TrendingSkill, error) {
	rows, err := s.pool.Query(ctx, `
        SELECT sk.name, COUNT(*) AS cnt
        FROM skills sk
        JOIN users u ON u.id = sk.user_id
        WHERE u.is_public = TRUE
        GROUP BY sk.name
        ORDER BY cnt DESC, sk.name
        LIMIT $1
    `, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	trending := []TrendingSkill{}
	for rows.Next() {
		var ts TrendingSkill
		if err := rows.Scan(&ts.Name, &ts.Count); err != nil {
			return nil, err
		}
		trending = append(trending, ts)
	}
	return trending, nil
}

func (s *PostgresStore) TopRated(ctx context.Context, limit int) ([]TopRatedUser, error) {
	rows, err := s.pool.Query(ctx, `
        SELECT u.id, u.name, u.profile_photo,
               COALESCE(AVG(r.rating), 0) AS avg_rating,
               COUNT(r.id) AS total
        FROM users u
        LEFT JOIN ratings r ON r.rated_user_id = u.id AND r.is_public = TRUE
        WHERE u.is_public = TRUE
        GROUP BY u.id, u.name, u.profile_photo
        ORDER BY avg_rating DESC, total DESC
        LIMIT $1
    `, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	top := []TopRatedUser{}
	for rows.Next() {
		var u TopRatedUser
		if err := rows.Scan(&u.ID, &u.Name, &u.ProfilePhoto, &u.AverageRating, &u.TotalRatings); err != nil {
			return nil, err
		}
		top = append(top, u)
	}
	return top, nil
}
