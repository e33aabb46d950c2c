package search

import (
	"context"
	"time"
)

// SkillSummary is the trimmed skill shape embedded in search results.
type SkillSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// PublicUser is the discoverable view of a profile.
type PublicUser struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Location     string         `json:"location"`
	ProfilePhoto *string        `json:"profile_photo"`
	Availability string         `json:"availability"`
	Skills       []SkillSummary `json:"skills"`
	CreatedAt    time.Time      `json:"created_at"`
}

// TrendingSkill is a skill name with its popularity count.
type TrendingSkill struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// TopRatedUser is a leaderboard row.
type TopRatedUser struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	ProfilePhoto  *string `json:"profile_photo"`
	AverageRating float64 `json:"average_rating"`
	TotalRatings  int     `json:"total_ratings"`
}

// Store is the persistence port for discovery queries.
type Store interface {
	// AcceptedPairs returns the viewer's ACCEPTED swaps with per-side
	// rating progress, feeding ExcludedCounterparts.
	AcceptedPairs(ctx context.Context, viewerID string) ([]AcceptedPair, error)

	// SearchUsers returns public users excluding the given IDs, with an
	// optional case-insensitive skill filter, plus the unpaginated total.
	SearchUsers(ctx context.Context, skill string, excluded []string, limit, offset int) ([]PublicUser, int, error)

	// PublicUser returns a public profile, or nil when the user is
	// missing or private.
	PublicUser(ctx context.Context, userID string) (*PublicUser, error)

	// LatestOpenRequest returns the latest PENDING or ACCEPTED request
	// between the two users with rating progress, or nil when none.
	LatestOpenRequest(ctx context.Context, viewerID, otherID string) (*RequestRelation, error)

	// SkillsByType returns distinct public skill names grouped by type.
	SkillsByType(ctx context.Context) (map[string][]string, error)

	// TrendingSkills returns the most common public skill names.
	TrendingSkills(ctx context.Context, limit int) ([]TrendingSkill, error)

	// TopRated returns public users ranked by average public rating.
	TopRated(ctx context.Context, limit int) ([]TopRatedUser, error)
}
