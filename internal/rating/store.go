package rating

import (
	"context"

	"github.com/skillswap/api/internal/swap"
)

// Store is the persistence port for the rating ledger.
type Store interface {
	// Swap returns the referenced swap request, or nil when absent.
	Swap(ctx context.Context, swapID string) (*swap.Request, error)

	UserExists(ctx context.Context, userID string) (bool, error)

	// Create inserts the rating. A duplicate (swap, rater) pair surfaces
	// as a conflict error even when two submissions race.
	Create(ctx context.Context, r *Rating) error

	// GetByID returns the rating, or nil when absent.
	GetByID(ctx context.Context, id string) (*Rating, error)

	Update(ctx context.Context, r *Rating) error

	Delete(ctx context.Context, id string) error

	// ForSwap returns both participants' ratings for a swap, if present.
	ForSwap(ctx context.Context, swapID string) ([]Rating, error)

	// PublicReceived returns a page of public ratings received by a user
	// plus the unpaginated total.
	PublicReceived(ctx context.Context, userID string, limit, offset int) ([]Rating, int, error)

	// AllPublicReceived returns every public rating received by a user,
	// feeding Aggregate.
	AllPublicReceived(ctx context.Context, userID string) ([]Rating, error)
}
