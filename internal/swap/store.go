package swap

import "context"

// ListFilter narrows MyRequests queries.
type ListFilter struct {
	Type   string // "sent", "received" or "all"
	Status Status // empty means all statuses
	Limit  int
	Offset int
}

// ReceiverInfo is what request creation needs to know about the target.
type ReceiverInfo struct {
	ID       string
	Name     string
	IsPublic bool
}

// Store is the persistence port for swap requests. A pgx implementation
// backs production; tests use an in-memory fake.
type Store interface {
	// Receiver returns nil when the user does not exist.
	Receiver(ctx context.Context, userID string) (*ReceiverInfo, error)

	// PendingBetween reports whether a PENDING request exists between the
	// two users in either direction.
	PendingBetween(ctx context.Context, a, b string) (bool, error)

	// Create inserts the request. A race that violates the pending-pair
	// uniqueness surfaces as a conflict error.
	Create(ctx context.Context, r *Request) error

	// GetByID returns the request with participants, or nil when absent.
	GetByID(ctx context.Context, id string) (*Request, error)

	// List returns the user's requests plus the unpaginated total.
	List(ctx context.Context, userID string, f ListFilter) ([]Request, int, error)

	// SetStatus updates status only when the current status still matches
	// from. Returns false when the compare-and-set lost a race.
	SetStatus(ctx context.Context, id string, from, to Status) (bool, error)

	Delete(ctx context.Context, id string) error

	// StatusCounts returns per-status counts for sent and received requests.
	StatusCounts(ctx context.Context, userID string) (sent, received map[Status]int, err error)
}
