package rating

import "time"

// Person is the trimmed user shape embedded in rating views.
type Person struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	ProfilePhoto *string `json:"profile_photo"`
}

// Rating is one participant's rating of the other for an accepted swap.
type Rating struct {
	ID            string    `json:"id"`
	SwapRequestID string    `json:"swap_request_id"`
	RaterID       string    `json:"rater_id"`
	RatedUserID   string    `json:"rated_user_id"`
	Rating        int       `json:"rating"`
	Feedback      *string   `json:"feedback"`
	IsPublic      bool      `json:"is_public"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	Rater         *Person   `json:"rater,omitempty"`
	RatedUser     *Person   `json:"rated_user,omitempty"`
}
