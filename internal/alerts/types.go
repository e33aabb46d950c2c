package alerts

import "time"

// Task type constants
const (
	TaskWelcomeEmail     = "email:welcome"
	TaskRequestReceived  = "email:request_received"
	TaskRequestResponded = "email:request_responded"
	TaskRatingReceived   = "email:rating_received"
	TaskUserBanned       = "email:user_banned"
)

// Common envelope for email-like notifications
type EmailEnvelope struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Welcome email payload
type WelcomeEmailPayload struct {
	UserID   string        `json:"user_id"`
	Name     string        `json:"name"`
	Email    string        `json:"email"`
	Envelope EmailEnvelope `json:"envelope"`
	SentAt   time.Time     `json:"sent_at"`
}

// Request received payload (sent to receiver on a new swap request)
type RequestReceivedPayload struct {
	ReceiverID string    `json:"receiver_id"`
	SenderName string    `json:"sender_name"`
	RequestID  string    `json:"request_id"`
	SentAt     time.Time `json:"sent_at"`
}

// Request responded payload (sent to sender when the receiver accepts or rejects)
type RequestRespondedPayload struct {
	SenderID     string    `json:"sender_id"`
	ReceiverName string    `json:"receiver_name"`
	RequestID    string    `json:"request_id"`
	Status       string    `json:"status"`
	SentAt       time.Time `json:"sent_at"`
}

// Rating received payload (sent to the rated user)
type RatingReceivedPayload struct {
	RatedUserID   string    `json:"rated_user_id"`
	Rating        int       `json:"rating"`
	SwapRequestID string    `json:"swap_request_id"`
	SentAt        time.Time `json:"sent_at"`
}

// User banned payload
type UserBannedPayload struct {
	UserID string    `json:"user_id"`
	Reason string    `json:"reason"`
	SentAt time.Time `json:"sent_at"`
}
