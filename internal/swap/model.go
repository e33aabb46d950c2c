package swap

import "time"

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusAccepted  Status = "ACCEPTED"
	StatusRejected  Status = "REJECTED"
	StatusCancelled Status = "CANCELLED"
)

// ParseStatus validates a caller-supplied status value.
func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusPending, StatusAccepted, StatusRejected, StatusCancelled:
		return Status(s), true
	}
	return "", false
}

// SkillSummary is the trimmed skill shape embedded in participants.
type SkillSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// Participant is the trimmed user shape embedded in request views.
type Participant struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	ProfilePhoto *string        `json:"profile_photo"`
	Location     string         `json:"location"`
	Availability string         `json:"availability,omitempty"`
	Skills       []SkillSummary `json:"skills"`
}

// Request is a swap request between two users.
type Request struct {
	ID         string       `json:"id"`
	SenderID   string       `json:"sender_id"`
	ReceiverID string       `json:"receiver_id"`
	Status     Status       `json:"status"`
	Message    *string      `json:"message"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
	Sender     *Participant `json:"sender,omitempty"`
	Receiver   *Participant `json:"receiver,omitempty"`
}

func (r *Request) IsParticipant(userID string) bool {
	return r.SenderID == userID || r.ReceiverID == userID
}

// OtherParticipant returns the counterpart of userID in this request.
func (r *Request) OtherParticipant(userID string) string {
	if r.SenderID == userID {
		return r.ReceiverID
	}
	return r.SenderID
}
