package user

import "time"

type User struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Password     string     `json:"-"` // never return
	Location     string     `json:"location"`
	ProfilePhoto *string    `json:"profile_photo"`
	Availability string     `json:"availability"`
	IsPublic     bool       `json:"is_public"`
	Role         string     `json:"role"`
	IsActive     bool       `json:"is_active"`
	BannedAt     *time.Time `json:"banned_at,omitempty"`
	BannedReason *string    `json:"banned_reason,omitempty"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
