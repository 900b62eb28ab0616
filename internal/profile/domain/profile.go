package domain

import "time"

type Profile struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UpdateRequest carries the editable fields. Nil means leave unchanged.
type UpdateRequest struct {
	FirstName *string
	LastName  *string
	AvatarURL *string
}
