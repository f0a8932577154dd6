package model

import "time"

// Reviewer is a human reviewer account for the review API.
type Reviewer struct {
	ID           int       `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
