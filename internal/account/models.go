package account

import "time"

// Identity is an authenticated user. Created at registration and read-only
// afterwards besides credential checks; emails act as the unique key
// everywhere identities are referenced.
type Identity struct {
	Email          string
	CredentialHash string
	RegisteredAt   time.Time
}

// Session ties an opaque id to a logged-in identity. Sessions carry no
// authorization scope; they only name who is current.
type Session struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
