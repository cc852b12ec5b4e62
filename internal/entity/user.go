package entity

import "time"

type User struct {
	ID          int64     `json:"id"`
	Email       string    `json:"email"`
	Name        *string   `json:"name"`
	Provider    *string   `json:"provider"`
	ProviderSub *string   `json:"provider_sub"`
	CreatedAt   time.Time `json:"-"`
}

// Profile is what an external identity provider tells us about the caller.
type Profile struct {
	Provider string
	Subject  string
	Email    string
	Name     string
}
