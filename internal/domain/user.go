package domain

import "time"

type User struct {
	ID        int64
	Name      string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ShortUser is the minimal projection of a user embedded into booking views.
type ShortUser struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
