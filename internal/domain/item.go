package domain

import "time"

type Item struct {
	ID          int64
	Name        string
	Description string
	Available   bool
	OwnerID     int64
	RequestID   *int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ShortItem is the minimal projection of an item embedded into booking views.
type ShortItem struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
