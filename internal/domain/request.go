package domain

import "time"

// ItemRequest is a user's ask for an item that is not listed yet.
// Items may reference the request they fulfill.
type ItemRequest struct {
	ID          int64
	Description string
	RequesterID int64
	CreatedAt   time.Time
}
