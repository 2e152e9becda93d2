package domain

import "time"

// Comment can only be left by a user whose approved booking of the
// item has already finished.
type Comment struct {
	ID         int64
	Text       string
	ItemID     int64
	AuthorID   int64
	AuthorName string
	CreatedAt  time.Time
}
