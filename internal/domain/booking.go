package domain

import (
	"strings"
	"time"
)

type BookingStatus string

const (
	BookingStatusWaiting  BookingStatus = "WAITING"
	BookingStatusApproved BookingStatus = "APPROVED"
	BookingStatusRejected BookingStatus = "REJECTED"
)

type Booking struct {
	ID        int64
	Start     time.Time
	End       time.Time
	ItemID    int64
	BookerID  int64
	Status    BookingStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// StateFilter selects bookings relative to "now" or by status.
type StateFilter string

const (
	StateAll      StateFilter = "ALL"
	StateCurrent  StateFilter = "CURRENT"
	StatePast     StateFilter = "PAST"
	StateFuture   StateFilter = "FUTURE"
	StateWaiting  StateFilter = "WAITING"
	StateRejected StateFilter = "REJECTED"
)

// ParseStateFilter maps a query parameter to a StateFilter. An empty
// parameter means ALL.
func ParseStateFilter(s string) (StateFilter, bool) {
	if s == "" {
		return StateAll, true
	}
	switch f := StateFilter(strings.ToUpper(s)); f {
	case StateAll, StateCurrent, StatePast, StateFuture, StateWaiting, StateRejected:
		return f, true
	default:
		return "", false
	}
}
