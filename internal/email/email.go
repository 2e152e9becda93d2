package email

import (
	"context"

	"github.com/Domenick1991/itemshare/internal/kafka"
	"github.com/sirupsen/logrus"
)

// Sender delivers booking notifications. The current transport is the
// log; the worker owns the delivery loop.
type Sender struct {
	log *logrus.Logger
}

func NewSender(log *logrus.Logger) *Sender {
	return &Sender{log: log}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	s.log.WithFields(logrus.Fields{
		"type":       event.Type,
		"booking_id": event.BookingID,
		"item":       event.ItemName,
		"booker_id":  event.BookerID,
		"owner_id":   event.OwnerID,
		"status":     event.Status,
	}).Info("booking notification")
	return nil
}
