package bookings

import (
	"context"
	"strconv"
	"time"

	"github.com/Domenick1991/itemshare/internal/apperr"
	"github.com/Domenick1991/itemshare/internal/domain"
	"github.com/Domenick1991/itemshare/internal/kafka"
	"github.com/Domenick1991/itemshare/internal/repository"
	"github.com/sirupsen/logrus"
)

type BookingUseCase interface {
	Create(ctx context.Context, bookerID int64, input CreateBookingInput) (*BookingView, error)
	Decide(ctx context.Context, actingUserID, bookingID int64, approved bool) (*BookingView, error)
	Get(ctx context.Context, viewerID, bookingID int64) (*BookingView, error)
	ListForBooker(ctx context.Context, bookerID int64, state string) ([]BookingView, error)
	ListForOwner(ctx context.Context, ownerID int64, state string) ([]BookingView, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type CreateBookingInput struct {
	ItemID int64     `json:"itemId"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
}

// BookingView combines booking fields with short projections of the
// item and the booker.
type BookingView struct {
	ID     int64                `json:"id"`
	Start  time.Time            `json:"start"`
	End    time.Time            `json:"end"`
	Status domain.BookingStatus `json:"status"`
	Item   domain.ShortItem     `json:"item"`
	Booker domain.ShortUser     `json:"booker"`
}

type BookingService struct {
	bookings           repository.BookingRepository
	items              repository.ItemRepository
	users              repository.UserRepository
	producer           Producer
	bookingTopic       string
	notificationsTopic string
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

func NewBookingService(
	bookings repository.BookingRepository,
	items repository.ItemRepository,
	users repository.UserRepository,
	producer Producer,
	bookingTopic string,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		bookings:     bookings,
		items:        items,
		users:        users,
		producer:     producer,
		bookingTopic: bookingTopic,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *BookingService) Create(ctx context.Context, bookerID int64, input CreateBookingInput) (*BookingView, error) {
	if err := checkBookingDates(input.Start, input.End); err != nil {
		return nil, err
	}

	item, err := s.items.GetByID(ctx, input.ItemID)
	if err != nil {
		return nil, err
	}
	if !item.Available {
		logrus.WithField("item_id", item.ID).Warn("item is not available for booking")
		return nil, apperr.Internal("item %d is not available for booking", item.ID)
	}

	booker, err := s.users.ShortByID(ctx, bookerID)
	if err != nil {
		return nil, err
	}

	booking := &domain.Booking{
		Start:    input.Start,
		End:      input.End,
		ItemID:   item.ID,
		BookerID: bookerID,
	}
	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, err
	}

	view := toView(booking, domain.ShortItem{ID: item.ID, Name: item.Name}, *booker)
	s.publish(ctx, kafka.EventBookingCreated, booking, view, item.OwnerID)
	return view, nil
}

func (s *BookingService) Decide(ctx context.Context, actingUserID, bookingID int64, approved bool) (*BookingView, error) {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	item, err := s.items.GetByID(ctx, booking.ItemID)
	if err != nil {
		return nil, err
	}

	var eventType string
	if approved {
		if item.OwnerID != actingUserID {
			logrus.WithFields(logrus.Fields{"user_id": actingUserID, "item_id": item.ID}).
				Warn("approval attempted by a user who does not own the item")
			return nil, apperr.Forbidden("user %d does not own item %d", actingUserID, item.ID)
		}
		booking, err = s.bookings.Approve(ctx, bookingID)
		eventType = kafka.EventBookingApproved
	} else {
		// Rejection carries no ownership check.
		booking, err = s.bookings.Reject(ctx, bookingID)
		eventType = kafka.EventBookingRejected
	}
	if err != nil {
		return nil, err
	}

	booker, err := s.users.ShortByID(ctx, booking.BookerID)
	if err != nil {
		return nil, err
	}

	view := toView(booking, domain.ShortItem{ID: item.ID, Name: item.Name}, *booker)
	s.publish(ctx, eventType, booking, view, item.OwnerID)
	return view, nil
}

func (s *BookingService) Get(ctx context.Context, viewerID, bookingID int64) (*BookingView, error) {
	if err := s.checkUserExists(ctx, viewerID); err != nil {
		return nil, err
	}

	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	item, err := s.items.GetByID(ctx, booking.ItemID)
	if err != nil {
		return nil, err
	}
	// Only the booker or the item's owner may see a booking; anyone
	// else learns nothing, not even that it exists.
	if item.OwnerID != viewerID && booking.BookerID != viewerID {
		return nil, apperr.NotFound("user %d is neither the booker nor the owner of item %d", viewerID, item.ID)
	}

	booker, err := s.users.ShortByID(ctx, booking.BookerID)
	if err != nil {
		return nil, err
	}
	return toView(booking, domain.ShortItem{ID: item.ID, Name: item.Name}, *booker), nil
}

func (s *BookingService) ListForBooker(ctx context.Context, bookerID int64, state string) ([]BookingView, error) {
	filter, ok := domain.ParseStateFilter(state)
	if !ok {
		return nil, apperr.BadRequest("unknown state: %s", state)
	}
	if err := s.checkUserExists(ctx, bookerID); err != nil {
		return nil, err
	}

	list, err := s.bookings.ListByBooker(ctx, bookerID, filter, time.Now())
	if err != nil {
		return nil, err
	}
	return s.toViews(ctx, list)
}

func (s *BookingService) ListForOwner(ctx context.Context, ownerID int64, state string) ([]BookingView, error) {
	filter, ok := domain.ParseStateFilter(state)
	if !ok {
		return nil, apperr.BadRequest("unknown state: %s", state)
	}
	if err := s.checkUserExists(ctx, ownerID); err != nil {
		return nil, err
	}

	list, err := s.bookings.ListByItemOwner(ctx, ownerID, filter, time.Now())
	if err != nil {
		return nil, err
	}
	return s.toViews(ctx, list)
}

func (s *BookingService) toViews(ctx context.Context, list []domain.Booking) ([]BookingView, error) {
	views := make([]BookingView, 0, len(list))
	items := make(map[int64]domain.ShortItem)
	bookers := make(map[int64]domain.ShortUser)

	for i := range list {
		b := &list[i]
		item, ok := items[b.ItemID]
		if !ok {
			short, err := s.items.ShortByID(ctx, b.ItemID)
			if err != nil {
				return nil, err
			}
			item = *short
			items[b.ItemID] = item
		}
		booker, ok := bookers[b.BookerID]
		if !ok {
			short, err := s.users.ShortByID(ctx, b.BookerID)
			if err != nil {
				return nil, err
			}
			booker = *short
			bookers[b.BookerID] = booker
		}
		views = append(views, *toView(b, item, booker))
	}
	return views, nil
}

func (s *BookingService) checkUserExists(ctx context.Context, userID int64) error {
	exists, err := s.users.Exists(ctx, userID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFound("user %d not found", userID)
	}
	return nil
}

func (s *BookingService) publish(ctx context.Context, eventType string, booking *domain.Booking, view *BookingView, ownerID int64) {
	if s.producer == nil || s.bookingTopic == "" {
		return
	}
	event := kafka.BookingEvent{
		Type:      eventType,
		BookingID: booking.ID,
		ItemID:    view.Item.ID,
		ItemName:  view.Item.Name,
		BookerID:  booking.BookerID,
		OwnerID:   ownerID,
		Status:    string(booking.Status),
		Start:     booking.Start,
		End:       booking.End,
	}
	key := strconv.FormatInt(booking.ID, 10)
	if err := s.producer.Publish(ctx, s.bookingTopic, key, event); err != nil {
		logrus.WithError(err).WithField("booking_id", booking.ID).Warnf("failed to publish %s event", eventType)
	}
	if s.notificationsTopic != "" {
		if err := s.producer.Publish(ctx, s.notificationsTopic, key, event); err != nil {
			logrus.WithError(err).WithField("booking_id", booking.ID).Warnf("failed to publish %s notification", eventType)
		}
	}
}

func toView(b *domain.Booking, item domain.ShortItem, booker domain.ShortUser) *BookingView {
	return &BookingView{
		ID:     b.ID,
		Start:  b.Start,
		End:    b.End,
		Status: b.Status,
		Item:   item,
		Booker: booker,
	}
}

func checkBookingDates(start, end time.Time) error {
	if start.Equal(end) {
		logrus.Warn("booking start and end must differ")
		return apperr.BadRequest("booking start and end must differ")
	}
	if start.After(end) {
		logrus.Warn("booking start must be before end")
		return apperr.BadRequest("booking start must be before end")
	}
	return nil
}

var _ BookingUseCase = (*BookingService)(nil)
