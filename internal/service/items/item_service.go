package items

import (
	"context"
	"strings"
	"time"

	"github.com/Domenick1991/itemshare/internal/apperr"
	"github.com/Domenick1991/itemshare/internal/domain"
	"github.com/Domenick1991/itemshare/internal/repository"
	"github.com/sirupsen/logrus"
)

type ItemUseCase interface {
	Create(ctx context.Context, ownerID int64, input CreateItemInput) (*ItemDTO, error)
	Update(ctx context.Context, ownerID, itemID int64, input UpdateItemInput) (*ItemDTO, error)
	Get(ctx context.Context, itemID int64) (*ItemView, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]ItemView, error)
	Search(ctx context.Context, text string) ([]ItemDTO, error)
	Comment(ctx context.Context, authorID, itemID int64, text string) (*CommentDTO, error)
}

// Cache holds item search results between catalog writes.
type Cache interface {
	GetSearch(ctx context.Context, text string) ([]domain.Item, error)
	SetSearch(ctx context.Context, text string, items []domain.Item) error
	InvalidateItems(ctx context.Context) error
}

type CreateItemInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	RequestID   *int64 `json:"requestId,omitempty"`
}

type UpdateItemInput struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Available   *bool   `json:"available,omitempty"`
}

type ItemDTO struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	OwnerID     int64  `json:"ownerId"`
	RequestID   *int64 `json:"requestId,omitempty"`
}

// ShortBooking is the booking projection embedded into item views.
type ShortBooking struct {
	ID       int64 `json:"id"`
	BookerID int64 `json:"bookerId"`
}

// ItemView is an item with its temporal booking context and comments.
type ItemView struct {
	ID          int64         `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Available   bool          `json:"available"`
	LastBooking *ShortBooking `json:"lastBooking"`
	NextBooking *ShortBooking `json:"nextBooking"`
	Comments    []CommentDTO  `json:"comments"`
}

type CommentDTO struct {
	ID         int64     `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"authorName"`
	Created    time.Time `json:"created"`
}

type ItemService struct {
	items    repository.ItemRepository
	users    repository.UserRepository
	bookings repository.BookingRepository
	comments repository.CommentRepository
	requests repository.ItemRequestRepository
	cache    Cache
}

func NewItemService(
	items repository.ItemRepository,
	users repository.UserRepository,
	bookings repository.BookingRepository,
	comments repository.CommentRepository,
	requests repository.ItemRequestRepository,
	cache Cache,
) *ItemService {
	return &ItemService{
		items:    items,
		users:    users,
		bookings: bookings,
		comments: comments,
		requests: requests,
		cache:    cache,
	}
}

func (s *ItemService) Create(ctx context.Context, ownerID int64, input CreateItemInput) (*ItemDTO, error) {
	if err := s.checkUserExists(ctx, ownerID); err != nil {
		return nil, err
	}
	if input.RequestID != nil {
		if _, err := s.requests.GetByID(ctx, *input.RequestID); err != nil {
			return nil, err
		}
	}

	item := &domain.Item{
		Name:        input.Name,
		Description: input.Description,
		Available:   input.Available,
		OwnerID:     ownerID,
		RequestID:   input.RequestID,
	}
	if err := s.items.Create(ctx, item); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return toItemDTO(item), nil
}

func (s *ItemService) Update(ctx context.Context, ownerID, itemID int64, input UpdateItemInput) (*ItemDTO, error) {
	if err := s.checkUserExists(ctx, ownerID); err != nil {
		return nil, err
	}

	item, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if err := s.checkOwnership(ownerID, item); err != nil {
		return nil, err
	}

	if input.Name != nil && strings.TrimSpace(*input.Name) != "" {
		item.Name = *input.Name
	}
	if input.Description != nil && strings.TrimSpace(*input.Description) != "" {
		item.Description = *input.Description
	}
	if input.Available != nil {
		item.Available = *input.Available
	}

	if err := s.items.Update(ctx, item); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return toItemDTO(item), nil
}

func (s *ItemService) Get(ctx context.Context, itemID int64) (*ItemView, error) {
	item, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return s.buildView(ctx, item, time.Now())
}

func (s *ItemService) ListByOwner(ctx context.Context, ownerID int64) ([]ItemView, error) {
	if err := s.checkUserExists(ctx, ownerID); err != nil {
		return nil, err
	}

	items, err := s.items.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	views := make([]ItemView, 0, len(items))
	for i := range items {
		view, err := s.buildView(ctx, &items[i], now)
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}

func (s *ItemService) Search(ctx context.Context, text string) ([]ItemDTO, error) {
	if strings.TrimSpace(text) == "" {
		return []ItemDTO{}, nil
	}

	if s.cache != nil {
		if cached, err := s.cache.GetSearch(ctx, text); err == nil && cached != nil {
			return toItemDTOs(cached), nil
		}
	}

	items, err := s.items.Search(ctx, text)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.SetSearch(ctx, text, items); err != nil {
			logrus.WithError(err).Warn("failed to cache item search results")
		}
	}
	return toItemDTOs(items), nil
}

func (s *ItemService) Comment(ctx context.Context, authorID, itemID int64, text string) (*CommentDTO, error) {
	finished, err := s.bookings.HasFinishedApproved(ctx, authorID, itemID, time.Now())
	if err != nil {
		return nil, err
	}
	if !finished {
		logrus.WithFields(logrus.Fields{"author_id": authorID, "item_id": itemID}).
			Warn("comment rejected: no finished approved booking")
		return nil, apperr.Internal("user %d has not rented item %d or the rental has not finished", authorID, itemID)
	}

	author, err := s.users.ShortByID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if _, err := s.items.GetByID(ctx, itemID); err != nil {
		return nil, err
	}

	comment := &domain.Comment{
		Text:     text,
		ItemID:   itemID,
		AuthorID: authorID,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	return &CommentDTO{ID: comment.ID, Text: comment.Text, AuthorName: author.Name, Created: comment.CreatedAt}, nil
}

func (s *ItemService) buildView(ctx context.Context, item *domain.Item, now time.Time) (*ItemView, error) {
	last, err := s.bookings.LastForItem(ctx, item.ID, now)
	if err != nil {
		return nil, err
	}
	next, err := s.bookings.NextForItem(ctx, item.ID, now)
	if err != nil {
		return nil, err
	}
	comments, err := s.comments.ListByItem(ctx, item.ID)
	if err != nil {
		return nil, err
	}

	commentDTOs := make([]CommentDTO, 0, len(comments))
	for _, c := range comments {
		commentDTOs = append(commentDTOs, CommentDTO{ID: c.ID, Text: c.Text, AuthorName: c.AuthorName, Created: c.CreatedAt})
	}

	return &ItemView{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Available:   item.Available,
		LastBooking: toShortBooking(last),
		NextBooking: toShortBooking(next),
		Comments:    commentDTOs,
	}, nil
}

func (s *ItemService) checkUserExists(ctx context.Context, userID int64) error {
	exists, err := s.users.Exists(ctx, userID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFound("user %d not found", userID)
	}
	return nil
}

func (s *ItemService) checkOwnership(userID int64, item *domain.Item) error {
	if item.OwnerID != userID {
		logrus.WithFields(logrus.Fields{"user_id": userID, "item_id": item.ID}).
			Warn("user does not own the item")
		return apperr.Forbidden("user %d does not own item %d", userID, item.ID)
	}
	return nil
}

func (s *ItemService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateItems(ctx); err != nil {
		logrus.WithError(err).Warn("failed to invalidate item search cache")
	}
}

func toShortBooking(b *domain.Booking) *ShortBooking {
	if b == nil {
		return nil
	}
	return &ShortBooking{ID: b.ID, BookerID: b.BookerID}
}

func toItemDTO(item *domain.Item) *ItemDTO {
	return &ItemDTO{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Available:   item.Available,
		OwnerID:     item.OwnerID,
		RequestID:   item.RequestID,
	}
}

func toItemDTOs(items []domain.Item) []ItemDTO {
	dtos := make([]ItemDTO, 0, len(items))
	for i := range items {
		dtos = append(dtos, *toItemDTO(&items[i]))
	}
	return dtos
}

var _ ItemUseCase = (*ItemService)(nil)
