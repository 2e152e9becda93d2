package items

import (
	"context"
	"testing"
	"time"

	"github.com/Domenick1991/itemshare/internal/apperr"
	"github.com/Domenick1991/itemshare/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) Create(ctx context.Context, item *domain.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItemRepository) GetByID(ctx context.Context, id int64) (*domain.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}

func (m *MockItemRepository) Update(ctx context.Context, item *domain.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItemRepository) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Item, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Item), args.Error(1)
}

func (m *MockItemRepository) Search(ctx context.Context, text string) ([]domain.Item, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Item), args.Error(1)
}

func (m *MockItemRepository) ShortByID(ctx context.Context, id int64) (*domain.ShortItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShortItem), args.Error(1)
}

func (m *MockItemRepository) ListByRequestIDs(ctx context.Context, requestIDs []int64) ([]domain.Item, error) {
	args := m.Called(ctx, requestIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Item), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) Exists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) EmailTaken(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) ShortByID(ctx context.Context, id int64) (*domain.ShortUser, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShortUser), args.Error(1)
}

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) Approve(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) Reject(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListByBooker(ctx context.Context, bookerID int64, filter domain.StateFilter, now time.Time) ([]domain.Booking, error) {
	args := m.Called(ctx, bookerID, filter, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListByItemOwner(ctx context.Context, ownerID int64, filter domain.StateFilter, now time.Time) ([]domain.Booking, error) {
	args := m.Called(ctx, ownerID, filter, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) LastForItem(ctx context.Context, itemID int64, now time.Time) (*domain.Booking, error) {
	args := m.Called(ctx, itemID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) NextForItem(ctx context.Context, itemID int64, now time.Time) (*domain.Booking, error) {
	args := m.Called(ctx, itemID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) HasFinishedApproved(ctx context.Context, bookerID, itemID int64, now time.Time) (bool, error) {
	args := m.Called(ctx, bookerID, itemID, now)
	return args.Bool(0), args.Error(1)
}

type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) ListByItem(ctx context.Context, itemID int64) ([]domain.Comment, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Comment), args.Error(1)
}

type MockRequestRepository struct {
	mock.Mock
}

func (m *MockRequestRepository) Create(ctx context.Context, request *domain.ItemRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockRequestRepository) GetByID(ctx context.Context, id int64) (*domain.ItemRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ItemRequest), args.Error(1)
}

func (m *MockRequestRepository) ListByRequester(ctx context.Context, requesterID int64) ([]domain.ItemRequest, error) {
	args := m.Called(ctx, requesterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ItemRequest), args.Error(1)
}

func (m *MockRequestRepository) ListOthers(ctx context.Context, requesterID int64) ([]domain.ItemRequest, error) {
	args := m.Called(ctx, requesterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ItemRequest), args.Error(1)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) GetSearch(ctx context.Context, text string) ([]domain.Item, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Item), args.Error(1)
}

func (m *MockCache) SetSearch(ctx context.Context, text string, items []domain.Item) error {
	args := m.Called(ctx, text, items)
	return args.Error(0)
}

func (m *MockCache) InvalidateItems(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type testDeps struct {
	items    *MockItemRepository
	users    *MockUserRepository
	bookings *MockBookingRepository
	comments *MockCommentRepository
	requests *MockRequestRepository
	cache    *MockCache
}

func newTestService() (*ItemService, testDeps) {
	deps := testDeps{
		items:    &MockItemRepository{},
		users:    &MockUserRepository{},
		bookings: &MockBookingRepository{},
		comments: &MockCommentRepository{},
		requests: &MockRequestRepository{},
		cache:    &MockCache{},
	}
	service := NewItemService(deps.items, deps.users, deps.bookings, deps.comments, deps.requests, deps.cache)
	return service, deps
}

func TestItemService_Get_ViewWithBookingsAndComments(t *testing.T) {
	service, deps := newTestService()
	ctx := context.Background()

	item := &domain.Item{ID: 7, Name: "drill", Description: "cordless", Available: false, OwnerID: 1}
	last := &domain.Booking{ID: 10, ItemID: 7, BookerID: 2}
	next := &domain.Booking{ID: 11, ItemID: 7, BookerID: 3}
	comments := []domain.Comment{
		{ID: 1, Text: "worked great", ItemID: 7, AuthorID: 2, AuthorName: "booker", CreatedAt: time.Now().Add(-time.Hour)},
		{ID: 2, Text: "battery is weak", ItemID: 7, AuthorID: 3, AuthorName: "other", CreatedAt: time.Now()},
	}

	deps.items.On("GetByID", ctx, int64(7)).Return(item, nil).Once()
	deps.bookings.On("LastForItem", ctx, int64(7), mock.AnythingOfType("time.Time")).Return(last, nil).Once()
	deps.bookings.On("NextForItem", ctx, int64(7), mock.AnythingOfType("time.Time")).Return(next, nil).Once()
	deps.comments.On("ListByItem", ctx, int64(7)).Return(comments, nil).Once()

	view, err := service.Get(ctx, 7)

	assert.NoError(t, err)
	assert.Equal(t, &ShortBooking{ID: 10, BookerID: 2}, view.LastBooking)
	assert.Equal(t, &ShortBooking{ID: 11, BookerID: 3}, view.NextBooking)
	assert.Len(t, view.Comments, 2)
	assert.Equal(t, "worked great", view.Comments[0].Text)
}

func TestItemService_Get_NoBookingsIsNotAnError(t *testing.T) {
	service, deps := newTestService()
	ctx := context.Background()

	deps.items.On("GetByID", ctx, int64(7)).
		Return(&domain.Item{ID: 7, Name: "drill", Available: true, OwnerID: 1}, nil).Once()
	deps.bookings.On("LastForItem", ctx, int64(7), mock.AnythingOfType("time.Time")).Return(nil, nil).Once()
	deps.bookings.On("NextForItem", ctx, int64(7), mock.AnythingOfType("time.Time")).Return(nil, nil).Once()
	deps.comments.On("ListByItem", ctx, int64(7)).Return([]domain.Comment{}, nil).Once()

	view, err := service.Get(ctx, 7)

	assert.NoError(t, err)
	assert.Nil(t, view.LastBooking)
	assert.Nil(t, view.NextBooking)
	assert.Empty(t, view.Comments)
}

func TestItemService_Get_NotFound(t *testing.T) {
	service, deps := newTestService()
	ctx := context.Background()

	deps.items.On("GetByID", ctx, int64(7)).
		Return(nil, apperr.NotFound("item 7 not found")).Once()

	view, err := service.Get(ctx, 7)

	assert.Nil(t, view)
	assert.True(t, apperr.IsNotFound(err))
}

func TestItemService_ListByOwner_OwnerNotFound(t *testing.T) {
	service, deps := newTestService()
	ctx := context.Background()

	deps.users.On("Exists", ctx, int64(1)).Return(false, nil).Once()

	views, err := service.ListByOwner(ctx, 1)

	assert.Nil(t, views)
	assert.True(t, apperr.IsNotFound(err))
	deps.items.AssertNotCalled(t, "ListByOwner")
}

func TestItemService_ListByOwner_Empty(t *testing.T) {
	service, deps := newTestService()
	ctx := context.Background()

	deps.users.On("Exists", ctx, int64(1)).Return(true, nil).Once()
	deps.items.On("ListByOwner", ctx, int64(1)).Return([]domain.Item{}, nil).Once()

	views, err := service.ListByOwner(ctx, 1)

	assert.NoError(t, err)
	assert.Empty(t, views)
}

func TestItemService_Create_AgainstRequest(t *testing.T) {
	service, deps := newTestService()
	ctx := context.Background()
	requestID := int64(4)

	deps.users.On("Exists", ctx, int64(1)).Return(true, nil).Once()
	deps.requests.On("GetByID", ctx, requestID).
		Return(&domain.ItemRequest{ID: requestID, RequesterID: 2}, nil).Once()
	deps.items.On("Create", ctx, mock.AnythingOfType("*domain.Item")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Item).ID = 7
		}).Return(nil).Once()
	deps.cache.On("InvalidateItems", ctx).Return(nil).Once()

	dto, err := service.Create(ctx, 1, CreateItemInput{
		Name:        "drill",
		Description: "cordless",
		Available:   true,
		RequestID:   &requestID,
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(7), dto.ID)
	assert.Equal(t, &requestID, dto.RequestID)
	deps.cache.AssertExpectations(t)
}

func TestItemService_Create_UnknownRequest(t *testing.T) {
	service, deps := newTestService()
	ctx := context.Background()
	requestID := int64(4)

	deps.users.On("Exists", ctx, int64(1)).Return(true, nil).Once()
	deps.requests.On("GetByID", ctx, requestID).
		Return(nil, apperr.NotFound("request 4 not found")).Once()

	dto, err := service.Create(ctx, 1, CreateItemInput{
		Name:        "drill",
		Description: "cordless",
		Available:   true,
		RequestID:   &requestID,
	})

	assert.Nil(t, dto)
	assert.True(t, apperr.IsNotFound(err))
	deps.items.AssertNotCalled(t, "Create")
}

func TestItemService_Update_NotOwner(t *testing.T) {
	service, deps := newTestService()
	ctx := context.Background()

	deps.users.On("Exists", ctx, int64(2)).Return(true, nil).Once()
	deps.items.On("GetByID", ctx, int64(7)).
		Return(&domain.Item{ID: 7, Name: "drill", OwnerID: 1}, nil).Once()

	name := "hammer"
	dto, err := service.Update(ctx, 2, 7, UpdateItemInput{Name: &name})

	assert.Nil(t, dto)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
	deps.items.AssertNotCalled(t, "Update")
}

func TestItemService_Update_BlankFieldsIgnored(t *testing.T) {
	service, deps := newTestService()
	ctx := context.Background()

	deps.users.On("Exists", ctx, int64(1)).Return(true, nil).Once()
	deps.items.On("GetByID", ctx, int64(7)).
		Return(&domain.Item{ID: 7, Name: "drill", Description: "cordless", Available: true, OwnerID: 1}, nil).Once()
	deps.items.On("Update", ctx, mock.AnythingOfType("*domain.Item")).Return(nil).Once()
	deps.cache.On("InvalidateItems", ctx).Return(nil).Once()

	blank := "   "
	available := false
	dto, err := service.Update(ctx, 1, 7, UpdateItemInput{Name: &blank, Available: &available})

	assert.NoError(t, err)
	assert.Equal(t, "drill", dto.Name)
	assert.False(t, dto.Available)
}

func TestItemService_Search_BlankText(t *testing.T) {
	service, deps := newTestService()
	ctx := context.Background()

	dtos, err := service.Search(ctx, "   ")

	assert.NoError(t, err)
	assert.Empty(t, dtos)
	deps.items.AssertNotCalled(t, "Search")
}

func TestItemService_Search_CacheHit(t *testing.T) {
	service, deps := newTestService()
	ctx := context.Background()

	cached := []domain.Item{{ID: 7, Name: "drill", Available: true, OwnerID: 1}}
	deps.cache.On("GetSearch", ctx, "drill").Return(cached, nil).Once()

	dtos, err := service.Search(ctx, "drill")

	assert.NoError(t, err)
	assert.Len(t, dtos, 1)
	deps.items.AssertNotCalled(t, "Search")
}

func TestItemService_Search_CacheMiss(t *testing.T) {
	service, deps := newTestService()
	ctx := context.Background()

	found := []domain.Item{{ID: 7, Name: "drill", Available: true, OwnerID: 1}}
	deps.cache.On("GetSearch", ctx, "drill").Return(nil, nil).Once()
	deps.items.On("Search", ctx, "drill").Return(found, nil).Once()
	deps.cache.On("SetSearch", ctx, "drill", found).Return(nil).Once()

	dtos, err := service.Search(ctx, "drill")

	assert.NoError(t, err)
	assert.Len(t, dtos, 1)
	deps.cache.AssertExpectations(t)
}

func TestItemService_Comment_Success(t *testing.T) {
	service, deps := newTestService()
	ctx := context.Background()

	deps.bookings.On("HasFinishedApproved", ctx, int64(2), int64(7), mock.AnythingOfType("time.Time")).
		Return(true, nil).Once()
	deps.users.On("ShortByID", ctx, int64(2)).
		Return(&domain.ShortUser{ID: 2, Name: "booker"}, nil).Once()
	deps.items.On("GetByID", ctx, int64(7)).
		Return(&domain.Item{ID: 7, Name: "drill", OwnerID: 1}, nil).Once()
	deps.comments.On("Create", ctx, mock.AnythingOfType("*domain.Comment")).
		Run(func(args mock.Arguments) {
			c := args.Get(1).(*domain.Comment)
			c.ID = 9
			c.CreatedAt = time.Now()
		}).Return(nil).Once()

	dto, err := service.Comment(ctx, 2, 7, "worked great")

	assert.NoError(t, err)
	assert.Equal(t, int64(9), dto.ID)
	assert.Equal(t, "booker", dto.AuthorName)
}

func TestItemService_Comment_WithoutFinishedBooking(t *testing.T) {
	service, deps := newTestService()
	ctx := context.Background()

	deps.bookings.On("HasFinishedApproved", ctx, int64(2), int64(7), mock.AnythingOfType("time.Time")).
		Return(false, nil).Once()

	dto, err := service.Comment(ctx, 2, 7, "worked great")

	assert.Nil(t, dto)
	assert.Equal(t, apperr.KindInternal, apperr.KindOf(err))
	deps.comments.AssertNotCalled(t, "Create")
}
