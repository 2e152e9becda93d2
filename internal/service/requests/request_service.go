package requests

import (
	"context"
	"time"

	"github.com/Domenick1991/itemshare/internal/apperr"
	"github.com/Domenick1991/itemshare/internal/domain"
	"github.com/Domenick1991/itemshare/internal/repository"
)

type RequestUseCase interface {
	Create(ctx context.Context, userID int64, description string) (*RequestDTO, error)
	Own(ctx context.Context, userID int64) ([]RequestExtendedDTO, error)
	All(ctx context.Context, userID int64) ([]RequestDTO, error)
	Get(ctx context.Context, userID, requestID int64) (*RequestExtendedDTO, error)
}

type RequestDTO struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	RequesterID int64     `json:"requesterId"`
	Created     time.Time `json:"created"`
}

// ResponseItem is an item listed in answer to a request.
type ResponseItem struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	OwnerID int64  `json:"ownerId"`
}

type RequestExtendedDTO struct {
	RequestDTO
	Items []ResponseItem `json:"items"`
}

type RequestService struct {
	requests repository.ItemRequestRepository
	items    repository.ItemRepository
	users    repository.UserRepository
}

func NewRequestService(
	requests repository.ItemRequestRepository,
	items repository.ItemRepository,
	users repository.UserRepository,
) *RequestService {
	return &RequestService{requests: requests, items: items, users: users}
}

func (s *RequestService) Create(ctx context.Context, userID int64, description string) (*RequestDTO, error) {
	if err := s.checkUserExists(ctx, userID); err != nil {
		return nil, err
	}

	request := &domain.ItemRequest{Description: description, RequesterID: userID}
	if err := s.requests.Create(ctx, request); err != nil {
		return nil, err
	}
	return toRequestDTO(request), nil
}

func (s *RequestService) Own(ctx context.Context, userID int64) ([]RequestExtendedDTO, error) {
	if err := s.checkUserExists(ctx, userID); err != nil {
		return nil, err
	}

	own, err := s.requests.ListByRequester(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(own) == 0 {
		return []RequestExtendedDTO{}, nil
	}

	ids := make([]int64, 0, len(own))
	for _, r := range own {
		ids = append(ids, r.ID)
	}
	answers, err := s.items.ListByRequestIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byRequest := make(map[int64][]ResponseItem)
	for _, it := range answers {
		byRequest[*it.RequestID] = append(byRequest[*it.RequestID], toResponseItem(&it))
	}

	result := make([]RequestExtendedDTO, 0, len(own))
	for _, r := range own {
		items := byRequest[r.ID]
		if items == nil {
			items = []ResponseItem{}
		}
		result = append(result, RequestExtendedDTO{RequestDTO: *toRequestDTO(&r), Items: items})
	}
	return result, nil
}

func (s *RequestService) All(ctx context.Context, userID int64) ([]RequestDTO, error) {
	if err := s.checkUserExists(ctx, userID); err != nil {
		return nil, err
	}

	others, err := s.requests.ListOthers(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := make([]RequestDTO, 0, len(others))
	for i := range others {
		result = append(result, *toRequestDTO(&others[i]))
	}
	return result, nil
}

func (s *RequestService) Get(ctx context.Context, userID, requestID int64) (*RequestExtendedDTO, error) {
	if err := s.checkUserExists(ctx, userID); err != nil {
		return nil, err
	}

	request, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	answers, err := s.items.ListByRequestIDs(ctx, []int64{requestID})
	if err != nil {
		return nil, err
	}

	items := make([]ResponseItem, 0, len(answers))
	for i := range answers {
		items = append(items, toResponseItem(&answers[i]))
	}
	return &RequestExtendedDTO{RequestDTO: *toRequestDTO(request), Items: items}, nil
}

func (s *RequestService) checkUserExists(ctx context.Context, userID int64) error {
	exists, err := s.users.Exists(ctx, userID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFound("user %d not found", userID)
	}
	return nil
}

func toRequestDTO(r *domain.ItemRequest) *RequestDTO {
	return &RequestDTO{ID: r.ID, Description: r.Description, RequesterID: r.RequesterID, Created: r.CreatedAt}
}

func toResponseItem(it *domain.Item) ResponseItem {
	return ResponseItem{ID: it.ID, Name: it.Name, OwnerID: it.OwnerID}
}

var _ RequestUseCase = (*RequestService)(nil)
