package users

import (
	"context"
	"strings"

	"github.com/Domenick1991/itemshare/internal/apperr"
	"github.com/Domenick1991/itemshare/internal/domain"
	"github.com/Domenick1991/itemshare/internal/repository"
	"github.com/sirupsen/logrus"
)

type UserUseCase interface {
	Create(ctx context.Context, input CreateUserInput) (*UserDTO, error)
	Get(ctx context.Context, id int64) (*UserDTO, error)
	Update(ctx context.Context, id int64, input UpdateUserInput) (*UserDTO, error)
	Delete(ctx context.Context, id int64) error
}

type CreateUserInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type UpdateUserInput struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
}

type UserDTO struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type UserService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

func (s *UserService) Create(ctx context.Context, input CreateUserInput) (*UserDTO, error) {
	if err := s.checkEmailFree(ctx, input.Email); err != nil {
		return nil, err
	}

	user := &domain.User{Name: input.Name, Email: input.Email}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return toUserDTO(user), nil
}

func (s *UserService) Get(ctx context.Context, id int64) (*UserDTO, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toUserDTO(user), nil
}

func (s *UserService) Update(ctx context.Context, id int64, input UpdateUserInput) (*UserDTO, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Email != nil && *input.Email != user.Email {
		if err := s.checkEmailFree(ctx, *input.Email); err != nil {
			return nil, err
		}
		user.Email = *input.Email
	}
	if input.Name != nil && strings.TrimSpace(*input.Name) != "" {
		user.Name = *input.Name
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return toUserDTO(user), nil
}

// Delete is restrictive: the repository refuses to remove a user that
// items or bookings still reference.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	return s.users.Delete(ctx, id)
}

func (s *UserService) checkEmailFree(ctx context.Context, email string) error {
	taken, err := s.users.EmailTaken(ctx, email)
	if err != nil {
		return err
	}
	if taken {
		logrus.WithField("email", email).Warn("email already exists")
		return apperr.Conflict("email %s already exists", email)
	}
	return nil
}

func toUserDTO(user *domain.User) *UserDTO {
	return &UserDTO{ID: user.ID, Name: user.Name, Email: user.Email}
}

var _ UserUseCase = (*UserService)(nil)
