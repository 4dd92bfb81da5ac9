package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"account-server/internal/auth"
	"account-server/internal/domain"
	"account-server/internal/repository"
	"account-server/internal/validation"
)

// UserService handles self-service profile operations for existing accounts.
type UserService interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	Update(ctx context.Context, id int64, name, email string) (*domain.User, error)
	Delete(ctx context.Context, id int64) error
	ChangePassword(ctx context.Context, id int64, currentPassword, newPassword string) error
}

type userService struct {
	users  repository.UserRepository
	hasher auth.Hasher
	logger *logrus.Logger
}

func NewUserService(users repository.UserRepository, hasher auth.Hasher, logger *logrus.Logger) UserService {
	return &userService{
		users:  users,
		hasher: hasher,
		logger: logger,
	}
}

func (s *userService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// Update changes the account's name and email. Moving to an email another
// account already holds fails with ErrEmailExists.
func (s *userService) Update(ctx context.Context, id int64, name, email string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	if err := validation.Name(name); err != nil {
		return nil, err
	}
	if err := validation.Email(email); err != nil {
		return nil, err
	}

	if email != user.Email {
		taken, err := s.users.ExistsByEmail(ctx, email)
		if err != nil {
			return nil, fmt.Errorf("check email existence: %w", err)
		}
		if taken {
			return nil, domain.ErrEmailExists
		}
	}

	user.Name = name
	user.Email = email
	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, domain.ErrEmailExists
		}
		return nil, err
	}

	s.logger.Infof("updated user %d", id)
	return user, nil
}

func (s *userService) Delete(ctx context.Context, id int64) error {
	exists, err := s.users.ExistsByID(ctx, id)
	if err != nil {
		return fmt.Errorf("check user existence: %w", err)
	}
	if !exists {
		return domain.ErrUserNotFound
	}

	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Infof("deleted user %d", id)
	return nil
}

// ChangePassword verifies the current password before accepting a new one.
// The new password must satisfy the same strength rules as at registration.
func (s *userService) ChangePassword(ctx context.Context, id int64, currentPassword, newPassword string) error {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	if !s.hasher.Verify(currentPassword, user.PasswordHash) {
		return domain.ErrBadCredentials
	}

	if err := validation.Password(newPassword); err != nil {
		return err
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, id, hash); err != nil {
		return err
	}

	s.logger.Infof("password changed for user %d", id)
	return nil
}
