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

// AuthService coordinates registration, login and identity resolution on top
// of the user store, the password hasher and the token codec.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	AuthenticatedUser(ctx context.Context) (*domain.User, error)
}

type authService struct {
	users  repository.UserRepository
	hasher auth.Hasher
	tokens *auth.TokenCodec
	logger *logrus.Logger
}

func NewAuthService(users repository.UserRepository, hasher auth.Hasher, tokens *auth.TokenCodec, logger *logrus.Logger) AuthService {
	return &authService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		logger: logger,
	}
}

// Register validates and persists a new account. The validation order is
// fixed: email format, email existence, password, name. When several fields
// are invalid at once, only the first failure in that order surfaces.
func (s *authService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	if err := validation.Email(email); err != nil {
		return nil, err
	}

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check email existence: %w", err)
	}
	if exists {
		return nil, domain.ErrEmailExists
	}

	if err := validation.Password(password); err != nil {
		return nil, err
	}
	if err := validation.Name(name); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}
	if _, err := s.users.Create(ctx, user); err != nil {
		// the unique constraint is the real guard; the existence check above
		// only narrows the window
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, domain.ErrEmailExists
		}
		return nil, err
	}

	s.logger.Infof("registered user %s", user.Email)
	return user, nil
}

// Login reports a missing account distinctly from a wrong password: the
// existence check runs before any hash comparison.
func (s *authService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("check email existence: %w", err)
	}
	if !exists {
		return nil, "", domain.ErrUserNotFound
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		// existence was just confirmed; this is a defect, not a user error
		return nil, "", fmt.Errorf("fetch user after existence check: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		s.logger.Warnf("failed login attempt for %s", email)
		return nil, "", domain.ErrBadCredentials
	}

	token, err := s.tokens.Issue(domain.Identity{
		UserID: user.ID,
		Email:  user.Email,
		Roles:  []string{domain.RoleUser},
	})
	if err != nil {
		return nil, "", err
	}

	s.logger.Infof("user %s logged in", user.Email)
	return user, token, nil
}

// AuthenticatedUser re-fetches the full record for the identity the request
// gate attached to the context. The record may have been deleted since the
// token was issued.
func (s *authService) AuthenticatedUser(ctx context.Context) (*domain.User, error) {
	identity := auth.MustIdentityFrom(ctx)

	user, err := s.users.GetByEmail(ctx, identity.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
