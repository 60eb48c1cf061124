package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/heartmarshall/jobtrack-backend/internal/domain"
)

// Register creates a new account and returns an access token.
// Returns ErrAlreadyExists if the email is already taken.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	// Normalize input before validation.
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.Name = strings.TrimSpace(input.Name)

	if err := input.Validate(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.cfg.PasswordHashCost)
	if err != nil {
		return nil, fmt.Errorf("user.Register hash password: %w", err)
	}

	// Email uniqueness is enforced by the DB constraint.
	created, err := s.users.Create(ctx, &domain.User{
		Email:        input.Email,
		Name:         input.Name,
		PasswordHash: string(hash),
		Role:         domain.UserRoleUser,
	})
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, fmt.Errorf("user.Register: %w", domain.ErrAlreadyExists)
		}
		return nil, fmt.Errorf("user.Register: %w", err)
	}

	token, err := s.jwt.GenerateAccessToken(created.ID, created.Role.String())
	if err != nil {
		return nil, fmt.Errorf("user.Register generate token: %w", err)
	}

	s.log.InfoContext(ctx, "user registered",
		slog.String("user_id", created.ID.String()))

	return &AuthResult{AccessToken: token, User: created}, nil
}
