package service

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"staffdesk/internal/auth"
	"staffdesk/internal/errors"
	"staffdesk/internal/model"
	"staffdesk/internal/repository"
)

const bcryptCost = 10

// AuthService handles authentication operations.
type AuthService interface {
	Register(ctx context.Context, userName, password string) error
	Login(ctx context.Context, userName, password string) (token string, account *model.Account, err error)
	Logout(ctx context.Context, token string) error
}

type authService struct {
	accounts   repository.AccountRepository
	jwtService *auth.JWTService
	tokenStore auth.TokenStoreInterface
}

// NewAuthService creates a new authentication service.
func NewAuthService(accounts repository.AccountRepository, jwtService *auth.JWTService, tokenStore auth.TokenStoreInterface) AuthService {
	return &authService{
		accounts:   accounts,
		jwtService: jwtService,
		tokenStore: tokenStore,
	}
}

// Register creates a new admin account with a hashed password. No token
// is issued; the caller logs in separately.
func (s *authService) Register(ctx context.Context, userName, password string) error {
	if userName == "" || password == "" {
		return errors.NewValidationError("Please provide username and password")
	}

	existing, err := s.accounts.FindByUserName(ctx, userName)
	if err == nil && existing != nil {
		return errors.ErrUsernameExists
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return fmt.Errorf("check account existence: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	account := &model.Account{
		UserName:     userName,
		PasswordHash: string(hashedPassword),
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		return fmt.Errorf("create account: %w", err)
	}
	return nil
}

// Login authenticates an account and returns a signed token. Unknown
// usernames and wrong passwords produce the same error so callers
// cannot probe for accounts.
func (s *authService) Login(ctx context.Context, userName, password string) (string, *model.Account, error) {
	if userName == "" || password == "" {
		return "", nil, errors.NewValidationError("Please provide username and password")
	}

	account, err := s.accounts.FindByUserName(ctx, userName)
	if err != nil {
		return "", nil, errors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return "", nil, errors.ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateToken(account.ID, account.UserName)
	if err != nil {
		return "", nil, fmt.Errorf("generate token: %w", err)
	}
	return token, account, nil
}

// Logout revokes a token for its remaining lifetime.
func (s *authService) Logout(ctx context.Context, token string) error {
	claims, err := s.jwtService.ValidateToken(token)
	if err != nil {
		return errors.ErrInvalidToken
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	return s.tokenStore.BlacklistToken(ctx, claims.ID, ttl)
}
