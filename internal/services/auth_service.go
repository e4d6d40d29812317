package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/maxbiz-creator/audiocraft-studio/internal/models"
	"github.com/maxbiz-creator/audiocraft-studio/internal/repositories"
	"github.com/maxbiz-creator/audiocraft-studio/internal/utils"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailExists        = errors.New("email already exists")
	ErrInvalidToken       = errors.New("invalid token")
	ErrAccountNotFound    = errors.New("account not found")
)

type AuthService struct {
	accountRepo repositories.AccountRepository
	jwtSecret   string
	jwtExpiry   time.Duration
}

func NewAuthService(accountRepo repositories.AccountRepository, jwtSecret string, jwtExpiry time.Duration) *AuthService {
	return &AuthService{
		accountRepo: accountRepo,
		jwtSecret:   jwtSecret,
		jwtExpiry:   jwtExpiry,
	}
}

func (s *AuthService) Register(ctx context.Context, email, password string) (*models.Account, string, error) {
	// Check if email already exists
	existing, err := s.accountRepo.GetByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, "", ErrEmailExists
	}
	if err != nil && err != repositories.ErrNotFound {
		return nil, "", fmt.Errorf("failed to check email: %w", err)
	}

	// Hash password
	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	// Create account with the trial balance
	account := &models.Account{
		Email:          email,
		PasswordHash:   hashedPassword,
		FreeTracksLeft: models.DefaultFreeTracks,
		Subscription:   models.SubscriptionNone,
	}

	err = s.accountRepo.Create(ctx, account)
	if err == repositories.ErrDuplicateEmail {
		return nil, "", ErrEmailExists
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to create account: %w", err)
	}

	token, err := s.generateToken(account.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	return account, token, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*models.Account, string, error) {
	// Unknown email and wrong password are indistinguishable to the caller
	account, err := s.accountRepo.GetByEmail(ctx, email)
	if err == repositories.ErrNotFound {
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to get account: %w", err)
	}

	if !utils.CheckPassword(account.PasswordHash, password) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.generateToken(account.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	return account, token, nil
}

func (s *AuthService) generateToken(accountID uuid.UUID) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   accountID.String(),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtExpiry)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// VerifyToken validates a bearer token and resolves the account it names.
func (s *AuthService) VerifyToken(ctx context.Context, tokenString string) (*models.Account, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})

	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	accountID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, ErrInvalidToken
	}

	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err == repositories.ErrNotFound {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	return account, nil
}
