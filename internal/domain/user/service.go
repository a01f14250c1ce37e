package user

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type Service struct {
	repo     Repository
	secret   []byte
	tokenTTL time.Duration
}

func NewService(repo Repository, secretKey string, tokenTTL time.Duration) *Service {
	return &Service{
		repo:     repo,
		secret:   []byte(secretKey),
		tokenTTL: tokenTTL,
	}
}

func (s *Service) Register(ctx context.Context, input RegisterInput) (*User, *Token, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	username := strings.TrimSpace(input.Username)
	if email == "" || username == "" || input.Password == "" {
		return nil, nil, fmt.Errorf("email, username and password are required")
	}

	if count, err := s.repo.CountUsersByEmail(ctx, email); err != nil {
		return nil, nil, err
	} else if count > 0 {
		return nil, nil, ErrEmailTaken
	}
	if count, err := s.repo.CountUsersByUsername(ctx, username); err != nil {
		return nil, nil, err
	} else if count > 0 {
		return nil, nil, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, err
	}

	account := User{
		Email:        email,
		Username:     username,
		PasswordHash: string(hash),
	}
	if err := s.repo.CreateUser(ctx, &account); err != nil {
		return nil, nil, err
	}

	token, err := s.issueToken(account.ID)
	if err != nil {
		return nil, nil, err
	}
	return &account, token, nil
}

// Login accepts either email or username as the identifier.
func (s *Service) Login(ctx context.Context, input LoginInput) (*User, *Token, error) {
	var (
		account *User
		err     error
	)
	switch {
	case strings.TrimSpace(input.Email) != "":
		account, err = s.repo.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(input.Email)))
	case strings.TrimSpace(input.Username) != "":
		account, err = s.repo.GetUserByUsername(ctx, strings.TrimSpace(input.Username))
	default:
		return nil, nil, fmt.Errorf("email or username is required")
	}
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(input.Password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	token, err := s.issueToken(account.ID)
	if err != nil {
		return nil, nil, err
	}
	return account, token, nil
}

func (s *Service) GetByID(ctx context.Context, id uint) (*User, error) {
	return s.repo.GetUserByID(ctx, id)
}

// ValidateAccessToken returns the user id carried by a signed token.
func (s *Service) ValidateAccessToken(token string) (uint, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(_ *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return 0, ErrInvalidToken
	}
	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || !parsed.Valid {
		return 0, ErrInvalidToken
	}

	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || id == 0 {
		return 0, ErrInvalidToken
	}
	return uint(id), nil
}

func (s *Service) issueToken(userID uint) (*Token, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(userID), 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, err
	}

	return &Token{
		AccessToken: signed,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.tokenTTL.Seconds()),
	}, nil
}
