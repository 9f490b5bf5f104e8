package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/kmansoor/sims-backend/internal/entity"
)

type Claims struct {
	jwt.RegisteredClaims
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Login checks the credentials and returns a signed token. Wrong email and
// wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (string, entity.User, error) {
	user, err := s.repo.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return "", entity.User{}, entity.ErrUnauthenticated
		}

		return "", entity.User{}, fmt.Errorf("get user by email: %w", err)
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	if err != nil {
		return "", entity.User{}, entity.ErrUnauthenticated
	}

	now := time.Now()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role.String(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return "", entity.User{}, fmt.Errorf("sign token: %w", err)
	}

	return token, user, nil
}

// VerifyToken parses and validates a bearer token and reconstructs the user
// identity embedded in the claims.
func (s *Service) VerifyToken(_ context.Context, token string) (entity.User, error) {
	var claims Claims

	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}

		return s.jwtSecret, nil
	})
	if err != nil || !parsed.Valid {
		return entity.User{}, entity.ErrUnauthenticated
	}

	id, err := uuid.FromString(claims.Subject)
	if err != nil {
		return entity.User{}, entity.ErrUnauthenticated
	}

	return entity.User{
		ID:    id,
		Name:  claims.Name,
		Email: claims.Email,
		Role:  entity.UserRole(claims.Role),
	}, nil
}
