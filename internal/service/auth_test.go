package service_test

import (
	"context"
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/kmansoor/sims-backend/internal/entity"
)

func TestService_Login(t *testing.T) {
	t.Parallel()

	s, repo, _, _, _ := newTestService(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	user := entity.User{
		ID:           uuid.Must(uuid.NewV4()),
		Name:         "Kamal",
		Email:        "kamal@example.com",
		PasswordHash: string(hash),
		Role:         entity.RoleAdmin,
	}

	repo.EXPECT().UserByEmail(gomock.Any(), user.Email).Return(user, nil)

	token, got, err := s.Login(context.Background(), user.Email, "s3cret")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.Equal(t, user.ID, got.ID)

	// the token must round-trip through verification
	verified, err := s.VerifyToken(context.Background(), token)
	require.NoError(t, err)
	require.Equal(t, user.ID, verified.ID)
	require.Equal(t, user.Email, verified.Email)
	require.Equal(t, entity.RoleAdmin, verified.Role)
}

func TestService_Login_WrongPassword(t *testing.T) {
	t.Parallel()

	s, repo, _, _, _ := newTestService(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	user := entity.User{
		ID:           uuid.Must(uuid.NewV4()),
		Email:        "kamal@example.com",
		PasswordHash: string(hash),
	}

	repo.EXPECT().UserByEmail(gomock.Any(), user.Email).Return(user, nil)

	_, _, err = s.Login(context.Background(), user.Email, "wrong")
	require.ErrorIs(t, err, entity.ErrUnauthenticated)
}

func TestService_Login_UnknownEmail(t *testing.T) {
	t.Parallel()

	s, repo, _, _, _ := newTestService(t)

	repo.EXPECT().UserByEmail(gomock.Any(), "nobody@example.com").Return(entity.User{}, entity.ErrNotFound)

	_, _, err := s.Login(context.Background(), "nobody@example.com", "whatever")
	require.ErrorIs(t, err, entity.ErrUnauthenticated)
}

func TestService_VerifyToken_Garbage(t *testing.T) {
	t.Parallel()

	s, _, _, _, _ := newTestService(t)

	_, err := s.VerifyToken(context.Background(), "not-a-token")
	require.ErrorIs(t, err, entity.ErrUnauthenticated)
}
