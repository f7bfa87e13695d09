package auth_test

import (
	"context"
	"errors"
	"testing"

	"leavedesk/internal/auth"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

type fakeAuthRepository struct {
	getByEmailFn func(ctx context.Context, email string) (*auth.User, error)
	getByIDFn    func(ctx context.Context, id uuid.UUID) (*auth.User, error)
}

func (f *fakeAuthRepository) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	if f.getByEmailFn != nil {
		return f.getByEmailFn(ctx, email)
	}
	return nil, errors.New("not configured")
}

func (f *fakeAuthRepository) GetByID(ctx context.Context, id uuid.UUID) (*auth.User, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, id)
	}
	return nil, errors.New("not configured")
}

func hashPassword(t *testing.T, plain string) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(hashed)
}

func TestAuthService_Login(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	ctx := context.Background()
	userID := uuid.New()

	t.Run("success returns tokens and profile", func(t *testing.T) {
		repo := &fakeAuthRepository{
			getByEmailFn: func(ctx context.Context, email string) (*auth.User, error) {
				assert.Equal(t, "admin@example.com", email)
				return &auth.User{
					ID:       userID,
					Name:     "Admin",
					Email:    "admin@example.com",
					Password: hashPassword(t, "s3cret"),
					Role:     "ADMIN",
					IsActive: true,
				}, nil
			},
		}
		svc := auth.NewService(repo)

		access, refresh, resp, err := svc.Login(ctx, "admin@example.com", "s3cret")

		assert.NoError(t, err)
		assert.NotEmpty(t, access)
		assert.NotEmpty(t, refresh)
		assert.Equal(t, userID.String(), resp.ID)
		assert.Equal(t, "ADMIN", resp.Role)
	})

	t.Run("wrong password fails with invalid credentials", func(t *testing.T) {
		repo := &fakeAuthRepository{
			getByEmailFn: func(ctx context.Context, email string) (*auth.User, error) {
				return &auth.User{
					ID:       userID,
					Password: hashPassword(t, "s3cret"),
					IsActive: true,
				}, nil
			},
		}
		svc := auth.NewService(repo)

		_, _, _, err := svc.Login(ctx, "admin@example.com", "wrong")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid email or password")
	})

	t.Run("unknown email fails with invalid credentials", func(t *testing.T) {
		repo := &fakeAuthRepository{
			getByEmailFn: func(ctx context.Context, email string) (*auth.User, error) {
				return nil, errors.New("record not found")
			},
		}
		svc := auth.NewService(repo)

		_, _, _, err := svc.Login(ctx, "ghost@example.com", "whatever")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid email or password")
	})

	t.Run("inactive account is rejected", func(t *testing.T) {
		repo := &fakeAuthRepository{
			getByEmailFn: func(ctx context.Context, email string) (*auth.User, error) {
				return &auth.User{
					ID:       userID,
					Password: hashPassword(t, "s3cret"),
					IsActive: false,
				}, nil
			},
		}
		svc := auth.NewService(repo)

		_, _, _, err := svc.Login(ctx, "admin@example.com", "s3cret")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "deactivated")
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	ctx := context.Background()
	userID := uuid.New()

	user := &auth.User{
		ID:       userID,
		Name:     "Admin",
		Email:    "admin@example.com",
		Password: hashPassword(t, "s3cret"),
		Role:     "ADMIN",
		IsActive: true,
	}

	repo := &fakeAuthRepository{
		getByEmailFn: func(ctx context.Context, email string) (*auth.User, error) {
			return user, nil
		},
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*auth.User, error) {
			assert.Equal(t, userID, id)
			return user, nil
		},
	}
	svc := auth.NewService(repo)

	_, refresh, _, err := svc.Login(ctx, "admin@example.com", "s3cret")
	assert.NoError(t, err)

	t.Run("valid refresh token rotates both tokens", func(t *testing.T) {
		access2, refresh2, resp, err := svc.RefreshToken(ctx, refresh)

		assert.NoError(t, err)
		assert.NotEmpty(t, access2)
		assert.NotEmpty(t, refresh2)
		assert.Equal(t, userID.String(), resp.ID)
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		_, _, _, err := svc.RefreshToken(ctx, "not-a-jwt")
		assert.Error(t, err)
	})
}

func TestAuthService_GetMe(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	repo := &fakeAuthRepository{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*auth.User, error) {
			return &auth.User{ID: userID, Name: "Admin", Email: "admin@example.com", Role: "ADMIN"}, nil
		},
	}
	svc := auth.NewService(repo)

	t.Run("returns profile", func(t *testing.T) {
		resp, err := svc.GetMe(ctx, userID.String())
		assert.NoError(t, err)
		assert.Equal(t, "Admin", resp.Name)
	})

	t.Run("invalid uuid is rejected", func(t *testing.T) {
		_, err := svc.GetMe(ctx, "nope")
		assert.Error(t, err)
	})
}
