package user_test

import (
	"context"
	"errors"
	"testing"

	"leavedesk/internal/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeUserRepository struct {
	createFn      func(ctx context.Context, u *user.User) error
	findAllFn     func(ctx context.Context) ([]user.User, error)
	findByIDFn    func(ctx context.Context, id string) (*user.User, error)
	findByEmailFn func(ctx context.Context, email string) (*user.User, error)
	updateFn      func(ctx context.Context, u *user.User) error
	deleteFn      func(ctx context.Context, id string) error
}

func (f *fakeUserRepository) Create(ctx context.Context, u *user.User) error {
	if f.createFn != nil {
		return f.createFn(ctx, u)
	}
	return nil
}

func (f *fakeUserRepository) FindAll(ctx context.Context) ([]user.User, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeUserRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	if f.findByEmailFn != nil {
		return f.findByEmailFn(ctx, email)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) Update(ctx context.Context, u *user.User) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, u)
	}
	return nil
}

func (f *fakeUserRepository) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func TestUserService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("stores a bcrypt hash, never the plaintext", func(t *testing.T) {
		var created *user.User
		repo := &fakeUserRepository{
			createFn: func(ctx context.Context, u *user.User) error {
				created = u
				return nil
			},
		}
		svc := user.NewService(repo)

		resp, err := svc.Create(ctx, user.CreateUserRequest{
			Name:     "Second Admin",
			Email:    "coadmin@example.com",
			Password: "hunter22",
			Role:     user.RoleCoAdmin,
		})

		assert.NoError(t, err)
		assert.Equal(t, user.RoleCoAdmin, resp.Role)
		assert.NotNil(t, created)
		assert.NotEqual(t, "hunter22", created.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("hunter22")))
		assert.True(t, created.IsActive)
	})

	t.Run("duplicate email maps to conflict", func(t *testing.T) {
		repo := &fakeUserRepository{
			createFn: func(ctx context.Context, u *user.User) error {
				return errors.New(`duplicate key value violates unique constraint "idx_users_email"`)
			},
		}
		svc := user.NewService(repo)

		_, err := svc.Create(ctx, user.CreateUserRequest{
			Name:     "Dup",
			Email:    "coadmin@example.com",
			Password: "hunter22",
			Role:     user.RoleCoAdmin,
		})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "already exists")
	})
}

func TestUserService_ChangePassword(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	hashed, err := bcrypt.GenerateFromPassword([]byte("old-pass"), bcrypt.MinCost)
	assert.NoError(t, err)

	t.Run("rejects a wrong current password", func(t *testing.T) {
		repo := &fakeUserRepository{
			findByIDFn: func(ctx context.Context, id string) (*user.User, error) {
				return &user.User{ID: userID, Password: string(hashed)}, nil
			},
		}
		svc := user.NewService(repo)

		err := svc.ChangePassword(ctx, userID.String(), "wrong", "new-pass")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Current password is incorrect")
	})

	t.Run("rehashes on success", func(t *testing.T) {
		var updated *user.User
		repo := &fakeUserRepository{
			findByIDFn: func(ctx context.Context, id string) (*user.User, error) {
				return &user.User{ID: userID, Password: string(hashed)}, nil
			},
			updateFn: func(ctx context.Context, u *user.User) error {
				updated = u
				return nil
			},
		}
		svc := user.NewService(repo)

		err := svc.ChangePassword(ctx, userID.String(), "old-pass", "new-pass")

		assert.NoError(t, err)
		assert.NotNil(t, updated)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.Password), []byte("new-pass")))
	})
}

func TestUserService_ToggleStatus(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("self-deactivation is rejected", func(t *testing.T) {
		svc := user.NewService(&fakeUserRepository{})

		err := svc.ToggleStatus(ctx, userID.String(), userID.String(), false)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "your own account")
	})

	t.Run("deactivating another user succeeds", func(t *testing.T) {
		var updated *user.User
		repo := &fakeUserRepository{
			findByIDFn: func(ctx context.Context, id string) (*user.User, error) {
				return &user.User{ID: userID, IsActive: true}, nil
			},
			updateFn: func(ctx context.Context, u *user.User) error {
				updated = u
				return nil
			},
		}
		svc := user.NewService(repo)

		err := svc.ToggleStatus(ctx, uuid.New().String(), userID.String(), false)

		assert.NoError(t, err)
		assert.False(t, updated.IsActive)
	})
}
