package leavetype_test

import (
	"context"
	"errors"
	"testing"

	"leavedesk/internal/leavetype"
	leavetypeerrors "leavedesk/internal/leavetype/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeLeaveTypeRepository struct {
	createFn     func(ctx context.Context, lt *leavetype.LeaveType) error
	findAllFn    func(ctx context.Context) ([]leavetype.LeaveType, error)
	findByIDFn   func(ctx context.Context, id string) (*leavetype.LeaveType, error)
	findByNameFn func(ctx context.Context, name string) (*leavetype.LeaveType, error)
	updateFn     func(ctx context.Context, lt *leavetype.LeaveType) error
	deleteFn     func(ctx context.Context, id string) error
}

func (f *fakeLeaveTypeRepository) Create(ctx context.Context, lt *leavetype.LeaveType) error {
	if f.createFn != nil {
		return f.createFn(ctx, lt)
	}
	return nil
}

func (f *fakeLeaveTypeRepository) FindAll(ctx context.Context) ([]leavetype.LeaveType, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeLeaveTypeRepository) FindByID(ctx context.Context, id string) (*leavetype.LeaveType, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLeaveTypeRepository) FindByName(ctx context.Context, name string) (*leavetype.LeaveType, error) {
	if f.findByNameFn != nil {
		return f.findByNameFn(ctx, name)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLeaveTypeRepository) Update(ctx context.Context, lt *leavetype.LeaveType) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, lt)
	}
	return nil
}

func (f *fakeLeaveTypeRepository) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func intPtr(n int) *int { return &n }

func TestLeaveTypeService_Create_Success(t *testing.T) {
	var created *leavetype.LeaveType
	repo := &fakeLeaveTypeRepository{
		createFn: func(ctx context.Context, lt *leavetype.LeaveType) error {
			created = lt
			return nil
		},
	}
	svc := leavetype.NewService(repo)
	actor := uuid.NewString()

	resp, err := svc.Create(context.Background(), actor, leavetype.CreateLeaveTypeRequest{
		Name:    "Sick Leave",
		MaxDays: intPtr(12),
	})

	assert.NoError(t, err)
	assert.NotNil(t, created)
	assert.Equal(t, "Sick Leave", resp.Name)
	assert.Equal(t, 12, *resp.MaxDays)
	assert.Equal(t, actor, resp.CreatedBy)
	assert.False(t, resp.Protected)
}

func TestLeaveTypeService_Create_DuplicateName(t *testing.T) {
	existing := &leavetype.LeaveType{ID: uuid.New(), Name: "Sick Leave"}
	repo := &fakeLeaveTypeRepository{
		findByNameFn: func(ctx context.Context, name string) (*leavetype.LeaveType, error) {
			return existing, nil
		},
	}
	svc := leavetype.NewService(repo)

	_, err := svc.Create(context.Background(), uuid.NewString(), leavetype.CreateLeaveTypeRequest{Name: "Sick Leave"})

	assert.ErrorIs(t, err, leavetypeerrors.ErrLeaveTypeAlreadyExists)
}

func TestLeaveTypeService_Create_NoQuota(t *testing.T) {
	repo := &fakeLeaveTypeRepository{}
	svc := leavetype.NewService(repo)

	resp, err := svc.Create(context.Background(), uuid.NewString(), leavetype.CreateLeaveTypeRequest{Name: "Unpaid Leave"})

	assert.NoError(t, err)
	assert.Nil(t, resp.MaxDays)
}

func TestLeaveTypeService_Update_RenameToTakenName(t *testing.T) {
	id := uuid.New()
	other := &leavetype.LeaveType{ID: uuid.New(), Name: "Sick Leave"}
	repo := &fakeLeaveTypeRepository{
		findByIDFn: func(ctx context.Context, _ string) (*leavetype.LeaveType, error) {
			return &leavetype.LeaveType{ID: id, Name: "Study Leave"}, nil
		},
		findByNameFn: func(ctx context.Context, name string) (*leavetype.LeaveType, error) {
			return other, nil
		},
	}
	svc := leavetype.NewService(repo)

	_, err := svc.Update(context.Background(), id.String(), leavetype.UpdateLeaveTypeRequest{Name: "Sick Leave"})

	assert.ErrorIs(t, err, leavetypeerrors.ErrLeaveTypeAlreadyExists)
}

func TestLeaveTypeService_Update_QuotaChange(t *testing.T) {
	id := uuid.New()
	var saved *leavetype.LeaveType
	repo := &fakeLeaveTypeRepository{
		findByIDFn: func(ctx context.Context, _ string) (*leavetype.LeaveType, error) {
			return &leavetype.LeaveType{ID: id, Name: leavetype.ProtectedName, MaxDays: intPtr(10)}, nil
		},
		updateFn: func(ctx context.Context, lt *leavetype.LeaveType) error {
			saved = lt
			return nil
		},
	}
	svc := leavetype.NewService(repo)

	resp, err := svc.Update(context.Background(), id.String(), leavetype.UpdateLeaveTypeRequest{
		Name:    leavetype.ProtectedName,
		MaxDays: intPtr(15),
	})

	assert.NoError(t, err)
	assert.Equal(t, 15, *saved.MaxDays)
	assert.True(t, resp.Protected)
}

func TestLeaveTypeService_Delete_ProtectedRejected(t *testing.T) {
	id := uuid.New()
	deleted := false
	repo := &fakeLeaveTypeRepository{
		findByIDFn: func(ctx context.Context, _ string) (*leavetype.LeaveType, error) {
			return &leavetype.LeaveType{ID: id, Name: leavetype.ProtectedName}, nil
		},
		deleteFn: func(ctx context.Context, _ string) error {
			deleted = true
			return nil
		},
	}
	svc := leavetype.NewService(repo)

	err := svc.Delete(context.Background(), id.String())

	assert.ErrorIs(t, err, leavetypeerrors.ErrProtectedLeaveType)
	assert.False(t, deleted)
}

func TestLeaveTypeService_Delete_Success(t *testing.T) {
	id := uuid.New()
	repo := &fakeLeaveTypeRepository{
		findByIDFn: func(ctx context.Context, _ string) (*leavetype.LeaveType, error) {
			return &leavetype.LeaveType{ID: id, Name: "Study Leave"}, nil
		},
	}
	svc := leavetype.NewService(repo)

	assert.NoError(t, svc.Delete(context.Background(), id.String()))
}

func TestLeaveTypeService_Delete_NotFound(t *testing.T) {
	repo := &fakeLeaveTypeRepository{
		findByIDFn: func(ctx context.Context, _ string) (*leavetype.LeaveType, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := leavetype.NewService(repo)

	err := svc.Delete(context.Background(), uuid.NewString())

	assert.ErrorIs(t, err, leavetypeerrors.ErrLeaveTypeNotFound)
}

func TestLeaveTypeService_GetByID_RepoFailure(t *testing.T) {
	boom := errors.New("connection reset")
	repo := &fakeLeaveTypeRepository{
		findByIDFn: func(ctx context.Context, _ string) (*leavetype.LeaveType, error) {
			return nil, boom
		},
	}
	svc := leavetype.NewService(repo)

	_, err := svc.GetByID(context.Background(), uuid.NewString())

	assert.ErrorIs(t, err, boom)
}
