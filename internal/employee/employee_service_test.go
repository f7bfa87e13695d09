package employee_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"leavedesk/internal/employee"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeEmployeeRepository struct {
	withTxFn      func(tx *sql.Tx) employee.Repository
	createFn      func(ctx context.Context, e *employee.Employee) error
	findAllFn     func(ctx context.Context) ([]employee.Employee, error)
	findOptionsFn func(ctx context.Context) ([]employee.Employee, error)
	findByIDFn    func(ctx context.Context, id string) (*employee.Employee, error)
	updateFn      func(ctx context.Context, e *employee.Employee) error
	deleteFn      func(ctx context.Context, id string) error
	deleteBatchFn func(ctx context.Context, ids []string) error
}

func (f *fakeEmployeeRepository) WithTx(tx *sql.Tx) employee.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeEmployeeRepository) Create(ctx context.Context, e *employee.Employee) error {
	if f.createFn != nil {
		return f.createFn(ctx, e)
	}
	return nil
}

func (f *fakeEmployeeRepository) FindAll(ctx context.Context) ([]employee.Employee, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeEmployeeRepository) FindOptions(ctx context.Context) ([]employee.Employee, error) {
	if f.findOptionsFn != nil {
		return f.findOptionsFn(ctx)
	}
	return nil, nil
}

func (f *fakeEmployeeRepository) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEmployeeRepository) Update(ctx context.Context, e *employee.Employee) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, e)
	}
	return nil
}

func (f *fakeEmployeeRepository) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func (f *fakeEmployeeRepository) DeleteBatch(ctx context.Context, ids []string) error {
	if f.deleteBatchFn != nil {
		return f.deleteBatchFn(ctx, ids)
	}
	return nil
}

func setupEmployeeService(t *testing.T, repo *fakeEmployeeRepository) (employee.Service, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	return employee.NewService(db, repo, nil), mock, db
}

func TestEmployeeService_Create(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New().String()

	t.Run("stamps the acting user", func(t *testing.T) {
		var created *employee.Employee
		repo := &fakeEmployeeRepository{
			createFn: func(ctx context.Context, e *employee.Employee) error {
				created = e
				return nil
			},
		}
		svc, _, db := setupEmployeeService(t, repo)
		defer db.Close()

		resp, err := svc.Create(ctx, actorID, employee.CreateEmployeeRequest{
			FullName:    "Jane Roe",
			Designation: "Engineer",
			Department:  "Platform",
			Gender:      employee.GenderFemale,
		})

		assert.NoError(t, err)
		assert.Equal(t, "Jane Roe", resp.FullName)
		assert.Equal(t, uuid.MustParse(actorID), created.UpdatedBy)
	})

	t.Run("rejects a malformed actor id", func(t *testing.T) {
		svc, _, db := setupEmployeeService(t, &fakeEmployeeRepository{})
		defer db.Close()

		_, err := svc.Create(ctx, "not-a-uuid", employee.CreateEmployeeRequest{
			FullName: "Jane Roe",
			Gender:   employee.GenderFemale,
		})

		assert.Error(t, err)
	})
}

func TestEmployeeService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("single delete does not open a transaction", func(t *testing.T) {
		deleted := ""
		repo := &fakeEmployeeRepository{
			deleteFn: func(ctx context.Context, id string) error {
				deleted = id
				return nil
			},
		}
		svc, mock, db := setupEmployeeService(t, repo)
		defer db.Close()

		id := uuid.New().String()
		err := svc.Delete(ctx, id)

		assert.NoError(t, err)
		assert.Equal(t, id, deleted)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestEmployeeService_DeleteBatch(t *testing.T) {
	ctx := context.Background()
	ids := []string{uuid.New().String(), uuid.New().String(), uuid.New().String()}

	t.Run("runs as a single committed transaction", func(t *testing.T) {
		var got []string
		repo := &fakeEmployeeRepository{
			deleteBatchFn: func(ctx context.Context, batch []string) error {
				got = batch
				return nil
			},
		}
		svc, mock, db := setupEmployeeService(t, repo)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectCommit()

		err := svc.DeleteBatch(ctx, ids)

		assert.NoError(t, err)
		assert.Equal(t, ids, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back when the batch fails", func(t *testing.T) {
		repo := &fakeEmployeeRepository{
			deleteBatchFn: func(ctx context.Context, batch []string) error {
				return errors.New("constraint violation")
			},
		}
		svc, mock, db := setupEmployeeService(t, repo)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectRollback()

		err := svc.DeleteBatch(ctx, ids)

		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects the whole batch on one malformed id", func(t *testing.T) {
		repo := &fakeEmployeeRepository{
			deleteBatchFn: func(ctx context.Context, batch []string) error {
				t.Fatal("repository must not be called")
				return nil
			},
		}
		svc, _, db := setupEmployeeService(t, repo)
		defer db.Close()

		err := svc.DeleteBatch(ctx, []string{ids[0], "oops"})

		assert.Error(t, err)
	})
}

func TestEmployeeService_GetOptions(t *testing.T) {
	ctx := context.Background()

	t.Run("falls through to the repository without redis", func(t *testing.T) {
		repo := &fakeEmployeeRepository{
			findOptionsFn: func(ctx context.Context) ([]employee.Employee, error) {
				return []employee.Employee{
					{ID: uuid.New(), FullName: "A"},
					{ID: uuid.New(), FullName: "B"},
				}, nil
			},
		}
		svc, _, db := setupEmployeeService(t, repo)
		defer db.Close()

		resp, err := svc.GetOptions(ctx)

		assert.NoError(t, err)
		assert.Len(t, resp, 2)
	})
}
