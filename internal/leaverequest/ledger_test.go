package leaverequest_test

import (
	"testing"

	"leavedesk/internal/leaverequest"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func record(emp, lt uuid.UUID, status string, days int) leaverequest.LeaveRequest {
	return leaverequest.LeaveRequest{
		ID:           uuid.New(),
		EmployeeID:   emp,
		LeaveTypeID:  lt,
		Status:       status,
		ApprovedDays: days,
	}
}

func TestUsedDays_CountsOnlyApprovedByDefault(t *testing.T) {
	emp := uuid.New()
	lt := uuid.New()

	records := []leaverequest.LeaveRequest{
		record(emp, lt, leaverequest.StatusApproved, 5),
		record(emp, lt, leaverequest.StatusPending, 3),
		record(emp, lt, leaverequest.StatusRejected, 2),
		record(emp, lt, leaverequest.StatusApproved, 4),
	}

	assert.Equal(t, 9, leaverequest.UsedDays(records, emp, lt))
}

func TestUsedDays_FiltersByEmployeeAndType(t *testing.T) {
	emp := uuid.New()
	otherEmp := uuid.New()
	lt := uuid.New()
	otherLt := uuid.New()

	records := []leaverequest.LeaveRequest{
		record(emp, lt, leaverequest.StatusApproved, 5),
		record(otherEmp, lt, leaverequest.StatusApproved, 7),
		record(emp, otherLt, leaverequest.StatusApproved, 11),
	}

	assert.Equal(t, 5, leaverequest.UsedDays(records, emp, lt))
}

func TestUsedDays_AdditiveOverPartition(t *testing.T) {
	emp := uuid.New()
	lt := uuid.New()

	all := []leaverequest.LeaveRequest{
		record(emp, lt, leaverequest.StatusApproved, 5),
		record(emp, lt, leaverequest.StatusApproved, 3),
		record(emp, lt, leaverequest.StatusApproved, 2),
	}

	whole := leaverequest.UsedDays(all, emp, lt)
	parts := leaverequest.UsedDays(all[:1], emp, lt) + leaverequest.UsedDays(all[1:], emp, lt)
	assert.Equal(t, whole, parts)
}

func TestUsedDays_EmptySetIsZero(t *testing.T) {
	assert.Equal(t, 0, leaverequest.UsedDays(nil, uuid.New(), uuid.New()))
}

func TestCheckQuota_NilLimitAlwaysWithin(t *testing.T) {
	emp := uuid.New()
	lt := uuid.New()

	records := []leaverequest.LeaveRequest{
		record(emp, lt, leaverequest.StatusApproved, 1000),
	}

	quota := leaverequest.CheckQuota(records, emp, lt, nil, 1000)
	assert.True(t, quota.WithinLimit)
	assert.Equal(t, 1000, quota.Used)
	assert.Nil(t, quota.Limit)
}

func TestCheckQuota_OverLimit(t *testing.T) {
	emp := uuid.New()
	lt := uuid.New()
	limit := 20

	records := []leaverequest.LeaveRequest{
		record(emp, lt, leaverequest.StatusApproved, 18),
	}

	quota := leaverequest.CheckQuota(records, emp, lt, &limit, 5)
	assert.False(t, quota.WithinLimit)
	assert.Equal(t, 18, quota.Used)
	assert.Equal(t, 20, *quota.Limit)
}

func TestCheckQuota_ExactlyAtLimitIsWithin(t *testing.T) {
	emp := uuid.New()
	lt := uuid.New()
	limit := 20

	records := []leaverequest.LeaveRequest{
		record(emp, lt, leaverequest.StatusApproved, 15),
	}

	quota := leaverequest.CheckQuota(records, emp, lt, &limit, 5)
	assert.True(t, quota.WithinLimit)
}

func TestCheckQuota_PendingDoesNotCountAsUsed(t *testing.T) {
	emp := uuid.New()
	lt := uuid.New()
	limit := 20

	records := []leaverequest.LeaveRequest{
		record(emp, lt, leaverequest.StatusPending, 18),
	}

	quota := leaverequest.CheckQuota(records, emp, lt, &limit, 5)
	assert.True(t, quota.WithinLimit)
	assert.Equal(t, 0, quota.Used)
}
