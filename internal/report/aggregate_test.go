package report_test

import (
	"testing"
	"time"

	"leavedesk/internal/employee"
	"leavedesk/internal/leaverequest"
	"leavedesk/internal/report"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func approved(emp uuid.UUID, empName, typeName string, days int, start time.Time) leaverequest.LeaveRequest {
	return leaverequest.LeaveRequest{
		ID:            uuid.New(),
		EmployeeID:    emp,
		EmployeeName:  empName,
		LeaveTypeID:   uuid.New(),
		LeaveTypeName: typeName,
		Status:        leaverequest.StatusApproved,
		ApprovedDays:  days,
		StartDate:     start,
		EndDate:       start.AddDate(0, 0, days-1),
	}
}

func TestTopLeaveTakers_SortsDescendingAndTruncates(t *testing.T) {
	e1, e2, e3 := uuid.New(), uuid.New(), uuid.New()
	jan := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	records := []leaverequest.LeaveRequest{
		approved(e1, "Alice", "Casual Leave", 3, jan),
		approved(e2, "Bob", "Casual Leave", 10, jan),
		approved(e1, "Alice", "Sick Leave", 4, jan),
		approved(e3, "Carol", "Casual Leave", 1, jan),
	}
	employees := []employee.Employee{
		{ID: e1, FullName: "Alice"},
		{ID: e2, FullName: "Bob"},
		{ID: e3, FullName: "Carol"},
	}

	takers := report.TopLeaveTakers(records, employees, 2)

	require.Len(t, takers, 2)
	assert.Equal(t, "Bob", takers[0].EmployeeName)
	assert.Equal(t, 10, takers[0].TotalDays)
	assert.Equal(t, "Alice", takers[1].EmployeeName)
	assert.Equal(t, 7, takers[1].TotalDays)
}

func TestTopLeaveTakers_DeletedEmployeeFallsBackToSnapshot(t *testing.T) {
	gone := uuid.New()
	jan := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	records := []leaverequest.LeaveRequest{
		approved(gone, "Departed Dev", "Casual Leave", 5, jan),
	}

	takers := report.TopLeaveTakers(records, nil, 10)

	require.Len(t, takers, 1)
	assert.Equal(t, "Departed Dev", takers[0].EmployeeName)
}

func TestTopLeaveTakers_IgnoresPendingAndRejected(t *testing.T) {
	emp := uuid.New()
	jan := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rec := approved(emp, "Alice", "Casual Leave", 5, jan)
	rec.Status = leaverequest.StatusPending

	assert.Empty(t, report.TopLeaveTakers([]leaverequest.LeaveRequest{rec}, nil, 10))
}

func TestMonthlySeries_TwelveBucketsAscending(t *testing.T) {
	asOf := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	buckets := report.MonthlySeries(nil, 12, asOf, nil)

	require.Len(t, buckets, 12)
	assert.Equal(t, "2024-07", buckets[0].Month)
	assert.Equal(t, "2025-06", buckets[11].Month)
	for _, b := range buckets {
		assert.Zero(t, b.TotalDays)
		assert.Zero(t, b.UniqueEmployee)
		assert.Zero(t, b.RequestCount)
	}
}

func TestMonthlySeries_BucketsByStartMonth(t *testing.T) {
	asOf := time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)
	emp := uuid.New()

	// Spans the Jan/Feb boundary but starts in January: counts entirely
	// in January.
	crossing := approved(emp, "Alice", "Casual Leave", 6, time.Date(2025, 1, 29, 0, 0, 0, 0, time.UTC))

	buckets := report.MonthlySeries([]leaverequest.LeaveRequest{crossing}, 2, asOf, nil)

	require.Len(t, buckets, 2)
	assert.Equal(t, "2025-01", buckets[0].Month)
	assert.Equal(t, 6, buckets[0].TotalDays)
	assert.Equal(t, 1, buckets[0].RequestCount)
	assert.Equal(t, 1, buckets[0].UniqueEmployee)
	assert.Equal(t, "2025-02", buckets[1].Month)
	assert.Zero(t, buckets[1].TotalDays)
}

func TestMonthlySeries_UniqueEmployeeCount(t *testing.T) {
	asOf := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	e1, e2 := uuid.New(), uuid.New()
	jan := time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)

	records := []leaverequest.LeaveRequest{
		approved(e1, "Alice", "Casual Leave", 2, jan),
		approved(e1, "Alice", "Sick Leave", 1, jan.AddDate(0, 0, 10)),
		approved(e2, "Bob", "Casual Leave", 3, jan),
	}

	buckets := report.MonthlySeries(records, 1, asOf, nil)

	require.Len(t, buckets, 1)
	assert.Equal(t, 3, buckets[0].RequestCount)
	assert.Equal(t, 2, buckets[0].UniqueEmployee)
	assert.Equal(t, 6, buckets[0].TotalDays)
}

func TestMonthlySeries_EmployeeFilter(t *testing.T) {
	asOf := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	e1, e2 := uuid.New(), uuid.New()
	jan := time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)

	records := []leaverequest.LeaveRequest{
		approved(e1, "Alice", "Casual Leave", 2, jan),
		approved(e2, "Bob", "Casual Leave", 3, jan),
	}

	buckets := report.MonthlySeries(records, 1, asOf, &e1)

	require.Len(t, buckets, 1)
	assert.Equal(t, 2, buckets[0].TotalDays)
	assert.Equal(t, 1, buckets[0].UniqueEmployee)
}

func TestLeaveTypeDistribution_CountsRequestsNotDays(t *testing.T) {
	emp := uuid.New()
	jan := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	records := []leaverequest.LeaveRequest{
		approved(emp, "Alice", "Casual Leave", 5, jan),
		approved(emp, "Alice", "Casual Leave", 3, jan.AddDate(0, 0, 10)),
		approved(emp, "Alice", "Sick Leave", 7, jan.AddDate(0, 0, 20)),
	}
	pending := approved(emp, "Alice", "Casual Leave", 2, jan)
	pending.Status = leaverequest.StatusPending
	records = append(records, pending)

	dist := report.LeaveTypeDistribution(records)

	assert.Equal(t, map[string]int{"Casual Leave": 2, "Sick Leave": 1}, dist)
}

func TestLeaveTypeDistribution_EmptyInput(t *testing.T) {
	assert.Empty(t, report.LeaveTypeDistribution(nil))
}

func TestEmployeeLeaveBreakdown_GroupsInInsertionOrder(t *testing.T) {
	emp := uuid.New()
	jan := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	first := approved(emp, "Alice", "Sick Leave", 2, jan)
	second := approved(emp, "Alice", "Casual Leave", 3, jan.AddDate(0, 0, 5))
	third := approved(emp, "Alice", "Sick Leave", 1, jan.AddDate(0, 0, 10))

	breakdown := report.EmployeeLeaveBreakdown([]leaverequest.LeaveRequest{first, second, third}, emp, nil)

	assert.Equal(t, 6, breakdown.TotalDays)
	require.Len(t, breakdown.ByType, 2)
	assert.Equal(t, "Sick Leave", breakdown.ByType[0].LeaveTypeName)
	assert.Equal(t, 3, breakdown.ByType[0].Days)
	require.Len(t, breakdown.ByType[0].Records, 2)
	assert.Equal(t, first.ID, breakdown.ByType[0].Records[0].ID)
	assert.Equal(t, third.ID, breakdown.ByType[0].Records[1].ID)
	assert.Equal(t, "Casual Leave", breakdown.ByType[1].LeaveTypeName)
}

func TestEmployeeLeaveBreakdown_RangeOverlap(t *testing.T) {
	emp := uuid.New()

	// Jan 10-14: overlaps a filter ending Jan 12 and one starting Jan 14,
	// misses one starting Jan 15.
	rec := approved(emp, "Alice", "Casual Leave", 5, time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC))

	from := time.Date(2025, 1, 14, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC)
	tooLate := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

	included := report.EmployeeLeaveBreakdown([]leaverequest.LeaveRequest{rec}, emp, &report.BreakdownRange{From: &from})
	assert.Equal(t, 5, included.TotalDays)

	alsoIncluded := report.EmployeeLeaveBreakdown([]leaverequest.LeaveRequest{rec}, emp, &report.BreakdownRange{To: &to})
	assert.Equal(t, 5, alsoIncluded.TotalDays)

	excluded := report.EmployeeLeaveBreakdown([]leaverequest.LeaveRequest{rec}, emp, &report.BreakdownRange{From: &tooLate})
	assert.Zero(t, excluded.TotalDays)
	assert.Empty(t, excluded.ByType)
}

func TestEmployeeLeaveBreakdown_OtherEmployeesExcluded(t *testing.T) {
	emp := uuid.New()
	other := uuid.New()
	jan := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	records := []leaverequest.LeaveRequest{
		approved(emp, "Alice", "Casual Leave", 3, jan),
		approved(other, "Bob", "Casual Leave", 7, jan),
	}

	breakdown := report.EmployeeLeaveBreakdown(records, emp, nil)
	assert.Equal(t, 3, breakdown.TotalDays)
}
