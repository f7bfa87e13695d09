package report_test

import (
	"bytes"
	"context"
	"database/sql"
	"testing"
	"time"

	"leavedesk/internal/employee"
	"leavedesk/internal/leaverequest"
	"leavedesk/internal/report"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLeaveRepo struct {
	leaverequest.Repository
	records []leaverequest.LeaveRequest
}

func (f *fakeLeaveRepo) FindAll(ctx context.Context) ([]leaverequest.LeaveRequest, error) {
	return f.records, nil
}

func (f *fakeLeaveRepo) FindByEmployee(ctx context.Context, employeeID string) ([]leaverequest.LeaveRequest, error) {
	out := make([]leaverequest.LeaveRequest, 0)
	for _, r := range f.records {
		if r.EmployeeID.String() == employeeID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeLeaveRepo) WithTx(tx *sql.Tx) leaverequest.Repository { return f }

type fakeEmployeeRepo struct {
	employee.Repository
	employees []employee.Employee
}

func (f *fakeEmployeeRepo) FindAll(ctx context.Context) ([]employee.Employee, error) {
	return f.employees, nil
}

func seededService() report.Service {
	emp := uuid.New()
	now := time.Now().UTC()

	records := []leaverequest.LeaveRequest{
		{
			ID: uuid.New(), EmployeeID: emp, EmployeeName: "Alice",
			LeaveTypeID: uuid.New(), LeaveTypeName: "Casual Leave",
			Status: leaverequest.StatusApproved, ApprovedDays: 5,
			StartDate: now.AddDate(0, 0, -2), EndDate: now.AddDate(0, 0, 2),
		},
	}
	return report.NewService(
		&fakeLeaveRepo{records: records},
		&fakeEmployeeRepo{employees: []employee.Employee{{ID: emp, FullName: "Alice"}}},
		nil,
	)
}

func TestReportService_Dashboard(t *testing.T) {
	svc := seededService()

	dashboard, err := svc.Dashboard(context.Background())

	require.NoError(t, err)
	assert.Len(t, dashboard.OnLeaveToday, 1)
	assert.Len(t, dashboard.TopLeaveTakers, 1)
	assert.Equal(t, "Alice", dashboard.TopLeaveTakers[0].EmployeeName)
	assert.Len(t, dashboard.MonthlySeries, 12)
	assert.Equal(t, map[string]int{"Casual Leave": 1}, dashboard.TypeDistribution)
}

func TestReportService_ExportExcel_ProducesWorkbook(t *testing.T) {
	svc := seededService()

	data, err := svc.ExportExcel(context.Background())

	require.NoError(t, err)
	// xlsx files are zip archives.
	assert.True(t, bytes.HasPrefix(data, []byte("PK")))
}

func TestReportService_ExportPDF_ProducesDocument(t *testing.T) {
	svc := seededService()

	data, err := svc.ExportPDF(context.Background())

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-1.4")))
	assert.Contains(t, string(data), "Leave Report")
}

func TestReportService_EmployeeBreakdown_InvalidID(t *testing.T) {
	svc := seededService()

	_, err := svc.EmployeeBreakdown(context.Background(), "not-a-uuid", nil, nil)

	assert.Error(t, err)
}
