package report

import (
	"sort"
	"time"

	"leavedesk/internal/employee"
	"leavedesk/internal/leaverequest"
	"leavedesk/internal/shared/dateutil"

	"github.com/google/uuid"
)

// Every aggregation here is a pure function over a snapshot of records. An
// empty record set is a valid input producing zero-valued output.

type TopLeaveTaker struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	TotalDays    int    `json:"total_days"`
}

// TopLeaveTakers sums approved days per employee, resolves the display name
// from the live employee list when the employee still exists, and falls back
// to the request's snapshot name otherwise.
func TopLeaveTakers(records []leaverequest.LeaveRequest, employees []employee.Employee, n int) []TopLeaveTaker {
	names := make(map[uuid.UUID]string, len(employees))
	for _, e := range employees {
		names[e.ID] = e.FullName
	}

	totals := make(map[uuid.UUID]int)
	snapshot := make(map[uuid.UUID]string)
	order := make([]uuid.UUID, 0)

	for _, r := range records {
		if r.Status != leaverequest.StatusApproved {
			continue
		}
		if _, seen := totals[r.EmployeeID]; !seen {
			order = append(order, r.EmployeeID)
		}
		totals[r.EmployeeID] += r.ApprovedDays
		snapshot[r.EmployeeID] = r.EmployeeName
	}

	takers := make([]TopLeaveTaker, 0, len(order))
	for _, id := range order {
		name, ok := names[id]
		if !ok {
			name = snapshot[id]
		}
		takers = append(takers, TopLeaveTaker{
			EmployeeID:   id.String(),
			EmployeeName: name,
			TotalDays:    totals[id],
		})
	}

	sort.SliceStable(takers, func(i, j int) bool {
		return takers[i].TotalDays > takers[j].TotalDays
	})

	if n > 0 && len(takers) > n {
		takers = takers[:n]
	}
	return takers
}

type MonthlyBucket struct {
	Month          string `json:"month"`
	TotalDays      int    `json:"total_days"`
	UniqueEmployee int    `json:"unique_employee_count"`
	RequestCount   int    `json:"request_count"`
}

// MonthlySeries buckets approved requests into the trailing monthsBack
// calendar months ending at asOf's month, assigning each request to its
// start month. A span crossing a month boundary counts entirely in its start
// month. Months without requests still appear as zero buckets.
func MonthlySeries(records []leaverequest.LeaveRequest, monthsBack int, asOf time.Time, employeeFilter *uuid.UUID) []MonthlyBucket {
	if monthsBack < 1 {
		monthsBack = 1
	}

	current := time.Date(asOf.Year(), asOf.Month(), 1, 0, 0, 0, 0, time.UTC)
	buckets := make([]MonthlyBucket, monthsBack)
	index := make(map[string]int, monthsBack)
	employeesPerBucket := make([]map[uuid.UUID]struct{}, monthsBack)

	for i := 0; i < monthsBack; i++ {
		month := current.AddDate(0, i-(monthsBack-1), 0)
		key := month.Format(dateutil.MonthLayout)
		buckets[i] = MonthlyBucket{Month: key}
		index[key] = i
		employeesPerBucket[i] = make(map[uuid.UUID]struct{})
	}

	for _, r := range records {
		if r.Status != leaverequest.StatusApproved {
			continue
		}
		if employeeFilter != nil && r.EmployeeID != *employeeFilter {
			continue
		}
		i, ok := index[dateutil.MonthKey(r.StartDate)]
		if !ok {
			continue
		}
		buckets[i].TotalDays += r.ApprovedDays
		buckets[i].RequestCount++
		employeesPerBucket[i][r.EmployeeID] = struct{}{}
	}

	for i := range buckets {
		buckets[i].UniqueEmployee = len(employeesPerBucket[i])
	}
	return buckets
}

// LeaveTypeDistribution counts approved requests per leave type name. Counts
// of requests, not days.
func LeaveTypeDistribution(records []leaverequest.LeaveRequest) map[string]int {
	dist := make(map[string]int)
	for _, r := range records {
		if r.Status != leaverequest.StatusApproved {
			continue
		}
		dist[r.LeaveTypeName]++
	}
	return dist
}

type BreakdownGroup struct {
	LeaveTypeName string                      `json:"leave_type_name"`
	Days          int                         `json:"days"`
	Records       []leaverequest.LeaveRequest `json:"records"`
}

type EmployeeBreakdown struct {
	TotalDays int              `json:"total_days"`
	ByType    []BreakdownGroup `json:"by_type"`
}

// BreakdownRange bounds the breakdown. Either side may be nil. A request is
// included when its span overlaps the range.
type BreakdownRange struct {
	From *time.Time
	To   *time.Time
}

// EmployeeLeaveBreakdown groups one employee's approved requests by leave
// type name. Groups and the records inside them keep fetch order so report
// output is reproducible.
func EmployeeLeaveBreakdown(records []leaverequest.LeaveRequest, employeeID uuid.UUID, rng *BreakdownRange) EmployeeBreakdown {
	breakdown := EmployeeBreakdown{ByType: make([]BreakdownGroup, 0)}
	groupIdx := make(map[string]int)

	for _, r := range records {
		if r.EmployeeID != employeeID || r.Status != leaverequest.StatusApproved {
			continue
		}
		if rng != nil && !overlapsRange(r, rng) {
			continue
		}

		i, ok := groupIdx[r.LeaveTypeName]
		if !ok {
			i = len(breakdown.ByType)
			groupIdx[r.LeaveTypeName] = i
			breakdown.ByType = append(breakdown.ByType, BreakdownGroup{LeaveTypeName: r.LeaveTypeName})
		}
		breakdown.ByType[i].Days += r.ApprovedDays
		breakdown.ByType[i].Records = append(breakdown.ByType[i].Records, r)
		breakdown.TotalDays += r.ApprovedDays
	}
	return breakdown
}

func overlapsRange(r leaverequest.LeaveRequest, rng *BreakdownRange) bool {
	start := dateutil.TruncateToDay(r.StartDate)
	end := dateutil.TruncateToDay(r.EndDate)

	if rng.From != nil && end.Before(dateutil.TruncateToDay(*rng.From)) {
		return false
	}
	if rng.To != nil && start.After(dateutil.TruncateToDay(*rng.To)) {
		return false
	}
	return true
}
