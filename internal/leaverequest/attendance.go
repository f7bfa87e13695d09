package leaverequest

import (
	"sort"
	"time"

	"leavedesk/internal/shared/dateutil"

	"github.com/google/uuid"
)

// UpcomingDisplayCap bounds the upcoming-leaves list for dashboard display.
const UpcomingDisplayCap = 5

type OnLeaveEntry struct {
	EmployeeID uuid.UUID    `json:"employee_id"`
	Request    LeaveRequest `json:"request"`
}

// OnLeave returns the employees absent on asOf with the approved request
// covering that date. At most one entry per employee: overlap between
// approved spans is not prevented elsewhere, so ties resolve to the earliest
// start date and then to record order.
func OnLeave(records []LeaveRequest, asOf time.Time) []OnLeaveEntry {
	day := dateutil.TruncateToDay(asOf)

	chosen := make(map[uuid.UUID]int)
	order := make([]uuid.UUID, 0)

	for i, r := range records {
		if r.Status != StatusApproved {
			continue
		}
		if !dateutil.SpanContains(r.StartDate, r.EndDate, day) {
			continue
		}

		prev, ok := chosen[r.EmployeeID]
		if !ok {
			chosen[r.EmployeeID] = i
			order = append(order, r.EmployeeID)
			continue
		}
		if dateutil.TruncateToDay(r.StartDate).Before(dateutil.TruncateToDay(records[prev].StartDate)) {
			chosen[r.EmployeeID] = i
		}
	}

	entries := make([]OnLeaveEntry, 0, len(order))
	for _, empID := range order {
		entries = append(entries, OnLeaveEntry{
			EmployeeID: empID,
			Request:    records[chosen[empID]],
		})
	}
	return entries
}

// UpcomingLeaves lists approved requests starting strictly after asOf and no
// later than asOf plus the horizon, ascending by start date, capped for
// display.
func UpcomingLeaves(records []LeaveRequest, asOf time.Time, horizonDays int) []LeaveRequest {
	day := dateutil.TruncateToDay(asOf)
	horizon := day.AddDate(0, 0, horizonDays)

	upcoming := make([]LeaveRequest, 0)
	for _, r := range records {
		if r.Status != StatusApproved {
			continue
		}
		start := dateutil.TruncateToDay(r.StartDate)
		if start.After(day) && !start.After(horizon) {
			upcoming = append(upcoming, r)
		}
	}

	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].StartDate.Before(upcoming[j].StartDate)
	})

	if len(upcoming) > UpcomingDisplayCap {
		upcoming = upcoming[:UpcomingDisplayCap]
	}
	return upcoming
}
