package leaverequest

import "github.com/google/uuid"

// The ledger operates on a freshly fetched slice of records. It holds no
// state of its own; mutation goes through the service.

// UsedDays sums ApprovedDays across the employee's requests of the given
// type, counting only the supplied statuses (approved when none given).
func UsedDays(records []LeaveRequest, employeeID, leaveTypeID uuid.UUID, statuses ...string) int {
	if len(statuses) == 0 {
		statuses = []string{StatusApproved}
	}

	allowed := make(map[string]struct{}, len(statuses))
	for _, st := range statuses {
		allowed[st] = struct{}{}
	}

	total := 0
	for _, r := range records {
		if r.EmployeeID != employeeID || r.LeaveTypeID != leaveTypeID {
			continue
		}
		if _, ok := allowed[r.Status]; !ok {
			continue
		}
		total += r.ApprovedDays
	}
	return total
}

type QuotaCheck struct {
	WithinLimit bool `json:"within_limit"`
	Used        int  `json:"used"`
	Limit       *int `json:"limit"`
}

// CheckQuota compares approved usage plus the requested days against the
// type's quota. A nil maxDays means unlimited and is always within limit.
func CheckQuota(records []LeaveRequest, employeeID, leaveTypeID uuid.UUID, maxDays *int, requestedDays int) QuotaCheck {
	used := UsedDays(records, employeeID, leaveTypeID)

	if maxDays == nil {
		return QuotaCheck{WithinLimit: true, Used: used, Limit: nil}
	}

	return QuotaCheck{
		WithinLimit: used+requestedDays <= *maxDays,
		Used:        used,
		Limit:       maxDays,
	}
}
