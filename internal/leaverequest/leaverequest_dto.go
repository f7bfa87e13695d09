package leaverequest

type CreateLeaveRequestRequest struct {
	EmployeeID   string `json:"employee_id" form:"employee_id" binding:"required,uuid"`
	LeaveTypeID  string `json:"leave_type_id" form:"leave_type_id" binding:"required,uuid"`
	StartDate    string `json:"start_date" form:"start_date" binding:"required"`
	EndDate      string `json:"end_date" form:"end_date" binding:"required"`
	ApprovedDays *int   `json:"approved_days" form:"approved_days" binding:"omitempty,gt=0"`
	Comments     string `json:"comments" form:"comments"`
}

type UpdateLeaveRequestRequest struct {
	EmployeeID   string `json:"employee_id" form:"employee_id" binding:"required,uuid"`
	LeaveTypeID  string `json:"leave_type_id" form:"leave_type_id" binding:"required,uuid"`
	StartDate    string `json:"start_date" form:"start_date" binding:"required"`
	EndDate      string `json:"end_date" form:"end_date" binding:"required"`
	ApprovedDays *int   `json:"approved_days" form:"approved_days" binding:"omitempty,gt=0"`
	Comments     string `json:"comments" form:"comments"`
}

type BulkDeleteRequest struct {
	IDs []string `json:"ids" binding:"required,min=1,dive,uuid"`
}

// AttachmentUpload is the raw file handed to the service before any store
// call. MIME validation happens in the service, ahead of persistence.
type AttachmentUpload struct {
	Data     []byte
	Filename string
	MIMEType string
}

type AttachmentResponse struct {
	FileID   string `json:"file_id"`
	FileName string `json:"file_name"`
	ViewURL  string `json:"view_url"`
}

type LeaveRequestResponse struct {
	ID                  string              `json:"id"`
	EmployeeID          string              `json:"employee_id"`
	EmployeeName        string              `json:"employee_name"`
	EmployeeDesignation string              `json:"employee_designation,omitempty"`
	EmployeeDepartment  string              `json:"employee_department,omitempty"`
	LeaveTypeID         string              `json:"leave_type_id"`
	LeaveTypeName       string              `json:"leave_type_name"`
	StartDate           string              `json:"start_date"`
	EndDate             string              `json:"end_date"`
	ApprovedDays        int                 `json:"approved_days"`
	Comments            string              `json:"comments,omitempty"`
	Status              string              `json:"status"`
	CreatedBy           string              `json:"created_by,omitempty"`
	CreatedAt           string              `json:"created_at,omitempty"`
	DecidedBy           string              `json:"decided_by,omitempty"`
	DecidedAt           string              `json:"decided_at,omitempty"`
	Attachment          *AttachmentResponse `json:"attachment,omitempty"`
	QuotaWarning        *QuotaCheck         `json:"quota_warning,omitempty"`
}

type BulkDeleteFailure struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

// BulkDeleteResult reports the outcome of a sequential best-effort batch.
// Some items may succeed while others fail; there is no rollback.
type BulkDeleteResult struct {
	Deleted []string            `json:"deleted"`
	Failed  []BulkDeleteFailure `json:"failed"`
}

type AttendanceResponse struct {
	OnLeave  []LeaveRequestResponse `json:"on_leave"`
	Upcoming []LeaveRequestResponse `json:"upcoming"`
}
