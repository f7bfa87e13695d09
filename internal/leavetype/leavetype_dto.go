package leavetype

type CreateLeaveTypeRequest struct {
	Name    string `json:"name" binding:"required"`
	MaxDays *int   `json:"max_days" binding:"omitempty,gt=0"`
}

type UpdateLeaveTypeRequest struct {
	Name    string `json:"name" binding:"required"`
	MaxDays *int   `json:"max_days" binding:"omitempty,gt=0"`
}

type LeaveTypeResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	MaxDays   *int   `json:"max_days,omitempty"`
	Protected bool   `json:"protected"`
	CreatedBy string `json:"created_by,omitempty"`
}
