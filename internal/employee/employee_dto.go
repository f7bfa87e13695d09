package employee

type CreateEmployeeRequest struct {
	FullName    string `json:"full_name" binding:"required"`
	Designation string `json:"designation"`
	Department  string `json:"department"`
	Gender      string `json:"gender" binding:"required,oneof=MALE FEMALE OTHER"`
}

type UpdateEmployeeRequest struct {
	FullName    string `json:"full_name" binding:"required"`
	Designation string `json:"designation"`
	Department  string `json:"department"`
	Gender      string `json:"gender" binding:"required,oneof=MALE FEMALE OTHER"`
}

type BulkDeleteRequest struct {
	IDs []string `json:"ids" binding:"required,min=1,dive,uuid"`
}

type EmployeeResponse struct {
	ID          string `json:"id"`
	FullName    string `json:"full_name"`
	Designation string `json:"designation"`
	Department  string `json:"department"`
	Gender      string `json:"gender"`
	UpdatedBy   string `json:"updated_by,omitempty"`
	UpdatedAt   string `json:"updated_at,omitempty"`
}
