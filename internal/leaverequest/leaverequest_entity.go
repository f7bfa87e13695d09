package leaverequest

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

// LeaveRequest carries denormalized employee and leave-type display fields
// captured at submission time. Reports built on old requests stay stable when
// the employee is later renamed or deleted.
type LeaveRequest struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID          uuid.UUID `gorm:"type:uuid;index;not null"`
	EmployeeName        string    `gorm:"type:varchar(255);not null"`
	EmployeeDesignation string    `gorm:"type:varchar(255)"`
	EmployeeDepartment  string    `gorm:"type:varchar(255)"`
	LeaveTypeID         uuid.UUID `gorm:"type:uuid;index;not null"`
	LeaveTypeName       string    `gorm:"type:varchar(255);not null"`
	StartDate           time.Time `gorm:"type:date;not null;index"`
	EndDate             time.Time `gorm:"type:date;not null"`
	ApprovedDays        int       `gorm:"not null"`
	Comments            string    `gorm:"type:text"`
	Status              string    `gorm:"type:varchar(16);not null;index"`
	CreatedBy           uuid.UUID `gorm:"type:uuid"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
	DecidedBy           *uuid.UUID `gorm:"type:uuid"`
	DecidedAt           *time.Time
	AttachmentFileID    *string `gorm:"type:varchar(512)"`
	AttachmentFileName  *string `gorm:"type:varchar(255)"`
	AttachmentViewURL   *string `gorm:"type:varchar(1024)"`
}

func (lr LeaveRequest) IsPending() bool {
	return lr.Status == StatusPending
}
