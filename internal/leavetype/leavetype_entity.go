package leavetype

import (
	"time"

	"github.com/google/uuid"
)

// ProtectedName is the built-in leave type every deployment carries.
// It can be edited but never deleted.
const ProtectedName = "Casual Leave"

type LeaveType struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	MaxDays   *int      `gorm:"type:int"` // nil means no quota
	CreatedBy uuid.UUID `gorm:"type:uuid"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
