package holiday

import (
	"time"

	"leavedesk/internal/shared/dateutil"

	"github.com/google/uuid"
)

type Holiday struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"type:varchar(255);not null"`
	StartDate time.Time `gorm:"type:date;not null;index"`
	EndDate   time.Time `gorm:"type:date;not null"`
	CreatedBy uuid.UUID `gorm:"type:uuid"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TotalDays is derived, never stored. Both endpoints count.
func (h Holiday) TotalDays() int {
	return dateutil.CalculateDays(h.StartDate, h.EndDate)
}
