package employee

import (
	"time"

	"github.com/google/uuid"
)

const (
	GenderMale   = "MALE"
	GenderFemale = "FEMALE"
	GenderOther  = "OTHER"
)

type Employee struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName    string    `gorm:"type:varchar(255);not null"`
	Designation string    `gorm:"type:varchar(255)"`
	Department  string    `gorm:"type:varchar(255)"`
	Gender      string    `gorm:"type:varchar(10);not null;default:'OTHER'"`
	UpdatedBy   uuid.UUID `gorm:"type:uuid"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
