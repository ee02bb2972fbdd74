package leave

import (
	"time"

	"github.com/google/uuid"
)

const DurationTypeDays = "Days"

type LeaveRequest struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	EmployeeID string `gorm:"type:varchar(64);not null;index:idx_leave_requests_employee_status"`
	FirstName  string `gorm:"type:varchar(100)"`
	LastName   string `gorm:"type:varchar(100)"`
	Email      string `gorm:"type:varchar(255)"`
	Position   string `gorm:"type:varchar(100)"`
	Phone      string `gorm:"type:varchar(30)"`

	ManagerID    string `gorm:"type:varchar(64);index:idx_leave_requests_manager_status"`
	ManagerName  string `gorm:"type:varchar(200)"`
	ManagerEmail string `gorm:"type:varchar(255)"`

	LeaveType      string    `gorm:"type:varchar(20);not null"`
	LeaveStartDate time.Time `gorm:"type:date;not null;index:idx_leave_requests_employee_dates"`
	LeaveEndDate   time.Time `gorm:"type:date;not null;index:idx_leave_requests_employee_dates"`
	Duration       int       `gorm:"not null;default:0"`
	DurationType   string    `gorm:"type:varchar(10);not null;default:'Days'"`
	BalancePeriod  int       `gorm:"not null;default:0"`

	LeaveReason     string  `gorm:"type:text"`
	Comments        *string `gorm:"type:text"`
	MedicalDocument *string `gorm:"type:varchar(255)"`

	LeaveStatus     LeaveStatus `gorm:"type:varchar(20);not null;default:'PENDING';index:idx_leave_requests_employee_status;index:idx_leave_requests_manager_status"`
	RejectionReason *string     `gorm:"type:text"`
	DecidedAt       *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}
