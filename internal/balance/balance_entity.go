package balance

import "time"

// Balance is the running total of calendar days booked by one employee for
// one leave type inside one cap period.
type Balance struct {
	EmployeeID string    `gorm:"type:varchar(64);primaryKey"`
	LeaveType  string    `gorm:"type:varchar(20);primaryKey"`
	Period     int       `gorm:"primaryKey;autoIncrement:false"`
	BookedDays int       `gorm:"not null;default:0"`
	UpdatedAt  time.Time
}

func (Balance) TableName() string {
	return "leave_balances"
}

type Key struct {
	EmployeeID string
	LeaveType  string
	Period     int
}
