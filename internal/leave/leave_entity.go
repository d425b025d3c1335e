package leave

import (
	"time"
)

type LeaveRequest struct {
	ID         uint `gorm:"column:id;primaryKey;autoIncrement"`
	EmployeeID uint `gorm:"column:employee_id;not null;index:idx_leaves_employee_dates"`

	StartDate time.Time `gorm:"column:start_date;type:date;not null;index:idx_leaves_employee_dates"`
	EndDate   time.Time `gorm:"column:end_date;type:date;not null;index:idx_leaves_employee_dates"`
	Days      float64   `gorm:"column:days;type:numeric(6,2);not null"`
	LeaveType string    `gorm:"column:leave_type;type:varchar(50);not null"`
	Reason    string    `gorm:"column:reason;type:text"`

	Status        string     `gorm:"column:status;type:varchar(20);not null;default:'Pending';index:idx_leaves_status"`
	AppliedAt     time.Time  `gorm:"column:applied_at;not null"`
	ReviewedBy    *uint      `gorm:"column:reviewed_by"`
	ReviewedAt    *time.Time `gorm:"column:reviewed_at"`
	ReviewComment *string    `gorm:"column:review_comment;type:text"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`

	// Users are never deleted from under their requests
	Employee *LeaveUser `gorm:"foreignKey:EmployeeID;references:ID;constraint:OnDelete:RESTRICT"`
	Reviewer *LeaveUser `gorm:"foreignKey:ReviewedBy;references:ID;constraint:OnDelete:RESTRICT"`
}

func (LeaveRequest) TableName() string {
	return "leaves"
}

// LeaveUser is the minimal join projection of the users table
type LeaveUser struct {
	ID    uint   `gorm:"primaryKey"`
	Name  string `gorm:"column:name"`
	Email string `gorm:"column:email"`
}

func (LeaveUser) TableName() string {
	return "users"
}
