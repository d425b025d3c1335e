package user

import (
	"time"
)

const (
	RoleEmployee = "employee"
	RoleHR       = "hr"
)

// DefaultLeaveBalance is the entitlement every new account starts with.
const DefaultLeaveBalance = 15.0

type User struct {
	ID           uint    `gorm:"column:id;primaryKey;autoIncrement"`
	Name         string  `gorm:"column:name;type:varchar(255);not null"`
	Email        string  `gorm:"column:email;type:varchar(255);not null;uniqueIndex:uq_users_email"`
	PasswordHash string  `gorm:"column:password_hash;type:text;not null"`
	Role         string  `gorm:"column:role;type:varchar(20);not null;check:chk_users_role,role IN ('employee','hr')"`
	LeaveBalance float64 `gorm:"column:leave_balance;type:numeric(6,2);not null;default:15"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}
