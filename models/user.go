package models

import (
	"time"
)

// Role IDs as seeded in the roles table.
const (
	RoleInnovator = 1
	RoleIndustry  = 2
	RoleAdmin     = 3
)

// Account statuses. Innovator registrations start as pending and must be
// activated by an admin before login is allowed.
const (
	AccountPending   = "pending"
	AccountActive    = "active"
	AccountSuspended = "suspended"
)

type User struct {
	UserID        int        `gorm:"primaryKey;column:user_id" json:"user_id"`
	FullName      string     `gorm:"column:full_name" json:"full_name"`
	Email         string     `gorm:"column:email;unique" json:"email"`
	Password      string     `gorm:"column:password" json:"-"`
	Phone         *string    `gorm:"column:phone" json:"phone,omitempty"`
	Institution   *string    `gorm:"column:institution" json:"institution,omitempty"`
	Bio           *string    `gorm:"column:bio" json:"bio,omitempty"`
	PhotoKey      *string    `gorm:"column:photo_key" json:"photo_key,omitempty"`
	RoleID        int        `gorm:"column:role_id" json:"role_id"`
	AccountStatus string     `gorm:"column:account_status;default:pending" json:"account_status"`
	CreateAt      *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt      *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt      *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	Role Role `gorm:"foreignKey:RoleID" json:"role,omitempty"`
}

type Role struct {
	RoleID   int        `gorm:"primaryKey;column:role_id" json:"role_id"`
	Role     string     `gorm:"column:role" json:"role"`
	CreateAt *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

// TableName overrides
func (User) TableName() string {
	return "users"
}

func (Role) TableName() string {
	return "roles"
}

func (u *User) IsAdmin() bool {
	return u.RoleID == RoleAdmin
}

func (u *User) IsActive() bool {
	return u.AccountStatus == AccountActive && u.DeleteAt == nil
}
