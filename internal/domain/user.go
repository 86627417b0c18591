package domain

import (
	"context"
	"time"
)

// Role 用户角色枚举（持久化为字符串，创建后不可变）。
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleOwner    Role = "OWNER"
	RoleCustomer Role = "CUSTOMER"
)

// ParseRole 解析角色；空串默认 CUSTOMER。
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleOwner, RoleCustomer:
		return Role(s), true
	case "":
		return RoleCustomer, true
	}
	return "", false
}

type User struct {
	ID           string `gorm:"primaryKey;size:36" json:"id"`
	Name         string `gorm:"size:64;not null" json:"name"`
	Email        string `gorm:"uniqueIndex;size:191;not null" json:"email"`
	Role         Role   `gorm:"type:varchar(16);not null" json:"role"`
	PasswordHash string `gorm:"size:100" json:"-"` // 可选，仅 /auth/token 用

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"-"`
}

func (User) TableName() string { return "users" }

type UserRepository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, offset, limit int) ([]User, int64, error)
}
