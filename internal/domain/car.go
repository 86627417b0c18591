package domain

import (
	"context"
	"time"
)

// CarStatus 车辆可用性状态。
// IDLE ↔ ON_LEASE 的流转只发生在租约开始/结束事务里，没有其他写入方。
type CarStatus string

const (
	CarIdle    CarStatus = "IDLE"
	CarOnLease CarStatus = "ON_LEASE"
)

func ParseCarStatus(s string) (CarStatus, bool) {
	switch CarStatus(s) {
	case CarIdle, CarOnLease:
		return CarStatus(s), true
	}
	return "", false
}

type Car struct {
	ID      string    `gorm:"primaryKey;size:36" json:"id"`
	Model   string    `gorm:"size:128;not null" json:"model"`
	Status  CarStatus `gorm:"type:varchar(16);index;not null" json:"status"`
	OwnerID string    `gorm:"index;size:36;not null" json:"ownerId"`
	Owner   *User     `gorm:"foreignKey:OwnerID" json:"-"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"-"`
}

func (Car) TableName() string { return "cars" }

type CarRepository interface {
	Create(ctx context.Context, c *Car) error
	FindByID(ctx context.Context, id string) (*Car, error)
	ListByStatus(ctx context.Context, status CarStatus) ([]Car, error)
	ListByOwner(ctx context.Context, ownerID string) ([]Car, error)
	ListAll(ctx context.Context) ([]Car, error)
}
