package domain

import (
	"context"
	"time"
)

// MaxActiveLeasesPerCustomer 同一客户允许的最大在租数量。
const MaxActiveLeasesPerCustomer = 2

// Lease 租约。EndDate 为 nil 表示在租（ACTIVE）；结束时写入一次，之后不再变更。
// 不变量：同一辆车同一时刻至多一条 EndDate 为 nil 的租约，
// 等价于 Car.Status == ON_LEASE 当且仅当存在这样一条租约。
type Lease struct {
	ID         string     `gorm:"primaryKey;size:36" json:"id"`
	CarID      string     `gorm:"index;size:36;not null" json:"carId"`
	Car        *Car       `gorm:"foreignKey:CarID" json:"-"`
	CustomerID string     `gorm:"index;size:36;not null" json:"customerId"`
	Customer   *User      `gorm:"foreignKey:CustomerID" json:"-"`
	StartDate  time.Time  `gorm:"not null" json:"startDate"`
	EndDate    *time.Time `json:"endDate"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"-"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"-"`
}

func (Lease) TableName() string { return "leases" }

// Active 是否在租。
func (l *Lease) Active() bool { return l != nil && l.EndDate == nil }

type LeaseRepository interface {
	Create(ctx context.Context, l *Lease) error
	FindByID(ctx context.Context, id string) (*Lease, error)
	ListByCustomer(ctx context.Context, customerID string) ([]Lease, error)
	ListByCar(ctx context.Context, carID string) ([]Lease, error)
	ListAll(ctx context.Context) ([]Lease, error)
	CountActiveByCustomer(ctx context.Context, customerID string) (int64, error)
}
