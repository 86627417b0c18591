package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"car-lease-service/internal/domain"
)

type LeaseRepo struct{ db *gorm.DB }

func NewLeaseRepo(db *gorm.DB) *LeaseRepo { return &LeaseRepo{db: db} }

func (r *LeaseRepo) Create(ctx context.Context, l *domain.Lease) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *LeaseRepo) FindByID(ctx context.Context, id string) (*domain.Lease, error) {
	var l domain.Lease
	err := r.db.WithContext(ctx).Preload("Car").Preload("Customer").
		First(&l, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &l, err
}

func (r *LeaseRepo) ListByCustomer(ctx context.Context, customerID string) ([]domain.Lease, error) {
	var leases []domain.Lease
	err := r.db.WithContext(ctx).Preload("Car").Preload("Customer").
		Where("customer_id = ?", customerID).
		Order("start_date desc").Find(&leases).Error
	return leases, err
}

func (r *LeaseRepo) ListByCar(ctx context.Context, carID string) ([]domain.Lease, error) {
	var leases []domain.Lease
	err := r.db.WithContext(ctx).Preload("Car").Preload("Customer").
		Where("car_id = ?", carID).
		Order("start_date desc").Find(&leases).Error
	return leases, err
}

func (r *LeaseRepo) ListAll(ctx context.Context) ([]domain.Lease, error) {
	var leases []domain.Lease
	err := r.db.WithContext(ctx).Preload("Car").Preload("Customer").
		Order("start_date desc").Find(&leases).Error
	return leases, err
}

func (r *LeaseRepo) CountActiveByCustomer(ctx context.Context, customerID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Lease{}).
		Where("customer_id = ? AND end_date IS NULL", customerID).
		Count(&n).Error
	return n, err
}
