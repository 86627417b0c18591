package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"car-lease-service/internal/domain"
)

type CarRepo struct{ db *gorm.DB }

func NewCarRepo(db *gorm.DB) *CarRepo { return &CarRepo{db: db} }

func (r *CarRepo) Create(ctx context.Context, c *domain.Car) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CarRepo) FindByID(ctx context.Context, id string) (*domain.Car, error) {
	var c domain.Car
	err := r.db.WithContext(ctx).Preload("Owner").First(&c, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &c, err
}

func (r *CarRepo) ListByStatus(ctx context.Context, status domain.CarStatus) ([]domain.Car, error) {
	var cars []domain.Car
	err := r.db.WithContext(ctx).Preload("Owner").
		Where("status = ?", status).
		Order("created_at desc").Find(&cars).Error
	return cars, err
}

func (r *CarRepo) ListByOwner(ctx context.Context, ownerID string) ([]domain.Car, error) {
	var cars []domain.Car
	err := r.db.WithContext(ctx).Preload("Owner").
		Where("owner_id = ?", ownerID).
		Order("created_at desc").Find(&cars).Error
	return cars, err
}

func (r *CarRepo) ListAll(ctx context.Context) ([]domain.Car, error) {
	var cars []domain.Car
	err := r.db.WithContext(ctx).Preload("Owner").Order("created_at desc").Find(&cars).Error
	return cars, err
}
