package service

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"car-lease-service/internal/core/database"
	"car-lease-service/internal/domain"
	"car-lease-service/internal/repo"
)

type testEnv struct {
	db     *gorm.DB
	users  *UserService
	cars   *CarService
	leases *LeaseService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := database.NewGorm(database.Opts{
		Driver: "sqlite",
		DSN:    "file::memory:?cache=shared",
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&domain.User{}, &domain.Car{}, &domain.Lease{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	t.Cleanup(func() {
		// 共享内存库在多个测试间串连接，逐表清空
		db.Exec("DELETE FROM leases")
		db.Exec("DELETE FROM cars")
		db.Exec("DELETE FROM users")
	})

	log := zap.NewNop()
	users := NewUserService(repo.NewUserRepo(db), log)
	cars := NewCarService(repo.NewCarRepo(db), repo.NewUserRepo(db), nil, log)
	leases := NewLeaseService(db, repo.NewLeaseRepo(db), log)
	return &testEnv{db: db, users: users, cars: cars, leases: leases}
}

func (e *testEnv) mustRegisterUser(t *testing.T, name, email string, role domain.Role) *domain.User {
	t.Helper()
	u, err := e.users.Register(context.Background(), RegisterUserInput{
		Name: name, Email: email, Role: string(role),
	})
	if err != nil {
		t.Fatalf("register user %s: %v", email, err)
	}
	return u
}

func (e *testEnv) mustRegisterCar(t *testing.T, ownerID, model string) *domain.Car {
	t.Helper()
	c, err := e.cars.Register(context.Background(), ownerID, model)
	if err != nil {
		t.Fatalf("register car %s: %v", model, err)
	}
	return c
}

func (e *testEnv) carStatus(t *testing.T, carID string) domain.CarStatus {
	t.Helper()
	var c domain.Car
	if err := e.db.First(&c, "id = ?", carID).Error; err != nil {
		t.Fatalf("load car: %v", err)
	}
	return c.Status
}

// activeLeaseCount 按车统计在租租约数，用于核对状态与租约的一致性。
func (e *testEnv) activeLeaseCount(t *testing.T, carID string) int64 {
	t.Helper()
	var n int64
	if err := e.db.Model(&domain.Lease{}).
		Where("car_id = ? AND end_date IS NULL", carID).Count(&n).Error; err != nil {
		t.Fatalf("count active leases: %v", err)
	}
	return n
}
