package service

import (
	"context"

	"go.uber.org/zap"

	"car-lease-service/internal/domain"
)

// SeedService 演示数据引导。显式调用（/api/admin/bootstrap-users），
// 不在进程启动时偷偷执行；重复调用是幂等的（按邮箱/已有车辆跳过）。
type SeedService struct {
	users *UserService
	cars  *CarService
	log   *zap.Logger
}

func NewSeedService(users *UserService, cars *CarService, log *zap.Logger) *SeedService {
	return &SeedService{users: users, cars: cars, log: log}
}

type SeedResult struct {
	UsersCreated int `json:"usersCreated"`
	CarsCreated  int `json:"carsCreated"`
}

var seedUsers = []RegisterUserInput{
	{Name: "Admin1", Email: "admin@carlease.dev", Role: string(domain.RoleAdmin)},
	{Name: "Carlos", Email: "carlos@carlease.dev", Role: string(domain.RoleOwner)},
	{Name: "Ayesha", Email: "ayesha@carlease.dev", Role: string(domain.RoleOwner)},
	{Name: "Daniel", Email: "daniel@carlease.dev", Role: string(domain.RoleOwner)},
	{Name: "Ravi", Email: "ravi@carlease.dev", Role: string(domain.RoleOwner)},
	{Name: "Sofia", Email: "sofia@carlease.dev", Role: string(domain.RoleOwner)},
	{Name: "Rajesh", Email: "rajesh@carlease.dev", Role: string(domain.RoleCustomer)},
	{Name: "Emily", Email: "emily@carlease.dev", Role: string(domain.RoleCustomer)},
	{Name: "Ali", Email: "ali@carlease.dev", Role: string(domain.RoleCustomer)},
	{Name: "Lina", Email: "lina@carlease.dev", Role: string(domain.RoleCustomer)},
	{Name: "Sundar", Email: "sundar@carlease.dev", Role: string(domain.RoleCustomer)},
}

var seedCars = map[string][]string{
	"carlos@carlease.dev": {"Honda Civic", "Toyota Corolla"},
	"ayesha@carlease.dev": {"Hyundai i20"},
	"daniel@carlease.dev": {"Ford Focus"},
	"ravi@carlease.dev":   {"Maruti Swift"},
	"sofia@carlease.dev":  {"Volkswagen Golf"},
}

// Bootstrap 写入演示用户和车辆。任何意外错误都不外泄细节，
// 由 transport 转成统一的失败消息。
func (s *SeedService) Bootstrap(ctx context.Context) (*SeedResult, error) {
	res := &SeedResult{}

	created, err := s.users.RegisterMany(ctx, seedUsers)
	if err != nil {
		return nil, err
	}
	res.UsersCreated = created

	for email, models := range seedCars {
		owner, err := s.users.FindByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		if owner == nil {
			continue
		}
		existing, err := s.cars.ListByOwner(ctx, owner.ID)
		if err != nil {
			return nil, err
		}
		if len(existing) > 0 {
			continue // 幂等：该车主已有车
		}
		for _, model := range models {
			if _, err := s.cars.Register(ctx, owner.ID, model); err != nil {
				return nil, err
			}
			res.CarsCreated++
		}
	}

	s.log.Info("seed bootstrap done",
		zap.Int("users_created", res.UsersCreated),
		zap.Int("cars_created", res.CarsCreated),
	)
	return res, nil
}
