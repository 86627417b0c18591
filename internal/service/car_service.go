package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"car-lease-service/internal/core/cache"
	"car-lease-service/internal/domain"
	"car-lease-service/pkg/utils"
)

const (
	idleCarsCacheKey = "cars:idle"
	idleCarsCacheTTL = 5 * time.Second
)

// CarService 车辆登记与查询。车辆状态只由租约引擎改写，这里不提供状态写入。
type CarService struct {
	cars  domain.CarRepository
	users domain.UserRepository
	cache *cache.Cache // 可为 nil（测试或未配置 redis 时直接回源）
	log   *zap.Logger
}

func NewCarService(cars domain.CarRepository, users domain.UserRepository, c *cache.Cache, log *zap.Logger) *CarService {
	return &CarService{cars: cars, users: users, cache: c, log: log}
}

// Register 为 ownerId 登记新车，固定落库为 IDLE。
// 车主必须存在且角色为 OWNER；角色在创建时校验一次（角色创建后不变）。
func (s *CarService) Register(ctx context.Context, ownerID, model string) (*domain.Car, error) {
	model = strings.TrimSpace(model)
	if strings.TrimSpace(ownerID) == "" || model == "" {
		return nil, domain.Validationf("owner ID and car model must not be empty")
	}

	owner, err := s.users.FindByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, domain.NotFoundf("user not found with ID: %s", ownerID)
	}
	if owner.Role != domain.RoleOwner {
		return nil, domain.RoleViolationf("user must be an OWNER to register a car")
	}

	car := &domain.Car{
		ID:      utils.NewID(),
		Model:   model,
		Status:  domain.CarIdle,
		OwnerID: owner.ID,
		Owner:   owner,
	}
	if err := s.cars.Create(ctx, car); err != nil {
		return nil, err
	}
	s.invalidateIdleCars(ctx)

	s.log.Info("car registered",
		zap.String("model", car.Model),
		zap.String("owner", owner.Email),
	)
	return car, nil
}

// ListAvailable 客户侧的可租列表（仅 IDLE），走 redis 短 TTL 缓存。
// 租约开始/结束与新车登记都会失效该键，TTL 只是兜底。
func (s *CarService) ListAvailable(ctx context.Context) ([]domain.Car, error) {
	if s.cache == nil {
		return s.cars.ListByStatus(ctx, domain.CarIdle)
	}
	cars, err := cache.GetOrLoadJSON[[]domain.Car](s.cache, ctx, idleCarsCacheKey, idleCarsCacheTTL,
		func(ctx context.Context) (*[]domain.Car, error) {
			v, e := s.cars.ListByStatus(ctx, domain.CarIdle)
			if e != nil {
				return nil, e
			}
			return &v, nil
		})
	if err != nil {
		// 缓存链路故障降级为直读
		s.log.Warn("idle cars cache degraded", zap.Error(err))
		return s.cars.ListByStatus(ctx, domain.CarIdle)
	}
	if cars == nil {
		return nil, nil
	}
	return *cars, nil
}

func (s *CarService) ListByStatus(ctx context.Context, status domain.CarStatus) ([]domain.Car, error) {
	return s.cars.ListByStatus(ctx, status)
}

func (s *CarService) ListByOwner(ctx context.Context, ownerID string) ([]domain.Car, error) {
	return s.cars.ListByOwner(ctx, ownerID)
}

func (s *CarService) ListAll(ctx context.Context) ([]domain.Car, error) {
	return s.cars.ListAll(ctx)
}

// InvalidateAvailable 供租约引擎在开租/退租后失效可租列表缓存。
func (s *CarService) InvalidateAvailable(ctx context.Context) { s.invalidateIdleCars(ctx) }

func (s *CarService) invalidateIdleCars(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, idleCarsCacheKey); err != nil {
		s.log.Warn("invalidate idle cars cache", zap.Error(err))
	}
}
