package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"car-lease-service/internal/domain"
	"car-lease-service/pkg/utils"
)

// LeaseService 租约生命周期引擎。
//
// 每次 Start/End 都是一个事务：校验和写入在同一事务内完成，
// 车辆行上加 FOR UPDATE 行锁，保证同一辆 IDLE 车不会被并发双租、
// 同一客户不会被观察到超过两条在租租约（check-then-act 竞态由锁兜底）。
type LeaseService struct {
	db     *gorm.DB
	leases domain.LeaseRepository
	log    *zap.Logger

	// 租约写入后使可租列表缓存失效；可为 nil。
	invalidate func(ctx context.Context)
}

func NewLeaseService(db *gorm.DB, leases domain.LeaseRepository, log *zap.Logger) *LeaseService {
	return &LeaseService{db: db, leases: leases, log: log}
}

// OnLeaseChanged 注册租约变更后的回调（缓存失效用）。
func (s *LeaseService) OnLeaseChanged(fn func(ctx context.Context)) { s.invalidate = fn }

// StartLease 为客户开始一笔租约。
//
// 校验顺序固定（多个违规同时成立时报错的确定性依赖该顺序）：
//  1. 客户存在；2. 角色为 CUSTOMER；3. 在租数 < 2；
//  4. 车辆存在；5. 车辆 IDLE。
// 之后原子地置车辆 ON_LEASE 并创建 EndDate 为空的租约。
func (s *LeaseService) StartLease(ctx context.Context, customerID, carID string) (*domain.Lease, error) {
	if strings.TrimSpace(customerID) == "" || strings.TrimSpace(carID) == "" {
		return nil, domain.Validationf("customer ID and car ID must not be empty")
	}

	var lease *domain.Lease
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 客户行也加锁：在租数统计本身无法加行锁，
		// 并发为同一客户开不同车的两笔事务必须在这里串行，否则计数会写偏
		var customer domain.User
		if err := lockRow(tx).First(&customer, "id = ?", customerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.NotFoundf("customer not found with ID: %s", customerID)
			}
			return err
		}
		if customer.Role != domain.RoleCustomer {
			return domain.RoleViolationf("Only CUSTOMERS can start leases.")
		}

		var active int64
		if err := tx.Model(&domain.Lease{}).
			Where("customer_id = ? AND end_date IS NULL", customerID).
			Count(&active).Error; err != nil {
			return err
		}
		if active >= domain.MaxActiveLeasesPerCustomer {
			return domain.BusinessRulef("Customer already has %d active leases.", domain.MaxActiveLeasesPerCustomer)
		}

		var car domain.Car
		if err := lockRow(tx).Preload("Owner").First(&car, "id = ?", carID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.NotFoundf("car not found with ID: %s", carID)
			}
			return err
		}
		if car.Status != domain.CarIdle {
			return domain.BusinessRulef("Car is not available for lease.")
		}

		car.Status = domain.CarOnLease
		if err := tx.Model(&domain.Car{}).Where("id = ?", car.ID).
			Update("status", domain.CarOnLease).Error; err != nil {
			return err
		}

		lease = &domain.Lease{
			ID:         utils.NewID(),
			CarID:      car.ID,
			Car:        &car,
			CustomerID: customer.ID,
			Customer:   &customer,
			StartDate:  today(),
		}
		return tx.Create(lease).Error
	})
	if err != nil {
		return nil, err
	}

	s.leaseChanged(ctx)
	s.log.Info("lease started",
		zap.String("lease_id", lease.ID),
		zap.String("customer_id", customerID),
		zap.String("car_id", carID),
	)
	return lease, nil
}

// EndLease 管理侧结束租约。重复结束报 BusinessRuleViolation。
func (s *LeaseService) EndLease(ctx context.Context, leaseID string) (*domain.Lease, error) {
	return s.endLease(ctx, leaseID, "")
}

// EndLeaseForCustomer 客户侧结束租约：只能结束自己的租约。
// 归属和重复结束都走同一套错误约定，由 transport 统一映射成非 5xx 的业务失败。
func (s *LeaseService) EndLeaseForCustomer(ctx context.Context, customerID, leaseID string) (*domain.Lease, error) {
	if strings.TrimSpace(customerID) == "" {
		return nil, domain.Validationf("customer ID must not be empty")
	}
	return s.endLease(ctx, leaseID, customerID)
}

func (s *LeaseService) endLease(ctx context.Context, leaseID, requestingCustomerID string) (*domain.Lease, error) {
	if strings.TrimSpace(leaseID) == "" {
		return nil, domain.Validationf("lease ID must not be empty")
	}

	var lease *domain.Lease
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var l domain.Lease
		if err := lockRow(tx).Preload("Car").Preload("Customer").
			First(&l, "id = ?", leaseID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.NotFoundf("lease not found with ID: %s", leaseID)
			}
			return err
		}
		if requestingCustomerID != "" && l.CustomerID != requestingCustomerID {
			return domain.BusinessRulef("you can only end your own lease")
		}
		if l.EndDate != nil {
			return domain.BusinessRulef("Lease already ended.")
		}

		end := today()
		if err := tx.Model(&domain.Lease{}).Where("id = ?", l.ID).
			Update("end_date", end).Error; err != nil {
			return err
		}
		if err := tx.Model(&domain.Car{}).Where("id = ?", l.CarID).
			Update("status", domain.CarIdle).Error; err != nil {
			return err
		}
		l.EndDate = &end
		if l.Car != nil {
			l.Car.Status = domain.CarIdle
		}
		lease = &l
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.leaseChanged(ctx)
	s.log.Info("lease ended", zap.String("lease_id", lease.ID))
	return lease, nil
}

func (s *LeaseService) GetLeasesByCustomer(ctx context.Context, customerID string) ([]domain.Lease, error) {
	return s.leases.ListByCustomer(ctx, customerID)
}

func (s *LeaseService) GetLeasesByCar(ctx context.Context, carID string) ([]domain.Lease, error) {
	return s.leases.ListByCar(ctx, carID)
}

func (s *LeaseService) GetAllLeases(ctx context.Context) ([]domain.Lease, error) {
	return s.leases.ListAll(ctx)
}

func (s *LeaseService) leaseChanged(ctx context.Context) {
	if s.invalidate != nil {
		s.invalidate(ctx)
	}
}

// lockRow 在支持的方言上加 SELECT ... FOR UPDATE。
// sqlite 不支持该语法，但其单写者模型下事务本身已串行化写入。
func lockRow(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// today 当天零点（本地时区），租约只记日期。
func today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}
