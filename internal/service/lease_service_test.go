package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"car-lease-service/internal/domain"
)

func TestLeaseLifecycle(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	carlos := e.mustRegisterUser(t, "Carlos", "carlos@x.com", domain.RoleOwner)
	civic := e.mustRegisterCar(t, carlos.ID, "Civic")
	if civic.Status != domain.CarIdle {
		t.Fatalf("new car status = %s, want IDLE", civic.Status)
	}
	raj := e.mustRegisterUser(t, "Raj", "raj@x.com", domain.RoleCustomer)

	lease, err := e.leases.StartLease(ctx, raj.ID, civic.ID)
	if err != nil {
		t.Fatalf("StartLease: %v", err)
	}
	if lease.EndDate != nil {
		t.Fatalf("new lease should be active, got end date %v", lease.EndDate)
	}
	wantDate := time.Now().Format("2006-01-02")
	if got := lease.StartDate.Format("2006-01-02"); got != wantDate {
		t.Fatalf("start date = %s, want %s", got, wantDate)
	}
	if got := e.carStatus(t, civic.ID); got != domain.CarOnLease {
		t.Fatalf("car status after start = %s, want ON_LEASE", got)
	}

	ended, err := e.leases.EndLease(ctx, lease.ID)
	if err != nil {
		t.Fatalf("EndLease: %v", err)
	}
	if ended.EndDate == nil {
		t.Fatalf("ended lease has no end date")
	}
	if got := ended.EndDate.Format("2006-01-02"); got != wantDate {
		t.Fatalf("end date = %s, want %s", got, wantDate)
	}
	if got := e.carStatus(t, civic.ID); got != domain.CarIdle {
		t.Fatalf("car status after end = %s, want IDLE", got)
	}

	// 同一辆车可以再次出租：IDLE → ON_LEASE → IDLE → ON_LEASE
	if _, err := e.leases.StartLease(ctx, raj.ID, civic.ID); err != nil {
		t.Fatalf("second StartLease on same car: %v", err)
	}
	if got := e.carStatus(t, civic.ID); got != domain.CarOnLease {
		t.Fatalf("car status after restart = %s, want ON_LEASE", got)
	}
}

// 多写者数据库上同一客户的并发开租必须在客户行上串行：
// 只锁车辆行时，两笔租不同车的事务各自计数 1、互不阻塞，
// 提交后该客户会超出在租上限（写偏）。这里用 DryRun 校验生成的 SQL 带锁。
func TestRowLockByDialect(t *testing.T) {
	pg, err := gorm.Open(postgres.Open("host=127.0.0.1 user=lease dbname=lease"), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
	})
	if err != nil {
		t.Fatalf("open dry-run postgres: %v", err)
	}
	var u domain.User
	sql := lockRow(pg).Find(&u, "id = ?", "c1").Statement.SQL.String()
	if !strings.Contains(sql, "FOR UPDATE") {
		t.Fatalf("postgres read not locked: %q", sql)
	}

	e := newTestEnv(t)
	sqliteTx := e.db.Session(&gorm.Session{DryRun: true})
	sql = lockRow(sqliteTx).Find(&u, "id = ?", "c1").Statement.SQL.String()
	if strings.Contains(sql, "FOR UPDATE") {
		t.Fatalf("sqlite read must not carry a lock clause: %q", sql)
	}
}

func TestStartLeaseRejectsNonCustomer(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	owner := e.mustRegisterUser(t, "Carlos", "carlos@x.com", domain.RoleOwner)
	car := e.mustRegisterCar(t, owner.ID, "Civic")

	_, err := e.leases.StartLease(ctx, owner.ID, car.ID)
	if !errors.Is(err, domain.ErrRoleViolation) {
		t.Fatalf("err = %v, want RoleViolation", err)
	}
	// 消息原样进响应包体，是对外契约
	if err.Error() != "Only CUSTOMERS can start leases." {
		t.Fatalf("message = %q", err.Error())
	}
	if got := e.carStatus(t, car.ID); got != domain.CarIdle {
		t.Fatalf("car mutated by rejected lease, status = %s", got)
	}
}

func TestStartLeaseMaxTwoActive(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	owner := e.mustRegisterUser(t, "Carlos", "carlos@x.com", domain.RoleOwner)
	car1 := e.mustRegisterCar(t, owner.ID, "Civic")
	car2 := e.mustRegisterCar(t, owner.ID, "Corolla")
	car3 := e.mustRegisterCar(t, owner.ID, "Swift")
	raj := e.mustRegisterUser(t, "Raj", "raj@x.com", domain.RoleCustomer)

	if _, err := e.leases.StartLease(ctx, raj.ID, car1.ID); err != nil {
		t.Fatalf("lease 1: %v", err)
	}
	if _, err := e.leases.StartLease(ctx, raj.ID, car2.ID); err != nil {
		t.Fatalf("lease 2: %v", err)
	}

	_, err := e.leases.StartLease(ctx, raj.ID, car3.ID)
	if !errors.Is(err, domain.ErrBusinessRule) {
		t.Fatalf("third lease err = %v, want BusinessRuleViolation", err)
	}
	if err.Error() != "Customer already has 2 active leases." {
		t.Fatalf("message = %q", err.Error())
	}
	// 被拒的第三次操作不应留下任何痕迹
	if got := e.carStatus(t, car3.ID); got != domain.CarIdle {
		t.Fatalf("car3 mutated by rejected lease, status = %s", got)
	}
	if n := e.activeLeaseCount(t, car3.ID); n != 0 {
		t.Fatalf("car3 active leases = %d, want 0", n)
	}
}

func TestStartLeaseCarUnavailable(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	owner := e.mustRegisterUser(t, "Carlos", "carlos@x.com", domain.RoleOwner)
	car := e.mustRegisterCar(t, owner.ID, "Civic")
	raj := e.mustRegisterUser(t, "Raj", "raj@x.com", domain.RoleCustomer)
	emily := e.mustRegisterUser(t, "Emily", "emily@x.com", domain.RoleCustomer)

	if _, err := e.leases.StartLease(ctx, raj.ID, car.ID); err != nil {
		t.Fatalf("first lease: %v", err)
	}
	_, err := e.leases.StartLease(ctx, emily.ID, car.ID)
	if !errors.Is(err, domain.ErrBusinessRule) {
		t.Fatalf("err = %v, want BusinessRuleViolation", err)
	}
	if err.Error() != "Car is not available for lease." {
		t.Fatalf("message = %q", err.Error())
	}
	// 同一辆车至多一条在租租约
	if n := e.activeLeaseCount(t, car.ID); n != 1 {
		t.Fatalf("active leases on car = %d, want 1", n)
	}
}

func TestStartLeaseNotFound(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	owner := e.mustRegisterUser(t, "Carlos", "carlos@x.com", domain.RoleOwner)
	car := e.mustRegisterCar(t, owner.ID, "Civic")
	raj := e.mustRegisterUser(t, "Raj", "raj@x.com", domain.RoleCustomer)

	if _, err := e.leases.StartLease(ctx, "no-such-customer", car.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("unknown customer err = %v, want NotFound", err)
	}
	if _, err := e.leases.StartLease(ctx, raj.ID, "no-such-car"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("unknown car err = %v, want NotFound", err)
	}
}

func TestEndLeaseAlreadyEnded(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	owner := e.mustRegisterUser(t, "Carlos", "carlos@x.com", domain.RoleOwner)
	car := e.mustRegisterCar(t, owner.ID, "Civic")
	raj := e.mustRegisterUser(t, "Raj", "raj@x.com", domain.RoleCustomer)

	lease, err := e.leases.StartLease(ctx, raj.ID, car.ID)
	if err != nil {
		t.Fatalf("StartLease: %v", err)
	}
	if _, err := e.leases.EndLease(ctx, lease.ID); err != nil {
		t.Fatalf("EndLease: %v", err)
	}

	_, err = e.leases.EndLease(ctx, lease.ID)
	if !errors.Is(err, domain.ErrBusinessRule) {
		t.Fatalf("double end err = %v, want BusinessRuleViolation", err)
	}
	if err.Error() != "Lease already ended." {
		t.Fatalf("message = %q", err.Error())
	}
}

func TestEndLeaseForCustomerOwnership(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	owner := e.mustRegisterUser(t, "Carlos", "carlos@x.com", domain.RoleOwner)
	car := e.mustRegisterCar(t, owner.ID, "Civic")
	raj := e.mustRegisterUser(t, "Raj", "raj@x.com", domain.RoleCustomer)
	emily := e.mustRegisterUser(t, "Emily", "emily@x.com", domain.RoleCustomer)

	lease, err := e.leases.StartLease(ctx, raj.ID, car.ID)
	if err != nil {
		t.Fatalf("StartLease: %v", err)
	}

	if _, err := e.leases.EndLeaseForCustomer(ctx, emily.ID, lease.ID); !errors.Is(err, domain.ErrBusinessRule) {
		t.Fatalf("foreign end err = %v, want BusinessRuleViolation", err)
	}
	// 别人的退租请求不得改变租约
	if got := e.carStatus(t, car.ID); got != domain.CarOnLease {
		t.Fatalf("car status = %s, want ON_LEASE", got)
	}

	if _, err := e.leases.EndLeaseForCustomer(ctx, raj.ID, lease.ID); err != nil {
		t.Fatalf("own end: %v", err)
	}
	if got := e.carStatus(t, car.ID); got != domain.CarIdle {
		t.Fatalf("car status after own end = %s, want IDLE", got)
	}
}

func TestLeaseHistoryQueries(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	owner := e.mustRegisterUser(t, "Carlos", "carlos@x.com", domain.RoleOwner)
	car := e.mustRegisterCar(t, owner.ID, "Civic")
	raj := e.mustRegisterUser(t, "Raj", "raj@x.com", domain.RoleCustomer)

	lease, err := e.leases.StartLease(ctx, raj.ID, car.ID)
	if err != nil {
		t.Fatalf("StartLease: %v", err)
	}
	if _, err := e.leases.EndLease(ctx, lease.ID); err != nil {
		t.Fatalf("EndLease: %v", err)
	}
	if _, err := e.leases.StartLease(ctx, raj.ID, car.ID); err != nil {
		t.Fatalf("restart: %v", err)
	}

	byCustomer, err := e.leases.GetLeasesByCustomer(ctx, raj.ID)
	if err != nil {
		t.Fatalf("GetLeasesByCustomer: %v", err)
	}
	if len(byCustomer) != 2 {
		t.Fatalf("customer lease history = %d entries, want 2", len(byCustomer))
	}
	if byCustomer[0].Customer == nil || byCustomer[0].Customer.Email != "raj@x.com" {
		t.Fatalf("history not preloaded with customer")
	}

	byCar, err := e.leases.GetLeasesByCar(ctx, car.ID)
	if err != nil {
		t.Fatalf("GetLeasesByCar: %v", err)
	}
	if len(byCar) != 2 {
		t.Fatalf("car lease history = %d entries, want 2", len(byCar))
	}
}
