package service

import (
	"context"
	"errors"
	"testing"

	"car-lease-service/internal/domain"
)

func TestRegisterCarRequiresOwnerRole(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	customer := e.mustRegisterUser(t, "Raj", "raj@x.com", domain.RoleCustomer)
	if _, err := e.cars.Register(ctx, customer.ID, "Civic"); !errors.Is(err, domain.ErrRoleViolation) {
		t.Fatalf("err = %v, want RoleViolation", err)
	}

	if _, err := e.cars.Register(ctx, "no-such-user", "Civic"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want NotFound", err)
	}
}

func TestRegisterCarStartsIdle(t *testing.T) {
	e := newTestEnv(t)

	owner := e.mustRegisterUser(t, "Carlos", "carlos@x.com", domain.RoleOwner)
	car := e.mustRegisterCar(t, owner.ID, "Civic")
	if car.Status != domain.CarIdle {
		t.Fatalf("status = %s, want IDLE", car.Status)
	}
	if car.Owner == nil || car.Owner.Email != "carlos@x.com" {
		t.Fatalf("owner not attached to registered car")
	}
}

func TestCarListings(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	carlos := e.mustRegisterUser(t, "Carlos", "carlos@x.com", domain.RoleOwner)
	ayesha := e.mustRegisterUser(t, "Ayesha", "ayesha@x.com", domain.RoleOwner)
	raj := e.mustRegisterUser(t, "Raj", "raj@x.com", domain.RoleCustomer)

	civic := e.mustRegisterCar(t, carlos.ID, "Civic")
	e.mustRegisterCar(t, carlos.ID, "Corolla")
	e.mustRegisterCar(t, ayesha.ID, "i20")

	if _, err := e.leases.StartLease(ctx, raj.ID, civic.ID); err != nil {
		t.Fatalf("StartLease: %v", err)
	}

	idle, err := e.cars.ListByStatus(ctx, domain.CarIdle)
	if err != nil {
		t.Fatalf("ListByStatus: %v", err)
	}
	if len(idle) != 2 {
		t.Fatalf("idle cars = %d, want 2", len(idle))
	}

	available, err := e.cars.ListAvailable(ctx)
	if err != nil {
		t.Fatalf("ListAvailable: %v", err)
	}
	if len(available) != 2 {
		t.Fatalf("available cars = %d, want 2", len(available))
	}

	mine, err := e.cars.ListByOwner(ctx, carlos.ID)
	if err != nil {
		t.Fatalf("ListByOwner: %v", err)
	}
	if len(mine) != 2 {
		t.Fatalf("owner cars = %d, want 2", len(mine))
	}

	all, err := e.cars.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("all cars = %d, want 3", len(all))
	}
}
