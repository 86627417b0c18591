package domain

import (
	"testing"
	"time"
)

func TestParseRole(t *testing.T) {
	cases := []struct {
		in   string
		want Role
		ok   bool
	}{
		{"ADMIN", RoleAdmin, true},
		{"OWNER", RoleOwner, true},
		{"CUSTOMER", RoleCustomer, true},
		{"", RoleCustomer, true}, // 缺省角色
		{"admin", "", false},     // 大小写敏感
		{"SUPERUSER", "", false},
	}
	for _, c := range cases {
		got, ok := ParseRole(c.in)
		if ok != c.ok || got != c.want {
			t.Fatalf("ParseRole(%q) = (%q, %v), want (%q, %v)", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestParseCarStatus(t *testing.T) {
	if _, ok := ParseCarStatus("IDLE"); !ok {
		t.Fatalf("IDLE should parse")
	}
	if _, ok := ParseCarStatus("ON_LEASE"); !ok {
		t.Fatalf("ON_LEASE should parse")
	}
	if _, ok := ParseCarStatus("PARKED"); ok {
		t.Fatalf("PARKED should not parse")
	}
}

func TestLeaseActive(t *testing.T) {
	l := &Lease{}
	if !l.Active() {
		t.Fatalf("lease without end date should be active")
	}
	now := time.Now()
	l.EndDate = &now
	if l.Active() {
		t.Fatalf("ended lease should not be active")
	}
	var nilLease *Lease
	if nilLease.Active() {
		t.Fatalf("nil lease should not be active")
	}
}
