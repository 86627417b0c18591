package service

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"car-lease-service/internal/domain"
)

func TestExportCSV(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	export := NewExportService(e.leases, zap.NewNop())

	owner := e.mustRegisterUser(t, "Carlos", "carlos@x.com", domain.RoleOwner)
	civic := e.mustRegisterCar(t, owner.ID, "Civic")
	corolla := e.mustRegisterCar(t, owner.ID, "Corolla")
	raj := e.mustRegisterUser(t, "Raj", "raj@x.com", domain.RoleCustomer)

	ongoing, err := e.leases.StartLease(ctx, raj.ID, civic.ID)
	if err != nil {
		t.Fatalf("StartLease: %v", err)
	}
	ended, err := e.leases.StartLease(ctx, raj.ID, corolla.ID)
	if err != nil {
		t.Fatalf("StartLease 2: %v", err)
	}
	if _, err := e.leases.EndLease(ctx, ended.ID); err != nil {
		t.Fatalf("EndLease: %v", err)
	}

	var buf bytes.Buffer
	if err := export.WriteCSV(ctx, &buf); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("csv lines = %d, want header + 2 rows", len(lines))
	}
	if lines[0] != "LeaseID,CarModel,CustomerEmail,StartDate,EndDate" {
		t.Fatalf("csv header = %q", lines[0])
	}

	today := time.Now().Format("2006-01-02")
	var sawOngoing, sawEnded bool
	for _, line := range lines[1:] {
		switch {
		case strings.HasPrefix(line, ongoing.ID+","):
			sawOngoing = true
			if !strings.HasSuffix(line, ",ONGOING") {
				t.Fatalf("active lease row = %q, want ONGOING end date", line)
			}
		case strings.HasPrefix(line, ended.ID+","):
			sawEnded = true
			if !strings.HasSuffix(line, ","+today) {
				t.Fatalf("ended lease row = %q, want end date %s", line, today)
			}
		}
		if !strings.Contains(line, "raj@x.com") {
			t.Fatalf("row missing customer email: %q", line)
		}
	}
	if !sawOngoing || !sawEnded {
		t.Fatalf("rows missing: ongoing=%v ended=%v", sawOngoing, sawEnded)
	}
}

func TestExportPDF(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	export := NewExportService(e.leases, zap.NewNop())

	owner := e.mustRegisterUser(t, "Carlos", "carlos@x.com", domain.RoleOwner)
	car := e.mustRegisterCar(t, owner.ID, "Civic")
	raj := e.mustRegisterUser(t, "Raj", "raj@x.com", domain.RoleCustomer)
	if _, err := e.leases.StartLease(ctx, raj.ID, car.ID); err != nil {
		t.Fatalf("StartLease: %v", err)
	}

	var buf bytes.Buffer
	if err := export.WritePDF(ctx, &buf); err != nil {
		t.Fatalf("WritePDF: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Fatalf("output is not a pdf, starts with %q", buf.Bytes()[:8])
	}
}

func TestEndDateOrOngoing(t *testing.T) {
	if got := endDateOrOngoing(nil); got != "ONGOING" {
		t.Fatalf("nil end date = %q, want ONGOING", got)
	}
	d := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	if got := endDateOrOngoing(&d); got != "2026-08-31" {
		t.Fatalf("end date = %q, want 2026-08-31", got)
	}
}
