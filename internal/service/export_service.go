package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"
	"go.uber.org/zap"

	"car-lease-service/internal/domain"
)

const (
	exportDateLayout = "2006-01-02"
	exportOngoing    = "ONGOING" // EndDate 为空时的字面量，导出格式是对外契约
)

// ExportService 租约历史导出（CSV / PDF）。只读投影，不碰核心引擎。
type ExportService struct {
	leases *LeaseService
	log    *zap.Logger
}

func NewExportService(leases *LeaseService, log *zap.Logger) *ExportService {
	return &ExportService{leases: leases, log: log}
}

// WriteCSV 导出 CSV：
// 表头 LeaseID,CarModel,CustomerEmail,StartDate,EndDate，每条租约一行。
func (s *ExportService) WriteCSV(ctx context.Context, w io.Writer) error {
	leases, err := s.leases.GetAllLeases(ctx)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"LeaseID", "CarModel", "CustomerEmail", "StartDate", "EndDate"}); err != nil {
		return err
	}
	for i := range leases {
		l := &leases[i]
		if err := cw.Write([]string{
			l.ID,
			leaseCarModel(l),
			leaseCustomerEmail(l),
			l.StartDate.Format(exportDateLayout),
			endDateOrOngoing(l.EndDate),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WritePDF 导出 PDF：标题 + 生成时间 + 每条租约一行，自动分页。
func (s *ExportService) WritePDF(ctx context.Context, w io.Writer) error {
	leases, err := s.leases.GetAllLeases(ctx)
	if err != nil {
		return err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr("Car Lease Service – Lease History"), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 8, "Generated: "+time.Now().Format(time.RFC3339), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	for i := range leases {
		l := &leases[i]
		line := fmt.Sprintf("Lease ID: %s | Car: %s | Customer: %s | Start: %s | End: %s",
			l.ID,
			leaseCarModel(l),
			leaseCustomerEmail(l),
			l.StartDate.Format(exportDateLayout),
			endDateOrOngoing(l.EndDate),
		)
		pdf.MultiCell(0, 7, tr(line), "", "L", false)
	}

	if err := pdf.Output(w); err != nil {
		s.log.Error("pdf export failed", zap.Error(err))
		return err
	}
	return nil
}

func endDateOrOngoing(t *time.Time) string {
	if t == nil {
		return exportOngoing
	}
	return t.Format(exportDateLayout)
}

func leaseCarModel(l *domain.Lease) string {
	if l.Car == nil {
		return ""
	}
	return l.Car.Model
}

func leaseCustomerEmail(l *domain.Lease) string {
	if l.Customer == nil {
		return ""
	}
	return l.Customer.Email
}
