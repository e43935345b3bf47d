package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"backend/internal/model"
	"backend/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ReportService builds quarter-aligned GST/BAS figures from the
// transaction ledger.
type ReportService interface {
	QuarterlyGST(ctx context.Context, tenantID uuid.UUID, quarter string) (model.QuarterlyGSTReport, error)
	ExportGSTXLSX(ctx context.Context, tenantID uuid.UUID, quarter string) ([]byte, error)
}

type reportService struct {
	tenants repository.TenantRepository
	txns    repository.TransactionRepository
}

func NewReportService(tenants repository.TenantRepository, txns repository.TransactionRepository) ReportService {
	return &reportService{tenants: tenants, txns: txns}
}

// ResolveQuarter maps a "YYYY-Qn" identifier to its inclusive date range.
// Quarters follow the Australian financial year, labeled by its ending
// year: 2026-Q1 is 1 Jul 2025 through end of 30 Sep 2025, Q3 and Q4 fall
// in the labeled calendar year. The end bound is the last instant of the
// quarter's final day.
func ResolveQuarter(quarter string) (time.Time, time.Time, error) {
	parts := strings.Split(quarter, "-Q")
	if len(parts) != 2 {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: quarter must look like 2026-Q1", ErrValidation)
	}

	year, err := strconv.Atoi(parts[0])
	if err != nil || year < 2000 || year > 2100 {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: invalid year in quarter %q", ErrValidation, quarter)
	}
	n, err := strconv.Atoi(parts[1])
	if err != nil || n < 1 || n > 4 {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: invalid quarter number in %q", ErrValidation, quarter)
	}

	// Q1 and Q2 sit in the calendar year before the financial year's label
	var start time.Time
	switch n {
	case 1:
		start = time.Date(year-1, time.July, 1, 0, 0, 0, 0, time.UTC)
	case 2:
		start = time.Date(year-1, time.October, 1, 0, 0, 0, 0, time.UTC)
	case 3:
		start = time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	case 4:
		start = time.Date(year, time.April, 1, 0, 0, 0, 0, time.UTC)
	}

	end := start.AddDate(0, 3, 0).Add(-time.Nanosecond)
	return start, end, nil
}

// extractGST takes the GST component out of a GST-inclusive total:
// round(amount * rate / (100 + rate)). With the standard 10% rate this
// is the 1/11 rule.
func extractGST(amountCents, ratePercent int64) int64 {
	if amountCents == 0 || ratePercent <= 0 {
		return 0
	}
	return decimal.NewFromInt(amountCents).
		Mul(decimal.NewFromInt(ratePercent)).
		Div(decimal.NewFromInt(100 + ratePercent)).
		Round(0).
		IntPart()
}

func formatCents(cents int64) string {
	return decimal.NewFromInt(cents).Div(decimal.NewFromInt(100)).StringFixed(2)
}

func (s *reportService) QuarterlyGST(ctx context.Context, tenantID uuid.UUID, quarter string) (model.QuarterlyGSTReport, error) {
	start, end, err := ResolveQuarter(quarter)
	if err != nil {
		return model.QuarterlyGSTReport{}, err
	}

	tenant, err := s.tenants.FindByID(ctx, tenantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.QuarterlyGSTReport{}, fmt.Errorf("%w: tenant", ErrNotFound)
		}
		return model.QuarterlyGSTReport{}, fmt.Errorf("failed to fetch tenant: %w", err)
	}
	if !tenant.GSTRegistered {
		return model.QuarterlyGSTReport{}, ErrGSTNotRegistered
	}

	sales, err := s.txns.SummarizeSales(ctx, tenantID, start, end)
	if err != nil {
		return model.QuarterlyGSTReport{}, fmt.Errorf("failed to summarize sales: %w", err)
	}
	refunds, err := s.txns.SummarizeRefunds(ctx, tenantID, start, end)
	if err != nil {
		return model.QuarterlyGSTReport{}, fmt.Errorf("failed to summarize refunds: %w", err)
	}

	collected := extractGST(sales.GrossCents, tenant.GSTRate)
	paid := extractGST(refunds.AmountCents, tenant.GSTRate)

	return model.QuarterlyGSTReport{
		Quarter:           quarter,
		StartDate:         start,
		EndDate:           end,
		SalesGrossCents:   sales.GrossCents,
		SalesCount:        sales.SalesCount,
		RefundsTotalCents: refunds.AmountCents,
		RefundsCount:      refunds.RefundCount,
		GSTCollectedCents: collected,
		GSTPaidCents:      paid,
		NetGSTCents:       collected - paid,
		GSTCollected:      formatCents(collected),
		GSTPaid:           formatCents(paid),
		NetGST:            formatCents(collected - paid),
	}, nil
}

// ExportGSTXLSX renders the quarterly report as a single-sheet workbook
// for BAS preparation.
func (s *reportService) ExportGSTXLSX(ctx context.Context, tenantID uuid.UUID, quarter string) ([]byte, error) {
	report, err := s.QuarterlyGST(ctx, tenantID, quarter)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"GST Report", report.Quarter},
		{"Period start", report.StartDate.Format("2006-01-02")},
		{"Period end", report.EndDate.Format("2006-01-02")},
		{},
		{"Sales (gross)", formatCents(report.SalesGrossCents)},
		{"Sales count", report.SalesCount},
		{"Refunds total", formatCents(report.RefundsTotalCents)},
		{"Refunds count", report.RefundsCount},
		{},
		{"GST collected", report.GSTCollected},
		{"GST paid", report.GSTPaid},
		{"Net GST", report.NetGST},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write report row: %w", err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}
