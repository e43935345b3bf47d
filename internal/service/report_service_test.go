package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"backend/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

type stubTenantRepo struct {
	tenant *model.Tenant
	err    error
}

func (s *stubTenantRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Tenant, error) {
	return s.tenant, s.err
}

func (s *stubTenantRepo) FindBySlug(ctx context.Context, slug string) (*model.Tenant, error) {
	return s.tenant, s.err
}

type stubTxnRepo struct {
	sales    model.SalesSummary
	refunds  model.RefundSummary
	fees     int64
	balance  model.BalanceSnapshot
	salesErr error
}

func (s *stubTxnRepo) List(ctx context.Context, tenantID uuid.UUID, txType, status string, page, limit int) ([]model.Transaction, int64, error) {
	return nil, 0, nil
}

func (s *stubTxnRepo) SummarizeSales(ctx context.Context, tenantID uuid.UUID, start, end time.Time) (model.SalesSummary, error) {
	return s.sales, s.salesErr
}

func (s *stubTxnRepo) SummarizeRefunds(ctx context.Context, tenantID uuid.UUID, start, end time.Time) (model.RefundSummary, error) {
	return s.refunds, nil
}

func (s *stubTxnRepo) SumFees(ctx context.Context, tenantID uuid.UUID, start, end time.Time) (int64, error) {
	return s.fees, nil
}

func (s *stubTxnRepo) LatestBalance(ctx context.Context, tenantID uuid.UUID) (model.BalanceSnapshot, error) {
	return s.balance, nil
}

func TestResolveQuarter(t *testing.T) {
	tests := []struct {
		quarter string
		start   time.Time
		lastDay time.Time
	}{
		{"2026-Q1", time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, time.September, 30, 0, 0, 0, 0, time.UTC)},
		{"2026-Q2", time.Date(2025, time.October, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC)},
		{"2026-Q3", time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, time.March, 31, 0, 0, 0, 0, time.UTC)},
		{"2026-Q4", time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, time.June, 30, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.quarter, func(t *testing.T) {
			start, end, err := ResolveQuarter(tt.quarter)
			require.NoError(t, err)

			assert.Equal(t, tt.start, start)
			// end is the last instant of the quarter's final day
			assert.Equal(t, tt.lastDay.Year(), end.Year())
			assert.Equal(t, tt.lastDay.Month(), end.Month())
			assert.Equal(t, tt.lastDay.Day(), end.Day())
			assert.True(t, end.Before(start.AddDate(0, 3, 0)))
		})
	}

	for _, bad := range []string{"", "2026", "2026-Q5", "2026-Q0", "Q1-2026", "1999-Q1", "202a-Q1", "2026-Qx"} {
		t.Run("rejects "+bad, func(t *testing.T) {
			_, _, err := ResolveQuarter(bad)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestExtractGST(t *testing.T) {
	// standard 10% rate: 1/11 of the gross
	assert.Equal(t, int64(1000), extractGST(11000, 10))
	assert.Equal(t, int64(0), extractGST(0, 10))
	assert.Equal(t, int64(0), extractGST(11000, 0))
	assert.Equal(t, int64(91), extractGST(999, 10))
}

func TestQuarterlyGST(t *testing.T) {
	tenantID := uuid.New()
	registered := &model.Tenant{ID: tenantID, GSTRegistered: true, GSTRate: 10}

	t.Run("extracts collected, paid and net GST", func(t *testing.T) {
		svc := NewReportService(
			&stubTenantRepo{tenant: registered},
			&stubTxnRepo{
				sales:   model.SalesSummary{SalesCount: 12, GrossCents: 110000},
				refunds: model.RefundSummary{RefundCount: 2, AmountCents: 22000},
			},
		)

		report, err := svc.QuarterlyGST(context.Background(), tenantID, "2026-Q1")
		require.NoError(t, err)

		assert.Equal(t, "2026-Q1", report.Quarter)
		assert.Equal(t, int64(110000), report.SalesGrossCents)
		assert.Equal(t, int64(10000), report.GSTCollectedCents)
		assert.Equal(t, int64(2000), report.GSTPaidCents)
		assert.Equal(t, int64(8000), report.NetGSTCents)
		assert.Equal(t, "100.00", report.GSTCollected)
		assert.Equal(t, "20.00", report.GSTPaid)
		assert.Equal(t, "80.00", report.NetGST)
	})

	t.Run("unregistered tenant is rejected", func(t *testing.T) {
		svc := NewReportService(
			&stubTenantRepo{tenant: &model.Tenant{ID: tenantID, GSTRegistered: false}},
			&stubTxnRepo{},
		)

		_, err := svc.QuarterlyGST(context.Background(), tenantID, "2026-Q1")
		assert.ErrorIs(t, err, ErrGSTNotRegistered)
	})

	t.Run("malformed quarter is rejected before any lookup", func(t *testing.T) {
		svc := NewReportService(&stubTenantRepo{}, &stubTxnRepo{})

		_, err := svc.QuarterlyGST(context.Background(), tenantID, "first-quarter")
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("missing tenant maps to not found", func(t *testing.T) {
		svc := NewReportService(&stubTenantRepo{err: gorm.ErrRecordNotFound}, &stubTxnRepo{})

		_, err := svc.QuarterlyGST(context.Background(), tenantID, "2026-Q1")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestExportGSTXLSX(t *testing.T) {
	tenantID := uuid.New()
	svc := NewReportService(
		&stubTenantRepo{tenant: &model.Tenant{ID: tenantID, GSTRegistered: true, GSTRate: 10}},
		&stubTxnRepo{
			sales:   model.SalesSummary{SalesCount: 3, GrossCents: 33000},
			refunds: model.RefundSummary{RefundCount: 1, AmountCents: 11000},
		},
	)

	data, err := svc.ExportGSTXLSX(context.Background(), tenantID, "2026-Q3")
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	sheet := f.GetSheetName(0)
	quarter, err := f.GetCellValue(sheet, "B1")
	require.NoError(t, err)
	assert.Equal(t, "2026-Q3", quarter)

	netGST, err := f.GetCellValue(sheet, "B12")
	require.NoError(t, err)
	assert.Equal(t, "20.00", netGST)
}
