package presenter

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/afisha-analytics/internal/domain"
	"github.com/vfg2006/afisha-analytics/pkg/utils"
)

func sampleReport() *domain.Report {
	return &domain.Report{
		ID:          "abc123",
		Fingerprint: "fp",
		GeneratedAt: time.Date(2018, 6, 1, 3, 0, 0, 0, time.UTC),
		Summary: domain.ReportSummary{
			Visits:       4,
			Orders:       5,
			CostRecords:  4,
			Users:        3,
			Buyers:       4,
			TotalRevenue: decimal.RequireFromString("28"),
			TotalCosts:   decimal.RequireFromString("53"),
		},
		Activity: domain.ActivityReport{
			DAU:     utils.Float(1.3333),
			Devices: []domain.DeviceUsage{{Device: domain.DeviceDesktop, Sessions: 3, Users: 3}},
		},
		Sessions: domain.SessionReport{
			DurationHistogram: []domain.HistogramBin{
				{Lower: 0, Upper: 10, Count: 2},
				{Lower: 10, Upper: 20, Count: 0},
			},
		},
		Orders: domain.OrdersReport{
			Monthly: []domain.MonthlyOrders{{Month: "2017-06", Orders: 2, Buyers: 2, OrdersPerBuyer: utils.Float(1)}},
		},
		LTV: domain.LTVReport{
			Cohorts: []domain.Cohort{{Month: "2017-06", Buyers: 2, Revenue: decimal.RequireFromString("14"), CumulativeLTV: utils.Float(7)}},
			Pivot: domain.PivotTable{
				Title:   "LTV",
				Index:   "first_order_month",
				Column:  "age",
				Columns: []string{"0", "1"},
				Rows:    []domain.PivotRow{{Label: "2017-06", Values: []*float64{utils.Float(7), nil}}},
			},
		},
		Acquisition: domain.AcquisitionReport{
			CACBySource: []domain.SourceCAC{{SourceID: 1, CAC: 23}},
			TotalCosts:  decimal.RequireFromString("53"),
		},
	}
}

func TestRenderSection(t *testing.T) {
	tests := []struct {
		name     string
		section  string
		contains []string
		excludes []string
	}{
		{
			name:     "Resumo com ROMI indefinido",
			section:  SectionSummary,
			contains: []string{"abc123", "28.00", "53.00", "ROMI geral"},
		},
		{
			name:     "Atividade com valores arredondados",
			section:  SectionActivity,
			contains: []string{"DAU", "1.33", "desktop"},
		},
		{
			name:     "Sessões omitem faixas vazias",
			section:  SectionSessions,
			contains: []string{"[0.0, 10.0)"},
			excludes: []string{"[10.0, 20.0)"},
		},
		{
			name:     "LTV com célula ausente",
			section:  SectionLTV,
			contains: []string{"first_order_month \\ age", "7.00", "-"},
		},
		{
			name:     "Aquisição lista CAC por fonte",
			section:  SectionAcquisition,
			contains: []string{"23.00"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, RenderSection(&buf, sampleReport(), tt.section))

			out := buf.String()
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestRenderSection_Undefined(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderSection(&buf, sampleReport(), SectionSummary))

	for _, line := range strings.Split(buf.String(), "\n") {
		if strings.HasPrefix(line, "ROMI geral") {
			assert.True(t, strings.HasSuffix(strings.TrimSpace(line), "-"))
		}
	}
}

func TestRenderSection_Unknown(t *testing.T) {
	err := RenderSection(&bytes.Buffer{}, sampleReport(), "charts")
	assert.True(t, errors.Is(err, ErrUnknownSection))
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleReport()))

	out := buf.String()
	for _, header := range []string{"== Resumo ==", "== Atividade ==", "== Sessões ==", "== Conversão ==", "== Pedidos ==", "== LTV ==", "== Aquisição =="} {
		assert.Contains(t, out, header)
	}
}
