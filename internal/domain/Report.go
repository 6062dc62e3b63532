package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type ReportSummary struct {
	Visits       int             `json:"visits"`
	Orders       int             `json:"orders"`
	CostRecords  int             `json:"cost_records"`
	Users        int             `json:"users"`
	Buyers       int             `json:"buyers"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	TotalCosts   decimal.Decimal `json:"total_costs"`
	OverallROMI  *float64        `json:"overall_romi"`
}

// Report é o resultado completo do pipeline de agregação
type Report struct {
	ID          string            `json:"id"`
	Fingerprint string            `json:"fingerprint"`
	GeneratedAt time.Time         `json:"generated_at"`
	Summary     ReportSummary     `json:"summary"`
	Activity    ActivityReport    `json:"activity"`
	Sessions    SessionReport     `json:"sessions"`
	Conversion  ConversionReport  `json:"conversion"`
	Orders      OrdersReport      `json:"orders"`
	LTV         LTVReport         `json:"ltv"`
	Acquisition AcquisitionReport `json:"acquisition"`
}
