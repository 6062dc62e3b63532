package domain

import "github.com/shopspring/decimal"

// AcquisitionCell junta uma célula de LTV com o custo de uma fonte no mês do pedido
type AcquisitionCell struct {
	CohortMonth string          `json:"cohort_month"`
	OrderMonth  string          `json:"order_month"`
	Age         int             `json:"age"`
	SourceID    SourceID        `json:"source_id"`
	Buyers      int             `json:"buyers"`
	Costs       decimal.Decimal `json:"costs"`
	LTV         *float64        `json:"ltv"`
	CAC         *float64        `json:"cac"`
	ROMI        *float64        `json:"romi"`
}

type SourceCAC struct {
	SourceID SourceID `json:"source_id"`
	CAC      float64  `json:"cac"`
}

type MonthlyCost struct {
	Month string          `json:"month"`
	Costs decimal.Decimal `json:"costs"`
}

type AcquisitionReport struct {
	Cells        []AcquisitionCell `json:"cells"`
	CACBySource  []SourceCAC       `json:"cac_by_source"`
	CostsByMonth []MonthlyCost     `json:"costs_by_month"`
	ROMIPivot    PivotTable        `json:"romi_pivot"`
	TotalCosts   decimal.Decimal   `json:"total_costs"`
}
