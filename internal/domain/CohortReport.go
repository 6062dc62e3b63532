package domain

import "github.com/shopspring/decimal"

// CohortCell representa uma célula coorte x idade
type CohortCell struct {
	CohortMonth string          `json:"cohort_month"`
	OrderMonth  string          `json:"order_month"`
	Age         int             `json:"age"`
	Buyers      int             `json:"buyers"`
	Revenue     decimal.Decimal `json:"revenue"`
	LTV         *float64        `json:"ltv"`
}

// Cohort representa os compradores que fizeram o primeiro pedido no mesmo mês
type Cohort struct {
	Month         string          `json:"month"`
	Buyers        int             `json:"buyers"`
	Revenue       decimal.Decimal `json:"revenue"`
	CumulativeLTV *float64        `json:"cumulative_ltv"`
}

type LTVReport struct {
	Cohorts []Cohort     `json:"cohorts"`
	Cells   []CohortCell `json:"cells"`
	Pivot   PivotTable   `json:"pivot"`
}
