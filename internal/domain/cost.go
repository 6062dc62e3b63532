package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cost representa o gasto diário de marketing de uma fonte de tráfego
type Cost struct {
	SourceID SourceID        `json:"source_id"`
	Date     time.Time       `json:"dt"`
	Amount   decimal.Decimal `json:"costs"`
}
