package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order representa um pedido realizado por um usuário
type Order struct {
	UserID  UserID          `json:"uid"`
	BuyTs   time.Time       `json:"buy_ts"`
	Revenue decimal.Decimal `json:"revenue"`
}
