package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Execution is one fill between a buy and a sell order. Immutable once
// created; shared by both orders' execution lists and the symbol ledger.
// Price is the resting order's limit at match time.
type Execution struct {
	ID          string
	Symbol      string
	BuyOrderID  int64
	SellOrderID int64
	Price       decimal.Decimal
	Quantity    int64
	ExecutedAt  time.Time
}
