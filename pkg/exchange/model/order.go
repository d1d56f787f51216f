package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending           OrderStatus = "PENDING"
	OrderStatusPartiallyExecuted OrderStatus = "PARTIALLY_EXECUTED"
	OrderStatusExecuted          OrderStatus = "EXECUTED"
	OrderStatusCancelled         OrderStatus = "CANCELLED"
)

type OrderSide string

const (
	OrderSideBuy  OrderSide = "BUY"
	OrderSideSell OrderSide = "SELL"
)

// Order is the canonical record of a submission. OrderID doubles as the
// arrival sequence. Remaining only ever decreases; Status follows from
// Remaining and whether the order was cancelled.
type Order struct {
	OrderID int64

	// init info
	Symbol    string
	Side      OrderSide
	Price     decimal.Decimal
	Quantity  int64
	CreatedAt time.Time

	// calculated info
	Remaining  int64
	Status     OrderStatus
	Executions []*Execution
	UpdatedAt  time.Time
}

func NewOrder(orderID int64, symbol string, side OrderSide, quantity int64, price decimal.Decimal, now time.Time) *Order {
	return &Order{
		OrderID:   orderID,
		Symbol:    symbol,
		Side:      side,
		Price:     price,
		Quantity:  quantity,
		Remaining: quantity,
		Status:    OrderStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ApplyFill records one execution against the order and moves the status
// along PENDING -> PARTIALLY_EXECUTED -> EXECUTED.
func (o *Order) ApplyFill(ex *Execution) error {
	if ex.Quantity <= 0 {
		return fmt.Errorf("fill qty %d must be positive", ex.Quantity)
	}
	if ex.Quantity > o.Remaining {
		return fmt.Errorf("fill qty %d exceeds remaining %d on order %d", ex.Quantity, o.Remaining, o.OrderID)
	}

	o.Remaining -= ex.Quantity
	o.Executions = append(o.Executions, ex)
	if o.Remaining == 0 {
		o.Status = OrderStatusExecuted
	} else {
		o.Status = OrderStatusPartiallyExecuted
	}
	o.UpdatedAt = ex.ExecutedAt

	return nil
}

// Cancel marks the order CANCELLED. Remaining is left as-is so the record
// still shows how much never traded.
func (o *Order) Cancel(now time.Time) {
	o.Status = OrderStatusCancelled
	o.UpdatedAt = now
}

func (o *Order) CanCancel() bool {
	return o.Status == OrderStatusPending || o.Status == OrderStatusPartiallyExecuted
}

func (o *Order) IsEnd() bool {
	return o.Status == OrderStatusExecuted || o.Status == OrderStatusCancelled
}

// Clone returns a snapshot safe to hand to readers. Executions are
// immutable, so sharing the pointed-to records is fine.
func (o *Order) Clone() *Order {
	cp := *o
	cp.Executions = make([]*Execution, len(o.Executions))
	copy(cp.Executions, o.Executions)
	return &cp
}
