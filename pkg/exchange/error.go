package exchange

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidOrder rejects non-positive quantity/price or a malformed side.
	ErrInvalidOrder = errors.New("invalid order")
	// ErrUnknownSymbol rejects symbols outside the configured universe.
	ErrUnknownSymbol = errors.New("unknown symbol")
	// ErrNotFound covers status lookups for ids never issued and info
	// queries for symbols without executions.
	ErrNotFound = errors.New("not found")
	// ErrInternal flags an invariant violation. The submission that hit it
	// is aborted without committing partial state.
	ErrInternal = errors.New("internal error")
)

func errCounterOrderMissing(orderID int64) error {
	return fmt.Errorf("counter order %d not in registry", orderID)
}

func errOverfill(orderID, qty, remaining int64) error {
	return fmt.Errorf("fill qty %d exceeds remaining %d on order %d", qty, remaining, orderID)
}
