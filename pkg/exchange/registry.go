package exchange

import (
	"sync"

	"github.com/joripage/stockex/pkg/exchange/model"
)

// OrderRegistry owns every order's canonical record, keyed by order id.
// The lock only guards the map. Record fields are mutated exclusively
// inside the engine's per-symbol critical section, and readers take their
// copy-on-read snapshot under that same section (see Exchange.Status).
type OrderRegistry struct {
	mu     sync.RWMutex
	orders map[int64]*model.Order
}

func NewOrderRegistry() *OrderRegistry {
	return &OrderRegistry{
		orders: make(map[int64]*model.Order),
	}
}

func (r *OrderRegistry) Put(order *model.Order) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.orders[order.OrderID] = order
}

// get returns the live record. Callers must hold the order's symbol lock
// before touching mutable fields.
func (r *OrderRegistry) get(orderID int64) (*model.Order, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[orderID]
	return order, ok
}

func (r *OrderRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.orders)
}
