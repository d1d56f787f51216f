package exchange

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/joripage/stockex/pkg/exchange/model"
	"github.com/joripage/stockex/pkg/orderbook"
)

// Exchange is the matching engine. It owns the sequencer, the order
// registry, the symbol ledger and the per-symbol books; all trading state
// hangs off this instance, there are no package globals.
//
// Submission for one symbol is a single critical section: id assignment,
// the crossing loop, registry updates and ledger appends happen under that
// symbol's lock, so callers observe a submission either fully applied or
// not at all. Different symbols proceed independently.
type Exchange struct {
	seq      *Sequencer
	registry *OrderRegistry
	ledger   *Ledger
	books    *orderbook.OrderBookManager
	cache    InfoCache

	symbolLocks sync.Map // symbol -> *sync.Mutex
}

// NewExchange builds an engine for the given symbol universe. cache may be
// nil to run without an info cache.
func NewExchange(seeds []SymbolSeed, cache InfoCache) *Exchange {
	return &Exchange{
		seq:      NewSequencer(),
		registry: NewOrderRegistry(),
		ledger:   NewLedger(seeds),
		books:    orderbook.NewOrderBookManager(),
		cache:    cache,
	}
}

// Buy submits a bid. Returns the assigned order id.
func (e *Exchange) Buy(ctx context.Context, symbol string, shares int64, bid decimal.Decimal) (int64, error) {
	return e.submit(ctx, symbol, model.OrderSideBuy, shares, bid)
}

// Sell submits an ask. Returns the assigned order id.
func (e *Exchange) Sell(ctx context.Context, symbol string, shares int64, ask decimal.Decimal) (int64, error) {
	return e.submit(ctx, symbol, model.OrderSideSell, shares, ask)
}

func (e *Exchange) submit(ctx context.Context, symbol string, side model.OrderSide, shares int64, price decimal.Decimal) (int64, error) {
	symbol = normalizeSymbol(symbol)
	if shares <= 0 || price.LessThanOrEqual(decimal.Zero) {
		return 0, ErrInvalidOrder
	}
	if !e.ledger.HasSymbol(symbol) {
		return 0, ErrUnknownSymbol
	}

	mu := e.symbolLock(symbol)
	mu.Lock()
	defer mu.Unlock()

	now := time.Now()
	orderID := e.seq.Next()
	order := model.NewOrder(orderID, symbol, side, shares, price, now)

	results := e.books.AddOrder(&orderbook.Order{
		ID:     orderID,
		Symbol: symbol,
		Side:   orderbook.Side(side),
		Price:  price.InexactFloat64(),
		Qty:    shares,
	})

	executions, counters, err := e.buildExecutions(order, results, now)
	if err != nil {
		zap.S().Errorw("submit aborted", "order_id", orderID, "symbol", symbol, "err", err)
		return 0, ErrInternal
	}

	// past this point nothing can fail; commit fills to both sides and the
	// ledger, then register the incoming order
	for i, ex := range executions {
		_ = counters[i].ApplyFill(ex)
		_ = order.ApplyFill(ex)
		_ = e.ledger.Append(ex)
	}
	e.registry.Put(order)

	if e.cache != nil && len(executions) > 0 {
		if err := e.cache.InvalidateInfo(ctx, symbol); err != nil {
			zap.S().Debugw("info cache invalidate failed", "symbol", symbol, "err", err)
		}
	}

	return orderID, nil
}

// buildExecutions validates every match result before anything is applied,
// so a violated invariant aborts the submission with no partial state.
func (e *Exchange) buildExecutions(incoming *model.Order, results []orderbook.MatchResult, now time.Time) ([]*model.Execution, []*model.Order, error) {
	var (
		executions []*model.Execution
		counters   []*model.Order
		pending    = map[int64]int64{} // counter order id -> qty already claimed
		incomingQ  int64
	)

	for _, r := range results {
		counterID := r.SellOrderID
		if incoming.Side == model.OrderSideSell {
			counterID = r.BuyOrderID
		}

		counter, ok := e.registry.get(counterID)
		if !ok {
			return nil, nil, errCounterOrderMissing(counterID)
		}
		if r.Qty <= 0 || r.Qty > counter.Remaining-pending[counterID] {
			return nil, nil, errOverfill(counterID, r.Qty, counter.Remaining)
		}
		if incomingQ+r.Qty > incoming.Quantity {
			return nil, nil, errOverfill(incoming.OrderID, r.Qty, incoming.Quantity-incomingQ)
		}
		pending[counterID] += r.Qty
		incomingQ += r.Qty

		executions = append(executions, &model.Execution{
			ID:          uuid.NewString(),
			Symbol:      incoming.Symbol,
			BuyOrderID:  r.BuyOrderID,
			SellOrderID: r.SellOrderID,
			Price:       decimal.NewFromFloat(r.Price),
			Quantity:    r.Qty,
			ExecutedAt:  now,
		})
		counters = append(counters, counter)
	}

	return executions, counters, nil
}

// Cancel moves a PENDING or PARTIALLY_EXECUTED order to CANCELLED and pulls
// it out of its book. The registry record is kept for status queries.
func (e *Exchange) Cancel(ctx context.Context, orderID int64) error {
	order, ok := e.registry.get(orderID)
	if !ok {
		return ErrNotFound
	}

	mu := e.symbolLock(order.Symbol)
	mu.Lock()
	defer mu.Unlock()

	if !order.CanCancel() {
		return ErrInvalidOrder
	}
	if err := e.books.CancelOrder(order.Symbol, orderID); err != nil {
		// registry says resting, book disagrees
		zap.S().Errorw("cancel: book out of sync", "order_id", orderID, "err", err)
		return ErrInternal
	}
	order.Cancel(time.Now())

	return nil
}

// Status returns a consistent snapshot of the order, or ErrNotFound for an
// id never issued.
func (e *Exchange) Status(ctx context.Context, orderID int64) (*model.Order, error) {
	order, ok := e.registry.get(orderID)
	if !ok {
		return nil, ErrNotFound
	}

	// snapshot under the symbol lock so a concurrent match on this symbol
	// is seen fully applied or not at all
	mu := e.symbolLock(order.Symbol)
	mu.Lock()
	defer mu.Unlock()

	return order.Clone(), nil
}

// Info returns the symbol's reference average price and execution history.
// ErrNotFound covers both an unlisted symbol and a listed one that has not
// traded yet.
func (e *Exchange) Info(ctx context.Context, symbol string) (*SymbolInfo, error) {
	symbol = normalizeSymbol(symbol)

	if e.cache != nil {
		if info, err := e.cache.GetInfo(ctx, symbol); err == nil && info != nil {
			return info, nil
		}
	}

	info, ok := e.ledger.Snapshot(symbol)
	if !ok || len(info.Executions) == 0 {
		return nil, ErrNotFound
	}

	if e.cache != nil {
		if err := e.cache.SetInfo(ctx, symbol, info); err != nil {
			zap.S().Debugw("info cache set failed", "symbol", symbol, "err", err)
		}
	}

	return info, nil
}

func (e *Exchange) symbolLock(symbol string) *sync.Mutex {
	if mu, ok := e.symbolLocks.Load(symbol); ok {
		return mu.(*sync.Mutex)
	}
	mu, _ := e.symbolLocks.LoadOrStore(symbol, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

func normalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}
