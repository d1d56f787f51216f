package exchange

import (
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/joripage/stockex/pkg/exchange/model"
)

// SymbolSeed is the static reference-price entry for one listed symbol.
// Seeds come from configuration and are not mutated by trading.
type SymbolSeed struct {
	Symbol       string
	Price        decimal.Decimal
	AveragePrice decimal.Decimal
}

// SymbolInfo is a point-in-time view of a symbol's ledger, as served by the
// info query and cached by the optional info cache.
type SymbolInfo struct {
	Symbol       string          `json:"symbol"`
	AveragePrice decimal.Decimal `json:"averagePrice"`
	LastPrice    decimal.Decimal `json:"lastPrice"`
	Executions   []ExecutionInfo `json:"executions"`
}

type ExecutionInfo struct {
	Shares int64           `json:"shares"`
	Price  decimal.Decimal `json:"price"`
}

type symbolLedger struct {
	symbol       string
	averagePrice decimal.Decimal
	lastPrice    decimal.Decimal
	executions   []*model.Execution
}

// Ledger keeps the per-symbol rolling view: seeded reference prices plus the
// chronological execution history. It only ever grows.
type Ledger struct {
	mu      sync.RWMutex
	symbols map[string]*symbolLedger
}

func NewLedger(seeds []SymbolSeed) *Ledger {
	l := &Ledger{
		symbols: make(map[string]*symbolLedger),
	}
	for _, seed := range seeds {
		l.symbols[seed.Symbol] = &symbolLedger{
			symbol:       seed.Symbol,
			averagePrice: seed.AveragePrice,
			lastPrice:    seed.Price,
		}
	}
	return l
}

func (l *Ledger) HasSymbol(symbol string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()

	_, ok := l.symbols[symbol]
	return ok
}

func (l *Ledger) Append(ex *model.Execution) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.symbols[ex.Symbol]
	if !ok {
		return fmt.Errorf("ledger append: symbol %s not listed", ex.Symbol)
	}
	entry.executions = append(entry.executions, ex)
	entry.lastPrice = ex.Price

	return nil
}

// Snapshot returns the current view for a symbol. ok is false when the
// symbol is not listed. The executions slice is copied, so the snapshot is
// stable while trading continues.
func (l *Ledger) Snapshot(symbol string) (*SymbolInfo, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	entry, ok := l.symbols[symbol]
	if !ok {
		return nil, false
	}

	info := &SymbolInfo{
		Symbol:       symbol,
		AveragePrice: entry.averagePrice,
		LastPrice:    entry.lastPrice,
		Executions:   make([]ExecutionInfo, 0, len(entry.executions)),
	}
	for _, ex := range entry.executions {
		info.Executions = append(info.Executions, ExecutionInfo{
			Shares: ex.Quantity,
			Price:  ex.Price,
		})
	}

	return info, true
}

// ExecutionCount reports how many executions the symbol has recorded.
func (l *Ledger) ExecutionCount(symbol string) int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	entry, ok := l.symbols[symbol]
	if !ok {
		return 0
	}
	return len(entry.executions)
}
