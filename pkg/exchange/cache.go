package exchange

import "context"

// InfoCache is an optional read cache for info-query snapshots. The engine
// never depends on it for correctness: entries are invalidated after every
// execution and repopulated on the next query.
type InfoCache interface {
	GetInfo(ctx context.Context, symbol string) (*SymbolInfo, error)
	SetInfo(ctx context.Context, symbol string, info *SymbolInfo) error
	InvalidateInfo(ctx context.Context, symbol string) error
}
