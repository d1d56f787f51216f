package orderbook

// MatchResult is one fill produced by the crossing loop. Price is always
// the resting order's limit (maker price).
type MatchResult struct {
	BuyOrderID  int64
	SellOrderID int64
	Price       float64
	Qty         int64
}
