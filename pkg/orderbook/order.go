package orderbook

type Side string

const (
	BUY  Side = "BUY"
	SELL Side = "SELL"
)

// Order is a resting limit order inside a book. The ID doubles as the
// arrival sequence: ids are issued in submission order, so FIFO position
// inside a price level follows from insertion order alone.
type Order struct {
	ID     int64
	Symbol string
	Side   Side
	Price  float64
	Qty    int64
}
