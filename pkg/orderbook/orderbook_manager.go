package orderbook

import (
	"sync"
)

// OrderBookManager holds one book per symbol. Books for different symbols
// are independent: each has its own lock, so matching on one symbol never
// blocks another.
type OrderBookManager struct {
	books sync.Map
}

func NewOrderBookManager() *OrderBookManager {
	return &OrderBookManager{
		books: sync.Map{},
	}
}

func (s *OrderBookManager) AddOrder(order *Order) []MatchResult {
	book := s.getOrCreateBook(order.Symbol)
	return book.addOrder(order)
}

func (s *OrderBookManager) CancelOrder(symbol string, orderID int64) error {
	book := s.getOrCreateBook(symbol)
	if !book.cancelOrder(orderID) {
		return errOrderNotFound
	}
	return nil
}

// BestOpposite exposes the price/id an incoming order on the given side
// would match against first.
func (s *OrderBookManager) BestOpposite(symbol string, side Side) (float64, int64, bool) {
	book := s.getOrCreateBook(symbol)
	return book.bestOpposite(side)
}

// PeekFront returns the highest-priority resting order on a side.
func (s *OrderBookManager) PeekFront(symbol string, side Side) (Order, bool) {
	book := s.getOrCreateBook(symbol)
	return book.peekFront(side)
}

// PopFront removes and returns the highest-priority resting order on a side.
func (s *OrderBookManager) PopFront(symbol string, side Side) (Order, bool) {
	book := s.getOrCreateBook(symbol)
	return book.popFront(side)
}

// RestingQty reports the quantity still resting in the book for an order.
func (s *OrderBookManager) RestingQty(symbol string, orderID int64) int64 {
	book := s.getOrCreateBook(symbol)
	return book.restingQty(orderID)
}

func (s *OrderBookManager) getOrCreateBook(symbol string) *orderBook {
	if val, ok := s.books.Load(symbol); ok {
		return val.(*orderBook)
	}

	book := newOrderBook(symbol)
	actual, _ := s.books.LoadOrStore(symbol, book)
	return actual.(*orderBook)
}
