package orderbook

import (
	"container/heap"
	"sync"

	"github.com/gammazero/deque"
)

type orderBook struct {
	symbol string

	bids map[float64]*deque.Deque[*Order]
	asks map[float64]*deque.Deque[*Order]

	bidHeap *PriceHeap
	askHeap *PriceHeap

	ordersByID map[int64]*Order

	mu sync.Mutex
}

func newOrderBook(symbol string) *orderBook {
	bidHeap := NewPriceHeap(func(i, j float64) bool { return i > j }) // Max-heap
	askHeap := NewPriceHeap(func(i, j float64) bool { return i < j }) // Min-heap

	ob := &orderBook{
		symbol:     symbol,
		bids:       make(map[float64]*deque.Deque[*Order]),
		asks:       make(map[float64]*deque.Deque[*Order]),
		bidHeap:    bidHeap,
		askHeap:    askHeap,
		ordersByID: make(map[int64]*Order),
	}

	return ob
}

// addOrder runs the crossing loop for a limit order and rests any unfilled
// remainder. Results are returned in match order.
func (ob *orderBook) addOrder(order *Order) []MatchResult {
	ob.mu.Lock()
	defer ob.mu.Unlock()

	return ob.executeLimit(order)
}

func (ob *orderBook) executeLimit(order *Order) []MatchResult {
	var sideBook, counterBook map[float64]*deque.Deque[*Order]
	var sideHeap, counterHeap *PriceHeap
	var priceCompare func(bookPrice, counterPrice float64) bool

	if order.Side == BUY {
		sideBook = ob.bids
		sideHeap = ob.bidHeap
		counterBook = ob.asks
		counterHeap = ob.askHeap
		priceCompare = func(bookPrice, counterPrice float64) bool { return bookPrice >= counterPrice }
	} else { // SELL
		sideBook = ob.asks
		sideHeap = ob.askHeap
		counterBook = ob.bids
		counterHeap = ob.bidHeap
		priceCompare = func(bookPrice, counterPrice float64) bool { return bookPrice <= counterPrice }
	}

	results := ob.matchOrder(
		order,
		counterBook,
		counterHeap,
		priceCompare,
		order.Side,
	)

	// rest the remaining qty in the book
	if order.Qty > 0 {
		ob.addToBook(sideBook, sideHeap, order)
	}

	return results
}

func (ob *orderBook) matchOrder(
	order *Order,
	counterBook map[float64]*deque.Deque[*Order],
	counterHeap *PriceHeap,
	priceCompare func(bookPrice, counterPrice float64) bool,
	side Side,
) []MatchResult {
	var results []MatchResult

	for order.Qty > 0 {
		bestPrice, ok := counterHeap.Peek()
		if !ok || !priceCompare(order.Price, bestPrice) {
			break
		}

		q := counterBook[bestPrice]
		if q == nil || q.Len() == 0 {
			heap.Pop(counterHeap)
			delete(counterBook, bestPrice)
			continue
		}

		best := q.Front()

		matchQty := min(order.Qty, best.Qty)
		order.Qty -= matchQty
		best.Qty -= matchQty

		if side == BUY {
			results = append(results, MatchResult{
				BuyOrderID:  order.ID,
				SellOrderID: best.ID,
				Price:       bestPrice,
				Qty:         matchQty,
			})
		} else {
			results = append(results, MatchResult{
				BuyOrderID:  best.ID,
				SellOrderID: order.ID,
				Price:       bestPrice,
				Qty:         matchQty,
			})
		}

		// a filled order leaves the book, a partially filled one keeps its
		// queue position at the front of the level
		if best.Qty == 0 {
			q.PopFront()
			delete(ob.ordersByID, best.ID)
		}
	}

	return results
}

func (ob *orderBook) addToBook(book map[float64]*deque.Deque[*Order], priceHeap *PriceHeap, order *Order) {
	if book[order.Price] == nil {
		book[order.Price] = &deque.Deque[*Order]{}
	}
	heap.Push(priceHeap, order.Price)
	book[order.Price].PushBack(order)
	ob.ordersByID[order.ID] = order
}

// bestOpposite returns the price and order id the given incoming side would
// match against first: lowest ask for a BUY, highest bid for a SELL.
func (ob *orderBook) bestOpposite(side Side) (float64, int64, bool) {
	ob.mu.Lock()
	defer ob.mu.Unlock()

	if side == BUY {
		return ob.peekBest(ob.asks, ob.askHeap)
	}
	return ob.peekBest(ob.bids, ob.bidHeap)
}

// peekFront returns the highest-priority resting order on a side without
// removing it.
func (ob *orderBook) peekFront(side Side) (Order, bool) {
	ob.mu.Lock()
	defer ob.mu.Unlock()

	book, priceHeap := ob.bids, ob.bidHeap
	if side == SELL {
		book, priceHeap = ob.asks, ob.askHeap
	}

	price, _, ok := ob.peekBest(book, priceHeap)
	if !ok {
		return Order{}, false
	}
	return *book[price].Front(), true
}

// popFront removes and returns the highest-priority resting order on a side.
func (ob *orderBook) popFront(side Side) (Order, bool) {
	ob.mu.Lock()
	defer ob.mu.Unlock()

	book, priceHeap := ob.bids, ob.bidHeap
	if side == SELL {
		book, priceHeap = ob.asks, ob.askHeap
	}

	price, _, ok := ob.peekBest(book, priceHeap)
	if !ok {
		return Order{}, false
	}

	front := book[price].PopFront()
	delete(ob.ordersByID, front.ID)
	return *front, true
}

// peekBest skips levels emptied by cancels. Callers hold ob.mu.
func (ob *orderBook) peekBest(book map[float64]*deque.Deque[*Order], priceHeap *PriceHeap) (float64, int64, bool) {
	for {
		price, ok := priceHeap.Peek()
		if !ok {
			return 0, 0, false
		}
		q := book[price]
		if q == nil || q.Len() == 0 {
			heap.Pop(priceHeap)
			delete(book, price)
			continue
		}
		return price, q.Front().ID, true
	}
}

// cancelOrder removes a resting order from its price level. An emptied
// level is cleaned up lazily by the next match or peek.
func (ob *orderBook) cancelOrder(orderID int64) bool {
	ob.mu.Lock()
	defer ob.mu.Unlock()

	order, ok := ob.ordersByID[orderID]
	if !ok {
		return false
	}

	book := ob.bids
	if order.Side == SELL {
		book = ob.asks
	}

	if q := book[order.Price]; q != nil {
		for i := q.Len(); i > 0; i-- {
			o := q.PopFront()
			if o.ID == orderID {
				continue
			}
			q.PushBack(o)
		}
	}
	delete(ob.ordersByID, orderID)

	return true
}

// restingQty reports the quantity still resting for an order, 0 if absent.
func (ob *orderBook) restingQty(orderID int64) int64 {
	ob.mu.Lock()
	defer ob.mu.Unlock()

	order, ok := ob.ordersByID[orderID]
	if !ok {
		return 0
	}
	return order.Qty
}
