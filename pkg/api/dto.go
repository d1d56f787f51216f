package api

import "github.com/shopspring/decimal"

type BuyRequest struct {
	Symbol string          `json:"symbol" binding:"required"`
	Shares int64           `json:"shares" binding:"required"`
	Bid    decimal.Decimal `json:"bid" binding:"required"`
}

type SellRequest struct {
	Symbol string          `json:"symbol" binding:"required"`
	Shares int64           `json:"shares" binding:"required"`
	Ask    decimal.Decimal `json:"ask" binding:"required"`
}

type OrderResponse struct {
	Ordernum int64  `json:"ordernum"`
	URI      string `json:"uri"`
}

// StatusResponse reports the live state of an order. OrderShares is the
// remaining, unfilled quantity.
type StatusResponse struct {
	Ordernum      int64           `json:"ordernum"`
	OrderType     string          `json:"orderType"`
	OrderSymbol   string          `json:"orderSymbol"`
	OrderShares   int64           `json:"orderShares"`
	OrderBidOrAsk decimal.Decimal `json:"orderBidOrAsk"`
	OrderStatus   string          `json:"orderStatus"`
	URI           string          `json:"uri"`
}

type InfoResponse struct {
	Symbol       string              `json:"symbol"`
	AveragePrice decimal.Decimal     `json:"averagePrice"`
	Executions   []ExecutionResponse `json:"executions"`
}

type ExecutionResponse struct {
	Shares int64           `json:"shares"`
	Price  decimal.Decimal `json:"price"`
}

type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}
