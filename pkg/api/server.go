package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/joripage/stockex/pkg/exchange"
	"github.com/joripage/stockex/pkg/logging"
)

// Server is the HTTP face of the exchange: routing, body binding and status
// code mapping only, no matching logic.
type Server struct {
	eng *exchange.Exchange
	log *logging.Logger
}

func NewServer(eng *exchange.Exchange, log *logging.Logger) *Server {
	return &Server{
		eng: eng,
		log: log,
	}
}

func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(s.log))

	r.POST("/buy", s.buy)
	r.POST("/sell", s.sell)
	r.GET("/status/:ordernum", s.status)
	r.GET("/info/:symbol", s.info)

	return r
}

func (s *Server) Run(addr string) error {
	return s.Router().Run(addr)
}

func (s *Server) buy(c *gin.Context) {
	var req BuyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}

	ordernum, err := s.eng.Buy(c.Request.Context(), req.Symbol, req.Shares, req.Bid)
	if err != nil {
		s.writeEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, OrderResponse{
		Ordernum: ordernum,
		URI:      statusURI(ordernum),
	})
}

func (s *Server) sell(c *gin.Context) {
	var req SellRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}

	ordernum, err := s.eng.Sell(c.Request.Context(), req.Symbol, req.Shares, req.Ask)
	if err != nil {
		s.writeEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, OrderResponse{
		Ordernum: ordernum,
		URI:      statusURI(ordernum),
	})
}

func (s *Server) status(c *gin.Context) {
	ordernum, err := strconv.ParseInt(c.Param("ordernum"), 10, 64)
	if err != nil {
		writeError(c, http.StatusBadRequest, "ordernum must be an integer")
		return
	}

	order, err := s.eng.Status(c.Request.Context(), ordernum)
	if err != nil {
		s.writeEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, StatusResponse{
		Ordernum:      order.OrderID,
		OrderType:     string(order.Side),
		OrderSymbol:   order.Symbol,
		OrderShares:   order.Remaining,
		OrderBidOrAsk: order.Price,
		OrderStatus:   string(order.Status),
		URI:           statusURI(order.OrderID),
	})
}

func (s *Server) info(c *gin.Context) {
	info, err := s.eng.Info(c.Request.Context(), c.Param("symbol"))
	if err != nil {
		s.writeEngineError(c, err)
		return
	}

	resp := InfoResponse{
		Symbol:       info.Symbol,
		AveragePrice: info.AveragePrice,
		Executions:   make([]ExecutionResponse, 0, len(info.Executions)),
	}
	for _, ex := range info.Executions {
		resp.Executions = append(resp.Executions, ExecutionResponse{
			Shares: ex.Shares,
			Price:  ex.Price,
		})
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) writeEngineError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, exchange.ErrInvalidOrder):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, exchange.ErrUnknownSymbol), errors.Is(err, exchange.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "ORDER FAILED")
	}
}

func writeError(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorResponse{
		Status:  status,
		Message: message,
	})
}

func statusURI(ordernum int64) string {
	return fmt.Sprintf("/status/%d", ordernum)
}
