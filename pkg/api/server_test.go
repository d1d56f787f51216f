package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joripage/stockex/pkg/exchange"
	"github.com/joripage/stockex/pkg/logging"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	eng := exchange.NewExchange([]exchange.SymbolSeed{
		{Symbol: "GOOG", Price: decimal.RequireFromString("100.00"), AveragePrice: decimal.RequireFromString("101.50")},
		{Symbol: "MSFT", Price: decimal.RequireFromString("50.00"), AveragePrice: decimal.RequireFromString("49.75")},
		{Symbol: "IBM", Price: decimal.RequireFromString("45.00"), AveragePrice: decimal.RequireFromString("45.02")},
	}, nil)

	return NewServer(eng, logging.NewLogger(logging.ERROR)).Router()
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func TestBuy(t *testing.T) {
	r := newTestRouter()

	w := doJSON(t, r, http.MethodPost, "/buy", gin.H{"symbol": "GOOG", "shares": 10, "bid": 10.0})
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[OrderResponse](t, w)
	assert.Equal(t, int64(1), resp.Ordernum)
	assert.Equal(t, "/status/1", resp.URI)
}

func TestBuyMissingParameter(t *testing.T) {
	r := newTestRouter()

	w := doJSON(t, r, http.MethodPost, "/buy", gin.H{"stock": "GOOG", "shares": 10, "bid": 10.0})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBuyNoBody(t *testing.T) {
	r := newTestRouter()

	w := doJSON(t, r, http.MethodPost, "/buy", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBuyUnknownSymbol(t *testing.T) {
	r := newTestRouter()

	w := doJSON(t, r, http.MethodPost, "/buy", gin.H{"symbol": "AAPL", "shares": 10, "bid": 10.0})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBuyInvalidShares(t *testing.T) {
	r := newTestRouter()

	w := doJSON(t, r, http.MethodPost, "/buy", gin.H{"symbol": "GOOG", "shares": -3, "bid": 10.0})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSell(t *testing.T) {
	r := newTestRouter()

	w := doJSON(t, r, http.MethodPost, "/sell", gin.H{"symbol": "GOOG", "shares": 10, "ask": 10.0})
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[OrderResponse](t, w)
	assert.Equal(t, int64(1), resp.Ordernum)
}

func TestSellMissingParameter(t *testing.T) {
	r := newTestRouter()

	w := doJSON(t, r, http.MethodPost, "/sell", gin.H{"symbol": "GOOG", "shares": 10, "bid": 10.0})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStatus(t *testing.T) {
	r := newTestRouter()

	doJSON(t, r, http.MethodPost, "/buy", gin.H{"symbol": "GOOG", "shares": 10, "bid": 10.0})

	w := doJSON(t, r, http.MethodGet, "/status/1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[StatusResponse](t, w)
	assert.Equal(t, int64(1), resp.Ordernum)
	assert.Equal(t, "BUY", resp.OrderType)
	assert.Equal(t, "GOOG", resp.OrderSymbol)
	assert.Equal(t, int64(10), resp.OrderShares)
	assert.Equal(t, "PENDING", resp.OrderStatus)
	assert.True(t, resp.OrderBidOrAsk.Equal(decimal.RequireFromString("10")))
}

func TestStatusNotFound(t *testing.T) {
	r := newTestRouter()

	w := doJSON(t, r, http.MethodGet, "/status/1000", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStatusBadOrdernum(t *testing.T) {
	r := newTestRouter()

	w := doJSON(t, r, http.MethodGet, "/status/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStatusAfterMatch(t *testing.T) {
	r := newTestRouter()

	doJSON(t, r, http.MethodPost, "/sell", gin.H{"symbol": "GOOG", "shares": 10, "ask": 9.0})
	doJSON(t, r, http.MethodPost, "/buy", gin.H{"symbol": "GOOG", "shares": 4, "bid": 10.0})

	w := doJSON(t, r, http.MethodGet, "/status/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[StatusResponse](t, w)
	assert.Equal(t, "PARTIALLY_EXECUTED", resp.OrderStatus)
	assert.Equal(t, int64(6), resp.OrderShares)

	w = doJSON(t, r, http.MethodGet, "/status/2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp = decode[StatusResponse](t, w)
	assert.Equal(t, "EXECUTED", resp.OrderStatus)
	assert.Equal(t, int64(0), resp.OrderShares)
}

func TestInfoNoExecutions(t *testing.T) {
	r := newTestRouter()

	// resting order alone does not make the symbol tradeable history
	doJSON(t, r, http.MethodPost, "/buy", gin.H{"symbol": "MSFT", "shares": 5, "bid": 8.0})

	w := doJSON(t, r, http.MethodGet, "/info/MSFT", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestInfoUnknownSymbol(t *testing.T) {
	r := newTestRouter()

	w := doJSON(t, r, http.MethodGet, "/info/AAPL", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestInfoAfterTrade(t *testing.T) {
	r := newTestRouter()

	doJSON(t, r, http.MethodPost, "/sell", gin.H{"symbol": "GOOG", "shares": 10, "ask": 9.0})
	doJSON(t, r, http.MethodPost, "/buy", gin.H{"symbol": "GOOG", "shares": 10, "bid": 10.0})

	w := doJSON(t, r, http.MethodGet, "/info/goog", nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[InfoResponse](t, w)
	assert.Equal(t, "GOOG", resp.Symbol)
	assert.True(t, resp.AveragePrice.Equal(decimal.RequireFromString("101.5")))
	require.Len(t, resp.Executions, 1)
	assert.Equal(t, int64(10), resp.Executions[0].Shares)
	assert.True(t, resp.Executions[0].Price.Equal(decimal.RequireFromString("9")))
}

func TestRootNotFound(t *testing.T) {
	r := newTestRouter()

	w := doJSON(t, r, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
