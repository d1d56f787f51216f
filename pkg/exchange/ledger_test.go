package exchange

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joripage/stockex/pkg/exchange/model"
)

func newTestLedger() *Ledger {
	return NewLedger([]SymbolSeed{
		{Symbol: "GOOG", Price: d("100.00"), AveragePrice: d("101.50")},
	})
}

func TestLedgerHasSymbol(t *testing.T) {
	l := newTestLedger()

	assert.True(t, l.HasSymbol("GOOG"))
	assert.False(t, l.HasSymbol("AAPL"))
}

func TestLedgerAppendUnknownSymbol(t *testing.T) {
	l := newTestLedger()

	err := l.Append(&model.Execution{Symbol: "AAPL", Quantity: 1, Price: d("1.00")})
	assert.Error(t, err)
}

func TestLedgerSnapshot(t *testing.T) {
	l := newTestLedger()

	info, ok := l.Snapshot("GOOG")
	require.True(t, ok)
	assert.True(t, info.AveragePrice.Equal(d("101.50")))
	assert.True(t, info.LastPrice.Equal(d("100.00")), "last price seeds from reference price")
	assert.Empty(t, info.Executions)

	_, ok = l.Snapshot("AAPL")
	assert.False(t, ok)
}

func TestLedgerGrowsAndTracksLastPrice(t *testing.T) {
	l := newTestLedger()
	now := time.Now()

	require.NoError(t, l.Append(&model.Execution{Symbol: "GOOG", Quantity: 10, Price: d("9.00"), ExecutedAt: now}))
	require.NoError(t, l.Append(&model.Execution{Symbol: "GOOG", Quantity: 5, Price: d("9.50"), ExecutedAt: now}))

	info, ok := l.Snapshot("GOOG")
	require.True(t, ok)
	require.Len(t, info.Executions, 2)
	assert.Equal(t, int64(10), info.Executions[0].Shares)
	assert.Equal(t, int64(5), info.Executions[1].Shares)
	assert.True(t, info.LastPrice.Equal(d("9.50")))
	assert.Equal(t, 2, l.ExecutionCount("GOOG"))

	// snapshots are stable while the ledger keeps growing
	require.NoError(t, l.Append(&model.Execution{Symbol: "GOOG", Quantity: 1, Price: d("9.75"), ExecutedAt: now}))
	assert.Len(t, info.Executions, 2)
}
