package cgtcalc

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolAveraging(t *testing.T) {
	// 100 units at cost 100 plus 100 units at cost 300 give an average of
	// 2/unit; drawing 50 units must cost exactly 100.
	st := stateOf(
		buy("2020-01-01", "FOO", 100, 1),
		buy("2020-02-01", "FOO", 100, 3),
		sell("2020-06-01", "FOO", 50, 5),
	)
	require.NoError(t, processPool(st, NewSilentLogger()))

	require.Len(t, st.matches, 1)
	m := st.matches[0]
	assert.Equal(t, MatchSection104, m.Kind)
	assert.True(t, m.Cost.Equal(gbpf(100)), "cost basis = %s, want £100.00", m.Cost)
	assert.True(t, m.Proceeds.Equal(gbpf(250)), "proceeds = %s, want £250.00", m.Proceeds)
	assert.NoError(t, st.complete())
}

func TestPoolAcquisitionExpensesEnterCost(t *testing.T) {
	st := stateOf(
		NewAcquisition(day("2020-01-01"), "FOO", qty(100), gbpf(1), gbpf(10)),
		sell("2020-06-01", "FOO", 100, 2),
	)
	require.NoError(t, processPool(st, NewSilentLogger()))

	require.Len(t, st.matches, 1)
	// cost = 100×1 + 10 expenses
	assert.True(t, st.matches[0].Cost.Equal(gbpf(110)), "cost = %s, want £110.00", st.matches[0].Cost)
}

func TestPoolInsufficient(t *testing.T) {
	st := stateOf(
		buy("2020-01-01", "FOO", 10, 1),
		sell("2020-02-01", "FOO", 15, 2),
	)
	err := processPool(st, NewSilentLogger())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInsufficientPool), "error = %v, want ErrInsufficientPool", err)
}

func TestPoolSplitAdjustsQuantity(t *testing.T) {
	// A 2-for-1 split doubles the pool quantity without changing its cost,
	// halving the average cost per unit.
	st := newAssetState("FOO",
		[]Transaction{
			buy("2020-01-01", "FOO", 100, 1),
			sell("2020-06-01", "FOO", 100, 2),
		},
		[]AssetEvent{NewSplit(day("2020-03-01"), "FOO", qty(2))},
	)
	require.NoError(t, processPool(st, NewSilentLogger()))

	require.Len(t, st.matches, 1)
	// 100 of the 200 post-split units carry half the £100 cost.
	assert.True(t, st.matches[0].Cost.Equal(gbpf(50)), "cost = %s, want £50.00", st.matches[0].Cost)
}

func TestPoolUnsplitAdjustsQuantity(t *testing.T) {
	st := newAssetState("FOO",
		[]Transaction{
			buy("2020-01-01", "FOO", 100, 1),
			sell("2020-06-01", "FOO", 50, 4),
		},
		[]AssetEvent{NewUnsplit(day("2020-03-01"), "FOO", qty(2))},
	)
	require.NoError(t, processPool(st, NewSilentLogger()))

	require.Len(t, st.matches, 1)
	// The consolidation leaves 50 units carrying the full £100 cost.
	assert.True(t, st.matches[0].Cost.Equal(gbpf(100)), "cost = %s, want £100.00", st.matches[0].Cost)
}

func TestPoolCapitalReturnReducesCost(t *testing.T) {
	st := newAssetState("FOO",
		[]Transaction{
			buy("2020-01-01", "FOO", 100, 1),
			sell("2020-06-01", "FOO", 100, 2),
		},
		[]AssetEvent{NewCapitalReturn(day("2020-03-01"), "FOO", gbpf(40))},
	)
	require.NoError(t, processPool(st, NewSilentLogger()))

	require.Len(t, st.matches, 1)
	assert.True(t, st.matches[0].Cost.Equal(gbpf(60)), "cost = %s, want £60.00", st.matches[0].Cost)
}

func TestPoolCapitalReturnExceedingCost(t *testing.T) {
	st := newAssetState("FOO",
		[]Transaction{buy("2020-01-01", "FOO", 100, 1)},
		[]AssetEvent{NewCapitalReturn(day("2020-03-01"), "FOO", gbpf(500))},
	)
	err := processPool(st, NewSilentLogger())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidAssetEvent), "error = %v, want ErrInvalidAssetEvent", err)
}

func TestPoolDividendRaisesCost(t *testing.T) {
	st := newAssetState("FOO",
		[]Transaction{
			buy("2020-01-01", "FOO", 100, 1),
			sell("2020-06-01", "FOO", 100, 2),
		},
		[]AssetEvent{NewDividend(day("2020-03-01"), "FOO", gbpf(20))},
	)
	require.NoError(t, processPool(st, NewSilentLogger()))

	require.Len(t, st.matches, 1)
	assert.True(t, st.matches[0].Cost.Equal(gbpf(120)), "cost = %s, want £120.00", st.matches[0].Cost)
}

func TestPoolSameDayOrdering(t *testing.T) {
	// A buy and a sell on the same date: the buy enters the pool before the
	// sell draws on it.
	st := stateOf(
		sell("2020-01-01", "FOO", 10, 2),
		buy("2020-01-01", "FOO", 10, 1),
	)
	require.NoError(t, processPool(st, NewSilentLogger()))
	require.Len(t, st.matches, 1)
	assert.NoError(t, st.complete())
}
