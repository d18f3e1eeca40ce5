package cgtcalc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRatesCoverage(t *testing.T) {
	table := DefaultRates()

	r, ok := table.Lookup(2020)
	require.True(t, ok)
	assert.True(t, r.Exemption.Equal(gbpf(12300)), "2020 exemption = %s, want £12,300.00", r.Exemption)

	r, ok = table.Lookup(2024)
	require.True(t, ok)
	assert.True(t, r.Exemption.Equal(gbpf(3000)), "2024 exemption = %s, want £3,000.00", r.Exemption)
	assert.Equal(t, Percent(24), r.HigherRate)

	_, ok = table.Lookup(2007)
	assert.False(t, ok, "no rates should exist before the 2008 regime")
}

func TestDecodeRatesMergesOverDefaults(t *testing.T) {
	const override = `
[[taxyear]]
label = "2026/2027"
exemption = 3000
basic-rate = 18
higher-rate = 24

[[taxyear]]
label = "2020/2021"
exemption = 9999
basic-rate = 10
higher-rate = 20
`
	table, err := DecodeRates(strings.NewReader(override))
	require.NoError(t, err)

	// New year added.
	r, ok := table.Lookup(2026)
	require.True(t, ok)
	assert.True(t, r.Exemption.Equal(gbpf(3000)))

	// Existing year overridden.
	r, ok = table.Lookup(2020)
	require.True(t, ok)
	assert.True(t, r.Exemption.Equal(gbpf(9999)), "2020 exemption = %s, want override", r.Exemption)

	// Untouched defaults survive.
	_, ok = table.Lookup(2015)
	assert.True(t, ok)
}

func TestDecodeRatesRejectsBadLabel(t *testing.T) {
	const bad = `
[[taxyear]]
label = "2020/2025"
exemption = 1000
`
	_, err := DecodeRates(strings.NewReader(bad))
	assert.Error(t, err)
}

func TestPercentString(t *testing.T) {
	assert.Equal(t, "20%", Percent(20).String())
	assert.Equal(t, "10.5%", Percent(10.5).String())
}
