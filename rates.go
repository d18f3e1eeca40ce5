package cgtcalc

import (
	"fmt"
	"io"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/shopspring/decimal"
)

// Percent is a display percentage (e.g. 20 for 20%).
type Percent float64

func (p Percent) String() string { return fmt.Sprintf("%g%%", float64(p)) }

// Of returns the given fraction of an amount, e.g. Percent(20).Of(£100) is £20.
func (p Percent) Of(amount Money) Money {
	rate := decimal.NewFromFloat(float64(p)).Div(decimal.NewFromInt(100))
	return amount.Mul(Q(rate))
}

// TaxYearRates holds the annual exempt amount and CGT rates of one tax year.
// The rates are informative: the calculator reports the taxable gain, it
// does not assess which band a taxpayer falls in.
type TaxYearRates struct {
	Exemption  Money
	BasicRate  Percent
	HigherRate Percent
}

// RateTable maps tax years to their exemption and rates.
type RateTable struct {
	years map[TaxYear]TaxYearRates
}

// Lookup returns the rates of a tax year, if defined.
func (t *RateTable) Lookup(year TaxYear) (TaxYearRates, bool) {
	r, ok := t.years[year]
	return r, ok
}

// Set defines or overrides the rates of a tax year.
func (t *RateTable) Set(year TaxYear, rates TaxYearRates) {
	t.years[year] = rates
}

// Years returns the number of tax years the table covers.
func (t *RateTable) Years() []TaxYear {
	years := make([]TaxYear, 0, len(t.years))
	for y := range t.years {
		years = append(years, y)
	}
	// callers sort; map order is not deterministic
	return years
}

func gbp(v int64) Money { return M(decimal.NewFromInt(v), GBPCurrency) }

// DefaultRates returns the built-in table of HMRC annual exempt amounts and
// CGT rates on shares for every tax year since the 2008 regime change.
func DefaultRates() *RateTable {
	t := &RateTable{years: make(map[TaxYear]TaxYearRates)}
	add := func(year TaxYear, exemption int64, basic, higher Percent) {
		t.years[year] = TaxYearRates{Exemption: gbp(exemption), BasicRate: basic, HigherRate: higher}
	}

	add(2008, 9600, 18, 18)
	add(2009, 10100, 18, 18)
	add(2010, 10100, 18, 28)
	add(2011, 10600, 18, 28)
	add(2012, 10600, 18, 28)
	add(2013, 10900, 18, 28)
	add(2014, 11000, 18, 28)
	add(2015, 11100, 18, 28)
	add(2016, 11100, 10, 20)
	add(2017, 11300, 10, 20)
	add(2018, 11700, 10, 20)
	add(2019, 12000, 10, 20)
	add(2020, 12300, 10, 20)
	add(2021, 12300, 10, 20)
	add(2022, 12300, 10, 20)
	add(2023, 6000, 10, 20)
	add(2024, 3000, 18, 24)
	add(2025, 3000, 18, 24)
	return t
}

// ratesFile is the TOML layout of a rates override file:
//
//	[[taxyear]]
//	label = "2026/2027"
//	exemption = 3000
//	basic-rate = 18
//	higher-rate = 24
type ratesFile struct {
	TaxYear []struct {
		Label      string  `toml:"label"`
		Exemption  float64 `toml:"exemption"`
		BasicRate  float64 `toml:"basic-rate"`
		HigherRate float64 `toml:"higher-rate"`
	} `toml:"taxyear"`
}

// DecodeRates reads tax-year rates in TOML from r and merges them over the
// default table, so an override file only needs to list the years it
// changes or adds.
func DecodeRates(r io.Reader) (*RateTable, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("could not read rates file: %w", err)
	}
	var file ratesFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("could not parse rates file: %w", err)
	}

	table := DefaultRates()
	for _, entry := range file.TaxYear {
		year, err := ParseTaxYear(entry.Label)
		if err != nil {
			return nil, fmt.Errorf("invalid rates entry: %w", err)
		}
		table.Set(year, TaxYearRates{
			Exemption:  M(decimal.NewFromFloat(entry.Exemption), GBPCurrency),
			BasicRate:  Percent(entry.BasicRate),
			HigherRate: Percent(entry.HigherRate),
		})
	}
	return table, nil
}
