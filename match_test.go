package cgtcalc

import (
	"testing"
)

// stateOf builds an asset state from test transactions.
func stateOf(txs ...Transaction) *assetState {
	return newAssetState(txs[0].Asset, txs, nil)
}

func TestSameDayMatchConsumesBoth(t *testing.T) {
	st := stateOf(
		buy("2020-01-01", "FOO", 10, 10),
		sell("2020-01-01", "FOO", 10, 15),
	)
	matchPending(st, sameDayRule, MatchSameDay, NewSilentLogger())

	if len(st.matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(st.matches))
	}
	m := st.matches[0]
	if m.Kind != MatchSameDay {
		t.Errorf("match kind = %s, want same-day", m.Kind)
	}
	if !m.Quantity.Equal(qty(10)) {
		t.Errorf("matched quantity = %s, want 10", m.Quantity)
	}
	if len(st.pendingAcquisitions()) != 0 || len(st.pendingDisposals()) != 0 {
		t.Error("both sides should be fully consumed")
	}
}

func TestSameDayPartialConsumption(t *testing.T) {
	st := stateOf(
		buy("2020-01-01", "FOO", 10, 10),
		sell("2020-01-01", "FOO", 6, 15),
	)
	matchPending(st, sameDayRule, MatchSameDay, NewSilentLogger())

	if len(st.matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(st.matches))
	}
	if !st.matches[0].Quantity.Equal(qty(6)) {
		t.Errorf("matched quantity = %s, want 6", st.matches[0].Quantity)
	}
	acqs := st.pendingAcquisitions()
	if len(acqs) != 1 || !acqs[0].remaining().Equal(qty(4)) {
		t.Errorf("acquisition should retain 4 unmatched units, got %v", acqs)
	}
}

func TestSameDayIgnoresOtherDates(t *testing.T) {
	st := stateOf(
		buy("2020-01-01", "FOO", 10, 10),
		sell("2020-01-02", "FOO", 10, 15),
	)
	matchPending(st, sameDayRule, MatchSameDay, NewSilentLogger())

	if len(st.matches) != 0 {
		t.Fatalf("expected no match across dates, got %d", len(st.matches))
	}
}

func TestBedAndBreakfastWindowBoundary(t *testing.T) {
	// An acquisition exactly 30 days after the disposal matches.
	st := stateOf(
		sell("2020-01-01", "FOO", 10, 15),
		buy("2020-01-31", "FOO", 10, 12),
	)
	matchPending(st, bedAndBreakfastRule, MatchBedAndBreakfast, NewSilentLogger())
	if len(st.matches) != 1 {
		t.Fatalf("expected a match on day D+30, got %d matches", len(st.matches))
	}
	if got := st.matches[0].AcquisitionDate; got != day("2020-01-31") {
		t.Errorf("paired acquisition date = %s, want 2020-01-31", got)
	}

	// An acquisition 31 days after the disposal does not.
	st = stateOf(
		sell("2020-01-01", "FOO", 10, 15),
		buy("2020-02-01", "FOO", 10, 12),
	)
	matchPending(st, bedAndBreakfastRule, MatchBedAndBreakfast, NewSilentLogger())
	if len(st.matches) != 0 {
		t.Fatalf("expected no match on day D+31, got %d matches", len(st.matches))
	}
}

func TestBedAndBreakfastSkipsEarlierAcquisitions(t *testing.T) {
	// The acquisition before the disposal is left for the pool.
	st := stateOf(
		buy("2019-12-01", "FOO", 10, 8),
		sell("2020-01-01", "FOO", 10, 15),
		buy("2020-01-10", "FOO", 10, 12),
	)
	matchPending(st, bedAndBreakfastRule, MatchBedAndBreakfast, NewSilentLogger())

	if len(st.matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(st.matches))
	}
	if got := st.matches[0].AcquisitionDate; got != day("2020-01-10") {
		t.Errorf("paired acquisition date = %s, want the later acquisition", got)
	}
	acqs := st.pendingAcquisitions()
	if len(acqs) != 1 || acqs[0].tx.Date != day("2019-12-01") {
		t.Errorf("the earlier acquisition should remain pending, got %v", acqs)
	}
}

func TestMatchSplitsDisposalAcrossAcquisitions(t *testing.T) {
	// One disposal consumed by two same-day acquisitions.
	st := stateOf(
		buy("2020-01-01", "FOO", 4, 10),
		buy("2020-01-01", "FOO", 6, 11),
		sell("2020-01-01", "FOO", 10, 15),
	)
	matchPending(st, sameDayRule, MatchSameDay, NewSilentLogger())

	if len(st.matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(st.matches))
	}
	total := st.matches[0].Quantity.Add(st.matches[1].Quantity)
	if !total.Equal(qty(10)) {
		t.Errorf("total matched = %s, want 10", total)
	}
	if len(st.pendingDisposals()) != 0 {
		t.Error("disposal should be fully consumed")
	}
}

func TestCompletenessCheck(t *testing.T) {
	st := stateOf(sell("2020-01-01", "FOO", 10, 15))
	if err := st.complete(); err == nil {
		t.Error("complete() should report the unmatched disposal")
	}

	st = stateOf(
		buy("2020-01-01", "FOO", 10, 10),
		sell("2020-01-01", "FOO", 10, 15),
	)
	matchPending(st, sameDayRule, MatchSameDay, NewSilentLogger())
	if err := st.complete(); err != nil {
		t.Errorf("complete() error = %v, want nil", err)
	}
}
