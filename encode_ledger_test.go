package cgtcalc

import (
	"bytes"
	"strings"
	"testing"
)

const sampleLedger = `{"command":"buy","date":"2020-01-01","asset":"FOO","quantity":100,"price":10,"currency":"GBP"}
{"command":"split","date":"2020-03-01","asset":"FOO","ratio":2}

{"command":"sell","date":"2020-06-01","asset":"FOO","quantity":50,"price":8,"expenses":5,"currency":"GBP"}
{"command":"dividend","date":"2020-04-01","asset":"FOO","amount":20,"currency":"GBP"}
`

func TestDecodeLedger(t *testing.T) {
	ledger, err := DecodeLedger(strings.NewReader(sampleLedger))
	if err != nil {
		t.Fatalf("DecodeLedger error = %v", err)
	}

	txs := ledger.Transactions()
	if len(txs) != 2 {
		t.Fatalf("got %d transactions, want 2", len(txs))
	}
	if txs[0].Kind != Acquisition || txs[1].Kind != Disposal {
		t.Errorf("transaction kinds = %s, %s; want buy, sell", txs[0].Kind, txs[1].Kind)
	}
	if !txs[1].Expenses.Equal(gbpf(5)) {
		t.Errorf("sell expenses = %s, want £5.00", txs[1].Expenses)
	}

	events := ledger.Events()
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	// stableSort puts the April dividend after the March split.
	if events[0].Kind != Split || events[1].Kind != Dividend {
		t.Errorf("event kinds = %s, %s; want split, dividend", events[0].Kind, events[1].Kind)
	}
	if err := ledger.Validate(); err != nil {
		t.Errorf("decoded ledger should validate, got %v", err)
	}
}

func TestDecodeLedgerUnknownCommand(t *testing.T) {
	if _, err := DecodeLedger(strings.NewReader(`{"command":"transfer"}`)); err == nil {
		t.Error("DecodeLedger should reject an unknown command")
	}
}

func TestEncodeLedgerCanonical(t *testing.T) {
	ledger, err := DecodeLedger(strings.NewReader(sampleLedger))
	if err != nil {
		t.Fatalf("DecodeLedger error = %v", err)
	}

	var first bytes.Buffer
	if err := EncodeLedger(&first, ledger); err != nil {
		t.Fatalf("EncodeLedger error = %v", err)
	}

	// A decode of the canonical form must encode back to the same bytes.
	again, err := DecodeLedger(bytes.NewReader(first.Bytes()))
	if err != nil {
		t.Fatalf("DecodeLedger of canonical output error = %v", err)
	}
	var second bytes.Buffer
	if err := EncodeLedger(&second, again); err != nil {
		t.Fatalf("EncodeLedger error = %v", err)
	}
	if first.String() != second.String() {
		t.Errorf("canonical encoding is not stable:\nfirst:\n%ssecond:\n%s", first.String(), second.String())
	}
}
