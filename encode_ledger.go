package cgtcalc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// tradeCmd is a specialized struct for decoding buy/sell lines.
type tradeCmd struct {
	Command  CommandType     `json:"command"`
	Date     Date            `json:"date"`
	Asset    string          `json:"asset"`
	Quantity Quantity        `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Expenses decimal.Decimal `json:"expenses"`
	Currency string          `json:"currency"`
}

func (c tradeCmd) currency() string {
	if c.Currency == "" {
		return GBPCurrency
	}
	return c.Currency
}

// eventCmd is a specialized struct for decoding corporate action lines.
type eventCmd struct {
	Command  CommandType     `json:"command"`
	Date     Date            `json:"date"`
	Asset    string          `json:"asset"`
	Ratio    Quantity        `json:"ratio"`
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

// DecodeLedger decodes a stream of JSONL ledger records from an io.Reader,
// one record per line identified by its "command" field, and returns a
// sorted Ledger.
func DecodeLedger(r io.Reader) (*Ledger, error) {
	ledger := NewLedger()
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue // Skip empty lines
		}

		var identifier struct {
			Command CommandType `json:"command"`
		}
		if err := json.Unmarshal(lineBytes, &identifier); err != nil {
			return nil, fmt.Errorf("could not identify command in line %q: %w", string(lineBytes), err)
		}

		switch identifier.Command {
		case CmdBuy, CmdSell:
			var temp tradeCmd
			if err := json.Unmarshal(lineBytes, &temp); err != nil {
				return nil, fmt.Errorf("could not decode %s record: %w", identifier.Command, err)
			}
			kind := Acquisition
			if temp.Command == CmdSell {
				kind = Disposal
			}
			ledger.transactions = append(ledger.transactions, Transaction{
				Asset:    temp.Asset,
				Kind:     kind,
				Date:     temp.Date,
				Quantity: temp.Quantity,
				Price:    M(temp.Price, temp.currency()),
				Expenses: M(temp.Expenses, temp.currency()),
			})
		case CmdSplit, CmdUnsplit, CmdCapReturn, CmdDividend:
			var temp eventCmd
			if err := json.Unmarshal(lineBytes, &temp); err != nil {
				return nil, fmt.Errorf("could not decode %s record: %w", identifier.Command, err)
			}
			event := AssetEvent{Asset: temp.Asset, Date: temp.Date}
			switch temp.Command {
			case CmdSplit:
				event.Kind, event.Ratio = Split, temp.Ratio
			case CmdUnsplit:
				event.Kind, event.Ratio = Unsplit, temp.Ratio
			case CmdCapReturn:
				event.Kind, event.Amount = CapitalReturn, M(temp.Amount, temp.Currency)
			case CmdDividend:
				event.Kind, event.Amount = Dividend, M(temp.Amount, temp.Currency)
			}
			ledger.events = append(ledger.events, event)
		default:
			return nil, fmt.Errorf("unknown ledger command: %q", identifier.Command)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from input: %w", err)
	}

	ledger.stableSort()
	return ledger, nil
}

// EncodeRecord marshals a single record to JSON and writes it to the writer,
// followed by a newline, in JSONL format.
func EncodeRecord(w io.Writer, record json.Marshaler) error {
	data, err := record.MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal ledger record: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write ledger record: %w", err)
	}
	return nil
}

// EncodeLedger persists a ledger to an io.Writer in canonical JSONL format:
// records sorted by date (stable), transactions before events, with ordered
// JSON keys within each record.
func EncodeLedger(w io.Writer, ledger *Ledger) error {
	ledger.stableSort()
	for _, tx := range ledger.transactions {
		if err := EncodeRecord(w, tx); err != nil {
			return err
		}
	}
	for _, e := range ledger.events {
		if err := EncodeRecord(w, e); err != nil {
			return err
		}
	}
	return nil
}
