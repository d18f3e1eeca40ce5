package cgtcalc

import (
	"fmt"
)

// CommandType is a typed string for identifying ledger records.
type CommandType string

// Command types used for identifying ledger records.
const (
	CmdBuy       CommandType = "buy"
	CmdSell      CommandType = "sell"
	CmdSplit     CommandType = "split"
	CmdUnsplit   CommandType = "unsplit"
	CmdCapReturn CommandType = "capreturn"
	CmdDividend  CommandType = "dividend"
)

// TransactionKind distinguishes acquisitions from disposals.
type TransactionKind int

const (
	// Acquisition is a purchase of units of an asset.
	Acquisition TransactionKind = iota
	// Disposal is a sale of units of an asset.
	Disposal
)

func (k TransactionKind) String() string {
	switch k {
	case Acquisition:
		return "buy"
	case Disposal:
		return "sell"
	default:
		return "unknown"
	}
}

// Transaction is a single trade of an asset. It is immutable once created:
// the matching engine never modifies a Transaction, only the consumption
// counters of the sub-transactions wrapping it.
type Transaction struct {
	Asset    string          // Asset is the ticker identifying the asset traded.
	Kind     TransactionKind // Kind is buy or sell.
	Date     Date            // Date is the trade date.
	Quantity Quantity        // Quantity is the number of units traded, always positive.
	Price    Money           // Price is the unit price.
	Expenses Money           // Expenses are the incidental costs (fees, stamp duty) of the whole trade.
}

// NewAcquisition creates a buy transaction.
func NewAcquisition(day Date, asset string, quantity Quantity, price, expenses Money) Transaction {
	return Transaction{Asset: asset, Kind: Acquisition, Date: day, Quantity: quantity, Price: price, Expenses: expenses}
}

// NewDisposal creates a sell transaction.
func NewDisposal(day Date, asset string, quantity Quantity, price, expenses Money) Transaction {
	return Transaction{Asset: asset, Kind: Disposal, Date: day, Quantity: quantity, Price: price, Expenses: expenses}
}

// Command returns the ledger command for the transaction kind.
func (t Transaction) Command() CommandType {
	if t.Kind == Disposal {
		return CmdSell
	}
	return CmdBuy
}

// Validate checks the transaction fields.
func (t Transaction) Validate() error {
	if t.Asset == "" {
		return fmt.Errorf("%s transaction on %s: asset ticker is missing", t.Kind, t.Date)
	}
	if t.Date.IsZero() {
		return fmt.Errorf("%s transaction of %s: date is missing", t.Kind, t.Asset)
	}
	if !t.Quantity.IsPositive() {
		return fmt.Errorf("%s transaction of %s on %s: quantity must be positive, got %s", t.Kind, t.Asset, t.Date, t.Quantity)
	}
	if t.Price.IsNegative() {
		return fmt.Errorf("%s transaction of %s on %s: price must not be negative, got %s", t.Kind, t.Asset, t.Date, t.Price)
	}
	if t.Expenses.IsNegative() {
		return fmt.Errorf("%s transaction of %s on %s: expenses must not be negative, got %s", t.Kind, t.Asset, t.Date, t.Expenses)
	}
	return nil
}

// MarshalJSON implements the json.Marshaler interface.
func (t Transaction) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("command", t.Command())
	w.Append("date", t.Date)
	w.Append("asset", t.Asset)
	w.Append("quantity", t.Quantity)
	w.Append("price", t.Price.Amount())
	if !t.Expenses.IsZero() {
		w.Append("expenses", t.Expenses.Amount())
	}
	w.Optional("currency", t.Price.Currency())
	return w.MarshalJSON()
}

// EventKind identifies the corporate action an AssetEvent records.
type EventKind int

const (
	// Split multiplies the holding quantity by a ratio (e.g. 4 for a 4-for-1 split).
	Split EventKind = iota
	// Unsplit divides the holding quantity by a ratio (a consolidation).
	Unsplit
	// CapitalReturn is an equalisation payment that reduces the pool cost.
	CapitalReturn
	// Dividend is a notional distribution that raises the pool cost.
	Dividend
)

func (k EventKind) String() string {
	switch k {
	case Split:
		return "split"
	case Unsplit:
		return "unsplit"
	case CapitalReturn:
		return "capreturn"
	case Dividend:
		return "dividend"
	default:
		return "unknown"
	}
}

// AssetEvent is a corporate action tied to an asset and a date. Immutable.
// Split and Unsplit carry a Ratio; CapitalReturn and Dividend carry an Amount.
type AssetEvent struct {
	Asset  string
	Kind   EventKind
	Date   Date
	Ratio  Quantity // adjustment factor for Split/Unsplit
	Amount Money    // monetary value for CapitalReturn/Dividend
}

// NewSplit creates a split event multiplying the holding by ratio.
func NewSplit(day Date, asset string, ratio Quantity) AssetEvent {
	return AssetEvent{Asset: asset, Kind: Split, Date: day, Ratio: ratio}
}

// NewUnsplit creates a consolidation event dividing the holding by ratio.
func NewUnsplit(day Date, asset string, ratio Quantity) AssetEvent {
	return AssetEvent{Asset: asset, Kind: Unsplit, Date: day, Ratio: ratio}
}

// NewCapitalReturn creates an equalisation event reducing the pool cost by amount.
func NewCapitalReturn(day Date, asset string, amount Money) AssetEvent {
	return AssetEvent{Asset: asset, Kind: CapitalReturn, Date: day, Amount: amount}
}

// NewDividend creates a notional distribution event raising the pool cost by amount.
func NewDividend(day Date, asset string, amount Money) AssetEvent {
	return AssetEvent{Asset: asset, Kind: Dividend, Date: day, Amount: amount}
}

// Command returns the ledger command for the event kind.
func (e AssetEvent) Command() CommandType {
	switch e.Kind {
	case Unsplit:
		return CmdUnsplit
	case CapitalReturn:
		return CmdCapReturn
	case Dividend:
		return CmdDividend
	default:
		return CmdSplit
	}
}

// Validate checks the event fields.
func (e AssetEvent) Validate() error {
	if e.Asset == "" {
		return fmt.Errorf("%s event on %s: asset ticker is missing", e.Kind, e.Date)
	}
	if e.Date.IsZero() {
		return fmt.Errorf("%s event of %s: date is missing", e.Kind, e.Asset)
	}
	switch e.Kind {
	case Split, Unsplit:
		if !e.Ratio.IsPositive() {
			return fmt.Errorf("%s event of %s on %s: ratio must be positive, got %s", e.Kind, e.Asset, e.Date, e.Ratio)
		}
	case CapitalReturn, Dividend:
		if !e.Amount.IsPositive() {
			return fmt.Errorf("%s event of %s on %s: amount must be positive, got %s", e.Kind, e.Asset, e.Date, e.Amount)
		}
	}
	return nil
}

// MarshalJSON implements the json.Marshaler interface.
func (e AssetEvent) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("command", e.Command())
	w.Append("date", e.Date)
	w.Append("asset", e.Asset)
	switch e.Kind {
	case Split, Unsplit:
		w.Append("ratio", e.Ratio)
	case CapitalReturn, Dividend:
		w.Append("amount", e.Amount.Amount())
		w.Optional("currency", e.Amount.Currency())
	}
	return w.MarshalJSON()
}
