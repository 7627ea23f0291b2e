package domain

import "time"

// DateLayout is the calendar date format used for transaction dates on every surface.
const DateLayout = "2006-01-02"

// Transaction is a single inbound/outbound stock movement. Transactions are
// append-only; the service never writes them.
type Transaction struct {
	ID          int64
	ItemCode    string
	Date        time.Time
	Description string
	InboundQty  int64
	OutboundQty int64
}

// Net returns the signed quantity the transaction contributes to stock.
func (t Transaction) Net() int64 {
	return t.InboundQty - t.OutboundQty
}
