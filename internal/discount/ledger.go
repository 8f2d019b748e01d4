package discount

// Ledger is the append-only history of order ids processed in this batch
// run. It backs the loyalty bonus lookup and holds no other state.
type Ledger struct {
	ids []string
}

// NewLedger constructs an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{}
}

// Append records an order id. Every processed order is recorded exactly
// once, regardless of its outcome.
func (l *Ledger) Append(orderID string) {
	l.ids = append(l.ids, orderID)
}

// Previous returns the entry recorded immediately before the most recent
// append, if one exists.
func (l *Ledger) Previous() (string, bool) {
	if len(l.ids) < 2 {
		return "", false
	}
	return l.ids[len(l.ids)-2], true
}

// Len reports how many order ids have been recorded.
func (l *Ledger) Len() int {
	return len(l.ids)
}
