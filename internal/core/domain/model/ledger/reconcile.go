package ledger

// Totals is the result of folding an actor's entries.
type Totals struct {
	// Balance is the sum of credit-like minus debit-like amounts.
	Balance int64
	// Revenue only counts sales; withdrawals lower Balance but not Revenue.
	Revenue int64
	// Entries is the number of entries taken into account.
	Entries int
}

// Reconcile folds the full entry history into totals. Failed entries are skipped.
// The result does not depend on the order of entries.
func Reconcile(entries []*Entry) Totals {
	var totals Totals
	for _, e := range entries {
		if e == nil || e.status == EntryFailed {
			continue
		}
		totals.Entries++
		totals.Balance += e.Signed()
		if e.entryType == Vente {
			totals.Revenue += e.amount
		}
	}
	return totals
}
