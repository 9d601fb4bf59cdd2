package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/mtlprog/wallet/internal/domain"
)

// Merge calls upsert records keyed by identifier, so re-fetching and
// re-merging the same page is safe: collisions overwrite, never duplicate.

// MergeEffects merges a batch of effects into the effect map.
func (a *Account) MergeEffects(batch []domain.Effect) {
	for _, e := range batch {
		a.Effects[e.ID] = e
	}
}

// MergeOperations merges a batch of operations into the operation map.
func (a *Account) MergeOperations(batch []domain.Operation) {
	for _, op := range batch {
		a.Operations[op.ID] = op
	}
}

// MergeTransactions merges a batch of transactions into the transaction map.
func (a *Account) MergeTransactions(batch []domain.Transaction) {
	for _, tx := range batch {
		a.Transactions[tx.ID] = tx
	}
}

// MergeOffers merges a batch of open offers and recomputes the outstanding
// trade amounts from the full offer map.
func (a *Account) MergeOffers(batch []domain.AccountOffer) {
	for _, o := range batch {
		a.Offers[o.ID] = o
	}

	outstanding := make(map[string]decimal.Decimal, len(a.Offers))
	for _, o := range a.Offers {
		key := o.Selling.Key()
		outstanding[key] = outstanding[key].Add(domain.SafeParse(o.Amount))
	}
	a.OutstandingTradeAmounts = outstanding
}

// RemoveOffer drops a closed offer and recomputes outstanding amounts.
func (a *Account) RemoveOffer(id int64) {
	delete(a.Offers, id)
	a.MergeOffers(nil)
}
