// Package ledger holds the in-memory account state of the wallet: the asset
// list and reserve counters derived from a Horizon account snapshot, the
// per-kind record maps populated by merge calls, and the balance math built
// on them.
//
// An Account is owned by a single coordinator; all mutations (Recompute swap,
// merges) must be serialized by the caller. Reads may run concurrently with
// each other but not with a mutation.
package ledger

import (
	"slices"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/mtlprog/wallet/internal/domain"
	"github.com/mtlprog/wallet/internal/horizon"
)

// Account is one Stellar account's ledger state.
//
// The record maps survive a Recompute untouched: a fresh snapshot replaces
// the derived account fields wholesale, while transactions, operations,
// effects and offers arrive from separate fetches and are merged in
// independently. Callers switching to a different account must start from a
// fresh stub rather than recompute in place.
type Account struct {
	AccountID            string
	InflationDestination string

	// Assets is ordered with the native asset first; the native entry is
	// the canonical source for the available XLM balance.
	Assets []domain.Asset

	TotalTrustlines   int
	AdditionalSigners int
	TotalDataEntries  int
	TotalSubentries   int

	Effects      map[string]domain.Effect
	Operations   map[string]domain.Operation
	Transactions map[string]domain.Transaction
	Offers       map[int64]domain.AccountOffer

	// OutstandingTradeAmounts is the amount of each asset locked in open
	// offers, keyed by domain.Asset.Key().
	OutstandingTradeAmounts map[string]decimal.Decimal

	stub bool
}

// NewStub creates an account that has not yet received a snapshot: the
// account id and a single native asset with no balance.
func NewStub(accountID string) *Account {
	return &Account{
		AccountID:               accountID,
		Assets:                  []domain.Asset{domain.NativeAsset("")},
		Effects:                 make(map[string]domain.Effect),
		Operations:              make(map[string]domain.Operation),
		Transactions:            make(map[string]domain.Transaction),
		Offers:                  make(map[int64]domain.AccountOffer),
		OutstandingTradeAmounts: make(map[string]decimal.Decimal),
		stub:                    true,
	}
}

// IsStub reports whether the account has never been rebuilt from a real
// snapshot.
func (a *Account) IsStub() bool {
	return a.stub
}

// Recompute builds a new Account from a raw Horizon snapshot. The previous
// account's record maps are carried over by reference; nothing is cleared.
// Passing nil for old starts from empty maps.
func Recompute(old *Account, snap horizon.HorizonAccount) *Account {
	if old == nil {
		old = NewStub(snap.ID)
	}

	assets := lo.FilterMap(snap.Balances, func(b horizon.HorizonBalance, _ int) (domain.Asset, bool) {
		// LP shares are not tradeable balances
		if b.AssetType == "liquidity_pool_shares" {
			return domain.Asset{}, false
		}
		if b.AssetType == string(domain.AssetTypeNative) {
			return domain.NativeAsset(b.Balance), true
		}
		return domain.Asset{
			Type:    domain.AssetType(b.AssetType),
			Code:    b.AssetCode,
			Issuer:  b.AssetIssuer,
			Balance: b.Balance,
		}, true
	})

	// Stable sort: native first, everything else keeps Horizon order.
	slices.SortStableFunc(assets, func(x, y domain.Asset) int {
		switch {
		case x.IsNative() == y.IsNative():
			return 0
		case x.IsNative():
			return -1
		default:
			return 1
		}
	})

	return &Account{
		AccountID:            snap.ID,
		InflationDestination: snap.InflationDestination,
		Assets:               assets,
		// the native balance is not a trustline
		TotalTrustlines: max(len(assets)-1, 0),
		// the master key is not an additional signer
		AdditionalSigners: max(len(snap.Signers)-1, 0),
		TotalDataEntries:  len(snap.Data),
		TotalSubentries:   snap.SubentryCount,

		Effects:                 old.Effects,
		Operations:              old.Operations,
		Transactions:            old.Transactions,
		Offers:                  old.Offers,
		OutstandingTradeAmounts: old.OutstandingTradeAmounts,
	}
}

// NativeAsset returns the account's native balance line, if present.
func (a *Account) NativeAsset() (domain.Asset, bool) {
	return lo.Find(a.Assets, func(x domain.Asset) bool {
		return x.IsNative()
	})
}

// Holding returns the account's balance line matching the given asset
// identity, if the account holds a trustline to it.
func (a *Account) Holding(asset domain.Asset) (domain.Asset, bool) {
	return lo.Find(a.Assets, func(x domain.Asset) bool {
		return x.Equal(asset)
	})
}

// IndexedAssets folds the asset list into a map keyed by short code,
// last write wins. Two held assets sharing a short code should not happen;
// if it does, one is silently dropped.
func (a *Account) IndexedAssets() map[string]domain.Asset {
	return lo.SliceToMap(a.Assets, func(x domain.Asset) (string, domain.Asset) {
		return x.ShortCode(), x
	})
}
