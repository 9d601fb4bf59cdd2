package ledger

import "github.com/shopspring/decimal"

// Reserve constants of the Stellar ledger. The base reserve scales the
// minimum balance by the number of subentries; the base fee is charged per
// operation.
var (
	BaseReserve = decimal.RequireFromString("0.5")
	BaseFee     = decimal.RequireFromString("0.00001")
)

// totalBaseAmount is the number of base reserves every funded account pays
// regardless of subentries.
const totalBaseAmount = 2

// TotalOffers derives the number of open offers from the subentry count.
// Subentries cover trustlines, offers and data entries, but not the base
// account entry or signers.
func (a *Account) TotalOffers() int {
	return a.TotalSubentries - a.TotalTrustlines - a.TotalDataEntries
}

// BaseAmount is the reserve of the account entry itself.
func (a *Account) BaseAmount() decimal.Decimal {
	return BaseReserve.Mul(decimal.NewFromInt(totalBaseAmount))
}

// TrustlinesReserve is the reserve consumed by trustlines.
func (a *Account) TrustlinesReserve() decimal.Decimal {
	return BaseReserve.Mul(decimal.NewFromInt(int64(a.TotalTrustlines)))
}

// OffersReserve is the reserve consumed by open offers.
func (a *Account) OffersReserve() decimal.Decimal {
	return BaseReserve.Mul(decimal.NewFromInt(int64(a.TotalOffers())))
}

// DataEntriesReserve is the reserve consumed by data entries.
func (a *Account) DataEntriesReserve() decimal.Decimal {
	return BaseReserve.Mul(decimal.NewFromInt(int64(a.TotalDataEntries)))
}

// SignersReserve is the reserve consumed by additional signers.
func (a *Account) SignersReserve() decimal.Decimal {
	return BaseReserve.Mul(decimal.NewFromInt(int64(a.AdditionalSigners)))
}

// MinBalance is the minimum native balance the account must retain:
// (base entries + subentries) × base reserve.
func (a *Account) MinBalance() decimal.Decimal {
	return BaseReserve.Mul(decimal.NewFromInt(int64(totalBaseAmount + a.TotalSubentries)))
}

// NewEntryMinBalance is the minimum balance after opening one more subentry.
func (a *Account) NewEntryMinBalance() decimal.Decimal {
	return a.MinBalance().Add(BaseReserve)
}
