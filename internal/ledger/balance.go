package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/mtlprog/wallet/internal/domain"
)

// availableNativeBalance is the native balance above the reserve minimum,
// floored at zero.
func (a *Account) availableNativeBalance() decimal.Decimal {
	native, ok := a.NativeAsset()
	if !ok {
		return decimal.Zero
	}
	available := domain.SafeParse(native.Balance).Sub(a.MinBalance())
	if available.IsNegative() {
		return decimal.Zero
	}
	return available
}

// AvailableBalance returns how much of the asset the account can actually
// move. Zero if the account holds no trustline to the asset. For XLM the
// reserve minimum is subtracted first and the result floored at zero.
//
// With subtractOutstanding, the amount locked in open offers is subtracted
// afterwards and the result is NOT re-floored: the value can go negative,
// and callers needing a non-negative figure must floor it themselves. Open
// offers can lock more than the reserve-adjusted balance, and masking that
// here would hide it.
func (a *Account) AvailableBalance(asset domain.Asset, subtractOutstanding bool) decimal.Decimal {
	held, ok := a.Holding(asset)
	if !ok {
		return decimal.Zero
	}

	var available decimal.Decimal
	if held.IsNative() {
		available = a.availableNativeBalance()
	} else {
		available = domain.SafeParse(held.Balance)
	}

	if subtractOutstanding {
		if locked, ok := a.OutstandingTradeAmounts[asset.Key()]; ok {
			available = available.Sub(locked)
		}
	}
	return available
}

// AvailableTradeBalance returns what can be put into a new offer. For XLM
// the base fee and one base reserve (for the offer subentry) come off the
// top, floored at zero. For other assets it is AvailableBalance unchanged,
// including a possible negative value.
func (a *Account) AvailableTradeBalance(asset domain.Asset) decimal.Decimal {
	available := a.AvailableBalance(asset, true)
	if !asset.IsNative() {
		return available
	}
	available = available.Sub(BaseFee).Sub(BaseReserve)
	if available.IsNegative() {
		return decimal.Zero
	}
	return available
}

// AvailableSendBalance returns what can be sent in a payment. For XLM the
// base fee comes off the top, floored at zero.
func (a *Account) AvailableSendBalance(asset domain.Asset) decimal.Decimal {
	available := a.AvailableBalance(asset, true)
	if !asset.IsNative() {
		return available
	}
	available = available.Sub(BaseFee)
	if available.IsNegative() {
		return decimal.Zero
	}
	return available
}

// TotalBalance returns the unmodified parsed balance of the asset. Unlike
// AvailableBalance it makes no trustline check: "not held" and "held at
// zero" both come back as zero.
func (a *Account) TotalBalance(asset domain.Asset) decimal.Decimal {
	held, ok := a.Holding(asset)
	if !ok {
		return decimal.Zero
	}
	return domain.SafeParse(held.Balance)
}

// HasRequiredNativeBalanceForNewEntry reports whether the account can pay
// the reserve of one more subentry.
func (a *Account) HasRequiredNativeBalanceForNewEntry() bool {
	native, ok := a.NativeAsset()
	if !ok {
		return false
	}
	return a.AvailableBalance(native, true).Sub(BaseReserve).IsPositive()
}

// HasRequiredNativeBalanceForTrade reports whether a new offer can be opened.
func (a *Account) HasRequiredNativeBalanceForTrade() bool {
	native, ok := a.NativeAsset()
	if !ok {
		return false
	}
	return a.AvailableTradeBalance(native).IsPositive()
}

// HasRequiredNativeBalanceForSend reports whether a payment fee can be paid.
func (a *Account) HasRequiredNativeBalanceForSend() bool {
	native, ok := a.NativeAsset()
	if !ok {
		return false
	}
	return a.AvailableSendBalance(native).IsPositive()
}
