package domain

import "time"

// EffectType classifies an effect record. Only the kinds the wallet renders
// are named; anything else is carried through verbatim as EffectType(raw).
type EffectType string

const (
	EffectTypeAccountCreated   EffectType = "account_created"
	EffectTypeAccountCredited  EffectType = "account_credited"
	EffectTypeAccountDebited   EffectType = "account_debited"
	EffectTypeTrade            EffectType = "trade"
	EffectTypeTrustlineCreated EffectType = "trustline_created"
	EffectTypeTrustlineRemoved EffectType = "trustline_removed"
)

// Effect is a normalized side-effect record produced by an operation.
// Amount is set for credit/debit effects; SoldAmount/BoughtAmount and the
// sold/bought asset pair are set for trades.
type Effect struct {
	ID           string     `json:"id"`
	PagingToken  string     `json:"pagingToken"`
	Type         EffectType `json:"type"`
	CreatedAt    time.Time  `json:"createdAt"`
	Amount       string     `json:"amount,omitempty"`
	SoldAmount   string     `json:"soldAmount,omitempty"`
	BoughtAmount string     `json:"boughtAmount,omitempty"`
	Asset        Asset      `json:"asset,omitempty"`
	SoldAsset    Asset      `json:"soldAsset,omitempty"`
	BoughtAsset  Asset      `json:"boughtAsset,omitempty"`
}
