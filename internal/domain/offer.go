package domain

import "github.com/shopspring/decimal"

// AccountOffer is an open trade offer held by an account. Construction is
// strict, unlike the rest of the model: see NewAccountOffer.
type AccountOffer struct {
	ID          int64  `json:"id"`
	Seller      string `json:"seller"`
	Selling     Asset  `json:"selling"`
	Buying      Asset  `json:"buying"`
	Amount      string `json:"amount"`
	Price       string `json:"price"`
	Numerator   int32  `json:"priceN"`
	Denominator int32  `json:"priceD"`
}

// NewAccountOffer validates and builds an AccountOffer. It returns false if
// the amount is not a decimal or the seller is not a well-formed address:
// a partially populated offer must never reach the ledger's offer map.
// The price string is not validated here; Value degrades it to zero instead.
func NewAccountOffer(id int64, seller, amount, price string, selling, buying Asset, numerator, denominator int32) (AccountOffer, bool) {
	if _, err := decimal.NewFromString(amount); err != nil {
		return AccountOffer{}, false
	}
	if !IsValidAddress(seller) {
		return AccountOffer{}, false
	}
	return AccountOffer{
		ID:          id,
		Seller:      seller,
		Selling:     selling,
		Buying:      buying,
		Amount:      amount,
		Price:       price,
		Numerator:   numerator,
		Denominator: denominator,
	}, true
}

// Value returns amount × price, zero if either fails to parse.
func (o AccountOffer) Value() decimal.Decimal {
	return SafeMultiply(o.Amount, o.Price)
}

// OrderbookOffer is a single aggregated bid or ask in an order book.
type OrderbookOffer struct {
	Price       string `json:"price"`
	Amount      string `json:"amount"`
	Numerator   int32  `json:"priceN"`
	Denominator int32  `json:"priceD"`
}

// Value returns amount × price, zero if either fails to parse.
func (o OrderbookOffer) Value() decimal.Decimal {
	return SafeMultiply(o.Amount, o.Price)
}
