// Package orderbook derives best-price and aggregate value figures from a
// trading pair's bid and ask lists.
package orderbook

import (
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/mtlprog/wallet/internal/domain"
	"github.com/mtlprog/wallet/internal/horizon"
)

// Book is the order book of one trading pair. Bids and asks are kept in the
// order Horizon delivered them, which is best-first; the book never re-sorts.
type Book struct {
	Selling domain.Asset `json:"selling"`
	Buying  domain.Asset `json:"buying"`

	Bids []domain.OrderbookOffer `json:"bids"`
	Asks []domain.OrderbookOffer `json:"asks"`
}

// NewBook converts a raw Horizon orderbook response into a Book for the
// given pair.
func NewBook(selling, buying domain.Asset, ob horizon.HorizonOrderbook) Book {
	return Book{
		Selling: selling,
		Buying:  buying,
		Bids:    convertEntries(ob.Bids),
		Asks:    convertEntries(ob.Asks),
	}
}

func convertEntries(entries []horizon.HorizonOrderbookEntry) []domain.OrderbookOffer {
	return lo.Map(entries, func(e horizon.HorizonOrderbookEntry, _ int) domain.OrderbookOffer {
		return domain.OrderbookOffer{
			Price:       e.Price,
			Amount:      e.Amount,
			Numerator:   e.PriceR.N,
			Denominator: e.PriceR.D,
		}
	})
}

// BestPrice returns the price of the first bid, and false when no bids
// exist. A bid with an unparsable price degrades to zero rather than being
// skipped.
func (b Book) BestPrice() (decimal.Decimal, bool) {
	if len(b.Bids) == 0 {
		return decimal.Zero, false
	}
	return domain.SafeParse(b.Bids[0].Price), true
}

// BidValue returns the aggregate value of all bids (Σ amount × price).
func (b Book) BidValue() decimal.Decimal {
	return sumValues(b.Bids)
}

// AskValue returns the aggregate value of all asks.
func (b Book) AskValue() decimal.Decimal {
	return sumValues(b.Asks)
}

func sumValues(offers []domain.OrderbookOffer) decimal.Decimal {
	return lo.Reduce(offers, func(acc decimal.Decimal, o domain.OrderbookOffer, _ int) decimal.Decimal {
		return domain.SafeSum(acc, o.Value())
	}, decimal.Zero)
}
