// Package exchange resolves well-known deposit addresses of custodial
// exchanges. Payments to these addresses need a memo, or funds are not
// credited on the far side; coordinators consult the directory before
// letting a payment through without one.
//
// The directory is constructed and injected rather than kept as process
// state, so tests can supply deterministic fixtures.
package exchange

import "github.com/samber/lo"

// Entry describes one known exchange deposit address.
type Entry struct {
	Name         string `json:"name"`
	Address      string `json:"address"`
	RequiresMemo bool   `json:"requiresMemo"`
}

// DefaultEntries lists the exchange deposit addresses the wallet ships with.
var DefaultEntries = []Entry{
	{Name: "Kraken", Address: "GA5XIGA5C7QTPTWXQHY6MCJRMTRZDOSHR6EFIBNDQTCQHG262N4GGKTM", RequiresMemo: true},
	{Name: "Bitfinex", Address: "GCO2IP3MJNUOKS4PUDI4C7LGGMQDJGXG3COYX3WSB4HHNAHKYV5YL3VC", RequiresMemo: true},
	{Name: "Binance", Address: "GAHK7EEG2WWHVKDNT4CEQFZGKF2LGDSW2IVM4S5DP42RBW3K6BTODB4A", RequiresMemo: true},
	{Name: "Coinbase", Address: "GDQP2KPQGKIHYJGXNUIYOMHARUARCA7DJT5FO2FFOOKY3B2WSQHG4W37", RequiresMemo: true},
}

// Directory answers exchange-address lookups.
type Directory struct {
	byAddress map[string]Entry
}

// NewDirectory builds a directory from the given entries. Use DefaultEntries
// for the production set, or a fixture slice in tests.
func NewDirectory(entries []Entry) *Directory {
	return &Directory{
		byAddress: lo.SliceToMap(entries, func(e Entry) (string, Entry) {
			return e.Address, e
		}),
	}
}

// Lookup returns the entry for the given address, if known.
func (d *Directory) Lookup(address string) (Entry, bool) {
	e, ok := d.byAddress[address]
	return e, ok
}

// IsExchange reports whether the address belongs to a known exchange.
func (d *Directory) IsExchange(address string) bool {
	_, ok := d.byAddress[address]
	return ok
}

// RequiresMemo reports whether payments to the address need a memo.
// Unknown addresses never require one.
func (d *Directory) RequiresMemo(address string) bool {
	e, ok := d.byAddress[address]
	return ok && e.RequiresMemo
}
