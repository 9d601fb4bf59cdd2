package domain

import "fmt"

// NativeShortCode is the display code of the native lumens asset.
const NativeShortCode = "XLM"

// AssetType represents the Stellar asset type classification.
type AssetType string

const (
	AssetTypeNative           AssetType = "native"
	AssetTypeCreditAlphanum4  AssetType = "credit_alphanum4"
	AssetTypeCreditAlphanum12 AssetType = "credit_alphanum12"
)

// AssetTypeFromCode derives the credit asset type from the code length.
func AssetTypeFromCode(code string) AssetType {
	if len(code) <= 4 {
		return AssetTypeCreditAlphanum4
	}
	return AssetTypeCreditAlphanum12
}

// Asset is a balance line held by an account: the asset identity plus the
// current balance string as reported by Horizon. Identity is the
// (Type, Code, Issuer) triple; Balance never participates in equality.
type Asset struct {
	Type    AssetType `json:"type"`
	Code    string    `json:"code,omitempty"`
	Issuer  string    `json:"issuer,omitempty"`
	Balance string    `json:"balance,omitempty"`
}

// NativeAsset returns the native XLM asset with the given balance.
// Native assets never carry a code or issuer.
func NativeAsset(balance string) Asset {
	return Asset{Type: AssetTypeNative, Balance: balance}
}

// CreditAsset returns an issued asset with the given balance.
func CreditAsset(code, issuer, balance string) Asset {
	return Asset{Type: AssetTypeFromCode(code), Code: code, Issuer: issuer, Balance: balance}
}

// IsNative returns true if this asset is the native XLM.
func (a Asset) IsNative() bool {
	return a.Type == AssetTypeNative
}

// ShortCode returns "XLM" for the native asset, the asset code otherwise.
func (a Asset) ShortCode() string {
	if a.IsNative() {
		return NativeShortCode
	}
	return a.Code
}

// Key returns the map key for this asset, derived from ShortCode only.
// A native asset and an issued asset with code "XLM" therefore share a key;
// callers keying maps by asset must be aware of that collision.
func (a Asset) Key() string {
	return a.ShortCode()
}

// Equal compares asset identity: type, code and issuer. Balance is ignored,
// so the same trustline observed at two balances is one asset.
func (a Asset) Equal(b Asset) bool {
	return a.Type == b.Type && a.Code == b.Code && a.Issuer == b.Issuer
}

// Canonical returns a canonical string representation: "native" for XLM,
// "CODE:ISSUER" for credits.
func (a Asset) Canonical() string {
	if a.IsNative() {
		return "native"
	}
	return fmt.Sprintf("%s:%s", a.Code, a.Issuer)
}

// HasZeroBalance reports whether the balance is zero. An empty or
// unparsable balance string counts as zero, not as an error.
func (a Asset) HasZeroBalance() bool {
	return SafeParse(a.Balance).IsZero()
}
