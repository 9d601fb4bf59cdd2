package domain

import "time"

// OperationType discriminates which payload an Operation carries.
type OperationType string

const (
	OperationTypePayment       OperationType = "payment"
	OperationTypeManageOffer   OperationType = "manage_offer"
	OperationTypeCreateAccount OperationType = "create_account"
	OperationTypeSetOptions    OperationType = "set_options"
	OperationTypeChangeTrust   OperationType = "change_trust"
	OperationTypeAllowTrust    OperationType = "allow_trust"
	OperationTypeAccountMerge  OperationType = "account_merge"
)

// Operation is a normalized ledger operation. Exactly one payload pointer is
// set, selected by Type; an unrecognized Horizon type yields an Operation
// with no payload at all.
type Operation struct {
	ID              string        `json:"id"`
	CreatedAt       time.Time     `json:"createdAt"`
	Type            OperationType `json:"type"`
	TransactionHash string        `json:"transactionHash"`

	Payment       *PaymentOp       `json:"payment,omitempty"`
	ManageOffer   *ManageOfferOp   `json:"manageOffer,omitempty"`
	CreateAccount *CreateAccountOp `json:"createAccount,omitempty"`
	SetOptions    *SetOptionsOp    `json:"setOptions,omitempty"`
	ChangeTrust   *ChangeTrustOp   `json:"changeTrust,omitempty"`
	AllowTrust    *AllowTrustOp    `json:"allowTrust,omitempty"`
	AccountMerge  *AccountMergeOp  `json:"accountMerge,omitempty"`
}

// PaymentOp carries the payload of a payment operation.
type PaymentOp struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Amount string `json:"amount"`
	Asset  Asset  `json:"asset"`
}

// ManageOfferOp carries the payload of a manage offer operation.
type ManageOfferOp struct {
	OfferID int64  `json:"offerId"`
	Amount  string `json:"amount"`
	Price   string `json:"price"`
	Selling Asset  `json:"selling"`
	Buying  Asset  `json:"buying"`
}

// CreateAccountOp carries the payload of a create account operation.
type CreateAccountOp struct {
	Funder          string `json:"funder"`
	Account         string `json:"account"`
	StartingBalance string `json:"startingBalance"`
}

// SetOptionsOp carries the payload of a set options operation.
type SetOptionsOp struct {
	HomeDomain           string `json:"homeDomain,omitempty"`
	InflationDestination string `json:"inflationDestination,omitempty"`
	SignerKey            string `json:"signerKey,omitempty"`
	SignerWeight         int    `json:"signerWeight,omitempty"`
}

// ChangeTrustOp carries the payload of a change trust operation.
type ChangeTrustOp struct {
	Trustor string `json:"trustor"`
	Trustee string `json:"trustee"`
	Asset   Asset  `json:"asset"`
	Limit   string `json:"limit"`
}

// AllowTrustOp carries the payload of an allow trust operation.
type AllowTrustOp struct {
	Trustor   string `json:"trustor"`
	Trustee   string `json:"trustee"`
	Asset     Asset  `json:"asset"`
	Authorize bool   `json:"authorize"`
}

// AccountMergeOp carries the payload of an account merge operation.
type AccountMergeOp struct {
	Account string `json:"account"`
	Into    string `json:"into"`
}
