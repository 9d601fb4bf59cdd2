package domain

import "time"

// Transaction is a normalized ledger transaction as fetched for one account.
type Transaction struct {
	ID             string    `json:"id"`
	Ledger         int64     `json:"ledger"`
	CreatedAt      time.Time `json:"createdAt"`
	FeePaid        string    `json:"feePaid"`
	Memo           string    `json:"memo,omitempty"`
	MemoType       string    `json:"memoType,omitempty"`
	OperationCount int       `json:"operationCount"`
	SequenceNumber string    `json:"sequenceNumber"`
	SourceAccount  string    `json:"sourceAccount"`
	Signatures     []string  `json:"signatures,omitempty"`
}
