package graph

import (
	"strconv"

	"github.com/mtlprog/wallet/internal/domain"
)

// Kind discriminates the concrete record held by a Record.
type Kind string

const (
	KindTransaction Kind = "transaction"
	KindOperation   Kind = "operation"
	KindEffect      Kind = "effect"
	KindOffer       Kind = "offer"
)

// Record is a tagged union over the record kinds the graph indexes. Exactly
// one payload is set, selected by kind; the typed accessors return false
// when asked for the wrong kind.
type Record struct {
	kind Kind

	tx     *domain.Transaction
	op     *domain.Operation
	effect *domain.Effect
	offer  *domain.AccountOffer
}

// TransactionRecord wraps a transaction for graph insertion.
func TransactionRecord(tx domain.Transaction) Record {
	return Record{kind: KindTransaction, tx: &tx}
}

// OperationRecord wraps an operation for graph insertion.
func OperationRecord(op domain.Operation) Record {
	return Record{kind: KindOperation, op: &op}
}

// EffectRecord wraps an effect for graph insertion.
func EffectRecord(e domain.Effect) Record {
	return Record{kind: KindEffect, effect: &e}
}

// OfferRecord wraps an account offer for graph insertion.
func OfferRecord(o domain.AccountOffer) Record {
	return Record{kind: KindOffer, offer: &o}
}

// Kind returns the record's kind tag.
func (r Record) Kind() Kind {
	return r.kind
}

// ObjectID returns the underlying record's own identifier.
func (r Record) ObjectID() string {
	switch r.kind {
	case KindTransaction:
		return r.tx.ID
	case KindOperation:
		return r.op.ID
	case KindEffect:
		return r.effect.ID
	case KindOffer:
		return strconv.FormatInt(r.offer.ID, 10)
	}
	return ""
}

// NodeID returns the composite graph key "<kind>:<object id>".
func (r Record) NodeID() string {
	return string(r.kind) + ":" + r.ObjectID()
}

// Transaction returns the wrapped transaction, if that is the record's kind.
func (r Record) Transaction() (domain.Transaction, bool) {
	if r.kind != KindTransaction {
		return domain.Transaction{}, false
	}
	return *r.tx, true
}

// Operation returns the wrapped operation, if that is the record's kind.
func (r Record) Operation() (domain.Operation, bool) {
	if r.kind != KindOperation {
		return domain.Operation{}, false
	}
	return *r.op, true
}

// Effect returns the wrapped effect, if that is the record's kind.
func (r Record) Effect() (domain.Effect, bool) {
	if r.kind != KindEffect {
		return domain.Effect{}, false
	}
	return *r.effect, true
}

// Offer returns the wrapped account offer, if that is the record's kind.
func (r Record) Offer() (domain.AccountOffer, bool) {
	if r.kind != KindOffer {
		return domain.AccountOffer{}, false
	}
	return *r.offer, true
}
