package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/samber/lo"

	"github.com/mtlprog/wallet/internal/domain"
	"github.com/mtlprog/wallet/internal/exchange"
	"github.com/mtlprog/wallet/internal/graph"
	"github.com/mtlprog/wallet/internal/horizon"
	"github.com/mtlprog/wallet/internal/ledger"
	"github.com/mtlprog/wallet/internal/orderbook"
)

// AccountSource provides the ledger state and graph kept by the syncer.
type AccountSource interface {
	Account(id string) (*ledger.Account, bool)
	Refresh(ctx context.Context, id string) (*ledger.Account, error)
	Graph() *graph.Graph
}

// OrderbookFetcher provides order books from Horizon.
type OrderbookFetcher interface {
	FetchOrderbook(ctx context.Context, selling, buying domain.Asset, limit int) (horizon.HorizonOrderbook, error)
}

// Handler provides HTTP endpoints for the wallet API.
type Handler struct {
	accounts  AccountSource
	horizon   OrderbookFetcher
	exchanges *exchange.Directory
}

// NewHandler creates a new API handler.
func NewHandler(accounts AccountSource, horizon OrderbookFetcher, exchanges *exchange.Directory) *Handler {
	return &Handler{accounts: accounts, horizon: horizon, exchanges: exchanges}
}

// BalanceView is the per-asset balance breakdown returned by the API.
type BalanceView struct {
	Asset          domain.Asset `json:"asset"`
	Total          string       `json:"total"`
	Available      string       `json:"available"`
	AvailableTrade string       `json:"availableTrade"`
	AvailableSend  string       `json:"availableSend"`
}

// AccountView is the account summary returned by the API.
type AccountView struct {
	AccountID            string        `json:"accountId"`
	InflationDestination string        `json:"inflationDestination,omitempty"`
	IsStub               bool          `json:"isStub"`
	Balances             []BalanceView `json:"balances"`
}

// ReservesView is the reserve breakdown returned by the API.
type ReservesView struct {
	TotalTrustlines   int `json:"totalTrustlines"`
	TotalDataEntries  int `json:"totalDataEntries"`
	TotalOffers       int `json:"totalOffers"`
	TotalSubentries   int `json:"totalSubentries"`
	AdditionalSigners int `json:"additionalSigners"`

	BaseAmount         string `json:"baseAmount"`
	TrustlinesReserve  string `json:"trustlinesReserve"`
	OffersReserve      string `json:"offersReserve"`
	DataEntriesReserve string `json:"dataEntriesReserve"`
	SignersReserve     string `json:"signersReserve"`
	MinBalance         string `json:"minBalance"`
	NewEntryMinBalance string `json:"newEntryMinBalance"`
}

func (h *Handler) account(w http.ResponseWriter, r *http.Request) (*ledger.Account, bool) {
	id := r.PathValue("id")
	account, ok := h.accounts.Account(id)
	if !ok {
		writeError(w, http.StatusNotFound, "account not tracked")
		return nil, false
	}
	return account, true
}

func balanceViews(a *ledger.Account) []BalanceView {
	return lo.Map(a.Assets, func(asset domain.Asset, _ int) BalanceView {
		return BalanceView{
			Asset:          asset,
			Total:          domain.FormatAmount(a.TotalBalance(asset)),
			Available:      domain.FormatAmount(a.AvailableBalance(asset, true)),
			AvailableTrade: domain.FormatAmount(a.AvailableTradeBalance(asset)),
			AvailableSend:  domain.FormatAmount(a.AvailableSendBalance(asset)),
		}
	})
}

// GetAccount handles GET /api/v1/accounts/{id}.
func (h *Handler) GetAccount(w http.ResponseWriter, r *http.Request) {
	account, ok := h.account(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, AccountView{
		AccountID:            account.AccountID,
		InflationDestination: account.InflationDestination,
		IsStub:               account.IsStub(),
		Balances:             balanceViews(account),
	})
}

// GetBalances handles GET /api/v1/accounts/{id}/balances.
func (h *Handler) GetBalances(w http.ResponseWriter, r *http.Request) {
	account, ok := h.account(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, balanceViews(account))
}

// GetReserves handles GET /api/v1/accounts/{id}/reserves.
func (h *Handler) GetReserves(w http.ResponseWriter, r *http.Request) {
	account, ok := h.account(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, ReservesView{
		TotalTrustlines:   account.TotalTrustlines,
		TotalDataEntries:  account.TotalDataEntries,
		TotalOffers:       account.TotalOffers(),
		TotalSubentries:   account.TotalSubentries,
		AdditionalSigners: account.AdditionalSigners,

		BaseAmount:         domain.FormatAmount(account.BaseAmount()),
		TrustlinesReserve:  domain.FormatAmount(account.TrustlinesReserve()),
		OffersReserve:      domain.FormatAmount(account.OffersReserve()),
		DataEntriesReserve: domain.FormatAmount(account.DataEntriesReserve()),
		SignersReserve:     domain.FormatAmount(account.SignersReserve()),
		MinBalance:         domain.FormatAmount(account.MinBalance()),
		NewEntryMinBalance: domain.FormatAmount(account.NewEntryMinBalance()),
	})
}

// GetTransactions handles GET /api/v1/accounts/{id}/transactions.
func (h *Handler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	account, ok := h.account(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, lo.Values(account.Transactions))
}

// GetOperations handles GET /api/v1/accounts/{id}/operations.
func (h *Handler) GetOperations(w http.ResponseWriter, r *http.Request) {
	account, ok := h.account(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, lo.Values(account.Operations))
}

// GetEffects handles GET /api/v1/accounts/{id}/effects.
func (h *Handler) GetEffects(w http.ResponseWriter, r *http.Request) {
	account, ok := h.account(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, lo.Values(account.Effects))
}

// GetOffers handles GET /api/v1/accounts/{id}/offers.
func (h *Handler) GetOffers(w http.ResponseWriter, r *http.Request) {
	account, ok := h.account(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, lo.Values(account.Offers))
}

// RelatedView wraps one record related to the queried node.
type RelatedView struct {
	Kind   string `json:"kind"`
	NodeID string `json:"nodeId"`
	Record any    `json:"record"`
}

// GetRelated handles GET /api/v1/accounts/{id}/related/{node}. The node
// path value is a graph node identifier such as "operation:12884905985".
func (h *Handler) GetRelated(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.account(w, r); !ok {
		return
	}

	node := r.PathValue("node")
	g := h.accounts.Graph()
	if _, ok := g.Node(node); !ok {
		writeError(w, http.StatusNotFound, "unknown node")
		return
	}

	views := lo.Map(g.Related(node), func(rec graph.Record, _ int) RelatedView {
		v := RelatedView{Kind: string(rec.Kind()), NodeID: rec.NodeID()}
		switch rec.Kind() {
		case graph.KindTransaction:
			v.Record, _ = rec.Transaction()
		case graph.KindOperation:
			v.Record, _ = rec.Operation()
		case graph.KindEffect:
			v.Record, _ = rec.Effect()
		case graph.KindOffer:
			v.Record, _ = rec.Offer()
		}
		return v
	})
	writeJSON(w, http.StatusOK, views)
}

// SendCheckView is the result of a pre-send validation.
type SendCheckView struct {
	Destination      string `json:"destination"`
	ValidAddress     bool   `json:"validAddress"`
	Exchange         string `json:"exchange,omitempty"`
	RequiresMemo     bool   `json:"requiresMemo"`
	SufficientNative bool   `json:"sufficientNative"`
}

// GetSendCheck handles GET /api/v1/accounts/{id}/send-check?destination=G...
// It validates the destination address, flags known exchange deposit
// addresses that need a memo, and checks the sender's native balance
// against the send fee.
func (h *Handler) GetSendCheck(w http.ResponseWriter, r *http.Request) {
	account, ok := h.account(w, r)
	if !ok {
		return
	}

	dest := r.URL.Query().Get("destination")
	view := SendCheckView{
		Destination:      dest,
		ValidAddress:     domain.IsValidAddress(dest),
		SufficientNative: account.HasRequiredNativeBalanceForSend(),
	}
	if entry, ok := h.exchanges.Lookup(dest); ok {
		view.Exchange = entry.Name
		view.RequiresMemo = entry.RequiresMemo
	}
	writeJSON(w, http.StatusOK, view)
}

// RefreshAccount handles POST /api/v1/accounts/{id}/refresh.
func (h *Handler) RefreshAccount(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	account, err := h.accounts.Refresh(r.Context(), id)
	if err != nil {
		slog.Error("failed to refresh account", "account", id, "error", err)
		writeError(w, http.StatusBadGateway, "refresh failed")
		return
	}
	writeJSON(w, http.StatusOK, AccountView{
		AccountID:            account.AccountID,
		InflationDestination: account.InflationDestination,
		IsStub:               account.IsStub(),
		Balances:             balanceViews(account),
	})
}

// OrderbookView is the order book summary returned by the API.
type OrderbookView struct {
	Book      orderbook.Book `json:"book"`
	BestPrice *string        `json:"bestPrice"`
	BidValue  string         `json:"bidValue"`
	AskValue  string         `json:"askValue"`
}

// GetOrderbook handles GET /api/v1/orderbook?selling=...&buying=...
// Assets are given in canonical form: "native" or "CODE:ISSUER".
func (h *Handler) GetOrderbook(w http.ResponseWriter, r *http.Request) {
	selling, ok := parseAssetParam(r.URL.Query().Get("selling"))
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid selling asset")
		return
	}
	buying, ok := parseAssetParam(r.URL.Query().Get("buying"))
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid buying asset")
		return
	}

	raw, err := h.horizon.FetchOrderbook(r.Context(), selling, buying, 20)
	if err != nil {
		slog.Error("failed to fetch orderbook", "error", err)
		writeError(w, http.StatusBadGateway, "orderbook fetch failed")
		return
	}

	book := orderbook.NewBook(selling, buying, raw)
	view := OrderbookView{
		Book:     book,
		BidValue: domain.FormatAmount(book.BidValue()),
		AskValue: domain.FormatAmount(book.AskValue()),
	}
	if price, ok := book.BestPrice(); ok {
		s := domain.FormatAmount(price)
		view.BestPrice = &s
	}
	writeJSON(w, http.StatusOK, view)
}

// parseAssetParam parses "native" or "CODE:ISSUER".
func parseAssetParam(s string) (domain.Asset, bool) {
	if s == "native" {
		return domain.NativeAsset(""), true
	}
	code, issuer, found := strings.Cut(s, ":")
	if !found || code == "" || !domain.IsValidAddress(issuer) {
		return domain.Asset{}, false
	}
	return domain.CreditAsset(code, issuer, ""), true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Error("failed to marshal JSON response", "error", err)
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		slog.Warn("failed to write HTTP response body", "error", err)
		return
	}
	_, _ = w.Write([]byte("\n"))
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
