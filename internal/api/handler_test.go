package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mtlprog/wallet/internal/domain"
	"github.com/mtlprog/wallet/internal/exchange"
	"github.com/mtlprog/wallet/internal/graph"
	"github.com/mtlprog/wallet/internal/horizon"
	"github.com/mtlprog/wallet/internal/ledger"
)

const (
	testAccountID = "GAQ5ERJVI6IW5UVNPEVXUUVMXH3GCDHJ4BJAXMAAKPR5VBWWAUOMABIZ"
	testIssuer    = "GACKTN5DAZGWXRWB2WLM6OPBDHAMT6SJNGLJZPQMEZBUR4JUGBX2UK7V"

	testExchangeAddr = "GA5XIGA5C7QTPTWXQHY6MCJRMTRZDOSHR6EFIBNDQTCQHG262N4GGKTM"
)

type fakeAccounts struct {
	account    *ledger.Account
	graph      *graph.Graph
	refreshErr error
	refreshed  int
}

func (f *fakeAccounts) Account(id string) (*ledger.Account, bool) {
	if f.account == nil || f.account.AccountID != id {
		return nil, false
	}
	return f.account, true
}

func (f *fakeAccounts) Refresh(_ context.Context, id string) (*ledger.Account, error) {
	f.refreshed++
	if f.refreshErr != nil {
		return nil, f.refreshErr
	}
	return f.account, nil
}

func (f *fakeAccounts) Graph() *graph.Graph {
	if f.graph == nil {
		f.graph = graph.New()
	}
	return f.graph
}

type fakeOrderbook struct {
	book horizon.HorizonOrderbook
	err  error
}

func (f *fakeOrderbook) FetchOrderbook(context.Context, domain.Asset, domain.Asset, int) (horizon.HorizonOrderbook, error) {
	return f.book, f.err
}

func testLedgerAccount() *ledger.Account {
	snap := horizon.HorizonAccount{
		ID:            testAccountID,
		SubentryCount: 3,
		Balances: []horizon.HorizonBalance{
			{AssetType: "native", Balance: "1000"},
			{AssetType: "credit_alphanum12", AssetCode: "EURMTL", AssetIssuer: testIssuer, Balance: "500.5"},
		},
		Signers: []horizon.HorizonSigner{{Key: testAccountID}},
	}
	return ledger.Recompute(ledger.NewStub(testAccountID), snap)
}

func newTestServer(t *testing.T, accounts *fakeAccounts, books *fakeOrderbook, apiKey string) *httptest.Server {
	t.Helper()
	exchanges := exchange.NewDirectory([]exchange.Entry{
		{Name: "TestExchange", Address: testExchangeAddr, RequiresMemo: true},
	})
	srv := NewServer("0", NewHandler(accounts, books, exchanges), apiKey)
	ts := httptest.NewServer(srv.Handler)
	t.Cleanup(ts.Close)
	return ts
}

func getJSON(t *testing.T, url string, out any) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	if out != nil && resp.StatusCode == http.StatusOK {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode response: %v", err)
		}
	}
	return resp
}

func TestGetAccount(t *testing.T) {
	accounts := &fakeAccounts{account: testLedgerAccount()}
	ts := newTestServer(t, accounts, &fakeOrderbook{}, "")

	var view AccountView
	resp := getJSON(t, ts.URL+"/api/v1/accounts/"+testAccountID, &view)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if view.AccountID != testAccountID {
		t.Errorf("accountId = %q, want %q", view.AccountID, testAccountID)
	}
	if view.IsStub {
		t.Error("account should not be a stub after recompute")
	}
	if len(view.Balances) != 2 {
		t.Fatalf("balances = %d, want 2", len(view.Balances))
	}
	if view.Balances[0].Asset.ShortCode() != "XLM" {
		t.Errorf("first balance = %q, want native first", view.Balances[0].Asset.ShortCode())
	}
	// subentries=3, minBalance=2.5, available=1000-2.5
	if view.Balances[0].Available != "997.5" {
		t.Errorf("available native = %q, want 997.5", view.Balances[0].Available)
	}
}

func TestGetAccountNotTracked(t *testing.T) {
	ts := newTestServer(t, &fakeAccounts{}, &fakeOrderbook{}, "")

	resp := getJSON(t, ts.URL+"/api/v1/accounts/"+testAccountID, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
}

func TestGetReserves(t *testing.T) {
	accounts := &fakeAccounts{account: testLedgerAccount()}
	ts := newTestServer(t, accounts, &fakeOrderbook{}, "")

	var view ReservesView
	resp := getJSON(t, ts.URL+"/api/v1/accounts/"+testAccountID+"/reserves", &view)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if view.TotalSubentries != 3 {
		t.Errorf("totalSubentries = %d, want 3", view.TotalSubentries)
	}
	if view.TotalTrustlines != 1 {
		t.Errorf("totalTrustlines = %d, want 1", view.TotalTrustlines)
	}
	if view.TotalOffers != 2 {
		t.Errorf("totalOffers = %d, want 2", view.TotalOffers)
	}
	if view.MinBalance != "2.5" {
		t.Errorf("minBalance = %q, want 2.5", view.MinBalance)
	}
}

func TestGetOffers(t *testing.T) {
	account := testLedgerAccount()
	offer, ok := domain.NewAccountOffer(7, testAccountID, "100", "0.5",
		domain.NativeAsset(""), domain.CreditAsset("EURMTL", testIssuer, ""), 1, 2)
	if !ok {
		t.Fatal("offer fixture invalid")
	}
	account.MergeOffers([]domain.AccountOffer{offer})
	ts := newTestServer(t, &fakeAccounts{account: account}, &fakeOrderbook{}, "")

	var offers []domain.AccountOffer
	resp := getJSON(t, ts.URL+"/api/v1/accounts/"+testAccountID+"/offers", &offers)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if len(offers) != 1 || offers[0].ID != 7 {
		t.Fatalf("offers = %+v, want single offer with id 7", offers)
	}
}

func TestGetRelated(t *testing.T) {
	account := testLedgerAccount()
	tx := domain.Transaction{ID: "abc123"}
	op := domain.Operation{ID: "12884905985", TransactionHash: "abc123", Type: domain.OperationTypePayment}
	account.MergeTransactions([]domain.Transaction{tx})
	account.MergeOperations([]domain.Operation{op})

	accounts := &fakeAccounts{account: account, graph: graph.New()}
	txRec := graph.TransactionRecord(tx)
	opRec := graph.OperationRecord(op)
	accounts.graph.Add(txRec, opRec)
	accounts.graph.Connect(txRec, opRec)

	ts := newTestServer(t, accounts, &fakeOrderbook{}, "")

	var views []RelatedView
	resp := getJSON(t, ts.URL+"/api/v1/accounts/"+testAccountID+"/related/transaction:abc123", &views)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if len(views) != 1 {
		t.Fatalf("related = %d records, want 1", len(views))
	}
	if views[0].Kind != "operation" || views[0].NodeID != "operation:12884905985" {
		t.Errorf("related = %+v, want the operation node", views[0])
	}
}

func TestGetRelatedUnknownNode(t *testing.T) {
	accounts := &fakeAccounts{account: testLedgerAccount()}
	ts := newTestServer(t, accounts, &fakeOrderbook{}, "")

	resp := getJSON(t, ts.URL+"/api/v1/accounts/"+testAccountID+"/related/transaction:missing", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
}

func TestGetOrderbook(t *testing.T) {
	books := &fakeOrderbook{
		book: horizon.HorizonOrderbook{
			Bids: []horizon.HorizonOrderbookEntry{
				{Price: "0.2", Amount: "3.84724", PriceR: horizon.HorizonPriceR{N: 1, D: 5}},
			},
			Asks: []horizon.HorizonOrderbookEntry{
				{Price: "0.25", Amount: "4", PriceR: horizon.HorizonPriceR{N: 1, D: 4}},
			},
		},
	}
	ts := newTestServer(t, &fakeAccounts{}, books, "")

	url := ts.URL + "/api/v1/orderbook?selling=native&buying=EURMTL:" + testIssuer
	var view OrderbookView
	resp := getJSON(t, url, &view)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if view.BestPrice == nil || *view.BestPrice != "0.2" {
		t.Fatalf("bestPrice = %v, want 0.2", view.BestPrice)
	}
	if view.BidValue != "0.769448" {
		t.Errorf("bidValue = %q, want 0.769448", view.BidValue)
	}
	if !decimal.RequireFromString(view.AskValue).Equal(decimal.RequireFromString("1")) {
		t.Errorf("askValue = %q, want 1", view.AskValue)
	}
}

func TestGetOrderbookBadAsset(t *testing.T) {
	ts := newTestServer(t, &fakeAccounts{}, &fakeOrderbook{}, "")

	resp := getJSON(t, ts.URL+"/api/v1/orderbook?selling=native&buying=EURMTL", nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestGetOrderbookFetchError(t *testing.T) {
	books := &fakeOrderbook{err: errors.New("horizon down")}
	ts := newTestServer(t, &fakeAccounts{}, books, "")

	url := ts.URL + "/api/v1/orderbook?selling=native&buying=EURMTL:" + testIssuer
	resp := getJSON(t, url, nil)
	if resp.StatusCode != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", resp.StatusCode)
	}
}

func TestGetSendCheck(t *testing.T) {
	accounts := &fakeAccounts{account: testLedgerAccount()}
	ts := newTestServer(t, accounts, &fakeOrderbook{}, "")

	var view SendCheckView
	url := ts.URL + "/api/v1/accounts/" + testAccountID + "/send-check?destination=" + testExchangeAddr
	resp := getJSON(t, url, &view)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if !view.ValidAddress {
		t.Error("exchange address must validate")
	}
	if view.Exchange != "TestExchange" || !view.RequiresMemo {
		t.Errorf("view = %+v, want exchange with memo", view)
	}
	if !view.SufficientNative {
		t.Error("account with 1000 XLM can pay the send fee")
	}
}

func TestGetSendCheckUnknownDestination(t *testing.T) {
	accounts := &fakeAccounts{account: testLedgerAccount()}
	ts := newTestServer(t, accounts, &fakeOrderbook{}, "")

	var view SendCheckView
	url := ts.URL + "/api/v1/accounts/" + testAccountID + "/send-check?destination=" + testIssuer
	resp := getJSON(t, url, &view)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if view.Exchange != "" || view.RequiresMemo {
		t.Errorf("view = %+v, want no exchange match", view)
	}
}

func TestRefreshRequiresAuth(t *testing.T) {
	accounts := &fakeAccounts{account: testLedgerAccount()}
	ts := newTestServer(t, accounts, &fakeOrderbook{}, "secret-key")

	url := ts.URL + "/api/v1/accounts/" + testAccountID + "/refresh"

	resp, err := http.Post(url, "application/json", nil)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status without key = %d, want 401", resp.StatusCode)
	}
	if accounts.refreshed != 0 {
		t.Fatal("refresh must not run without auth")
	}

	req, err := http.NewRequest(http.MethodPost, url, nil)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Authorization", "Bearer secret-key")
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status with key = %d, want 200", resp.StatusCode)
	}
	if accounts.refreshed != 1 {
		t.Fatalf("refreshed = %d, want 1", accounts.refreshed)
	}
}

func TestRefreshFailure(t *testing.T) {
	accounts := &fakeAccounts{refreshErr: errors.New("horizon down")}
	ts := newTestServer(t, accounts, &fakeOrderbook{}, "")

	resp, err := http.Post(ts.URL+"/api/v1/accounts/"+testAccountID+"/refresh", "application/json", nil)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", resp.StatusCode)
	}
}
