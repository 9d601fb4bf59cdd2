package snapshot

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mtlprog/wallet/internal/domain"
	"github.com/mtlprog/wallet/internal/ledger"
)

const testAccountID = "GACKTN5DAZGWXRWB2WLM6OPBDHAMT6SJNGLJZPQMEZBUR4JUGBX2UK7V"

type fakeRepo struct {
	saved  map[string][]json.RawMessage
	pruned int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{saved: make(map[string][]json.RawMessage)}
}

func (f *fakeRepo) Save(_ context.Context, accountID string, data json.RawMessage) error {
	f.saved[accountID] = append(f.saved[accountID], data)
	return nil
}

func (f *fakeRepo) GetLatest(_ context.Context, accountID string) (*Snapshot, error) {
	entries := f.saved[accountID]
	if len(entries) == 0 {
		return nil, ErrNotFound
	}
	return &Snapshot{AccountID: accountID, Data: entries[len(entries)-1]}, nil
}

func (f *fakeRepo) List(_ context.Context, accountID string, _ int) ([]Snapshot, error) {
	var out []Snapshot
	for _, d := range f.saved[accountID] {
		out = append(out, Snapshot{AccountID: accountID, Data: d})
	}
	return out, nil
}

func (f *fakeRepo) Prune(context.Context, string, int) error {
	f.pruned++
	return nil
}

func testLedgerAccount() *ledger.Account {
	a := ledger.NewStub(testAccountID)
	a.Assets = []domain.Asset{domain.NativeAsset("1000")}
	a.TotalSubentries = 3
	return a
}

func TestSaveSerializesState(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	if err := svc.Save(context.Background(), testLedgerAccount()); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	latest, err := svc.GetLatest(context.Background(), testAccountID)
	if err != nil {
		t.Fatalf("GetLatest() error: %v", err)
	}

	var state AccountState
	if err := json.Unmarshal(latest.Data, &state); err != nil {
		t.Fatalf("stored data is not valid JSON: %v", err)
	}
	if state.AccountID != testAccountID {
		t.Errorf("accountId = %q, want %q", state.AccountID, testAccountID)
	}
	if state.MinBalance.String() != "2.5" {
		t.Errorf("minBalance = %s, want 2.5", state.MinBalance)
	}
	if state.AvailableNative.String() != "997.5" {
		t.Errorf("availableNative = %s, want 997.5", state.AvailableNative)
	}

	if repo.pruned != 1 {
		t.Errorf("prune calls = %d, want 1", repo.pruned)
	}
}

func TestGetLatestNotFound(t *testing.T) {
	svc := NewService(newFakeRepo())
	if _, err := svc.GetLatest(context.Background(), testAccountID); err != ErrNotFound {
		t.Errorf("GetLatest() error = %v, want ErrNotFound", err)
	}
}
