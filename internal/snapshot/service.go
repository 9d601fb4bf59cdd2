package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mtlprog/wallet/internal/domain"
	"github.com/mtlprog/wallet/internal/ledger"
)

// AccountState is the serialized form of a ledger account. Balances and
// reserve figures are materialized at save time so historical snapshots can
// be rendered without replaying the reserve math.
type AccountState struct {
	AccountID            string         `json:"accountId"`
	InflationDestination string         `json:"inflationDestination,omitempty"`
	Assets               []domain.Asset `json:"assets"`

	TotalTrustlines   int `json:"totalTrustlines"`
	AdditionalSigners int `json:"additionalSigners"`
	TotalDataEntries  int `json:"totalDataEntries"`
	TotalSubentries   int `json:"totalSubentries"`

	MinBalance      decimal.Decimal `json:"minBalance"`
	AvailableNative decimal.Decimal `json:"availableNative"`

	Transactions map[string]domain.Transaction `json:"transactions,omitempty"`
	Operations   map[string]domain.Operation   `json:"operations,omitempty"`
	Effects      map[string]domain.Effect      `json:"effects,omitempty"`
	Offers       map[int64]domain.AccountOffer `json:"offers,omitempty"`

	OutstandingTradeAmounts map[string]decimal.Decimal `json:"outstandingTradeAmounts,omitempty"`

	CapturedAt time.Time `json:"capturedAt"`
}

// NewAccountState captures the current state of a ledger account.
func NewAccountState(a *ledger.Account) AccountState {
	var availableNative decimal.Decimal
	if native, ok := a.NativeAsset(); ok {
		availableNative = a.AvailableBalance(native, true)
	}

	return AccountState{
		AccountID:            a.AccountID,
		InflationDestination: a.InflationDestination,
		Assets:               a.Assets,
		TotalTrustlines:      a.TotalTrustlines,
		AdditionalSigners:    a.AdditionalSigners,
		TotalDataEntries:     a.TotalDataEntries,
		TotalSubentries:      a.TotalSubentries,
		MinBalance:           a.MinBalance(),
		AvailableNative:      availableNative,
		Transactions:         a.Transactions,
		Operations:           a.Operations,
		Effects:              a.Effects,
		Offers:               a.Offers,

		OutstandingTradeAmounts: a.OutstandingTradeAmounts,

		CapturedAt: time.Now().UTC(),
	}
}

// keepPerAccount bounds snapshot history per account.
const keepPerAccount = 90

// Service persists and retrieves account-state snapshots.
type Service struct {
	repo Repository
}

// NewService creates a new snapshot Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Save serializes the account and stores it, pruning old history.
// Implements the syncer's SnapshotStore.
func (s *Service) Save(ctx context.Context, account *ledger.Account) error {
	data, err := json.Marshal(NewAccountState(account))
	if err != nil {
		return fmt.Errorf("marshaling account state: %w", err)
	}
	if err := s.repo.Save(ctx, account.AccountID, data); err != nil {
		return err
	}
	return s.repo.Prune(ctx, account.AccountID, keepPerAccount)
}

// GetLatest retrieves the most recent snapshot for the account.
func (s *Service) GetLatest(ctx context.Context, accountID string) (*Snapshot, error) {
	return s.repo.GetLatest(ctx, accountID)
}

// List retrieves recent snapshots for the account.
func (s *Service) List(ctx context.Context, accountID string, limit int) ([]Snapshot, error) {
	return s.repo.List(ctx, accountID, limit)
}
