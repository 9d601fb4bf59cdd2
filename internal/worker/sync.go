package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"sync"
	"time"

	"github.com/samber/lo"

	"github.com/mtlprog/wallet/internal/domain"
	"github.com/mtlprog/wallet/internal/graph"
	"github.com/mtlprog/wallet/internal/horizon"
	"github.com/mtlprog/wallet/internal/ledger"
)

// recordPageLimit caps how many records of each kind one refresh pulls.
const recordPageLimit = 200

// HorizonClient defines the subset of the Horizon API the syncer uses.
type HorizonClient interface {
	FetchAccount(ctx context.Context, accountID string) (horizon.HorizonAccount, error)
	FetchTransactions(ctx context.Context, accountID, cursor string, limit int) ([]horizon.HorizonTransaction, error)
	FetchOperations(ctx context.Context, accountID, cursor string, limit int) ([]horizon.HorizonOperation, error)
	FetchEffects(ctx context.Context, accountID, cursor string, limit int) ([]horizon.HorizonEffect, error)
	FetchOffers(ctx context.Context, accountID string, limit int) ([]horizon.HorizonOffer, error)
}

// SnapshotStore persists refreshed account state. Optional.
type SnapshotStore interface {
	Save(ctx context.Context, account *ledger.Account) error
}

// Syncer owns the ledger state of the tracked accounts and the record graph.
// It is the single writer: every mutation runs inside Refresh under the
// write lock, and all reads go through accessor methods under the read lock.
type Syncer struct {
	horizon  HorizonClient
	store    SnapshotStore // optional
	interval time.Duration

	mu       sync.RWMutex
	accounts map[string]*ledger.Account
	graph    *graph.Graph
}

// NewSyncer creates a syncer tracking the given accounts, each starting as a
// stub until its first refresh. The store may be nil to skip persistence.
func NewSyncer(h HorizonClient, store SnapshotStore, tracked []string, interval time.Duration) *Syncer {
	accounts := make(map[string]*ledger.Account, len(tracked))
	for _, id := range tracked {
		accounts[id] = ledger.NewStub(id)
	}
	return &Syncer{
		horizon:  h,
		store:    store,
		interval: interval,
		accounts: accounts,
		graph:    graph.New(),
	}
}

// Account returns the current ledger state of a tracked account. The
// returned value is the published instance; treat it as read-only.
func (s *Syncer) Account(id string) (*ledger.Account, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.accounts[id]
	return a, ok
}

// Graph returns the currently published record graph. Like Account, the
// returned value is an immutable snapshot: each Refresh rebuilds into a
// copy and swaps the pointer, so queries on it need no further locking.
func (s *Syncer) Graph() *graph.Graph {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.graph
}

// Tracked returns the tracked account ids.
func (s *Syncer) Tracked() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.accounts))
	for id := range s.accounts {
		ids = append(ids, id)
	}
	return ids
}

// Track adds an account, starting from a stub. No-op if already tracked.
func (s *Syncer) Track(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accounts[id]; !ok {
		s.accounts[id] = ledger.NewStub(id)
	}
}

// Refresh fetches a full account update from Horizon and publishes it: raw
// snapshot, recent transactions, operations, effects and open offers. All
// network fetches happen before the write lock is taken; the merge itself
// works on a private copy of the record maps so readers of the previously
// published account never observe a partial update.
func (s *Syncer) Refresh(ctx context.Context, id string) (*ledger.Account, error) {
	snap, err := s.horizon.FetchAccount(ctx, id)
	if err != nil {
		if errors.Is(err, horizon.ErrNotFound) {
			// unfunded account: publish a fresh stub
			stub := ledger.NewStub(id)
			s.mu.Lock()
			s.accounts[id] = stub
			s.mu.Unlock()
			return stub, nil
		}
		return nil, fmt.Errorf("refreshing account %s: %w", id, err)
	}

	txs, err := s.horizon.FetchTransactions(ctx, id, "", recordPageLimit)
	if err != nil {
		return nil, fmt.Errorf("refreshing transactions for %s: %w", id, err)
	}
	ops, err := s.horizon.FetchOperations(ctx, id, "", recordPageLimit)
	if err != nil {
		return nil, fmt.Errorf("refreshing operations for %s: %w", id, err)
	}
	effects, err := s.horizon.FetchEffects(ctx, id, "", recordPageLimit)
	if err != nil {
		return nil, fmt.Errorf("refreshing effects for %s: %w", id, err)
	}
	rawOffers, err := s.horizon.FetchOffers(ctx, id, recordPageLimit)
	if err != nil {
		return nil, fmt.Errorf("refreshing offers for %s: %w", id, err)
	}
	offers := toOffers(rawOffers)

	s.mu.Lock()
	defer s.mu.Unlock()

	next := ledger.Recompute(s.accounts[id], snap)
	next.Effects = maps.Clone(next.Effects)
	next.Operations = maps.Clone(next.Operations)
	next.Transactions = maps.Clone(next.Transactions)
	next.Offers = maps.Clone(next.Offers)

	next.MergeTransactions(lo.Map(txs, func(r horizon.HorizonTransaction, _ int) domain.Transaction {
		return toTransaction(r)
	}))
	next.MergeOperations(lo.Map(ops, func(r horizon.HorizonOperation, _ int) domain.Operation {
		return toOperation(r)
	}))
	next.MergeEffects(lo.Map(effects, func(r horizon.HorizonEffect, _ int) domain.Effect {
		return toEffect(r)
	}))
	next.MergeOffers(offers)

	// Rebuild the graph into a copy and swap, like the account itself:
	// readers holding the previous pointer keep a consistent view.
	g := s.graph.Clone()
	index(g, next)
	s.graph = g

	s.accounts[id] = next
	return next, nil
}

// index registers the account's records in the graph and wires the known
// relationships: operation → transaction (by hash) and effect → operation
// (by the effect id's operation prefix).
func index(g *graph.Graph, a *ledger.Account) {
	for _, tx := range a.Transactions {
		g.Add(graph.TransactionRecord(tx))
	}
	for _, op := range a.Operations {
		rec := graph.OperationRecord(op)
		g.Add(rec)
		if tx, ok := a.Transactions[op.TransactionHash]; ok {
			g.AddEdge(rec.NodeID(), graph.TransactionRecord(tx).NodeID())
		}
	}
	for _, e := range a.Effects {
		rec := graph.EffectRecord(e)
		g.Add(rec)
		if opID, ok := operationIDOfEffect(e.ID); ok {
			if op, found := a.Operations[opID]; found {
				g.AddEdge(rec.NodeID(), graph.OperationRecord(op).NodeID())
			}
		}
	}
	for _, o := range a.Offers {
		g.Add(graph.OfferRecord(o))
	}
}

// refreshAll refreshes every tracked account, persisting each result when a
// store is configured. Failures are logged per account and do not stop the
// sweep.
func (s *Syncer) refreshAll(ctx context.Context) {
	for _, id := range s.Tracked() {
		account, err := s.Refresh(ctx, id)
		if err != nil {
			slog.Error("Syncer: refresh failed", "account", id, "error", err)
			continue
		}
		slog.Info("Syncer: account refreshed", "account", id,
			"assets", len(account.Assets), "offers", len(account.Offers))

		if s.store != nil && !account.IsStub() {
			if err := s.store.Save(ctx, account); err != nil {
				slog.Error("Syncer: snapshot save failed", "account", id, "error", err)
			}
		}
	}
}

// Run starts the sync loop. It refreshes immediately, then on every tick,
// and blocks until the context is cancelled.
func (s *Syncer) Run(ctx context.Context) {
	slog.Info("Syncer: starting", "interval", s.interval)

	s.refreshAll(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("Syncer: shutting down")
			return
		case <-ticker.C:
			s.refreshAll(ctx)
		}
	}
}
