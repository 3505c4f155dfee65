package farm

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/osse101/Homestead_Go/internal/catalog"
	"github.com/osse101/Homestead_Go/internal/clock"
	"github.com/osse101/Homestead_Go/internal/database/memory"
	"github.com/osse101/Homestead_Go/internal/domain"
	"github.com/osse101/Homestead_Go/internal/event"
	"github.com/osse101/Homestead_Go/internal/repository"
)

var (
	start = time.Date(2024, 7, 1, 10, 0, 0, 0, time.UTC)

	turnip  = domain.CropMaster{ID: "turnip", Name: "Turnip", GrowthSeconds: 10, BuyPrice: 10, SellPrice: 20, Experience: 5, DisplayToken: "🥔"}
	carrot  = domain.CropMaster{ID: "carrot", Name: "Carrot", GrowthSeconds: 30, BuyPrice: 25, SellPrice: 60, Experience: 15, DisplayToken: "🥕"}
	pumpkin = domain.CropMaster{ID: "pumpkin", Name: "Pumpkin", GrowthSeconds: 60, BuyPrice: 50, SellPrice: 150, Experience: 40, DisplayToken: "🎃"}
)

// recorder collects every event published on the bus
type recorder struct {
	mu     sync.Mutex
	events []event.Event
}

func (r *recorder) handle(ctx context.Context, e event.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *recorder) types() []event.Type {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]event.Type, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

type fixture struct {
	store  *memory.Store
	clock  *clock.Simulated
	svc    Service
	events *recorder
}

func newFixture(t *testing.T, cfg Config) *fixture {
	t.Helper()

	store := memory.NewStore()
	_, err := store.InsertCropMasters(context.Background(), []domain.CropMaster{turnip, carrot, pumpkin})
	require.NoError(t, err)

	return newFixtureWithRepo(t, store, store, cfg)
}

func newFixtureWithRepo(t *testing.T, store *memory.Store, repo repository.Farm, cfg Config) *fixture {
	t.Helper()

	rec := &recorder{}
	bus := event.NewMemoryBus()
	for _, typ := range []event.Type{
		event.CropPlanted, event.CropHarvested, event.CropWitheredRemoved, event.CropWithered,
		event.PlayerProvisioned, event.ActionFailed, event.TransactionRetried,
	} {
		bus.Subscribe(typ, rec.handle)
	}

	clk := clock.NewSimulated(start)
	svc := NewService(repo, store, catalog.NewService(store, 0, 0), bus, clk, cfg)
	return &fixture{store: store, clock: clk, svc: svc, events: rec}
}

// sync provisions or resumes a player and returns its snapshot
func (f *fixture) sync(t *testing.T, username string) *domain.SyncResult {
	t.Helper()
	res, err := f.svc.Sync(context.Background(), username)
	require.NoError(t, err)
	return res
}

func (f *fixture) plant(username, slotID, cropID string) (*domain.ActionResult, error) {
	return f.svc.Execute(context.Background(), username, domain.PlantAction{SlotID: slotID, CropMasterID: cropID})
}

func (f *fixture) harvest(username, slotID string) (*domain.ActionResult, error) {
	return f.svc.Execute(context.Background(), username, domain.HarvestAction{SlotID: slotID})
}

// drain waits for asynchronous event delivery
func (f *fixture) drain(t *testing.T) {
	t.Helper()
	require.NoError(t, f.svc.Shutdown(context.Background()))
}

func (f *fixture) ledger(t *testing.T, username string) []domain.LedgerEntry {
	t.Helper()
	entries, err := f.svc.LedgerHistory(context.Background(), username, MaxLedgerLimit)
	require.NoError(t, err)
	return entries
}

// conflictingRepo makes its first `failures` transactions lose a serialization race
type conflictingRepo struct {
	repository.Farm
	failures int32
	begun    atomic.Int32
}

func (r *conflictingRepo) BeginTx(ctx context.Context) (repository.FarmTx, error) {
	tx, err := r.Farm.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	if r.begun.Add(1) <= r.failures {
		return &conflictTx{FarmTx: tx}, nil
	}
	return tx, nil
}

type conflictTx struct {
	repository.FarmTx
}

func (t *conflictTx) Commit(ctx context.Context) error {
	_ = t.FarmTx.Rollback(ctx)
	return domain.ErrTransactionConflict
}
