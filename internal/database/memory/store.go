// Package memory is an in-process implementation of the farm repositories.
//
// It gives the same guarantees as the postgres driver for a single process:
// every FarmTx holds a per-player lock from GetPlayerForUpdate until Commit or
// Rollback and works on a private copy, so a rolled back transaction leaves no
// trace and concurrent actions on one player are serialised.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/osse101/Homestead_Go/internal/concurrency"
	"github.com/osse101/Homestead_Go/internal/domain"
	"github.com/osse101/Homestead_Go/internal/ledger"
	"github.com/osse101/Homestead_Go/internal/repository"
)

var (
	_ repository.Farm    = (*Store)(nil)
	_ repository.Ledger  = (*Store)(nil)
	_ repository.Catalog = (*Store)(nil)
)

type playerRecord struct {
	player domain.Player
	wallet domain.Wallet
	slots  []domain.FarmSlot
}

func (r *playerRecord) clone() *playerRecord {
	cp := &playerRecord{
		player: r.player,
		wallet: r.wallet,
		slots:  make([]domain.FarmSlot, len(r.slots)),
	}
	for i, s := range r.slots {
		s.Crop = s.Crop.Clone()
		cp.slots[i] = s
	}
	return cp
}

func (r *playerRecord) farm() *domain.Farm {
	c := r.clone()
	return &domain.Farm{Player: c.player, Wallet: c.wallet, Slots: c.slots}
}

// Store keeps every player, the catalog and the ledger in memory
type Store struct {
	mu      sync.RWMutex
	locks   *concurrency.LockManager
	players map[string]*playerRecord // by username
	byID    map[string]string        // player id -> username
	crops   map[string]string        // crop id -> username
	masters map[string]domain.CropMaster
	entries map[string][]domain.LedgerEntry // by wallet id
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		locks:   concurrency.NewLockManager(),
		players: make(map[string]*playerRecord),
		byID:    make(map[string]string),
		crops:   make(map[string]string),
		masters: make(map[string]domain.CropMaster),
		entries: make(map[string][]domain.LedgerEntry),
	}
}

// Ping always succeeds
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

// Close is a no-op
func (s *Store) Close() {}

// GetPlayerByUsername returns a copy of the player
func (s *Store) GetPlayerByUsername(ctx context.Context, username string) (*domain.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.players[username]
	if !ok {
		return nil, domain.ErrPlayerNotFound
	}
	p := rec.player
	return &p, nil
}

// ProvisionPlayer creates the player if it does not exist yet
func (s *Store) ProvisionPlayer(ctx context.Context, username string, p domain.Provisioning) (*domain.Player, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if rec, ok := s.players[username]; ok {
		existing := rec.player
		return &existing, false, nil
	}

	rec := &playerRecord{
		player: domain.Player{ID: uuid.NewString(), Username: username, CreatedAt: p.At},
	}
	rec.wallet = domain.Wallet{ID: uuid.NewString(), PlayerID: rec.player.ID, Gold: p.Gold, Gems: p.Gems}
	rec.slots = make([]domain.FarmSlot, p.Slots)
	for i := range rec.slots {
		rec.slots[i] = domain.FarmSlot{
			ID:       uuid.NewString(),
			PlayerID: rec.player.ID,
			Index:    i,
			Status:   domain.SlotStatusEmpty,
		}
	}

	s.players[username] = rec
	s.byID[rec.player.ID] = username
	s.entries[rec.wallet.ID] = append(s.entries[rec.wallet.ID], ledger.NewInitialGrant(rec.wallet.ID, p.Gold, p.At))

	created := rec.player
	return &created, true, nil
}

// LoadFarm returns a copy of the player's committed state
func (s *Store) LoadFarm(ctx context.Context, playerID string) (*domain.Farm, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, err := s.recordByID(playerID)
	if err != nil {
		return nil, err
	}
	return rec.farm(), nil
}

// MarkCropWithered sets the sticky flag, waiting for any in-flight action on the owner
func (s *Store) MarkCropWithered(ctx context.Context, cropID string) (bool, error) {
	s.mu.RLock()
	username, ok := s.crops[cropID]
	var playerID string
	if ok {
		playerID = s.players[username].player.ID
	}
	s.mu.RUnlock()
	if !ok {
		return false, nil
	}

	release, err := s.locks.Acquire(ctx, playerID)
	if err != nil {
		return false, err
	}
	defer release()

	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.players[username]
	for i := range rec.slots {
		c := rec.slots[i].Crop
		if c == nil || c.ID != cropID {
			continue
		}
		if c.IsWithered() {
			return false, nil
		}
		c.MarkWithered()
		return true, nil
	}
	return false, nil
}

// BeginTx starts a transaction
func (s *Store) BeginTx(ctx context.Context) (repository.FarmTx, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &farmTx{store: s}, nil
}

// ListEntries returns the newest entries first
func (s *Store) ListEntries(ctx context.Context, walletID string, limit int) ([]domain.LedgerEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := s.entries[walletID]
	n := len(all)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]domain.LedgerEntry, 0, n)
	for i := len(all) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, all[i])
	}
	return out, nil
}

// ListCropMasters returns the catalog ordered by buy price, then name
func (s *Store) ListCropMasters(ctx context.Context) ([]domain.CropMaster, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.CropMaster, 0, len(s.masters))
	for _, m := range s.masters {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].BuyPrice != out[j].BuyPrice {
			return out[i].BuyPrice < out[j].BuyPrice
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

// GetCropMaster returns one catalog entry
func (s *Store) GetCropMaster(ctx context.Context, id string) (*domain.CropMaster, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.masters[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrCropMasterNotFound, id)
	}
	return &m, nil
}

// InsertCropMasters adds crops whose id and name are both unused
func (s *Store) InsertCropMasters(ctx context.Context, crops []domain.CropMaster) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make(map[string]bool, len(s.masters))
	for _, m := range s.masters {
		names[m.Name] = true
	}

	inserted := 0
	for _, c := range crops {
		if _, ok := s.masters[c.ID]; ok || names[c.Name] {
			continue
		}
		if c.ID == "" {
			c.ID = uuid.NewString()
		}
		s.masters[c.ID] = c
		names[c.Name] = true
		inserted++
	}
	return inserted, nil
}

func (s *Store) recordByID(playerID string) (*playerRecord, error) {
	username, ok := s.byID[playerID]
	if !ok {
		return nil, domain.ErrPlayerNotFound
	}
	return s.players[username], nil
}
