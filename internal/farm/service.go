// Package farm is the economy transaction executor and the session resume
// flow built on top of it.
package farm

import (
	"context"
	"sync"
	"time"

	"github.com/osse101/Homestead_Go/internal/catalog"
	"github.com/osse101/Homestead_Go/internal/clock"
	"github.com/osse101/Homestead_Go/internal/domain"
	"github.com/osse101/Homestead_Go/internal/event"
	"github.com/osse101/Homestead_Go/internal/ledger"
	"github.com/osse101/Homestead_Go/internal/logger"
	"github.com/osse101/Homestead_Go/internal/repository"
)

// Service defines the farm operations
type Service interface {
	// Sync resolves the player (creating it on first contact), persists
	// wither transitions that happened while they were away and returns a
	// snapshot. It never fails because the username is new.
	Sync(ctx context.Context, username string) (*domain.SyncResult, error)

	// Execute applies one action atomically and returns the committed state
	Execute(ctx context.Context, username string, action domain.Action) (*domain.ActionResult, error)

	// LedgerHistory returns the player's most recent ledger entries, newest first
	LedgerHistory(ctx context.Context, username string, limit int) ([]domain.LedgerEntry, error)

	// VerifyLedger replays the full ledger against the wallet balance
	VerifyLedger(ctx context.Context, username string) (*LedgerReport, error)

	Shutdown(ctx context.Context) error
}

// Config tunes the executor. Zero values fall back to the package defaults.
type Config struct {
	TxTimeout            time.Duration
	MaxAttempts          int
	ReconcileConcurrency int

	InitialGold  int64
	InitialGems  int64
	InitialSlots int

	Pricing Pricing
}

func (c Config) withDefaults() Config {
	if c.TxTimeout <= 0 {
		c.TxTimeout = DefaultTxTimeout
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = DefaultMaxAttempts
	}
	if c.ReconcileConcurrency <= 0 {
		c.ReconcileConcurrency = DefaultReconcileConcurrency
	}
	if c.InitialSlots <= 0 {
		c.InitialSlots = DefaultInitialSlots
	}
	if c.Pricing.Quality == 0 {
		c.Pricing.Quality = DefaultMultiplier
	}
	if c.Pricing.Market == 0 {
		c.Pricing.Market = DefaultMultiplier
	}
	return c
}

// DefaultConfig returns the stock economy settings
func DefaultConfig() Config {
	return Config{
		InitialGold:  DefaultInitialGold,
		InitialGems:  DefaultInitialGems,
		InitialSlots: DefaultInitialSlots,
	}.withDefaults()
}

// LedgerReport is the result of VerifyLedger
type LedgerReport struct {
	WalletID   string                `json:"walletId"`
	Gold       int64                 `json:"gold"`
	LedgerSum  int64                 `json:"ledgerSum"`
	EntryCount int                   `json:"entryCount"`
	Consistent bool                  `json:"consistent"`
	Problem    string                `json:"problem,omitempty"`
	History    []ledger.BalancePoint `json:"history"`
}

type service struct {
	repo       repository.Farm
	ledgerRepo repository.Ledger
	catalog    catalog.Service
	bus        event.Bus
	clock      clock.Clock
	cfg        Config

	wg sync.WaitGroup
}

// NewService creates a new farm service. bus may be nil.
func NewService(repo repository.Farm, ledgerRepo repository.Ledger, catalogSvc catalog.Service, bus event.Bus, clk clock.Clock, cfg Config) Service {
	if clk == nil {
		clk = clock.NewReal()
	}
	return &service{
		repo:       repo,
		ledgerRepo: ledgerRepo,
		catalog:    catalogSvc,
		bus:        bus,
		clock:      clk,
		cfg:        cfg.withDefaults(),
	}
}

// Shutdown waits for in-flight event publishing to finish
func (s *service) Shutdown(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Info(LogMsgShutdownWaiting)

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Info(LogMsgShutdownComplete)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
