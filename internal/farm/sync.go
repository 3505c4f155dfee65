package farm

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/osse101/Homestead_Go/internal/domain"
	"github.com/osse101/Homestead_Go/internal/event"
	"github.com/osse101/Homestead_Go/internal/growth"
	"github.com/osse101/Homestead_Go/internal/logger"
)

func (s *service) Sync(ctx context.Context, username string) (*domain.SyncResult, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgSyncCalled, "username", username)

	ctx, cancel := context.WithTimeout(ctx, s.cfg.TxTimeout)
	defer cancel()

	now := s.clock.Now()

	player, provisioned, err := s.resolvePlayer(ctx, username, now)
	if err != nil {
		return nil, s.syncError(err)
	}

	f, err := s.repo.LoadFarm(ctx, player.ID)
	if err != nil {
		return nil, s.syncError(fmt.Errorf(ErrMsgLoadFarmFailed, err))
	}

	events, err := s.reconcile(ctx, f, now)
	if err != nil {
		return nil, s.syncError(err)
	}
	if len(events) > 0 {
		if f, err = s.repo.LoadFarm(ctx, player.ID); err != nil {
			return nil, s.syncError(fmt.Errorf(ErrMsgLoadFarmFailed, err))
		}
	}

	log.Info(LogMsgSyncCompleted,
		"username", username,
		"provisioned", provisioned,
		"withered", len(events))

	return &domain.SyncResult{
		Snapshot:    BuildSnapshot(f, now),
		Provisioned: provisioned,
		Events:      events,
	}, nil
}

// resolvePlayer looks the player up and provisions it on first contact.
// ProvisionPlayer is insert-if-absent, so two racing first syncs both end up
// with the same player.
func (s *service) resolvePlayer(ctx context.Context, username string, now time.Time) (*domain.Player, bool, error) {
	player, err := s.repo.GetPlayerByUsername(ctx, username)
	if err == nil {
		return player, false, nil
	}
	if !errors.Is(err, domain.ErrPlayerNotFound) {
		return nil, false, fmt.Errorf(ErrMsgLookupPlayerFailed, err)
	}

	player, created, err := s.repo.ProvisionPlayer(ctx, username, domain.Provisioning{
		Gold:  s.cfg.InitialGold,
		Gems:  s.cfg.InitialGems,
		Slots: s.cfg.InitialSlots,
		At:    now,
	})
	if err != nil {
		return nil, false, fmt.Errorf(ErrMsgProvisionFailed, err)
	}

	if created {
		logger.FromContext(ctx).Info(LogMsgPlayerProvisioned,
			"username", username,
			"player_id", player.ID,
			"gold", s.cfg.InitialGold,
			"slots", s.cfg.InitialSlots)
		s.publishAsync(ctx, event.NewPlayerProvisionedEvent(*player, s.cfg.InitialGold, s.cfg.InitialSlots))
	}
	return player, created, nil
}

// reconcile persists the sticky wither flag for every crop that withered
// since it was last seen. Slots are independent, so they are processed in
// parallel. Only flags this call actually flipped produce events, which makes
// repeated syncs quiet.
func (s *service) reconcile(ctx context.Context, f *domain.Farm, now time.Time) ([]domain.SyncEvent, error) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.ReconcileConcurrency)

	var (
		mu     sync.Mutex
		events []domain.SyncEvent
	)

	for _, slot := range f.Slots {
		slot := slot
		crop := slot.Crop
		if crop == nil || crop.IsWithered() {
			continue
		}
		if !growth.DeriveState(crop.PlantedAt, crop.Master.GrowthDuration(), now).IsWithered {
			continue
		}

		g.Go(func() error {
			flipped, err := s.repo.MarkCropWithered(gctx, crop.ID)
			if err != nil {
				return fmt.Errorf(ErrMsgReconcileFailed, crop.ID, err)
			}
			if !flipped {
				return nil
			}

			logger.FromContext(gctx).Info(LogMsgCropWithered,
				"player_id", f.Player.ID,
				"slot_index", slot.Index,
				"crop", crop.Master.Name)

			mu.Lock()
			events = append(events, domain.SyncEvent{
				Type:      domain.SyncEventCropWithered,
				SlotID:    slot.ID,
				SlotIndex: slot.Index,
				CropName:  crop.Master.Name,
				At:        now,
			})
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(events, func(i, j int) bool { return events[i].SlotIndex < events[j].SlotIndex })

	published := make([]event.Event, 0, len(events))
	for _, e := range events {
		published = append(published, event.NewCropEvent(event.CropWithered, f.Player, e.SlotIndex, e.CropName, 0, now))
	}
	s.publishAsync(ctx, published...)

	if events == nil {
		events = []domain.SyncEvent{}
	}
	return events, nil
}

func (s *service) syncError(err error) error {
	if isTimeout(err) && !errors.Is(err, domain.ErrTransactionTimeout) {
		return fmt.Errorf(ErrFmtTransactionTimeout, domain.ErrTransactionTimeout, OperationSync, s.cfg.TxTimeout, err)
	}
	return err
}
