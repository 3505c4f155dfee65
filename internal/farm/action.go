package farm

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/Homestead_Go/internal/domain"
	"github.com/osse101/Homestead_Go/internal/event"
	"github.com/osse101/Homestead_Go/internal/growth"
	"github.com/osse101/Homestead_Go/internal/ledger"
	"github.com/osse101/Homestead_Go/internal/logger"
	"github.com/osse101/Homestead_Go/internal/repository"
)

// applied is what a single validated mutation did inside its transaction
type applied struct {
	outcome   domain.ActionOutcome
	goldDelta int64
	entry     *domain.LedgerEntry
	slotIndex int
	cropName  string
}

func (a applied) eventType() event.Type {
	switch a.outcome {
	case domain.OutcomePlanted:
		return event.CropPlanted
	case domain.OutcomeHarvested:
		return event.CropHarvested
	default:
		return event.CropWitheredRemoved
	}
}

func (s *service) Execute(ctx context.Context, username string, action domain.Action) (*domain.ActionResult, error) {
	log := logger.FromContext(ctx)

	if action == nil {
		return nil, fmt.Errorf(ErrFmtUnknownActionVariant, domain.ErrUnknownAction, action)
	}
	log.Info(LogMsgExecuteCalled, "username", username, "action", action.Kind(), "slot_id", action.Slot())

	var (
		result *domain.ActionResult
		pub    []event.Event
	)
	err := s.withRetry(ctx, operationName(action), func(ctx context.Context) error {
		r, evts, err := s.apply(ctx, username, action)
		if err != nil {
			return err
		}
		result, pub = r, evts
		return nil
	})
	if err != nil {
		kind := domain.KindOf(err)
		if kind == domain.KindInternal {
			log.Error(LogMsgActionFailed, "username", username, "action", action.Kind(), "error", err)
		} else {
			log.Info(LogMsgActionRejected, "username", username, "action", action.Kind(), "kind", kind, "reason", err)
		}
		s.publishAsync(ctx, event.NewActionFailedEvent(username, action.Kind(), kind))
		return nil, err
	}

	log.Info(LogMsgActionApplied,
		"username", username,
		"action", action.Kind(),
		"outcome", result.Outcome,
		"gold_delta", result.GoldDelta,
		"gold", result.Snapshot.Wallet.Gold)
	s.publishAsync(ctx, pub...)

	return result, nil
}

func operationName(action domain.Action) string {
	if action.Kind() == domain.ActionPlant {
		return OperationPlant
	}
	return OperationHarvest
}

// apply is one transaction attempt: lock, validate, mutate, read back, commit.
// Every validation runs before the first write, and nothing escapes the
// transaction unless Commit succeeds.
func (s *service) apply(ctx context.Context, username string, action domain.Action) (*domain.ActionResult, []event.Event, error) {
	now := s.clock.Now()

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf(ErrMsgBeginTxFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	player, wallet, err := tx.GetPlayerForUpdate(ctx, username)
	if err != nil {
		return nil, nil, fmt.Errorf(ErrMsgLockPlayerFailed, err)
	}

	slot, err := tx.GetSlotForUpdate(ctx, player.ID, action.Slot())
	if err != nil {
		return nil, nil, fmt.Errorf(ErrMsgGetSlotFailed, err)
	}

	var res applied
	switch a := action.(type) {
	case domain.PlantAction:
		res, err = s.plant(ctx, tx, wallet, slot, a.CropMasterID, now)
	case domain.HarvestAction:
		res, err = s.harvest(ctx, tx, wallet, slot, now)
	default:
		err = fmt.Errorf(ErrFmtUnknownActionVariant, domain.ErrUnknownAction, action)
	}
	if err != nil {
		return nil, nil, err
	}

	f, err := tx.LoadFarm(ctx, player.ID)
	if err != nil {
		return nil, nil, fmt.Errorf(ErrMsgLoadFarmFailed, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, fmt.Errorf(ErrMsgCommitFailed, err)
	}

	result := &domain.ActionResult{
		Outcome:     res.outcome,
		GoldDelta:   res.goldDelta,
		LedgerEntry: res.entry,
		Snapshot:    BuildSnapshot(f, now),
	}
	evt := event.NewCropEvent(res.eventType(), *player, res.slotIndex, res.cropName, res.goldDelta, now)

	return result, []event.Event{evt}, nil
}

func (s *service) plant(ctx context.Context, tx repository.FarmTx, wallet *domain.Wallet, slot *domain.FarmSlot, cropMasterID string, now time.Time) (applied, error) {
	if slot.Status != domain.SlotStatusEmpty || slot.Crop != nil {
		return applied{}, fmt.Errorf(ErrFmtSlotOccupied, domain.ErrSlotOccupied, slot.Index)
	}

	master, err := s.catalog.Get(ctx, cropMasterID)
	if err != nil {
		return applied{}, fmt.Errorf(ErrMsgGetCropFailed, err)
	}

	if wallet.Gold < master.BuyPrice {
		return applied{}, fmt.Errorf(ErrFmtInsufficientFunds, domain.ErrInsufficientFunds, wallet.Gold, master.BuyPrice)
	}

	if err := tx.UpdateWalletGold(ctx, wallet.ID, wallet.Gold-master.BuyPrice); err != nil {
		return applied{}, fmt.Errorf(ErrMsgUpdateWalletFailed, err)
	}

	entry := ledger.NewSeedPurchase(wallet.ID, *master, slot.Index, now)
	if err := tx.AppendLedgerEntry(ctx, entry); err != nil {
		return applied{}, fmt.Errorf(ErrMsgAppendLedgerFailed, err)
	}

	crop := domain.NewCropInstance(uuid.NewString(), slot.ID, *master, now)
	if err := tx.PlantCrop(ctx, crop); err != nil {
		return applied{}, fmt.Errorf(ErrMsgPlantFailed, err)
	}

	return applied{
		outcome:   domain.OutcomePlanted,
		goldDelta: -master.BuyPrice,
		entry:     &entry,
		slotIndex: slot.Index,
		cropName:  master.Name,
	}, nil
}

func (s *service) harvest(ctx context.Context, tx repository.FarmTx, wallet *domain.Wallet, slot *domain.FarmSlot, now time.Time) (applied, error) {
	crop := slot.Crop
	if crop == nil {
		return applied{}, fmt.Errorf(ErrFmtSlotEmpty, domain.ErrSlotEmpty, slot.Index)
	}

	state := growth.ForCrop(crop, now)

	if state.IsWithered {
		if err := tx.ClearSlot(ctx, slot.ID, crop.ID); err != nil {
			return applied{}, fmt.Errorf(ErrMsgClearSlotFailed, err)
		}
		return applied{
			outcome:   domain.OutcomeWitheredRemoved,
			slotIndex: slot.Index,
			cropName:  crop.Master.Name,
		}, nil
	}

	if !state.IsReady {
		return applied{}, fmt.Errorf(ErrFmtCropNotReady, domain.ErrCropNotReady, state.SecondsRemaining())
	}

	payout := s.cfg.Pricing.Payout(crop.Master.SellPrice)
	if err := tx.UpdateWalletGold(ctx, wallet.ID, wallet.Gold+payout); err != nil {
		return applied{}, fmt.Errorf(ErrMsgUpdateWalletFailed, err)
	}

	entry := ledger.NewCropSale(wallet.ID, crop.Master, slot.Index, payout, now)
	if err := tx.AppendLedgerEntry(ctx, entry); err != nil {
		return applied{}, fmt.Errorf(ErrMsgAppendLedgerFailed, err)
	}

	if err := tx.ClearSlot(ctx, slot.ID, crop.ID); err != nil {
		return applied{}, fmt.Errorf(ErrMsgClearSlotFailed, err)
	}

	return applied{
		outcome:   domain.OutcomeHarvested,
		goldDelta: payout,
		entry:     &entry,
		slotIndex: slot.Index,
		cropName:  crop.Master.Name,
	}, nil
}
