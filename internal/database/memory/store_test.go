package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/Homestead_Go/internal/domain"
	"github.com/osse101/Homestead_Go/internal/repository"
)

var (
	now    = time.Date(2024, 7, 1, 10, 0, 0, 0, time.UTC)
	turnip = domain.CropMaster{ID: "turnip", Name: "Turnip", GrowthSeconds: 10, BuyPrice: 10, SellPrice: 20}
	prov   = domain.Provisioning{Gold: 100, Slots: 6, At: now}
)

func provisioned(t *testing.T) (*Store, *domain.Player) {
	t.Helper()
	s := NewStore()
	_, err := s.InsertCropMasters(context.Background(), []domain.CropMaster{turnip})
	require.NoError(t, err)
	p, created, err := s.ProvisionPlayer(context.Background(), "alice", prov)
	require.NoError(t, err)
	require.True(t, created)
	return s, p
}

func TestProvisionPlayer(t *testing.T) {
	ctx := context.Background()
	s, p := provisioned(t)

	again, created, err := s.ProvisionPlayer(ctx, "alice", prov)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, p.ID, again.ID)

	farm, err := s.LoadFarm(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(100), farm.Wallet.Gold)
	require.Len(t, farm.Slots, 6)
	for i, slot := range farm.Slots {
		assert.Equal(t, i, slot.Index)
		assert.Equal(t, domain.SlotStatusEmpty, slot.Status)
		assert.Nil(t, slot.Crop)
	}

	entries, err := s.ListEntries(ctx, farm.Wallet.ID, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.LedgerKindInitialGrant, entries[0].Kind)
}

func TestFarmTx_RollbackDiscardsWrites(t *testing.T) {
	ctx := context.Background()
	s, p := provisioned(t)
	farm, _ := s.LoadFarm(ctx, p.ID)
	slot := farm.Slots[0]

	tx, err := s.BeginTx(ctx)
	require.NoError(t, err)
	_, w, err := tx.GetPlayerForUpdate(ctx, "alice")
	require.NoError(t, err)
	require.NoError(t, tx.UpdateWalletGold(ctx, w.ID, 90))
	require.NoError(t, tx.PlantCrop(ctx, domain.NewCropInstance("c1", slot.ID, turnip, now)))

	inside, err := tx.LoadFarm(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(90), inside.Wallet.Gold)
	assert.Equal(t, domain.SlotStatusPlanted, inside.Slots[0].Status)

	require.NoError(t, tx.Rollback(ctx))
	assert.EqualError(t, tx.Rollback(ctx), domain.ErrMsgTxClosed)

	after, _ := s.LoadFarm(ctx, p.ID)
	assert.Equal(t, int64(100), after.Wallet.Gold)
	assert.Equal(t, domain.SlotStatusEmpty, after.Slots[0].Status)
}

func TestFarmTx_CommitPublishes(t *testing.T) {
	ctx := context.Background()
	s, p := provisioned(t)
	farm, _ := s.LoadFarm(ctx, p.ID)
	slot := farm.Slots[2]

	tx, _ := s.BeginTx(ctx)
	_, w, err := tx.GetPlayerForUpdate(ctx, "alice")
	require.NoError(t, err)
	require.NoError(t, tx.UpdateWalletGold(ctx, w.ID, 90))
	require.NoError(t, tx.PlantCrop(ctx, domain.NewCropInstance("c1", slot.ID, turnip, now)))
	require.NoError(t, tx.Commit(ctx))

	after, _ := s.LoadFarm(ctx, p.ID)
	assert.Equal(t, int64(90), after.Wallet.Gold)
	require.NotNil(t, after.Slots[2].Crop)

	flipped, err := s.MarkCropWithered(ctx, "c1")
	require.NoError(t, err)
	assert.True(t, flipped)
	flipped, err = s.MarkCropWithered(ctx, "c1")
	require.NoError(t, err)
	assert.False(t, flipped)

	after, _ = s.LoadFarm(ctx, p.ID)
	assert.True(t, after.Slots[2].Crop.IsWithered())
}

func TestFarmTx_Guards(t *testing.T) {
	ctx := context.Background()
	s, p := provisioned(t)
	farm, _ := s.LoadFarm(ctx, p.ID)

	tx, _ := s.BeginTx(ctx)
	defer repository.SafeRollback(ctx, tx)

	_, err := tx.GetSlotForUpdate(ctx, p.ID, farm.Slots[0].ID)
	assert.ErrorIs(t, err, errNoPlayerLocked)

	_, _, err = tx.GetPlayerForUpdate(ctx, "nobody")
	assert.ErrorIs(t, err, domain.ErrPlayerNotFound)

	_, w, err := tx.GetPlayerForUpdate(ctx, "alice")
	require.NoError(t, err)

	_, err = tx.GetSlotForUpdate(ctx, p.ID, "missing")
	assert.ErrorIs(t, err, domain.ErrSlotNotFound)
	_, err = tx.GetSlotForUpdate(ctx, "someone-else", farm.Slots[0].ID)
	assert.ErrorIs(t, err, domain.ErrSlotNotFound)

	assert.ErrorIs(t, tx.UpdateWalletGold(ctx, w.ID, -1), domain.ErrDatabaseError)
	assert.ErrorIs(t, tx.ClearSlot(ctx, farm.Slots[0].ID, "nope"), domain.ErrDatabaseError)
}

func TestFarmTx_SecondTransactionWaitsForLock(t *testing.T) {
	ctx := context.Background()
	s, _ := provisioned(t)

	first, _ := s.BeginTx(ctx)
	_, _, err := first.GetPlayerForUpdate(ctx, "alice")
	require.NoError(t, err)

	timeoutCtx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	second, _ := s.BeginTx(timeoutCtx)
	_, _, err = second.GetPlayerForUpdate(timeoutCtx, "alice")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	repository.SafeRollback(ctx, second)

	require.NoError(t, first.Commit(ctx))

	third, _ := s.BeginTx(ctx)
	_, _, err = third.GetPlayerForUpdate(ctx, "alice")
	require.NoError(t, err)
	require.NoError(t, third.Rollback(ctx))
}

func TestCatalog(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	n, err := s.InsertCropMasters(ctx, []domain.CropMaster{
		{ID: "p", Name: "Pumpkin", BuyPrice: 50},
		turnip,
		{ID: "c", Name: "Carrot", BuyPrice: 25},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = s.InsertCropMasters(ctx, []domain.CropMaster{turnip, {ID: "other", Name: "Carrot"}})
	require.NoError(t, err)
	assert.Zero(t, n)

	list, err := s.ListCropMasters(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"Turnip", "Carrot", "Pumpkin"}, []string{list[0].Name, list[1].Name, list[2].Name})

	_, err = s.GetCropMaster(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrCropMasterNotFound)
}
