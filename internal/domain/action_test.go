package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAction(t *testing.T) {
	t.Run("plant", func(t *testing.T) {
		a, err := ParseAction("PLANT", "slot-1", "crop-1")
		require.NoError(t, err)
		assert.Equal(t, PlantAction{SlotID: "slot-1", CropMasterID: "crop-1"}, a)
		assert.Equal(t, ActionPlant, a.Kind())
		assert.Equal(t, "slot-1", a.Slot())
	})

	t.Run("harvest ignores crop id", func(t *testing.T) {
		a, err := ParseAction("harvest", "slot-2", "crop-9")
		require.NoError(t, err)
		assert.Equal(t, HarvestAction{SlotID: "slot-2"}, a)
	})

	t.Run("unknown kind", func(t *testing.T) {
		a, err := ParseAction("WATER", "slot-1", "")
		assert.Nil(t, a)
		assert.ErrorIs(t, err, ErrUnknownAction)
		assert.Equal(t, KindUnknownAction, KindOf(err))
	})

	t.Run("empty kind", func(t *testing.T) {
		_, err := ParseAction("", "slot-1", "")
		assert.ErrorIs(t, err, ErrUnknownAction)
	})
}

func TestCropInstance_WitherIsSticky(t *testing.T) {
	c := NewCropInstance("c1", "s1", CropMaster{GrowthSeconds: 10}, testTime)
	assert.False(t, c.IsWithered())

	c.MarkWithered()
	c.MarkWithered()
	assert.True(t, c.IsWithered())

	restored := RestoreCropInstance("c1", "s1", CropMaster{GrowthSeconds: 10}, testTime, true)
	assert.True(t, restored.IsWithered())
	assert.True(t, restored.Clone().IsWithered())
}

func TestCropInstance_HarvestableAt(t *testing.T) {
	c := NewCropInstance("c1", "s1", CropMaster{GrowthSeconds: 30}, testTime)
	assert.Equal(t, testTime.Add(30*time.Second), c.HarvestableAt())
}

var testTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
