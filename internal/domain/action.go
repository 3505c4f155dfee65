package domain

import (
	"fmt"
	"strings"
)

// ActionKind names a player action on the wire
type ActionKind string

const (
	ActionPlant   ActionKind = "PLANT"
	ActionHarvest ActionKind = "HARVEST"
)

// Action is the closed set of mutations a player can request.
// Only PlantAction and HarvestAction implement it.
type Action interface {
	Kind() ActionKind
	Slot() string
	isAction()
}

// PlantAction buys a seed and plants it in an empty slot
type PlantAction struct {
	SlotID       string
	CropMasterID string
}

func (PlantAction) Kind() ActionKind { return ActionPlant }
func (a PlantAction) Slot() string { return a.SlotID }
func (PlantAction) isAction() {}

// HarvestAction sells a ready crop, or clears a withered one
type HarvestAction struct {
	SlotID string
}

func (HarvestAction) Kind() ActionKind { return ActionHarvest }
func (a HarvestAction) Slot() string { return a.SlotID }
func (HarvestAction) isAction() {}

// ParseAction turns a decoded request into an Action.
// Unrecognised kinds fail with ErrUnknownAction before anything is loaded.
func ParseAction(kind, slotID, cropMasterID string) (Action, error) {
	switch ActionKind(strings.ToUpper(strings.TrimSpace(kind))) {
	case ActionPlant:
		return PlantAction{SlotID: slotID, CropMasterID: cropMasterID}, nil
	case ActionHarvest:
		return HarvestAction{SlotID: slotID}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, kind)
	}
}
