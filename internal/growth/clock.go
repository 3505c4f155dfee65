// Package growth derives a crop's lifecycle state from elapsed wall-clock time.
//
// Everything here is a pure function of (plantedAt, growthDuration, now): no I/O,
// no catalog lookups, no randomness. Client and server computing the same inputs
// always agree.
package growth

import (
	"math"
	"time"

	"github.com/osse101/Homestead_Go/internal/domain"
)

// Stage is the visual phase of a crop
type Stage int

const (
	StageSeed Stage = iota
	StageSprout
	StageRipe
	StageWithered
)

const (
	// SproutThreshold is the progress at which a seed becomes a sprout
	SproutThreshold = 0.5
	// WitherMultiplier is how many growth durations may pass before a crop withers
	WitherMultiplier = 3
)

// State is the growth clock evaluated at one instant
type State struct {
	Progress   float64
	Stage      Stage
	IsReady    bool
	IsWithered bool
	Remaining  time.Duration
}

// DeriveState evaluates the growth clock.
//
// A non-positive growthDuration is never harvestable: it withers as soon as any
// time has passed. The catalog rejects such entries.
func DeriveState(plantedAt time.Time, growthDuration time.Duration, now time.Time) State {
	elapsed := now.Sub(plantedAt)

	var progress float64
	switch {
	case growthDuration > 0:
		progress = clamp(elapsed.Seconds()/growthDuration.Seconds(), 0, 1)
	case elapsed > 0:
		progress = 1
	}

	withered := elapsed > growthDuration*WitherMultiplier

	stage := StageSeed
	switch {
	case withered:
		stage = StageWithered
	case progress >= 1:
		stage = StageRipe
	case progress >= SproutThreshold:
		stage = StageSprout
	}

	remaining := growthDuration - elapsed
	if remaining < 0 {
		remaining = 0
	}

	return State{
		Progress:   progress,
		Stage:      stage,
		IsReady:    progress >= 1 && !withered,
		IsWithered: withered,
		Remaining:  remaining,
	}
}

// ForCrop evaluates a stored crop, honouring its sticky wither flag
func ForCrop(c *domain.CropInstance, now time.Time) State {
	st := DeriveState(c.PlantedAt, c.Master.GrowthDuration(), now)
	if c.IsWithered() {
		st.IsWithered = true
		st.IsReady = false
		st.Stage = StageWithered
	}
	return st
}

// SecondsRemaining rounds the remaining time up to whole seconds, so zero is
// only reported once the crop has actually reached full growth.
func (s State) SecondsRemaining() int64 {
	return int64(math.Ceil(s.Remaining.Seconds()))
}

// View converts the state into its wire representation
func (s State) View() domain.GrowthView {
	return domain.GrowthView{
		Progress:         s.Progress,
		Stage:            int(s.Stage),
		IsReady:          s.IsReady,
		IsWithered:       s.IsWithered,
		SecondsRemaining: s.SecondsRemaining(),
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}
