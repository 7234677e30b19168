// Package engine provides the tick-based league loop. One tick is one
// league week.
package engine

import (
	"fmt"
	"log/slog"
	"time"
)

// Calendar layout relative to the tick counter.
const (
	WeeksPerYear = 52
)

// Engine drives the league forward.
type Engine struct {
	Tick     uint64        // Current tick counter (monotonic, never resets)
	Speed    float64       // Multiplier: 1.0 = one tick per interval, 0 = paused
	Interval time.Duration // Base tick interval (default 1 second)
	Running  bool

	// Callbacks for each tick layer, populated during setup.
	OnWeek   func(tick uint64) // Every tick (league week)
	OnSeason func(tick uint64) // Every 52 ticks
}

// NewEngine creates a league engine with default settings.
func NewEngine() *Engine {
	return &Engine{
		Tick:     0,
		Speed:    1.0,
		Interval: time.Second,
		Running:  false,
	}
}

// Run starts the league loop. Blocks until Stop() is called.
func (e *Engine) Run() {
	e.Running = true
	slog.Info("league engine started", "tick", e.Tick, "speed", e.Speed)

	for e.Running {
		if e.Speed <= 0 {
			// Paused. Sleep briefly and check again.
			time.Sleep(100 * time.Millisecond)
			continue
		}

		start := time.Now()

		e.step()

		// Sleep for the remainder of the tick interval, adjusted for speed.
		elapsed := time.Since(start)
		target := time.Duration(float64(e.Interval) / e.Speed)
		if elapsed < target {
			time.Sleep(target - elapsed)
		}
	}

	slog.Info("league engine stopped", "tick", e.Tick)
}

// Stop halts the league loop.
func (e *Engine) Stop() {
	e.Running = false
}

// step advances the league by one week.
func (e *Engine) step() {
	e.Tick++

	if e.OnWeek != nil {
		e.OnWeek(e.Tick)
	}

	if e.Tick%WeeksPerYear == 0 && e.OnSeason != nil {
		e.OnSeason(e.Tick)
	}
}

// YearWeek converts a tick number to a (year, week) pair. Weeks are
// 1-based within the year; year 1 is the first league year.
func YearWeek(tick uint64) (year, week int) {
	if tick == 0 {
		return 1, 1
	}
	year = int((tick-1)/WeeksPerYear) + 1
	week = int((tick-1)%WeeksPerYear) + 1
	return year, week
}

// SimTime returns a human-readable league time string from a tick number.
func SimTime(tick uint64) string {
	year, week := YearWeek(tick)
	return fmt.Sprintf("Year %d, Week %d (%s)", year, week, StageFor(week))
}
