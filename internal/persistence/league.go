package persistence

import (
	"fmt"

	"github.com/jtalbot/frontoffice/internal/engine"
)

// SaveLeagueState performs a full save of the running simulation.
func (db *DB) SaveLeagueState(sim *engine.Simulation) error {
	if err := db.SavePlayers(sim.Players, sim.Personalities); err != nil {
		return fmt.Errorf("save players: %w", err)
	}
	if err := db.SaveMeta("last_tick", fmt.Sprintf("%d", sim.CurrentTick())); err != nil {
		return fmt.Errorf("save meta: %w", err)
	}
	return nil
}
