// Package persistence provides SQLite-based league state storage.
package persistence

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/jtalbot/frontoffice/internal/negotiation"
	"github.com/jtalbot/frontoffice/internal/personality"
	"github.com/jtalbot/frontoffice/internal/roster"
)

// DB wraps a SQLite connection for league state persistence.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS players (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		position TEXT NOT NULL,
		age INTEGER NOT NULL,
		overall INTEGER NOT NULL,
		experience INTEGER NOT NULL,
		home_state TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS personalities (
		player_id TEXT PRIMARY KEY,
		archetype TEXT NOT NULL,
		rarity REAL NOT NULL,
		traits_json TEXT NOT NULL,
		weights_json TEXT NOT NULL,
		behaviors_json TEXT NOT NULL,
		sliders_json TEXT NOT NULL,
		templates_json TEXT NOT NULL,
		blending_json TEXT NOT NULL,
		trade_prefs_json TEXT NOT NULL,
		market_json TEXT NOT NULL,
		location_prefs_json TEXT NOT NULL,
		evolution_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS decisions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		player_id TEXT NOT NULL,
		year INTEGER NOT NULL,
		week INTEGER NOT NULL,
		team TEXT NOT NULL,
		decision TEXT NOT NULL,
		score REAL NOT NULL,
		offer_json TEXT NOT NULL,
		feedback TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS league_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_decisions_player ON decisions(player_id);
	CREATE INDEX IF NOT EXISTS idx_decisions_week ON decisions(year, week);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SavePlayers writes all players and their personalities (full replace).
func (db *DB) SavePlayers(players []*roster.Player, personalities map[string]*personality.Personality) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM players"); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM personalities"); err != nil {
		return err
	}

	playerStmt, err := tx.Preparex(`INSERT INTO players
		(id, name, position, age, overall, experience, home_state)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer playerStmt.Close()

	persStmt, err := tx.Preparex(`INSERT INTO personalities
		(player_id, archetype, rarity, traits_json, weights_json, behaviors_json,
		 sliders_json, templates_json, blending_json, trade_prefs_json,
		 market_json, location_prefs_json, evolution_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer persStmt.Close()

	for _, pl := range players {
		_, err := playerStmt.Exec(
			pl.ID.String(), pl.Name, pl.Position.String(),
			pl.Age, pl.Overall, pl.Experience, pl.HomeState,
		)
		if err != nil {
			return fmt.Errorf("insert player %s: %w", pl.ID, err)
		}

		p, ok := personalities[pl.ID.String()]
		if !ok {
			continue
		}

		traitsJSON, _ := json.Marshal(p.Traits)
		weightsJSON, _ := json.Marshal(p.Weights)
		behaviorsJSON, _ := json.Marshal(p.Behaviors)
		slidersJSON, _ := json.Marshal(p.HiddenSliders)
		templatesJSON, _ := json.Marshal(p.Templates)
		blendingJSON, _ := json.Marshal(p.Blending)
		tradeJSON, _ := json.Marshal(p.TradePrefs)
		marketJSON, _ := json.Marshal(p.Market)
		locJSON, _ := json.Marshal(p.LocationPrefs)
		evoJSON, _ := json.Marshal(p.Evolution)

		_, err = persStmt.Exec(
			pl.ID.String(), p.Archetype, p.Rarity,
			string(traitsJSON), string(weightsJSON), string(behaviorsJSON),
			string(slidersJSON), string(templatesJSON), string(blendingJSON),
			string(tradeJSON), string(marketJSON), string(locJSON), string(evoJSON),
		)
		if err != nil {
			return fmt.Errorf("insert personality %s: %w", pl.ID, err)
		}
	}

	return tx.Commit()
}

// LoadPlayers restores all players and their personalities.
func (db *DB) LoadPlayers() ([]*roster.Player, map[string]*personality.Personality, error) {
	type playerRow struct {
		ID         string `db:"id"`
		Name       string `db:"name"`
		Position   string `db:"position"`
		Age        int    `db:"age"`
		Overall    int    `db:"overall"`
		Experience int    `db:"experience"`
		HomeState  string `db:"home_state"`
	}

	var rows []playerRow
	if err := db.conn.Select(&rows,
		"SELECT id, name, position, age, overall, experience, home_state FROM players"); err != nil {
		return nil, nil, fmt.Errorf("load players: %w", err)
	}

	players := make([]*roster.Player, 0, len(rows))
	for _, r := range rows {
		pos, err := roster.ParsePosition(r.Position)
		if err != nil {
			return nil, nil, fmt.Errorf("load player %s: %w", r.ID, err)
		}
		id, err := uuid.Parse(r.ID)
		if err != nil {
			return nil, nil, fmt.Errorf("load player %s: %w", r.ID, err)
		}
		players = append(players, &roster.Player{
			ID:         id,
			Name:       r.Name,
			Position:   pos,
			Age:        r.Age,
			Overall:    r.Overall,
			Experience: r.Experience,
			HomeState:  r.HomeState,
		})
	}

	type persRow struct {
		PlayerID      string  `db:"player_id"`
		Archetype     string  `db:"archetype"`
		Rarity        float64 `db:"rarity"`
		TraitsJSON    string  `db:"traits_json"`
		WeightsJSON   string  `db:"weights_json"`
		BehaviorsJSON string  `db:"behaviors_json"`
		SlidersJSON   string  `db:"sliders_json"`
		TemplatesJSON string  `db:"templates_json"`
		BlendingJSON  string  `db:"blending_json"`
		TradeJSON     string  `db:"trade_prefs_json"`
		MarketJSON    string  `db:"market_json"`
		LocJSON       string  `db:"location_prefs_json"`
		EvoJSON       string  `db:"evolution_json"`
	}

	var prows []persRow
	if err := db.conn.Select(&prows,
		`SELECT player_id, archetype, rarity, traits_json, weights_json, behaviors_json,
		        sliders_json, templates_json, blending_json, trade_prefs_json,
		        market_json, location_prefs_json, evolution_json
		 FROM personalities`); err != nil {
		return nil, nil, fmt.Errorf("load personalities: %w", err)
	}

	personalities := make(map[string]*personality.Personality, len(prows))
	for _, r := range prows {
		p := &personality.Personality{Archetype: r.Archetype, Rarity: r.Rarity}
		parts := []struct {
			data string
			dst  any
		}{
			{r.TraitsJSON, &p.Traits},
			{r.WeightsJSON, &p.Weights},
			{r.BehaviorsJSON, &p.Behaviors},
			{r.SlidersJSON, &p.HiddenSliders},
			{r.TemplatesJSON, &p.Templates},
			{r.BlendingJSON, &p.Blending},
			{r.TradeJSON, &p.TradePrefs},
			{r.MarketJSON, &p.Market},
			{r.LocJSON, &p.LocationPrefs},
			{r.EvoJSON, &p.Evolution},
		}
		for _, part := range parts {
			if err := json.Unmarshal([]byte(part.data), part.dst); err != nil {
				return nil, nil, fmt.Errorf("decode personality %s: %w", r.PlayerID, err)
			}
		}
		personalities[r.PlayerID] = p
	}

	return players, personalities, nil
}

// DecisionRecord is one logged negotiation outcome.
type DecisionRecord struct {
	PlayerID string  `db:"player_id" json:"player_id"`
	Year     int     `db:"year" json:"year"`
	Week     int     `db:"week" json:"week"`
	Team     string  `db:"team" json:"team"`
	Decision string  `db:"decision" json:"decision"`
	Score    float64 `db:"score" json:"score"`
	Offer    string  `db:"offer_json" json:"offer_json"`
	Feedback string  `db:"feedback" json:"feedback"`
}

// AppendDecision logs one negotiation outcome.
func (db *DB) AppendDecision(playerID string, year, week int, team string,
	offer negotiation.ContractOffer, ev negotiation.Evaluation) error {

	offerJSON, _ := json.Marshal(offer)
	_, err := db.conn.Exec(`INSERT INTO decisions
		(player_id, year, week, team, decision, score, offer_json, feedback)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		playerID, year, week, team, ev.Decision.String(), ev.Score,
		string(offerJSON), ev.Feedback,
	)
	return err
}

// RecentDecisions returns the most recent N decision records.
func (db *DB) RecentDecisions(limit int) ([]DecisionRecord, error) {
	var records []DecisionRecord
	err := db.conn.Select(&records,
		`SELECT player_id, year, week, team, decision, score, offer_json, feedback
		 FROM decisions ORDER BY id DESC LIMIT ?`, limit)
	return records, err
}

// PlayerDecisions returns a single player's decision history, newest first.
func (db *DB) PlayerDecisions(playerID string, limit int) ([]DecisionRecord, error) {
	var records []DecisionRecord
	err := db.conn.Select(&records,
		`SELECT player_id, year, week, team, decision, score, offer_json, feedback
		 FROM decisions WHERE player_id = ? ORDER BY id DESC LIMIT ?`, playerID, limit)
	return records, err
}

// SaveMeta stores a key-value pair in league metadata.
func (db *DB) SaveMeta(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO league_meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM league_meta WHERE key = ?", key)
	return value, err
}

// HasLeagueState reports whether a previous run saved any players.
func (db *DB) HasLeagueState() bool {
	var count int
	if err := db.conn.Get(&count, "SELECT COUNT(*) FROM players"); err != nil {
		slog.Warn("league state check failed", "error", err)
		return false
	}
	return count > 0
}
