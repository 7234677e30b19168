package persistence

import (
	"math/rand"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/jtalbot/frontoffice/internal/negotiation"
	"github.com/jtalbot/frontoffice/internal/personality"
	"github.com/jtalbot/frontoffice/internal/roster"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func seedLeague(t *testing.T, n int) ([]*roster.Player, map[string]*personality.Personality) {
	t.Helper()
	players := roster.NewSpawner(11).SpawnPlayers(n)
	gen := personality.NewGenerator(
		personality.GeneratorConfig{BlendEnabled: true},
		rand.New(rand.NewSource(11)),
	)

	personalities := make(map[string]*personality.Personality, n)
	for _, pl := range players {
		p, err := gen.Generate(pl, 1)
		if err != nil {
			t.Fatalf("generate personality: %v", err)
		}
		personalities[pl.ID.String()] = p
	}
	return players, personalities
}

func TestSaveLoadRoundtrip(t *testing.T) {
	db := openTestDB(t)
	players, personalities := seedLeague(t, 25)

	// Give one personality evolution history so the ledger column is
	// exercised with real data.
	first := personalities[players[0].ID.String()]
	first.Evolution.MilestonesReached = map[int]bool{30: true}
	first.Evolution.History = append(first.Evolution.History, personality.PersonalityChange{
		Attribute: personality.AttrEgo, Change: 0.05, Reason: "career highlight",
	})

	if err := db.SavePlayers(players, personalities); err != nil {
		t.Fatalf("save players: %v", err)
	}

	gotPlayers, gotPersonalities, err := db.LoadPlayers()
	if err != nil {
		t.Fatalf("load players: %v", err)
	}
	if len(gotPlayers) != len(players) {
		t.Fatalf("loaded %d players, want %d", len(gotPlayers), len(players))
	}
	if len(gotPersonalities) != len(personalities) {
		t.Fatalf("loaded %d personalities, want %d", len(gotPersonalities), len(personalities))
	}

	byID := make(map[string]*roster.Player, len(gotPlayers))
	for _, pl := range gotPlayers {
		byID[pl.ID.String()] = pl
	}
	for _, want := range players {
		got, ok := byID[want.ID.String()]
		if !ok {
			t.Fatalf("player %s missing after load", want.ID)
		}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("player roundtrip mismatch:\ngot  %+v\nwant %+v", got, want)
		}
	}

	for id, want := range personalities {
		got, ok := gotPersonalities[id]
		if !ok {
			t.Fatalf("personality %s missing after load", id)
		}
		if got.Archetype != want.Archetype || got.Rarity != want.Rarity {
			t.Fatalf("personality header mismatch for %s: %s/%f vs %s/%f",
				id, got.Archetype, got.Rarity, want.Archetype, want.Rarity)
		}
		if got.Weights != want.Weights {
			t.Fatalf("weights mismatch for %s:\ngot  %+v\nwant %+v", id, got.Weights, want.Weights)
		}
		if got.HiddenSliders != want.HiddenSliders {
			t.Fatalf("sliders mismatch for %s", id)
		}
		if !reflect.DeepEqual(got.LocationPrefs, want.LocationPrefs) {
			t.Fatalf("location prefs mismatch for %s", id)
		}
	}

	reloaded := gotPersonalities[players[0].ID.String()]
	if !reloaded.Evolution.MilestonesReached[30] {
		t.Fatal("milestone state lost in roundtrip")
	}
	if len(reloaded.Evolution.History) != 1 {
		t.Fatalf("history entries after roundtrip: %d", len(reloaded.Evolution.History))
	}
}

func TestSavePlayersFullReplace(t *testing.T) {
	db := openTestDB(t)

	players, personalities := seedLeague(t, 10)
	if err := db.SavePlayers(players, personalities); err != nil {
		t.Fatalf("first save: %v", err)
	}

	smaller := players[:4]
	if err := db.SavePlayers(smaller, personalities); err != nil {
		t.Fatalf("second save: %v", err)
	}

	got, _, err := db.LoadPlayers()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("stale rows survived the replace: %d players", len(got))
	}
}

func TestDecisionLog(t *testing.T) {
	db := openTestDB(t)
	players, _ := seedLeague(t, 2)
	a, b := players[0].ID.String(), players[1].ID.String()

	offer := negotiation.ContractOffer{Years: 3, APY: 12.5, TotalValue: 37.5, GuaranteedAmount: 20}
	evals := []negotiation.Evaluation{
		{Decision: negotiation.DecisionReject, Score: 0.31, Feedback: "not close"},
		{Decision: negotiation.DecisionCounter, Score: 0.72, Feedback: "send it back"},
		{Decision: negotiation.DecisionAccept, Score: 0.93, Feedback: "done deal"},
	}

	if err := db.AppendDecision(a, 1, 14, "Gators", offer, evals[0]); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := db.AppendDecision(a, 1, 15, "Gators", offer, evals[1]); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := db.AppendDecision(b, 1, 15, "Outlaws", offer, evals[2]); err != nil {
		t.Fatalf("append: %v", err)
	}

	recent, err := db.RecentDecisions(10)
	if err != nil {
		t.Fatalf("recent decisions: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("recent returned %d records, want 3", len(recent))
	}
	if recent[0].PlayerID != b || recent[0].Decision != "accept" {
		t.Fatalf("newest-first ordering broken: %+v", recent[0])
	}
	if recent[0].Offer == "" {
		t.Fatal("offer json not stored")
	}

	capped, err := db.RecentDecisions(2)
	if err != nil {
		t.Fatalf("recent decisions: %v", err)
	}
	if len(capped) != 2 {
		t.Fatalf("limit not applied: %d records", len(capped))
	}

	mine, err := db.PlayerDecisions(a, 10)
	if err != nil {
		t.Fatalf("player decisions: %v", err)
	}
	if len(mine) != 2 {
		t.Fatalf("player history returned %d records, want 2", len(mine))
	}
	for _, rec := range mine {
		if rec.PlayerID != a {
			t.Fatalf("foreign record in player history: %+v", rec)
		}
	}
	if mine[0].Week != 15 {
		t.Fatalf("player history not newest-first: week %d", mine[0].Week)
	}
}

func TestMetaRoundtrip(t *testing.T) {
	db := openTestDB(t)

	if err := db.SaveMeta("last_tick", "104"); err != nil {
		t.Fatalf("save meta: %v", err)
	}
	if v, err := db.GetMeta("last_tick"); err != nil || v != "104" {
		t.Fatalf("get meta = %q, %v", v, err)
	}

	// Upsert replaces.
	if err := db.SaveMeta("last_tick", "105"); err != nil {
		t.Fatalf("save meta: %v", err)
	}
	if v, _ := db.GetMeta("last_tick"); v != "105" {
		t.Fatalf("meta not replaced: %q", v)
	}

	if _, err := db.GetMeta("missing"); err == nil {
		t.Fatal("missing key returned no error")
	}
}

func TestHasLeagueState(t *testing.T) {
	db := openTestDB(t)
	if db.HasLeagueState() {
		t.Fatal("fresh database reports state")
	}

	players, personalities := seedLeague(t, 3)
	if err := db.SavePlayers(players, personalities); err != nil {
		t.Fatalf("save: %v", err)
	}
	if !db.HasLeagueState() {
		t.Fatal("saved league not detected")
	}
}
