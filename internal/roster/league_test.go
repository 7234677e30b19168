package roster

import "testing"

func TestSpawnPlayersValid(t *testing.T) {
	players := NewSpawner(42).SpawnPlayers(300)
	if len(players) != 300 {
		t.Fatalf("spawned %d players, want 300", len(players))
	}

	seen := make(map[string]bool, len(players))
	for _, p := range players {
		if err := p.Validate(); err != nil {
			t.Fatalf("spawned invalid player: %v", err)
		}
		if p.Age < 21 || p.Age > 38 {
			t.Fatalf("age %d outside career range for %s", p.Age, p.Name)
		}
		if p.Overall < 55 || p.Overall > 99 {
			t.Fatalf("overall %d outside scouting scale for %s", p.Overall, p.Name)
		}
		if p.Experience < 0 {
			t.Fatalf("negative experience %d for %s", p.Experience, p.Name)
		}
		if p.HomeState == "" {
			t.Fatalf("missing home state for %s", p.Name)
		}
		if seen[p.ID.String()] {
			t.Fatalf("duplicate player id %s", p.ID)
		}
		seen[p.ID.String()] = true
	}
}

func TestSpawnerDeterministic(t *testing.T) {
	a := NewSpawner(7).SpawnPlayers(20)
	b := NewSpawner(7).SpawnPlayers(20)

	for i := range a {
		if a[i].Name != b[i].Name || a[i].Position != b[i].Position ||
			a[i].Age != b[i].Age || a[i].Overall != b[i].Overall {
			t.Fatalf("same seed diverged at player %d:\n%+v\n%+v", i, a[i], b[i])
		}
	}
}

func TestSpawnerCoversPositions(t *testing.T) {
	players := NewSpawner(3).SpawnPlayers(1000)

	counts := make(map[Position]int)
	for _, p := range players {
		counts[p.Position]++
	}
	for pos := Position(0); pos < NumPositions; pos++ {
		if counts[pos] == 0 {
			t.Errorf("no %s spawned in 1000 players", pos)
		}
	}
	if counts[OL] <= counts[K] {
		t.Fatalf("position weighting looks flat: OL=%d K=%d", counts[OL], counts[K])
	}
}

func TestParsePosition(t *testing.T) {
	for pos := Position(0); pos < NumPositions; pos++ {
		got, err := ParsePosition(pos.String())
		if err != nil {
			t.Fatalf("parse %s: %v", pos, err)
		}
		if got != pos {
			t.Fatalf("parse %s = %s", pos, got)
		}
	}
	if _, err := ParsePosition("PUNTER"); err == nil {
		t.Fatal("unknown label accepted")
	}
}

func TestValidate(t *testing.T) {
	p := NewSpawner(1).SpawnPlayers(1)[0]
	if err := p.Validate(); err != nil {
		t.Fatalf("valid player rejected: %v", err)
	}

	bad := *p
	bad.Position = NumPositions
	if err := bad.Validate(); err == nil {
		t.Fatal("invalid position accepted")
	}

	bad = *p
	bad.Age = 0
	if err := bad.Validate(); err == nil {
		t.Fatal("zero age accepted")
	}

	bad = *p
	bad.Overall = 0
	if err := bad.Validate(); err == nil {
		t.Fatal("zero overall accepted")
	}
}

func TestLeagueTeams(t *testing.T) {
	if len(Teams) != 12 {
		t.Fatalf("league has %d teams, want 12", len(Teams))
	}

	names := make(map[string]bool, len(Teams))
	for _, tm := range Teams {
		if names[tm.Name] {
			t.Fatalf("duplicate team name %s", tm.Name)
		}
		names[tm.Name] = true
		if tm.State == "" || tm.City == "" {
			t.Fatalf("team %s missing location data", tm.Name)
		}
		if tm.TaxRate < 0 || tm.TaxRate > 0.15 {
			t.Fatalf("team %s tax rate %f out of range", tm.Name, tm.TaxRate)
		}
		if tm.Quality <= 0 || tm.Quality > 1 {
			t.Fatalf("team %s quality %f out of range", tm.Name, tm.Quality)
		}
	}
}
