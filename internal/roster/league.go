// Built-in league table and procedural player generation.
package roster

import (
	"math/rand"

	"github.com/google/uuid"
)

// Teams is the built-in twelve-team league. The engine holds a
// reference to this table; callers may substitute their own.
var Teams = []Team{
	{Name: "Marauders", City: "New Avalon", State: "NY", Climate: ClimateCold, MarketSize: MarketLarge, TaxRate: 0.0882, Contender: true, Stability: 0.8, Quality: 0.82},
	{Name: "Stallions", City: "Bayport", State: "CA", Climate: ClimateTemperate, MarketSize: MarketLarge, TaxRate: 0.123, Contender: true, Stability: 0.7, Quality: 0.78},
	{Name: "Gators", City: "Suncrest", State: "FL", Climate: ClimateWarm, MarketSize: MarketMedium, TaxRate: 0.0, Contender: false, Stability: 0.55, Quality: 0.62},
	{Name: "Outlaws", City: "Redmesa", State: "TX", Climate: ClimateDome, MarketSize: MarketLarge, TaxRate: 0.0, Contender: true, Stability: 0.75, Quality: 0.8},
	{Name: "Glaciers", City: "Northgate", State: "MN", Climate: ClimateCold, MarketSize: MarketMedium, TaxRate: 0.0985, Contender: false, Stability: 0.6, Quality: 0.58},
	{Name: "Monarchs", City: "Kingsport", State: "TN", Climate: ClimateTemperate, MarketSize: MarketSmall, TaxRate: 0.0, Contender: false, Stability: 0.65, Quality: 0.55},
	{Name: "Tempest", City: "Harborview", State: "WA", Climate: ClimateTemperate, MarketSize: MarketMedium, TaxRate: 0.0, Contender: true, Stability: 0.85, Quality: 0.76},
	{Name: "Copperheads", City: "Dustbowl", State: "AZ", Climate: ClimateDome, MarketSize: MarketSmall, TaxRate: 0.025, Contender: false, Stability: 0.4, Quality: 0.48},
	{Name: "Admirals", City: "Eastbay", State: "MA", Climate: ClimateCold, MarketSize: MarketLarge, TaxRate: 0.05, Contender: true, Stability: 0.9, Quality: 0.84},
	{Name: "Prairie Dogs", City: "Flatrock", State: "KS", Climate: ClimateTemperate, MarketSize: MarketSmall, TaxRate: 0.057, Contender: false, Stability: 0.5, Quality: 0.5},
	{Name: "Voyageurs", City: "Lakemont", State: "IL", Climate: ClimateCold, MarketSize: MarketLarge, TaxRate: 0.0495, Contender: false, Stability: 0.45, Quality: 0.6},
	{Name: "Sidewinders", City: "Palm Mesa", State: "NV", Climate: ClimateWarm, MarketSize: MarketMedium, TaxRate: 0.0, Contender: false, Stability: 0.6, Quality: 0.64},
}

// Spawner creates procedural players for simulation runs.
type Spawner struct {
	rng *rand.Rand
}

// NewSpawner creates a player spawner with the given seed.
func NewSpawner(seed int64) *Spawner {
	return &Spawner{rng: rand.New(rand.NewSource(seed + 300))}
}

// SpawnPlayers creates a batch of players with realistic age and rating
// distributions.
func (s *Spawner) SpawnPlayers(count int) []*Player {
	players := make([]*Player, 0, count)
	for i := 0; i < count; i++ {
		players = append(players, s.spawnOne())
	}
	return players
}

func (s *Spawner) spawnOne() *Player {
	pos := s.weightedPosition()
	age := s.weightedAge()

	// Overall: bell curve around 74, clamped to the scouting scale.
	overall := int(74 + s.rng.NormFloat64()*8)
	if overall < 55 {
		overall = 55
	}
	if overall > 99 {
		overall = 99
	}

	exp := age - 22
	if exp < 0 {
		exp = 0
	}

	return &Player{
		ID:         uuid.New(),
		Name:       s.generateName(),
		Position:   pos,
		Age:        age,
		Overall:    overall,
		Experience: exp,
		HomeState:  homeStates[s.rng.Intn(len(homeStates))],
	}
}

func (s *Spawner) weightedAge() int {
	// Careers skew young: most players 22–30, a long tail to 38.
	age := 26.0 + s.rng.NormFloat64()*3.5
	if age < 21 {
		age = 21
	}
	if age > 38 {
		age = 38
	}
	return int(age)
}

func (s *Spawner) weightedPosition() Position {
	r := s.rng.Float64()
	switch {
	case r < 0.06:
		return QB
	case r < 0.14:
		return RB
	case r < 0.28:
		return WR
	case r < 0.36:
		return TE
	case r < 0.54:
		return OL
	case r < 0.70:
		return DL
	case r < 0.80:
		return LB
	case r < 0.90:
		return CB
	case r < 0.97:
		return S
	default:
		return K
	}
}

func (s *Spawner) generateName() string {
	first := firstNames[s.rng.Intn(len(firstNames))]
	last := lastNames[s.rng.Intn(len(lastNames))]
	return first + " " + last
}

// Name pools for procedural generation.
var firstNames = []string{
	"Marcus", "DeShawn", "Tyler", "Jalen", "Brock", "Caleb", "Darius",
	"Evan", "Trey", "Malik", "Jordan", "Xavier", "Cole", "Devonta",
	"Rashad", "Austin", "Kenny", "Lamar", "Nate", "Omar", "Quentin",
	"Reggie", "Shane", "Terrell", "Victor", "Wade", "Zack", "Andre",
	"Brandon", "Cameron", "Dante", "Elijah", "Frank", "Grant", "Hakeem",
}

var lastNames = []string{
	"Washington", "Brooks", "Carter", "Dawson", "Ellison", "Fletcher",
	"Greer", "Hayes", "Irving", "Jenkins", "Kirkland", "Lattimore",
	"Mercer", "Norwood", "Okafor", "Prescott", "Quinn", "Rhodes",
	"Sampson", "Thorne", "Upshaw", "Vance", "Whitfield", "Yarbrough",
	"Zimmerman", "Abernathy", "Bullock", "Creed", "Delgado", "Easley",
	"Fontaine", "Granger", "Holloway", "Ives", "Jessup", "Kessler",
}

var homeStates = []string{
	"TX", "FL", "CA", "GA", "OH", "PA", "LA", "AL", "NC", "MI",
	"NY", "IL", "TN", "SC", "MS", "VA", "NJ", "WA", "AZ", "MN",
}
