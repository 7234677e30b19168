// Package roster provides the player and team data model consumed by
// the personality and negotiation engines.
package roster

import (
	"fmt"

	"github.com/google/uuid"
)

// Position is a player's position group.
type Position uint8

const (
	QB Position = iota
	RB
	WR
	TE
	OL
	DL
	LB
	CB
	S
	K
)

// NumPositions is the number of position groups.
const NumPositions = 10

var positionNames = [NumPositions]string{
	"QB", "RB", "WR", "TE", "OL", "DL", "LB", "CB", "S", "K",
}

func (p Position) String() string {
	if p < NumPositions {
		return positionNames[p]
	}
	return "??"
}

// ParsePosition converts a position label to its enum value.
func ParsePosition(s string) (Position, error) {
	for i, name := range positionNames {
		if name == s {
			return Position(i), nil
		}
	}
	return 0, fmt.Errorf("unknown position %q", s)
}

// Skill reports whether the position is a skill position (non-lineman).
// Endorsement appeal only applies to skill positions.
func (p Position) Skill() bool {
	return p != OL && p != DL
}

// Climate buckets a team's home weather.
type Climate uint8

const (
	ClimateTemperate Climate = iota
	ClimateWarm
	ClimateCold
	ClimateDome
)

func (c Climate) String() string {
	switch c {
	case ClimateWarm:
		return "warm"
	case ClimateCold:
		return "cold"
	case ClimateDome:
		return "dome"
	default:
		return "temperate"
	}
}

// MarketSize buckets a team's media market.
type MarketSize uint8

const (
	MarketSmall MarketSize = iota
	MarketMedium
	MarketLarge
)

func (m MarketSize) String() string {
	switch m {
	case MarketLarge:
		return "large"
	case MarketMedium:
		return "medium"
	default:
		return "small"
	}
}

// Player is the base-attribute record the personality generator reads.
type Player struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Position   Position  `json:"position"`
	Age        int       `json:"age"`
	Overall    int       `json:"overall"` // 40–99 rating
	Experience int       `json:"experience_years"`
	HomeState  string    `json:"home_state,omitempty"`
}

// Validate fails fast on structurally invalid players. Callers must
// validate upstream; the generator refuses malformed input.
func (p *Player) Validate() error {
	if p.Position >= NumPositions {
		return fmt.Errorf("player %s: invalid position %d", p.Name, p.Position)
	}
	if p.Age <= 0 {
		return fmt.Errorf("player %s: missing age", p.Name)
	}
	if p.Overall <= 0 {
		return fmt.Errorf("player %s: missing overall rating", p.Name)
	}
	return nil
}

// Team is the team/location descriptor used during evaluation.
type Team struct {
	Name       string     `json:"name"`
	City       string     `json:"city"`
	State      string     `json:"state"`
	Climate    Climate    `json:"climate"`
	MarketSize MarketSize `json:"market_size"`
	TaxRate    float64    `json:"tax_rate"` // state income tax, [0,0.15]
	Contender  bool       `json:"contender"`
	Stability  float64    `json:"stability"` // [0,1] front-office stability
	Quality    float64    `json:"quality"`   // [0,1] roster quality
}
