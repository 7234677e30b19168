// Package negotiation scores contract offers against a player's
// personality and live market conditions, and maps the result to a
// decision. Pure: no I/O, no mutation of the personality.
package negotiation

import (
	"github.com/jtalbot/frontoffice/internal/personality"
	"github.com/jtalbot/frontoffice/internal/roster"
)

// ContractOffer is one candidate contract. Monetary fields are in $M.
type ContractOffer struct {
	Years                 int     `json:"years"`
	TotalValue            float64 `json:"total_value"`
	APY                   float64 `json:"apy"`
	GuaranteedAmount      float64 `json:"guaranteed_amount"`
	SigningBonus          float64 `json:"signing_bonus"`
	PerformanceIncentives float64 `json:"performance_incentives"`
	TeamQuality           float64 `json:"team_quality"`   // [0,1]
	LocationMatch         float64 `json:"location_match"` // [0,1]
}

// SeasonStage is where in the league calendar the evaluation happens.
type SeasonStage uint8

const (
	StageOffseason SeasonStage = iota
	StageTrainingCamp
	StageRegularSeason
	StageTradeDeadline
	StagePlayoffs
)

func (s SeasonStage) String() string {
	switch s {
	case StageTrainingCamp:
		return "training_camp"
	case StageRegularSeason:
		return "regular_season"
	case StageTradeDeadline:
		return "trade_deadline"
	case StagePlayoffs:
		return "playoffs"
	default:
		return "offseason"
	}
}

// EvaluationContext is the ephemeral, per-call input to Evaluate.
type EvaluationContext struct {
	Offer           ContractOffer
	Team            *roster.Team
	Market          *personality.MarketContext // nil falls back to the personality's own snapshot
	CompetingOffers []ContractOffer
	CurrentWeek     int
	Stage           SeasonStage
}

// DecisionKind is the closed set of negotiation outcomes.
type DecisionKind uint8

const (
	DecisionAccept DecisionKind = iota
	DecisionCounter
	DecisionReject
	DecisionHoldout
	DecisionShortlist
)

func (d DecisionKind) String() string {
	switch d {
	case DecisionAccept:
		return "accept"
	case DecisionCounter:
		return "counter"
	case DecisionReject:
		return "reject"
	case DecisionHoldout:
		return "holdout"
	case DecisionShortlist:
		return "shortlist"
	}
	return "unknown"
}

// Evaluation is the full result of scoring one offer.
type Evaluation struct {
	Decision  DecisionKind `json:"decision"`
	Score     float64      `json:"score"`
	Reasoning string       `json:"reasoning"`
	Feedback  string       `json:"feedback"`

	// CounterOffer is set only when Decision is DecisionCounter.
	CounterOffer *ContractOffer `json:"counter_offer,omitempty"`

	// PersonalityFactors exposes the stage contributions for
	// diagnostics and the GM-facing UI.
	PersonalityFactors map[string]float64 `json:"personality_factors"`
}

// Calibration holds the tunable threshold constants. Boundary values
// are business calibration, not invariants; nothing else in the system
// may hard-code them.
type Calibration struct {
	AcceptCutoff      float64 // score at or above accepts outright
	RejectCutoff      float64 // score below rejects (after the holdout check)
	CounterCutoff     float64 // lower edge of the counter band
	CompetingMargin   float64 // competing APY advantage that triggers a penalty
	MaxDesirableYears int     // contract length that fully satisfies length priority
}

// DefaultCalibration returns the stock thresholds.
func DefaultCalibration() Calibration {
	return Calibration{
		AcceptCutoff:      0.90,
		RejectCutoff:      0.40,
		CounterCutoff:     0.60,
		CompetingMargin:   0.20,
		MaxDesirableYears: 5,
	}
}
