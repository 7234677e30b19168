// Package personality provides the player personality data model and the
// generator that synthesizes personalities from archetype templates.
package personality

import (
	"math"

	"github.com/jtalbot/frontoffice/internal/roster"
)

// NegotiationStyle describes how a player approaches contract talks.
type NegotiationStyle uint8

const (
	StyleAggressive NegotiationStyle = iota
	StyleCooperative
	StylePatient
	StyleDesperate
	StyleCalculated
	StyleVolatile
)

// NumNegotiationStyles is the number of negotiation style variants.
const NumNegotiationStyles = 6

func (s NegotiationStyle) String() string {
	switch s {
	case StyleAggressive:
		return "aggressive"
	case StyleCooperative:
		return "cooperative"
	case StylePatient:
		return "patient"
	case StyleDesperate:
		return "desperate"
	case StyleCalculated:
		return "calculated"
	case StyleVolatile:
		return "volatile"
	}
	return "unknown"
}

// RiskTolerance describes appetite for incentive-heavy or short deals.
type RiskTolerance uint8

const (
	RiskVeryLow RiskTolerance = iota
	RiskLow
	RiskModerate
	RiskHigh
	RiskVeryHigh
)

// NumRiskTolerances is the number of risk tolerance variants.
const NumRiskTolerances = 5

func (r RiskTolerance) String() string {
	switch r {
	case RiskVeryLow:
		return "very_low"
	case RiskLow:
		return "low"
	case RiskModerate:
		return "moderate"
	case RiskHigh:
		return "high"
	case RiskVeryHigh:
		return "very_high"
	}
	return "unknown"
}

// TeamLoyalty describes attachment to the current franchise.
type TeamLoyalty uint8

const (
	LoyaltyMercenary TeamLoyalty = iota
	LoyaltyFlexible
	LoyaltyNeutral
	LoyaltyLoyal
	LoyaltyDevoted
)

// NumTeamLoyalties is the number of team loyalty variants.
const NumTeamLoyalties = 5

func (l TeamLoyalty) String() string {
	switch l {
	case LoyaltyMercenary:
		return "mercenary"
	case LoyaltyFlexible:
		return "flexible"
	case LoyaltyNeutral:
		return "neutral"
	case LoyaltyLoyal:
		return "loyal"
	case LoyaltyDevoted:
		return "devoted"
	}
	return "unknown"
}

// LocationPreference describes where a player wants to play.
type LocationPreference uint8

const (
	LocBigMarket LocationPreference = iota
	LocSmallMarket
	LocWarmWeather
	LocColdWeather
	LocHomeRegion
	LocTaxFree
	LocNoPreference
)

// NumLocationPreferences is the number of location preference variants.
const NumLocationPreferences = 7

func (p LocationPreference) String() string {
	switch p {
	case LocBigMarket:
		return "big_market"
	case LocSmallMarket:
		return "small_market"
	case LocWarmWeather:
		return "warm_weather"
	case LocColdWeather:
		return "cold_weather"
	case LocHomeRegion:
		return "home_region"
	case LocTaxFree:
		return "tax_free"
	case LocNoPreference:
		return "no_preference"
	}
	return "unknown"
}

// DeadlineBehavior describes how a player acts as deadlines approach.
type DeadlineBehavior uint8

const (
	DeadlinePanicSigner DeadlineBehavior = iota
	DeadlineEarlyMover
	DeadlineSteady
	DeadlineBrinkman
	DeadlineHoldsFirm
	DeadlineUnpredictable
)

// NumDeadlineBehaviors is the number of deadline behavior variants.
const NumDeadlineBehaviors = 6

func (d DeadlineBehavior) String() string {
	switch d {
	case DeadlinePanicSigner:
		return "panic_signer"
	case DeadlineEarlyMover:
		return "early_mover"
	case DeadlineSteady:
		return "steady"
	case DeadlineBrinkman:
		return "brinkman"
	case DeadlineHoldsFirm:
		return "holds_firm"
	case DeadlineUnpredictable:
		return "unpredictable"
	}
	return "unknown"
}

// TradeDeadlineBehavior describes how a player reacts to being shopped
// at the trade deadline.
type TradeDeadlineBehavior uint8

const (
	TradeWelcomes TradeDeadlineBehavior = iota
	TradeAccepts
	TradeResists
	TradeBlocks
)

func (t TradeDeadlineBehavior) String() string {
	switch t {
	case TradeWelcomes:
		return "welcomes"
	case TradeAccepts:
		return "accepts"
	case TradeResists:
		return "resists"
	case TradeBlocks:
		return "blocks"
	}
	return "unknown"
}

// MarketTrend is the direction the market for a position is moving.
type MarketTrend uint8

const (
	TrendStable MarketTrend = iota
	TrendRising
	TrendFalling
)

func (t MarketTrend) String() string {
	switch t {
	case TrendRising:
		return "rising"
	case TrendFalling:
		return "falling"
	default:
		return "stable"
	}
}

// Traits holds the five categorical trait labels. Labels do not drive
// score math directly; they bias weight/behavior generation and
// feedback template selection.
type Traits struct {
	NegotiationStyle NegotiationStyle   `json:"negotiation_style"`
	RiskTolerance    RiskTolerance      `json:"risk_tolerance"`
	TeamLoyalty      TeamLoyalty        `json:"team_loyalty"`
	Location         LocationPreference `json:"location_preference"`
	Deadline         DeadlineBehavior   `json:"deadline_behavior"`
}

// Weights are the five contract priorities. Invariant: they sum to 1.0
// after generation and after every mutation.
type Weights struct {
	Money     float64 `json:"money_priority"`
	Winning   float64 `json:"winning_priority"`
	Location  float64 `json:"location_priority"`
	Guarantee float64 `json:"guarantee_priority"`
	Length    float64 `json:"length_priority"`
}

// Sum returns the total of the five weights.
func (w Weights) Sum() float64 {
	return w.Money + w.Winning + w.Location + w.Guarantee + w.Length
}

// Normalize rescales the five weights so they sum to 1.0. Zero-sum
// weights reset to a uniform split rather than dividing by zero.
func (w *Weights) Normalize() {
	sum := w.Sum()
	if sum <= 0 {
		w.Money, w.Winning, w.Location, w.Guarantee, w.Length = 0.2, 0.2, 0.2, 0.2, 0.2
		return
	}
	w.Money /= sum
	w.Winning /= sum
	w.Location /= sum
	w.Guarantee /= sum
	w.Length /= sum
}

// Behaviors are the observable negotiation parameters.
type Behaviors struct {
	HoldoutThreshold       float64 `json:"holdout_threshold"`        // [0,1]
	CounterOfferMultiplier float64 `json:"counter_offer_multiplier"` // >= 1.0
	DeadlineSoftening      float64 `json:"deadline_softening"`       // [0,0.1]
	ComparisonWeight       float64 `json:"comparison_weight"`        // [0,1]
	DeadlineSusceptibility float64 `json:"deadline_susceptibility"`  // [0,1]
}

// HiddenSliders are score modifiers never surfaced to the counterparty.
type HiddenSliders struct {
	Ego              float64 `json:"ego"`
	InjuryAnxiety    float64 `json:"injury_anxiety"`
	AgentQuality     float64 `json:"agent_quality"`
	SchemeFit        float64 `json:"scheme_fit"`
	RolePromise      float64 `json:"role_promise"`
	TaxSensitivity   float64 `json:"tax_sensitivity"`
	EndorsementValue float64 `json:"endorsement_value"`
}

// FeedbackTemplates hold the message pools for each decision category.
// Placeholders like {money_priority} are substituted at evaluation time.
type FeedbackTemplates struct {
	RejectLowOffer []string `json:"reject_low_offer"`
	CounterOffer   []string `json:"counter_offer"`
	HoldoutWarning []string `json:"holdout_warning"`
	Accept         []string `json:"accept"`
	GMNote         []string `json:"gm_note"`
}

// Blending records provenance when a personality mixes two archetypes.
// BlendRatio 0 means pure primary with no secondary recorded.
type Blending struct {
	Primary         string             `json:"primary_archetype"`
	Secondary       string             `json:"secondary_archetype,omitempty"`
	BlendRatio      float64            `json:"blend_ratio"`
	InheritedTraits []string           `json:"inherited_traits,omitempty"`
	ResolvedParams  map[string]float64 `json:"resolved_params,omitempty"`
}

// ExtensionTerms are the minimum terms a player demands before waiving
// resistance to a trade.
type ExtensionTerms struct {
	MinYears         int     `json:"min_years"`
	MinGuaranteedPct float64 `json:"min_guaranteed_pct"`
	APYMultiplier    float64 `json:"apy_multiplier"`
}

// TradePreferences describe how the player behaves around trades.
type TradePreferences struct {
	RequiresExtensionProbability float64               `json:"requires_extension_probability"` // [0,1]
	ReportingDelayIfUnhappy      int                   `json:"reporting_delay_if_unhappy"`     // days
	DeadlineBehavior             TradeDeadlineBehavior `json:"trade_deadline_behavior"`
	ExtensionTerms               ExtensionTerms        `json:"extension_terms"`
}

// Percentiles are market value bands for a position.
type Percentiles struct {
	P25 float64 `json:"p25"`
	P50 float64 `json:"p50"`
	P75 float64 `json:"p75"`
	P90 float64 `json:"p90"`
}

// MarketContext is the position-specific market snapshot the player
// judges offers against.
type MarketContext struct {
	Position             roster.Position `json:"position"`
	APYPercentiles       Percentiles     `json:"apy_percentiles"`       // $M per year
	GuaranteePercentiles Percentiles     `json:"guarantee_percentiles"` // fraction of total value
	SupplyPressure       float64         `json:"supply_pressure"`       // [0,1], high = scarce
	Trend                MarketTrend     `json:"market_trend"`
	LastUpdated          int             `json:"last_updated"` // year
}

// LocationPref is one generated location preference with its match rule.
// The engine produces this data; team fit is computed by the caller.
type LocationPref struct {
	Type       LocationPreference `json:"type"`
	Weight     float64            `json:"weight"` // [0,1]
	States     []string           `json:"states,omitempty"`
	Climate    roster.Climate     `json:"climate,omitempty"`
	MarketSize roster.MarketSize  `json:"market_size,omitempty"`
	TaxFree    bool               `json:"tax_free,omitempty"`
}

// Personality is the complete persistent personality for one player.
// Created once by the generator, then mutated in place by the evolution
// engine over the player's career. Single-writer: callers serialize
// concurrent mutation of the same personality.
type Personality struct {
	Archetype string  `json:"archetype"`
	Rarity    float64 `json:"rarity"`

	Traits        Traits            `json:"traits"`
	Weights       Weights           `json:"weights"`
	Behaviors     Behaviors         `json:"behaviors"`
	HiddenSliders HiddenSliders     `json:"hidden_sliders"`
	Templates     FeedbackTemplates `json:"feedback_templates"`
	Blending      Blending          `json:"blending"`
	TradePrefs    TradePreferences  `json:"trade_preferences"`
	Market        MarketContext     `json:"market_context"`

	LocationPrefs []LocationPref `json:"location_preferences"`

	Evolution EvolutionLedger `json:"evolution"`
}

// Clamp bounds for behavior fields.
const (
	MinCounterOfferMultiplier = 1.05
	MaxCounterOfferMultiplier = 1.60
	MaxDeadlineSoftening      = 0.10
)

// ClampBounds re-clamps every bounded field to its declared range.
// Correct generation and mutation never need this to change anything;
// tests treat a correction here as a bug signal.
func (p *Personality) ClampBounds() {
	b := &p.Behaviors
	b.HoldoutThreshold = clamp(b.HoldoutThreshold, 0, 1)
	b.CounterOfferMultiplier = clamp(b.CounterOfferMultiplier, MinCounterOfferMultiplier, MaxCounterOfferMultiplier)
	b.DeadlineSoftening = clamp(b.DeadlineSoftening, 0, MaxDeadlineSoftening)
	b.ComparisonWeight = clamp(b.ComparisonWeight, 0, 1)
	b.DeadlineSusceptibility = clamp(b.DeadlineSusceptibility, 0, 1)

	s := &p.HiddenSliders
	s.Ego = clamp(s.Ego, 0, 1)
	s.InjuryAnxiety = clamp(s.InjuryAnxiety, 0, 1)
	s.AgentQuality = clamp(s.AgentQuality, 0, 1)
	s.SchemeFit = clamp(s.SchemeFit, 0, 1)
	s.RolePromise = clamp(s.RolePromise, 0, 1)
	s.TaxSensitivity = clamp(s.TaxSensitivity, 0, 1)
	s.EndorsementValue = clamp(s.EndorsementValue, 0, 1)
}

// WeightsSumOK reports whether the weights sum to 1.0 within tolerance.
func (p *Personality) WeightsSumOK() bool {
	return math.Abs(p.Weights.Sum()-1.0) < 1e-6
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
