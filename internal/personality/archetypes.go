// Archetype reference table — the base personality templates individual
// personalities are sampled from. Static, versioned configuration data:
// loadable from JSON, with a built-in default table the generator falls
// back to when loading fails. The generator holds a reference to one
// table, never a copy.
package personality

import (
	"github.com/jtalbot/frontoffice/internal/roster"
)

// Archetype is one base personality template.
type Archetype struct {
	Name      string        `json:"name"`
	Rarity    float64       `json:"rarity"` // relative frequency weight
	Traits    Traits        `json:"traits"`
	Weights   Weights       `json:"weights"`
	Behaviors Behaviors     `json:"behaviors"`
	Sliders   HiddenSliders `json:"sliders"`

	// GMNotes are archetype-flavored lines appended to the shared
	// gm_note template pool.
	GMNotes []string `json:"gm_notes,omitempty"`
}

// Archetype names, referenced by the rarity modifier rules.
const (
	ArchRingChaser     = "Ring Chaser"
	ArchMoneyMaximizer = "Money Maximizer"
	ArchHometownHero   = "Hometown Hero"
	ArchSecuritySeeker = "Security Seeker"
	ArchBigStage       = "Big Stage"
	ArchTeamPlayer     = "Team Player"
	ArchGambler        = "Gambler"
	ArchJourneyman     = "Journeyman"
)

// builtinArchetypes is the default archetype table. Rarities sum to 1.0
// but only relative magnitude matters for the weighted draw.
var builtinArchetypes = []Archetype{
	{
		Name:   ArchRingChaser,
		Rarity: 0.12,
		Traits: Traits{
			NegotiationStyle: StyleCalculated,
			RiskTolerance:    RiskModerate,
			TeamLoyalty:      LoyaltyFlexible,
			Location:         LocNoPreference,
			Deadline:         DeadlineEarlyMover,
		},
		Weights:   Weights{Money: 0.15, Winning: 0.40, Location: 0.10, Guarantee: 0.20, Length: 0.15},
		Behaviors: Behaviors{HoldoutThreshold: 0.25, CounterOfferMultiplier: 1.12, DeadlineSoftening: 0.04, ComparisonWeight: 0.4, DeadlineSusceptibility: 0.5},
		Sliders:   HiddenSliders{Ego: 0.45, InjuryAnxiety: 0.4, AgentQuality: 0.6, SchemeFit: 0.7, RolePromise: 0.6, TaxSensitivity: 0.2, EndorsementValue: 0.3},
		GMNotes:   []string{"Wants a contender above all — sell the roster, not the money."},
	},
	{
		Name:   ArchMoneyMaximizer,
		Rarity: 0.18,
		Traits: Traits{
			NegotiationStyle: StyleAggressive,
			RiskTolerance:    RiskHigh,
			TeamLoyalty:      LoyaltyMercenary,
			Location:         LocTaxFree,
			Deadline:         DeadlineBrinkman,
		},
		Weights:   Weights{Money: 0.45, Winning: 0.10, Location: 0.10, Guarantee: 0.20, Length: 0.15},
		Behaviors: Behaviors{HoldoutThreshold: 0.45, CounterOfferMultiplier: 1.30, DeadlineSoftening: 0.02, ComparisonWeight: 0.8, DeadlineSusceptibility: 0.25},
		Sliders:   HiddenSliders{Ego: 0.7, InjuryAnxiety: 0.3, AgentQuality: 0.8, SchemeFit: 0.4, RolePromise: 0.4, TaxSensitivity: 0.7, EndorsementValue: 0.5},
		GMNotes:   []string{"Every dollar is a scoreboard. Expect the agent to shop any number we float."},
	},
	{
		Name:   ArchHometownHero,
		Rarity: 0.12,
		Traits: Traits{
			NegotiationStyle: StyleCooperative,
			RiskTolerance:    RiskLow,
			TeamLoyalty:      LoyaltyDevoted,
			Location:         LocHomeRegion,
			Deadline:         DeadlineEarlyMover,
		},
		Weights:   Weights{Money: 0.15, Winning: 0.15, Location: 0.35, Guarantee: 0.20, Length: 0.15},
		Behaviors: Behaviors{HoldoutThreshold: 0.15, CounterOfferMultiplier: 1.08, DeadlineSoftening: 0.07, ComparisonWeight: 0.2, DeadlineSusceptibility: 0.7},
		Sliders:   HiddenSliders{Ego: 0.3, InjuryAnxiety: 0.5, AgentQuality: 0.4, SchemeFit: 0.5, RolePromise: 0.5, TaxSensitivity: 0.1, EndorsementValue: 0.2},
		GMNotes:   []string{"Community ties run deep. A fair deal gets done quietly."},
	},
	{
		Name:   ArchSecuritySeeker,
		Rarity: 0.16,
		Traits: Traits{
			NegotiationStyle: StylePatient,
			RiskTolerance:    RiskVeryLow,
			TeamLoyalty:      LoyaltyLoyal,
			Location:         LocSmallMarket,
			Deadline:         DeadlineSteady,
		},
		Weights:   Weights{Money: 0.15, Winning: 0.10, Location: 0.10, Guarantee: 0.40, Length: 0.25},
		Behaviors: Behaviors{HoldoutThreshold: 0.20, CounterOfferMultiplier: 1.10, DeadlineSoftening: 0.06, ComparisonWeight: 0.3, DeadlineSusceptibility: 0.6},
		Sliders:   HiddenSliders{Ego: 0.25, InjuryAnxiety: 0.75, AgentQuality: 0.5, SchemeFit: 0.5, RolePromise: 0.45, TaxSensitivity: 0.3, EndorsementValue: 0.15},
		GMNotes:   []string{"Guarantees close this deal. Structure matters more than headline value."},
	},
	{
		Name:   ArchBigStage,
		Rarity: 0.10,
		Traits: Traits{
			NegotiationStyle: StyleVolatile,
			RiskTolerance:    RiskHigh,
			TeamLoyalty:      LoyaltyFlexible,
			Location:         LocBigMarket,
			Deadline:         DeadlineUnpredictable,
		},
		Weights:   Weights{Money: 0.25, Winning: 0.15, Location: 0.30, Guarantee: 0.15, Length: 0.15},
		Behaviors: Behaviors{HoldoutThreshold: 0.40, CounterOfferMultiplier: 1.25, DeadlineSoftening: 0.03, ComparisonWeight: 0.6, DeadlineSusceptibility: 0.35},
		Sliders:   HiddenSliders{Ego: 0.85, InjuryAnxiety: 0.3, AgentQuality: 0.7, SchemeFit: 0.4, RolePromise: 0.6, TaxSensitivity: 0.25, EndorsementValue: 0.85},
		GMNotes:   []string{"The market is the pitch. Media reach moves this negotiation more than cap math."},
	},
	{
		Name:   ArchTeamPlayer,
		Rarity: 0.15,
		Traits: Traits{
			NegotiationStyle: StyleCooperative,
			RiskTolerance:    RiskModerate,
			TeamLoyalty:      LoyaltyLoyal,
			Location:         LocNoPreference,
			Deadline:         DeadlineSteady,
		},
		Weights:   Weights{Money: 0.20, Winning: 0.25, Location: 0.15, Guarantee: 0.20, Length: 0.20},
		Behaviors: Behaviors{HoldoutThreshold: 0.18, CounterOfferMultiplier: 1.10, DeadlineSoftening: 0.05, ComparisonWeight: 0.3, DeadlineSusceptibility: 0.55},
		Sliders:   HiddenSliders{Ego: 0.3, InjuryAnxiety: 0.45, AgentQuality: 0.5, SchemeFit: 0.65, RolePromise: 0.6, TaxSensitivity: 0.2, EndorsementValue: 0.25},
		GMNotes:   []string{"Locker-room first. Keep the conversation about role and respect."},
	},
	{
		Name:   ArchGambler,
		Rarity: 0.09,
		Traits: Traits{
			NegotiationStyle: StyleAggressive,
			RiskTolerance:    RiskVeryHigh,
			TeamLoyalty:      LoyaltyMercenary,
			Location:         LocWarmWeather,
			Deadline:         DeadlineHoldsFirm,
		},
		Weights:   Weights{Money: 0.35, Winning: 0.20, Location: 0.10, Guarantee: 0.10, Length: 0.25},
		Behaviors: Behaviors{HoldoutThreshold: 0.50, CounterOfferMultiplier: 1.40, DeadlineSoftening: 0.01, ComparisonWeight: 0.7, DeadlineSusceptibility: 0.15},
		Sliders:   HiddenSliders{Ego: 0.65, InjuryAnxiety: 0.15, AgentQuality: 0.6, SchemeFit: 0.5, RolePromise: 0.55, TaxSensitivity: 0.4, EndorsementValue: 0.4},
		GMNotes:   []string{"Bets on himself every time. Incentive-heavy structures land well."},
	},
	{
		Name:   ArchJourneyman,
		Rarity: 0.08,
		Traits: Traits{
			NegotiationStyle: StyleDesperate,
			RiskTolerance:    RiskLow,
			TeamLoyalty:      LoyaltyNeutral,
			Location:         LocNoPreference,
			Deadline:         DeadlinePanicSigner,
		},
		Weights:   Weights{Money: 0.25, Winning: 0.10, Location: 0.10, Guarantee: 0.30, Length: 0.25},
		Behaviors: Behaviors{HoldoutThreshold: 0.08, CounterOfferMultiplier: 1.06, DeadlineSoftening: 0.09, ComparisonWeight: 0.2, DeadlineSusceptibility: 0.9},
		Sliders:   HiddenSliders{Ego: 0.2, InjuryAnxiety: 0.6, AgentQuality: 0.35, SchemeFit: 0.5, RolePromise: 0.7, TaxSensitivity: 0.15, EndorsementValue: 0.1},
		GMNotes:   []string{"A roster spot is the leverage. Don't overpay for urgency he already feels."},
	},
}

// defaultTemplates is the shared feedback template pool. Archetype
// GMNotes are appended to the gm_note list at generation time.
var defaultTemplates = FeedbackTemplates{
	RejectLowOffer: []string{
		"That number disrespects the market — {apy} against a {p50} positional median is a non-starter.",
		"We ran the comps. {apy} isn't a serious opener and the answer is no.",
		"Money priority here is {money_priority} and this offer never gets near it.",
	},
	CounterOffer: []string{
		"We're close. Move to {counter_apy} per year and this gets signed.",
		"The structure works but the number doesn't — our counter is {counter_apy}.",
		"Guarantee {guarantee_pct} of it and meet us at {counter_apy}, and we have a deal.",
	},
	HoldoutWarning: []string{
		"He's prepared to sit. The offer sits below his line of {holdout_threshold}.",
		"Until the front office gets serious, he won't be in the building.",
		"Supply pressure is {supply_pressure} — he can afford to wait, and he will.",
	},
	Accept: []string{
		"Deal. Team quality of {team_quality} and a location fit of {location_match} made this easy.",
		"That's a fair number for both sides. He's signing.",
		"The market says yes and so does he. Done at {apy}.",
	},
	GMNote: []string{
		"Ego reads {ego_level} — plan the press conference accordingly.",
		"Agent quality is {agent_quality}; expect every term re-traded once.",
	},
}

// LocationRule is the match-rule template for one location preference
// type. HomeRegion rules are filled with the player's home state at
// generation time.
type LocationRule struct {
	Type       LocationPreference `json:"type"`
	States     []string           `json:"states,omitempty"`
	Climate    roster.Climate     `json:"climate,omitempty"`
	MarketSize roster.MarketSize  `json:"market_size,omitempty"`
	TaxFree    bool               `json:"tax_free,omitempty"`
}

// builtinLocationRules is the default location reference table.
var builtinLocationRules = []LocationRule{
	{Type: LocBigMarket, MarketSize: roster.MarketLarge},
	{Type: LocSmallMarket, MarketSize: roster.MarketSmall},
	{Type: LocWarmWeather, Climate: roster.ClimateWarm},
	{Type: LocColdWeather, Climate: roster.ClimateCold},
	{Type: LocHomeRegion},
	{Type: LocTaxFree, TaxFree: true, States: []string{"FL", "TX", "NV", "WA", "TN"}},
	{Type: LocNoPreference},
}
