// Evolution ledger — the audit trail and cooldown state attached to a
// personality. The evolution engine owns the policy (impact tables,
// cooldown durations, milestones); the ledger owns the data and the
// attribute routing.
package personality

import "fmt"

// Attribute names one of the 17 mutable numeric personality fields.
// Cooldowns are keyed per attribute so the "one active cooldown per
// trait" invariant is structural.
type Attribute uint8

const (
	// Weights.
	AttrMoneyPriority Attribute = iota
	AttrWinningPriority
	AttrLocationPriority
	AttrGuaranteePriority
	AttrLengthPriority
	// Behaviors.
	AttrHoldoutThreshold
	AttrCounterOfferMultiplier
	AttrDeadlineSoftening
	AttrComparisonWeight
	AttrDeadlineSusceptibility
	// Hidden sliders.
	AttrEgo
	AttrInjuryAnxiety
	AttrAgentQuality
	AttrSchemeFit
	AttrRolePromise
	AttrTaxSensitivity
	AttrEndorsementValue

	// NumAttributes is the size of per-attribute state arrays.
	NumAttributes
)

var attributeNames = [NumAttributes]string{
	"money_priority", "winning_priority", "location_priority",
	"guarantee_priority", "length_priority",
	"holdout_threshold", "counter_offer_multiplier", "deadline_softening",
	"comparison_weight", "deadline_susceptibility",
	"ego", "injury_anxiety", "agent_quality", "scheme_fit",
	"role_promise", "tax_sensitivity", "endorsement_value",
}

func (a Attribute) String() string {
	if a < NumAttributes {
		return attributeNames[a]
	}
	return "unknown"
}

// IsWeight reports whether the attribute is one of the five weights.
func (a Attribute) IsWeight() bool {
	return a <= AttrLengthPriority
}

// PersonalityChange is one attribute delta with its provenance.
type PersonalityChange struct {
	Attribute Attribute `json:"attribute"`
	Change    float64   `json:"change"`
	Reason    string    `json:"reason"`
	Permanent bool      `json:"permanent"`
}

// Cooldown is the per-attribute lock state. At most one exists per
// attribute; Active=false means the attribute is idle.
type Cooldown struct {
	StartWeek     int    `json:"start_week"` // absolute week index
	DurationWeeks int    `json:"duration_weeks"`
	Reason        string `json:"reason"`
	Active        bool   `json:"active"`
}

// LifeEventType enumerates off-field events that reshape a personality.
// Age milestones are handled separately by the evolution tick.
type LifeEventType uint8

const (
	EventMajorInjury LifeEventType = iota
	EventChampionshipWin
	EventTeamChange
	EventPersonalIssue
	EventCareerHighlight
)

func (t LifeEventType) String() string {
	switch t {
	case EventMajorInjury:
		return "major_injury"
	case EventChampionshipWin:
		return "championship_win"
	case EventTeamChange:
		return "team_change"
	case EventPersonalIssue:
		return "personal_issue"
	case EventCareerHighlight:
		return "career_highlight"
	}
	return "unknown"
}

// MarketExperienceType enumerates negotiation outcomes the player lives
// through and learns from.
type MarketExperienceType uint8

const (
	ExperienceSuccessfulHoldout MarketExperienceType = iota
	ExperienceFailedHoldout
	ExperienceMarketOverpayment
	ExperienceTeamBetrayal
	ExperienceChampionshipRun
	ExperiencePlayoffExit
	ExperienceInjuryRecovery
)

func (t MarketExperienceType) String() string {
	switch t {
	case ExperienceSuccessfulHoldout:
		return "successful_holdout"
	case ExperienceFailedHoldout:
		return "failed_holdout"
	case ExperienceMarketOverpayment:
		return "market_overpayment"
	case ExperienceTeamBetrayal:
		return "team_betrayal"
	case ExperienceChampionshipRun:
		return "championship_run"
	case ExperiencePlayoffExit:
		return "playoff_exit"
	case ExperienceInjuryRecovery:
		return "injury_recovery"
	}
	return "unknown"
}

// LifeEvent is a recorded life event. Its impact is applied on insert
// and re-applied every evolution tick while DurationWeeks > 0.
type LifeEvent struct {
	Type          LifeEventType       `json:"type"`
	Year          int                 `json:"year"`
	Week          int                 `json:"week"`
	Description   string              `json:"description,omitempty"`
	Impact        []PersonalityChange `json:"impact"`
	DurationWeeks int                 `json:"duration_weeks"`
}

// MarketExperience is a recorded market experience, same shape as a
// life event but drawn from the market impact table.
type MarketExperience struct {
	Type          MarketExperienceType `json:"type"`
	Year          int                  `json:"year"`
	Week          int                  `json:"week"`
	Description   string               `json:"description,omitempty"`
	Impact        []PersonalityChange  `json:"impact"`
	DurationWeeks int                  `json:"duration_weeks"`
}

// AgeMilestone records a one-time age-triggered change set.
type AgeMilestone struct {
	Age         int                 `json:"age"`
	Year        int                 `json:"year"`
	Changes     []PersonalityChange `json:"changes"`
	Description string              `json:"description"`
}

// EvolutionLedger is the append-only evolution state for one
// personality. Lifetime-bound to its owner; not internally
// synchronized.
type EvolutionLedger struct {
	EvolutionCount    int `json:"evolution_count"`
	LastEvolutionYear int `json:"last_evolution_year"`

	History []PersonalityChange `json:"evolution_history"`

	// Cooldowns is a fixed-size per-attribute state machine:
	// Idle (Active=false) -> Cooling (Active=true) -> Idle.
	Cooldowns [NumAttributes]Cooldown `json:"cooldowns"`

	Milestones        []AgeMilestone `json:"age_evolution_milestones"`
	MilestonesReached map[int]bool   `json:"milestones_reached,omitempty"`

	MarketExperiences []MarketExperience `json:"market_experiences"`
	LifeEvents        []LifeEvent        `json:"life_events"`
}

// OnCooldown reports whether the attribute is currently cooling at the
// given absolute week.
func (l *EvolutionLedger) OnCooldown(attr Attribute, week int) bool {
	cd := &l.Cooldowns[attr]
	if !cd.Active {
		return false
	}
	if week-cd.StartWeek >= cd.DurationWeeks {
		cd.Active = false
		return false
	}
	return true
}

// StartCooldown moves the attribute into the Cooling state.
func (l *EvolutionLedger) StartCooldown(attr Attribute, week, durationWeeks int, reason string) {
	l.Cooldowns[attr] = Cooldown{
		StartWeek:     week,
		DurationWeeks: durationWeeks,
		Reason:        reason,
		Active:        true,
	}
}

// ExpireCooldowns returns expired attributes to Idle.
func (l *EvolutionLedger) ExpireCooldowns(week int) int {
	expired := 0
	for i := range l.Cooldowns {
		cd := &l.Cooldowns[i]
		if cd.Active && week-cd.StartWeek >= cd.DurationWeeks {
			cd.Active = false
			expired++
		}
	}
	return expired
}

// AttributeValue returns the current value of a mutable attribute.
func (p *Personality) AttributeValue(attr Attribute) float64 {
	switch attr {
	case AttrMoneyPriority:
		return p.Weights.Money
	case AttrWinningPriority:
		return p.Weights.Winning
	case AttrLocationPriority:
		return p.Weights.Location
	case AttrGuaranteePriority:
		return p.Weights.Guarantee
	case AttrLengthPriority:
		return p.Weights.Length
	case AttrHoldoutThreshold:
		return p.Behaviors.HoldoutThreshold
	case AttrCounterOfferMultiplier:
		return p.Behaviors.CounterOfferMultiplier
	case AttrDeadlineSoftening:
		return p.Behaviors.DeadlineSoftening
	case AttrComparisonWeight:
		return p.Behaviors.ComparisonWeight
	case AttrDeadlineSusceptibility:
		return p.Behaviors.DeadlineSusceptibility
	case AttrEgo:
		return p.HiddenSliders.Ego
	case AttrInjuryAnxiety:
		return p.HiddenSliders.InjuryAnxiety
	case AttrAgentQuality:
		return p.HiddenSliders.AgentQuality
	case AttrSchemeFit:
		return p.HiddenSliders.SchemeFit
	case AttrRolePromise:
		return p.HiddenSliders.RolePromise
	case AttrTaxSensitivity:
		return p.HiddenSliders.TaxSensitivity
	case AttrEndorsementValue:
		return p.HiddenSliders.EndorsementValue
	}
	return 0
}

// ApplyDelta adds delta to the named attribute and clamps it to its
// declared range. Weight mutations renormalize all five weights
// afterward — renormalization is an invariant correction, not a change,
// so it does not consult cooldowns. Returns an error for an attribute
// outside the enum.
func (p *Personality) ApplyDelta(attr Attribute, delta float64) error {
	switch attr {
	case AttrMoneyPriority:
		p.Weights.Money = clamp(p.Weights.Money+delta, 0, 1)
	case AttrWinningPriority:
		p.Weights.Winning = clamp(p.Weights.Winning+delta, 0, 1)
	case AttrLocationPriority:
		p.Weights.Location = clamp(p.Weights.Location+delta, 0, 1)
	case AttrGuaranteePriority:
		p.Weights.Guarantee = clamp(p.Weights.Guarantee+delta, 0, 1)
	case AttrLengthPriority:
		p.Weights.Length = clamp(p.Weights.Length+delta, 0, 1)
	case AttrHoldoutThreshold:
		p.Behaviors.HoldoutThreshold = clamp(p.Behaviors.HoldoutThreshold+delta, 0, 1)
	case AttrCounterOfferMultiplier:
		p.Behaviors.CounterOfferMultiplier = clamp(p.Behaviors.CounterOfferMultiplier+delta,
			MinCounterOfferMultiplier, MaxCounterOfferMultiplier)
	case AttrDeadlineSoftening:
		p.Behaviors.DeadlineSoftening = clamp(p.Behaviors.DeadlineSoftening+delta, 0, MaxDeadlineSoftening)
	case AttrComparisonWeight:
		p.Behaviors.ComparisonWeight = clamp(p.Behaviors.ComparisonWeight+delta, 0, 1)
	case AttrDeadlineSusceptibility:
		p.Behaviors.DeadlineSusceptibility = clamp(p.Behaviors.DeadlineSusceptibility+delta, 0, 1)
	case AttrEgo:
		p.HiddenSliders.Ego = clamp(p.HiddenSliders.Ego+delta, 0, 1)
	case AttrInjuryAnxiety:
		p.HiddenSliders.InjuryAnxiety = clamp(p.HiddenSliders.InjuryAnxiety+delta, 0, 1)
	case AttrAgentQuality:
		p.HiddenSliders.AgentQuality = clamp(p.HiddenSliders.AgentQuality+delta, 0, 1)
	case AttrSchemeFit:
		p.HiddenSliders.SchemeFit = clamp(p.HiddenSliders.SchemeFit+delta, 0, 1)
	case AttrRolePromise:
		p.HiddenSliders.RolePromise = clamp(p.HiddenSliders.RolePromise+delta, 0, 1)
	case AttrTaxSensitivity:
		p.HiddenSliders.TaxSensitivity = clamp(p.HiddenSliders.TaxSensitivity+delta, 0, 1)
	case AttrEndorsementValue:
		p.HiddenSliders.EndorsementValue = clamp(p.HiddenSliders.EndorsementValue+delta, 0, 1)
	default:
		return fmt.Errorf("apply delta: unknown attribute %d", attr)
	}

	if attr.IsWeight() {
		p.Weights.Normalize()
	}
	return nil
}
