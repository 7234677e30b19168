package negotiation

import (
	"strings"
	"testing"

	"github.com/jtalbot/frontoffice/internal/personality"
	"github.com/jtalbot/frontoffice/internal/roster"
)

// neutralPersonality builds a personality with even weights, mid-range
// behaviors, and zeroed sliders so individual test cases can flip one
// dial at a time.
func neutralPersonality() *personality.Personality {
	return &personality.Personality{
		Archetype: "journeyman",
		Traits: personality.Traits{
			NegotiationStyle: personality.StyleCalculated,
		},
		Weights: personality.Weights{
			Money: 0.2, Winning: 0.2, Location: 0.2, Guarantee: 0.2, Length: 0.2,
		},
		Behaviors: personality.Behaviors{
			HoldoutThreshold:       0.15,
			CounterOfferMultiplier: 1.20,
			ComparisonWeight:       0.5,
			DeadlineSoftening:      0.05,
			DeadlineSusceptibility: 0.5,
		},
		Templates: personality.FeedbackTemplates{
			RejectLowOffer: []string{"not at {apy}"},
			CounterOffer:   []string{"we want {counter_apy}"},
			HoldoutWarning: []string{"holding out above {holdout_threshold}"},
			Accept:         []string{"deal at {apy}"},
			GMNote:         []string{"monitoring at {supply_pressure}"},
		},
		Market: personality.StaticMarketContext(roster.WR, 85, 1),
	}
}

func midOffer(mc *personality.MarketContext) ContractOffer {
	return ContractOffer{
		Years:            3,
		APY:              mc.APYPercentiles.P50,
		TotalValue:       mc.APYPercentiles.P50 * 3,
		GuaranteedAmount: mc.APYPercentiles.P50 * 3 * mc.GuaranteePercentiles.P50,
		TeamQuality:      0.6,
		LocationMatch:    0.5,
	}
}

func TestEvaluateDeterministic(t *testing.T) {
	p := neutralPersonality()
	ctx := &EvaluationContext{Offer: midOffer(&p.Market)}

	eval := NewEvaluator(DefaultCalibration(), nil)
	a := eval.Evaluate(p, ctx)
	b := eval.Evaluate(p, ctx)

	if a.Score != b.Score {
		t.Fatalf("scores diverged: %f vs %f", a.Score, b.Score)
	}
	if a.Decision != b.Decision {
		t.Fatalf("decisions diverged: %s vs %s", a.Decision, b.Decision)
	}
	if a.Feedback != b.Feedback {
		t.Fatalf("feedback diverged: %q vs %q", a.Feedback, b.Feedback)
	}
}

func TestEvaluateScoreInRange(t *testing.T) {
	p := neutralPersonality()
	eval := NewEvaluator(DefaultCalibration(), nil)

	offers := []ContractOffer{
		{Years: 1, APY: 0.5, TotalValue: 0.5},
		midOffer(&p.Market),
		{Years: 5, APY: 99, TotalValue: 495, GuaranteedAmount: 450, TeamQuality: 1, LocationMatch: 1},
	}
	for _, offer := range offers {
		ev := eval.Evaluate(p, &EvaluationContext{Offer: offer})
		if ev.Score < 0 || ev.Score > 1 {
			t.Fatalf("score %f out of [0,1] for offer %+v", ev.Score, offer)
		}
	}
}

func TestDecideThresholds(t *testing.T) {
	p := neutralPersonality()
	p.Behaviors.HoldoutThreshold = 0.2
	eval := NewEvaluator(DefaultCalibration(), nil)

	cases := []struct {
		score float64
		want  DecisionKind
	}{
		{0.95, DecisionAccept},
		{0.90, DecisionAccept},
		{0.10, DecisionHoldout},
		{0.19, DecisionHoldout},
		{0.30, DecisionReject},
		{0.39, DecisionReject},
		{0.70, DecisionCounter},
		{0.60, DecisionCounter},
		{0.50, DecisionShortlist},
	}
	for _, tc := range cases {
		if got := eval.decide(tc.score, p); got != tc.want {
			t.Errorf("decide(%.2f) = %s, want %s", tc.score, got, tc.want)
		}
	}
}

func TestDesperateNeverCounters(t *testing.T) {
	p := neutralPersonality()
	p.Traits.NegotiationStyle = personality.StyleDesperate
	eval := NewEvaluator(DefaultCalibration(), nil)

	if got := eval.decide(0.70, p); got != DecisionShortlist {
		t.Fatalf("desperate style countered: %s", got)
	}
}

func TestCounterStrictlyExceedsOffer(t *testing.T) {
	p := neutralPersonality()
	p.HiddenSliders.Ego = 0.8
	p.HiddenSliders.AgentQuality = 0.6
	eval := NewEvaluator(DefaultCalibration(), nil)

	offer := midOffer(&p.Market)
	counter := eval.buildCounter(p, offer)

	if counter.APY <= offer.APY {
		t.Fatalf("counter APY %f not above offer %f", counter.APY, offer.APY)
	}
	if counter.TotalValue <= offer.TotalValue {
		t.Fatalf("counter total %f not above offer %f", counter.TotalValue, offer.TotalValue)
	}
	if counter.GuaranteedAmount <= offer.GuaranteedAmount {
		t.Fatalf("counter guarantee %f not above offer %f",
			counter.GuaranteedAmount, offer.GuaranteedAmount)
	}

	// Degenerate zero-guarantee offers still move strictly up.
	zero := ContractOffer{Years: 2, APY: 10, TotalValue: 20}
	counter = eval.buildCounter(p, zero)
	if counter.GuaranteedAmount <= 0 {
		t.Fatalf("zero guarantee not raised: %f", counter.GuaranteedAmount)
	}
}

func TestSupplyPressureRaisesScore(t *testing.T) {
	p := neutralPersonality()
	eval := NewEvaluator(DefaultCalibration(), nil)

	thin := p.Market
	thin.SupplyPressure = 0.9
	flooded := p.Market
	flooded.SupplyPressure = 0.2

	offer := midOffer(&p.Market)
	scoreThin := eval.Evaluate(p, &EvaluationContext{Offer: offer, Market: &thin}).Score
	scoreFlooded := eval.Evaluate(p, &EvaluationContext{Offer: offer, Market: &flooded}).Score

	if scoreThin <= scoreFlooded {
		t.Fatalf("scarce market should raise the bar on the player's value read: %f <= %f",
			scoreThin, scoreFlooded)
	}
}

func TestTrendShiftsScore(t *testing.T) {
	p := neutralPersonality()
	eval := NewEvaluator(DefaultCalibration(), nil)
	offer := midOffer(&p.Market)

	rising := p.Market
	rising.Trend = personality.TrendRising
	falling := p.Market
	falling.Trend = personality.TrendFalling

	scoreRising := eval.Evaluate(p, &EvaluationContext{Offer: offer, Market: &rising}).Score
	scoreFalling := eval.Evaluate(p, &EvaluationContext{Offer: offer, Market: &falling}).Score

	if scoreFalling >= scoreRising {
		t.Fatalf("falling trend should score below rising: %f >= %f", scoreFalling, scoreRising)
	}
}

func TestTaxSensitivity(t *testing.T) {
	p := neutralPersonality()
	eval := NewEvaluator(DefaultCalibration(), nil)
	offer := midOffer(&p.Market)

	taxFree := &roster.Team{Name: "A", State: "FL", TaxRate: 0, MarketSize: roster.MarketSmall, Quality: 0.6}
	taxed := &roster.Team{Name: "B", State: "CA", TaxRate: 0.123, MarketSize: roster.MarketSmall, Quality: 0.6}

	// Zero sensitivity: the tax term vanishes entirely.
	p.HiddenSliders.TaxSensitivity = 0
	a := eval.Evaluate(p, &EvaluationContext{Offer: offer, Team: taxFree}).Score
	b := eval.Evaluate(p, &EvaluationContext{Offer: offer, Team: taxed}).Score
	if a != b {
		t.Fatalf("tax moved score at zero sensitivity: %f vs %f", a, b)
	}

	// Full sensitivity: zero-tax state wins.
	p.HiddenSliders.TaxSensitivity = 1
	a = eval.Evaluate(p, &EvaluationContext{Offer: offer, Team: taxFree}).Score
	b = eval.Evaluate(p, &EvaluationContext{Offer: offer, Team: taxed}).Score
	if a <= b {
		t.Fatalf("tax-free team should score higher at full sensitivity: %f <= %f", a, b)
	}
}

func TestCompetingOfferPenalty(t *testing.T) {
	p := neutralPersonality()
	eval := NewEvaluator(DefaultCalibration(), nil)
	offer := midOffer(&p.Market)

	alone := eval.Evaluate(p, &EvaluationContext{Offer: offer}).Score
	contested := eval.Evaluate(p, &EvaluationContext{
		Offer:           offer,
		CompetingOffers: []ContractOffer{{APY: offer.APY * 1.5}},
	}).Score

	if contested >= alone {
		t.Fatalf("clearly better competing offer should drag the score: %f >= %f",
			contested, alone)
	}

	// A competing offer within the margin is ignored.
	near := eval.Evaluate(p, &EvaluationContext{
		Offer:           offer,
		CompetingOffers: []ContractOffer{{APY: offer.APY * 1.05}},
	}).Score
	if near != alone {
		t.Fatalf("in-margin competing offer moved the score: %f vs %f", near, alone)
	}
}

func TestMissingMarketIsNeutral(t *testing.T) {
	p := neutralPersonality()
	p.Market = personality.MarketContext{} // no percentile data
	eval := NewEvaluator(DefaultCalibration(), nil)

	ev := eval.Evaluate(p, &EvaluationContext{Offer: ContractOffer{
		Years: 3, APY: 12, TotalValue: 36, GuaranteedAmount: 18,
		TeamQuality: 0.6, LocationMatch: 0.5,
	}})
	if ev.Score < 0 || ev.Score > 1 {
		t.Fatalf("score %f out of range without market data", ev.Score)
	}
	if ev.PersonalityFactors["money_component"] != 0.5 {
		t.Fatalf("money component %f, want neutral 0.5",
			ev.PersonalityFactors["money_component"])
	}
}

func TestDeadlinePressureSoftens(t *testing.T) {
	p := neutralPersonality()
	eval := NewEvaluator(DefaultCalibration(), nil)
	offer := midOffer(&p.Market)

	early := eval.Evaluate(p, &EvaluationContext{Offer: offer, Stage: StageOffseason}).Score
	late := eval.Evaluate(p, &EvaluationContext{Offer: offer, Stage: StageTradeDeadline}).Score

	if late <= early {
		t.Fatalf("deadline pressure should soften the player's position: %f <= %f", late, early)
	}
}

func TestFeedbackSubstitution(t *testing.T) {
	p := neutralPersonality()
	eval := NewEvaluator(DefaultCalibration(), nil)

	ev := eval.Evaluate(p, &EvaluationContext{Offer: midOffer(&p.Market)})
	if ev.Feedback == "" {
		t.Fatal("empty feedback")
	}
	if strings.Contains(ev.Feedback, "{") {
		t.Fatalf("unsubstituted placeholder in feedback: %q", ev.Feedback)
	}
}

func TestEvaluationDoesNotMutatePersonality(t *testing.T) {
	p := neutralPersonality()
	before := *p
	eval := NewEvaluator(DefaultCalibration(), nil)

	eval.Evaluate(p, &EvaluationContext{Offer: midOffer(&p.Market)})

	if p.Weights != before.Weights || p.Behaviors != before.Behaviors ||
		p.HiddenSliders != before.HiddenSliders {
		t.Fatal("evaluation mutated the personality")
	}
}

func TestVeteranHoldoutScenario(t *testing.T) {
	p := neutralPersonality()
	p.Behaviors.HoldoutThreshold = 0.4
	eval := NewEvaluator(DefaultCalibration(), nil)

	if got := eval.decide(0.95, p); got != DecisionAccept {
		t.Fatalf("score 0.95 = %s, want accept", got)
	}
	if got := eval.decide(0.30, p); got != DecisionHoldout && got != DecisionReject {
		t.Fatalf("score 0.30 = %s, want holdout or reject", got)
	}
	if got := eval.decide(0.60, p); got != DecisionCounter && got != DecisionShortlist {
		t.Fatalf("score 0.60 = %s, want counter or shortlist", got)
	}
}

func TestLocationMatch(t *testing.T) {
	warmTeam := &roster.Team{Name: "Gators", State: "FL", Climate: roster.ClimateWarm,
		MarketSize: roster.MarketMedium, TaxRate: 0}
	domeTeam := &roster.Team{Name: "Outlaws", State: "TX", Climate: roster.ClimateDome,
		MarketSize: roster.MarketLarge, TaxRate: 0}
	coldTeam := &roster.Team{Name: "Glaciers", State: "MN", Climate: roster.ClimateCold,
		MarketSize: roster.MarketMedium, TaxRate: 0.0985}

	if got := LocationMatch(nil, warmTeam); got != 0.5 {
		t.Fatalf("no preferences should be neutral, got %f", got)
	}

	warmPref := []personality.LocationPref{{
		Type: personality.LocWarmWeather, Weight: 1, Climate: roster.ClimateWarm,
	}}
	if got := LocationMatch(warmPref, warmTeam); got != 1 {
		t.Fatalf("warm pref vs warm team = %f, want 1", got)
	}
	if got := LocationMatch(warmPref, coldTeam); got != 0 {
		t.Fatalf("warm pref vs cold team = %f, want 0", got)
	}
	if got := LocationMatch(warmPref, domeTeam); got != 0.7 {
		t.Fatalf("dome should neutralize weather at 0.7, got %f", got)
	}

	taxPref := []personality.LocationPref{{
		Type: personality.LocTaxFree, Weight: 1, TaxFree: true,
	}}
	if got := LocationMatch(taxPref, warmTeam); got != 1 {
		t.Fatalf("tax-free pref vs zero-tax team = %f, want 1", got)
	}
	if got := LocationMatch(taxPref, coldTeam); got != 0 {
		t.Fatalf("tax-free pref vs taxed team = %f, want 0", got)
	}

	homePref := []personality.LocationPref{{
		Type: personality.LocHomeRegion, Weight: 1, States: []string{"TX"},
	}}
	if got := LocationMatch(homePref, domeTeam); got != 1 {
		t.Fatalf("home region pref vs TX team = %f, want 1", got)
	}
}
