// Offer evaluation — four stages: weighted base score, hidden-slider
// modifiers, market-dynamics modifiers, threshold decision. Score and
// decision are deterministic for identical inputs; only feedback
// template selection consults the evaluator's rng.
package negotiation

import (
	"fmt"
	"math/rand"

	"github.com/jtalbot/frontoffice/internal/personality"
	"github.com/jtalbot/frontoffice/internal/roster"
)

// Evaluator scores offers with a fixed calibration. The rng is used
// only to pick feedback templates; nil selects deterministically.
type Evaluator struct {
	Cal Calibration
	rng *rand.Rand
}

// NewEvaluator creates an evaluator. Pass a nil rng for fully
// deterministic output including feedback.
func NewEvaluator(cal Calibration, rng *rand.Rand) *Evaluator {
	return &Evaluator{Cal: cal, rng: rng}
}

// Evaluate scores the offer against the personality and returns the
// decision. Missing market context or competing offers disable the
// corresponding modifier stage; they are never an error.
func (e *Evaluator) Evaluate(p *personality.Personality, ctx *EvaluationContext) Evaluation {
	factors := make(map[string]float64, 12)

	mc := ctx.Market
	if mc == nil {
		mc = &p.Market
	}

	base := e.baseScore(p, &ctx.Offer, mc, factors)
	afterSliders := e.sliderModifiers(p, ctx, mc, base, factors)
	final := e.marketModifiers(p, ctx, mc, afterSliders, factors)
	final = clamp(final, 0, 1)

	decision := e.decide(final, p)

	ev := Evaluation{
		Decision: decision,
		Score:    final,
		Reasoning: fmt.Sprintf("base %.2f, sliders %+.2f, market %+.2f -> %s",
			base, afterSliders-base, final-afterSliders, decision),
		PersonalityFactors: factors,
	}

	if decision == DecisionCounter {
		counter := e.buildCounter(p, ctx.Offer)
		ev.CounterOffer = &counter
	}

	ev.Feedback = e.feedback(p, ctx, mc, &ev)
	return ev
}

// baseScore computes the weighted sum of how well the offer's
// normalized terms satisfy the personality's five priorities.
func (e *Evaluator) baseScore(p *personality.Personality, offer *ContractOffer,
	mc *personality.MarketContext, factors map[string]float64) float64 {

	money := 0.5
	guarantee := 0.5
	gpct := 0.0
	if offer.TotalValue > 0 {
		gpct = offer.GuaranteedAmount / offer.TotalValue
	}
	if hasMarket(mc) {
		money = bandPosition(offer.APY, mc.APYPercentiles)
		guarantee = bandPosition(gpct, mc.GuaranteePercentiles)
	}

	length := clamp(float64(offer.Years)/float64(e.Cal.MaxDesirableYears), 0, 1)
	winning := clamp(offer.TeamQuality, 0, 1)
	location := clamp(offer.LocationMatch, 0, 1)

	factors["money_component"] = money
	factors["guarantee_component"] = guarantee
	factors["length_component"] = length
	factors["winning_component"] = winning
	factors["location_component"] = location

	w := p.Weights
	score := w.Money*money + w.Guarantee*guarantee + w.Length*length +
		w.Winning*winning + w.Location*location
	factors["base_score"] = score
	return score
}

// sliderModifiers applies the hidden personality dimensions.
func (e *Evaluator) sliderModifiers(p *personality.Personality, ctx *EvaluationContext,
	mc *personality.MarketContext, score float64, factors map[string]float64) float64 {

	s := p.HiddenSliders
	offer := &ctx.Offer
	before := score

	// Ego: offers under the 75th percentile read as disrespect,
	// scaled by how far under they land.
	if hasMarket(mc) && offer.APY < mc.APYPercentiles.P75 {
		slight := (mc.APYPercentiles.P75 - offer.APY) / mc.APYPercentiles.P75
		score -= s.Ego * 0.15 * slight
	}

	// Injury anxiety amplifies how much the guarantee band matters.
	gpct := 0.0
	if offer.TotalValue > 0 {
		gpct = offer.GuaranteedAmount / offer.TotalValue
	}
	gScore := 0.5
	if hasMarket(mc) {
		gScore = bandPosition(gpct, mc.GuaranteePercentiles)
	}
	score += s.InjuryAnxiety * (gScore - 0.5) * 0.2

	// Better agents pull the score toward the mean — fewer bad
	// accepts and fewer bad rejects.
	score += s.AgentQuality * 0.3 * (0.5 - score)

	// Scheme fit and role promise only register when both the roster
	// and the location already work.
	if offer.TeamQuality > 0.7 && offer.LocationMatch > 0.7 {
		score += (s.SchemeFit + s.RolePromise) / 2 * 0.10
	}

	// State tax. Zero-tax states earn a bonus; a sensitivity of zero
	// makes the whole term vanish.
	if ctx.Team != nil {
		if ctx.Team.TaxRate == 0 {
			score += s.TaxSensitivity * 0.05
		} else {
			score -= s.TaxSensitivity * ctx.Team.TaxRate * 0.8
		}
	}

	// Endorsement money exists for skill players in large markets.
	if ctx.Team != nil && ctx.Team.MarketSize == roster.MarketLarge && mc.Position.Skill() {
		score += s.EndorsementValue * 0.08
	}

	// Deadline pressure softens the player's position.
	if ctx.Stage >= StageTradeDeadline {
		score += p.Behaviors.DeadlineSoftening * p.Behaviors.DeadlineSusceptibility
	}

	factors["slider_adjustment"] = score - before
	return score
}

// marketModifiers folds in supply pressure, trend, and competing
// offers. Absent data makes each term a no-op.
func (e *Evaluator) marketModifiers(p *personality.Personality, ctx *EvaluationContext,
	mc *personality.MarketContext, score float64, factors map[string]float64) float64 {

	before := score

	if hasMarket(mc) {
		// Scarcity: a thin market at the position raises the bar.
		score += (mc.SupplyPressure - 0.5) * 0.2

		switch mc.Trend {
		case personality.TrendRising:
			score += 0.05
		case personality.TrendFalling:
			score -= 0.05
		}
	}

	// A clearly better competing offer drags this one down in
	// proportion to the shortfall.
	if best := bestCompetingAPY(ctx.CompetingOffers); best > 0 && ctx.Offer.APY > 0 {
		if best > ctx.Offer.APY*(1+e.Cal.CompetingMargin) {
			shortfall := (best - ctx.Offer.APY) / best
			score -= shortfall * 0.3 * (0.5 + 0.5*p.Behaviors.ComparisonWeight)
		}
	}

	factors["market_adjustment"] = score - before
	factors["final_score"] = score
	return score
}

// decide maps the final score to a decision through the calibrated
// cutoffs. The holdout check uses the personality's own threshold and
// runs before the fixed reject cutoff.
func (e *Evaluator) decide(score float64, p *personality.Personality) DecisionKind {
	switch {
	case score >= e.Cal.AcceptCutoff:
		return DecisionAccept
	case score < p.Behaviors.HoldoutThreshold:
		return DecisionHoldout
	case score < e.Cal.RejectCutoff:
		return DecisionReject
	case score >= e.Cal.CounterCutoff && p.Traits.NegotiationStyle != personality.StyleDesperate:
		return DecisionCounter
	default:
		return DecisionShortlist
	}
}

// buildCounter scales the offer by the counter multiplier, adjusted
// upward by ego and agent quality. Every monetary field strictly
// exceeds the original.
func (e *Evaluator) buildCounter(p *personality.Personality, offer ContractOffer) ContractOffer {
	m := p.Behaviors.CounterOfferMultiplier *
		(1 + p.HiddenSliders.Ego*0.08 + p.HiddenSliders.AgentQuality*0.07)

	counter := offer
	counter.APY = strictlyAbove(offer.APY*m, offer.APY)
	counter.TotalValue = strictlyAbove(offer.TotalValue*m, offer.TotalValue)
	counter.GuaranteedAmount = strictlyAbove(offer.GuaranteedAmount*m, offer.GuaranteedAmount)
	return counter
}

// strictlyAbove guards the strict-exceed invariant for degenerate
// zero-valued fields.
func strictlyAbove(v, floor float64) float64 {
	if v <= floor {
		return floor + 0.5
	}
	return v
}

func bestCompetingAPY(offers []ContractOffer) float64 {
	best := 0.0
	for _, o := range offers {
		if o.APY > best {
			best = o.APY
		}
	}
	return best
}

// bandPosition normalizes a value against percentile bands: at or
// below p25 scores 0, at or above p90 scores 1.
func bandPosition(v float64, p personality.Percentiles) float64 {
	span := p.P90 - p.P25
	if span <= 0 {
		return 0.5
	}
	return clamp((v-p.P25)/span, 0, 1)
}

// hasMarket reports whether the snapshot carries real percentile data.
func hasMarket(mc *personality.MarketContext) bool {
	return mc != nil && mc.APYPercentiles.P50 > 0
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
