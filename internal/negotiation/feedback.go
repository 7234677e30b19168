// Feedback rendering — picks a template from the personality's pool for
// the decision category and substitutes the live numeric placeholders.
package negotiation

import (
	"fmt"
	"strings"

	"github.com/jtalbot/frontoffice/internal/personality"
)

// feedback renders the player-camp message for an evaluation.
func (e *Evaluator) feedback(p *personality.Personality, ctx *EvaluationContext,
	mc *personality.MarketContext, ev *Evaluation) string {

	var pool []string
	switch ev.Decision {
	case DecisionAccept:
		pool = p.Templates.Accept
	case DecisionCounter:
		pool = p.Templates.CounterOffer
	case DecisionHoldout:
		pool = p.Templates.HoldoutWarning
	case DecisionReject:
		pool = p.Templates.RejectLowOffer
	default:
		pool = p.Templates.GMNote
	}
	if len(pool) == 0 {
		return ""
	}

	tmpl := pool[e.pickIndex(len(pool), ev.Score)]

	gpct := 0.0
	if ctx.Offer.TotalValue > 0 {
		gpct = ctx.Offer.GuaranteedAmount / ctx.Offer.TotalValue
	}
	counterAPY := 0.0
	if ev.CounterOffer != nil {
		counterAPY = ev.CounterOffer.APY
	}

	r := strings.NewReplacer(
		"{money_priority}", f2(p.Weights.Money),
		"{location_match}", f2(ctx.Offer.LocationMatch),
		"{team_quality}", f2(ctx.Offer.TeamQuality),
		"{ego_level}", f2(p.HiddenSliders.Ego),
		"{agent_quality}", f2(p.HiddenSliders.AgentQuality),
		"{holdout_threshold}", f2(p.Behaviors.HoldoutThreshold),
		"{supply_pressure}", f2(mc.SupplyPressure),
		"{apy}", fmt.Sprintf("$%.2fM", ctx.Offer.APY),
		"{p50}", fmt.Sprintf("$%.2fM", mc.APYPercentiles.P50),
		"{counter_apy}", fmt.Sprintf("$%.2fM", counterAPY),
		"{guarantee_pct}", f2(gpct),
	)
	return r.Replace(tmpl)
}

// pickIndex chooses a template index: random when an rng was injected,
// otherwise a stable function of the score.
func (e *Evaluator) pickIndex(n int, score float64) int {
	if n <= 1 {
		return 0
	}
	if e.rng != nil {
		return e.rng.Intn(n)
	}
	return int(score*1000) % n
}

func f2(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
