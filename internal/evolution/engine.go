// Evolution entry points: event insertion and the weekly tick. Callers
// serialize access per personality; nothing here is internally
// synchronized.
package evolution

import (
	"log/slog"

	"github.com/jtalbot/frontoffice/internal/personality"
)

// WeeksPerYear converts (year, week) pairs to the absolute week index
// used by cooldown bookkeeping.
const WeeksPerYear = 52

func absWeek(year, week int) int {
	return year*WeeksPerYear + week
}

// AddLifeEvent records a life event, applies its impact immediately,
// and registers cooldowns for every attribute it touched. Returns the
// number of changes that actually applied (attributes under an active
// cooldown drop theirs).
func AddLifeEvent(p *personality.Personality, t personality.LifeEventType, year, week int, desc string) int {
	ev := personality.LifeEvent{
		Type:          t,
		Year:          year,
		Week:          week,
		Description:   desc,
		Impact:        lifeEventImpact(t),
		DurationWeeks: lifeEventDuration(t),
	}
	p.Evolution.LifeEvents = append(p.Evolution.LifeEvents, ev)

	applied := applyAll(p, ev.Impact, absWeek(year, week))
	if applied > 0 {
		noteEvolution(p, year)
	}
	slog.Debug("life event added", "type", t.String(), "year", year, "week", week, "applied", applied)
	return applied
}

// AddMarketExperience records a market experience, same shape as
// AddLifeEvent but keyed on the market impact table.
func AddMarketExperience(p *personality.Personality, t personality.MarketExperienceType, year, week int, desc string) int {
	exp := personality.MarketExperience{
		Type:          t,
		Year:          year,
		Week:          week,
		Description:   desc,
		Impact:        marketExperienceImpact(t),
		DurationWeeks: marketExperienceDuration(t),
	}
	p.Evolution.MarketExperiences = append(p.Evolution.MarketExperiences, exp)

	applied := applyAll(p, exp.Impact, absWeek(year, week))
	if applied > 0 {
		noteEvolution(p, year)
	}
	slog.Debug("market experience added", "type", t.String(), "year", year, "week", week, "applied", applied)
	return applied
}

// Tick runs one evolution cycle: expire cooldowns, re-apply the echo of
// every live event, and fire any age milestone the player has reached.
// The scheduler that decides cadence lives outside this package.
// Returns the number of changes applied this tick.
func Tick(p *personality.Personality, age, year, week int) int {
	led := &p.Evolution
	now := absWeek(year, week)

	led.ExpireCooldowns(now)

	applied := 0

	for i := range led.LifeEvents {
		ev := &led.LifeEvents[i]
		if ev.DurationWeeks <= 0 {
			continue
		}
		applied += applyAll(p, ev.Impact, now)
		ev.DurationWeeks--
	}

	for i := range led.MarketExperiences {
		exp := &led.MarketExperiences[i]
		if exp.DurationWeeks <= 0 {
			continue
		}
		applied += applyAll(p, exp.Impact, now)
		exp.DurationWeeks--
	}

	applied += fireMilestones(p, age, year, now)

	if applied > 0 {
		noteEvolution(p, year)
	}
	return applied
}

// fireMilestones applies each age milestone at most once per player.
func fireMilestones(p *personality.Personality, age, year, now int) int {
	led := &p.Evolution
	if led.MilestonesReached == nil {
		led.MilestonesReached = make(map[int]bool)
	}

	applied := 0
	for _, ma := range milestoneAges {
		if age < ma || led.MilestonesReached[ma] {
			continue
		}
		led.MilestonesReached[ma] = true

		changes := milestoneChanges(ma)
		led.Milestones = append(led.Milestones, personality.AgeMilestone{
			Age:         ma,
			Year:        year,
			Changes:     changes,
			Description: milestoneDescription(ma),
		})
		applied += applyAll(p, changes, now)
		slog.Debug("age milestone fired", "age", ma, "year", year)
	}
	return applied
}

func milestoneDescription(age int) string {
	if age >= 35 {
		return "career twilight: security and legacy over headline money"
	}
	return "age 30: durability becomes the negotiation"
}

// applyAll routes each change through the cooldown gate and returns how
// many applied.
func applyAll(p *personality.Personality, changes []personality.PersonalityChange, now int) int {
	applied := 0
	for _, ch := range changes {
		if apply(p, ch, now) {
			applied++
		}
	}
	return applied
}

// apply is the single write path for personality attributes: a change
// to an attribute in its Cooling state is dropped, not queued; an
// applied change moves the attribute to Cooling for a duration scaled
// by the change magnitude, and lands in the audit history.
func apply(p *personality.Personality, ch personality.PersonalityChange, now int) bool {
	led := &p.Evolution
	if led.OnCooldown(ch.Attribute, now) {
		return false
	}
	if err := p.ApplyDelta(ch.Attribute, ch.Change); err != nil {
		slog.Warn("dropping invalid personality change", "attribute", ch.Attribute, "error", err)
		return false
	}
	led.StartCooldown(ch.Attribute, now, cooldownWeeks(ch.Change), ch.Reason)
	led.History = append(led.History, ch)
	return true
}

func noteEvolution(p *personality.Personality, year int) {
	p.Evolution.EvolutionCount++
	p.Evolution.LastEvolutionYear = year
}
