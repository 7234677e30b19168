// Package evolution mutates personalities over a player's career: life
// events, market experiences, age milestones, and the per-attribute
// cooldown machinery that keeps traits from oscillating.
package evolution

import (
	"math"

	"github.com/jtalbot/frontoffice/internal/personality"
)

// change is shorthand for building impact lists.
func change(attr personality.Attribute, delta float64, reason string, permanent bool) personality.PersonalityChange {
	return personality.PersonalityChange{Attribute: attr, Change: delta, Reason: reason, Permanent: permanent}
}

// lifeEventImpact returns the attribute deltas for a life event type.
// The switch is exhaustive over the enum; a new event type that isn't
// added here is a compile-visible gap, not a silent no-op at runtime.
func lifeEventImpact(t personality.LifeEventType) []personality.PersonalityChange {
	switch t {
	case personality.EventMajorInjury:
		return []personality.PersonalityChange{
			change(personality.AttrGuaranteePriority, 0.15, "major injury", true),
			change(personality.AttrInjuryAnxiety, 0.20, "major injury", true),
			change(personality.AttrMoneyPriority, -0.05, "major injury", false),
		}
	case personality.EventChampionshipWin:
		return []personality.PersonalityChange{
			change(personality.AttrWinningPriority, 0.10, "championship win", true),
			change(personality.AttrEgo, 0.10, "championship win", false),
		}
	case personality.EventTeamChange:
		return []personality.PersonalityChange{
			change(personality.AttrLocationPriority, 0.05, "team change", false),
			change(personality.AttrComparisonWeight, 0.08, "team change", false),
		}
	case personality.EventPersonalIssue:
		return []personality.PersonalityChange{
			change(personality.AttrLocationPriority, 0.10, "personal issue", false),
			change(personality.AttrLengthPriority, 0.05, "personal issue", false),
		}
	case personality.EventCareerHighlight:
		return []personality.PersonalityChange{
			change(personality.AttrEgo, 0.08, "career highlight", false),
			change(personality.AttrMoneyPriority, 0.05, "career highlight", false),
		}
	}
	return nil
}

// lifeEventDuration returns how many weeks the event keeps echoing.
func lifeEventDuration(t personality.LifeEventType) int {
	switch t {
	case personality.EventMajorInjury:
		return 8
	case personality.EventChampionshipWin:
		return 4
	case personality.EventTeamChange:
		return 6
	case personality.EventPersonalIssue:
		return 10
	case personality.EventCareerHighlight:
		return 3
	}
	return 0
}

// marketExperienceImpact returns the attribute deltas for a market
// experience type.
func marketExperienceImpact(t personality.MarketExperienceType) []personality.PersonalityChange {
	switch t {
	case personality.ExperienceSuccessfulHoldout:
		return []personality.PersonalityChange{
			change(personality.AttrEgo, 0.10, "successful holdout", true),
			change(personality.AttrHoldoutThreshold, 0.05, "successful holdout", true),
			change(personality.AttrMoneyPriority, 0.05, "successful holdout", false),
		}
	case personality.ExperienceFailedHoldout:
		return []personality.PersonalityChange{
			change(personality.AttrHoldoutThreshold, -0.08, "failed holdout", true),
			change(personality.AttrEgo, -0.05, "failed holdout", false),
			change(personality.AttrGuaranteePriority, 0.05, "failed holdout", false),
		}
	case personality.ExperienceMarketOverpayment:
		return []personality.PersonalityChange{
			change(personality.AttrMoneyPriority, 0.08, "market overpayment at position", false),
			change(personality.AttrEgo, 0.05, "market overpayment at position", false),
		}
	case personality.ExperienceTeamBetrayal:
		return []personality.PersonalityChange{
			change(personality.AttrGuaranteePriority, 0.10, "team betrayal", true),
			change(personality.AttrComparisonWeight, 0.10, "team betrayal", true),
			change(personality.AttrHoldoutThreshold, 0.03, "team betrayal", false),
		}
	case personality.ExperienceChampionshipRun:
		return []personality.PersonalityChange{
			change(personality.AttrWinningPriority, 0.12, "championship run", true),
			change(personality.AttrMoneyPriority, -0.05, "championship run", false),
		}
	case personality.ExperiencePlayoffExit:
		return []personality.PersonalityChange{
			change(personality.AttrWinningPriority, 0.06, "playoff exit", false),
		}
	case personality.ExperienceInjuryRecovery:
		return []personality.PersonalityChange{
			change(personality.AttrInjuryAnxiety, -0.10, "injury recovery", false),
			change(personality.AttrGuaranteePriority, -0.05, "injury recovery", false),
		}
	}
	return nil
}

// marketExperienceDuration returns the echo window for an experience.
func marketExperienceDuration(t personality.MarketExperienceType) int {
	switch t {
	case personality.ExperienceSuccessfulHoldout:
		return 6
	case personality.ExperienceFailedHoldout:
		return 8
	case personality.ExperienceMarketOverpayment:
		return 4
	case personality.ExperienceTeamBetrayal:
		return 12
	case personality.ExperienceChampionshipRun:
		return 5
	case personality.ExperiencePlayoffExit:
		return 3
	case personality.ExperienceInjuryRecovery:
		return 6
	}
	return 0
}

// milestoneAges are the one-time age-evolution triggers.
var milestoneAges = []int{30, 35}

// milestoneChanges returns the fixed change set for an age milestone.
func milestoneChanges(age int) []personality.PersonalityChange {
	switch age {
	case 30:
		return []personality.PersonalityChange{
			change(personality.AttrGuaranteePriority, 0.10, "turned 30", true),
			change(personality.AttrLengthPriority, 0.05, "turned 30", true),
			change(personality.AttrMoneyPriority, -0.05, "turned 30", true),
			change(personality.AttrInjuryAnxiety, 0.10, "turned 30", true),
		}
	case 35:
		return []personality.PersonalityChange{
			change(personality.AttrGuaranteePriority, 0.15, "turned 35", true),
			change(personality.AttrLengthPriority, 0.10, "turned 35", true),
			change(personality.AttrWinningPriority, 0.10, "turned 35", true),
			change(personality.AttrMoneyPriority, -0.10, "turned 35", true),
		}
	}
	return nil
}

// Cooldown duration policy: 4 weeks base, scaled by the magnitude of
// the change that started it.
const baseCooldownWeeks = 4

func cooldownWeeks(delta float64) int {
	mag := math.Abs(delta)
	switch {
	case mag > 0.3:
		return baseCooldownWeeks * 3
	case mag > 0.2:
		return baseCooldownWeeks * 2
	case mag > 0.1:
		return baseCooldownWeeks * 3 / 2
	default:
		return baseCooldownWeeks
	}
}
