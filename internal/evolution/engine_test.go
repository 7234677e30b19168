package evolution

import (
	"testing"

	"github.com/jtalbot/frontoffice/internal/personality"
)

func basePersonality() *personality.Personality {
	return &personality.Personality{
		Archetype: "journeyman",
		Weights: personality.Weights{
			Money: 0.2, Winning: 0.2, Location: 0.2, Guarantee: 0.2, Length: 0.2,
		},
		Behaviors: personality.Behaviors{
			HoldoutThreshold:       0.15,
			CounterOfferMultiplier: 1.2,
			ComparisonWeight:       0.5,
		},
		HiddenSliders: personality.HiddenSliders{
			Ego: 0.5, InjuryAnxiety: 0.5, AgentQuality: 0.5,
		},
	}
}

func TestAddLifeEventApplies(t *testing.T) {
	p := basePersonality()

	applied := AddLifeEvent(p, personality.EventMajorInjury, 1, 3, "torn achilles")
	if applied != 3 {
		t.Fatalf("applied %d changes, want 3", applied)
	}
	if len(p.Evolution.LifeEvents) != 1 {
		t.Fatalf("life events recorded: %d", len(p.Evolution.LifeEvents))
	}
	if len(p.Evolution.History) != 3 {
		t.Fatalf("history entries: %d, want 3", len(p.Evolution.History))
	}
	if p.Evolution.EvolutionCount != 1 || p.Evolution.LastEvolutionYear != 1 {
		t.Fatalf("evolution bookkeeping: count=%d year=%d",
			p.Evolution.EvolutionCount, p.Evolution.LastEvolutionYear)
	}

	if p.HiddenSliders.InjuryAnxiety <= 0.5 {
		t.Fatalf("injury anxiety did not rise: %f", p.HiddenSliders.InjuryAnxiety)
	}
	if p.Weights.Guarantee <= p.Weights.Money {
		t.Fatalf("guarantee priority did not outgrow money: %+v", p.Weights)
	}
	if !p.WeightsSumOK() {
		t.Fatalf("weights sum broken after event: %f", p.Weights.Sum())
	}
}

func TestCooldownSuppressesRepeatEvent(t *testing.T) {
	p := basePersonality()

	if applied := AddLifeEvent(p, personality.EventCareerHighlight, 1, 1, "first"); applied != 2 {
		t.Fatalf("first event applied %d, want 2", applied)
	}
	if applied := AddLifeEvent(p, personality.EventCareerHighlight, 1, 1, "second"); applied != 0 {
		t.Fatalf("repeat event in the same week applied %d, want 0", applied)
	}
	if len(p.Evolution.LifeEvents) != 2 {
		t.Fatalf("both events should still be recorded, got %d", len(p.Evolution.LifeEvents))
	}
	if len(p.Evolution.History) != 2 {
		t.Fatalf("history entries: %d, want 2", len(p.Evolution.History))
	}
}

func TestTickEchoAfterCooldownExpiry(t *testing.T) {
	p := basePersonality()

	AddLifeEvent(p, personality.EventPersonalIssue, 1, 1, "family move")
	locationBefore := p.Weights.Location

	// One week later both attributes are still cooling.
	if applied := Tick(p, 25, 1, 2); applied != 0 {
		t.Fatalf("tick under cooldown applied %d, want 0", applied)
	}

	// Deltas of 0.10 and 0.05 both cool for 4 weeks; by week 5 the
	// event echo lands again.
	if applied := Tick(p, 25, 1, 5); applied != 2 {
		t.Fatalf("tick after expiry applied %d, want 2", applied)
	}
	if p.Weights.Location <= locationBefore {
		t.Fatalf("location priority did not rise on echo: %f", p.Weights.Location)
	}
}

func TestTickQuietWithoutEvents(t *testing.T) {
	p := basePersonality()
	if applied := Tick(p, 25, 2, 10); applied != 0 {
		t.Fatalf("quiet tick applied %d changes", applied)
	}
	if p.Evolution.EvolutionCount != 0 {
		t.Fatalf("quiet tick bumped evolution count to %d", p.Evolution.EvolutionCount)
	}
}

func TestMarketExperienceApplies(t *testing.T) {
	p := basePersonality()

	applied := AddMarketExperience(p, personality.ExperienceSuccessfulHoldout, 2, 14, "got the extension")
	if applied != 3 {
		t.Fatalf("applied %d changes, want 3", applied)
	}
	if p.HiddenSliders.Ego <= 0.5 {
		t.Fatalf("ego did not rise: %f", p.HiddenSliders.Ego)
	}
	if p.Behaviors.HoldoutThreshold <= 0.15 {
		t.Fatalf("holdout threshold did not rise: %f", p.Behaviors.HoldoutThreshold)
	}
	if len(p.Evolution.MarketExperiences) != 1 {
		t.Fatalf("experiences recorded: %d", len(p.Evolution.MarketExperiences))
	}
}

func TestMilestoneFiresOnce(t *testing.T) {
	p := basePersonality()

	applied := Tick(p, 30, 9, 1)
	if applied != 4 {
		t.Fatalf("age 30 milestone applied %d changes, want 4", applied)
	}
	if len(p.Evolution.Milestones) != 1 {
		t.Fatalf("milestones recorded: %d", len(p.Evolution.Milestones))
	}
	if !p.Evolution.MilestonesReached[30] {
		t.Fatal("milestone not marked reached")
	}

	// Well past every cooldown, the same milestone never re-fires.
	if applied := Tick(p, 31, 10, 40); applied != 0 {
		t.Fatalf("milestone re-fired: applied %d", applied)
	}
	if len(p.Evolution.Milestones) != 1 {
		t.Fatalf("duplicate milestone recorded: %d", len(p.Evolution.Milestones))
	}
}

func TestLateMilestonesBothFire(t *testing.T) {
	p := basePersonality()

	Tick(p, 36, 14, 1)
	if !p.Evolution.MilestonesReached[30] || !p.Evolution.MilestonesReached[35] {
		t.Fatalf("milestones reached: %v", p.Evolution.MilestonesReached)
	}
	if len(p.Evolution.Milestones) != 2 {
		t.Fatalf("milestones recorded: %d, want 2", len(p.Evolution.Milestones))
	}
	if p.Weights.Guarantee <= 0.2 {
		t.Fatalf("guarantee priority did not rise with age: %f", p.Weights.Guarantee)
	}
	if !p.WeightsSumOK() {
		t.Fatalf("weights sum broken after milestones: %f", p.Weights.Sum())
	}
}

func TestCooldownWeeksScaling(t *testing.T) {
	cases := []struct {
		delta float64
		want  int
	}{
		{0.05, 4},
		{-0.05, 4},
		{0.15, 6},
		{0.25, 8},
		{-0.25, 8},
		{0.35, 12},
	}
	for _, tc := range cases {
		if got := cooldownWeeks(tc.delta); got != tc.want {
			t.Errorf("cooldownWeeks(%.2f) = %d, want %d", tc.delta, got, tc.want)
		}
	}
}

func TestImpactTablesCoverEnums(t *testing.T) {
	lifeEvents := []personality.LifeEventType{
		personality.EventMajorInjury,
		personality.EventChampionshipWin,
		personality.EventTeamChange,
		personality.EventPersonalIssue,
		personality.EventCareerHighlight,
	}
	for _, et := range lifeEvents {
		if len(lifeEventImpact(et)) == 0 {
			t.Errorf("no impact defined for life event %s", et)
		}
		if lifeEventDuration(et) <= 0 {
			t.Errorf("no duration defined for life event %s", et)
		}
	}

	experiences := []personality.MarketExperienceType{
		personality.ExperienceSuccessfulHoldout,
		personality.ExperienceFailedHoldout,
		personality.ExperienceMarketOverpayment,
		personality.ExperienceTeamBetrayal,
		personality.ExperienceChampionshipRun,
		personality.ExperiencePlayoffExit,
		personality.ExperienceInjuryRecovery,
	}
	for _, xt := range experiences {
		if len(marketExperienceImpact(xt)) == 0 {
			t.Errorf("no impact defined for market experience %s", xt)
		}
		if marketExperienceDuration(xt) <= 0 {
			t.Errorf("no duration defined for market experience %s", xt)
		}
	}
}
