// Simulation ties together the roster, the market, the negotiation
// engine, and personality evolution, and runs them each week.
package engine

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/jtalbot/frontoffice/internal/evolution"
	"github.com/jtalbot/frontoffice/internal/market"
	"github.com/jtalbot/frontoffice/internal/negotiation"
	"github.com/jtalbot/frontoffice/internal/personality"
	"github.com/jtalbot/frontoffice/internal/roster"
)

// Simulation holds the complete league state and wires systems together.
type Simulation struct {
	Players       []*roster.Player
	PlayerIndex   map[string]*roster.Player
	Personalities map[string]*personality.Personality
	Teams         []*roster.Team
	Market        *market.Model
	Evaluator     *negotiation.Evaluator
	Events        []Event // Recent events (trimmed weekly)
	LastTick      uint64  // Most recent tick processed

	// OnDecision fires after every evaluated offer; wired to the
	// decision log by the caller. Nil is fine.
	OnDecision func(playerID string, year, week int, team string,
		offer negotiation.ContractOffer, ev negotiation.Evaluation)

	// Statistics tracked per week.
	Stats SimStats

	rng           *rand.Rand
	offersPerWeek int
}

// CurrentTick returns the most recently processed tick number.
func (s *Simulation) CurrentTick() uint64 {
	return s.LastTick
}

// Event is a notable occurrence in the league.
type Event struct {
	Tick        uint64 `json:"tick"`
	Description string `json:"description"`
	Category    string `json:"category"` // "negotiation", "evolution", "milestone", etc.
}

// SimStats tracks aggregate league statistics.
type SimStats struct {
	TotalPlayers     int            `json:"total_players"`
	Accepts          int            `json:"accepts"`
	Counters         int            `json:"counters"`
	Rejects          int            `json:"rejects"`
	Holdouts         int            `json:"holdouts"`
	Shortlists       int            `json:"shortlists"`
	EvolutionChanges int            `json:"evolution_changes"`
	AvgScore         float64        `json:"avg_score"`
	Archetypes       map[string]int `json:"archetypes"`

	scoreSum   float64
	scoreCount int
}

// NewSimulation creates a Simulation from generated components.
func NewSimulation(players []*roster.Player, personalities map[string]*personality.Personality,
	mkt *market.Model, eval *negotiation.Evaluator, seed int64) *Simulation {

	index := make(map[string]*roster.Player, len(players))
	for _, pl := range players {
		index[pl.ID.String()] = pl
	}

	teams := make([]*roster.Team, len(roster.Teams))
	for i := range roster.Teams {
		teams[i] = &roster.Teams[i]
	}

	sim := &Simulation{
		Players:       players,
		PlayerIndex:   index,
		Personalities: personalities,
		Teams:         teams,
		Market:        mkt,
		Evaluator:     eval,
		rng:           rand.New(rand.NewSource(seed + 700)),
		offersPerWeek: 3,
	}
	sim.updateStats()
	return sim
}

// StageFor maps a week of the year to its calendar stage.
func StageFor(week int) negotiation.SeasonStage {
	switch {
	case week <= 12:
		return negotiation.StageOffseason
	case week <= 16:
		return negotiation.StageTrainingCamp
	case week <= 28:
		return negotiation.StageRegularSeason
	case week <= 32:
		return negotiation.StageTradeDeadline
	case week <= 36:
		return negotiation.StagePlayoffs
	default:
		return negotiation.StageOffseason
	}
}

// TickWeek runs every tick: market drift, evolution echoes, random
// career events, and a round of contract offers.
func (s *Simulation) TickWeek(tick uint64) {
	s.LastTick = tick
	year, week := YearWeek(tick)

	s.Market.Advance(1)

	// Refresh embedded market snapshots monthly; weekly churn would
	// drown the trend signal in noise.
	if week%4 == 0 {
		for _, pl := range s.Players {
			if p, ok := s.Personalities[pl.ID.String()]; ok {
				s.Market.Refresh(p, pl.Overall, year)
			}
		}
	}

	for _, pl := range s.Players {
		p, ok := s.Personalities[pl.ID.String()]
		if !ok {
			continue
		}
		s.rollCareerEvents(pl, p, year, week, tick)
		applied := evolution.Tick(p, pl.Age, year, week)
		s.Stats.EvolutionChanges += applied
	}

	s.runOfferRound(tick, year, week)
	s.updateStats()

	slog.Info("weekly report",
		"tick", tick,
		"time", SimTime(tick),
		"players", s.Stats.TotalPlayers,
		"accepts", s.Stats.Accepts,
		"holdouts", s.Stats.Holdouts,
		"evolution_changes", s.Stats.EvolutionChanges,
		"avg_score", fmt.Sprintf("%.3f", s.Stats.AvgScore),
	)

	// Trim old events to prevent unbounded growth (keep last 1000).
	if len(s.Events) > 1000 {
		s.Events = s.Events[len(s.Events)-1000:]
	}
}

// TickSeason runs every 52 ticks: birthdays, experience, and the
// season's playoff outcomes.
func (s *Simulation) TickSeason(tick uint64) {
	year, _ := YearWeek(tick)

	for _, pl := range s.Players {
		pl.Age++
		pl.Experience++

		p, ok := s.Personalities[pl.ID.String()]
		if !ok {
			continue
		}

		// One in twelve rosters wins it all; the rest of the playoff
		// field exits hurt.
		roll := s.rng.Float64()
		switch {
		case roll < 1.0/12:
			evolution.AddMarketExperience(p, personality.ExperienceChampionshipRun, year, WeeksPerYear,
				"championship run")
			s.Events = append(s.Events, Event{Tick: tick, Description: pl.Name + " won a championship", Category: "milestone"})
		case roll < 0.40:
			evolution.AddMarketExperience(p, personality.ExperiencePlayoffExit, year, WeeksPerYear,
				"playoff exit")
		}
	}

	slog.Info("season rollover",
		"tick", tick,
		"time", SimTime(tick),
		"players", len(s.Players),
	)
}

// rollCareerEvents fires low-probability life events and market
// experiences for one player-week.
func (s *Simulation) rollCareerEvents(pl *roster.Player, p *personality.Personality,
	year, week int, tick uint64) {

	// Injuries cluster in-season.
	injuryChance := 0.001
	if stage := StageFor(week); stage >= negotiation.StageRegularSeason {
		injuryChance = 0.004
	}

	switch roll := s.rng.Float64(); {
	case roll < injuryChance:
		evolution.AddLifeEvent(p, personality.EventMajorInjury, year, week, "went down in week "+fmt.Sprint(week))
		s.Events = append(s.Events, Event{Tick: tick, Description: pl.Name + " suffered a major injury", Category: "evolution"})
	case roll < injuryChance+0.002:
		evolution.AddLifeEvent(p, personality.EventCareerHighlight, year, week, "signature performance")
		s.Events = append(s.Events, Event{Tick: tick, Description: pl.Name + " had a career game", Category: "evolution"})
	case roll < injuryChance+0.003:
		evolution.AddLifeEvent(p, personality.EventPersonalIssue, year, week, "off-field matter")
	case roll < injuryChance+0.004:
		evolution.AddMarketExperience(p, personality.ExperienceMarketOverpayment, year, week,
			"a lesser player at the position reset the market")
		s.Events = append(s.Events, Event{Tick: tick, Description: pl.Name + " watched the market reset at " + pl.Position.String(), Category: "evolution"})
	}
}

// runOfferRound picks a handful of players, builds a market-anchored
// offer from a random team for each, and evaluates it.
func (s *Simulation) runOfferRound(tick uint64, year, week int) {
	if len(s.Players) == 0 || len(s.Teams) == 0 {
		return
	}
	stage := StageFor(week)

	for i := 0; i < s.offersPerWeek; i++ {
		pl := s.Players[s.rng.Intn(len(s.Players))]
		p, ok := s.Personalities[pl.ID.String()]
		if !ok {
			continue
		}
		team := s.Teams[s.rng.Intn(len(s.Teams))]

		mc := s.Market.Snapshot(pl.Position, pl.Overall, year)
		offer := s.buildOffer(p, team, &mc)

		ev := s.Evaluator.Evaluate(p, &negotiation.EvaluationContext{
			Offer:       offer,
			Team:        team,
			Market:      &mc,
			CurrentWeek: week,
			Stage:       stage,
		})

		s.countDecision(ev)
		s.Events = append(s.Events, Event{
			Tick:        tick,
			Description: fmt.Sprintf("%s: %s from %s at $%.1fM/yr (score %.2f)", pl.Name, ev.Decision, team.Name, offer.APY, ev.Score),
			Category:    "negotiation",
		})
		if s.OnDecision != nil {
			s.OnDecision(pl.ID.String(), year, week, team.Name, offer, ev)
		}

		// Outcomes feed back into the personality.
		switch ev.Decision {
		case negotiation.DecisionHoldout:
			if s.rng.Float64() < 0.5 {
				evolution.AddMarketExperience(p, personality.ExperienceSuccessfulHoldout, year, week, "holdout paid off")
			} else {
				evolution.AddMarketExperience(p, personality.ExperienceFailedHoldout, year, week, "holdout collapsed")
			}
		case negotiation.DecisionAccept:
			if stage >= negotiation.StageTradeDeadline {
				evolution.AddLifeEvent(p, personality.EventTeamChange, year, week, "signed with "+team.Name)
			}
		}
	}
}

// buildOffer anchors a generated offer to the market band with team
// quality and location fit resolved up front.
func (s *Simulation) buildOffer(p *personality.Personality, team *roster.Team,
	mc *personality.MarketContext) negotiation.ContractOffer {

	years := 1 + s.rng.Intn(5)
	// Most offers land between the 25th and 90th percentile.
	apy := mc.APYPercentiles.P25 +
		s.rng.Float64()*(mc.APYPercentiles.P90-mc.APYPercentiles.P25)
	if apy < 0.5 {
		apy = 0.5
	}
	total := apy * float64(years)
	gpct := mc.GuaranteePercentiles.P25 +
		s.rng.Float64()*(mc.GuaranteePercentiles.P90-mc.GuaranteePercentiles.P25)

	return negotiation.ContractOffer{
		Years:                 years,
		TotalValue:            total,
		APY:                   apy,
		GuaranteedAmount:      total * gpct,
		SigningBonus:          total * 0.1 * s.rng.Float64(),
		PerformanceIncentives: total * 0.05 * s.rng.Float64(),
		TeamQuality:           team.Quality,
		LocationMatch:         negotiation.LocationMatch(p.LocationPrefs, team),
	}
}

func (s *Simulation) countDecision(ev negotiation.Evaluation) {
	switch ev.Decision {
	case negotiation.DecisionAccept:
		s.Stats.Accepts++
	case negotiation.DecisionCounter:
		s.Stats.Counters++
	case negotiation.DecisionReject:
		s.Stats.Rejects++
	case negotiation.DecisionHoldout:
		s.Stats.Holdouts++
	case negotiation.DecisionShortlist:
		s.Stats.Shortlists++
	}
	s.Stats.scoreSum += ev.Score
	s.Stats.scoreCount++
}

func (s *Simulation) updateStats() {
	s.Stats.TotalPlayers = len(s.Players)

	archetypes := make(map[string]int, 8)
	for _, p := range s.Personalities {
		archetypes[p.Archetype]++
	}
	s.Stats.Archetypes = archetypes

	if s.Stats.scoreCount > 0 {
		s.Stats.AvgScore = s.Stats.scoreSum / float64(s.Stats.scoreCount)
	}
}
