// Location fit — consumes the preference data the generator produces
// and scores a team against it. This is the collaborator side of the
// location-match contract: the personality engine only originates the
// preference data.
package negotiation

import (
	"github.com/jtalbot/frontoffice/internal/personality"
	"github.com/jtalbot/frontoffice/internal/roster"
)

// LocationMatch scores how well a team satisfies the player's location
// preferences, weighted by preference strength. Returns 0.5 (neutral)
// when there are no preferences to judge by.
func LocationMatch(prefs []personality.LocationPref, team *roster.Team) float64 {
	if team == nil || len(prefs) == 0 {
		return 0.5
	}

	totalWeight := 0.0
	matched := 0.0
	for _, pref := range prefs {
		totalWeight += pref.Weight
		matched += pref.Weight * prefSatisfaction(pref, team)
	}
	if totalWeight <= 0 {
		return 0.5
	}
	return matched / totalWeight
}

// prefSatisfaction scores one preference against the team: 1 for a
// match, 0 for a miss, 0.5 where the preference expresses nothing.
func prefSatisfaction(pref personality.LocationPref, team *roster.Team) float64 {
	switch pref.Type {
	case personality.LocNoPreference:
		return 0.5
	case personality.LocBigMarket, personality.LocSmallMarket:
		if team.MarketSize == pref.MarketSize {
			return 1
		}
		// Medium markets half-satisfy either extreme.
		if team.MarketSize == roster.MarketMedium {
			return 0.5
		}
		return 0
	case personality.LocWarmWeather, personality.LocColdWeather:
		if team.Climate == pref.Climate {
			return 1
		}
		// Domes neutralize weather preferences.
		if team.Climate == roster.ClimateDome {
			return 0.7
		}
		return 0
	case personality.LocHomeRegion:
		for _, st := range pref.States {
			if st == team.State {
				return 1
			}
		}
		return 0
	case personality.LocTaxFree:
		if pref.TaxFree && team.TaxRate == 0 {
			return 1
		}
		for _, st := range pref.States {
			if st == team.State {
				return 1
			}
		}
		return 0
	}
	return 0.5
}
