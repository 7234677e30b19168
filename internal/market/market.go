// Package market produces live market snapshots: positional percentile
// bands shifted by smooth week-over-week noise, so supply pressure and
// trend drift continuously instead of jumping at random.
package market

import (
	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/jtalbot/frontoffice/internal/personality"
	"github.com/jtalbot/frontoffice/internal/roster"
)

// Noise sampling constants. Low frequency keeps a position's market
// coherent across a season; the trend lookback smooths week-to-week
// jitter out of the direction signal.
const (
	supplyFrequency = 0.06
	trendFrequency  = 0.03
	trendLookback   = 4 // weeks
	trendDeadband   = 0.02
)

// Model is the evolving market for all position groups. It implements
// personality.MarketSource.
type Model struct {
	supplyNoise opensimplex.Noise
	trendNoise  opensimplex.Noise
	week        int // absolute week counter
}

// New creates a market model seeded for reproducible runs.
func New(seed int64) *Model {
	return &Model{
		supplyNoise: opensimplex.NewNormalized(seed),
		trendNoise:  opensimplex.NewNormalized(seed + 1),
	}
}

// Advance moves the market clock forward.
func (m *Model) Advance(weeks int) {
	m.week += weeks
}

// Week returns the current market week.
func (m *Model) Week() int {
	return m.week
}

// Snapshot builds the market context for a position and rating at the
// model's current week: static bands scaled by the trend level, supply
// pressure drifted by noise, and the trend direction taken from the
// noise slope over the lookback window.
func (m *Model) Snapshot(pos roster.Position, overall, year int) personality.MarketContext {
	mc := personality.StaticMarketContext(pos, overall, year)

	lane := float64(pos) * 10 // separate noise lane per position

	supply := m.supplyNoise.Eval2(float64(m.week)*supplyFrequency, lane)
	mc.SupplyPressure = clamp(mc.SupplyPressure+(supply-0.5)*0.5, 0, 1)

	level := m.trendNoise.Eval2(float64(m.week)*trendFrequency, lane)
	prior := m.trendNoise.Eval2(float64(m.week-trendLookback)*trendFrequency, lane)

	switch {
	case level-prior > trendDeadband:
		mc.Trend = personality.TrendRising
	case prior-level > trendDeadband:
		mc.Trend = personality.TrendFalling
	default:
		mc.Trend = personality.TrendStable
	}

	// The trend level also moves the money: a hot market lifts the
	// whole band, a cold one compresses it.
	scale := 1 + (level-0.5)*0.2
	mc.APYPercentiles.P25 *= scale
	mc.APYPercentiles.P50 *= scale
	mc.APYPercentiles.P75 *= scale
	mc.APYPercentiles.P90 *= scale

	return mc
}

// Refresh replaces a personality's embedded market snapshot with the
// current one for its position. Rating is approximated from the
// existing P50 so callers don't need the player record.
func (m *Model) Refresh(p *personality.Personality, overall, year int) {
	p.Market = m.Snapshot(p.Market.Position, overall, year)
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
