// Package reference holds the static injury-status and
// strength-of-schedule lookup tables. Tables are loaded once at process
// start and treated as immutable afterwards, so concurrent reads need
// no synchronisation. They are passed into the projection pipeline
// explicitly rather than living in a package-level singleton.
package reference

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Injury status codes as they appear in league injury reports.
const (
	StatusQuestionable = "Q"
	StatusOut          = "O"
	StatusIR           = "IR"
	StatusPUP          = "PUP"
	StatusDoubtful     = "Doubtful"
	StatusProbable     = "Probable"
)

// SOS labels for the remaining-schedule difficulty of a (team, position).
const (
	SOSEasy     = "Easy"
	SOSMedium   = "Medium"
	SOSHard     = "Hard"
	SOSVeryHard = "Very Hard"
)

// Trend labels derived from recent vs. season-long scoring.
const (
	TrendHot     = "Hot"
	TrendCold    = "Cold"
	TrendNeutral = "Neutral"
)

const (
	sosEasyThreshold     = 10
	sosHardThreshold     = 22
	sosVeryHardThreshold = 27
)

var (
	sosEasyBonus   = decimal.NewFromFloat(0.05)
	sosHardPenalty = decimal.NewFromFloat(-0.05)

	injuryMultipliers = map[string]decimal.Decimal{
		StatusQuestionable: decimal.NewFromFloat(0.85),
		StatusOut:          decimal.Zero,
		StatusIR:           decimal.Zero,
		StatusPUP:          decimal.NewFromFloat(0.25),
		StatusDoubtful:     decimal.NewFromFloat(0.10),
		StatusProbable:     decimal.NewFromInt(1),
	}

	weekEasyFactor     = decimal.NewFromFloat(1.05)
	weekHardFactor     = decimal.NewFromFloat(0.95)
	weekVeryHardFactor = decimal.NewFromFloat(0.90)
)

// SOS is a label plus the fractional adjustment it applies to a
// rest-of-season projection.
type SOS struct {
	Label      string
	Adjustment decimal.Decimal
}

type sosKey struct {
	team     string
	position string
}

// Tables bundles the two read-only reference datasets.
type Tables struct {
	injuries map[string]string
	sos      map[sosKey]int
}

// NewTables builds reference tables from explicit maps. The SOS map is
// keyed "TEAM_POSITION" as in the published schedule-strength dataset.
func NewTables(injuries map[string]string, sos map[string]int) (*Tables, error) {
	t := &Tables{
		injuries: make(map[string]string, len(injuries)),
		sos:      make(map[sosKey]int, len(sos)),
	}
	for name, status := range injuries {
		if _, ok := injuryMultipliers[status]; !ok {
			return nil, fmt.Errorf("reference: unknown injury status %q for %q", status, name)
		}
		t.injuries[name] = status
	}
	for key, rank := range sos {
		team, position, err := splitSOSKey(key)
		if err != nil {
			return nil, err
		}
		t.sos[sosKey{team: team, position: position}] = rank
	}
	return t, nil
}

// InjuryStatus returns the reported status for a player name, if any.
func (t *Tables) InjuryStatus(name string) (string, bool) {
	status, ok := t.injuries[name]
	return status, ok
}

// InjuryMultiplier maps a status code to its projection multiplier.
// Unknown or absent statuses are a no-op.
func InjuryMultiplier(status string) decimal.Decimal {
	if m, ok := injuryMultipliers[status]; ok {
		return m
	}
	return decimal.NewFromInt(1)
}

// SOSRank returns the remaining-schedule rank for a team/position pair.
// Lower rank means a tougher remaining schedule.
func (t *Tables) SOSRank(team, position string) (int, bool) {
	rank, ok := t.sos[sosKey{team: team, position: position}]
	return rank, ok
}

// SOSScore classifies a team/position pair for rest-of-season
// projection purposes. A missing pair is neutral, never an error.
func (t *Tables) SOSScore(team, position string) SOS {
	rank, ok := t.SOSRank(team, position)
	if !ok {
		return SOS{Label: SOSMedium, Adjustment: decimal.Zero}
	}
	switch {
	case rank <= sosEasyThreshold:
		return SOS{Label: SOSEasy, Adjustment: sosEasyBonus}
	case rank >= sosHardThreshold:
		return SOS{Label: SOSHard, Adjustment: sosHardPenalty}
	default:
		return SOS{Label: SOSMedium, Adjustment: decimal.Zero}
	}
}

// WeekOutlook classifies a single week's matchup into the four-tier
// scale used by the trade and season-strategy analyzers. The dataset is
// not yet week-specific, so the week argument only fixes the call
// shape; every week currently sees the same remaining-schedule rank.
func (t *Tables) WeekOutlook(team, position string, week int) string {
	rank, ok := t.SOSRank(team, position)
	if !ok {
		return SOSMedium
	}
	switch {
	case rank <= sosEasyThreshold:
		return SOSEasy
	case rank < sosHardThreshold:
		return SOSMedium
	case rank < sosVeryHardThreshold:
		return SOSHard
	default:
		return SOSVeryHard
	}
}

// WeekFactor converts a weekly outlook label into its multiplicative
// projection factor.
func WeekFactor(label string) decimal.Decimal {
	switch label {
	case SOSEasy:
		return weekEasyFactor
	case SOSHard:
		return weekHardFactor
	case SOSVeryHard:
		return weekVeryHardFactor
	default:
		return decimal.NewFromInt(1)
	}
}

func splitSOSKey(key string) (team, position string, err error) {
	for i := len(key) - 1; i >= 0; i-- {
		if key[i] == '_' {
			if i == 0 || i == len(key)-1 {
				break
			}
			return key[:i], key[i+1:], nil
		}
	}
	return "", "", fmt.Errorf("reference: malformed SOS key %q, want TEAM_POSITION", key)
}
