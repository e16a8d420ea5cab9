// Package scoring converts raw box-score counts into fantasy-point
// totals using a configurable linear weight vector.
package scoring

import (
	"github.com/shopspring/decimal"

	"rosteriq/internal/config"
	"rosteriq/internal/storage"
)

// Weights is the scoring weight vector applied per stat category.
type Weights struct {
	PassingYards     decimal.Decimal
	PassingTDs       decimal.Decimal
	Interceptions    decimal.Decimal
	RushingYards     decimal.Decimal
	RushingTDs       decimal.Decimal
	TwoPtConversions decimal.Decimal
	Receptions       decimal.Decimal
	ReceivingYards   decimal.Decimal
	ReceivingTDs     decimal.Decimal
	FumblesLost      decimal.Decimal
}

// FromConfig materialises the weight vector from runtime settings.
func FromConfig(cfg config.ScoringConfig) Weights {
	return Weights{
		PassingYards:     decimal.NewFromFloat(cfg.PassingYards),
		PassingTDs:       decimal.NewFromFloat(cfg.PassingTDs),
		Interceptions:    decimal.NewFromFloat(cfg.Interceptions),
		RushingYards:     decimal.NewFromFloat(cfg.RushingYards),
		RushingTDs:       decimal.NewFromFloat(cfg.RushingTDs),
		TwoPtConversions: decimal.NewFromFloat(cfg.TwoPtConversions),
		Receptions:       decimal.NewFromFloat(cfg.Receptions),
		ReceivingYards:   decimal.NewFromFloat(cfg.ReceivingYards),
		ReceivingTDs:     decimal.NewFromFloat(cfg.ReceivingTDs),
		FumblesLost:      decimal.NewFromFloat(cfg.FumblesLost),
	}
}

// Score computes the point total for one raw stat line.
func (w Weights) Score(line storage.StatLine) decimal.Decimal {
	total := decimal.Zero
	total = total.Add(decimal.NewFromFloat(line.PassingYards).Mul(w.PassingYards))
	total = total.Add(decimal.NewFromFloat(line.PassingTDs).Mul(w.PassingTDs))
	total = total.Add(decimal.NewFromFloat(line.Interceptions).Mul(w.Interceptions))
	total = total.Add(decimal.NewFromFloat(line.RushingYards).Mul(w.RushingYards))
	total = total.Add(decimal.NewFromFloat(line.RushingTDs).Mul(w.RushingTDs))
	total = total.Add(decimal.NewFromFloat(line.TwoPtConversions).Mul(w.TwoPtConversions))
	total = total.Add(decimal.NewFromFloat(line.Receptions).Mul(w.Receptions))
	total = total.Add(decimal.NewFromFloat(line.ReceivingYards).Mul(w.ReceivingYards))
	total = total.Add(decimal.NewFromFloat(line.ReceivingTDs).Mul(w.ReceivingTDs))
	total = total.Add(decimal.NewFromFloat(line.FumblesLost).Mul(w.FumblesLost))
	return total
}

// ScoreAll maps raw stat lines to scored lines.
func (w Weights) ScoreAll(lines []storage.StatLine) []storage.ScoredLine {
	scored := make([]storage.ScoredLine, 0, len(lines))
	for _, line := range lines {
		scored = append(scored, storage.ScoredLine{
			Season:   line.Season,
			Week:     line.Week,
			PlayerID: line.PlayerID,
			Points:   w.Score(line),
		})
	}
	return scored
}
