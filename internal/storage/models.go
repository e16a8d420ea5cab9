package storage

import (
	"time"

	"github.com/shopspring/decimal"
)

// PlayerRow is the validated record shape every Stats Store query maps
// into at the boundary: one player plus a representative scoring total.
type PlayerRow struct {
	PlayerID    string
	Name        string
	Position    string
	Team        string
	TotalPoints decimal.Decimal
}

// PlayerWeekRow is a single week's scored total for one player.
type PlayerWeekRow struct {
	PlayerID string
	Name     string
	Position string
	Team     string
	Week     int
	Points   decimal.Decimal
}

// PlayerInfo identifies a player without any scoring data attached.
type PlayerInfo struct {
	PlayerID string
	Name     string
	Position string
	Team     string
}

// StatLine is one raw box-score row, owned by the ETL feeder. The
// recalc command reads these and rewrites the scored table.
type StatLine struct {
	Season           int
	Week             int
	PlayerID         string
	PassingYards     float64
	PassingTDs       float64
	Interceptions    float64
	RushingYards     float64
	RushingTDs       float64
	TwoPtConversions float64
	Receptions       float64
	ReceivingYards   float64
	ReceivingTDs     float64
	FumblesLost      float64
}

// ScoredLine is a recomputed fantasy-point total for one player-week.
type ScoredLine struct {
	Season   int
	Week     int
	PlayerID string
	Points   decimal.Decimal
}

// AlertLog captures an emitted alert for auditing/history.
type AlertLog struct {
	ID            int64
	ScanTS        time.Time
	AlertType     string
	Player        string
	Detail        string
	Impact        string
	ProjectedGain *decimal.Decimal
	CreatedAt     time.Time
}
