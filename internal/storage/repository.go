package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

var (
	// ErrNotConfigured indicates the storage pool was not initialised.
	ErrNotConfigured = errors.New("storage: pool not configured")
)

const (
	// Resolves every roster identifier in a single round trip. Each
	// candidate row carries the player's single highest-scoring week of
	// the season as its representative total; the in-memory join picks
	// id matches over name matches per entry.
	resolveCandidatesSQL = `SELECT
        p.player_id,
        p.name,
        p.position,
        COALESCE(p.team, 'FA') AS team,
        MAX(s.total_points) AS total_points
    FROM players p
    JOIN stats_custom_scored s ON s.player_id = p.player_id
    WHERE s.season = $1
      AND (p.player_id = ANY($2) OR p.name = ANY($2))
    GROUP BY p.player_id, p.name, p.position, p.team;`

	listRecentPointsSQL = `SELECT s.total_points
    FROM stats_custom_scored s
    JOIN players p ON p.player_id = s.player_id
    WHERE p.name = $1
      AND s.season = $2
    ORDER BY s.week DESC
    LIMIT $3;`

	listWaiverCandidatesSQL = `SELECT
        p.player_id,
        p.name,
        p.position,
        COALESCE(p.team, 'FA') AS team,
        MAX(s.total_points) AS total_points
    FROM players p
    JOIN stats_custom_scored s ON s.player_id = p.player_id
    WHERE s.season = $1
      AND NOT (p.player_id = ANY($2))
    GROUP BY p.player_id, p.name, p.position, p.team
    ORDER BY total_points DESC
    LIMIT $3;`

	listTopByPositionSQL = `SELECT
        p.player_id,
        p.name,
        p.position,
        COALESCE(p.team, 'FA') AS team,
        MAX(s.total_points) AS total_points
    FROM players p
    JOIN stats_custom_scored s ON s.player_id = p.player_id
    WHERE s.season = $1
      AND p.position = $2
    GROUP BY p.player_id, p.name, p.position, p.team
    ORDER BY total_points DESC
    LIMIT $3;`

	listPlayerWeeksSQL = `SELECT
        p.player_id,
        p.name,
        p.position,
        COALESCE(p.team, 'FA') AS team,
        s.week,
        s.total_points
    FROM stats_custom_scored s
    JOIN players p ON p.player_id = s.player_id
    WHERE s.season = $1
      AND ($2 = '' OR p.position = $2)
      AND s.week >= $3
      AND s.week < $4
    ORDER BY p.name, s.week;`

	listPlayersSQL = `SELECT
        p.player_id,
        p.name,
        p.position,
        COALESCE(p.team, 'FA') AS team
    FROM players p
    ORDER BY p.name;`

	listStatLinesSQL = `SELECT
        season,
        week,
        player_id,
        passing_yards,
        passing_tds,
        interceptions,
        rushing_yards,
        rushing_tds,
        two_pt_conversions,
        receptions,
        receiving_yards,
        receiving_tds,
        fumbles_lost
    FROM stats_raw
    WHERE season = $1;`

	deleteScoredSeasonSQL = `DELETE FROM stats_custom_scored WHERE season = $1;`

	insertScoredLineSQL = `INSERT INTO stats_custom_scored (
        season, week, player_id, total_points
    ) VALUES ($1, $2, $3, $4);`

	insertAlertLogSQL = `INSERT INTO alert_log (
        scan_ts,
        alert_type,
        player,
        detail,
        impact,
        projected_gain
    ) VALUES (
        $1,$2,$3,$4,$5,$6
    ) RETURNING id, scan_ts, alert_type, player, detail, impact, projected_gain, created_at;`

	listRecentAlertLogsSQL = `SELECT
        id,
        scan_ts,
        alert_type,
        player,
        detail,
        impact,
        projected_gain,
        created_at
    FROM alert_log
    ORDER BY created_at DESC
    LIMIT $1;`

	deleteAlertLogsBeforeSQL = `DELETE FROM alert_log WHERE created_at < $1;`

	tryAdvisoryLockSQL = `SELECT pg_try_advisory_lock($1);`
	advisoryUnlockSQL  = `SELECT pg_advisory_unlock($1);`
)

// RosterSource resolves roster identifiers against the Stats Store.
type RosterSource interface {
	ResolveCandidates(ctx context.Context, season int, entries []string) ([]PlayerRow, error)
}

// TrendSource serves the recent weekly totals the trend step consumes.
type TrendSource interface {
	ListRecentPoints(ctx context.Context, name string, season, limit int) ([]decimal.Decimal, error)
}

// WaiverSource lists the highest-scoring players outside a roster.
type WaiverSource interface {
	ListWaiverCandidates(ctx context.Context, season int, exclude []string, limit int) ([]PlayerRow, error)
}

// PositionSource lists the top players at a single position.
type PositionSource interface {
	ListTopByPosition(ctx context.Context, season int, position string, limit int) ([]PlayerRow, error)
}

// WeeklySource streams per-player weekly totals for a season window.
type WeeklySource interface {
	ListPlayerWeeks(ctx context.Context, season int, position string, fromWeek, toWeek int) ([]PlayerWeekRow, error)
}

// Directory lists known players for name search.
type Directory interface {
	ListPlayers(ctx context.Context) ([]PlayerInfo, error)
}

// ScoringStore exposes the raw stat lines and scored-table rewrite used
// by the recalc command.
type ScoringStore interface {
	ListStatLines(ctx context.Context, season int) ([]StatLine, error)
	ReplaceSeasonScores(ctx context.Context, season int, lines []ScoredLine) (int64, error)
}

// AlertLogStore defines operations for alert auditing.
type AlertLogStore interface {
	InsertAlertLog(ctx context.Context, log AlertLog) (AlertLog, error)
	ListRecentAlertLogs(ctx context.Context, limit int) ([]AlertLog, error)
	DeleteAlertLogsBefore(ctx context.Context, olderThan time.Time) error
}

// AdvisoryLocker exposes advisory lock helpers.
type AdvisoryLocker interface {
	TryAdvisoryLock(ctx context.Context, key int64) (unlock func(), acquired bool, err error)
}

// Store aggregates access to the Stats Store tables.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore wires a pgx pool into a Store.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Close releases the underlying pool resources.
func (s *Store) Close() {
	if s == nil || s.pool == nil {
		return
	}
	s.pool.Close()
}

func (s *Store) getPool() (*pgxpool.Pool, error) {
	if s == nil || s.pool == nil {
		return nil, ErrNotConfigured
	}
	return s.pool, nil
}

// ResolveCandidates fetches every player matching any of the supplied
// identifiers, by id or by exact name, in one batch query.
func (s *Store) ResolveCandidates(ctx context.Context, season int, entries []string) ([]PlayerRow, error) {
	pool, err := s.getPool()
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}

	rows, queryErr := pool.Query(ctx, resolveCandidatesSQL, season, entries)
	if queryErr != nil {
		return nil, fmt.Errorf("resolve candidates: %w", queryErr)
	}
	defer rows.Close()

	return scanPlayerRows(rows)
}

// ListRecentPoints returns up to limit weekly totals for a player,
// most recent week first.
func (s *Store) ListRecentPoints(ctx context.Context, name string, season, limit int) ([]decimal.Decimal, error) {
	pool, err := s.getPool()
	if err != nil {
		return nil, err
	}

	rows, queryErr := pool.Query(ctx, listRecentPointsSQL, name, season, limit)
	if queryErr != nil {
		return nil, fmt.Errorf("list recent points: %w", queryErr)
	}
	defer rows.Close()

	points := make([]decimal.Decimal, 0, limit)
	for rows.Next() {
		var value float64
		if scanErr := rows.Scan(&value); scanErr != nil {
			return nil, scanErr
		}
		points = append(points, decimal.NewFromFloat(value))
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return points, nil
}

// ListWaiverCandidates lists the top scorers whose ids are not in exclude.
func (s *Store) ListWaiverCandidates(ctx context.Context, season int, exclude []string, limit int) ([]PlayerRow, error) {
	pool, err := s.getPool()
	if err != nil {
		return nil, err
	}
	if exclude == nil {
		exclude = []string{}
	}

	rows, queryErr := pool.Query(ctx, listWaiverCandidatesSQL, season, exclude, limit)
	if queryErr != nil {
		return nil, fmt.Errorf("list waiver candidates: %w", queryErr)
	}
	defer rows.Close()

	return scanPlayerRows(rows)
}

// ListTopByPosition lists the top scorers at one position.
func (s *Store) ListTopByPosition(ctx context.Context, season int, position string, limit int) ([]PlayerRow, error) {
	pool, err := s.getPool()
	if err != nil {
		return nil, err
	}

	rows, queryErr := pool.Query(ctx, listTopByPositionSQL, season, position, limit)
	if queryErr != nil {
		return nil, fmt.Errorf("list top by position: %w", queryErr)
	}
	defer rows.Close()

	return scanPlayerRows(rows)
}

// ListPlayerWeeks streams weekly totals for a season, optionally
// filtered by position, over [fromWeek, toWeek).
func (s *Store) ListPlayerWeeks(ctx context.Context, season int, position string, fromWeek, toWeek int) ([]PlayerWeekRow, error) {
	pool, err := s.getPool()
	if err != nil {
		return nil, err
	}

	rows, queryErr := pool.Query(ctx, listPlayerWeeksSQL, season, position, fromWeek, toWeek)
	if queryErr != nil {
		return nil, fmt.Errorf("list player weeks: %w", queryErr)
	}
	defer rows.Close()

	result := make([]PlayerWeekRow, 0)
	for rows.Next() {
		var row PlayerWeekRow
		var points float64
		if scanErr := rows.Scan(&row.PlayerID, &row.Name, &row.Position, &row.Team, &row.Week, &points); scanErr != nil {
			return nil, scanErr
		}
		row.Points = decimal.NewFromFloat(points)
		result = append(result, row)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return result, nil
}

// ListPlayers lists every known player.
func (s *Store) ListPlayers(ctx context.Context) ([]PlayerInfo, error) {
	pool, err := s.getPool()
	if err != nil {
		return nil, err
	}

	rows, queryErr := pool.Query(ctx, listPlayersSQL)
	if queryErr != nil {
		return nil, fmt.Errorf("list players: %w", queryErr)
	}
	defer rows.Close()

	players := make([]PlayerInfo, 0)
	for rows.Next() {
		var info PlayerInfo
		if scanErr := rows.Scan(&info.PlayerID, &info.Name, &info.Position, &info.Team); scanErr != nil {
			return nil, scanErr
		}
		players = append(players, info)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return players, nil
}

// ListStatLines reads every raw box-score row for a season.
func (s *Store) ListStatLines(ctx context.Context, season int) ([]StatLine, error) {
	pool, err := s.getPool()
	if err != nil {
		return nil, err
	}

	rows, queryErr := pool.Query(ctx, listStatLinesSQL, season)
	if queryErr != nil {
		return nil, fmt.Errorf("list stat lines: %w", queryErr)
	}
	defer rows.Close()

	lines := make([]StatLine, 0)
	for rows.Next() {
		line, scanErr := scanStatLine(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		lines = append(lines, line)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return lines, nil
}

// ReplaceSeasonScores clears a season's scored table and writes the
// recomputed lines in one transaction, batched.
func (s *Store) ReplaceSeasonScores(ctx context.Context, season int, lines []ScoredLine) (int64, error) {
	pool, err := s.getPool()
	if err != nil {
		return 0, err
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin recalc transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, execErr := tx.Exec(ctx, deleteScoredSeasonSQL, season); execErr != nil {
		return 0, fmt.Errorf("clear scored season: %w", execErr)
	}

	batch := &pgx.Batch{}
	for _, line := range lines {
		batch.Queue(insertScoredLineSQL, line.Season, line.Week, line.PlayerID, line.Points.InexactFloat64())
	}

	results := tx.SendBatch(ctx, batch)
	for range lines {
		if _, execErr := results.Exec(); execErr != nil {
			results.Close()
			return 0, fmt.Errorf("insert scored line: %w", execErr)
		}
	}
	if closeErr := results.Close(); closeErr != nil {
		return 0, fmt.Errorf("close recalc batch: %w", closeErr)
	}

	if commitErr := tx.Commit(ctx); commitErr != nil {
		return 0, fmt.Errorf("commit recalc transaction: %w", commitErr)
	}
	return int64(len(lines)), nil
}

// InsertAlertLog persists an alert emission.
func (s *Store) InsertAlertLog(ctx context.Context, log AlertLog) (AlertLog, error) {
	pool, err := s.getPool()
	if err != nil {
		return AlertLog{}, err
	}

	var gain interface{}
	if log.ProjectedGain != nil {
		gain = log.ProjectedGain.InexactFloat64()
	}

	row := pool.QueryRow(ctx, insertAlertLogSQL,
		log.ScanTS,
		log.AlertType,
		log.Player,
		log.Detail,
		log.Impact,
		gain,
	)

	rec, scanErr := scanAlertLog(row)
	if scanErr != nil {
		return AlertLog{}, fmt.Errorf("insert alert log: %w", scanErr)
	}
	return rec, nil
}

// ListRecentAlertLogs lists most recent alert emissions.
func (s *Store) ListRecentAlertLogs(ctx context.Context, limit int) ([]AlertLog, error) {
	pool, err := s.getPool()
	if err != nil {
		return nil, err
	}

	rows, queryErr := pool.Query(ctx, listRecentAlertLogsSQL, limit)
	if queryErr != nil {
		return nil, fmt.Errorf("list recent alert logs: %w", queryErr)
	}
	defer rows.Close()

	logs := make([]AlertLog, 0, limit)
	for rows.Next() {
		rec, scanErr := scanAlertLog(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		logs = append(logs, rec)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return logs, nil
}

// DeleteAlertLogsBefore deletes historical alert emissions.
func (s *Store) DeleteAlertLogsBefore(ctx context.Context, olderThan time.Time) error {
	pool, err := s.getPool()
	if err != nil {
		return err
	}
	if _, execErr := pool.Exec(ctx, deleteAlertLogsBeforeSQL, olderThan); execErr != nil {
		return fmt.Errorf("delete alert logs before: %w", execErr)
	}
	return nil
}

// TryAdvisoryLock attempts to acquire a postgres advisory lock and returns a release func.
func (s *Store) TryAdvisoryLock(ctx context.Context, key int64) (func(), bool, error) {
	pool, err := s.getPool()
	if err != nil {
		return nil, false, err
	}

	conn, err := pool.Acquire(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("acquire connection: %w", err)
	}

	var acquired bool
	if err := conn.QueryRow(ctx, tryAdvisoryLockSQL, key).Scan(&acquired); err != nil {
		conn.Release()
		return nil, false, fmt.Errorf("try advisory lock: %w", err)
	}
	if !acquired {
		conn.Release()
		return nil, false, nil
	}

	unlock := func() {
		ctxUnlock, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if _, err := conn.Exec(ctxUnlock, advisoryUnlockSQL, key); err != nil {
			// unlock best effort; log omitted in storage package
		}
		conn.Release()
	}
	return unlock, true, nil
}

func scanPlayerRows(rows pgx.Rows) ([]PlayerRow, error) {
	result := make([]PlayerRow, 0)
	for rows.Next() {
		var row PlayerRow
		var points float64
		if err := rows.Scan(&row.PlayerID, &row.Name, &row.Position, &row.Team, &points); err != nil {
			return nil, err
		}
		row.TotalPoints = decimal.NewFromFloat(points)
		result = append(result, row)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return result, nil
}

func scanStatLine(rows pgx.Rows) (StatLine, error) {
	var line StatLine
	if err := rows.Scan(
		&line.Season,
		&line.Week,
		&line.PlayerID,
		&line.PassingYards,
		&line.PassingTDs,
		&line.Interceptions,
		&line.RushingYards,
		&line.RushingTDs,
		&line.TwoPtConversions,
		&line.Receptions,
		&line.ReceivingYards,
		&line.ReceivingTDs,
		&line.FumblesLost,
	); err != nil {
		return StatLine{}, err
	}
	return line, nil
}

func scanAlertLog(row pgx.Row) (AlertLog, error) {
	var rec AlertLog
	var gain sql.NullFloat64
	if err := row.Scan(
		&rec.ID,
		&rec.ScanTS,
		&rec.AlertType,
		&rec.Player,
		&rec.Detail,
		&rec.Impact,
		&gain,
		&rec.CreatedAt,
	); err != nil {
		return AlertLog{}, err
	}
	if gain.Valid {
		value := decimal.NewFromFloat(gain.Float64)
		rec.ProjectedGain = &value
	}
	return rec, nil
}
