package app

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"rosteriq/internal/alerting"
	"rosteriq/internal/analysis"
	"rosteriq/internal/config"
	"rosteriq/internal/logging"
	"rosteriq/internal/projection"
	"rosteriq/internal/reference"
	"rosteriq/internal/roster"
	"rosteriq/internal/scheduler"
	"rosteriq/internal/service"
	"rosteriq/internal/storage"
)

// App aggregates configuration and shared dependencies for the CLI commands.
type App struct {
	Config *config.Config
	Logger zerolog.Logger
}

// NewApp constructs a new application handle.
func NewApp(cfg *config.Config, logger zerolog.Logger) *App {
	return &App{Config: cfg, Logger: logging.Component(logger, "app")}
}

func (a *App) newNotifier() alerting.Notifier {
	if a.Config.Alerting.Telegram.Enabled {
		cfg := a.Config.Alerting.Telegram
		return alerting.NewTelegramNotifier(cfg.BotToken, cfg.ChatID, cfg.APIBase, 10*time.Second, a.Logger)
	}
	return nil
}

func (a *App) openStore(ctx context.Context) (*storage.Store, func(), error) {
	if a.Config.Database.DSN == "" {
		return nil, nil, nil
	}

	pool, err := storage.NewPool(ctx, a.Config.Database)
	if err != nil {
		return nil, nil, err
	}

	store := storage.NewStore(pool)
	closer := func() {
		store.Close()
	}
	return store, closer, nil
}

// pipeline bundles the store and projection chain most commands need.
type pipeline struct {
	store     *storage.Store
	tables    *reference.Tables
	enhancer  *projection.Enhancer
	projector *roster.Projector
	close     func()
}

func (a *App) newPipeline(ctx context.Context) (*pipeline, error) {
	store, closeStore, err := a.openStore(ctx)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, errors.New("database not configured; set database.dsn")
	}

	tables, err := reference.Load(a.Config.Reference.InjuryCSV, a.Config.Reference.SOSCSV)
	if err != nil {
		closeStore()
		return nil, err
	}

	enhancer := projection.NewEnhancer(tables, store, a.Logger)
	projector := roster.NewProjector(store, enhancer, a.Logger)

	return &pipeline{
		store:     store,
		tables:    tables,
		enhancer:  enhancer,
		projector: projector,
		close:     closeStore,
	}, nil
}

// Run executes the long-running watch service.
func (a *App) Run(ctx context.Context, opts WatchOptions) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	pipe, err := a.newPipeline(ctx)
	if err != nil {
		return err
	}
	defer pipe.close()

	sched := scheduler.New(scheduler.Options{
		Interval:     a.Config.Watch.Interval,
		AlignToStart: a.Config.Watch.AlignToBucket,
		StartupDelay: a.Config.Watch.StartupDelay,
	}, a.Logger)

	detector := analysis.NewAlertDetector(
		pipe.projector,
		pipe.enhancer,
		pipe.store,
		a.Config.Projection.StarterCount,
		a.Config.Projection.WaiverPoolSize,
		a.Logger,
	)

	target := service.ScanTarget{
		Week:     opts.Week,
		Roster:   opts.Roster,
		Starters: opts.Starters,
	}

	svc := service.New(a.Config, sched, detector, target, pipe.store, a.newNotifier(), a.Logger)

	a.Logger.Info().Int("week", opts.Week).Int("roster_size", len(opts.Roster)).Msg("starting watch service")
	err = svc.Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		a.Logger.Error().Err(err).Msg("watch service terminated with error")
		return err
	}

	a.Logger.Info().Msg("watch service stopped")
	return nil
}

// WatchOptions configure the watch service loop.
type WatchOptions struct {
	Week     int
	Roster   []string
	Starters []string
}

// ProjectOptions configure the project command.
type ProjectOptions struct {
	Roster []string
}

// SimulateOptions configure a roster simulation.
type SimulateOptions struct {
	Mode   string
	Roster []string
	Moves  []string
	Slots  map[string]int
}

// TradeOptions configure a trade evaluation.
type TradeOptions struct {
	Roster       []string
	Give         []string
	Receive      []string
	PlayoffWeeks []int
	PNGPath      string
	CSVPath      string
	MaxPoints    int
}

// StrategyOptions configure the playoff strategy report.
type StrategyOptions struct {
	Roster       []string
	Starters     []string
	PlayoffWeeks []int
}

// AlertOptions configure a one-shot alert scan.
type AlertOptions struct {
	Week     int
	Roster   []string
	Starters []string
	Notify   bool
	History  int
}

// WaiverOptions configure the waiver ranking command.
type WaiverOptions struct {
	Position    string
	Limit       int
	RosterNames []string
}

// RecommendOptions configure start/sit recommendations.
type RecommendOptions struct {
	Week        int
	Position    string
	Limit       int
	RosterNames []string
}

// PlayersOptions configure the player search command.
type PlayersOptions struct {
	Query string
	Limit int
}

// RecalcOptions configure the scoring recalculation job.
type RecalcOptions struct {
	Season int
	DryRun bool
}
