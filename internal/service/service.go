package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"rosteriq/internal/alerting"
	"rosteriq/internal/analysis"
	"rosteriq/internal/config"
	"rosteriq/internal/logging"
	"rosteriq/internal/scheduler"
	"rosteriq/internal/storage"
)

// ScanTarget names the roster the watch loop re-evaluates.
type ScanTarget struct {
	Week     int
	Roster   []string
	Starters []string
}

// Service orchestrates periodic alert scans, persistence, and delivery.
type Service struct {
	scheduler  *scheduler.Scheduler
	detector   *analysis.AlertDetector
	alertStore storage.AlertLogStore
	notifier   alerting.Notifier
	logger     zerolog.Logger

	target          ScanTarget
	season          int
	includeInjuries bool
	alertsOn        bool
	locker          storage.AdvisoryLocker
	lockKey         int64
}

// New constructs the watch service.
func New(cfg *config.Config, sched *scheduler.Scheduler, detector *analysis.AlertDetector, target ScanTarget, alertStore storage.AlertLogStore, notifier alerting.Notifier, logger zerolog.Logger) *Service {
	var locker storage.AdvisoryLocker
	if l, ok := alertStore.(storage.AdvisoryLocker); ok {
		locker = l
	}

	return &Service{
		scheduler:       sched,
		detector:        detector,
		alertStore:      alertStore,
		notifier:        notifier,
		logger:          logging.Component(logger, "service"),
		target:          target,
		season:          cfg.Projection.Season,
		includeInjuries: cfg.Projection.IncludeInjuries,
		alertsOn:        cfg.Alerting.Enabled,
		locker:          locker,
		lockKey:         cfg.Watch.AdvisoryLockKey,
	}
}

// Run begins the aligned scan loop.
func (s *Service) Run(ctx context.Context) error {
	if s.scheduler == nil {
		return fmt.Errorf("scheduler not configured")
	}
	return s.scheduler.Run(ctx, s.ProcessScan)
}

// ProcessScan executes a single alert scan for one time bucket.
func (s *Service) ProcessScan(ctx context.Context, bucket time.Time) error {
	unlock, proceed, err := s.acquireLock(ctx)
	if err != nil {
		return err
	}
	if !proceed {
		s.logger.Debug().Time("bucket", bucket).Msg("skip scan because advisory lock held elsewhere")
		return nil
	}
	if unlock != nil {
		defer unlock()
	}

	return s.executeScan(ctx, bucket)
}

func (s *Service) executeScan(ctx context.Context, bucket time.Time) error {
	alerts, err := s.detector.Detect(ctx, s.target.Week, s.target.Roster, s.target.Starters, s.season, s.includeInjuries)
	if err != nil {
		return fmt.Errorf("detect alerts: %w", err)
	}

	s.logger.Info().Time("bucket", bucket).
		Int("alerts", len(alerts)).
		Int("week", s.target.Week).
		Msg("alert scan complete")

	if s.alertStore != nil {
		for _, alert := range alerts {
			record := storage.AlertLog{
				ScanTS:        bucket,
				AlertType:     alert.Type,
				Player:        alert.Player,
				Detail:        alert.Detail,
				Impact:        alert.Impact,
				ProjectedGain: alert.ProjectedGain,
			}
			if _, err := s.alertStore.InsertAlertLog(ctx, record); err != nil {
				s.logger.Error().Err(err).Time("bucket", bucket).Str("player", alert.Player).Msg("failed to persist alert record")
			}
		}
	}

	if s.alertsOn && s.notifier != nil && len(alerts) > 0 {
		note := alerting.Notification{
			ScanTS: bucket,
			Week:   s.target.Week,
			Alerts: alerts,
		}
		if err := s.notifier.Notify(ctx, note); err != nil {
			s.logger.Error().Err(err).Time("bucket", bucket).Msg("failed to dispatch alerts")
		}
	}

	return nil
}

func (s *Service) acquireLock(ctx context.Context) (func(), bool, error) {
	if s.lockKey == 0 || s.locker == nil {
		return nil, true, nil
	}
	unlock, acquired, err := s.locker.TryAdvisoryLock(ctx, s.lockKey)
	if err != nil {
		return nil, false, fmt.Errorf("acquire advisory lock: %w", err)
	}
	if !acquired {
		return nil, false, nil
	}
	return unlock, true, nil
}
