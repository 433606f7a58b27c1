package biz

import (
	"context"
	"time"

	"github.com/zhenzou/executors"
	"go.uber.org/fx"

	"github.com/SyedFrazAli/geoscope/internal/log"
	"github.com/SyedFrazAli/geoscope/internal/objects"
	"github.com/SyedFrazAli/geoscope/internal/server/db"
)

type UsageConfig struct {
	// Retention bounds how long usage entries are kept before the hourly
	// sweep removes them.
	Retention time.Duration `conf:"retention" yaml:"retention" json:"retention"`
}

type UsageServiceParams struct {
	fx.In

	Config   UsageConfig
	Usage    *db.UsageStore
	Executor executors.ScheduledExecutor
}

func NewUsageService(params UsageServiceParams) *UsageService {
	retention := params.Config.Retention
	if retention <= 0 {
		retention = 7 * 24 * time.Hour
	}

	svc := &UsageService{
		usage:     params.Usage,
		retention: retention,
	}

	_, _ = params.Executor.ScheduleFuncAtCronRate(
		svc.purgePeriodic,
		executors.CRONRule{Expr: "23 * * * *"},
	)

	return svc
}

// UsageService appends API usage entries and aggregates them for the stats
// endpoint. The log is append-only from the handlers' perspective.
type UsageService struct {
	usage     *db.UsageStore
	retention time.Duration
}

// Log records one endpoint hit. Failures are logged and swallowed; usage
// accounting never fails a request.
func (s *UsageService) Log(ctx context.Context, endpoint string) {
	if err := s.usage.Insert(ctx, endpoint, time.Now().UTC()); err != nil {
		log.Warn(ctx, "failed to record api usage",
			log.String("endpoint", endpoint),
			log.Cause(err),
		)
	}
}

// Stats returns the last hour of usage bucketed per minute, with HH:MM
// labels in chronological order.
func (s *UsageService) Stats(ctx context.Context) (*objects.UsageStats, error) {
	since := time.Now().UTC().Add(-time.Hour)

	timestamps, err := s.usage.TimestampsSince(ctx, since)
	if err != nil {
		return nil, err
	}

	stats := &objects.UsageStats{
		Labels: []string{},
		Data:   []int{},
	}

	for _, t := range timestamps {
		label := t.UTC().Format("15:04")

		if n := len(stats.Labels); n > 0 && stats.Labels[n-1] == label {
			stats.Data[n-1]++
		} else {
			stats.Labels = append(stats.Labels, label)
			stats.Data = append(stats.Data, 1)
		}

		stats.TotalCallsLastHour++
	}

	return stats, nil
}

func (s *UsageService) purgePeriodic(ctx context.Context) {
	purged, err := s.usage.Purge(ctx, time.Now().UTC().Add(-s.retention))
	if err != nil {
		log.Error(ctx, "failed to purge usage entries", log.Cause(err))
		return
	}

	if purged > 0 {
		log.Info(ctx, "purged usage entries", log.Int64("purged", purged))
	}
}
