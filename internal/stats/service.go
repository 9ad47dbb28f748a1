package stats

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/2beens/cragjournal/internal/journal"
	"github.com/2beens/cragjournal/internal/telemetry/metrics"
	"github.com/2beens/cragjournal/internal/telemetry/tracing"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const (
	megabyte = 1024 * 1024

	DefaultCacheSize       = 10 * megabyte
	DefaultCacheTTLSeconds = 60
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=stats_test

type snapshotProvider interface {
	Snapshot(ctx context.Context) (*journal.Snapshot, error)
}

// Service serves the statistics dashboard data, reading the history through the
// snapshot provider and caching the encoded result for a short while.
type Service struct {
	provider        snapshotProvider
	aggregator      *Aggregator
	cache           *freecache.Cache
	cacheTTLSeconds int
	metricsManager  *metrics.Manager
}

func NewService(
	provider snapshotProvider,
	aggregator *Aggregator,
	cacheSize int,
	cacheTTLSeconds int,
	metricsManager *metrics.Manager,
) *Service {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	if cacheTTLSeconds <= 0 {
		cacheTTLSeconds = DefaultCacheTTLSeconds
	}
	return &Service{
		provider:        provider,
		aggregator:      aggregator,
		cache:           freecache.NewCache(cacheSize),
		cacheTTLSeconds: cacheTTLSeconds,
		metricsManager:  metricsManager,
	}
}

// Statistics returns the JSON encoded Data for the given timeframe.
func (s *Service) Statistics(ctx context.Context, tf Timeframe, custom *TimeRange) (_ []byte, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "statsService.statistics")
	span.SetAttributes(attribute.String("timeframe", string(tf)))
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	// the current day is part of the key, every window is anchored at today
	cacheKey := []byte(s.cacheKey(tf, custom))
	if cached, err := s.cache.Get(cacheKey); err == nil {
		log.Tracef("statistics for %s found in cache", tf)
		s.metricsManager.CounterStatsCacheHits.Inc()
		return cached, nil
	}

	snapshot, err := s.provider.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("get journal snapshot: %w", err)
	}

	calcStart := time.Now()
	data := s.aggregator.Calculate(Input{
		Workouts:      snapshot.Workouts,
		Tags:          snapshot.Tags,
		Timeframe:     tf,
		CustomRange:   custom,
		Events:        snapshot.Events,
		CycleSettings: snapshot.Profile.Cycle,
	})
	s.metricsManager.HistogramStatsCalculation.Observe(time.Since(calcStart).Seconds())

	dataJson, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("marshal statistics: %w", err)
	}

	if err := s.cache.Set(cacheKey, dataJson, s.cacheTTLSeconds); err != nil {
		log.Errorf("failed to cache statistics for %s: %s", tf, err)
	}

	return dataJson, nil
}

// ClearCache drops all cached statistics, used after the journal changes.
func (s *Service) ClearCache() {
	s.cache.Clear()
}

func (s *Service) cacheKey(tf Timeframe, custom *TimeRange) string {
	today := s.aggregator.Now().Format(time.DateOnly)
	if tf != TimeframeCustom || custom == nil {
		return fmt.Sprintf("stats::%s::%s", tf, today)
	}
	return fmt.Sprintf(
		"stats::%s::%s::%s::%s",
		tf,
		custom.Start.Format(time.DateOnly),
		custom.End.Format(time.DateOnly),
		today,
	)
}
