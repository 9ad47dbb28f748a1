// Package api holds the HTTP handlers for statistics and cycle info.
package api

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=api_test

import (
	"context"

	"github.com/2beens/cragjournal/internal/journal"
	"github.com/2beens/cragjournal/internal/stats"
)

type statisticsService interface {
	Statistics(ctx context.Context, tf stats.Timeframe, custom *stats.TimeRange) ([]byte, error)
	ClearCache()
}

type profileProvider interface {
	GetProfile(ctx context.Context) (*journal.Profile, error)
}
