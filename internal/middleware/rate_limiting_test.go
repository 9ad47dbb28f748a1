package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/2beens/cragjournal/internal/middleware"
	"github.com/2beens/cragjournal/internal/telemetry/metrics"

	"github.com/go-redis/redis_rate/v9"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestRateLimit(t *testing.T) {
	testCases := []struct {
		name           string
		result         *redis_rate.Result
		err            error
		expectedStatus int
		expectNext     bool
		expectLimited  float64
	}{
		{
			name:           "Allowed",
			result:         &redis_rate.Result{Allowed: 1, Remaining: 10},
			expectedStatus: http.StatusOK,
			expectNext:     true,
		},
		{
			name:           "Limited",
			result:         &redis_rate.Result{Allowed: 0, RetryAfter: 3 * time.Second},
			expectedStatus: http.StatusTooManyRequests,
			expectLimited:  1,
		},
		{
			name:           "LimiterError",
			err:            errors.New("redis down"),
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			limiter := NewMockRequestRateLimiter(ctrl)
			metricsManager := metrics.NewTestManager()

			limiter.EXPECT().
				Allow(gomock.Any(), "stats::83.12.53.65", redis_rate.PerMinute(60)).
				Return(tc.result, tc.err)

			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
			})

			req := httptest.NewRequest("GET", "/stats", nil)
			req.RemoteAddr = "83.12.53.65:41000"
			rr := httptest.NewRecorder()
			middleware.RateLimit(limiter, "stats", 60, metricsManager)(next).ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			assert.Equal(t, tc.expectNext, nextCalled)
			assert.Equal(t, tc.expectLimited, testutil.ToFloat64(metricsManager.CounterRateLimitedRequests))
			if tc.expectLimited > 0 {
				assert.Equal(t, "3", rr.Header().Get("Retry-After"))
			}
		})
	}
}
