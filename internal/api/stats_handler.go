package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/2beens/cragjournal/internal/stats"
	"github.com/2beens/cragjournal/internal/telemetry/tracing"
	"github.com/2beens/cragjournal/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

var errInvalidRange = errors.New("from must not be after to")

type StatsHandler struct {
	service statisticsService
	loc     *time.Location
}

func NewStatsHandler(service statisticsService, loc *time.Location) *StatsHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &StatsHandler{
		service: service,
		loc:     loc,
	}
}

func (handler *StatsHandler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/stats", handler.HandleGet).Methods("GET", "OPTIONS").Name("get-stats")
	router.HandleFunc("/stats/cache", handler.HandleClearCache).Methods("DELETE", "OPTIONS").Name("clear-stats-cache")
}

// HandleGet serves GET /stats?timeframe=1month[&from=YYYY-MM-DD&to=YYYY-MM-DD].
// from/to are only read for the custom timeframe.
func (handler *StatsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.stats.get")
	defer span.End()

	query := r.URL.Query()
	tf := stats.Timeframe(query.Get("timeframe"))
	if tf == "" {
		tf = stats.Timeframe1Month
	}
	if !tf.IsValid() {
		http.Error(w, "invalid timeframe", http.StatusBadRequest)
		return
	}
	span.SetAttributes(attribute.String("timeframe", string(tf)))

	var custom *stats.TimeRange
	if tf == stats.TimeframeCustom {
		var err error
		custom, err = parseRange(query.Get("from"), query.Get("to"), handler.loc)
		if err != nil {
			log.Debugf("get stats, bad custom range: %s", err)
			http.Error(w, "invalid custom range: "+err.Error(), http.StatusBadRequest)
			return
		}
	}

	statsJson, err := handler.service.Statistics(ctx, tf, custom)
	if err != nil {
		log.Errorf("get stats for %s: %s", tf, err)
		http.Error(w, "failed to get statistics", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, statsJson)
}

// HandleClearCache drops cached statistics, used by the journal UI after edits.
func (handler *StatsHandler) HandleClearCache(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.stats.clear_cache")
	defer span.End()

	handler.service.ClearCache()
	pkg.WriteJSONResponseOK(w, `{"status": "ok"}`)
}

// parseRange returns nil when both ends are missing, the service then uses its default window.
func parseRange(from, to string, loc *time.Location) (*stats.TimeRange, error) {
	if from == "" && to == "" {
		return nil, nil
	}
	if from == "" || to == "" {
		return nil, errors.New("both from and to are required")
	}

	start, err := time.ParseInLocation(time.DateOnly, from, loc)
	if err != nil {
		return nil, err
	}
	end, err := time.ParseInLocation(time.DateOnly, to, loc)
	if err != nil {
		return nil, err
	}
	if start.After(end) {
		return nil, errInvalidRange
	}

	return &stats.TimeRange{
		Start: start,
		End:   end,
	}, nil
}
