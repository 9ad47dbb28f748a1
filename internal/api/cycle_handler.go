package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/2beens/cragjournal/internal/cycle"
	"github.com/2beens/cragjournal/internal/journal"
	"github.com/2beens/cragjournal/internal/telemetry/tracing"
	"github.com/2beens/cragjournal/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type CycleHandler struct {
	profiles profileProvider
	now      func() time.Time
}

func NewCycleHandler(profiles profileProvider, now func() time.Time) *CycleHandler {
	if now == nil {
		now = time.Now
	}
	return &CycleHandler{
		profiles: profiles,
		now:      now,
	}
}

func (handler *CycleHandler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/cycle", handler.HandleGet).Methods("GET", "OPTIONS").Name("get-cycle")
}

// HandleGet serves GET /cycle[?date=YYYY-MM-DD], the date defaults to today in the cycle timezone.
func (handler *CycleHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.cycle.get")
	defer span.End()

	profile, err := handler.profiles.GetProfile(ctx)
	if err != nil {
		if errors.Is(err, journal.ErrProfileNotFound) {
			http.Error(w, "cycle tracking disabled", http.StatusNotFound)
			return
		}
		log.Errorf("get cycle info, get profile: %s", err)
		http.Error(w, "failed to get cycle info", http.StatusInternalServerError)
		return
	}
	if profile.Cycle == nil {
		http.Error(w, "cycle tracking disabled", http.StatusNotFound)
		return
	}
	settings := *profile.Cycle

	target := handler.now().In(settings.Location())
	if dateParam := r.URL.Query().Get("date"); dateParam != "" {
		target, err = time.ParseInLocation(time.DateOnly, dateParam, settings.Location())
		if err != nil {
			http.Error(w, "invalid date, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}
	}

	infoJson, err := json.Marshal(cycle.CalculateInfo(settings, target))
	if err != nil {
		log.Errorf("marshal cycle info: %s", err)
		http.Error(w, "failed to get cycle info", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, infoJson)
}
