package notifications

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/2beens/cragjournal/internal/telemetry/tracing"
	"github.com/2beens/cragjournal/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{
		store: store,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/notifications", handler.HandleList).Methods("GET", "OPTIONS").Name("list-notifications")
	router.HandleFunc("/notifications/unread", handler.HandleUnread).Methods("GET", "OPTIONS").Name("unread-notifications")
	router.HandleFunc("/notifications/read-all", handler.HandleMarkAllRead).Methods("POST", "OPTIONS").Name("read-all-notifications")
	router.HandleFunc("/notifications/{id}/read", handler.HandleMarkRead).Methods("POST", "OPTIONS").Name("read-notification")
	router.HandleFunc("/notifications/{id}", handler.HandleRemove).Methods("DELETE", "OPTIONS").Name("remove-notification")
	router.HandleFunc("/notifications", handler.HandleClear).Methods("DELETE", "OPTIONS").Name("clear-notifications")
}

type listResponse struct {
	Notifications []Record `json:"notifications"`
	UnreadCount   int      `json:"unreadCount"`
}

// HandleList returns all notifications, newest first
func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.notifications.list")
	defer span.End()

	handler.writeList(w, handler.store.List())
}

func (handler *Handler) HandleUnread(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.notifications.unread")
	defer span.End()

	handler.writeList(w, handler.store.Unread())
}

func (handler *Handler) HandleMarkRead(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.notifications.mark_read")
	defer span.End()

	id := mux.Vars(r)["id"]
	if id == "" {
		http.Error(w, "missing notification id", http.StatusBadRequest)
		return
	}

	if err := handler.store.MarkRead(ctx, id); err != nil {
		handler.writeStoreError(w, "mark read", id, err)
		return
	}

	pkg.WriteJSONResponseOK(w, `{"status": "ok"}`)
}

func (handler *Handler) HandleMarkAllRead(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.notifications.mark_all_read")
	defer span.End()

	if err := handler.store.MarkAllRead(ctx); err != nil {
		handler.writeStoreError(w, "mark all read", "", err)
		return
	}

	pkg.WriteJSONResponseOK(w, `{"status": "ok"}`)
}

func (handler *Handler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.notifications.remove")
	defer span.End()

	id := mux.Vars(r)["id"]
	if id == "" {
		http.Error(w, "missing notification id", http.StatusBadRequest)
		return
	}

	if err := handler.store.Remove(ctx, id); err != nil {
		handler.writeStoreError(w, "remove", id, err)
		return
	}

	pkg.WriteJSONResponseOK(w, `{"status": "ok"}`)
}

func (handler *Handler) HandleClear(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.notifications.clear")
	defer span.End()

	if err := handler.store.Clear(ctx); err != nil {
		handler.writeStoreError(w, "clear", "", err)
		return
	}

	pkg.WriteJSONResponseOK(w, `{"status": "ok"}`)
}

func (handler *Handler) writeList(w http.ResponseWriter, records []Record) {
	unread := 0
	for _, r := range records {
		if !r.Read {
			unread++
		}
	}

	respJson, err := json.Marshal(listResponse{
		Notifications: records,
		UnreadCount:   unread,
	})
	if err != nil {
		log.Errorf("failed to marshal notifications: %s", err)
		http.Error(w, "failed to marshal response", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respJson)
}

// persistence failures keep the in-memory change, the client still gets a 200
func (handler *Handler) writeStoreError(w http.ResponseWriter, op, id string, err error) {
	if errors.Is(err, ErrNotFound) {
		http.Error(w, "notification not found", http.StatusNotFound)
		return
	}
	log.Errorf("notifications %s [%s]: %s", op, id, err)
	pkg.WriteJSONResponseOK(w, `{"status": "ok", "persisted": false}`)
}
