package notifications

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/2beens/cragjournal/internal/telemetry/metrics"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const DefaultMaxRecords = 200

var ErrNotFound = errors.New("notification not found")

type Persister interface {
	Load(ctx context.Context) ([]Record, error)
	Save(ctx context.Context, records []Record) error
}

// Store is the notification log: newest first, deduplicated by DedupKey,
// persisted after every mutation. The in-memory list is the source of truth,
// a failing persister only gets logged.
type Store struct {
	mu          sync.Mutex
	records     []Record
	persister   Persister
	now         func() time.Time
	loc         *time.Location
	maxRecords  int
	subscribers map[int]func([]Record)
	nextSubID   int

	metricsManager *metrics.Manager

	// ability to inject id generator (for unit testing)
	NewIDFunc func() string
}

func NewStore(
	ctx context.Context,
	persister Persister,
	now func() time.Time,
	loc *time.Location,
	maxRecords int,
	metricsManager *metrics.Manager,
) *Store {
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.UTC
	}
	if maxRecords <= 0 {
		maxRecords = DefaultMaxRecords
	}

	s := &Store{
		persister:      persister,
		now:            now,
		loc:            loc,
		maxRecords:     maxRecords,
		subscribers:    make(map[int]func([]Record)),
		metricsManager: metricsManager,
		NewIDFunc:      uuid.NewString,
	}

	records, err := persister.Load(ctx)
	if err != nil {
		log.Errorf("notification store: failed to load records, starting empty: %s", err)
		metricsManager.CounterStorePersistErrors.Inc()
		records = nil
	}
	if len(records) > maxRecords {
		records = records[:maxRecords]
	}
	s.records = records

	updateGauge := unreadGaugeListener(metricsManager)
	updateGauge(records)
	s.Subscribe(updateGauge)

	log.Debugf("notification store: loaded %d records", len(records))
	return s
}

// Today returns the current calendar day key component, in the store location.
func (s *Store) Today() string {
	return s.now().In(s.loc).Format(time.DateOnly)
}

// Add unconditionally adds a new record built from the draft.
func (s *Store) Add(ctx context.Context, draft Draft) (Record, error) {
	s.mu.Lock()
	record := s.addLocked(draft)
	err := s.persistLocked(ctx)
	snapshot := s.copyLocked()
	s.mu.Unlock()

	s.notify(snapshot)
	return record, err
}

// AddIfAbsent adds the draft unless a record with the same dedup key for today exists.
// The check and the add happen under one lock.
func (s *Store) AddIfAbsent(ctx context.Context, draft Draft) (Record, bool, error) {
	s.mu.Lock()
	key := draft.KeyAt(s.now().In(s.loc))
	if s.hasLocked(key) {
		s.mu.Unlock()
		return Record{}, false, nil
	}
	record := s.addLocked(draft)
	err := s.persistLocked(ctx)
	snapshot := s.copyLocked()
	s.mu.Unlock()

	s.notify(snapshot)
	return record, true, err
}

// Has reports whether a record with the given dedup key exists.
func (s *Store) Has(key DedupKey) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasLocked(key)
}

// List returns a copy of all records, newest first.
func (s *Store) List() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyLocked()
}

func (s *Store) Unread() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	unread := make([]Record, 0)
	for _, r := range s.records {
		if !r.Read {
			unread = append(unread, r)
		}
	}
	return unread
}

func (s *Store) UnreadCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.unreadCountLocked()
}

func (s *Store) MarkRead(ctx context.Context, id string) error {
	return s.mutate(ctx, func() error {
		for i := range s.records {
			if s.records[i].ID == id {
				s.records[i].Read = true
				return nil
			}
		}
		return ErrNotFound
	})
}

func (s *Store) MarkAllRead(ctx context.Context) error {
	return s.mutate(ctx, func() error {
		for i := range s.records {
			s.records[i].Read = true
		}
		return nil
	})
}

func (s *Store) Remove(ctx context.Context, id string) error {
	return s.mutate(ctx, func() error {
		for i := range s.records {
			if s.records[i].ID == id {
				s.records = append(s.records[:i], s.records[i+1:]...)
				return nil
			}
		}
		return ErrNotFound
	})
}

func (s *Store) Clear(ctx context.Context) error {
	return s.mutate(ctx, func() error {
		s.records = nil
		return nil
	})
}

// Subscribe registers fn to be called with the full list after every change.
// Listeners run outside the store lock, in the goroutine that made the change.
func (s *Store) Subscribe(fn func([]Record)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subscribers, id)
		s.mu.Unlock()
	}
}

func (s *Store) mutate(ctx context.Context, change func() error) error {
	s.mu.Lock()
	if err := change(); err != nil {
		s.mu.Unlock()
		return err
	}
	err := s.persistLocked(ctx)
	snapshot := s.copyLocked()
	s.mu.Unlock()

	s.notify(snapshot)
	return err
}

func (s *Store) addLocked(draft Draft) Record {
	now := s.now().In(s.loc)
	record := Record{
		ID:           s.NewIDFunc(),
		Type:         draft.Type,
		Title:        draft.Title,
		Message:      draft.Message,
		Priority:     draft.Priority,
		ActionButton: draft.ActionButton,
		Timestamp:    now,
		Read:         false,
		Key:          draft.KeyAt(now),
	}

	s.records = append([]Record{record}, s.records...)
	if len(s.records) > s.maxRecords {
		s.records = s.records[:s.maxRecords]
	}

	s.metricsManager.CounterNotificationsAdded.WithLabelValues(string(record.Type)).Inc()
	log.Debugf("notification store: added [%s] %s", record.Key, record.Title)
	return record
}

func (s *Store) hasLocked(key DedupKey) bool {
	for _, r := range s.records {
		if r.Key == key {
			return true
		}
	}
	return false
}

// persistLocked saves the current list; the error is logged and returned,
// the in-memory change is kept either way.
func (s *Store) persistLocked(ctx context.Context) error {
	if err := s.persister.Save(ctx, s.records); err != nil {
		log.Errorf("notification store: failed to save records: %s", err)
		s.metricsManager.CounterStorePersistErrors.Inc()
		return err
	}
	return nil
}

func (s *Store) unreadCountLocked() int {
	return countUnread(s.records)
}

func countUnread(records []Record) int {
	count := 0
	for _, r := range records {
		if !r.Read {
			count++
		}
	}
	return count
}

// unreadGaugeListener keeps the unread gauge in sync with the store.
func unreadGaugeListener(metricsManager *metrics.Manager) func([]Record) {
	return func(records []Record) {
		metricsManager.GaugeUnreadNotifications.Set(float64(countUnread(records)))
	}
}

func (s *Store) copyLocked() []Record {
	records := make([]Record, len(s.records))
	copy(records, s.records)
	return records
}

func (s *Store) notify(records []Record) {
	s.mu.Lock()
	listeners := make([]func([]Record), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(records)
	}
}
