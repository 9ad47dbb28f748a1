// Package reminders holds the reminder evaluators. Every evaluator is a pure
// check over the journal history plus a draft builder; the Process functions
// add the drafts to the notification store at most once per day.
package reminders

import (
	"context"

	"github.com/2beens/cragjournal/internal/notifications"

	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=reminders_test

type notificationStore interface {
	AddIfAbsent(ctx context.Context, draft notifications.Draft) (notifications.Record, bool, error)
}

// addAll adds the drafts in order, skipping those already fired today.
// A persistence error does not undo the add, the record is still returned.
func addAll(ctx context.Context, store notificationStore, drafts ...notifications.Draft) ([]notifications.Record, error) {
	var (
		added []notifications.Record
		errs  error
	)
	for _, draft := range drafts {
		record, ok, err := store.AddIfAbsent(ctx, draft)
		if err != nil {
			errs = multierr.Append(errs, err)
		}
		if !ok {
			log.Tracef("reminder [%s/%s] already fired today", draft.Type, draft.Subkey)
			continue
		}
		log.Debugf("reminder [%s/%s] fired: %s", draft.Type, draft.Subkey, draft.Title)
		added = append(added, record)
	}
	return added, errs
}
