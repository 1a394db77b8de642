// Package usersink bridges activity events into a go-users activity sink.
package usersink

import (
	"context"

	"github.com/goliatone/go-pagecms/pkg/activity"
	"github.com/goliatone/go-pagecms/pkg/interfaces"
	"github.com/google/uuid"
)

// Hook adapts activity events to the go-users ActivityRecord contract.
type Hook struct {
	Sink interfaces.ActivitySink
}

// Notify maps the event and forwards it to the sink. Events without a verb
// are dropped; they carry no auditable action.
func (h Hook) Notify(ctx context.Context, event activity.Event) error {
	if h.Sink == nil || event.Verb == "" {
		return nil
	}

	record := interfaces.ActivityRecord{
		ActorID:    parseUUID(event.ActorID),
		UserID:     parseUUID(event.UserID),
		TenantID:   parseUUID(event.TenantID),
		Verb:       event.Verb,
		ObjectType: event.ObjectType,
		ObjectID:   event.ObjectID,
		Channel:    event.Channel,
		OccurredAt: event.OccurredAt,
		Data:       map[string]any{},
	}
	for key, value := range event.Metadata {
		record.Data[key] = value
	}
	if event.DefinitionCode != "" {
		record.Data["definition_code"] = event.DefinitionCode
	}
	if len(event.Recipients) > 0 {
		record.Data["recipients"] = event.Recipients
	}

	return h.Sink.Log(ctx, record)
}

func parseUUID(value string) uuid.UUID {
	parsed, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil
	}
	return parsed
}
