package worker

import (
	"context"
	"fmt"
	"log/slog"

	"surfceylon.app/server/common/id"
	"surfceylon.app/server/common/logger"
	"surfceylon.app/server/internal/model"
	"surfceylon.app/server/internal/queue"
	"surfceylon.app/server/internal/store"
)

// Notifier fans queue events out into persisted notification rows. The rows
// for one event are written in a single transaction.
type Notifier struct {
	txRunner  TxRunner
	convStore store.ConversationStore
}

func NewNotifier(txRunner TxRunner, convStore store.ConversationStore) *Notifier {
	return &Notifier{txRunner: txRunner, convStore: convStore}
}

func (n *Notifier) FanOut(ctx context.Context, ev queue.Event) error {
	eventType := string(ev.Kind)
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		EventType: &eventType,
		Component: "surf.worker.notifier",
	})

	span := logger.StartSpanFromTraceID(ctx, ev.TraceID, "notifier.fan_out")
	defer span.End()
	ctx = span.Context()

	recipients, subjectID, err := n.resolveRecipients(ctx, ev)
	if err != nil {
		span.RecordError(err)
		return err
	}
	if len(recipients) == 0 {
		slog.InfoContext(ctx, "no recipients for event", "kind", ev.Kind)
		return nil
	}

	err = n.txRunner.WithTx(ctx, func(sp StoreProvider) error {
		for _, recipient := range recipients {
			notification := &model.Notification{
				ID:        id.New(),
				UserID:    recipient,
				Kind:      notificationKind(ev.Kind),
				ActorID:   ev.ActorID,
				SubjectID: subjectID,
			}
			if err := sp.Notifications().Create(ctx, notification); err != nil {
				return fmt.Errorf("creating notification for user %d: %w", recipient, err)
			}
		}
		return nil
	})
	if err != nil {
		span.RecordError(err)
		return err
	}

	slog.InfoContext(ctx, "notifications created", "kind", ev.Kind, "recipients", len(recipients))
	return nil
}

// resolveRecipients maps an event onto the users to notify. Follow events
// notify the followee; message events notify every conversation member except
// the sender.
func (n *Notifier) resolveRecipients(ctx context.Context, ev queue.Event) ([]int64, *int64, error) {
	switch ev.Kind {
	case queue.EventFollowCreated:
		return []int64{ev.SubjectID}, nil, nil

	case queue.EventMessageCreated:
		conversationID := ev.SubjectID
		memberIDs, err := n.convStore.MemberIDs(ctx, conversationID)
		if err != nil {
			return nil, nil, fmt.Errorf("listing conversation members: %w", err)
		}

		recipients := make([]int64, 0, len(memberIDs)-1)
		for _, memberID := range memberIDs {
			if memberID != ev.ActorID {
				recipients = append(recipients, memberID)
			}
		}
		return recipients, &conversationID, nil

	default:
		return nil, nil, fmt.Errorf("unknown event kind %q", ev.Kind)
	}
}

func notificationKind(kind queue.EventKind) string {
	if kind == queue.EventFollowCreated {
		return model.NotificationFollow
	}
	return model.NotificationMessage
}
