package logger

import "context"

type contextKey string

const logFieldsKey contextKey = "log_fields"

// LogFields contains structured fields automatically added to all logs within a context.
// Fields flow through context enrichment, so business context (caller_id,
// conversation_id, etc.) is included in every log statement without manual plumbing.
type LogFields struct {
	CallerID       *int64  // Authenticated caller
	ConversationID *int64  // Conversation being read or written
	MessageID      *string // Redis stream message ID
	EventType      *string // Event type (e.g., "follow.created", "message.created")
	Component      string  // Component name (e.g., "surf.queue.consumer")
}

// WithLogFields enriches context with structured log fields.
// Multiple calls merge fields, with newer non-nil/non-empty values taking precedence.
// Context timeouts and cancellation are preserved.
func WithLogFields(ctx context.Context, fields LogFields) context.Context {
	existing := GetLogFields(ctx)
	merged := mergeFields(existing, fields)
	return context.WithValue(ctx, logFieldsKey, merged)
}

// GetLogFields retrieves log fields from context.
// Returns empty LogFields if none are set.
func GetLogFields(ctx context.Context) LogFields {
	if fields, ok := ctx.Value(logFieldsKey).(LogFields); ok {
		return fields
	}
	return LogFields{}
}

func mergeFields(existing, next LogFields) LogFields {
	result := existing

	if next.CallerID != nil {
		result.CallerID = next.CallerID
	}
	if next.ConversationID != nil {
		result.ConversationID = next.ConversationID
	}
	if next.MessageID != nil {
		result.MessageID = next.MessageID
	}
	if next.EventType != nil {
		result.EventType = next.EventType
	}
	if next.Component != "" {
		result.Component = next.Component
	}

	return result
}
