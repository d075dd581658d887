// Package pubsub provides a generic publish/subscribe event system.
package pubsub

import (
	"context"
	"time"
)

// EventType represents the type of event being published.
type EventType string

const (
	// Document lifecycle events published by the editor session.
	DocOpenedEvent      EventType = "doc_opened"
	DocEditedEvent      EventType = "doc_edited"
	DocHighlightedEvent EventType = "doc_highlighted"
	DocClosedEvent      EventType = "doc_closed"

	// ConfigReloadedEvent fires after the config watcher triggers a reload.
	ConfigReloadedEvent EventType = "config_reloaded"

	// LogLineEvent carries a formatted log entry to overlay subscribers.
	LogLineEvent EventType = "log_line"
)

// Event represents a published event with a typed payload.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}

// DocumentEvent is the payload for document lifecycle events.
type DocumentEvent struct {
	ID       string
	Language string
	Version  uint64
}

// Subscriber provides a subscription channel for events.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
}

// Publisher allows publishing events with a typed payload.
type Publisher[T any] interface {
	Publish(eventType EventType, payload T)
}
