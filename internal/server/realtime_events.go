package server

import (
	"context"
	"log"

	"datingmeet/internal/notifications"
)

// publishUserEvent fans a real-time event out to a single user's channel.
// Delivery is best-effort: failures are logged, never surfaced to the caller.
func (s *Server) publishUserEvent(userID string, eventType string, payload map[string]interface{}) {
	if s.notifier == nil {
		return
	}
	event := notifications.Event{
		Type: eventType,
		Data: payload,
	}
	if err := s.notifier.PublishUserEvent(context.Background(), userID, event); err != nil {
		log.Printf("failed to publish %s event to user %s: %v", eventType, userID, err)
	}
}

// publishMatchEvent fans a real-time event out to a match channel so both
// participants receive it.
func (s *Server) publishMatchEvent(matchID string, eventType string, payload map[string]interface{}) {
	if s.notifier == nil {
		return
	}
	event := notifications.Event{
		Type: eventType,
		Data: payload,
	}
	if err := s.notifier.PublishMatchEvent(context.Background(), matchID, event); err != nil {
		log.Printf("failed to publish %s event to match %s: %v", eventType, matchID, err)
	}
}
