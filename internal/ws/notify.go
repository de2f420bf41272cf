package ws

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const EventAnalyticsUpdated = "analytics_updated"

// AnalyticsUpdatedEvent tells a client its derived analytics are stale and
// should be refetched. It carries no analytics payload.
type AnalyticsUpdatedEvent struct {
	Type      string `json:"type"`
	LearnerID string `json:"learner_id"`
	Source    string `json:"source"`
	Timestamp string `json:"timestamp"`
}

func (h *Hub) NotifyAnalyticsUpdated(learnerID uuid.UUID, source string) {
	if h == nil || learnerID == uuid.Nil {
		return
	}

	evt := AnalyticsUpdatedEvent{
		Type:      EventAnalyticsUpdated,
		LearnerID: learnerID.String(),
		Source:    source,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}

	h.SendTo(learnerID, b)
}
