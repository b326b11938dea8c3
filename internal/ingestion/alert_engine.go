package ingestion

import (
	"context"
	"fmt"
	"sync"

	"sankofa/internal/domain/hub"
	"sankofa/internal/events"

	"go.uber.org/zap"
)

// AlertEngine classifies hub fill levels and raises an event each time a hub
// moves into a higher level.
type AlertEngine struct {
	warnPct   float64
	publisher events.Publisher
	log       *zap.Logger

	mu   sync.Mutex
	last map[string]AlertLevel
}

func NewAlertEngine(warnPct float64, publisher events.Publisher, log *zap.Logger) *AlertEngine {
	if warnPct <= 0 || warnPct > 100 {
		warnPct = 90
	}
	if publisher == nil {
		publisher = events.Noop{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &AlertEngine{
		warnPct:   warnPct,
		publisher: publisher,
		log:       log,
		last:      make(map[string]AlertLevel),
	}
}

// Level classifies a fill amount against capacity.
func (e *AlertEngine) Level(fillKg, capacity float64) AlertLevel {
	if capacity <= 0 {
		return LevelNormal
	}
	pct := fillKg / capacity * 100
	switch {
	case pct >= 100:
		return LevelFull
	case pct >= e.warnPct:
		return LevelWarning
	default:
		return LevelNormal
	}
}

// Check returns an alert when h has climbed into a higher level since the
// previous reading, or nil. Dropping back (full to warning) only resets the
// tracked level so the next climb alerts again.
func (e *AlertEngine) Check(h *hub.Hub, reading *FillReading) *Alert {
	level := e.Level(reading.FillKg, h.Capacity)
	key := h.ID.String()

	e.mu.Lock()
	previous := e.last[key]
	e.last[key] = level
	e.mu.Unlock()

	if level.rank() <= previous.rank() {
		return nil
	}

	utilisation := 0.0
	if h.Capacity > 0 {
		utilisation = reading.FillKg / h.Capacity * 100
	}

	alert := &Alert{
		HubID:       key,
		HubName:     h.Name,
		Level:       level,
		FillKg:      reading.FillKg,
		Capacity:    h.Capacity,
		Utilisation: utilisation,
		Time:        reading.RecordedAt,
	}
	if level == LevelFull {
		alert.Message = fmt.Sprintf("Hub %s is full (%.1f of %.1f kg)", h.Name, reading.FillKg, h.Capacity)
	} else {
		alert.Message = fmt.Sprintf("Hub %s is at %.0f%% capacity", h.Name, utilisation)
	}
	return alert
}

// Raise publishes the alert as a hub.capacity_* event.
func (e *AlertEngine) Raise(ctx context.Context, alert *Alert) error {
	eventType := events.HubCapacityWarning
	if alert.Level == LevelFull {
		eventType = events.HubCapacityFull
	}

	e.log.Warn("hub capacity alert",
		zap.String("hub_id", alert.HubID),
		zap.String("level", string(alert.Level)),
		zap.Float64("utilisation", alert.Utilisation),
	)

	return e.publisher.Publish(ctx, events.New(eventType, nil, alert))
}
