package ingestion

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// FillReading is a scale report of how many kilograms a hub currently holds.
type FillReading struct {
	HubID      string    `json:"hub_id"`
	FillKg     float64   `json:"fill_kg"`
	RecordedAt time.Time `json:"recorded_at"`
	ScaleID    string    `json:"scale_id,omitempty"`
}

type AlertLevel string

const (
	LevelNormal  AlertLevel = "normal"
	LevelWarning AlertLevel = "warning"
	LevelFull    AlertLevel = "full"
)

func (l AlertLevel) rank() int {
	switch l {
	case LevelWarning:
		return 1
	case LevelFull:
		return 2
	default:
		return 0
	}
}

// Alert is raised when a hub crosses a fill threshold.
type Alert struct {
	HubID       string     `json:"hub_id"`
	HubName     string     `json:"hub_name"`
	Level       AlertLevel `json:"level"`
	FillKg      float64    `json:"fill_kg"`
	Capacity    float64    `json:"capacity"`
	Utilisation float64    `json:"utilisation"`
	Message     string     `json:"message"`
	Time        time.Time  `json:"time"`
}

// ParseFillReading decodes a payload received on <prefix>/hubs/<id>/fill.
// The hub id in the topic is used when the payload omits it.
func ParseFillReading(topic string, payload []byte) (*FillReading, error) {
	var reading FillReading
	if err := json.Unmarshal(payload, &reading); err != nil {
		return nil, fmt.Errorf("decode fill reading: %w", err)
	}

	if reading.HubID == "" {
		reading.HubID = hubIDFromTopic(topic)
	}
	if reading.RecordedAt.IsZero() {
		reading.RecordedAt = time.Now().UTC()
	}

	return &reading, nil
}

func hubIDFromTopic(topic string) string {
	parts := strings.Split(topic, "/")
	for i := 0; i+2 < len(parts); i++ {
		if parts[i] == "hubs" && parts[i+2] == "fill" {
			return parts[i+1]
		}
	}
	return ""
}
