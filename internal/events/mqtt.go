package events

import (
	"context"
	"fmt"
)

// MQTTClient is the subset of pkg/mqtt.Client the publisher needs.
type MQTTClient interface {
	PublishJSON(topic string, qos byte, v interface{}) error
}

// MQTTPublisher forwards events to <prefix>/events/<type> so field devices
// and external dashboards can follow them.
type MQTTPublisher struct {
	client MQTTClient
	prefix string
	qos    byte
}

func NewMQTTPublisher(client MQTTClient, prefix string, qos byte) *MQTTPublisher {
	return &MQTTPublisher{client: client, prefix: prefix, qos: qos}
}

func (p *MQTTPublisher) Topic(eventType string) string {
	return fmt.Sprintf("%s/events/%s", p.prefix, eventType)
}

func (p *MQTTPublisher) Publish(_ context.Context, event Event) error {
	if err := p.client.PublishJSON(p.Topic(event.Type), p.qos, event); err != nil {
		return fmt.Errorf("publish %s: %w", event.Type, err)
	}
	return nil
}
