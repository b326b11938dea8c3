package ingestion

import (
	"errors"
	"fmt"
	"sync"

	pkgmqtt "sankofa/pkg/mqtt"

	"go.uber.org/zap"
)

// Broker is the subset of pkg/mqtt.Client ingestion needs.
type Broker interface {
	Connect() error
	Subscribe(topic string, qos byte, handler pkgmqtt.MessageHandler) error
	Unsubscribe(topics ...string) error
	Disconnect()
}

// MQTTIngestionConfig describes where scale readings arrive.
type MQTTIngestionConfig struct {
	FillTopic string // e.g. sankofa/hubs/+/fill
	QoS       byte
}

// FillTopic builds the wildcard subscription for a topic prefix.
func FillTopic(prefix string) string {
	return prefix + "/hubs/+/fill"
}

// MQTTIngestionClient wires MQTT messages into the processor.
type MQTTIngestionClient struct {
	cfg       *MQTTIngestionConfig
	broker    Broker
	processor *Processor
	log       *zap.Logger

	mu            sync.Mutex
	started       bool
	subscriptions []string
}

func NewMQTTIngestionClient(cfg *MQTTIngestionConfig, broker Broker, processor *Processor, log *zap.Logger) (*MQTTIngestionClient, error) {
	if cfg == nil || cfg.FillTopic == "" {
		return nil, errors.New("mqtt ingestion topic is not configured")
	}
	if broker == nil {
		return nil, errors.New("mqtt broker is required")
	}
	if processor == nil {
		return nil, errors.New("processor is required")
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &MQTTIngestionClient{
		cfg:       cfg,
		broker:    broker,
		processor: processor,
		log:       log,
	}, nil
}

// Start connects and subscribes. Calling it twice is a no-op.
func (c *MQTTIngestionClient) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.started {
		return nil
	}

	if err := c.broker.Connect(); err != nil {
		return fmt.Errorf("failed to connect to MQTT broker: %w", err)
	}

	if err := c.broker.Subscribe(c.cfg.FillTopic, c.cfg.QoS, c.handleFillMessage); err != nil {
		c.broker.Disconnect()
		return fmt.Errorf("subscribe failed for topic %s: %w", c.cfg.FillTopic, err)
	}
	c.subscriptions = append(c.subscriptions, c.cfg.FillTopic)
	c.log.Info("listening for hub fill readings", zap.String("topic", c.cfg.FillTopic))

	c.started = true
	return nil
}

func (c *MQTTIngestionClient) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.started {
		return
	}

	if err := c.broker.Unsubscribe(c.subscriptions...); err != nil {
		c.log.Warn("failed to unsubscribe from MQTT topics", zap.Error(err))
	}

	c.broker.Disconnect()
	c.started = false
	c.subscriptions = nil
}

func (c *MQTTIngestionClient) handleFillMessage(topic string, payload []byte) {
	reading, err := ParseFillReading(topic, payload)
	if err != nil {
		c.log.Warn("invalid fill payload", zap.String("topic", topic), zap.Error(err))
		c.processor.metrics.Update(func(m *IngestMetrics) {
			m.MessagesReceived++
			m.MessagesFailed++
		})
		return
	}

	_ = c.processor.Submit(reading)
}
