package ingestion

import (
	"context"
	"sync"
	"testing"
	"time"

	"sankofa/internal/domain/hub"
	"sankofa/internal/events"
	"sankofa/internal/infrastructure/database/postgres"
	"sankofa/internal/testutil"
	pkgmqtt "sankofa/pkg/mqtt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *recorder) Publish(_ context.Context, e events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *recorder) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	for i, e := range r.events {
		out[i] = e.Type
	}
	return out
}

func TestParseFillReading(t *testing.T) {
	hubID := uuid.NewString()

	reading, err := ParseFillReading("sankofa/hubs/"+hubID+"/fill", []byte(`{"fill_kg": 42.5}`))
	require.NoError(t, err)
	assert.Equal(t, hubID, reading.HubID)
	assert.Equal(t, 42.5, reading.FillKg)
	assert.False(t, reading.RecordedAt.IsZero())

	_, err = ParseFillReading("sankofa/hubs/x/fill", []byte(`not json`))
	assert.Error(t, err)
}

func TestValidateFillReading(t *testing.T) {
	tests := []struct {
		name    string
		reading FillReading
		field   string
	}{
		{name: "valid", reading: FillReading{HubID: uuid.NewString(), FillKg: 10, RecordedAt: time.Now()}},
		{name: "missing hub", reading: FillReading{FillKg: 10}, field: "hub_id"},
		{name: "bad hub id", reading: FillReading{HubID: "scale-7", FillKg: 10}, field: "hub_id"},
		{name: "negative fill", reading: FillReading{HubID: uuid.NewString(), FillKg: -1}, field: "fill_kg"},
		{name: "future reading", reading: FillReading{HubID: uuid.NewString(), RecordedAt: time.Now().Add(time.Hour)}, field: "recorded_at"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFillReading(&tt.reading)
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)
		})
	}
}

func TestAlertEngine_OnlyAlertsOnLevelChange(t *testing.T) {
	engine := NewAlertEngine(90, nil, nil)
	h := &hub.Hub{ID: uuid.New(), Name: "Madina", Capacity: 100}

	assert.Equal(t, LevelNormal, engine.Level(50, 100))
	assert.Equal(t, LevelWarning, engine.Level(90, 100))
	assert.Equal(t, LevelFull, engine.Level(100, 100))

	assert.Nil(t, engine.Check(h, &FillReading{FillKg: 50}))

	alert := engine.Check(h, &FillReading{FillKg: 92})
	require.NotNil(t, alert)
	assert.Equal(t, LevelWarning, alert.Level)

	assert.Nil(t, engine.Check(h, &FillReading{FillKg: 95}))

	alert = engine.Check(h, &FillReading{FillKg: 101})
	require.NotNil(t, alert)
	assert.Equal(t, LevelFull, alert.Level)
}

func TestAlertEngine_NoAlertWhenLevelDrops(t *testing.T) {
	engine := NewAlertEngine(90, nil, nil)
	h := &hub.Hub{ID: uuid.New(), Name: "Kaneshie", Capacity: 100}

	require.NotNil(t, engine.Check(h, &FillReading{FillKg: 100}))

	// full back down to warning after a partial pickup
	assert.Nil(t, engine.Check(h, &FillReading{FillKg: 93}))
	assert.Nil(t, engine.Check(h, &FillReading{FillKg: 96}))

	alert := engine.Check(h, &FillReading{FillKg: 104})
	require.NotNil(t, alert)
	assert.Equal(t, LevelFull, alert.Level)

	assert.Nil(t, engine.Check(h, &FillReading{FillKg: 10}))
	alert = engine.Check(h, &FillReading{FillKg: 91})
	require.NotNil(t, alert)
	assert.Equal(t, LevelWarning, alert.Level)
}

func TestProcessor_AppliesReadingsAndRaisesAlerts(t *testing.T) {
	db := testutil.OpenDB(t)
	h := testutil.SeedHub(t, db, 100)
	hubs := postgres.NewHubRepository(db)
	rec := &recorder{}

	p := NewProcessor(hubs, NewAlertEngine(90, rec, nil), 1, 8, nil)
	p.Start()

	require.NoError(t, p.Submit(&FillReading{HubID: h.ID.String(), FillKg: 95, RecordedAt: time.Now()}))
	require.NoError(t, p.Submit(&FillReading{HubID: h.ID.String(), FillKg: 120, RecordedAt: time.Now()}))
	p.Stop()

	stored, err := hubs.GetByID(context.Background(), h.ID)
	require.NoError(t, err)
	assert.Equal(t, 120.0, stored.CurrentCapacity)
	assert.Equal(t, hub.StatusFull, stored.Status)

	assert.Equal(t, []string{events.HubCapacityWarning, events.HubCapacityFull}, rec.types())

	m := p.GetMetrics()
	assert.Equal(t, int64(2), m.MessagesReceived)
	assert.Equal(t, int64(2), m.MessagesProcessed)
	assert.Equal(t, int64(2), m.AlertsGenerated)
	assert.Zero(t, m.MessagesFailed)
}

func TestProcessor_EmptiedHubReopens(t *testing.T) {
	db := testutil.OpenDB(t)
	h := testutil.SeedHub(t, db, 100, func(h *hub.Hub) {
		h.Status = hub.StatusFull
		h.CurrentCapacity = 100
	})
	hubs := postgres.NewHubRepository(db)

	p := NewProcessor(hubs, NewAlertEngine(90, nil, nil), 1, 4, nil)
	p.Start()
	require.NoError(t, p.Submit(&FillReading{HubID: h.ID.String(), FillKg: 3, RecordedAt: time.Now()}))
	p.Stop()

	stored, err := hubs.GetByID(context.Background(), h.ID)
	require.NoError(t, err)
	assert.Equal(t, hub.StatusActive, stored.Status)
	assert.Equal(t, 3.0, stored.CurrentCapacity)
}

func TestProcessor_SkipsStaleReadings(t *testing.T) {
	db := testutil.OpenDB(t)
	h := testutil.SeedHub(t, db, 100)
	other := testutil.SeedHub(t, db, 100)
	hubs := postgres.NewHubRepository(db)

	p := NewProcessor(hubs, NewAlertEngine(90, nil, nil), 4, 16, nil)
	now := time.Now().Add(-time.Minute)

	require.NoError(t, p.Submit(&FillReading{HubID: h.ID.String(), FillKg: 40, RecordedAt: now}))
	require.NoError(t, p.Submit(&FillReading{HubID: h.ID.String(), FillKg: 25, RecordedAt: now.Add(-10 * time.Second)}))
	require.NoError(t, p.Submit(&FillReading{HubID: other.ID.String(), FillKg: 5, RecordedAt: now.Add(-time.Hour)}))
	p.Start()
	p.Stop()

	stored, err := hubs.GetByID(context.Background(), h.ID)
	require.NoError(t, err)
	assert.Equal(t, 40.0, stored.CurrentCapacity)

	stored, err = hubs.GetByID(context.Background(), other.ID)
	require.NoError(t, err)
	assert.Equal(t, 5.0, stored.CurrentCapacity)

	m := p.GetMetrics()
	assert.Equal(t, int64(2), m.MessagesProcessed)
	assert.Equal(t, int64(1), m.MessagesStale)
}

func TestProcessor_ShardsByHub(t *testing.T) {
	p := NewProcessor(nil, nil, 4, 16, nil)
	hubID := uuid.NewString()

	assert.Len(t, p.shards, 4)
	assert.Equal(t, 4, cap(p.shards[0]))
	for i := 0; i < 5; i++ {
		assert.Equal(t, p.shardFor(hubID), p.shardFor(hubID))
	}
}

func TestProcessor_FailuresAreCounted(t *testing.T) {
	db := testutil.OpenDB(t)
	p := NewProcessor(postgres.NewHubRepository(db), NewAlertEngine(90, nil, nil), 1, 4, nil)
	p.Start()

	require.NoError(t, p.Submit(&FillReading{HubID: "not-a-uuid", FillKg: 1}))
	require.NoError(t, p.Submit(&FillReading{HubID: uuid.NewString(), FillKg: 1, RecordedAt: time.Now()}))
	p.Stop()

	m := p.GetMetrics()
	assert.Equal(t, int64(2), m.MessagesFailed)
	assert.Zero(t, m.MessagesProcessed)
}

func TestProcessor_FullBufferDropsReading(t *testing.T) {
	p := NewProcessor(nil, NewAlertEngine(90, nil, nil), 1, 1, nil)

	require.NoError(t, p.Submit(&FillReading{HubID: uuid.NewString()}))
	assert.ErrorIs(t, p.Submit(&FillReading{HubID: uuid.NewString()}), ErrBufferFull)

	m := p.GetMetrics()
	assert.Equal(t, int64(2), m.MessagesReceived)
	assert.Equal(t, int64(1), m.MessagesFailed)

	p.stopped = true
	assert.ErrorIs(t, p.Submit(&FillReading{}), ErrStopped)
}

type fakeBroker struct {
	connected    bool
	topic        string
	handler      pkgmqtt.MessageHandler
	unsubscribed []string
}

func (b *fakeBroker) Connect() error { b.connected = true; return nil }

func (b *fakeBroker) Subscribe(topic string, _ byte, handler pkgmqtt.MessageHandler) error {
	b.topic = topic
	b.handler = handler
	return nil
}

func (b *fakeBroker) Unsubscribe(topics ...string) error {
	b.unsubscribed = append(b.unsubscribed, topics...)
	return nil
}

func (b *fakeBroker) Disconnect() { b.connected = false }

func TestMQTTIngestionClient_SubmitsFillMessages(t *testing.T) {
	broker := &fakeBroker{}
	p := NewProcessor(nil, NewAlertEngine(90, nil, nil), 1, 4, nil)

	client, err := NewMQTTIngestionClient(&MQTTIngestionConfig{FillTopic: FillTopic("sankofa"), QoS: 1}, broker, p, nil)
	require.NoError(t, err)
	require.NoError(t, client.Start())
	require.NoError(t, client.Start())

	assert.True(t, broker.connected)
	assert.Equal(t, "sankofa/hubs/+/fill", broker.topic)

	hubID := uuid.NewString()
	broker.handler("sankofa/hubs/"+hubID+"/fill", []byte(`{"fill_kg": 12}`))
	broker.handler("sankofa/hubs/"+hubID+"/fill", []byte(`{`))

	queued := <-p.shardFor(hubID)
	assert.Equal(t, hubID, queued.HubID)
	assert.Equal(t, int64(2), p.GetMetrics().MessagesReceived)
	assert.Equal(t, int64(1), p.GetMetrics().MessagesFailed)

	client.Stop()
	assert.False(t, broker.connected)
	assert.Equal(t, []string{"sankofa/hubs/+/fill"}, broker.unsubscribed)
}

func TestNewMQTTIngestionClient_RequiresTopic(t *testing.T) {
	_, err := NewMQTTIngestionClient(&MQTTIngestionConfig{}, &fakeBroker{}, NewProcessor(nil, nil, 1, 1, nil), nil)
	assert.Error(t, err)
}
