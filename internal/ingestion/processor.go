package ingestion

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"sankofa/internal/domain/hub"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrStopped is returned by Submit after Stop.
var ErrStopped = errors.New("ingestion processor stopped")

// ErrBufferFull is returned by Submit when the reading was dropped.
var ErrBufferFull = errors.New("ingestion buffer full")

// Processor applies fill readings to hubs with a fixed pool of workers.
// Readings are sharded by hub so each hub is applied by a single worker in
// arrival order.
type Processor struct {
	store  HubStore
	alerts *AlertEngine
	log    *zap.Logger

	shards []chan *FillReading

	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	mu      sync.RWMutex
	stopped bool

	metrics *MetricsTracker
}

// NewProcessor splits bufferSize evenly across workerCount shards.
func NewProcessor(store HubStore, alerts *AlertEngine, workerCount, bufferSize int, log *zap.Logger) *Processor {
	if workerCount <= 0 {
		workerCount = 1
	}
	if bufferSize <= 0 {
		bufferSize = 64
	}
	if log == nil {
		log = zap.NewNop()
	}

	perShard := bufferSize / workerCount
	if perShard < 1 {
		perShard = 1
	}
	shards := make([]chan *FillReading, workerCount)
	for i := range shards {
		shards[i] = make(chan *FillReading, perShard)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Processor{
		store:   store,
		alerts:  alerts,
		log:     log,
		shards:  shards,
		ctx:     ctx,
		cancel:  cancel,
		metrics: NewMetricsTracker(),
	}
}

func (p *Processor) Start() {
	for i := range p.shards {
		p.wg.Add(1)
		go p.worker(i)
	}
	p.log.Info("ingestion processor started", zap.Int("workers", len(p.shards)), zap.Int("buffer", cap(p.shards[0])*len(p.shards)))
}

// Stop drains queued readings and waits for the workers.
func (p *Processor) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	for _, shard := range p.shards {
		close(shard)
	}
	p.mu.Unlock()

	p.wg.Wait()
	p.cancel()
	p.log.Info("ingestion processor stopped")
}

// Submit queues a reading without blocking. A full shard drops the reading
// and counts it as failed.
func (p *Processor) Submit(reading *FillReading) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.stopped {
		return ErrStopped
	}

	select {
	case p.shardFor(reading.HubID) <- reading:
		p.metrics.Update(func(m *IngestMetrics) {
			m.MessagesReceived++
			m.BufferSize = p.queued()
		})
		return nil
	default:
		p.log.Warn("fill buffer full, dropping reading", zap.String("hub_id", reading.HubID))
		p.metrics.Update(func(m *IngestMetrics) {
			m.MessagesReceived++
			m.MessagesFailed++
		})
		return ErrBufferFull
	}
}

func (p *Processor) shardFor(hubID string) chan *FillReading {
	return p.shards[xxhash.Sum64String(hubID)%uint64(len(p.shards))]
}

func (p *Processor) queued() int {
	n := 0
	for _, shard := range p.shards {
		n += len(shard)
	}
	return n
}

func (p *Processor) worker(id int) {
	defer p.wg.Done()

	// hubs on this shard are only ever touched by this worker
	applied := make(map[string]time.Time)

	for reading := range p.shards[id] {
		if last, ok := applied[reading.HubID]; ok && reading.RecordedAt.Before(last) {
			p.log.Debug("skipping stale fill reading",
				zap.String("hub_id", reading.HubID),
				zap.Time("recorded_at", reading.RecordedAt),
				zap.Time("last_applied", last),
			)
			p.metrics.Update(func(m *IngestMetrics) {
				m.MessagesStale++
				m.BufferSize = p.queued()
			})
			continue
		}

		start := time.Now()
		if err := p.process(p.ctx, reading); err != nil {
			p.log.Warn("failed to process fill reading",
				zap.Int("worker", id),
				zap.String("hub_id", reading.HubID),
				zap.Error(err),
			)
			p.metrics.Update(func(m *IngestMetrics) {
				m.MessagesFailed++
				m.BufferSize = p.queued()
			})
			continue
		}
		applied[reading.HubID] = reading.RecordedAt

		elapsed := time.Since(start)
		p.metrics.Update(func(m *IngestMetrics) {
			m.MessagesProcessed++
			m.LastProcessedAt = time.Now().UTC()
			m.BufferSize = p.queued()
			if m.AverageProcessingTime == 0 {
				m.AverageProcessingTime = elapsed
			} else {
				m.AverageProcessingTime = (m.AverageProcessingTime + elapsed) / 2
			}
		})
	}
}

func (p *Processor) process(ctx context.Context, reading *FillReading) error {
	if err := ValidateFillReading(reading); err != nil {
		return err
	}
	hubID := uuid.MustParse(reading.HubID)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	current, err := p.store.GetByID(ctx, hubID)
	if err != nil {
		return err
	}

	var status hub.Status
	switch {
	case p.alerts.Level(reading.FillKg, current.Capacity) == LevelFull && current.Status == hub.StatusActive:
		status = hub.StatusFull
	case reading.FillKg < current.Capacity && current.Status == hub.StatusFull:
		status = hub.StatusActive
	}

	updated, err := p.store.SetFillLevel(ctx, hubID, reading.FillKg, status)
	if err != nil {
		return fmt.Errorf("store fill level: %w", err)
	}

	if alert := p.alerts.Check(updated, reading); alert != nil {
		if err := p.alerts.Raise(ctx, alert); err != nil {
			p.log.Warn("failed to publish capacity alert", zap.Error(err))
		}
		p.metrics.Update(func(m *IngestMetrics) {
			m.AlertsGenerated++
		})
	}

	return nil
}

func (p *Processor) GetMetrics() IngestMetrics {
	return p.metrics.Snapshot()
}
