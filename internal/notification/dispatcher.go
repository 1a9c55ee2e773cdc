package notification

import (
	"context"
	"sync"
	"time"

	"github.com/Ordones18/Ponte-Once-Store/internal/domain"
	"github.com/Ordones18/Ponte-Once-Store/pkg/logger"
	"github.com/Ordones18/Ponte-Once-Store/pkg/metrics"
)

// Dispatcher pushes emails through a small worker pool so request handlers
// never block on the gateway. Delivery is best-effort: failures are logged
// and counted, never surfaced to the operation that queued the mail.
type Dispatcher struct {
	numWorkers int
	jobQueue   chan *domain.EmailMessage
	sender     domain.EmailSender
	wg         sync.WaitGroup
	ctx        context.Context
	cancel     context.CancelFunc
	logger     logger.Logger
	started    bool
	mutex      sync.Mutex
	stats      *StatsCollector
}

func NewDispatcher(numWorkers, queueSize int, sender domain.EmailSender, logger logger.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = 1
	}
	if queueSize <= 0 {
		queueSize = 16
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Dispatcher{
		numWorkers: numWorkers,
		jobQueue:   make(chan *domain.EmailMessage, queueSize),
		sender:     sender,
		ctx:        ctx,
		cancel:     cancel,
		logger:     logger,
		stats:      NewStatsCollector(),
	}
}

func (d *Dispatcher) Start() {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.started {
		return
	}

	d.logger.Info("starting mail dispatcher", map[string]interface{}{
		"num_workers": d.numWorkers,
		"queue_size":  cap(d.jobQueue),
	})

	for i := 0; i < d.numWorkers; i++ {
		d.wg.Add(1)
		workerID := i
		go func() {
			defer d.wg.Done()
			d.worker(workerID)
		}()
	}

	d.started = true
	metrics.UpdateMailQueueStats(len(d.jobQueue), d.numWorkers)
}

// Stop drains the queue: queued mails are still delivered before workers
// exit.
func (d *Dispatcher) Stop() {
	d.mutex.Lock()
	if !d.started {
		d.mutex.Unlock()
		return
	}
	d.started = false
	d.mutex.Unlock()

	d.logger.Info("stopping mail dispatcher", map[string]interface{}{})
	close(d.jobQueue)
	d.wg.Wait()
	d.cancel()
	metrics.UpdateMailQueueStats(0, 0)
}

// Enqueue is non-blocking; when the queue is full the message is dropped
// and false is returned.
func (d *Dispatcher) Enqueue(msg *domain.EmailMessage) bool {
	d.mutex.Lock()
	if !d.started {
		d.mutex.Unlock()
		return false
	}
	d.mutex.Unlock()

	select {
	case d.jobQueue <- msg:
		d.stats.IncrementSubmitted()
		metrics.UpdateMailQueueStats(len(d.jobQueue), d.numWorkers)
		return true
	default:
		d.stats.IncrementRejected()
		d.logger.Warn("mail queue full, message dropped", map[string]interface{}{
			"to":   msg.To,
			"kind": msg.Kind,
		})
		metrics.RecordEmailDispatch(msg.Kind, "dropped")
		return false
	}
}

func (d *Dispatcher) worker(id int) {
	for msg := range d.jobQueue {
		select {
		case <-d.ctx.Done():
			return
		default:
		}

		startTime := time.Now()
		err := d.sender.Send(msg)
		elapsed := time.Since(startTime)
		metrics.UpdateMailQueueStats(len(d.jobQueue), d.numWorkers)

		if err != nil {
			d.stats.IncrementFailed()
			metrics.RecordEmailDispatch(msg.Kind, "failed")
			d.logger.Error("email delivery failed", map[string]interface{}{
				"worker_id": id,
				"to":        msg.To,
				"kind":      msg.Kind,
				"error":     err.Error(),
				"elapsed":   elapsed.String(),
			})
			continue
		}

		d.stats.IncrementCompleted()
		d.stats.RecordProcessingTime(elapsed)
		metrics.RecordEmailDispatch(msg.Kind, "sent")
		d.logger.Info("email delivered", map[string]interface{}{
			"worker_id": id,
			"to":        msg.To,
			"kind":      msg.Kind,
			"elapsed":   elapsed.String(),
		})
	}
}

func (d *Dispatcher) Stats() Stats {
	return d.stats.GetStats()
}

func (d *Dispatcher) QueueLength() int {
	return len(d.jobQueue)
}
