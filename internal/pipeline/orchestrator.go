package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dgallion1/pagetoc/internal/page"
)

var (
	// ErrQueueFull is returned by Submit when the queue has no free slot.
	ErrQueueFull = errors.New("job queue is full")
	// ErrStopped is returned by Submit once Stop has been called.
	ErrStopped = errors.New("pipeline is stopped")
)

// Orchestrator runs render jobs on a fixed pool of workers.
type Orchestrator struct {
	jobs     *JobStore
	queue    chan *Job
	worker   *Worker
	log      *slog.Logger
	workers  int
	queueCap int

	cancel context.CancelFunc
	wg     sync.WaitGroup

	// mu guards stopped and the close of queue.
	mu      sync.Mutex
	stopped bool
}

// Settings sizes the pool.
type Settings struct {
	WorkerCount  int
	MaxQueueSize int
	JobTTL       time.Duration
}

// NewOrchestrator creates the pipeline. Call Start to launch workers.
func NewOrchestrator(s Settings, opts page.Options, log *slog.Logger) *Orchestrator {
	return &Orchestrator{
		jobs:     NewJobStore(s.JobTTL),
		queue:    make(chan *Job, s.MaxQueueSize),
		worker:   NewWorker(opts, log),
		log:      log,
		workers:  s.WorkerCount,
		queueCap: s.MaxQueueSize,
	}
}

// Start launches worker goroutines.
func (o *Orchestrator) Start(ctx context.Context) {
	workerCtx, cancel := context.WithCancel(ctx)
	o.cancel = cancel

	for range o.workers {
		o.wg.Add(1)
		go func() {
			defer o.wg.Done()
			for {
				select {
				case <-workerCtx.Done():
					return
				case job, ok := <-o.queue:
					if !ok {
						return
					}
					o.worker.Process(workerCtx, job)
				}
			}
		}()
	}

	// Start job store cleanup.
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-workerCtx.Done():
				return
			case <-ticker.C:
				o.jobs.Cleanup()
			}
		}
	}()

	o.log.Info("pipeline started", "workers", o.workers, "queue", o.queueCap)
}

// Stop gracefully shuts down the pipeline. Later calls are no-ops, and
// Submit fails with ErrStopped afterwards.
func (o *Orchestrator) Stop() {
	o.mu.Lock()
	if o.stopped {
		o.mu.Unlock()
		return
	}
	o.stopped = true
	close(o.queue)
	o.mu.Unlock()

	if o.cancel != nil {
		o.cancel()
	}
	o.wg.Wait()
}

// Submit queues a new job for processing.
func (o *Orchestrator) Submit(job *Job) error {
	o.jobs.Put(job)

	o.mu.Lock()
	defer o.mu.Unlock()
	if o.stopped {
		job.Fail("queued", ErrStopped)
		return ErrStopped
	}
	select {
	case o.queue <- job:
		return nil
	default:
		job.Fail("queued", ErrQueueFull)
		return fmt.Errorf("%w (%d)", ErrQueueFull, o.queueCap)
	}
}

// GetJob returns a job by ID.
func (o *Orchestrator) GetJob(id string) *Job {
	return o.jobs.Get(id)
}

// QueueDepth returns current queue depth.
func (o *Orchestrator) QueueDepth() int {
	return len(o.queue)
}
