package workerpool

import (
	"ESBot/internal/adapters/metrics"
	"ESBot/internal/core/domain"
	"ESBot/internal/core/ports"
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	// ErrQueueFull is returned by Submit when the bounded queue has no room.
	ErrQueueFull = errors.New("task queue is full")
	// ErrPoolClosed is returned by Submit after Shutdown.
	ErrPoolClosed = errors.New("task pool is shut down")
)

// Options configures a Pool.
type Options struct {
	Name      string
	Workers   int
	QueueSize int
	// FailureText is sent to the chat when a task fails.
	FailureText string
}

// Pool runs fire-and-forget tasks on a fixed number of workers fed by a
// bounded queue. Every accepted task ends in exactly one reply attempt
// (success reply or failure notice) plus at most one failure notice if
// the success reply itself could not be delivered.
type Pool struct {
	opts   Options
	sender ports.ReplySender
	log    zerolog.Logger

	jobs chan ports.Task
	wg   sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

var _ ports.TaskRunner = (*Pool)(nil)

// New starts the workers immediately.
func New(opts Options, sender ports.ReplySender, baseLogger *zerolog.Logger) *Pool {
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = 1
	}

	p := &Pool{
		opts:   opts,
		sender: sender,
		log:    baseLogger.With().Str("component", "worker_pool").Str("pool", opts.Name).Logger(),
		jobs:   make(chan ports.Task, opts.QueueSize),
	}

	for w := 1; w <= opts.Workers; w++ {
		p.wg.Add(1)
		go p.worker(w)
	}

	p.log.Info().Int("workers", opts.Workers).Int("queue_size", opts.QueueSize).Msg("Worker pool started")
	return p
}

// Submit enqueues the task without blocking.
func (p *Pool) Submit(task ports.Task) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		metrics.RecordTask(p.opts.Name, "rejected", 0)
		return ErrPoolClosed
	}

	select {
	case p.jobs <- task:
		metrics.TasksQueued.WithLabelValues(p.opts.Name).Inc()
		p.log.Debug().Str("task_id", task.ID.String()).Str("task", task.Name).Int64("chat_id", task.ChatID).Msg("Task queued")
		return nil
	default:
		metrics.RecordTask(p.opts.Name, "rejected", 0)
		p.log.Warn().Str("task", task.Name).Int64("chat_id", task.ChatID).Msg("Task rejected, queue is full")
		return ErrQueueFull
	}
}

// Shutdown stops intake and waits for queued tasks to finish.
// When ctx expires first, remaining tasks are abandoned and ctx.Err() is returned.
func (p *Pool) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.jobs)
	}
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.log.Info().Msg("Worker pool drained")
		return nil
	case <-ctx.Done():
		p.log.Warn().Int("abandoned", len(p.jobs)).Msg("Worker pool shutdown timed out")
		return ctx.Err()
	}
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()

	log := p.log.With().Int("worker_id", id).Logger()
	log.Debug().Msg("Starting pool worker")

	for task := range p.jobs {
		metrics.TasksQueued.WithLabelValues(p.opts.Name).Dec()
		p.run(log, task)
	}

	log.Debug().Msg("Stopping pool worker (queue closed)")
}

// run executes one task. Tasks are not cancellable, so they get a
// background context; external calls carry their own timeouts.
func (p *Pool) run(log zerolog.Logger, task ports.Task) {
	ctx := context.Background()
	log = log.With().
		Str("task_id", task.ID.String()).
		Str("task", task.Name).
		Int64("chat_id", task.ChatID).
		Logger()

	start := time.Now()
	reply, err := p.execute(task)
	if err == nil {
		err = p.sender.Send(ctx, task.ChatID, reply)
	}
	elapsed := time.Since(start)

	if err == nil {
		metrics.RecordTask(p.opts.Name, "success", elapsed)
		log.Info().Dur("elapsed", elapsed).Msg("Task finished")
		return
	}

	metrics.RecordTask(p.opts.Name, "failed", elapsed)
	log.Error().Err(err).Str("error_kind", domain.ErrorKind(err)).Dur("elapsed", elapsed).Msg("Task failed, notifying chat")

	if notifyErr := p.sender.Send(ctx, task.ChatID, domain.TextReply(p.opts.FailureText)); notifyErr != nil {
		log.Error().Err(notifyErr).Msg("Failure notice could not be delivered, giving up")
	}
}

// execute calls the task closure, converting a panic into an error.
func (p *Pool) execute(task ports.Task) (reply domain.Reply, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("task %s panicked: %v", task.Name, r)
		}
	}()
	return task.Run(context.Background())
}
