package worker

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Pool is a bounded work queue drained by a fixed set of workers. Bulk resume
// ingestion runs through it instead of spawning detached goroutines per file.
type Pool struct {
	tasks  chan func()
	group  *errgroup.Group
	logger *zap.Logger

	mu     sync.Mutex
	closed bool
}

func NewPool(workers, queueSize int, logger *zap.Logger) *Pool {
	if workers <= 0 {
		workers = 4
	}
	if queueSize <= 0 {
		queueSize = 64
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	p := &Pool{
		tasks:  make(chan func(), queueSize),
		group:  &errgroup.Group{},
		logger: logger,
	}
	for i := 0; i < workers; i++ {
		p.group.Go(p.run)
	}
	return p
}

func (p *Pool) run() error {
	for task := range p.tasks {
		p.runTask(task)
	}
	return nil
}

func (p *Pool) runTask(task func()) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("worker task panicked", zap.Any("panic", r))
		}
	}()
	task()
}

// Submit enqueues a task, blocking when the queue is full. It fails only
// after Stop. The lock is held across the send so Stop cannot close the
// queue under an in-flight submit.
func (p *Pool) Submit(task func()) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return fmt.Errorf("worker pool is stopped")
	}
	p.tasks <- task
	return nil
}

// Stop closes the queue and waits for in-flight tasks to finish.
func (p *Pool) Stop() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	p.mu.Unlock()

	close(p.tasks)
	_ = p.group.Wait()
}
