// Package dispatch runs background tasks queued by request handlers. A task
// runs to completion once scheduled; terminal failures are logged, never
// surfaced to the original caller.
package dispatch

import (
	"errors"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	ErrQueueFull   = errors.New("task queue is full")
	ErrQueueClosed = errors.New("task queue is closed")
)

// Task is a named unit of background work.
type Task struct {
	Name string
	Run  func() error
}

// TaskQueue is an in-memory queue drained by a fixed set of workers.
type TaskQueue struct {
	items   chan Task
	done    chan struct{}
	workers int
	closed  bool
	mu      sync.RWMutex
	wg      sync.WaitGroup
	logger  *logrus.Logger
}

// NewTaskQueue creates a task queue with the specified buffer size and worker
// count.
func NewTaskQueue(bufferSize, workers int, logger *logrus.Logger) *TaskQueue {
	return &TaskQueue{
		items:   make(chan Task, bufferSize),
		done:    make(chan struct{}),
		workers: workers,
		logger:  logger,
	}
}

// Push schedules a task without blocking the request path.
func (q *TaskQueue) Push(task Task) error {
	q.mu.RLock()
	if q.closed {
		q.mu.RUnlock()
		return ErrQueueClosed
	}
	q.mu.RUnlock()

	select {
	case q.items <- task:
		q.logger.WithField("task", task.Name).Debug("Scheduled background task")
		return nil
	default:
		return ErrQueueFull
	}
}

// Start launches the worker goroutines.
func (q *TaskQueue) Start() {
	for i := 0; i < q.workers; i++ {
		q.wg.Add(1)
		go q.process()
	}
}

func (q *TaskQueue) process() {
	defer q.wg.Done()
	for {
		select {
		case <-q.done:
			return
		case task := <-q.items:
			q.runTask(task)
		}
	}
}

func (q *TaskQueue) runTask(task Task) {
	q.logger.WithField("task", task.Name).Info("Starting background task")
	if err := task.Run(); err != nil {
		q.logger.WithError(err).WithField("task", task.Name).Error("Background task failed")
		return
	}
	q.logger.WithField("task", task.Name).Info("Background task completed")
}

// Close stops the workers and prevents new tasks from being scheduled.
// Already-queued tasks are abandoned.
func (q *TaskQueue) Close() error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return nil
	}
	q.closed = true
	q.mu.Unlock()

	close(q.done)
	q.wg.Wait()
	return nil
}

// Len returns the current number of queued tasks.
func (q *TaskQueue) Len() int {
	return len(q.items)
}

// IsClosed returns whether the queue has been closed.
func (q *TaskQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}
