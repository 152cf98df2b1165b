package dispatch

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestNewTaskQueue(t *testing.T) {
	q := NewTaskQueue(10, 2, logrus.New())
	assert.NotNil(t, q)
	assert.False(t, q.IsClosed())
	assert.Equal(t, 0, q.Len())
}

func TestTaskQueue_Push(t *testing.T) {
	q := NewTaskQueue(2, 1, logrus.New())

	noop := Task{Name: "noop", Run: func() error { return nil }}

	// Successful push (workers not started, items stay queued)
	assert.NoError(t, q.Push(noop))
	assert.Equal(t, 1, q.Len())

	// Queue full
	assert.NoError(t, q.Push(noop))
	assert.Equal(t, ErrQueueFull, q.Push(noop))

	// Closed queue
	q.Close()
	assert.Equal(t, ErrQueueClosed, q.Push(noop))
}

func TestTaskQueue_RunsTasks(t *testing.T) {
	q := NewTaskQueue(10, 2, logrus.New())
	q.Start()
	defer q.Close()

	var mu sync.Mutex
	var ran []string
	var wg sync.WaitGroup

	for _, name := range []string{"a", "b", "c"} {
		wg.Add(1)
		name := name
		err := q.Push(Task{Name: name, Run: func() error {
			mu.Lock()
			ran = append(ran, name)
			mu.Unlock()
			wg.Done()
			return nil
		}})
		assert.NoError(t, err)
	}

	wg.Wait()
	mu.Lock()
	assert.ElementsMatch(t, []string{"a", "b", "c"}, ran)
	mu.Unlock()
}

func TestTaskQueue_FailedTaskDoesNotStopWorkers(t *testing.T) {
	q := NewTaskQueue(10, 1, logrus.New())
	q.Start()
	defer q.Close()

	var wg sync.WaitGroup
	wg.Add(2)

	assert.NoError(t, q.Push(Task{Name: "failing", Run: func() error {
		defer wg.Done()
		return errors.New("upstream exploded")
	}}))

	ok := false
	assert.NoError(t, q.Push(Task{Name: "after", Run: func() error {
		defer wg.Done()
		ok = true
		return nil
	}}))

	wg.Wait()
	time.Sleep(10 * time.Millisecond)
	assert.True(t, ok)
}

func TestTaskQueue_Close(t *testing.T) {
	q := NewTaskQueue(10, 2, logrus.New())
	q.Start()

	assert.NoError(t, q.Close())
	assert.True(t, q.IsClosed())

	// Second close is a no-op
	assert.NoError(t, q.Close())
}
