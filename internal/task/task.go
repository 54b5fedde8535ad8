package task

import (
	"context"

	"github.com/google/uuid"
)

// Task type constants
const (
	// TaskTypeWordPoolRefill represents a background refill of one theme's word pool
	TaskTypeWordPoolRefill = "word_pool_refill"
)

// Task represents a unit of background work to be processed
type Task interface {
	// ID returns the task's unique identifier
	ID() uuid.UUID

	// Type returns the task type identifier
	Type() string

	// Execute runs the task logic. The context is cancelled when the worker pool stops.
	Execute(ctx context.Context) error
}

// TaskQueueReader provides read-only access to the task channel
// allowing workers to consume tasks without the ability to enqueue
type TaskQueueReader interface {
	// GetChannel returns a read-only channel for consuming tasks
	GetChannel() <-chan Task
}

// TaskQueueWriter provides write access to the task queue
// allowing services to enqueue tasks for processing
type TaskQueueWriter interface {
	// Enqueue adds a task to the queue for processing
	// Returns an error if the queue is full or closed
	Enqueue(task Task) error

	// Close closes the task queue, preventing further task submission
	Close()
}

// Discarder is implemented by tasks that must release resources when they are
// dropped without being executed, for example when the worker pool stops.
type Discarder interface {
	Discard()
}

// Func adapts a function to the Task interface.
type Func struct {
	id        uuid.UUID
	taskType  string
	fn        func(ctx context.Context) error
	onDiscard func()
}

// NewFunc creates a Task with a fresh ID that runs fn.
func NewFunc(taskType string, fn func(ctx context.Context) error) *Func {
	return &Func{
		id:       uuid.New(),
		taskType: taskType,
		fn:       fn,
	}
}

// ID returns the task's unique identifier
func (t *Func) ID() uuid.UUID {
	return t.id
}

// Type returns the task type identifier
func (t *Func) Type() string {
	return t.taskType
}

// Execute runs the wrapped function
func (t *Func) Execute(ctx context.Context) error {
	return t.fn(ctx)
}

// OnDiscard registers fn to run if the task is dropped unexecuted.
func (t *Func) OnDiscard(fn func()) *Func {
	t.onDiscard = fn
	return t
}

// Discard implements Discarder.
func (t *Func) Discard() {
	if t.onDiscard != nil {
		t.onDiscard()
	}
}
