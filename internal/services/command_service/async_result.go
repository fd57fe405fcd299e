package command_service

import (
	"context"
	"sync"
)

type ResultState int

const (
	Pending ResultState = iota
	Completed
	Failed
)

func (s ResultState) String() string {
	switch s {
	case Completed:
		return "completed"
	case Failed:
		return "failed"
	default:
		return "pending"
	}
}

// AsyncResult ячейка однократного присваивания: Pending -> Completed | Failed.
// Повторное разрешение игнорируется.
type AsyncResult struct {
	once  sync.Once
	done  chan struct{}
	mu    sync.RWMutex
	state ResultState
	value any
	err   error
}

func NewAsyncResult() *AsyncResult {
	return &AsyncResult{done: make(chan struct{})}
}

func (r *AsyncResult) Complete(value any) {
	r.resolve(Completed, value, nil)
}

func (r *AsyncResult) Fail(err error) {
	r.resolve(Failed, nil, err)
}

func (r *AsyncResult) resolve(state ResultState, value any, err error) {
	r.once.Do(func() {
		r.mu.Lock()
		r.state, r.value, r.err = state, value, err
		r.mu.Unlock()
		close(r.done)
	})
}

func (r *AsyncResult) State() ResultState {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state
}

// Done закрывается после разрешения
func (r *AsyncResult) Done() <-chan struct{} { return r.done }

// Wait блокируется до разрешения или отмены ctx
func (r *AsyncResult) Wait(ctx context.Context) (any, error) {
	select {
	case <-r.done:
		r.mu.RLock()
		defer r.mu.RUnlock()
		return r.value, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
