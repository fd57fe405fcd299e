package command_service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

var ErrPoolClosed = errors.New("worker pool is closed")

// Pool ограниченный пул исполнителей асинхронных команд.
// Одновременно выполняется не более workers задач, остальные ждут слот.
type Pool struct {
	sem       *semaphore.Weighted
	workers   int
	mu        sync.Mutex
	closed    bool
	wg        sync.WaitGroup
	submitted atomic.Uint64
	running   atomic.Int32
}

func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	return &Pool{
		sem:     semaphore.NewWeighted(int64(workers)),
		workers: workers,
	}
}

// Submit ждет свободный слот (с учетом ctx) и запускает fn.
// Паника в fn превращается в ошибку результата.
func (p *Pool) Submit(ctx context.Context, fn func() (any, error)) (*AsyncResult, error) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil, ErrPoolClosed
	}
	p.wg.Add(1)
	p.mu.Unlock()

	if err := p.sem.Acquire(ctx, 1); err != nil {
		p.wg.Done()
		return nil, err
	}
	p.submitted.Add(1)
	p.running.Add(1)

	res := NewAsyncResult()
	go func() {
		defer p.wg.Done()
		defer p.running.Add(-1)
		defer p.sem.Release(1)
		defer func() {
			if r := recover(); r != nil {
				res.Fail(fmt.Errorf("panic in worker: %v", r))
			}
		}()

		v, err := fn()
		if err != nil {
			res.Fail(err)
			return
		}
		res.Complete(v)
	}()
	return res, nil
}

// Submitted число задач, запущенных пулом
func (p *Pool) Submitted() uint64 { return p.submitted.Load() }

func (p *Pool) Workers() int { return p.workers }

// Running число задач, которые сейчас исполняются
func (p *Pool) Running() int { return int(p.running.Load()) }

// Close запрещает новые задачи и ждет завершения текущих, но не дольше ctx.
// Если ctx истек раньше, зависшие задачи остаются работать, а Close возвращает ошибку с их числом.
func (p *Pool) Close(ctx context.Context) error {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()

	drained := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(drained)
	}()

	select {
	case <-drained:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%d worker(s) abandoned: %w", p.Running(), ctx.Err())
	}
}
