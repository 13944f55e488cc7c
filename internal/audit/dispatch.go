package audit

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Task is one post-response side effect.
type Task struct {
	Name string
	Run  func(ctx context.Context) error
}

// Dispatcher runs post-response task lists as unordered parallel groups.
// Task failures are logged and dropped; one failing task never blocks or
// cancels the others.
type Dispatcher struct {
	timeout time.Duration
	wg      sync.WaitGroup
}

// NewDispatcher creates a dispatcher with a 30s per-group delivery window.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{timeout: 30 * time.Second}
}

// Go schedules the tasks on a detached context and returns immediately.
// The primary response is never held up by sink delivery.
func (d *Dispatcher) Go(tasks []Task) {
	if len(tasks) == 0 {
		return
	}
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()
		d.run(ctx, tasks)
	}()
}

func (d *Dispatcher) run(ctx context.Context, tasks []Task) {
	g, ctx := errgroup.WithContext(ctx)
	for _, task := range tasks {
		g.Go(func() error {
			if err := task.Run(ctx); err != nil {
				zap.L().Warn("audit: sink delivery failed",
					zap.String("sink", task.Name),
					zap.Error(err),
				)
			}
			// Failures are dropped so sibling tasks keep running.
			return nil
		})
	}
	g.Wait() //nolint:errcheck
}

// Wait blocks until every scheduled task group has finished. Used on
// shutdown and in tests.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
