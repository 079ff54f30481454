package waiter

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"
)

type WaitFunc func(ctx context.Context) error

// Waiter runs the registered functions until the first one fails, the parent
// context is cancelled or one of the configured signals arrives.
type Waiter interface {
	Add(fns ...WaitFunc)
	Wait() error
	Context() context.Context
	CancelFunc() context.CancelFunc
}

type waiterCfg struct {
	signals []os.Signal
}

type waiter struct {
	ctx       context.Context
	cancelFn  context.CancelFunc
	stopFn    context.CancelFunc
	waitFuncs []WaitFunc
}

func NewWaiter(ctx context.Context, cancelFn context.CancelFunc, options ...Option) Waiter {
	cfg := &waiterCfg{
		signals: []os.Signal{os.Interrupt, syscall.SIGTERM},
	}
	for _, option := range options {
		option(cfg)
	}

	w := &waiter{
		ctx:      ctx,
		cancelFn: cancelFn,
		stopFn:   func() {},
	}
	if len(cfg.signals) > 0 {
		w.ctx, w.stopFn = signal.NotifyContext(ctx, cfg.signals...)
	}

	return w
}

func (w *waiter) Add(fns ...WaitFunc) {
	w.waitFuncs = append(w.waitFuncs, fns...)
}

func (w *waiter) Wait() error {
	defer w.stopFn()

	group, gCtx := errgroup.WithContext(w.ctx)
	group.Go(func() error {
		<-gCtx.Done()
		w.cancelFn()
		return nil
	})

	for _, fn := range w.waitFuncs {
		waitFunc := fn
		group.Go(func() error { return waitFunc(gCtx) })
	}

	return group.Wait()
}

func (w *waiter) Context() context.Context {
	return w.ctx
}

func (w *waiter) CancelFunc() context.CancelFunc {
	return w.cancelFn
}
