package notify

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Async runs each notification on its own goroutine, detached from the
// request, under a fixed timeout. At most maxInFlight calls run at once;
// further calls are dropped and logged.
type Async struct {
	notifier Notifier
	timeout  time.Duration
	logger   *logrus.Logger
	slots    chan struct{}
	wg       sync.WaitGroup
}

func NewAsync(n Notifier, timeout time.Duration, maxInFlight int, logger *logrus.Logger) *Async {
	if maxInFlight <= 0 {
		maxInFlight = 1
	}
	return &Async{
		notifier: n,
		timeout:  timeout,
		logger:   logger,
		slots:    make(chan struct{}, maxInFlight),
	}
}

// Send returns immediately. It reports whether the call was scheduled.
func (a *Async) Send(email string) bool {
	select {
	case a.slots <- struct{}{}:
	default:
		a.logger.WithField("email", email).Warn("welcome notification dropped: too many in flight")
		return false
	}

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		defer func() { <-a.slots }()

		ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
		defer cancel()

		if err := a.notifier.Notify(ctx, email); err != nil {
			a.logger.WithError(err).WithField("email", email).Warn("welcome notification failed")
			return
		}
		a.logger.WithField("email", email).Debug("welcome notification sent")
	}()
	return true
}

// Wait blocks until in-flight notifications finish or ctx is done.
func (a *Async) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		a.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
