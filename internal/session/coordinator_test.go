package session

import (
	"context"
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Coordinator", func() {
	It("starts running and passes straight through without hesitation", func() {
		c := NewCoordinator(0)
		Expect(c.Running()).To(BeTrue())
		Expect(c.Hesitate(context.Background())).To(Succeed())
	})

	It("sleeps for the hesitation delay before returning", func() {
		c := NewCoordinator(30 * time.Millisecond)
		start := time.Now()
		Expect(c.Hesitate(context.Background())).To(Succeed())
		Expect(time.Since(start)).To(BeNumerically(">=", 30*time.Millisecond))
	})

	It("holds a waiter at the gate until toggled back on", func() {
		c := NewCoordinator(0)
		c.Toggle()
		Expect(c.Running()).To(BeFalse())

		var passed atomic.Bool
		go func() {
			defer GinkgoRecover()
			Expect(c.Hesitate(context.Background())).To(Succeed())
			passed.Store(true)
		}()

		Consistently(passed.Load, 100*time.Millisecond, 10*time.Millisecond).Should(BeFalse())
		c.Toggle()
		Eventually(passed.Load, time.Second, 5*time.Millisecond).Should(BeTrue())
	})

	It("releases every waiter on resume", func() {
		c := NewCoordinator(0)
		c.Toggle()

		const waiters = 8
		var passed atomic.Int32
		for i := 0; i < waiters; i++ {
			go func() {
				defer GinkgoRecover()
				Expect(c.Hesitate(context.Background())).To(Succeed())
				passed.Add(1)
			}()
		}

		Consistently(passed.Load, 50*time.Millisecond, 10*time.Millisecond).Should(BeZero())
		c.Toggle()
		Eventually(passed.Load, time.Second, 5*time.Millisecond).Should(BeEquivalentTo(waiters))
	})

	It("stays closed after an odd number of toggles", func() {
		c := NewCoordinator(0)
		c.Toggle()
		c.Toggle()
		c.Toggle()
		Expect(c.Running()).To(BeFalse())

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()
		Expect(c.Hesitate(ctx)).To(MatchError(context.DeadlineExceeded))
	})

	It("aborts a paused wait when the context is cancelled", func() {
		c := NewCoordinator(0)
		c.Toggle()

		ctx, cancel := context.WithCancel(context.Background())
		errc := make(chan error, 1)
		go func() { errc <- c.Hesitate(ctx) }()

		cancel()
		Eventually(errc, time.Second).Should(Receive(MatchError(context.Canceled)))
	})

	It("aborts the hesitation sleep when the context is cancelled", func() {
		c := NewCoordinator(time.Hour)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		Expect(c.Hesitate(ctx)).To(MatchError(context.Canceled))
	})
})
