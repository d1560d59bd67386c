package session

import (
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Controller", func() {
	var (
		gate   *Coordinator
		starts atomic.Int32
		ctrl   *Controller
	)

	BeforeEach(func() {
		starts.Store(0)
		gate = NewCoordinator(0)
		ctrl = NewController(gate, func() { starts.Add(1) })
	})

	It("begins stopped with Run as the default", func() {
		Expect(ctrl.State()).To(Equal(Stopped))
		Expect(ctrl.Default()).To(Equal(ActionRun))
	})

	It("ignores Pause while stopped", func() {
		Expect(ctrl.Pause()).To(BeFalse())
		Expect(ctrl.State()).To(Equal(Stopped))
		Expect(gate.Running()).To(BeTrue())
	})

	It("starts the worker on the first Run", func() {
		Expect(ctrl.Run()).To(BeTrue())
		Expect(ctrl.State()).To(Equal(Running))
		Expect(ctrl.Default()).To(Equal(ActionPause))
		Eventually(starts.Load, time.Second).Should(BeEquivalentTo(1))
	})

	It("pauses and resumes through the coordinator without restarting", func() {
		ctrl.Run()

		Expect(ctrl.Pause()).To(BeTrue())
		Expect(ctrl.State()).To(Equal(Paused))
		Expect(ctrl.Default()).To(Equal(ActionRun))
		Expect(gate.Running()).To(BeFalse())

		Expect(ctrl.Run()).To(BeTrue())
		Expect(ctrl.State()).To(Equal(Running))
		Expect(gate.Running()).To(BeTrue())

		for i := 0; i < 5; i++ {
			ctrl.Pause()
			ctrl.Run()
		}
		Expect(ctrl.Run()).To(BeFalse())
		Eventually(starts.Load, time.Second).Should(BeEquivalentTo(1))
		Consistently(starts.Load, 50*time.Millisecond).Should(BeEquivalentTo(1))
		Expect(ctrl.Starts()).To(Equal(1))
	})

	It("presses the default action", func() {
		Expect(ctrl.Press()).To(Equal(ActionRun))
		Expect(ctrl.State()).To(Equal(Running))
		Expect(ctrl.Press()).To(Equal(ActionPause))
		Expect(ctrl.State()).To(Equal(Paused))
		Expect(ctrl.Press()).To(Equal(ActionRun))
		Expect(ctrl.State()).To(Equal(Running))
	})

	It("clears the default once finished", func() {
		ctrl.Run()
		ctrl.Finish()
		Expect(ctrl.Finished()).To(BeTrue())
		Expect(ctrl.Default()).To(Equal(ActionNone))

		ctrl.Pause()
		Expect(ctrl.Default()).To(Equal(ActionNone))
		Expect(ctrl.Press()).To(Equal(ActionNone))
		Expect(ctrl.State()).To(Equal(Paused))
	})
})
