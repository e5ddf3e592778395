//go:build linux

package scheduler_test

import (
	"fmt"
	"os"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"
	"golang.org/x/sys/unix"

	"github.com/kubev2v/threadsched/pkg/scheduler"
)

func threadName(tid int) string {
	b, err := os.ReadFile(fmt.Sprintf("/proc/self/task/%d/comm", tid))
	Expect(err).NotTo(HaveOccurred())
	return strings.TrimSpace(string(b))
}

var _ = Describe("Worker thread", func() {
	It("should run every action on one named OS thread", func() {
		s := scheduler.NewScheduler("sched-named", scheduler.WithLogger(zap.NewNop().Sugar()))
		defer s.Close()

		first, err := scheduler.PerformSync(s, unix.Gettid)
		Expect(err).NotTo(HaveOccurred())
		second, err := scheduler.PerformSync(s, unix.Gettid)
		Expect(err).NotTo(HaveOccurred())

		Expect(second).To(Equal(first))
		Expect(first).NotTo(Equal(unix.Gettid()))
		Expect(threadName(first)).To(Equal("sched-named"))
	})

	It("should truncate long thread names to the kernel limit", func() {
		s := scheduler.NewScheduler("a-very-long-thread-name", scheduler.WithLogger(zap.NewNop().Sugar()))
		defer s.Close()

		tid, err := scheduler.PerformSync(s, unix.Gettid)
		Expect(err).NotTo(HaveOccurred())

		Expect(threadName(tid)).To(Equal("a-very-long-thr"))
		Expect(s.Name()).To(Equal("a-very-long-thread-name"))
	})

	It("should not split a multi-byte character when truncating", func() {
		s := scheduler.NewScheduler("ééééééééé", scheduler.WithLogger(zap.NewNop().Sugar()))
		defer s.Close()

		tid, err := scheduler.PerformSync(s, unix.Gettid)
		Expect(err).NotTo(HaveOccurred())

		Expect(threadName(tid)).To(Equal("ééééééé"))
	})
})
