package errors_test

import (
	"errors"
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	srvErrors "github.com/kubev2v/threadsched/pkg/errors"
)

var _ = Describe("Errors", func() {
	Context("SchedulerClosedError", func() {
		It("should be detected through wrapping", func() {
			err := fmt.Errorf("perform sync: %w", srvErrors.NewSchedulerClosedError("main"))

			Expect(srvErrors.IsSchedulerClosedError(err)).To(BeTrue())
			Expect(srvErrors.IsReentrantCallError(err)).To(BeFalse())
			Expect(err.Error()).To(ContainSubstring(`scheduler "main" is closed`))
		})
	})

	Context("ReentrantCallError", func() {
		It("should be detected through wrapping", func() {
			err := fmt.Errorf("perform sync: %w", srvErrors.NewReentrantCallError("main"))

			Expect(srvErrors.IsReentrantCallError(err)).To(BeTrue())
			Expect(srvErrors.IsSchedulerClosedError(err)).To(BeFalse())
		})
	})

	Context("PanicError", func() {
		It("should unwrap an error value", func() {
			cause := errors.New("boom")
			err := srvErrors.NewPanicError(cause, nil)

			Expect(srvErrors.IsPanicError(err)).To(BeTrue())
			Expect(errors.Is(err, cause)).To(BeTrue())
			Expect(err.Error()).To(Equal("worker panicked: boom"))
		})

		It("should not unwrap a non-error value", func() {
			err := srvErrors.NewPanicError("boom", nil)

			Expect(errors.Unwrap(err)).To(BeNil())
		})
	})
})
