package logger_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/kubev2v/threadsched/internal/logger"
)

var _ = Describe("Logger", func() {
	It("should build a json logger at the requested level", func() {
		l, err := logger.New("json", "warn")

		Expect(err).NotTo(HaveOccurred())
		Expect(l.Core().Enabled(zapcore.WarnLevel)).To(BeTrue())
		Expect(l.Core().Enabled(zapcore.InfoLevel)).To(BeFalse())
	})

	It("should build a console logger", func() {
		l, err := logger.New("console", "debug")

		Expect(err).NotTo(HaveOccurred())
		Expect(l.Core().Enabled(zapcore.DebugLevel)).To(BeTrue())
	})

	It("should reject an unknown format", func() {
		_, err := logger.New("xml", "info")

		Expect(err).To(MatchError(ContainSubstring("unknown log format")))
	})

	It("should reject an unknown level", func() {
		_, err := logger.New("json", "loud")

		Expect(err).To(HaveOccurred())
	})

	It("should install and restore the global logger", func() {
		before := zap.L()

		undo, err := logger.Setup("json", "error")
		Expect(err).NotTo(HaveOccurred())
		Expect(zap.L()).NotTo(BeIdenticalTo(before))

		undo()
		Expect(zap.L()).To(BeIdenticalTo(before))
	})
})
