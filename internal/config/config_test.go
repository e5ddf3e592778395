package config_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/kubev2v/threadsched/internal/config"
)

var _ = Describe("Configuration", func() {
	Context("NewConfigurationWithDefaults", func() {
		It("should populate every default", func() {
			cfg := config.NewConfigurationWithDefaults()

			Expect(cfg.Scheduler.ThreadName).To(Equal("threadsched"))
			Expect(cfg.Scheduler.PanicPolicy).To(Equal("recover"))
			Expect(cfg.Scheduler.DetectReentrancy).To(BeTrue())
			Expect(cfg.Demo.Producers).To(Equal(4))
			Expect(cfg.Demo.ActionsPerProducer).To(Equal(1000))
			Expect(cfg.Demo.Timeout).To(Equal(30 * time.Second))
			Expect(cfg.LogFormat).To(Equal("console"))
			Expect(cfg.LogLevel).To(Equal("info"))
			Expect(cfg.Validate()).To(Succeed())
		})
	})

	Context("Validate", func() {
		var cfg *config.Configuration

		BeforeEach(func() {
			cfg = config.NewConfigurationWithDefaults()
		})

		It("should reject an unknown panic policy", func() {
			cfg.Scheduler.PanicPolicy = "ignore"

			Expect(cfg.Validate()).To(MatchError(ContainSubstring("invalid panic policy")))
		})

		It("should reject non positive counts", func() {
			cfg.Demo.Producers = 0
			cfg.Demo.ActionsPerProducer = -1

			err := cfg.Validate()
			Expect(err).To(MatchError(ContainSubstring("producers must be positive")))
			Expect(err).To(MatchError(ContainSubstring("actions must be positive")))
		})

		It("should reject an empty thread name", func() {
			cfg.Scheduler.ThreadName = ""

			Expect(cfg.Validate()).To(MatchError(ContainSubstring("thread name is empty")))
		})

		It("should reject an unknown log format", func() {
			cfg.LogFormat = "xml"

			Expect(cfg.Validate()).To(HaveOccurred())
		})
	})

	Context("SchedulerOptions", func() {
		It("should build options accepted by the scheduler", func() {
			cfg := config.NewConfigurationWithDefaults()

			opts := cfg.SchedulerOptions(zap.NewNop().Sugar())

			Expect(opts).To(HaveLen(3))
		})

		It("should omit the logger option without a logger", func() {
			cfg := config.NewConfigurationWithDefaults()

			Expect(cfg.SchedulerOptions(nil)).To(HaveLen(2))
		})
	})

	Context("DebugMap", func() {
		It("should expose the effective values", func() {
			cfg := config.NewConfigurationWithDefaults()

			m := cfg.DebugMap()

			Expect(m).To(HaveKeyWithValue("scheduler.thread-name", "threadsched"))
			Expect(m).To(HaveKeyWithValue("demo.timeout", "30s"))
		})
	})
})
