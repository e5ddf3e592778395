package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/creasty/defaults"
	"go.uber.org/zap"

	"github.com/kubev2v/threadsched/pkg/scheduler"
)

type Configuration struct {
	Scheduler Scheduler `mapstructure:"scheduler"`
	Demo      Demo      `mapstructure:"demo"`
	LogFormat string    `mapstructure:"log-format" default:"console"`
	LogLevel  string    `mapstructure:"log-level" default:"info"`
}

type Scheduler struct {
	ThreadName       string `mapstructure:"thread-name" default:"threadsched"`
	PanicPolicy      string `mapstructure:"panic-policy" default:"recover"`
	DetectReentrancy bool   `mapstructure:"detect-reentrancy" default:"true"`
}

type Demo struct {
	Producers          int           `mapstructure:"producers" default:"4"`
	ActionsPerProducer int           `mapstructure:"actions" default:"1000"`
	Timeout            time.Duration `mapstructure:"timeout" default:"30s"`
}

// NewConfigurationWithDefaults returns a Configuration with every field set from its default tag.
func NewConfigurationWithDefaults() *Configuration {
	c := &Configuration{}
	defaults.MustSet(c)
	return c
}

func (c *Configuration) Validate() error {
	var errs []error

	if c.Scheduler.ThreadName == "" {
		errs = append(errs, errors.New("scheduler thread name is empty"))
	}
	if !scheduler.PanicPolicy(c.Scheduler.PanicPolicy).Valid() {
		errs = append(errs, fmt.Errorf("invalid panic policy %q: must be 'recover' or 'crash'", c.Scheduler.PanicPolicy))
	}
	if c.Demo.Producers <= 0 {
		errs = append(errs, fmt.Errorf("producers must be positive, got %d", c.Demo.Producers))
	}
	if c.Demo.ActionsPerProducer <= 0 {
		errs = append(errs, fmt.Errorf("actions must be positive, got %d", c.Demo.ActionsPerProducer))
	}
	if c.Demo.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("timeout must be positive, got %s", c.Demo.Timeout))
	}
	if c.LogFormat != "console" && c.LogFormat != "json" {
		errs = append(errs, fmt.Errorf("invalid log format %q: must be 'console' or 'json'", c.LogFormat))
	}

	return errors.Join(errs...)
}

// SchedulerOptions converts the scheduler section into scheduler options.
func (c *Configuration) SchedulerOptions(log *zap.SugaredLogger) []scheduler.Option {
	opts := []scheduler.Option{
		scheduler.WithPanicPolicy(scheduler.PanicPolicy(c.Scheduler.PanicPolicy)),
		scheduler.WithReentrancyCheck(c.Scheduler.DetectReentrancy),
	}
	if log != nil {
		opts = append(opts, scheduler.WithLogger(log))
	}
	return opts
}

func (c *Configuration) DebugMap() map[string]any {
	return map[string]any{
		"scheduler.thread-name":       c.Scheduler.ThreadName,
		"scheduler.panic-policy":      c.Scheduler.PanicPolicy,
		"scheduler.detect-reentrancy": c.Scheduler.DetectReentrancy,
		"demo.producers":              c.Demo.Producers,
		"demo.actions":                c.Demo.ActionsPerProducer,
		"demo.timeout":                c.Demo.Timeout.String(),
		"log-format":                  c.LogFormat,
		"log-level":                   c.LogLevel,
	}
}
