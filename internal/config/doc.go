// Package config defines the configuration structure for the threadsched CLI.
//
// Configuration is organized into logical sections (Scheduler, Demo) and is
// populated in three layers: struct tag defaults (github.com/creasty/defaults),
// then environment variables and command line flags through viper.
//
// # Configuration Structure
//
//	Configuration
//	├── Scheduler      - Worker thread settings
//	├── Demo           - Workload generated by the run command
//	├── LogFormat      - Logging format
//	└── LogLevel       - Logging verbosity
//
// # Scheduler Configuration
//
//	┌──────────────────┬───────────────┬────────────────────────────────────────┐
//	│ Field            │ Default       │ Description                            │
//	├──────────────────┼───────────────┼────────────────────────────────────────┤
//	│ ThreadName       │ "threadsched" │ Worker thread name                     │
//	│ PanicPolicy      │ "recover"     │ "recover" or "crash"                   │
//	│ DetectReentrancy │ true          │ Fail PerformSync on the worker thread  │
//	└──────────────────┴───────────────┴────────────────────────────────────────┘
//
// # Demo Configuration
//
//	┌────────────────────┬─────────┬──────────────────────────────────────────┐
//	│ Field              │ Default │ Description                              │
//	├────────────────────┼─────────┼──────────────────────────────────────────┤
//	│ Producers          │ 4       │ Goroutines submitting actions            │
//	│ ActionsPerProducer │ 1000    │ Actions submitted by each producer       │
//	│ Timeout            │ 30s     │ Upper bound for collecting the result    │
//	└────────────────────┴─────────┴──────────────────────────────────────────┘
//
// # Environment
//
// Every flag can be set through an environment variable prefixed with
// THREADSCHED_, dots and dashes replaced by underscores:
//
//	THREADSCHED_SCHEDULER_PANIC_POLICY=crash threadsched run
//
// # Debug Logging
//
// DebugMap returns a flat map suitable for structured logging:
//
//	zap.S().Infow("configuration loaded", "config", cfg.DebugMap())
package config
