//go:build !linux

package scheduler

// Thread names are only applied on Linux.
func setThreadName(string) error { return nil }

func threadID() int { return 0 }
