//go:build linux

package scheduler

import (
	"unicode/utf8"
	"unsafe"

	"golang.org/x/sys/unix"
)

// maxThreadNameLen is the kernel limit for a thread name, without the trailing NUL.
const maxThreadNameLen = 15

// truncateThreadName cuts name to the kernel limit without splitting a UTF-8 sequence.
func truncateThreadName(name string) string {
	if len(name) <= maxThreadNameLen {
		return name
	}
	n := maxThreadNameLen
	for n > 0 && !utf8.RuneStart(name[n]) {
		n--
	}
	return name[:n]
}

// setThreadName names the calling OS thread. The caller must hold runtime.LockOSThread.
func setThreadName(name string) error {
	p, err := unix.BytePtrFromString(truncateThreadName(name))
	if err != nil {
		return err
	}
	return unix.Prctl(unix.PR_SET_NAME, uintptr(unsafe.Pointer(p)), 0, 0, 0)
}

func threadID() int {
	return unix.Gettid()
}
