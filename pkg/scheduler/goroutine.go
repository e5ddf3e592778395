package scheduler

import "runtime"

// goroutineID parses the current goroutine id from the stack header
// ("goroutine NNN [..."). It is only used to recognise the worker goroutine.
func goroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	var id uint64
	for i := len("goroutine "); i < n; i++ {
		if buf[i] < '0' || buf[i] > '9' {
			break
		}
		id = id*10 + uint64(buf[i]-'0')
	}
	return id
}
