//go:build debug
// +build debug

package lens2d

import (
	"fmt"
	"sync"
)

// DebugLog prints one [DEBUG] line. Only -tags debug builds print.
func DebugLog(format string, args ...interface{}) {
	fmt.Printf("[DEBUG] "+format+"\n", args...)
}

var seenOnce sync.Map

// DebugLogOnce prints the first message logged with a given format and
// drops the rest, for conditions hit once per ray.
func DebugLogOnce(format string, args ...interface{}) {
	if _, seen := seenOnce.LoadOrStore(format, struct{}{}); !seen {
		DebugLog(format, args...)
	}
}
