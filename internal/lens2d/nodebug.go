//go:build !debug
// +build !debug

package lens2d

func DebugLog(format string, args ...interface{}) {}

func DebugLogOnce(format string, args ...interface{}) {}
