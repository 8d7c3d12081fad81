//go:build !linux && !windows

package memprobe

import "fmt"

// rss is unsupported on this platform (spec.md §4.4.1).
func rss(pid int) (int64, error) {
	return 0, fmt.Errorf("memory probing is not supported on this platform")
}
