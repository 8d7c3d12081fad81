// Package memprobe samples the peak resident-set size of a running
// process by pid. Grounded on original_source/src/judge/runner.rs's
// get_memory_usage, translated to Go's per-OS build-tag idiom rather
// than cfg(target_os = ...).
package memprobe

// RSS returns the current resident-set size, in bytes, of the process
// identified by pid. Implementations must be safe against a pid that has
// already exited — the sampler calling this treats any error as
// transient and skips the sample (spec.md §4.4.1).
func RSS(pid int) (int64, error) {
	return rss(pid)
}
