package pipeline

// RunStats tracks aggregate counters across a batch run. Per-file failures
// and skips are informational: they never change the process exit code.
type RunStats struct {
	Total     int // files discovered
	Current   int // 1-based index of the file being processed
	Processed int // watermarked and written (or planned, in dry-run)
	Skipped   int // zero-width watermark skips
	Failed    int // unreadable, undecodable, or unwritable files
}
