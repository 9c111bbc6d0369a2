// Package pipeline orchestrates the watermarking run: file discovery under
// the source root, sequential per-file compositing, mirrored output
// writing, and batch summary reporting. Per-file failures are logged and
// counted but never abort the run; only cancellation stops it early.
package pipeline
