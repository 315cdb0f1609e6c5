// Package toolrun supervises external tool processes on behalf of the
// conversion pipeline.
//
// It owns the lifecycle of one child process per call: output streams are
// drained concurrently into memory while the supervisor waits, cancellation
// kills the whole process group before the context error is surfaced, and
// failures distinguish "could not start" from "ran and exited non-zero".
//
// The Runner interface is the seam the tool clients depend on; tests inject
// stub runners instead of spawning real processes.
package toolrun
