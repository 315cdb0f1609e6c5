// Package pipeline orchestrates one conversion from animated source image to
// alpha-channel WebM.
//
// The steps run strictly in sequence inside a scoped workspace: extract
// frames, read per-frame delays, build and write the bounded playback
// schedule, encode. The workspace is released on every exit path, and a
// cleanup failure never overrides the conversion outcome. An advisory lock on
// the output path keeps concurrent invocations from racing on the same
// artifact.
package pipeline
