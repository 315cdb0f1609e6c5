// Package schedule computes and serializes bounded-duration playback
// schedules for the frame sequence extracted from an animated source.
//
// Build is a pure function: given ordered frame files, per-frame delays, and
// a duration cap, it produces a schedule under one of two policies. Cut
// truncates content to preserve original timing; Fit compresses time
// proportionally to preserve content. Write emits the schedule in the
// ffconcat demuxer format the encoder consumes.
package schedule
