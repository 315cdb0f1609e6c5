// Package ffmpeg wraps the ffmpeg CLI invocation that renders the scheduled
// frame sequence into an alpha-preserving VP9 WebM.
//
// The concat demuxer consumes the schedule description written by the
// schedule package; the filter graph is derived from the selected output
// profile (adaptive longer-side scaling for stickers, scale-and-pad for the
// fixed emoji canvas).
package ffmpeg
