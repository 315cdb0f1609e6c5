// Package magick wraps the ImageMagick CLI for frame extraction and frame
// timing queries against an animated source image.
//
// Extraction coalesces delta frames into standalone composited images so each
// extracted file renders correctly on its own. Timing queries read the
// per-frame delay tokens (centiseconds) the format stores and normalize them
// to bounded seconds.
package magick
