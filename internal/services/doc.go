// Package services defines shared utilities consumed by the conversion
// pipeline and the external tool integrations.
//
// Key responsibilities:
//   - Structured error markers plus the Wrap helper that keep failure
//     classification (tool failure vs unusable input vs cancellation)
//     uniform across the pipeline.
//   - Context helpers that stamp conversion identifiers and stage names for
//     logging.
//
// Use these helpers when wiring new pipeline steps so operational behaviour
// stays consistent.
package services
