// Package audio loads WAV samples as mono float64 buffers at a fixed
// analysis sample rate.
//
// Decoded buffers are cached per path and reused until the file's size or
// modification time changes. Buffers are shared between callers and must be
// treated as read-only.
package audio
