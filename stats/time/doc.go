// Package time summarizes waveforms for display: level statistics for
// figure captions and min/max envelopes for drawing long signals at a
// fixed pixel width.
package time
