// Package resample provides rational sample-rate conversion using polyphase
// FIR filtering with anti-aliasing defaults.
//
// Conversion is offline: a whole signal goes in and a signal of
// ceil(len*up/down) samples comes out, time-aligned with the input (the
// prototype filter's group delay is removed). The same input always yields
// bit-identical output.
//
// Quality modes:
//   - QualityFast: lower CPU, lower attenuation
//   - QualityBalanced: default mode
//   - QualityBest: higher attenuation and flatter passband
//
// Default quality/performance matrix:
//
//	mode            taps/phase   nominal stopband
//	QualityFast     16           ~55 dB
//	QualityBalanced 32           ~75 dB
//	QualityBest     64           ~90 dB
package resample
