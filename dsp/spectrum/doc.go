// Package spectrum provides short-time Fourier analysis for feature
// extraction.
//
// Frames follow the common audio-analysis convention: a periodic Hann
// window, centered frames with reflect padding, and one-sided spectra of
// FFTSize/2+1 bins. Matrices are returned bins-major ([bin][frame]) so
// that rows map directly onto the frequency axis of a spectrogram plot.
// FFT plans come from algo-fft; magnitude
// and power kernels come from algo-vecmath.
package spectrum
