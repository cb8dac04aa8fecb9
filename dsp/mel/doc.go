// Package mel provides the Slaney mel scale, mel filterbanks and the
// DCT-II basis used to derive MFCCs from STFT power spectra.
//
// Matrices follow the [row][frame] layout of package spectrum: a filterbank
// maps a [bin][frame] power matrix to a [band][frame] mel spectrogram, and
// the DCT maps a [band][frame] dB matrix to [coefficient][frame].
package mel
