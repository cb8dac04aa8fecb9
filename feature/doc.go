// Package feature turns decoded audio into the matrices the dashboard
// plots: waveforms, dB-scaled STFT magnitudes, mel spectrograms and MFCCs.
//
// Spectral arrays are laid out [row][frame], where rows are frequency bins,
// mel bands or cepstral coefficients depending on the Mode.
package feature
