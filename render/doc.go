// Package render draws feature arrays as PNG figures: min/max envelope
// waveforms and spectrogram heatmaps with frequency axes and a colorbar.
//
// Every Render call draws into its own gg.Context, so figures never share
// pixels and a Renderer can be used from several goroutines.
package render
