// Package dashboard lays out the per-class figure grid and serves it over
// HTTP. Each grid cell is produced independently: a file that fails to
// load, extract or render marks only its own cell as failed.
package dashboard
