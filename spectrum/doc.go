// Package spectrum conditions measured one-dimensional spectra before
// peak fitting.
//
// Measured absorbance and reflectance curves usually carry broadband
// noise and a slowly varying baseline that bias a least-squares peak
// fit. The package provides zero-phase FFT smoothing with a Gaussian
// low-pass transfer, baseline estimation and removal, and a
// high-frequency noise estimate that is a reasonable absolute
// tolerance for package fit.
//
// All functions assume uniformly spaced samples; cutoffs are given as
// a fraction of the Nyquist frequency.
package spectrum
