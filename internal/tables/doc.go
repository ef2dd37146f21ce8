// Package tables contains the constant tables used for SBC decoding.
//
// This includes the sampling frequency table, the loudness allocation
// offsets, and the fixed-point cosine and prototype filter coefficients
// of the synthesis filter bank. All values are precomputed; nothing is
// derived at decode time.
package tables
