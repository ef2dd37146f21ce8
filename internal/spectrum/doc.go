// Package spectrum implements SBC sub-band sample reconstruction.
//
// This covers dequantization of the coded sample words against their
// scale factors, and undoing the mid/side transform of joint stereo.
package spectrum
