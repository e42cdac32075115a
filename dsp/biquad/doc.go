// Package biquad implements second-order IIR filter sections with RBJ
// cookbook design formulas. Sections carry their own delay line so they can
// filter streamed blocks without discontinuities.
package biquad
