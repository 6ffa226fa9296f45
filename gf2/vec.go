// Package gf2 provides packed bit vectors and an incremental echelon basis
// for linear systems over GF(2). Rows are []uint64 so that reduction runs
// word-parallel; elimination order is the canonical lowest-column leading
// bit, keeping results reproducible regardless of insertion order effects.
package gf2

import "math/bits"

const wordBits = 64

// Vec is a packed bit vector. Bit i lives in word i/64 at position i%64.
type Vec []uint64

// NewVec returns a zero vector holding n bits.
func NewVec(n int) Vec {
	return make(Vec, (n+wordBits-1)/wordBits)
}

func (v Vec) Clone() Vec {
	c := make(Vec, len(v))
	copy(c, v)
	return c
}

func (v Vec) Bit(i int) uint64 {
	return v[i/wordBits] >> uint(i%wordBits) & 1
}

func (v Vec) Set(i int) {
	v[i/wordBits] |= 1 << uint(i%wordBits)
}

func (v Vec) Flip(i int) {
	v[i/wordBits] ^= 1 << uint(i%wordBits)
}

// Xor folds u into v. A shorter operand only touches the low words, so
// coefficient-only rows can be folded into augmented rows directly.
func (v Vec) Xor(u Vec) {
	n := len(u)
	if len(v) < n {
		n = len(v)
	}
	for i := 0; i < n; i++ {
		v[i] ^= u[i]
	}
}

// FirstSet returns the lowest set bit index, or -1 for the zero vector.
func (v Vec) FirstSet() int {
	for i, w := range v {
		if w != 0 {
			return i*wordBits + bits.TrailingZeros64(w)
		}
	}
	return -1
}

// AndParity returns the parity of the bitwise AND of v and u.
func (v Vec) AndParity(u Vec) uint64 {
	n := len(u)
	if len(v) < n {
		n = len(v)
	}
	var acc uint64
	for i := 0; i < n; i++ {
		acc ^= v[i] & u[i]
	}
	return uint64(bits.OnesCount64(acc)) & 1
}

func (v Vec) IsZero() bool {
	for _, w := range v {
		if w != 0 {
			return false
		}
	}
	return true
}
