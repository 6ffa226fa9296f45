// Package sample maps observed generator outputs to linear equations over
// the 19968 unknown state bits, and back. A mode fixes which bits of the
// tempered words are visible in one input value and how many generator
// calls that value consumes; the decoder and the forward assembly must
// mirror each other exactly for the predicted stream to line up.
package sample

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownWidth = errors.New("unsupported sample width")
	ErrSampleRange  = errors.New("sample exceeds mode width")
)

type Mode uint8

const (
	ModeUnknown Mode = iota
	ModeTop8         // top 8 bits of one tempered word
	ModeLow8         // low 8 bits of one tempered word
	ModeTop16        // top 16 bits of one tempered word
	ModeFull32       // one full tempered word
	ModeDual64       // two tempered words, low word first
)

// ParseMode resolves a sample width in bits to a mode. Width 8 is genuinely
// ambiguous between the top and low byte of a word, so the extraction rule
// is configured explicitly rather than inferred.
func ParseMode(bits int, low8 bool) (Mode, error) {
	if low8 && bits != 8 {
		return ModeUnknown, fmt.Errorf("%w: low byte extraction applies to 8-bit samples only", ErrUnknownWidth)
	}
	switch bits {
	case 8:
		if low8 {
			return ModeLow8, nil
		}
		return ModeTop8, nil
	case 16:
		return ModeTop16, nil
	case 32:
		return ModeFull32, nil
	case 64:
		return ModeDual64, nil
	default:
		return ModeUnknown, fmt.Errorf("%w: %d", ErrUnknownWidth, bits)
	}
}

func (m Mode) String() string {
	switch m {
	case ModeTop8:
		return "top8"
	case ModeLow8:
		return "low8"
	case ModeTop16:
		return "top16"
	case ModeFull32:
		return "full32"
	case ModeDual64:
		return "dual64"
	default:
		return "unknown"
	}
}

// SampleBits returns the number of observable bits one value carries.
func (m Mode) SampleBits() int {
	switch m {
	case ModeTop8, ModeLow8:
		return 8
	case ModeTop16:
		return 16
	case ModeFull32:
		return 32
	case ModeDual64:
		return 64
	default:
		return 0
	}
}

// CallsPerSample returns how many generator calls one value consumes.
func (m Mode) CallsPerSample() int {
	if m == ModeDual64 {
		return 2
	}
	return 1
}

// MaxValue returns the largest value representable in the mode.
func (m Mode) MaxValue() uint64 {
	bits := m.SampleBits()
	if bits >= 64 {
		return ^uint64(0)
	}
	return 1<<uint(bits) - 1
}

// observedBits returns the contiguous range [lo, hi] of tempered output
// bits visible in generator call c of one sample, and the sample bit the
// range starts at.
func (m Mode) observedBits(c int) (lo, hi, sampleBase int) {
	switch m {
	case ModeTop8:
		return 24, 31, 0
	case ModeLow8:
		return 0, 7, 0
	case ModeTop16:
		return 16, 31, 0
	case ModeFull32:
		return 0, 31, 0
	case ModeDual64:
		return 0, 31, c * 32
	default:
		return 0, -1, 0
	}
}

// Assemble builds one output value from the tempered words produced by
// next, applying the same combination rule the decoder assumes in reverse.
func (m Mode) Assemble(next func() uint32) uint64 {
	switch m {
	case ModeTop8:
		return uint64(next() >> 24)
	case ModeLow8:
		return uint64(next() & 0xff)
	case ModeTop16:
		return uint64(next() >> 16)
	case ModeFull32:
		return uint64(next())
	case ModeDual64:
		lo := uint64(next())
		hi := uint64(next())
		return lo | hi<<32
	default:
		return 0
	}
}
