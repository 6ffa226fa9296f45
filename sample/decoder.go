package sample

import (
	"fmt"

	"github.com/CherryDT/fast-linear-predictor/gf2"
	"github.com/CherryDT/fast-linear-predictor/mt"
)

// Decoder turns observed values into equations over the bits of the state
// at the first observed call. It keeps one symbolic row per state bit: the
// expansion of that bit of the current epoch's state in terms of the
// initial unknowns. Because the twist recurrence is GF(2)-linear, rolling
// the symbolic rows through an epoch boundary keeps every later output
// expressible over the same 19968 unknowns, so samples far beyond the
// first epoch still contribute usable equations.
type Decoder struct {
	mode  Mode
	sym   [][mt.WordBits]gf2.Vec
	calls uint64
}

func NewDecoder(mode Mode) *Decoder {
	d := &Decoder{
		mode: mode,
		sym:  make([][mt.WordBits]gf2.Vec, mt.StateWords),
	}
	for w := range d.sym {
		for b := range d.sym[w] {
			v := gf2.NewVec(mt.StateBits)
			v.Set(w*mt.WordBits + b)
			d.sym[w][b] = v
		}
	}
	return d
}

// Calls returns the number of generator calls decoded so far.
func (d *Decoder) Calls() uint64 {
	return d.calls
}

// Decode emits one augmented equation (coefficients over the initial state
// bits, right-hand side at index mt.StateBits) per observable bit of the
// value, advancing the call index by the mode's calls per sample. The
// symbolic state is twisted whenever the call index crosses an epoch
// boundary, exactly when the true generator refills.
func (d *Decoder) Decode(value uint64, emit func(gf2.Vec) error) error {
	if value > d.mode.MaxValue() {
		return fmt.Errorf("%w: %d > %d", ErrSampleRange, value, d.mode.MaxValue())
	}
	for c := 0; c < d.mode.CallsPerSample(); c++ {
		pos := int(d.calls % mt.StateWords)
		if pos == 0 && d.calls > 0 {
			d.twist()
		}
		lo, hi, base := d.mode.observedBits(c)
		for j := lo; j <= hi; j++ {
			eq := gf2.NewVec(mt.StateBits + 1)
			mask := mt.TemperMask(j)
			for b := 0; b < mt.WordBits; b++ {
				if mask>>uint(b)&1 == 1 {
					eq.Xor(d.sym[pos][b])
				}
			}
			if value>>uint(base+j-lo)&1 == 1 {
				eq.Set(mt.StateBits)
			}
			if err := emit(eq); err != nil {
				return err
			}
		}
		d.calls++
	}
	return nil
}

// twist applies the generator recurrence to the symbolic rows, in the same
// in-place order as the numeric reference: words below the offset read the
// old far word, words above read the already-rebuilt one.
func (d *Decoder) twist() {
	for kk := 0; kk < mt.StateWords; kk++ {
		next := (kk + 1) % mt.StateWords
		far := (kk + mt.TwistOffset) % mt.StateWords
		low := d.sym[next][0]
		var out [mt.WordBits]gf2.Vec
		for j := 0; j < mt.WordBits; j++ {
			v := d.sym[far][j].Clone()
			// Bit j of the shifted combined value is bit j+1 of the
			// combination: low 31 bits from the next word, bit 31 from
			// this word's own top bit.
			switch {
			case j < mt.WordBits-2:
				v.Xor(d.sym[next][j+1])
			case j == mt.WordBits-2:
				v.Xor(d.sym[kk][mt.WordBits-1])
			}
			if mt.MatrixA>>uint(j)&1 == 1 {
				v.Xor(low)
			}
			out[j] = v
		}
		d.sym[kk] = out
	}
}
