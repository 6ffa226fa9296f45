// Package predictor drives the full recovery pipeline: decode samples into
// equations, accumulate them until the state is determined, solve, then
// replay the generator forward in the same encoding the samples arrived
// in. The predictor never restarts the generator; prediction resumes at
// the exact call index where sample consumption stopped.
package predictor

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/CherryDT/fast-linear-predictor/gf2"
	"github.com/CherryDT/fast-linear-predictor/mt"
	"github.com/CherryDT/fast-linear-predictor/sample"
)

var (
	ErrInsufficientSamples = errors.New("insufficient samples")
	ErrInsufficientRank    = errors.New("insufficient rank")
)

// inertBits counts the leading state columns that never carry into the
// next epoch (the low 31 bits of word 0). They stay zero in the solution
// when the samples do not pin them, which cannot affect any prediction
// made past the first twist boundary.
const inertBits = mt.StateBits - mt.CarryBits

type Config struct {
	Mode   sample.Mode
	Logger func(...any) // nil disables progress logging
}

// Recovery is the outcome of a successful state reconstruction.
type Recovery struct {
	Mode      sample.Mode
	Initial   *mt.State // epoch-aligned state at the first observed call
	Calls     uint64    // generator calls the observed stream consumed
	Rank      int
	Equations int
}

// MinSamples returns the smallest accepted input length for a mode: the
// observed bit volume must strictly exceed twice the state size.
func MinSamples(mode sample.Mode) int {
	return 2*mt.StateBits/mode.SampleBits() + 1
}

// Recover reconstructs the generator state consistent with values. Samples
// beyond the point where the state is fully determined are not decoded;
// only their call consumption counts toward where prediction resumes.
func Recover(cfg *Config, values []uint64) (*Recovery, error) {
	mode := cfg.Mode
	if need := MinSamples(mode); len(values) < need {
		return nil, fmt.Errorf("%w: mode %s needs at least %d samples, got %d",
			ErrInsufficientSamples, mode, need, len(values))
	}

	dec := sample.NewDecoder(mode)
	sys := gf2.NewSystem(mt.StateBits)
	equations := 0
	interval := min(max(1, len(values)/16), 1024)
	start := time.Now()

	for i, v := range values {
		err := dec.Decode(v, func(eq gf2.Vec) error {
			equations++
			_, err := sys.Insert(eq)
			return err
		})
		if err != nil {
			return nil, fmt.Errorf("sample %d: %w", i, err)
		}
		if cfg.Logger != nil && (i+1)%interval == 0 {
			cfg.Logger(message.NewPrinter(language.English).
				Sprintf("samples:%d equations:%d rank:%d/%d t:%s",
					i+1, equations, sys.Rank(), mt.StateBits, time.Since(start).Round(time.Millisecond)))
		}
		if determined(sys) {
			break
		}
	}
	if !determined(sys) {
		return nil, fmt.Errorf("%w: %d of %d carrying bits determined after %d equations",
			ErrInsufficientRank, carryRank(sys), mt.CarryBits, equations)
	}

	sol := sys.Solve()
	var words [mt.StateWords]uint32
	for w := 0; w < mt.StateWords; w++ {
		var x uint32
		for b := 0; b < mt.WordBits; b++ {
			x |= uint32(sol.Bit(w*mt.WordBits+b)) << uint(b)
		}
		words[w] = x
	}

	return &Recovery{
		Mode:      mode,
		Initial:   mt.NewState(words),
		Calls:     uint64(len(values)) * uint64(mode.CallsPerSample()),
		Rank:      sys.Rank(),
		Equations: equations,
	}, nil
}

// Continuation returns a state advanced to the first unobserved call.
func (r *Recovery) Continuation() *mt.State {
	st := r.Initial.Clone()
	st.Advance(r.Calls)
	return st
}

// Predict emits the next count values in the given mode, continuing from
// st with no gap or duplication.
func Predict(st *mt.State, mode sample.Mode, count int) []uint64 {
	out := make([]uint64, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, mode.Assemble(st.Next))
	}
	return out
}

// determined reports whether every carrying state bit has a pivot. The
// cheap rank bound keeps the per-sample check out of the hot path.
func determined(sys *gf2.System) bool {
	if sys.Rank() < mt.CarryBits {
		return false
	}
	for col := inertBits; col < mt.StateBits; col++ {
		if !sys.HasPivot(col) {
			return false
		}
	}
	return true
}

func carryRank(sys *gf2.System) int {
	n := 0
	for col := inertBits; col < mt.StateBits; col++ {
		if sys.HasPivot(col) {
			n++
		}
	}
	return n
}
