package gf2

import "errors"

var (
	// ErrInconsistent reports an equation that reduced to 0 = 1: the
	// observed stream cannot have been produced by the modeled generator.
	ErrInconsistent = errors.New("inconsistent equation")
)

// System accumulates equations over GF(2) as an incremental echelon basis.
// Each row is an augmented vector of cols coefficient bits plus one
// right-hand-side bit at index cols. The basis never holds two rows with
// the same leading coefficient column, and zero rows are discarded.
type System struct {
	cols  int
	rows  []Vec
	pivot []int // column -> row index, -1 when the column has no pivot
	rank  int
}

// NewSystem creates an empty system over the given number of unknowns.
func NewSystem(cols int) *System {
	s := &System{
		cols:  cols,
		pivot: make([]int, cols),
	}
	for i := range s.pivot {
		s.pivot[i] = -1
	}
	return s
}

// NewEquation returns a zero augmented row sized for the system: the
// coefficient bits followed by the right-hand-side bit at index Cols().
func (s *System) NewEquation() Vec {
	return NewVec(s.cols + 1)
}

func (s *System) Cols() int {
	return s.cols
}

// Rank returns the number of independent equations absorbed so far.
func (s *System) Rank() int {
	return s.rank
}

// FullRank reports whether every unknown is determined.
func (s *System) FullRank() bool {
	return s.rank == s.cols
}

// HasPivot reports whether the basis determines the given column.
func (s *System) HasPivot(col int) bool {
	return s.pivot[col] >= 0
}

// Insert reduces eq against the basis and absorbs whatever remains. It
// returns true when the equation carried new information (rank grew),
// false when it was linearly dependent. The equation is consumed either
// way. ErrInconsistent means the coefficients cancelled but the
// right-hand side did not.
func (s *System) Insert(eq Vec) (bool, error) {
	for {
		lead := eq.FirstSet()
		if lead < 0 {
			return false, nil
		}
		if lead >= s.cols {
			return false, ErrInconsistent
		}
		r := s.pivot[lead]
		if r < 0 {
			s.pivot[lead] = len(s.rows)
			s.rows = append(s.rows, eq)
			s.rank++
			return true, nil
		}
		eq.Xor(s.rows[r])
	}
}

// Solve back-substitutes the echelon basis into a single assignment of the
// unknowns. Columns without a pivot are left zero; callers decide whether
// the pivoted columns cover everything they need before trusting the
// result. Valid regardless of insertion order.
func (s *System) Solve() Vec {
	out := NewVec(s.cols)
	for col := s.cols - 1; col >= 0; col-- {
		r := s.pivot[col]
		if r < 0 {
			continue
		}
		row := s.rows[r]
		// The leading bit of row is col itself and out[col] is still
		// zero, so the parity covers exactly the higher columns.
		if row.Bit(s.cols)^row.AndParity(out) == 1 {
			out.Set(col)
		}
	}
	return out
}
