// Package mt models the MT19937 generator as an explicit, passable state
// value with pure transition functions, instead of the process-wide hidden
// generator object most runtimes expose. The tempering transform and the
// twist recurrence are both linear over GF(2), which is what makes state
// recovery from observed outputs a linear-algebra problem.
package mt

const (
	StateWords  = 624
	WordBits    = 32
	StateBits   = StateWords * WordBits
	TwistOffset = 397

	// Only 19937 state bits carry into the next epoch: the low 31 bits of
	// word 0 are read once for output and never enter the twist recurrence.
	CarryBits = 19937

	MatrixA   uint32 = 0x9908b0df
	upperMask uint32 = 0x80000000
	lowerMask uint32 = 0x7fffffff
	temperB   uint32 = 0x9d2c5680
	temperC   uint32 = 0xefc60000
)

// temperMask[j] holds the raw-word bits whose XOR forms tempered output
// bit j; every output bit is a fixed parity of input bits.
var temperMask [WordBits]uint32

func init() {
	for b := 0; b < WordBits; b++ {
		col := Temper(1 << uint(b))
		for j := 0; j < WordBits; j++ {
			if col>>uint(j)&1 == 1 {
				temperMask[j] |= 1 << uint(b)
			}
		}
	}
}

// TemperMask returns the linear expansion of tempered output bit j over the
// bits of the raw state word.
func TemperMask(j int) uint32 {
	return temperMask[j]
}

// Temper applies the MT19937 output transform to a raw state word.
func Temper(y uint32) uint32 {
	y ^= y >> 11
	y ^= (y << 7) & temperB
	y ^= (y << 15) & temperC
	y ^= y >> 18
	return y
}

// Untemper inverts Temper in closed form. Each shift-XOR stage is inverted
// by reapplying it until every bit block has been corrected.
func Untemper(y uint32) uint32 {
	y = invertRightXor(y, 18)
	y = invertLeftXorMask(y, 15, temperC)
	y = invertLeftXorMask(y, 7, temperB)
	y = invertRightXor(y, 11)
	return y
}

// invertRightXor solves x ^ (x >> s) == y for x. Each pass fixes the next
// s-bit block below the already-correct high bits.
func invertRightXor(y uint32, s uint) uint32 {
	x := y
	for i := s; i < WordBits; i += s {
		x = y ^ x>>s
	}
	return x
}

// invertLeftXorMask solves x ^ ((x << s) & mask) == y for x.
func invertLeftXorMask(y uint32, s uint, mask uint32) uint32 {
	x := y
	for i := s; i < WordBits; i += s {
		x = y ^ (x<<s)&mask
	}
	return x
}

// State is one full generator state: 624 raw words plus the cursor of the
// next word to be tempered for output. The zero cursor means the state is
// at an epoch boundary (a twist has just completed).
type State struct {
	words  [StateWords]uint32
	cursor int
}

// NewState builds a state positioned at the start of an epoch.
func NewState(words [StateWords]uint32) *State {
	return &State{words: words}
}

func (s *State) Clone() *State {
	c := *s
	return &c
}

// Word returns raw state word i without advancing the cursor.
func (s *State) Word(i int) uint32 {
	return s.words[i]
}

func (s *State) Cursor() int {
	return s.cursor
}

// Twist advances the generator by exactly one epoch (624 calls) and resets
// the cursor. It is the reference recurrence applied in place: word kk is
// rebuilt from its two neighbors, with the conditional XOR of MatrixA
// driven by the low bit of the combined value.
func (s *State) Twist() {
	for kk := 0; kk < StateWords; kk++ {
		y := s.words[kk]&upperMask | s.words[(kk+1)%StateWords]&lowerMask
		x := y >> 1
		if y&1 == 1 {
			x ^= MatrixA
		}
		s.words[kk] = s.words[(kk+TwistOffset)%StateWords] ^ x
	}
	s.cursor = 0
}

// Next tempers the word at the cursor and advances, twisting at the epoch
// boundary.
func (s *State) Next() uint32 {
	if s.cursor >= StateWords {
		s.Twist()
	}
	y := Temper(s.words[s.cursor])
	s.cursor++
	return y
}

// Advance moves a state positioned at call 0 of its epoch forward by the
// given number of generator calls, so that the next call emitted by Next
// is exactly the call at that index. Words already consumed within the
// final epoch are skipped by moving the cursor, not by tempering them.
func (s *State) Advance(calls uint64) {
	for t := calls / StateWords; t > 0; t-- {
		s.Twist()
	}
	s.cursor = int(calls % StateWords)
}
