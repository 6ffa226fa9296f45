package mt

const seedMultiplier = 1812433253

// Source is a seeded reference generator. The recovery pipeline never needs
// one (it solves for state post hoc), but tests and harnesses use it to
// produce streams and to verify predicted continuations bit for bit.
type Source struct {
	state State
}

// NewSource seeds a generator with the standard Knuth-style initializer.
// The cursor starts past the end so the first call performs a twist, which
// matches the reference generator exactly.
func NewSource(seed uint32) *Source {
	src := &Source{}
	src.state.words[0] = seed
	for i := 1; i < StateWords; i++ {
		prev := src.state.words[i-1]
		src.state.words[i] = seedMultiplier*(prev^prev>>30) + uint32(i)
	}
	src.state.cursor = StateWords
	return src
}

// Next returns the next tempered output word.
func (src *Source) Next() uint32 {
	return src.state.Next()
}

// GetRandBits mirrors the chunked extraction used by scripting-language
// runtimes on top of MT19937: widths up to 32 take the top k bits of one
// call, wider values consume two calls with the low word first.
func (src *Source) GetRandBits(k int) uint64 {
	if k <= WordBits {
		return uint64(src.Next() >> uint(WordBits-k))
	}
	lo := uint64(src.Next())
	hi := uint64(src.Next() >> uint(2*WordBits-k))
	return lo | hi<<WordBits
}
