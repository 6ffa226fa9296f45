package predictor

import (
	"encoding/binary"
	"encoding/hex"

	"golang.org/x/crypto/blake2b"

	"github.com/CherryDT/fast-linear-predictor/mt"
)

// Fingerprint hashes the recovered epoch-aligned state. The non-carrying
// bits are masked out first, so recoveries of the same stream prefix under
// different modes fingerprint identically even when one mode pinned those
// bits and another left them free.
func (r *Recovery) Fingerprint() string {
	var buf [mt.StateWords * 4]byte
	for w := 0; w < mt.StateWords; w++ {
		x := r.Initial.Word(w)
		if w == 0 {
			x &= 1 << 31
		}
		binary.LittleEndian.PutUint32(buf[w*4:], x)
	}
	sum := blake2b.Sum256(buf[:])
	return hex.EncodeToString(sum[:])
}
