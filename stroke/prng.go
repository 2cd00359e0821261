package stroke

import (
	"encoding/binary"

	"golang.org/x/crypto/blake2s"
)

// Counter-mode pseudo-random generation for stitch jitter.
//
// Unlike a stateful generator, hashing the stitch position gives every
// stitch an independent random stream: redrawing the same stroke yields
// byte-identical pixels, and editing one part of a pattern never reshuffles
// the rolls of another.

// uniformFloats returns 8 floats in [0, 1) fully determined by the keys.
func uniformFloats(keys ...uint64) [8]float64 {
	buf := make([]byte, 0, len(keys)*8)
	for _, k := range keys {
		buf = binary.LittleEndian.AppendUint64(buf, k)
	}
	sum := blake2s.Sum256(buf)

	var out [8]float64
	for i := 0; i < 8; i++ {
		v := binary.LittleEndian.Uint32(sum[i*4 : i*4+4])
		out[i] = float64(v) / (1 << 32)
	}
	return out
}

// jitter returns a single float in [-scale, scale] determined by the keys.
func jitter(scale float64, keys ...uint64) float64 {
	return (uniformFloats(keys...)[0]*2 - 1) * scale
}
