package tracer

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
	"time"
)

// newWorkerRNG builds an independent PCG generator for TraceRays' generator
// pool, seeded from OS entropy; each attempt borrows one generator at a time,
// so concurrent attempts never share a stream.
func newWorkerRNG() *rand.Rand {
	var seed [16]byte
	if _, err := cryptorand.Read(seed[:]); err != nil {
		// crypto/rand failing is effectively unreachable on any supported
		// platform; fall back to a time-derived seed rather than panicking.
		binary.LittleEndian.PutUint64(seed[:8], uint64(time.Now().UnixNano()))
		binary.LittleEndian.PutUint64(seed[8:], uint64(time.Now().UnixNano()^0x9e3779b97f4a7c15))
	}
	s1 := binary.LittleEndian.Uint64(seed[:8])
	s2 := binary.LittleEndian.Uint64(seed[8:])
	return rand.New(rand.NewPCG(s1, s2))
}
