package duel

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
)

func CreateRandomSeed() rand.PCG {
	var randBytes [16]byte
	_, err := cryptoRand.Read(randBytes[:])
	if err != nil {
		// crypto/rand only fails when the OS has no entropy source at all
		panic(err)
	}

	return *rand.NewPCG(binary.LittleEndian.Uint64(randBytes[0:8]), binary.LittleEndian.Uint64(randBytes[8:]))
}

// CreateRNG returns a generator backed by seed. The seed is advanced in place.
func CreateRNG(seed *rand.PCG) *rand.Rand {
	return rand.New(seed)
}

// NewRandomRNG is shorthand for a freshly seeded generator
func NewRandomRNG() *rand.Rand {
	seed := CreateRandomSeed()
	return CreateRNG(&seed)
}
