package rng

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStreams_Deterministic(t *testing.T) {
	tabu1, div1 := Streams(42)
	tabu2, div2 := Streams(42)

	assert.Equal(t, tabu1.Int63(), tabu2.Int63())
	assert.Equal(t, div1.Int63(), div2.Int63())
}

func TestStreams_TabuAndDiversifyAreIndependent(t *testing.T) {
	tabu, diversify := Streams(42)

	var tabuDraws, diversifyDraws []int64
	for i := 0; i < 8; i++ {
		tabuDraws = append(tabuDraws, tabu.Int63())
	}
	for i := 0; i < 8; i++ {
		diversifyDraws = append(diversifyDraws, diversify.Int63())
	}

	assert.NotEqual(t, tabuDraws, diversifyDraws)
}

func TestStreams_ZeroSeedMapsToDefault(t *testing.T) {
	tabuZero, divZero := Streams(0)
	tabuDefault, divDefault := Streams(defaultSeed)

	assert.Equal(t, tabuZero.Int63(), tabuDefault.Int63())
	assert.Equal(t, divZero.Int63(), divDefault.Int63())
}
