package duel

import (
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/samber/lo"
)

const MOVESET_SIZE = 4

// SampleMoves picks MOVESET_SIZE distinct moves from pool, uniformly and without replacement.
//
// Pools with fewer distinct moves than MOVESET_SIZE give back every distinct move in a random order.
// A pool with no usable names is a DataError.
func SampleMoves(pool []string, rng *rand.Rand) ([]string, error) {
	distinct := lo.Uniq(lo.Filter(pool, func(move string, _ int) bool {
		return strings.TrimSpace(move) != ""
	}))

	if len(distinct) == 0 {
		return nil, &DataError{Source: "move pool", Record: "sample", Field: COL_MOVES, Err: ErrEmptyMovePool}
	}

	candidates := slices.Clone(distinct)
	rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	if len(candidates) < MOVESET_SIZE {
		internalLogger.WithName("sampler").V(1).Info("move pool is smaller than a full move set", "distinct_moves", len(candidates))
		return candidates, nil
	}

	return candidates[:MOVESET_SIZE], nil
}
