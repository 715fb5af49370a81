package duel

import (
	"context"
	"math"
	"math/rand/v2"
)

// DamageRange holds the bounds of a damage roll, as percentages of the defender's health.
// Fractional bounds are allowed; rolls are whole numbers.
type DamageRange struct {
	Min float64
	Max float64
}

// DamageOracle computes the possible damage a move does. Implementations may block on
// network IO and should respect ctx.
type DamageOracle interface {
	DamageRange(ctx context.Context, attacker PokemonRecord, defender PokemonRecord, move string) (DamageRange, error)
}

// DamageOracleFunc lets a plain function act as a DamageOracle
type DamageOracleFunc func(ctx context.Context, attacker PokemonRecord, defender PokemonRecord, move string) (DamageRange, error)

func (f DamageOracleFunc) DamageRange(ctx context.Context, attacker PokemonRecord, defender PokemonRecord, move string) (DamageRange, error) {
	return f(ctx, attacker, defender, move)
}

// Roll draws one whole damage value uniformly from [floor(Min), floor(Max)], clamped to [0, MAX_HP].
func (r DamageRange) Roll(rng *rand.Rand) (int, error) {
	if math.IsNaN(r.Min) || math.IsNaN(r.Max) || r.Max < r.Min {
		return 0, ErrInvertedRange
	}

	low := clampPercent(math.Floor(r.Min))
	high := clampPercent(math.Floor(r.Max))

	if high == low {
		return low, nil
	}

	return low + rng.IntN(high-low+1), nil
}

func clampPercent(value float64) int {
	return int(math.Min(math.Max(value, 0), MAX_HP))
}
