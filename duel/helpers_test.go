package duel

import (
	"context"
	"math/rand/v2"
)

func testRng() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func testRecord(name string, speed int, moves ...string) PokemonRecord {
	return PokemonRecord{
		Name:  name,
		Types: []string{"Normal"},
		Tier:  "OU",
		Stats: BaseStats{Hp: 80, Attack: 80, Defense: 80, SpecialAttack: 80, SpecialDefense: 80, Speed: speed},
		Moves: moves,
	}
}

func fixedOracle(minDamage float64, maxDamage float64) DamageOracle {
	return DamageOracleFunc(func(_ context.Context, _ PokemonRecord, _ PokemonRecord, _ string) (DamageRange, error) {
		return DamageRange{Min: minDamage, Max: maxDamage}, nil
	})
}

func newTestBattle(player PokemonRecord, opponent PokemonRecord, oracle DamageOracle) *Battle {
	battle, err := NewBattle(BattleConfig{
		Player:   player,
		Opponent: opponent,
		Oracle:   oracle,
		Rng:      testRng(),
	})
	if err != nil {
		panic(err)
	}

	return battle
}
