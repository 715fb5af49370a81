package duel

import (
	"math/rand/v2"
	"strings"
)

const (
	CATEGORY_PHYSICAL = "Physical"
	CATEGORY_SPECIAL  = "Special"
	CATEGORY_STATUS   = "Status"
)

// Used for moves that are missing from the move file
const DEFAULT_MOVE_TYPE = "Normal"

type BaseStats struct {
	Hp             int
	Attack         int
	Defense        int
	SpecialAttack  int
	SpecialDefense int
	Speed          int
}

// PokemonRecord is the static data for one species. Records are never mutated after loading.
type PokemonRecord struct {
	Name       string
	Types      []string
	Abilities  []string
	Tier       string
	Stats      BaseStats
	Evolutions []string
	// May contain duplicates, see SampleMoves
	Moves []string
}

type MoveRecord struct {
	Name     string
	Type     string
	Category string
	PP       int
	// 0 for moves that do no direct damage
	Power int
	// 0 for moves that never miss
	Accuracy int
}

// Dex holds all loaded reference data
type Dex struct {
	Pokemon []PokemonRecord
	// Moves maps a move name to its record
	Moves map[string]MoveRecord
}

func (d Dex) GetPokemonByName(name string) *PokemonRecord {
	for _, pkm := range d.Pokemon {
		if strings.EqualFold(pkm.Name, name) {
			return &pkm
		}
	}

	return nil
}

func (d Dex) GetRandomPokemon(rng *rand.Rand) PokemonRecord {
	return d.Pokemon[rng.IntN(len(d.Pokemon))]
}

func (d Dex) GetMove(name string) *MoveRecord {
	move, ok := d.Moves[name]
	if ok {
		return &move
	}

	return nil
}

// MoveType returns the elemental type of a move, or DEFAULT_MOVE_TYPE when the move is unknown
func (d Dex) MoveType(name string) string {
	move := d.GetMove(name)
	if move == nil || move.Type == "" {
		return DEFAULT_MOVE_TYPE
	}

	return move.Type
}
