package duel

import (
	"slices"
)

// HP is tracked as a percentage of the pokemon's health, not its real HP stat
const MAX_HP = 100

const (
	PLAYER = iota + 1
	OPPONENT
)

// Participant is one side of a battle
type Participant struct {
	Record PokemonRecord
	Moves  []string
	Hp     int
}

func NewParticipant(record PokemonRecord, moves []string) Participant {
	return Participant{
		Record: record,
		Moves:  slices.Clone(moves),
		Hp:     MAX_HP,
	}
}

func (p Participant) Alive() bool {
	return p.Hp > 0
}

func (p Participant) Knows(move string) bool {
	return slices.Contains(p.Moves, move)
}

// ApplyDamage lowers HP by damage, never going below 0.
// Damage is clamped to [0, MAX_HP] first. Returns the HP before and after.
func (p *Participant) ApplyDamage(damage int) (before int, after int) {
	damage = min(max(damage, 0), MAX_HP)

	before = p.Hp
	p.Hp = max(p.Hp-damage, 0)

	return before, p.Hp
}

func OtherSide(side int) int {
	if side == PLAYER {
		return OPPONENT
	}

	return PLAYER
}
