package oracle

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/go-logr/logr"
	"github.com/nathanieltooley/pokeduel/duel"
)

// Every pokemon is treated as a level 100 with perfect ivs, no evs and a neutral nature,
// matching the sets sent to the remote calculator.
const (
	LEVEL  = 100
	MAX_IV = 31

	// bounds of the random damage spread, in percent
	MIN_SPREAD = 85
	MAX_SPREAD = 100

	STAB_BONUS = 1.5
)

var ErrNoMoveData = errors.New("no data for move")

var localLogger = func() logr.Logger {
	return internalLogger.WithName("local")
}

// Local estimates damage without any network access using the generation 3 damage formula.
// Abilities, items, crits and weather are ignored.
type Local struct {
	dex duel.Dex
}

func NewLocal(dex duel.Dex) *Local {
	return &Local{dex: dex}
}

func (l *Local) DamageRange(ctx context.Context, attacker duel.PokemonRecord, defender duel.PokemonRecord, moveName string) (duel.DamageRange, error) {
	if err := ctx.Err(); err != nil {
		return duel.DamageRange{}, err
	}

	move := l.dex.GetMove(moveName)
	if move == nil {
		return duel.DamageRange{}, fmt.Errorf("%w %q", ErrNoMoveData, moveName)
	}

	if move.Category == duel.CATEGORY_STATUS || move.Power == 0 {
		return duel.DamageRange{}, nil
	}

	var a, d int
	switch move.Category {
	case duel.CATEGORY_SPECIAL:
		a = calcStat(attacker.Stats.SpecialAttack)
		d = calcStat(defender.Stats.SpecialDefense)
	default:
		a = calcStat(attacker.Stats.Attack)
		d = calcStat(defender.Stats.Defense)
	}

	effectiveness := Effectiveness(move.Type, defender.Types)
	if effectiveness == 0 {
		localLogger().V(1).Info("defender is immune", "move", moveName, "move_type", move.Type, "defender_types", defender.Types)
		return duel.DamageRange{}, nil
	}

	stab := 1.0
	if slices.Contains(attacker.Types, move.Type) {
		stab = STAB_BONUS
	}

	base := math.Floor(math.Floor(math.Floor(float64(2*LEVEL)/5+2)*float64(move.Power)*float64(a)/float64(d))/50) + 2

	roll := func(spread int) float64 {
		damage := math.Floor(base * float64(spread) / 100)
		damage = pokeRound(damage * stab)
		return math.Floor(damage * effectiveness)
	}

	hp := float64(calcHp(defender.Stats.Hp))
	damageRange := duel.DamageRange{
		Min: roll(MIN_SPREAD) / hp * 100,
		Max: roll(MAX_SPREAD) / hp * 100,
	}

	localLogger().V(1).Info("estimated damage",
		"attacker", attacker.Name,
		"defender", defender.Name,
		"move", moveName,
		"power", move.Power,
		"attack_value", a,
		"defense_value", d,
		"stab", stab,
		"effectiveness", effectiveness,
		"min", damageRange.Min,
		"max", damageRange.Max,
	)

	return damageRange, nil
}

func calcHp(base int) int {
	return (2*base+MAX_IV)*LEVEL/100 + LEVEL + 10
}

func calcStat(base int) int {
	return (2*base+MAX_IV)*LEVEL/100 + 5
}

func pokeRound(x float64) float64 {
	intPart := math.Trunc(x)

	if x-intPart > 0.5 {
		return intPart + 1
	}

	return intPart
}
