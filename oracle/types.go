package oracle

const (
	TYPENAME_NORMAL   = "Normal"
	TYPENAME_FIRE     = "Fire"
	TYPENAME_WATER    = "Water"
	TYPENAME_ELECTRIC = "Electric"
	TYPENAME_GRASS    = "Grass"
	TYPENAME_ICE      = "Ice"
	TYPENAME_FIGHTING = "Fighting"
	TYPENAME_POISON   = "Poison"
	TYPENAME_GROUND   = "Ground"
	TYPENAME_FLYING   = "Flying"
	TYPENAME_PSYCHIC  = "Psychic"
	TYPENAME_BUG      = "Bug"
	TYPENAME_ROCK     = "Rock"
	TYPENAME_GHOST    = "Ghost"
	TYPENAME_DRAGON   = "Dragon"
	TYPENAME_DARK     = "Dark"
	TYPENAME_STEEL    = "Steel"
	TYPENAME_FAIRY    = "Fairy"
)

// typeChart maps an attacking type to its non neutral matchups.
// Defending types that are not listed take neutral damage.
var typeChart = map[string]map[string]float64{
	TYPENAME_NORMAL: {
		TYPENAME_ROCK: .5, TYPENAME_STEEL: .5,
		TYPENAME_GHOST: 0,
	},
	TYPENAME_FIRE: {
		TYPENAME_GRASS: 2, TYPENAME_ICE: 2, TYPENAME_BUG: 2, TYPENAME_STEEL: 2,
		TYPENAME_FIRE: .5, TYPENAME_WATER: .5, TYPENAME_ROCK: .5, TYPENAME_DRAGON: .5,
	},
	TYPENAME_WATER: {
		TYPENAME_FIRE: 2, TYPENAME_GROUND: 2, TYPENAME_ROCK: 2,
		TYPENAME_WATER: .5, TYPENAME_GRASS: .5, TYPENAME_DRAGON: .5,
	},
	TYPENAME_ELECTRIC: {
		TYPENAME_WATER: 2, TYPENAME_FLYING: 2,
		TYPENAME_ELECTRIC: .5, TYPENAME_GRASS: .5, TYPENAME_DRAGON: .5,
		TYPENAME_GROUND: 0,
	},
	TYPENAME_GRASS: {
		TYPENAME_WATER: 2, TYPENAME_GROUND: 2, TYPENAME_ROCK: 2,
		TYPENAME_FIRE: .5, TYPENAME_GRASS: .5, TYPENAME_POISON: .5, TYPENAME_FLYING: .5,
		TYPENAME_BUG: .5, TYPENAME_DRAGON: .5, TYPENAME_STEEL: .5,
	},
	TYPENAME_ICE: {
		TYPENAME_GRASS: 2, TYPENAME_GROUND: 2, TYPENAME_FLYING: 2, TYPENAME_DRAGON: 2,
		TYPENAME_FIRE: .5, TYPENAME_WATER: .5, TYPENAME_ICE: .5, TYPENAME_STEEL: .5,
	},
	TYPENAME_FIGHTING: {
		TYPENAME_NORMAL: 2, TYPENAME_ICE: 2, TYPENAME_ROCK: 2, TYPENAME_DARK: 2, TYPENAME_STEEL: 2,
		TYPENAME_POISON: .5, TYPENAME_FLYING: .5, TYPENAME_PSYCHIC: .5, TYPENAME_BUG: .5, TYPENAME_FAIRY: .5,
		TYPENAME_GHOST: 0,
	},
	TYPENAME_POISON: {
		TYPENAME_GRASS: 2, TYPENAME_FAIRY: 2,
		TYPENAME_POISON: .5, TYPENAME_GROUND: .5, TYPENAME_ROCK: .5, TYPENAME_GHOST: .5,
		TYPENAME_STEEL: 0,
	},
	TYPENAME_GROUND: {
		TYPENAME_FIRE: 2, TYPENAME_ELECTRIC: 2, TYPENAME_POISON: 2, TYPENAME_ROCK: 2, TYPENAME_STEEL: 2,
		TYPENAME_GRASS: .5, TYPENAME_BUG: .5,
		TYPENAME_FLYING: 0,
	},
	TYPENAME_FLYING: {
		TYPENAME_GRASS: 2, TYPENAME_FIGHTING: 2, TYPENAME_BUG: 2,
		TYPENAME_ELECTRIC: .5, TYPENAME_ROCK: .5, TYPENAME_STEEL: .5,
	},
	TYPENAME_PSYCHIC: {
		TYPENAME_FIGHTING: 2, TYPENAME_POISON: 2,
		TYPENAME_PSYCHIC: .5, TYPENAME_STEEL: .5,
		TYPENAME_DARK: 0,
	},
	TYPENAME_BUG: {
		TYPENAME_GRASS: 2, TYPENAME_PSYCHIC: 2, TYPENAME_DARK: 2,
		TYPENAME_FIRE: .5, TYPENAME_FIGHTING: .5, TYPENAME_POISON: .5, TYPENAME_FLYING: .5,
		TYPENAME_GHOST: .5, TYPENAME_STEEL: .5, TYPENAME_FAIRY: .5,
	},
	TYPENAME_ROCK: {
		TYPENAME_FIRE: 2, TYPENAME_ICE: 2, TYPENAME_FLYING: 2, TYPENAME_BUG: 2,
		TYPENAME_FIGHTING: .5, TYPENAME_GROUND: .5, TYPENAME_STEEL: .5,
	},
	TYPENAME_GHOST: {
		TYPENAME_PSYCHIC: 2, TYPENAME_GHOST: 2,
		TYPENAME_DARK:   .5,
		TYPENAME_NORMAL: 0,
	},
	TYPENAME_DRAGON: {
		TYPENAME_DRAGON: 2,
		TYPENAME_STEEL:  .5,
		TYPENAME_FAIRY:  0,
	},
	TYPENAME_DARK: {
		TYPENAME_PSYCHIC: 2, TYPENAME_GHOST: 2,
		TYPENAME_FIGHTING: .5, TYPENAME_DARK: .5, TYPENAME_FAIRY: .5,
	},
	TYPENAME_STEEL: {
		TYPENAME_ICE: 2, TYPENAME_ROCK: 2, TYPENAME_FAIRY: 2,
		TYPENAME_FIRE: .5, TYPENAME_WATER: .5, TYPENAME_ELECTRIC: .5, TYPENAME_STEEL: .5,
	},
	TYPENAME_FAIRY: {
		TYPENAME_FIGHTING: 2, TYPENAME_DRAGON: 2, TYPENAME_DARK: 2,
		TYPENAME_FIRE: .5, TYPENAME_POISON: .5, TYPENAME_STEEL: .5,
	},
}

// Effectiveness multiplies the matchup of attackType against every defending type.
// Unknown attacking types are typeless and always neutral.
func Effectiveness(attackType string, defenderTypes []string) float64 {
	matchups, ok := typeChart[attackType]
	if !ok {
		return 1
	}

	effectiveness := 1.0
	for _, defenderType := range defenderTypes {
		if mult, ok := matchups[defenderType]; ok {
			effectiveness *= mult
		}
	}

	return effectiveness
}
