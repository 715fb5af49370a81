package data_test

import (
	"context"
	"testing"

	"github.com/nathanieltooley/pokeduel/data"
	"github.com/nathanieltooley/pokeduel/duel"
	"github.com/nathanieltooley/pokeduel/oracle"
)

func TestEmbeddedDataLoads(t *testing.T) {
	dex, err := duel.DefaultLoader(data.Files)
	if err != nil {
		t.Fatalf("embedded data failed to load: %s", err)
	}

	if len(dex.Pokemon) == 0 || len(dex.Moves) == 0 {
		t.Fatalf("embedded data is empty")
	}

	for _, pokemon := range dex.Pokemon {
		if len(pokemon.Types) == 0 {
			t.Fatalf("%s has no types", pokemon.Name)
		}

		for _, move := range pokemon.Moves {
			if dex.GetMove(move) == nil {
				t.Fatalf("%s knows %s which has no move data", pokemon.Name, move)
			}
		}
	}
}

func TestEmbeddedDataOfflineRanges(t *testing.T) {
	dex, err := duel.DefaultLoader(data.Files)
	if err != nil {
		t.Fatalf("embedded data failed to load: %s", err)
	}

	local := oracle.NewLocal(dex)
	ctx := context.Background()

	for _, attacker := range dex.Pokemon {
		for _, defender := range dex.Pokemon {
			for _, move := range attacker.Moves {
				damageRange, err := local.DamageRange(ctx, attacker, defender, move)
				if err != nil {
					t.Fatalf("%s using %s on %s: %s", attacker.Name, move, defender.Name, err)
				}

				if damageRange.Min > damageRange.Max || damageRange.Min < 0 {
					t.Fatalf("%s using %s on %s: bad range %+v", attacker.Name, move, defender.Name, damageRange)
				}
			}
		}
	}
}
