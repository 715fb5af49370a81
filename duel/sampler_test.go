package duel

import (
	"errors"
	"slices"
	"testing"
)

func TestSampleMovesFullPool(t *testing.T) {
	pool := []string{"Tackle", "Growl", "Ember", "Tackle", "Scratch", "Leer", "Ember", "Flamethrower", "Smokescreen"}
	rng := testRng()

	for range 200 {
		moves, err := SampleMoves(pool, rng)
		if err != nil {
			t.Fatalf("unexpected error: %s", err)
		}

		if len(moves) != MOVESET_SIZE {
			t.Fatalf("expected %d moves, got %d: %v", MOVESET_SIZE, len(moves), moves)
		}

		for i, move := range moves {
			if !slices.Contains(pool, move) {
				t.Fatalf("move %s is not part of the pool", move)
			}

			if slices.Contains(moves[i+1:], move) {
				t.Fatalf("move %s was picked twice: %v", move, moves)
			}
		}
	}
}

func TestSampleMovesExactPool(t *testing.T) {
	pool := []string{"Tackle", "Growl", "Ember", "Scratch"}

	moves, err := SampleMoves(pool, testRng())
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	sorted := slices.Sorted(slices.Values(moves))
	if !slices.Equal(sorted, []string{"Ember", "Growl", "Scratch", "Tackle"}) {
		t.Fatalf("a pool of exactly four moves should be returned whole, got %v", moves)
	}
}

func TestSampleMovesSmallPool(t *testing.T) {
	pool := []string{"Splash", "Splash", "Tackle", "Splash"}

	moves, err := SampleMoves(pool, testRng())
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	if len(moves) != 2 {
		t.Fatalf("expected every distinct move (2), got %v", moves)
	}

	if !slices.Contains(moves, "Splash") || !slices.Contains(moves, "Tackle") {
		t.Fatalf("expected Splash and Tackle, got %v", moves)
	}
}

func TestSampleMovesEmptyPool(t *testing.T) {
	for _, pool := range [][]string{nil, {}, {"", "  "}} {
		_, err := SampleMoves(pool, testRng())

		var dataErr *DataError
		if !errors.As(err, &dataErr) {
			t.Fatalf("expected a DataError for pool %q, got %v", pool, err)
		}

		if !errors.Is(err, ErrEmptyMovePool) {
			t.Fatalf("expected ErrEmptyMovePool, got %v", err)
		}
	}
}

func TestSampleMovesDoesNotModifyPool(t *testing.T) {
	pool := []string{"A", "B", "C", "D", "E", "F"}
	original := slices.Clone(pool)

	_, _ = SampleMoves(pool, testRng())

	if !slices.Equal(pool, original) {
		t.Fatalf("pool was modified: %v", pool)
	}
}
