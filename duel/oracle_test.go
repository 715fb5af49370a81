package duel

import (
	"errors"
	"math"
	"testing"
)

func TestRollStaysInBounds(t *testing.T) {
	rng := testRng()
	damageRange := DamageRange{Min: 21.7, Max: 25.9}

	seen := make(map[int]bool)
	for range 1000 {
		roll, err := damageRange.Roll(rng)
		if err != nil {
			t.Fatalf("unexpected error: %s", err)
		}

		if roll < 21 || roll > 25 {
			t.Fatalf("roll %d outside of [21, 25]", roll)
		}

		seen[roll] = true
	}

	if len(seen) != 5 {
		t.Fatalf("expected every value from 21 to 25 to be rolled, saw %v", seen)
	}
}

func TestRollEqualBounds(t *testing.T) {
	roll, err := DamageRange{Min: 30, Max: 30}.Roll(testRng())
	if err != nil || roll != 30 {
		t.Fatalf("expected 30, got %d (%v)", roll, err)
	}

	roll, err = DamageRange{}.Roll(testRng())
	if err != nil || roll != 0 {
		t.Fatalf("missing bounds should roll 0, got %d (%v)", roll, err)
	}
}

func TestRollClamps(t *testing.T) {
	roll, err := DamageRange{Min: 150, Max: 180}.Roll(testRng())
	if err != nil || roll != MAX_HP {
		t.Fatalf("expected roll clamped to %d, got %d (%v)", MAX_HP, roll, err)
	}

	roll, err = DamageRange{Min: -20, Max: -5}.Roll(testRng())
	if err != nil || roll != 0 {
		t.Fatalf("expected roll clamped to 0, got %d (%v)", roll, err)
	}
}

func TestRollInvertedRange(t *testing.T) {
	for _, damageRange := range []DamageRange{{Min: 40, Max: 10}, {Min: math.NaN(), Max: 10}} {
		_, err := damageRange.Roll(testRng())
		if !errors.Is(err, ErrInvertedRange) {
			t.Fatalf("expected ErrInvertedRange for %+v, got %v", damageRange, err)
		}
	}
}
