package duel

import "testing"

func TestApplyDamage(t *testing.T) {
	cases := []struct {
		startHp  int
		damage   int
		expected int
	}{
		{100, 30, 70},
		{100, 0, 100},
		{20, 30, 0},
		{20, 20, 0},
		{50, -10, 50},
		{100, 250, 0},
	}

	for _, c := range cases {
		participant := NewParticipant(testRecord("Eevee", 55, "Tackle"), []string{"Tackle"})
		participant.Hp = c.startHp

		before, after := participant.ApplyDamage(c.damage)

		if before != c.startHp {
			t.Fatalf("before should be %d, got %d", c.startHp, before)
		}

		if after != c.expected || participant.Hp != c.expected {
			t.Fatalf("hp %d - %d: expected %d, got %d", c.startHp, c.damage, c.expected, participant.Hp)
		}

		if participant.Alive() != (c.expected > 0) {
			t.Fatalf("alive mismatch at hp %d", participant.Hp)
		}
	}
}

func TestNewParticipantStartsAtFullHealth(t *testing.T) {
	// base hp of the record does not matter, health is a percentage
	record := testRecord("Shuckle", 5, "Wrap")
	record.Stats.Hp = 20

	participant := NewParticipant(record, []string{"Wrap"})
	if participant.Hp != MAX_HP {
		t.Fatalf("expected %d hp, got %d", MAX_HP, participant.Hp)
	}

	if !participant.Knows("Wrap") || participant.Knows("Tackle") {
		t.Fatalf("participant knows the wrong moves: %v", participant.Moves)
	}
}
