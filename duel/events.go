package duel

import "fmt"

// BattleEvent is something that happened while resolving a turn.
// Events are already applied to the battle by the time they are handed out;
// they only describe what changed so a UI can replay it at its own pace.
type BattleEvent interface {
	// Messages returns the lines a UI should show for this event, in order
	Messages() []string
}

type MoveUsedEvent struct {
	Attacker     int
	AttackerName string
	Move         string
}

func (e MoveUsedEvent) Messages() []string {
	return []string{fmt.Sprintf("%s used %s!", e.AttackerName, e.Move)}
}

type DamageEvent struct {
	// Side that took the damage
	Target       int
	TargetName   string
	AttackerName string
	Damage       int
	HpBefore     int
	HpAfter      int
}

// Immune reports a roll of 0. No HP drop should be animated for it.
func (e DamageEvent) Immune() bool {
	return e.Damage == 0
}

func (e DamageEvent) Messages() []string {
	switch {
	case e.Damage == 0:
		return []string{fmt.Sprintf("Yikes! %s is immune to %s's attack!", e.TargetName, e.AttackerName)}
	case e.Damage < 10:
		return []string{"Oof, it's not very effective..."}
	case e.Damage < 40:
		return []string{"Not bad...!"}
	default:
		return []string{"Ouch!!! That's a LOT of damage!"}
	}
}

type FaintEvent struct {
	Side int
	Name string
}

func (e FaintEvent) Messages() []string {
	return []string{fmt.Sprintf("%s fainted!", e.Name)}
}

// TurnEndEvent marks the end of a full round. Turn is the number of the round that just ended.
type TurnEndEvent struct {
	Turn int
}

func (e TurnEndEvent) Messages() []string {
	return nil
}

type GameOverEvent struct {
	Winner int
}

func (e GameOverEvent) Messages() []string {
	if e.Winner == PLAYER {
		return []string{"You win! Congrats!"}
	}

	return []string{"You lose."}
}
