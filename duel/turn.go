package duel

import (
	"context"
	"errors"
	"fmt"
)

// turn result kinds
const (
	RESULT_RESOLVED = iota + 1
	RESULT_GAMEOVER
	// An oracle call failed part way. Events holds whatever was already applied.
	RESULT_INTERRUPTED
)

type TurnResult struct {
	Kind   int
	Events []BattleEvent
}

// Start decides who moves first. When the opponent is faster its opening move is
// resolved before Start returns.
func (b *Battle) Start(ctx context.Context) (TurnResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.phase != PHASE_NOT_STARTED {
		return TurnResult{}, fmt.Errorf("start in phase %q: %w", PhaseName(b.phase), ErrWrongPhase)
	}

	b.turn = 1
	b.firstMover = FirstMover(b.player.Record, b.opponent.Record)

	b.logger.Info("battle started",
		"first_mover", b.firstMover,
		"player_speed", b.player.Record.Stats.Speed,
		"opponent_speed", b.opponent.Record.Stats.Speed,
	)

	if b.firstMover == PLAYER {
		b.phase = PHASE_AWAITING_PLAYER
		return TurnResult{Kind: RESULT_RESOLVED}, nil
	}

	b.phase = PHASE_RESOLVING_OPPONENT
	b.pendingMove = b.pickOpponentMove()

	events, err := b.resolveOpponent(ctx)
	return b.result(events, err), err
}

// SubmitPlayerMove resolves the player's move and, unless the opponent faints,
// the opponent's reply.
//
// An unknown move or a call outside PHASE_AWAITING_PLAYER returns an *InvalidMoveError and changes nothing.
// An oracle failure on the player's move puts the battle back to PHASE_AWAITING_PLAYER untouched.
// An oracle failure on the opponent's reply leaves the battle in PHASE_RESOLVING_OPPONENT, see Resume.
func (b *Battle) SubmitPlayerMove(ctx context.Context, move string) (TurnResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.phase != PHASE_AWAITING_PLAYER || b.resolving {
		return TurnResult{}, &InvalidMoveError{Move: move, Reason: ErrWrongPhase}
	}

	if !b.player.Knows(move) {
		return TurnResult{}, &InvalidMoveError{Move: move, Reason: ErrUnknownMove}
	}

	b.phase = PHASE_RESOLVING_PLAYER

	events, err := b.strike(ctx, PLAYER, move)
	if err != nil {
		if !errors.Is(err, ErrAborted) {
			b.phase = PHASE_AWAITING_PLAYER
		}

		return b.result(nil, err), err
	}

	if b.phase == PHASE_GAMEOVER {
		return b.result(events, nil), nil
	}

	b.phase = PHASE_RESOLVING_OPPONENT
	b.pendingMove = b.pickOpponentMove()

	opponentEvents, err := b.resolveOpponent(ctx)
	events = append(events, opponentEvents...)

	return b.result(events, err), err
}

// Resume retries an opponent move that was interrupted by an oracle error.
// The same move is used again.
func (b *Battle) Resume(ctx context.Context) (TurnResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.phase != PHASE_RESOLVING_OPPONENT || b.resolving {
		return TurnResult{}, fmt.Errorf("resume in phase %q: %w", PhaseName(b.phase), ErrWrongPhase)
	}

	b.logger.Info("resuming opponent move", "move", b.pendingMove)

	events, err := b.resolveOpponent(ctx)
	return b.result(events, err), err
}

// Abort ends a battle that has not finished yet. A battle that is already over is left alone.
// Any oracle call still in flight has its result discarded.
func (b *Battle) Abort() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.phase == PHASE_GAMEOVER || b.phase == PHASE_ABORTED {
		return
	}

	b.logger.Info("battle aborted", "phase", PhaseName(b.phase), "turn", b.turn)

	b.phase = PHASE_ABORTED
	b.pendingMove = ""
}

// must hold b.mu
func (b *Battle) resolveOpponent(ctx context.Context) ([]BattleEvent, error) {
	events, err := b.strike(ctx, OPPONENT, b.pendingMove)
	if err != nil {
		return nil, err
	}

	b.pendingMove = ""

	if b.phase == PHASE_GAMEOVER {
		return events, nil
	}

	end := TurnEndEvent{Turn: b.turn}
	b.turn++
	b.phase = PHASE_AWAITING_PLAYER
	b.emit(end)

	return append(events, end), nil
}

// strike runs one move from side against the other side.
// Must be called with b.mu held. The lock is released while the oracle is queried
// so snapshots stay available, b.resolving blocks other resolutions in the meantime.
// Nothing is changed or emitted unless a damage roll is obtained.
func (b *Battle) strike(ctx context.Context, side int, move string) ([]BattleEvent, error) {
	attacker := b.participant(side)
	defender := b.participant(OtherSide(side))

	attackerRecord := attacker.Record
	defenderRecord := defender.Record
	oracle := b.oracle
	timeout := b.oracleTimeout

	b.resolving = true
	b.mu.Unlock()

	callCtx, cancel := context.WithTimeout(ctx, timeout)
	damageRange, err := oracle.DamageRange(callCtx, attackerRecord, defenderRecord, move)
	cancel()

	b.mu.Lock()
	b.resolving = false

	if b.phase == PHASE_ABORTED {
		return nil, ErrAborted
	}

	damage := 0
	if err == nil {
		damage, err = damageRange.Roll(b.rng)
	}

	if err != nil {
		oracleErr := &DamageOracleError{
			Attacker: attackerRecord.Name,
			Defender: defenderRecord.Name,
			Move:     move,
			Err:      err,
		}

		b.logger.Error(oracleErr, "damage oracle failed", "phase", PhaseName(b.phase), "turn", b.turn)
		return nil, oracleErr
	}

	before, after := defender.ApplyDamage(damage)

	b.logger.V(1).Info("move resolved",
		"attacker", attackerRecord.Name,
		"defender", defenderRecord.Name,
		"move", move,
		"min", damageRange.Min,
		"max", damageRange.Max,
		"roll", damage,
		"hp_after", after,
	)

	events := []BattleEvent{
		MoveUsedEvent{
			Attacker:     side,
			AttackerName: attackerRecord.Name,
			Move:         move,
		},
		DamageEvent{
			Target:       OtherSide(side),
			TargetName:   defenderRecord.Name,
			AttackerName: attackerRecord.Name,
			Damage:       damage,
			HpBefore:     before,
			HpAfter:      after,
		},
	}

	if !defender.Alive() {
		b.phase = PHASE_GAMEOVER
		b.winner = side
		b.pendingMove = ""

		events = append(events, FaintEvent{Side: OtherSide(side), Name: defenderRecord.Name}, GameOverEvent{Winner: side})

		b.logger.Info("battle over", "winner", side, "turn", b.turn)
	}

	b.emit(events...)

	return events, nil
}

func (b *Battle) pickOpponentMove() string {
	return b.opponent.Moves[b.rng.IntN(len(b.opponent.Moves))]
}

func (b *Battle) emit(events ...BattleEvent) {
	for _, event := range events {
		for _, listener := range b.listeners {
			listener(event)
		}
	}
}

func (b *Battle) result(events []BattleEvent, err error) TurnResult {
	kind := RESULT_RESOLVED
	switch {
	case err != nil:
		kind = RESULT_INTERRUPTED
	case b.phase == PHASE_GAMEOVER:
		kind = RESULT_GAMEOVER
	}

	return TurnResult{Kind: kind, Events: events}
}
