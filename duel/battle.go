package duel

import (
	"errors"
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"github.com/go-logr/logr"
	"github.com/google/uuid"
)

// battle phases
const (
	PHASE_NOT_STARTED = iota
	PHASE_AWAITING_PLAYER
	PHASE_RESOLVING_PLAYER
	PHASE_RESOLVING_OPPONENT
	PHASE_GAMEOVER
	PHASE_ABORTED
)

const DEFAULT_ORACLE_TIMEOUT = 10 * time.Second

func PhaseName(phase int) string {
	switch phase {
	case PHASE_NOT_STARTED:
		return "not started"
	case PHASE_AWAITING_PLAYER:
		return "awaiting player"
	case PHASE_RESOLVING_PLAYER:
		return "resolving player"
	case PHASE_RESOLVING_OPPONENT:
		return "resolving opponent"
	case PHASE_GAMEOVER:
		return "game over"
	case PHASE_ABORTED:
		return "aborted"
	default:
		return "unknown"
	}
}

type BattleConfig struct {
	Player   PokemonRecord
	Opponent PokemonRecord
	Oracle   DamageOracle
	// Source of every random decision in the battle. A new seeded generator is used when nil.
	Rng *rand.Rand
	// Max time allowed for one oracle call. DEFAULT_ORACLE_TIMEOUT when zero.
	OracleTimeout time.Duration
}

// Battle owns the whole state of one game. All methods are safe to call from
// multiple goroutines; turn resolution is serialized.
type Battle struct {
	mu sync.Mutex

	id       uuid.UUID
	player   Participant
	opponent Participant

	phase      int
	turn       int
	firstMover int
	winner     int

	// Opponent move chosen for a resolution that was interrupted by an oracle error
	pendingMove string
	// true while an oracle call is in flight and the lock is released
	resolving bool

	oracle        DamageOracle
	oracleTimeout time.Duration
	rng           *rand.Rand

	listeners []func(BattleEvent)
	logger    logr.Logger
}

// ParticipantView is a read only copy of a participant
type ParticipantView struct {
	Name  string
	Types []string
	Moves []string
	Hp    int
	Speed int
}

// BattleView is a read only copy of the battle taken at one point in time
type BattleView struct {
	ID         uuid.UUID
	Phase      int
	Turn       int
	FirstMover int
	// 0 until the battle is over
	Winner   int
	Player   ParticipantView
	Opponent ParticipantView
}

func (v BattleView) Over() bool {
	return v.Phase == PHASE_GAMEOVER || v.Phase == PHASE_ABORTED
}

// NewBattle samples both move sets and returns a battle waiting for Start.
func NewBattle(config BattleConfig) (*Battle, error) {
	if config.Oracle == nil {
		return nil, errors.New("battle needs a damage oracle")
	}

	rng := config.Rng
	if rng == nil {
		rng = NewRandomRNG()
	}

	timeout := config.OracleTimeout
	if timeout <= 0 {
		timeout = DEFAULT_ORACLE_TIMEOUT
	}

	playerMoves, err := SampleMoves(config.Player.Moves, rng)
	if err != nil {
		return nil, withRecord(err, config.Player.Name)
	}

	opponentMoves, err := SampleMoves(config.Opponent.Moves, rng)
	if err != nil {
		return nil, withRecord(err, config.Opponent.Name)
	}

	id := uuid.New()
	logger := internalLogger.WithName("battle").WithValues("battle_id", id.String())

	logger.Info("created battle",
		"player_pokemon", config.Player.Name,
		"player_moves", playerMoves,
		"opponent_pokemon", config.Opponent.Name,
		"opponent_moves", opponentMoves,
	)

	return &Battle{
		id:            id,
		player:        NewParticipant(config.Player, playerMoves),
		opponent:      NewParticipant(config.Opponent, opponentMoves),
		phase:         PHASE_NOT_STARTED,
		oracle:        config.Oracle,
		oracleTimeout: timeout,
		rng:           rng,
		logger:        logger,
	}, nil
}

// FirstMover returns the side that acts first: the faster pokemon, or the player on a speed tie.
func FirstMover(player PokemonRecord, opponent PokemonRecord) int {
	if opponent.Stats.Speed > player.Stats.Speed {
		return OPPONENT
	}

	return PLAYER
}

// Subscribe registers fn to be called, in order, for every event the battle emits.
// fn runs while the battle is locked and must not call back into the battle.
func (b *Battle) Subscribe(fn func(BattleEvent)) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.listeners = append(b.listeners, fn)
}

// UseOracle swaps the damage oracle, e.g. to fall back to an offline one after errors
func (b *Battle) UseOracle(oracle DamageOracle) {
	if oracle == nil {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.oracle = oracle
	b.logger.Info("damage oracle replaced")
}

func (b *Battle) ID() uuid.UUID {
	return b.id
}

func (b *Battle) Snapshot() BattleView {
	b.mu.Lock()
	defer b.mu.Unlock()

	return BattleView{
		ID:         b.id,
		Phase:      b.phase,
		Turn:       b.turn,
		FirstMover: b.firstMover,
		Winner:     b.winner,
		Player:     viewOf(b.player),
		Opponent:   viewOf(b.opponent),
	}
}

func (b *Battle) participant(side int) *Participant {
	if side == PLAYER {
		return &b.player
	}

	return &b.opponent
}

func viewOf(p Participant) ParticipantView {
	return ParticipantView{
		Name:  p.Record.Name,
		Types: slices.Clone(p.Record.Types),
		Moves: slices.Clone(p.Moves),
		Hp:    p.Hp,
		Speed: p.Record.Stats.Speed,
	}
}

func withRecord(err error, name string) error {
	var dataErr *DataError
	if errors.As(err, &dataErr) {
		dataErr.Record = name
	}

	return err
}
