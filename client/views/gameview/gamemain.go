package gameview

import (
	"context"
	"errors"
	"math/rand/v2"
	"reflect"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/nathanieltooley/pokeduel/client/global"
	"github.com/nathanieltooley/pokeduel/client/rendering"
	"github.com/nathanieltooley/pokeduel/duel"
	"github.com/nathanieltooley/pokeduel/oracle"
	"github.com/rs/zerolog/log"
)

const (
	_MESSAGE_TIME = time.Second * 2
	// total time a health bar takes to drain, however much damage was done
	_HP_ANIMATION_TIME = time.Second
)

// game state machine
const (
	SM_WAITING_FOR_USER_ACTION = iota
	// a turn is being resolved in the background
	SM_RESOLVING
	SM_SHOWING_EVENTS
	SM_ERRORED
)

type (
	turnResolvedMsg struct {
		result duel.TurnResult
		err    error
	}
	nextNotifMsg struct{}
	hpTickMsg    struct {
		side int
		// ticks from an animation that was replaced are dropped
		generation int
	}
)

// hpDisplay is the health shown on screen, which trails the real health while damage is animated
type hpDisplay struct {
	shown      int
	target     int
	interval   time.Duration
	generation int
}

type MainGameModel struct {
	battle     *duel.Battle
	playerName string
	// builds the screen to return to when the player gives up
	exit func() tea.Model

	currentSmState int

	eventQueue          []duel.BattleEvent
	messageQueue        []string
	currentStateMessage string

	hp map[int]*hpDisplay

	panel movePanel
	// last move the player picked, resubmitted on retry
	chosenMove string

	// error to show once the queued events are done
	pendingErr error
	currentErr error
}

// NewGame picks a random pokemon for each side and starts the battle
func NewGame(exit func() tea.Model) (tea.Model, tea.Cmd) {
	player := global.DEX.GetRandomPokemon(global.RNG)
	opponent := global.DEX.GetRandomPokemon(global.RNG)

	// one rng per battle, resolution runs off the ui goroutine
	battleRng := rand.New(rand.NewPCG(global.RNG.Uint64(), global.RNG.Uint64()))

	battle, err := duel.NewBattle(duel.BattleConfig{
		Player:        player,
		Opponent:      opponent,
		Oracle:        global.NewOracle(),
		Rng:           battleRng,
		OracleTimeout: global.OracleTimeout(),
	})
	if err != nil {
		log.Err(err).Str("player", player.Name).Str("opponent", opponent.Name).Msg("could not create battle")
		return newEndScreen("Could not start the battle: "+err.Error(), exit), nil
	}

	m := newGameModel(battle, global.Opt.LocalPlayerName, exit)
	return m, m.Init()
}

func newGameModel(battle *duel.Battle, playerName string, exit func() tea.Model) MainGameModel {
	battle.Subscribe(eventLogger(battle.ID()))

	view := battle.Snapshot()

	return MainGameModel{
		battle:         battle,
		playerName:     playerName,
		exit:           exit,
		currentSmState: SM_RESOLVING,
		hp: map[int]*hpDisplay{
			duel.PLAYER:   {shown: view.Player.Hp, target: view.Player.Hp},
			duel.OPPONENT: {shown: view.Opponent.Hp, target: view.Opponent.Hp},
		},
		panel: newMovePanel(view.Player.Moves),
	}
}

func eventLogger(battleID uuid.UUID) func(duel.BattleEvent) {
	return func(event duel.BattleEvent) {
		log.Info().
			Str("battle_id", battleID.String()).
			Str("event", reflect.TypeOf(event).Name()).
			Strs("messages", event.Messages()).
			Msg("battle event")
	}
}

func startCmd(battle *duel.Battle) tea.Cmd {
	return func() tea.Msg {
		result, err := battle.Start(context.Background())
		return turnResolvedMsg{result, err}
	}
}

func submitCmd(battle *duel.Battle, move string) tea.Cmd {
	return func() tea.Msg {
		result, err := battle.SubmitPlayerMove(context.Background(), move)
		return turnResolvedMsg{result, err}
	}
}

func resumeCmd(battle *duel.Battle) tea.Cmd {
	return func() tea.Msg {
		result, err := battle.Resume(context.Background())
		return turnResolvedMsg{result, err}
	}
}

func (m MainGameModel) Init() tea.Cmd {
	return startCmd(m.battle)
}

func (m MainGameModel) View() string {
	view := m.battle.Snapshot()

	var bottom string
	switch m.currentSmState {
	case SM_WAITING_FOR_USER_ACTION:
		bottom = m.panel.View()
	case SM_ERRORED:
		bottom = errorPanel(m.currentErr)
	case SM_RESOLVING:
		bottom = "Waiting for the damage calculator..."
	}

	return rendering.GlobalCenter(
		lipgloss.JoinVertical(
			lipgloss.Center,

			turnStyle.Render(formatTurn(view.Turn)),

			rendering.ButtonStyle.Width(50).Render(m.currentStateMessage),

			lipgloss.JoinHorizontal(
				lipgloss.Center,
				newPlayerPanel(m.playerName, view.Player, m.hp[duel.PLAYER].shown).View(),
				newPlayerPanel("Opponent", view.Opponent, m.hp[duel.OPPONENT].shown).View(),
			),

			bottom,
		),
	)
}

// Returns true if there was a message in the queue
func (m *MainGameModel) nextStateMsg() bool {
	if len(m.messageQueue) == 0 {
		return false
	}

	m.currentStateMessage = m.messageQueue[0]
	m.messageQueue = m.messageQueue[1:]

	log.Debug().Str("message", m.currentStateMessage).Msg("rendering next message")

	return true
}

// nextEvent moves the next queued event on screen. Returns false when the queue is empty.
func (m *MainGameModel) nextEvent() (tea.Cmd, bool) {
	if len(m.eventQueue) == 0 {
		return nil, false
	}

	event := m.eventQueue[0]
	m.eventQueue = m.eventQueue[1:]

	m.messageQueue = append(m.messageQueue, event.Messages()...)

	if damage, ok := event.(duel.DamageEvent); ok && !damage.Immune() {
		return m.animateDamage(damage), true
	}

	return nil, true
}

func (m *MainGameModel) animateDamage(event duel.DamageEvent) tea.Cmd {
	display := m.hp[event.Target]
	// finish any animation still running for this bar
	display.shown = event.HpBefore
	display.target = event.HpAfter
	display.generation++

	drop := event.HpBefore - event.HpAfter
	if drop <= 0 {
		return nil
	}

	display.interval = _HP_ANIMATION_TIME / time.Duration(drop)
	return hpTick(event.Target, display.generation, display.interval)
}

func hpTick(side int, generation int, interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return hpTickMsg{side, generation}
	})
}

func (m *MainGameModel) showResult(result duel.TurnResult, err error) tea.Cmd {
	m.eventQueue = append(m.eventQueue, result.Events...)
	m.pendingErr = err
	m.currentSmState = SM_SHOWING_EVENTS

	return func() tea.Msg { return nextNotifMsg{} }
}

// finishEvents runs once every queued event has been shown
func (m MainGameModel) finishEvents() (tea.Model, tea.Cmd) {
	m.currentStateMessage = ""

	view := m.battle.Snapshot()
	if view.Phase == duel.PHASE_GAMEOVER {
		message := (duel.GameOverEvent{Winner: view.Winner}).Messages()[0]
		return newEndScreen(message, m.exit), nil
	}

	if m.pendingErr != nil {
		m.currentErr = m.pendingErr
		m.pendingErr = nil
		m.currentSmState = SM_ERRORED
		return m, nil
	}

	m.currentSmState = SM_WAITING_FOR_USER_ACTION
	return m, nil
}

func (m MainGameModel) retry() (tea.Model, tea.Cmd) {
	view := m.battle.Snapshot()

	switch view.Phase {
	case duel.PHASE_RESOLVING_OPPONENT:
		m.currentSmState = SM_RESOLVING
		return m, resumeCmd(m.battle)
	case duel.PHASE_AWAITING_PLAYER:
		m.currentSmState = SM_RESOLVING
		return m, submitCmd(m.battle, m.chosenMove)
	case duel.PHASE_NOT_STARTED:
		m.currentSmState = SM_RESOLVING
		return m, startCmd(m.battle)
	}

	log.Warn().Str("phase", duel.PhaseName(view.Phase)).Msg("nothing to retry")
	return m.finishEvents()
}

func (m MainGameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.currentSmState {
		case SM_WAITING_FOR_USER_ACTION:
			if key.Matches(msg, global.SelectKey) {
				m.chosenMove = m.panel.Selected()
				m.currentSmState = SM_RESOLVING

				log.Info().Str("move", m.chosenMove).Msg("player chose move")
				return m, submitCmd(m.battle, m.chosenMove)
			}

			m.panel = m.panel.Update(msg)
		case SM_ERRORED:
			if key.Matches(msg, global.RetryKey) {
				return m.retry()
			}

			if key.Matches(msg, global.OfflineKey) {
				log.Info().Msg("switching to the offline damage oracle")
				m.battle.UseOracle(oracle.NewLocal(global.DEX))
				return m.retry()
			}

			if key.Matches(msg, global.BackKey) {
				m.battle.Abort()
				return m.exit(), nil
			}
		}
	case turnResolvedMsg:
		var invalid *duel.InvalidMoveError
		if errors.As(msg.err, &invalid) {
			// the panel only offers assigned moves, so this is a bug rather than a user error
			log.Err(msg.err).Msg("battle rejected the chosen move")
			m.currentSmState = SM_WAITING_FOR_USER_ACTION
			return m, nil
		}

		if msg.err != nil {
			log.Err(msg.err).Int("kind", msg.result.Kind).Msg("turn was interrupted")
		}

		return m, m.showResult(msg.result, msg.err)
	case nextNotifMsg:
		if m.nextStateMsg() {
			return m, tea.Tick(_MESSAGE_TIME, func(t time.Time) tea.Msg {
				return nextNotifMsg{}
			})
		}

		// Go to the next event once we run out of messages
		animation, ok := m.nextEvent()
		if !ok {
			return m.finishEvents()
		}

		delay := _MESSAGE_TIME
		if !m.nextStateMsg() {
			delay = 0
		}

		return m, tea.Batch(animation, tea.Tick(delay, func(t time.Time) tea.Msg {
			return nextNotifMsg{}
		}))
	case hpTickMsg:
		display := m.hp[msg.side]
		if msg.generation != display.generation {
			return m, nil
		}

		if display.shown > display.target {
			display.shown--
		}

		if display.shown > display.target {
			return m, hpTick(msg.side, display.generation, display.interval)
		}
	}

	return m, nil
}
