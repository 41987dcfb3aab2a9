// Package session hosts concurrent player-vs-AI battles behind string ids.
// It is the one routing layer every front end (terminal, TCP, web, MCP)
// uses to turn requests into engine calls.
package session

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/peterkuimelis/deckclash/internal/game"
	"github.com/peterkuimelis/deckclash/internal/log"
)

var (
	ErrBattleNotFound = errors.New("battle not found")
	ErrBattleOver     = errors.New("battle is over")
	ErrUnknownStarter = errors.New("unknown starter")
	ErrBadCardIndex   = errors.New("no card at hand index")
)

// DefaultLogTail is how many log lines a StateView carries by default.
const DefaultLogTail = 12

// Config configures a Manager.
type Config struct {
	Seed    int64       // base RNG seed; 0 seeds every battle from the clock
	Logger  *zap.Logger // process logger; nil = no-op
	LogTail int         // log lines per StateView (0 = DefaultLogTail)

	// Events, when set, creates the event logger for each new battle.
	Events func(id string) log.EventLogger
}

// Session is one running battle.
type Session struct {
	ID        string
	StarterID string
	Started   time.Time
	Battle    *game.BattleState

	engine *game.Engine
}

// Summary is a short description of a session for listings.
type Summary struct {
	ID       string    `json:"id"`
	Player   string    `json:"player"`
	Opponent string    `json:"opponent"`
	Round    int       `json:"round"`
	Over     bool      `json:"over"`
	Started  time.Time `json:"started"`
}

// Outcome is what a state-changing call returns: the log lines it produced
// and the resulting state.
type Outcome struct {
	ID    string     `json:"id"`
	Log   []string   `json:"log"`
	State *StateView `json:"state"`
}

// Manager owns all sessions. Every method is safe for concurrent use; engine
// calls run under the manager lock so each battle is mutated by one caller
// at a time.
type Manager struct {
	mu       sync.Mutex
	catalog  *game.Catalog
	cfg      Config
	logger   *zap.Logger
	sessions map[string]*Session
	started  int64
}

// NewManager creates a session manager over a content catalog.
func NewManager(catalog *game.Catalog, cfg Config) *Manager {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.LogTail == 0 {
		cfg.LogTail = DefaultLogTail
	}
	return &Manager{
		catalog:  catalog,
		cfg:      cfg,
		logger:   logger,
		sessions: make(map[string]*Session),
	}
}

// Catalog returns the content catalog battles are built from.
func (m *Manager) Catalog() *game.Catalog {
	return m.catalog
}

// Start begins a battle for a starter loadout against a random opponent of
// the given difficulty. If the opponent takes the first turn, it is played
// out before Start returns.
func (m *Manager) Start(starterID string, difficulty game.Difficulty) (*Outcome, error) {
	starter, ok := m.catalog.Starter(starterID)
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownStarter, starterID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.NewString()
	m.started++
	seed := m.cfg.Seed
	if seed != 0 {
		seed += m.started
	}
	var events log.EventLogger
	if m.cfg.Events != nil {
		events = m.cfg.Events(id)
	}
	engine := game.NewEngine(m.catalog, game.EngineConfig{Logger: events, Seed: seed})

	bs, err := engine.CreateBattle(starter, m.catalog.Opponents(), difficulty)
	if err != nil {
		return nil, fmt.Errorf("start battle: %w", err)
	}
	s := &Session{ID: id, StarterID: starterID, Started: time.Now(), Battle: bs, engine: engine}
	m.sessions[id] = s

	m.logger.Info("battle started",
		zap.String("id", id),
		zap.String("starter", starterID),
		zap.String("opponent", bs.OpponentID),
		zap.Stringer("difficulty", difficulty))

	m.runOpponent(s)
	m.logOutcome(s)
	return m.outcome(s, 0), nil
}

// Get returns a summary of a session.
func (m *Manager) Get(id string) (Summary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, err := m.find(id)
	if err != nil {
		return Summary{}, err
	}
	return summarize(s), nil
}

// Snapshot returns the current state of a battle.
func (m *Manager) Snapshot(id string) (*StateView, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, err := m.find(id)
	if err != nil {
		return nil, err
	}
	return BuildStateView(s.ID, s.Battle, m.catalog.Conditions(), m.cfg.LogTail), nil
}

// Play plays the card at a position in the player's hand. A play the rules
// reject is not an error: it shows up as a single log line and leaves the
// battle unchanged.
func (m *Manager) Play(id string, handIndex int) (*Outcome, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, err := m.find(id)
	if err != nil {
		return nil, err
	}
	bs := s.Battle
	if bs.Over {
		return nil, fmt.Errorf("%w: %s", ErrBattleOver, bs.Result)
	}
	ci := bs.Player().Hand.At(handIndex)
	if ci == nil {
		return nil, fmt.Errorf("%w %d (hand has %d cards)", ErrBadCardIndex, handIndex, bs.Player().Hand.Len())
	}

	start := len(bs.Log)
	s.engine.PlayCard(bs, game.SidePlayer, ci)
	m.logOutcome(s)
	return m.outcome(s, start), nil
}

// EndTurn ends the player's turn and plays out the opponent's turn.
func (m *Manager) EndTurn(id string) (*Outcome, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, err := m.find(id)
	if err != nil {
		return nil, err
	}
	bs := s.Battle
	if bs.Over {
		return nil, fmt.Errorf("%w: %s", ErrBattleOver, bs.Result)
	}

	start := len(bs.Log)
	if bs.Turn == game.PlayerTurn {
		s.engine.EndTurn(bs)
	}
	m.runOpponent(s)
	m.logOutcome(s)
	return m.outcome(s, start), nil
}

// Close discards a session.
func (m *Manager) Close(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, err := m.find(id); err != nil {
		return err
	}
	delete(m.sessions, id)
	m.logger.Debug("battle closed", zap.String("id", id))
	return nil
}

// List returns all sessions, oldest first.
func (m *Manager) List() []Summary {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Summary, 0, len(m.sessions))
	for _, s := range m.sessions {
		out = append(out, summarize(s))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Started.Equal(out[j].Started) {
			return out[i].ID < out[j].ID
		}
		return out[i].Started.Before(out[j].Started)
	})
	return out
}

func (m *Manager) find(id string) (*Session, error) {
	s, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrBattleNotFound, id)
	}
	return s, nil
}

// runOpponent plays opponent turns until it is the player's turn again or
// the battle ends.
func (m *Manager) runOpponent(s *Session) {
	for !s.Battle.Over && s.Battle.Turn == game.OpponentTurn {
		s.engine.OpponentAct(s.Battle)
	}
}

func (m *Manager) outcome(s *Session, start int) *Outcome {
	return &Outcome{
		ID:    s.ID,
		Log:   append([]string(nil), s.Battle.Log[start:]...),
		State: BuildStateView(s.ID, s.Battle, m.catalog.Conditions(), m.cfg.LogTail),
	}
}

func (m *Manager) logOutcome(s *Session) {
	bs := s.Battle
	if !bs.Over {
		return
	}
	m.logger.Info("battle over",
		zap.String("id", s.ID),
		zap.String("winner", bs.Side(bs.Winner).Name),
		zap.Int("round", bs.Round))
}

func summarize(s *Session) Summary {
	bs := s.Battle
	return Summary{
		ID:       s.ID,
		Player:   bs.Player().Name,
		Opponent: bs.Opponent().Name,
		Round:    bs.Round,
		Over:     bs.Over,
		Started:  s.Started,
	}
}
