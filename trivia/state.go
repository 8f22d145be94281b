package trivia

import (
	"fmt"
	"sync"
)

// Mode switches the board between play and authoring views. The two are
// mutually exclusive views over the same state.
type Mode string

const (
	ModeGame Mode = "game"
	ModeEdit Mode = "edit"
)

// GameState is the single source of truth for round content, the roster
// and the session mode. It performs no I/O; the scoring engine, editor and
// roster manager mutate it and queue persistence themselves.
//
// The original design ran on a single event loop; on a multi-threaded
// runtime the internal mutex preserves the one-writer-at-a-time invariant
// against the websocket hub and the write-behind saver.
type GameState struct {
	mu        sync.Mutex
	rounds    *Rounds
	active    RoundKey
	mode      Mode
	players   []*Player
	teams     []*Team
	draft     *Round
	usedCells map[string]struct{}
}

// NewGameState starts with two empty default rounds, the individual round
// active, in game mode.
func NewGameState() *GameState {
	return &GameState{
		rounds:    NewRounds(),
		active:    RoundIndividual,
		mode:      ModeGame,
		players:   []*Player{},
		teams:     []*Team{},
		usedCells: make(map[string]struct{}),
	}
}

func (s *GameState) ActiveRound() RoundKey {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// CurrentRound returns the live round for the active key. The caller is
// expected to be the sole writer (scoring engine or editor commit).
func (s *GameState) CurrentRound() *Round {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rounds.Get(s.active)
}

// SetActiveRound switches the board. A no-op when key is already active.
// A missing or structurally broken round under key is replaced with a
// fresh empty one carrying the canonical default name. Transient used-cell
// tracking is cleared. The caller persists separately.
func (s *GameState) SetActiveRound(key RoundKey) error {
	if !key.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownRound, key)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if key == s.active {
		return nil
	}

	s.active = key
	s.usedCells = make(map[string]struct{})

	round := s.rounds.Get(key)
	if round == nil || round.Categories == nil {
		fresh := NewRound(key)
		if round != nil && round.Name != "" {
			fresh.Name = round.Name
		}
		s.rounds.Set(key, fresh)
	}

	return nil
}

func (s *GameState) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

func (s *GameState) SetMode(mode Mode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = mode
}

// StartEditing deep-copies the current round into the editing draft.
// Starting while a draft is already open discards the previous one.
func (s *GameState) StartEditing() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = s.rounds.Get(s.active).Clone()
}

// CancelEditing discards the draft without touching the live rounds.
func (s *GameState) CancelEditing() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = nil
}

// CommitEditing deep-copies the draft back into the active round and
// clears the draft. The caller persists separately.
func (s *GameState) CommitEditing() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.draft == nil {
		return ErrNotEditing
	}
	s.rounds.Set(s.active, s.draft.Clone())
	s.draft = nil
	return nil
}

// Draft returns the live editing draft, or nil when no session is open.
func (s *GameState) Draft() *Round {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

// IsTeamMode reports whether scoring currently targets teams. All
// downstream dispatch between the two scorable variants goes through
// this, never through shape checks.
func (s *GameState) IsTeamMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active == RoundGrupal
}

// CurrentScorables returns the players in the individual round and the
// teams in the group round.
func (s *GameState) CurrentScorables() []Scorable {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active == RoundGrupal {
		out := make([]Scorable, len(s.teams))
		for i, t := range s.teams {
			out[i] = t
		}
		return out
	}
	out := make([]Scorable, len(s.players))
	for i, p := range s.players {
		out[i] = p
	}
	return out
}

func (s *GameState) Players() []*Player {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.players
}

func (s *GameState) Teams() []*Team {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.teams
}

func (s *GameState) setPlayers(players []*Player) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.players = players
}

func (s *GameState) setTeams(teams []*Team) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.teams = teams
}

// LoadRounds installs a loaded (already normalized) rounds record.
func (s *GameState) LoadRounds(rounds *Rounds) {
	if rounds == nil {
		rounds = NewRounds()
	}
	rounds.Normalize()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rounds = rounds
}

// LoadPlayers installs a loaded roster, assigning palette colors to any
// players saved without one.
func (s *GameState) LoadPlayers(players []*Player) {
	if players == nil {
		players = []*Player{}
	}
	for _, p := range players {
		if p.Color == "" {
			p.Color = RandomColor()
		}
		if p.ID == "" {
			p.ID = newID()
		}
	}
	s.setPlayers(players)
}

// LoadTeams installs a loaded team roster.
func (s *GameState) LoadTeams(teams []*Team) {
	if teams == nil {
		teams = []*Team{}
	}
	for _, t := range teams {
		if t.ID == "" {
			t.ID = newID()
		}
	}
	s.setTeams(teams)
}

// RoundsSnapshot returns a disjoint copy of both rounds, safe to hand to
// the saver or a presentation layer.
func (s *GameState) RoundsSnapshot() *Rounds {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rounds.Clone()
}

// PlayersSnapshot returns a disjoint copy of the player roster.
func (s *GameState) PlayersSnapshot() []*Player {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clonePlayers(s.players)
}

// TeamsSnapshot returns a disjoint copy of the team roster.
func (s *GameState) TeamsSnapshot() []*Team {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneTeams(s.teams)
}

// DraftSnapshot returns a disjoint copy of the editing draft, or nil.
func (s *GameState) DraftSnapshot() *Round {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft.Clone()
}

func cellKey(t Target) string {
	if t.IsFinal() {
		return "final"
	}
	category, row := t.Cell()
	return fmt.Sprintf("%d-%d", category, row)
}

// CellUsed reports whether the target was already played this session.
// The tracking is transient: it survives an editor commit replacing the
// round content, and is cleared by a round switch or a question reset.
func (s *GameState) CellUsed(t Target) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, used := s.usedCells[cellKey(t)]
	return used
}

func (s *GameState) markCellUsed(t Target) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.usedCells[cellKey(t)] = struct{}{}
}

func (s *GameState) clearUsedCells() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.usedCells = make(map[string]struct{})
}
