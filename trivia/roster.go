package trivia

import (
	"math/rand"
	"strings"

	"github.com/google/uuid"
)

// Palette assigned to players and teams created without an explicit color.
var palette = []string{
	"#ff7675", "#74b9ff", "#55efc4", "#ffeaa7",
	"#a29bfe", "#fab1a0", "#81ecec", "#fd79a8",
}

// RandomColor picks a palette color.
func RandomColor() string {
	return palette[rand.Intn(len(palette))]
}

func newID() string {
	return uuid.NewString()
}

// Roster manages the player and team lists. Team membership is filtered at
// creation time so a player sits on at most one team; later player edits do
// not retroactively rewrite member lists.
type Roster struct {
	state *GameState
	saver flusher
}

func NewRoster(state *GameState, saver flusher) *Roster {
	return &Roster{state: state, saver: saver}
}

// AddPlayer creates a player with score 0. An empty color gets a palette
// color; the avatar is optional.
func (r *Roster) AddPlayer(name, color string, avatar *Media) (*Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrBlankName
	}
	if color == "" {
		color = RandomColor()
	}

	player := &Player{
		ID:     newID(),
		Name:   name,
		Color:  color,
		Avatar: avatar,
	}

	r.state.mu.Lock()
	r.state.players = append(r.state.players, player)
	r.state.mu.Unlock()

	r.flushPlayers()
	return player, nil
}

// EditPlayer rewrites a player's fields, including a direct score
// override. A nil avatar keeps the existing one.
func (r *Roster) EditPlayer(index int, name, color string, score int, avatar *Media) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrBlankName
	}

	r.state.mu.Lock()
	if index < 0 || index >= len(r.state.players) {
		r.state.mu.Unlock()
		return ErrNoSuchScorable
	}
	player := r.state.players[index]
	player.Name = name
	if color != "" {
		player.Color = color
	}
	player.Score = score
	if avatar != nil {
		player.Avatar = avatar
	}
	r.state.mu.Unlock()

	r.flushPlayers()
	return nil
}

// RemovePlayer drops a player. The last remaining player cannot be
// removed. Requires prior confirmation by the caller.
func (r *Roster) RemovePlayer(index int) error {
	r.state.mu.Lock()
	if index < 0 || index >= len(r.state.players) {
		r.state.mu.Unlock()
		return ErrNoSuchScorable
	}
	if len(r.state.players) <= 1 {
		r.state.mu.Unlock()
		return ErrLastPlayer
	}
	r.state.players = append(r.state.players[:index], r.state.players[index+1:]...)
	r.state.mu.Unlock()

	r.flushPlayers()
	return nil
}

// AvailablePlayers returns the players not yet on any team.
func (r *Roster) AvailablePlayers() []*Player {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	return r.availableLocked()
}

func (r *Roster) availableLocked() []*Player {
	assigned := make(map[string]struct{})
	for _, t := range r.state.teams {
		for _, m := range t.Members {
			assigned[m] = struct{}{}
		}
	}
	out := make([]*Player, 0, len(r.state.players))
	for _, p := range r.state.players {
		if _, taken := assigned[p.Name]; !taken {
			out = append(out, p)
		}
	}
	return out
}

// CreateTeam forms a team with score 0 from the given member names.
// Members already on another team are filtered out; at least one must
// survive the filter.
func (r *Roster) CreateTeam(name, color string, members []string) (*Team, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrBlankName
	}
	if color == "" {
		color = RandomColor()
	}

	r.state.mu.Lock()
	available := make(map[string]struct{})
	for _, p := range r.availableLocked() {
		available[p.Name] = struct{}{}
	}
	kept := make([]string, 0, len(members))
	for _, m := range members {
		if _, ok := available[m]; ok {
			kept = append(kept, m)
			delete(available, m)
		}
	}
	if len(kept) == 0 {
		r.state.mu.Unlock()
		return nil, ErrNoMembers
	}

	team := &Team{
		ID:      newID(),
		Name:    name,
		Color:   color,
		Members: kept,
	}
	r.state.teams = append(r.state.teams, team)
	r.state.mu.Unlock()

	r.flushTeams()
	return team, nil
}

// RemoveTeam dissolves a team; its players remain individuals. Requires
// prior confirmation by the caller.
func (r *Roster) RemoveTeam(index int) error {
	r.state.mu.Lock()
	if index < 0 || index >= len(r.state.teams) {
		r.state.mu.Unlock()
		return ErrNoSuchScorable
	}
	r.state.teams = append(r.state.teams[:index], r.state.teams[index+1:]...)
	r.state.mu.Unlock()

	r.flushTeams()
	return nil
}

func (r *Roster) flushPlayers() {
	if r.saver != nil {
		r.saver.QueuePlayers(r.state.PlayersSnapshot())
	}
}

func (r *Roster) flushTeams() {
	if r.saver != nil {
		r.saver.QueueTeams(r.state.TeamsSnapshot())
	}
}
