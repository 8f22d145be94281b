package trivia

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddPlayer(t *testing.T) {
	s := NewGameState()
	r := NewRoster(s, nil)

	p, err := r.AddPlayer("  Ana  ", "", nil)
	require.NoError(t, err)
	assert.Equal(t, "Ana", p.Name)
	assert.NotEmpty(t, p.ID)
	assert.Contains(t, palette, p.Color)
	assert.Zero(t, p.Score)

	_, err = r.AddPlayer("   ", "", nil)
	assert.ErrorIs(t, err, ErrBlankName)
}

func TestEditPlayer(t *testing.T) {
	s := testState()
	r := NewRoster(s, nil)

	avatar := &Media{Kind: MediaImage, Payload: "data:image/png;base64,AAAA"}
	require.NoError(t, r.EditPlayer(0, "Anita", "#123456", 250, avatar))

	p := s.Players()[0]
	assert.Equal(t, "Anita", p.Name)
	assert.Equal(t, "#123456", p.Color)
	assert.Equal(t, 250, p.Score)
	assert.Same(t, avatar, p.Avatar)

	// nil avatar and empty color keep what the player already has
	require.NoError(t, r.EditPlayer(0, "Anita", "", 250, nil))
	assert.Equal(t, "#123456", s.Players()[0].Color)
	assert.Same(t, avatar, s.Players()[0].Avatar)

	assert.ErrorIs(t, r.EditPlayer(9, "Nadie", "", 0, nil), ErrNoSuchScorable)
}

func TestRemovePlayerFloor(t *testing.T) {
	s := testState()
	r := NewRoster(s, nil)

	require.NoError(t, r.RemovePlayer(1))
	require.NoError(t, r.RemovePlayer(1))
	require.Len(t, s.Players(), 1)

	assert.ErrorIs(t, r.RemovePlayer(0), ErrLastPlayer)
	assert.Len(t, s.Players(), 1)
}

func TestCreateTeamFiltersAssignedMembers(t *testing.T) {
	s := testState()
	r := NewRoster(s, nil)

	team1, err := r.CreateTeam("Rojos", "", []string{"Ana", "Beto"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Ana", "Beto"}, team1.Members)

	team2, err := r.CreateTeam("Azules", "", []string{"Ana", "Carla"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Carla"}, team2.Members)

	_, err = r.CreateTeam("Verdes", "", []string{"Ana", "Beto"})
	assert.ErrorIs(t, err, ErrNoMembers)

	_, err = r.CreateTeam("   ", "", []string{"Carla"})
	assert.ErrorIs(t, err, ErrBlankName)
}

func TestAvailablePlayers(t *testing.T) {
	s := testState()
	r := NewRoster(s, nil)

	_, err := r.CreateTeam("Rojos", "", []string{"Ana"})
	require.NoError(t, err)

	available := r.AvailablePlayers()
	names := make([]string, len(available))
	for i, p := range available {
		names[i] = p.Name
	}
	assert.Equal(t, []string{"Beto", "Carla"}, names)
}

func TestRemoveTeamFreesMembers(t *testing.T) {
	s := testState()
	r := NewRoster(s, nil)

	_, err := r.CreateTeam("Rojos", "", []string{"Ana", "Beto"})
	require.NoError(t, err)

	require.NoError(t, r.RemoveTeam(0))
	assert.Empty(t, s.Teams())

	team, err := r.CreateTeam("Azules", "", []string{"Ana"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Ana"}, team.Members)

	assert.ErrorIs(t, r.RemoveTeam(5), ErrNoSuchScorable)
}

func TestRosterQueuesSaves(t *testing.T) {
	s := testState()
	rec := &recordingFlusher{}
	r := NewRoster(s, rec)

	_, err := r.AddPlayer("Dora", "", nil)
	require.NoError(t, err)
	_, err = r.CreateTeam("Rojos", "", []string{"Dora"})
	require.NoError(t, err)

	assert.Equal(t, 1, rec.players)
	assert.Equal(t, 1, rec.teams)
}
