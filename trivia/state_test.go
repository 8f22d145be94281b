package trivia

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRounds() *Rounds {
	r := NewRounds()
	r.Individual.Categories = []string{"Historia", "Ciencia"}
	r.Individual.Questions = [][]*Question{
		{
			{Value: 100, Text: "Pregunta 1", Answer: "Respuesta 1"},
			{Value: 200, Text: "Pregunta 2", Answer: "Respuesta 2", MultipleChoice: "a / b / c"},
		},
		{
			{Value: 100, Text: "Pregunta 3", Answer: "Respuesta 3"},
			{Value: 200, Text: "Pregunta 4", Answer: "Respuesta 4"},
		},
	}
	r.Individual.FinalQuestion = &Question{Value: 500, Text: "Pregunta final", Answer: "Respuesta final"}
	r.Grupal.Categories = []string{"Deportes"}
	r.Grupal.Questions = [][]*Question{
		{{Value: 100, Text: "Pregunta G", Answer: "Respuesta G"}},
	}
	return r
}

func testState() *GameState {
	s := NewGameState()
	s.LoadRounds(testRounds())
	s.LoadPlayers([]*Player{
		{Name: "Ana"},
		{Name: "Beto"},
		{Name: "Carla"},
	})
	return s
}

func TestNewGameStateDefaults(t *testing.T) {
	s := NewGameState()

	assert.Equal(t, RoundIndividual, s.ActiveRound())
	assert.Equal(t, ModeGame, s.Mode())
	assert.False(t, s.IsTeamMode())

	round := s.CurrentRound()
	require.NotNil(t, round)
	assert.Equal(t, "Ronda Individual", round.Name)
	assert.Empty(t, round.Categories)
}

func TestSetActiveRound(t *testing.T) {
	s := testState()

	require.NoError(t, s.SetActiveRound(RoundGrupal))
	assert.Equal(t, RoundGrupal, s.ActiveRound())
	assert.Equal(t, "Ronda Grupal", s.CurrentRound().Name)
	assert.True(t, s.IsTeamMode())

	require.NoError(t, s.SetActiveRound(RoundIndividual))
	assert.Equal(t, "Historia", s.CurrentRound().Categories[0])
}

func TestSetActiveRoundUnknownKey(t *testing.T) {
	s := testState()

	err := s.SetActiveRound("bonus")
	require.ErrorIs(t, err, ErrUnknownRound)
	assert.Equal(t, RoundIndividual, s.ActiveRound())
}

func TestSetActiveRoundSameKeyPreservesContent(t *testing.T) {
	s := testState()
	s.CurrentRound().Questions[0][0].Used = true

	require.NoError(t, s.SetActiveRound(RoundIndividual))

	assert.True(t, s.CurrentRound().Questions[0][0].Used)
}

func TestSetActiveRoundRecreatesBrokenRound(t *testing.T) {
	s := testState()
	s.mu.Lock()
	s.rounds.Grupal = &Round{Name: "Ronda Especial"}
	s.mu.Unlock()

	require.NoError(t, s.SetActiveRound(RoundGrupal))

	round := s.CurrentRound()
	assert.Equal(t, "Ronda Especial", round.Name)
	assert.NotNil(t, round.Categories)
	assert.Empty(t, round.Categories)
}

func TestDraftIsolation(t *testing.T) {
	s := testState()
	s.StartEditing()

	draft := s.Draft()
	require.NotNil(t, draft)
	draft.Categories[0] = "Arte"
	draft.Questions[0][0].Text = "Editada"

	assert.Equal(t, "Historia", s.CurrentRound().Categories[0])
	assert.Equal(t, "Pregunta 1", s.CurrentRound().Questions[0][0].Text)

	require.NoError(t, s.CommitEditing())
	assert.Equal(t, "Arte", s.CurrentRound().Categories[0])
	assert.Equal(t, "Editada", s.CurrentRound().Questions[0][0].Text)
	assert.Nil(t, s.Draft())
}

func TestCancelEditingDiscardsDraft(t *testing.T) {
	s := testState()
	s.StartEditing()
	s.Draft().Categories[0] = "Arte"

	s.CancelEditing()

	assert.Nil(t, s.Draft())
	assert.Equal(t, "Historia", s.CurrentRound().Categories[0])
}

func TestStartEditingTwiceDiscardsPreviousDraft(t *testing.T) {
	s := testState()
	s.StartEditing()
	s.Draft().Categories[0] = "Arte"

	s.StartEditing()

	assert.Equal(t, "Historia", s.Draft().Categories[0])
}

func TestCommitEditingWithoutDraft(t *testing.T) {
	s := testState()
	require.ErrorIs(t, s.CommitEditing(), ErrNotEditing)
}

func TestCurrentScorablesDispatch(t *testing.T) {
	s := testState()
	s.LoadTeams([]*Team{
		{Name: "Rojos", Members: []string{"Ana", "Beto"}},
	})

	scorables := s.CurrentScorables()
	require.Len(t, scorables, 3)
	assert.Equal(t, "Ana", scorables[0].DisplayName())

	require.NoError(t, s.SetActiveRound(RoundGrupal))
	scorables = s.CurrentScorables()
	require.Len(t, scorables, 1)
	assert.Equal(t, "Rojos", scorables[0].DisplayName())
}

func TestSnapshotsAreDisjoint(t *testing.T) {
	s := testState()

	rounds := s.RoundsSnapshot()
	rounds.Individual.Questions[0][0].Text = "Mutada"
	assert.Equal(t, "Pregunta 1", s.CurrentRound().Questions[0][0].Text)

	players := s.PlayersSnapshot()
	players[0].Score = 999
	assert.Zero(t, s.Players()[0].Score)
}

func TestLoadPlayersFillsDefaults(t *testing.T) {
	s := NewGameState()
	s.LoadPlayers([]*Player{{Name: "Ana"}})

	p := s.Players()[0]
	assert.NotEmpty(t, p.ID)
	assert.Contains(t, palette, p.Color)
}

func TestLoadRoundsNormalizesNil(t *testing.T) {
	s := NewGameState()
	s.LoadRounds(nil)

	assert.Equal(t, "Ronda Individual", s.CurrentRound().Name)

	s.LoadRounds(&Rounds{Individual: &Round{Name: "Conservada"}})
	round := s.CurrentRound()
	assert.Equal(t, "Conservada", round.Name)
	assert.NotNil(t, round.Categories)
}
