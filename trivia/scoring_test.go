package trivia

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingFlusher struct {
	rounds  int
	players int
	teams   int
}

func (f *recordingFlusher) QueueRounds(*Rounds)    { f.rounds++ }
func (f *recordingFlusher) QueuePlayers([]*Player) { f.players++ }
func (f *recordingFlusher) QueueTeams([]*Team)     { f.teams++ }

func TestAwardFullValue(t *testing.T) {
	s := testState()
	e := NewEngine(s, nil)

	points, err := e.Award(0, 100, CellTarget(0, 0), false)
	require.NoError(t, err)
	assert.Equal(t, 100, points)
	assert.Equal(t, 100, s.Players()[0].Score)

	q := s.CurrentRound().Questions[0][0]
	assert.True(t, q.Used)
	assert.False(t, q.UsedWithOptions)
}

func TestAwardHalfValueRoundsUp(t *testing.T) {
	cases := []struct {
		base, want int
	}{
		{100, 50},
		{101, 51},
		{150, 75},
		{1, 1},
	}

	for _, tc := range cases {
		s := testState()
		e := NewEngine(s, nil)

		points, err := e.Award(0, tc.base, CellTarget(0, 1), true)
		require.NoError(t, err)
		assert.Equal(t, tc.want, points, "base %d", tc.base)
		assert.Equal(t, tc.want, s.Players()[0].Score)
		assert.True(t, s.CurrentRound().Questions[0][1].UsedWithOptions)
	}
}

func TestAwardUsedQuestionIsNoop(t *testing.T) {
	s := testState()
	e := NewEngine(s, nil)

	_, err := e.Award(0, 100, CellTarget(0, 0), false)
	require.NoError(t, err)

	_, err = e.Award(1, 100, CellTarget(0, 0), false)
	require.ErrorIs(t, err, ErrQuestionUsed)

	assert.Equal(t, 100, s.Players()[0].Score)
	assert.Zero(t, s.Players()[1].Score)
}

func TestAwardFinalQuestion(t *testing.T) {
	s := testState()
	e := NewEngine(s, nil)

	points, err := e.Award(2, 500, TargetFromColumn(-1, 0), false)
	require.NoError(t, err)
	assert.Equal(t, 500, points)
	assert.Equal(t, 500, s.Players()[2].Score)
	assert.True(t, s.CurrentRound().FinalQuestion.Used)
}

func TestAwardFinalQuestionAbsent(t *testing.T) {
	s := testState()
	s.CurrentRound().FinalQuestion = nil
	e := NewEngine(s, nil)

	_, err := e.Award(0, 500, FinalTarget(), false)
	require.ErrorIs(t, err, ErrNoFinalQuestion)
}

func TestAwardBadTargets(t *testing.T) {
	s := testState()
	e := NewEngine(s, nil)

	_, err := e.Award(0, 100, CellTarget(9, 0), false)
	assert.ErrorIs(t, err, ErrNoSuchQuestion)

	_, err = e.Award(0, 100, CellTarget(0, 9), false)
	assert.ErrorIs(t, err, ErrNoSuchQuestion)

	_, err = e.Award(9, 100, CellTarget(0, 0), false)
	assert.ErrorIs(t, err, ErrNoSuchScorable)
}

func TestAwardTeamsInGroupRound(t *testing.T) {
	s := testState()
	s.LoadTeams([]*Team{
		{Name: "Rojos", Members: []string{"Ana"}},
		{Name: "Azules", Members: []string{"Beto"}},
	})
	require.NoError(t, s.SetActiveRound(RoundGrupal))

	e := NewEngine(s, nil)
	points, err := e.Award(1, 100, CellTarget(0, 0), false)
	require.NoError(t, err)
	assert.Equal(t, 100, points)

	assert.Equal(t, 100, s.Teams()[1].Score)
	assert.Zero(t, s.Teams()[0].Score)
	for _, p := range s.Players() {
		assert.Zero(t, p.Score)
	}
}

func TestRoundsScoreIndependently(t *testing.T) {
	s := testState()
	e := NewEngine(s, nil)

	_, err := e.Award(0, 100, CellTarget(0, 0), false)
	require.NoError(t, err)

	require.NoError(t, s.SetActiveRound(RoundGrupal))
	assert.False(t, s.CurrentRound().Questions[0][0].Used)
}

func TestDeductAllowsNegativeScores(t *testing.T) {
	s := testState()
	e := NewEngine(s, nil)

	score, err := e.Deduct(0, 300)
	require.NoError(t, err)
	assert.Equal(t, -300, score)
	assert.Equal(t, -300, s.Players()[0].Score)
}

func TestDeductFloorAtZero(t *testing.T) {
	s := testState()
	e := NewEngine(s, nil)
	e.FloorAtZero = true

	score, err := e.Deduct(0, 300)
	require.NoError(t, err)
	assert.Zero(t, score)
	assert.Zero(t, s.Players()[0].Score)
}

func TestDeductLeavesQuestionsAlone(t *testing.T) {
	s := testState()
	e := NewEngine(s, nil)

	_, err := e.Deduct(0, 50)
	require.NoError(t, err)

	for _, column := range s.CurrentRound().Questions {
		for _, q := range column {
			assert.False(t, q.Used)
		}
	}
}

func TestResetScores(t *testing.T) {
	s := testState()
	s.LoadTeams([]*Team{{Name: "Rojos", Members: []string{"Ana"}, Score: 400}})
	e := NewEngine(s, nil)

	_, err := e.Award(0, 100, CellTarget(0, 0), false)
	require.NoError(t, err)

	e.ResetScores()

	for _, p := range s.Players() {
		assert.Zero(t, p.Score)
	}
	assert.Equal(t, 400, s.Teams()[0].Score)
	assert.True(t, s.CurrentRound().Questions[0][0].Used, "reset scores must not release questions")
}

func TestResetQuestions(t *testing.T) {
	s := testState()
	e := NewEngine(s, nil)

	_, err := e.Award(0, 100, CellTarget(0, 0), false)
	require.NoError(t, err)
	_, err = e.Award(1, 500, FinalTarget(), true)
	require.NoError(t, err)

	e.ResetQuestions()

	for _, column := range s.CurrentRound().Questions {
		for _, q := range column {
			assert.False(t, q.Used)
		}
	}
	assert.False(t, s.CurrentRound().FinalQuestion.Used)
	assert.Equal(t, 100, s.Players()[0].Score, "reset questions must not touch scores")
}

func TestAwardGuardSurvivesEditorCommit(t *testing.T) {
	s := testState()
	e := NewEngine(s, nil)

	// draft cloned before the award carries Used=false for every cell
	s.StartEditing()

	_, err := e.Award(0, 100, CellTarget(0, 0), false)
	require.NoError(t, err)

	require.NoError(t, s.CommitEditing())
	assert.False(t, s.CurrentRound().Questions[0][0].Used)

	_, err = e.Award(1, 100, CellTarget(0, 0), false)
	require.ErrorIs(t, err, ErrQuestionUsed)
	assert.Zero(t, s.Players()[1].Score)
}

func TestResetQuestionsReleasesCells(t *testing.T) {
	s := testState()
	e := NewEngine(s, nil)

	_, err := e.Award(0, 100, CellTarget(0, 0), false)
	require.NoError(t, err)
	require.True(t, s.CellUsed(CellTarget(0, 0)))

	e.ResetQuestions()

	assert.False(t, s.CellUsed(CellTarget(0, 0)))
	_, err = e.Award(1, 100, CellTarget(0, 0), false)
	require.NoError(t, err)
}

func TestAwardQueuesRosterAndRounds(t *testing.T) {
	s := testState()
	rec := &recordingFlusher{}
	e := NewEngine(s, rec)

	_, err := e.Award(0, 100, CellTarget(0, 0), false)
	require.NoError(t, err)

	assert.Equal(t, 1, rec.rounds)
	assert.Equal(t, 1, rec.players)
	assert.Zero(t, rec.teams)
}

func TestDeductQueuesRosterOnly(t *testing.T) {
	s := testState()
	s.LoadTeams([]*Team{{Name: "Rojos", Members: []string{"Ana"}}})
	require.NoError(t, s.SetActiveRound(RoundGrupal))
	rec := &recordingFlusher{}
	e := NewEngine(s, rec)

	_, err := e.Deduct(0, 50)
	require.NoError(t, err)

	assert.Zero(t, rec.rounds)
	assert.Zero(t, rec.players)
	assert.Equal(t, 1, rec.teams)
}

func TestAwardSequenceEndToEnd(t *testing.T) {
	s := testState()
	e := NewEngine(s, nil)

	_, err := e.Award(0, 100, CellTarget(0, 0), false)
	require.NoError(t, err)
	_, err = e.Award(0, 201, CellTarget(0, 1), true)
	require.NoError(t, err)
	_, err = e.Deduct(0, 50)
	require.NoError(t, err)

	assert.Equal(t, 100+101-50, s.Players()[0].Score)
}
