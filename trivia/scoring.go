package trivia

// flusher queues best-effort persistence of the three logical records.
// Implemented by Saver; tests substitute a recorder.
type flusher interface {
	QueueRounds(rounds *Rounds)
	QueuePlayers(players []*Player)
	QueueTeams(teams []*Team)
}

// Engine is the only component that mutates scores and used flags.
//
// In-memory mutation always completes before any persistence is queued,
// so a slow or failed save never leaves the visible board behind the
// model.
type Engine struct {
	state *GameState
	saver flusher

	// FloorAtZero clamps deductions so scores never go negative. The
	// historical revisions disagree on this, so it is a policy knob
	// rather than a baked-in choice.
	FloorAtZero bool
}

func NewEngine(state *GameState, saver flusher) *Engine {
	return &Engine{state: state, saver: saver}
}

// Award grants points to the scorable at index and marks the targeted
// question used. When the multiple-choice options were shown, only half
// the base value is granted, rounded up: 101 points become 51.
//
// Awarding a question that is already used is a no-op returning
// ErrQuestionUsed, so a replayed award can never double-score.
// Returns the points actually granted.
func (e *Engine) Award(index, base int, target Target, usedOptions bool) (int, error) {
	round := e.state.CurrentRound()

	question, err := round.Question(target)
	if err != nil {
		return 0, err
	}
	// the cell check catches questions whose Used flag was wiped by an
	// editor commit of a draft started before the award
	if question.Used || e.state.CellUsed(target) {
		return 0, ErrQuestionUsed
	}

	scorables := e.state.CurrentScorables()
	if index < 0 || index >= len(scorables) {
		return 0, ErrNoSuchScorable
	}

	points := base
	if usedOptions {
		points = (base + 1) / 2
	}

	scorables[index].addScore(points)
	question.Used = true
	question.UsedWithOptions = usedOptions
	e.state.markCellUsed(target)

	e.flushRoster()
	e.flushRounds()

	return points, nil
}

// Deduct subtracts points from the scorable at index. Deduction is
// independent of question state; no used flag is touched. The caller is
// responsible for having confirmed the action with the facilitator.
// Returns the resulting score.
func (e *Engine) Deduct(index, points int) (int, error) {
	scorables := e.state.CurrentScorables()
	if index < 0 || index >= len(scorables) {
		return 0, ErrNoSuchScorable
	}

	target := scorables[index]
	target.addScore(-points)
	if e.FloorAtZero && target.CurrentScore() < 0 {
		target.setScore(0)
	}

	e.flushRoster()

	return target.CurrentScore(), nil
}

// ResetScores zeroes every individual player's score. Teams are left
// untouched. Requires prior confirmation by the caller.
func (e *Engine) ResetScores() {
	for _, p := range e.state.Players() {
		p.setScore(0)
	}
	if e.saver != nil {
		e.saver.QueuePlayers(e.state.PlayersSnapshot())
	}
}

// ResetQuestions clears the used flag on every question of the active
// round, including the final question. Scores are untouched. Requires
// prior confirmation by the caller.
func (e *Engine) ResetQuestions() {
	round := e.state.CurrentRound()
	for _, column := range round.Questions {
		for _, q := range column {
			q.Used = false
		}
	}
	if round.FinalQuestion != nil {
		round.FinalQuestion.Used = false
	}
	e.state.clearUsedCells()

	e.flushRounds()
}

func (e *Engine) flushRounds() {
	if e.saver != nil {
		e.saver.QueueRounds(e.state.RoundsSnapshot())
	}
}

// flushRoster persists whichever roster the active round scores against.
func (e *Engine) flushRoster() {
	if e.saver == nil {
		return
	}
	if e.state.IsTeamMode() {
		e.saver.QueueTeams(e.state.TeamsSnapshot())
	} else {
		e.saver.QueuePlayers(e.state.PlayersSnapshot())
	}
}
