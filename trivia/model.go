// Package trivia implements the state, scoring, editing and persistence
// core of a facilitator-run Jeopardy-style trivia board.
package trivia

import (
	"strings"
)

// RoundKey selects one of the two fixed rounds. The set is closed:
// "individual" plays against single players, "grupal" against teams.
type RoundKey string

const (
	RoundIndividual RoundKey = "individual"
	RoundGrupal     RoundKey = "grupal"
)

func (k RoundKey) Valid() bool {
	return k == RoundIndividual || k == RoundGrupal
}

// DefaultName returns the canonical display name a freshly created round
// carries for this key.
func (k RoundKey) DefaultName() string {
	if k == RoundGrupal {
		return "Ronda Grupal"
	}
	return "Ronda Individual"
}

// MediaKind classifies an attachment for playback purposes.
type MediaKind string

const (
	MediaImage MediaKind = "image"
	MediaVideo MediaKind = "video"
	MediaAudio MediaKind = "audio"
)

// MediaKindFromMIME classifies a MIME-type-like string. Anything that is
// neither video nor audio is treated as an image.
func MediaKindFromMIME(mime string) MediaKind {
	switch {
	case strings.HasPrefix(mime, "video"):
		return MediaVideo
	case strings.HasPrefix(mime, "audio"):
		return MediaAudio
	default:
		return MediaImage
	}
}

// Media is an opaque attachment, usually a data URL. Immutable once
// attached; replacing one is delete-then-attach.
type Media struct {
	Kind    MediaKind `json:"kind"`
	Payload string    `json:"payload"`
}

func (m *Media) Clone() *Media {
	if m == nil {
		return nil
	}
	c := *m
	return &c
}

// MediaSlot addresses one of the two independent attachments per question.
type MediaSlot int

const (
	MediaSlot1 MediaSlot = 1
	MediaSlot2 MediaSlot = 2
)

func (s MediaSlot) Valid() bool {
	return s == MediaSlot1 || s == MediaSlot2
}

// Question is a single board cell, or the final question when held in
// Round.FinalQuestion. Used is monotonic: only a round-wide reset clears it.
type Question struct {
	Value           int    `json:"value"`
	Text            string `json:"text"`
	Answer          string `json:"answer"`
	MultipleChoice  string `json:"multipleChoice,omitempty"`
	Media1          *Media `json:"media1,omitempty"`
	Media2          *Media `json:"media2,omitempty"`
	Used            bool   `json:"used"`
	UsedWithOptions bool   `json:"usedWithOptions"`
}

// Options splits the slash-separated multiple-choice list into trimmed,
// non-empty entries.
func (q *Question) Options() []string {
	if strings.TrimSpace(q.MultipleChoice) == "" {
		return nil
	}
	parts := strings.Split(q.MultipleChoice, "/")
	options := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			options = append(options, p)
		}
	}
	return options
}

func (q *Question) HasOptions() bool {
	return len(q.Options()) > 0
}

func (q *Question) Clone() *Question {
	if q == nil {
		return nil
	}
	c := *q
	c.Media1 = q.Media1.Clone()
	c.Media2 = q.Media2.Clone()
	return &c
}

// media returns the addressed slot.
func (q *Question) media(slot MediaSlot) **Media {
	if slot == MediaSlot2 {
		return &q.Media2
	}
	return &q.Media1
}

// Round holds one board: Categories[i] titles the column Questions[i].
// Both slices always have equal length.
type Round struct {
	Name          string        `json:"name"`
	Categories    []string      `json:"categories"`
	Questions     [][]*Question `json:"questions"`
	FinalQuestion *Question     `json:"finalQuestion,omitempty"`
}

// NewRound returns an empty round carrying the canonical name for key.
func NewRound(key RoundKey) *Round {
	return &Round{
		Name:       key.DefaultName(),
		Categories: []string{},
		Questions:  [][]*Question{},
	}
}

func (r *Round) Clone() *Round {
	if r == nil {
		return nil
	}
	c := &Round{
		Name:          r.Name,
		Categories:    append([]string{}, r.Categories...),
		Questions:     make([][]*Question, len(r.Questions)),
		FinalQuestion: r.FinalQuestion.Clone(),
	}
	for i, column := range r.Questions {
		c.Questions[i] = make([]*Question, len(column))
		for j, q := range column {
			c.Questions[i][j] = q.Clone()
		}
	}
	return c
}

// Question resolves a target against this round.
func (r *Round) Question(t Target) (*Question, error) {
	if t.IsFinal() {
		if r.FinalQuestion == nil {
			return nil, ErrNoFinalQuestion
		}
		return r.FinalQuestion, nil
	}
	category, row := t.Cell()
	if category < 0 || category >= len(r.Questions) {
		return nil, ErrNoSuchQuestion
	}
	column := r.Questions[category]
	if row < 0 || row >= len(column) {
		return nil, ErrNoSuchQuestion
	}
	return column[row], nil
}

// stripMedia removes every attachment from the round, returning how many
// were dropped. Used by the persistence adapter's degraded-save path.
func (r *Round) stripMedia() int {
	if r == nil {
		return 0
	}
	removed := 0
	strip := func(q *Question) {
		if q.Media1 != nil {
			q.Media1 = nil
			removed++
		}
		if q.Media2 != nil {
			q.Media2 = nil
			removed++
		}
	}
	for _, column := range r.Questions {
		for _, q := range column {
			strip(q)
		}
	}
	if r.FinalQuestion != nil {
		strip(r.FinalQuestion)
	}
	return removed
}

// Rounds is the fixed two-round collection persisted as a single record.
// Missing entries are recreated lazily with empty content.
type Rounds struct {
	Individual *Round `json:"individual"`
	Grupal     *Round `json:"grupal"`
}

func NewRounds() *Rounds {
	return &Rounds{
		Individual: NewRound(RoundIndividual),
		Grupal:     NewRound(RoundGrupal),
	}
}

func (r *Rounds) Get(key RoundKey) *Round {
	if key == RoundGrupal {
		return r.Grupal
	}
	return r.Individual
}

func (r *Rounds) Set(key RoundKey, round *Round) {
	if key == RoundGrupal {
		r.Grupal = round
	} else {
		r.Individual = round
	}
}

func (r *Rounds) Clone() *Rounds {
	if r == nil {
		return nil
	}
	return &Rounds{
		Individual: r.Individual.Clone(),
		Grupal:     r.Grupal.Clone(),
	}
}

// StripMedia drops every attachment in both rounds.
func (r *Rounds) StripMedia() int {
	return r.Individual.stripMedia() + r.Grupal.stripMedia()
}

// Normalize recreates absent or structurally broken rounds, preserving any
// surviving name. Loaded records pass through here before use.
func (r *Rounds) Normalize() {
	fix := func(key RoundKey, round *Round) *Round {
		if round == nil || round.Categories == nil {
			name := key.DefaultName()
			if round != nil && round.Name != "" {
				name = round.Name
			}
			fresh := NewRound(key)
			fresh.Name = name
			return fresh
		}
		if round.Questions == nil {
			round.Questions = [][]*Question{}
		}
		return round
	}
	r.Individual = fix(RoundIndividual, r.Individual)
	r.Grupal = fix(RoundGrupal, r.Grupal)
}

// Target addresses the question an award or media operation applies to:
// either a board cell or the round's final question. Presentation layers
// that still speak the legacy "-1 column" convention convert at the
// boundary via TargetFromColumn.
type Target struct {
	final    bool
	category int
	row      int
}

func CellTarget(category, row int) Target {
	return Target{category: category, row: row}
}

func FinalTarget() Target {
	return Target{final: true}
}

// TargetFromColumn maps the wire convention used by the board client:
// column -1 means the final question.
func TargetFromColumn(column, row int) Target {
	if column == -1 {
		return FinalTarget()
	}
	return CellTarget(column, row)
}

func (t Target) IsFinal() bool {
	return t.final
}

func (t Target) Cell() (category, row int) {
	return t.category, t.row
}

// Player competes in the individual round. Score may go negative unless
// the deduction floor policy is enabled.
type Player struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Score  int    `json:"score"`
	Color  string `json:"color"`
	Avatar *Media `json:"avatar,omitempty"`
}

func (p *Player) Clone() *Player {
	if p == nil {
		return nil
	}
	c := *p
	c.Avatar = p.Avatar.Clone()
	return &c
}

func (p *Player) DisplayName() string { return p.Name }
func (p *Player) CurrentScore() int   { return p.Score }
func (p *Player) addScore(delta int)  { p.Score += delta }
func (p *Player) setScore(v int)      { p.Score = v }

// Team competes in the group round. Members holds player names; a player
// belongs to at most one team, enforced at creation time.
type Team struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Score   int      `json:"score"`
	Color   string   `json:"color"`
	Members []string `json:"members"`
}

func (t *Team) Clone() *Team {
	if t == nil {
		return nil
	}
	c := *t
	c.Members = append([]string{}, t.Members...)
	return &c
}

func (t *Team) DisplayName() string { return t.Name }
func (t *Team) CurrentScore() int   { return t.Score }
func (t *Team) addScore(delta int)  { t.Score += delta }
func (t *Team) setScore(v int)      { t.Score = v }

// Scorable is the shared view the scoring engine holds over players and
// teams. Score mutation stays package-private: only the engine and the
// roster manager write scores.
type Scorable interface {
	DisplayName() string
	CurrentScore() int
	addScore(delta int)
	setScore(v int)
}

func clonePlayers(players []*Player) []*Player {
	out := make([]*Player, len(players))
	for i, p := range players {
		out[i] = p.Clone()
	}
	return out
}

func cloneTeams(teams []*Team) []*Team {
	out := make([]*Team, len(teams))
	for i, t := range teams {
		out[i] = t.Clone()
	}
	return out
}
