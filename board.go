// Triviabox game board
//
// One board per server: a single facilitator runs a live Jeopardy-style
// game and any number of connected browser views (main screen, control
// tablet) mirror it. Views talk to the board over a websocket at
// /board/ws; every mutation is applied to the in-memory game state first,
// rebroadcast as a fresh snapshot, and then flushed to storage in the
// background.
//
// Features:
// - Two fixed rounds (individual players / teams) with independent boards
// - Question dialog with a server-driven typewriter reveal
// - Multiple-choice reveal that halves the awarded value (rounded up)
// - Final question addressed through the legacy -1 column convention
// - Draft-based round editor with commit-or-discard semantics
// - Player and team rosters persisted separately from round content
// - Degraded-save warnings pushed to all views
// - In-browser QR button to open the board on another screen

package main

import (
	"context"
	_ "embed"
	"errors"
	"log"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"github.com/skip2/go-qrcode"

	"github.com/solanmd/triviabox/trivia"
)

// Messages coming from clients. A single union struct, dispatched on Type.
type ClientMessage struct {
	Type        string   `json:"type"`
	Index       int      `json:"index"`
	Points      int      `json:"points"`
	Col         int      `json:"col"`
	Row         int      `json:"row"`
	UsedOptions bool     `json:"used_options"`
	Confirm     bool     `json:"confirm"`
	Round       string   `json:"round,omitempty"`
	Mode        string   `json:"mode,omitempty"`
	Field       string   `json:"field,omitempty"`
	Value       string   `json:"value,omitempty"`
	Name        string   `json:"name,omitempty"`
	Color       string   `json:"color,omitempty"`
	Score       int      `json:"score"`
	Members     []string `json:"members,omitempty"`
	Slot        int      `json:"slot"`
	MediaMIME   string   `json:"media_mime,omitempty"`
	MediaData   string   `json:"media_data,omitempty"`
	Text        string   `json:"text,omitempty"`
	Answer      string   `json:"answer,omitempty"`
	Options     string   `json:"options,omitempty"`
}

// StateMessage is the full snapshot every view renders from.
type StateMessage struct {
	Type        string            `json:"type"` // "state"
	Mode        string            `json:"mode"`
	ActiveRound string            `json:"active_round"`
	TeamMode    bool              `json:"team_mode"`
	RoundNames  map[string]string `json:"round_names"`
	Round       *trivia.Round     `json:"round"`
	Draft       *trivia.Round     `json:"draft,omitempty"`
	Players     []*trivia.Player  `json:"players"`
	Teams       []*trivia.Team    `json:"teams"`
}

// QuestionMessage opens the question dialog on every view. The question
// text itself follows character by character as reveal messages.
type QuestionMessage struct {
	Type       string        `json:"type"` // "question"
	Category   string        `json:"category"`
	Value      int           `json:"value"`
	Col        int           `json:"col"`
	Row        int           `json:"row"`
	HasOptions bool          `json:"has_options"`
	Media1     *trivia.Media `json:"media1,omitempty"`
	Media2     *trivia.Media `json:"media2,omitempty"`
}

// RevealMessage carries one typewriter chunk.
type RevealMessage struct {
	Type  string `json:"type"` // "reveal"
	Kind  string `json:"kind"` // "text" or "option"
	Index int    `json:"index"`
	Chunk string `json:"chunk"`
}

// AnswerMessage uncovers the answer on every view.
type AnswerMessage struct {
	Type   string `json:"type"` // "answer"
	Answer string `json:"answer"`
}

// EffectMessage triggers a decorative client-side effect.
type EffectMessage struct {
	Type   string `json:"type"` // "effect"
	Effect string `json:"effect"`
}

// NoticeMessage is a non-blocking user-facing notification.
type NoticeMessage struct {
	Type    string `json:"type"` // "notice"
	Level   string `json:"level"`
	Message string `json:"message"`
}

// SimpleMessage is for generic typed signals with no payload
// ("question_closed", "reveal_done").
type SimpleMessage struct {
	Type string `json:"type"`
}

type Client struct {
	conn *websocket.Conn
	send chan any
}

type actionRequest struct {
	client *Client
	msg    ClientMessage
}

// openQuestion tracks the dialog currently shown on all views, owned by
// the board's run loop.
type openQuestion struct {
	target      trivia.Target
	col, row    int
	question    *trivia.Question
	usedOptions bool
}

// Board is the hub owning the game state and all connected views.
type Board struct {
	cfg      *Config
	state    *trivia.GameState
	engine   *trivia.Engine
	editor   *trivia.Editor
	roster   *trivia.Roster
	store    trivia.Store
	saver    *trivia.Saver
	revealer *trivia.Revealer

	mu      sync.Mutex
	clients map[*Client]bool

	register chan *Client
	unreg    chan *Client
	actions  chan actionRequest
	done     chan struct{}

	// run-loop state, never touched outside run()
	open       *openQuestion
	revealStop context.CancelFunc
}

func newBoard(cfg *Config) (*Board, error) {
	store, err := trivia.NewTieredStore(trivia.StoreOptions{
		Dir:      cfg.dataDir,
		BoltPath: filepath.Join(cfg.dataDir, "triviabox.db"),
		Quota:    cfg.kvQuota,
		Logf: func(format string, args ...any) {
			logf(cfg, format, args...)
		},
	})
	if err != nil {
		return nil, err
	}

	state := trivia.NewGameState()

	ctx := context.Background()
	rounds, _ := store.LoadRounds(ctx)
	state.LoadRounds(rounds)
	players, _ := store.LoadPlayers(ctx)
	state.LoadPlayers(players)
	teams, _ := store.LoadTeams(ctx)
	state.LoadTeams(teams)

	b := &Board{
		cfg:      cfg,
		state:    state,
		store:    store,
		revealer: trivia.NewRevealer(cfg.typingInterval, cfg.optionPause),
		clients:  make(map[*Client]bool),
		register: make(chan *Client),
		unreg:    make(chan *Client),
		actions:  make(chan actionRequest),
		done:     make(chan struct{}),
	}

	b.saver = trivia.NewSaver(store, b.onSaveOutcome)
	b.engine = trivia.NewEngine(state, b.saver)
	b.engine.FloorAtZero = cfg.scoreFloor
	b.editor = trivia.NewEditor(state, b.saver)
	b.roster = trivia.NewRoster(state, b.saver)

	go b.run()

	return b, nil
}

func (b *Board) close() {
	close(b.done)
	b.saver.Close()
	_ = b.store.Close()

	b.mu.Lock()
	defer b.mu.Unlock()
	for c := range b.clients {
		close(c.send)
		_ = c.conn.Close()
		delete(b.clients, c)
	}
}

func (b *Board) run() {
	for {
		select {
		case c := <-b.register:
			b.mu.Lock()
			b.clients[c] = true
			b.mu.Unlock()

			c.send <- b.snapshot()

		case c := <-b.unreg:
			b.mu.Lock()
			if _, ok := b.clients[c]; ok {
				delete(b.clients, c)
				close(c.send)
			}
			b.mu.Unlock()

		case ar := <-b.actions:
			b.handleAction(ar)

		case <-b.done:
			return
		}
	}
}

// snapshot assembles a state message from disjoint copies of the model.
func (b *Board) snapshot() StateMessage {
	rounds := b.state.RoundsSnapshot()
	active := b.state.ActiveRound()

	return StateMessage{
		Type:        "state",
		Mode:        string(b.state.Mode()),
		ActiveRound: string(active),
		TeamMode:    b.state.IsTeamMode(),
		RoundNames: map[string]string{
			string(trivia.RoundIndividual): rounds.Individual.Name,
			string(trivia.RoundGrupal):     rounds.Grupal.Name,
		},
		Round:   rounds.Get(active),
		Draft:   b.state.DraftSnapshot(),
		Players: b.state.PlayersSnapshot(),
		Teams:   b.state.TeamsSnapshot(),
	}
}

func (b *Board) broadcast(msg any) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for client := range b.clients {
		select {
		case client.send <- msg:
		default:
			delete(b.clients, client)
			close(client.send)
		}
	}
}

func (b *Board) broadcastState() {
	b.broadcast(b.snapshot())
}

func (b *Board) notify(c *Client, level, message string) {
	msg := NoticeMessage{Type: "notice", Level: level, Message: message}
	if c == nil {
		b.broadcast(msg)
		return
	}

	// the client may have been dropped by broadcast, closing its channel
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.clients[c] {
		return
	}
	select {
	case c.send <- msg:
	default:
	}
}

// onSaveOutcome runs on the saver goroutine. Full saves stay quiet;
// degraded and failed saves warn every view, but play continues.
func (b *Board) onSaveOutcome(o trivia.SaveOutcome) {
	switch o.Status {
	case trivia.SaveOK:
		logf(b.cfg, "STORE: Saved %s record", o.Record)
	case trivia.SaveDegraded:
		logf(b.cfg, "STORE: Degraded save of %s record: %s", o.Record, o.Reason)
		b.notify(nil, "warn", "Los datos se guardaron sin archivos multimedia (espacio insuficiente).")
	case trivia.SaveFailed:
		logf(b.cfg, "STORE: Failed to save %s record: %s", o.Record, o.Reason)
		b.notify(nil, "error", "No se pudieron guardar los cambios; podrían perderse al cerrar.")
	}
}

// userMessage maps core errors to the user-facing text the views show.
func userMessage(err error) string {
	switch {
	case errors.Is(err, trivia.ErrLastCategory):
		return "Debe haber al menos una categoría."
	case errors.Is(err, trivia.ErrLastQuestion):
		return "Debe haber al menos una pregunta."
	case errors.Is(err, trivia.ErrBlankCategory):
		return "Todas las categorías deben tener un nombre."
	case errors.Is(err, trivia.ErrEmptyDraft):
		return "No hay datos para guardar."
	case errors.Is(err, trivia.ErrQuestionUsed):
		return "Esa pregunta ya fue usada."
	case errors.Is(err, trivia.ErrLastPlayer):
		return "Debe haber al menos un jugador."
	case errors.Is(err, trivia.ErrBlankName):
		return "El nombre no puede estar vacío."
	case errors.Is(err, trivia.ErrNoMembers):
		return "Selecciona al menos un jugador disponible."
	case errors.Is(err, trivia.ErrNotEditing):
		return "No hay una sesión de edición abierta."
	default:
		return "No se pudo completar la acción."
	}
}

func mediaFromMessage(msg ClientMessage) *trivia.Media {
	if msg.MediaData == "" {
		return nil
	}
	return &trivia.Media{
		Kind:    trivia.MediaKindFromMIME(msg.MediaMIME),
		Payload: msg.MediaData,
	}
}

func (b *Board) handleAction(ar actionRequest) {
	c := ar.client
	msg := ar.msg

	switch msg.Type {
	case "set_round":
		if err := b.state.SetActiveRound(trivia.RoundKey(msg.Round)); err != nil {
			b.notify(c, "error", userMessage(err))
			return
		}
		b.closeQuestion()
		b.saver.QueueRounds(b.state.RoundsSnapshot())
		b.broadcastState()

	case "set_mode":
		mode := trivia.Mode(msg.Mode)
		if mode != trivia.ModeGame && mode != trivia.ModeEdit {
			return
		}
		b.state.SetMode(mode)
		b.broadcastState()

	case "open_question":
		b.openQuestion(c, msg)

	case "show_options":
		b.showOptions()

	case "show_answer":
		if b.open != nil {
			b.broadcast(AnswerMessage{Type: "answer", Answer: b.open.question.Answer})
		}

	case "close_question":
		b.closeQuestion()

	case "award":
		b.award(c, msg)

	case "deduct":
		if !msg.Confirm {
			return
		}
		if _, err := b.engine.Deduct(msg.Index, msg.Points); err != nil {
			b.notify(c, "error", userMessage(err))
			return
		}
		b.broadcast(EffectMessage{Type: "effect", Effect: "deduction"})
		b.broadcastState()

	case "reset_scores":
		if !msg.Confirm {
			return
		}
		b.engine.ResetScores()
		b.notify(nil, "info", "Los puntos se reiniciaron.")
		b.broadcastState()

	case "reset_questions":
		if !msg.Confirm {
			return
		}
		b.engine.ResetQuestions()
		b.closeQuestion()
		b.notify(nil, "info", "Todas las preguntas de la ronda actual están disponibles nuevamente.")
		b.broadcastState()

	case "start_edit":
		b.state.StartEditing()
		b.broadcastState()

	case "cancel_edit":
		b.state.CancelEditing()
		b.broadcastState()

	case "commit_edit":
		if err := b.editor.Commit(); err != nil {
			b.notify(c, "error", userMessage(err))
			return
		}
		b.notify(nil, "info", "Los datos de la ronda se han guardado exitosamente.")
		b.broadcastState()

	case "add_category":
		b.editOp(c, b.editor.AddCategory())

	case "remove_category":
		if !b.confirmed(msg, trivia.ErrLastCategory, func() error {
			return b.editor.RemoveCategory(msg.Index)
		}, c) {
			return
		}

	case "update_category":
		b.editOp(c, b.editor.UpdateCategory(msg.Index, msg.Value))

	case "add_question":
		b.editOp(c, b.editor.AddQuestion(msg.Index))

	case "remove_question":
		if !b.confirmed(msg, trivia.ErrLastQuestion, func() error {
			return b.editor.RemoveQuestion(msg.Col, msg.Row)
		}, c) {
			return
		}

	case "update_question":
		target := trivia.TargetFromColumn(msg.Col, msg.Row)
		b.editOp(c, b.editor.UpdateQuestion(target, trivia.QuestionField(msg.Field), msg.Value))

	case "attach_media":
		media := mediaFromMessage(msg)
		if media == nil {
			b.notify(c, "error", "No se pudo cargar el archivo multimedia.")
			return
		}
		target := trivia.TargetFromColumn(msg.Col, msg.Row)
		b.editOp(c, b.editor.AttachMedia(target, trivia.MediaSlot(msg.Slot), *media))

	case "remove_media":
		target := trivia.TargetFromColumn(msg.Col, msg.Row)
		b.editOp(c, b.editor.RemoveMedia(target, trivia.MediaSlot(msg.Slot)))

	case "set_final":
		b.editOp(c, b.editor.SetFinalQuestion(msg.Points, msg.Text, msg.Answer, msg.Options))

	case "clear_final":
		b.editOp(c, b.editor.ClearFinalQuestion())

	case "add_player":
		if _, err := b.roster.AddPlayer(msg.Name, msg.Color, mediaFromMessage(msg)); err != nil {
			b.notify(c, "error", userMessage(err))
			return
		}
		logf(b.cfg, "GAMES: Player %q joined the board", msg.Name)
		b.broadcastState()

	case "edit_player":
		if err := b.roster.EditPlayer(msg.Index, msg.Name, msg.Color, msg.Score, mediaFromMessage(msg)); err != nil {
			b.notify(c, "error", userMessage(err))
			return
		}
		b.broadcastState()

	case "remove_player":
		if !msg.Confirm {
			return
		}
		if err := b.roster.RemovePlayer(msg.Index); err != nil {
			b.notify(c, "error", userMessage(err))
			return
		}
		b.broadcastState()

	case "add_team":
		if _, err := b.roster.CreateTeam(msg.Name, msg.Color, msg.Members); err != nil {
			b.notify(c, "error", userMessage(err))
			return
		}
		logf(b.cfg, "GAMES: Team %q created", msg.Name)
		b.broadcastState()

	case "remove_team":
		if !msg.Confirm {
			return
		}
		if err := b.roster.RemoveTeam(msg.Index); err != nil {
			b.notify(c, "error", userMessage(err))
			return
		}
		b.broadcastState()

	default:
		// ignore unknown types
	}
}

// confirmed runs a client-confirmed destructive editor operation. Floor
// violations come back as info-level notices rather than errors.
func (b *Board) confirmed(msg ClientMessage, floor error, op func() error, c *Client) bool {
	if !msg.Confirm {
		return false
	}
	err := op()
	if err != nil {
		b.notify(c, errLevel(err, floor), userMessage(err))
		return false
	}
	b.broadcastState()
	return true
}

func errLevel(err, floor error) string {
	if errors.Is(err, floor) {
		return "info"
	}
	return "error"
}

func (b *Board) editOp(c *Client, err error) {
	if err != nil {
		b.notify(c, "error", userMessage(err))
		return
	}
	b.broadcastState()
}

// openQuestion shows a question dialog on every view and starts the
// typewriter reveal. Used questions do not open.
func (b *Board) openQuestion(c *Client, msg ClientMessage) {
	round := b.state.CurrentRound()
	target := trivia.TargetFromColumn(msg.Col, msg.Row)

	question, err := round.Question(target)
	if err != nil {
		b.notify(c, "error", userMessage(err))
		return
	}
	if question.Used || b.state.CellUsed(target) {
		return
	}

	b.closeQuestion()

	shown := question.Clone()
	b.open = &openQuestion{
		target:   target,
		col:      msg.Col,
		row:      msg.Row,
		question: shown,
	}

	category := round.Name + " - FINAL"
	if !target.IsFinal() {
		category = round.Categories[msg.Col]
	}

	b.broadcast(QuestionMessage{
		Type:       "question",
		Category:   category,
		Value:      shown.Value,
		Col:        msg.Col,
		Row:        msg.Row,
		HasOptions: shown.HasOptions(),
		Media1:     shown.Media1,
		Media2:     shown.Media2,
	})

	text := shown.Text
	if text == "" {
		text = "(Sin texto)"
	}

	ctx, cancel := context.WithCancel(context.Background())
	b.revealStop = cancel
	go func() {
		err := b.revealer.RevealText(ctx, text, func(chunk string) {
			b.broadcast(RevealMessage{Type: "reveal", Kind: "text", Chunk: chunk})
		})
		if err == nil {
			b.broadcast(SimpleMessage{Type: "reveal_done"})
		}
	}()
}

// showOptions reveals the multiple-choice options once per open question,
// flagging the eventual award as half-value.
func (b *Board) showOptions() {
	if b.open == nil || b.open.usedOptions {
		return
	}
	options := b.open.question.Options()
	if len(options) == 0 {
		return
	}
	b.open.usedOptions = true

	ctx := context.Background()
	if b.revealStop != nil {
		// reuse the open question's lifetime: closing cancels both reveals
		var cancel context.CancelFunc
		ctx, cancel = context.WithCancel(ctx)
		prev := b.revealStop
		b.revealStop = func() {
			prev()
			cancel()
		}
	}

	go func() {
		_ = b.revealer.RevealOptions(ctx, options, func(index int, chunk string) {
			b.broadcast(RevealMessage{Type: "reveal", Kind: "option", Index: index, Chunk: chunk})
		})
	}()
}

func (b *Board) award(c *Client, msg ClientMessage) {
	target := trivia.TargetFromColumn(msg.Col, msg.Row)

	usedOptions := msg.UsedOptions
	if b.open != nil && b.open.col == msg.Col && b.open.row == msg.Row {
		usedOptions = b.open.usedOptions
	}

	points, err := b.engine.Award(msg.Index, msg.Points, target, usedOptions)
	if err != nil {
		level := "error"
		if errors.Is(err, trivia.ErrQuestionUsed) {
			level = "info"
		}
		b.notify(c, level, userMessage(err))
		return
	}

	logf(b.cfg, "GAMES: Awarded %d points to scorable %d", points, msg.Index)

	b.broadcast(EffectMessage{Type: "effect", Effect: "win"})
	b.closeQuestion()
	b.broadcastState()
}

// closeQuestion cancels any in-flight reveal before dismissing the
// dialog, so a reopened question never interleaves with the old reveal.
func (b *Board) closeQuestion() {
	if b.revealStop != nil {
		b.revealStop()
		b.revealStop = nil
	}
	if b.open != nil {
		b.open = nil
		b.broadcast(SimpleMessage{Type: "question_closed"})
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Media uploads travel as data URLs inside websocket messages.
const maxMessageSize = 32 << 20

func serveBoardWS(cfg *Config, b *Board) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("upgrade error:", err)
			return
		}

		client := &Client{
			conn: conn,
			send: make(chan any, 64),
		}

		b.register <- client

		go client.writePump()
		client.readPump(b, cfg.sessionTimeout)
	}
}

func (c *Client) readPump(b *Board, idle time.Duration) {
	defer func() {
		b.unreg <- c
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(idle))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(idle))
	})

	for {
		var msg ClientMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			return
		}
		_ = c.conn.SetReadDeadline(time.Now().Add(idle))

		b.actions <- actionRequest{
			client: c,
			msg:    msg,
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				return
			}
			if err := c.conn.WriteJSON(msg); err != nil {
				return
			}
		case <-ticker.C:
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// QR handler: generates a PNG QR code for the board URL so a second
// screen can be pointed at it quickly.
func qrHandler(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}

	path := strings.TrimSuffix(r.URL.Path, "/qr")

	url := scheme + "://" + r.Host + path

	const qrSize = 320
	png, err := qrcode.Encode(url, qrcode.Medium, qrSize)
	if err != nil {
		http.Error(w, "qr generation failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(png)
}

// ---- Static file paths ----

//go:embed board/index.html
var indexHTML []byte

//go:embed board/app.css
var boardCSS []byte

//go:embed board/app.js
var boardJS []byte

func getIndexHandler(cfg *Config) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "public, max-age=3600")
		w.Header().Set("Expires", time.Now().Add(time.Hour).UTC().Format(http.TimeFormat))
		securityHeaders(cfg, w)

		_, _ = w.Write(indexHTML)
	}
}

func getCssHandler(cfg *Config) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.Header().Set("Content-Type", "text/css; charset=utf-8")
		w.Header().Set("Cache-Control", "public, max-age=3600")
		w.Header().Set("Expires", time.Now().Add(time.Hour).UTC().Format(http.TimeFormat))
		securityHeaders(cfg, w)

		_, _ = w.Write(boardCSS)
	}
}

func getJsHandler(cfg *Config) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
		w.Header().Set("Cache-Control", "public, max-age=3600")
		w.Header().Set("Expires", time.Now().Add(time.Hour).UTC().Format(http.TimeFormat))
		securityHeaders(cfg, w)

		_, _ = w.Write(boardJS)
	}
}

// registerBoard sets up routes so that:
//   - $path       → HTML client
//   - $path/ws    → WebSocket shared by every view of the board
//   - $path/qr    → PNG QR code for the board URL
func registerBoard(cfg *Config, path string, mux *httprouter.Router, b *Board, errs chan<- error) {
	mux.GET(cfg.prefix+path, getIndexHandler(cfg))

	mux.GET(cfg.prefix+"/assets/board/app.css", getCssHandler(cfg))
	mux.GET(cfg.prefix+"/assets/board/app.js", getJsHandler(cfg))

	mux.GET(cfg.prefix+path+"/ws", serveBoardWS(cfg, b))

	mux.GET(cfg.prefix+path+"/qr", qrHandler)
}
