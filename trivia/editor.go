package trivia

import (
	"strconv"
	"strings"
)

// Placeholder content for freshly added categories and questions, matching
// what the board has always shown.
const (
	placeholderCategory  = "Nueva Categoría"
	defaultQuestionValue = 100
	defaultFinalValue    = 500
)

// QuestionField names an editable question attribute.
type QuestionField string

const (
	FieldValue          QuestionField = "value"
	FieldText           QuestionField = "text"
	FieldAnswer         QuestionField = "answer"
	FieldMultipleChoice QuestionField = "multipleChoice"
)

// Editor mutates only the editing draft; the live round changes solely
// through Commit. Destructive operations (category/question removal) are
// confirmed by the caller before reaching the editor.
type Editor struct {
	state *GameState
	saver flusher
}

func NewEditor(state *GameState, saver flusher) *Editor {
	return &Editor{state: state, saver: saver}
}

func (ed *Editor) draft() (*Round, error) {
	d := ed.state.Draft()
	if d == nil {
		return nil, ErrNotEditing
	}
	return d, nil
}

// AddCategory appends a placeholder category with one placeholder
// question so the board never renders an empty column.
func (ed *Editor) AddCategory() error {
	draft, err := ed.draft()
	if err != nil {
		return err
	}
	draft.Categories = append(draft.Categories, placeholderCategory)
	draft.Questions = append(draft.Questions, []*Question{
		{Value: defaultQuestionValue},
	})
	return nil
}

// RemoveCategory drops a category and its whole question column. The last
// remaining category cannot be removed.
func (ed *Editor) RemoveCategory(index int) error {
	draft, err := ed.draft()
	if err != nil {
		return err
	}
	if index < 0 || index >= len(draft.Categories) {
		return ErrNoSuchQuestion
	}
	if len(draft.Categories) <= 1 {
		return ErrLastCategory
	}
	draft.Categories = append(draft.Categories[:index], draft.Categories[index+1:]...)
	draft.Questions = append(draft.Questions[:index], draft.Questions[index+1:]...)
	return nil
}

// AddQuestion appends a question to the category's column. Its value
// continues the column's progression: last value plus 100, or 100 when the
// column is empty, so bulk-authored rounds get ascending values for free.
func (ed *Editor) AddQuestion(category int) error {
	draft, err := ed.draft()
	if err != nil {
		return err
	}
	if category < 0 || category >= len(draft.Questions) {
		return ErrNoSuchQuestion
	}

	column := draft.Questions[category]
	value := defaultQuestionValue
	if len(column) > 0 {
		value = column[len(column)-1].Value + 100
	}
	draft.Questions[category] = append(column, &Question{Value: value})
	return nil
}

// RemoveQuestion drops a question from its column. The last question in a
// category cannot be removed.
func (ed *Editor) RemoveQuestion(category, index int) error {
	draft, err := ed.draft()
	if err != nil {
		return err
	}
	if category < 0 || category >= len(draft.Questions) {
		return ErrNoSuchQuestion
	}
	column := draft.Questions[category]
	if index < 0 || index >= len(column) {
		return ErrNoSuchQuestion
	}
	if len(column) <= 1 {
		return ErrLastQuestion
	}
	draft.Questions[category] = append(column[:index], column[index+1:]...)
	return nil
}

// UpdateCategory renames a category in the draft. Blank names are allowed
// here; Commit rejects them.
func (ed *Editor) UpdateCategory(index int, name string) error {
	draft, err := ed.draft()
	if err != nil {
		return err
	}
	if index < 0 || index >= len(draft.Categories) {
		return ErrNoSuchQuestion
	}
	draft.Categories[index] = name
	return nil
}

// UpdateQuestion writes one field of a draft question. The value field is
// coerced to an integer, defaulting to 0 on parse failure; text fields are
// stored as given, including empty strings.
func (ed *Editor) UpdateQuestion(t Target, field QuestionField, value string) error {
	draft, err := ed.draft()
	if err != nil {
		return err
	}
	question, err := draft.Question(t)
	if err != nil {
		return err
	}

	switch field {
	case FieldValue:
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			n = 0
		}
		question.Value = n
	case FieldText:
		question.Text = value
	case FieldAnswer:
		question.Answer = value
	case FieldMultipleChoice:
		question.MultipleChoice = value
	}
	return nil
}

// AttachMedia places an attachment in one of the two slots. Attaching to
// the final-question target creates a default final question first when
// none exists yet.
func (ed *Editor) AttachMedia(t Target, slot MediaSlot, media Media) error {
	draft, err := ed.draft()
	if err != nil {
		return err
	}
	if !slot.Valid() {
		return ErrBadMediaSlot
	}

	if t.IsFinal() && draft.FinalQuestion == nil {
		draft.FinalQuestion = &Question{Value: defaultFinalValue}
	}

	question, err := draft.Question(t)
	if err != nil {
		return err
	}
	*question.media(slot) = &media
	return nil
}

// RemoveMedia clears one of the two slots. Replacement of an attachment is
// always remove-then-attach.
func (ed *Editor) RemoveMedia(t Target, slot MediaSlot) error {
	draft, err := ed.draft()
	if err != nil {
		return err
	}
	if !slot.Valid() {
		return ErrBadMediaSlot
	}
	if t.IsFinal() && draft.FinalQuestion == nil {
		return nil
	}
	question, err := draft.Question(t)
	if err != nil {
		return err
	}
	*question.media(slot) = nil
	return nil
}

// SetFinalQuestion creates or replaces the draft's final question,
// preserving any attachments already uploaded and resetting its used
// state.
func (ed *Editor) SetFinalQuestion(value int, text, answer, multipleChoice string) error {
	draft, err := ed.draft()
	if err != nil {
		return err
	}

	fq := &Question{
		Value:          value,
		Text:           text,
		Answer:         answer,
		MultipleChoice: multipleChoice,
	}
	if prev := draft.FinalQuestion; prev != nil {
		fq.Media1 = prev.Media1
		fq.Media2 = prev.Media2
	}
	draft.FinalQuestion = fq
	return nil
}

// ClearFinalQuestion removes the draft's final question.
func (ed *Editor) ClearFinalQuestion() error {
	draft, err := ed.draft()
	if err != nil {
		return err
	}
	draft.FinalQuestion = nil
	return nil
}

// Commit validates the draft, copies it into the live round and queues a
// persistence flush. A draft with no categories or any blank category name
// fails the save outright; nothing is partially committed.
func (ed *Editor) Commit() error {
	draft, err := ed.draft()
	if err != nil {
		return err
	}
	if len(draft.Categories) == 0 {
		return ErrEmptyDraft
	}
	for _, name := range draft.Categories {
		if strings.TrimSpace(name) == "" {
			return ErrBlankCategory
		}
	}

	if err := ed.state.CommitEditing(); err != nil {
		return err
	}
	if ed.saver != nil {
		ed.saver.QueueRounds(ed.state.RoundsSnapshot())
	}
	return nil
}
