package trivia

import (
	"errors"
)

// Recoverable validation and guard failures. Callers turn these into
// user-facing notices; none of them leaves state modified.
var (
	ErrUnknownRound    = errors.New("unknown round key")
	ErrQuestionUsed    = errors.New("question already used")
	ErrNoSuchQuestion  = errors.New("no question at that position")
	ErrNoFinalQuestion = errors.New("round has no final question")
	ErrNoSuchScorable  = errors.New("no player or team at that index")
	ErrNotEditing      = errors.New("no editing session is open")
	ErrEmptyDraft      = errors.New("draft has no categories")
	ErrLastCategory    = errors.New("cannot remove the last category")
	ErrLastQuestion    = errors.New("cannot remove the last question in a category")
	ErrBlankCategory   = errors.New("category names must not be blank")
	ErrBlankName       = errors.New("name must not be blank")
	ErrLastPlayer      = errors.New("cannot remove the last player")
	ErrNoMembers       = errors.New("a team needs at least one available player")
	ErrBadMediaSlot    = errors.New("media slot must be 1 or 2")
)
