package services

import (
	"encoding/json"
	"strings"
	"time"
)

// Survey lifecycle states. Transitions are owner-driven and intentionally
// unconstrained; the only state-dependent rule is that submissions require
// StatusActive.
const (
	StatusDraft    = "draft"
	StatusActive   = "active"
	StatusClosed   = "closed"
	StatusArchived = "archived"
)

// Question types. Choice-like types must declare a non-empty option set.
const (
	QuestionText         = "text"
	QuestionSingleChoice = "single_choice"
	QuestionMultiChoice  = "multi_choice"
	QuestionDropdown     = "dropdown"
	QuestionRating       = "rating"
)

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	PassHash  []byte    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

type Survey struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Question struct {
	ID          string   `json:"id"`
	SurveyID    string   `json:"survey_id"`
	Type        string   `json:"type"`
	Text        string   `json:"text"`
	Description string   `json:"description,omitempty"`
	Required    bool     `json:"required"`
	Options     []string `json:"options,omitempty"`
	Order       int      `json:"order"`
}

// Response answers are stored verbatim, keyed by question id. Raw payloads are
// never re-validated against later question edits.
type Response struct {
	ID           string                     `json:"id"`
	SurveyID     string                     `json:"survey_id"`
	RespondentID string                     `json:"respondent_id,omitempty"`
	Answers      map[string]json.RawMessage `json:"answers"`
	SubmittedAt  time.Time                  `json:"submitted_at"`
}

func ValidStatus(s string) bool {
	switch s {
	case StatusDraft, StatusActive, StatusClosed, StatusArchived:
		return true
	}
	return false
}

func KnownQuestionType(t string) bool {
	switch t {
	case QuestionText, QuestionSingleChoice, QuestionMultiChoice, QuestionDropdown, QuestionRating:
		return true
	}
	return false
}

// ChoiceType reports whether valid answers are drawn from a declared option set.
func ChoiceType(t string) bool {
	switch t {
	case QuestionSingleChoice, QuestionMultiChoice, QuestionDropdown:
		return true
	}
	return false
}

// NormalizeOptions trims whitespace and drops blank entries, preserving order.
func NormalizeOptions(opts []string) []string {
	if len(opts) == 0 {
		return nil
	}
	out := make([]string, 0, len(opts))
	for _, o := range opts {
		o = strings.TrimSpace(o)
		if o != "" {
			out = append(out, o)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func validateQuestion(q *Question) error {
	if !KnownQuestionType(q.Type) {
		return NewInvalidError("unrecognized question type: " + q.Type)
	}
	if strings.TrimSpace(q.Text) == "" {
		return NewInvalidError("text required")
	}
	if q.Order < 0 {
		return NewInvalidError("order must not be negative")
	}
	q.Options = NormalizeOptions(q.Options)
	if ChoiceType(q.Type) {
		if len(q.Options) == 0 {
			return NewInvalidError("options required for choice question")
		}
	} else {
		q.Options = nil
	}
	return nil
}
