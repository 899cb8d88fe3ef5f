package glyph

import (
	"fmt"

	"github.com/edc-app/edc/pkg/model"
)

type Kind int

const (
	KindStatus Kind = iota
	KindPriority
	KindRecord
)

func (k Kind) String() string {
	switch k {
	case KindStatus:
		return "Status"
	case KindPriority:
		return "Priority"
	}
	return "Records"
}

type Glyph struct {
	Key     string
	Symbol  string
	Meaning string
	Kind    Kind
}

const (
	escape        = "\x1b"
	resetCode     = 0
	boldCode      = 1
	italicCode    = 3
	underlineCode = 4
	strikeCode    = 9
)

func Strike(in string) string {
	return fmt.Sprintf("%s[%dm%s%s[%dm", escape, strikeCode, in, escape, resetCode)
}

func Bold(in string) string {
	return fmt.Sprintf("%s[%dm%s%s[%dm", escape, boldCode, in, escape, resetCode)
}

func Underline(in string) string {
	return fmt.Sprintf("%s[%dm%s%s[%dm", escape, underlineCode, in, escape, resetCode)
}

func Italic(in string) string {
	return fmt.Sprintf("%s[%dm%s%s[%dm", escape, italicCode, in, escape, resetCode)
}

type Symbol int

// Order matches DefaultGlyphs.
const (
	Pending Symbol = iota
	InProgress
	Completed
	Cancelled
	High
	Medium
	Low
	Event
	Recurring
	HabitDone
	HabitMissed
	Mood
	Timer
)

func DefaultGlyphs() []Glyph {
	return []Glyph{
		{Key: "pending", Symbol: "●", Meaning: "task to do", Kind: KindStatus},
		{Key: "in_progress", Symbol: "◐", Meaning: "task in progress", Kind: KindStatus},
		{Key: "completed", Symbol: "✘", Meaning: "task completed", Kind: KindStatus},
		{Key: "cancelled", Symbol: "⦵", Meaning: "task cancelled", Kind: KindStatus},
		{Key: "high", Symbol: "!", Meaning: "high priority", Kind: KindPriority},
		{Key: "medium", Symbol: "·", Meaning: "medium priority", Kind: KindPriority},
		{Key: "low", Symbol: " ", Meaning: "low priority", Kind: KindPriority},
		{Key: "event", Symbol: "○", Meaning: "event", Kind: KindRecord},
		{Key: "recurring", Symbol: "↻", Meaning: "repeats", Kind: KindRecord},
		{Key: "habit", Symbol: "✓", Meaning: "habit done", Kind: KindRecord},
		{Key: "missed", Symbol: "✗", Meaning: "habit not done", Kind: KindRecord},
		{Key: "mood", Symbol: "☺", Meaning: "mood logged", Kind: KindRecord},
		{Key: "timer", Symbol: "⏱", Meaning: "timer running", Kind: KindRecord},
	}
}

// Of filters the table by kind, keeping order.
func Of(kind Kind) []Glyph {
	var out []Glyph
	for _, g := range DefaultGlyphs() {
		if g.Kind == kind {
			out = append(out, g)
		}
	}
	return out
}

func (g Glyph) String() string {
	return g.Symbol
}

func (s Symbol) Glyph() Glyph {
	return DefaultGlyphs()[s]
}

func (s Symbol) String() string {
	return s.Glyph().String()
}

// ForStatus maps a task status to its bullet. Unknown statuses read as pending.
func ForStatus(st model.Status) Symbol {
	switch st {
	case model.StatusInProgress:
		return InProgress
	case model.StatusCompleted:
		return Completed
	case model.StatusCancelled:
		return Cancelled
	}
	return Pending
}

func ForPriority(p model.Priority) Symbol {
	switch p {
	case model.PriorityHigh:
		return High
	case model.PriorityLow:
		return Low
	}
	return Medium
}

// Task renders the priority signifier and status bullet of t.
func Task(t model.Task) string {
	return ForPriority(t.Priority).String() + " " + ForStatus(t.Status).String()
}
