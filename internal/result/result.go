// Package result defines what workspace operations report back to the CLI
// and how that report is rendered.
package result

import "fmt"

// Kind selects how a message is rendered.
type Kind string

const (
	KindInfo    Kind = "info"
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindWarn    Kind = "warn"
	KindDim     Kind = "dim"
)

type Message struct {
	Kind       Kind   `json:"type"`
	Text       string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"` // only rendered for errors
}

// Result is the outcome of one operation. Success decides the exit code,
// Messages decide what the user sees.
type Result struct {
	Success  bool      `json:"success"`
	Messages []Message `json:"messages,omitempty"`
}

func OK(msgs ...Message) *Result {
	return &Result{Success: true, Messages: msgs}
}

func Failed(msgs ...Message) *Result {
	return &Result{Success: false, Messages: msgs}
}

// Add appends a message and returns r for chaining.
func (r *Result) Add(kind Kind, format string, args ...any) *Result {
	r.Messages = append(r.Messages, Message{Kind: kind, Text: fmt.Sprintf(format, args...)})
	return r
}

func Info(text string) Message    { return Message{Kind: KindInfo, Text: text} }
func Success(text string) Message { return Message{Kind: KindSuccess, Text: text} }
func Warn(text string) Message    { return Message{Kind: KindWarn, Text: text} }
func Dim(text string) Message     { return Message{Kind: KindDim, Text: text} }

// Error returns an error message, with an optional hint shown below it.
func Error(text, suggestion string) Message {
	return Message{Kind: KindError, Text: text, Suggestion: suggestion}
}
