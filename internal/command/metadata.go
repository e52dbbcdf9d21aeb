// Package command turns declarative command descriptions into a urfave/cli command tree.
//
// Commands are described as Entry values (leaves with a Handler, or groups holding more
// entries), collected in a Registry during startup and handed to a Builder, which produces
// one cli.Command per entry and binds a single dispatch action to every leaf.
package command

import (
	"context"
	"fmt"
)

// Kind discriminates leaf commands from command groups.
type Kind int

const (
	KindLeaf Kind = iota
	KindGroup
)

func (k Kind) String() string {
	switch k {
	case KindLeaf:
		return "leaf"
	case KindGroup:
		return "group"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Handler runs a leaf command. args is keyed by argument name (markers stripped),
// options by long flag name.
type Handler func(ctx context.Context, args, options Values) error

// Argument describes a positional argument. Name carries its syntax markers:
// "<name>" required, "[name]" optional, "<name...>" variadic.
type Argument struct {
	Name        string
	Description string
	Required    bool
	Variadic    bool
}

// Option describes a flag. Flags is the only source of its spelling,
// e.g. "-r, --repo <repo>", "--draft" or "--no-save".
type Option struct {
	Flags        string
	Description  string
	DefaultValue any // only string, bool and []string are passed on
	Required     bool
}

// Entry is a leaf command or a command group.
type Entry struct {
	Kind        Kind
	Name        string
	Description string
	Alias       string

	// leaf fields
	Arguments []Argument // positional, order matters
	Options   []Option
	Hidden    bool // accepted, not enforced
	Handler   Handler

	// group fields
	Commands []*Entry
}

// Values holds bound arguments or options.
type Values map[string]any

// String returns the value for key if it is a string.
func (v Values) String(key string) string {
	s, _ := v[key].(string)
	return s
}

// Bool returns the value for key if it is a bool.
func (v Values) Bool(key string) bool {
	b, _ := v[key].(bool)
	return b
}
