package command

import (
	"fmt"
	"strings"
)

// ArgumentKey strips the required/optional/variadic markers from an argument
// token: "<gitUrl>" -> "gitUrl", "[files...]" -> "files".
func ArgumentKey(token string) string {
	key := strings.TrimSpace(token)
	key = strings.Trim(key, "<>[]")
	return strings.TrimSuffix(key, "...")
}

// isVariadicToken reports whether an argument token ends with an ellipsis marker.
func isVariadicToken(token string) bool {
	return strings.HasSuffix(strings.TrimRight(strings.TrimSpace(token), ">]"), "...")
}

// valueKind is what an option consumes after its flag.
type valueKind int

const (
	valueNone valueKind = iota // boolean switch
	valueString
	valueList
)

// flagSpec is the parsed form of Option.Flags.
type flagSpec struct {
	Long    string // long name without dashes, e.g. "dry-run" or "no-save"
	Short   string // short name without dash, may be empty
	Key     string // key in the options map
	Value   valueKind
	Negated bool // "--no-x": Key is "x" and defaults to true
}

// parseFlags parses option flag syntax such as "-r, --repo <repo>",
// "--services <services...>" or "--no-save".
func parseFlags(flags string) (flagSpec, error) {
	var spec flagSpec

	fields := strings.FieldsFunc(flags, func(r rune) bool {
		return r == ',' || r == ' ' || r == '|'
	})
	for _, f := range fields {
		switch {
		case strings.HasPrefix(f, "--"):
			if spec.Long != "" {
				return spec, fmt.Errorf("option %q declares more than one long flag", flags)
			}
			spec.Long = strings.TrimPrefix(f, "--")
		case strings.HasPrefix(f, "-"):
			spec.Short = strings.TrimPrefix(f, "-")
		case strings.HasPrefix(f, "<") || strings.HasPrefix(f, "["):
			if isVariadicToken(f) {
				spec.Value = valueList
			} else {
				spec.Value = valueString
			}
		default:
			return spec, fmt.Errorf("option %q: unexpected token %q", flags, f)
		}
	}

	if spec.Long == "" {
		if spec.Short == "" {
			return spec, fmt.Errorf("option %q declares no flag", flags)
		}
		spec.Long = spec.Short
		spec.Short = ""
	}

	spec.Key = spec.Long
	if spec.Value == valueNone && strings.HasPrefix(spec.Long, "no-") {
		spec.Negated = true
		spec.Key = strings.TrimPrefix(spec.Long, "no-")
	}
	return spec, nil
}

// invocationPath returns the leaf name followed by its raw argument tokens.
func invocationPath(e *Entry) string {
	parts := make([]string, 0, len(e.Arguments)+1)
	parts = append(parts, e.Name)
	for _, a := range e.Arguments {
		parts = append(parts, a.Name)
	}
	return strings.Join(parts, " ")
}
