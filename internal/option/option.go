// Package option normalizes raw option values handed to command handlers.
//
// Values arrive as whatever the parser produced (string, bool, []string, or
// nothing at all), so every function here accepts any and falls back to a
// default when the value is missing or empty.
package option

import (
	"fmt"
	"slices"
	"strings"
)

type StringOpts struct {
	Default string
	Allowed []string // empty means any value
	NoTrim  bool
}

// String returns v as a trimmed string, or opts.Default when v is missing,
// not a string, or blank.
func String(v any, opts StringOpts) (string, error) {
	s, ok := v.(string)
	if !ok || s == "" {
		return opts.Default, nil
	}
	if !opts.NoTrim {
		s = strings.TrimSpace(s)
	}
	if s == "" {
		return opts.Default, nil
	}
	if len(opts.Allowed) > 0 && !slices.Contains(opts.Allowed, s) {
		return "", fmt.Errorf("Invalid option value: %q. Allowed values: %s", s, strings.Join(opts.Allowed, ", "))
	}
	return s, nil
}

func Bool(v any, def bool) bool {
	if b, ok := v.(bool); ok {
		return b
	}
	return def
}

type ArrayOpts struct {
	Default   []string
	Separator string // defaults to ","
	KeepEmpty bool
	NoTrim    bool
}

// Array returns v as a list. A string is split on the separator, a list is
// used as-is. Items are trimmed and blanks dropped unless told otherwise; an
// empty outcome yields opts.Default.
func Array(v any, opts ArrayOpts) []string {
	sep := opts.Separator
	if sep == "" {
		sep = ","
	}

	var items []string
	switch t := v.(type) {
	case []string:
		items = t
	case string:
		items = strings.Split(t, sep)
	default:
		return opts.Default
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		if !opts.NoTrim {
			item = strings.TrimSpace(item)
		}
		if item == "" && !opts.KeepEmpty {
			continue
		}
		out = append(out, item)
	}
	if len(out) == 0 {
		return opts.Default
	}
	return out
}
