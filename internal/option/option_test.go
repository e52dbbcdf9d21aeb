package option

import (
	"reflect"
	"testing"
)

var strategies = []string{"latest", "major", "minor", "patch"}

func TestString(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		opts    StringOpts
		want    string
		wantErr string
	}{
		{"missing", nil, StringOpts{Default: "latest"}, "latest", ""},
		{"empty", "", StringOpts{Default: "latest"}, "latest", ""},
		{"whitespace", "   ", StringOpts{Default: "latest"}, "latest", ""},
		{"trimmed", "  patch  ", StringOpts{Default: "latest"}, "patch", ""},
		{"no trim", "  patch  ", StringOpts{Default: "latest", NoTrim: true}, "  patch  ", ""},
		{"no default", nil, StringOpts{}, "", ""},
		{"not a string", true, StringOpts{Default: "text"}, "text", ""},
		{"allowed", "major", StringOpts{Default: "latest", Allowed: strategies}, "major", ""},
		{"allowed default", nil, StringOpts{Default: "latest", Allowed: strategies}, "latest", ""},
		{
			name:    "not allowed",
			value:   "invalid",
			opts:    StringOpts{Default: "latest", Allowed: strategies},
			wantErr: `Invalid option value: "invalid". Allowed values: latest, major, minor, patch`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := String(tt.value, tt.opts)
			if tt.wantErr != "" {
				if err == nil || err.Error() != tt.wantErr {
					t.Fatalf("String() error = %v; want %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("String() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("String() = %q; want %q", got, tt.want)
			}
		})
	}
}

func TestBool(t *testing.T) {
	if Bool(nil, false) || !Bool(nil, true) {
		t.Errorf("missing value should yield the default")
	}
	if !Bool(true, false) || Bool(false, true) {
		t.Errorf("set value should win over the default")
	}
	if Bool("true", false) {
		t.Errorf("non-bool value should yield the default")
	}
}

func TestArray(t *testing.T) {
	tests := []struct {
		name  string
		value any
		opts  ArrayOpts
		want  []string
	}{
		{"missing", nil, ArrayOpts{Default: []string{"default"}}, []string{"default"}},
		{"missing no default", nil, ArrayOpts{}, nil},
		{"list", []string{"a", "b", "c"}, ArrayOpts{}, []string{"a", "b", "c"}},
		{"comma string", "a,b,c", ArrayOpts{}, []string{"a", "b", "c"}},
		{"custom separator", "a|b|c", ArrayOpts{Separator: "|"}, []string{"a", "b", "c"}},
		{"trims", "a , b , c", ArrayOpts{}, []string{"a", "b", "c"}},
		{"drops empty", "a,,b,c", ArrayOpts{}, []string{"a", "b", "c"}},
		{"keeps empty", "a,,b", ArrayOpts{KeepEmpty: true}, []string{"a", "", "b"}},
		{"empty after filtering", "  , , ", ArrayOpts{Default: []string{"default"}}, []string{"default"}},
		{"single", "single", ArrayOpts{}, []string{"single"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Array(tt.value, tt.opts); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Array() = %#v; want %#v", got, tt.want)
			}
		})
	}
}
