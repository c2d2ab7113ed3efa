package binding

import "testing"

func TestExpand(t *testing.T) {
	vars := Vars{
		"title": "Roadmap",
		"year":  float64(2026),
		"team": map[string]any{
			"members": []any{
				map[string]any{"name": "Ana"},
				map[string]any{"name": "Kenji"},
			},
		},
		"quarters": []map[string]any{{"label": "Q1"}},
		"grid":     []any{[]any{"a", "b"}},
	}
	tests := []struct {
		in, want string
	}{
		{"plain text", "plain text"},
		{"${title} ${year}", "Roadmap 2026"},
		{"lead: ${team.members[1].name}", "lead: Kenji"},
		{"${quarters[0].label}", "Q1"},
		{"${grid[0][1]}", "b"},
		{"${missing}", "${missing}"},
		{"${missing:-n/a}", "n/a"},
		{"${team.members[5].name:-?}", "?"},
		{"${ title }", "Roadmap"},
		{"${title[x]}", "${title[x]}"},
	}
	for _, tt := range tests {
		if got := vars.Expand(tt.in); got != tt.want {
			t.Errorf("Expand(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestExpandWithoutVars(t *testing.T) {
	var vars Vars
	if got := vars.Expand("${a}"); got != "${a}" {
		t.Fatalf("got %q", got)
	}
}
