package contracts

import "testing"

func TestHead(t *testing.T) {
	if _, ok := Head(nil); ok {
		t.Error("Head(nil) should report no symbol")
	}

	ranked := []RankedSymbol{{Text: "GME", Score: 3, Rank: 1}, {Text: "AMC", Score: 1, Rank: 2}}
	got, ok := Head(ranked)
	if !ok || got != "GME" {
		t.Errorf("Head() = (%q, %v), want (GME, true)", got, ok)
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		input  string
		want   Mode
		wantOK bool
	}{
		{"top", ModeTop, true},
		{"new", ModeNew, true},
		{"hot", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseMode(tt.input)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseMode(%q) = (%v, %v), want (%v, %v)", tt.input, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestEntity_IsOrganization(t *testing.T) {
	tests := []struct {
		label string
		want  bool
	}{
		{"ORG", true},
		{"org", true},
		{"Organization", true},
		{"PERSON", false},
		{"GPE", false},
	}

	for _, tt := range tests {
		if got := (Entity{Text: "x", Label: tt.label}).IsOrganization(); got != tt.want {
			t.Errorf("IsOrganization(%q) = %v, want %v", tt.label, got, tt.want)
		}
	}
}

func TestRole_FunctionWord(t *testing.T) {
	tests := []struct {
		role Role
		want bool
	}{
		{RoleVerb, true},
		{RoleConjunction, true},
		{RoleAdposition, true},
		{RoleNoun, false},
		{RoleOther, false},
	}

	for _, tt := range tests {
		t.Run(tt.role.String(), func(t *testing.T) {
			if got := tt.role.FunctionWord(); got != tt.want {
				t.Errorf("FunctionWord() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOutputRow_ReputationText(t *testing.T) {
	row := OutputRow{}
	if got := row.ReputationText(); got != "" {
		t.Errorf("ReputationText() = %q, want empty", got)
	}

	karma := 1234
	row.Reputation = &karma
	if got := row.ReputationText(); got != "1234" {
		t.Errorf("ReputationText() = %q, want 1234", got)
	}
}
