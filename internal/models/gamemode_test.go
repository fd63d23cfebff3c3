package models

import "testing"

func TestParseGameMode(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    GameMode
		wantErr bool
	}{
		{name: "timed mode", input: "REVEAL_OVER_TIME", want: RevealOverTime},
		{name: "click mode", input: "REVEAL_WITH_CLICKS", want: RevealWithClicks},
		{name: "lowercase", input: "reveal_over_time", want: RevealOverTime},
		{name: "whitespace", input: " REVEAL_WITH_CLICKS ", want: RevealWithClicks},
		{name: "unknown", input: "SPEEDRUN", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseGameMode(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseGameMode(%q) expected error, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseGameMode(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseGameMode(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestGameModeDisplayName(t *testing.T) {
	if got := RevealOverTime.DisplayName(); got != "Reveal Over Time" {
		t.Errorf("DisplayName() = %q, want %q", got, "Reveal Over Time")
	}
	if got := RevealWithClicks.DisplayName(); got != "Reveal With Clicks" {
		t.Errorf("DisplayName() = %q, want %q", got, "Reveal With Clicks")
	}
}

func TestGameModeValid(t *testing.T) {
	if !RevealOverTime.Valid() || !RevealWithClicks.Valid() {
		t.Error("supported modes should be valid")
	}
	if GameMode("SPEEDRUN").Valid() {
		t.Error("unknown mode should not be valid")
	}
}
