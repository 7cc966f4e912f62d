package model

import "testing"

func TestDisplaySentiment(t *testing.T) {
	tests := []struct {
		name  string
		score float64
		want  int
	}{
		{name: "most negative maps to 1", score: -1, want: 1},
		{name: "neutral maps to 3", score: 0, want: 3},
		{name: "most positive maps to 5", score: 1, want: 5},
		{name: "mildly positive rounds", score: 0.3, want: 4},
		{name: "mildly negative rounds", score: -0.3, want: 2},
		{name: "below range clamps to 1", score: -2, want: 1},
		{name: "above range clamps to 5", score: 2, want: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DisplaySentiment(tt.score); got != tt.want {
				t.Errorf("DisplaySentiment(%v) = %d, want %d", tt.score, got, tt.want)
			}
		})
	}
}

func TestValidRole(t *testing.T) {
	for _, role := range []string{RoleUser, RoleAssistant, RoleSystem} {
		if !ValidRole(role) {
			t.Errorf("ValidRole(%q) = false, want true", role)
		}
	}
	for _, role := range []string{"", "admin", "USER"} {
		if ValidRole(role) {
			t.Errorf("ValidRole(%q) = true, want false", role)
		}
	}
}

func TestMessageToView(t *testing.T) {
	msg := &Message{
		ID:        7,
		Content:   "hello",
		Role:      RoleUser,
		Sentiment: 1,
		Category:  CategoryGeneral,
	}

	view := msg.ToView()
	if view.ID != 7 || view.Content != "hello" || view.Role != RoleUser {
		t.Errorf("unexpected view: %+v", view)
	}
	if view.Sentiment != 5 {
		t.Errorf("view sentiment = %d, want 5", view.Sentiment)
	}
}
