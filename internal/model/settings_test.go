package model

import "testing"

func TestChatSettingsValidate(t *testing.T) {
	tests := []struct {
		name     string
		settings ChatSettings
		wantErr  bool
	}{
		{
			name:     "default settings are valid",
			settings: DefaultChatSettings(),
			wantErr:  false,
		},
		{
			name:     "temperature lower bound",
			settings: ChatSettings{Temperature: 0, Mode: ModeGeneral},
			wantErr:  false,
		},
		{
			name:     "temperature upper bound",
			settings: ChatSettings{Temperature: 2, Mode: ModeAnalyst},
			wantErr:  false,
		},
		{
			name:     "code assistant mode",
			settings: ChatSettings{Temperature: 0.7, Mode: ModeCodeAssistant, SystemPrompt: "be brief"},
			wantErr:  false,
		},
		{
			name:     "temperature out of range",
			settings: ChatSettings{Temperature: 2.5, Mode: ModeGeneral},
			wantErr:  true,
		},
		{
			name:     "negative temperature",
			settings: ChatSettings{Temperature: -0.1, Mode: ModeGeneral},
			wantErr:  true,
		},
		{
			name:     "unknown mode",
			settings: ChatSettings{Temperature: 1, Mode: "poet"},
			wantErr:  true,
		},
		{
			name:     "empty mode",
			settings: ChatSettings{Temperature: 1},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.settings.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
