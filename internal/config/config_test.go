package config

import "testing"

func TestNewFromEnv(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr bool
		remote  bool
		ai      bool
	}{
		{
			name: "nothing set runs offline",
		},
		{
			name: "full cloud and ai",
			env: map[string]string{
				"ROTATION_SUPABASE_URL":      "https://proj.supabase.co",
				"ROTATION_SUPABASE_ANON_KEY": "anon",
				"GEMINI_API_KEY":             "key",
			},
			remote: true,
			ai:     true,
		},
		{
			name: "ai only",
			env:  map[string]string{"GEMINI_API_KEY": "key"},
			ai:   true,
		},
		{
			name:    "url without key",
			env:     map[string]string{"ROTATION_SUPABASE_URL": "https://proj.supabase.co"},
			wantErr: true,
		},
		{
			name:    "key without url",
			env:     map[string]string{"ROTATION_SUPABASE_ANON_KEY": "anon"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, key := range []string{"ROTATION_SUPABASE_URL", "ROTATION_SUPABASE_ANON_KEY", "GEMINI_API_KEY"} {
				t.Setenv(key, tt.env[key])
			}

			cfg, err := NewFromEnv()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewFromEnv failed: %v", err)
			}
			if cfg.RemoteEnabled() != tt.remote {
				t.Errorf("RemoteEnabled() = %v, want %v", cfg.RemoteEnabled(), tt.remote)
			}
			if cfg.AIEnabled() != tt.ai {
				t.Errorf("AIEnabled() = %v, want %v", cfg.AIEnabled(), tt.ai)
			}
		})
	}
}

func TestDefaultDataPath(t *testing.T) {
	if DefaultDataPath() == "" {
		t.Error("DefaultDataPath returned empty string")
	}
}
