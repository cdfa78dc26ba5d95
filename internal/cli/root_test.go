package cli

import "testing"

func TestParseDay(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"mon", 0, false},
		{"Monday", 0, false},
		{"sun", 6, false},
		{"SATURDAY", 5, false},
		{" wed ", 2, false},
		{"0", 0, false},
		{"6", 6, false},
		{"7", 0, true},
		{"-1", 0, true},
		{"someday", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseDay(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseDay(%q) expected error, got %d", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseDay(%q) failed: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("parseDay(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestConfirmYesBypass(t *testing.T) {
	// --yes must short-circuit without touching the terminal.
	ok, err := confirm("destroy everything?", true)
	if err != nil {
		t.Fatalf("confirm with yes flag failed: %v", err)
	}
	if !ok {
		t.Error("confirm with yes flag returned false")
	}
}
