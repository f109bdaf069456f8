package timex

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDuration_UnmarshalJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    time.Duration
		wantErr bool
	}{
		{"string form", `"168h"`, 168 * time.Hour, false},
		{"integer nanoseconds", `3600000000000`, time.Hour, false},
		{"bad string", `"nonsense"`, 0, true},
		{"wrong type", `true`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := json.Unmarshal([]byte(tt.input), &d)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %s", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unmarshal error: %v", err)
			}
			if d.Duration != tt.want {
				t.Fatalf("got %v want %v", d.Duration, tt.want)
			}
		})
	}
}

func TestDuration_MarshalJSON(t *testing.T) {
	t.Parallel()

	b, err := json.Marshal(Duration{Duration: 2 * time.Hour})
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}
	if string(b) != `"2h0m0s"` {
		t.Fatalf("got %s", b)
	}
}
