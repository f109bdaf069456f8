package services

import "testing"

func TestValidateRegistration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		inName     string
		inEmail    string
		inPassword string
		wantFields int
	}{
		{"all valid", "Alice", "alice@x.com", "secret1", 0},
		{"empty name", "", "alice@x.com", "secret1", 1},
		{"bad email", "Alice", "alice-at-x", "secret1", 1},
		{"email without tld", "Alice", "alice@x", "secret1", 1},
		{"short password", "Alice", "alice@x.com", "12345", 1},
		{"everything wrong", "", "nope", "123", 3},
		{"exactly six chars ok", "Alice", "alice@x.com", "123456", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verr := validateRegistration(tt.inName, tt.inEmail, tt.inPassword)
			if tt.wantFields == 0 {
				if verr != nil {
					t.Fatalf("expected valid input, got %v", verr)
				}
				return
			}
			if verr == nil {
				t.Fatalf("expected %d violations, got none", tt.wantFields)
			}
			if len(verr.Fields) != tt.wantFields {
				t.Fatalf("want %d violations, got %d: %+v", tt.wantFields, len(verr.Fields), verr.Fields)
			}
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	t.Parallel()

	if got := normalizeEmail("  Alice@X.COM "); got != "alice@x.com" {
		t.Fatalf("got %q", got)
	}
}
