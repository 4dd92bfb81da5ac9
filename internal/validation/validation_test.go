package validation

import (
	"errors"
	"strings"
	"testing"

	"account-server/internal/domain"
)

func TestEmail(t *testing.T) {
	tests := []struct {
		name  string
		email string
		valid bool
	}{
		{"simple address", "user@example.com", true},
		{"subdomain", "user@mail.example.com", true},
		{"plus tag", "user+tag@example.com", true},
		{"empty", "", false},
		{"blank", "   ", false},
		{"missing at", "userexample.com", false},
		{"missing local part", "@example.com", false},
		{"whitespace inside", "user @example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Email(tt.email)
			if tt.valid && err != nil {
				t.Fatalf("expected %q valid, got %v", tt.email, err)
			}
			if !tt.valid {
				if err == nil {
					t.Fatalf("expected %q invalid", tt.email)
				}
				if !errors.Is(err, domain.ErrInvalidEmail) {
					t.Errorf("expected ErrInvalidEmail, got %v", err)
				}
			}
		})
	}
}

func TestPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantRule string // empty means valid
	}{
		{"valid", "Valid1Password!", ""},
		{"empty", "", "must not be empty"},
		{"too short", "Ab1!x", "at least 6"},
		{"too long", "Aa1!" + strings.Repeat("x", 29), "at most 32"},
		{"no uppercase", "valid1pass!", "uppercase"},
		{"no lowercase", "VALID1PASS!", "lowercase"},
		{"no digit", "ValidPass!", "digit"},
		{"no special", "ValidPass1", "special"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Password(tt.password)
			if tt.wantRule == "" {
				if err != nil {
					t.Fatalf("expected valid, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected failure containing %q", tt.wantRule)
			}
			if !errors.Is(err, domain.ErrInvalidPassword) {
				t.Errorf("expected ErrInvalidPassword, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.wantRule) {
				t.Errorf("expected rule %q in error, got %q", tt.wantRule, err.Error())
			}
		})
	}
}

// A password that is both too short and missing a digit must report the length
// rule; checks apply in a fixed order and the first failure wins.
func TestPasswordRuleOrder(t *testing.T) {
	err := Password("ab1")
	if err == nil {
		t.Fatal("expected failure")
	}
	if !strings.Contains(err.Error(), "at least 6") {
		t.Fatalf("expected length failure first, got %q", err.Error())
	}

	// same for length vs character classes
	err = Password("abcdef")
	if err == nil {
		t.Fatal("expected failure")
	}
	if !strings.Contains(err.Error(), "uppercase") {
		t.Fatalf("expected uppercase failure before digit/special, got %q", err.Error())
	}
}

func TestName(t *testing.T) {
	tests := []struct {
		name  string
		value string
		valid bool
	}{
		{"valid", "Test User", true},
		{"two chars", "Al", true},
		{"empty", "", false},
		{"blank", "   ", false},
		{"single char", "A", false},
		{"single char padded", "  A  ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Name(tt.value)
			if tt.valid && err != nil {
				t.Fatalf("expected %q valid, got %v", tt.value, err)
			}
			if !tt.valid {
				if err == nil {
					t.Fatalf("expected %q invalid", tt.value)
				}
				if !errors.Is(err, domain.ErrInvalidName) {
					t.Errorf("expected ErrInvalidName, got %v", err)
				}
			}
		})
	}
}
