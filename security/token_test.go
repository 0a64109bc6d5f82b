package security

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestNewAccessTokenGuard(t *testing.T) {
	guard, err := NewAccessTokenGuard("secret-token")
	if err != nil {
		t.Fatalf("NewAccessTokenGuard() error = %v", err)
	}

	if !guard.Verify("secret-token") {
		t.Error("Verify() should accept the configured token")
	}
	if guard.Verify("wrong-token") {
		t.Error("Verify() should reject a different token")
	}
	if guard.Verify("") {
		t.Error("Verify() should reject an empty token")
	}
}

func TestNewAccessTokenGuard_EmptyToken(t *testing.T) {
	if _, err := NewAccessTokenGuard(""); err == nil {
		t.Error("NewAccessTokenGuard(\"\") should fail")
	}
}

func TestNewAccessTokenGuardFromHash(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret-token"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to generate hash: %v", err)
	}

	guard, err := NewAccessTokenGuardFromHash(string(hash))
	if err != nil {
		t.Fatalf("NewAccessTokenGuardFromHash() error = %v", err)
	}

	if !guard.Verify("secret-token") {
		t.Error("Verify() should accept the hashed token")
	}
}

func TestNewAccessTokenGuardFromHash_RejectsPlaintext(t *testing.T) {
	// Operators sometimes put the plaintext token in the hash field.
	if _, err := NewAccessTokenGuardFromHash("secret-token"); err == nil {
		t.Error("NewAccessTokenGuardFromHash() should reject non-bcrypt values")
	}
	if _, err := NewAccessTokenGuardFromHash(""); err == nil {
		t.Error("NewAccessTokenGuardFromHash(\"\") should fail")
	}
}

func TestAccessTokenGuard_VerifyRequest(t *testing.T) {
	guard, err := NewAccessTokenGuard("secret-token")
	if err != nil {
		t.Fatalf("NewAccessTokenGuard() error = %v", err)
	}

	tests := []struct {
		name   string
		header string
		want   bool
	}{
		{"valid bearer", "Bearer secret-token", true},
		{"case-insensitive scheme", "bearer secret-token", true},
		{"wrong token", "Bearer wrong", false},
		{"wrong scheme", "Basic secret-token", false},
		{"no header", "", false},
		{"scheme only", "Bearer", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			if got := guard.VerifyRequest(req); got != tt.want {
				t.Errorf("VerifyRequest() = %v, want %v", got, tt.want)
			}
		})
	}
}
