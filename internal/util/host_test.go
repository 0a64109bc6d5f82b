package util

import "testing"

func TestIsLoopbackHost(t *testing.T) {
	tests := []struct {
		host string
		want bool
	}{
		{"127.0.0.1", true},
		{"127.0.0.1:8080", true},
		{"localhost", true},
		{"LOCALHOST", true},
		{"localhost:3000", true},
		{"::1", true},
		{"[::1]", true},
		{"[::1]:8080", true},
		{"example.com", false},
		{"example.com:443", false},
		{"127.0.0.2", false},
		{"localhost.example.com", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			if got := IsLoopbackHost(tt.host); got != tt.want {
				t.Errorf("IsLoopbackHost(%q) = %v, want %v", tt.host, got, tt.want)
			}
		})
	}
}

func TestStripPort(t *testing.T) {
	tests := []struct {
		host string
		want string
	}{
		{"example.com:443", "example.com"},
		{"example.com", "example.com"},
		{"[::1]:8080", "::1"},
		{"::1", "::1"},
		{"127.0.0.1:80", "127.0.0.1"},
	}

	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			if got := StripPort(tt.host); got != tt.want {
				t.Errorf("StripPort(%q) = %q, want %q", tt.host, got, tt.want)
			}
		})
	}
}
