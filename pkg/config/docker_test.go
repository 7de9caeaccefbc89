package config

import (
	"testing"
)

func TestResolveHostForDocker(t *testing.T) {
	tests := []struct {
		input    string
		loopback bool
	}{
		{"mydb.example.com", false},
		{"192.168.1.100", false},
		{"host.docker.internal", false},
		{"localhost", true},
		{"127.0.0.1", true},
		{"::1", true},
	}

	for _, tt := range tests {
		want := tt.input
		if tt.loopback && IsRunningInDocker() {
			want = dockerHostAlias
		}
		if got := ResolveHostForDocker(tt.input); got != want {
			t.Errorf("ResolveHostForDocker(%q) = %q, want %q", tt.input, got, want)
		}
	}
}

func TestIsLoopback(t *testing.T) {
	if !isLoopback("localhost") || isLoopback("db") {
		t.Error("unexpected loopback classification")
	}
}
