package core

import (
	"strings"
	"testing"
	"time"
)

func TestClientConfig_Validate(t *testing.T) {
	t.Parallel()
	validConfig := func() ClientConfig {
		return ClientConfig{
			CleanupPolicy:    PolicyRemove,
			TerminateTimeout: time.Minute,
			PullLockDir:      "/tmp",
		}
	}

	t.Run("valid config returns nil", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		if err := cfg.Validate(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	tests := map[string]struct {
		modify       func(c *ClientConfig)
		wantContains string
	}{
		"invalid cleanup policy": {
			modify:       func(c *ClientConfig) { c.CleanupPolicy = CleanupPolicy(42) },
			wantContains: "cleanup policy",
		},
		"zero terminate timeout": {
			modify:       func(c *ClientConfig) { c.TerminateTimeout = 0 },
			wantContains: "terminate timeout",
		},
		"negative terminate timeout": {
			modify:       func(c *ClientConfig) { c.TerminateTimeout = -1 },
			wantContains: "terminate timeout",
		},
		"empty pull lock dir": {
			modify:       func(c *ClientConfig) { c.PullLockDir = "" },
			wantContains: "pull lock directory",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			cfg := validConfig()
			tt.modify(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantContains) {
				t.Fatalf("error %q does not mention %q", err, tt.wantContains)
			}
		})
	}

	t.Run("all violations reported at once", func(t *testing.T) {
		t.Parallel()
		cfg := ClientConfig{CleanupPolicy: CleanupPolicy(-1)}
		err := cfg.Validate()
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		for _, want := range []string{"cleanup policy", "terminate timeout", "pull lock directory"} {
			if !strings.Contains(err.Error(), want) {
				t.Errorf("joined error %q does not mention %q", err, want)
			}
		}
	})
}

func TestCleanupPolicy_IsValid(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		policy CleanupPolicy
		want   bool
	}{
		"remove":       {PolicyRemove, true},
		"keep":         {PolicyKeep, true},
		"out of range": {CleanupPolicy(7), false},
		"negative":     {CleanupPolicy(-1), false},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			if got := tt.policy.IsValid(); got != tt.want {
				t.Fatalf("IsValid(%v) = %t, want %t", tt.policy, got, tt.want)
			}
		})
	}
}

func TestCleanupPolicy_String(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		policy CleanupPolicy
		want   string
	}{
		"remove":  {PolicyRemove, "PolicyRemove"},
		"keep":    {PolicyKeep, "PolicyKeep"},
		"unknown": {CleanupPolicy(7), "CleanupPolicy(7)"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			if got := tt.policy.String(); got != tt.want {
				t.Fatalf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

// PolicyFromEnv tests mutate the process environment via t.Setenv, so
// they must not run in parallel.
func TestPolicyFromEnv(t *testing.T) {
	tests := map[string]struct {
		value string
		want  CleanupPolicy
	}{
		"unset":           {"", PolicyRemove},
		"remove":          {"remove", PolicyRemove},
		"keep":            {"keep", PolicyKeep},
		"mixed case keep": {"KEEP", PolicyKeep},
		"unrecognized":    {"purge", PolicyRemove},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Setenv(CleanupPolicyEnv, tt.value)
			if got := PolicyFromEnv(); got != tt.want {
				t.Fatalf("PolicyFromEnv() = %v, want %v", got, tt.want)
			}
		})
	}
}
