package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.Addr != ":8080" {
		t.Fatalf("addr = %s", cfg.Addr)
	}
	if cfg.AutoSaveInterval != 30*time.Second {
		t.Fatalf("autosave = %s", cfg.AutoSaveInterval)
	}
	if cfg.SessionTimeout != 30*time.Minute {
		t.Fatalf("session timeout = %s", cfg.SessionTimeout)
	}
	if cfg.AIModel != "gpt-4o-mini" {
		t.Fatalf("model = %s", cfg.AIModel)
	}
}

func TestEnvDuration(t *testing.T) {
	cases := []struct {
		value string
		want  time.Duration
	}{
		{"45s", 45 * time.Second},
		{"2m", 2 * time.Minute},
		{"60", 60 * time.Second},
		{"garbage", 30 * time.Second},
		{"-5s", 30 * time.Second},
		{"", 30 * time.Second},
	}
	for _, tc := range cases {
		t.Setenv("ASG_TEST_DURATION", tc.value)
		if got := envDuration("ASG_TEST_DURATION", 30*time.Second); got != tc.want {
			t.Errorf("envDuration(%q) = %s, want %s", tc.value, got, tc.want)
		}
	}
}
