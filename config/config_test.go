package config

import (
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("MYSQL_DSN", "user:pass@tcp(localhost:3306)/duekeeper?parseTime=true")
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS_1", "serviceAccountKey.json")
	t.Setenv("FIRESTORE_PROJECT_ID", "duekeeper-test")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)
	t.Setenv("APP_PORT", "")
	t.Setenv("REMOTE_COLLECTION", "")
	t.Setenv("FCM_TOPIC", "")
	t.Setenv("NOTIFY_INTERVAL", "")
	t.Setenv("SYNC_TIMEOUT", "")
	t.Setenv("QUOTE_API_URL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.RemoteCollection != "Tasks" {
		t.Errorf("RemoteCollection = %q, want Tasks", cfg.RemoteCollection)
	}
	if cfg.FCMTopic != "deadline-alerts" {
		t.Errorf("FCMTopic = %q, want deadline-alerts", cfg.FCMTopic)
	}
	if cfg.NotifyInterval != time.Hour {
		t.Errorf("NotifyInterval = %s, want 1h", cfg.NotifyInterval)
	}
	if cfg.SyncTimeout != 30*time.Second {
		t.Errorf("SyncTimeout = %s, want 30s", cfg.SyncTimeout)
	}
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("APP_PORT", "9090")
	t.Setenv("REMOTE_COLLECTION", "MirroredTasks")
	t.Setenv("NOTIFY_INTERVAL", "15m")
	t.Setenv("SYNC_TIMEOUT", "5s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != "9090" {
		t.Errorf("Port = %q, want 9090", cfg.Port)
	}
	if cfg.RemoteCollection != "MirroredTasks" {
		t.Errorf("RemoteCollection = %q, want MirroredTasks", cfg.RemoteCollection)
	}
	if cfg.NotifyInterval != 15*time.Minute {
		t.Errorf("NotifyInterval = %s, want 15m", cfg.NotifyInterval)
	}
	if cfg.SyncTimeout != 5*time.Second {
		t.Errorf("SyncTimeout = %s, want 5s", cfg.SyncTimeout)
	}
}

func TestLoadInvalidDurationFallsBack(t *testing.T) {
	setRequired(t)
	t.Setenv("NOTIFY_INTERVAL", "soon")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.NotifyInterval != time.Hour {
		t.Errorf("NotifyInterval = %s, want fallback 1h", cfg.NotifyInterval)
	}
}

func TestLoadMissingRequired(t *testing.T) {
	cases := []struct {
		name string
		omit string
	}{
		{"database", "MYSQL_DSN"},
		{"credentials", "GOOGLE_APPLICATION_CREDENTIALS_1"},
		{"project", "FIRESTORE_PROJECT_ID"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			setRequired(t)
			t.Setenv(tc.omit, "")

			if _, err := Load(); err == nil {
				t.Fatalf("Load succeeded without %s", tc.omit)
			}
		})
	}
}
