package config

import (
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{
		"DATABASE_PATH", "MODEL_DIR", "FACE_CASCADE_PATH", "MEDIA_STORAGE_PATH",
		"CAPTURES_SUBDIR", "RECOGNITION_QUEUE_SIZE", "MAINTENANCE_INTERVAL_MINUTES",
		"ATTENDANCE_RETENTION_DAYS",
	} {
		t.Setenv(key, "")
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.DatabasePath != "attendance.db" {
		t.Errorf("unexpected database path: %s", cfg.DatabasePath)
	}
	if filepath.Base(cfg.TrainerPath) != "face_trainer.yml" {
		t.Errorf("unexpected trainer path: %s", cfg.TrainerPath)
	}
	if filepath.Base(cfg.StudentsPath) != "students_data.json" {
		t.Errorf("unexpected students path: %s", cfg.StudentsPath)
	}
	if filepath.Base(cfg.CapturesPath) != DefaultCapturesSubDir {
		t.Errorf("unexpected captures path: %s", cfg.CapturesPath)
	}
	if cfg.RecognitionQueueSize != 10 {
		t.Errorf("expected queue size 10, got %d", cfg.RecognitionQueueSize)
	}
	if cfg.MaintenanceInterval != time.Hour {
		t.Errorf("expected maintenance interval 1h, got %s", cfg.MaintenanceInterval)
	}
	if cfg.AttendanceRetentionDays != 90 {
		t.Errorf("expected retention 90 days, got %d", cfg.AttendanceRetentionDays)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("DATABASE_PATH", "/data/attend.db")
	t.Setenv("RECOGNITION_QUEUE_SIZE", "25")
	t.Setenv("MAINTENANCE_INTERVAL_MINUTES", "5")
	t.Setenv("ATTENDANCE_RETENTION_DAYS", "30")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.DatabasePath != "/data/attend.db" {
		t.Errorf("unexpected database path: %s", cfg.DatabasePath)
	}
	if cfg.RecognitionQueueSize != 25 {
		t.Errorf("expected queue size 25, got %d", cfg.RecognitionQueueSize)
	}
	if cfg.MaintenanceInterval != 5*time.Minute {
		t.Errorf("expected maintenance interval 5m, got %s", cfg.MaintenanceInterval)
	}
	if cfg.AttendanceRetentionDays != 30 {
		t.Errorf("expected retention 30 days, got %d", cfg.AttendanceRetentionDays)
	}
}

func TestGetEnvIntOrDefaultRejectsInvalid(t *testing.T) {
	t.Setenv("RECOGNITION_QUEUE_SIZE", "not-a-number")
	if got := getEnvIntOrDefault("RECOGNITION_QUEUE_SIZE", 10); got != 10 {
		t.Errorf("expected fallback 10 for invalid value, got %d", got)
	}

	t.Setenv("RECOGNITION_QUEUE_SIZE", "-3")
	if got := getEnvIntOrDefault("RECOGNITION_QUEUE_SIZE", 10); got != 10 {
		t.Errorf("expected fallback 10 for non-positive value, got %d", got)
	}
}
